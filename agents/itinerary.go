// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package agents

import (
	"context"
	"fmt"
	"strings"

	"github.com/poiesic/voyant/ai"
)

// fallbackItinerary is the non-fatal placeholder when the draft call fails.
const fallbackItinerary = "Unable to create itinerary. Please try again."

// draft creates the day-by-day itinerary from the analysis and evidence
// context. The returned bool reports whether the fallback was substituted.
func (p *Pipeline) draft(ctx context.Context, analysis Analysis, evidenceContext, query string) (string, bool) {
	duration := "the requested"
	if analysis.DurationDays > 0 {
		duration = fmt.Sprintf("%d", analysis.DurationDays)
	}
	mustInclude := "user preferences"
	if len(analysis.MustInclude) > 0 {
		mustInclude = strings.Join(analysis.MustInclude, ", ")
	}

	system := fmt.Sprintf(`You are an expert itinerary creation specialist.
Your ONLY job is to create the day-by-day itinerary structure.

CRITICAL RULES:
1. Create EXACTLY %s days if duration is specified
2. Follow the %s pace
3. MUST include: %s
4. Use ONLY information from the provided context
5. Structure: Day X: Theme -> Morning -> Afternoon -> Evening
6. **ALWAYS use SPECIFIC VENUE NAMES from context** (e.g., "An Bang Beach", not "a beach")
7. **ALWAYS use SPECIFIC RESTAURANT NAMES** if mentioned in context (e.g., "Morning Glory", not "a local restaurant")
8. Explain WHY each activity fits the %s intent
9. Include realistic travel times between locations
10. Consider geographic logic (don't jump 500km between days)

FORBIDDEN:
- Generic placeholders like "a local market", "a cooking school", "a restaurant"
- Unrealistic distances between consecutive days
- Budget estimates (another agent handles that)

DO NOT add practical tips (another agent handles that).
Focus on: WHAT to do, WHERE to go (SPECIFIC NAMES), WHEN to do it, WHY it fits.`,
		duration, analysis.Pace, mustInclude, analysis.Intent)

	mustIncludeLine := "N/A"
	if len(analysis.MustInclude) > 0 {
		mustIncludeLine = strings.Join(analysis.MustInclude, ", ")
	}

	prompt := fmt.Sprintf(`Create %s itinerary for:

User Request: %q

Duration: %s days
Pace: %s
Must Include: %s

Available Context:
%s

Create ONLY the day-by-day itinerary. Be specific with places and timing.`,
		analysis.Intent, query, duration, analysis.Pace, mustIncludeLine, evidenceContext)

	itinerary, err := p.generator.Complete(ctx, ai.GenerateRequest{
		System:      system,
		Prompt:      prompt,
		Temperature: 0.3,
		MaxTokens:   1200,
	})
	if err != nil {
		p.logger.Warn("draft stage failed, using placeholder", "err", err)
		return fallbackItinerary, true
	}
	return itinerary, false
}
