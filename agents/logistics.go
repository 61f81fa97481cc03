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

	"github.com/poiesic/voyant/ai"
)

// fallbackLogistics is the notice substituted when the enrich call fails.
const fallbackLogistics = "\n### Practical Tips\nPlease consult travel guides for detailed logistics."

// enrich adds practical logistics to the drafted itinerary. The returned
// bool reports whether the fallback was substituted.
func (p *Pipeline) enrich(ctx context.Context, analysis Analysis, itinerary, query string) (string, bool) {
	budgetLevel := analysis.BudgetLevel
	if budgetLevel == "" {
		budgetLevel = "mid-range"
	}
	duration := "unspecified"
	if analysis.DurationDays > 0 {
		duration = fmt.Sprintf("%d", analysis.DurationDays)
	}

	system := fmt.Sprintf(`You are a travel logistics and practical tips specialist.
Your job is to add PRACTICAL information to an itinerary.

Provide:
1. Transportation: Between cities, within cities, booking tips
2. Budget Breakdown: Accommodation, food, activities, transport (per day and total)
3. Best Time to Visit: Weather, crowds, events
4. Booking Advice: When to book, where to book, advance planning
5. Safety & Tips: What to know, what to carry, common mistakes

Budget level: %s
Duration: %s days

Be SPECIFIC with prices in USD, time estimates, and actionable advice.`, budgetLevel, duration)

	prompt := fmt.Sprintf(`Add practical tips for this itinerary:

Original Request: %q
Budget Level: %s

Itinerary:
%s

Provide practical tips section with transport, budget, booking, and tips.`, query, budgetLevel, itinerary)

	logistics, err := p.generator.Complete(ctx, ai.GenerateRequest{
		System:      system,
		Prompt:      prompt,
		Temperature: 0.2,
		MaxTokens:   800,
	})
	if err != nil {
		p.logger.Warn("enrich stage failed, using notice", "err", err)
		return fallbackLogistics, true
	}
	return logistics, false
}
