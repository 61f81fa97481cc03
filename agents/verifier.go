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

const verifySystemPrompt = `You are a quality verification specialist for travel itineraries.
Your job is to CHECK for errors and logical issues.

Verify:
1. Completeness: All days covered? All sections present?
2. Accuracy: Travel times realistic? Locations exist? Prices reasonable?
3. Logic: Day transitions make sense? No contradictions?
4. Constraints: Must-include items covered? Budget respected?
5. Quality: Specific details? Clear WHY explanations?

Return JSON:
{
  "is_valid": true/false,
  "errors": ["error 1", "error 2", ...],
  "warnings": ["warning 1", ...],
  "score": 0-100,
  "corrections": "Suggested fixes if errors found",
  "validation_summary": "Brief summary"
}`

// fallbackValidation is deliberately permissive: when the verifier itself
// is unreachable, availability wins over strict gating.
func fallbackValidation() Validation {
	return Validation{
		IsValid:           true,
		Errors:            []string{},
		Warnings:          []string{},
		Score:             85,
		Corrections:       "",
		ValidationSummary: "Verification failed, assuming valid.",
	}
}

// verify checks the combined itinerary and logistics text. The returned
// bool reports whether the fallback was substituted.
func (p *Pipeline) verify(ctx context.Context, analysis Analysis, itinerary, logistics, query string) (Validation, bool) {
	duration := "unspecified"
	if analysis.DurationDays > 0 {
		duration = fmt.Sprintf("%d", analysis.DurationDays)
	}
	mustInclude := "N/A"
	if len(analysis.MustInclude) > 0 {
		mustInclude = strings.Join(analysis.MustInclude, ", ")
	}

	prompt := fmt.Sprintf(`Verify quality of this travel response:

Original Query: %q
Expected Duration: %s days
Must Include: %s
Intent: %s

Content to Verify:

ITINERARY:
%s

PRACTICAL TIPS:
%s

Return validation report as JSON.`, query, duration, mustInclude, analysis.Intent, itinerary, logistics)

	response, err := p.generator.Complete(ctx, ai.GenerateRequest{
		System:      verifySystemPrompt,
		Prompt:      prompt,
		Temperature: 0.1,
		MaxTokens:   600,
		JSONMode:    true,
	})
	if err != nil {
		p.logger.Warn("verify stage failed, using permissive default", "err", err)
		return fallbackValidation(), true
	}

	var validation Validation
	if err := decodeStageJSON(response, &validation); err != nil {
		p.logger.Warn("verify stage returned unparsable content, using permissive default", "err", err)
		return fallbackValidation(), true
	}

	if validation.Errors == nil {
		validation.Errors = []string{}
	}
	if validation.Warnings == nil {
		validation.Warnings = []string{}
	}
	return validation, false
}
