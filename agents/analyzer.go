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

const analyzeSystemPrompt = `You are a specialized query analysis agent for travel planning.
Your ONLY job is to analyze user queries and extract structured information.

Extract and return JSON with these fields:
- intent: Primary travel style (romantic, adventure, food, beach, culture, family, business)
- duration_days: Number of days (integer, null if not specified)
- budget_usd: Total budget in USD (integer, null if not specified)
- budget_level: Budget tier (budget/mid-range/luxury, null if not specified)
- pace: Travel pace (relaxed/moderate/fast, default: moderate)
- group_type: Travel group (solo/couple/family/friends, default: couple if romantic)
- must_include: Array of must-have activities/places
- must_avoid: Array of things to avoid
- preferences: Additional preferences (photography, nightlife, nature, etc.)
- special_requirements: Dietary restrictions, accessibility needs, etc.

Be precise and extract ALL constraints mentioned.`

// fallbackAnalysis is substituted when the analyze call or its parse fails.
func fallbackAnalysis() Analysis {
	return Analysis{
		Intent:              "general",
		Pace:                "moderate",
		GroupType:           "solo",
		MustInclude:         []string{},
		MustAvoid:           []string{},
		Preferences:         []string{},
		SpecialRequirements: []string{},
	}
}

// analyze extracts a structured interpretation of the query.
// The returned bool reports whether the fallback was substituted.
func (p *Pipeline) analyze(ctx context.Context, query string) (Analysis, bool) {
	prompt := fmt.Sprintf("Analyze this travel query and extract structured information:\n\nQuery: %q\n\nReturn ONLY valid JSON, no other text.", query)

	response, err := p.generator.Complete(ctx, ai.GenerateRequest{
		System:      analyzeSystemPrompt,
		Prompt:      prompt,
		Temperature: 0.1,
		MaxTokens:   500,
		JSONMode:    true,
	})
	if err != nil {
		p.logger.Warn("analyze stage failed, using fallback", "err", err)
		return fallbackAnalysis(), true
	}

	var analysis Analysis
	if err := decodeStageJSON(response, &analysis); err != nil {
		p.logger.Warn("analyze stage returned unparsable content, using fallback", "err", err)
		return fallbackAnalysis(), true
	}

	applyAnalysisDefaults(&analysis)
	return analysis, false
}

// applyAnalysisDefaults guarantees the downstream stages never see unset
// fields, even when the collaborator succeeded with a sparse record.
func applyAnalysisDefaults(analysis *Analysis) {
	if analysis.Intent == "" {
		analysis.Intent = "general"
	}
	if analysis.Pace == "" {
		analysis.Pace = "moderate"
	}
	if analysis.GroupType == "" {
		if analysis.Intent == "romantic" {
			analysis.GroupType = "couple"
		} else {
			analysis.GroupType = "solo"
		}
	}
	if analysis.MustInclude == nil {
		analysis.MustInclude = []string{}
	}
	if analysis.MustAvoid == nil {
		analysis.MustAvoid = []string{}
	}
	if analysis.Preferences == nil {
		analysis.Preferences = []string{}
	}
	if analysis.SpecialRequirements == nil {
		analysis.SpecialRequirements = []string{}
	}
}
