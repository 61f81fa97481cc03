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
	"encoding/json"
	"fmt"

	"github.com/poiesic/voyant/ai"
)

const planSystemPrompt = `You are a retrieval strategy specialist for travel search.
Your job is to create an optimal search plan based on query analysis.

Given user intent and constraints, determine:
1. vector_query: Optimized search query for vector DB (semantic search)
2. graph_filters: Categories to include/exclude in graph search
3. top_k: Number of results to retrieve (5-10)
4. priority_nodes: Node types to prioritize (City, Restaurant, Activity, etc.)
5. search_strategy: Strategy name (broad_discovery, focused_refinement, constraint_based)

CRITICAL: You MUST return ONLY a valid JSON object with this EXACT structure:
{
  "vector_query": "optimized search query string",
  "graph_filters": {"include": ["category1", "category2"], "exclude": []},
  "top_k": 7,
  "priority_nodes": ["City", "Activity"],
  "search_strategy": "focused_refinement"
}

NO additional text, NO markdown, ONLY the JSON object.`

// fallbackPlan derives a strategy deterministically from the analysis when
// the plan call or its parse fails.
func fallbackPlan(analysis Analysis, query string) Plan {
	topK := 5
	if analysis.DurationDays > 3 {
		topK = 7
	}
	return Plan{
		VectorQuery:    query,
		GraphFilters:   GraphFilters{Include: []string{}, Exclude: []string{}},
		TopK:           topK,
		PriorityNodes:  []string{"City", "Attraction", "Activity", "Restaurant"},
		SearchStrategy: "broad_discovery",
	}
}

// plan produces the retrieval strategy record. The returned bool reports
// whether the fallback was substituted.
func (p *Pipeline) plan(ctx context.Context, analysis Analysis, query string) (Plan, bool) {
	analysisJSON, err := json.MarshalIndent(analysis, "", "  ")
	if err != nil {
		analysisJSON = []byte("{}")
	}

	prompt := fmt.Sprintf("Create retrieval strategy for:\n\nQuery Analysis:\n%s\n\nOriginal Query: %q\n\nReturn ONLY the JSON object, nothing else.",
		analysisJSON, query)

	response, err := p.generator.Complete(ctx, ai.GenerateRequest{
		System:      planSystemPrompt,
		Prompt:      prompt,
		Temperature: 0.2,
		MaxTokens:   400,
	})
	if err != nil {
		p.logger.Warn("plan stage failed, using fallback strategy", "err", err)
		return fallbackPlan(analysis, query), true
	}

	var plan Plan
	if err := decodeStageJSON(response, &plan); err != nil {
		p.logger.Warn("plan stage returned unparsable content, using fallback strategy", "err", err)
		return fallbackPlan(analysis, query), true
	}

	if plan.VectorQuery == "" {
		plan.VectorQuery = query
	}
	if plan.TopK == 0 {
		plan.TopK = 7
	}
	if plan.SearchStrategy == "" {
		plan.SearchStrategy = "focused_refinement"
	}
	return plan, false
}
