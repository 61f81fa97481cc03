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

import "time"

// Analysis is the structured interpretation of the user query produced by
// the analyze stage. Fields the collaborator leaves empty are filled with
// defaults before the analysis is passed downstream.
type Analysis struct {
	Intent              string   `json:"intent"`
	DurationDays        int      `json:"duration_days"`
	BudgetUSD           int      `json:"budget_usd"`
	BudgetLevel         string   `json:"budget_level"`
	Pace                string   `json:"pace"`
	GroupType           string   `json:"group_type"`
	MustInclude         []string `json:"must_include"`
	MustAvoid           []string `json:"must_avoid"`
	Preferences         []string `json:"preferences"`
	SpecialRequirements []string `json:"special_requirements"`
}

// GraphFilters lists entity categories to include or exclude in a
// planned graph search.
type GraphFilters struct {
	Include []string `json:"include"`
	Exclude []string `json:"exclude"`
}

// Plan is the retrieval strategy produced by the plan stage. It is
// informational in the current design: retrieval has already run by the
// time the pipeline starts, and the plan documents intended strategy for
// inspection and future extension.
type Plan struct {
	VectorQuery    string       `json:"vector_query"`
	GraphFilters   GraphFilters `json:"graph_filters"`
	TopK           int          `json:"top_k"`
	PriorityNodes  []string     `json:"priority_nodes"`
	SearchStrategy string       `json:"search_strategy"`
}

// Validation is the verify stage's quality report over the combined
// itinerary and logistics text.
type Validation struct {
	IsValid           bool     `json:"is_valid"`
	Errors            []string `json:"errors"`
	Warnings          []string `json:"warnings"`
	Score             int      `json:"score"`
	Corrections       string   `json:"corrections"`
	ValidationSummary string   `json:"validation_summary"`
}

// StageLog records one completed stage. FallbackApplied distinguishes a
// collaborator that succeeded (possibly with defaults filled in) from one
// that failed and had its documented fallback substituted.
type StageLog struct {
	Stage           string
	Detail          string
	Elapsed         time.Duration
	FallbackApplied bool
}

// Report is the terminal artifact of one pipeline run.
type Report struct {
	// Response is the combined itinerary and logistics text, with a
	// corrections addendum when the verifier found it invalid.
	Response string

	Analysis   Analysis
	Plan       Plan
	Itinerary  string
	Logistics  string
	Validation Validation

	StageLogs []StageLog
}

// fallbackApplied reports whether the named stage substituted its fallback.
func (r *Report) fallbackApplied(stage string) bool {
	for _, log := range r.StageLogs {
		if log.Stage == stage {
			return log.FallbackApplied
		}
	}
	return false
}

// AnalysisFallback reports whether the analyze stage fell back to defaults.
func (r *Report) AnalysisFallback() bool { return r.fallbackApplied(stageAnalyze) }

// PlanFallback reports whether the plan stage fell back to the
// duration-derived strategy.
func (r *Report) PlanFallback() bool { return r.fallbackApplied(stagePlan) }

// ValidationFallback reports whether the verify stage fell back to the
// permissive default report.
func (r *Report) ValidationFallback() bool { return r.fallbackApplied(stageVerify) }
