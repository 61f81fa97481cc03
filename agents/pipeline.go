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
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/poiesic/voyant/ai"
	"github.com/poiesic/voyant/core"
)

// ErrGeneratorRequired is returned when a generator is not provided.
var ErrGeneratorRequired = errors.New("generator required")

const (
	stageAnalyze = "analyze"
	stagePlan    = "plan"
	stageDraft   = "draft"
	stageEnrich  = "enrich"
	stageVerify  = "verify"
)

// Pipeline runs the five generation stages in sequence.
// Safe for concurrent use.
type Pipeline struct {
	generator ai.Generator
	logger    *slog.Logger
}

// PipelineOption configures a Pipeline.
type PipelineOption func(*Pipeline) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) PipelineOption {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a pipeline over the given generator.
func NewPipeline(generator ai.Generator, opts ...PipelineOption) (*Pipeline, error) {
	if generator == nil {
		return nil, ErrGeneratorRequired
	}

	p := &Pipeline{
		generator: generator,
		logger:    slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}

	return p, nil
}

// Run executes all five stages against the query and evidence set and
// returns the terminal report. Stage failures substitute documented
// fallbacks; Run itself never fails once started. A panic escaping a
// stage becomes a report whose Response carries the error text.
func (p *Pipeline) Run(ctx context.Context, query string, evidence core.EvidenceSet) (report *Report) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("critical failure running pipeline", "panic", r)
			if report == nil {
				report = &Report{}
			}
			report.Response = fmt.Sprintf("An unexpected error occurred: %v. Please try again.", r)
		}
	}()

	report = &Report{}
	evidenceContext := BuildContext(evidence)

	logStage := func(stage, detail string, fellBack bool, start time.Time) {
		report.StageLogs = append(report.StageLogs, StageLog{
			Stage:           stage,
			Detail:          detail,
			Elapsed:         time.Since(start),
			FallbackApplied: fellBack,
		})
	}

	// 1. Analyze
	stageStart := time.Now()
	analysis, fellBack := p.analyze(ctx, query)
	report.Analysis = analysis
	logStage(stageAnalyze, fmt.Sprintf("intent=%s duration=%d", analysis.Intent, analysis.DurationDays), fellBack, stageStart)

	// 2. Plan (informational; retrieval has already run)
	stageStart = time.Now()
	plan, fellBack := p.plan(ctx, analysis, query)
	report.Plan = plan
	logStage(stagePlan, fmt.Sprintf("strategy=%s top_k=%d", plan.SearchStrategy, plan.TopK), fellBack, stageStart)

	// 3. Draft
	stageStart = time.Now()
	itinerary, fellBack := p.draft(ctx, analysis, evidenceContext, query)
	report.Itinerary = itinerary
	logStage(stageDraft, fmt.Sprintf("itinerary=%d chars", len(itinerary)), fellBack, stageStart)

	// 4. Enrich
	stageStart = time.Now()
	logistics, fellBack := p.enrich(ctx, analysis, itinerary, query)
	report.Logistics = logistics
	logStage(stageEnrich, fmt.Sprintf("logistics=%d chars", len(logistics)), fellBack, stageStart)

	// 5. Verify
	stageStart = time.Now()
	validation, fellBack := p.verify(ctx, analysis, itinerary, logistics, query)
	report.Validation = validation
	logStage(stageVerify, fmt.Sprintf("valid=%t score=%d", validation.IsValid, validation.Score), fellBack, stageStart)

	// Verification never re-triggers drafting; corrections surface as a
	// visible addendum instead.
	report.Response = itinerary + "\n\n" + logistics
	if !validation.IsValid && validation.Corrections != "" {
		report.Response += "\n\n### Corrections Applied:\n" + validation.Corrections
	}

	p.logger.Info("pipeline complete",
		"intent", analysis.Intent,
		"score", validation.Score,
		"valid", validation.IsValid)

	return report
}
