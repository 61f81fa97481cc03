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


package retrieval

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/poiesic/voyant/ai"
	"github.com/poiesic/voyant/core"
	"github.com/poiesic/voyant/graph"
	"github.com/poiesic/voyant/index"
	"github.com/poiesic/voyant/retry"
)

// DefaultTopK is the default vector match count per query.
const DefaultTopK = 5

// ApologyNoEvidence is returned when both retrieval sources come back
// empty; generation is skipped entirely so the answer stays grounded.
const ApologyNoEvidence = "I apologize, but I couldn't retrieve enough information to answer your question. Please try rephrasing or try again."

// apologyGeneration is returned when the generation call fails after retries.
const apologyGeneration = "I apologize, but I'm having trouble generating a response right now. Please try again."

// Result is the outcome of one answered query. Exactly one of Answer and
// Stream is populated on the happy path; Degraded results always carry an
// Answer. Timings are filled regardless of which branch was taken.
type Result struct {
	Answer   string
	Stream   *ai.TokenStream
	Evidence core.EvidenceSet
	Degraded bool
	Timings  core.StageTimings
}

// Retrieval is the evidence-only output of the pipeline, for callers that
// run their own generation (the agent pipeline).
type Retrieval struct {
	Evidence core.EvidenceSet
	Timings  core.StageTimings
}

// Orchestrator sequences the hybrid retrieval pipeline over its
// collaborators. Safe for concurrent use.
type Orchestrator struct {
	embedder  ai.Embedder
	generator ai.Generator
	index     index.Index
	graph     graph.Store
	policy    retry.Policy
	topK      int
	fusionK   int
	pool      *ants.Pool
	logger    *slog.Logger
}

// Option configures an Orchestrator.
type Option func(*Orchestrator) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) error {
		if logger == nil {
			logger = slog.Default()
		}
		o.logger = logger
		return nil
	}
}

// WithRetryPolicy sets the retry policy applied to every network-bound stage.
func WithRetryPolicy(policy retry.Policy) Option {
	return func(o *Orchestrator) error {
		if policy.MaxAttempts <= 0 {
			return retry.ErrInvalidMaxAttempts
		}
		o.policy = policy
		return nil
	}
}

// WithTopK sets the vector match count requested per query.
func WithTopK(topK int) Option {
	return func(o *Orchestrator) error {
		if topK <= 0 {
			return core.ErrInvalidTopK
		}
		o.topK = topK
		return nil
	}
}

// NewOrchestrator creates an orchestrator over the given collaborators.
func NewOrchestrator(
	embedder ai.Embedder,
	generator ai.Generator,
	idx index.Index,
	store graph.Store,
	opts ...Option,
) (*Orchestrator, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if generator == nil {
		return nil, ErrGeneratorRequired
	}
	if idx == nil {
		return nil, ErrIndexRequired
	}
	if store == nil {
		return nil, ErrGraphRequired
	}

	pool, err := ants.NewPool(2)
	if err != nil {
		return nil, err
	}

	o := &Orchestrator{
		embedder:  embedder,
		generator: generator,
		index:     idx,
		graph:     store,
		policy:    retry.DefaultPolicy(),
		topK:      DefaultTopK,
		fusionK:   DefaultFusionK,
		pool:      pool,
		logger:    slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(o); err != nil {
			pool.Release()
			return nil, err
		}
	}

	// Retry attempts log through the orchestrator's logger unless the
	// policy carries its own.
	if o.policy.Logger == nil {
		o.policy.Logger = o.logger
	}

	return o, nil
}

// Close releases the orchestrator's worker pool.
func (o *Orchestrator) Close() {
	o.pool.Release()
}

// Retrieve runs the retrieval stages only and returns the fused evidence
// set. Stage failures degrade to empty contributions; an empty evidence
// set is a valid outcome, not an error. A panic escaping a collaborator
// degrades the whole retrieval to empty evidence.
func (o *Orchestrator) Retrieve(ctx context.Context, query string) (ret *Retrieval, err error) {
	if strings.TrimSpace(query) == "" {
		return nil, core.ErrEmptyQuery
	}
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			o.logger.Error("critical failure during retrieval", "panic", r)
			ret = &Retrieval{Timings: core.StageTimings{Total: time.Since(start)}}
			err = nil
		}
	}()
	ret = o.retrieve(ctx, query, &noopMonitor{})
	ret.Timings.Total = time.Since(start)
	return ret, nil
}

// Answer runs the full pipeline and generates a grounded answer.
// With stream set, the result carries a token stream instead of a final
// string and the caller accumulates tokens.
func (o *Orchestrator) Answer(ctx context.Context, query string, stream bool) (*Result, error) {
	return o.AnswerWithMonitor(ctx, query, stream, nil)
}

// AnswerWithMonitor runs the full pipeline with stage monitoring.
// The monitor receives callbacks at each stage of the retrieval process.
func (o *Orchestrator) AnswerWithMonitor(ctx context.Context, query string, stream bool, monitor Monitor) (result *Result, err error) {
	if strings.TrimSpace(query) == "" {
		return nil, core.ErrEmptyQuery
	}
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	start := time.Now()

	// Anything escaping the stage-level degradation paths becomes a
	// degraded user-facing result, never a process-level failure.
	defer func() {
		if r := recover(); r != nil {
			o.logger.Error("critical failure answering query", "panic", r)
			result = &Result{
				Answer:   fmt.Sprintf("An unexpected error occurred: %v. Please try again.", r),
				Degraded: true,
				Timings:  core.StageTimings{Total: time.Since(start)},
			}
			err = nil
		}
	}()

	ret := o.retrieve(ctx, query, monitor)
	timings := ret.Timings
	evidence := ret.Evidence

	if len(evidence.Matches) == 0 && len(evidence.Facts) == 0 {
		o.logger.Warn("no evidence retrieved, returning degraded result", "query", query)
		timings.Total = time.Since(start)
		return &Result{
			Answer:   ApologyNoEvidence,
			Evidence: evidence,
			Degraded: true,
			Timings:  timings,
		}, nil
	}

	req := BuildPrompt(query, evidence)
	genStart := time.Now()

	if stream {
		var tokens *ai.TokenStream
		genErr := o.policy.Do(ctx, func() error {
			s, serr := o.generator.Stream(ctx, req)
			if serr != nil {
				return serr
			}
			tokens = s
			return nil
		})
		timings.Generation = time.Since(genStart)
		timings.Total = time.Since(start)
		if genErr != nil {
			o.logger.Error("streaming generation failed", "err", genErr)
			return &Result{Answer: apologyGeneration, Evidence: evidence, Timings: timings}, nil
		}
		return &Result{Stream: tokens, Evidence: evidence, Timings: timings}, nil
	}

	var answer string
	genErr := o.policy.Do(ctx, func() error {
		text, cerr := o.generator.Complete(ctx, req)
		if cerr != nil {
			return cerr
		}
		answer = text
		return nil
	})
	timings.Generation = time.Since(genStart)
	timings.Total = time.Since(start)
	if genErr != nil {
		o.logger.Error("generation failed", "err", genErr)
		answer = apologyGeneration
	}
	return &Result{Answer: answer, Evidence: evidence, Timings: timings}, nil
}

// retrieve runs embed, vector query, intent extraction, graph query,
// fusion and reranking. Total time is left for the caller to stamp.
func (o *Orchestrator) retrieve(ctx context.Context, query string, monitor Monitor) *Retrieval {
	monitor.Start(query)

	var timings core.StageTimings

	// Intent extraction has no data dependency on retrieval and runs on
	// the worker pool alongside the embed and vector stages.
	var intent core.Intent
	var wg sync.WaitGroup
	wg.Add(1)
	intentTask := func() {
		defer wg.Done()
		intent = ExtractIntent(query)
	}
	if err := o.pool.Submit(intentTask); err != nil {
		intentTask()
	}

	// 1. Embed the query. Failure after retries makes the vector branch
	// empty; the graph branch still gets its chance below.
	embedStart := time.Now()
	var vector []float32
	embedErr := o.policy.Do(ctx, func() error {
		v, eerr := o.embedder.EmbedText(ctx, query)
		if eerr != nil {
			return eerr
		}
		vector = v
		return nil
	})
	timings.Embedding = time.Since(embedStart)

	var matches []core.VectorMatch
	vectorFailed := embedErr != nil
	if embedErr != nil {
		o.logger.Error("embedding failed after retries", "query", query, "err", embedErr)
	} else {
		monitor.AfterEmbedding(len(vector))

		vecStart := time.Now()
		vecErr := o.policy.Do(ctx, func() error {
			m, qerr := o.index.Query(ctx, vector, o.topK)
			if qerr != nil {
				return qerr
			}
			matches = m
			return nil
		})
		timings.Vector = time.Since(vecStart)
		if vecErr != nil {
			o.logger.Error("vector query failed after retries", "err", vecErr)
			matches = nil
			vectorFailed = true
		}
	}
	monitor.AfterVectorQuery(matches)

	wg.Wait()
	monitor.AfterIntentExtraction(intent)

	// 2. Graph query over the matched node ids. A vector success with
	// zero matches gives the graph nothing to expand and is skipped; a
	// vector failure still attempts the graph so one source staying down
	// cannot silence the other.
	ids := make([]string, 0, len(matches))
	for _, m := range matches {
		ids = append(ids, m.ID)
	}

	var facts []core.GraphFact
	if len(ids) > 0 || vectorFailed {
		graphStart := time.Now()
		graphErr := o.policy.Do(ctx, func() error {
			f, gerr := o.graph.Neighbors(ctx, ids)
			if gerr != nil {
				return gerr
			}
			facts = f
			return nil
		})
		timings.Graph = time.Since(graphStart)
		if graphErr != nil {
			o.logger.Error("graph query failed after retries", "err", graphErr)
			facts = nil
		}
	}
	monitor.AfterGraphQuery(facts)

	// 3. Fuse when both sources produced results; otherwise fall back to
	// keyword ranking of whatever the graph returned.
	fusionStart := time.Now()
	if len(matches) > 0 && len(facts) > 0 {
		fused := Fuse(matches, facts, o.fusionK)
		monitor.AfterFusion(fused)
		facts = RankFacts(FilterFactsByFused(facts, fused), intent.Keywords)
	} else {
		facts = RankFacts(facts, intent.Keywords)
	}
	timings.Fusion = time.Since(fusionStart)

	evidence := core.EvidenceSet{
		Matches: matches,
		Facts:   facts,
		Intent:  intent,
	}
	monitor.Finish(evidence)

	o.logger.Debug("retrieval complete",
		"matches", len(evidence.Matches),
		"facts", len(evidence.Facts),
		"style", intent.Style)

	return &Retrieval{Evidence: evidence, Timings: timings}
}
