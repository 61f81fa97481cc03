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


// Package voyant is a hybrid travel assistant: queries are answered by
// fusing a vector similarity index with a knowledge graph and grounding
// generation in the fused evidence. The top-level Assistant wires the
// AI provider, embedding cache, retrieval orchestrator and multi-stage
// agent pipeline together; the subpackages remain usable on their own.
package voyant

import (
	"context"
	"log/slog"

	"github.com/poiesic/voyant/agents"
	"github.com/poiesic/voyant/ai"
	"github.com/poiesic/voyant/ai/openai"
	"github.com/poiesic/voyant/cache"
	"github.com/poiesic/voyant/graph"
	"github.com/poiesic/voyant/graph/neo4j"
	"github.com/poiesic/voyant/index"
	"github.com/poiesic/voyant/index/pinecone"
	"github.com/poiesic/voyant/retrieval"
)

// Config gathers the collaborator settings for a production Assistant.
type Config struct {
	// AI configures the embedding and chat completion services.
	AI *ai.Config

	// Pinecone configures the vector index.
	Pinecone pinecone.Config

	// Neo4j configures the knowledge graph store.
	Neo4j neo4j.Config

	// CachePath is the directory for the persistent embedding cache.
	// Empty selects a bounded in-memory cache instead.
	CachePath string

	// TopK is the vector match count per query. Zero selects the default.
	TopK int
}

// Assistant is the assembled travel assistant.
type Assistant struct {
	provider     ai.Provider
	vectorCache  cache.VectorCache
	graphStore   graph.Store
	orchestrator *retrieval.Orchestrator
	pipeline     *agents.Pipeline
	logger       *slog.Logger

	closers []func() error
}

// New assembles a production Assistant from the config: OpenAI-compatible
// provider, cached embedder, Pinecone index, Neo4j graph store,
// retrieval orchestrator and agent pipeline.
func New(ctx context.Context, cfg Config) (*Assistant, error) {
	if cfg.AI == nil {
		cfg.AI = ai.DefaultConfig()
	}

	provider, err := openai.NewProvider(cfg.AI)
	if err != nil {
		return nil, err
	}

	var store cache.VectorCache
	if cfg.CachePath != "" {
		store, err = cache.OpenBadgerCache(cfg.CachePath, false)
	} else {
		store, err = cache.NewMemoryCache(0)
	}
	if err != nil {
		provider.Close()
		return nil, err
	}

	idx, err := pinecone.New(cfg.Pinecone)
	if err != nil {
		store.Close()
		provider.Close()
		return nil, err
	}

	graphStore, err := neo4j.NewStore(ctx, cfg.Neo4j)
	if err != nil {
		store.Close()
		provider.Close()
		return nil, err
	}

	assistant, err := newAssistant(
		cache.NewCachingEmbedder(provider.Embedder(), store),
		provider.Generator(),
		idx,
		graphStore,
		cfg.TopK,
	)
	if err != nil {
		graphStore.Close(ctx)
		store.Close()
		provider.Close()
		return nil, err
	}

	assistant.provider = provider
	assistant.vectorCache = store
	assistant.closers = append(assistant.closers,
		func() error { return graphStore.Close(context.Background()) },
		store.Close,
		provider.Close,
	)
	return assistant, nil
}

// NewWithCollaborators assembles an Assistant over externally constructed
// collaborators. Intended for tests and embedding into larger systems
// that manage their own connections.
func NewWithCollaborators(embedder ai.Embedder, generator ai.Generator, idx index.Index, store graph.Store) (*Assistant, error) {
	return newAssistant(embedder, generator, idx, store, 0)
}

func newAssistant(embedder ai.Embedder, generator ai.Generator, idx index.Index, store graph.Store, topK int) (*Assistant, error) {
	var orchOpts []retrieval.Option
	if topK > 0 {
		orchOpts = append(orchOpts, retrieval.WithTopK(topK))
	}

	orchestrator, err := retrieval.NewOrchestrator(embedder, generator, idx, store, orchOpts...)
	if err != nil {
		return nil, err
	}

	pipeline, err := agents.NewPipeline(generator)
	if err != nil {
		orchestrator.Close()
		return nil, err
	}

	return &Assistant{
		graphStore:   store,
		orchestrator: orchestrator,
		pipeline:     pipeline,
		logger:       slog.Default(),
	}, nil
}

// Answer runs the grounded-answer path. With stream set, the result
// carries a token stream the caller drains.
func (a *Assistant) Answer(ctx context.Context, query string, stream bool) (*retrieval.Result, error) {
	return a.orchestrator.Answer(ctx, query, stream)
}

// Plan runs retrieval and then the five-stage agent pipeline, producing a
// structured itinerary report grounded in the retrieved evidence.
func (a *Assistant) Plan(ctx context.Context, query string) (*agents.Report, error) {
	ret, err := a.orchestrator.Retrieve(ctx, query)
	if err != nil {
		return nil, err
	}
	return a.pipeline.Run(ctx, query, ret.Evidence), nil
}

// Close releases the orchestrator pool and any resources New opened.
func (a *Assistant) Close() error {
	a.orchestrator.Close()

	var firstErr error
	for _, closer := range a.closers {
		if err := closer(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
