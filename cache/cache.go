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


package cache

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/poiesic/voyant/ai"
	"github.com/poiesic/voyant/core"
)

// ErrMalformedVector indicates a stored vector payload whose length is not
// a whole number of float32 values.
var ErrMalformedVector = errors.New("malformed vector payload")

// Fingerprint returns the cache key for a piece of text.
// Leading and trailing whitespace is stripped before hashing so trivially
// padded variants of the same query share a key.
func Fingerprint(text string) core.ID {
	return core.IDFromContent(strings.TrimSpace(text))
}

// VectorCache stores embedding vectors keyed by content fingerprint.
// Implementations must be safe for concurrent use. Returned vectors are
// shared; callers must not mutate them.
type VectorCache interface {
	// Get returns the cached vector for the key, if present.
	Get(key core.ID) ([]float32, bool)

	// Put stores the vector under the key, replacing any prior entry.
	Put(key core.ID, vector []float32) error

	// Close releases resources held by the cache.
	Close() error
}

// CachingEmbedder wraps an Embedder with a VectorCache.
// Embedding the same text twice calls the inner embedder exactly once.
type CachingEmbedder struct {
	inner  ai.Embedder
	store  VectorCache
	logger *slog.Logger
}

var _ ai.Embedder = (*CachingEmbedder)(nil)

// NewCachingEmbedder wraps the inner embedder with the given cache.
func NewCachingEmbedder(inner ai.Embedder, store VectorCache) *CachingEmbedder {
	return &CachingEmbedder{
		inner:  inner,
		store:  store,
		logger: slog.Default(),
	}
}

// EmbedText returns the cached vector for the text, embedding and storing
// it on a miss.
func (e *CachingEmbedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	key := Fingerprint(text)
	if vector, ok := e.store.Get(key); ok {
		e.logger.Debug("embedding cache hit", "key", uint64(key))
		return vector, nil
	}

	vector, err := e.inner.EmbedText(ctx, text)
	if err != nil {
		return nil, err
	}

	if err := e.store.Put(key, vector); err != nil {
		// A store failure degrades to pass-through; the embedding is still valid.
		e.logger.Warn("embedding cache store failed", "key", uint64(key), "error", err)
	}
	return vector, nil
}

// EmbedTexts returns vectors for all texts in input order, batching the
// misses into a single inner call.
func (e *CachingEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))

	var missing []string
	var missingIdx []int
	for i, text := range texts {
		if vector, ok := e.store.Get(Fingerprint(text)); ok {
			vectors[i] = vector
			continue
		}
		missing = append(missing, text)
		missingIdx = append(missingIdx, i)
	}

	if len(missing) == 0 {
		return vectors, nil
	}

	embedded, err := e.inner.EmbedTexts(ctx, missing)
	if err != nil {
		return nil, err
	}

	for j, idx := range missingIdx {
		vectors[idx] = embedded[j]
		key := Fingerprint(texts[idx])
		if err := e.store.Put(key, embedded[j]); err != nil {
			e.logger.Warn("embedding cache store failed", "key", uint64(key), "error", err)
		}
	}
	return vectors, nil
}
