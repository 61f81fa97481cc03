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


// Package ai provides abstractions for the AI collaborators used in Voyant.
//
// This package defines interfaces for text embeddings and chat completion.
// It follows the dependency inversion principle, allowing the retrieval and
// agent packages to depend on abstractions rather than concrete services.
//
// # Design Principles
//
// The package is designed around three key interfaces:
//
//   - Embedder: Generates vector embeddings from text
//   - Generator: Produces chat completions, complete or streamed
//   - Provider: Aggregates AI services for convenient initialization
//
// # Implementation Packages
//
// The ai package includes two implementation sub-packages:
//
//   - ai/openai: Production implementation using OpenAI-compatible APIs
//   - ai/mock: Test doubles for unit testing without external services
//
// Public constructors (openai.NewProvider, openai.NewEmbedder, etc.) return
// interface types to enforce abstraction. Test utility constructors
// (mock.NewMockEmbedder, mock.NewMockGenerator) return concrete types to
// enable behavior injection and call-count assertions.
//
// # Streaming
//
// Generator supports two consumption modes sharing one contract: Complete
// returns the final text, Stream returns a TokenStream handle producing a
// finite, non-restartable sequence of text fragments. The caller chooses the
// mode; retry and fallback behavior on the initial call is identical (see
// the retrieval package).
package ai
