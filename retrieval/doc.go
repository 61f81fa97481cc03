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


// Package retrieval implements the hybrid retrieval pipeline: intent
// extraction, dual-source retrieval over a vector index and a knowledge
// graph, reciprocal rank fusion of the two rankings, keyword-based
// relevance reranking, and grounded answer generation.
//
// The Orchestrator sequences the stages, applies a shared retry policy to
// every network-bound call, and degrades stage by stage rather than
// failing whole queries: a source that stays down after retries simply
// contributes no evidence, and only total evidence exhaustion produces a
// degraded (apology) result.
package retrieval
