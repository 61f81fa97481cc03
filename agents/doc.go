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


// Package agents implements the multi-stage generation pipeline:
// analyze, plan, draft, enrich, verify. Each stage is a single
// request/response round trip against the chat generator with a strict
// structured contract and a documented fallback, so a misbehaving stage
// degrades its own output without failing the pipeline.
//
// The verifier never triggers regeneration; when it reports invalidity
// with correction text, the corrections are appended to the final
// response as a visible addendum.
package agents
