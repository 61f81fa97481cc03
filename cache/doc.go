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


// Package cache provides embedding caches keyed by content fingerprint.
//
// Two stores are available: an in-memory bounded cache backed by ristretto
// and a persistent cache backed by BadgerDB. Either can be placed behind
// the embedder via CachingEmbedder so repeated queries skip the embedding
// round trip entirely.
package cache
