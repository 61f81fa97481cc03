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


// Package graph defines the knowledge graph abstraction.
//
// The retrieval pipeline depends only on the Store interface; the neo4j
// subpackage provides the production implementation.
package graph

import (
	"context"

	"github.com/poiesic/voyant/core"
)

// Store exposes one-hop neighborhood traversal over the destination
// knowledge graph. Implementations must be safe for concurrent use.
type Store interface {
	// Neighbors returns facts for edges touching any of the given node ids.
	// An empty id set returns no facts and performs no traversal.
	Neighbors(ctx context.Context, nodeIDs []string) ([]core.GraphFact, error)
}
