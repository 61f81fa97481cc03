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


// Package index defines the vector similarity index abstraction.
//
// The retrieval pipeline depends only on the Index interface; the pinecone
// subpackage provides the production implementation.
package index

import (
	"context"

	"github.com/poiesic/voyant/core"
)

// Index performs approximate nearest neighbor search over embedded
// destination content. Implementations must be safe for concurrent use.
type Index interface {
	// Query returns up to topK matches for the vector, best first.
	Query(ctx context.Context, vector []float32, topK int) ([]core.VectorMatch, error)
}
