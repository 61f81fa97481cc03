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
	"sort"

	"github.com/poiesic/voyant/core"
)

const (
	// DefaultFusionK is the RRF smoothing constant (Cormack et al., 2009).
	DefaultFusionK = 60

	// maxFusedNodes caps the fused ids used to filter graph facts.
	maxFusedNodes = 20
)

// Fuse merges the vector ranking and the graph facts into one ordering via
// reciprocal rank fusion: each source contributes 1/(k+rank) per item at
// its 1-based rank, and contributions for the same node id sum across
// sources. Graph facts carry no ranking of their own, so one is
// synthesized first: unique target and source ids (relations are treated
// as bidirectional here) are ranked by their relation weight. The output
// is sorted by fused score descending, contains no duplicate ids, and
// covers only ids present in at least one source.
func Fuse(matches []core.VectorMatch, facts []core.GraphFact, k int) []core.FusedRank {
	if k <= 0 {
		k = DefaultFusionK
	}

	scores := make(map[string]float64)

	for rank, match := range matches {
		if match.ID == "" {
			continue
		}
		scores[match.ID] += 1.0 / float64(k+rank+1)
	}

	for rank, nodeID := range synthesizeGraphRanking(facts) {
		scores[nodeID] += 1.0 / float64(k+rank+1)
	}

	fused := make([]core.FusedRank, 0, len(scores))
	for nodeID, score := range scores {
		fused = append(fused, core.FusedRank{NodeID: nodeID, Score: score})
	}

	// Secondary order on node id keeps equal scores deterministic.
	sort.Slice(fused, func(i, j int) bool {
		if fused[i].Score != fused[j].Score {
			return fused[i].Score > fused[j].Score
		}
		return fused[i].NodeID < fused[j].NodeID
	})

	return fused
}

// synthesizeGraphRanking orders the unique node ids appearing in the facts
// by relation weight. A target id carries the weight of the first edge
// that introduced it; a source id seen only as an edge origin has no
// relation of its own and gets the default weight.
func synthesizeGraphRanking(facts []core.GraphFact) []string {
	type node struct {
		id     string
		weight float64
	}

	seen := make(map[string]bool)
	var nodes []node

	for _, fact := range facts {
		if fact.TargetID != "" && !seen[fact.TargetID] {
			seen[fact.TargetID] = true
			nodes = append(nodes, node{id: fact.TargetID, weight: RelationWeight(fact.Relation)})
		}
		if fact.SourceID != "" && !seen[fact.SourceID] {
			seen[fact.SourceID] = true
			nodes = append(nodes, node{id: fact.SourceID, weight: defaultRelationWeight})
		}
	}

	sort.SliceStable(nodes, func(i, j int) bool {
		return nodes[i].weight > nodes[j].weight
	})

	ranking := make([]string, len(nodes))
	for i, n := range nodes {
		ranking[i] = n.id
	}
	return ranking
}

// FilterFactsByFused keeps only facts whose source or target id appears in
// the fused top set, preserving input order.
func FilterFactsByFused(facts []core.GraphFact, fused []core.FusedRank) []core.GraphFact {
	limit := len(fused)
	if limit > maxFusedNodes {
		limit = maxFusedNodes
	}

	top := make(map[string]bool, limit)
	for _, rank := range fused[:limit] {
		top[rank.NodeID] = true
	}

	filtered := make([]core.GraphFact, 0, len(facts))
	for _, fact := range facts {
		if top[fact.TargetID] || top[fact.SourceID] {
			filtered = append(filtered, fact)
		}
	}
	return filtered
}
