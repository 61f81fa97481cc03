package retrieval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/voyant/core"
)

func TestFuseSingleSourceScore(t *testing.T) {
	matches := []core.VectorMatch{
		{ID: "a"},
		{ID: "b"},
	}

	fused := Fuse(matches, nil, 60)
	require.Len(t, fused, 2)

	// Item at 1-based rank r in exactly one source scores 1/(k+r).
	assert.InDelta(t, 1.0/61.0, fused[0].Score, 1e-12)
	assert.Equal(t, "a", fused[0].NodeID)
	assert.InDelta(t, 1.0/62.0, fused[1].Score, 1e-12)
	assert.Equal(t, "b", fused[1].NodeID)
}

func TestFuseSumsAcrossSources(t *testing.T) {
	matches := []core.VectorMatch{{ID: "shared"}}
	facts := []core.GraphFact{
		{SourceID: "origin", Relation: "Located_In", TargetID: "shared"},
	}

	fused := Fuse(matches, facts, 60)

	scores := make(map[string]float64)
	for _, r := range fused {
		scores[r.NodeID] = r.Score
	}

	// "shared" ranks first in both sources: 1/61 from each.
	assert.InDelta(t, 2.0/61.0, scores["shared"], 1e-12)
	// "origin" only appears as a graph source node at synthetic rank 2.
	assert.InDelta(t, 1.0/62.0, scores["origin"], 1e-12)
}

func TestFuseNoDuplicatesAndSorted(t *testing.T) {
	matches := []core.VectorMatch{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	facts := []core.GraphFact{
		{SourceID: "a", Relation: "Located_In", TargetID: "d"},
		{SourceID: "b", Relation: "Near", TargetID: "d"},
		{SourceID: "c", Relation: "Related_To", TargetID: "e"},
	}

	fused := Fuse(matches, facts, 60)

	seen := make(map[string]bool)
	for i, rank := range fused {
		assert.False(t, seen[rank.NodeID], "duplicate node id %s", rank.NodeID)
		seen[rank.NodeID] = true
		if i > 0 {
			assert.GreaterOrEqual(t, fused[i-1].Score, rank.Score)
		}
	}
}

func TestFuseNoFabricatedIDs(t *testing.T) {
	matches := []core.VectorMatch{{ID: "a"}}
	facts := []core.GraphFact{{SourceID: "a", Relation: "Near", TargetID: "b"}}

	fused := Fuse(matches, facts, 60)

	for _, rank := range fused {
		assert.Contains(t, []string{"a", "b"}, rank.NodeID)
	}
}

func TestFuseGraphRankingFollowsRelationWeight(t *testing.T) {
	// Higher relation weight earns a better synthetic rank and thus a
	// larger RRF contribution.
	facts := []core.GraphFact{
		{TargetID: "loose", Relation: "Related_To"},
		{TargetID: "tight", Relation: "Located_In"},
	}

	fused := Fuse(nil, facts, 60)
	require.Len(t, fused, 2)

	assert.Equal(t, "tight", fused[0].NodeID)
	assert.Equal(t, "loose", fused[1].NodeID)
}

func TestFilterFactsByFused(t *testing.T) {
	facts := []core.GraphFact{
		{SourceID: "a", TargetID: "x"},
		{SourceID: "b", TargetID: "y"},
		{SourceID: "c", TargetID: "z"},
	}
	fused := []core.FusedRank{
		{NodeID: "x", Score: 0.5},
		{NodeID: "b", Score: 0.4},
	}

	filtered := FilterFactsByFused(facts, fused)

	require.Len(t, filtered, 2)
	assert.Equal(t, "x", filtered[0].TargetID)
	assert.Equal(t, "b", filtered[1].SourceID)
}

func TestFilterFactsByFusedUsesTopTwentyOnly(t *testing.T) {
	fused := make([]core.FusedRank, 25)
	for i := range fused {
		fused[i] = core.FusedRank{NodeID: nodeID(i), Score: 1.0 / float64(i+1)}
	}
	facts := []core.GraphFact{
		{TargetID: nodeID(0)},
		{TargetID: nodeID(24)},
	}

	filtered := FilterFactsByFused(facts, fused)

	require.Len(t, filtered, 1)
	assert.Equal(t, nodeID(0), filtered[0].TargetID)
}

func nodeID(i int) string {
	return string(rune('a'+i/10)) + string(rune('0'+i%10))
}
