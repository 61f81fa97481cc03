package retrieval

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/poiesic/voyant/core"
)

func TestRelationWeight(t *testing.T) {
	assert.Equal(t, 1.0, RelationWeight("Located_In"))
	assert.Equal(t, 0.9, RelationWeight("Connected_To"))
	assert.Equal(t, 0.5, RelationWeight("Related_To"))
	assert.Equal(t, 0.5, RelationWeight("Totally_Unknown"))
	assert.Equal(t, 0.5, RelationWeight(""))
}

func TestRankFactsOrdersByScore(t *testing.T) {
	facts := []core.GraphFact{
		{TargetID: "a", Relation: "Related_To", TargetName: "plain place"},
		{TargetID: "b", Relation: "Located_In", TargetName: "capital city"},
		{TargetID: "c", Relation: "Near", TargetName: "beach resort", TargetDescription: "beach with white sand"},
	}

	ranked := RankFacts(facts, []string{"beach"})

	// c: 0.8 + 0.3 (description) + 0.2 (name) = 1.3; b: 1.0; a: 0.5
	assert.Equal(t, "c", ranked[0].TargetID)
	assert.Equal(t, "b", ranked[1].TargetID)
	assert.Equal(t, "a", ranked[2].TargetID)
}

func TestRankFactsKeywordMatchingIsCaseInsensitive(t *testing.T) {
	facts := []core.GraphFact{
		{TargetID: "a", Relation: "Related_To", TargetName: "Night Market", TargetDescription: "Famous FOOD stalls"},
		{TargetID: "b", Relation: "Related_To", TargetName: "City Hall"},
	}

	ranked := RankFacts(facts, []string{"Food", "market"})

	assert.Equal(t, "a", ranked[0].TargetID)
}

func TestRankFactsStableForEqualScores(t *testing.T) {
	facts := []core.GraphFact{
		{TargetID: "first", Relation: "Near"},
		{TargetID: "second", Relation: "Near"},
		{TargetID: "third", Relation: "Near"},
	}

	ranked := RankFacts(facts, nil)

	assert.Equal(t, "first", ranked[0].TargetID)
	assert.Equal(t, "second", ranked[1].TargetID)
	assert.Equal(t, "third", ranked[2].TargetID)
}

func TestRankFactsCapsAtTwenty(t *testing.T) {
	facts := make([]core.GraphFact, 35)
	for i := range facts {
		facts[i] = core.GraphFact{TargetID: fmt.Sprintf("node-%d", i), Relation: "Near"}
	}

	ranked := RankFacts(facts, nil)

	assert.Len(t, ranked, 20)
}

func TestRankFactsEmptyInput(t *testing.T) {
	assert.Empty(t, RankFacts(nil, []string{"beach"}))
}
