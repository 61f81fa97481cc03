package voyant

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/voyant/ai"
	"github.com/poiesic/voyant/ai/mock"
	"github.com/poiesic/voyant/core"
)

type scriptedIndex struct {
	matches []core.VectorMatch
}

func (s *scriptedIndex) Query(ctx context.Context, vector []float32, topK int) ([]core.VectorMatch, error) {
	return s.matches, nil
}

type scriptedGraph struct {
	facts []core.GraphFact
}

func (s *scriptedGraph) Neighbors(ctx context.Context, nodeIDs []string) ([]core.GraphFact, error) {
	return s.facts, nil
}

func newTestAssistant(t *testing.T, generator *mock.MockGenerator) *Assistant {
	t.Helper()

	idx := &scriptedIndex{matches: []core.VectorMatch{
		{ID: "hoi_an", Score: 0.9, Metadata: core.MatchMetadata{Name: "Hoi An", Type: "City"}},
	}}
	store := &scriptedGraph{facts: []core.GraphFact{
		{SourceID: "hoi_an", Relation: "Has_Restaurant", TargetID: "morning_glory", TargetName: "Morning Glory"},
	}}

	assistant, err := NewWithCollaborators(mock.NewMockEmbedder(), generator, idx, store)
	require.NoError(t, err)
	t.Cleanup(func() { assistant.Close() })
	return assistant
}

func TestAssistantAnswer(t *testing.T) {
	generator := mock.NewMockGenerator("Spend your evenings by the lantern-lit river in Hoi An.")
	assistant := newTestAssistant(t, generator)

	result, err := assistant.Answer(context.Background(), "romantic weekend", false)
	require.NoError(t, err)

	assert.False(t, result.Degraded)
	assert.Contains(t, result.Answer, "Hoi An")
	assert.NotEmpty(t, result.Evidence.Matches)
}

func TestAssistantPlan(t *testing.T) {
	generator := mock.NewMockGenerator(
		`{"intent": "food", "duration_days": 3, "budget_usd": 500}`,
		`{"vector_query": "food tour", "top_k": 5, "search_strategy": "constraint_based"}`,
		"Day 1: Morning Glory\nDay 2: Market\nDay 3: Cooking class",
		"### Practical Tips\nBudget around $160/day.",
		`{"is_valid": true, "errors": [], "warnings": [], "score": 90}`,
	)
	assistant := newTestAssistant(t, generator)

	report, err := assistant.Plan(context.Background(), "3 day food trip budget $500")
	require.NoError(t, err)

	assert.Equal(t, "food", report.Analysis.Intent)
	assert.Equal(t, 3, report.Analysis.DurationDays)
	assert.Contains(t, report.Response, "Day 1")
	assert.Len(t, report.StageLogs, 5)
}

func TestAssistantPlanRecoversFromPanic(t *testing.T) {
	generator := mock.NewMockGenerator()
	generator.CompleteFunc = func(ctx context.Context, req ai.GenerateRequest) (string, error) {
		panic("stage exploded")
	}
	assistant := newTestAssistant(t, generator)

	report, err := assistant.Plan(context.Background(), "weekend trip")
	require.NoError(t, err)

	assert.Contains(t, report.Response, "An unexpected error occurred")
	assert.Contains(t, report.Response, "stage exploded")
}

func TestAssistantPlanEmptyQuery(t *testing.T) {
	assistant := newTestAssistant(t, mock.NewMockGenerator())

	_, err := assistant.Plan(context.Background(), "")
	assert.ErrorIs(t, err, core.ErrEmptyQuery)
}
