package agents

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"no fence", `{"a": 1}`, `{"a": 1}`},
		{"plain fence", "```\n{\"a\": 1}\n```", `{"a": 1}`},
		{"json fence", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"unclosed fence", "```json\n{\"a\": 1}", `{"a": 1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stripCodeFence(tt.content))
		})
	}
}

func TestDecodeStageJSONPlain(t *testing.T) {
	var plan Plan
	err := decodeStageJSON(`{"vector_query": "romantic spots", "top_k": 7}`, &plan)

	require.NoError(t, err)
	assert.Equal(t, "romantic spots", plan.VectorQuery)
	assert.Equal(t, 7, plan.TopK)
}

func TestDecodeStageJSONFenced(t *testing.T) {
	var plan Plan
	err := decodeStageJSON("```json\n{\"search_strategy\": \"broad_discovery\"}\n```", &plan)

	require.NoError(t, err)
	assert.Equal(t, "broad_discovery", plan.SearchStrategy)
}

func TestDecodeStageJSONRepairsMissingKeyQuote(t *testing.T) {
	var validation Validation
	err := decodeStageJSON(`{is_valid": true, score": 90}`, &validation)

	require.NoError(t, err)
	assert.True(t, validation.IsValid)
	assert.Equal(t, 90, validation.Score)
}

func TestDecodeStageJSONRejectsGarbage(t *testing.T) {
	var analysis Analysis
	err := decodeStageJSON("I'd be happy to help you plan a trip!", &analysis)

	assert.Error(t, err)
}
