package core

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier derived from content.
// It is used as the key space for the embedding cache.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Query is a single free-text travel question.
type Query struct {
	Text      string
	Timestamp time.Time
}

// TravelStyle classifies the dominant style of a travel query.
type TravelStyle string

const (
	StyleRomantic  TravelStyle = "romantic"
	StyleAdventure TravelStyle = "adventure"
	StyleFood      TravelStyle = "food"
	StyleBeach     TravelStyle = "beach"
	StyleCulture   TravelStyle = "culture"
)

// Intent is the structured travel intent extracted from a query.
// A zero Style means no style rule matched; a zero DurationDays means
// the query did not specify a trip length.
type Intent struct {
	Style        TravelStyle
	DurationDays int
	Keywords     []string
	EntityTypes  []string
}

// MatchMetadata carries the descriptive fields stored alongside a vector.
type MatchMetadata struct {
	Name        string
	Type        string
	City        string
	Description string
	Tags        []string
}

// VectorMatch is one hit from the vector similarity index.
type VectorMatch struct {
	ID       string
	Score    float32
	Metadata MatchMetadata
}

// GraphFact is one edge traversal result from the knowledge graph.
// Descriptions are truncated at ingest so prompt assembly stays bounded.
type GraphFact struct {
	SourceID          string
	Relation          string
	TargetID          string
	TargetName        string
	TargetDescription string
	TargetLabels      []string
}

// FusedRank is a combined ranking entry produced by reciprocal rank fusion.
type FusedRank struct {
	NodeID string
	Score  float64
}

// EvidenceSet is the combined, fused and filtered retrieval output that
// grounds generation. It is assembled once per query and passed by
// reference into prompt construction and the agent pipeline.
type EvidenceSet struct {
	Matches []VectorMatch
	Facts   []GraphFact
	Intent  Intent
}

// StageTimings is the per-stage wall-clock breakdown of a single query.
// Every result carries one regardless of which branch was taken.
type StageTimings struct {
	Embedding  time.Duration
	Vector     time.Duration
	Graph      time.Duration
	Fusion     time.Duration
	Generation time.Duration
	Total      time.Duration
}
