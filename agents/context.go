package agents

import (
	"fmt"
	"strings"

	"github.com/poiesic/voyant/core"
)

const (
	contextMatchLimit     = 5
	contextFactLimit      = 15
	contextMatchDescLimit = 200
	contextFactDescLimit  = 150
	contextTagLimit       = 5
)

// BuildContext renders the evidence set as the shared context string
// consumed by the draft stage.
func BuildContext(evidence core.EvidenceSet) string {
	var parts []string

	if len(evidence.Matches) > 0 {
		parts = append(parts, "=== SEMANTIC SEARCH RESULTS ===")
		matches := evidence.Matches
		if len(matches) > contextMatchLimit {
			matches = matches[:contextMatchLimit]
		}
		for i, match := range matches {
			meta := match.Metadata
			parts = append(parts, fmt.Sprintf("\n%d. %s", i+1, orFallback(meta.Name, "Unknown")))
			parts = append(parts, "   Type: "+orFallback(meta.Type, "N/A"))
			parts = append(parts, "   City: "+orFallback(meta.City, "N/A"))
			parts = append(parts, "   Description: "+orFallback(truncate(meta.Description, contextMatchDescLimit), "N/A"))
			if len(meta.Tags) > 0 {
				tags := meta.Tags
				if len(tags) > contextTagLimit {
					tags = tags[:contextTagLimit]
				}
				parts = append(parts, "   Tags: "+strings.Join(tags, ", "))
			}
		}
	}

	if len(evidence.Facts) > 0 {
		parts = append(parts, "\n\n=== KNOWLEDGE GRAPH CONNECTIONS ===")
		facts := evidence.Facts
		if len(facts) > contextFactLimit {
			facts = facts[:contextFactLimit]
		}
		for i, fact := range facts {
			parts = append(parts, fmt.Sprintf("\n%d. %s", i+1, orFallback(fact.TargetName, "Unknown")))
			parts = append(parts, fmt.Sprintf("   Relationship: %s from %s", orFallback(fact.Relation, "N/A"), orFallback(fact.SourceID, "N/A")))
			parts = append(parts, "   Description: "+orFallback(truncate(fact.TargetDescription, contextFactDescLimit), "N/A"))
		}
	}

	return strings.Join(parts, "\n")
}

func orFallback(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}
