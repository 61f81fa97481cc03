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
	"fmt"
	"strings"

	"github.com/poiesic/voyant/ai"
	"github.com/poiesic/voyant/core"
)

const (
	promptMatchLimit    = 10
	promptFactLimit     = 20
	promptFactDescLimit = 200

	groundedMaxTokens   = 1000
	groundedTemperature = 0.2
)

const groundedSystemPrompt = `You are an expert travel consultant with deep knowledge of local culture, destinations, and travel logistics.

YOUR REASONING PROCESS:
1. Analyze the user's intent (duration, style, preferences, budget if mentioned)
2. Evaluate retrieved locations for relevance and compatibility
3. Consider practical logistics (distances, travel times, connections)
4. Optimize for seasonal factors when mentioned in the data

OUTPUT FORMAT:
- Start with a brief summary addressing the user's request
- Provide specific, actionable recommendations with clear structure
- Use actual place names from the data, not just IDs
- Include WHY each recommendation fits the request
- Add 2-3 practical tips (best time to visit, transportation, booking advice)

QUALITY STANDARDS:
- Prioritize authentic experiences over generic tourist advice
- Balance popular destinations with practical considerations
- Use specific details from the provided context
- Keep responses organized and easy to follow`

// BuildPrompt assembles the grounded generation request from the evidence
// set. Matches and facts beyond the prompt limits are dropped here rather
// than truncated mid-entry.
func BuildPrompt(query string, evidence core.EvidenceSet) ai.GenerateRequest {
	var b strings.Builder

	fmt.Fprintf(&b, "User Query: %q", query)
	if evidence.Intent.Style != "" {
		fmt.Fprintf(&b, "\nDetected travel style: %s", evidence.Intent.Style)
	}
	if evidence.Intent.DurationDays > 0 {
		fmt.Fprintf(&b, "\nTrip duration: %d days", evidence.Intent.DurationDays)
	}

	b.WriteString("\n\nSEMANTICALLY SIMILAR DESTINATIONS (from vector search):\n")
	matches := evidence.Matches
	if len(matches) > promptMatchLimit {
		matches = matches[:promptMatchLimit]
	}
	for _, m := range matches {
		fmt.Fprintf(&b, "- ID: %s\n  Name: %s\n  Type: %s\n  Relevance Score: %.3f",
			m.ID, orUnknown(m.Metadata.Name), m.Metadata.Type, m.Score)
		if m.Metadata.City != "" {
			fmt.Fprintf(&b, "\n  Location: %s", m.Metadata.City)
		}
		if len(m.Metadata.Tags) > 0 {
			fmt.Fprintf(&b, "\n  Tags: %s", strings.Join(m.Metadata.Tags, ", "))
		}
		b.WriteString("\n")
	}

	b.WriteString("\nRELATED LOCATIONS & CONNECTIONS (from knowledge graph):\n")
	facts := evidence.Facts
	if len(facts) > promptFactLimit {
		facts = facts[:promptFactLimit]
	}
	if len(facts) == 0 {
		b.WriteString("No additional graph context available.\n")
	}
	for _, f := range facts {
		fmt.Fprintf(&b, "- %s (%s)\n  Type: %s\n  Relationship: %s from %s\n  Description: %s\n",
			f.TargetName, f.TargetID, factLabel(f), f.Relation, f.SourceID,
			clip(f.TargetDescription, promptFactDescLimit))
	}

	b.WriteString(`
Based on the above context, provide a comprehensive answer that:
1. Directly addresses the user's query
2. Uses specific place names and details from the context
3. Explains WHY these recommendations fit the request
4. Includes practical travel advice (transportation, timing, costs if relevant)
5. Structures information clearly (use day-by-day format for multi-day itineraries)
6. Prioritizes authentic experiences and local insights
`)

	return ai.GenerateRequest{
		System:      groundedSystemPrompt,
		Prompt:      b.String(),
		MaxTokens:   groundedMaxTokens,
		Temperature: groundedTemperature,
	}
}

func factLabel(f core.GraphFact) string {
	if len(f.TargetLabels) > 0 {
		return f.TargetLabels[0]
	}
	return "Unknown"
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}

func clip(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}
