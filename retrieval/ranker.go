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
	"strings"

	"github.com/poiesic/voyant/core"
)

const (
	// maxRankedFacts caps the facts kept after relevance ranking.
	maxRankedFacts = 20

	// defaultRelationWeight applies to relation types missing from the table.
	defaultRelationWeight = 0.5

	descriptionKeywordBonus = 0.3
	nameKeywordBonus        = 0.2
)

// relationWeights encodes how informative each relation type is for
// itinerary building. Containment and connectivity edges beat loose
// association edges.
var relationWeights = map[string]float64{
	"Located_In":     1.0,
	"Connected_To":   0.9,
	"Near":           0.8,
	"Has_Activity":   0.7,
	"Has_Restaurant": 0.7,
	"Has_Hotel":      0.7,
	"Related_To":     0.5,
	"RELATED_TO":     0.5,
}

// RelationWeight returns the ranking weight for a relation type.
// Unrecognized types resolve to the default weight rather than zero.
func RelationWeight(relation string) float64 {
	if w, ok := relationWeights[relation]; ok {
		return w
	}
	return defaultRelationWeight
}

// RankFacts orders graph facts by relevance to the query keywords and
// returns at most the top 20. Score per fact is the relation weight plus
// 0.3 per keyword appearing in the description and 0.2 per keyword
// appearing in the name. The sort is stable, so equal scores retain
// input order.
func RankFacts(facts []core.GraphFact, keywords []string) []core.GraphFact {
	if len(facts) == 0 {
		return facts
	}

	scored := make([]struct {
		score float64
		fact  core.GraphFact
	}, len(facts))

	for i, fact := range facts {
		score := RelationWeight(fact.Relation)

		desc := strings.ToLower(fact.TargetDescription)
		name := strings.ToLower(fact.TargetName)
		for _, keyword := range keywords {
			kw := strings.ToLower(keyword)
			if strings.Contains(desc, kw) {
				score += descriptionKeywordBonus
			}
			if strings.Contains(name, kw) {
				score += nameKeywordBonus
			}
		}

		scored[i].score = score
		scored[i].fact = fact
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	limit := len(scored)
	if limit > maxRankedFacts {
		limit = maxRankedFacts
	}

	ranked := make([]core.GraphFact, limit)
	for i := 0; i < limit; i++ {
		ranked[i] = scored[i].fact
	}
	return ranked
}
