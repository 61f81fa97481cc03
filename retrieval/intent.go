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
	"regexp"
	"strconv"
	"strings"

	"github.com/poiesic/voyant/core"
)

// styleRule maps trigger words in the query to a travel style plus the
// keywords and entity types that style implies for downstream ranking.
type styleRule struct {
	style       core.TravelStyle
	triggers    []string
	keywords    []string
	entityTypes []string
}

// Rules are evaluated in order and each match overwrites the style, so
// when several trigger the last matching rule wins. Keywords and entity
// types accumulate across all matching rules.
var styleRules = []styleRule{
	{
		style:       core.StyleRomantic,
		triggers:    []string{"romantic", "romance", "couple", "honeymoon"},
		keywords:    []string{"romantic", "lanterns", "heritage", "scenic"},
		entityTypes: []string{"Restaurant", "Hotel"},
	},
	{
		style:       core.StyleAdventure,
		triggers:    []string{"adventure", "trek", "hiking", "climb"},
		keywords:    []string{"mountain", "trekking", "adventure", "nature"},
		entityTypes: []string{"Activity", "Tour"},
	},
	{
		style:       core.StyleFood,
		triggers:    []string{"food", "cuisine", "restaurant", "eat"},
		keywords:    []string{"food", "cuisine", "restaurant", "market"},
		entityTypes: []string{"Restaurant", "Market"},
	},
	{
		style:    core.StyleBeach,
		triggers: []string{"beach", "coast", "sea", "ocean"},
		keywords: []string{"beach", "coast", "cruise", "island"},
	},
	{
		style:    core.StyleCulture,
		triggers: []string{"culture", "history", "heritage", "temple"},
		keywords: []string{"culture", "heritage", "history", "temple", "museum"},
	},
}

var durationPattern = regexp.MustCompile(`(\d+)\s*(day|week)`)

// ExtractIntent derives a structured travel intent from raw query text.
// Pure function over a lowercase copy of the input; it never fails, and a
// query matching no rule yields the default entity types with an unset
// style and no keywords.
func ExtractIntent(query string) core.Intent {
	lower := strings.ToLower(query)

	intent := core.Intent{
		EntityTypes: []string{"City", "Attraction", "Activity"},
	}

	for _, rule := range styleRules {
		if !containsAny(lower, rule.triggers) {
			continue
		}
		intent.Style = rule.style
		intent.Keywords = append(intent.Keywords, rule.keywords...)
		intent.EntityTypes = append(intent.EntityTypes, rule.entityTypes...)
	}

	if m := durationPattern.FindStringSubmatch(lower); m != nil {
		days, err := strconv.Atoi(m[1])
		if err == nil {
			if m[2] == "week" {
				days *= 7
			}
			intent.DurationDays = days
		}
	}

	return intent
}

func containsAny(text string, words []string) bool {
	for _, word := range words {
		if strings.Contains(text, word) {
			return true
		}
	}
	return false
}
