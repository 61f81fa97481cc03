package retrieval

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/poiesic/voyant/core"
)

func TestExtractIntentRomanticWithDuration(t *testing.T) {
	intent := ExtractIntent("5 day romantic honeymoon trip")

	assert.Equal(t, core.StyleRomantic, intent.Style)
	assert.Equal(t, 5, intent.DurationDays)
	assert.Contains(t, intent.Keywords, "romantic")
	assert.Contains(t, intent.Keywords, "scenic")
	assert.Contains(t, intent.EntityTypes, "Hotel")
}

func TestExtractIntentWeekConversion(t *testing.T) {
	intent := ExtractIntent("2 week adventure trek")

	assert.Equal(t, core.StyleAdventure, intent.Style)
	assert.Equal(t, 14, intent.DurationDays)
	assert.Contains(t, intent.Keywords, "trekking")
}

func TestExtractIntentLastMatchingRuleWins(t *testing.T) {
	// Both the romantic and culture rules trigger; culture is evaluated
	// later, so it takes the style while keywords accumulate from both.
	intent := ExtractIntent("romantic temple tour")

	assert.Equal(t, core.StyleCulture, intent.Style)
	assert.Contains(t, intent.Keywords, "romantic")
	assert.Contains(t, intent.Keywords, "museum")
}

func TestExtractIntentNoMatch(t *testing.T) {
	intent := ExtractIntent("what is the weather like")

	assert.Empty(t, intent.Style)
	assert.Zero(t, intent.DurationDays)
	assert.Empty(t, intent.Keywords)
	assert.Equal(t, []string{"City", "Attraction", "Activity"}, intent.EntityTypes)
}

func TestExtractIntentStyleTable(t *testing.T) {
	tests := []struct {
		query string
		style core.TravelStyle
	}{
		{"best places to eat street food", core.StyleFood},
		{"quiet beach getaway", core.StyleBeach},
		{"history and heritage sites", core.StyleCulture},
		{"couples retreat", core.StyleRomantic},
		{"rock climbing spots", core.StyleAdventure},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.style, ExtractIntent(tt.query).Style)
		})
	}
}

func TestExtractIntentDurationWithoutStyle(t *testing.T) {
	intent := ExtractIntent("plan 3 days somewhere")

	assert.Empty(t, intent.Style)
	assert.Equal(t, 3, intent.DurationDays)
}
