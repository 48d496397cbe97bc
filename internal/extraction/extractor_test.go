package extraction

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractPatternsVocabularyOrder(t *testing.T) {
	// "hammer" appears before "doji" in the text, output follows vocabulary order
	text := "A Hammer formed after the DOJI, confirming the engulfing setup."

	patterns, _ := Extract(text)

	assert.Equal(t, []string{"Doji", "Hammer", "Engulfing"}, patterns)
}

func TestExtractPatternsDeduplicated(t *testing.T) {
	text := "doji doji doji, another doji and a fifth doji"

	patterns, _ := Extract(text)

	assert.Equal(t, []string{"Doji"}, patterns)
}

func TestExtractNoPatterns(t *testing.T) {
	patterns, tags := Extract("The market is quiet today.")

	assert.Empty(t, patterns)
	assert.Empty(t, tags)
}

func TestExtractRecommendationTags(t *testing.T) {
	text := "Place a stop loss below support, a Doji suggests you could buy here."

	patterns, tags := Extract(text)

	assert.Equal(t, []string{"Doji"}, patterns)
	assert.Equal(t, map[string]string{
		"risk_management": "Stop loss recommended",
		"action":          "Potential buy signal",
	}, tags)
}

func TestExtractBuyTakesPriorityOverSell(t *testing.T) {
	_, tags := Extract("Sell the rally or buy the dip, depending on your profit target.")

	assert.Equal(t, "Potential buy signal", tags["action"])
	assert.Equal(t, "Profit targets identified", tags["profit_booking"])
}

func TestExtractSellWithoutBuy(t *testing.T) {
	_, tags := Extract("A shooting star at resistance, consider selling.")

	assert.Equal(t, "Potential sell signal", tags["action"])
}

func TestExtractNoActionTag(t *testing.T) {
	_, tags := Extract("Hold your position and wait for confirmation.")

	_, ok := tags["action"]
	assert.False(t, ok)
}

func TestExtractIsIdempotent(t *testing.T) {
	text := "Inside bar with a pin bar, set a stop loss before you buy."

	p1, t1 := Extract(text)
	p2, t2 := Extract(text)

	assert.Equal(t, p1, p2)
	assert.Equal(t, t1, t2)
}

func TestExtractCaseInsensitive(t *testing.T) {
	patterns, tags := Extract("SHOOTING STAR spotted, STOP LOSS advised.")

	assert.Equal(t, []string{"Shooting star"}, patterns)
	assert.Equal(t, "Stop loss recommended", tags["risk_management"])
}
