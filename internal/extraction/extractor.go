// Package extraction derives structured trading signals from free-text model
// responses. It is a keyword scan over a fixed vocabulary, documented as
// best-effort classification rather than verified financial computation.
package extraction

import (
	"strings"
	"unicode"
)

// patternVocabulary is the candlestick patterns we report. Output keeps this
// order, not the order of appearance in the text, and each term is reported
// at most once no matter how often it occurs.
var patternVocabulary = []string{
	"doji",
	"hammer",
	"shooting star",
	"engulfing",
	"pin bar",
	"inside bar",
}

// tagRule maps one recommendation category to an ordered list of substring
// probes. The first probe that matches wins, remaining probes in the same
// rule are skipped. Rules are independent of each other.
type tagRule struct {
	category string
	probes   []probe
}

type probe struct {
	substr string
	value  string
}

var tagRules = []tagRule{
	{
		category: "risk_management",
		probes:   []probe{{"stop loss", "Stop loss recommended"}},
	},
	{
		category: "profit_booking",
		probes:   []probe{{"profit", "Profit targets identified"}},
	},
	{
		// "buy" shadows "sell": a response mentioning both reports only the
		// buy signal.
		category: "action",
		probes: []probe{
			{"buy", "Potential buy signal"},
			{"sell", "Potential sell signal"},
		},
	},
}

// Extract scans a model response for known pattern names and recommendation
// phrases. It is a pure function, calling it twice on the same text yields
// the same result.
func Extract(responseText string) ([]string, map[string]string) {
	lower := strings.ToLower(responseText)

	var patterns []string
	for _, term := range patternVocabulary {
		if strings.Contains(lower, term) {
			patterns = append(patterns, capitalize(term))
		}
	}

	tags := make(map[string]string)
	for _, rule := range tagRules {
		for _, p := range rule.probes {
			if strings.Contains(lower, p.substr) {
				tags[rule.category] = p.value
				break
			}
		}
	}

	return patterns, tags
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
