package analysis

import (
	"strings"

	"github.com/rpzk/clindoc/internal/core/domain"
)

// Classify assigns exactly one document type. Literal rules run first in
// declaration order and short-circuit; otherwise cue terms are counted per
// type and the strictly highest total wins, with ties broken by the library's
// type priority order. No cue at all means TypeOther.
func Classify(lib Library, text string) domain.DocumentType {
	lower := strings.ToLower(text)

	for _, rule := range lib.LiteralRules() {
		if literalRuleHits(rule, lower) {
			return rule.Type
		}
	}

	best := domain.TypeOther
	bestScore := 0
	for _, t := range lib.TypePriority() {
		score := 0
		for _, cue := range lib.Cues(t) {
			score += strings.Count(lower, cue)
		}
		if score > bestScore {
			best = t
			bestScore = score
		}
	}
	return best
}

func literalRuleHits(rule LiteralRule, lower string) bool {
	for _, phrase := range rule.All {
		if !strings.Contains(lower, phrase) {
			return false
		}
	}
	if len(rule.Any) == 0 {
		return len(rule.All) > 0
	}
	for _, phrase := range rule.Any {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}
