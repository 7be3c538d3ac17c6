package analysis

import (
	"regexp"
	"sort"
	"strings"
)

// Match is one pattern hit: the full matched substring, its capture groups
// and its byte offsets in the source text.
type Match struct {
	Value  string
	Groups []string
	Start  int
	End    int
}

// Group returns the n-th capture group (1-based, like the regexp submatch
// index), trimmed. Missing groups come back empty.
func (m Match) Group(n int) string {
	if n < 1 || n > len(m.Groups) {
		return ""
	}
	return strings.TrimSpace(m.Groups[n-1])
}

// FirstMatch walks an ordered pattern group and returns the first hit. Used
// for single-valued fields, where earlier patterns in the group are the more
// trusted spellings.
func FirstMatch(text string, patterns []*regexp.Regexp) (Match, bool) {
	for _, re := range patterns {
		if m := re.FindStringSubmatchIndex(text); m != nil {
			return buildMatch(text, m), true
		}
	}
	return Match{}, false
}

// FirstAccepted walks the group like FirstMatch but skips hits the keep
// predicate rejects, so a degenerate capture from a strict pattern falls
// through to the looser patterns behind it.
func FirstAccepted(text string, patterns []*regexp.Regexp, keep func(Match) bool) (Match, bool) {
	for _, re := range patterns {
		if idx := re.FindStringSubmatchIndex(text); idx != nil {
			if m := buildMatch(text, idx); keep(m) {
				return m, true
			}
		}
	}
	return Match{}, false
}

// AllMatches accumulates every hit of every pattern in the group, in document
// order. A later pattern never claims text already claimed by an earlier one,
// so a loose fallback pattern only adds what the strict pattern missed.
func AllMatches(text string, patterns []*regexp.Regexp) []Match {
	var out []Match
	for _, re := range patterns {
		for _, idx := range re.FindAllStringSubmatchIndex(text, -1) {
			m := buildMatch(text, idx)
			if overlapsAny(m, out) {
				continue
			}
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Start < out[j].Start })
	return out
}

func buildMatch(text string, idx []int) Match {
	m := Match{
		Value: text[idx[0]:idx[1]],
		Start: idx[0],
		End:   idx[1],
	}
	for g := 2; g+1 < len(idx); g += 2 {
		if idx[g] < 0 {
			m.Groups = append(m.Groups, "")
			continue
		}
		m.Groups = append(m.Groups, text[idx[g]:idx[g+1]])
	}
	return m
}

func overlapsAny(m Match, existing []Match) bool {
	for _, e := range existing {
		if m.Start < e.End && e.Start < m.End {
			return true
		}
	}
	return false
}
