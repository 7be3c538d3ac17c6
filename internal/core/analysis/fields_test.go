package analysis

import (
	"regexp"
	"testing"
)

func TestMatchGroupOutOfRangeIsEmpty(t *testing.T) {
	m := Match{Groups: []string{" a "}}
	if got := m.Group(1); got != "a" {
		t.Fatalf("Group(1) = %q, want trimmed capture", got)
	}
	if got := m.Group(2); got != "" {
		t.Fatalf("Group(2) = %q, want empty", got)
	}
	if got := m.Group(0); got != "" {
		t.Fatalf("Group(0) = %q, want empty", got)
	}
}

func TestAllMatchesSkipsOverlapsAndSortsByPosition(t *testing.T) {
	strict := regexp.MustCompile(`b(c)`)
	loose := regexp.MustCompile(`(b)`)

	matches := AllMatches("abc b", []*regexp.Regexp{strict, loose})
	if len(matches) != 2 {
		t.Fatalf("matches = %+v, want strict hit plus the non-overlapping loose hit", matches)
	}
	if matches[0].Value != "bc" || matches[0].Start != 1 {
		t.Fatalf("matches[0] = %+v", matches[0])
	}
	if matches[1].Value != "b" || matches[1].Start != 4 {
		t.Fatalf("matches[1] = %+v", matches[1])
	}
}

func TestFirstAcceptedFallsThroughRejectedCapture(t *testing.T) {
	patterns := []*regexp.Regexp{
		regexp.MustCompile(`x(1)`),
		regexp.MustCompile(`(abc)`),
	}
	keep := func(m Match) bool { return len(m.Group(1)) > 1 }

	m, ok := FirstAccepted("abc x1", patterns, keep)
	if !ok {
		t.Fatalf("expected the second pattern to be accepted")
	}
	if m.Group(1) != "abc" {
		t.Fatalf("Group(1) = %q, want the fallback capture", m.Group(1))
	}

	if _, ok := FirstAccepted("x1", patterns, keep); ok {
		t.Fatalf("expected no match when every capture is rejected")
	}
}

func TestFirstMatchPrefersEarlierPattern(t *testing.T) {
	patterns := []*regexp.Regexp{
		regexp.MustCompile(`x(1)`),
		regexp.MustCompile(`(a)`),
	}
	m, ok := FirstMatch("a x1", patterns)
	if !ok {
		t.Fatalf("expected a match")
	}
	if m.Group(1) != "1" {
		t.Fatalf("Group(1) = %q, want the first pattern's capture", m.Group(1))
	}
}
