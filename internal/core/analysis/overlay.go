package analysis

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/rpzk/clindoc/internal/core/domain"
)

// Overlay is an externally versioned extension of the built-in library. Each
// listed entry is appended after the defaults, so institution-specific label
// synonyms and cue terms gain recall without ever changing match precedence
// of the built-in patterns.
type Overlay struct {
	Cues     map[string][]string `yaml:"cues"`
	Groups   map[string][]string `yaml:"groups"`
	Symptoms []string            `yaml:"symptoms"`
}

func LoadOverlay(path string) (Overlay, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Overlay{}, fmt.Errorf("read pattern overlay: %w", err)
	}
	var o Overlay
	if err := yaml.Unmarshal(raw, &o); err != nil {
		return Overlay{}, fmt.Errorf("parse pattern overlay: %w", err)
	}
	return o, nil
}

// ApplyOverlay returns a new library with the overlay's cues, patterns and
// symptom terms appended. The receiver is not modified. Invalid expressions
// fail loudly: a broken overlay is a deployment error, not a soft miss.
func (l Library) ApplyOverlay(o Overlay) (Library, error) {
	out := l
	if len(o.Cues) > 0 {
		cues := make(map[domain.DocumentType][]string, len(l.cues))
		for t, list := range l.cues {
			cues[t] = append([]string(nil), list...)
		}
		for name, extra := range o.Cues {
			t := domain.DocumentType(name)
			cues[t] = append(cues[t], extra...)
		}
		out.cues = cues
	}
	if len(o.Groups) > 0 {
		groups := make(map[string][]*regexp.Regexp, len(l.groups))
		for name, list := range l.groups {
			groups[name] = append([]*regexp.Regexp(nil), list...)
		}
		for name, exprs := range o.Groups {
			for _, expr := range exprs {
				re, err := regexp.Compile(expr)
				if err != nil {
					return Library{}, fmt.Errorf("overlay group %q: compile %q: %w", name, expr, err)
				}
				groups[name] = append(groups[name], re)
			}
		}
		out.groups = groups
	}
	if len(o.Symptoms) > 0 {
		out.symptoms = append(append([]string(nil), l.symptoms...), o.Symptoms...)
	}
	return out, nil
}
