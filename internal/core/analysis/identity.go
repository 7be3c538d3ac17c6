package analysis

import (
	"strings"

	"github.com/rpzk/clindoc/internal/core/domain"
)

// ExtractIdentity runs the always-on patient identification over the
// original-case text (proper nouns need their capitals). Sub-fields are
// independent; each hit adds its fixed weight and the sum is clamped.
func ExtractIdentity(lib Library, w Weights, text string) domain.PatientIdentity {
	var id domain.PatientIdentity

	// A trivial capture (a lone first name, a stray initial) does not settle
	// the field; the search falls through to the next, looser pattern.
	if m, ok := FirstAccepted(text, lib.Group(GroupIdentityName), func(m Match) bool {
		return len(m.Group(1)) > 5
	}); ok {
		id.Name = m.Group(1)
		id.Confidence += w.IdentityName
	}

	if m, ok := FirstMatch(text, lib.Group(GroupIdentityNationalID)); ok {
		id.NationalID = digitsOnly(m.Group(1))
		id.Confidence += w.IdentityNationalID
	}

	if m, ok := FirstMatch(text, lib.Group(GroupIdentityBirthDate)); ok {
		id.BirthDate = m.Group(1)
		id.Confidence += w.IdentityBirthDate
	}

	if m, ok := FirstMatch(text, lib.Group(GroupIdentityRecord)); ok {
		id.RecordNumber = m.Group(1)
		id.Confidence += w.IdentityRecord
	}

	id.Confidence = clamp01(id.Confidence)
	return id
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
