// Package registration is the sibling extraction pipeline for demographic
// and registration documents. It reuses the pattern-library/field-extractor
// design of the clinical engine with its own pattern groups, and adds the
// one stateful step the clinical pipeline does not have: upsert resolution
// against the patient store.
package registration

import (
	"errors"
	"strings"

	"github.com/rpzk/clindoc/internal/core/analysis"
	"github.com/rpzk/clindoc/internal/core/domain"
)

// Extractor pulls demographic fields out of registration text. Pure and
// deterministic; the importer owns the store interaction.
type Extractor struct {
	lib    analysis.Library
	budget Budget
}

func NewExtractor(lib analysis.Library, budget Budget) *Extractor {
	return &Extractor{lib: lib, budget: budget}
}

// Extract returns the demographic field set plus the registration
// completeness confidence. Empty input is the only error.
func (e *Extractor) Extract(text string) (domain.Registration, float64, error) {
	if strings.TrimSpace(text) == "" {
		return domain.Registration{}, 0, domain.WrapError(domain.ErrInvalidInput, "extract registration", errors.New("empty registration text"))
	}

	reg := domain.Registration{
		Name:             e.first(text, analysis.GroupRegName),
		OfficialID:       e.first(text, analysis.GroupRegOfficialID),
		BirthDate:        e.first(text, analysis.GroupRegBirthDate),
		Sex:              normalizeSex(e.first(text, analysis.GroupRegSex)),
		Phone:            e.first(text, analysis.GroupRegPhone),
		Mobile:           e.first(text, analysis.GroupRegMobile),
		Email:            e.first(text, analysis.GroupRegEmail),
		Address:          e.first(text, analysis.GroupRegAddress),
		City:             e.first(text, analysis.GroupRegCity),
		State:            e.first(text, analysis.GroupRegState),
		PostalCode:       e.first(text, analysis.GroupRegPostalCode),
		BloodType:        strings.ToUpper(e.first(text, analysis.GroupRegBloodType)),
		Allergies:        e.first(text, analysis.GroupRegAllergies),
		Insurance:        e.first(text, analysis.GroupRegInsurance),
		EmergencyContact: e.first(text, analysis.GroupRegEmergency),
	}
	if raw := e.first(text, analysis.GroupRegNationalID); raw != "" {
		reg.NationalID = normalizeDigits(raw)
	}

	return reg, Score(e.budget, reg), nil
}

func (e *Extractor) first(text, group string) string {
	if m, ok := analysis.FirstMatch(text, e.lib.Group(group)); ok {
		return m.Group(1)
	}
	return ""
}

func normalizeSex(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "m", "masculino":
		return "masculino"
	case "f", "feminino":
		return "feminino"
	default:
		return strings.ToLower(strings.TrimSpace(raw))
	}
}

func normalizeDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
