package analysis

import (
	"time"

	"github.com/rpzk/clindoc/internal/core/domain"
)

// SuggestActions maps the analysis to a ranked action list. At most one
// primary action fires per document type, then UPDATE_PATIENT is appended
// whenever the identity guess is trusted enough. Insertion order is the
// ranking: primary first, identity update last.
func SuggestActions(w Weights, docType domain.DocumentType, clinical domain.ClinicalData, identity domain.PatientIdentity) []domain.SuggestedAction {
	var actions []domain.SuggestedAction

	switch docType {
	case domain.TypePrescription:
		if len(clinical.Medications) > 0 {
			actions = append(actions, domain.SuggestedAction{
				Kind:       domain.ActionCreatePrescription,
				Confidence: w.ActionPrescription,
				Payload: map[string]any{
					"medications": clinical.Medications,
					"author":      clinical.Author,
					"date":        dateString(clinical.Date),
				},
			})
		}
	case domain.TypeExamResult:
		if len(clinical.ExamResults) > 0 {
			actions = append(actions, domain.SuggestedAction{
				Kind:       domain.ActionAddExamResult,
				Confidence: w.ActionExamResult,
				Payload: map[string]any{
					"results": clinical.ExamResults,
					"date":    dateString(clinical.Date),
				},
			})
		}
	case domain.TypeProgressNote:
		actions = append(actions, domain.SuggestedAction{
			Kind:       domain.ActionCreateConsultation,
			Confidence: w.ActionConsultation,
			Payload: map[string]any{
				"symptoms":     clinical.Symptoms,
				"diagnoses":    clinical.Diagnoses,
				"vitals":       clinical.Vitals,
				"observations": clinical.Observations,
				"date":         dateString(clinical.Date),
			},
		})
	case domain.TypeIntakeHistory:
		actions = append(actions, domain.SuggestedAction{
			Kind:       domain.ActionCreateMedicalRecord,
			Confidence: w.ActionMedicalRecord,
			Payload: map[string]any{
				"author":       clinical.Author,
				"observations": clinical.Observations,
				"date":         dateString(clinical.Date),
			},
		})
	}

	if identity.Confidence > w.IdentityUpdateThreshold {
		actions = append(actions, domain.SuggestedAction{
			Kind:       domain.ActionUpdatePatient,
			Confidence: identity.Confidence,
			Payload: map[string]any{
				"name":          identity.Name,
				"national_id":   identity.NationalID,
				"birth_date":    identity.BirthDate,
				"record_number": identity.RecordNumber,
			},
		})
	}

	return actions
}

func dateString(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}
