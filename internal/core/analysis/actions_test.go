package analysis

import (
	"testing"

	"github.com/rpzk/clindoc/internal/core/domain"
)

func TestSuggestActionsPrimaryRules(t *testing.T) {
	w := DefaultWeights()

	tests := []struct {
		name     string
		docType  domain.DocumentType
		clinical domain.ClinicalData
		wantKind domain.ActionKind
		wantConf float64
	}{
		{
			name:     "prescription with medications",
			docType:  domain.TypePrescription,
			clinical: domain.ClinicalData{Medications: []domain.Medication{{Name: "Dipirona", Dosage: "500mg"}}},
			wantKind: domain.ActionCreatePrescription,
			wantConf: w.ActionPrescription,
		},
		{
			name:     "exam result with entries",
			docType:  domain.TypeExamResult,
			clinical: domain.ClinicalData{ExamResults: []domain.ExamResultEntry{{Name: "Hemoglobina", Value: "13.8"}}},
			wantKind: domain.ActionAddExamResult,
			wantConf: w.ActionExamResult,
		},
		{
			name:     "progress note",
			docType:  domain.TypeProgressNote,
			wantKind: domain.ActionCreateConsultation,
			wantConf: w.ActionConsultation,
		},
		{
			name:     "intake history",
			docType:  domain.TypeIntakeHistory,
			wantKind: domain.ActionCreateMedicalRecord,
			wantConf: w.ActionMedicalRecord,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actions := SuggestActions(w, tt.docType, tt.clinical, domain.PatientIdentity{})
			if len(actions) != 1 {
				t.Fatalf("actions = %+v, want exactly the primary action", actions)
			}
			if actions[0].Kind != tt.wantKind {
				t.Fatalf("Kind = %q, want %q", actions[0].Kind, tt.wantKind)
			}
			if actions[0].Confidence != tt.wantConf {
				t.Fatalf("Confidence = %v, want %v", actions[0].Confidence, tt.wantConf)
			}
		})
	}
}

func TestSuggestActionsGuardsEmptyExtractions(t *testing.T) {
	w := DefaultWeights()

	if actions := SuggestActions(w, domain.TypePrescription, domain.ClinicalData{}, domain.PatientIdentity{}); len(actions) != 0 {
		t.Fatalf("actions = %+v, want none without medications", actions)
	}
	if actions := SuggestActions(w, domain.TypeExamResult, domain.ClinicalData{}, domain.PatientIdentity{}); len(actions) != 0 {
		t.Fatalf("actions = %+v, want none without exam entries", actions)
	}
}

func TestSuggestActionsTypesWithoutPrimaryRule(t *testing.T) {
	w := DefaultWeights()

	for _, docType := range []domain.DocumentType{
		domain.TypeCertificate, domain.TypeReport, domain.TypePrescriptionCopy, domain.TypeOther,
	} {
		if actions := SuggestActions(w, docType, domain.ClinicalData{}, domain.PatientIdentity{}); len(actions) != 0 {
			t.Fatalf("actions for %q = %+v, want none", docType, actions)
		}
	}
}

func TestSuggestActionsAppendsUpdatePatient(t *testing.T) {
	w := DefaultWeights()
	identity := domain.PatientIdentity{Name: "Maria da Silva Souza", NationalID: "12345678910", Confidence: 0.7}

	actions := SuggestActions(w, domain.TypeProgressNote, domain.ClinicalData{}, identity)
	if len(actions) != 2 {
		t.Fatalf("actions = %+v, want primary plus update_patient", actions)
	}
	last := actions[len(actions)-1]
	if last.Kind != domain.ActionUpdatePatient {
		t.Fatalf("last action = %q, want %q", last.Kind, domain.ActionUpdatePatient)
	}
	if last.Confidence != identity.Confidence {
		t.Fatalf("Confidence = %v, want identity confidence %v", last.Confidence, identity.Confidence)
	}
	if last.Payload["national_id"] != "12345678910" {
		t.Fatalf("Payload = %+v", last.Payload)
	}
}

func TestSuggestActionsUpdatePatientThresholdIsStrict(t *testing.T) {
	w := DefaultWeights()
	identity := domain.PatientIdentity{Name: "Maria da Silva Souza", Confidence: w.IdentityUpdateThreshold}

	if actions := SuggestActions(w, domain.TypeOther, domain.ClinicalData{}, identity); len(actions) != 0 {
		t.Fatalf("actions = %+v, want none at exactly the threshold", actions)
	}
}
