package domain

import "time"

// DocumentType is the closed clinical-genre classification. Exactly one value
// is assigned per analyzed document.
type DocumentType string

const (
	TypeProgressNote     DocumentType = "progress_note"
	TypeExamResult       DocumentType = "exam_result"
	TypePrescription     DocumentType = "prescription"
	TypeIntakeHistory    DocumentType = "intake_history"
	TypeCertificate      DocumentType = "certificate"
	TypePrescriptionCopy DocumentType = "prescription_copy"
	TypeReport           DocumentType = "report"
	TypeOther            DocumentType = "other"
)

// PatientIdentity is the always-run identity guess extracted from the
// original-case text. Confidence accumulates per matched sub-field and is
// clamped to [0,1]; each sub-field is independent of the others.
type PatientIdentity struct {
	Name         string  `json:"name,omitempty"`
	NationalID   string  `json:"national_id,omitempty"`
	BirthDate    string  `json:"birth_date,omitempty"`
	RecordNumber string  `json:"record_number,omitempty"`
	Confidence   float64 `json:"confidence"`
}

// VitalSigns holds raw matched substrings. Values are captured verbatim and
// never unit-converted or numerically validated.
type VitalSigns struct {
	BloodPressure string `json:"blood_pressure,omitempty"`
	HeartRate     string `json:"heart_rate,omitempty"`
	Temperature   string `json:"temperature,omitempty"`
	Weight        string `json:"weight,omitempty"`
	Height        string `json:"height,omitempty"`
}

func (v VitalSigns) Empty() bool {
	return v == VitalSigns{}
}

type Medication struct {
	Name      string `json:"name"`
	Dosage    string `json:"dosage"`
	Frequency string `json:"frequency,omitempty"`
	Duration  string `json:"duration,omitempty"`
}

type ExamResultEntry struct {
	Name      string `json:"name"`
	Value     string `json:"value"`
	Reference string `json:"reference,omitempty"`
}

// ClinicalData is the structured extraction output. Absent fields mean the
// corresponding pattern simply did not match; that is the expected path, not
// an error.
type ClinicalData struct {
	Date         *time.Time        `json:"date,omitempty"`
	Author       string            `json:"author,omitempty"`
	Vitals       *VitalSigns       `json:"vitals,omitempty"`
	Medications  []Medication      `json:"medications,omitempty"`
	ExamResults  []ExamResultEntry `json:"exam_results,omitempty"`
	Symptoms     []string          `json:"symptoms,omitempty"`
	Diagnoses    []string          `json:"diagnoses,omitempty"`
	Observations string            `json:"observations,omitempty"`
}

type ActionKind string

const (
	ActionCreateConsultation  ActionKind = "create_consultation"
	ActionAddExamResult       ActionKind = "add_exam_result"
	ActionCreatePrescription  ActionKind = "create_prescription"
	ActionUpdatePatient       ActionKind = "update_patient"
	ActionCreateMedicalRecord ActionKind = "create_medical_record"
)

// SuggestedAction is a proposed downstream write with the payload the target
// collaborator expects. The engine never commits actions itself; list order
// is the ranking consumed by callers.
type SuggestedAction struct {
	Kind       ActionKind     `json:"kind"`
	Confidence float64        `json:"confidence"`
	Payload    map[string]any `json:"payload,omitempty"`
}

// AnalysisResult is the aggregate output for one document. It is immutable
// once produced and carries everything a reviewer or downstream system needs.
type AnalysisResult struct {
	DocumentID string            `json:"document_id"`
	Type       DocumentType      `json:"type"`
	Confidence float64           `json:"confidence"`
	Identity   PatientIdentity   `json:"identity"`
	Clinical   ClinicalData      `json:"clinical"`
	Actions    []SuggestedAction `json:"actions,omitempty"`
}
