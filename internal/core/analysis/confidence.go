package analysis

import "github.com/rpzk/clindoc/internal/core/domain"

// Weights centralizes every numeric constant of the scoring model so the
// model can be tuned without touching extraction code. All confidences the
// engine emits derive from this struct plus the pattern library.
type Weights struct {
	// Identity sub-field contributions, summed then clamped to [0,1].
	IdentityName       float64
	IdentityNationalID float64
	IdentityBirthDate  float64
	IdentityRecord     float64

	// Fixed per-action confidences for the primary recommendation rules.
	ActionPrescription  float64
	ActionExamResult    float64
	ActionConsultation  float64
	ActionMedicalRecord float64
	// UPDATE_PATIENT is appended when identity confidence exceeds this.
	IdentityUpdateThreshold float64

	// Overall aggregation: base for a recognized type, identity share, and a
	// capped per-populated-field bonus rewarding breadth of extraction.
	AggregateTypeBase float64
	AggregateIdentity float64
	AggregatePerField float64
	AggregateFieldCap float64

	// Duration for a medication is searched only in this window around the
	// medication match, to keep durations from bleeding across entries. The
	// bounds are heuristic and deliberately tunable.
	DurationWindowBefore int
	DurationWindowAfter  int
}

func DefaultWeights() Weights {
	return Weights{
		IdentityName:       0.3,
		IdentityNationalID: 0.4,
		IdentityBirthDate:  0.2,
		IdentityRecord:     0.1,

		ActionPrescription:      0.90,
		ActionExamResult:        0.85,
		ActionConsultation:      0.80,
		ActionMedicalRecord:     0.90,
		IdentityUpdateThreshold: 0.5,

		AggregateTypeBase: 0.3,
		AggregateIdentity: 0.4,
		AggregatePerField: 0.05,
		AggregateFieldCap: 0.3,

		DurationWindowBefore: 50,
		DurationWindowAfter:  100,
	}
}

// Aggregate combines the per-stage results into one overall confidence. A
// recognized type earns the base, identity contributes its own confidence
// scaled down, and each distinct populated extraction field adds a small
// capped bonus, so breadth beats depth.
func Aggregate(w Weights, docType domain.DocumentType, identity domain.PatientIdentity, clinical domain.ClinicalData) float64 {
	score := 0.0
	if docType != domain.TypeOther {
		score += w.AggregateTypeBase
	}
	score += identity.Confidence * w.AggregateIdentity

	fieldBonus := w.AggregatePerField * float64(countPopulated(clinical))
	if fieldBonus > w.AggregateFieldCap {
		fieldBonus = w.AggregateFieldCap
	}
	score += fieldBonus

	return clamp01(score)
}

func countPopulated(c domain.ClinicalData) int {
	n := 0
	if c.Date != nil {
		n++
	}
	if c.Author != "" {
		n++
	}
	if c.Vitals != nil && !c.Vitals.Empty() {
		n++
	}
	if len(c.Medications) > 0 {
		n++
	}
	if len(c.ExamResults) > 0 {
		n++
	}
	if len(c.Symptoms) > 0 {
		n++
	}
	if len(c.Diagnoses) > 0 {
		n++
	}
	return n
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
