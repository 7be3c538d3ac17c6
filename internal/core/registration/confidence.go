package registration

import "github.com/rpzk/clindoc/internal/core/domain"

// Budget is the fixed point table for registration completeness. Points are
// summed over a ten-point scale and normalized to [0,1]; contact counts once
// whether the document carried a phone, mobile or email.
type Budget struct {
	Name      float64
	ID        float64
	BirthDate float64
	Contact   float64
	Address   float64
	BloodType float64
	Allergies float64
	Scale     float64
}

func DefaultBudget() Budget {
	return Budget{
		Name:      2.0,
		ID:        2.0,
		BirthDate: 1.5,
		Contact:   1.5,
		Address:   1.5,
		BloodType: 0.75,
		Allergies: 0.75,
		Scale:     10.0,
	}
}

func Score(b Budget, reg domain.Registration) float64 {
	points := 0.0
	if reg.Name != "" {
		points += b.Name
	}
	if reg.NationalID != "" || reg.OfficialID != "" {
		points += b.ID
	}
	if reg.BirthDate != "" {
		points += b.BirthDate
	}
	if reg.Phone != "" || reg.Mobile != "" || reg.Email != "" {
		points += b.Contact
	}
	if reg.Address != "" || reg.PostalCode != "" {
		points += b.Address
	}
	if reg.BloodType != "" {
		points += b.BloodType
	}
	if reg.Allergies != "" {
		points += b.Allergies
	}

	score := points / b.Scale
	if score > 1 {
		return 1
	}
	return score
}
