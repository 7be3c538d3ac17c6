package domain

import "time"

// Patient is the stored demographic record the registration pipeline upserts
// against. Persistence lives behind the PatientRepository port.
type Patient struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	NationalID       string    `json:"national_id,omitempty"`
	OfficialID       string    `json:"official_id,omitempty"`
	BirthDate        string    `json:"birth_date,omitempty"`
	Sex              string    `json:"sex,omitempty"`
	Phone            string    `json:"phone,omitempty"`
	Mobile           string    `json:"mobile,omitempty"`
	Email            string    `json:"email,omitempty"`
	Address          string    `json:"address,omitempty"`
	City             string    `json:"city,omitempty"`
	State            string    `json:"state,omitempty"`
	PostalCode       string    `json:"postal_code,omitempty"`
	BloodType        string    `json:"blood_type,omitempty"`
	Allergies        string    `json:"allergies,omitempty"`
	Insurance        string    `json:"insurance,omitempty"`
	EmergencyContact string    `json:"emergency_contact,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// Registration is the demographic field set extracted from a registration
// document, before upsert resolution. National ID is normalized to digits.
type Registration struct {
	Name             string `json:"name,omitempty"`
	NationalID       string `json:"national_id,omitempty"`
	OfficialID       string `json:"official_id,omitempty"`
	BirthDate        string `json:"birth_date,omitempty"`
	Sex              string `json:"sex,omitempty"`
	Phone            string `json:"phone,omitempty"`
	Mobile           string `json:"mobile,omitempty"`
	Email            string `json:"email,omitempty"`
	Address          string `json:"address,omitempty"`
	City             string `json:"city,omitempty"`
	State            string `json:"state,omitempty"`
	PostalCode       string `json:"postal_code,omitempty"`
	BloodType        string `json:"blood_type,omitempty"`
	Allergies        string `json:"allergies,omitempty"`
	Insurance        string `json:"insurance,omitempty"`
	EmergencyContact string `json:"emergency_contact,omitempty"`
}

type RegistrationAction string

const (
	RegistrationCreated RegistrationAction = "created"
	RegistrationUpdated RegistrationAction = "updated"
)

// RegistrationOutcome is what the registration import entry point returns:
// the resolved patient record, whether it was created or updated, and the
// registration-completeness confidence.
type RegistrationOutcome struct {
	Patient    *Patient           `json:"patient"`
	Action     RegistrationAction `json:"action"`
	Confidence float64            `json:"confidence"`
}
