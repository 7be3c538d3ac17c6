package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rpzk/clindoc/internal/core/domain"
	"github.com/rpzk/clindoc/internal/core/ports"
	"github.com/rpzk/clindoc/internal/core/registration"
)

type RegisterPatientUseCase struct {
	patients  ports.PatientRepository
	extractor *registration.Extractor
	now       func() time.Time
}

func NewRegisterPatientUseCase(patients ports.PatientRepository, extractor *registration.Extractor) *RegisterPatientUseCase {
	return &RegisterPatientUseCase{
		patients:  patients,
		extractor: extractor,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Import extracts demographics from registration text and resolves them
// against the patient store: match by normalized national-ID suffix first,
// else by first-name fragment; merge into the match or create a new record.
// The read-then-write is a single logical transaction for the caller;
// concurrent imports of the same person must be serialized upstream.
func (uc *RegisterPatientUseCase) Import(ctx context.Context, text string) (*domain.RegistrationOutcome, error) {
	reg, confidence, err := uc.extractor.Extract(text)
	if err != nil {
		return nil, err
	}
	if reg.Name == "" && reg.NationalID == "" {
		return nil, domain.WrapError(domain.ErrInvalidInput, "resolve registration", errors.New("neither name nor national id extracted"))
	}

	existing, err := uc.findExisting(ctx, reg)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	if existing != nil {
		mergeRegistration(existing, reg)
		existing.UpdatedAt = now
		if err := uc.patients.Update(ctx, existing); err != nil {
			return nil, fmt.Errorf("update patient: %w", err)
		}
		return &domain.RegistrationOutcome{
			Patient:    existing,
			Action:     domain.RegistrationUpdated,
			Confidence: confidence,
		}, nil
	}

	patient := &domain.Patient{
		ID:        uuid.NewString(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	mergeRegistration(patient, reg)
	if patient.Email == "" {
		patient.Email = placeholderEmail(patient)
	}
	if err := uc.patients.Create(ctx, patient); err != nil {
		return nil, fmt.Errorf("create patient: %w", err)
	}
	return &domain.RegistrationOutcome{
		Patient:    patient,
		Action:     domain.RegistrationCreated,
		Confidence: confidence,
	}, nil
}

func (uc *RegisterPatientUseCase) findExisting(ctx context.Context, reg domain.Registration) (*domain.Patient, error) {
	if reg.NationalID != "" {
		patient, err := uc.patients.FindByNationalIDSuffix(ctx, reg.NationalID)
		if err == nil {
			return patient, nil
		}
		if !domain.IsKind(err, domain.ErrPatientNotFound) {
			return nil, fmt.Errorf("find patient by national id: %w", err)
		}
	}
	if reg.Name != "" {
		first := firstName(reg.Name)
		patient, err := uc.patients.FindByNameFragment(ctx, first)
		if err == nil {
			return patient, nil
		}
		if !domain.IsKind(err, domain.ErrPatientNotFound) {
			return nil, fmt.Errorf("find patient by name: %w", err)
		}
	}
	return nil, nil
}

// mergeRegistration copies extracted values over the record field by field.
// An extracted value wins only when present; existing data is never erased
// by a blank extraction.
func mergeRegistration(p *domain.Patient, reg domain.Registration) {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&p.Name, reg.Name)
	set(&p.NationalID, reg.NationalID)
	set(&p.OfficialID, reg.OfficialID)
	set(&p.BirthDate, reg.BirthDate)
	set(&p.Sex, reg.Sex)
	set(&p.Phone, reg.Phone)
	set(&p.Mobile, reg.Mobile)
	set(&p.Email, reg.Email)
	set(&p.Address, reg.Address)
	set(&p.City, reg.City)
	set(&p.State, reg.State)
	set(&p.PostalCode, reg.PostalCode)
	set(&p.BloodType, reg.BloodType)
	set(&p.Allergies, reg.Allergies)
	set(&p.Insurance, reg.Insurance)
	set(&p.EmergencyContact, reg.EmergencyContact)
}

func firstName(full string) string {
	fields := strings.Fields(full)
	if len(fields) == 0 {
		return full
	}
	return fields[0]
}

// placeholderEmail works around the store's required-email column for
// imports that carried no email. The .invalid TLD keeps it from ever being
// deliverable.
func placeholderEmail(p *domain.Patient) string {
	local := strings.ToLower(firstName(p.Name))
	if local == "" {
		local = "paciente"
	}
	suffix := p.ID
	if len(suffix) > 8 {
		suffix = suffix[:8]
	}
	return fmt.Sprintf("%s.%s@cadastro.invalid", local, suffix)
}
