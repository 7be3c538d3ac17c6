package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/rpzk/clindoc/internal/core/analysis"
	"github.com/rpzk/clindoc/internal/core/domain"
	"github.com/rpzk/clindoc/internal/core/registration"
)

type fakePatientStore struct {
	bySuffix   *domain.Patient
	byFragment *domain.Patient
	findErr    error

	created []*domain.Patient
	updated []*domain.Patient

	suffixQueries   []string
	fragmentQueries []string
}

func (f *fakePatientStore) Create(_ context.Context, p *domain.Patient) error {
	f.created = append(f.created, p)
	return nil
}

func (f *fakePatientStore) Update(_ context.Context, p *domain.Patient) error {
	f.updated = append(f.updated, p)
	return nil
}

func (f *fakePatientStore) FindByNationalIDSuffix(_ context.Context, suffix string) (*domain.Patient, error) {
	f.suffixQueries = append(f.suffixQueries, suffix)
	if f.findErr != nil {
		return nil, f.findErr
	}
	if f.bySuffix == nil {
		return nil, domain.WrapError(domain.ErrPatientNotFound, "find patient by national id", errors.New("no fixture"))
	}
	return f.bySuffix, nil
}

func (f *fakePatientStore) FindByNameFragment(_ context.Context, fragment string) (*domain.Patient, error) {
	f.fragmentQueries = append(f.fragmentQueries, fragment)
	if f.findErr != nil {
		return nil, f.findErr
	}
	if f.byFragment == nil {
		return nil, domain.WrapError(domain.ErrPatientNotFound, "find patient by name", errors.New("no fixture"))
	}
	return f.byFragment, nil
}

func newRegisterUseCase(store *fakePatientStore) *RegisterPatientUseCase {
	extractor := registration.NewExtractor(analysis.DefaultLibrary(), registration.DefaultBudget())
	return NewRegisterPatientUseCase(store, extractor)
}

const registrationText = "FICHA DE CADASTRO\n" +
	"Nome: João Carlos Pereira\n" +
	"CPF: 987.654.321-00\n" +
	"Data de Nascimento: 05/07/1978\n" +
	"Celular: (11) 98765-4321\n"

func TestImportCreatesPatientWithPlaceholderEmail(t *testing.T) {
	store := &fakePatientStore{}
	uc := newRegisterUseCase(store)

	outcome, err := uc.Import(context.Background(), registrationText)
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}

	if outcome.Action != domain.RegistrationCreated {
		t.Fatalf("Action = %q, want %q", outcome.Action, domain.RegistrationCreated)
	}
	if len(store.created) != 1 {
		t.Fatalf("created = %+v, want 1", store.created)
	}

	p := store.created[0]
	if p.Name != "João Carlos Pereira" {
		t.Fatalf("Name = %q", p.Name)
	}
	if p.NationalID != "98765432100" {
		t.Fatalf("NationalID = %q, want normalized digits", p.NationalID)
	}
	wantEmail := fmt.Sprintf("joão.%s@cadastro.invalid", p.ID[:8])
	if p.Email != wantEmail {
		t.Fatalf("Email = %q, want placeholder %q", p.Email, wantEmail)
	}
	if outcome.Confidence <= 0 || outcome.Confidence > 1 {
		t.Fatalf("Confidence = %v, out of range", outcome.Confidence)
	}
}

func TestImportKeepsExtractedEmail(t *testing.T) {
	store := &fakePatientStore{}
	uc := newRegisterUseCase(store)

	text := registrationText + "E-mail: joao@example.com\n"
	if _, err := uc.Import(context.Background(), text); err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if got := store.created[0].Email; got != "joao@example.com" {
		t.Fatalf("Email = %q, want extracted address", got)
	}
}

func TestImportUpdatesByNationalIDSuffix(t *testing.T) {
	existing := &domain.Patient{
		ID:         "pat-1",
		Name:       "João C. Pereira",
		NationalID: "98765432100",
		Email:      "joao@example.com",
		Phone:      "(11) 3456-7890",
		CreatedAt:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	store := &fakePatientStore{bySuffix: existing}
	uc := newRegisterUseCase(store)
	frozen := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	uc.now = func() time.Time { return frozen }

	outcome, err := uc.Import(context.Background(), registrationText)
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}

	if outcome.Action != domain.RegistrationUpdated {
		t.Fatalf("Action = %q, want %q", outcome.Action, domain.RegistrationUpdated)
	}
	if len(store.suffixQueries) != 1 || store.suffixQueries[0] != "98765432100" {
		t.Fatalf("suffixQueries = %v", store.suffixQueries)
	}
	if len(store.fragmentQueries) != 0 {
		t.Fatalf("fragmentQueries = %v, want suffix match to short-circuit", store.fragmentQueries)
	}
	if len(store.updated) != 1 || len(store.created) != 0 {
		t.Fatalf("updated = %d created = %d", len(store.updated), len(store.created))
	}

	p := store.updated[0]
	// Extracted values win, blanks never erase.
	if p.Name != "João Carlos Pereira" {
		t.Fatalf("Name = %q, want extracted name to win", p.Name)
	}
	if p.Email != "joao@example.com" {
		t.Fatalf("Email = %q, want existing email kept", p.Email)
	}
	if p.Phone != "(11) 3456-7890" {
		t.Fatalf("Phone = %q, want existing phone kept", p.Phone)
	}
	if !p.UpdatedAt.Equal(frozen) {
		t.Fatalf("UpdatedAt = %v, want %v", p.UpdatedAt, frozen)
	}
}

func TestImportFallsBackToNameFragment(t *testing.T) {
	existing := &domain.Patient{ID: "pat-2", Name: "João Carlos Pereira", Email: "j@example.com"}
	store := &fakePatientStore{byFragment: existing}
	uc := newRegisterUseCase(store)

	// No CPF in the text, so only the name lookup can resolve.
	text := "Nome: João Carlos Pereira\nCelular: (11) 98765-4321\n"
	outcome, err := uc.Import(context.Background(), text)
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}

	if outcome.Action != domain.RegistrationUpdated {
		t.Fatalf("Action = %q, want %q", outcome.Action, domain.RegistrationUpdated)
	}
	if len(store.fragmentQueries) != 1 || store.fragmentQueries[0] != "João" {
		t.Fatalf("fragmentQueries = %v, want first name only", store.fragmentQueries)
	}
}

func TestImportRequiresNameOrNationalID(t *testing.T) {
	store := &fakePatientStore{}
	uc := newRegisterUseCase(store)

	_, err := uc.Import(context.Background(), "Cidade: São Paulo\n")
	if !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("error = %v, want ErrInvalidInput", err)
	}
	if len(store.created)+len(store.updated) != 0 {
		t.Fatalf("store was written despite invalid registration")
	}
}

func TestImportPropagatesStoreFailure(t *testing.T) {
	store := &fakePatientStore{findErr: errors.New("db gone")}
	uc := newRegisterUseCase(store)

	_, err := uc.Import(context.Background(), registrationText)
	if err == nil || !strings.Contains(err.Error(), "db gone") {
		t.Fatalf("error = %v, want store failure propagated", err)
	}
}
