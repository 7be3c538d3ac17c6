package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/rpzk/clindoc/internal/core/domain"
)

func newPatientRepoWithMock(t *testing.T) (*PatientRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	return &PatientRepository{db: db}, mock, func() { _ = db.Close() }
}

func patientRow(id, name, nationalID string) *sqlmock.Rows {
	now := time.Now().UTC().Truncate(time.Second)
	return sqlmock.NewRows([]string{
		"id", "name", "national_id", "official_id", "birth_date", "sex",
		"phone", "mobile", "email", "address", "city", "state",
		"postal_code", "blood_type", "allergies", "insurance", "emergency_contact",
		"created_at", "updated_at",
	}).AddRow(id, name, nationalID, "", "", "", "", "", "x@cadastro.invalid",
		"", "", "", "", "", "", "", "", now, now)
}

func TestFindByNationalIDSuffixScansPatient(t *testing.T) {
	repo, mock, done := newPatientRepoWithMock(t)
	defer done()

	mock.ExpectQuery("FROM patients").
		WithArgs("12345678910").
		WillReturnRows(patientRow("pat-1", "Maria Souza", "12345678910"))

	p, err := repo.FindByNationalIDSuffix(context.Background(), "12345678910")
	if err != nil {
		t.Fatalf("FindByNationalIDSuffix() error = %v", err)
	}
	if p.ID != "pat-1" || p.NationalID != "12345678910" {
		t.Fatalf("unexpected patient: %+v", p)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestFindByNameFragmentNotFound(t *testing.T) {
	repo, mock, done := newPatientRepoWithMock(t)
	defer done()

	mock.ExpectQuery("FROM patients").
		WithArgs("maria").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByNameFragment(context.Background(), "maria")
	if !domain.IsKind(err, domain.ErrPatientNotFound) {
		t.Fatalf("expected ErrPatientNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestUpdateReturnsDomainNotFoundWhenNoRowsAffected(t *testing.T) {
	repo, mock, done := newPatientRepoWithMock(t)
	defer done()

	mock.ExpectExec("UPDATE patients").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), &domain.Patient{ID: "missing", Name: "X", Email: "x@cadastro.invalid"})
	if err == nil {
		t.Fatalf("expected error")
	}
	if !domain.IsKind(err, domain.ErrPatientNotFound) {
		t.Fatalf("expected ErrPatientNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
