package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rpzk/clindoc/internal/core/domain"
)

type PatientRepository struct {
	db *sql.DB
}

func NewPatientRepository(db *sql.DB) *PatientRepository {
	return &PatientRepository{db: db}
}

func (r *PatientRepository) EnsureSchema(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, int64(2026083002)); err != nil {
		return fmt.Errorf("acquire schema lock: %w", err)
	}

	const query = `
CREATE TABLE IF NOT EXISTS patients (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	national_id TEXT,
	official_id TEXT,
	birth_date TEXT,
	sex TEXT,
	phone TEXT,
	mobile TEXT,
	email TEXT NOT NULL,
	address TEXT,
	city TEXT,
	state TEXT,
	postal_code TEXT,
	blood_type TEXT,
	allergies TEXT,
	insurance TEXT,
	emergency_contact TEXT,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_patients_national_id ON patients(national_id);
CREATE INDEX IF NOT EXISTS idx_patients_name ON patients(LOWER(name));
`
	if _, err := tx.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("execute schema ddl: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema tx: %w", err)
	}
	return nil
}

const patientColumns = `id, name, COALESCE(national_id, ''), COALESCE(official_id, ''), COALESCE(birth_date, ''), COALESCE(sex, ''), COALESCE(phone, ''), COALESCE(mobile, ''), email, COALESCE(address, ''), COALESCE(city, ''), COALESCE(state, ''), COALESCE(postal_code, ''), COALESCE(blood_type, ''), COALESCE(allergies, ''), COALESCE(insurance, ''), COALESCE(emergency_contact, ''), created_at, updated_at`

func (r *PatientRepository) Create(ctx context.Context, p *domain.Patient) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO patients (
	id, name, national_id, official_id, birth_date, sex, phone, mobile, email,
	address, city, state, postal_code, blood_type, allergies, insurance, emergency_contact,
	created_at, updated_at
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19)
`,
		p.ID, p.Name, p.NationalID, p.OfficialID, p.BirthDate, p.Sex, p.Phone, p.Mobile, p.Email,
		p.Address, p.City, p.State, p.PostalCode, p.BloodType, p.Allergies, p.Insurance, p.EmergencyContact,
		p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert patient: %w", err)
	}
	return nil
}

func (r *PatientRepository) Update(ctx context.Context, p *domain.Patient) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE patients
SET name = $2, national_id = $3, official_id = $4, birth_date = $5, sex = $6,
	phone = $7, mobile = $8, email = $9, address = $10, city = $11, state = $12,
	postal_code = $13, blood_type = $14, allergies = $15, insurance = $16,
	emergency_contact = $17, updated_at = $18
WHERE id = $1
`,
		p.ID, p.Name, p.NationalID, p.OfficialID, p.BirthDate, p.Sex,
		p.Phone, p.Mobile, p.Email, p.Address, p.City, p.State,
		p.PostalCode, p.BloodType, p.Allergies, p.Insurance,
		p.EmergencyContact, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update patient: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update patient: rows affected: %w", err)
	}
	if affected == 0 {
		return domain.WrapError(domain.ErrPatientNotFound, "update patient", fmt.Errorf("no row for id %s", p.ID))
	}
	return nil
}

// FindByNationalIDSuffix matches the stored normalized national ID by
// suffix, so a full normalized ID is an exact match and a partial capture
// still resolves. Oldest record wins when several match.
func (r *PatientRepository) FindByNationalIDSuffix(ctx context.Context, suffix string) (*domain.Patient, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT `+patientColumns+`
FROM patients
WHERE national_id <> '' AND national_id LIKE '%' || $1
ORDER BY created_at
LIMIT 1
`, suffix)
	return r.scanPatient(row, "find patient by national id")
}

func (r *PatientRepository) FindByNameFragment(ctx context.Context, fragment string) (*domain.Patient, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT `+patientColumns+`
FROM patients
WHERE LOWER(name) LIKE '%' || LOWER($1) || '%'
ORDER BY created_at
LIMIT 1
`, fragment)
	return r.scanPatient(row, "find patient by name")
}

func (r *PatientRepository) scanPatient(row *sql.Row, operation string) (*domain.Patient, error) {
	var p domain.Patient
	err := row.Scan(
		&p.ID, &p.Name, &p.NationalID, &p.OfficialID, &p.BirthDate, &p.Sex,
		&p.Phone, &p.Mobile, &p.Email, &p.Address, &p.City, &p.State,
		&p.PostalCode, &p.BloodType, &p.Allergies, &p.Insurance, &p.EmergencyContact,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapError(domain.ErrPatientNotFound, operation, err)
		}
		return nil, fmt.Errorf("%s: scan patient: %w", operation, err)
	}
	return &p, nil
}
