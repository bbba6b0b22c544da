package insurance

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

// Patients

const patientColumns = `
	id, first_name, last_name, date_of_birth, gender, national_id,
	address, city, postal_code, country, phone, email,
	blood_group, allergies, medical_conditions, active,
	created_at, updated_at`

func scanPatient(row pgx.Row) (*Patient, error) {
	var p Patient

	err := row.Scan(
		&p.ID,
		&p.FirstName,
		&p.LastName,
		&p.DateOfBirth,
		&p.Gender,
		&p.NationalID,
		&p.Address,
		&p.City,
		&p.PostalCode,
		&p.Country,
		&p.Phone,
		&p.Email,
		&p.BloodGroup,
		&p.Allergies,
		&p.MedicalConditions,
		&p.Active,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPatientNotFound
		}
		return nil, err
	}

	return &p, nil
}

func (r *PgRepository) SavePatient(ctx context.Context, p *Patient) (*Patient, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO patients (
			id, first_name, last_name, date_of_birth, gender, national_id,
			address, city, postal_code, country, phone, email,
			blood_group, allergies, medical_conditions, active,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12,
		        $13, $14, $15, $16, now(), now())
		ON CONFLICT (id) DO UPDATE SET
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			date_of_birth = EXCLUDED.date_of_birth,
			gender = EXCLUDED.gender,
			national_id = EXCLUDED.national_id,
			address = EXCLUDED.address,
			city = EXCLUDED.city,
			postal_code = EXCLUDED.postal_code,
			country = EXCLUDED.country,
			phone = EXCLUDED.phone,
			email = EXCLUDED.email,
			blood_group = EXCLUDED.blood_group,
			allergies = EXCLUDED.allergies,
			medical_conditions = EXCLUDED.medical_conditions,
			active = EXCLUDED.active,
			updated_at = now()
		RETURNING `+patientColumns,
		p.ID, p.FirstName, p.LastName, p.DateOfBirth, p.Gender, p.NationalID,
		p.Address, p.City, p.PostalCode, p.Country, p.Phone, p.Email,
		p.BloodGroup, p.Allergies, p.MedicalConditions, p.Active,
	)

	saved, err := scanPatient(row)
	if err != nil {
		return nil, fmt.Errorf("save patient: %w", err)
	}
	return saved, nil
}

func (r *PgRepository) GetPatientByID(ctx context.Context, id uuid.UUID) (*Patient, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+patientColumns+`
		FROM patients
		WHERE id = $1
	`, id)
	return scanPatient(row)
}

func (r *PgRepository) ListPatients(ctx context.Context) ([]Patient, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+patientColumns+`
		FROM patients
		ORDER BY created_at
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Patient
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}
	return result, rows.Err()
}

func (r *PgRepository) FindPatientByNationalID(ctx context.Context, nationalID string) (*Patient, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+patientColumns+`
		FROM patients
		WHERE national_id = $1
	`, nationalID)

	p, err := scanPatient(row)
	if err != nil {
		if errors.Is(err, ErrPatientNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return p, nil
}

func (r *PgRepository) DeletePatient(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM patients WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete patient: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrPatientNotFound
	}
	return nil
}

// Insurances

const insuranceColumns = `
	id, name, type, email, phone_number,
	address, city, postal_code, country,
	username, password, license_number,
	contact_person_name, contact_person_position, contact_person_email, contact_person_phone,
	registration_number, registration_date,
	arma_contract_number, arma_contract_start_date, arma_contract_end_date,
	registration_document_path, license_path, arma_contract_path,
	active, created_at, updated_at`

func scanInsurance(row pgx.Row) (*Insurance, error) {
	var ins Insurance
	var username *string

	err := row.Scan(
		&ins.ID,
		&ins.Name,
		&ins.Type,
		&ins.Email,
		&ins.PhoneNumber,
		&ins.Address,
		&ins.City,
		&ins.PostalCode,
		&ins.Country,
		&username,
		&ins.Password,
		&ins.LicenseNumber,
		&ins.ContactPersonName,
		&ins.ContactPersonPosition,
		&ins.ContactPersonEmail,
		&ins.ContactPersonPhone,
		&ins.RegistrationNumber,
		&ins.RegistrationDate,
		&ins.ArmaContractNumber,
		&ins.ArmaContractStartDate,
		&ins.ArmaContractEndDate,
		&ins.RegistrationDocumentPath,
		&ins.LicensePath,
		&ins.ArmaContractPath,
		&ins.Active,
		&ins.CreatedAt,
		&ins.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInsuranceNotFound
		}
		return nil, err
	}

	if username != nil {
		ins.Username = *username
	}
	return &ins, nil
}

func (r *PgRepository) SaveInsurance(ctx context.Context, ins *Insurance) (*Insurance, error) {
	var username *string
	if ins.Username != "" {
		username = &ins.Username
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO insurances (
			id, name, type, email, phone_number,
			address, city, postal_code, country,
			username, password, license_number,
			contact_person_name, contact_person_position, contact_person_email, contact_person_phone,
			registration_number, registration_date,
			arma_contract_number, arma_contract_start_date, arma_contract_end_date,
			registration_document_path, license_path, arma_contract_path,
			active, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12,
		        $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24,
		        $25, now(), now())
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			type = EXCLUDED.type,
			email = EXCLUDED.email,
			phone_number = EXCLUDED.phone_number,
			address = EXCLUDED.address,
			city = EXCLUDED.city,
			postal_code = EXCLUDED.postal_code,
			country = EXCLUDED.country,
			username = EXCLUDED.username,
			password = EXCLUDED.password,
			license_number = EXCLUDED.license_number,
			contact_person_name = EXCLUDED.contact_person_name,
			contact_person_position = EXCLUDED.contact_person_position,
			contact_person_email = EXCLUDED.contact_person_email,
			contact_person_phone = EXCLUDED.contact_person_phone,
			registration_number = EXCLUDED.registration_number,
			registration_date = EXCLUDED.registration_date,
			arma_contract_number = EXCLUDED.arma_contract_number,
			arma_contract_start_date = EXCLUDED.arma_contract_start_date,
			arma_contract_end_date = EXCLUDED.arma_contract_end_date,
			registration_document_path = EXCLUDED.registration_document_path,
			license_path = EXCLUDED.license_path,
			arma_contract_path = EXCLUDED.arma_contract_path,
			active = EXCLUDED.active,
			updated_at = now()
		RETURNING `+insuranceColumns,
		ins.ID, ins.Name, ins.Type, ins.Email, ins.PhoneNumber,
		ins.Address, ins.City, ins.PostalCode, ins.Country,
		username, ins.Password, ins.LicenseNumber,
		ins.ContactPersonName, ins.ContactPersonPosition, ins.ContactPersonEmail, ins.ContactPersonPhone,
		ins.RegistrationNumber, ins.RegistrationDate,
		ins.ArmaContractNumber, ins.ArmaContractStartDate, ins.ArmaContractEndDate,
		ins.RegistrationDocumentPath, ins.LicensePath, ins.ArmaContractPath,
		ins.Active,
	)

	saved, err := scanInsurance(row)
	if err != nil {
		return nil, fmt.Errorf("save insurance: %w", err)
	}
	return saved, nil
}

func (r *PgRepository) GetInsuranceByID(ctx context.Context, id uuid.UUID) (*Insurance, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+insuranceColumns+`
		FROM insurances
		WHERE id = $1
	`, id)
	return scanInsurance(row)
}

func (r *PgRepository) ListInsurances(ctx context.Context) ([]Insurance, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+insuranceColumns+`
		FROM insurances
		ORDER BY created_at
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Insurance
	for rows.Next() {
		ins, err := scanInsurance(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *ins)
	}
	return result, rows.Err()
}

func (r *PgRepository) DeleteInsurance(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM insurances WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete insurance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrInsuranceNotFound
	}
	return nil
}

// Contracts

const contractColumns = `
	id, contract_number, contract_type, start_date, end_date, deductible,
	active, patient_id, insurance_id, created_at, updated_at`

func scanContract(row pgx.Row) (*InsuranceContract, error) {
	var c InsuranceContract

	err := row.Scan(
		&c.ID,
		&c.ContractNumber,
		&c.ContractType,
		&c.StartDate,
		&c.EndDate,
		&c.Deductible,
		&c.Active,
		&c.PatientID,
		&c.InsuranceID,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrContractNotFound
		}
		return nil, err
	}

	return &c, nil
}

func (r *PgRepository) SaveContract(ctx context.Context, c *InsuranceContract) (*InsuranceContract, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO insurance_contracts (
			id, contract_number, contract_type, start_date, end_date, deductible,
			active, patient_id, insurance_id, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now(), now())
		ON CONFLICT (id) DO UPDATE SET
			contract_number = EXCLUDED.contract_number,
			contract_type = EXCLUDED.contract_type,
			start_date = EXCLUDED.start_date,
			end_date = EXCLUDED.end_date,
			deductible = EXCLUDED.deductible,
			active = EXCLUDED.active,
			patient_id = EXCLUDED.patient_id,
			insurance_id = EXCLUDED.insurance_id,
			updated_at = now()
		RETURNING `+contractColumns,
		c.ID, c.ContractNumber, c.ContractType, c.StartDate, c.EndDate, c.Deductible,
		c.Active, c.PatientID, c.InsuranceID,
	)

	saved, err := scanContract(row)
	if err != nil {
		return nil, fmt.Errorf("save contract: %w", err)
	}
	return saved, nil
}

func (r *PgRepository) GetContractByID(ctx context.Context, id uuid.UUID) (*InsuranceContract, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+contractColumns+`
		FROM insurance_contracts
		WHERE id = $1
	`, id)
	return scanContract(row)
}

func (r *PgRepository) listContracts(ctx context.Context, column string, id uuid.UUID) ([]InsuranceContract, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+contractColumns+`
		FROM insurance_contracts
		WHERE `+column+` = $1
		ORDER BY created_at
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []InsuranceContract
	for rows.Next() {
		c, err := scanContract(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *c)
	}
	return result, rows.Err()
}

func (r *PgRepository) ListContractsByPatient(ctx context.Context, patientID uuid.UUID) ([]InsuranceContract, error) {
	return r.listContracts(ctx, "patient_id", patientID)
}

func (r *PgRepository) ListContractsByInsurance(ctx context.Context, insuranceID uuid.UUID) ([]InsuranceContract, error) {
	return r.listContracts(ctx, "insurance_id", insuranceID)
}

// DeleteContract removes the contract and its coverages in one
// transaction, mirroring cascade-on-delete ownership.
func (r *PgRepository) DeleteContract(ctx context.Context, id uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM coverages WHERE contract_id = $1`, id); err != nil {
		return fmt.Errorf("delete contract coverages: %w", err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM insurance_contracts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete contract: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrContractNotFound
	}

	return tx.Commit(ctx)
}

// FirstActiveContract keeps the original selection rule: first active
// contract in insertion order, not the most recent one.
func (r *PgRepository) FirstActiveContract(ctx context.Context, patientID uuid.UUID) (*InsuranceContract, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+contractColumns+`
		FROM insurance_contracts
		WHERE patient_id = $1 AND active = TRUE
		ORDER BY created_at
		LIMIT 1
	`, patientID)

	c, err := scanContract(row)
	if err != nil {
		if errors.Is(err, ErrContractNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return c, nil
}

// Coverages

func scanCoverage(row pgx.Row) (*Coverage, error) {
	var cov Coverage

	err := row.Scan(
		&cov.ID,
		&cov.CoverageType,
		&cov.CoverageRate,
		&cov.CoverageCeiling,
		&cov.ContractID,
		&cov.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCoverageNotFound
		}
		return nil, err
	}

	return &cov, nil
}

func (r *PgRepository) AddCoverage(ctx context.Context, cov *Coverage) (*Coverage, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO coverages (id, coverage_type, coverage_rate, coverage_ceiling, contract_id, created_at)
		VALUES ($1, $2, $3, $4, $5, now())
		RETURNING id, coverage_type, coverage_rate, coverage_ceiling, contract_id, created_at
	`, cov.ID, cov.CoverageType, cov.CoverageRate, cov.CoverageCeiling, cov.ContractID)

	saved, err := scanCoverage(row)
	if err != nil {
		return nil, fmt.Errorf("add coverage: %w", err)
	}
	return saved, nil
}

func (r *PgRepository) GetCoverageByID(ctx context.Context, id uuid.UUID) (*Coverage, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, coverage_type, coverage_rate, coverage_ceiling, contract_id, created_at
		FROM coverages
		WHERE id = $1
	`, id)
	return scanCoverage(row)
}

func (r *PgRepository) ListCoveragesByContract(ctx context.Context, contractID uuid.UUID) ([]Coverage, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, coverage_type, coverage_rate, coverage_ceiling, contract_id, created_at
		FROM coverages
		WHERE contract_id = $1
		ORDER BY created_at
	`, contractID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Coverage
	for rows.Next() {
		cov, err := scanCoverage(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *cov)
	}
	return result, rows.Err()
}

func (r *PgRepository) DeleteCoverage(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM coverages WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete coverage: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrCoverageNotFound
	}
	return nil
}
