package professional

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

const professionalColumns = `
	id, first_name, last_name, speciality, registration_number, phone, email,
	address, city, country,
	identity_document_path, diploma_path, license_path,
	professional_insurance_path, bank_account_number_path,
	account_status, status_change_reason, status_change_date,
	created_at, updated_at`

func scanProfessional(row pgx.Row) (*Professional, error) {
	var p Professional
	var email *string

	err := row.Scan(
		&p.ID,
		&p.FirstName,
		&p.LastName,
		&p.Speciality,
		&p.RegistrationNumber,
		&p.Phone,
		&email,
		&p.Address,
		&p.City,
		&p.Country,
		&p.IdentityDocumentPath,
		&p.DiplomaPath,
		&p.LicensePath,
		&p.ProfessionalInsurancePath,
		&p.BankAccountNumberPath,
		&p.AccountStatus,
		&p.StatusChangeReason,
		&p.StatusChangeDate,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProfessionalNotFound
		}
		return nil, err
	}

	p.Email = email
	return &p, nil
}

func (r *PgRepository) collect(rows pgx.Rows) ([]Professional, error) {
	defer rows.Close()

	var result []Professional
	for rows.Next() {
		p, err := scanProfessional(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func (r *PgRepository) GetByID(ctx context.Context, id uuid.UUID) (*Professional, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+professionalColumns+`
		FROM professionals
		WHERE id = $1
	`, id)
	return scanProfessional(row)
}

func (r *PgRepository) List(ctx context.Context) ([]Professional, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+professionalColumns+`
		FROM professionals
		ORDER BY created_at
	`)
	if err != nil {
		return nil, err
	}
	return r.collect(rows)
}

func (r *PgRepository) Save(ctx context.Context, p *Professional) (*Professional, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO professionals (
			id, first_name, last_name, speciality, registration_number, phone, email,
			address, city, country,
			identity_document_path, diploma_path, license_path,
			professional_insurance_path, bank_account_number_path,
			account_status, status_change_reason, status_change_date,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
		        $11, $12, $13, $14, $15, $16, $17, $18, now(), now())
		ON CONFLICT (id) DO UPDATE SET
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			speciality = EXCLUDED.speciality,
			registration_number = EXCLUDED.registration_number,
			phone = EXCLUDED.phone,
			email = EXCLUDED.email,
			address = EXCLUDED.address,
			city = EXCLUDED.city,
			country = EXCLUDED.country,
			identity_document_path = EXCLUDED.identity_document_path,
			diploma_path = EXCLUDED.diploma_path,
			license_path = EXCLUDED.license_path,
			professional_insurance_path = EXCLUDED.professional_insurance_path,
			bank_account_number_path = EXCLUDED.bank_account_number_path,
			account_status = EXCLUDED.account_status,
			status_change_reason = EXCLUDED.status_change_reason,
			status_change_date = EXCLUDED.status_change_date,
			updated_at = now()
		RETURNING `+professionalColumns,
		p.ID, p.FirstName, p.LastName, p.Speciality, p.RegistrationNumber, p.Phone, p.Email,
		p.Address, p.City, p.Country,
		p.IdentityDocumentPath, p.DiplomaPath, p.LicensePath,
		p.ProfessionalInsurancePath, p.BankAccountNumberPath,
		p.AccountStatus, p.StatusChangeReason, p.StatusChangeDate,
	)

	saved, err := scanProfessional(row)
	if err != nil {
		return nil, fmt.Errorf("save professional: %w", err)
	}
	return saved, nil
}

// findByUnique wraps single-row lookups that report absence as (nil, nil).
func (r *PgRepository) findByUnique(ctx context.Context, column, value string) (*Professional, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+professionalColumns+`
		FROM professionals
		WHERE `+column+` = $1
	`, value)

	p, err := scanProfessional(row)
	if err != nil {
		if errors.Is(err, ErrProfessionalNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return p, nil
}

func (r *PgRepository) FindByEmail(ctx context.Context, email string) (*Professional, error) {
	return r.findByUnique(ctx, "email", email)
}

func (r *PgRepository) FindByPhone(ctx context.Context, phone string) (*Professional, error) {
	return r.findByUnique(ctx, "phone", phone)
}

func (r *PgRepository) FindByRegistrationNumber(ctx context.Context, registrationNumber string) (*Professional, error) {
	return r.findByUnique(ctx, "registration_number", registrationNumber)
}

func (r *PgRepository) ListBySpeciality(ctx context.Context, speciality string) ([]Professional, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+professionalColumns+`
		FROM professionals
		WHERE speciality = $1
		ORDER BY created_at
	`, speciality)
	if err != nil {
		return nil, err
	}
	return r.collect(rows)
}

func (r *PgRepository) ListByCity(ctx context.Context, city string) ([]Professional, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+professionalColumns+`
		FROM professionals
		WHERE city = $1
		ORDER BY created_at
	`, city)
	if err != nil {
		return nil, err
	}
	return r.collect(rows)
}

func (r *PgRepository) ListByStatus(ctx context.Context, status AccountStatus) ([]Professional, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+professionalColumns+`
		FROM professionals
		WHERE account_status = $1
		ORDER BY created_at
	`, status)
	if err != nil {
		return nil, err
	}
	return r.collect(rows)
}

func (r *PgRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM professionals WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete professional: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrProfessionalNotFound
	}
	return nil
}
