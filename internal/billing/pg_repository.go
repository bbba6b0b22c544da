package billing

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

const invoiceColumns = `
	id, invoice_date, total_amount, reimbursable_amount, status,
	professional_id, patient_id, contract_id, invoice_document_path,
	created_at, updated_at`

func scanInvoice(row pgx.Row) (*Invoice, error) {
	var inv Invoice

	err := row.Scan(
		&inv.ID,
		&inv.InvoiceDate,
		&inv.TotalAmount,
		&inv.ReimbursableAmount,
		&inv.Status,
		&inv.ProfessionalID,
		&inv.PatientID,
		&inv.ContractID,
		&inv.InvoiceDocumentPath,
		&inv.CreatedAt,
		&inv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInvoiceNotFound
		}
		return nil, err
	}

	return &inv, nil
}

func (r *PgRepository) Save(ctx context.Context, inv *Invoice) (*Invoice, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO invoices (
			id, invoice_date, total_amount, reimbursable_amount, status,
			professional_id, patient_id, contract_id, invoice_document_path,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now(), now())
		ON CONFLICT (id) DO UPDATE SET
			invoice_date = EXCLUDED.invoice_date,
			total_amount = EXCLUDED.total_amount,
			reimbursable_amount = EXCLUDED.reimbursable_amount,
			status = EXCLUDED.status,
			professional_id = EXCLUDED.professional_id,
			patient_id = EXCLUDED.patient_id,
			contract_id = EXCLUDED.contract_id,
			invoice_document_path = EXCLUDED.invoice_document_path,
			updated_at = now()
		RETURNING `+invoiceColumns,
		inv.ID, inv.InvoiceDate, inv.TotalAmount, inv.ReimbursableAmount, inv.Status,
		inv.ProfessionalID, inv.PatientID, inv.ContractID, inv.InvoiceDocumentPath,
	)

	saved, err := scanInvoice(row)
	if err != nil {
		return nil, fmt.Errorf("save invoice: %w", err)
	}
	return saved, nil
}

func (r *PgRepository) GetByID(ctx context.Context, id uuid.UUID) (*Invoice, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+invoiceColumns+`
		FROM invoices
		WHERE id = $1
	`, id)
	return scanInvoice(row)
}

func (r *PgRepository) listBy(ctx context.Context, column string, id uuid.UUID) ([]Invoice, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+invoiceColumns+`
		FROM invoices
		WHERE `+column+` = $1
		ORDER BY created_at
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *inv)
	}
	return result, rows.Err()
}

func (r *PgRepository) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]Invoice, error) {
	return r.listBy(ctx, "patient_id", patientID)
}

func (r *PgRepository) ListByProfessional(ctx context.Context, professionalID uuid.UUID) ([]Invoice, error) {
	return r.listBy(ctx, "professional_id", professionalID)
}

func (r *PgRepository) ListByContract(ctx context.Context, contractID uuid.UUID) ([]Invoice, error) {
	return r.listBy(ctx, "contract_id", contractID)
}

func (r *PgRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM invoices WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrInvoiceNotFound
	}
	return nil
}
