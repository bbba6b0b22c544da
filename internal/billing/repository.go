package billing

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrInvoiceNotFound = errors.New("invoice not found")

type Repository interface {
	Save(ctx context.Context, inv *Invoice) (*Invoice, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Invoice, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]Invoice, error)
	ListByProfessional(ctx context.Context, professionalID uuid.UUID) ([]Invoice, error)
	ListByContract(ctx context.Context, contractID uuid.UUID) ([]Invoice, error)
	DeleteByID(ctx context.Context, id uuid.UUID) error
}
