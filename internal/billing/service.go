package billing

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create persists a new invoice. The date defaults to the creation day
// and the status to PENDING when left unset.
func (s *Service) Create(ctx context.Context, inv *Invoice) (*Invoice, error) {
	inv.ID = uuid.New()
	if inv.InvoiceDate.IsZero() {
		inv.InvoiceDate = Today()
	}
	if inv.Status == "" {
		inv.Status = StatusPending
	}
	return s.repo.Save(ctx, inv)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Invoice, error) {
	inv, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrInvoiceNotFound) {
			return nil, fmt.Errorf("invoice %s: %w", id, ErrInvoiceNotFound)
		}
		return nil, fmt.Errorf("load invoice: %w", err)
	}
	return inv, nil
}

// UpdateStatus sets the invoice status. The status is independent of
// the amounts: REIMBURSED does not require a positive reimbursable
// amount.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status InvoiceStatus) (*Invoice, error) {
	inv, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	inv.Status = status
	return s.repo.Save(ctx, inv)
}

func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]Invoice, error) {
	return s.repo.ListByPatient(ctx, patientID)
}

func (s *Service) ListByProfessional(ctx context.Context, professionalID uuid.UUID) ([]Invoice, error) {
	return s.repo.ListByProfessional(ctx, professionalID)
}

func (s *Service) ListByContract(ctx context.Context, contractID uuid.UUID) ([]Invoice, error) {
	return s.repo.ListByContract(ctx, contractID)
}
