package insurance

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type Service struct {
	repo Repository
	log  zerolog.Logger
}

func NewService(repo Repository, log zerolog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log,
	}
}

// Patients

func (s *Service) CreatePatient(ctx context.Context, p *Patient) (*Patient, error) {
	p.ID = uuid.New()
	if p.Country == "" {
		p.Country = DefaultCountry
	}
	return s.repo.SavePatient(ctx, p)
}

func (s *Service) UpdatePatient(ctx context.Context, id uuid.UUID, p *Patient) (*Patient, error) {
	existing, err := s.GetPatient(ctx, id)
	if err != nil {
		return nil, err
	}

	p.ID = existing.ID
	p.CreatedAt = existing.CreatedAt
	if p.Country == "" {
		p.Country = DefaultCountry
	}
	return s.repo.SavePatient(ctx, p)
}

func (s *Service) GetPatient(ctx context.Context, id uuid.UUID) (*Patient, error) {
	p, err := s.repo.GetPatientByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrPatientNotFound) {
			return nil, fmt.Errorf("patient %s: %w", id, ErrPatientNotFound)
		}
		return nil, fmt.Errorf("load patient: %w", err)
	}
	return p, nil
}

func (s *Service) ListPatients(ctx context.Context) ([]Patient, error) {
	return s.repo.ListPatients(ctx)
}

func (s *Service) FindPatientByNationalID(ctx context.Context, nationalID string) (*Patient, error) {
	return s.repo.FindPatientByNationalID(ctx, nationalID)
}

func (s *Service) DeletePatient(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeletePatient(ctx, id)
}

// CurrentInsurance resolves the insurer backing the patient's first
// active contract in insertion order. (nil, nil) means the patient has
// no active contract. A patient with several active contracts gets an
// order-dependent answer, not the most recent one.
func (s *Service) CurrentInsurance(ctx context.Context, patientID uuid.UUID) (*Insurance, error) {
	if _, err := s.GetPatient(ctx, patientID); err != nil {
		return nil, err
	}

	contract, err := s.repo.FirstActiveContract(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("resolve current insurance: %w", err)
	}
	if contract == nil {
		return nil, nil
	}

	ins, err := s.repo.GetInsuranceByID(ctx, contract.InsuranceID)
	if err != nil {
		return nil, fmt.Errorf("load insurer for contract %s: %w", contract.ID, err)
	}
	return ins, nil
}

// Insurers

func (s *Service) CreateInsurance(ctx context.Context, ins *Insurance) (*Insurance, error) {
	ins.ID = uuid.New()
	if ins.Country == "" {
		ins.Country = DefaultCountry
	}
	return s.repo.SaveInsurance(ctx, ins)
}

func (s *Service) UpdateInsurance(ctx context.Context, id uuid.UUID, ins *Insurance) (*Insurance, error) {
	existing, err := s.GetInsurance(ctx, id)
	if err != nil {
		return nil, err
	}

	ins.ID = existing.ID
	ins.CreatedAt = existing.CreatedAt
	if ins.Country == "" {
		ins.Country = DefaultCountry
	}
	return s.repo.SaveInsurance(ctx, ins)
}

func (s *Service) GetInsurance(ctx context.Context, id uuid.UUID) (*Insurance, error) {
	ins, err := s.repo.GetInsuranceByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrInsuranceNotFound) {
			return nil, fmt.Errorf("insurance %s: %w", id, ErrInsuranceNotFound)
		}
		return nil, fmt.Errorf("load insurance: %w", err)
	}
	return ins, nil
}

func (s *Service) ListInsurances(ctx context.Context) ([]Insurance, error) {
	return s.repo.ListInsurances(ctx)
}

func (s *Service) DeleteInsurance(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteInsurance(ctx, id)
}

// Contracts

func (s *Service) CreateContract(ctx context.Context, c *InsuranceContract) (*InsuranceContract, error) {
	if _, err := s.GetPatient(ctx, c.PatientID); err != nil {
		return nil, err
	}
	if _, err := s.GetInsurance(ctx, c.InsuranceID); err != nil {
		return nil, err
	}

	c.ID = uuid.New()
	saved, err := s.repo.SaveContract(ctx, c)
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("contract_id", saved.ID.String()).
		Str("contract_number", saved.ContractNumber).
		Str("patient_id", saved.PatientID.String()).
		Msg("contract created")

	return saved, nil
}

func (s *Service) UpdateContract(ctx context.Context, id uuid.UUID, c *InsuranceContract) (*InsuranceContract, error) {
	existing, err := s.GetContract(ctx, id)
	if err != nil {
		return nil, err
	}

	c.ID = existing.ID
	c.CreatedAt = existing.CreatedAt
	return s.repo.SaveContract(ctx, c)
}

func (s *Service) GetContract(ctx context.Context, id uuid.UUID) (*InsuranceContract, error) {
	c, err := s.repo.GetContractByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrContractNotFound) {
			return nil, fmt.Errorf("contract %s: %w", id, ErrContractNotFound)
		}
		return nil, fmt.Errorf("load contract: %w", err)
	}
	return c, nil
}

func (s *Service) ListContractsByPatient(ctx context.Context, patientID uuid.UUID) ([]InsuranceContract, error) {
	return s.repo.ListContractsByPatient(ctx, patientID)
}

func (s *Service) ListContractsByInsurance(ctx context.Context, insuranceID uuid.UUID) ([]InsuranceContract, error) {
	return s.repo.ListContractsByInsurance(ctx, insuranceID)
}

// DeleteContract removes the contract together with its coverages.
func (s *Service) DeleteContract(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteContract(ctx, id)
}

// Coverages

// AddCoverage attaches a new coverage line item to an existing
// contract.
func (s *Service) AddCoverage(ctx context.Context, contractID uuid.UUID, cov *Coverage) (*Coverage, error) {
	if _, err := s.GetContract(ctx, contractID); err != nil {
		return nil, err
	}

	cov.ID = uuid.New()
	cov.ContractID = contractID
	return s.repo.AddCoverage(ctx, cov)
}

func (s *Service) ListCoverages(ctx context.Context, contractID uuid.UUID) ([]Coverage, error) {
	if _, err := s.GetContract(ctx, contractID); err != nil {
		return nil, err
	}
	return s.repo.ListCoveragesByContract(ctx, contractID)
}

// RemoveCoverage detaches a coverage from its contract; detached
// coverages are deleted outright, there is no orphan state.
func (s *Service) RemoveCoverage(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteCoverage(ctx, id)
}
