package insurance

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrPatientNotFound   = errors.New("patient not found")
	ErrInsuranceNotFound = errors.New("insurance not found")
	ErrContractNotFound  = errors.New("insurance contract not found")
	ErrCoverageNotFound  = errors.New("coverage not found")
)

// Repository contains all DB interactions needed by the service.
type Repository interface {
	SavePatient(ctx context.Context, p *Patient) (*Patient, error)
	GetPatientByID(ctx context.Context, id uuid.UUID) (*Patient, error)
	ListPatients(ctx context.Context) ([]Patient, error)
	FindPatientByNationalID(ctx context.Context, nationalID string) (*Patient, error)
	DeletePatient(ctx context.Context, id uuid.UUID) error

	SaveInsurance(ctx context.Context, ins *Insurance) (*Insurance, error)
	GetInsuranceByID(ctx context.Context, id uuid.UUID) (*Insurance, error)
	ListInsurances(ctx context.Context) ([]Insurance, error)
	DeleteInsurance(ctx context.Context, id uuid.UUID) error

	SaveContract(ctx context.Context, c *InsuranceContract) (*InsuranceContract, error)
	GetContractByID(ctx context.Context, id uuid.UUID) (*InsuranceContract, error)
	ListContractsByPatient(ctx context.Context, patientID uuid.UUID) ([]InsuranceContract, error)
	ListContractsByInsurance(ctx context.Context, insuranceID uuid.UUID) ([]InsuranceContract, error)

	// DeleteContract removes the contract and all of its coverages.
	DeleteContract(ctx context.Context, id uuid.UUID) error

	// FirstActiveContract returns the patient's first active contract
	// in insertion order, or (nil, nil) when none is active.
	FirstActiveContract(ctx context.Context, patientID uuid.UUID) (*InsuranceContract, error)

	AddCoverage(ctx context.Context, cov *Coverage) (*Coverage, error)
	GetCoverageByID(ctx context.Context, id uuid.UUID) (*Coverage, error)
	ListCoveragesByContract(ctx context.Context, contractID uuid.UUID) ([]Coverage, error)
	DeleteCoverage(ctx context.Context, id uuid.UUID) error
}
