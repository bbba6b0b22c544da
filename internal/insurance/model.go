package insurance

import (
	"time"

	"github.com/google/uuid"
)

const DefaultCountry = "Sénégal"

// Patient is the insured person. Contracts are owned by the patient
// but live in their own table; the patient's contract collection is a
// query, not an in-memory list.
type Patient struct {
	ID          uuid.UUID
	FirstName   string
	LastName    string
	DateOfBirth *time.Time
	Gender      string // "M" or "F"
	NationalID  string
	Address     string
	City        string
	PostalCode  string
	Country     string
	Phone       string
	Email       *string

	BloodGroup        string
	Allergies         string
	MedicalConditions string

	Active bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (p *Patient) FullName() string {
	return p.FirstName + " " + p.LastName
}

// Insurance is an insurer with a framework contract with ARMA-CARE.
type Insurance struct {
	ID          uuid.UUID
	Name        string
	Type        string
	Email       *string
	PhoneNumber string
	Address     string
	City        string
	PostalCode  string
	Country     string

	// Portal credentials. Stored opaque; hashing is the caller's problem.
	Username string
	Password string

	LicenseNumber string

	ContactPersonName     string
	ContactPersonPosition string
	ContactPersonEmail    string
	ContactPersonPhone    string

	RegistrationNumber    string
	RegistrationDate      *time.Time
	ArmaContractNumber    string
	ArmaContractStartDate *time.Time
	ArmaContractEndDate   *time.Time

	RegistrationDocumentPath string
	LicensePath              string
	ArmaContractPath         string

	Active bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// InsuranceContract binds one patient to one insurer for a date range.
type InsuranceContract struct {
	ID             uuid.UUID
	ContractNumber string
	ContractType   string // Basique, Standard, Premium, ...
	StartDate      time.Time
	EndDate        *time.Time
	Deductible     *float64

	// Active is toggled by callers. It is NOT derived from the
	// [StartDate, EndDate] range; an expired contract can still be
	// flagged active and vice versa.
	Active bool

	PatientID   uuid.UUID
	InsuranceID uuid.UUID

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Coverage is one reimbursement rule on a contract. Duplicate types
// within a contract are allowed.
type Coverage struct {
	ID              uuid.UUID
	CoverageType    string // "dentaire", "optique", "hospitalisation", ...
	CoverageRate    int    // percent, 1-100
	CoverageCeiling *float64
	ContractID      uuid.UUID
	CreatedAt       time.Time
}
