package professional

import (
	"time"

	"github.com/google/uuid"
)

type AccountStatus string

const (
	StatusPendingVerification AccountStatus = "PENDING_VERIFICATION"
	StatusActive              AccountStatus = "ACTIVE"
	StatusSuspended           AccountStatus = "SUSPENDED"
	StatusInactive            AccountStatus = "INACTIVE"
)

func (s AccountStatus) Valid() bool {
	switch s {
	case StatusPendingVerification, StatusActive, StatusSuspended, StatusInactive:
		return true
	}
	return false
}

// Default status-change reasons used by the lifecycle operations.
const (
	ReasonAwaitingVerification = "awaiting document verification"
	ReasonAccountActivated     = "account activated"
	ReasonAccountDeletion      = "account deletion"
)

const DefaultCountry = "Sénégal"

type Professional struct {
	ID                 uuid.UUID
	FirstName          string
	LastName           string
	Speciality         string
	RegistrationNumber string
	Phone              string
	Email              *string
	Address            string
	City               string
	Country            string

	// Registration document references. Opaque paths, never validated
	// or dereferenced here.
	IdentityDocumentPath      string
	DiplomaPath               string
	LicensePath               string
	ProfessionalInsurancePath string
	BankAccountNumberPath     string

	AccountStatus      AccountStatus
	StatusChangeReason string
	StatusChangeDate   time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (p *Professional) FullName() string {
	return p.FirstName + " " + p.LastName
}

// IsActive reports whether the account is usable. Only ACTIVE counts;
// pending, suspended and inactive accounts are all unusable.
func (p *Professional) IsActive() bool {
	return p.AccountStatus == StatusActive
}

// ChangeStatus records a lifecycle transition. Status, reason and
// timestamp always move together as one unit; no caller may update the
// status without refreshing the other two.
func (p *Professional) ChangeStatus(status AccountStatus, reason string) {
	p.AccountStatus = status
	p.StatusChangeReason = reason
	p.StatusChangeDate = time.Now()
}
