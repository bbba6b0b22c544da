package billing

import (
	"time"

	"github.com/google/uuid"
)

type InvoiceStatus string

const (
	StatusPending             InvoiceStatus = "PENDING"
	StatusPaid                InvoiceStatus = "PAID"
	StatusRejected            InvoiceStatus = "REJECTED"
	StatusReimbursed          InvoiceStatus = "REIMBURSED"
	StatusPartiallyReimbursed InvoiceStatus = "PARTIALLY_REIMBURSED"
)

func (s InvoiceStatus) Valid() bool {
	switch s {
	case StatusPending, StatusPaid, StatusRejected, StatusReimbursed, StatusPartiallyReimbursed:
		return true
	}
	return false
}

// Invoice references a professional, a patient and a contract but owns
// none of them. The status is caller-set; nothing ties it to the
// amounts.
type Invoice struct {
	ID                 uuid.UUID
	InvoiceDate        time.Time
	TotalAmount        float64
	ReimbursableAmount float64
	Status             InvoiceStatus

	ProfessionalID uuid.UUID
	PatientID      uuid.UUID
	ContractID     uuid.UUID

	InvoiceDocumentPath string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// PatientShare is the out-of-pocket part of the invoice, recomputed on
// every read and never stored. The reimbursable amount may exceed the
// total, in which case the share goes negative; no clamping.
func (i *Invoice) PatientShare() float64 {
	return i.TotalAmount - i.ReimbursableAmount
}

// Today is the calendar day in UTC, the granularity of the DATE
// columns. Both the invoice-date default and date validation use it.
func Today() time.Time {
	y, m, d := time.Now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
