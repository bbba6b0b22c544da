package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/armacare/insurance-admin/internal/billing"
	"github.com/armacare/insurance-admin/internal/insurance"
	"github.com/armacare/insurance-admin/internal/professional"
)

// Professionals

type ProfessionalRequest struct {
	FirstName          string  `json:"first_name"`
	LastName           string  `json:"last_name"`
	Speciality         string  `json:"speciality"`
	RegistrationNumber string  `json:"registration_number"`
	Phone              string  `json:"phone"`
	Email              *string `json:"email,omitempty"`
	Address            string  `json:"address,omitempty"`
	City               string  `json:"city,omitempty"`
	Country            string  `json:"country,omitempty"`

	IdentityDocumentPath      string `json:"identity_document_path,omitempty"`
	DiplomaPath               string `json:"diploma_path,omitempty"`
	LicensePath               string `json:"license_path,omitempty"`
	ProfessionalInsurancePath string `json:"professional_insurance_path,omitempty"`
	BankAccountNumberPath     string `json:"bank_account_number_path,omitempty"`

	AccountStatus      string `json:"account_status,omitempty"`
	StatusChangeReason string `json:"status_change_reason,omitempty"`

	// Accepted and ignored: lifecycle transitions stamp the server time.
	StatusChangeDate *time.Time `json:"status_change_date,omitempty"`
}

type ProfessionalResponse struct {
	ID                 uuid.UUID `json:"id"`
	FirstName          string    `json:"first_name"`
	LastName           string    `json:"last_name"`
	Speciality         string    `json:"speciality"`
	RegistrationNumber string    `json:"registration_number"`
	Phone              string    `json:"phone"`
	Email              *string   `json:"email,omitempty"`
	Address            string    `json:"address,omitempty"`
	City               string    `json:"city,omitempty"`
	Country            string    `json:"country"`

	IdentityDocumentPath      string `json:"identity_document_path,omitempty"`
	DiplomaPath               string `json:"diploma_path,omitempty"`
	LicensePath               string `json:"license_path,omitempty"`
	ProfessionalInsurancePath string `json:"professional_insurance_path,omitempty"`
	BankAccountNumberPath     string `json:"bank_account_number_path,omitempty"`

	AccountStatus      string    `json:"account_status"`
	StatusChangeReason string    `json:"status_change_reason"`
	StatusChangeDate   time.Time `json:"status_change_date"`
}

func toProfessionalResponse(p *professional.Professional) ProfessionalResponse {
	return ProfessionalResponse{
		ID:                        p.ID,
		FirstName:                 p.FirstName,
		LastName:                  p.LastName,
		Speciality:                p.Speciality,
		RegistrationNumber:        p.RegistrationNumber,
		Phone:                     p.Phone,
		Email:                     p.Email,
		Address:                   p.Address,
		City:                      p.City,
		Country:                   p.Country,
		IdentityDocumentPath:      p.IdentityDocumentPath,
		DiplomaPath:               p.DiplomaPath,
		LicensePath:               p.LicensePath,
		ProfessionalInsurancePath: p.ProfessionalInsurancePath,
		BankAccountNumberPath:     p.BankAccountNumberPath,
		AccountStatus:             string(p.AccountStatus),
		StatusChangeReason:        p.StatusChangeReason,
		StatusChangeDate:          p.StatusChangeDate,
	}
}

func toProfessionalResponses(list []professional.Professional) []ProfessionalResponse {
	result := make([]ProfessionalResponse, 0, len(list))
	for i := range list {
		result = append(result, toProfessionalResponse(&list[i]))
	}
	return result
}

// Patients

type PatientRequest struct {
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	DateOfBirth *string `json:"date_of_birth,omitempty"` // YYYY-MM-DD
	Gender      string  `json:"gender,omitempty"`
	NationalID  string  `json:"national_id"`
	Address     string  `json:"address,omitempty"`
	City        string  `json:"city,omitempty"`
	PostalCode  string  `json:"postal_code,omitempty"`
	Country     string  `json:"country,omitempty"`
	Phone       string  `json:"phone"`
	Email       *string `json:"email,omitempty"`

	BloodGroup        string `json:"blood_group,omitempty"`
	Allergies         string `json:"allergies,omitempty"`
	MedicalConditions string `json:"medical_conditions,omitempty"`

	Active *bool `json:"active,omitempty"`
}

type PatientResponse struct {
	ID          uuid.UUID `json:"id"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	DateOfBirth *string   `json:"date_of_birth,omitempty"`
	Gender      string    `json:"gender,omitempty"`
	NationalID  string    `json:"national_id"`
	Address     string    `json:"address,omitempty"`
	City        string    `json:"city,omitempty"`
	PostalCode  string    `json:"postal_code,omitempty"`
	Country     string    `json:"country"`
	Phone       string    `json:"phone"`
	Email       *string   `json:"email,omitempty"`

	BloodGroup        string `json:"blood_group,omitempty"`
	Allergies         string `json:"allergies,omitempty"`
	MedicalConditions string `json:"medical_conditions,omitempty"`

	Active bool `json:"active"`
}

func toPatientResponse(p *insurance.Patient) PatientResponse {
	return PatientResponse{
		ID:                p.ID,
		FirstName:         p.FirstName,
		LastName:          p.LastName,
		DateOfBirth:       formatDate(p.DateOfBirth),
		Gender:            p.Gender,
		NationalID:        p.NationalID,
		Address:           p.Address,
		City:              p.City,
		PostalCode:        p.PostalCode,
		Country:           p.Country,
		Phone:             p.Phone,
		Email:             p.Email,
		BloodGroup:        p.BloodGroup,
		Allergies:         p.Allergies,
		MedicalConditions: p.MedicalConditions,
		Active:            p.Active,
	}
}

// Insurers

type InsuranceRequest struct {
	Name        string  `json:"name"`
	Type        string  `json:"type"`
	Email       *string `json:"email,omitempty"`
	PhoneNumber string  `json:"phone_number"`
	Address     string  `json:"address,omitempty"`
	City        string  `json:"city,omitempty"`
	PostalCode  string  `json:"postal_code,omitempty"`
	Country     string  `json:"country,omitempty"`

	Username string `json:"username,omitempty"`
	Password string `json:"password,omitempty"`

	LicenseNumber string `json:"license_number,omitempty"`

	ContactPersonName     string `json:"contact_person_name,omitempty"`
	ContactPersonPosition string `json:"contact_person_position,omitempty"`
	ContactPersonEmail    string `json:"contact_person_email,omitempty"`
	ContactPersonPhone    string `json:"contact_person_phone,omitempty"`

	RegistrationNumber    string  `json:"registration_number,omitempty"`
	RegistrationDate      *string `json:"registration_date,omitempty"`
	ArmaContractNumber    string  `json:"arma_contract_number,omitempty"`
	ArmaContractStartDate *string `json:"arma_contract_start_date,omitempty"`
	ArmaContractEndDate   *string `json:"arma_contract_end_date,omitempty"`

	RegistrationDocumentPath string `json:"registration_document_path,omitempty"`
	LicensePath              string `json:"license_path,omitempty"`
	ArmaContractPath         string `json:"arma_contract_path,omitempty"`

	Active *bool `json:"active,omitempty"`
}

type InsuranceResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Type        string    `json:"type"`
	Email       *string   `json:"email,omitempty"`
	PhoneNumber string    `json:"phone_number"`
	Address     string    `json:"address,omitempty"`
	City        string    `json:"city,omitempty"`
	PostalCode  string    `json:"postal_code,omitempty"`
	Country     string    `json:"country"`

	Username string `json:"username,omitempty"`

	LicenseNumber string `json:"license_number,omitempty"`

	ContactPersonName     string `json:"contact_person_name,omitempty"`
	ContactPersonPosition string `json:"contact_person_position,omitempty"`
	ContactPersonEmail    string `json:"contact_person_email,omitempty"`
	ContactPersonPhone    string `json:"contact_person_phone,omitempty"`

	RegistrationNumber    string  `json:"registration_number,omitempty"`
	RegistrationDate      *string `json:"registration_date,omitempty"`
	ArmaContractNumber    string  `json:"arma_contract_number,omitempty"`
	ArmaContractStartDate *string `json:"arma_contract_start_date,omitempty"`
	ArmaContractEndDate   *string `json:"arma_contract_end_date,omitempty"`

	RegistrationDocumentPath string `json:"registration_document_path,omitempty"`
	LicensePath              string `json:"license_path,omitempty"`
	ArmaContractPath         string `json:"arma_contract_path,omitempty"`

	Active bool `json:"active"`
}

// Password is write-only: accepted on requests, never echoed back.
func toInsuranceResponse(ins *insurance.Insurance) InsuranceResponse {
	return InsuranceResponse{
		ID:                       ins.ID,
		Name:                     ins.Name,
		Type:                     ins.Type,
		Email:                    ins.Email,
		PhoneNumber:              ins.PhoneNumber,
		Address:                  ins.Address,
		City:                     ins.City,
		PostalCode:               ins.PostalCode,
		Country:                  ins.Country,
		Username:                 ins.Username,
		LicenseNumber:            ins.LicenseNumber,
		ContactPersonName:        ins.ContactPersonName,
		ContactPersonPosition:    ins.ContactPersonPosition,
		ContactPersonEmail:       ins.ContactPersonEmail,
		ContactPersonPhone:       ins.ContactPersonPhone,
		RegistrationNumber:       ins.RegistrationNumber,
		RegistrationDate:         formatDate(ins.RegistrationDate),
		ArmaContractNumber:       ins.ArmaContractNumber,
		ArmaContractStartDate:    formatDate(ins.ArmaContractStartDate),
		ArmaContractEndDate:      formatDate(ins.ArmaContractEndDate),
		RegistrationDocumentPath: ins.RegistrationDocumentPath,
		LicensePath:              ins.LicensePath,
		ArmaContractPath:         ins.ArmaContractPath,
		Active:                   ins.Active,
	}
}

// Contracts

type ContractRequest struct {
	ContractNumber string   `json:"contract_number"`
	ContractType   string   `json:"contract_type"`
	StartDate      string   `json:"start_date"`         // YYYY-MM-DD, required
	EndDate        *string  `json:"end_date,omitempty"` // present-or-future when set
	Deductible     *float64 `json:"deductible,omitempty"`
	Active         *bool    `json:"active,omitempty"` // defaults to true
	PatientID      string   `json:"patient_id"`
	InsuranceID    string   `json:"insurance_id"`
}

type ContractResponse struct {
	ID             uuid.UUID `json:"id"`
	ContractNumber string    `json:"contract_number"`
	ContractType   string    `json:"contract_type"`
	StartDate      string    `json:"start_date"`
	EndDate        *string   `json:"end_date,omitempty"`
	Deductible     *float64  `json:"deductible,omitempty"`
	Active         bool      `json:"active"`
	PatientID      uuid.UUID `json:"patient_id"`
	InsuranceID    uuid.UUID `json:"insurance_id"`
}

func toContractResponse(c *insurance.InsuranceContract) ContractResponse {
	return ContractResponse{
		ID:             c.ID,
		ContractNumber: c.ContractNumber,
		ContractType:   c.ContractType,
		StartDate:      c.StartDate.Format(dateLayout),
		EndDate:        formatDate(c.EndDate),
		Deductible:     c.Deductible,
		Active:         c.Active,
		PatientID:      c.PatientID,
		InsuranceID:    c.InsuranceID,
	}
}

// Coverages

type CoverageRequest struct {
	CoverageType    string   `json:"coverage_type"`
	CoverageRate    int      `json:"coverage_rate"` // percent, 1-100
	CoverageCeiling *float64 `json:"coverage_ceiling,omitempty"`
}

type CoverageResponse struct {
	ID              uuid.UUID `json:"id"`
	CoverageType    string    `json:"coverage_type"`
	CoverageRate    int       `json:"coverage_rate"`
	CoverageCeiling *float64  `json:"coverage_ceiling,omitempty"`
	ContractID      uuid.UUID `json:"contract_id"`
}

func toCoverageResponse(cov *insurance.Coverage) CoverageResponse {
	return CoverageResponse{
		ID:              cov.ID,
		CoverageType:    cov.CoverageType,
		CoverageRate:    cov.CoverageRate,
		CoverageCeiling: cov.CoverageCeiling,
		ContractID:      cov.ContractID,
	}
}

// Invoices

type InvoiceRequest struct {
	InvoiceDate        *string  `json:"invoice_date,omitempty"` // defaults to today
	TotalAmount        *float64 `json:"total_amount"`
	ReimbursableAmount *float64 `json:"reimbursable_amount"`
	Status             string   `json:"status,omitempty"` // defaults to PENDING
	ProfessionalID     string   `json:"professional_id"`
	PatientID          string   `json:"patient_id"`
	ContractID         string   `json:"contract_id"`

	InvoiceDocumentPath string `json:"invoice_document_path,omitempty"`
}

type InvoiceStatusRequest struct {
	Status string `json:"status"`
}

type InvoiceResponse struct {
	ID                 uuid.UUID `json:"id"`
	InvoiceDate        string    `json:"invoice_date"`
	TotalAmount        float64   `json:"total_amount"`
	ReimbursableAmount float64   `json:"reimbursable_amount"`

	// Derived on every read, never stored.
	PatientShare float64 `json:"patient_share"`

	Status         string    `json:"status"`
	ProfessionalID uuid.UUID `json:"professional_id"`
	PatientID      uuid.UUID `json:"patient_id"`
	ContractID     uuid.UUID `json:"contract_id"`

	InvoiceDocumentPath string `json:"invoice_document_path,omitempty"`
}

func toInvoiceResponse(inv *billing.Invoice) InvoiceResponse {
	return InvoiceResponse{
		ID:                  inv.ID,
		InvoiceDate:         inv.InvoiceDate.Format(dateLayout),
		TotalAmount:         inv.TotalAmount,
		ReimbursableAmount:  inv.ReimbursableAmount,
		PatientShare:        inv.PatientShare(),
		Status:              string(inv.Status),
		ProfessionalID:      inv.ProfessionalID,
		PatientID:           inv.PatientID,
		ContractID:          inv.ContractID,
		InvoiceDocumentPath: inv.InvoiceDocumentPath,
	}
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}
