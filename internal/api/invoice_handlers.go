package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/armacare/insurance-admin/internal/billing"
)

func validateInvoiceRequest(req InvoiceRequest) (code, details string) {
	switch {
	case req.TotalAmount == nil:
		return "missing_total_amount", "total_amount is required"
	case *req.TotalAmount < 0:
		return "invalid_total_amount", "total_amount must not be negative"
	case req.ReimbursableAmount == nil:
		return "missing_reimbursable_amount", "reimbursable_amount is required"
	case *req.ReimbursableAmount < 0:
		return "invalid_reimbursable_amount", "reimbursable_amount must not be negative"
	}

	// Note: nothing requires reimbursable_amount <= total_amount; the
	// patient share simply goes negative in that case.

	if req.InvoiceDate != nil {
		if _, err := parseDate(*req.InvoiceDate); err != nil {
			return "invalid_invoice_date", "invoice_date must be YYYY-MM-DD"
		}
	}

	if req.Status != "" && !billing.InvoiceStatus(req.Status).Valid() {
		return "invalid_status", "status must be one of PENDING, PAID, REJECTED, REIMBURSED, PARTIALLY_REIMBURSED"
	}

	if _, err := uuid.Parse(req.ProfessionalID); err != nil {
		return "invalid_professional_id", "professional_id must be a valid UUID"
	}
	if _, err := uuid.Parse(req.PatientID); err != nil {
		return "invalid_patient_id", "patient_id must be a valid UUID"
	}
	if _, err := uuid.Parse(req.ContractID); err != nil {
		return "invalid_contract_id", "contract_id must be a valid UUID"
	}

	return "", ""
}

func invoiceFromRequest(req InvoiceRequest) *billing.Invoice {
	inv := &billing.Invoice{
		TotalAmount:         *req.TotalAmount,
		ReimbursableAmount:  *req.ReimbursableAmount,
		Status:              billing.InvoiceStatus(req.Status),
		InvoiceDocumentPath: req.InvoiceDocumentPath,
	}

	if req.InvoiceDate != nil {
		d, _ := parseDate(*req.InvoiceDate)
		inv.InvoiceDate = d
	}

	inv.ProfessionalID, _ = uuid.Parse(req.ProfessionalID)
	inv.PatientID, _ = uuid.Parse(req.PatientID)
	inv.ContractID, _ = uuid.Parse(req.ContractID)

	return inv
}

func handleInvoiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, billing.ErrInvoiceNotFound):
		writeError(w, http.StatusNotFound, "invoice_not_found", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
	}
}

func createInvoiceHandler(svc *billing.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req InvoiceRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		if code, details := validateInvoiceRequest(req); code != "" {
			writeError(w, http.StatusBadRequest, code, details)
			return
		}

		inv, err := svc.Create(r.Context(), invoiceFromRequest(req))
		if err != nil {
			handleInvoiceError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toInvoiceResponse(inv))
	}
}

func getInvoiceHandler(svc *billing.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_invoice_id", "id must be a valid UUID")
			return
		}

		inv, err := svc.Get(r.Context(), id)
		if err != nil {
			handleInvoiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toInvoiceResponse(inv))
	}
}

// listInvoicesHandler filters by exactly one of patient_id,
// professional_id or contract_id.
func listInvoicesHandler(svc *billing.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		var (
			list []billing.Invoice
			err  error
		)

		switch {
		case q.Get("patient_id") != "":
			id, parseErr := uuid.Parse(q.Get("patient_id"))
			if parseErr != nil {
				writeError(w, http.StatusBadRequest, "invalid_patient_id", "patient_id must be a valid UUID")
				return
			}
			list, err = svc.ListByPatient(r.Context(), id)
		case q.Get("professional_id") != "":
			id, parseErr := uuid.Parse(q.Get("professional_id"))
			if parseErr != nil {
				writeError(w, http.StatusBadRequest, "invalid_professional_id", "professional_id must be a valid UUID")
				return
			}
			list, err = svc.ListByProfessional(r.Context(), id)
		case q.Get("contract_id") != "":
			id, parseErr := uuid.Parse(q.Get("contract_id"))
			if parseErr != nil {
				writeError(w, http.StatusBadRequest, "invalid_contract_id", "contract_id must be a valid UUID")
				return
			}
			list, err = svc.ListByContract(r.Context(), id)
		default:
			writeError(w, http.StatusBadRequest, "missing_filter", "one of patient_id, professional_id or contract_id is required")
			return
		}

		if err != nil {
			handleInvoiceError(w, err)
			return
		}

		result := make([]InvoiceResponse, 0, len(list))
		for i := range list {
			result = append(result, toInvoiceResponse(&list[i]))
		}
		writeJSON(w, http.StatusOK, result)
	}
}

func updateInvoiceStatusHandler(svc *billing.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_invoice_id", "id must be a valid UUID")
			return
		}

		var req InvoiceStatusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		status := billing.InvoiceStatus(req.Status)
		if !status.Valid() {
			writeError(w, http.StatusBadRequest, "invalid_status", "status must be one of PENDING, PAID, REJECTED, REIMBURSED, PARTIALLY_REIMBURSED")
			return
		}

		inv, err := svc.UpdateStatus(r.Context(), id, status)
		if err != nil {
			handleInvoiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toInvoiceResponse(inv))
	}
}
