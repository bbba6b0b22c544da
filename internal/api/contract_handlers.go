package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/armacare/insurance-admin/internal/billing"
	"github.com/armacare/insurance-admin/internal/insurance"
)

func validateContractRequest(req ContractRequest) (code, details string) {
	switch {
	case req.ContractNumber == "":
		return "missing_contract_number", "contract_number is required"
	case req.ContractType == "":
		return "missing_contract_type", "contract_type is required"
	case req.StartDate == "":
		return "missing_start_date", "start_date is required"
	}

	if _, err := parseDate(req.StartDate); err != nil {
		return "invalid_start_date", "start_date must be YYYY-MM-DD"
	}

	if req.EndDate != nil {
		end, err := parseDate(*req.EndDate)
		if err != nil {
			return "invalid_end_date", "end_date must be YYYY-MM-DD"
		}
		if end.Before(billing.Today()) {
			return "invalid_end_date", "end_date must be in the present or future"
		}
	}

	if _, err := uuid.Parse(req.PatientID); err != nil {
		return "invalid_patient_id", "patient_id must be a valid UUID"
	}
	if _, err := uuid.Parse(req.InsuranceID); err != nil {
		return "invalid_insurance_id", "insurance_id must be a valid UUID"
	}

	return "", ""
}

func contractFromRequest(req ContractRequest) *insurance.InsuranceContract {
	start, _ := parseDate(req.StartDate)

	c := &insurance.InsuranceContract{
		ContractNumber: req.ContractNumber,
		ContractType:   req.ContractType,
		StartDate:      start,
		EndDate:        parsedDateOrNil(req.EndDate),
		Deductible:     req.Deductible,
		Active:         true,
	}

	c.PatientID, _ = uuid.Parse(req.PatientID)
	c.InsuranceID, _ = uuid.Parse(req.InsuranceID)

	if req.Active != nil {
		c.Active = *req.Active
	}

	return c
}

func handleContractError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, insurance.ErrContractNotFound):
		writeError(w, http.StatusNotFound, "contract_not_found", err.Error())
	case errors.Is(err, insurance.ErrPatientNotFound):
		writeError(w, http.StatusNotFound, "patient_not_found", err.Error())
	case errors.Is(err, insurance.ErrInsuranceNotFound):
		writeError(w, http.StatusNotFound, "insurance_not_found", err.Error())
	case errors.Is(err, insurance.ErrCoverageNotFound):
		writeError(w, http.StatusNotFound, "coverage_not_found", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
	}
}

func getContractHandler(svc *insurance.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_contract_id", "id must be a valid UUID")
			return
		}

		c, err := svc.GetContract(r.Context(), id)
		if err != nil {
			handleContractError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toContractResponse(c))
	}
}

func createContractHandler(svc *insurance.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ContractRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		if code, details := validateContractRequest(req); code != "" {
			writeError(w, http.StatusBadRequest, code, details)
			return
		}

		c, err := svc.CreateContract(r.Context(), contractFromRequest(req))
		if err != nil {
			handleContractError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toContractResponse(c))
	}
}

func updateContractHandler(svc *insurance.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_contract_id", "id must be a valid UUID")
			return
		}

		var req ContractRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		if code, details := validateContractRequest(req); code != "" {
			writeError(w, http.StatusBadRequest, code, details)
			return
		}

		c, err := svc.UpdateContract(r.Context(), id, contractFromRequest(req))
		if err != nil {
			handleContractError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toContractResponse(c))
	}
}

// deleteContractHandler removes the contract and, through ownership,
// every coverage on it.
func deleteContractHandler(svc *insurance.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_contract_id", "id must be a valid UUID")
			return
		}

		if err := svc.DeleteContract(r.Context(), id); err != nil {
			handleContractError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func addCoverageHandler(svc *insurance.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		contractID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_contract_id", "id must be a valid UUID")
			return
		}

		var req CoverageRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		if req.CoverageType == "" {
			writeError(w, http.StatusBadRequest, "missing_coverage_type", "coverage_type is required")
			return
		}
		if req.CoverageRate < 1 || req.CoverageRate > 100 {
			writeError(w, http.StatusBadRequest, "invalid_coverage_rate", "coverage_rate must be between 1 and 100")
			return
		}

		cov, err := svc.AddCoverage(r.Context(), contractID, &insurance.Coverage{
			CoverageType:    req.CoverageType,
			CoverageRate:    req.CoverageRate,
			CoverageCeiling: req.CoverageCeiling,
		})
		if err != nil {
			handleContractError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toCoverageResponse(cov))
	}
}

func listCoveragesHandler(svc *insurance.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		contractID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_contract_id", "id must be a valid UUID")
			return
		}

		list, err := svc.ListCoverages(r.Context(), contractID)
		if err != nil {
			handleContractError(w, err)
			return
		}

		result := make([]CoverageResponse, 0, len(list))
		for i := range list {
			result = append(result, toCoverageResponse(&list[i]))
		}
		writeJSON(w, http.StatusOK, result)
	}
}

func removeCoverageHandler(svc *insurance.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_coverage_id", "id must be a valid UUID")
			return
		}

		if err := svc.RemoveCoverage(r.Context(), id); err != nil {
			handleContractError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
