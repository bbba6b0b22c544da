package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/armacare/insurance-admin/internal/insurance"
)

func validateInsuranceRequest(req InsuranceRequest) (code, details string) {
	switch {
	case req.Name == "":
		return "missing_name", "name is required"
	case req.Type == "":
		return "missing_type", "type is required"
	case req.PhoneNumber == "":
		return "missing_phone_number", "phone_number is required"
	case !validPhone(req.PhoneNumber):
		return "invalid_phone_number", "phone_number must be a Senegalese mobile number, e.g. +221770001122"
	}

	if req.Email != nil && *req.Email != "" && !validEmail(*req.Email) {
		return "invalid_email", "email must be a valid address"
	}

	for _, field := range []*string{req.RegistrationDate, req.ArmaContractStartDate, req.ArmaContractEndDate} {
		if field != nil {
			if _, err := parseDate(*field); err != nil {
				return "invalid_date", "dates must be YYYY-MM-DD"
			}
		}
	}

	return "", ""
}

func insuranceFromRequest(req InsuranceRequest) *insurance.Insurance {
	ins := &insurance.Insurance{
		Name:                     req.Name,
		Type:                     req.Type,
		Email:                    req.Email,
		PhoneNumber:              req.PhoneNumber,
		Address:                  req.Address,
		City:                     req.City,
		PostalCode:               req.PostalCode,
		Country:                  req.Country,
		Username:                 req.Username,
		Password:                 req.Password,
		LicenseNumber:            req.LicenseNumber,
		ContactPersonName:        req.ContactPersonName,
		ContactPersonPosition:    req.ContactPersonPosition,
		ContactPersonEmail:       req.ContactPersonEmail,
		ContactPersonPhone:       req.ContactPersonPhone,
		RegistrationNumber:       req.RegistrationNumber,
		ArmaContractNumber:       req.ArmaContractNumber,
		RegistrationDocumentPath: req.RegistrationDocumentPath,
		LicensePath:              req.LicensePath,
		ArmaContractPath:         req.ArmaContractPath,
		Active:                   true,
	}

	ins.RegistrationDate = parsedDateOrNil(req.RegistrationDate)
	ins.ArmaContractStartDate = parsedDateOrNil(req.ArmaContractStartDate)
	ins.ArmaContractEndDate = parsedDateOrNil(req.ArmaContractEndDate)

	if req.Active != nil {
		ins.Active = *req.Active
	}

	return ins
}

func handleInsuranceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, insurance.ErrInsuranceNotFound):
		writeError(w, http.StatusNotFound, "insurance_not_found", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
	}
}

func listInsurancesHandler(svc *insurance.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := svc.ListInsurances(r.Context())
		if err != nil {
			handleInsuranceError(w, err)
			return
		}

		result := make([]InsuranceResponse, 0, len(list))
		for i := range list {
			result = append(result, toInsuranceResponse(&list[i]))
		}
		writeJSON(w, http.StatusOK, result)
	}
}

func getInsuranceHandler(svc *insurance.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_insurance_id", "id must be a valid UUID")
			return
		}

		ins, err := svc.GetInsurance(r.Context(), id)
		if err != nil {
			handleInsuranceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toInsuranceResponse(ins))
	}
}

func createInsuranceHandler(svc *insurance.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req InsuranceRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		if code, details := validateInsuranceRequest(req); code != "" {
			writeError(w, http.StatusBadRequest, code, details)
			return
		}

		ins, err := svc.CreateInsurance(r.Context(), insuranceFromRequest(req))
		if err != nil {
			handleInsuranceError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toInsuranceResponse(ins))
	}
}

func updateInsuranceHandler(svc *insurance.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_insurance_id", "id must be a valid UUID")
			return
		}

		var req InsuranceRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		if code, details := validateInsuranceRequest(req); code != "" {
			writeError(w, http.StatusBadRequest, code, details)
			return
		}

		ins, err := svc.UpdateInsurance(r.Context(), id, insuranceFromRequest(req))
		if err != nil {
			handleInsuranceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toInsuranceResponse(ins))
	}
}

func deleteInsuranceHandler(svc *insurance.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_insurance_id", "id must be a valid UUID")
			return
		}

		if err := svc.DeleteInsurance(r.Context(), id); err != nil {
			handleInsuranceError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func insuranceContractsHandler(svc *insurance.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_insurance_id", "id must be a valid UUID")
			return
		}

		if _, err := svc.GetInsurance(r.Context(), id); err != nil {
			handleInsuranceError(w, err)
			return
		}

		list, err := svc.ListContractsByInsurance(r.Context(), id)
		if err != nil {
			handleInsuranceError(w, err)
			return
		}

		result := make([]ContractResponse, 0, len(list))
		for i := range list {
			result = append(result, toContractResponse(&list[i]))
		}
		writeJSON(w, http.StatusOK, result)
	}
}
