package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/armacare/insurance-admin/internal/insurance"
)

func validatePatientRequest(req PatientRequest) (code, details string) {
	switch {
	case req.FirstName == "":
		return "missing_first_name", "first_name is required"
	case req.LastName == "":
		return "missing_last_name", "last_name is required"
	case req.NationalID == "":
		return "missing_national_id", "national_id is required"
	case req.Phone == "":
		return "missing_phone", "phone is required"
	case !validPhone(req.Phone):
		return "invalid_phone", "phone must be a Senegalese mobile number, e.g. +221770001122"
	}

	if req.Gender != "" && req.Gender != "M" && req.Gender != "F" {
		return "invalid_gender", "gender must be 'M' or 'F'"
	}

	if req.Email != nil && *req.Email != "" && !validEmail(*req.Email) {
		return "invalid_email", "email must be a valid address"
	}

	if req.DateOfBirth != nil {
		dob, err := parseDate(*req.DateOfBirth)
		if err != nil {
			return "invalid_date_of_birth", "date_of_birth must be YYYY-MM-DD"
		}
		if !dob.Before(time.Now()) {
			return "invalid_date_of_birth", "date_of_birth must be in the past"
		}
	}

	return "", ""
}

func patientFromRequest(req PatientRequest) *insurance.Patient {
	p := &insurance.Patient{
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		Gender:            req.Gender,
		NationalID:        req.NationalID,
		Address:           req.Address,
		City:              req.City,
		PostalCode:        req.PostalCode,
		Country:           req.Country,
		Phone:             req.Phone,
		Email:             req.Email,
		BloodGroup:        req.BloodGroup,
		Allergies:         req.Allergies,
		MedicalConditions: req.MedicalConditions,
		Active:            true,
	}

	if req.DateOfBirth != nil {
		dob, _ := parseDate(*req.DateOfBirth)
		p.DateOfBirth = &dob
	}
	if req.Active != nil {
		p.Active = *req.Active
	}

	return p
}

func handlePatientError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, insurance.ErrPatientNotFound):
		writeError(w, http.StatusNotFound, "patient_not_found", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
	}
}

func listPatientsHandler(svc *insurance.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// national_id narrows the listing to the unique-field lookup.
		if nationalID := r.URL.Query().Get("national_id"); nationalID != "" {
			p, err := svc.FindPatientByNationalID(r.Context(), nationalID)
			if err != nil {
				handlePatientError(w, err)
				return
			}
			if p == nil {
				writeError(w, http.StatusNotFound, "patient_not_found", "no patient matches the given national_id")
				return
			}
			writeJSON(w, http.StatusOK, toPatientResponse(p))
			return
		}

		list, err := svc.ListPatients(r.Context())
		if err != nil {
			handlePatientError(w, err)
			return
		}

		result := make([]PatientResponse, 0, len(list))
		for i := range list {
			result = append(result, toPatientResponse(&list[i]))
		}
		writeJSON(w, http.StatusOK, result)
	}
}

func getPatientHandler(svc *insurance.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_patient_id", "id must be a valid UUID")
			return
		}

		p, err := svc.GetPatient(r.Context(), id)
		if err != nil {
			handlePatientError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toPatientResponse(p))
	}
}

func createPatientHandler(svc *insurance.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req PatientRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		if code, details := validatePatientRequest(req); code != "" {
			writeError(w, http.StatusBadRequest, code, details)
			return
		}

		p, err := svc.CreatePatient(r.Context(), patientFromRequest(req))
		if err != nil {
			handlePatientError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toPatientResponse(p))
	}
}

func updatePatientHandler(svc *insurance.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_patient_id", "id must be a valid UUID")
			return
		}

		var req PatientRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		if code, details := validatePatientRequest(req); code != "" {
			writeError(w, http.StatusBadRequest, code, details)
			return
		}

		p, err := svc.UpdatePatient(r.Context(), id, patientFromRequest(req))
		if err != nil {
			handlePatientError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toPatientResponse(p))
	}
}

func deletePatientHandler(svc *insurance.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_patient_id", "id must be a valid UUID")
			return
		}

		if err := svc.DeletePatient(r.Context(), id); err != nil {
			handlePatientError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func patientContractsHandler(svc *insurance.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_patient_id", "id must be a valid UUID")
			return
		}

		if _, err := svc.GetPatient(r.Context(), id); err != nil {
			handlePatientError(w, err)
			return
		}

		list, err := svc.ListContractsByPatient(r.Context(), id)
		if err != nil {
			handlePatientError(w, err)
			return
		}

		result := make([]ContractResponse, 0, len(list))
		for i := range list {
			result = append(result, toContractResponse(&list[i]))
		}
		writeJSON(w, http.StatusOK, result)
	}
}

func currentInsuranceHandler(svc *insurance.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_patient_id", "id must be a valid UUID")
			return
		}

		ins, err := svc.CurrentInsurance(r.Context(), id)
		if err != nil {
			handlePatientError(w, err)
			return
		}
		if ins == nil {
			writeError(w, http.StatusNotFound, "no_active_contract", "patient has no active insurance contract")
			return
		}

		writeJSON(w, http.StatusOK, toInsuranceResponse(ins))
	}
}
