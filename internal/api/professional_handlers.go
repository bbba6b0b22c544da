package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/armacare/insurance-admin/internal/professional"
)

func validateProfessionalRequest(req ProfessionalRequest) (code, details string) {
	switch {
	case req.FirstName == "":
		return "missing_first_name", "first_name is required"
	case req.LastName == "":
		return "missing_last_name", "last_name is required"
	case req.Speciality == "":
		return "missing_speciality", "speciality is required"
	case req.RegistrationNumber == "":
		return "missing_registration_number", "registration_number is required"
	case req.Phone == "":
		return "missing_phone", "phone is required"
	case !validPhone(req.Phone):
		return "invalid_phone", "phone must be a Senegalese mobile number, e.g. +221770001122"
	}

	if req.Email != nil && *req.Email != "" && !validEmail(*req.Email) {
		return "invalid_email", "email must be a valid address"
	}

	if req.AccountStatus != "" && !professional.AccountStatus(req.AccountStatus).Valid() {
		return "invalid_account_status", "account_status must be one of PENDING_VERIFICATION, ACTIVE, SUSPENDED, INACTIVE"
	}

	return "", ""
}

func professionalInput(req ProfessionalRequest) professional.Input {
	return professional.Input{
		FirstName:                 req.FirstName,
		LastName:                  req.LastName,
		Speciality:                req.Speciality,
		RegistrationNumber:        req.RegistrationNumber,
		Phone:                     req.Phone,
		Email:                     req.Email,
		Address:                   req.Address,
		City:                      req.City,
		Country:                   req.Country,
		IdentityDocumentPath:      req.IdentityDocumentPath,
		DiplomaPath:               req.DiplomaPath,
		LicensePath:               req.LicensePath,
		ProfessionalInsurancePath: req.ProfessionalInsurancePath,
		BankAccountNumberPath:     req.BankAccountNumberPath,
		AccountStatus:             professional.AccountStatus(req.AccountStatus),
		StatusChangeReason:        req.StatusChangeReason,
		StatusChangeDate:          req.StatusChangeDate,
	}
}

func handleProfessionalError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, professional.ErrProfessionalNotFound):
		writeError(w, http.StatusNotFound, "professional_not_found", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
	}
}

func listProfessionalsHandler(svc *professional.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := svc.List(r.Context())
		if err != nil {
			handleProfessionalError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toProfessionalResponses(list))
	}
}

func getProfessionalHandler(svc *professional.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_professional_id", "id must be a valid UUID")
			return
		}

		p, err := svc.GetByID(r.Context(), id)
		if err != nil {
			handleProfessionalError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toProfessionalResponse(p))
	}
}

func createProfessionalHandler(svc *professional.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ProfessionalRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		if code, details := validateProfessionalRequest(req); code != "" {
			writeError(w, http.StatusBadRequest, code, details)
			return
		}

		p, err := svc.Create(r.Context(), professionalInput(req))
		if err != nil {
			handleProfessionalError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toProfessionalResponse(p))
	}
}

func updateProfessionalHandler(svc *professional.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_professional_id", "id must be a valid UUID")
			return
		}

		var req ProfessionalRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		if code, details := validateProfessionalRequest(req); code != "" {
			writeError(w, http.StatusBadRequest, code, details)
			return
		}

		p, err := svc.Update(r.Context(), id, professionalInput(req))
		if err != nil {
			handleProfessionalError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toProfessionalResponse(p))
	}
}

// deleteProfessionalHandler soft-deletes: the account transitions to
// INACTIVE, the row stays.
func deleteProfessionalHandler(svc *professional.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_professional_id", "id must be a valid UUID")
			return
		}

		if err := svc.Deactivate(r.Context(), id); err != nil {
			handleProfessionalError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func activateProfessionalHandler(svc *professional.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_professional_id", "id must be a valid UUID")
			return
		}

		p, err := svc.Activate(r.Context(), id)
		if err != nil {
			handleProfessionalError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toProfessionalResponse(p))
	}
}

func suspendProfessionalHandler(svc *professional.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_professional_id", "id must be a valid UUID")
			return
		}

		reason := r.URL.Query().Get("reason")
		if reason == "" {
			writeError(w, http.StatusBadRequest, "missing_reason", "reason query parameter is required")
			return
		}

		p, err := svc.Suspend(r.Context(), id, reason)
		if err != nil {
			handleProfessionalError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toProfessionalResponse(p))
	}
}

func professionalsBySpecialityHandler(svc *professional.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		speciality := r.URL.Query().Get("speciality")
		if speciality == "" {
			writeError(w, http.StatusBadRequest, "missing_speciality", "speciality query parameter is required")
			return
		}

		list, err := svc.ListBySpeciality(r.Context(), speciality)
		if err != nil {
			handleProfessionalError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toProfessionalResponses(list))
	}
}

func professionalsByCityHandler(svc *professional.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		city := r.URL.Query().Get("city")
		if city == "" {
			writeError(w, http.StatusBadRequest, "missing_city", "city query parameter is required")
			return
		}

		list, err := svc.ListByCity(r.Context(), city)
		if err != nil {
			handleProfessionalError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toProfessionalResponses(list))
	}
}

func professionalsByStatusHandler(svc *professional.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := professional.AccountStatus(r.URL.Query().Get("status"))
		if !status.Valid() {
			writeError(w, http.StatusBadRequest, "invalid_account_status", "status must be one of PENDING_VERIFICATION, ACTIVE, SUSPENDED, INACTIVE")
			return
		}

		list, err := svc.ListByStatus(r.Context(), status)
		if err != nil {
			handleProfessionalError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toProfessionalResponses(list))
	}
}

// lookupProfessionalHandler serves the unique-field lookups. An absent
// match is a 404, not a failure.
func lookupProfessionalHandler(param string, find func(r *http.Request, value string) (*professional.Professional, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		value := r.URL.Query().Get(param)
		if value == "" {
			writeError(w, http.StatusBadRequest, "missing_"+param, param+" query parameter is required")
			return
		}

		p, err := find(r, value)
		if err != nil {
			handleProfessionalError(w, err)
			return
		}
		if p == nil {
			writeError(w, http.StatusNotFound, "professional_not_found", "no professional matches the given "+param)
			return
		}

		writeJSON(w, http.StatusOK, toProfessionalResponse(p))
	}
}
