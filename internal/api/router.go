package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/armacare/insurance-admin/internal/billing"
	"github.com/armacare/insurance-admin/internal/insurance"
	"github.com/armacare/insurance-admin/internal/professional"
)

type RouterConfig struct {
	Professionals *professional.Service
	Insurance     *insurance.Service
	Billing       *billing.Service
	PgPool        *pgxpool.Pool
	Redis         *redis.Client
	Logger        zerolog.Logger
	Env           string
	Version       string
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware(cfg.Logger))

	// Health endpoints
	health := NewHealthHandler(cfg.PgPool, cfg.Redis, cfg.Env, cfg.Version)
	r.Get("/health/live", health.Liveness)
	r.Get("/health/ready", health.Readiness)

	r.Route("/api/professionals", func(r chi.Router) {
		r.Get("/", listProfessionalsHandler(cfg.Professionals))
		r.Post("/", createProfessionalHandler(cfg.Professionals))

		r.Get("/by-speciality", professionalsBySpecialityHandler(cfg.Professionals))
		r.Get("/by-city", professionalsByCityHandler(cfg.Professionals))
		r.Get("/by-status", professionalsByStatusHandler(cfg.Professionals))
		r.Get("/by-email", lookupProfessionalHandler("email",
			func(req *http.Request, v string) (*professional.Professional, error) {
				return cfg.Professionals.FindByEmail(req.Context(), v)
			}))
		r.Get("/by-phone", lookupProfessionalHandler("phone",
			func(req *http.Request, v string) (*professional.Professional, error) {
				return cfg.Professionals.FindByPhone(req.Context(), v)
			}))
		r.Get("/by-registration-number", lookupProfessionalHandler("registration_number",
			func(req *http.Request, v string) (*professional.Professional, error) {
				return cfg.Professionals.FindByRegistrationNumber(req.Context(), v)
			}))

		r.Get("/{id}", getProfessionalHandler(cfg.Professionals))
		r.Put("/{id}", updateProfessionalHandler(cfg.Professionals))
		r.Delete("/{id}", deleteProfessionalHandler(cfg.Professionals))
		r.Put("/{id}/activate", activateProfessionalHandler(cfg.Professionals))
		r.Put("/{id}/suspend", suspendProfessionalHandler(cfg.Professionals))
	})

	r.Route("/api/patients", func(r chi.Router) {
		r.Get("/", listPatientsHandler(cfg.Insurance))
		r.Post("/", createPatientHandler(cfg.Insurance))
		r.Get("/{id}", getPatientHandler(cfg.Insurance))
		r.Put("/{id}", updatePatientHandler(cfg.Insurance))
		r.Delete("/{id}", deletePatientHandler(cfg.Insurance))
		r.Get("/{id}/contracts", patientContractsHandler(cfg.Insurance))
		r.Get("/{id}/current-insurance", currentInsuranceHandler(cfg.Insurance))
	})

	r.Route("/api/insurances", func(r chi.Router) {
		r.Get("/", listInsurancesHandler(cfg.Insurance))
		r.Post("/", createInsuranceHandler(cfg.Insurance))
		r.Get("/{id}", getInsuranceHandler(cfg.Insurance))
		r.Put("/{id}", updateInsuranceHandler(cfg.Insurance))
		r.Delete("/{id}", deleteInsuranceHandler(cfg.Insurance))
		r.Get("/{id}/contracts", insuranceContractsHandler(cfg.Insurance))
	})

	r.Route("/api/contracts", func(r chi.Router) {
		r.Post("/", createContractHandler(cfg.Insurance))
		r.Get("/{id}", getContractHandler(cfg.Insurance))
		r.Put("/{id}", updateContractHandler(cfg.Insurance))
		r.Delete("/{id}", deleteContractHandler(cfg.Insurance))
		r.Post("/{id}/coverages", addCoverageHandler(cfg.Insurance))
		r.Get("/{id}/coverages", listCoveragesHandler(cfg.Insurance))
	})

	r.Delete("/api/coverages/{id}", removeCoverageHandler(cfg.Insurance))

	r.Route("/api/invoices", func(r chi.Router) {
		r.Get("/", listInvoicesHandler(cfg.Billing))
		r.Post("/", createInvoiceHandler(cfg.Billing))
		r.Get("/{id}", getInvoiceHandler(cfg.Billing))
		r.Put("/{id}/status", updateInvoiceStatusHandler(cfg.Billing))
	})

	return r
}
