package professional

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Cache holds serialized professionals for GetByID reads. Satisfied by
// *redisclient.Cache; a nil Cache disables caching.
type Cache interface {
	GetJSON(ctx context.Context, key string, dest any) (bool, error)
	SetJSON(ctx context.Context, key string, v any) error
	Delete(ctx context.Context, key string) error
}

type Service struct {
	repo  Repository
	cache Cache
	log   zerolog.Logger
}

func NewService(repo Repository, cache Cache, log zerolog.Logger) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// Input is the validated payload for create and update. A zero
// AccountStatus means the caller did not submit one.
type Input struct {
	FirstName          string
	LastName           string
	Speciality         string
	RegistrationNumber string
	Phone              string
	Email              *string
	Address            string
	City               string
	Country            string

	IdentityDocumentPath      string
	DiplomaPath               string
	LicensePath               string
	ProfessionalInsurancePath string
	BankAccountNumberPath     string

	AccountStatus AccountStatus

	StatusChangeReason string

	// StatusChangeDate is accepted for payload compatibility and
	// ignored: transitions always stamp the server time.
	StatusChangeDate *time.Time
}

func (in *Input) applyDefaults() {
	if in.AccountStatus == "" {
		in.AccountStatus = StatusPendingVerification
	}
	if in.StatusChangeReason == "" {
		in.StatusChangeReason = ReasonAwaitingVerification
	}
}

// apply copies the payload onto p. When the submitted status differs
// from the current one this is a lifecycle transition and the whole
// (status, reason, date) triple is restamped; otherwise the triple is
// left untouched.
func apply(p *Professional, in Input) {
	p.FirstName = in.FirstName
	p.LastName = in.LastName
	p.Speciality = in.Speciality
	p.RegistrationNumber = in.RegistrationNumber
	p.Phone = in.Phone
	p.Email = in.Email
	p.Address = in.Address
	p.City = in.City
	if in.Country != "" {
		p.Country = in.Country
	} else if p.Country == "" {
		p.Country = DefaultCountry
	}

	p.IdentityDocumentPath = in.IdentityDocumentPath
	p.DiplomaPath = in.DiplomaPath
	p.LicensePath = in.LicensePath
	p.ProfessionalInsurancePath = in.ProfessionalInsurancePath
	p.BankAccountNumberPath = in.BankAccountNumberPath

	if in.AccountStatus != "" && in.AccountStatus != p.AccountStatus {
		p.ChangeStatus(in.AccountStatus, in.StatusChangeReason)
	}
}

func cacheKey(id uuid.UUID) string {
	return "professional:" + id.String()
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*Professional, error) {
	if s.cache != nil {
		var cached Professional
		hit, err := s.cache.GetJSON(ctx, cacheKey(id), &cached)
		if err != nil {
			s.log.Warn().Err(err).Msg("professional cache read failed")
		} else if hit {
			return &cached, nil
		}
	}

	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrProfessionalNotFound) {
			return nil, fmt.Errorf("professional %s: %w", id, ErrProfessionalNotFound)
		}
		return nil, fmt.Errorf("load professional: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, cacheKey(id), p); err != nil {
			s.log.Warn().Err(err).Msg("professional cache write failed")
		}
	}

	return p, nil
}

func (s *Service) List(ctx context.Context) ([]Professional, error) {
	result, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list professionals: %w", err)
	}
	return result, nil
}

func (s *Service) Create(ctx context.Context, in Input) (*Professional, error) {
	in.applyDefaults()

	p := &Professional{ID: uuid.New()}
	apply(p, in)

	saved, err := s.repo.Save(ctx, p)
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("professional_id", saved.ID.String()).
		Str("status", string(saved.AccountStatus)).
		Msg("professional created")

	return saved, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, in Input) (*Professional, error) {
	in.applyDefaults()

	p, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	apply(p, in)

	saved, err := s.repo.Save(ctx, p)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, id)
	return saved, nil
}

// Activate moves the account to ACTIVE.
func (s *Service) Activate(ctx context.Context, id uuid.UUID) (*Professional, error) {
	return s.transition(ctx, id, StatusActive, ReasonAccountActivated)
}

// Suspend moves the account to SUSPENDED with a caller-supplied reason.
func (s *Service) Suspend(ctx context.Context, id uuid.UUID, reason string) (*Professional, error) {
	return s.transition(ctx, id, StatusSuspended, reason)
}

// Deactivate is the delete operation: the account transitions to
// INACTIVE and the row stays in place. There is no exposed transition
// back out of INACTIVE.
func (s *Service) Deactivate(ctx context.Context, id uuid.UUID) error {
	_, err := s.transition(ctx, id, StatusInactive, ReasonAccountDeletion)
	return err
}

func (s *Service) transition(ctx context.Context, id uuid.UUID, status AccountStatus, reason string) (*Professional, error) {
	p, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	p.ChangeStatus(status, reason)

	saved, err := s.repo.Save(ctx, p)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, id)

	s.log.Info().
		Str("professional_id", id.String()).
		Str("status", string(status)).
		Str("reason", reason).
		Msg("professional status changed")

	return saved, nil
}

func (s *Service) invalidate(ctx context.Context, id uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, cacheKey(id)); err != nil {
		s.log.Warn().Err(err).
			Str("professional_id", id.String()).
			Msg("professional cache invalidation failed")
	}
}

func (s *Service) FindByEmail(ctx context.Context, email string) (*Professional, error) {
	return s.repo.FindByEmail(ctx, email)
}

func (s *Service) FindByPhone(ctx context.Context, phone string) (*Professional, error) {
	return s.repo.FindByPhone(ctx, phone)
}

func (s *Service) FindByRegistrationNumber(ctx context.Context, registrationNumber string) (*Professional, error) {
	return s.repo.FindByRegistrationNumber(ctx, registrationNumber)
}

func (s *Service) ListBySpeciality(ctx context.Context, speciality string) ([]Professional, error) {
	return s.repo.ListBySpeciality(ctx, speciality)
}

func (s *Service) ListByCity(ctx context.Context, city string) ([]Professional, error) {
	return s.repo.ListByCity(ctx, city)
}

func (s *Service) ListByStatus(ctx context.Context, status AccountStatus) ([]Professional, error) {
	return s.repo.ListByStatus(ctx, status)
}
