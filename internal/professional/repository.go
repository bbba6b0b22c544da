package professional

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrProfessionalNotFound = errors.New("professional not found")

// Repository contains all DB interactions needed by the service.
//
// The Find* lookups on unique fields return (nil, nil) when no row
// matches; only GetByID reports absence as an error.
type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Professional, error)
	List(ctx context.Context) ([]Professional, error)

	// Save inserts or updates by identity.
	Save(ctx context.Context, p *Professional) (*Professional, error)

	FindByEmail(ctx context.Context, email string) (*Professional, error)
	FindByPhone(ctx context.Context, phone string) (*Professional, error)
	FindByRegistrationNumber(ctx context.Context, registrationNumber string) (*Professional, error)

	ListBySpeciality(ctx context.Context, speciality string) ([]Professional, error)
	ListByCity(ctx context.Context, city string) ([]Professional, error)
	ListByStatus(ctx context.Context, status AccountStatus) ([]Professional, error)

	// DeleteByID physically removes a row. Lifecycle operations never
	// call it; account deletion is the INACTIVE transition.
	DeleteByID(ctx context.Context, id uuid.UUID) error
}
