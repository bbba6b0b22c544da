package professional

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRepo is an in-memory Repository for service tests.
type fakeRepo struct {
	byID map[uuid.UUID]*Professional
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byID: make(map[uuid.UUID]*Professional)}
}

func (r *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (*Professional, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, ErrProfessionalNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakeRepo) List(_ context.Context) ([]Professional, error) {
	var out []Professional
	for _, p := range r.byID {
		out = append(out, *p)
	}
	return out, nil
}

func (r *fakeRepo) Save(_ context.Context, p *Professional) (*Professional, error) {
	cp := *p
	r.byID[p.ID] = &cp
	saved := cp
	return &saved, nil
}

func (r *fakeRepo) FindByEmail(_ context.Context, email string) (*Professional, error) {
	for _, p := range r.byID {
		if p.Email != nil && *p.Email == email {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeRepo) FindByPhone(_ context.Context, phone string) (*Professional, error) {
	for _, p := range r.byID {
		if p.Phone == phone {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeRepo) FindByRegistrationNumber(_ context.Context, rn string) (*Professional, error) {
	for _, p := range r.byID {
		if p.RegistrationNumber == rn {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeRepo) ListBySpeciality(_ context.Context, speciality string) ([]Professional, error) {
	var out []Professional
	for _, p := range r.byID {
		if p.Speciality == speciality {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeRepo) ListByCity(_ context.Context, city string) ([]Professional, error) {
	var out []Professional
	for _, p := range r.byID {
		if p.City == city {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeRepo) ListByStatus(_ context.Context, status AccountStatus) ([]Professional, error) {
	var out []Professional
	for _, p := range r.byID {
		if p.AccountStatus == status {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeRepo) DeleteByID(_ context.Context, id uuid.UUID) error {
	delete(r.byID, id)
	return nil
}

func newTestService(repo Repository) *Service {
	return NewService(repo, nil, zerolog.Nop())
}

func baseInput() Input {
	return Input{
		FirstName:          "Awa",
		LastName:           "Diop",
		Speciality:         "Cardiologie",
		RegistrationNumber: "SN-000123",
		Phone:              "+221770001122",
	}
}

func TestCreateDefaults(t *testing.T) {
	svc := newTestService(newFakeRepo())

	before := time.Now()
	p, err := svc.Create(context.Background(), baseInput())
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, p.ID)
	assert.Equal(t, StatusPendingVerification, p.AccountStatus)
	assert.Equal(t, ReasonAwaitingVerification, p.StatusChangeReason)
	assert.False(t, p.StatusChangeDate.Before(before))
	assert.Equal(t, DefaultCountry, p.Country)
}

func TestCreateKeepsSubmittedStatusAndCountry(t *testing.T) {
	svc := newTestService(newFakeRepo())

	in := baseInput()
	in.AccountStatus = StatusActive
	in.StatusChangeReason = "verified on intake"
	in.Country = "Mali"

	p, err := svc.Create(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, StatusActive, p.AccountStatus)
	assert.Equal(t, "verified on intake", p.StatusChangeReason)
	assert.Equal(t, "Mali", p.Country)
}

func TestGetByIDUnknown(t *testing.T) {
	svc := newTestService(newFakeRepo())

	id := uuid.New()
	_, err := svc.GetByID(context.Background(), id)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrProfessionalNotFound))
	assert.Contains(t, err.Error(), id.String())
}

func TestActivate(t *testing.T) {
	svc := newTestService(newFakeRepo())

	p, err := svc.Create(context.Background(), baseInput())
	require.NoError(t, err)

	activated, err := svc.Activate(context.Background(), p.ID)
	require.NoError(t, err)

	assert.Equal(t, StatusActive, activated.AccountStatus)
	assert.Equal(t, ReasonAccountActivated, activated.StatusChangeReason)
	assert.True(t, activated.IsActive())
}

func TestActivateAlreadyActiveRestamps(t *testing.T) {
	svc := newTestService(newFakeRepo())

	p, err := svc.Create(context.Background(), baseInput())
	require.NoError(t, err)

	first, err := svc.Activate(context.Background(), p.ID)
	require.NoError(t, err)

	second, err := svc.Activate(context.Background(), p.ID)
	require.NoError(t, err)

	assert.Equal(t, StatusActive, second.AccountStatus)
	assert.False(t, second.StatusChangeDate.Before(first.StatusChangeDate))
}

func TestSuspendCarriesReason(t *testing.T) {
	svc := newTestService(newFakeRepo())

	p, err := svc.Create(context.Background(), baseInput())
	require.NoError(t, err)

	suspended, err := svc.Suspend(context.Background(), p.ID, "documents expired")
	require.NoError(t, err)

	assert.Equal(t, StatusSuspended, suspended.AccountStatus)
	assert.Equal(t, "documents expired", suspended.StatusChangeReason)
}

func TestDeactivateKeepsRow(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	p, err := svc.Create(context.Background(), baseInput())
	require.NoError(t, err)

	require.NoError(t, svc.Deactivate(context.Background(), p.ID))

	got, err := svc.GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusInactive, got.AccountStatus)
	assert.Equal(t, ReasonAccountDeletion, got.StatusChangeReason)
}

func TestUpdateWithoutStatusFallsBackToPending(t *testing.T) {
	// An update payload that omits the status defaults to
	// PENDING_VERIFICATION, which counts as a transition when the
	// account was ACTIVE.
	svc := newTestService(newFakeRepo())

	p, err := svc.Create(context.Background(), baseInput())
	require.NoError(t, err)
	_, err = svc.Activate(context.Background(), p.ID)
	require.NoError(t, err)

	in := baseInput()
	in.City = "Thiès"

	updated, err := svc.Update(context.Background(), p.ID, in)
	require.NoError(t, err)

	assert.Equal(t, "Thiès", updated.City)
	assert.Equal(t, StatusPendingVerification, updated.AccountStatus)
	assert.Equal(t, ReasonAwaitingVerification, updated.StatusChangeReason)
}

func TestUpdateSameStatusLeavesTripleUntouched(t *testing.T) {
	svc := newTestService(newFakeRepo())

	p, err := svc.Create(context.Background(), baseInput())
	require.NoError(t, err)
	activated, err := svc.Activate(context.Background(), p.ID)
	require.NoError(t, err)

	in := baseInput()
	in.AccountStatus = StatusActive
	in.City = "Saint-Louis"

	updated, err := svc.Update(context.Background(), p.ID, in)
	require.NoError(t, err)

	assert.Equal(t, StatusActive, updated.AccountStatus)
	assert.Equal(t, activated.StatusChangeReason, updated.StatusChangeReason)
	assert.Equal(t, activated.StatusChangeDate.Unix(), updated.StatusChangeDate.Unix())
	assert.Equal(t, "Saint-Louis", updated.City)
}

func TestFindByEmailAbsent(t *testing.T) {
	svc := newTestService(newFakeRepo())

	p, err := svc.FindByEmail(context.Background(), "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestFindByRegistrationNumber(t *testing.T) {
	svc := newTestService(newFakeRepo())

	created, err := svc.Create(context.Background(), baseInput())
	require.NoError(t, err)

	found, err := svc.FindByRegistrationNumber(context.Background(), "SN-000123")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, created.ID, found.ID)
}

func TestListByStatus(t *testing.T) {
	svc := newTestService(newFakeRepo())

	a, err := svc.Create(context.Background(), baseInput())
	require.NoError(t, err)

	in := baseInput()
	in.RegistrationNumber = "SN-000124"
	in.Phone = "+221770001123"
	_, err = svc.Create(context.Background(), in)
	require.NoError(t, err)

	_, err = svc.Activate(context.Background(), a.ID)
	require.NoError(t, err)

	active, err := svc.ListByStatus(context.Background(), StatusActive)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, a.ID, active[0].ID)

	pending, err := svc.ListByStatus(context.Background(), StatusPendingVerification)
	require.NoError(t, err)
	assert.Len(t, pending, 1)
}
