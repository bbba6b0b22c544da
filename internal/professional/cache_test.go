package professional

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingCache is an in-memory Cache that tracks invalidations.
type recordingCache struct {
	data    map[string][]byte
	deleted []string
	fail    bool
}

func newRecordingCache() *recordingCache {
	return &recordingCache{data: make(map[string][]byte)}
}

func (c *recordingCache) GetJSON(_ context.Context, key string, dest any) (bool, error) {
	if c.fail {
		return false, errors.New("cache down")
	}
	b, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dest)
}

func (c *recordingCache) SetJSON(_ context.Context, key string, v any) error {
	if c.fail {
		return errors.New("cache down")
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.data[key] = b
	return nil
}

func (c *recordingCache) Delete(_ context.Context, key string) error {
	if c.fail {
		return errors.New("cache down")
	}
	delete(c.data, key)
	c.deleted = append(c.deleted, key)
	return nil
}

func TestGetByIDWritesCache(t *testing.T) {
	cache := newRecordingCache()
	svc := NewService(newFakeRepo(), cache, zerolog.Nop())

	p, err := svc.Create(context.Background(), baseInput())
	require.NoError(t, err)

	_, err = svc.GetByID(context.Background(), p.ID)
	require.NoError(t, err)

	assert.Contains(t, cache.data, "professional:"+p.ID.String())
}

func TestGetByIDServesCachedCopy(t *testing.T) {
	cache := newRecordingCache()
	repo := newFakeRepo()
	svc := NewService(repo, cache, zerolog.Nop())

	p, err := svc.Create(context.Background(), baseInput())
	require.NoError(t, err)

	stale := *p
	stale.FirstName = "Cached"
	require.NoError(t, cache.SetJSON(context.Background(), "professional:"+p.ID.String(), &stale))

	got, err := svc.GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Cached", got.FirstName)
}

func TestMutationsInvalidateCache(t *testing.T) {
	mutations := map[string]func(svc *Service, id uuid.UUID) error{
		"update": func(svc *Service, id uuid.UUID) error {
			in := baseInput()
			in.City = "Thiès"
			_, err := svc.Update(context.Background(), id, in)
			return err
		},
		"activate": func(svc *Service, id uuid.UUID) error {
			_, err := svc.Activate(context.Background(), id)
			return err
		},
		"suspend": func(svc *Service, id uuid.UUID) error {
			_, err := svc.Suspend(context.Background(), id, "documents expired")
			return err
		},
		"deactivate": func(svc *Service, id uuid.UUID) error {
			return svc.Deactivate(context.Background(), id)
		},
	}

	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			cache := newRecordingCache()
			svc := NewService(newFakeRepo(), cache, zerolog.Nop())

			p, err := svc.Create(context.Background(), baseInput())
			require.NoError(t, err)

			require.NoError(t, mutate(svc, p.ID))
			assert.Contains(t, cache.deleted, "professional:"+p.ID.String())
		})
	}
}

func TestCacheFailureFallsBackToRepo(t *testing.T) {
	cache := newRecordingCache()
	cache.fail = true
	svc := NewService(newFakeRepo(), cache, zerolog.Nop())

	p, err := svc.Create(context.Background(), baseInput())
	require.NoError(t, err)

	got, err := svc.GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)

	_, err = svc.Activate(context.Background(), p.ID)
	require.NoError(t, err)
}

func TestSubmittedStatusChangeDateIgnored(t *testing.T) {
	svc := newTestService(newFakeRepo())

	p, err := svc.Create(context.Background(), baseInput())
	require.NoError(t, err)

	submitted := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	in := baseInput()
	in.AccountStatus = StatusActive
	in.StatusChangeReason = "verified"
	in.StatusChangeDate = &submitted

	updated, err := svc.Update(context.Background(), p.ID, in)
	require.NoError(t, err)

	assert.Equal(t, StatusActive, updated.AccountStatus)
	assert.NotEqual(t, submitted, updated.StatusChangeDate)
	assert.WithinDuration(t, time.Now(), updated.StatusChangeDate, time.Minute)
}
