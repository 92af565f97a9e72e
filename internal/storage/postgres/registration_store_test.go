package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"event-insights/internal/domain"
	"event-insights/internal/storage"
)

func seedEvent(t *testing.T, pool *Pool, id, orgID int64) {
	t.Helper()
	store := NewEventStore(pool)
	err := store.Insert(context.Background(), &domain.Event{
		ID:        id,
		OrgID:     orgID,
		Name:      "Seed Event",
		CreatedAt: testTime,
		StartsAt:  testTime.AddDate(0, 0, 10),
	})
	require.NoError(t, err)
}

func TestRegistrationStore_InsertAndList(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	seedEvent(t, pool, 1, 7)
	store := NewRegistrationStore(pool)
	ctx := context.Background()

	regs := []*domain.Registration{
		{ID: 2, EventID: 1, CreatedAt: testTime.AddDate(0, 0, 3), RawDynamicFields: "12: vegetarian"},
		{ID: 1, EventID: 1, CreatedAt: testTime.AddDate(0, 0, 1)},
	}
	for _, r := range regs {
		require.NoError(t, store.Insert(ctx, r))
	}

	got, err := store.ListByEvent(ctx, 1)
	require.NoError(t, err)

	require.Len(t, got, 2)
	// Ordered by creation time ASC
	assert.Equal(t, int64(1), got[0].ID)
	assert.Equal(t, int64(2), got[1].ID)
	assert.Equal(t, "12: vegetarian", got[1].RawDynamicFields)
}

func TestRegistrationStore_InsertDuplicate(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	seedEvent(t, pool, 1, 7)
	store := NewRegistrationStore(pool)
	ctx := context.Background()

	r := &domain.Registration{ID: 1, EventID: 1, CreatedAt: testTime}

	require.NoError(t, store.Insert(ctx, r))
	assert.ErrorIs(t, store.Insert(ctx, r), storage.ErrDuplicateKey)
}

func TestRegistrationStore_UncountedRowsFiltered(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	seedEvent(t, pool, 1, 7)
	store := NewRegistrationStore(pool)
	ctx := context.Background()

	require.NoError(t, store.Insert(ctx, &domain.Registration{ID: 1, EventID: 1, CreatedAt: testTime}))

	// Pending and cancelled rows exist upstream but never reach the engine
	_, err := pool.Exec(ctx, `
		INSERT INTO registrations (id, event_id, created_at, status)
		VALUES (2, 1, $1, 'pending')
	`, testTime)
	require.NoError(t, err)
	_, err = pool.Exec(ctx, `
		INSERT INTO registrations (id, event_id, created_at, cancelled)
		VALUES (3, 1, $1, TRUE)
	`, testTime)
	require.NoError(t, err)

	got, err := store.ListByEvent(ctx, 1)
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, int64(1), got[0].ID)
}
