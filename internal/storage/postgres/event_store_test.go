package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"event-insights/internal/domain"
	"event-insights/internal/storage"
)

var testTime = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

func TestEventStore_InsertAndGetByID(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewEventStore(pool)
	ctx := context.Background()

	event := &domain.Event{
		ID:                  1,
		OrgID:               7,
		Name:                "Spring Conference",
		CreatedAt:           testTime,
		StartsAt:            testTime.AddDate(0, 0, 10),
		TargetRegistrations: 150,
	}

	err := store.Insert(ctx, event)
	require.NoError(t, err)

	retrieved, err := store.GetByID(ctx, 7, 1)
	require.NoError(t, err)

	assert.Equal(t, event.ID, retrieved.ID)
	assert.Equal(t, event.OrgID, retrieved.OrgID)
	assert.Equal(t, event.Name, retrieved.Name)
	assert.True(t, event.CreatedAt.Equal(retrieved.CreatedAt))
	assert.True(t, event.StartsAt.Equal(retrieved.StartsAt))
	assert.Equal(t, event.TargetRegistrations, retrieved.TargetRegistrations)
}

func TestEventStore_InsertDuplicate(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewEventStore(pool)
	ctx := context.Background()

	event := &domain.Event{ID: 1, OrgID: 7, Name: "Conf", CreatedAt: testTime, StartsAt: testTime}

	require.NoError(t, store.Insert(ctx, event))
	assert.ErrorIs(t, store.Insert(ctx, event), storage.ErrDuplicateKey)
}

func TestEventStore_GetByIDOrgScope(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewEventStore(pool)
	ctx := context.Background()

	event := &domain.Event{ID: 1, OrgID: 7, Name: "Conf", CreatedAt: testTime, StartsAt: testTime}
	require.NoError(t, store.Insert(ctx, event))

	_, err := store.GetByID(ctx, 8, 1)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	_, err = store.GetByID(ctx, 7, 99)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestEventStore_ListByOrgOrdering(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewEventStore(pool)
	ctx := context.Background()

	events := []*domain.Event{
		{ID: 1, OrgID: 7, Name: "zebra run", CreatedAt: testTime, StartsAt: testTime},
		{ID: 2, OrgID: 7, Name: "Alpha summit", CreatedAt: testTime, StartsAt: testTime},
		{ID: 3, OrgID: 9, Name: "foreign", CreatedAt: testTime, StartsAt: testTime},
	}
	for _, e := range events {
		require.NoError(t, store.Insert(ctx, e))
	}

	got, err := store.ListByOrg(ctx, 7)
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, "Alpha summit", got[0].Name)
	assert.Equal(t, "zebra run", got[1].Name)
}
