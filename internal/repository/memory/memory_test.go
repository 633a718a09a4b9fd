package memory

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Freeeeeet/consult_booking/internal/model"
	"github.com/Freeeeeet/consult_booking/internal/scheduling"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingStore_InsertIfAbsentIsAtomic(t *testing.T) {
	store := NewBookingStore()
	ownerID := uuid.New()
	start := time.Date(2026, 10, 26, 9, 0, 0, 0, time.UTC)

	const writers = 16
	var (
		wg        sync.WaitGroup
		succeeded atomic.Int32
		conflicts atomic.Int32
	)

	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := store.InsertIfAbsent(context.Background(), &model.Booking{
				ID:              uuid.New(),
				OwnerID:         ownerID,
				StartAt:         start,
				DurationMinutes: 60,
			})
			switch {
			case err == nil:
				succeeded.Add(1)
			case assert.ErrorIs(t, err, scheduling.ErrSlotConflict):
				conflicts.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 1, succeeded.Load())
	assert.EqualValues(t, writers-1, conflicts.Load())
}

func TestBookingStore_ListByOwner(t *testing.T) {
	ctx := context.Background()
	store := NewBookingStore()
	ownerID, otherID := uuid.New(), uuid.New()
	day := time.Date(2026, 10, 26, 0, 0, 0, 0, time.UTC)

	for _, b := range []model.Booking{
		{ID: uuid.New(), OwnerID: ownerID, StartAt: day.Add(11 * time.Hour), DurationMinutes: 60},
		{ID: uuid.New(), OwnerID: ownerID, StartAt: day.Add(9 * time.Hour), DurationMinutes: 60},
		{ID: uuid.New(), OwnerID: ownerID, StartAt: day.Add(-24 * time.Hour), DurationMinutes: 60},
		{ID: uuid.New(), OwnerID: otherID, StartAt: day.Add(9 * time.Hour), DurationMinutes: 60},
	} {
		require.NoError(t, store.InsertIfAbsent(ctx, &b))
	}

	all, err := store.ListByOwner(ctx, ownerID, time.Time{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	fromDay, err := store.ListByOwner(ctx, ownerID, day)
	require.NoError(t, err)
	require.Len(t, fromDay, 2)
	assert.Equal(t, day.Add(9*time.Hour), fromDay[0].StartAt)
	assert.Equal(t, day.Add(11*time.Hour), fromDay[1].StartAt)
}

func TestRuleStore_DeleteScopedToOwner(t *testing.T) {
	ctx := context.Background()
	store := NewRuleStore()
	ownerID := uuid.New()

	rule := &model.AvailabilityRule{ID: uuid.New(), OwnerID: ownerID, DayOfWeek: 1}
	require.NoError(t, store.Create(ctx, rule))

	err := store.Delete(ctx, rule.ID, uuid.New())
	assert.ErrorIs(t, err, scheduling.ErrNotFound)

	require.NoError(t, store.Delete(ctx, rule.ID, ownerID))

	rules, err := store.ListByOwner(ctx, ownerID)
	require.NoError(t, err)
	assert.Empty(t, rules)
}

func TestOwnerStore(t *testing.T) {
	ctx := context.Background()
	store := NewOwnerStore()

	owner := &model.Owner{ID: uuid.New(), Email: "lawyer@example.com", BookingLink: "ABCD2345"}
	require.NoError(t, store.Create(ctx, owner))

	dup := &model.Owner{ID: uuid.New(), Email: "lawyer@example.com", BookingLink: "ZZZZ2345"}
	assert.ErrorIs(t, store.Create(ctx, dup), scheduling.ErrValidation)

	found, err := store.GetByBookingLink(ctx, "ABCD2345")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, owner.ID, found.ID)

	missing, err := store.GetByID(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, missing)

	require.NoError(t, store.SetAutoConfirm(ctx, owner.ID, true))
	found, err = store.GetByID(ctx, owner.ID)
	require.NoError(t, err)
	assert.True(t, found.AutoConfirmBookings)
}
