package service

import (
	"context"
	"testing"
	"time"

	"github.com/Freeeeeet/consult_booking/internal/model"
	"github.com/Freeeeeet/consult_booking/internal/scheduling"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateRule_Validation(t *testing.T) {
	f := newFixture(t, nil)

	tests := []struct {
		name  string
		input RuleInput
		field string
	}{
		{"day out of range", RuleInput{DayOfWeek: 7, StartTime: "09:00", EndTime: "10:00", SlotDurationMinutes: 30}, "day_of_week"},
		{"negative day", RuleInput{DayOfWeek: -1, StartTime: "09:00", EndTime: "10:00", SlotDurationMinutes: 30}, "day_of_week"},
		{"missing start", RuleInput{DayOfWeek: 1, EndTime: "10:00", SlotDurationMinutes: 30}, "start_time"},
		{"zero duration", RuleInput{DayOfWeek: 1, StartTime: "09:00", EndTime: "10:00"}, "slot_duration_minutes"},
		{"duration longer than a day", RuleInput{DayOfWeek: 1, StartTime: "09:00", EndTime: "10:00", SlotDurationMinutes: 160000000}, "slot_duration_minutes"},
		{"malformed start", RuleInput{DayOfWeek: 1, StartTime: "9am", EndTime: "10:00", SlotDurationMinutes: 30}, "start_time"},
		{"end past midnight", RuleInput{DayOfWeek: 1, StartTime: "09:00", EndTime: "24:30", SlotDurationMinutes: 30}, "end_time"},
		{"start equals end", RuleInput{DayOfWeek: 1, StartTime: "10:00", EndTime: "10:00", SlotDurationMinutes: 30}, "rule"},
		{"start after end", RuleInput{DayOfWeek: 1, StartTime: "11:00", EndTime: "10:00", SlotDurationMinutes: 30}, "rule"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.CreateRule(context.Background(), f.owner.ID, tt.input)
			require.ErrorIs(t, err, scheduling.ErrValidation)

			var verr *scheduling.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}

	rules, err := f.svc.ListRules(context.Background(), f.owner.ID)
	require.NoError(t, err)
	assert.Empty(t, rules)
}

func TestCreateRule_AllowsWindowUntilMidnight(t *testing.T) {
	f := newFixture(t, nil)

	rule, err := f.svc.CreateRule(context.Background(), f.owner.ID, RuleInput{
		DayOfWeek: int(time.Friday), StartTime: "22:00", EndTime: "24:00", SlotDurationMinutes: 60,
	})
	require.NoError(t, err)
	assert.Equal(t, model.MinutesPerDay, int(rule.EndTime))
}

func TestCreateWeeklySchedule(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)

	days := []time.Weekday{time.Monday, time.Wednesday, time.Friday, time.Monday}
	created, err := f.svc.CreateWeeklySchedule(ctx, f.owner.ID, days, "10:00", "18:00", 60)
	require.NoError(t, err)
	require.Len(t, created, 3)

	rules, err := f.svc.ListRules(ctx, f.owner.ID)
	require.NoError(t, err)
	require.Len(t, rules, 3)
	assert.Equal(t, int(time.Monday), rules[0].DayOfWeek)
	assert.Equal(t, int(time.Wednesday), rules[1].DayOfWeek)
	assert.Equal(t, int(time.Friday), rules[2].DayOfWeek)

	wednesday := time.Date(2026, time.October, 21, 0, 0, 0, 0, time.UTC)
	slots, err := f.svc.ListSlotsForDate(ctx, f.owner.ID, wednesday)
	require.NoError(t, err)
	assert.Len(t, slots, 8)
}

func TestCreateWeeklySchedule_ValidatesBeforeWriting(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)

	_, err := f.svc.CreateWeeklySchedule(ctx, f.owner.ID, []time.Weekday{time.Monday}, "18:00", "10:00", 60)
	require.ErrorIs(t, err, scheduling.ErrValidation)

	_, err = f.svc.CreateWeeklySchedule(ctx, f.owner.ID, nil, "10:00", "18:00", 60)
	require.ErrorIs(t, err, scheduling.ErrValidation)

	rules, err := f.svc.ListRules(ctx, f.owner.ID)
	require.NoError(t, err)
	assert.Empty(t, rules)
}

func TestDeleteRule(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	rule := f.tuesdayRule(t, "09:00", "11:00", 60)

	booking, err := f.svc.CreateBooking(ctx, request(f.owner.ID, tuesday.Add(9*time.Hour), 60))
	require.NoError(t, err)

	err = f.svc.DeleteRule(ctx, rule.ID, uuid.New())
	assert.ErrorIs(t, err, scheduling.ErrNotFound)

	require.NoError(t, f.svc.DeleteRule(ctx, rule.ID, f.owner.ID))

	err = f.svc.DeleteRule(ctx, rule.ID, f.owner.ID)
	assert.ErrorIs(t, err, scheduling.ErrNotFound)

	slots, err := f.svc.ListSlotsForDate(ctx, f.owner.ID, tuesday)
	require.NoError(t, err)
	assert.Empty(t, slots)

	// Записи переживают удаление правила
	bookings, err := f.svc.ListOwnerBookings(ctx, f.owner.ID)
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, booking.ID, bookings[0].ID)
}
