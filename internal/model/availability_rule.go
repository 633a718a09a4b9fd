package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// AvailabilityRule представляет еженедельное окно доступности владельца
type AvailabilityRule struct {
	ID                  uuid.UUID `json:"id"`
	OwnerID             uuid.UUID `json:"owner_id"`
	DayOfWeek           int       `json:"day_of_week"`           // 0 = Sunday, 6 = Saturday
	StartTime           ClockTime `json:"start_time"`            // локальное время HH:MM
	EndTime             ClockTime `json:"end_time"`              // локальное время HH:MM, строго позже StartTime
	SlotDurationMinutes int       `json:"slot_duration_minutes"` // длительность одного слота
	CreatedAt           time.Time `json:"created_at"`
}

// Weekday возвращает день недели правила
func (r *AvailabilityRule) Weekday() time.Weekday {
	return time.Weekday(r.DayOfWeek)
}

// SlotDuration возвращает длительность слота
func (r *AvailabilityRule) SlotDuration() time.Duration {
	return time.Duration(r.SlotDurationMinutes) * time.Minute
}

// Validate проверяет структурную корректность правила
func (r *AvailabilityRule) Validate() error {
	if r.DayOfWeek < 0 || r.DayOfWeek > 6 {
		return fmt.Errorf("day_of_week must be in [0,6], got %d", r.DayOfWeek)
	}
	if !r.StartTime.Before(r.EndTime) {
		return fmt.Errorf("start_time %s must be before end_time %s", r.StartTime, r.EndTime)
	}
	if r.SlotDurationMinutes <= 0 || r.SlotDurationMinutes > MinutesPerDay {
		return fmt.Errorf("slot_duration_minutes must be in [1,%d], got %d", MinutesPerDay, r.SlotDurationMinutes)
	}
	return nil
}
