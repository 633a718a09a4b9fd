package model

import (
	"time"

	"github.com/google/uuid"
)

type SlotState string

const (
	SlotStateAvailable SlotState = "AVAILABLE"
	SlotStateBooked    SlotState = "BOOKED"
	SlotStateBlocked   SlotState = "BLOCKED"
	SlotStatePast      SlotState = "PAST"
)

// Slot - вычисляемый кандидат на запись, в базе не хранится
type Slot struct {
	RuleID          uuid.UUID `json:"rule_id"`
	StartAt         time.Time `json:"start_at"`
	DurationMinutes int       `json:"duration_minutes"`
	State           SlotState `json:"state"`
}

// EndAt возвращает конец интервала [StartAt, EndAt)
func (s *Slot) EndAt() time.Time {
	return s.StartAt.Add(time.Duration(s.DurationMinutes) * time.Minute)
}

// IsAvailable сообщает, что слот можно забронировать
func (s *Slot) IsAvailable() bool {
	return s.State == SlotStateAvailable
}
