package model

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "PENDING"   // Ожидает подтверждения владельца
	BookingStatusConfirmed BookingStatus = "CONFIRMED" // Подтверждено
	BookingStatusBlocked   BookingStatus = "BLOCKED"   // Личное время владельца
)

// BookingKind различает консультацию и блокировку времени владельцем
type BookingKind string

const (
	BookingKindConsultation BookingKind = "CONSULTATION"
	BookingKindBlocked      BookingKind = "BLOCKED"
)

// Плейсхолдеры клиента для блокировок, которые создаёт сам владелец
const (
	BlockedClientName  = "Личное время"
	BlockedClientEmail = "busy@local"
)

type Booking struct {
	ID               uuid.UUID     `json:"id"`
	OwnerID          uuid.UUID     `json:"owner_id"`
	ClientName       string        `json:"client_name"`
	ClientEmail      string        `json:"client_email"`
	ClientPhone      *string       `json:"client_phone,omitempty"`
	StartAt          time.Time     `json:"start_at"`
	DurationMinutes  int           `json:"duration_minutes"`
	Status           BookingStatus `json:"status"`
	PaymentConfirmed bool          `json:"payment_confirmed"`
	Kind             BookingKind   `json:"kind"`
	CreatedAt        time.Time     `json:"created_at"`
}

// EndAt возвращает конец интервала [StartAt, EndAt)
func (b *Booking) EndAt() time.Time {
	return b.StartAt.Add(time.Duration(b.DurationMinutes) * time.Minute)
}

// IsBlocking сообщает, что запись - блокировка владельца.
// Старые записи помечались только статусом BLOCKED, поэтому проверяем оба поля.
func (b *Booking) IsBlocking() bool {
	return b.Kind == BookingKindBlocked || b.Status == BookingStatusBlocked
}

// BookingRequest - входные данные для создания записи
type BookingRequest struct {
	OwnerID         uuid.UUID   `json:"owner_id" validate:"required"`
	ClientName      string      `json:"client_name" validate:"required_unless=Kind BLOCKED,max=200"`
	ClientEmail     string      `json:"client_email" validate:"required_unless=Kind BLOCKED,omitempty,email"`
	ClientPhone     *string     `json:"client_phone,omitempty"`
	StartAt         time.Time   `json:"start_at" validate:"required"`
	DurationMinutes int         `json:"duration_minutes" validate:"gt=0,max=1440"`
	Kind            BookingKind `json:"kind" validate:"omitempty,oneof=CONSULTATION BLOCKED"`

	// AutoConfirm выставляется фасадом из настроек владельца, клиент его не передаёт
	AutoConfirm bool `json:"-"`
}

// EndAt возвращает конец запрошенного интервала
func (r *BookingRequest) EndAt() time.Time {
	return r.StartAt.Add(time.Duration(r.DurationMinutes) * time.Minute)
}
