package service

import (
	"context"
	"time"

	"github.com/Freeeeeet/consult_booking/internal/model"
	"github.com/google/uuid"
)

// RuleStore - хранилище недельных правил доступности
type RuleStore interface {
	// ListByOwner возвращает правила в порядке добавления
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.AvailabilityRule, error)
	Create(ctx context.Context, rule *model.AvailabilityRule) error
	// Delete возвращает scheduling.ErrNotFound, если у владельца нет такого правила
	Delete(ctx context.Context, id, ownerID uuid.UUID) error
}

// BookingStore - хранилище записей и блокировок
type BookingStore interface {
	// ListByOwner возвращает записи с началом не раньше from (нулевой from - все)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, from time.Time) ([]model.Booking, error)
	// InsertIfAbsent атомарно вставляет запись или возвращает scheduling.ErrSlotConflict,
	// если у владельца уже есть запись с тем же началом
	InsertIfAbsent(ctx context.Context, booking *model.Booking) error
}

// OwnerStore - хранилище профилей владельцев. Get-методы возвращают nil, nil,
// если владелец не найден.
type OwnerStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Owner, error)
	GetByBookingLink(ctx context.Context, link string) (*model.Owner, error)
	BookingLinkExists(ctx context.Context, link string) (bool, error)
	Create(ctx context.Context, owner *model.Owner) error
	SetAutoConfirm(ctx context.Context, id uuid.UUID, enabled bool) error
}

// Notifier сообщает владельцу о новых записях
type Notifier interface {
	BookingCreated(ctx context.Context, owner *model.Owner, booking *model.Booking) error
}

// NopNotifier ничего не отправляет
type NopNotifier struct{}

func (NopNotifier) BookingCreated(context.Context, *model.Owner, *model.Booking) error {
	return nil
}
