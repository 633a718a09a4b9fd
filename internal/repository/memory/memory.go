// Package memory - хранилища в памяти процесса для разработки без БД и тестов.
// Семантика совпадает с PostgreSQL-репозиториями, включая атомарный InsertIfAbsent.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/Freeeeeet/consult_booking/internal/model"
	"github.com/Freeeeeet/consult_booking/internal/scheduling"
	"github.com/google/uuid"
)

// OwnerStore хранит владельцев
type OwnerStore struct {
	mu     sync.RWMutex
	owners map[uuid.UUID]model.Owner
}

func NewOwnerStore() *OwnerStore {
	return &OwnerStore{owners: make(map[uuid.UUID]model.Owner)}
}

func (s *OwnerStore) Create(_ context.Context, owner *model.Owner) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.owners {
		if existing.Email == owner.Email {
			return &scheduling.ValidationError{Field: "email", Reason: "is already registered"}
		}
		if existing.BookingLink == owner.BookingLink {
			return fmt.Errorf("booking link %q already taken", owner.BookingLink)
		}
	}

	owner.CreatedAt = time.Now()
	s.owners[owner.ID] = *owner
	return nil
}

func (s *OwnerStore) GetByID(_ context.Context, id uuid.UUID) (*model.Owner, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	owner, ok := s.owners[id]
	if !ok {
		return nil, nil
	}
	return &owner, nil
}

func (s *OwnerStore) GetByBookingLink(_ context.Context, link string) (*model.Owner, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, owner := range s.owners {
		if owner.BookingLink == link {
			return &owner, nil
		}
	}
	return nil, nil
}

func (s *OwnerStore) BookingLinkExists(ctx context.Context, link string) (bool, error) {
	owner, err := s.GetByBookingLink(ctx, link)
	return owner != nil, err
}

func (s *OwnerStore) SetAutoConfirm(_ context.Context, id uuid.UUID, enabled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	owner, ok := s.owners[id]
	if !ok {
		return fmt.Errorf("owner %s: %w", id, scheduling.ErrNotFound)
	}
	owner.AutoConfirmBookings = enabled
	s.owners[id] = owner
	return nil
}

// RuleStore хранит правила в порядке добавления
type RuleStore struct {
	mu    sync.RWMutex
	rules []model.AvailabilityRule
}

func NewRuleStore() *RuleStore {
	return &RuleStore{}
}

func (s *RuleStore) Create(_ context.Context, rule *model.AvailabilityRule) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rule.CreatedAt = time.Now()
	s.rules = append(s.rules, *rule)
	return nil
}

func (s *RuleStore) ListByOwner(_ context.Context, ownerID uuid.UUID) ([]model.AvailabilityRule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []model.AvailabilityRule
	for _, rule := range s.rules {
		if rule.OwnerID == ownerID {
			out = append(out, rule)
		}
	}
	return out, nil
}

func (s *RuleStore) Delete(_ context.Context, id, ownerID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, rule := range s.rules {
		if rule.ID == id && rule.OwnerID == ownerID {
			s.rules = append(s.rules[:i], s.rules[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("availability rule %s: %w", id, scheduling.ErrNotFound)
}

type bookingKey struct {
	ownerID uuid.UUID
	startAt int64
}

// BookingStore хранит записи; уникальность (владелец, начало) как у индекса в БД
type BookingStore struct {
	mu       sync.RWMutex
	bookings map[bookingKey]model.Booking
}

func NewBookingStore() *BookingStore {
	return &BookingStore{bookings: make(map[bookingKey]model.Booking)}
}

func (s *BookingStore) InsertIfAbsent(_ context.Context, booking *model.Booking) error {
	key := bookingKey{ownerID: booking.OwnerID, startAt: booking.StartAt.UnixNano()}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.bookings[key]; taken {
		return fmt.Errorf("insert booking at %s: %w",
			booking.StartAt.Format(time.RFC3339), scheduling.ErrSlotConflict)
	}

	booking.CreatedAt = time.Now()
	s.bookings[key] = *booking
	return nil
}

func (s *BookingStore) ListByOwner(_ context.Context, ownerID uuid.UUID, from time.Time) ([]model.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []model.Booking
	for key, booking := range s.bookings {
		if key.ownerID != ownerID {
			continue
		}
		if !from.IsZero() && booking.StartAt.Before(from) {
			continue
		}
		out = append(out, booking)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].StartAt.Before(out[j].StartAt)
	})
	return out, nil
}
