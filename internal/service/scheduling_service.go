package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/consult_booking/internal/model"
	"github.com/Freeeeeet/consult_booking/internal/scheduling"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultBookableDays - горизонт публичного календаря по умолчанию
const DefaultBookableDays = 30

// SchedulingService - фасад расписания: отвечает на "что можно забронировать в день D"
// и "попробовать забронировать слот S". Состояния между запросами не хранит.
type SchedulingService struct {
	owners    OwnerStore
	rules     RuleStore
	bookings  BookingStore
	admission *scheduling.Admission
	clock     scheduling.Clock
	notifier  Notifier
	horizon   int
	logger    *zap.Logger
}

func NewSchedulingService(
	owners OwnerStore,
	rules RuleStore,
	bookings BookingStore,
	admission *scheduling.Admission,
	clock scheduling.Clock,
	notifier Notifier,
	horizonDays int,
	logger *zap.Logger,
) *SchedulingService {
	if horizonDays <= 0 {
		horizonDays = DefaultBookableDays
	}
	if notifier == nil {
		notifier = NopNotifier{}
	}

	return &SchedulingService{
		owners:    owners,
		rules:     rules,
		bookings:  bookings,
		admission: admission,
		clock:     clock,
		notifier:  notifier,
		horizon:   horizonDays,
		logger:    logger,
	}
}

// Today возвращает текущую дату по часам сервиса
func (s *SchedulingService) Today() time.Time {
	return scheduling.DateOf(s.clock.Now())
}

// ResolveBookingLink находит владельца по публичной ссылке
func (s *SchedulingService) ResolveBookingLink(ctx context.Context, link string) (*model.Owner, error) {
	owner, err := s.owners.GetByBookingLink(ctx, link)
	if err != nil {
		return nil, fmt.Errorf("get owner by link: %w", err)
	}

	if owner == nil {
		return nil, fmt.Errorf("booking link %q: %w", link, scheduling.ErrNotFound)
	}

	return owner, nil
}

// ListBookableDates возвращает даты ближайших rangeDays дней начиная с сегодня,
// на день недели которых есть хотя бы одно правило. Занятость слотов не учитывается.
func (s *SchedulingService) ListBookableDates(ctx context.Context, ownerID uuid.UUID, rangeDays int) ([]time.Time, error) {
	if _, err := s.owner(ctx, ownerID); err != nil {
		return nil, err
	}

	if rangeDays <= 0 {
		rangeDays = s.horizon
	}

	rules, err := s.rules.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("get rules: %w", err)
	}

	today := s.Today()
	dates := make([]time.Time, 0, rangeDays)
	for i := 0; i < rangeDays; i++ {
		date := today.AddDate(0, 0, i)
		if scheduling.HasRuleOn(date, rules) {
			dates = append(dates, date)
		}
	}

	return dates, nil
}

// ListSlotsForDate строит слоты на дату и проставляет им состояния по текущим записям
func (s *SchedulingService) ListSlotsForDate(ctx context.Context, ownerID uuid.UUID, date time.Time) ([]model.Slot, error) {
	if _, err := s.owner(ctx, ownerID); err != nil {
		return nil, err
	}

	// Берём календарную дату как есть, без перевода в пояс сервиса
	y, m, d := date.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, s.location())

	rules, err := s.rules.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("get rules: %w", err)
	}

	bookings, err := s.bookings.ListByOwner(ctx, ownerID, lookbackFrom(day))
	if err != nil {
		return nil, fmt.Errorf("get bookings: %w", err)
	}

	candidates := scheduling.GenerateSlots(day, rules)
	return scheduling.ResolveStates(candidates, bookings, s.clock.Now()), nil
}

// CreateBooking проверяет запрос контроллером допуска и сохраняет запись.
// Конфликт при вставке (параллельная запись на то же время) возвращается как
// scheduling.ErrSlotConflict; повторных попыток нет.
func (s *SchedulingService) CreateBooking(ctx context.Context, req model.BookingRequest) (*model.Booking, error) {
	owner, err := s.owner(ctx, req.OwnerID)
	if err != nil {
		return nil, err
	}
	req.AutoConfirm = owner.AutoConfirmBookings

	rules, err := s.rules.ListByOwner(ctx, owner.ID)
	if err != nil {
		return nil, fmt.Errorf("get rules: %w", err)
	}

	var from time.Time
	if !req.StartAt.IsZero() {
		from = lookbackFrom(scheduling.DateOf(req.StartAt.In(s.location())))
	}

	existing, err := s.bookings.ListByOwner(ctx, owner.ID, from)
	if err != nil {
		return nil, fmt.Errorf("get bookings: %w", err)
	}

	booking, err := s.admission.AttemptBooking(req, existing, rules, s.clock.Now())
	if err != nil {
		return nil, err
	}

	if err := s.bookings.InsertIfAbsent(ctx, booking); err != nil {
		return nil, err
	}

	s.logger.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("owner_id", owner.ID.String()),
		zap.Time("start_at", booking.StartAt),
		zap.Int("duration_minutes", booking.DurationMinutes),
		zap.String("kind", string(booking.Kind)),
		zap.String("status", string(booking.Status)),
	)

	if booking.Kind == model.BookingKindConsultation {
		if err := s.notifier.BookingCreated(ctx, owner, booking); err != nil {
			// Запись уже сохранена - сбой уведомления не отменяет её
			s.logger.Warn("Failed to notify owner about booking",
				zap.String("booking_id", booking.ID.String()),
				zap.Error(err))
		}
	}

	return booking, nil
}

// BlockSlot - владелец помечает время как занятое
func (s *SchedulingService) BlockSlot(ctx context.Context, ownerID uuid.UUID, startAt time.Time, durationMinutes int) (*model.Booking, error) {
	return s.CreateBooking(ctx, model.BookingRequest{
		OwnerID:         ownerID,
		StartAt:         startAt,
		DurationMinutes: durationMinutes,
		Kind:            model.BookingKindBlocked,
	})
}

// ListOwnerBookings получает все записи владельца по времени начала
func (s *SchedulingService) ListOwnerBookings(ctx context.Context, ownerID uuid.UUID) ([]model.Booking, error) {
	if _, err := s.owner(ctx, ownerID); err != nil {
		return nil, err
	}

	bookings, err := s.bookings.ListByOwner(ctx, ownerID, time.Time{})
	if err != nil {
		return nil, fmt.Errorf("get bookings: %w", err)
	}

	return bookings, nil
}

func (s *SchedulingService) owner(ctx context.Context, ownerID uuid.UUID) (*model.Owner, error) {
	if ownerID == uuid.Nil {
		return nil, &scheduling.ValidationError{Field: "owner_id", Reason: "is required"}
	}

	owner, err := s.owners.GetByID(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("get owner: %w", err)
	}

	if owner == nil {
		return nil, fmt.Errorf("owner %s: %w", ownerID, scheduling.ErrNotFound)
	}

	return owner, nil
}

func (s *SchedulingService) location() *time.Location {
	return s.clock.Now().Location()
}

// lookbackFrom - нижняя граница выборки записей на день: запись, начавшаяся
// накануне, может заходить на этот день
func lookbackFrom(day time.Time) time.Time {
	return day.AddDate(0, 0, -1)
}
