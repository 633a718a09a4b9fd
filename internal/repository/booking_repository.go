package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/consult_booking/internal/model"
	"github.com/Freeeeeet/consult_booking/internal/repository/base"
	"github.com/Freeeeeet/consult_booking/internal/scheduling"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const bookingColumns = `id, owner_id, client_name, client_email, client_phone, start_at,
	duration_minutes, status, payment_confirmed, kind, created_at`

type BookingRepository struct {
	*base.Repository
}

func NewBookingRepository(pool *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{Repository: base.NewRepository(pool)}
}

// InsertIfAbsent атомарно создаёт запись, если у владельца нет активной записи
// с тем же временем начала. Иначе возвращает scheduling.ErrSlotConflict.
func (r *BookingRepository) InsertIfAbsent(ctx context.Context, booking *model.Booking) error {
	query := `
		INSERT INTO bookings (id, owner_id, client_name, client_email, client_phone, start_at,
			duration_minutes, status, payment_confirmed, kind)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (owner_id, start_at) WHERE status <> 'CANCELLED' DO NOTHING
		RETURNING created_at
	`

	err := r.QueryRow(
		ctx, query,
		booking.ID,
		booking.OwnerID,
		booking.ClientName,
		booking.ClientEmail,
		booking.ClientPhone,
		booking.StartAt,
		booking.DurationMinutes,
		booking.Status,
		booking.PaymentConfirmed,
		booking.Kind,
	).Scan(&booking.CreatedAt)

	if err != nil {
		// DO NOTHING не возвращает строку - время уже занято параллельной записью
		if base.IsNotFound(err) || base.IsUniqueViolation(err) {
			return fmt.Errorf("insert booking at %s: %w",
				booking.StartAt.Format(time.RFC3339), scheduling.ErrSlotConflict)
		}
		return fmt.Errorf("insert booking: %w", err)
	}

	return nil
}

// ListByOwner получает записи владельца, начинающиеся не раньше from.
// Нулевой from означает все записи.
func (r *BookingRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, from time.Time) ([]model.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE owner_id = $1 AND status <> 'CANCELLED' AND ($2::timestamptz IS NULL OR start_at >= $2)
		ORDER BY start_at
	`

	var fromArg *time.Time
	if !from.IsZero() {
		fromArg = &from
	}

	rows, err := r.Query(ctx, query, ownerID, fromArg)
	if err != nil {
		return nil, fmt.Errorf("get bookings by owner: %w", err)
	}

	bookings, err := base.CollectRows(rows, scanBooking)
	if err != nil {
		return nil, fmt.Errorf("scan bookings: %w", err)
	}

	return bookings, nil
}

func scanBooking(row pgx.Row) (model.Booking, error) {
	var booking model.Booking
	err := row.Scan(
		&booking.ID,
		&booking.OwnerID,
		&booking.ClientName,
		&booking.ClientEmail,
		&booking.ClientPhone,
		&booking.StartAt,
		&booking.DurationMinutes,
		&booking.Status,
		&booking.PaymentConfirmed,
		&booking.Kind,
		&booking.CreatedAt,
	)
	return booking, err
}
