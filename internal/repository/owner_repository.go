package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/consult_booking/internal/model"
	"github.com/Freeeeeet/consult_booking/internal/repository/base"
	"github.com/Freeeeeet/consult_booking/internal/scheduling"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const ownerColumns = `id, email, name, booking_link, telegram_chat_id, auto_confirm_bookings, created_at`

type OwnerRepository struct {
	*base.Repository
}

func NewOwnerRepository(pool *pgxpool.Pool) *OwnerRepository {
	return &OwnerRepository{Repository: base.NewRepository(pool)}
}

// Create создаёт нового владельца
func (r *OwnerRepository) Create(ctx context.Context, owner *model.Owner) error {
	query := `
		INSERT INTO owners (id, email, name, booking_link, telegram_chat_id, auto_confirm_bookings)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`

	err := r.QueryRow(
		ctx, query,
		owner.ID,
		owner.Email,
		owner.Name,
		owner.BookingLink,
		owner.TelegramChatID,
		owner.AutoConfirmBookings,
	).Scan(&owner.CreatedAt)

	if err != nil {
		if base.IsUniqueViolation(err) {
			return &scheduling.ValidationError{Field: "email", Reason: "is already registered"}
		}
		return fmt.Errorf("create owner: %w", err)
	}

	return nil
}

// GetByID получает владельца по ID
func (r *OwnerRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Owner, error) {
	query := `SELECT ` + ownerColumns + ` FROM owners WHERE id = $1`

	owner, err := scanOwner(r.QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil // Владелец не найден
		}
		return nil, fmt.Errorf("get owner by id: %w", err)
	}

	return owner, nil
}

// GetByBookingLink получает владельца по публичной ссылке
func (r *OwnerRepository) GetByBookingLink(ctx context.Context, link string) (*model.Owner, error) {
	query := `SELECT ` + ownerColumns + ` FROM owners WHERE booking_link = $1`

	owner, err := scanOwner(r.QueryRow(ctx, query, link))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get owner by booking link: %w", err)
	}

	return owner, nil
}

// BookingLinkExists проверяет, занята ли ссылка
func (r *OwnerRepository) BookingLinkExists(ctx context.Context, link string) (bool, error) {
	var exists bool
	err := r.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM owners WHERE booking_link = $1)`, link).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check booking link exists: %w", err)
	}
	return exists, nil
}

// SetAutoConfirm включает или выключает автоподтверждение записей
func (r *OwnerRepository) SetAutoConfirm(ctx context.Context, id uuid.UUID, enabled bool) error {
	affected, err := r.ExecAffected(ctx, `UPDATE owners SET auto_confirm_bookings = $1 WHERE id = $2`, enabled, id)
	if err != nil {
		return fmt.Errorf("update owner auto confirm: %w", err)
	}

	if affected == 0 {
		return fmt.Errorf("owner %s: %w", id, scheduling.ErrNotFound)
	}

	return nil
}

func scanOwner(row pgx.Row) (*model.Owner, error) {
	var owner model.Owner
	err := row.Scan(
		&owner.ID,
		&owner.Email,
		&owner.Name,
		&owner.BookingLink,
		&owner.TelegramChatID,
		&owner.AutoConfirmBookings,
		&owner.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &owner, nil
}
