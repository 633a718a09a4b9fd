package service

import (
	"context"
	"crypto/rand"
	"encoding/base32"
	"fmt"
	"strings"

	"github.com/Freeeeeet/consult_booking/internal/model"
	"github.com/Freeeeeet/consult_booking/internal/scheduling"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const bookingLinkLength = 10

type OwnerService struct {
	owners OwnerStore
	logger *zap.Logger
}

func NewOwnerService(owners OwnerStore, logger *zap.Logger) *OwnerService {
	return &OwnerService{
		owners: owners,
		logger: logger,
	}
}

// Register создаёт профиль владельца и выдаёт ему публичную ссылку для записи
func (s *OwnerService) Register(ctx context.Context, email, name string, telegramChatID *int64) (*model.Owner, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	name = strings.TrimSpace(name)

	if err := ruleValidate.Var(email, "required,email"); err != nil {
		return nil, &scheduling.ValidationError{Field: "email", Reason: "must be an email address"}
	}

	link, err := s.generateBookingLink(ctx)
	if err != nil {
		return nil, err
	}

	owner := &model.Owner{
		ID:             uuid.New(),
		Email:          email,
		Name:           name,
		BookingLink:    link,
		TelegramChatID: telegramChatID,
	}

	if err := s.owners.Create(ctx, owner); err != nil {
		return nil, fmt.Errorf("create owner: %w", err)
	}

	s.logger.Info("Owner registered",
		zap.String("owner_id", owner.ID.String()),
		zap.String("email", owner.Email),
		zap.String("booking_link", owner.BookingLink),
		zap.Bool("telegram", telegramChatID != nil),
	)

	return owner, nil
}

// Get получает владельца по ID
func (s *OwnerService) Get(ctx context.Context, ownerID uuid.UUID) (*model.Owner, error) {
	owner, err := s.owners.GetByID(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("get owner: %w", err)
	}

	if owner == nil {
		return nil, fmt.Errorf("owner %s: %w", ownerID, scheduling.ErrNotFound)
	}

	return owner, nil
}

// SetAutoConfirm включает или выключает автоподтверждение новых записей
func (s *OwnerService) SetAutoConfirm(ctx context.Context, ownerID uuid.UUID, enabled bool) error {
	if err := s.owners.SetAutoConfirm(ctx, ownerID, enabled); err != nil {
		return fmt.Errorf("set auto confirm: %w", err)
	}

	s.logger.Info("Owner auto confirm changed",
		zap.String("owner_id", ownerID.String()),
		zap.Bool("enabled", enabled))

	return nil
}

// generateBookingLink генерирует уникальный код ссылки
func (s *OwnerService) generateBookingLink(ctx context.Context) (string, error) {
	const maxAttempts = 10

	for i := 0; i < maxAttempts; i++ {
		bytes := make([]byte, 8)
		if _, err := rand.Read(bytes); err != nil {
			return "", fmt.Errorf("generate random bytes: %w", err)
		}

		// base32 без padding, в нижнем регистре - ссылку вводят руками
		link := strings.ToLower(strings.TrimRight(base32.StdEncoding.EncodeToString(bytes), "="))
		if len(link) > bookingLinkLength {
			link = link[:bookingLinkLength]
		}

		exists, err := s.owners.BookingLinkExists(ctx, link)
		if err != nil {
			return "", fmt.Errorf("check booking link exists: %w", err)
		}

		if !exists {
			return link, nil
		}
	}

	return "", fmt.Errorf("failed to generate unique booking link after %d attempts", maxAttempts)
}
