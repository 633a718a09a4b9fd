package model

import (
	"time"

	"github.com/google/uuid"
)

// Owner - владелец расписания (юрист), публикующий ссылку для записи
type Owner struct {
	ID                  uuid.UUID `json:"id"`
	Email               string    `json:"email"`
	Name                string    `json:"name"`
	BookingLink         string    `json:"booking_link"`          // публичный код ссылки /book/{link}
	TelegramChatID      *int64    `json:"telegram_chat_id"`      // nil - уведомления выключены
	AutoConfirmBookings bool      `json:"auto_confirm_bookings"` // Автоматически подтверждать записи
	CreatedAt           time.Time `json:"created_at"`
}

// DisplayName возвращает имя владельца или email, если имя не задано
func (o *Owner) DisplayName() string {
	if o.Name != "" {
		return o.Name
	}
	return o.Email
}
