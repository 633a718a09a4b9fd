package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Freeeeeet/consult_booking/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type fakeSender struct {
	sent []*bot.SendMessageParams
	err  error
}

func (f *fakeSender) SendMessage(_ context.Context, params *bot.SendMessageParams) (*models.Message, error) {
	f.sent = append(f.sent, params)
	if f.err != nil {
		return nil, f.err
	}
	return &models.Message{}, nil
}

func testBooking() *model.Booking {
	phone := "+79123456789"
	return &model.Booking{
		ID:              uuid.New(),
		ClientName:      "Ivan <Petrov>",
		ClientEmail:     "ivan@example.com",
		ClientPhone:     &phone,
		StartAt:         time.Date(2026, time.October, 20, 9, 30, 0, 0, time.UTC),
		DurationMinutes: 90,
		Status:          model.BookingStatusPending,
		Kind:            model.BookingKindConsultation,
	}
}

func TestBookingMessage(t *testing.T) {
	msg := BookingMessage(testBooking())

	assert.Contains(t, msg, "Вторник, 20.10.2026 09:30")
	assert.Contains(t, msg, "09:30-11:00 (1 ч 30 мин)")
	assert.Contains(t, msg, "Ivan &lt;Petrov&gt;")
	assert.Contains(t, msg, "+79123456789")
	assert.Contains(t, msg, "⏳ Ожидает подтверждения")
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "45 мин", FormatDuration(45))
	assert.Equal(t, "1 ч", FormatDuration(60))
	assert.Equal(t, "2 ч 15 мин", FormatDuration(135))
}

func TestTelegramNotifier_BookingCreated(t *testing.T) {
	ctx := context.Background()
	chatID := int64(4242)
	owner := &model.Owner{ID: uuid.New(), Email: "lawyer@example.com", TelegramChatID: &chatID}

	sender := &fakeSender{}
	n := &TelegramNotifier{sender: sender, logger: zaptest.NewLogger(t)}

	require.NoError(t, n.BookingCreated(ctx, owner, testBooking()))
	require.Len(t, sender.sent, 1)
	assert.Equal(t, chatID, sender.sent[0].ChatID)
	assert.Equal(t, models.ParseModeHTML, sender.sent[0].ParseMode)
}

func TestTelegramNotifier_SkipsOwnerWithoutChat(t *testing.T) {
	sender := &fakeSender{}
	n := &TelegramNotifier{sender: sender, logger: zaptest.NewLogger(t)}

	err := n.BookingCreated(context.Background(), &model.Owner{ID: uuid.New()}, testBooking())
	require.NoError(t, err)
	assert.Empty(t, sender.sent)
}

func TestTelegramNotifier_ReturnsSendError(t *testing.T) {
	chatID := int64(1)
	sender := &fakeSender{err: errors.New("forbidden: bot was blocked by the user")}
	n := &TelegramNotifier{sender: sender, logger: zaptest.NewLogger(t)}

	err := n.BookingCreated(context.Background(), &model.Owner{ID: uuid.New(), TelegramChatID: &chatID}, testBooking())
	assert.ErrorIs(t, err, sender.err)
}

func TestStartMessage(t *testing.T) {
	assert.Contains(t, StartMessage(-100123), "-100123")
}
