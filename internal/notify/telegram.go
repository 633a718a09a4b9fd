package notify

import (
	"context"
	"fmt"
	"strconv"

	"github.com/Freeeeeet/consult_booking/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// messageSender - часть *bot.Bot, которая нужна уведомителю
type messageSender interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
}

// TelegramNotifier отправляет владельцу сообщение о каждой новой записи
type TelegramNotifier struct {
	sender messageSender
	logger *zap.Logger
}

func NewTelegramNotifier(b *bot.Bot, logger *zap.Logger) *TelegramNotifier {
	return &TelegramNotifier{sender: b, logger: logger}
}

// BookingCreated отправляет уведомление. Владельцы без привязанного чата пропускаются.
func (n *TelegramNotifier) BookingCreated(ctx context.Context, owner *model.Owner, booking *model.Booking) error {
	if owner.TelegramChatID == nil {
		n.logger.Debug("Owner has no telegram chat, skipping notification",
			zap.String("owner_id", owner.ID.String()))
		return nil
	}

	_, err := n.sender.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    *owner.TelegramChatID,
		Text:      BookingMessage(booking),
		ParseMode: models.ParseModeHTML,
	})
	if err != nil {
		return fmt.Errorf("send telegram message: %w", err)
	}

	n.logger.Info("Owner notified about booking",
		zap.String("owner_id", owner.ID.String()),
		zap.String("booking_id", booking.ID.String()))

	return nil
}

// Bot - бот для привязки чата владельца: на /start отвечает номером чата,
// который владелец указывает при регистрации
type Bot struct {
	bot    *bot.Bot
	logger *zap.Logger
}

// NewBot создаёт клиента Telegram и регистрирует команды
func NewBot(token string, logger *zap.Logger) (*Bot, error) {
	b, err := bot.New(token)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}

	tb := &Bot{bot: b, logger: logger}
	b.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypeExact, tb.handleStart)

	return tb, nil
}

// Client возвращает клиента Telegram для отправки уведомлений
func (b *Bot) Client() *bot.Bot {
	return b.bot
}

// Start запускает long polling до отмены ctx
func (b *Bot) Start(ctx context.Context) {
	b.logger.Info("Starting telegram bot...")
	b.bot.Start(ctx)
}

func (b *Bot) handleStart(ctx context.Context, tg *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	_, err := tg.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text:   StartMessage(update.Message.Chat.ID),
	})
	if err != nil {
		b.logger.Error("Failed to answer /start",
			zap.Int64("chat_id", update.Message.Chat.ID),
			zap.Error(err))
	}
}

// StartMessage - ответ на /start
func StartMessage(chatID int64) string {
	return "👋 Здесь будут уведомления о новых записях.\n\n" +
		"Укажите этот номер чата в профиле: " + strconv.FormatInt(chatID, 10)
}
