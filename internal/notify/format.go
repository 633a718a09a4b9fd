package notify

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/Freeeeeet/consult_booking/internal/model"
)

// FormatDateTime форматирует дату и время
func FormatDateTime(t time.Time) string {
	return t.Format("02.01.2006 15:04")
}

// FormatTimeRange форматирует диапазон времени
func FormatTimeRange(start, end time.Time) string {
	return fmt.Sprintf("%s-%s", start.Format("15:04"), end.Format("15:04"))
}

// FormatDuration форматирует длительность в минутах
func FormatDuration(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%d мин", minutes)
	}
	hours := minutes / 60
	mins := minutes % 60
	if mins == 0 {
		return fmt.Sprintf("%d ч", hours)
	}
	return fmt.Sprintf("%d ч %d мин", hours, mins)
}

// WeekdayName возвращает название дня недели на русском
func WeekdayName(weekday time.Weekday) string {
	names := []string{
		"Воскресенье",
		"Понедельник",
		"Вторник",
		"Среда",
		"Четверг",
		"Пятница",
		"Суббота",
	}
	if weekday >= 0 && int(weekday) < len(names) {
		return names[weekday]
	}
	return "Неизвестно"
}

// StatusDisplay представляет отображение статуса записи
type StatusDisplay struct {
	Emoji string
	Text  string
}

// BookingStatusDisplay возвращает emoji и текст для статуса записи
func BookingStatusDisplay(status model.BookingStatus) StatusDisplay {
	displays := map[model.BookingStatus]StatusDisplay{
		model.BookingStatusPending:   {"⏳", "Ожидает подтверждения"},
		model.BookingStatusConfirmed: {"✅", "Подтверждена"},
		model.BookingStatusBlocked:   {"🔒", "Личное время"},
	}

	if display, ok := displays[status]; ok {
		return display
	}

	return StatusDisplay{"❓", "Неизвестно"}
}

// BookingMessage собирает текст уведомления владельцу о новой записи
func BookingMessage(booking *model.Booking) string {
	status := BookingStatusDisplay(booking.Status)

	var sb strings.Builder
	sb.WriteString("📅 <b>Новая запись на консультацию</b>\n\n")
	fmt.Fprintf(&sb, "🗓 %s, %s\n", WeekdayName(booking.StartAt.Weekday()), FormatDateTime(booking.StartAt))
	fmt.Fprintf(&sb, "⏰ %s (%s)\n", FormatTimeRange(booking.StartAt, booking.EndAt()), FormatDuration(booking.DurationMinutes))
	fmt.Fprintf(&sb, "👤 %s\n", html.EscapeString(booking.ClientName))
	fmt.Fprintf(&sb, "✉️ %s\n", html.EscapeString(booking.ClientEmail))
	if booking.ClientPhone != nil {
		fmt.Fprintf(&sb, "📞 %s\n", html.EscapeString(*booking.ClientPhone))
	}
	fmt.Fprintf(&sb, "\n%s %s", status.Emoji, status.Text)

	return sb.String()
}
