package model

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// ClockTime - время суток в минутах от полуночи (без даты и часового пояса)
type ClockTime int

// MinutesPerDay - 24:00 допустим только как конец окна
const MinutesPerDay = 24 * 60

// ParseClockTime разбирает строку вида "HH:MM"
func ParseClockTime(s string) (ClockTime, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, fmt.Errorf("invalid time %q: want HH:MM", s)
	}
	hour, err := strconv.Atoi(s[:2])
	if err != nil {
		return 0, fmt.Errorf("invalid hour in %q: %w", s, err)
	}
	minute, err := strconv.Atoi(s[3:])
	if err != nil {
		return 0, fmt.Errorf("invalid minute in %q: %w", s, err)
	}
	if minute < 0 || minute > 59 || hour < 0 || hour*60+minute > MinutesPerDay {
		return 0, fmt.Errorf("invalid time %q: out of range", s)
	}
	return ClockTime(hour*60 + minute), nil
}

// MustClockTime как ParseClockTime, но паникует на ошибке. Для констант и тестов.
func MustClockTime(s string) ClockTime {
	ct, err := ParseClockTime(s)
	if err != nil {
		panic(err)
	}
	return ct
}

func (c ClockTime) Hour() int   { return int(c) / 60 }
func (c ClockTime) Minute() int { return int(c) % 60 }

// Before сообщает, что c раньше other
func (c ClockTime) Before(other ClockTime) bool {
	return c < other
}

// On возвращает момент c по настенным часам в календарный день date (в часовом поясе date).
// 24:00 - полночь следующего дня.
func (c ClockTime) On(date time.Time) time.Time {
	y, m, d := date.Date()
	if c >= MinutesPerDay {
		return time.Date(y, m, d+1, 0, 0, 0, 0, date.Location())
	}
	return time.Date(y, m, d, c.Hour(), c.Minute(), 0, 0, date.Location())
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour(), c.Minute())
}

func (c ClockTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c *ClockTime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("clock time must be a string: %w", err)
	}
	parsed, err := ParseClockTime(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
