package scheduling

import "time"

// Clock отдаёт текущее время; подменяется в тестах
type Clock interface {
	Now() time.Time
}

// SystemClock - реальное время в заданном часовом поясе
type SystemClock struct {
	Location *time.Location
}

func (c SystemClock) Now() time.Time {
	if c.Location == nil {
		return time.Now()
	}
	return time.Now().In(c.Location)
}

// FixedClock всегда возвращает одно и то же время
type FixedClock time.Time

func (c FixedClock) Now() time.Time {
	return time.Time(c)
}

// DateOf отбрасывает время суток, оставляя полночь в часовом поясе t
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// overlaps - пересечение полуоткрытых интервалов [aStart, aEnd) и [bStart, bEnd)
func overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}
