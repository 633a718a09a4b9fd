package scheduling

import (
	"sort"
	"time"

	"github.com/Freeeeeet/consult_booking/internal/model"
)

// GenerateSlots строит кандидатные слоты на дату date по недельным правилам владельца.
//
// Для каждого правила с подходящим днём недели слоты нарезаются от начала окна
// с шагом SlotDurationMinutes, пока слот целиком помещается в окно; хвост
// короче длительности слота отбрасывается. Слоты разных правил сливаются
// в один список по возрастанию начала, при равенстве сохраняется порядок правил.
func GenerateSlots(date time.Time, rules []model.AvailabilityRule) []model.Slot {
	day := DateOf(date)
	weekday := day.Weekday()

	var slots []model.Slot
	for _, rule := range rules {
		if rule.Weekday() != weekday || rule.SlotDurationMinutes <= 0 {
			continue
		}

		step := rule.SlotDuration()
		windowEnd := rule.EndTime.On(day)
		for cur := rule.StartTime.On(day); !cur.Add(step).After(windowEnd); cur = cur.Add(step) {
			slots = append(slots, model.Slot{
				RuleID:          rule.ID,
				StartAt:         cur,
				DurationMinutes: rule.SlotDurationMinutes,
				State:           model.SlotStateAvailable,
			})
		}
	}

	sort.SliceStable(slots, func(i, j int) bool {
		return slots[i].StartAt.Before(slots[j].StartAt)
	})

	return slots
}

// HasRuleOn сообщает, опубликовано ли хоть одно правило на день недели даты
func HasRuleOn(date time.Time, rules []model.AvailabilityRule) bool {
	weekday := date.Weekday()
	for _, rule := range rules {
		if rule.Weekday() == weekday {
			return true
		}
	}
	return false
}
