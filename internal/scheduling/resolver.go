package scheduling

import (
	"time"

	"github.com/Freeeeeet/consult_booking/internal/model"
)

// ResolveStates проставляет состояние каждому кандидатному слоту.
//
// Слот, целиком закончившийся к now, всегда PAST. Для остальных
// приоритет: BLOCKED > BOOKED > PAST > AVAILABLE. Несколько записей на одном слоте
// возможны только при сбое контроля записи выше по стеку; ошибкой это не считается,
// берётся худшая классификация. Порядок слотов сохраняется, входной срез не меняется.
// bookings должны быть уже отфильтрованы по владельцу.
func ResolveStates(slots []model.Slot, bookings []model.Booking, now time.Time) []model.Slot {
	resolved := make([]model.Slot, len(slots))

	for i, slot := range slots {
		slot.State = classify(slot, bookings, now)
		resolved[i] = slot
	}

	return resolved
}

func classify(slot model.Slot, bookings []model.Booking, now time.Time) model.SlotState {
	start, end := slot.StartAt, slot.EndAt()
	if !end.After(now) {
		return model.SlotStatePast
	}

	booked := false
	for i := range bookings {
		b := &bookings[i]
		if !overlaps(start, end, b.StartAt, b.EndAt()) {
			continue
		}
		if b.IsBlocking() {
			return model.SlotStateBlocked
		}
		booked = true
	}

	switch {
	case booked:
		return model.SlotStateBooked
	case !start.After(now):
		return model.SlotStatePast
	default:
		return model.SlotStateAvailable
	}
}
