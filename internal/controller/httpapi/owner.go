package httpapi

import (
	"net/http"
	"time"

	"github.com/Freeeeeet/consult_booking/internal/model"
	"github.com/Freeeeeet/consult_booking/internal/scheduling"
	"github.com/Freeeeeet/consult_booking/internal/service"
)

type registerOwnerRequest struct {
	Email          string `json:"email"`
	Name           string `json:"name"`
	TelegramChatID *int64 `json:"telegram_chat_id,omitempty"`
}

func (h *Handler) RegisterOwner(w http.ResponseWriter, r *http.Request) {
	var body registerOwnerRequest
	if err := decode(r, &body); err != nil {
		h.writeError(w, r, err)
		return
	}

	owner, err := h.owners.Register(r.Context(), body.Email, body.Name, body.TelegramChatID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, owner)
}

func (h *Handler) GetOwner(w http.ResponseWriter, r *http.Request) {
	ownerID, err := pathUUID(r, "ownerId", "owner_id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	owner, err := h.owners.Get(r.Context(), ownerID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, owner)
}

type autoConfirmRequest struct {
	Enabled bool `json:"enabled"`
}

func (h *Handler) SetAutoConfirm(w http.ResponseWriter, r *http.Request) {
	ownerID, err := pathUUID(r, "ownerId", "owner_id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var body autoConfirmRequest
	if err := decode(r, &body); err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.owners.SetAutoConfirm(r.Context(), ownerID, body.Enabled); err != nil {
		h.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ListRules(w http.ResponseWriter, r *http.Request) {
	ownerID, err := pathUUID(r, "ownerId", "owner_id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	rules, err := h.scheduling.ListRules(r.Context(), ownerID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if rules == nil {
		rules = []model.AvailabilityRule{}
	}

	writeJSON(w, http.StatusOK, map[string][]model.AvailabilityRule{"rules": rules})
}

func (h *Handler) CreateRule(w http.ResponseWriter, r *http.Request) {
	ownerID, err := pathUUID(r, "ownerId", "owner_id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var body service.RuleInput
	if err := decode(r, &body); err != nil {
		h.writeError(w, r, err)
		return
	}

	rule, err := h.scheduling.CreateRule(r.Context(), ownerID, body)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, rule)
}

func (h *Handler) DeleteRule(w http.ResponseWriter, r *http.Request) {
	ownerID, err := pathUUID(r, "ownerId", "owner_id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	ruleID, err := pathUUID(r, "ruleId", "rule_id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.scheduling.DeleteRule(r.Context(), ruleID, ownerID); err != nil {
		h.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type weeklyScheduleRequest struct {
	Days                []int  `json:"days"`
	StartTime           string `json:"start_time"`
	EndTime             string `json:"end_time"`
	SlotDurationMinutes int    `json:"slot_duration_minutes"`
}

func (h *Handler) CreateWeeklySchedule(w http.ResponseWriter, r *http.Request) {
	ownerID, err := pathUUID(r, "ownerId", "owner_id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var body weeklyScheduleRequest
	if err := decode(r, &body); err != nil {
		h.writeError(w, r, err)
		return
	}

	days := make([]time.Weekday, 0, len(body.Days))
	for _, d := range body.Days {
		if d < 0 || d > 6 {
			h.writeError(w, r, &scheduling.ValidationError{Field: "days", Reason: "must be in [0,6]"})
			return
		}
		days = append(days, time.Weekday(d))
	}

	rules, err := h.scheduling.CreateWeeklySchedule(r.Context(), ownerID, days,
		body.StartTime, body.EndTime, body.SlotDurationMinutes)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string][]model.AvailabilityRule{"rules": rules})
}

func (h *Handler) ListOwnerSlots(w http.ResponseWriter, r *http.Request) {
	ownerID, err := pathUUID(r, "ownerId", "owner_id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	date, err := h.queryDate(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	slots, err := h.scheduling.ListSlotsForDate(r.Context(), ownerID, date)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string][]model.Slot{"slots": slotsResponse(slots)})
}

func (h *Handler) ListOwnerBookings(w http.ResponseWriter, r *http.Request) {
	ownerID, err := pathUUID(r, "ownerId", "owner_id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	bookings, err := h.scheduling.ListOwnerBookings(r.Context(), ownerID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if bookings == nil {
		bookings = []model.Booking{}
	}

	writeJSON(w, http.StatusOK, map[string][]model.Booking{"bookings": bookings})
}

type blockRequest struct {
	StartAt         string `json:"start_at"`
	DurationMinutes int    `json:"duration_minutes"`
}

func (h *Handler) BlockSlot(w http.ResponseWriter, r *http.Request) {
	ownerID, err := pathUUID(r, "ownerId", "owner_id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var body blockRequest
	if err := decode(r, &body); err != nil {
		h.writeError(w, r, err)
		return
	}

	startAt, err := parseStart(body.StartAt, h.location)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	block, err := h.scheduling.BlockSlot(r.Context(), ownerID, startAt, body.DurationMinutes)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, block)
}
