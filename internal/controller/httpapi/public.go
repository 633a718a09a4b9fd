package httpapi

import (
	"net/http"

	"github.com/Freeeeeet/consult_booking/internal/model"
	"github.com/gorilla/mux"
)

// publicOwner - то, что клиент видит по ссылке
type publicOwner struct {
	Name        string `json:"name"`
	BookingLink string `json:"booking_link"`
}

func (h *Handler) owner(r *http.Request) (*model.Owner, error) {
	return h.scheduling.ResolveBookingLink(r.Context(), mux.Vars(r)["link"])
}

func (h *Handler) GetPublicOwner(w http.ResponseWriter, r *http.Request) {
	owner, err := h.owner(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, publicOwner{Name: owner.DisplayName(), BookingLink: owner.BookingLink})
}

func (h *Handler) GetPublicDates(w http.ResponseWriter, r *http.Request) {
	days, err := queryDays(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	owner, err := h.owner(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	dates, err := h.scheduling.ListBookableDates(r.Context(), owner.ID, days)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string][]string{"dates": datesResponse(dates)})
}

func (h *Handler) GetPublicSlots(w http.ResponseWriter, r *http.Request) {
	date, err := h.queryDate(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	owner, err := h.owner(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	slots, err := h.scheduling.ListSlotsForDate(r.Context(), owner.ID, date)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string][]model.Slot{"slots": slotsResponse(slots)})
}

// publicBookingRequest - запись от клиента; владелец берётся из ссылки
type publicBookingRequest struct {
	ClientName      string  `json:"client_name"`
	ClientEmail     string  `json:"client_email"`
	ClientPhone     *string `json:"client_phone,omitempty"`
	StartAt         string  `json:"start_at"`
	DurationMinutes int     `json:"duration_minutes"`
}

func (h *Handler) CreatePublicBooking(w http.ResponseWriter, r *http.Request) {
	var body publicBookingRequest
	if err := decode(r, &body); err != nil {
		h.writeError(w, r, err)
		return
	}

	startAt, err := parseStart(body.StartAt, h.location)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	owner, err := h.owner(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	booking, err := h.scheduling.CreateBooking(r.Context(), model.BookingRequest{
		OwnerID:         owner.ID,
		ClientName:      body.ClientName,
		ClientEmail:     body.ClientEmail,
		ClientPhone:     body.ClientPhone,
		StartAt:         startAt,
		DurationMinutes: body.DurationMinutes,
		Kind:            model.BookingKindConsultation,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, booking)
}
