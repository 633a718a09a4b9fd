package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Freeeeeet/consult_booking/internal/model"
	"github.com/Freeeeeet/consult_booking/internal/scheduling"
	"github.com/Freeeeeet/consult_booking/internal/service"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

// Handler - HTTP-обёртка над фасадом расписания
type Handler struct {
	scheduling *service.SchedulingService
	owners     *service.OwnerService
	location   *time.Location
	logger     *zap.Logger
}

func NewHandler(
	scheduling *service.SchedulingService,
	owners *service.OwnerService,
	location *time.Location,
	logger *zap.Logger,
) *Handler {
	if location == nil {
		location = time.Local
	}

	return &Handler{
		scheduling: scheduling,
		owners:     owners,
		location:   location,
		logger:     logger,
	}
}

// Router собирает маршруты публичной ссылки и кабинета владельца
func (h *Handler) Router() *mux.Router {
	router := mux.NewRouter()
	h.RegisterRoutes(router)
	return router
}

func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/healthz", h.Health).Methods(http.MethodGet)

	router.HandleFunc("/book/{link}", h.GetPublicOwner).Methods(http.MethodGet)
	public := router.PathPrefix("/book/{link}").Subrouter()
	public.HandleFunc("/dates", h.GetPublicDates).Methods(http.MethodGet)
	public.HandleFunc("/slots", h.GetPublicSlots).Methods(http.MethodGet)
	public.HandleFunc("/bookings", h.CreatePublicBooking).Methods(http.MethodPost)

	api := router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/owners", h.RegisterOwner).Methods(http.MethodPost)
	api.HandleFunc("/owners/{ownerId}", h.GetOwner).Methods(http.MethodGet)
	api.HandleFunc("/owners/{ownerId}/auto-confirm", h.SetAutoConfirm).Methods(http.MethodPut)
	api.HandleFunc("/owners/{ownerId}/rules", h.ListRules).Methods(http.MethodGet)
	api.HandleFunc("/owners/{ownerId}/rules", h.CreateRule).Methods(http.MethodPost)
	api.HandleFunc("/owners/{ownerId}/rules/{ruleId}", h.DeleteRule).Methods(http.MethodDelete)
	api.HandleFunc("/owners/{ownerId}/schedule", h.CreateWeeklySchedule).Methods(http.MethodPost)
	api.HandleFunc("/owners/{ownerId}/slots", h.ListOwnerSlots).Methods(http.MethodGet)
	api.HandleFunc("/owners/{ownerId}/bookings", h.ListOwnerBookings).Methods(http.MethodGet)
	api.HandleFunc("/owners/{ownerId}/blocks", h.BlockSlot).Methods(http.MethodPost)
}

func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func pathUUID(r *http.Request, name, field string) (uuid.UUID, error) {
	id, err := uuid.Parse(mux.Vars(r)[name])
	if err != nil {
		return uuid.Nil, &scheduling.ValidationError{Field: field, Reason: "must be a UUID"}
	}
	return id, nil
}

// queryDate разбирает ?date=YYYY-MM-DD в часовом поясе сервиса
func (h *Handler) queryDate(r *http.Request) (time.Time, error) {
	raw := r.URL.Query().Get("date")
	if raw == "" {
		return time.Time{}, &scheduling.ValidationError{Field: "date", Reason: "is required"}
	}

	date, err := time.ParseInLocation(dateLayout, raw, h.location)
	if err != nil {
		return time.Time{}, &scheduling.ValidationError{Field: "date", Reason: "must be YYYY-MM-DD"}
	}
	return date, nil
}

// parseStart принимает RFC 3339 или локальное "YYYY-MM-DDTHH:MM" в часовом поясе сервиса
func parseStart(raw string, loc *time.Location) (time.Time, error) {
	if raw == "" {
		return time.Time{}, &scheduling.ValidationError{Field: "start_at", Reason: "is required"}
	}

	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.In(loc), nil
	}
	if t, err := time.ParseInLocation("2006-01-02T15:04", raw, loc); err == nil {
		return t, nil
	}

	return time.Time{}, &scheduling.ValidationError{Field: "start_at", Reason: "must be RFC 3339 or YYYY-MM-DDTHH:MM"}
}

// queryDays разбирает ?days=N; пусто - горизонт по умолчанию
func queryDays(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("days")
	if raw == "" {
		return 0, nil
	}

	days, err := strconv.Atoi(raw)
	if err != nil || days < 0 {
		return 0, &scheduling.ValidationError{Field: "days", Reason: "must be a non-negative integer"}
	}
	return days, nil
}

// datesResponse - даты в виде YYYY-MM-DD
func datesResponse(dates []time.Time) []string {
	out := make([]string, len(dates))
	for i, d := range dates {
		out[i] = d.Format(dateLayout)
	}
	return out
}

func slotsResponse(slots []model.Slot) []model.Slot {
	if slots == nil {
		return []model.Slot{}
	}
	return slots
}
