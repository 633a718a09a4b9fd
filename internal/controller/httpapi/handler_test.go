package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Freeeeeet/consult_booking/internal/model"
	"github.com/Freeeeeet/consult_booking/internal/repository/memory"
	"github.com/Freeeeeet/consult_booking/internal/scheduling"
	"github.com/Freeeeeet/consult_booking/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// Понедельник, полдень
var now = time.Date(2026, time.October, 19, 12, 0, 0, 0, time.UTC)

type testAPI struct {
	router http.Handler
	owner  *model.Owner
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	logger := zaptest.NewLogger(t)

	ownerStore := memory.NewOwnerStore()
	owners := service.NewOwnerService(ownerStore, logger)
	svc := service.NewSchedulingService(
		ownerStore,
		memory.NewRuleStore(),
		memory.NewBookingStore(),
		scheduling.NewAdmission("RU"),
		scheduling.FixedClock(now),
		service.NopNotifier{},
		30,
		logger,
	)

	owner, err := owners.Register(context.Background(), "lawyer@example.com", "Anna", nil)
	require.NoError(t, err)

	_, err = svc.CreateRule(context.Background(), owner.ID, service.RuleInput{
		DayOfWeek: int(time.Tuesday), StartTime: "09:00", EndTime: "11:00", SlotDurationMinutes: 60,
	})
	require.NoError(t, err)

	return &testAPI{
		router: NewHandler(svc, owners, time.UTC, logger).Router(),
		owner:  owner,
	}
}

func (a *testAPI) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(rec.Body).Decode(v))
}

func bookingBody(start string) map[string]interface{} {
	return map[string]interface{}{
		"client_name":      "Ivan Petrov",
		"client_email":     "ivan@example.com",
		"start_at":         start,
		"duration_minutes": 60,
	}
}

func TestPublicBookingFlow(t *testing.T) {
	api := newTestAPI(t)
	base := "/book/" + api.owner.BookingLink

	rec := api.do(t, http.MethodGet, base, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var info publicOwner
	decodeBody(t, rec, &info)
	assert.Equal(t, "Anna", info.Name)

	rec = api.do(t, http.MethodGet, base+"/dates?days=7", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var dates map[string][]string
	decodeBody(t, rec, &dates)
	assert.Equal(t, []string{"2026-10-20"}, dates["dates"])

	rec = api.do(t, http.MethodPost, base+"/bookings", bookingBody("2026-10-20T09:00:00Z"))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var booking model.Booking
	decodeBody(t, rec, &booking)
	assert.Equal(t, model.BookingStatusPending, booking.Status)

	rec = api.do(t, http.MethodGet, base+"/slots?date=2026-10-20", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var slots map[string][]model.Slot
	decodeBody(t, rec, &slots)
	require.Len(t, slots["slots"], 2)
	assert.Equal(t, model.SlotStateBooked, slots["slots"][0].State)
	assert.Equal(t, model.SlotStateAvailable, slots["slots"][1].State)
}

func TestPublicBookingErrors(t *testing.T) {
	api := newTestAPI(t)
	base := "/book/" + api.owner.BookingLink

	tests := []struct {
		name   string
		path   string
		body   interface{}
		status int
		code   string
	}{
		{"unknown link", "/book/nosuchlink/bookings", bookingBody("2026-10-20T09:00:00Z"), http.StatusNotFound, "not_found"},
		{"missing name", base + "/bookings", map[string]interface{}{
			"client_email": "ivan@example.com", "start_at": "2026-10-20T09:00:00Z", "duration_minutes": 60,
		}, http.StatusBadRequest, "validation_error"},
		{"bad start", base + "/bookings", bookingBody("tomorrow"), http.StatusBadRequest, "validation_error"},
		{"unknown field", base + "/bookings", map[string]interface{}{"kind": "BLOCKED"}, http.StatusBadRequest, "validation_error"},
		{"past", base + "/bookings", bookingBody("2026-10-19T09:00:00Z"), http.StatusUnprocessableEntity, "past_slot"},
		{"outside", base + "/bookings", bookingBody("2026-10-20T13:00:00Z"), http.StatusUnprocessableEntity, "outside_availability"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := api.do(t, http.MethodPost, tt.path, tt.body)
			assert.Equal(t, tt.status, rec.Code)

			var resp errorResponse
			decodeBody(t, rec, &resp)
			assert.Equal(t, tt.code, resp.Error)
		})
	}
}

func TestPublicSlotsRequiresDate(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodGet, "/book/"+api.owner.BookingLink+"/slots", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp errorResponse
	decodeBody(t, rec, &resp)
	assert.Equal(t, "date", resp.Field)
}

func TestOwnerRulesAndBlocks(t *testing.T) {
	api := newTestAPI(t)
	base := "/api/v1/owners/" + api.owner.ID.String()

	rec := api.do(t, http.MethodPost, base+"/rules", map[string]interface{}{
		"day_of_week": 3, "start_time": "10:00", "end_time": "12:00", "slot_duration_minutes": 30,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var rule model.AvailabilityRule
	decodeBody(t, rec, &rule)
	assert.Equal(t, model.MustClockTime("10:00"), rule.StartTime)

	rec = api.do(t, http.MethodGet, base+"/rules", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var rules map[string][]model.AvailabilityRule
	decodeBody(t, rec, &rules)
	assert.Len(t, rules["rules"], 2)

	rec = api.do(t, http.MethodPost, base+"/blocks", map[string]interface{}{
		"start_at": "2026-10-20T10:00", "duration_minutes": 60,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var block model.Booking
	decodeBody(t, rec, &block)
	assert.Equal(t, model.BookingStatusBlocked, block.Status)

	rec = api.do(t, http.MethodGet, base+"/slots?date=2026-10-20", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var slots map[string][]model.Slot
	decodeBody(t, rec, &slots)
	require.Len(t, slots["slots"], 2)
	assert.Equal(t, model.SlotStateBlocked, slots["slots"][1].State)

	rec = api.do(t, http.MethodGet, base+"/bookings", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var bookings map[string][]model.Booking
	decodeBody(t, rec, &bookings)
	assert.Len(t, bookings["bookings"], 1)

	rec = api.do(t, http.MethodDelete, base+"/rules/"+rule.ID.String(), nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = api.do(t, http.MethodDelete, base+"/rules/"+rule.ID.String(), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestOwnerRegistration(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/api/v1/owners", map[string]interface{}{
		"email": "second@example.com", "name": "Boris",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var owner model.Owner
	decodeBody(t, rec, &owner)
	assert.NotEmpty(t, owner.BookingLink)

	rec = api.do(t, http.MethodPost, "/api/v1/owners", map[string]interface{}{
		"email": "second@example.com", "name": "Boris",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(t, http.MethodPut, "/api/v1/owners/"+owner.ID.String()+"/auto-confirm", map[string]bool{"enabled": true})
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = api.do(t, http.MethodGet, "/api/v1/owners/"+owner.ID.String(), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &owner)
	assert.True(t, owner.AutoConfirmBookings)

	rec = api.do(t, http.MethodGet, "/api/v1/owners/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWeeklySchedule(t *testing.T) {
	api := newTestAPI(t)
	base := "/api/v1/owners/" + api.owner.ID.String()

	rec := api.do(t, http.MethodPost, base+"/schedule", map[string]interface{}{
		"days": []int{1, 5}, "start_time": "10:00", "end_time": "12:00", "slot_duration_minutes": 60,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created map[string][]model.AvailabilityRule
	decodeBody(t, rec, &created)
	assert.Len(t, created["rules"], 2)

	rec = api.do(t, http.MethodPost, base+"/schedule", map[string]interface{}{
		"days": []int{9}, "start_time": "10:00", "end_time": "12:00", "slot_duration_minutes": 60,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealth(t *testing.T) {
	api := newTestAPI(t)
	rec := api.do(t, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
