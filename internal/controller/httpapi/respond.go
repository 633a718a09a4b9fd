package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Freeeeeet/consult_booking/internal/scheduling"
	"go.uber.org/zap"
)

// errorResponse - тело ответа с ошибкой
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError переводит ошибку фасада в HTTP-статус
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := classify(err)

	resp := errorResponse{Error: code, Message: err.Error()}
	var verr *scheduling.ValidationError
	if errors.As(err, &verr) {
		resp.Field = verr.Field
		resp.Message = verr.Error()
	}

	if status == http.StatusInternalServerError {
		h.logger.Error("Request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err))
		resp.Message = "internal error"
	} else {
		h.logger.Warn("Request rejected",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", status),
			zap.Error(err))
	}

	writeJSON(w, status, resp)
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, scheduling.ErrValidation):
		return http.StatusBadRequest, "validation_error"
	case errors.Is(err, scheduling.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, scheduling.ErrSlotConflict):
		return http.StatusConflict, "slot_conflict"
	case errors.Is(err, scheduling.ErrPastSlot):
		return http.StatusUnprocessableEntity, "past_slot"
	case errors.Is(err, scheduling.ErrOutsideAvailability):
		return http.StatusUnprocessableEntity, "outside_availability"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

// decode читает JSON-тело запроса; неизвестные поля и мусор - ошибка валидации
func decode(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return &scheduling.ValidationError{Field: "body", Reason: err.Error()}
	}
	return nil
}
