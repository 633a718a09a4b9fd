package scheduling

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/Freeeeeet/consult_booking/internal/model"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/nyaruka/phonenumbers"
)

// Admission - контроль допуска записи: проверяет запрос против текущего состояния
// и строит новую запись. В хранилище ничего не пишет - это делает вызывающий.
type Admission struct {
	validate    *validator.Validate
	phoneRegion string
}

// NewAdmission создаёт контроллер. phoneRegion - регион по умолчанию для номеров
// без международного префикса (например, "RU").
func NewAdmission(phoneRegion string) *Admission {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	return &Admission{
		validate:    v,
		phoneRegion: strings.ToUpper(phoneRegion),
	}
}

// AttemptBooking проверяет запрос по шагам, первая ошибка побеждает:
//  1. структура запроса (ErrValidation)
//  2. начало строго в будущем (ErrPastSlot)
//  3. интервал целиком внутри свободного слота правил (ErrOutsideAvailability)
//  4. нет пересечения ни с одной существующей записью (ErrSlotConflict)
//
// Шаг 4 повторяется хранилищем при вставке; здесь он ловит блокировки владельца,
// не совпадающие с границами слотов.
func (a *Admission) AttemptBooking(
	req model.BookingRequest,
	existing []model.Booking,
	rules []model.AvailabilityRule,
	now time.Time,
) (*model.Booking, error) {
	req, err := a.normalize(req)
	if err != nil {
		return nil, err
	}

	if !req.StartAt.After(now) {
		return nil, fmt.Errorf("%w: start %s is not after %s",
			ErrPastSlot, req.StartAt.Format(time.RFC3339), now.Format(time.RFC3339))
	}

	owned := ownedBy(existing, req.OwnerID)
	start, end := req.StartAt, req.EndAt()

	date := DateOf(req.StartAt.In(now.Location()))
	slots := ResolveStates(GenerateSlots(date, rules), owned, now)
	if !containedInAvailable(slots, start, end) {
		return nil, fmt.Errorf("%w: %s for %d min",
			ErrOutsideAvailability, start.Format(time.RFC3339), req.DurationMinutes)
	}

	for i := range owned {
		if overlaps(start, end, owned[i].StartAt, owned[i].EndAt()) {
			return nil, fmt.Errorf("%w: overlaps booking %s", ErrSlotConflict, owned[i].ID)
		}
	}

	return newBooking(req), nil
}

// normalize заполняет значения по умолчанию и проверяет поля запроса
func (a *Admission) normalize(req model.BookingRequest) (model.BookingRequest, error) {
	req.ClientName = strings.TrimSpace(req.ClientName)
	req.ClientEmail = strings.TrimSpace(req.ClientEmail)
	if req.Kind == "" {
		req.Kind = model.BookingKindConsultation
	}

	if err := a.validate.Struct(req); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return req, invalid(fieldErrs[0].Field(), describeTag(fieldErrs[0]))
		}
		return req, invalid("", err.Error())
	}

	if req.OwnerID == uuid.Nil {
		return req, invalid("owner_id", "is required")
	}

	if req.ClientPhone != nil {
		phone, err := a.normalizePhone(*req.ClientPhone)
		if err != nil {
			return req, err
		}
		req.ClientPhone = phone
	}

	if req.Kind == model.BookingKindBlocked {
		if req.ClientName == "" {
			req.ClientName = model.BlockedClientName
		}
		if req.ClientEmail == "" {
			req.ClientEmail = model.BlockedClientEmail
		}
	}

	return req, nil
}

// normalizePhone приводит номер к E.164; пустой номер считается отсутствующим
func (a *Admission) normalizePhone(raw string) (*string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	num, err := phonenumbers.Parse(raw, a.phoneRegion)
	if err != nil {
		return nil, invalid("client_phone", "is not a phone number")
	}
	if !phonenumbers.IsValidNumber(num) {
		return nil, invalid("client_phone", "is not a valid phone number")
	}

	formatted := phonenumbers.Format(num, phonenumbers.E164)
	return &formatted, nil
}

func describeTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_unless":
		return "is required"
	case "email":
		return "must be an email address"
	case "gt":
		return "must be greater than " + fe.Param()
	case "oneof":
		return "must be one of " + fe.Param()
	case "max":
		if fe.Kind() == reflect.Int {
			return "must be at most " + fe.Param()
		}
		return "is too long"
	default:
		return "failed " + fe.Tag() + " check"
	}
}

func newBooking(req model.BookingRequest) *model.Booking {
	status := model.BookingStatusPending
	switch {
	case req.Kind == model.BookingKindBlocked:
		status = model.BookingStatusBlocked
	case req.AutoConfirm:
		status = model.BookingStatusConfirmed
	}

	return &model.Booking{
		ID:               uuid.New(),
		OwnerID:          req.OwnerID,
		ClientName:       req.ClientName,
		ClientEmail:      req.ClientEmail,
		ClientPhone:      req.ClientPhone,
		StartAt:          req.StartAt,
		DurationMinutes:  req.DurationMinutes,
		Status:           status,
		PaymentConfirmed: false,
		Kind:             req.Kind,
	}
}

func containedInAvailable(slots []model.Slot, start, end time.Time) bool {
	for i := range slots {
		s := &slots[i]
		if s.IsAvailable() && !start.Before(s.StartAt) && !end.After(s.EndAt()) {
			return true
		}
	}
	return false
}

func ownedBy(bookings []model.Booking, ownerID uuid.UUID) []model.Booking {
	owned := make([]model.Booking, 0, len(bookings))
	for _, b := range bookings {
		if b.OwnerID == ownerID {
			owned = append(owned, b)
		}
	}
	return owned
}
