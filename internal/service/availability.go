package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Freeeeeet/consult_booking/internal/model"
	"github.com/Freeeeeet/consult_booking/internal/scheduling"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RuleInput - правило доступности в том виде, в каком его присылает владелец
type RuleInput struct {
	DayOfWeek           int    `json:"day_of_week" validate:"min=0,max=6"`
	StartTime           string `json:"start_time" validate:"required"`
	EndTime             string `json:"end_time" validate:"required"`
	SlotDurationMinutes int    `json:"slot_duration_minutes" validate:"gt=0,max=1440"`
}

var ruleValidate = validator.New(validator.WithRequiredStructEnabled())

// ListRules возвращает правила владельца в порядке добавления
func (s *SchedulingService) ListRules(ctx context.Context, ownerID uuid.UUID) ([]model.AvailabilityRule, error) {
	if _, err := s.owner(ctx, ownerID); err != nil {
		return nil, err
	}

	rules, err := s.rules.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("get rules: %w", err)
	}

	return rules, nil
}

// CreateRule добавляет недельное окно доступности
func (s *SchedulingService) CreateRule(ctx context.Context, ownerID uuid.UUID, input RuleInput) (*model.AvailabilityRule, error) {
	if _, err := s.owner(ctx, ownerID); err != nil {
		return nil, err
	}

	rule, err := buildRule(ownerID, input)
	if err != nil {
		return nil, err
	}

	if err := s.rules.Create(ctx, rule); err != nil {
		return nil, fmt.Errorf("create rule: %w", err)
	}

	s.logger.Info("Availability rule created",
		zap.String("rule_id", rule.ID.String()),
		zap.String("owner_id", ownerID.String()),
		zap.Int("day_of_week", rule.DayOfWeek),
		zap.Stringer("start_time", rule.StartTime),
		zap.Stringer("end_time", rule.EndTime),
		zap.Int("slot_duration_minutes", rule.SlotDurationMinutes),
	)

	return rule, nil
}

// CreateWeeklySchedule создаёт одинаковое окно на каждый из переданных дней недели.
// Все правила проверяются до первой записи в хранилище.
func (s *SchedulingService) CreateWeeklySchedule(
	ctx context.Context,
	ownerID uuid.UUID,
	days []time.Weekday,
	start, end string,
	durationMinutes int,
) ([]model.AvailabilityRule, error) {
	if _, err := s.owner(ctx, ownerID); err != nil {
		return nil, err
	}

	if len(days) == 0 {
		return nil, &scheduling.ValidationError{Field: "days", Reason: "must not be empty"}
	}

	seen := make(map[time.Weekday]bool, len(days))
	rules := make([]*model.AvailabilityRule, 0, len(days))
	for _, day := range days {
		if seen[day] {
			continue
		}
		seen[day] = true

		rule, err := buildRule(ownerID, RuleInput{
			DayOfWeek:           int(day),
			StartTime:           start,
			EndTime:             end,
			SlotDurationMinutes: durationMinutes,
		})
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}

	created := make([]model.AvailabilityRule, 0, len(rules))
	for _, rule := range rules {
		if err := s.rules.Create(ctx, rule); err != nil {
			return created, fmt.Errorf("create rule for %s: %w", rule.Weekday(), err)
		}
		created = append(created, *rule)
	}

	s.logger.Info("Weekly schedule created",
		zap.String("owner_id", ownerID.String()),
		zap.Int("rules", len(created)),
		zap.String("start_time", start),
		zap.String("end_time", end),
		zap.Int("slot_duration_minutes", durationMinutes),
	)

	return created, nil
}

// DeleteRule удаляет правило владельца. Уже созданные записи не трогает.
func (s *SchedulingService) DeleteRule(ctx context.Context, ruleID, ownerID uuid.UUID) error {
	if err := s.rules.Delete(ctx, ruleID, ownerID); err != nil {
		return fmt.Errorf("delete rule: %w", err)
	}

	s.logger.Info("Availability rule deleted",
		zap.String("rule_id", ruleID.String()),
		zap.String("owner_id", ownerID.String()))

	return nil
}

func buildRule(ownerID uuid.UUID, input RuleInput) (*model.AvailabilityRule, error) {
	if err := ruleValidate.Struct(input); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return nil, &scheduling.ValidationError{
				Field:  ruleField(fieldErrs[0].StructField()),
				Reason: "failed " + fieldErrs[0].Tag() + " check",
			}
		}
		return nil, &scheduling.ValidationError{Field: "rule", Reason: err.Error()}
	}

	start, err := model.ParseClockTime(input.StartTime)
	if err != nil {
		return nil, &scheduling.ValidationError{Field: "start_time", Reason: err.Error()}
	}
	end, err := model.ParseClockTime(input.EndTime)
	if err != nil {
		return nil, &scheduling.ValidationError{Field: "end_time", Reason: err.Error()}
	}

	rule := &model.AvailabilityRule{
		ID:                  uuid.New(),
		OwnerID:             ownerID,
		DayOfWeek:           input.DayOfWeek,
		StartTime:           start,
		EndTime:             end,
		SlotDurationMinutes: input.SlotDurationMinutes,
	}

	if err := rule.Validate(); err != nil {
		return nil, &scheduling.ValidationError{Field: "rule", Reason: err.Error()}
	}

	return rule, nil
}

func ruleField(structField string) string {
	switch structField {
	case "DayOfWeek":
		return "day_of_week"
	case "StartTime":
		return "start_time"
	case "EndTime":
		return "end_time"
	case "SlotDurationMinutes":
		return "slot_duration_minutes"
	default:
		return structField
	}
}
