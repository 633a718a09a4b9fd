package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/consult_booking/internal/model"
	"github.com/Freeeeeet/consult_booking/internal/repository/base"
	"github.com/Freeeeeet/consult_booking/internal/scheduling"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// RuleRepository хранит недельные правила доступности.
// Поля start_minute/end_minute отображаются в model.ClockTime.
type RuleRepository struct {
	*base.Repository
	logger *zap.Logger
}

// NewRuleRepository создаёт новый репозиторий
func NewRuleRepository(pool *pgxpool.Pool, logger *zap.Logger) *RuleRepository {
	return &RuleRepository{
		Repository: base.NewRepository(pool),
		logger:     logger,
	}
}

// Create создаёт новое правило
func (r *RuleRepository) Create(ctx context.Context, rule *model.AvailabilityRule) error {
	query := `
		INSERT INTO availability_rules (id, owner_id, day_of_week, start_minute, end_minute, slot_duration_minutes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`

	err := r.QueryRow(
		ctx,
		query,
		rule.ID,
		rule.OwnerID,
		rule.DayOfWeek,
		int(rule.StartTime),
		int(rule.EndTime),
		rule.SlotDurationMinutes,
	).Scan(&rule.CreatedAt)

	if err != nil {
		return fmt.Errorf("create availability rule: %w", err)
	}

	return nil
}

// ListByOwner получает все правила владельца в порядке создания
func (r *RuleRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.AvailabilityRule, error) {
	query := `
		SELECT id, owner_id, day_of_week, start_minute, end_minute, slot_duration_minutes, created_at
		FROM availability_rules
		WHERE owner_id = $1
		ORDER BY seq
	`

	rows, err := r.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("get availability rules by owner: %w", err)
	}

	rules, err := base.CollectRows(rows, scanRule)
	if err != nil {
		return nil, fmt.Errorf("scan availability rules: %w", err)
	}

	return rules, nil
}

// Delete удаляет правило владельца
func (r *RuleRepository) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	query := `DELETE FROM availability_rules WHERE id = $1 AND owner_id = $2`

	affected, err := r.ExecAffected(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete availability rule: %w", err)
	}

	if affected == 0 {
		r.logger.Debug("Availability rule not found for delete",
			zap.String("rule_id", id.String()),
			zap.String("owner_id", ownerID.String()))
		return fmt.Errorf("availability rule %s: %w", id, scheduling.ErrNotFound)
	}

	return nil
}

func scanRule(row pgx.Row) (model.AvailabilityRule, error) {
	var (
		rule       model.AvailabilityRule
		start, end int
	)
	err := row.Scan(
		&rule.ID,
		&rule.OwnerID,
		&rule.DayOfWeek,
		&start,
		&end,
		&rule.SlotDurationMinutes,
		&rule.CreatedAt,
	)
	if err != nil {
		return rule, err
	}
	rule.StartTime = model.ClockTime(start)
	rule.EndTime = model.ClockTime(end)
	return rule, nil
}
