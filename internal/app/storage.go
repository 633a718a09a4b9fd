package app

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/consult_booking/internal/config"
	"github.com/Freeeeeet/consult_booking/internal/repository"
	"github.com/Freeeeeet/consult_booking/internal/repository/memory"
	"github.com/Freeeeeet/consult_booking/internal/service"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Stores - хранилища, которые потребляет фасад
type Stores struct {
	Owners   service.OwnerStore
	Rules    service.RuleStore
	Bookings service.BookingStore

	pool *pgxpool.Pool
}

// OpenStores подключает хранилища согласно cfg.Storage.
// Для PostgreSQL поднимает пул и применяет миграции.
func OpenStores(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Stores, error) {
	if cfg.Storage == config.StorageMemory {
		logger.Warn("Using in-memory storage, data will be lost on restart")
		return &Stores{
			Owners:   memory.NewOwnerStore(),
			Rules:    memory.NewRuleStore(),
			Bookings: memory.NewBookingStore(),
		}, nil
	}

	pool, err := pgxpool.New(ctx, cfg.DBDSN)
	if err != nil {
		return nil, fmt.Errorf("create pgx pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	migrator, err := NewMigrator(pool, cfg.MigrationsPath, logger)
	if err != nil {
		pool.Close()
		return nil, err
	}
	defer migrator.Close()

	if err := migrator.Run(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return &Stores{
		Owners:   repository.NewOwnerRepository(pool),
		Rules:    repository.NewRuleRepository(pool, logger),
		Bookings: repository.NewBookingRepository(pool),
		pool:     pool,
	}, nil
}

// Close освобождает пул соединений, если он есть
func (s *Stores) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}
