package postgres

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/storefront/internal/config"
	"github.com/polkiloo/storefront/internal/domain/repository"
	"github.com/polkiloo/storefront/internal/metrics"
)

// Module wires PostgreSQL storage and repository adapters.
var Module = fx.Options(
	fx.Provide(newStorage),
	fx.Provide(
		newFactory,
		newUserRepository,
		newOrderRepository,
	),
	fx.Invoke(registerLifecycle),
)

type storageParams struct {
	fx.In

	Ctx     context.Context
	Config  *config.Config
	Logger  *slog.Logger
	Metrics *metrics.Metrics `optional:"true"`
}

func newStorage(p storageParams) (*Storage, error) {
	storage, err := New(p.Ctx, p.Config.DatabaseURI, p.Logger)
	if err != nil {
		return nil, err
	}
	if p.Metrics != nil {
		storage.WithObserver(p.Metrics)
	}
	return storage, nil
}

func newFactory(s *Storage) repository.Factory {
	return s
}

func newUserRepository(f repository.Factory) repository.UserRepository {
	return f.Users()
}

func newOrderRepository(f repository.Factory) repository.OrderRepository {
	return f.Orders()
}

func registerLifecycle(lc fx.Lifecycle, storage *Storage) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			storage.Close()
			return nil
		},
	})
}
