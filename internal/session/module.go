package session

import (
	"context"
	"fmt"
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/storefront/internal/config"
	"github.com/polkiloo/storefront/internal/metrics"
	"github.com/polkiloo/storefront/internal/pkg/auth"
)

// Module wires the session store and manager.
var Module = fx.Options(
	fx.Provide(newStore),
	fx.Provide(newManager),
)

type storeParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    *config.Config
	Logger    *slog.Logger
}

func newStore(p storeParams) (Store, error) {
	switch p.Config.SessionStore {
	case config.SessionStoreRedis:
		store := NewRedisStore(NewRedisClient(RedisConfig{
			Addr:     p.Config.RedisAddr,
			Password: p.Config.RedisPassword,
			DB:       p.Config.RedisDB,
		}))
		registerRedisLifecycle(p.Lifecycle, store, p.Logger)
		return store, nil
	case config.SessionStoreMemory, "":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown session store %q", p.Config.SessionStore)
	}
}

func registerRedisLifecycle(lc fx.Lifecycle, store *RedisStore, logger *slog.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := store.Ping(ctx); err != nil {
				return fmt.Errorf("redis ping: %w", err)
			}
			logger.Info("redis session store connected")
			return nil
		},
		OnStop: func(context.Context) error {
			return store.Close()
		},
	})
}

type managerParams struct {
	fx.In

	Store   Store
	Signer  auth.Signer
	Config  *config.Config
	Metrics *metrics.Metrics `optional:"true"`
}

func newManager(p managerParams) *Manager {
	m := NewManager(p.Store, p.Signer, p.Config.SessionTTL)
	if p.Metrics != nil {
		m.WithObserver(p.Metrics)
	}
	return m
}
