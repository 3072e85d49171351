package tracing

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/storefront/internal/config"
)

const serviceName = "storefront"

// Module installs tracing for the lifetime of the application.
var Module = fx.Invoke(registerLifecycle)

func registerLifecycle(lc fx.Lifecycle, cfg *config.Config, logger *slog.Logger) {
	var shutdown ShutdownFunc
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			var err error
			shutdown, err = Init(ctx, serviceName, cfg.OTLPEndpoint)
			if err != nil {
				return err
			}
			if cfg.OTLPEndpoint != "" {
				logger.Info("tracing enabled", slog.String("endpoint", cfg.OTLPEndpoint))
			}
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if shutdown == nil {
				return nil
			}
			return shutdown(ctx)
		},
	})
}
