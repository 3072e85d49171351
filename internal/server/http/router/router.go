package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/fx"

	"github.com/polkiloo/storefront/internal/config"
	"github.com/polkiloo/storefront/internal/metrics"
	"github.com/polkiloo/storefront/internal/server/http/handlers"
	"github.com/polkiloo/storefront/internal/server/http/middleware"
)

// ServiceName identifies the service in traces.
const ServiceName = "storefront"

const metricsPath = "/metrics"

// Params lists router dependencies.
type Params struct {
	fx.In

	Facade   handlers.StorefrontFacade
	Sessions middleware.SessionResolver
	Config   *config.Config
	Logger   *slog.Logger
	Metrics  *metrics.Metrics
}

// Setup configures gin router with handlers and middleware.
func Setup(p Params) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	cookies := middleware.NewCookieConfig(p.Config)

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestID())
	engine.Use(otelgin.Middleware(ServiceName))
	engine.Use(p.Metrics.GinMiddleware())
	engine.Use(middleware.RequestLogger(p.Logger))
	engine.Use(middleware.SecurityHeaders())
	engine.Use(middleware.CORS(p.Config.CORSAllowedOrigins))
	engine.Use(middleware.DecompressRequest())
	// promhttp negotiates its own encoding.
	engine.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{metricsPath})))

	healthHandler := handlers.NewHealthHandler(p.Facade, p.Logger)
	engine.GET("/healthz", healthHandler.Healthz)
	engine.GET(metricsPath, gin.WrapH(p.Metrics.Handler()))

	authHandler := handlers.NewAuthHandler(p.Facade, cookies, p.Logger)
	orderHandler := handlers.NewOrderHandler(p.Facade, p.Logger)

	api := engine.Group("")
	api.Use(middleware.LoadSession(p.Sessions, cookies, p.Logger))
	api.POST("/register", authHandler.Register)
	api.POST("/login", authHandler.Login)
	api.POST("/logout", authHandler.Logout)
	api.POST("/save-order", orderHandler.Save)
	api.GET("/orders", orderHandler.List)

	authed := api.Group("")
	authed.Use(middleware.RequireSession())
	authed.GET("/profile", authHandler.Profile)

	return engine
}
