package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"parkgate/docs"
	"parkgate/internal/apiclient"
	"parkgate/internal/config"
	"parkgate/internal/database"
	"parkgate/internal/database/migration"
	handlers "parkgate/internal/http/handler"
	"parkgate/internal/http/middleware"
	"parkgate/internal/logx"
	"parkgate/internal/otel"
	"parkgate/internal/portal"
	"parkgate/internal/repository/postgres"
	"parkgate/internal/service"
	"parkgate/internal/storage"
)

// @title Parking Gate API
// @version 1.0
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()
	loc := cfg.Location()
	log := logx.Component(logx.Stdout(loc), "api")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize tracing")
	}

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, log, cfg.Database.Host); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}

	// Snapshots are optional; without MinIO the gate runs on codes alone.
	var objStore storage.Storage
	if cfg.MinIO.Endpoint != "" {
		objStore, err = storage.NewMinIO(ctx, cfg.MinIO)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize object storage")
		}
	} else {
		log.Warn().Str("event", "snapshots_disabled").Msg("MINIO_ENDPOINT not set, gate snapshots are not stored")
	}

	residentRepo := postgres.NewResidentPostgres(db)
	sessionRepo := postgres.NewGuestSessionPostgres(db)
	logRepo := postgres.NewParkingLogPostgres(db)

	alertSvc := service.NewNotificationService(postgres.NewNotificationPostgres(db))
	gateLog := logx.Component(logx.Stdout(loc), "gate")
	gateSvc := service.NewGateService(sessionRepo, residentRepo, logRepo, objStore, service.GateOptions{
		FeePerHour: cfg.Gate.FeePerHour,
		Attempts:   postgres.NewTicketAttemptPostgres(db),
		Alerts:     alertSvc,
		Log:        &gateLog,
	})
	reportSvc := service.NewReportService(sessionRepo, logRepo, loc, nil)
	residentSvc := service.NewResidentService(residentRepo)
	supportSvc := service.NewSupportService(postgres.NewSupportPostgres(db))
	authSvc, err := service.NewAuthService(postgres.NewAdminPostgres(db), service.AuthOptions{
		Secret:   cfg.Auth.JWTSecret,
		TokenTTL: time.Duration(cfg.Auth.TokenTTLMin) * time.Minute,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize auth")
	}
	if cfg.Auth.JWTSecret == "" {
		log.Warn().Str("event", "ephemeral_jwt_secret").Msg("AUTH_JWT_SECRET not set, admin tokens die with the process")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewDBStatsCollector(db, cfg.Database.Name),
	)
	metrics, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to register metrics")
	}

	renderer, err := portal.NewRenderer(cfg.Portal.Locale, cfg.Portal.Currency)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load portal templates")
	}
	apiClient := apiclient.New(cfg.Portal.APIURL, time.Duration(cfg.Portal.TimeoutSec)*time.Second)
	portalLog := logx.Component(logx.Stdout(loc), "portal")

	app := fiber.New(handlers.FiberConfig(cfg.TrustedProxies))

	// Register global middleware
	app.Use(otelfiber.Middleware())
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	// JSON Logger middleware for structured request logs
	app.Use(middleware.Logger(loc))
	app.Use(metrics.Handler())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	handlers.RegisterRoutes(app, handlers.Deps{
		DB:        db,
		Gate:      gateSvc,
		Reports:   reportSvc,
		Residents: residentSvc,
		Support:   supportSvc,
		Auth:      authSvc,
		Alerts:    alertSvc,
		Events:    metrics,
		Limiter:   middleware.NewRateLimiter(cfg.Gate.RateLimit, cfg.Gate.RateBurst),
		Portal:    handlers.NewPortal(apiClient, renderer, &portalLog),
	})

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	go func() {
		<-ctx.Done()
		log.Info().Str("event", "shutdown").Msg("stopping server")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Error().Err(err).Msg("server shutdown")
		}
	}()

	addr := ":" + cfg.Port
	log.Info().Str("event", "listen").Str("addr", addr).Send()
	if err := app.Listen(addr); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}

	flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := shutdownTracing(flushCtx); err != nil {
		log.Error().Err(err).Msg("tracing shutdown")
	}
}
