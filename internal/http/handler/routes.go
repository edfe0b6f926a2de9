package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"parkgate/internal/http/middleware"
	"parkgate/internal/service"
)

// Deps carries everything the routes need. Alerts, Events, Limiter and Portal may be nil.
type Deps struct {
	DB        *sql.DB
	Gate      service.GateService
	Reports   service.ReportService
	Residents service.ResidentService
	Support   service.SupportService
	Auth      service.AuthService
	Alerts    service.NotificationService
	Events    EventRecorder
	// Limiter throttles code guessing on backup-login and guest checkout.
	Limiter *middleware.RateLimiter
	Portal  *Portal
}

// FiberConfig is the app configuration the routes expect. Client IPs come from
// X-Forwarded-For only when the peer is one of trustedProxies, so the portal's
// forwarded browser address keys the rate limiter instead of loopback.
func FiberConfig(trustedProxies []string) fiber.Config {
	return fiber.Config{
		ErrorHandler:            ErrorHandler(),
		BodyLimit:               8 << 20,
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          trustedProxies,
		EnableIPValidation:      true,
	}
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
func RegisterRoutes(app *fiber.App, d Deps) {
	app.Get("/health", HealthCheck(d.DB))
	app.Get("/healthz", LivenessProbe())

	throttle := func(c *fiber.Ctx) error { return c.Next() }
	if d.Limiter != nil {
		throttle = d.Limiter.Handler(tooManyRequests)
	}

	api := app.Group("/api")

	gate := api.Group("/gate")
	gate.Post("/resident/face", ResidentFace(d.Gate, d.Events))
	gate.Post("/resident/backup-login", throttle, BackupLogin(d.Gate, d.Events))
	gate.Post("/resident/checkin", ResidentEvent(d.Gate, d.Events, false))
	gate.Post("/resident/checkout", ResidentEvent(d.Gate, d.Events, true))
	gate.Post("/guest/checkin", GuestCheckin(d.Gate, d.Events))
	gate.Post("/guest/checkout", throttle, GuestCheckout(d.Gate, d.Events))

	api.Post("/resident/support", SubmitSupport(d.Support))

	admin := api.Group("/admin")
	admin.Get("/report/daily", DailyReport(d.Reports))
	admin.Post("/auth/register", throttle, middleware.OptionalAdmin(verifier(d.Auth), unauthorized), RegisterAdmin(d.Auth))
	admin.Post("/auth/login", throttle, LoginAdmin(d.Auth))

	secured := admin.Group("", middleware.RequireAdmin(verifier(d.Auth), unauthorized))
	secured.Get("/residents", ListResidents(d.Residents))
	secured.Post("/residents", CreateResident(d.Residents))
	secured.Patch("/residents/:id", UpdateResident(d.Residents))
	secured.Post("/residents/:id/deactivate", DeactivateResident(d.Residents))
	secured.Post("/residents/:id/backup-code", IssueBackupCode(d.Residents))
	secured.Get("/support", ListSupport(d.Support))
	secured.Get("/sessions/open", ListOpenSessions(d.Gate))
	if d.Alerts != nil {
		secured.Get("/notifications", ListNotifications(d.Alerts))
	}

	if d.Portal != nil {
		d.Portal.Register(app.Group("/portal"))
	}
}
