package router

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/nido-go-api/internal/config"
	"github.com/noah-isme/nido-go-api/internal/handler"
	"github.com/noah-isme/nido-go-api/internal/middleware"
	"github.com/noah-isme/nido-go-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	SchoolHandler       *handler.SchoolHandler
	RegistrationHandler *handler.RegistrationHandler
	DocumentHandler     *handler.DocumentHandler
	DashboardHandler    *handler.DashboardHandler
	StudentHandler      *handler.StudentHandler
	CalendarHandler     *handler.CalendarHandler
	HealthRecordHandler *handler.HealthRecordHandler
	IncidentHandler     *handler.IncidentHandler
	JWTMiddleware       fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	app.Get("/metrics", observability.MetricsHandler())

	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))

	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	// Public parent-facing surface.
	if deps.SchoolHandler != nil {
		deps.SchoolHandler.RegisterPublic(api.Group("/schools"))
	}
	if deps.RegistrationHandler != nil {
		registration := api.Group("/registration",
			middleware.RateLimit("registration", 30, time.Minute))
		deps.RegistrationHandler.Register(registration)
	}
	if deps.DocumentHandler != nil {
		documents := api.Group("/documents",
			middleware.RateLimit("documents", 10, time.Minute))
		deps.DocumentHandler.RegisterPublic(documents)
	}
	if deps.DashboardHandler != nil {
		deps.DashboardHandler.Register(api.Group("/dashboard"))
	}

	// Staff surface behind JWT and role enforcement.
	staff := app.Group("/api/v1/staff", jwtMiddleware, middleware.RequireRole("admin", "staff"))
	if deps.SchoolHandler != nil {
		deps.SchoolHandler.RegisterAdmin(staff.Group("/schools"))
	}
	if deps.DocumentHandler != nil {
		deps.DocumentHandler.RegisterStaff(staff.Group("/documents"))
	}
	if deps.StudentHandler != nil {
		deps.StudentHandler.Register(staff.Group("/students"))
	}
	if deps.CalendarHandler != nil {
		deps.CalendarHandler.Register(staff.Group("/calendar"))
	}
	if deps.HealthRecordHandler != nil {
		deps.HealthRecordHandler.Register(staff.Group("/health"))
	}
	if deps.IncidentHandler != nil {
		deps.IncidentHandler.Register(staff.Group("/incidents"))
	}
}
