package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/saat-labs/saat-api/internal/config"
	"github.com/saat-labs/saat-api/internal/handler"
	"github.com/saat-labs/saat-api/internal/middleware"
	"github.com/saat-labs/saat-api/internal/models"
	"github.com/saat-labs/saat-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	UserHandler          *handler.UserHandler
	ModuleHandler        *handler.ModuleHandler
	AssignmentHandler    *handler.AssignmentHandler
	MarkingSchemeHandler *handler.MarkingSchemeHandler
	SubmissionHandler    *handler.SubmissionHandler
	MarksHandler         *handler.MarksHandler
	ReportHandler        *handler.ReportHandler
	RepoHandler          *handler.RepoHandler
	AnalysisHandler      *handler.AnalysisHandler
	QuestionHandler      *handler.QuestionHandler
	CodeHandler          *handler.CodeHandler
	ProjectHandler       *handler.ProjectHandler
	JWTMiddleware        fiber.Handler
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
	teacherOnly := middleware.RequireRole(models.RoleTeacher)

	if deps.UserHandler != nil {
		deps.UserHandler.Register(api.Group("/user"))
	}
	if deps.ModuleHandler != nil {
		deps.ModuleHandler.Register(api.Group("/module"))
	}
	if deps.AssignmentHandler != nil {
		deps.AssignmentHandler.Register(api.Group("/assignment"))
	}
	if deps.SubmissionHandler != nil {
		deps.SubmissionHandler.Register(api.Group("/submission"))
	}
	if deps.CodeHandler != nil {
		deps.CodeHandler.Register(api.Group("/code"))
	}
	if deps.RepoHandler != nil {
		deps.RepoHandler.Register(api.Group("/repo"))
	}
	if deps.AnalysisHandler != nil {
		deps.AnalysisHandler.Register(api.Group("/naming"))
	}
	if deps.QuestionHandler != nil {
		deps.QuestionHandler.Register(api.Group("/question"))
		deps.QuestionHandler.RegisterGenerate(api.Group("/qgenerate", jwtMiddleware, teacherOnly))
	}

	// Instructor-only surfaces.
	if deps.MarkingSchemeHandler != nil {
		deps.MarkingSchemeHandler.Register(api.Group("/marking-scheme", jwtMiddleware, teacherOnly))
	}
	if deps.MarksHandler != nil {
		deps.MarksHandler.Register(api.Group("/marks", jwtMiddleware, teacherOnly))
	}
	if deps.ReportHandler != nil {
		deps.ReportHandler.Register(api.Group("/report"))
	}
	if deps.ProjectHandler != nil {
		deps.ProjectHandler.Register(api.Group("/project", jwtMiddleware, teacherOnly))
	}
}
