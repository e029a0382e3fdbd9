package routes

import (
	"cropadvisory/handlers"
	"cropadvisory/middleware"
	"cropadvisory/utils"

	"github.com/gofiber/fiber/v2"
)

// SetupRoutes defines all the routes for the application.
func SetupRoutes(app *fiber.App, h *handlers.Handler) {
	app.Get("/", h.HandleDashboardPage)
	app.Get("/version", h.HandleVersion)

	api := app.Group("/api/v1")
	api.Get("/health", h.HandleHealth)

	// --- Crop Advisor ---
	api.Get("/crops", h.HandleListCrops)
	api.Get("/crops/:name", h.HandleGetCrop)
	api.Get("/insights", h.HandleInsights)

	advisor := api.Group("/advisor")
	advisor.Get("/options", h.HandleAdvisorOptions)
	advisor.Get("/recommendations", h.HandleRecommendQuery)
	advisor.Post("/recommendations", h.HandleRecommendBody)
	advisor.Post("/explain", h.HandleExplain)

	api.Post("/agronomist/ask", middleware.JWTMiddleware, h.HandleAsk)

	// --- Telemetry ---
	api.Get("/telemetry", h.HandleTelemetry)
	telemetry := api.Group("/telemetry")
	telemetry.Get("/stream", h.HandleTelemetryStream)
	telemetry.Get("/chart.png", h.HandleTelemetryChart)
	telemetry.Get("/export.xlsx", h.HandleTelemetryExport)

	// --- Learning Center ---
	learning := api.Group("/learning")
	learning.Get("/modules", h.HandleListModules)
	learning.Get("/modules/:id", h.HandleGetModule)
	learning.Post("/modules/:id/quiz", middleware.OptionalAuth, h.HandleSubmitQuiz)

	// --- Authentication Routes ---
	auth := api.Group("/auth")
	auth.Post("/register", h.HandleRegister)
	auth.Post("/login", h.HandleLogin)
	auth.Post("/init-admin", h.HandleInitializeAdmin)

	// --- Learner Routes ---
	me := api.Group("/me", middleware.JWTMiddleware, middleware.CheckRole(utils.RoleLearner, utils.RoleAdmin))
	me.Get("/progress", h.HandleMyProgress)

	// --- Admin Routes ---
	admin := api.Group("/admin", middleware.JWTMiddleware, middleware.AdminRequired)
	admin.Get("/progress", h.HandleAdminProgress)
}
