package routes

import (
	"roihub/handlers"
	"roihub/middleware"

	"github.com/gofiber/fiber/v2"
)

// SetupRoutes defines all the routes for the application.
func SetupRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	// --- Authentication Routes ---
	auth := api.Group("/auth")
	auth.Post("/register", handlers.HandleRegister)
	auth.Post("/login", handlers.HandleLogin)

	// --- Project Routes ---
	projects := api.Group("/projects", middleware.JWTMiddleware)
	projects.Get("/", handlers.HandleListProjects)
	projects.Get("/:projectId", handlers.HandleGetProject)
	projects.Post("/", middleware.ManagerRequired, handlers.HandleCreateProject)
	projects.Put("/:projectId", middleware.ManagerRequired, handlers.HandleUpdateProject)
	projects.Delete("/:projectId", middleware.AdminRequired, handlers.HandleDeleteProject)
	projects.Post("/:projectId/recalculate", middleware.ManagerRequired, handlers.HandleRecalculateProject)

	// Indicators (owned by a project)
	projects.Get("/:projectId/indicators", handlers.HandleListIndicators)
	projects.Post("/:projectId/indicators", middleware.ManagerRequired, handlers.HandleCreateIndicator)
	projects.Put("/:projectId/indicators/:indicatorId", middleware.ManagerRequired, handlers.HandleUpdateIndicator)
	projects.Delete("/:projectId/indicators/:indicatorId", middleware.ManagerRequired, handlers.HandleDeleteIndicator)

	// --- Dashboard Routes ---
	dashboard := api.Group("/dashboard", middleware.JWTMiddleware)
	dashboard.Get("/kpis", handlers.HandleGetDashboardKPIs)
	dashboard.Get("/history", handlers.HandleGetEconomyHistory)
	dashboard.Get("/distribution", handlers.HandleGetTypeDistribution)
	dashboard.Post("/insight", handlers.HandleGenerateInsight)

	// --- Settings Routes ---
	settings := api.Group("/settings", middleware.JWTMiddleware)
	settings.Get("/frequency", handlers.HandleGetFrequencySettings)
	settings.Put("/frequency", middleware.AdminRequired, handlers.HandleUpdateFrequencySettings)
}
