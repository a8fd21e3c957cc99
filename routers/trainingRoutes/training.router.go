package trainingRoutes

import (
	controllers "trainhub/controllers/training"
	"trainhub/middleware"
	validators "trainhub/validators/training"

	"github.com/gofiber/fiber/v2"
)

// SetupTrainingRoutes sets up all progress-engine routes
func SetupTrainingRoutes(app *fiber.App) {
	trainingGroup := app.Group("/training")

	// Literal paths first: Fiber matches in registration order, so anything
	// registered after /:id would be swallowed by it.
	trainingGroup.Get("/modules", middleware.JWTMiddleware, validators.ModuleList(), controllers.GetModules)
	trainingGroup.Get("/progress", middleware.JWTMiddleware, validators.ProgressList(), controllers.GetUserProgressList)
	trainingGroup.Get("/module/:id", middleware.JWTMiddleware, validators.GetModule(), controllers.GetModuleDetails)

	// Progress events and read models
	trainingGroup.Post("/video/:video_id/progress", middleware.JWTMiddleware, validators.UpdateProgress(), controllers.UpdateVideoProgress)
	trainingGroup.Get("/video/:id/status", middleware.JWTMiddleware, validators.GetVideo(), controllers.GetVideoStatus)

	trainingGroup.Get("/:id", middleware.JWTMiddleware, validators.GetTraining(), controllers.GetTrainingDetails)

	// Per-user certificates and dashboard
	userGroup := app.Group("/user")
	userGroup.Get("/certificates", middleware.JWTMiddleware, controllers.GetUserCertificates)
	userGroup.Get("/dashboard", middleware.JWTMiddleware, controllers.GetDashboardStats)
}
