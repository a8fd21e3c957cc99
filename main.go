package main

import (
	"log"

	"trainhub/config"
	controllers "trainhub/controllers/training"
	"trainhub/database"
	"trainhub/hierarchy"
	"trainhub/progress"
	trainingRoutes "trainhub/routers/trainingRoutes"
	"trainhub/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	provider := hierarchy.NewProvider()
	service := progress.NewService(database.Database.Db, provider, config.AppConfig.CertificateSecret)
	controllers.Setup(service, provider)

	// Initial snapshot load plus the periodic re-sync and the certificate
	// reconciliation sweep
	utils.InitializeHierarchyScheduler(provider)
	utils.InitializeReconcileScheduler(service)

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",        // Allowed HTTP methods
		AllowHeaders: "Content-Type,Authorization", // Allowed headers
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	trainingRoutes.SetupTrainingRoutes(app)

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
