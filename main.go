package main

import (
	"log"

	"github.com/openvisualizationacademy/ova-site/config"
	"github.com/openvisualizationacademy/ova-site/database"
	authRoutes "github.com/openvisualizationacademy/ova-site/routers/authRoutes"
	courseRoutes "github.com/openvisualizationacademy/ova-site/routers/courseRoutes"
	userRoutes "github.com/openvisualizationacademy/ova-site/routers/userRoutes"
	"github.com/openvisualizationacademy/ova-site/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

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

	// Serve static files from the public folder
	app.Static("/", "./public")

	authRoutes.SetupAuthRoutes(app)
	courseRoutes.SetupCourseRoutes(app)
	userRoutes.SetupUserRoutes(app)

	// Nightly cleanup of expired login codes
	utils.StartLoginCodeCleanupScheduler()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
