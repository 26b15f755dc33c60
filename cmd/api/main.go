package main

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"royalestates_backend/internal/controller"
	"royalestates_backend/internal/middleware"
	"royalestates_backend/internal/model"
	"royalestates_backend/internal/service"
	"royalestates_backend/pkg/config"
	"royalestates_backend/pkg/database"
	"royalestates_backend/pkg/geocode"
)

func setupRoutes(app *fiber.App) {
	api := app.Group("/api")

	// Auth Routes
	auth := api.Group("/auth")
	auth.Post("/register", controller.Register)
	auth.Post("/login", controller.Login)
	auth.Get("/me", middleware.AuthMiddleware(), controller.GetMe)
	auth.Patch("/me", middleware.AuthMiddleware(), controller.UpdateMe)
	auth.Get("/saved-searches", middleware.AuthMiddleware(), controller.GetSavedSearches)
	auth.Post("/saved-searches", middleware.AuthMiddleware(), controller.CreateSavedSearch)
	auth.Delete("/saved-searches/:id", middleware.AuthMiddleware(), controller.DeleteSavedSearch)

	// Property Routes; static paths must be registered before /:id
	properties := api.Group("/properties")
	properties.Get("/", controller.ListProperties)
	properties.Get("/featured", controller.GetFeaturedProperties)
	properties.Get("/saved", middleware.AuthMiddleware(), controller.GetSavedProperties)
	properties.Get("/:id", controller.GetProperty)
	properties.Post("/", middleware.AuthMiddleware(), middleware.AdminOnly(), controller.CreateProperty)
	properties.Patch("/:id", middleware.AuthMiddleware(), middleware.AdminOnly(), controller.UpdateProperty)
	properties.Delete("/:id", middleware.AuthMiddleware(), middleware.AdminOnly(), controller.DeleteProperty)
	properties.Post("/:id/save", middleware.AuthMiddleware(), controller.SaveProperty)
	properties.Delete("/:id/save", middleware.AuthMiddleware(), controller.UnsaveProperty)

	// Location Routes, throttled to keep the upstream geocoder happy
	locations := api.Group("/locations", limiter.New(limiter.Config{
		Max:        60,
		Expiration: time.Minute,
	}))
	locations.Get("/search", controller.SearchLocations)
	locations.Get("/reverse", controller.ReverseGeocode)
	locations.Get("/nearby", controller.NearbyLocations)

	// WebSocket broadcast relay
	app.Use("/ws", controller.UpgradeWebSocket)
	app.Get("/ws", controller.HandleWebSocket)
}

func main() {
	cfg := config.Load()

	database.InitDB(cfg.Database.URL)
	if err := database.MigrateDatabase(
		&model.User{},
		&model.Property{},
	); err != nil {
		log.Printf("Migration warning: %v", err)
	}

	controller.InitPropertyController(service.NewPropertyService(database.GetDB()))
	controller.InitLocationController(geocode.NewClient(
		cfg.Geocode.BaseURL,
		cfg.Geocode.CountryCode,
		cfg.Geocode.UserAgent,
		geocode.NewCache(),
	))

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Printf("Unhandled error: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Something went wrong!",
			})
		},
	})

	app.Use(logger.New())
	app.Use(cors.New())

	setupRoutes(app)

	log.Printf("Server is running on port %s", cfg.Server.Port)
	log.Fatal(app.Listen(":" + cfg.Server.Port))
}
