package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/session"

	"schedulesync/pkg/config"
	"schedulesync/pkg/database"
	"schedulesync/pkg/handlers"
	"schedulesync/pkg/seeder"
	"schedulesync/pkg/storage"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to the database: %v", err)
	}

	store := storage.New(db)
	engine := seeder.New(store)

	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigin,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Content-Type, Authorization, X-User-Id, X-Seed-Req, X-Seed-Key",
		AllowCredentials: true,
	}))

	h := handlers.New(store, store, engine, session.New(), cfg.SeedKey)
	h.Register(app)

	log.Fatal(app.Listen(":" + cfg.Port))
}
