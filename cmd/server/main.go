package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/example/scholarstream/internal/config"
	"github.com/example/scholarstream/internal/database"
	"github.com/example/scholarstream/internal/routes"
	"github.com/example/scholarstream/internal/services"
)

func main() {
	cfg := config.Load()

	ctx := context.Background()
	db := database.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase)

	verifier, err := services.NewFirebaseVerifier(ctx, cfg.FirebaseServiceKey)
	if err != nil {
		log.Fatalf("failed to init identity verifier: %v", err)
	}

	checkout := services.NewStripeCheckout(cfg.StripeSecret)

	app := fiber.New(fiber.Config{
		AppName: "ScholarStream Backend",
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New())

	routes.Register(app, db, cfg, verifier, checkout)

	go func() {
		log.Printf("Starting server on :%s", cfg.AppPort)
		if err := app.Listen(":" + cfg.AppPort); err != nil {
			log.Fatalf("fiber.Listen error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Printf("fiber.Shutdown error: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := database.Disconnect(shutdownCtx, db); err != nil {
		log.Printf("mongo disconnect error: %v", err)
	}
}
