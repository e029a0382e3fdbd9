package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cropadvisory/advisor"
	"cropadvisory/agronomist"
	"cropadvisory/config"
	"cropadvisory/database"
	"cropadvisory/handlers"
	"cropadvisory/routes"
	"cropadvisory/telemetry"
	"cropadvisory/web"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func usage() {
	fmt.Println("usage: cropadvisory [options]")
	flag.PrintDefaults()
}

var addr = flag.String("addr", "", "address to serve (overrides ADDR)")

func main() {
	// Load .env file
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file, using environment variables")
	}

	flag.Usage = usage
	flag.Parse()

	// Load configuration
	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatal(err)
	}
	if *addr != "" {
		cfg.Addr = *addr
	}
	config.AppConfig = cfg

	if err := advisor.ValidateProfiles(advisor.Crops()); err != nil {
		log.Fatalf("invalid crop dataset: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize storage
	var store database.Store
	storage := "memory"
	if cfg.DatabaseURL != "" {
		pool, err := database.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Unable to connect to database: %v", err)
		}
		if err := database.Migrate(ctx, pool); err != nil {
			log.Fatalf("Unable to migrate database: %v", err)
		}
		store = database.NewPostgresStore(pool)
		storage = "postgres"
	} else {
		log.Println("DATABASE_URL is not set, quiz progress is kept in memory")
		store = database.NewMemoryStore()
	}
	defer store.Close()

	var narrator agronomist.Narrator
	if cfg.GeminiAPIKey != "" {
		g, err := agronomist.NewGeminiNarrator(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			log.Fatalf("Failed to create Gemini client: %v", err)
		}
		defer g.Close()
		narrator = g
	} else {
		log.Println("GEMINI_API_KEY is not set, agronomist endpoints are disabled")
	}

	page, err := web.NewRenderer()
	if err != nil {
		log.Fatalf("Failed to parse page templates: %v", err)
	}

	sim := telemetry.NewSimulator(telemetry.WithInterval(cfg.TelemetryInterval))
	go sim.Run(ctx)

	h := &handlers.Handler{
		Store:     store,
		Storage:   storage,
		Telemetry: sim,
		Narrator:  narrator,
		Page:      page,
	}

	app := fiber.New(fiber.Config{AppName: "Smart Crop & Soil Advisory"})
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New())

	routes.SetupRoutes(app, h)

	go func() {
		<-ctx.Done()
		log.Println("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Printf("Server shutdown failed: %v", err)
		}
	}()

	log.Printf("serving http://%s\n", cfg.Addr)
	if err := app.Listen(cfg.Addr); err != nil {
		log.Fatal(err)
	}
}
