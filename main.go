package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"medal-tally-system/handlers"
	"medal-tally-system/models"
	"medal-tally-system/services"
	"medal-tally-system/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, reading environment variables directly")
	}

	app := fiber.New(fiber.Config{
		BodyLimit: 10 * 1024 * 1024, // icons travel inline as data-URL JSON
	})

	app.Use(logger.New())

	// CORS for the scoreboard client; cookies must be allowed for admin login.
	allowedOriginsEnv := os.Getenv("ALLOWED_ORIGINS")
	if allowedOriginsEnv == "" {
		allowedOriginsEnv = "http://localhost:3000"
	}
	allowedOriginsList := strings.Split(allowedOriginsEnv, ",")
	for i, origin := range allowedOriginsList {
		allowedOriginsList[i] = strings.TrimSpace(origin)
	}
	allowedOriginsString := strings.Join(allowedOriginsList, ",")

	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOriginsString,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH,HEAD",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	db := openDatabase()

	if err := db.AutoMigrate(
		&models.Team{},
		&models.Category{},
		&models.Event{},
		&models.Result{},
		&models.User{},
	); err != nil {
		log.Fatal("failed to migrate database:", err)
	}

	if err := services.Seed(db); err != nil {
		log.Fatal("failed to seed data:", err)
	}

	r2Enabled, err := utils.InitR2()
	if err != nil {
		log.Fatal("failed to initialize R2 client:", err)
	}
	if !r2Enabled {
		log.Println("ℹ️  Icon offload disabled — team icons are stored inline")
	}

	sessions := session.New(session.Config{
		Expiration:     sessionTTL(),
		KeyLookup:      "cookie:medal_tally_session",
		KeyGenerator:   uuid.NewString,
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
	})

	scoreService := services.NewScoreService(db, sessions)
	teamService := services.NewTeamService(db)
	eventService := services.NewEventService(db)
	authService := services.NewAuthService(db, sessions)

	scoreService.StartPublishScheduler()

	handlers.SetupAuthRoutes(app, authService)
	handlers.SetupScoreboardRoutes(app, scoreService, teamService, eventService, sessions)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}

	go func() {
		if err := app.Listen(":" + port); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("✅ Server running on http://localhost:%s", port)
	log.Println("✅ Publish scheduler running (every 30s)")

	<-ctx.Done()
	log.Println("Shutting down server...")
	_ = app.Shutdown()
}

// openDatabase prefers Postgres when DATABASE_URL is set; otherwise the
// store is an in-memory SQLite database and every restart starts over from
// the seed data.
func openDatabase() *gorm.DB {
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err != nil {
			log.Fatal("failed to connect to database:", err)
		}
		log.Println("✅ Using Postgres store from DATABASE_URL")
		return db
	}

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to open in-memory store:", err)
	}
	// Single connection keeps the shared in-memory database alive.
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(1)
	}
	return db
}

func sessionTTL() time.Duration {
	ttl := os.Getenv("SESSION_TTL")
	if ttl == "" {
		return 24 * time.Hour
	}
	d, err := time.ParseDuration(ttl)
	if err != nil {
		log.Printf("⚠️  invalid SESSION_TTL %q, using 24h", ttl)
		return 24 * time.Hour
	}
	return d
}
