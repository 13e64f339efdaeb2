package main

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/jaswan333/hospital-golang/internal/ai"
	"github.com/jaswan333/hospital-golang/internal/auth"
	"github.com/jaswan333/hospital-golang/internal/config"
	"github.com/jaswan333/hospital-golang/internal/database"
	"github.com/jaswan333/hospital-golang/internal/handlers"
	"github.com/jaswan333/hospital-golang/internal/logger"
	"github.com/jaswan333/hospital-golang/internal/orders"
	"github.com/jaswan333/hospital-golang/internal/routes"
)

func main() {
	// 0. --- Load Environment Variables (.env) ---
	if err := godotenv.Load(); err != nil {
		log.Println("WARNING: Could not find or load .env file. Relying on system environment variables.")
	}

	cfg := config.Load()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	if cfg.JWTSecret == "" {
		logger.L().Fatal("JWT_SECRET environment variable is not set")
	}
	auth.Init(cfg.JWTSecret)

	// 1. --- Database Connection ---
	db, err := database.Open(cfg.DBDSN)
	if err != nil {
		logger.L().Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		logger.L().Fatal("failed to run migrations", zap.Error(err))
	}

	// 2. --- Order Workflow ---
	orderService := orders.NewService(orders.NewRepository(db), cfg.ServiceTaxRate)

	// 3. --- Assistant (Optional) ---
	// Without an API key the endpoint answers 503 and everything else
	// works normally.
	var assistant *ai.AssistantService
	if cfg.GeminiAPIKey != "" {
		assistant, err = ai.NewAssistantService(cfg.GeminiAPIKey, db)
		if err != nil {
			logger.L().Fatal("failed to initialize assistant", zap.Error(err))
		}
	} else {
		logger.L().Info("GEMINI_API_KEY not set, assistant endpoint disabled")
	}

	// --- Application Setup ---
	app := &handlers.Handlers{
		DB:        db,
		Orders:    orderService,
		Assistant: assistant,
	}

	// 4. --- Background Workers ---
	// The sweep flags medicines under their reorder threshold so the
	// pharmacy restocks before orders start failing.
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()

		logger.L().Info("background worker started", zap.String("worker", "low_stock_sweep"))

		for range ticker.C {
			app.ProcessLowStockSweep()
		}
	}()

	// --- Router Setup ---
	router := routes.SetupRouter(app, cfg.CORSOrigin)

	// --- Start Server ---
	logger.L().Info("starting hospital API server", zap.String("port", cfg.AppPort))
	if err := router.Run(":" + cfg.AppPort); err != nil {
		logger.L().Fatal("server exited", zap.Error(err))
	}
}
