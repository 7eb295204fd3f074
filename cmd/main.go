package main

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"medicine-service/internal/audit"
	"medicine-service/internal/catalog"
	"medicine-service/internal/handler"
	mid "medicine-service/internal/middleware"
	"medicine-service/internal/repository"
	"medicine-service/internal/seed"
	"medicine-service/pkg/config"
	"medicine-service/pkg/database"
	"medicine-service/pkg/jwtutil"
	"medicine-service/pkg/logger"
	"medicine-service/prometheus"
)

func main() {
	// Load configuration; config.Load picks up an optional .env file
	appConfig, err := config.Load()
	if err != nil {
		// Can't use structured logger yet since it's not initialized
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	logger.InitLogger(appConfig)
	log := logger.GetLogger()
	defer log.Sync()

	log.Info("Starting medicine-service",
		zap.String("environment", appConfig.Server.Env),
		zap.String("port", appConfig.Server.Port))

	// Initialize JWT utility
	jwtutil.Initialize(&appConfig.JWT)
	log.Info("JWT utility initialized")

	// Initialize Prometheus metrics
	prometheus.InitMetrics(appConfig)
	log.Info("Prometheus metrics initialized",
		zap.String("metrics_prefix", appConfig.Metrics.Prefix))

	// Initialize database
	if err := database.InitDB(appConfig); err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established")

	// Wire the catalog
	db := database.GetDB()
	medicines := repository.NewMedicineRepository(db)
	companies := repository.NewCompanyRepository(db)
	catalogService := catalog.NewService(medicines, companies)
	catalogService.SetRowErrorHook(func(lineNumber int, line string) {
		prometheus.RecordImportRow("malformed")
	})
	recorder := audit.NewRecorder(db, log)

	// Seed the system dataset when configured
	if appConfig.Seed.DatasetPath != "" {
		if err := seed.LoadSystemDataset(medicines, appConfig.Seed.DatasetPath, log); err != nil {
			log.Fatal("Failed to seed system dataset", zap.Error(err))
		}
	}

	// Initialize Echo instance
	e := echo.New()

	// Middleware
	e.Use(middleware.Recover())
	e.Use(mid.RequestIDMiddleware)
	e.Use(mid.MetricsMiddleware)

	// Metrics endpoint
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Health check endpoint
	e.GET("/health", handler.Health)

	// Medicine API routes - auth middleware validates the JWT and extracts
	// the acting company
	medicineHandler := handler.NewMedicineHandler(catalogService, recorder)
	medicineAPI := e.Group("/api/medicines", mid.AuthMiddleware)
	medicineHandler.Register(medicineAPI)

	// Start server
	port := appConfig.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Server error", zap.Error(err))
	}
}
