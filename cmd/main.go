package main

import (
	"time"

	"medreq-service/internal/changelog"
	"medreq-service/internal/handler"
	"medreq-service/internal/importer"
	"medreq-service/internal/middleware"
	"medreq-service/internal/report"
	"medreq-service/internal/requirement"
	"medreq-service/pkg/config"
	"medreq-service/pkg/database"
	"medreq-service/pkg/logger"
	"medreq-service/pkg/metrics"
	"medreq-service/prometheus"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

func main() {
	// Load configuration from .env file and environment variables
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger with config
	logger.InitLogger(cfg)
	log := logger.GetLogger()
	log.Info("Starting medicine requirement service...", zap.String("environment", cfg.Server.Env))

	// Initialize Prometheus metrics
	prometheus.InitMetrics(cfg)
	log.Info("Prometheus metrics initialized")

	// Initialize HTTP metrics
	httpMetrics := metrics.NewHTTPMetrics("medreq-service")
	log.Info("HTTP metrics initialized")

	// Initialize database and run migrations
	if err := database.InitDB(cfg); err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established and migrations completed", zap.String("db_host", cfg.DB.Host), zap.String("db_name", cfg.DB.DBName))

	// The business timezone fixes the calendar-day boundary for lists
	loc, err := time.LoadLocation(cfg.Business.Timezone)
	if err != nil {
		log.Fatal("Invalid business timezone", zap.String("timezone", cfg.Business.Timezone), zap.Error(err))
	}

	// Wire services
	requirementSvc := requirement.NewService(requirement.NewGormStore(database.GetDB()), loc)
	reportGen := report.NewGenerator(report.Options{QuantityBlank: cfg.Report.QuantityBlank})
	changelogCache := changelog.NewCache(cfg.Changelog.CacheTTL,
		changelog.NewClient(cfg.Changelog.Repo, cfg.Changelog.GithubToken).Fetch)

	requirementHandler := handler.NewRequirementHandler(requirementSvc, reportGen)
	importHandler := handler.NewImportHandler(importer.New(database.GetDB()))
	systemHandler := handler.NewSystemHandler(changelogCache)

	// Create Echo instance
	e := echo.New()

	// Middleware
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Use(middleware.RequestIDMiddleware)
	e.Use(httpMetrics.Middleware())

	// Request logging middleware
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			// Process request
			err := next(c)

			// Log request details
			log := logger.FromContext(c)
			log.Info("HTTP Request",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Request().URL.Path),
				zap.Int("status", c.Response().Status),
				zap.Float64("duration_s", time.Since(start).Seconds()),
				zap.String("ip", c.RealIP()),
			)

			return err
		}
	})

	// Routes
	e.GET("/health", handler.Health)

	// Prometheus metrics endpoint
	e.GET("/metrics", echo.WrapHandler(metrics.GetPrometheusHandler()))

	api := e.Group("/api")

	// Supplier endpoints
	suppliers := api.Group("/suppliers")
	suppliers.GET("", handler.ListSuppliers)
	suppliers.POST("", handler.CreateSupplier)
	suppliers.PUT("/:id", handler.UpdateSupplier)
	suppliers.DELETE("/:id", handler.DeleteSupplier)
	suppliers.GET("/:id/medicines", handler.ListSupplierMedicines)

	// Medicine endpoints
	medicines := api.Group("/medicines")
	medicines.GET("", handler.ListMedicines)
	medicines.POST("", handler.CreateMedicine)
	medicines.PUT("/:id", handler.UpdateMedicine)
	medicines.DELETE("/:id", handler.DeleteMedicine)

	// Requirement list endpoints
	requirements := api.Group("/requirements")
	requirements.GET("/today", requirementHandler.Today)
	requirements.POST("/add-item", requirementHandler.AddItem)
	requirements.DELETE("/item/:medicineId", requirementHandler.RemoveItem)
	requirements.GET("/history", requirementHandler.History)
	requirements.DELETE("/history/:id", requirementHandler.DeleteHistory)
	requirements.POST("/generate-pdf", requirementHandler.GeneratePDF)

	// Spreadsheet import endpoints
	imports := api.Group("/import")
	imports.POST("/suppliers", importHandler.ImportSuppliers)
	imports.POST("/medicines", importHandler.ImportMedicines)

	// System endpoints
	system := api.Group("/system")
	system.GET("/commits", systemHandler.GetCommits)

	// Start server
	port := cfg.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Failed to start server", zap.Error(err))
	}
}
