package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/pkitazos/url-shortener/internal/cache"
	"github.com/pkitazos/url-shortener/internal/config"
	"github.com/pkitazos/url-shortener/internal/domain"
	"github.com/pkitazos/url-shortener/internal/handler"
	"github.com/pkitazos/url-shortener/internal/repository"
	memoryStore "github.com/pkitazos/url-shortener/internal/repository/memory"
	postgresStore "github.com/pkitazos/url-shortener/internal/repository/postgres"
	"github.com/pkitazos/url-shortener/internal/service"
	customLogger "github.com/pkitazos/url-shortener/pkg/logger"
)

// gormWriter adapts our logger to gorm's logger.Writer interface
type gormWriter struct {
	logger *customLogger.Logger
}

func (w *gormWriter) Printf(format string, args ...interface{}) {
	w.logger.Info(fmt.Sprintf(format, args...))
}

func main() {
	// Docker healthcheck mode: probe the running server and exit
	if len(os.Args) > 1 && os.Args[1] == "healthcheck" {
		port := os.Getenv("SERVER_PORT")
		if port == "" {
			port = "8080"
		}
		resp, err := http.Get("http://localhost:" + port + "/health")
		if err != nil || resp.StatusCode != http.StatusOK {
			os.Exit(1)
		}
		os.Exit(0)
	}

	// Load environment variables from .env file (development only)
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	appLogger := customLogger.NewLogger()
	defer appLogger.Sync()
	appLogger.Info("starting URL shortener")

	cfg, err := config.LoadConfig()
	if err != nil {
		appLogger.Fatal("failed to load configuration", "error", err)
	}

	store, err := initStore(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("failed to initialize mapping store", "error", err)
	}

	redisCache, err := cache.NewRedisCache(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		appLogger.Warn("Redis unavailable, running store-only", "error", err)
		redisCache = nil
	}

	shortenerService := service.NewShortenerService(store, redisCache, cfg, appLogger)
	mappingHandler := handler.NewMappingHandler(shortenerService, appLogger)
	router := setupRouter(mappingHandler, cfg, appLogger)

	srv := &http.Server{
		Addr:           fmt.Sprintf(":%s", cfg.ServerPort),
		Handler:        router,
		ReadTimeout:    15 * time.Second,
		WriteTimeout:   15 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20, // 1 MB
	}

	go func() {
		appLogger.Info("server listening", "port", cfg.ServerPort, "backend", cfg.StorageBackend)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("failed to start server", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("server forced to shutdown", "error", err)
	}

	if redisCache != nil {
		if err := redisCache.Close(); err != nil {
			appLogger.Error("error closing Redis connection", "error", err)
		}
	}

	appLogger.Info("server exited")
}

// initStore builds the configured mapping store backend
func initStore(cfg *config.Config, log *customLogger.Logger) (repository.MappingStore, error) {
	if cfg.StorageBackend == "memory" {
		log.Warn("using in-memory mapping store, mappings will not survive restarts")
		return memoryStore.New(), nil
	}

	db, err := initDatabase(cfg, log)
	if err != nil {
		return nil, err
	}
	return postgresStore.NewMappingStore(db), nil
}

// initDatabase opens the PostgreSQL connection with pooling and boot retry
func initDatabase(cfg *config.Config, log *customLogger.Logger) (*gorm.DB, error) {
	writer := &gormWriter{logger: log}

	gormLogger := gormlogger.New(
		writer,
		gormlogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	var db *gorm.DB
	var err error

	maxRetries := 5
	for i := 0; i < maxRetries; i++ {
		dsn := fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
			cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort, cfg.DBSSLMode,
		)

		// TranslateError turns unique constraint violations into
		// gorm.ErrDuplicatedKey, which the store maps to ErrConflict
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
			Logger:                 gormLogger,
			SkipDefaultTransaction: true,
			PrepareStmt:            true,
			TranslateError:         true,
		})

		if err == nil {
			break
		}

		log.Warn("failed to connect to database, retrying", "attempt", i+1, "error", err)
		time.Sleep(5 * time.Second)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", maxRetries, err)
	}

	if err := db.AutoMigrate(&domain.Mapping{}); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Info("database connection established")
	return db, nil
}

// setupRouter configures the Gin router with middleware and routes
func setupRouter(mappingHandler *handler.MappingHandler, cfg *config.Config, log *customLogger.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(handler.LoggerMiddleware(log))
	router.Use(handler.MetricsMiddleware())
	router.Use(handler.SecurityHeadersMiddleware())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, domain.HealthResponse{
			Status:    "healthy",
			Service:   "url-shortener",
			Version:   "1.0.0",
			Timestamp: time.Now(),
		})
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		v1.POST("/shorten", mappingHandler.Shorten)
		v1.GET("/expand/:shortCode", mappingHandler.Expand)
	}

	// Short URL redirection (public endpoint)
	router.GET("/:shortCode", mappingHandler.Redirect)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "endpoint not found",
		})
	})

	return router
}
