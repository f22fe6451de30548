package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/dualserve/dualserve/internal/calculator"
	"github.com/dualserve/dualserve/internal/config"
	"github.com/dualserve/dualserve/internal/registry"
	"github.com/dualserve/dualserve/internal/rest"
	"github.com/dualserve/dualserve/internal/soap"
	"github.com/dualserve/dualserve/internal/users"
)

// AppState holds all application services
type AppState struct {
	Logger            *zap.Logger
	Config            *config.Config
	CalculatorService calculator.CalculatorService
	UserService       users.UserService
	Registry          *registry.Registry
	DB                *bun.DB
}

func main() {
	// Load configuration
	config.Load()

	// Initialize logger with config
	logger := initLogger()

	// Initialize application state
	as, err := newAppState(logger)
	if err != nil {
		logger.Fatal("Failed to initialize application state", zap.Error(err))
	}

	// Create HTTP server
	router := setupRouter(as)

	addr := fmt.Sprintf("%s:%d", config.Http().Host, config.Http().Port)

	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Setup graceful shutdown
	done := setupSignalHandler(as, server, logger)

	logger.Info("Starting dualserve server",
		zap.String("address", addr),
		zap.String("storage", config.Storage().Driver))

	err = server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("Failed to start server", zap.Error(err))
	}

	<-done
	logger.Info("Server shutdown complete")
}

// newAppState creates and initializes the application state
func newAppState(logger *zap.Logger) (*AppState, error) {
	storageConfig := config.Storage()

	var userStore users.UserStore
	var db *bun.DB

	switch storageConfig.Driver {
	case config.StorageDriverPostgres:
		logger.Info("Using PostgreSQL user store",
			zap.String("host", storageConfig.Postgres.Host),
			zap.Int("port", storageConfig.Postgres.Port),
			zap.String("database", storageConfig.Postgres.Database))

		sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(storageConfig.Postgres.DSN())))
		db = bun.NewDB(sqldb, pgdialect.New())

		pgStore := users.NewPostgresStore(db)
		if err := pgStore.EnsureSchema(context.Background()); err != nil {
			return nil, fmt.Errorf("failed to ensure users schema: %w", err)
		}
		userStore = pgStore
	case config.StorageDriverMemory, "":
		logger.Info("Using in-memory user store with seed data")
		userStore = users.NewMemoryStore()
	default:
		return nil, fmt.Errorf("unknown storage driver: %s", storageConfig.Driver)
	}

	calculatorService := calculator.NewService()
	userService := users.NewService(userStore)

	reg := registry.New()
	if err := registry.RegisterAll(reg, calculatorService, userService); err != nil {
		return nil, fmt.Errorf("failed to register operations: %w", err)
	}

	return &AppState{
		Logger:            logger,
		Config:            config.Get(),
		CalculatorService: calculatorService,
		UserService:       userService,
		Registry:          reg,
		DB:                db,
	}, nil
}

func initLogger() *zap.Logger {
	logConfig := config.Logger()

	var config zap.Config
	if logConfig.Format == "json" {
		config = zap.NewProductionConfig()
	} else {
		config = zap.NewDevelopmentConfig()
	}

	// Set log level
	switch logConfig.Level {
	case "debug":
		config.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "info":
		config.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "warn":
		config.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		config.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	default:
		config.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}

	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := config.Build()
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}

	return logger
}

// RequestIDMiddleware assigns each request an id, echoed as X-Request-ID.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

func setupRouter(as *AppState) *gin.Engine {
	// Set Gin mode
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Add CORS middleware
	router.Use(cors.Default())

	// Add logging middleware
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(RequestIDMiddleware())

	// Welcome page
	router.GET("/", welcomePage)

	// Health endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "healthy",
			"time":   time.Now().UTC().Format(time.RFC3339),
		})
	})

	// Envelope protocol endpoints
	soapHandler := soap.NewHandler(as.Registry, as.Logger)
	soapHandler.RegisterRoutes(router)

	// JSON protocol endpoints
	restHandler := rest.NewHandler(as.Registry, as.Logger)
	restHandler.RegisterRoutes(router)

	return router
}

func setupSignalHandler(as *AppState, server *http.Server, logger *zap.Logger) chan struct{} {
	done := make(chan struct{}, 1)

	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-signalCh

		logger.Info("Shutting down server...")

		// Create context with timeout for graceful shutdown
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		// Shutdown server
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("Error during server shutdown", zap.Error(err))
		}

		if as.DB != nil {
			if err := as.DB.Close(); err != nil {
				logger.Error("Error closing database", zap.Error(err))
			}
		}

		done <- struct{}{}
	}()

	return done
}

func welcomePage(c *gin.Context) {
	const html = `<!DOCTYPE html>
<html>
<head>
    <title>Dualserve</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 40px; }
        .service { background: #f5f5f5; padding: 20px; margin: 20px 0; border-radius: 5px; }
        code { background: #f0f0f0; padding: 2px 4px; border-radius: 2px; }
    </style>
</head>
<body>
    <h1>Dualserve</h1>
    <p>One set of operations, two wire protocols.</p>

    <div class='service'>
        <h2>Envelope protocol</h2>
        <p>POST an envelope with a SOAPAction header to:</p>
        <ul>
            <li><code>/CalculatorService.asmx</code> &mdash; Add, Subtract, Multiply, Divide, Calculate, Evaluate, GetCalculatorInfo</li>
            <li><code>/UserService.asmx</code> &mdash; CreateUser, GetUserById, GetAllUsers, UpdateUser, DeleteUser, GetUserByEmail</li>
        </ul>
    </div>

    <div class='service'>
        <h2>JSON protocol</h2>
        <ul>
            <li><code>GET /api/calculator/add?a=&amp;b=</code> (and subtract, multiply, divide, info)</li>
            <li><code>POST /api/calculator/calculate</code>, <code>POST /api/calculator/simple</code>, <code>POST /api/calculator/evaluate</code></li>
            <li><code>GET/POST /api/users</code>, <code>GET/PUT/DELETE /api/users/{id}</code>, <code>GET /api/users/by-email/{email}</code></li>
        </ul>
        <p>Route metadata: <a href='/api/docs'>/api/docs</a></p>
    </div>
</body>
</html>`
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}
