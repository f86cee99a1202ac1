// @title Interview Agent API
// @version 1.0
// @description Generates interview question and answer sets for job postings with a language model.
// @host localhost:8080
// @BasePath /api
// @schemes http https
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"interview-agent/internal/adapter"
	"interview-agent/internal/adapter/textgen"
	"interview-agent/internal/cache"
	"interview-agent/internal/config"
	"interview-agent/internal/database"
	"interview-agent/internal/domain"
	"interview-agent/internal/handler"
	"interview-agent/internal/logger"
	"interview-agent/internal/middleware"
	"interview-agent/internal/repository"
	"interview-agent/internal/service"

	_ "interview-agent/cmd/api/docs"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

// requestLogger is a middleware that logs HTTP requests
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()

		err := c.Next()

		duration := time.Since(start)
		status := c.Response().StatusCode()

		logger.Get().Info("HTTP Request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("duration", duration),
			zap.String("ip", c.IP()),
			zap.String("user_agent", c.Get("User-Agent")),
		)

		return err
	}
}

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Initialize(cfg); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	// Initialize text generator. A missing OpenAI credential leaves it
	// nil: the service starts, generation endpoints answer 503, and the
	// stub and read endpoints keep working.
	var generator domain.TextGenerator
	switch cfg.LLM.Source {
	case "openai":
		if cfg.LLM.OpenAI.APIKey == "" {
			appLogger.Warn("OPENAI_API_KEY is not set; generation endpoints will report the model as unavailable")
		} else {
			generator, err = textgen.NewOpenAITextGenerator(cfg.LLM.OpenAI.APIKey, cfg.LLM.OpenAI.Model, cfg.LLM.Temperature, appLogger)
			if err != nil {
				appLogger.Fatal("Failed to create OpenAI text generator", zap.Error(err))
			}
		}
	case "ollama":
		generator, err = textgen.NewOllamaTextGenerator(cfg.LLM.Ollama.ServerURL, cfg.LLM.Ollama.Model, cfg.LLM.Temperature, appLogger)
		if err != nil {
			appLogger.Fatal("Failed to create Ollama text generator", zap.Error(err))
		}
	default:
		appLogger.Fatal("Unsupported LLM source. Please check LLM_SOURCE in config.", zap.String("source", cfg.LLM.Source))
	}

	// Connect to database
	db, err := database.NewSQLXOracleDB(cfg.GetDSN())
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}

	// Initialize Redis, optional: without it every read hits the database.
	var cacheAdapter domain.Cache
	if cfg.Redis.Address == "" {
		appLogger.Warn("Redis address is not configured; response caching is disabled")
	} else {
		redisClient, err := cache.NewRedisClient(cfg.Redis)
		if err != nil {
			appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		appLogger.Info("Successfully connected to Redis")
		cacheAdapter = adapter.NewRedisCacheAdapter(redisClient)
	}

	// Initialize repositories
	interviewRepository := repository.NewInterviewDatabaseAdapter(db)

	// Initialize services
	agentService := service.NewAgentService(generator, interviewRepository)
	interviewService := service.NewInterviewService(interviewRepository, cacheAdapter)

	// Initialize handlers
	interviewHandler := handler.NewInterviewHandler(agentService, interviewService)
	healthHandler := handler.NewHealthHandler(db, cacheAdapter, generator != nil)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		BodyLimit:    1024 * 1024,
		ErrorHandler: middleware.ErrorHandler(),
	})

	// Add request logging middleware
	app.Use(requestLogger())
	app.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,DELETE,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept", MaxAge: 300}))
	app.Use(recover.New())

	// Swagger handler
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API group
	apiGroup := app.Group("/api")
	apiGroup.Get("/health", healthHandler.Health)
	apiGroup.Post("/interviews", interviewHandler.GenerateInterview)
	apiGroup.Post("/interviews/stub", interviewHandler.GenerateInterviewStub)
	apiGroup.Get("/interviews", interviewHandler.ListInterviews)
	apiGroup.Get("/interviews/:id", interviewHandler.GetInterview)
	apiGroup.Delete("/interviews/:id", interviewHandler.DeleteInterview)

	// Start server
	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", os.Getenv("ENV")))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
