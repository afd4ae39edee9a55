package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/Kanishk-03-Jain/QuizMaster/internal/adapter"
	"github.com/Kanishk-03-Jain/QuizMaster/internal/cache"
	"github.com/Kanishk-03-Jain/QuizMaster/internal/config"
	"github.com/Kanishk-03-Jain/QuizMaster/internal/database"
	"github.com/Kanishk-03-Jain/QuizMaster/internal/handler"
	"github.com/Kanishk-03-Jain/QuizMaster/internal/logger"
	"github.com/Kanishk-03-Jain/QuizMaster/internal/middleware"
	"github.com/Kanishk-03-Jain/QuizMaster/internal/repository"
	"github.com/Kanishk-03-Jain/QuizMaster/internal/service"
	"github.com/Kanishk-03-Jain/QuizMaster/internal/session"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
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
	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	// Connect to database
	db, err := database.NewSQLXPostgresDB(cfg.GetDSN())
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}

	// Initialize repositories
	quizRepository := repository.NewSQLXQuizRepository(db)
	questionBank := repository.NewSQLXQuestionBank(db)
	attemptRepository := repository.NewSQLXAttemptRepository(db)
	answerRecordRepository := repository.NewSQLXAnswerRecordRepository(db)
	txManager := repository.NewTransactionManagerAdapter(db)

	// Initialize Redis client
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	appLogger.Info("Successfully connected to Redis")
	cacheAdapter := adapter.NewRedisCacheAdapter(redisClient)

	// Initialize services
	sessions := session.NewRegistry()
	quizService := service.NewQuizService(quizRepository, questionBank, txManager, cacheAdapter, cfg)
	recorder := service.NewAttemptRecorder(attemptRepository, answerRecordRepository)
	attemptService := service.NewAttemptService(quizService, recorder, attemptRepository, answerRecordRepository, sessions, cfg)
	appLogger.Info("Services initialized")

	// Initialize handlers
	quizHandler := handler.NewQuizHandler(quizService, attemptService)
	attemptHandler := handler.NewAttemptHandler(attemptService)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		BodyLimit:    1 * 1024 * 1024,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(requestLogger())
	app.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,PUT,DELETE,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept,X-Teacher-ID,X-Student-ID", MaxAge: 300}))
	app.Use(recover.New())

	// API group
	apiGroup := app.Group("/api")

	// Teacher routes: quiz authoring and analytics
	quizGroup := apiGroup.Group("/quizzes", middleware.RequireTeacher())
	quizGroup.Post("/", quizHandler.CreateQuiz)
	quizGroup.Get("/", quizHandler.ListQuizzes)
	quizGroup.Get("/:id", quizHandler.GetQuiz)
	quizGroup.Put("/:id", quizHandler.UpdateQuiz)
	quizGroup.Delete("/:id", quizHandler.DeleteQuiz)
	quizGroup.Post("/:id/publish", quizHandler.PublishQuiz)
	quizGroup.Post("/:id/unpublish", quizHandler.UnpublishQuiz)
	quizGroup.Get("/:id/summary", quizHandler.GetQuizSummary)

	// Student routes: joining, answering, submitting
	attemptGroup := apiGroup.Group("/attempts", middleware.RequireStudent())
	attemptGroup.Post("/", attemptHandler.JoinQuiz)
	attemptGroup.Get("/:id", attemptHandler.GetResult)

	sessionGroup := apiGroup.Group("/sessions", middleware.RequireStudent())
	sessionGroup.Get("/:id", attemptHandler.GetState)
	sessionGroup.Put("/:id/answers", attemptHandler.RecordAnswer)
	sessionGroup.Post("/:id/advance", attemptHandler.Advance)
	sessionGroup.Post("/:id/submit", attemptHandler.Submit)
	sessionGroup.Delete("/:id", attemptHandler.Leave)

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
