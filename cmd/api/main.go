package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Freeeeeet/schedule_api/internal/ai"
	"github.com/Freeeeeet/schedule_api/internal/app"
	"github.com/Freeeeeet/schedule_api/internal/config"
	"github.com/Freeeeeet/schedule_api/internal/controller"
	"github.com/Freeeeeet/schedule_api/internal/repository"
	"github.com/Freeeeeet/schedule_api/internal/service"
	"github.com/Freeeeeet/schedule_api/migrations"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.GetDBDSN())
	if err != nil {
		logger.Fatal("Failed to create database pool", zap.Error(err))
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	logger.Info("Connected to database")

	migrator, err := app.NewMigrator(pool, migrations.FS, ".", logger)
	if err != nil {
		logger.Fatal("Failed to create migrator", zap.Error(err))
	}
	if err := migrator.Run(ctx); err != nil {
		logger.Fatal("Failed to apply migrations", zap.Error(err))
	}
	if err := migrator.Close(); err != nil {
		logger.Warn("Failed to close migrator", zap.Error(err))
	}

	// Репозитории
	scheduleRepo := repository.NewScheduleRepository(pool, logger)
	holidayRepo := repository.NewHolidayRepository(pool)
	teacherRepo := repository.NewTeacherRepository(pool)

	// Фоновое извлечение преподавателей
	teacherService := service.NewTeacherService(teacherRepo, logger)
	syncQueue := app.NewTeacherSyncQueue(teacherService, cfg.TeacherSyncWorkers, cfg.TeacherSyncQueue, logger)
	// Очередь дорабатывает поставленные задачи в Stop, поэтому не привязана к сигналу
	syncQueue.Start(context.Background())

	// AI клиенты
	groq := ai.NewGroqClient(cfg.GroqAPIKey, cfg.GroqBaseURL, logger)
	gemini, err := ai.NewGeminiClient(ctx, cfg.GoogleAPIKey, cfg.GeminiModel, logger)
	if err != nil {
		logger.Fatal("Failed to create Gemini client", zap.Error(err))
	}

	// Сервисы
	validate := service.NewValidator()
	scheduleService := service.NewScheduleService(scheduleRepo, syncQueue, validate, logger)
	holidayService := service.NewHolidayService(holidayRepo, logger)
	aiService := service.NewAIService(groq, logger)
	extractionService := service.NewExtractionService(gemini, service.ExtractionConfig{
		PollInterval: cfg.ExtractPollInterval,
		PollTimeout:  cfg.ExtractPollTimeout,
		Instruction:  service.LoadInstruction(cfg.ExtractPromptFile, logger),
	}, logger)

	// HTTP
	aiHandlers, err := controller.NewAIHandlers(aiService, extractionService, cfg.UploadDir, logger)
	if err != nil {
		logger.Fatal("Failed to init AI handlers", zap.Error(err))
	}
	api := controller.NewAPIController(
		controller.NewScheduleHandlers(scheduleService, teacherService, logger),
		controller.NewHolidayHandlers(holidayService, logger),
		aiHandlers,
		cfg.CORSOrigins,
		logger,
	)

	go func() {
		if err := api.Start("0.0.0.0:" + cfg.Port); err != nil {
			logger.Error("HTTP server stopped", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := api.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP shutdown failed", zap.Error(err))
	}
	syncQueue.Stop()
}
