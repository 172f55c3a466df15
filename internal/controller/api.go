package controller

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// bodyLimit чуть больше предела PDF, чтобы размер проверялся в обработчике
const bodyLimit = 12 * 1024 * 1024

type APIController struct {
	app       *fiber.App
	schedules *ScheduleHandlers
	holidays  *HolidayHandlers
	ai        *AIHandlers
	logger    *zap.Logger
}

func NewAPIController(
	schedules *ScheduleHandlers,
	holidays *HolidayHandlers,
	ai *AIHandlers,
	corsOrigins string,
	logger *zap.Logger,
) *APIController {
	app := fiber.New(fiber.Config{
		AppName:               "schedule_api",
		BodyLimit:             bodyLimit,
		DisableStartupMessage: true,
		UnescapePath:          true,
		ErrorHandler:          ErrorHandler(logger),
		ReadTimeout:           15 * time.Second,
		IdleTimeout:           90 * time.Second,
	})

	app.Use(RecoveryMiddleware())
	app.Use(RequestLogger(logger))
	app.Use(CorsMiddleware(corsOrigins))

	c := &APIController{
		app:       app,
		schedules: schedules,
		holidays:  holidays,
		ai:        ai,
		logger:    logger,
	}
	c.RegisterRoutes()

	return c
}

// RegisterRoutes регистрирует все маршруты
func (c *APIController) RegisterRoutes() {
	c.app.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.SendString("Hello World")
	})
	c.app.Get("/health", func(ctx *fiber.Ctx) error {
		return ctx.SendString("ok")
	})

	api := c.app.Group("/api")

	schedule := api.Group("/schedule")
	schedule.Post("/add", c.schedules.Add)
	schedule.Get("/ids", c.schedules.IDs)
	schedule.Get("/find/:id", c.schedules.Find)
	schedule.Delete("/delete/:id", c.schedules.Delete)
	schedule.Get("/teachers", c.schedules.Teachers)

	holiday := api.Group("/holiday")
	holiday.Post("/add", c.holidays.Add)
	holiday.Get("/all", c.holidays.All)
	holiday.Delete("/delete/:id", c.holidays.Delete)

	api.Post("/ai/query", c.ai.Query)
	api.Post("/extract-pdf", c.ai.ExtractPDF)

	c.app.Use(func(ctx *fiber.Ctx) error {
		return JSONError(ctx, fiber.StatusNotFound, "Route not found")
	})
}

// App возвращает fiber приложение
func (c *APIController) App() *fiber.App {
	return c.app
}

// Start слушает адрес до вызова Shutdown
func (c *APIController) Start(addr string) error {
	c.logger.Info("Starting HTTP server", zap.String("addr", addr))
	return c.app.Listen(addr)
}

// Shutdown останавливает сервер, дожидаясь активных запросов
func (c *APIController) Shutdown(ctx context.Context) error {
	c.logger.Info("Stopping HTTP server")
	return c.app.ShutdownWithContext(ctx)
}
