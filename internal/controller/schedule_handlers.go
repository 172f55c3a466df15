package controller

import (
	"github.com/Freeeeeet/schedule_api/internal/model"
	"github.com/Freeeeeet/schedule_api/internal/service"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type ScheduleHandlers struct {
	schedules *service.ScheduleService
	teachers  *service.TeacherService
	logger    *zap.Logger
}

func NewScheduleHandlers(schedules *service.ScheduleService, teachers *service.TeacherService, logger *zap.Logger) *ScheduleHandlers {
	return &ScheduleHandlers{
		schedules: schedules,
		teachers:  teachers,
		logger:    logger,
	}
}

// Add POST /schedule/add
func (h *ScheduleHandlers) Add(c *fiber.Ctx) error {
	var schedule model.Schedule
	if err := c.BodyParser(&schedule); err != nil {
		h.logger.Debug("Invalid schedule body", zap.Error(err))
		return JSONError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	created, err := h.schedules.Upsert(c.UserContext(), &schedule)
	if err != nil {
		return writeServiceError(c, h.logger, err)
	}

	message := "Schedule updated successfully"
	if created {
		message = "Schedule added successfully"
	}
	return c.JSON(fiber.Map{"message": message})
}

// IDs GET /schedule/ids
func (h *ScheduleHandlers) IDs(c *fiber.Ctx) error {
	ids, err := h.schedules.ListIDs(c.UserContext())
	if err != nil {
		return writeServiceError(c, h.logger, err)
	}
	return c.JSON(fiber.Map{"ids": ids})
}

// Find GET /schedule/find/:id
func (h *ScheduleHandlers) Find(c *fiber.Ctx) error {
	schedule, err := h.schedules.FindByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeServiceError(c, h.logger, err)
	}
	return c.JSON(schedule)
}

// Delete DELETE /schedule/delete/:id
func (h *ScheduleHandlers) Delete(c *fiber.Ctx) error {
	if err := h.schedules.DeleteByID(c.UserContext(), c.Params("id")); err != nil {
		return writeServiceError(c, h.logger, err)
	}
	return c.JSON(fiber.Map{"message": "Schedule deleted"})
}

// Teachers GET /schedule/teachers?university=&program=
func (h *ScheduleHandlers) Teachers(c *fiber.Ctx) error {
	teachers, err := h.teachers.List(c.UserContext(), c.Query("university"), c.Query("program"))
	if err != nil {
		return writeServiceError(c, h.logger, err)
	}
	return c.JSON(teachers)
}
