package controller

import (
	"github.com/Freeeeeet/schedule_api/internal/service"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type HolidayHandlers struct {
	holidays *service.HolidayService
	logger   *zap.Logger
}

func NewHolidayHandlers(holidays *service.HolidayService, logger *zap.Logger) *HolidayHandlers {
	return &HolidayHandlers{
		holidays: holidays,
		logger:   logger,
	}
}

type addHolidayRequest struct {
	Name string `json:"name"`
	Date string `json:"date"`
}

// Add POST /holiday/add
func (h *HolidayHandlers) Add(c *fiber.Ctx) error {
	var req addHolidayRequest
	if err := c.BodyParser(&req); err != nil {
		return JSONError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	holiday, created, err := h.holidays.AddOrUpdate(c.UserContext(), req.Name, req.Date)
	if err != nil {
		return writeServiceError(c, h.logger, err)
	}

	message := "Holiday updated successfully"
	if created {
		message = "Holiday added successfully"
	}
	return c.JSON(fiber.Map{"message": message, "holiday": holiday})
}

// All GET /holiday/all
func (h *HolidayHandlers) All(c *fiber.Ctx) error {
	holidays, err := h.holidays.ListAll(c.UserContext())
	if err != nil {
		return writeServiceError(c, h.logger, err)
	}
	return c.JSON(holidays)
}

// Delete DELETE /holiday/delete/:id
func (h *HolidayHandlers) Delete(c *fiber.Ctx) error {
	if err := h.holidays.DeleteByID(c.UserContext(), c.Params("id")); err != nil {
		return writeServiceError(c, h.logger, err)
	}
	return c.JSON(fiber.Map{"message": "Holiday deleted successfully"})
}
