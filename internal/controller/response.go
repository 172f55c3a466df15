package controller

import (
	"errors"
	"strings"

	"github.com/Freeeeeet/schedule_api/internal/service"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const genericErrorMessage = "Error processing your request"

// ErrorResponse единый формат ошибки
type ErrorResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	ErrorCode string `json:"error_code,omitempty"`
}

func statusToErrorCode(status int) string {
	switch status {
	case fiber.StatusBadRequest:
		return "BAD_REQUEST"
	case fiber.StatusNotFound:
		return "NOT_FOUND"
	case fiber.StatusRequestEntityTooLarge:
		return "FILE_TOO_LARGE"
	case fiber.StatusUnsupportedMediaType:
		return "UNSUPPORTED_MEDIA_TYPE"
	default:
		if status >= 500 {
			return "INTERNAL_ERROR"
		}
		return "ERROR"
	}
}

// JSONError отвечает ошибкой в едином формате
func JSONError(c *fiber.Ctx, status int, message string) error {
	if strings.TrimSpace(message) == "" {
		message = fiber.ErrInternalServerError.Message
		if status != fiber.StatusInternalServerError {
			message = fiber.NewError(status).Message
		}
	}
	return c.Status(status).JSON(ErrorResponse{
		Success:   false,
		Message:   message,
		ErrorCode: statusToErrorCode(status),
	})
}

// serviceErrorStatus сопоставляет ошибку сервиса HTTP статусу
func serviceErrorStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrValidation):
		return fiber.StatusBadRequest
	case errors.Is(err, service.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, service.ErrUnsupportedMedia):
		return fiber.StatusUnsupportedMediaType
	case errors.Is(err, service.ErrFileTooLarge):
		return fiber.StatusRequestEntityTooLarge
	default:
		return fiber.StatusInternalServerError
	}
}

// writeServiceError детали 5xx только в лог, клиенту общее сообщение
func writeServiceError(c *fiber.Ctx, logger *zap.Logger, err error) error {
	status := serviceErrorStatus(err)
	if status >= fiber.StatusInternalServerError {
		logger.Error("Request failed",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Error(err))
		return JSONError(c, status, genericErrorMessage)
	}
	return JSONError(c, status, err.Error())
}

// ErrorHandler для ошибок fiber и паник после recover
func ErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		message := genericErrorMessage

		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
			message = fe.Message
		}

		if status >= fiber.StatusInternalServerError {
			logger.Error("Unhandled error",
				zap.String("path", c.Path()),
				zap.Error(err))
			message = genericErrorMessage
		}

		return JSONError(c, status, message)
	}
}
