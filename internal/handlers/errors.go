package handlers

import (
	"errors"

	"catalog/internal/dto"
	"catalog/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// ErrorHandler renders every error returned by a handler as an ErrorResponse.
func ErrorHandler(logger zerolog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		message := "Internal server error"

		var notFound *services.NotFoundError
		var fiberErr *fiber.Error
		switch {
		case errors.As(err, &notFound):
			status = fiber.StatusNotFound
			message = notFound.Error()
		case errors.As(err, &fiberErr):
			status = fiberErr.Code
			message = fiberErr.Message
		}

		if status >= fiber.StatusInternalServerError {
			logger.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("request failed")
		} else {
			logger.Debug().Err(err).Int("status", status).Str("path", c.Path()).Msg("request rejected")
		}

		return c.Status(status).JSON(dto.ErrorResponse{
			StatusCode: status,
			Message:    message,
		})
	}
}
