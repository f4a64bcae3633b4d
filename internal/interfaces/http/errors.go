package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/entregas-epp/internal/application/dto"
	"github.com/jhoicas/entregas-epp/internal/domain"
)

// errorStatus traduce errores de dominio a status + código (ErrConcurrencyExhausted se evalúa primero).
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrConcurrencyExhausted):
		return fiber.StatusServiceUnavailable, "CONCURRENCY_EXHAUSTED"
	case errors.Is(err, domain.ErrStorageUnavailable):
		return fiber.StatusServiceUnavailable, "STORAGE_UNAVAILABLE"
	case errors.Is(err, domain.ErrEmptyDelivery):
		return fiber.StatusBadRequest, "EMPTY_DELIVERY"
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrInsufficientStock):
		return fiber.StatusConflict, "INSUFFICIENT_STOCK"
	case errors.Is(err, domain.ErrVariantNotFound):
		return fiber.StatusUnprocessableEntity, "VARIANT_NOT_FOUND"
	case errors.Is(err, context.DeadlineExceeded):
		return fiber.StatusGatewayTimeout, "TIMEOUT"
	case errors.Is(err, context.Canceled):
		return fiber.StatusRequestTimeout, "CANCELED"
	default:
		return fiber.StatusInternalServerError, "INTERNAL"
	}
}

// writeError responde con dto.ErrorResponse. Los 5xx se registran y no exponen el detalle interno.
func writeError(c *fiber.Ctx, log zerolog.Logger, err error) error {
	status, code := errorStatus(err)
	msg := err.Error()
	if status >= fiber.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.Path()).Str("code", code).Msg("error en petición")
		if code == "INTERNAL" {
			msg = "error interno"
		}
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: msg})
}
