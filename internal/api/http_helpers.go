package api

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/staffpulse/internal/services"
)

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

func parseIDParam(c *fiber.Ctx, name string) (uint, error) {
	raw := c.Params(name)
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || value == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(value), nil
}

// accountErrorStatus maps account service failures to HTTP statuses.
// Validation problems are the caller's fault, everything else is ours.
func accountErrorStatus(err error) int {
	switch {
	case errors.Is(err, services.ErrCompanyNameRequired),
		errors.Is(err, services.ErrDisplayNameRequired),
		errors.Is(err, services.ErrInvalidEmail),
		errors.Is(err, services.ErrWeakPassword),
		errors.Is(err, services.ErrInvalidRole):
		return fiber.StatusBadRequest
	case errors.Is(err, services.ErrEmailTaken):
		return fiber.StatusConflict
	case errors.Is(err, services.ErrInvalidCredentials):
		return fiber.StatusUnauthorized
	case errors.Is(err, services.ErrAccountDisabled):
		return fiber.StatusForbidden
	default:
		return fiber.StatusInternalServerError
	}
}

func catalogErrorStatus(err error) int {
	switch {
	case errors.Is(err, services.ErrChecklistTitleRequired),
		errors.Is(err, services.ErrTaskTitleRequired),
		errors.Is(err, services.ErrInvalidPoints):
		return fiber.StatusBadRequest
	case errors.Is(err, services.ErrFrequencyLocked):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}
