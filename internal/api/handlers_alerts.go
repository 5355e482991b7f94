package api

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/staffpulse/internal/models"
	"github.com/terraincognita07/staffpulse/internal/services"
)

func (handler *Handler) ListAlerts(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	unresolvedOnly := c.QueryBool("unresolved", false)

	handler.ensureDependencies()
	alerts, err := handler.repositories.Alerts.ListByCompany(user.CompanyID, unresolvedOnly)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load alerts")
	}

	views := make([]fiber.Map, 0, len(alerts))
	for _, alert := range alerts {
		views = append(views, alertView(alert))
	}
	return c.JSON(fiber.Map{"alerts": views})
}

// ResolveAlert marks an alert handled. Racing a colleague to the same
// alert yields a conflict for the loser, never a double resolution.
func (handler *Handler) ResolveAlert(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	alertID, err := parseIDParam(c, "id")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid alert id")
	}

	handler.ensureDependencies()
	alert, err := handler.repositories.Alerts.FindByID(alertID)
	if err != nil {
		return apiError(c, fiber.StatusNotFound, "alert not found")
	}
	if alert.CompanyID != user.CompanyID && user.Role != models.RoleAdmin {
		return apiError(c, fiber.StatusNotFound, "alert not found")
	}

	if err := handler.alerts.Resolve(alertID, *user, time.Now().In(handler.location)); err != nil {
		switch {
		case errors.Is(err, services.ErrAlertNotFound):
			return apiError(c, fiber.StatusNotFound, "alert not found")
		case errors.Is(err, services.ErrAlertAlreadyResolved):
			return apiError(c, fiber.StatusConflict, "alert already resolved")
		default:
			return apiError(c, fiber.StatusInternalServerError, "failed to resolve alert")
		}
	}
	return c.JSON(fiber.Map{"ok": true})
}
