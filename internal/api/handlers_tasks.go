package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/staffpulse/internal/models"
	"github.com/terraincognita07/staffpulse/internal/services"
)

func (handler *Handler) loadCompanyTask(c *fiber.Ctx, user *models.User) (models.ChecklistTask, models.Checklist, error) {
	taskID, err := parseIDParam(c, "id")
	if err != nil {
		return models.ChecklistTask{}, models.Checklist{}, apiError(c, fiber.StatusBadRequest, "invalid task id")
	}

	handler.ensureDependencies()
	task, err := handler.repositories.Tasks.FindByID(taskID)
	if err != nil {
		return models.ChecklistTask{}, models.Checklist{}, apiError(c, fiber.StatusNotFound, "task not found")
	}
	checklist, err := handler.repositories.Checklists.FindByID(task.ChecklistID)
	if err != nil {
		return models.ChecklistTask{}, models.Checklist{}, apiError(c, fiber.StatusNotFound, "task not found")
	}
	if checklist.CompanyID != user.CompanyID && user.Role != models.RoleAdmin {
		return models.ChecklistTask{}, models.Checklist{}, apiError(c, fiber.StatusNotFound, "task not found")
	}
	return task, checklist, nil
}

func (handler *Handler) CreateTask(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	checklist, err := handler.loadCompanyChecklist(c, user)
	if err != nil {
		return err
	}

	var payload taskPayload
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	task, err := handler.catalog.CreateTask(checklist, taskInputFromPayload(payload, true, true))
	if err != nil {
		return apiError(c, catalogErrorStatus(err), err.Error())
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"task": taskView(task, false)})
}

func (handler *Handler) UpdateTask(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	task, _, err := handler.loadCompanyTask(c, user)
	if err != nil {
		return err
	}

	var payload taskPayload
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	updated, err := handler.catalog.UpdateTask(task, taskInputFromPayload(payload, task.IsActive, task.IsRequired))
	if err != nil {
		return apiError(c, catalogErrorStatus(err), err.Error())
	}
	return c.JSON(fiber.Map{"task": taskView(updated, false)})
}

func (handler *Handler) DeleteTask(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	task, _, err := handler.loadCompanyTask(c, user)
	if err != nil {
		return err
	}

	if err := handler.catalog.DeleteTask(task.ID); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to delete task")
	}
	return c.JSON(fiber.Map{"ok": true})
}

// ToggleTask flips the caller's completion state for one task in the
// current period. Completing the whole checklist returns a localized
// congratulation alongside the awarded points.
func (handler *Handler) ToggleTask(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	task, checklist, err := handler.loadCompanyTask(c, user)
	if err != nil {
		return err
	}

	if !services.AppliesTo(checklist, user.ID) {
		return apiError(c, fiber.StatusForbidden, "checklist not assigned")
	}
	if !checklist.IsActive || !task.IsActive {
		return apiError(c, fiber.StatusConflict, "checklist or task disabled")
	}

	var payload togglePayload
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&payload); err != nil {
			return apiError(c, fiber.StatusBadRequest, "invalid input")
		}
	}

	result, err := handler.tracker.ToggleTask(checklist, task, user.ID, payload.Notes, time.Now().In(handler.location), handler.location)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to toggle task")
	}

	response := fiber.Map{
		"done":                result.Done,
		"progress":            result.Progress,
		"checklist_completed": result.ChecklistCompleted,
		"period_key":          result.PeriodKey,
	}
	if result.RewardAwarded {
		response["points_awarded"] = result.PointsAwarded
		response["reward_message"] = handler.translatef(c, "reward.congrats", checklist.Title, result.PointsAwarded)
	}
	return c.JSON(response)
}

// FinalizeChecklist closes the current period for the caller, raising
// one alert per required task still pending.
func (handler *Handler) FinalizeChecklist(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	checklist, err := handler.loadCompanyChecklist(c, user)
	if err != nil {
		return err
	}
	if !services.AppliesTo(checklist, user.ID) {
		return apiError(c, fiber.StatusForbidden, "checklist not assigned")
	}

	result, err := handler.alerts.FinalizeWithAlerts(checklist, user.ID, time.Now().In(handler.location), handler.location)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to finalize checklist")
	}

	return c.JSON(fiber.Map{
		"period_key":     result.PeriodKey,
		"total_missing":  result.TotalMissing,
		"alerts_created": result.AlertsCreated,
	})
}

func taskInputFromPayload(payload taskPayload, defaultActive bool, defaultRequired bool) services.TaskInput {
	isActive := defaultActive
	if payload.IsActive != nil {
		isActive = *payload.IsActive
	}
	isRequired := defaultRequired
	if payload.IsRequired != nil {
		isRequired = *payload.IsRequired
	}
	return services.TaskInput{
		Title:       payload.Title,
		Description: payload.Description,
		IsActive:    isActive,
		IsRequired:  isRequired,
	}
}
