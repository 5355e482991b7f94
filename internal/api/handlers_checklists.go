package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/staffpulse/internal/models"
	"github.com/terraincognita07/staffpulse/internal/services"
)

// loadCompanyChecklist resolves the checklist and enforces tenant
// scoping. Checklists of other companies read as not found so the
// response never confirms their existence. Admins bypass the scope.
func (handler *Handler) loadCompanyChecklist(c *fiber.Ctx, user *models.User) (models.Checklist, error) {
	checklistID, err := parseIDParam(c, "id")
	if err != nil {
		return models.Checklist{}, apiError(c, fiber.StatusBadRequest, "invalid checklist id")
	}

	handler.ensureDependencies()
	checklist, err := handler.repositories.Checklists.FindByID(checklistID)
	if err != nil {
		return models.Checklist{}, apiError(c, fiber.StatusNotFound, "checklist not found")
	}
	if checklist.CompanyID != user.CompanyID && user.Role != models.RoleAdmin {
		return models.Checklist{}, apiError(c, fiber.StatusNotFound, "checklist not found")
	}
	return checklist, nil
}

// ListChecklists returns the current user's checklists with progress,
// completion and overdue state for the running period.
func (handler *Handler) ListChecklists(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	handler.ensureDependencies()
	statuses, err := handler.catalog.ListForUser(*user, time.Now().In(handler.location), handler.location)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load checklists")
	}

	views := make([]fiber.Map, 0, len(statuses))
	for _, status := range statuses {
		views = append(views, checklistStatusView(status))
	}
	return c.JSON(fiber.Map{"checklists": views})
}

// GetChecklist returns one checklist with its tasks and the user's
// per-task completion state for the current period.
func (handler *Handler) GetChecklist(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	checklist, err := handler.loadCompanyChecklist(c, user)
	if err != nil {
		return err
	}

	now := time.Now().In(handler.location)
	status, err := handler.catalog.StatusForUser(checklist, user.ID, now, handler.location)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load checklist")
	}

	tasks, err := handler.repositories.Tasks.ListByChecklist(checklist.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load tasks")
	}
	completedIDs, err := handler.tracker.CompletedTaskIDs(tasks, user.ID, status.PeriodKey)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load completions")
	}

	taskViews := make([]fiber.Map, 0, len(tasks))
	for _, task := range tasks {
		taskViews = append(taskViews, taskView(task, completedIDs[task.ID]))
	}

	view := checklistStatusView(status)
	view["tasks"] = taskViews
	return c.JSON(fiber.Map{"checklist": view})
}

func (handler *Handler) CreateChecklist(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var payload checklistPayload
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	handler.ensureDependencies()
	checklist, err := handler.catalog.CreateChecklist(user.CompanyID, checklistInputFromPayload(payload, true))
	if err != nil {
		return apiError(c, catalogErrorStatus(err), err.Error())
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"checklist": checklistView(checklist)})
}

func (handler *Handler) UpdateChecklist(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	checklist, err := handler.loadCompanyChecklist(c, user)
	if err != nil {
		return err
	}

	var payload checklistPayload
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	input := checklistInputFromPayload(payload, checklist.IsActive)
	if payload.Frequency == "" {
		input.Frequency = checklist.Frequency
	}
	if payload.PointsPerCompletion == 0 {
		input.PointsPerCompletion = checklist.PointsPerCompletion
	}

	updated, err := handler.catalog.UpdateChecklist(checklist, input)
	if err != nil {
		return apiError(c, catalogErrorStatus(err), err.Error())
	}
	return c.JSON(fiber.Map{"checklist": checklistView(updated)})
}

func (handler *Handler) DeleteChecklist(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	checklist, err := handler.loadCompanyChecklist(c, user)
	if err != nil {
		return err
	}

	if err := handler.catalog.DeleteChecklist(checklist.ID); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to delete checklist")
	}
	return c.JSON(fiber.Map{"ok": true})
}

func checklistInputFromPayload(payload checklistPayload, defaultActive bool) services.ChecklistInput {
	isActive := defaultActive
	if payload.IsActive != nil {
		isActive = *payload.IsActive
	}
	return services.ChecklistInput{
		Title:               payload.Title,
		Description:         payload.Description,
		Frequency:           payload.Frequency,
		PointsPerCompletion: payload.PointsPerCompletion,
		SortOrder:           payload.SortOrder,
		IsActive:            isActive,
		AssignedUserIDs:     payload.AssignedUserIDs,
	}
}
