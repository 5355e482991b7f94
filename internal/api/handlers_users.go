package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/staffpulse/internal/services"
)

func (handler *Handler) ListUsers(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	handler.ensureDependencies()
	users, err := handler.accounts.ListCompanyUsers(user.CompanyID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load users")
	}

	views := make([]fiber.Map, 0, len(users))
	for _, member := range users {
		views = append(views, userView(member))
	}
	return c.JSON(fiber.Map{"users": views})
}

// CreateUser lets a manager add staff to their own company.
func (handler *Handler) CreateUser(c *fiber.Ctx) error {
	manager, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var payload newUserPayload
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	handler.ensureDependencies()
	user, err := handler.accounts.CreateUser(manager.CompanyID, services.NewUserInput{
		DisplayName: payload.DisplayName,
		Email:       payload.Email,
		Password:    payload.Password,
		Role:        payload.Role,
	}, time.Now().In(handler.location))
	if err != nil {
		return apiError(c, accountErrorStatus(err), err.Error())
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"user": userView(user)})
}
