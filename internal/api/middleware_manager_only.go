package api

import "github.com/gofiber/fiber/v2"

func (handler *Handler) ManagerOnly(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}
	if !user.IsManagerOrAbove() {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "manager access required"})
	}
	return c.Next()
}
