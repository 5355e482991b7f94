package api

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/staffpulse/internal/services"
)

const (
	loginAttemptLimit  = 5
	loginAttemptWindow = 15 * time.Minute
)

// Register creates a company and its first manager in one call, then
// signs the manager in.
func (handler *Handler) Register(c *fiber.Ctx) error {
	var input registerInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	handler.ensureDependencies()
	company, manager, err := handler.accounts.RegisterCompany(services.RegistrationInput{
		CompanyName: input.CompanyName,
		DisplayName: input.DisplayName,
		Email:       input.Email,
		Password:    input.Password,
	}, time.Now().In(handler.location))
	if err != nil {
		return apiError(c, accountErrorStatus(err), err.Error())
	}

	if err := handler.setAuthCookie(c, &manager, true); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to create session")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"company": companyView(company),
		"user":    userView(manager),
	})
}

func (handler *Handler) Login(c *fiber.Ctx) error {
	var input loginInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	limiterKey := requestLimiterKey(c)
	now := time.Now()
	if handler.loginLimiter.tooManyRecent(limiterKey, now, loginAttemptLimit, loginAttemptWindow) {
		return apiError(c, fiber.StatusTooManyRequests, handler.translate(c, "auth.too_many_attempts"))
	}

	handler.ensureDependencies()
	user, err := handler.accounts.Authenticate(input.Email, input.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			handler.loginLimiter.addFailure(limiterKey, now, loginAttemptWindow)
			return apiError(c, fiber.StatusUnauthorized, handler.translate(c, "auth.invalid_credentials"))
		}
		if errors.Is(err, services.ErrAccountDisabled) {
			return apiError(c, fiber.StatusForbidden, handler.translate(c, "auth.account_disabled"))
		}
		return apiError(c, fiber.StatusInternalServerError, "login failed")
	}
	handler.loginLimiter.reset(limiterKey)

	if err := handler.setAuthCookie(c, &user, input.RememberMe); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to create session")
	}

	return c.JSON(fiber.Map{"user": userView(user)})
}

func (handler *Handler) Logout(c *fiber.Ctx) error {
	handler.clearAuthCookie(c)
	return c.JSON(fiber.Map{"ok": true})
}

func (handler *Handler) Me(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	return c.JSON(fiber.Map{"user": userView(*user)})
}
