package api

import "github.com/gofiber/fiber/v2"

const defaultLeaderboardLimit = 10

// Summary returns company-wide completion, points and alert counters
// plus the points leaderboard.
func (handler *Handler) Summary(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	limit := c.QueryInt("leaderboard_limit", defaultLeaderboardLimit)
	if limit <= 0 {
		limit = defaultLeaderboardLimit
	}

	handler.ensureDependencies()
	summary, err := handler.reports.CompanySummary(user.CompanyID, limit)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to build summary")
	}
	return c.JSON(fiber.Map{"summary": summary})
}
