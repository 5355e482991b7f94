package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/staffpulse/internal/models"
	"github.com/terraincognita07/staffpulse/internal/services"
)

func userView(user models.User) fiber.Map {
	return fiber.Map{
		"id":           user.ID,
		"company_id":   user.CompanyID,
		"email":        user.Email,
		"display_name": user.DisplayName,
		"role":         user.Role,
		"total_points": user.TotalPoints,
		"is_active":    user.IsActive,
	}
}

func companyView(company models.Company) fiber.Map {
	return fiber.Map{
		"id":        company.ID,
		"name":      company.Name,
		"slug":      company.Slug,
		"is_active": company.IsActive,
	}
}

func checklistView(checklist models.Checklist) fiber.Map {
	return fiber.Map{
		"id":                    checklist.ID,
		"title":                 checklist.Title,
		"description":           checklist.Description,
		"frequency":             checklist.Frequency,
		"is_active":             checklist.IsActive,
		"sort_order":            checklist.SortOrder,
		"points_per_completion": checklist.PointsPerCompletion,
		"assigned_user_ids":     checklist.AssignedUserIDs,
	}
}

func checklistStatusView(status services.ChecklistStatus) fiber.Map {
	view := checklistView(status.Checklist)
	view["period_key"] = status.PeriodKey
	view["period_display"] = status.PeriodDisplay
	view["progress"] = status.Progress
	view["completed"] = status.Completed
	view["overdue"] = status.Overdue
	return view
}

func taskView(task models.ChecklistTask, completed bool) fiber.Map {
	return fiber.Map{
		"id":           task.ID,
		"checklist_id": task.ChecklistID,
		"title":        task.Title,
		"description":  task.Description,
		"is_active":    task.IsActive,
		"is_required":  task.IsRequired,
		"sort_order":   task.SortOrder,
		"completed":    completed,
	}
}

func alertView(alert models.ChecklistAlert) fiber.Map {
	view := fiber.Map{
		"id":           alert.ID,
		"checklist_id": alert.ChecklistID,
		"task_id":      alert.TaskID,
		"user_id":      alert.UserID,
		"period_key":   alert.PeriodKey,
		"is_resolved":  alert.IsResolved,
		"created_at":   alert.CreatedAt,
	}
	if alert.ResolvedAt != nil {
		view["resolved_at"] = alert.ResolvedAt
	}
	if alert.ResolvedBy != nil {
		view["resolved_by"] = alert.ResolvedBy
	}
	return view
}
