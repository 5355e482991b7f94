package api

import (
	"github.com/terraincognita07/staffpulse/internal/db"
	"github.com/terraincognita07/staffpulse/internal/services"
	"gorm.io/gorm"
)

func (handler *Handler) withDependencies(database *gorm.DB) *Handler {
	handler.repositories = db.NewRepositories(database)
	handler.accounts = services.NewAccountService(handler.repositories.Companies, handler.repositories.Users)

	rewards := services.NewRewardService(handler.repositories.ChecklistCompletions, handler.repositories.Users)
	handler.tracker = services.NewCompletionService(handler.repositories.Tasks, handler.repositories.TaskCompletions, rewards)
	handler.overdue = services.NewOverdueService(handler.tracker, handler.repositories.Tasks, handler.repositories.TaskCompletions)
	handler.catalog = services.NewChecklistService(handler.repositories.Checklists, handler.repositories.Tasks, handler.tracker, handler.overdue)
	handler.alerts = services.NewAlertService(handler.repositories.Alerts, handler.repositories.Tasks, handler.tracker)
	handler.reports = services.NewReportService(handler.repositories.ChecklistCompletions, handler.repositories.TaskCompletions, handler.repositories.Alerts, handler.repositories.Users)
	return handler
}

func (handler *Handler) ensureDependencies() {
	if handler.repositories == nil && handler.db != nil {
		handler.withDependencies(handler.db)
	}
	if handler.loginLimiter == nil {
		handler.loginLimiter = newAttemptLimiter()
	}
}
