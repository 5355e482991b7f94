package services

import (
	"errors"

	"github.com/terraincognita07/staffpulse/internal/models"
)

var ErrReportLoadFailed = errors.New("load report failed")

type ReportCompletionSource interface {
	CountByCompany(companyID uint) (int64, error)
	SumPointsByCompany(companyID uint) (int64, error)
}

type ReportTaskCompletionSource interface {
	CountByCompany(companyID uint) (int64, error)
}

type ReportAlertSource interface {
	CountUnresolvedByCompany(companyID uint) (int64, error)
}

type ReportUserSource interface {
	ListByCompanyOrderedByPoints(companyID uint, limit int) ([]models.User, error)
}

// ReportService aggregates completion and alert records for manager
// dashboards. It only ever reads; reports run against a replica see an
// eventually-consistent but safe view.
type ReportService struct {
	completions     ReportCompletionSource
	taskCompletions ReportTaskCompletionSource
	alerts          ReportAlertSource
	users           ReportUserSource
}

func NewReportService(completions ReportCompletionSource, taskCompletions ReportTaskCompletionSource, alerts ReportAlertSource, users ReportUserSource) *ReportService {
	return &ReportService{
		completions:     completions,
		taskCompletions: taskCompletions,
		alerts:          alerts,
		users:           users,
	}
}

type LeaderboardEntry struct {
	UserID      uint   `json:"user_id"`
	DisplayName string `json:"display_name"`
	TotalPoints int    `json:"total_points"`
}

type CompanySummary struct {
	TaskCompletions      int64              `json:"task_completions"`
	ChecklistCompletions int64              `json:"checklist_completions"`
	PointsAwarded        int64              `json:"points_awarded"`
	UnresolvedAlerts     int64              `json:"unresolved_alerts"`
	Leaderboard          []LeaderboardEntry `json:"leaderboard"`
}

func (service *ReportService) CompanySummary(companyID uint, leaderboardLimit int) (CompanySummary, error) {
	taskCount, err := service.taskCompletions.CountByCompany(companyID)
	if err != nil {
		return CompanySummary{}, ErrReportLoadFailed
	}
	checklistCount, err := service.completions.CountByCompany(companyID)
	if err != nil {
		return CompanySummary{}, ErrReportLoadFailed
	}
	points, err := service.completions.SumPointsByCompany(companyID)
	if err != nil {
		return CompanySummary{}, ErrReportLoadFailed
	}
	openAlerts, err := service.alerts.CountUnresolvedByCompany(companyID)
	if err != nil {
		return CompanySummary{}, ErrReportLoadFailed
	}
	topUsers, err := service.users.ListByCompanyOrderedByPoints(companyID, leaderboardLimit)
	if err != nil {
		return CompanySummary{}, ErrReportLoadFailed
	}

	leaderboard := make([]LeaderboardEntry, 0, len(topUsers))
	for _, user := range topUsers {
		leaderboard = append(leaderboard, LeaderboardEntry{
			UserID:      user.ID,
			DisplayName: user.DisplayName,
			TotalPoints: user.TotalPoints,
		})
	}

	return CompanySummary{
		TaskCompletions:      taskCount,
		ChecklistCompletions: checklistCount,
		PointsAwarded:        points,
		UnresolvedAlerts:     openAlerts,
		Leaderboard:          leaderboard,
	}, nil
}
