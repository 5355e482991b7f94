package services

import (
	"errors"
	"time"

	"github.com/terraincognita07/staffpulse/internal/models"
)

var (
	ErrAlertNotFound        = errors.New("alert not found")
	ErrAlertAlreadyResolved = errors.New("alert already resolved")
	ErrAlertSaveFailed      = errors.New("save alert failed")
	ErrAlertLoadFailed      = errors.New("load alert failed")
)

type AlertStore interface {
	CreateIfAbsent(alert *models.ChecklistAlert) (bool, error)
	Exists(alertID uint) (bool, error)
	MarkResolved(alertID uint, resolverID uint, resolvedAt time.Time) (bool, error)
}

type AlertTaskSource interface {
	ListRequiredActiveByChecklist(checklistID uint) ([]models.ChecklistTask, error)
}

type AlertService struct {
	alerts  AlertStore
	tasks   AlertTaskSource
	tracker *CompletionService
}

func NewAlertService(alerts AlertStore, tasks AlertTaskSource, tracker *CompletionService) *AlertService {
	return &AlertService{
		alerts:  alerts,
		tasks:   tasks,
		tracker: tracker,
	}
}

type FinalizeResult struct {
	PeriodKey     string
	TotalMissing  int
	AlertsCreated int
}

// FinalizeWithAlerts records one alert per required task the user left
// pending in the current period. Re-finalizing the same gap set (double
// submit included) creates nothing new; the alert identity index absorbs
// duplicates. With no missing required tasks this is a no-op success.
func (service *AlertService) FinalizeWithAlerts(checklist models.Checklist, userID uint, now time.Time, location *time.Location) (FinalizeResult, error) {
	day := DateAtLocation(now, location)
	periodKey := PeriodKey(checklist.Frequency, day)

	required, err := service.tasks.ListRequiredActiveByChecklist(checklist.ID)
	if err != nil {
		return FinalizeResult{}, ErrAlertLoadFailed
	}

	completedIDs, err := service.tracker.CompletedTaskIDs(required, userID, periodKey)
	if err != nil {
		return FinalizeResult{}, ErrAlertLoadFailed
	}

	result := FinalizeResult{PeriodKey: periodKey}
	for _, task := range required {
		if completedIDs[task.ID] {
			continue
		}
		result.TotalMissing++

		alert := models.ChecklistAlert{
			CompanyID:   checklist.CompanyID,
			ChecklistID: checklist.ID,
			TaskID:      task.ID,
			UserID:      userID,
			PeriodKey:   periodKey,
			CreatedAt:   now,
		}
		created, err := service.alerts.CreateIfAbsent(&alert)
		if err != nil {
			return FinalizeResult{}, ErrAlertSaveFailed
		}
		if created {
			result.AlertsCreated++
		}
	}

	return result, nil
}

// Resolve transitions an alert from unresolved to resolved exactly once.
// Resolving an already-resolved alert is a conflict, not a silent success,
// and leaves the original resolution untouched.
func (service *AlertService) Resolve(alertID uint, resolver models.User, now time.Time) error {
	resolved, err := service.alerts.MarkResolved(alertID, resolver.ID, now)
	if err != nil {
		return ErrAlertSaveFailed
	}
	if resolved {
		return nil
	}

	exists, err := service.alerts.Exists(alertID)
	if err != nil {
		return ErrAlertLoadFailed
	}
	if !exists {
		return ErrAlertNotFound
	}
	return ErrAlertAlreadyResolved
}
