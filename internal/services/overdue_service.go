package services

import (
	"errors"
	"time"

	"github.com/terraincognita07/staffpulse/internal/models"
)

var ErrOverdueLoadFailed = errors.New("load overdue state failed")

type OverdueTaskSource interface {
	ListRequiredActiveByChecklist(checklistID uint) ([]models.ChecklistTask, error)
}

type OverdueCompletionSource interface {
	CountByTasksUserPeriod(taskIDs []uint, userID uint, periodKey string) (int64, error)
}

// OverdueService classifies a checklist as overdue when required tasks
// from the immediately preceding period were left uncompleted. It never
// scans further back than one period.
type OverdueService struct {
	tracker     *CompletionService
	tasks       OverdueTaskSource
	completions OverdueCompletionSource
}

func NewOverdueService(tracker *CompletionService, tasks OverdueTaskSource, completions OverdueCompletionSource) *OverdueService {
	return &OverdueService{
		tracker:     tracker,
		tasks:       tasks,
		completions: completions,
	}
}

// IsOverdue reports whether the user carries unmet required tasks from the
// previous period. Completing the current period always clears the flag,
// whatever the past looks like. Only required tasks matter here, unlike
// Progress which counts every active task.
func (service *OverdueService) IsOverdue(checklist models.Checklist, userID uint, now time.Time, location *time.Location) (bool, error) {
	day := DateAtLocation(now, location)

	completed, err := service.tracker.IsCompleted(checklist, userID, PeriodKey(checklist.Frequency, day))
	if err != nil {
		return false, ErrOverdueLoadFailed
	}
	if completed {
		return false, nil
	}

	required, err := service.tasks.ListRequiredActiveByChecklist(checklist.ID)
	if err != nil {
		return false, ErrOverdueLoadFailed
	}
	if len(required) == 0 {
		return false, nil
	}

	previousKey := PreviousPeriodKey(checklist.Frequency, day)
	completedCount, err := service.completions.CountByTasksUserPeriod(taskIDs(required), userID, previousKey)
	if err != nil {
		return false, ErrOverdueLoadFailed
	}

	// A checklist created mid-period has no prior-period records and is
	// reported overdue like any other; callers that care can compare the
	// checklist's creation time themselves.
	return completedCount < int64(len(required)), nil
}
