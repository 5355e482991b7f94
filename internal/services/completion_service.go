package services

import (
	"errors"
	"math"
	"time"

	"github.com/terraincognita07/staffpulse/internal/models"
)

var (
	ErrCompletionLoadFailed = errors.New("load completion state failed")
	ErrCompletionSaveFailed = errors.New("save completion state failed")
	ErrProgressLoadFailed   = errors.New("load progress failed")
)

type CompletionTaskSource interface {
	ListActiveByChecklist(checklistID uint) ([]models.ChecklistTask, error)
}

type TaskCompletionStore interface {
	FindByTaskUserPeriod(taskID uint, userID uint, periodKey string) (models.TaskCompletion, bool, error)
	CreateIfAbsent(completion *models.TaskCompletion) (bool, error)
	DeleteByTaskUserPeriod(taskID uint, userID uint, periodKey string) error
	CountByTasksUserPeriod(taskIDs []uint, userID uint, periodKey string) (int64, error)
	ListByTasksUserPeriod(taskIDs []uint, userID uint, periodKey string) ([]models.TaskCompletion, error)
}

type CompletionService struct {
	tasks       CompletionTaskSource
	completions TaskCompletionStore
	rewards     *RewardService
}

func NewCompletionService(tasks CompletionTaskSource, completions TaskCompletionStore, rewards *RewardService) *CompletionService {
	return &CompletionService{
		tasks:       tasks,
		completions: completions,
		rewards:     rewards,
	}
}

type ToggleResult struct {
	Done               bool
	Progress           float64
	ChecklistCompleted bool
	RewardAwarded      bool
	PointsAwarded      int
	PeriodKey          string
}

// ToggleTask flips the completion state of one task for the current
// period. Completing the last active task triggers the one-time reward for
// the (checklist, user, period) triple. The period key is pinned here,
// from the checklist's frequency at this moment.
func (service *CompletionService) ToggleTask(checklist models.Checklist, task models.ChecklistTask, userID uint, notes string, now time.Time, location *time.Location) (ToggleResult, error) {
	day := DateAtLocation(now, location)
	periodKey := PeriodKey(checklist.Frequency, day)

	_, alreadyDone, err := service.completions.FindByTaskUserPeriod(task.ID, userID, periodKey)
	if err != nil {
		return ToggleResult{}, ErrCompletionLoadFailed
	}

	done := false
	if alreadyDone {
		if err := service.completions.DeleteByTaskUserPeriod(task.ID, userID, periodKey); err != nil {
			return ToggleResult{}, ErrCompletionSaveFailed
		}
	} else {
		completion := models.TaskCompletion{
			TaskID:      task.ID,
			UserID:      userID,
			PeriodKey:   periodKey,
			Notes:       notes,
			CompletedAt: now,
		}
		// A concurrent toggle may have inserted the same row; the unique
		// index absorbs it and both callers observe state=complete.
		if _, err := service.completions.CreateIfAbsent(&completion); err != nil {
			return ToggleResult{}, ErrCompletionSaveFailed
		}
		done = true
	}

	progress, err := service.Progress(checklist, userID, periodKey)
	if err != nil {
		return ToggleResult{}, err
	}

	result := ToggleResult{
		Done:               done,
		Progress:           progress,
		ChecklistCompleted: progress == 100,
		PeriodKey:          periodKey,
	}

	if done && result.ChecklistCompleted {
		awarded, points, err := service.rewards.MaybeReward(checklist, userID, periodKey, now)
		if err != nil {
			return ToggleResult{}, err
		}
		result.RewardAwarded = awarded
		result.PointsAwarded = points
	}

	return result, nil
}

// Progress is the share of the checklist's active tasks the user has
// completed in the period, as a percentage rounded to one decimal.
// Optional tasks count too: completion means every active task is done,
// while overdue detection looks at required tasks only.
func (service *CompletionService) Progress(checklist models.Checklist, userID uint, periodKey string) (float64, error) {
	tasks, err := service.tasks.ListActiveByChecklist(checklist.ID)
	if err != nil {
		return 0, ErrProgressLoadFailed
	}
	if len(tasks) == 0 {
		return 100, nil
	}

	completed, err := service.completions.CountByTasksUserPeriod(taskIDs(tasks), userID, periodKey)
	if err != nil {
		return 0, ErrProgressLoadFailed
	}

	return math.Round(float64(completed)/float64(len(tasks))*1000) / 10, nil
}

// IsCompleted compares the rounded progress value against 100 exactly;
// rounding first keeps the comparison free of accumulated float error.
func (service *CompletionService) IsCompleted(checklist models.Checklist, userID uint, periodKey string) (bool, error) {
	progress, err := service.Progress(checklist, userID, periodKey)
	if err != nil {
		return false, err
	}
	return progress == 100, nil
}

// CompletedTaskIDs reports which of the given tasks the user has completed
// in the period.
func (service *CompletionService) CompletedTaskIDs(tasks []models.ChecklistTask, userID uint, periodKey string) (map[uint]bool, error) {
	completions, err := service.completions.ListByTasksUserPeriod(taskIDs(tasks), userID, periodKey)
	if err != nil {
		return nil, ErrCompletionLoadFailed
	}

	completedIDs := make(map[uint]bool, len(completions))
	for _, completion := range completions {
		completedIDs[completion.TaskID] = true
	}
	return completedIDs, nil
}

func taskIDs(tasks []models.ChecklistTask) []uint {
	ids := make([]uint, 0, len(tasks))
	for _, task := range tasks {
		ids = append(ids, task.ID)
	}
	return ids
}
