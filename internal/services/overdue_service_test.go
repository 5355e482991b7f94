package services

import (
	"errors"
	"testing"
	"time"

	"github.com/terraincognita07/staffpulse/internal/models"
)

type overdueFixture struct {
	overdue     *OverdueService
	tracker     *CompletionService
	completions *taskCompletionRepositoryStub
	tasks       *checklistTaskRepositoryStub
}

func newOverdueFixture(tasks *checklistTaskRepositoryStub) overdueFixture {
	completions := newTaskCompletionRepositoryStub()
	tracker := NewCompletionService(tasks, completions, NewRewardService(newCompletionLedgerStub(), newPointsAccountStub()))
	return overdueFixture{
		overdue:     NewOverdueService(tracker, tasks, completions),
		tracker:     tracker,
		completions: completions,
		tasks:       tasks,
	}
}

func (fixture overdueFixture) markCompleted(taskID uint, userID uint, periodKey string) {
	fixture.completions.entries[taskCompletionKey(taskID, userID, periodKey)] = models.TaskCompletion{
		ID: taskID, TaskID: taskID, UserID: userID, PeriodKey: periodKey,
	}
}

func TestIsOverdueFlagsMissedRequiredTasks(t *testing.T) {
	checklist := models.Checklist{ID: 1, Frequency: models.FrequencyDaily}
	task := models.ChecklistTask{ID: 1, ChecklistID: 1, IsActive: true, IsRequired: true}
	fixture := newOverdueFixture(newChecklistTaskRepositoryStub(task))

	now := time.Date(2026, time.August, 24, 10, 0, 0, 0, time.UTC)
	overdue, err := fixture.overdue.IsOverdue(checklist, 7, now, time.UTC)
	if err != nil {
		t.Fatalf("IsOverdue() unexpected error: %v", err)
	}
	if !overdue {
		t.Fatalf("expected overdue with nothing completed yesterday")
	}
}

func TestIsOverdueClearedByCurrentPeriodCompletion(t *testing.T) {
	checklist := models.Checklist{ID: 1, Frequency: models.FrequencyDaily}
	task := models.ChecklistTask{ID: 1, ChecklistID: 1, IsActive: true, IsRequired: true}
	fixture := newOverdueFixture(newChecklistTaskRepositoryStub(task))

	fixture.markCompleted(1, 7, "2026-08-24")

	now := time.Date(2026, time.August, 24, 10, 0, 0, 0, time.UTC)
	overdue, err := fixture.overdue.IsOverdue(checklist, 7, now, time.UTC)
	if err != nil {
		t.Fatalf("IsOverdue() unexpected error: %v", err)
	}
	if overdue {
		t.Fatalf("expected completing the current period to clear the flag")
	}
}

func TestIsOverdueFalseWhenPreviousPeriodSatisfied(t *testing.T) {
	checklist := models.Checklist{ID: 1, Frequency: models.FrequencyDaily}
	task := models.ChecklistTask{ID: 1, ChecklistID: 1, IsActive: true, IsRequired: true}
	fixture := newOverdueFixture(newChecklistTaskRepositoryStub(task))

	fixture.markCompleted(1, 7, "2026-08-23")

	now := time.Date(2026, time.August, 24, 10, 0, 0, 0, time.UTC)
	overdue, err := fixture.overdue.IsOverdue(checklist, 7, now, time.UTC)
	if err != nil {
		t.Fatalf("IsOverdue() unexpected error: %v", err)
	}
	if overdue {
		t.Fatalf("expected no overdue when the previous period was satisfied")
	}
}

func TestIsOverdueIgnoresOptionalTasks(t *testing.T) {
	checklist := models.Checklist{ID: 1, Frequency: models.FrequencyWeekly}
	required := models.ChecklistTask{ID: 1, ChecklistID: 1, IsActive: true, IsRequired: true}
	optional := models.ChecklistTask{ID: 2, ChecklistID: 1, IsActive: true, IsRequired: false}
	fixture := newOverdueFixture(newChecklistTaskRepositoryStub(required, optional))

	// Week 35 runs, week 34 had the required task done but not the optional.
	fixture.markCompleted(1, 7, "2026-W34")

	now := time.Date(2026, time.August, 24, 10, 0, 0, 0, time.UTC)
	overdue, err := fixture.overdue.IsOverdue(checklist, 7, now, time.UTC)
	if err != nil {
		t.Fatalf("IsOverdue() unexpected error: %v", err)
	}
	if overdue {
		t.Fatalf("expected an unfinished optional task to leave the flag off")
	}
}

func TestIsOverdueFalseWithoutRequiredTasks(t *testing.T) {
	checklist := models.Checklist{ID: 1, Frequency: models.FrequencyDaily}
	optional := models.ChecklistTask{ID: 1, ChecklistID: 1, IsActive: true, IsRequired: false}
	fixture := newOverdueFixture(newChecklistTaskRepositoryStub(optional))

	now := time.Date(2026, time.August, 24, 10, 0, 0, 0, time.UTC)
	overdue, err := fixture.overdue.IsOverdue(checklist, 7, now, time.UTC)
	if err != nil {
		t.Fatalf("IsOverdue() unexpected error: %v", err)
	}
	if overdue {
		t.Fatalf("expected a checklist without required tasks never to be overdue")
	}
}

func TestIsOverdueLooksBackOnePeriodOnly(t *testing.T) {
	checklist := models.Checklist{ID: 1, Frequency: models.FrequencyDaily}
	task := models.ChecklistTask{ID: 1, ChecklistID: 1, IsActive: true, IsRequired: true}
	fixture := newOverdueFixture(newChecklistTaskRepositoryStub(task))

	// Two days ago was missed, yesterday was done. Only yesterday counts.
	fixture.markCompleted(1, 7, "2026-08-23")

	now := time.Date(2026, time.August, 24, 10, 0, 0, 0, time.UTC)
	overdue, err := fixture.overdue.IsOverdue(checklist, 7, now, time.UTC)
	if err != nil {
		t.Fatalf("IsOverdue() unexpected error: %v", err)
	}
	if overdue {
		t.Fatalf("expected older gaps to be out of scope")
	}
}

func TestIsOverdueReturnsTypedLoadError(t *testing.T) {
	checklist := models.Checklist{ID: 1, Frequency: models.FrequencyDaily}
	task := models.ChecklistTask{ID: 1, ChecklistID: 1, IsActive: true, IsRequired: true}
	fixture := newOverdueFixture(newChecklistTaskRepositoryStub(task))
	fixture.completions.countErr = errors.New("count failed")

	_, err := fixture.overdue.IsOverdue(checklist, 7, time.Date(2026, time.August, 24, 0, 0, 0, 0, time.UTC), time.UTC)
	if !errors.Is(err, ErrOverdueLoadFailed) {
		t.Fatalf("expected ErrOverdueLoadFailed, got %v", err)
	}
}
