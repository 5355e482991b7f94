package services

import (
	"errors"
	"strings"
	"time"

	"github.com/terraincognita07/staffpulse/internal/models"
)

var (
	ErrChecklistTitleRequired = errors.New("checklist title required")
	ErrTaskTitleRequired      = errors.New("task title required")
	ErrInvalidPoints          = errors.New("points per completion must be positive")
	ErrFrequencyLocked        = errors.New("frequency locked after completions exist")
	ErrChecklistSaveFailed    = errors.New("save checklist failed")
	ErrChecklistLoadFailed    = errors.New("load checklist failed")
)

type ChecklistStore interface {
	FindByID(checklistID uint) (models.Checklist, error)
	ListByCompany(companyID uint, activeOnly bool) ([]models.Checklist, error)
	Create(checklist *models.Checklist) error
	Save(checklist *models.Checklist) error
	CountCompletions(checklistID uint) (int64, error)
	DeleteWithHistory(checklistID uint) error
}

type ChecklistTaskStore interface {
	ListByChecklist(checklistID uint) ([]models.ChecklistTask, error)
	ListActiveByChecklist(checklistID uint) ([]models.ChecklistTask, error)
	MaxSortOrder(checklistID uint) (int, error)
	Create(task *models.ChecklistTask) error
	Save(task *models.ChecklistTask) error
	DeleteWithCompletions(taskID uint) error
}

type ChecklistService struct {
	checklists ChecklistStore
	tasks      ChecklistTaskStore
	tracker    *CompletionService
	overdue    *OverdueService
}

func NewChecklistService(checklists ChecklistStore, tasks ChecklistTaskStore, tracker *CompletionService, overdue *OverdueService) *ChecklistService {
	return &ChecklistService{
		checklists: checklists,
		tasks:      tasks,
		tracker:    tracker,
		overdue:    overdue,
	}
}

// AppliesTo implements the assignment rule: an empty assignment set makes
// the checklist global to the company, otherwise membership is explicit.
func AppliesTo(checklist models.Checklist, userID uint) bool {
	if len(checklist.AssignedUserIDs) == 0 {
		return true
	}
	for _, assignedID := range checklist.AssignedUserIDs {
		if assignedID == userID {
			return true
		}
	}
	return false
}

type ChecklistInput struct {
	Title               string
	Description         string
	Frequency           string
	PointsPerCompletion int
	SortOrder           int
	IsActive            bool
	AssignedUserIDs     []uint
}

func (service *ChecklistService) CreateChecklist(companyID uint, input ChecklistInput) (models.Checklist, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return models.Checklist{}, ErrChecklistTitleRequired
	}
	points := input.PointsPerCompletion
	if points == 0 {
		points = 10
	}
	if points < 0 {
		return models.Checklist{}, ErrInvalidPoints
	}

	checklist := models.Checklist{
		CompanyID:           companyID,
		Title:               title,
		Description:         strings.TrimSpace(input.Description),
		Frequency:           NormalizeFrequency(input.Frequency),
		IsActive:            input.IsActive,
		SortOrder:           input.SortOrder,
		PointsPerCompletion: points,
		AssignedUserIDs:     input.AssignedUserIDs,
	}
	if err := service.checklists.Create(&checklist); err != nil {
		return models.Checklist{}, ErrChecklistSaveFailed
	}
	return checklist, nil
}

// UpdateChecklist refuses frequency changes once completions exist:
// recorded period keys were derived under the old frequency and a silent
// switch would fragment that history.
func (service *ChecklistService) UpdateChecklist(checklist models.Checklist, input ChecklistInput) (models.Checklist, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return models.Checklist{}, ErrChecklistTitleRequired
	}
	if input.PointsPerCompletion <= 0 {
		return models.Checklist{}, ErrInvalidPoints
	}

	newFrequency := NormalizeFrequency(input.Frequency)
	if newFrequency != checklist.Frequency {
		recorded, err := service.checklists.CountCompletions(checklist.ID)
		if err != nil {
			return models.Checklist{}, ErrChecklistLoadFailed
		}
		if recorded > 0 {
			return models.Checklist{}, ErrFrequencyLocked
		}
	}

	checklist.Title = title
	checklist.Description = strings.TrimSpace(input.Description)
	checklist.Frequency = newFrequency
	checklist.IsActive = input.IsActive
	checklist.SortOrder = input.SortOrder
	checklist.PointsPerCompletion = input.PointsPerCompletion
	checklist.AssignedUserIDs = input.AssignedUserIDs

	if err := service.checklists.Save(&checklist); err != nil {
		return models.Checklist{}, ErrChecklistSaveFailed
	}
	return checklist, nil
}

func (service *ChecklistService) DeleteChecklist(checklistID uint) error {
	if err := service.checklists.DeleteWithHistory(checklistID); err != nil {
		return ErrChecklistSaveFailed
	}
	return nil
}

type TaskInput struct {
	Title       string
	Description string
	IsActive    bool
	IsRequired  bool
}

// CreateTask appends the task at the end of the checklist's ordering.
func (service *ChecklistService) CreateTask(checklist models.Checklist, input TaskInput) (models.ChecklistTask, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return models.ChecklistTask{}, ErrTaskTitleRequired
	}

	maxOrder, err := service.tasks.MaxSortOrder(checklist.ID)
	if err != nil {
		return models.ChecklistTask{}, ErrChecklistLoadFailed
	}

	task := models.ChecklistTask{
		ChecklistID: checklist.ID,
		Title:       title,
		Description: strings.TrimSpace(input.Description),
		IsActive:    input.IsActive,
		IsRequired:  input.IsRequired,
		SortOrder:   maxOrder + 1,
	}
	if err := service.tasks.Create(&task); err != nil {
		return models.ChecklistTask{}, ErrChecklistSaveFailed
	}
	return task, nil
}

func (service *ChecklistService) UpdateTask(task models.ChecklistTask, input TaskInput) (models.ChecklistTask, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return models.ChecklistTask{}, ErrTaskTitleRequired
	}

	task.Title = title
	task.Description = strings.TrimSpace(input.Description)
	task.IsActive = input.IsActive
	task.IsRequired = input.IsRequired

	if err := service.tasks.Save(&task); err != nil {
		return models.ChecklistTask{}, ErrChecklistSaveFailed
	}
	return task, nil
}

func (service *ChecklistService) DeleteTask(taskID uint) error {
	if err := service.tasks.DeleteWithCompletions(taskID); err != nil {
		return ErrChecklistSaveFailed
	}
	return nil
}

type ChecklistStatus struct {
	Checklist     models.Checklist
	PeriodKey     string
	PeriodDisplay string
	Progress      float64
	Completed     bool
	Overdue       bool
}

// StatusForUser assembles the per-user view of one checklist for the
// period containing now.
func (service *ChecklistService) StatusForUser(checklist models.Checklist, userID uint, now time.Time, location *time.Location) (ChecklistStatus, error) {
	day := DateAtLocation(now, location)
	periodKey := PeriodKey(checklist.Frequency, day)

	progress, err := service.tracker.Progress(checklist, userID, periodKey)
	if err != nil {
		return ChecklistStatus{}, err
	}

	overdue, err := service.overdue.IsOverdue(checklist, userID, now, location)
	if err != nil {
		return ChecklistStatus{}, err
	}

	return ChecklistStatus{
		Checklist:     checklist,
		PeriodKey:     periodKey,
		PeriodDisplay: PeriodDisplay(checklist.Frequency, day),
		Progress:      progress,
		Completed:     progress == 100,
		Overdue:       overdue,
	}, nil
}

// ListForUser returns the statuses of every active checklist that applies
// to the user, in catalog order.
func (service *ChecklistService) ListForUser(user models.User, now time.Time, location *time.Location) ([]ChecklistStatus, error) {
	checklists, err := service.checklists.ListByCompany(user.CompanyID, true)
	if err != nil {
		return nil, ErrChecklistLoadFailed
	}

	statuses := make([]ChecklistStatus, 0, len(checklists))
	for _, checklist := range checklists {
		if !AppliesTo(checklist, user.ID) {
			continue
		}
		status, err := service.StatusForUser(checklist, user.ID, now, location)
		if err != nil {
			return nil, err
		}
		statuses = append(statuses, status)
	}
	return statuses, nil
}
