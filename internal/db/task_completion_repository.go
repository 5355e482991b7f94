package db

import (
	"github.com/terraincognita07/staffpulse/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TaskCompletionRepository struct {
	database *gorm.DB
}

func NewTaskCompletionRepository(database *gorm.DB) *TaskCompletionRepository {
	return &TaskCompletionRepository{database: database}
}

func (repo *TaskCompletionRepository) FindByTaskUserPeriod(taskID uint, userID uint, periodKey string) (models.TaskCompletion, bool, error) {
	var completion models.TaskCompletion
	result := repo.database.
		Where("task_id = ? AND user_id = ? AND period_key = ?", taskID, userID, periodKey).
		Limit(1).
		Find(&completion)
	if result.Error != nil {
		return models.TaskCompletion{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.TaskCompletion{}, false, nil
	}
	return completion, true, nil
}

// CreateIfAbsent inserts the completion unless the (task, user, period)
// row already exists. A concurrent duplicate insert is absorbed by the
// unique index instead of surfacing as an error.
func (repo *TaskCompletionRepository) CreateIfAbsent(completion *models.TaskCompletion) (bool, error) {
	result := repo.database.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "task_id"}, {Name: "user_id"}, {Name: "period_key"}},
		DoNothing: true,
	}).Create(completion)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (repo *TaskCompletionRepository) DeleteByTaskUserPeriod(taskID uint, userID uint, periodKey string) error {
	return repo.database.
		Where("task_id = ? AND user_id = ? AND period_key = ?", taskID, userID, periodKey).
		Delete(&models.TaskCompletion{}).Error
}

// CountByTasksUserPeriod counts distinct completed tasks: the unique index
// guarantees at most one row per (task, user, period).
func (repo *TaskCompletionRepository) CountByTasksUserPeriod(taskIDs []uint, userID uint, periodKey string) (int64, error) {
	if len(taskIDs) == 0 {
		return 0, nil
	}
	var count int64
	if err := repo.database.Model(&models.TaskCompletion{}).
		Where("task_id IN ? AND user_id = ? AND period_key = ?", taskIDs, userID, periodKey).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (repo *TaskCompletionRepository) ListByTasksUserPeriod(taskIDs []uint, userID uint, periodKey string) ([]models.TaskCompletion, error) {
	if len(taskIDs) == 0 {
		return []models.TaskCompletion{}, nil
	}
	completions := make([]models.TaskCompletion, 0)
	if err := repo.database.
		Where("task_id IN ? AND user_id = ? AND period_key = ?", taskIDs, userID, periodKey).
		Find(&completions).Error; err != nil {
		return nil, err
	}
	return completions, nil
}

func (repo *TaskCompletionRepository) CountByCompany(companyID uint) (int64, error) {
	var count int64
	if err := repo.database.Model(&models.TaskCompletion{}).
		Joins("JOIN checklist_tasks ON checklist_tasks.id = task_completions.task_id").
		Joins("JOIN checklists ON checklists.id = checklist_tasks.checklist_id").
		Where("checklists.company_id = ?", companyID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
