package db

import (
	"github.com/terraincognita07/staffpulse/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ChecklistCompletionRepository struct {
	database *gorm.DB
}

func NewChecklistCompletionRepository(database *gorm.DB) *ChecklistCompletionRepository {
	return &ChecklistCompletionRepository{database: database}
}

// CreateIfAbsent inserts the completion fact unless one already exists for
// the (checklist, user, period) key. Returns whether this call created the
// row, which is what gates the one-time point grant.
func (repo *ChecklistCompletionRepository) CreateIfAbsent(completion *models.ChecklistCompletion) (bool, error) {
	result := repo.database.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "checklist_id"}, {Name: "user_id"}, {Name: "period_key"}},
		DoNothing: true,
	}).Create(completion)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (repo *ChecklistCompletionRepository) Exists(checklistID uint, userID uint, periodKey string) (bool, error) {
	var matched int64
	if err := repo.database.Model(&models.ChecklistCompletion{}).
		Where("checklist_id = ? AND user_id = ? AND period_key = ?", checklistID, userID, periodKey).
		Count(&matched).Error; err != nil {
		return false, err
	}
	return matched > 0, nil
}

func (repo *ChecklistCompletionRepository) ListByUser(userID uint) ([]models.ChecklistCompletion, error) {
	completions := make([]models.ChecklistCompletion, 0)
	if err := repo.database.
		Where("user_id = ?", userID).
		Order("completed_at DESC, id DESC").
		Find(&completions).Error; err != nil {
		return nil, err
	}
	return completions, nil
}

func (repo *ChecklistCompletionRepository) CountByCompany(companyID uint) (int64, error) {
	var count int64
	if err := repo.database.Model(&models.ChecklistCompletion{}).
		Joins("JOIN checklists ON checklists.id = checklist_completions.checklist_id").
		Where("checklists.company_id = ?", companyID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (repo *ChecklistCompletionRepository) SumPointsByCompany(companyID uint) (int64, error) {
	var total *int64
	if err := repo.database.Model(&models.ChecklistCompletion{}).
		Joins("JOIN checklists ON checklists.id = checklist_completions.checklist_id").
		Where("checklists.company_id = ?", companyID).
		Select("SUM(checklist_completions.points_earned)").
		Scan(&total).Error; err != nil {
		return 0, err
	}
	if total == nil {
		return 0, nil
	}
	return *total, nil
}
