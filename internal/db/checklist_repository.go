package db

import (
	"github.com/terraincognita07/staffpulse/internal/models"
	"gorm.io/gorm"
)

type ChecklistRepository struct {
	database *gorm.DB
}

func NewChecklistRepository(database *gorm.DB) *ChecklistRepository {
	return &ChecklistRepository{database: database}
}

func (repo *ChecklistRepository) FindByID(checklistID uint) (models.Checklist, error) {
	var checklist models.Checklist
	if err := repo.database.First(&checklist, checklistID).Error; err != nil {
		return models.Checklist{}, err
	}
	return checklist, nil
}

func (repo *ChecklistRepository) ListByCompany(companyID uint, activeOnly bool) ([]models.Checklist, error) {
	query := repo.database.Where("company_id = ?", companyID)
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	checklists := make([]models.Checklist, 0)
	if err := query.Order("sort_order ASC, title ASC").Find(&checklists).Error; err != nil {
		return nil, err
	}
	return checklists, nil
}

func (repo *ChecklistRepository) Create(checklist *models.Checklist) error {
	return repo.database.Create(checklist).Error
}

func (repo *ChecklistRepository) Save(checklist *models.Checklist) error {
	return repo.database.Save(checklist).Error
}

func (repo *ChecklistRepository) CountCompletions(checklistID uint) (int64, error) {
	var count int64
	if err := repo.database.Model(&models.TaskCompletion{}).
		Joins("JOIN checklist_tasks ON checklist_tasks.id = task_completions.task_id").
		Where("checklist_tasks.checklist_id = ?", checklistID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// DeleteWithHistory removes the checklist together with its tasks,
// completion records and alerts, mirroring the storage-level cascade.
func (repo *ChecklistRepository) DeleteWithHistory(checklistID uint) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where(
			"task_id IN (?)",
			tx.Model(&models.ChecklistTask{}).Select("id").Where("checklist_id = ?", checklistID),
		).Delete(&models.TaskCompletion{}).Error; err != nil {
			return err
		}
		if err := tx.Where("checklist_id = ?", checklistID).Delete(&models.ChecklistCompletion{}).Error; err != nil {
			return err
		}
		if err := tx.Where("checklist_id = ?", checklistID).Delete(&models.ChecklistAlert{}).Error; err != nil {
			return err
		}
		if err := tx.Where("checklist_id = ?", checklistID).Delete(&models.ChecklistTask{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Checklist{}, checklistID).Error
	})
}
