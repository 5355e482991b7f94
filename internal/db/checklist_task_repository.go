package db

import (
	"github.com/terraincognita07/staffpulse/internal/models"
	"gorm.io/gorm"
)

type ChecklistTaskRepository struct {
	database *gorm.DB
}

func NewChecklistTaskRepository(database *gorm.DB) *ChecklistTaskRepository {
	return &ChecklistTaskRepository{database: database}
}

func (repo *ChecklistTaskRepository) FindByID(taskID uint) (models.ChecklistTask, error) {
	var task models.ChecklistTask
	if err := repo.database.First(&task, taskID).Error; err != nil {
		return models.ChecklistTask{}, err
	}
	return task, nil
}

func (repo *ChecklistTaskRepository) ListByChecklist(checklistID uint) ([]models.ChecklistTask, error) {
	tasks := make([]models.ChecklistTask, 0)
	if err := repo.database.
		Where("checklist_id = ?", checklistID).
		Order("sort_order ASC, id ASC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (repo *ChecklistTaskRepository) ListActiveByChecklist(checklistID uint) ([]models.ChecklistTask, error) {
	tasks := make([]models.ChecklistTask, 0)
	if err := repo.database.
		Where("checklist_id = ? AND is_active = ?", checklistID, true).
		Order("sort_order ASC, id ASC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (repo *ChecklistTaskRepository) ListRequiredActiveByChecklist(checklistID uint) ([]models.ChecklistTask, error) {
	tasks := make([]models.ChecklistTask, 0)
	if err := repo.database.
		Where("checklist_id = ? AND is_active = ? AND is_required = ?", checklistID, true, true).
		Order("sort_order ASC, id ASC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (repo *ChecklistTaskRepository) MaxSortOrder(checklistID uint) (int, error) {
	var maxOrder *int
	if err := repo.database.Model(&models.ChecklistTask{}).
		Where("checklist_id = ?", checklistID).
		Select("MAX(sort_order)").
		Scan(&maxOrder).Error; err != nil {
		return 0, err
	}
	if maxOrder == nil {
		return 0, nil
	}
	return *maxOrder, nil
}

func (repo *ChecklistTaskRepository) Create(task *models.ChecklistTask) error {
	return repo.database.Create(task).Error
}

func (repo *ChecklistTaskRepository) Save(task *models.ChecklistTask) error {
	return repo.database.Save(task).Error
}

// DeleteWithCompletions removes the task and its completion history in one
// transaction, the application-side equivalent of ON DELETE CASCADE.
func (repo *ChecklistTaskRepository) DeleteWithCompletions(taskID uint) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", taskID).Delete(&models.TaskCompletion{}).Error; err != nil {
			return err
		}
		if err := tx.Where("task_id = ?", taskID).Delete(&models.ChecklistAlert{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.ChecklistTask{}, taskID).Error
	})
}
