package db

import (
	"time"

	"github.com/terraincognita07/staffpulse/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AlertRepository struct {
	database *gorm.DB
}

func NewAlertRepository(database *gorm.DB) *AlertRepository {
	return &AlertRepository{database: database}
}

func (repo *AlertRepository) FindByID(alertID uint) (models.ChecklistAlert, error) {
	var alert models.ChecklistAlert
	if err := repo.database.First(&alert, alertID).Error; err != nil {
		return models.ChecklistAlert{}, err
	}
	return alert, nil
}

func (repo *AlertRepository) Exists(alertID uint) (bool, error) {
	var matched int64
	if err := repo.database.Model(&models.ChecklistAlert{}).
		Where("id = ?", alertID).
		Count(&matched).Error; err != nil {
		return false, err
	}
	return matched > 0, nil
}

// CreateIfAbsent inserts the alert unless an identical unresolved one
// already exists, so a double finalize never duplicates alerts.
func (repo *AlertRepository) CreateIfAbsent(alert *models.ChecklistAlert) (bool, error) {
	result := repo.database.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "checklist_id"},
			{Name: "task_id"},
			{Name: "user_id"},
			{Name: "period_key"},
			{Name: "is_resolved"},
		},
		DoNothing: true,
	}).Create(alert)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (repo *AlertRepository) ListByCompany(companyID uint, unresolvedOnly bool) ([]models.ChecklistAlert, error) {
	query := repo.database.Where("company_id = ?", companyID)
	if unresolvedOnly {
		query = query.Where("is_resolved = ?", false)
	}

	alerts := make([]models.ChecklistAlert, 0)
	if err := query.Order("created_at DESC, id DESC").Find(&alerts).Error; err != nil {
		return nil, err
	}
	return alerts, nil
}

func (repo *AlertRepository) CountUnresolvedByCompany(companyID uint) (int64, error) {
	var count int64
	if err := repo.database.Model(&models.ChecklistAlert{}).
		Where("company_id = ? AND is_resolved = ?", companyID, false).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// MarkResolved flips the alert to resolved only if it is still unresolved.
// Returns whether this call performed the transition; a false result with
// no error means the alert was already resolved or does not exist.
func (repo *AlertRepository) MarkResolved(alertID uint, resolverID uint, resolvedAt time.Time) (bool, error) {
	result := repo.database.Model(&models.ChecklistAlert{}).
		Where("id = ? AND is_resolved = ?", alertID, false).
		Updates(map[string]any{
			"is_resolved": true,
			"resolved_at": resolvedAt,
			"resolved_by": resolverID,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
