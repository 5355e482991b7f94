package db

import (
	"github.com/terraincognita07/staffpulse/internal/models"
	"gorm.io/gorm"
)

type UserRepository struct {
	database *gorm.DB
}

func NewUserRepository(database *gorm.DB) *UserRepository {
	return &UserRepository{database: database}
}

func (repo *UserRepository) FindByID(userID uint) (models.User, error) {
	var user models.User
	if err := repo.database.First(&user, userID).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (repo *UserRepository) FindByNormalizedEmail(email string) (models.User, error) {
	var user models.User
	if err := repo.database.Where("lower(trim(email)) = ?", email).First(&user).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (repo *UserRepository) ExistsByNormalizedEmail(email string) (bool, error) {
	var matched int64
	if err := repo.database.Model(&models.User{}).
		Where("lower(trim(email)) = ?", email).
		Count(&matched).Error; err != nil {
		return false, err
	}
	return matched > 0, nil
}

func (repo *UserRepository) Create(user *models.User) error {
	return repo.database.Create(user).Error
}

func (repo *UserRepository) ListActiveByCompany(companyID uint) ([]models.User, error) {
	users := make([]models.User, 0)
	if err := repo.database.
		Where("company_id = ? AND is_active = ?", companyID, true).
		Order("display_name ASC, id ASC").
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// AddPoints increments the gamification counter in SQL so concurrent
// rewards for different checklists never lose an update.
func (repo *UserRepository) AddPoints(userID uint, points int) error {
	return repo.database.Model(&models.User{}).
		Where("id = ?", userID).
		Update("total_points", gorm.Expr("total_points + ?", points)).Error
}

func (repo *UserRepository) ListByCompanyOrderedByPoints(companyID uint, limit int) ([]models.User, error) {
	users := make([]models.User, 0)
	query := repo.database.
		Where("company_id = ? AND is_active = ?", companyID, true).
		Order("total_points DESC, display_name ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
