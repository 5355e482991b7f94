package db

import (
	"github.com/terraincognita07/staffpulse/internal/models"
	"gorm.io/gorm"
)

type CompanyRepository struct {
	database *gorm.DB
}

func NewCompanyRepository(database *gorm.DB) *CompanyRepository {
	return &CompanyRepository{database: database}
}

func (repo *CompanyRepository) FindByID(companyID uint) (models.Company, error) {
	var company models.Company
	if err := repo.database.First(&company, companyID).Error; err != nil {
		return models.Company{}, err
	}
	return company, nil
}

func (repo *CompanyRepository) ExistsBySlug(slug string) (bool, error) {
	var matched int64
	if err := repo.database.Model(&models.Company{}).
		Where("slug = ?", slug).
		Count(&matched).Error; err != nil {
		return false, err
	}
	return matched > 0, nil
}

func (repo *CompanyRepository) Create(company *models.Company) error {
	return repo.database.Create(company).Error
}
