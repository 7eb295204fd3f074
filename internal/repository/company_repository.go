package repository

import (
	"errors"

	"gorm.io/gorm"

	"medicine-service/internal/catalog"
	"medicine-service/internal/model"
)

// CompanyRepository resolves pharmaceutical company ids. The catalog never
// creates or deletes companies; those flows live in the identity service.
type CompanyRepository struct {
	db *gorm.DB
}

var _ catalog.CompanyDirectory = (*CompanyRepository)(nil)

func NewCompanyRepository(db *gorm.DB) *CompanyRepository {
	return &CompanyRepository{db: db}
}

func (r *CompanyRepository) FindByID(id uint) (*model.Company, error) {
	var company model.Company
	result := r.db.First(&company, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &company, nil
}

func (r *CompanyRepository) Exists(id uint) (bool, error) {
	var count int64
	result := r.db.Model(&model.Company{}).Where("id = ?", id).Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}
