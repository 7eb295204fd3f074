package repository

import (
	"errors"

	"gorm.io/gorm"

	"medicine-service/internal/catalog"
	"medicine-service/internal/model"
)

// MedicineRepository is the gorm-backed catalog store. Name lookups go
// through LOWER(name) comparisons; there is deliberately no unique index on
// the name column, so FindByNameIgnoreCase can return several rows.
type MedicineRepository struct {
	db *gorm.DB
}

var _ catalog.Store = (*MedicineRepository)(nil)

func NewMedicineRepository(db *gorm.DB) *MedicineRepository {
	return &MedicineRepository{db: db}
}

func (r *MedicineRepository) FindByID(id uint) (*model.Medicine, error) {
	var medicine model.Medicine
	result := r.db.First(&medicine, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &medicine, nil
}

func (r *MedicineRepository) FindByNameIgnoreCase(name string) ([]model.Medicine, error) {
	var medicines []model.Medicine
	result := r.db.Where("LOWER(name) = LOWER(?)", name).Order("id").Find(&medicines)
	if result.Error != nil {
		return nil, result.Error
	}
	return medicines, nil
}

func (r *MedicineRepository) FindByCompany(companyID uint) ([]model.Medicine, error) {
	var medicines []model.Medicine
	result := r.db.Where("company_id = ?", companyID).Order("id").Find(&medicines)
	if result.Error != nil {
		return nil, result.Error
	}
	return medicines, nil
}

func (r *MedicineRepository) FindByCompanyAndID(companyID, id uint) (*model.Medicine, error) {
	var medicine model.Medicine
	result := r.db.Where("id = ? AND company_id = ?", id, companyID).First(&medicine)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &medicine, nil
}

func (r *MedicineRepository) SearchByNamePrefix(prefix string) ([]model.Medicine, error) {
	var medicines []model.Medicine
	result := r.db.Where("LOWER(name) LIKE LOWER(?)", prefix+"%").Order("id").Find(&medicines)
	if result.Error != nil {
		return nil, result.Error
	}
	return medicines, nil
}

// ExistsByNameExcludingCompany treats records with no owning company as
// owned by "someone else": the application dataset blocks every company.
func (r *MedicineRepository) ExistsByNameExcludingCompany(name string, companyID uint, excludeID uint) (bool, error) {
	query := r.db.Model(&model.Medicine{}).
		Where("LOWER(name) = LOWER(?)", name).
		Where("(company_id IS NULL OR company_id <> ?)", companyID)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if result := query.Count(&count); result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}

func (r *MedicineRepository) Count() (int64, error) {
	var count int64
	if result := r.db.Model(&model.Medicine{}).Count(&count); result.Error != nil {
		return 0, result.Error
	}
	return count, nil
}

func (r *MedicineRepository) Create(m *model.Medicine) error {
	return r.db.Create(m).Error
}

func (r *MedicineRepository) Save(m *model.Medicine) error {
	return r.db.Save(m).Error
}

func (r *MedicineRepository) Delete(id uint) error {
	return r.db.Delete(&model.Medicine{}, id).Error
}
