package model

import (
	"time"

	"gorm.io/gorm"
)

// Medicine represents one entry of the shared medicine catalog.
//
// CompanyID is the owning pharmaceutical company. A nil CompanyID marks a
// system-owned record: part of the baseline dataset, readable by everyone
// and never updated or deleted through company-facing operations. Name
// uniqueness across {system records, each company's records} is enforced in
// the catalog service, not by a database constraint, so queries by name must
// tolerate multiple rows.
type Medicine struct {
	ID          uint           `json:"id" gorm:"primarykey"`
	Name        string         `json:"name" gorm:"type:varchar(255);index;not null"`
	Substitute0 string         `json:"substitute0" gorm:"type:varchar(1000)"`
	Substitute1 string         `json:"substitute1" gorm:"type:varchar(1000)"`
	Use0        string         `json:"use0" gorm:"type:varchar(1000)"`
	Use1        string         `json:"use1" gorm:"type:varchar(1000)"`
	Use2        string         `json:"use2" gorm:"type:varchar(1000)"`
	SideEffect0 string         `json:"sideeffect0" gorm:"type:varchar(1000)"`
	SideEffect1 string         `json:"sideeffect1" gorm:"type:varchar(1000)"`
	SideEffect2 string         `json:"sideeffect2" gorm:"type:varchar(1000)"`
	CompanyID   *uint          `json:"company_id,omitempty" gorm:"index"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

// SystemOwned reports whether the record belongs to the application dataset
// rather than to a company.
func (m *Medicine) SystemOwned() bool {
	return m.CompanyID == nil
}

// OwnedBy reports whether the record is owned by the given company.
func (m *Medicine) OwnedBy(companyID uint) bool {
	return m.CompanyID != nil && *m.CompanyID == companyID
}
