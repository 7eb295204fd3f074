package model

import (
	"time"

	"gorm.io/gorm"
)

// Company represents a pharmaceutical company account that may own catalog
// records. Account lifecycle (registration, deletion) is handled by the
// identity service; this service only reads companies to validate that a
// request targets a real one.
type Company struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	Name         string         `json:"name" gorm:"type:varchar(100);index;not null"`
	ContactEmail string         `json:"contact_email" gorm:"type:varchar(100)"`
	Location     string         `json:"location" gorm:"type:varchar(255)"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`
}
