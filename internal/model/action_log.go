package model

import "time"

// ActionLog is one audit trail entry: who did what, with free-form detail.
type ActionLog struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	Action    string    `json:"action" gorm:"type:varchar(100);index;not null"`
	Details   string    `json:"details" gorm:"type:text"`
	Username  string    `json:"username" gorm:"type:varchar(100);index"`
	UserID    uint      `json:"user_id" gorm:"index"`
	Timestamp time.Time `json:"timestamp"`
}
