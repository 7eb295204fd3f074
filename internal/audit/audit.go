// Package audit records what happened and who did it. Recording is
// fire-and-forget: callers never depend on the result, and a failed write
// only produces a log line.
package audit

import (
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"medicine-service/internal/model"
)

// Recorder accepts audit events.
type Recorder interface {
	Record(action, details, username string, userID uint)
}

type dbRecorder struct {
	db  *gorm.DB
	log *zap.Logger
}

// NewRecorder returns a Recorder that appends ActionLog rows.
func NewRecorder(db *gorm.DB, log *zap.Logger) Recorder {
	return &dbRecorder{db: db, log: log}
}

func (r *dbRecorder) Record(action, details, username string, userID uint) {
	entry := model.ActionLog{
		Action:    action,
		Details:   details,
		Username:  username,
		UserID:    userID,
		Timestamp: time.Now(),
	}
	if err := r.db.Create(&entry).Error; err != nil {
		r.log.Warn("Failed to save action log",
			zap.String("action", action),
			zap.Error(err))
	}
}

// Nop discards every event. Useful where no audit trail is wanted.
type Nop struct{}

func (Nop) Record(action, details, username string, userID uint) {}
