package models

import (
	"time"

	"gorm.io/gorm"
)

// QueueEntry is one customer's claim on a salon's waiting line.
// At most one waiting entry may exist per (user, salon).
type QueueEntry struct {
	ID        string  `gorm:"type:uuid;primaryKey" json:"id"`
	SalonID   string  `gorm:"type:uuid;not null;index:idx_queue_salon_status,priority:1;uniqueIndex:idx_queue_waiting_salon_user,priority:1,where:status = 'waiting'" json:"salonId"`
	UserID    *string `gorm:"type:uuid;uniqueIndex:idx_queue_waiting_salon_user,priority:2,where:status = 'waiting'" json:"userId"`
	ServiceID string  `gorm:"type:uuid;not null" json:"serviceId"`

	Status   string `gorm:"size:20;not null;default:'waiting';index:idx_queue_salon_status,priority:2" json:"status"`
	Position int    `gorm:"not null" json:"position"`

	JoinedAt    time.Time  `gorm:"not null" json:"joinedAt"`
	CalledAt    *time.Time `json:"calledAt"`
	CompletedAt *time.Time `json:"completedAt"`
}

func (e *QueueEntry) BeforeCreate(*gorm.DB) error {
	ensureID(&e.ID)
	return nil
}

func (e *QueueEntry) BelongsTo(userID string) bool {
	return e.UserID != nil && *e.UserID == userID
}
