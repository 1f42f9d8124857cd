package models

import (
	"time"

	"gorm.io/gorm"
)

// Visit is written once when a queue entry completes. Only Rating changes afterwards.
type Visit struct {
	ID        string  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    *string `gorm:"type:uuid;index" json:"userId"`
	SalonID   string  `gorm:"type:uuid;index;not null" json:"salonId"`
	ServiceID string  `gorm:"type:uuid;not null" json:"serviceId"`
	QueueID   string  `gorm:"type:uuid;uniqueIndex;not null" json:"queueId"`

	TotalAmount  int  `gorm:"not null;default:0" json:"totalAmount"` // cents
	PointsEarned int  `gorm:"not null;default:10" json:"pointsEarned"`
	Rating       *int `json:"rating"`

	VisitDate time.Time `gorm:"not null" json:"visitDate"`
}

func (v *Visit) BeforeCreate(*gorm.DB) error {
	ensureID(&v.ID)
	return nil
}
