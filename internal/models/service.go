package models

import (
	"time"

	"gorm.io/gorm"
)

type Service struct {
	ID      string `gorm:"type:uuid;primaryKey" json:"id"`
	SalonID string `gorm:"type:uuid;index;not null" json:"salonId"`

	Name        string `gorm:"size:100;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	Price       int    `gorm:"not null" json:"price"`    // cents
	Duration    int    `gorm:"not null" json:"duration"` // minutes

	CreatedAt time.Time `json:"createdAt"`
}

func (s *Service) BeforeCreate(*gorm.DB) error {
	ensureID(&s.ID)
	return nil
}
