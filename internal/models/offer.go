package models

import (
	"time"

	"gorm.io/gorm"
)

type Offer struct {
	ID      string `gorm:"type:uuid;primaryKey" json:"id"`
	SalonID string `gorm:"type:uuid;index;not null" json:"salonId"`

	Title       string     `gorm:"size:100;not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Discount    *int       `json:"discount"` // percentage
	ValidUntil  *time.Time `json:"validUntil"`
	IsActive    bool       `gorm:"default:true" json:"isActive"`
	ClickCount  int        `gorm:"not null;default:0" json:"clickCount"`

	CreatedAt time.Time `json:"createdAt"`
}

func (o *Offer) BeforeCreate(*gorm.DB) error {
	ensureID(&o.ID)
	return nil
}
