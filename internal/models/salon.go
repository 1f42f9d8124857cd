package models

import (
	"time"

	"gorm.io/gorm"
)

type Salon struct {
	ID      string  `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID *string `gorm:"type:uuid;index" json:"ownerId"`

	Name           string  `gorm:"size:100;not null" json:"name"`
	Description    string  `gorm:"type:text" json:"description"`
	Location       string  `gorm:"size:255;not null" json:"location"`
	Phone          string  `gorm:"size:30" json:"phone"`
	ImageURL       *string `gorm:"size:255" json:"imageUrl"`
	Rating         int     `gorm:"default:0" json:"rating"` // 0-50 for 0.0-5.0
	ReviewCount    int     `gorm:"default:0" json:"reviewCount"`
	OperatingHours string  `gorm:"size:50;default:'9 AM - 7 PM'" json:"operatingHours"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (s *Salon) BeforeCreate(*gorm.DB) error {
	ensureID(&s.ID)
	return nil
}

func (s *Salon) IsOwnedBy(userID string) bool {
	return s.OwnerID != nil && *s.OwnerID == userID
}
