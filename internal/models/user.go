package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	Email           string  `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash    string  `gorm:"size:255;not null" json:"-"`
	FirstName       string  `gorm:"size:100" json:"firstName"`
	LastName        string  `gorm:"size:100" json:"lastName"`
	Phone           string  `gorm:"size:30" json:"phone"`
	ProfileImageURL *string `gorm:"size:255" json:"profileImageUrl"`
	IsAdmin         bool    `gorm:"default:false" json:"isAdmin"`
	LoyaltyPoints   int     `gorm:"not null;default:0" json:"loyaltyPoints"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (u *User) BeforeCreate(*gorm.DB) error {
	ensureID(&u.ID)
	return nil
}

// DisplayName is the trimmed full name, empty when neither part is set.
func (u *User) DisplayName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}
