package models

import "time"

type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name         string `gorm:"size:100;not null" json:"name"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Phone        string `gorm:"size:20" json:"phone"`

	Gender   string     `gorm:"size:20" json:"gender"`
	Birthday *time.Time `json:"birthday"`
	City     string     `gorm:"size:100" json:"city"`

	// comma separated list, e.g. "italian,japanese"
	FavoriteCuisines string `gorm:"size:255" json:"favorite_cuisines"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
