package models

import "time"

type RestaurantAccount struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type RestaurantProfile struct {
	ID           uint              `gorm:"primaryKey" json:"id"`
	RestaurantID uint              `gorm:"uniqueIndex;not null" json:"restaurant_id"`
	Restaurant   RestaurantAccount `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Name       string `gorm:"size:100;not null" json:"name"`
	Cuisine    string `gorm:"size:50" json:"cuisine"`
	PriceRange string `gorm:"size:10;default:'$$'" json:"price_range"`
	LogoURL    string `gorm:"size:255" json:"logo_url"`

	About       string `gorm:"size:255" json:"about"`
	Description string `gorm:"type:text" json:"description"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
