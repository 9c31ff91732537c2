package models

import "time"

type Branch struct {
	ID uint `gorm:"primaryKey" json:"id"`

	RestaurantID uint              `gorm:"index;not null" json:"restaurant_id"`
	Restaurant   RestaurantAccount `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Name    string `gorm:"size:100;not null" json:"name"`
	Address string `gorm:"size:255" json:"address"`
	City    string `gorm:"size:100" json:"city"`
	Phone   string `gorm:"size:20" json:"phone"`

	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`

	TablesCount int `gorm:"default:10" json:"tables_count"`
	SeatsCount  int `gorm:"default:40" json:"seats_count"`

	OpeningTime            string `gorm:"size:5;default:'12:00'" json:"opening_time"`
	ClosingTime            string `gorm:"size:5;default:'23:00'" json:"closing_time"`
	ReservationDurationMin int    `gorm:"default:90" json:"reservation_duration_min"`

	Timezone string `gorm:"size:50;default:'UTC'" json:"timezone"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
