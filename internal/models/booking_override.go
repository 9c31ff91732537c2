package models

import "time"

// BookingOverride is a date specific exception to a branch's normal
// hours and capacity: a full closure or modified values for one day.
type BookingOverride struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BranchID uint   `gorm:"uniqueIndex:idx_override_branch_date,priority:1;not null" json:"branch_id"`
	Branch   Branch `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Date time.Time `gorm:"uniqueIndex:idx_override_branch_date,priority:2;not null" json:"date"`

	Closed bool `gorm:"default:false" json:"closed"`

	// Modified values, only read when not closed. Empty/zero keeps the
	// branch default.
	OpenTime  string `gorm:"size:5" json:"open_time"`
	CloseTime string `gorm:"size:5" json:"close_time"`
	MaxSeats  int    `json:"max_seats"`
	MaxTables int    `json:"max_tables"`

	Note string `gorm:"size:255" json:"note"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
