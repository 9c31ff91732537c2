package models

import "time"

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// Reference lets guests manage a booking without an account.
	Reference string `gorm:"size:36;uniqueIndex;not null" json:"reference"`

	BranchID uint   `gorm:"index;not null" json:"branch_id"`
	Branch   Branch `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"branch"`

	TimeSlotID uint     `gorm:"index;not null" json:"time_slot_id"`
	TimeSlot   TimeSlot `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"time_slot"`

	UserID *uint `gorm:"index" json:"user_id"`
	User   *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"user,omitempty"`

	GuestName  string `gorm:"size:100" json:"guest_name"`
	GuestPhone string `gorm:"size:20" json:"guest_phone"`

	PartySize int `gorm:"not null" json:"party_size"`

	// Denormalized from the slot so day listings skip the join.
	Date time.Time `gorm:"index" json:"date"`

	Status string `gorm:"size:20;default:'pending'" json:"status"`
	Notes  string `gorm:"size:255" json:"notes"`

	ConfirmedAt *time.Time `json:"confirmed_at"`
	ArrivedAt   *time.Time `json:"arrived_at"`
	CompletedAt *time.Time `json:"completed_at"`
	CancelledAt *time.Time `json:"cancelled_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
