package models

import "time"

// TimeSlot holds the live capacity counters for one bookable interval
// of a branch day. Rows are created lazily on first booking; the
// (branch, date, start) identity is unique so two concurrent first
// bookings cannot split the counters across separate rows.
type TimeSlot struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BranchID uint   `gorm:"uniqueIndex:idx_slot_branch_start,priority:1;not null" json:"branch_id"`
	Branch   Branch `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Date      time.Time `gorm:"uniqueIndex:idx_slot_branch_start,priority:2;not null" json:"date"`
	StartTime string    `gorm:"size:5;uniqueIndex:idx_slot_branch_start,priority:3;not null" json:"start_time"`
	EndTime   string    `gorm:"size:5;not null" json:"end_time"`

	MaxSeats    int `json:"max_seats"`
	BookedSeats int `gorm:"default:0" json:"booked_seats"`

	MaxTables    int `json:"max_tables"`
	BookedTables int `gorm:"default:0" json:"booked_tables"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *TimeSlot) AvailableSeats() int {
	return s.MaxSeats - s.BookedSeats
}

func (s *TimeSlot) AvailableTables() int {
	return s.MaxTables - s.BookedTables
}

func (s *TimeSlot) IsFull() bool {
	return s.AvailableSeats() <= 0 || s.AvailableTables() <= 0
}
