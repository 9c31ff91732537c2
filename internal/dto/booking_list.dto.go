package dto

import "time"

// BookingListDTO is the operator-facing projection for day listings.
type BookingListDTO struct {
	ID        uint   `json:"id"`
	Reference string `json:"reference"`

	Date      time.Time `json:"date"`
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`

	Status    string `json:"status"`
	PartySize int    `json:"party_size"`

	DinerName  string `json:"diner_name"`
	DinerPhone string `json:"diner_phone"`
	Guest      bool   `json:"guest"`

	Notes string `json:"notes"`
}
