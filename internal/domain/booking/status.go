package booking

import "github.com/restobook/booking-api/internal/httperr"

// ===============================
// Booking Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusArrived   Status = "arrived"
	StatusCompleted Status = "completed"
)

func InitialStatus() Status {
	return StatusPending
}

func IsValid(s Status) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusArrived, StatusCompleted:
		return true
	}
	return false
}

// ===============================
// Validations
// ===============================

// CanConfirm allows the operator to accept a pending booking.
func CanConfirm(current Status) error {
	if current != StatusPending {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanCancel covers both diner and operator cancellation.
func CanCancel(current Status) error {
	if current != StatusPending && current != StatusConfirmed {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanArrive seats the party. Seating a still-pending booking is a
// walk-in confirmation and is allowed.
func CanArrive(current Status) error {
	if current != StatusPending && current != StatusConfirmed {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanComplete closes out a seated booking.
func CanComplete(current Status) error {
	if current != StatusArrived {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}
