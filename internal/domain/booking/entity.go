package booking

import (
	"time"

	"github.com/restobook/booking-api/internal/httperr"
	"github.com/restobook/booking-api/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Confirm(b *models.Booking, now time.Time) error {
	if err := CanConfirm(Status(b.Status)); err != nil {
		return err
	}

	b.Status = string(StatusConfirmed)
	b.ConfirmedAt = &now
	return nil
}

func Cancel(b *models.Booking, now time.Time) error {
	if err := CanCancel(Status(b.Status)); err != nil {
		return err
	}

	b.Status = string(StatusCancelled)
	b.CancelledAt = &now
	return nil
}

// Arrive marks the party as seated. ArrivedAt is stamped here and
// nowhere else.
func Arrive(b *models.Booking, now time.Time) error {
	if err := CanArrive(Status(b.Status)); err != nil {
		return err
	}

	// seating an unconfirmed booking confirms it implicitly
	if b.Status == string(StatusPending) {
		b.ConfirmedAt = &now
	}

	b.Status = string(StatusArrived)
	b.ArrivedAt = &now
	return nil
}

func Complete(b *models.Booking, now time.Time) error {
	if err := CanComplete(Status(b.Status)); err != nil {
		return err
	}

	b.Status = string(StatusCompleted)
	b.CompletedAt = &now
	return nil
}

// Transition applies a requested target status. Used by the operator
// change-status endpoint.
func Transition(b *models.Booking, target Status, now time.Time) error {
	switch target {
	case StatusConfirmed:
		return Confirm(b, now)
	case StatusCancelled:
		return Cancel(b, now)
	case StatusArrived:
		return Arrive(b, now)
	case StatusCompleted:
		return Complete(b, now)
	default:
		return httperr.ErrBusiness("invalid_status")
	}
}
