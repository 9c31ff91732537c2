package booking

import (
	"context"
	"time"

	"github.com/restobook/booking-api/internal/models"
)

// SlotRequest describes the interval a booking wants to occupy. The
// repository finds or creates the slot row under lock and bumps its
// counters atomically with the booking write.
type SlotRequest struct {
	BranchID  uint
	Date      time.Time
	StartTime string
	EndTime   string
	MaxSeats  int
	MaxTables int
	PartySize int
}

type Repository interface {
	// -------- Branch --------
	GetBranchByID(
		ctx context.Context,
		id uint,
	) (*models.Branch, error)

	GetBranchForRestaurant(
		ctx context.Context,
		branchID uint,
		restaurantID uint,
	) (*models.Branch, error)

	// -------- Override --------
	GetOverrideForDate(
		ctx context.Context,
		branchID uint,
		date time.Time,
	) (*models.BookingOverride, error)

	// -------- Slots --------
	ListSlotsForDay(
		ctx context.Context,
		branchID uint,
		dayStart time.Time,
		dayEnd time.Time,
	) ([]models.TimeSlot, error)

	// -------- Booking (create / release) --------
	CreateBookingReservingSlot(
		ctx context.Context,
		b *models.Booking,
		req SlotRequest,
	) error

	CancelBookingReleasingSlot(
		ctx context.Context,
		b *models.Booking,
	) error

	UpdateBookingPartySize(
		ctx context.Context,
		b *models.Booking,
		newSize int,
	) error

	// -------- Booking (lookup / state change) --------
	GetBookingForUser(
		ctx context.Context,
		bookingID uint,
		userID uint,
	) (*models.Booking, error)

	GetBookingByReference(
		ctx context.Context,
		reference string,
	) (*models.Booking, error)

	GetBookingForRestaurant(
		ctx context.Context,
		bookingID uint,
		restaurantID uint,
	) (*models.Booking, error)

	UpdateBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	ListBookingsForBranchDay(
		ctx context.Context,
		branchID uint,
		dayStart time.Time,
		dayEnd time.Time,
	) ([]models.Booking, error)
}
