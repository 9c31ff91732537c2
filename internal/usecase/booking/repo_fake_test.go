package booking

import (
	"context"
	"errors"
	"time"

	domain "github.com/restobook/booking-api/internal/domain/booking"
	"github.com/restobook/booking-api/internal/models"
)

var errNotFound = errors.New("record not found")

// fakeRepo is an in-memory stand-in for the gorm repository. Error
// fields force a failure on the matching method.
type fakeRepo struct {
	branches  map[uint]*models.Branch
	overrides map[uint]*models.BookingOverride // keyed by branch id
	slots     []models.TimeSlot
	bookings  map[uint]*models.Booking

	createErr error
	cancelErr error
	updateErr error

	lastSlotReq   *domain.SlotRequest
	releasedSlots int
	nextID        uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		branches:  map[uint]*models.Branch{},
		overrides: map[uint]*models.BookingOverride{},
		bookings:  map[uint]*models.Booking{},
		nextID:    1,
	}
}

func (f *fakeRepo) addBranch(b *models.Branch) *models.Branch {
	f.branches[b.ID] = b
	return b
}

func (f *fakeRepo) addBooking(b *models.Booking) *models.Booking {
	if b.ID == 0 {
		b.ID = f.nextID
		f.nextID++
	}
	f.bookings[b.ID] = b
	return b
}

func (f *fakeRepo) GetBranchByID(_ context.Context, id uint) (*models.Branch, error) {
	if b, ok := f.branches[id]; ok {
		return b, nil
	}
	return nil, errNotFound
}

func (f *fakeRepo) GetBranchForRestaurant(_ context.Context, branchID, restaurantID uint) (*models.Branch, error) {
	if b, ok := f.branches[branchID]; ok && b.RestaurantID == restaurantID {
		return b, nil
	}
	return nil, errNotFound
}

func (f *fakeRepo) GetOverrideForDate(_ context.Context, branchID uint, _ time.Time) (*models.BookingOverride, error) {
	return f.overrides[branchID], nil
}

func (f *fakeRepo) ListSlotsForDay(_ context.Context, branchID uint, _, _ time.Time) ([]models.TimeSlot, error) {
	out := []models.TimeSlot{}
	for _, s := range f.slots {
		if s.BranchID == branchID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeRepo) CreateBookingReservingSlot(_ context.Context, b *models.Booking, req domain.SlotRequest) error {
	if f.createErr != nil {
		return f.createErr
	}

	f.lastSlotReq = &req
	b.Date = req.Date
	b.TimeSlotID = 99
	f.addBooking(b)
	return nil
}

func (f *fakeRepo) CancelBookingReleasingSlot(_ context.Context, b *models.Booking) error {
	if f.cancelErr != nil {
		return f.cancelErr
	}

	f.releasedSlots++
	f.bookings[b.ID] = b
	return nil
}

func (f *fakeRepo) UpdateBookingPartySize(_ context.Context, b *models.Booking, newSize int) error {
	if f.updateErr != nil {
		return f.updateErr
	}

	b.PartySize = newSize
	return nil
}

func (f *fakeRepo) GetBookingForUser(_ context.Context, bookingID, userID uint) (*models.Booking, error) {
	b, ok := f.bookings[bookingID]
	if !ok || b.UserID == nil || *b.UserID != userID {
		return nil, errNotFound
	}
	return b, nil
}

func (f *fakeRepo) GetBookingByReference(_ context.Context, reference string) (*models.Booking, error) {
	for _, b := range f.bookings {
		if b.Reference == reference {
			return b, nil
		}
	}
	return nil, errNotFound
}

func (f *fakeRepo) GetBookingForRestaurant(_ context.Context, bookingID, restaurantID uint) (*models.Booking, error) {
	b, ok := f.bookings[bookingID]
	if !ok {
		return nil, errNotFound
	}

	branch, okB := f.branches[b.BranchID]
	if !okB || branch.RestaurantID != restaurantID {
		return nil, errNotFound
	}
	return b, nil
}

func (f *fakeRepo) UpdateBooking(_ context.Context, b *models.Booking) error {
	if f.updateErr != nil {
		return f.updateErr
	}

	f.bookings[b.ID] = b
	return nil
}

func (f *fakeRepo) ListBookingsForBranchDay(_ context.Context, branchID uint, start, end time.Time) ([]models.Booking, error) {
	out := []models.Booking{}
	for _, b := range f.bookings {
		if b.BranchID == branchID && !b.Date.Before(start) && b.Date.Before(end) {
			out = append(out, *b)
		}
	}
	return out, nil
}

var _ domain.Repository = (*fakeRepo)(nil)
