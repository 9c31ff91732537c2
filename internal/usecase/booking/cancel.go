package booking

import (
	"context"

	"github.com/restobook/booking-api/internal/audit"
	"github.com/restobook/booking-api/internal/cache"
	domain "github.com/restobook/booking-api/internal/domain/booking"
	"github.com/restobook/booking-api/internal/httperr"
	"github.com/restobook/booking-api/internal/models"
	"github.com/restobook/booking-api/internal/timezone"
)

type CancelBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	cache *cache.AvailabilityCache
}

func NewCancelBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
	cache *cache.AvailabilityCache,
) *CancelBooking {
	return &CancelBooking{
		repo:  repo,
		audit: audit,
		cache: cache,
	}
}

// ExecuteForUser cancels a diner's own booking.
func (uc *CancelBooking) ExecuteForUser(
	ctx context.Context,
	bookingID uint,
	userID uint,
) (*models.Booking, error) {

	b, err := uc.repo.GetBookingForUser(ctx, bookingID, userID)
	if err != nil {
		return nil, httperr.ErrBusiness("booking_not_found")
	}

	return uc.cancel(ctx, b, &userID)
}

// ExecuteForGuest cancels a guest booking by its reference code.
func (uc *CancelBooking) ExecuteForGuest(
	ctx context.Context,
	reference string,
) (*models.Booking, error) {

	b, err := uc.repo.GetBookingByReference(ctx, reference)
	if err != nil {
		return nil, httperr.ErrBusiness("booking_not_found")
	}

	if b.UserID != nil {
		// account bookings are not cancellable via the guest path
		return nil, httperr.ErrBusiness("booking_not_found")
	}

	return uc.cancel(ctx, b, nil)
}

// ExecuteForRestaurant cancels on behalf of the operator.
func (uc *CancelBooking) ExecuteForRestaurant(
	ctx context.Context,
	bookingID uint,
	restaurantID uint,
) (*models.Booking, error) {

	b, err := uc.repo.GetBookingForRestaurant(ctx, bookingID, restaurantID)
	if err != nil {
		return nil, httperr.ErrBusiness("booking_not_found")
	}

	return uc.cancel(ctx, b, nil)
}

func (uc *CancelBooking) cancel(
	ctx context.Context,
	b *models.Booking,
	actorID *uint,
) (*models.Booking, error) {

	branch, err := uc.repo.GetBranchByID(ctx, b.BranchID)
	if err != nil {
		return nil, err
	}

	now := timezone.NowIn(branch.Timezone)
	if err := domain.Cancel(b, now); err != nil {
		return nil, err
	}

	if err := uc.repo.CancelBookingReleasingSlot(ctx, b); err != nil {
		return nil, err
	}

	uc.cache.Invalidate(ctx, branch.ID, b.Date.In(timezone.Location(branch.Timezone)).Format("2006-01-02"))

	uc.audit.Dispatch(audit.Event{
		RestaurantID: branch.RestaurantID,
		UserID:       actorID,
		Action:       "booking_cancelled",
		Entity:       "booking",
		EntityID:     &b.ID,
	})

	return b, nil
}
