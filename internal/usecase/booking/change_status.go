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

type ChangeStatus struct {
	repo   domain.Repository
	audit  *audit.Dispatcher
	cache  *cache.AvailabilityCache
	cancel *CancelBooking
}

func NewChangeStatus(
	repo domain.Repository,
	audit *audit.Dispatcher,
	cache *cache.AvailabilityCache,
	cancel *CancelBooking,
) *ChangeStatus {
	return &ChangeStatus{
		repo:   repo,
		audit:  audit,
		cache:  cache,
		cancel: cancel,
	}
}

func (uc *ChangeStatus) Execute(
	ctx context.Context,
	restaurantID uint,
	bookingID uint,
	target domain.Status,
) (*models.Booking, error) {

	if !IsTransitionTarget(target) {
		return nil, httperr.ErrBusiness("invalid_status")
	}

	// cancellation releases capacity, it has its own path
	if target == domain.StatusCancelled {
		return uc.cancel.ExecuteForRestaurant(ctx, bookingID, restaurantID)
	}

	b, err := uc.repo.GetBookingForRestaurant(ctx, bookingID, restaurantID)
	if err != nil {
		return nil, httperr.ErrBusiness("booking_not_found")
	}

	branch, err := uc.repo.GetBranchByID(ctx, b.BranchID)
	if err != nil {
		return nil, err
	}

	now := timezone.NowIn(branch.Timezone)
	if err := domain.Transition(b, target, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		RestaurantID: restaurantID,
		Action:       "booking_" + string(target),
		Entity:       "booking",
		EntityID:     &b.ID,
	})

	return b, nil
}

// IsTransitionTarget filters the statuses an operator may request.
// pending is the creation state, never a transition target.
func IsTransitionTarget(s domain.Status) bool {
	switch s {
	case domain.StatusConfirmed, domain.StatusCancelled, domain.StatusArrived, domain.StatusCompleted:
		return true
	}
	return false
}
