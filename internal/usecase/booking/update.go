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

type UpdateBookingInput struct {
	PartySize *int
	Notes     *string
}

type UpdateBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	cache *cache.AvailabilityCache
}

func NewUpdateBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
	cache *cache.AvailabilityCache,
) *UpdateBooking {
	return &UpdateBooking{
		repo:  repo,
		audit: audit,
		cache: cache,
	}
}

// Execute edits a diner's own booking. Notes may change at any point
// before completion; the party size only while the booking is still
// pending, since capacity was allocated for it.
func (uc *UpdateBooking) Execute(
	ctx context.Context,
	bookingID uint,
	userID uint,
	in UpdateBookingInput,
) (*models.Booking, error) {

	b, err := uc.repo.GetBookingForUser(ctx, bookingID, userID)
	if err != nil {
		return nil, httperr.ErrBusiness("booking_not_found")
	}

	status := domain.Status(b.Status)
	if status == domain.StatusCancelled || status == domain.StatusCompleted {
		return nil, httperr.ErrBusiness("invalid_state")
	}

	if in.PartySize != nil && *in.PartySize != b.PartySize {
		if status != domain.StatusPending {
			return nil, httperr.ErrBusiness("invalid_state")
		}
		if *in.PartySize <= 0 {
			return nil, httperr.ErrBusiness("invalid_party_size")
		}

		if err := uc.repo.UpdateBookingPartySize(ctx, b, *in.PartySize); err != nil {
			return nil, err
		}

		branch, err := uc.repo.GetBranchByID(ctx, b.BranchID)
		if err == nil {
			day := b.Date.In(timezone.Location(branch.Timezone)).Format("2006-01-02")
			uc.cache.Invalidate(ctx, branch.ID, day)
		}
	}

	if in.Notes != nil {
		b.Notes = *in.Notes
		if err := uc.repo.UpdateBooking(ctx, b); err != nil {
			return nil, err
		}
	}

	uc.audit.Dispatch(audit.Event{
		RestaurantID: b.Branch.RestaurantID,
		UserID:       &userID,
		Action:       "booking_updated",
		Entity:       "booking",
		EntityID:     &b.ID,
	})

	return b, nil
}
