package booking

import (
	"context"
	"time"

	"github.com/restobook/booking-api/internal/cache"
	domain "github.com/restobook/booking-api/internal/domain/booking"
	"github.com/restobook/booking-api/internal/httperr"
	"github.com/restobook/booking-api/internal/timezone"
)

type GetAvailability struct {
	repo  domain.Repository
	cache *cache.AvailabilityCache
}

func NewGetAvailability(
	repo domain.Repository,
	cache *cache.AvailabilityCache,
) *GetAvailability {
	return &GetAvailability{
		repo:  repo,
		cache: cache,
	}
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	branchID uint,
	dateStr string,
) ([]domain.SlotAvailability, error) {

	branch, err := uc.repo.GetBranchByID(ctx, branchID)
	if err != nil {
		return nil, httperr.ErrBusiness("branch_not_found")
	}

	loc := timezone.Location(branch.Timezone)

	date, err := time.ParseInLocation("2006-01-02", dateStr, loc)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	var cached []domain.SlotAvailability
	if uc.cache.Get(ctx, branch.ID, dateStr, &cached) {
		return cached, nil
	}

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)
	dayEnd := dayStart.Add(24 * time.Hour)

	override, err := uc.repo.GetOverrideForDate(ctx, branch.ID, dayStart)
	if err != nil {
		return nil, err
	}

	booked, err := uc.repo.ListSlotsForDay(ctx, branch.ID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	slots := domain.ComputeDaySlots(branch, override, booked, dayStart, loc)

	uc.cache.Set(ctx, branch.ID, dateStr, slots)

	return slots, nil
}
