package booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/restobook/booking-api/internal/audit"
	"github.com/restobook/booking-api/internal/cache"
	domain "github.com/restobook/booking-api/internal/domain/booking"
	"github.com/restobook/booking-api/internal/httperr"
	"github.com/restobook/booking-api/internal/models"
	"github.com/restobook/booking-api/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	BranchID uint

	// exactly one of UserID / guest identity is set
	UserID     *uint
	GuestName  string
	GuestPhone string

	PartySize int

	Date  string // YYYY-MM-DD
	Time  string // HH:mm
	Notes string
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	cache *cache.AvailabilityCache
}

func NewCreateBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
	cache *cache.AvailabilityCache,
) *CreateBooking {
	return &CreateBooking{
		repo:  repo,
		audit: audit,
		cache: cache,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*models.Booking, error) {

	branch, err := uc.repo.GetBranchByID(ctx, in.BranchID)
	if err != nil {
		return nil, httperr.ErrBusiness("branch_not_found")
	}

	if in.PartySize <= 0 {
		return nil, httperr.ErrBusiness("invalid_party_size")
	}

	if in.UserID == nil && (in.GuestName == "" || in.GuestPhone == "") {
		return nil, httperr.ErrBusiness("guest_identity_required")
	}

	loc := timezone.Location(branch.Timezone)

	start, err := time.ParseInLocation(
		"2006-01-02 15:04",
		in.Date+" "+in.Time,
		loc,
	)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	now := timezone.NowIn(branch.Timezone)
	if start.Before(now) {
		return nil, httperr.ErrBusiness("in_the_past")
	}

	dayStart := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, loc)

	override, err := uc.repo.GetOverrideForDate(ctx, branch.ID, dayStart)
	if err != nil {
		return nil, err
	}

	day := domain.ResolveDayCapacity(branch, override)
	if day.Closed {
		return nil, httperr.ErrBusiness("branch_closed")
	}

	step := time.Duration(branch.ReservationDurationMin) * time.Minute
	if step <= 0 {
		step = 90 * time.Minute
	}
	end := start.Add(step)

	if !slotAligned(day, start, end, step, loc) {
		return nil, httperr.ErrBusiness("invalid_time_slot")
	}

	if in.PartySize > day.MaxSeats {
		return nil, httperr.ErrBusiness("party_too_large")
	}

	b := &models.Booking{
		Reference:  uuid.NewString(),
		BranchID:   branch.ID,
		UserID:     in.UserID,
		GuestName:  in.GuestName,
		GuestPhone: in.GuestPhone,
		PartySize:  in.PartySize,
		Status:     string(domain.InitialStatus()),
		Notes:      in.Notes,
	}

	req := domain.SlotRequest{
		BranchID:  branch.ID,
		Date:      dayStart,
		StartTime: start.Format("15:04"),
		EndTime:   end.Format("15:04"),
		MaxSeats:  day.MaxSeats,
		MaxTables: day.MaxTables,
		PartySize: in.PartySize,
	}

	if err := uc.repo.CreateBookingReservingSlot(ctx, b, req); err != nil {
		return nil, err
	}

	uc.cache.Invalidate(ctx, branch.ID, in.Date)

	uc.audit.Dispatch(audit.Event{
		RestaurantID: branch.RestaurantID,
		UserID:       in.UserID,
		Action:       "booking_created",
		Entity:       "booking",
		EntityID:     &b.ID,
	})

	return b, nil
}

// slotAligned checks that the requested interval starts on a slot
// boundary and fits inside the day's opening hours.
func slotAligned(
	day domain.DayCapacity,
	start time.Time,
	end time.Time,
	step time.Duration,
	loc *time.Location,
) bool {

	parseHM := func(hm string) (time.Time, bool) {
		t, err := time.Parse("15:04", hm)
		if err != nil {
			return time.Time{}, false
		}
		return time.Date(
			start.Year(), start.Month(), start.Day(),
			t.Hour(), t.Minute(), 0, 0,
			loc,
		), true
	}

	open, ok1 := parseHM(day.OpenTime)
	close, ok2 := parseHM(day.CloseTime)
	if !ok1 || !ok2 {
		return false
	}

	if start.Before(open) || end.After(close) {
		return false
	}

	return start.Sub(open)%step == 0
}
