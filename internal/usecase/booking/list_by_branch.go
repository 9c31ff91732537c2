package booking

import (
	"context"
	"time"

	domain "github.com/restobook/booking-api/internal/domain/booking"
	"github.com/restobook/booking-api/internal/dto"
	"github.com/restobook/booking-api/internal/httperr"
	"github.com/restobook/booking-api/internal/timezone"
)

type ListBookingsByBranchDate struct {
	repo domain.Repository
}

func NewListBookingsByBranchDate(
	repo domain.Repository,
) *ListBookingsByBranchDate {
	return &ListBookingsByBranchDate{
		repo: repo,
	}
}

func (uc *ListBookingsByBranchDate) Execute(
	ctx context.Context,
	restaurantID uint,
	branchID uint,
	date time.Time,
) ([]dto.BookingListDTO, error) {

	branch, err := uc.repo.GetBranchForRestaurant(ctx, branchID, restaurantID)
	if err != nil {
		return nil, httperr.ErrBusiness("branch_not_found")
	}

	loc := timezone.Location(branch.Timezone)

	start := time.Date(
		date.Year(),
		date.Month(),
		date.Day(),
		0, 0, 0, 0,
		loc,
	)
	end := start.Add(24 * time.Hour)

	bookings, err := uc.repo.ListBookingsForBranchDay(ctx, branchID, start, end)
	if err != nil {
		return nil, err
	}

	out := make([]dto.BookingListDTO, 0, len(bookings))
	for _, b := range bookings {
		item := dto.BookingListDTO{
			ID:        b.ID,
			Reference: b.Reference,
			Date:      b.Date,
			StartTime: b.TimeSlot.StartTime,
			EndTime:   b.TimeSlot.EndTime,
			Status:    b.Status,
			PartySize: b.PartySize,
			Notes:     b.Notes,
		}

		if b.User != nil {
			item.DinerName = b.User.Name
			item.DinerPhone = b.User.Phone
		} else {
			item.DinerName = b.GuestName
			item.DinerPhone = b.GuestPhone
			item.Guest = true
		}

		out = append(out, item)
	}

	return out, nil
}
