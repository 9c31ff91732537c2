package booking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/restobook/booking-api/internal/domain/booking"
	"github.com/restobook/booking-api/internal/httperr"
	"github.com/restobook/booking-api/internal/models"
)

func fixtureBranch() *models.Branch {
	return &models.Branch{
		ID:                     1,
		RestaurantID:           7,
		SeatsCount:             40,
		TablesCount:            10,
		OpeningTime:            "12:00",
		ClosingTime:            "23:00",
		ReservationDurationMin: 90,
		Timezone:               "UTC",
	}
}

func uintPtr(v uint) *uint { return &v }

func TestCreateBooking(t *testing.T) {
	ctx := context.Background()

	// far enough ahead that the past-time guard never trips
	const futureDate = "2030-06-15"

	t.Run("diner booking on a slot boundary", func(t *testing.T) {
		repo := newFakeRepo()
		repo.addBranch(fixtureBranch())

		uc := NewCreateBooking(repo, nil, nil)

		b, err := uc.Execute(ctx, CreateBookingInput{
			BranchID:  1,
			UserID:    uintPtr(42),
			PartySize: 4,
			Date:      futureDate,
			Time:      "13:30",
			Notes:     "window seat",
		})
		require.NoError(t, err)

		assert.Equal(t, string(domain.StatusPending), b.Status)
		assert.NotEmpty(t, b.Reference)
		assert.Equal(t, uint(42), *b.UserID)

		require.NotNil(t, repo.lastSlotReq)
		assert.Equal(t, "13:30", repo.lastSlotReq.StartTime)
		assert.Equal(t, "15:00", repo.lastSlotReq.EndTime)
		assert.Equal(t, 40, repo.lastSlotReq.MaxSeats)
		assert.Equal(t, 4, repo.lastSlotReq.PartySize)
	})

	t.Run("guest booking needs name and phone", func(t *testing.T) {
		repo := newFakeRepo()
		repo.addBranch(fixtureBranch())

		uc := NewCreateBooking(repo, nil, nil)

		_, err := uc.Execute(ctx, CreateBookingInput{
			BranchID:  1,
			GuestName: "Ana",
			PartySize: 2,
			Date:      futureDate,
			Time:      "12:00",
		})
		assert.True(t, httperr.IsBusiness(err, "guest_identity_required"))

		b, err := uc.Execute(ctx, CreateBookingInput{
			BranchID:   1,
			GuestName:  "Ana",
			GuestPhone: "+351900000000",
			PartySize:  2,
			Date:       futureDate,
			Time:       "12:00",
		})
		require.NoError(t, err)
		assert.Nil(t, b.UserID)
	})

	t.Run("off-boundary times rejected", func(t *testing.T) {
		repo := newFakeRepo()
		repo.addBranch(fixtureBranch())

		uc := NewCreateBooking(repo, nil, nil)

		for _, hm := range []string{"12:45", "13:00", "22:30"} {
			_, err := uc.Execute(ctx, CreateBookingInput{
				BranchID:  1,
				UserID:    uintPtr(42),
				PartySize: 2,
				Date:      futureDate,
				Time:      hm,
			})
			assert.True(t, httperr.IsBusiness(err, "invalid_time_slot"), "time %s", hm)
		}
	})

	t.Run("closed override rejects the day", func(t *testing.T) {
		repo := newFakeRepo()
		repo.addBranch(fixtureBranch())
		repo.overrides[1] = &models.BookingOverride{Closed: true}

		uc := NewCreateBooking(repo, nil, nil)

		_, err := uc.Execute(ctx, CreateBookingInput{
			BranchID:  1,
			UserID:    uintPtr(42),
			PartySize: 2,
			Date:      futureDate,
			Time:      "13:30",
		})
		assert.True(t, httperr.IsBusiness(err, "branch_closed"))
	})

	t.Run("party larger than day seats rejected", func(t *testing.T) {
		repo := newFakeRepo()
		repo.addBranch(fixtureBranch())
		repo.overrides[1] = &models.BookingOverride{MaxSeats: 6}

		uc := NewCreateBooking(repo, nil, nil)

		_, err := uc.Execute(ctx, CreateBookingInput{
			BranchID:  1,
			UserID:    uintPtr(42),
			PartySize: 8,
			Date:      futureDate,
			Time:      "13:30",
		})
		assert.True(t, httperr.IsBusiness(err, "party_too_large"))
	})

	t.Run("past time rejected", func(t *testing.T) {
		repo := newFakeRepo()
		repo.addBranch(fixtureBranch())

		uc := NewCreateBooking(repo, nil, nil)

		_, err := uc.Execute(ctx, CreateBookingInput{
			BranchID:  1,
			UserID:    uintPtr(42),
			PartySize: 2,
			Date:      "2020-01-01",
			Time:      "13:30",
		})
		assert.True(t, httperr.IsBusiness(err, "in_the_past"))
	})

	t.Run("unknown branch", func(t *testing.T) {
		repo := newFakeRepo()
		uc := NewCreateBooking(repo, nil, nil)

		_, err := uc.Execute(ctx, CreateBookingInput{
			BranchID:  99,
			UserID:    uintPtr(42),
			PartySize: 2,
			Date:      futureDate,
			Time:      "13:30",
		})
		assert.True(t, httperr.IsBusiness(err, "branch_not_found"))
	})

	t.Run("repository slot_full propagates", func(t *testing.T) {
		repo := newFakeRepo()
		repo.addBranch(fixtureBranch())
		repo.createErr = httperr.ErrBusiness("slot_full")

		uc := NewCreateBooking(repo, nil, nil)

		_, err := uc.Execute(ctx, CreateBookingInput{
			BranchID:  1,
			UserID:    uintPtr(42),
			PartySize: 2,
			Date:      futureDate,
			Time:      "13:30",
		})
		assert.True(t, httperr.IsBusiness(err, "slot_full"))
	})
}
