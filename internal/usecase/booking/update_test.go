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

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

func TestUpdateBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("notes change on a confirmed booking", func(t *testing.T) {
		repo := newFakeRepo()
		repo.addBranch(fixtureBranch())
		b := repo.addBooking(&models.Booking{
			BranchID:  1,
			UserID:    uintPtr(42),
			PartySize: 4,
			Status:    string(domain.StatusConfirmed),
			Notes:     "old",
		})

		uc := NewUpdateBooking(repo, nil, nil)

		out, err := uc.Execute(ctx, b.ID, 42, UpdateBookingInput{Notes: strPtr("birthday cake")})
		require.NoError(t, err)
		assert.Equal(t, "birthday cake", out.Notes)
		assert.Equal(t, 4, out.PartySize)
	})

	t.Run("party size change while pending", func(t *testing.T) {
		repo := newFakeRepo()
		repo.addBranch(fixtureBranch())
		b := repo.addBooking(&models.Booking{
			BranchID:  1,
			UserID:    uintPtr(42),
			PartySize: 2,
			Status:    string(domain.StatusPending),
		})

		uc := NewUpdateBooking(repo, nil, nil)

		out, err := uc.Execute(ctx, b.ID, 42, UpdateBookingInput{PartySize: intPtr(6)})
		require.NoError(t, err)
		assert.Equal(t, 6, out.PartySize)
	})

	t.Run("party size frozen once confirmed", func(t *testing.T) {
		repo := newFakeRepo()
		repo.addBranch(fixtureBranch())
		b := repo.addBooking(&models.Booking{
			BranchID:  1,
			UserID:    uintPtr(42),
			PartySize: 2,
			Status:    string(domain.StatusConfirmed),
		})

		uc := NewUpdateBooking(repo, nil, nil)

		_, err := uc.Execute(ctx, b.ID, 42, UpdateBookingInput{PartySize: intPtr(6)})
		assert.True(t, httperr.IsBusiness(err, "invalid_state"))
		assert.Equal(t, 2, b.PartySize)
	})

	t.Run("resubmitting the same size is a no-op", func(t *testing.T) {
		repo := newFakeRepo()
		repo.addBranch(fixtureBranch())
		b := repo.addBooking(&models.Booking{
			BranchID:  1,
			UserID:    uintPtr(42),
			PartySize: 4,
			Status:    string(domain.StatusConfirmed),
		})

		uc := NewUpdateBooking(repo, nil, nil)

		_, err := uc.Execute(ctx, b.ID, 42, UpdateBookingInput{PartySize: intPtr(4)})
		require.NoError(t, err)
	})

	t.Run("cancelled and completed bookings are immutable", func(t *testing.T) {
		repo := newFakeRepo()
		repo.addBranch(fixtureBranch())

		for _, status := range []domain.Status{domain.StatusCancelled, domain.StatusCompleted} {
			b := repo.addBooking(&models.Booking{
				BranchID: 1,
				UserID:   uintPtr(42),
				Status:   string(status),
			})

			uc := NewUpdateBooking(repo, nil, nil)

			_, err := uc.Execute(ctx, b.ID, 42, UpdateBookingInput{Notes: strPtr("x")})
			assert.True(t, httperr.IsBusiness(err, "invalid_state"), "status %s", status)
		}
	})

	t.Run("zero party size rejected", func(t *testing.T) {
		repo := newFakeRepo()
		repo.addBranch(fixtureBranch())
		b := repo.addBooking(&models.Booking{
			BranchID:  1,
			UserID:    uintPtr(42),
			PartySize: 2,
			Status:    string(domain.StatusPending),
		})

		uc := NewUpdateBooking(repo, nil, nil)

		_, err := uc.Execute(ctx, b.ID, 42, UpdateBookingInput{PartySize: intPtr(0)})
		assert.True(t, httperr.IsBusiness(err, "invalid_party_size"))
	})
}
