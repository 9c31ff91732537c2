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

func newChangeStatusUC(repo *fakeRepo) *ChangeStatus {
	cancel := NewCancelBooking(repo, nil, nil)
	return NewChangeStatus(repo, nil, nil, cancel)
}

func TestChangeStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("confirm a pending booking", func(t *testing.T) {
		repo := newFakeRepo()
		repo.addBranch(fixtureBranch())
		b := repo.addBooking(&models.Booking{
			BranchID: 1,
			UserID:   uintPtr(42),
			Status:   string(domain.StatusPending),
		})

		out, err := newChangeStatusUC(repo).Execute(ctx, 7, b.ID, domain.StatusConfirmed)
		require.NoError(t, err)

		assert.Equal(t, string(domain.StatusConfirmed), out.Status)
		assert.NotNil(t, out.ConfirmedAt)
	})

	t.Run("full lifecycle pending to completed", func(t *testing.T) {
		repo := newFakeRepo()
		repo.addBranch(fixtureBranch())
		b := repo.addBooking(&models.Booking{
			BranchID: 1,
			Status:   string(domain.StatusPending),
		})

		uc := newChangeStatusUC(repo)

		for _, target := range []domain.Status{
			domain.StatusConfirmed,
			domain.StatusArrived,
			domain.StatusCompleted,
		} {
			out, err := uc.Execute(ctx, 7, b.ID, target)
			require.NoError(t, err, "target %s", target)
			assert.Equal(t, string(target), out.Status)
		}

		assert.NotNil(t, b.ConfirmedAt)
		assert.NotNil(t, b.ArrivedAt)
		assert.NotNil(t, b.CompletedAt)
	})

	t.Run("cancellation goes through the releasing path", func(t *testing.T) {
		repo := newFakeRepo()
		repo.addBranch(fixtureBranch())
		b := repo.addBooking(&models.Booking{
			BranchID: 1,
			Status:   string(domain.StatusConfirmed),
		})

		out, err := newChangeStatusUC(repo).Execute(ctx, 7, b.ID, domain.StatusCancelled)
		require.NoError(t, err)

		assert.Equal(t, string(domain.StatusCancelled), out.Status)
		assert.Equal(t, 1, repo.releasedSlots)
	})

	t.Run("pending is never a transition target", func(t *testing.T) {
		repo := newFakeRepo()
		repo.addBranch(fixtureBranch())
		b := repo.addBooking(&models.Booking{
			BranchID: 1,
			Status:   string(domain.StatusConfirmed),
		})

		_, err := newChangeStatusUC(repo).Execute(ctx, 7, b.ID, domain.StatusPending)
		assert.True(t, httperr.IsBusiness(err, "invalid_status"))
	})

	t.Run("illegal transition rejected", func(t *testing.T) {
		repo := newFakeRepo()
		repo.addBranch(fixtureBranch())
		b := repo.addBooking(&models.Booking{
			BranchID: 1,
			Status:   string(domain.StatusPending),
		})

		_, err := newChangeStatusUC(repo).Execute(ctx, 7, b.ID, domain.StatusCompleted)
		assert.True(t, httperr.IsBusiness(err, "invalid_state"))
	})

	t.Run("booking of another restaurant", func(t *testing.T) {
		repo := newFakeRepo()
		repo.addBranch(fixtureBranch())
		b := repo.addBooking(&models.Booking{
			BranchID: 1,
			Status:   string(domain.StatusPending),
		})

		_, err := newChangeStatusUC(repo).Execute(ctx, 999, b.ID, domain.StatusConfirmed)
		assert.True(t, httperr.IsBusiness(err, "booking_not_found"))
	})
}

func TestIsTransitionTarget(t *testing.T) {
	assert.True(t, IsTransitionTarget(domain.StatusConfirmed))
	assert.True(t, IsTransitionTarget(domain.StatusCancelled))
	assert.True(t, IsTransitionTarget(domain.StatusArrived))
	assert.True(t, IsTransitionTarget(domain.StatusCompleted))
	assert.False(t, IsTransitionTarget(domain.StatusPending))
	assert.False(t, IsTransitionTarget(domain.Status("waiting")))
}
