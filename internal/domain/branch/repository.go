package branch

import (
	"context"

	"github.com/restobook/booking-api/internal/models"
)

// SearchFilter narrows the branch listing before ranking.
type SearchFilter struct {
	Query   string
	City    string
	Cuisine string
}

// BranchWithProfile pairs a branch with its restaurant's public
// profile for listings.
type BranchWithProfile struct {
	Branch  models.Branch
	Profile models.RestaurantProfile
}

type Repository interface {
	SearchBranches(
		ctx context.Context,
		f SearchFilter,
	) ([]BranchWithProfile, error)

	ListSavedBranchIDs(
		ctx context.Context,
		userID uint,
	) ([]uint, error)
}
