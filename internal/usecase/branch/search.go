package branch

import (
	"context"
	"log"

	bookingDomain "github.com/restobook/booking-api/internal/domain/booking"
	domain "github.com/restobook/booking-api/internal/domain/branch"
	"github.com/restobook/booking-api/internal/timezone"
	ucBooking "github.com/restobook/booking-api/internal/usecase/booking"
)

// ======================================================
// INPUT
// ======================================================

type SearchInput struct {
	Query   string
	City    string
	Cuisine string

	// optional caller coordinates for distance ranking
	Latitude  *float64
	Longitude *float64

	// optional diner identity for the saved-first ranking key
	UserID *uint
}

// ======================================================
// USE CASE
// ======================================================

type SearchBranches struct {
	repo         domain.Repository
	availability *ucBooking.GetAvailability
}

func NewSearchBranches(
	repo domain.Repository,
	availability *ucBooking.GetAvailability,
) *SearchBranches {
	return &SearchBranches{
		repo:         repo,
		availability: availability,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *SearchBranches) Execute(
	ctx context.Context,
	in SearchInput,
) ([]domain.RankedBranch, error) {

	matches, err := uc.repo.SearchBranches(ctx, domain.SearchFilter{
		Query:   in.Query,
		City:    in.City,
		Cuisine: in.Cuisine,
	})
	if err != nil {
		return nil, err
	}

	saved := map[uint]bool{}
	if in.UserID != nil {
		ids, err := uc.repo.ListSavedBranchIDs(ctx, *in.UserID)
		if err != nil {
			return nil, err
		}
		for _, id := range ids {
			saved[id] = true
		}
	}

	out := make([]domain.RankedBranch, 0, len(matches))
	for _, m := range matches {
		rb := domain.RankedBranch{
			BranchID:     m.Branch.ID,
			RestaurantID: m.Branch.RestaurantID,
			Name:         m.Branch.Name,
			Address:      m.Branch.Address,
			City:         m.Branch.City,
			Cuisine:      m.Profile.Cuisine,
			PriceRange:   m.Profile.PriceRange,
			LogoURL:      m.Profile.LogoURL,
			Latitude:     m.Branch.Latitude,
			Longitude:    m.Branch.Longitude,
			Saved:        saved[m.Branch.ID],
		}

		if in.Latitude != nil && in.Longitude != nil {
			d := domain.HaversineKm(*in.Latitude, *in.Longitude, m.Branch.Latitude, m.Branch.Longitude)
			rb.DistanceKm = &d
		}

		// "today" is branch-local; near midnight a branch in another
		// timezone is on a different date than the server
		today := timezone.NowIn(m.Branch.Timezone).Format("2006-01-02")

		// the availability signal is best effort, a failed branch
		// still appears with zero open slots
		slots, err := uc.availability.Execute(ctx, m.Branch.ID, today)
		if err != nil {
			log.Printf("availability for branch %d failed: %v", m.Branch.ID, err)
		} else {
			rb.OpenSlots = bookingDomain.CountOpenSlots(slots)
		}

		out = append(out, rb)
	}

	domain.Rank(out)

	return out, nil
}
