package branch

import (
	"sort"
	"strings"
)

// RankedBranch is a branch projected for search results, carrying the
// ranking keys alongside the public fields.
type RankedBranch struct {
	BranchID     uint   `json:"branch_id"`
	RestaurantID uint   `json:"restaurant_id"`
	Name         string `json:"name"`
	Address      string `json:"address"`
	City         string `json:"city"`

	Cuisine    string `json:"cuisine"`
	PriceRange string `json:"price_range"`
	LogoURL    string `json:"logo_url"`

	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`

	// nil when the caller supplied no coordinates
	DistanceKm *float64 `json:"distance_km,omitempty"`

	OpenSlots int  `json:"open_slots"`
	Saved     bool `json:"saved"`
}

// Rank orders branches for the search listing: nearest first, then the
// most open slots today, then saved branches, then cuisine
// alphabetically. Branch id breaks remaining ties so the order is
// stable across requests.
func Rank(branches []RankedBranch) {
	sort.SliceStable(branches, func(i, j int) bool {
		a, b := branches[i], branches[j]

		if a.DistanceKm != nil && b.DistanceKm != nil {
			if *a.DistanceKm != *b.DistanceKm {
				return *a.DistanceKm < *b.DistanceKm
			}
		} else if (a.DistanceKm != nil) != (b.DistanceKm != nil) {
			// branches without coordinates sink
			return a.DistanceKm != nil
		}

		if a.OpenSlots != b.OpenSlots {
			return a.OpenSlots > b.OpenSlots
		}

		if a.Saved != b.Saved {
			return a.Saved
		}

		ca := strings.ToLower(a.Cuisine)
		cb := strings.ToLower(b.Cuisine)
		if ca != cb {
			return ca < cb
		}

		return a.BranchID < b.BranchID
	})
}
