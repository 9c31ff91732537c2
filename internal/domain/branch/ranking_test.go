package branch

import "testing"

func km(v float64) *float64 { return &v }

func ids(branches []RankedBranch) []uint {
	out := make([]uint, len(branches))
	for i, b := range branches {
		out[i] = b.BranchID
	}
	return out
}

func assertOrder(t *testing.T, branches []RankedBranch, want []uint) {
	t.Helper()
	got := ids(branches)
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got order %v, want %v", got, want)
		}
	}
}

func TestRankByDistance(t *testing.T) {
	branches := []RankedBranch{
		{BranchID: 1, DistanceKm: km(5.2)},
		{BranchID: 2, DistanceKm: km(0.8)},
		{BranchID: 3, DistanceKm: km(2.1)},
	}

	Rank(branches)
	assertOrder(t, branches, []uint{2, 3, 1})
}

func TestRankMissingCoordinatesSink(t *testing.T) {
	branches := []RankedBranch{
		{BranchID: 1, OpenSlots: 9},
		{BranchID: 2, DistanceKm: km(12.0), OpenSlots: 1},
	}

	Rank(branches)
	assertOrder(t, branches, []uint{2, 1})
}

func TestRankTiebreakers(t *testing.T) {
	cases := []struct {
		name     string
		branches []RankedBranch
		want     []uint
	}{
		{
			name: "equal distance prefers more open slots",
			branches: []RankedBranch{
				{BranchID: 1, DistanceKm: km(1.0), OpenSlots: 2},
				{BranchID: 2, DistanceKm: km(1.0), OpenSlots: 5},
			},
			want: []uint{2, 1},
		},
		{
			name: "equal slots prefers saved",
			branches: []RankedBranch{
				{BranchID: 1, OpenSlots: 3, Saved: false},
				{BranchID: 2, OpenSlots: 3, Saved: true},
			},
			want: []uint{2, 1},
		},
		{
			name: "cuisine alphabetical case insensitive",
			branches: []RankedBranch{
				{BranchID: 1, Cuisine: "Thai"},
				{BranchID: 2, Cuisine: "italian"},
				{BranchID: 3, Cuisine: "French"},
			},
			want: []uint{3, 2, 1},
		},
		{
			name: "branch id breaks remaining ties",
			branches: []RankedBranch{
				{BranchID: 7, Cuisine: "sushi"},
				{BranchID: 3, Cuisine: "sushi"},
			},
			want: []uint{3, 7},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			Rank(tc.branches)
			assertOrder(t, tc.branches, tc.want)
		})
	}
}
