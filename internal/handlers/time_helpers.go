package handlers

import (
	"time"

	"github.com/restobook/booking-api/internal/models"
	"github.com/restobook/booking-api/internal/timezone"
)

// resolve the official timezone of a branch
func locationFromBranch(branch *models.Branch) *time.Location {
	if branch != nil && branch.Timezone != "" {
		if loc, err := time.LoadLocation(branch.Timezone); err == nil {
			return loc
		}
	}

	return timezone.Location(timezone.DefaultTimezone)
}

func parseDateInBranch(branch *models.Branch, dateStr string) (time.Time, error) {
	return time.ParseInLocation(
		"2006-01-02",
		dateStr,
		locationFromBranch(branch),
	)
}
