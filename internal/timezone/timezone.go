package timezone

import "time"

// DefaultTimezone applies when a branch carries no timezone of its own.
const DefaultTimezone = "UTC"

// IsValid reports whether tz names a loadable IANA location.
func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

// Location resolves tz, falling back to the default for empty or
// unknown names.
func Location(tz string) *time.Location {
	if tz != "" {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, _ := time.LoadLocation(DefaultTimezone)
	return loc
}

func Now() time.Time {
	return NowIn(DefaultTimezone)
}

// NowIn is the wall clock at a venue.
func NowIn(tz string) time.Time {
	return time.Now().In(Location(tz))
}
