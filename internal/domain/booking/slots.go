package booking

import (
	"time"

	"github.com/restobook/booking-api/internal/models"
)

// SlotAvailability is the computed state of one bookable interval.
type SlotAvailability struct {
	Start string `json:"start"`
	End   string `json:"end"`

	MaxSeats       int `json:"max_seats"`
	AvailableSeats int `json:"available_seats"`

	MaxTables       int `json:"max_tables"`
	AvailableTables int `json:"available_tables"`

	Full bool `json:"full"`
}

// DayCapacity is the effective hours and capacity for one branch day
// after applying the calendar override.
type DayCapacity struct {
	Closed    bool
	OpenTime  string
	CloseTime string
	MaxSeats  int
	MaxTables int
}

// ResolveDayCapacity folds a branch's defaults with its override for
// the date, if any. Zero values on the override keep the default.
func ResolveDayCapacity(branch *models.Branch, override *models.BookingOverride) DayCapacity {
	day := DayCapacity{
		OpenTime:  branch.OpeningTime,
		CloseTime: branch.ClosingTime,
		MaxSeats:  branch.SeatsCount,
		MaxTables: branch.TablesCount,
	}

	if override == nil {
		return day
	}

	if override.Closed {
		day.Closed = true
		return day
	}

	if override.OpenTime != "" {
		day.OpenTime = override.OpenTime
	}
	if override.CloseTime != "" {
		day.CloseTime = override.CloseTime
	}
	if override.MaxSeats > 0 {
		day.MaxSeats = override.MaxSeats
	}
	if override.MaxTables > 0 {
		day.MaxTables = override.MaxTables
	}

	return day
}

// ComputeDaySlots walks the branch day from open to close in
// reservation-duration steps and reports capacity per interval.
// Persisted slot rows carry live counters; intervals without a row are
// untouched and fully available.
func ComputeDaySlots(
	branch *models.Branch,
	override *models.BookingOverride,
	booked []models.TimeSlot,
	date time.Time,
	loc *time.Location,
) []SlotAvailability {

	day := ResolveDayCapacity(branch, override)
	if day.Closed {
		return []SlotAvailability{}
	}

	parseHM := func(hm string) (time.Time, bool) {
		t, err := time.Parse("15:04", hm)
		if err != nil {
			return time.Time{}, false
		}
		return time.Date(
			date.Year(), date.Month(), date.Day(),
			t.Hour(), t.Minute(), 0, 0,
			loc,
		), true
	}

	dayStart, ok1 := parseHM(day.OpenTime)
	dayEnd, ok2 := parseHM(day.CloseTime)
	if !ok1 || !ok2 || !dayStart.Before(dayEnd) {
		return []SlotAvailability{}
	}

	step := time.Duration(branch.ReservationDurationMin) * time.Minute
	if step <= 0 {
		step = 90 * time.Minute
	}

	bookedByStart := make(map[string]*models.TimeSlot, len(booked))
	for i := range booked {
		bookedByStart[booked[i].StartTime] = &booked[i]
	}

	slots := make([]SlotAvailability, 0)

	for cur := dayStart; !cur.Add(step).After(dayEnd); cur = cur.Add(step) {

		start := cur.Format("15:04")
		end := cur.Add(step).Format("15:04")

		out := SlotAvailability{
			Start:           start,
			End:             end,
			MaxSeats:        day.MaxSeats,
			AvailableSeats:  day.MaxSeats,
			MaxTables:       day.MaxTables,
			AvailableTables: day.MaxTables,
		}

		if row, ok := bookedByStart[start]; ok {
			out.AvailableSeats = day.MaxSeats - row.BookedSeats
			out.AvailableTables = day.MaxTables - row.BookedTables
			if out.AvailableSeats < 0 {
				out.AvailableSeats = 0
			}
			if out.AvailableTables < 0 {
				out.AvailableTables = 0
			}
		}

		out.Full = out.AvailableSeats <= 0 || out.AvailableTables <= 0
		slots = append(slots, out)
	}

	return slots
}

// CountOpenSlots is the availability signal used by branch ranking.
func CountOpenSlots(slots []SlotAvailability) int {
	open := 0
	for _, s := range slots {
		if !s.Full {
			open++
		}
	}
	return open
}
