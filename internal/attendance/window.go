package attendance

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidDate reports a date string that matches neither accepted layout.
var ErrInvalidDate = errors.New("invalid date; use YYYY-MM-DD or DD-MM-YYYY")

// Window is one calendar day in the configured local offset, expressed as a
// half-open [start, end) interval with UTC equivalents.
type Window struct {
	TZName    string
	LocalDate string // YYYY-MM-DD
	StartUTC  time.Time
	EndUTC    time.Time
}

// FromEpoch returns the window start in Unix epoch seconds.
func (w Window) FromEpoch() int64 { return w.StartUTC.Unix() }

// ToEpoch returns the window end in Unix epoch seconds.
func (w Window) ToEpoch() int64 { return w.EndUTC.Unix() }

// FromISO returns the window start as a Z-suffixed ISO-8601 string.
func (w Window) FromISO() string { return w.StartUTC.Format("2006-01-02T15:04:05Z") }

// ToISO returns the window end as a Z-suffixed ISO-8601 string.
func (w Window) ToISO() string { return w.EndUTC.Format("2006-01-02T15:04:05Z") }

// parseFlexibleDate accepts "YYYY-MM-DD" or "DD-MM-YYYY". The ISO order is
// tried first; a field only counts as a year when it is at least 1000. For
// inputs where both readings would pass that check, ISO order wins.
func parseFlexibleDate(s string) (year, month, day int, err error) {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) != 3 {
		return 0, 0, 0, ErrInvalidDate
	}
	nums := make([]int, 3)
	for i, p := range parts {
		n, convErr := strconv.Atoi(p)
		if convErr != nil {
			return 0, 0, 0, ErrInvalidDate
		}
		nums[i] = n
	}

	if nums[0] >= 1000 {
		return nums[0], nums[1], nums[2], nil
	}
	if nums[2] >= 1000 {
		return nums[2], nums[1], nums[0], nil
	}
	return 0, 0, 0, ErrInvalidDate
}

// ResolveDayWindow maps an optional date string to its local calendar-day
// window in loc. An empty dateStr resolves to now's calendar date in loc.
func ResolveDayWindow(dateStr string, loc *time.Location, now time.Time) (Window, error) {
	var year, month, day int
	if dateStr != "" {
		y, m, d, err := parseFlexibleDate(dateStr)
		if err != nil {
			return Window{}, err
		}
		year, month, day = y, m, d
	} else {
		local := now.In(loc)
		year, month, day = local.Year(), int(local.Month()), local.Day()
	}

	start := time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc)
	// time.Date normalizes out-of-range components; reject them instead.
	if start.Year() != year || int(start.Month()) != month || start.Day() != day {
		return Window{}, ErrInvalidDate
	}
	end := start.Add(24 * time.Hour)

	return Window{
		TZName:    loc.String(),
		LocalDate: start.Format("2006-01-02"),
		StartUTC:  start.UTC(),
		EndUTC:    end.UTC(),
	}, nil
}
