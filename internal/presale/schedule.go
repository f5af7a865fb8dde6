package presale

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var ErrInvalidDateTime = errors.New("invalid date/time")

// IST is the fixed UTC+5:30 offset sale windows are expressed in.
var IST = time.FixedZone("IST", 330*60)

// To24Hour converts a 12-hour clock hour. PM adds 12 unless the hour is
// already 12; AM turns 12 into 0. Other hours pass through unchanged.
func To24Hour(hour int, meridiem string) int {
	switch meridiem {
	case "PM":
		if hour != 12 {
			return hour + 12
		}
	case "AM":
		if hour == 12 {
			return 0
		}
	}
	return hour
}

// AssembleInstant builds the wall-clock instant for a YYYY-MM-DD date,
// an HH:mm time and an AM/PM designator in loc. Out-of-range values
// normalise the way time.Date does, so "14:30 PM" lands at 02:30 the
// next day.
func AssembleInstant(date, clock, meridiem string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}

	dateParts := strings.Split(strings.TrimSpace(date), "-")
	clockParts := strings.Split(strings.TrimSpace(clock), ":")
	if len(dateParts) != 3 || len(clockParts) != 2 {
		return time.Time{}, fmt.Errorf("%w: %q %q", ErrInvalidDateTime, date, clock)
	}

	nums := make([]int, 0, 5)
	for _, p := range append(dateParts, clockParts...) {
		n, err := strconv.Atoi(p)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %q %q", ErrInvalidDateTime, date, clock)
		}
		nums = append(nums, n)
	}

	year, month, day, hour, minute := nums[0], nums[1], nums[2], nums[3], nums[4]
	return time.Date(year, time.Month(month), day, To24Hour(hour, meridiem), minute, 0, 0, loc), nil
}

// FormatDateTime renders the stored schedule string "DD/MM/YYYY <time> <AM|PM>".
// The time is kept exactly as entered; only the date is reordered. Any
// empty part yields "".
func FormatDateTime(date, clock, meridiem string) string {
	if date == "" || clock == "" || meridiem == "" {
		return ""
	}
	parts := strings.Split(date, "-")
	if len(parts) != 3 {
		return ""
	}
	return fmt.Sprintf("%s/%s/%s %s %s", parts[2], parts[1], parts[0], clock, meridiem)
}
