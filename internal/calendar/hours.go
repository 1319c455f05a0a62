package calendar

import (
	"fmt"
	"strconv"
	"strings"
)

// HourFormat selects 12-hour (with AM/PM) or 24-hour labels
type HourFormat int

const (
	Hour12 HourFormat = 12
	Hour24 HourFormat = 24
)

// Valid reports whether f is 12 or 24
func (f HourFormat) Valid() bool {
	return f == Hour12 || f == Hour24
}

// HourSlot is one row of a day or week view
type HourSlot struct {
	Hour    int
	Label24 string
	Label12 string
}

// Label picks the label for the given format; anything but Hour24 gets the 12-hour form
func (s HourSlot) Label(f HourFormat) string {
	if f == Hour24 {
		return s.Label24
	}
	return s.Label12
}

// HourSlots returns the 24 hours of a day starting at midnight
func HourSlots() []HourSlot {
	slots := make([]HourSlot, 24)
	for h := range slots {
		slots[h] = HourSlot{
			Hour:    h,
			Label24: FormatTime(h, 0, Hour24),
			Label12: FormatTime(h, 0, Hour12),
		}
	}
	return slots
}

// FormatTime renders hour:minute, e.g. "13:05" or "01:05 PM"
func FormatTime(hour, minute int, f HourFormat) string {
	if f == Hour24 {
		return fmt.Sprintf("%02d:%02d", hour, minute)
	}
	meridiem := "AM"
	if hour >= 12 {
		meridiem = "PM"
	}
	h := hour % 12
	if h == 0 {
		h = 12
	}
	return fmt.Sprintf("%02d:%02d %s", h, minute, meridiem)
}

// ParseClock reads "14:30", "2:30 pm" or "02:30PM". Range checks beyond
// the 12-hour form are left to callers.
func ParseClock(s string) (hour, minute int, err error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	meridiem := ""
	for _, suffix := range []string{"AM", "PM"} {
		if strings.HasSuffix(s, suffix) {
			meridiem = suffix
			s = strings.TrimSpace(strings.TrimSuffix(s, suffix))
		}
	}

	hh, mm, ok := strings.Cut(s, ":")
	if !ok {
		return 0, 0, fmt.Errorf("time %q: want HH:MM", s)
	}
	hour, err = strconv.Atoi(hh)
	if err != nil {
		return 0, 0, fmt.Errorf("time %q: bad hour", s)
	}
	minute, err = strconv.Atoi(mm)
	if err != nil {
		return 0, 0, fmt.Errorf("time %q: bad minute", s)
	}

	if meridiem != "" {
		if hour < 1 || hour > 12 {
			return 0, 0, fmt.Errorf("time %q: hour must be 1-12 with %s", s, meridiem)
		}
		hour %= 12
		if meridiem == "PM" {
			hour += 12
		}
	}
	return hour, minute, nil
}
