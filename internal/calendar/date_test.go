package calendar

import (
	"errors"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-03-15")
	if err != nil {
		t.Fatalf("ParseDate failed: %v", err)
	}
	if d != (Date{2025, time.March, 15}) {
		t.Errorf("got %+v", d)
	}
	if d.String() != "2025-03-15" {
		t.Errorf("String() = %q", d.String())
	}

	for _, bad := range []string{"", "2025-3-15", "2023-02-29", "15/03/2025"} {
		if _, err := ParseDate(bad); !errors.Is(err, ErrInvalidDate) {
			t.Errorf("ParseDate(%q) error = %v, want ErrInvalidDate", bad, err)
		}
	}
}

func TestNewDate(t *testing.T) {
	if _, err := NewDate(2024, time.February, 29); err != nil {
		t.Errorf("2024-02-29 rejected: %v", err)
	}
	_, err := NewDate(2023, time.February, 29)
	if !errors.Is(err, ErrInvalidDate) {
		t.Errorf("2023-02-29 error = %v", err)
	}
	if err.Error() != "invalid date: 2023-02-29" {
		t.Errorf("message = %q", err.Error())
	}

	for _, year := range []int{MinYear, MaxYear} {
		d, err := NewDate(year, time.December, 31)
		if err != nil {
			t.Errorf("year %d rejected: %v", year, err)
			continue
		}
		if back, err := ParseDate(d.String()); err != nil || back != d {
			t.Errorf("year %d does not round-trip: %q %v", year, d.String(), err)
		}
	}
	for _, year := range []int{-1, 10000} {
		if _, err := NewDate(year, time.January, 1); !errors.Is(err, ErrInvalidDate) {
			t.Errorf("year %d error = %v, want ErrInvalidDate", year, err)
		}
	}
}

func TestAddDays(t *testing.T) {
	tests := []struct {
		from Date
		n    int
		want Date
	}{
		{Date{2023, time.December, 31}, 1, Date{2024, time.January, 1}},
		{Date{2024, time.January, 1}, -1, Date{2023, time.December, 31}},
		{Date{2024, time.February, 28}, 1, Date{2024, time.February, 29}},
		{Date{2023, time.February, 28}, 1, Date{2023, time.March, 1}},
		{Date{2025, time.March, 15}, 0, Date{2025, time.March, 15}},
	}
	for _, tt := range tests {
		if got := tt.from.AddDays(tt.n); got != tt.want {
			t.Errorf("%s + %d = %s, want %s", tt.from, tt.n, got, tt.want)
		}
	}
}

func TestAddMonths(t *testing.T) {
	tests := []struct {
		from Date
		n    int
		want Date
	}{
		{Date{2025, time.January, 31}, 1, Date{2025, time.February, 28}},
		{Date{2024, time.January, 15}, -1, Date{2023, time.December, 15}},
		{Date{2024, time.December, 1}, 1, Date{2025, time.January, 1}},
		{Date{2024, time.March, 31}, -13, Date{2023, time.February, 28}},
	}
	for _, tt := range tests {
		if got := tt.from.AddMonths(tt.n); got != tt.want {
			t.Errorf("%s + %d months = %s, want %s", tt.from, tt.n, got, tt.want)
		}
	}
}

func TestCompare(t *testing.T) {
	a := Date{2024, time.December, 31}
	b := Date{2025, time.January, 1}
	if !a.Before(b) || b.Before(a) || !b.After(a) || a.Compare(a) != 0 {
		t.Error("date ordering is wrong")
	}
}

func TestIsLeap(t *testing.T) {
	for year, want := range map[int]bool{2000: true, 2024: true, 1900: false, 2023: false, 2100: false} {
		if IsLeap(year) != want {
			t.Errorf("IsLeap(%d) = %v", year, !want)
		}
	}
}

func TestHourSlots(t *testing.T) {
	slots := HourSlots()
	if len(slots) != 24 {
		t.Fatalf("got %d slots", len(slots))
	}

	tests := []struct {
		hour   int
		want12 string
		want24 string
	}{
		{0, "12:00 AM", "00:00"},
		{1, "01:00 AM", "01:00"},
		{11, "11:00 AM", "11:00"},
		{12, "12:00 PM", "12:00"},
		{13, "01:00 PM", "13:00"},
		{23, "11:00 PM", "23:00"},
	}
	for _, tt := range tests {
		s := slots[tt.hour]
		if s.Hour != tt.hour {
			t.Errorf("slot %d has hour %d", tt.hour, s.Hour)
		}
		if s.Label(Hour12) != tt.want12 {
			t.Errorf("hour %d 12h label = %q, want %q", tt.hour, s.Label(Hour12), tt.want12)
		}
		if s.Label(Hour24) != tt.want24 {
			t.Errorf("hour %d 24h label = %q, want %q", tt.hour, s.Label(Hour24), tt.want24)
		}
	}
}

func TestFormatTime(t *testing.T) {
	if got := FormatTime(14, 30, Hour12); got != "02:30 PM" {
		t.Errorf("FormatTime 12h = %q", got)
	}
	if got := FormatTime(14, 30, Hour24); got != "14:30" {
		t.Errorf("FormatTime 24h = %q", got)
	}
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		in     string
		hour   int
		minute int
		ok     bool
	}{
		{"14:30", 14, 30, true},
		{"2:30 pm", 14, 30, true},
		{"12:00 AM", 0, 0, true},
		{"12:15PM", 12, 15, true},
		{"13:00 PM", 0, 0, false},
		{"noon", 0, 0, false},
	}
	for _, tt := range tests {
		h, m, err := ParseClock(tt.in)
		if (err == nil) != tt.ok {
			t.Errorf("ParseClock(%q) err = %v", tt.in, err)
			continue
		}
		if tt.ok && (h != tt.hour || m != tt.minute) {
			t.Errorf("ParseClock(%q) = %d:%02d, want %d:%02d", tt.in, h, m, tt.hour, tt.minute)
		}
	}
}
