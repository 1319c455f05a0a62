package calendar

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidDate is matched by every InvalidDateError and ParseDate failure
var ErrInvalidDate = errors.New("invalid date")

// InvalidDateError reports an impossible (year, month, day) combination
type InvalidDateError struct {
	Year  int
	Month int
	Day   int
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("invalid date: %04d-%02d-%02d", e.Year, e.Month, e.Day)
}

// Is makes errors.Is(err, ErrInvalidDate) work
func (e *InvalidDateError) Is(target error) bool {
	return target == ErrInvalidDate
}

const isoLayout = "2006-01-02"

// Date is a calendar day in the proleptic Gregorian calendar
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// IsLeap reports whether year has a February 29th
func IsLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysIn returns the number of days in month, or 0 for an invalid month
func DaysIn(year int, month time.Month) int {
	switch month {
	case time.January, time.March, time.May, time.July, time.August, time.October, time.December:
		return 31
	case time.April, time.June, time.September, time.November:
		return 30
	case time.February:
		if IsLeap(year) {
			return 29
		}
		return 28
	default:
		return 0
	}
}

// NewDate validates and builds a Date
func NewDate(year int, month time.Month, day int) (Date, error) {
	d := Date{Year: year, Month: month, Day: day}
	if err := d.Validate(); err != nil {
		return Date{}, err
	}
	return d, nil
}

// Years a Date can hold; the text form has exactly four year digits
const (
	MinYear = 0
	MaxYear = 9999
)

// Validate returns an *InvalidDateError if d does not exist or its year
// falls outside MinYear..MaxYear
func (d Date) Validate() error {
	if d.Year < MinYear || d.Year > MaxYear || d.Day < 1 || d.Day > DaysIn(d.Year, d.Month) {
		return &InvalidDateError{Year: d.Year, Month: int(d.Month), Day: d.Day}
	}
	return nil
}

// IsZero reports whether d is the zero Date (used for placeholder cells)
func (d Date) IsZero() bool {
	return d == Date{}
}

// String formats d as yyyy-MM-dd
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// ParseDate parses a yyyy-MM-dd string
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(isoLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w: %w", s, ErrInvalidDate, err)
	}
	return FromTime(t), nil
}

// FromTime returns the calendar day of t in t's location
func FromTime(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// Today returns the current local date
func Today() Date {
	return FromTime(time.Now())
}

// Time returns midnight UTC of d
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// AddDays moves d by n days, rolling months and years as needed.
// d must be valid.
func (d Date) AddDays(n int) Date {
	return FromTime(d.Time().AddDate(0, 0, n))
}

// AddMonths moves d by n months, clamping the day to the target month's length
func (d Date) AddMonths(n int) Date {
	total := d.Year*12 + int(d.Month) - 1 + n
	year, month := floorDiv(total, 12), time.Month(floorMod(total, 12)+1)
	day := d.Day
	if last := DaysIn(year, month); day > last {
		day = last
	}
	return Date{Year: year, Month: month, Day: day}
}

// Compare returns -1, 0 or +1
func (d Date) Compare(o Date) int {
	switch {
	case d.Year != o.Year:
		return sign(d.Year - o.Year)
	case d.Month != o.Month:
		return sign(int(d.Month) - int(o.Month))
	default:
		return sign(d.Day - o.Day)
	}
}

// Before reports whether d is earlier than o
func (d Date) Before(o Date) bool { return d.Compare(o) < 0 }

// After reports whether d is later than o
func (d Date) After(o Date) bool { return d.Compare(o) > 0 }

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	}
	return 0
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int) int {
	return a - floorDiv(a, b)*b
}

// MarshalText encodes d as yyyy-MM-dd
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText decodes a yyyy-MM-dd string
func (d *Date) UnmarshalText(text []byte) error {
	v, err := ParseDate(string(text))
	if err != nil {
		return err
	}
	*d = v
	return nil
}
