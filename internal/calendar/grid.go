// Package calendar computes the cells shown by day, week and month views.
//
// Everything here is a pure function of its arguments, so the package is
// safe for concurrent use and needs no display context to test.
package calendar

import (
	"strings"
	"time"
)

// Weekday indexes days Monday=0 through Sunday=6, whichever day a view starts on
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// DaysPerWeek is the width of every week row
const DaysPerWeek = 7

var weekdayNames = [...]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// String returns the short English label (Mon..Sun)
func (w Weekday) String() string {
	return weekdayNames[w.normalize()]
}

// Long returns the full English name (Monday..Sunday)
func (w Weekday) Long() string {
	return time.Weekday((int(w.normalize()) + 1) % DaysPerWeek).String()
}

func (w Weekday) normalize() Weekday {
	return Weekday(floorMod(int(w), DaysPerWeek))
}

// ParseWeekday accepts "monday"/"mon" style names, case-insensitively
func ParseWeekday(s string) (Weekday, bool) {
	s = strings.TrimSpace(s)
	for i, name := range weekdayNames {
		if strings.EqualFold(s, name) || strings.EqualFold(s, Weekday(i).Long()) {
			return Weekday(i), true
		}
	}
	return 0, false
}

// WeekdayOf returns the Monday-based weekday of date
func WeekdayOf(date Date) (Weekday, error) {
	if err := date.Validate(); err != nil {
		return 0, err
	}
	return weekdayOf(date), nil
}

func weekdayOf(date Date) Weekday {
	// time.Weekday counts from Sunday=0
	return Weekday((int(date.Time().Weekday()) + 6) % DaysPerWeek)
}

// WeekdayOrder returns the seven weekdays in display order for a view starting on first
func WeekdayOrder(first Weekday) []Weekday {
	first = first.normalize()
	order := make([]Weekday, DaysPerWeek)
	for i := range order {
		order[i] = Weekday((int(first) + i) % DaysPerWeek)
	}
	return order
}

// Cell is one slot of a rendered grid
type Cell struct {
	Date Date
	// InMonth is false for spillover days and for placeholders
	InMonth bool
}

// IsPlaceholder reports whether the cell stands for no real date
func (c Cell) IsPlaceholder() bool {
	return c.Date.IsZero()
}

// offset is how many columns date sits after the first column of its row
func offset(date Date, first Weekday) int {
	return floorMod(int(weekdayOf(date))-int(first.normalize()), DaysPerWeek)
}

func validMonth(year int, month time.Month) error {
	if month < time.January || month > time.December {
		return &InvalidDateError{Year: year, Month: int(month), Day: 1}
	}
	return nil
}

// MonthCells lists a month as placeholders for the days before the 1st
// followed by one in-month cell per day. The sequence is not padded to
// complete the final week; use Rows to split it.
func MonthCells(year int, month time.Month, first Weekday) ([]Cell, error) {
	if err := validMonth(year, month); err != nil {
		return nil, err
	}

	start := Date{Year: year, Month: month, Day: 1}
	lead := offset(start, first)
	n := DaysIn(year, month)

	cells := make([]Cell, lead, lead+n)
	for day := 1; day <= n; day++ {
		cells = append(cells, Cell{
			Date:    Date{Year: year, Month: month, Day: day},
			InMonth: true,
		})
	}
	return cells, nil
}

// Rows splits cells into 7-wide rows; the last row may be shorter
func Rows(cells []Cell) [][]Cell {
	rows := make([][]Cell, 0, (len(cells)+DaysPerWeek-1)/DaysPerWeek)
	for len(cells) > DaysPerWeek {
		rows = append(rows, cells[:DaysPerWeek:DaysPerWeek])
		cells = cells[DaysPerWeek:]
	}
	if len(cells) > 0 {
		rows = append(rows, cells)
	}
	return rows
}

// MonthGrid returns complete week rows for a month view. Partial first and
// last weeks are filled with days from the adjacent months.
func MonthGrid(year int, month time.Month, first Weekday) ([][]Cell, error) {
	if err := validMonth(year, month); err != nil {
		return nil, err
	}

	firstDay := Date{Year: year, Month: month, Day: 1}
	lastDay := Date{Year: year, Month: month, Day: DaysIn(year, month)}

	lead := offset(firstDay, first)
	trail := DaysPerWeek - 1 - offset(lastDay, first)
	total := lead + lastDay.Day + trail

	cells := make([]Cell, 0, total)
	d := firstDay.AddDays(-lead)
	for i := 0; i < total; i++ {
		cells = append(cells, Cell{Date: d, InMonth: d.Year == year && d.Month == month})
		d = d.AddDays(1)
	}
	return Rows(cells), nil
}

// WeekContaining returns the seven cells of the week row holding the given
// day. Days borrowed from the previous or next month (including across a
// year boundary) are marked InMonth=false.
func WeekContaining(year int, month time.Month, day int, first Weekday) ([]Cell, error) {
	target, err := NewDate(year, month, day)
	if err != nil {
		return nil, err
	}

	rows, err := MonthGrid(year, month, first)
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		for _, c := range row {
			if c.InMonth && c.Date == target {
				return row, nil
			}
		}
	}
	// unreachable for a valid date
	return nil, &InvalidDateError{Year: year, Month: int(month), Day: day}
}

// MonthSpan returns the first and last day of a month
func MonthSpan(year int, month time.Month) (Date, Date, error) {
	if err := validMonth(year, month); err != nil {
		return Date{}, Date{}, err
	}
	return Date{Year: year, Month: month, Day: 1},
		Date{Year: year, Month: month, Day: DaysIn(year, month)}, nil
}

// Span returns the earliest and latest real dates among cells.
// ok is false when cells holds only placeholders.
func Span(cells []Cell) (from, to Date, ok bool) {
	for _, c := range cells {
		if c.IsPlaceholder() {
			continue
		}
		if !ok || c.Date.Before(from) {
			from = c.Date
		}
		if !ok || c.Date.After(to) {
			to = c.Date
		}
		ok = true
	}
	return from, to, ok
}
