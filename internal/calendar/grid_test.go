package calendar

import (
	"errors"
	"testing"
	"time"
)

func TestWeekdayOf(t *testing.T) {
	tests := []struct {
		date Date
		want Weekday
	}{
		{Date{2000, time.January, 1}, Saturday},
		{Date{2024, time.January, 1}, Monday},
		{Date{2023, time.December, 31}, Sunday},
		{Date{2024, time.February, 29}, Thursday},
		{Date{1900, time.March, 1}, Thursday},
		{Date{2025, time.March, 15}, Saturday},
		{Date{1970, time.January, 1}, Thursday},
	}

	for _, tt := range tests {
		got, err := WeekdayOf(tt.date)
		if err != nil {
			t.Fatalf("WeekdayOf(%s) error: %v", tt.date, err)
		}
		if got != tt.want {
			t.Errorf("WeekdayOf(%s) = %s, want %s", tt.date, got, tt.want)
		}
	}

	if got, _ := WeekdayOf(Date{2000, time.January, 1}); int(got) != 5 {
		t.Errorf("2000-01-01 index = %d, want 5", got)
	}
}

func TestWeekdayOfInvalid(t *testing.T) {
	invalid := []Date{
		{2023, time.February, 29},
		{1900, time.February, 29},
		{2024, time.April, 31},
		{2024, time.January, 0},
		{2024, time.Month(13), 1},
		{2024, time.Month(0), 10},
	}
	for _, d := range invalid {
		_, err := WeekdayOf(d)
		if !errors.Is(err, ErrInvalidDate) {
			t.Errorf("WeekdayOf(%v) error = %v, want ErrInvalidDate", d, err)
		}
		var ide *InvalidDateError
		if !errors.As(err, &ide) || ide.Day != d.Day {
			t.Errorf("WeekdayOf(%v) error not an *InvalidDateError: %v", d, err)
		}
	}
}

// Every day over several decades must agree with the standard library.
func TestWeekdayOfMatchesTimePackage(t *testing.T) {
	d := Date{1896, time.January, 1}
	end := Date{2105, time.January, 1}
	for d.Before(end) {
		got, err := WeekdayOf(d)
		if err != nil {
			t.Fatalf("WeekdayOf(%s): %v", d, err)
		}
		want := (int(time.Date(d.Year, d.Month, d.Day, 12, 0, 0, 0, time.UTC).Weekday()) + 6) % 7
		if int(got) != want {
			t.Fatalf("WeekdayOf(%s) = %d, want %d", d, got, want)
		}
		d = d.AddDays(1)
	}
}

func TestFebruaryLength(t *testing.T) {
	tests := []struct {
		year int
		want int
	}{
		{2000, 29},
		{2024, 29},
		{1900, 28},
		{2023, 28},
		{2100, 28},
		{2400, 29},
	}

	for _, tt := range tests {
		cells, err := MonthCells(tt.year, time.February, Sunday)
		if err != nil {
			t.Fatalf("MonthCells(%d, 2): %v", tt.year, err)
		}
		days := 0
		for _, c := range cells {
			if !c.IsPlaceholder() {
				days++
				if !c.InMonth {
					t.Errorf("%d-02: real cell %s not marked in month", tt.year, c.Date)
				}
			}
		}
		if days != tt.want {
			t.Errorf("February %d has %d days, want %d", tt.year, days, tt.want)
		}
	}
}

func TestMonthCellsLeadingPlaceholders(t *testing.T) {
	// March 2025 starts on a Saturday.
	tests := []struct {
		first Weekday
		lead  int
	}{
		{Sunday, 6},
		{Monday, 5},
		{Saturday, 0},
	}

	for _, tt := range tests {
		cells, err := MonthCells(2025, time.March, tt.first)
		if err != nil {
			t.Fatal(err)
		}
		if len(cells) != tt.lead+31 {
			t.Fatalf("first=%s: got %d cells, want %d", tt.first, len(cells), tt.lead+31)
		}
		for i := 0; i < tt.lead; i++ {
			if !cells[i].IsPlaceholder() || cells[i].InMonth {
				t.Errorf("first=%s: cell %d should be a placeholder, got %+v", tt.first, i, cells[i])
			}
		}
		if cells[tt.lead].Date != (Date{2025, time.March, 1}) {
			t.Errorf("first=%s: first real cell = %s", tt.first, cells[tt.lead].Date)
		}
		if last := cells[len(cells)-1]; last.Date.Day != 31 {
			t.Errorf("first=%s: sequence padded past the month end: %+v", tt.first, last)
		}
	}
}

func TestMonthCellsInvalidMonth(t *testing.T) {
	if _, err := MonthCells(2024, 13, Monday); !errors.Is(err, ErrInvalidDate) {
		t.Errorf("expected ErrInvalidDate, got %v", err)
	}
}

func TestRows(t *testing.T) {
	cells, _ := MonthCells(2025, time.March, Sunday) // 6 + 31 = 37
	rows := Rows(cells)
	if len(rows) != 6 {
		t.Fatalf("got %d rows, want 6", len(rows))
	}
	for i, row := range rows[:5] {
		if len(row) != 7 {
			t.Errorf("row %d has %d cells", i, len(row))
		}
	}
	if len(rows[5]) != 2 {
		t.Errorf("last row has %d cells, want 2", len(rows[5]))
	}
}

func TestMonthGridSpillover(t *testing.T) {
	rows, err := MonthGrid(2024, time.December, Monday)
	if err != nil {
		t.Fatal(err)
	}

	// December 2024: Sunday the 1st, Tuesday the 31st.
	first := rows[0]
	if first[0].Date != (Date{2024, time.November, 25}) || first[0].InMonth {
		t.Errorf("grid should open with Nov 25 spillover, got %+v", first[0])
	}
	if first[6].Date != (Date{2024, time.December, 1}) || !first[6].InMonth {
		t.Errorf("Dec 1 should end the first row, got %+v", first[6])
	}

	last := rows[len(rows)-1]
	want := []Date{
		{2024, time.December, 30},
		{2024, time.December, 31},
		{2025, time.January, 1},
		{2025, time.January, 2},
		{2025, time.January, 3},
		{2025, time.January, 4},
		{2025, time.January, 5},
	}
	for i, c := range last {
		if c.Date != want[i] {
			t.Errorf("last row[%d] = %s, want %s", i, c.Date, want[i])
		}
		if c.InMonth != (c.Date.Month == time.December) {
			t.Errorf("last row[%d] InMonth = %v", i, c.InMonth)
		}
	}
}

func TestMonthGridRowsAreFullWeeks(t *testing.T) {
	for year := 2019; year <= 2026; year++ {
		for month := time.January; month <= time.December; month++ {
			for _, first := range []Weekday{Monday, Sunday} {
				rows, err := MonthGrid(year, month, first)
				if err != nil {
					t.Fatal(err)
				}
				if len(rows) < 4 || len(rows) > 6 {
					t.Errorf("%d-%02d: %d rows", year, month, len(rows))
				}
				inMonth := 0
				for _, row := range rows {
					if len(row) != 7 {
						t.Fatalf("%d-%02d: row of %d cells", year, month, len(row))
					}
					if wd := weekdayOf(row[0].Date); wd != first {
						t.Errorf("%d-%02d: row starts on %s, want %s", year, month, wd, first)
					}
					for _, c := range row {
						if c.InMonth {
							inMonth++
						}
					}
				}
				if inMonth != DaysIn(year, month) {
					t.Errorf("%d-%02d: %d in-month cells", year, month, inMonth)
				}
			}
		}
	}
}

func TestWeekContainingProperties(t *testing.T) {
	for _, first := range []Weekday{Monday, Sunday} {
		d := Date{2019, time.January, 1}
		end := Date{2027, time.January, 1}
		for d.Before(end) {
			week, err := WeekContaining(d.Year, d.Month, d.Day, first)
			if err != nil {
				t.Fatalf("WeekContaining(%s): %v", d, err)
			}
			if len(week) != 7 {
				t.Fatalf("WeekContaining(%s) returned %d cells", d, len(week))
			}

			matches := 0
			for i, c := range week {
				if c.Date == d {
					matches++
					if !c.InMonth {
						t.Errorf("%s: requested day not marked in month", d)
					}
				}
				if i > 0 && week[i-1].Date.AddDays(1) != c.Date {
					t.Fatalf("%s: cells %s and %s are not consecutive", d, week[i-1].Date, c.Date)
				}
				if c.InMonth != (c.Date.Year == d.Year && c.Date.Month == d.Month) {
					t.Errorf("%s: cell %s InMonth=%v", d, c.Date, c.InMonth)
				}
			}
			if matches != 1 {
				t.Fatalf("%s: %d cells match the requested day", d, matches)
			}
			if weekdayOf(week[0].Date) != first {
				t.Fatalf("%s: week starts on %s", d, weekdayOf(week[0].Date))
			}
			d = d.AddDays(1)
		}
	}
}

func TestWeekContainingYearRollback(t *testing.T) {
	// 2024-01-01 is a Monday, so a Sunday-first week starts on 2023-12-31.
	week, err := WeekContaining(2024, time.January, 1, Sunday)
	if err != nil {
		t.Fatal(err)
	}
	if week[0].Date != (Date{2023, time.December, 31}) {
		t.Fatalf("week[0] = %s, want 2023-12-31", week[0].Date)
	}
	if week[0].InMonth {
		t.Error("borrowed December day marked as in month")
	}
	for i := 1; i < 7; i++ {
		want := Date{2024, time.January, i}
		if week[i].Date != want || !week[i].InMonth {
			t.Errorf("week[%d] = %+v, want %s in month", i, week[i], want)
		}
	}
}

func TestWeekContainingYearRollForward(t *testing.T) {
	week, err := WeekContaining(2025, time.December, 31, Monday)
	if err != nil {
		t.Fatal(err)
	}
	// 2025-12-31 is a Wednesday.
	want := []Date{
		{2025, time.December, 29},
		{2025, time.December, 30},
		{2025, time.December, 31},
		{2026, time.January, 1},
		{2026, time.January, 2},
		{2026, time.January, 3},
		{2026, time.January, 4},
	}
	for i, c := range week {
		if c.Date != want[i] {
			t.Errorf("week[%d] = %s, want %s", i, c.Date, want[i])
		}
	}
	if week[3].InMonth {
		t.Error("January spillover marked in month")
	}
}

// A month whose 1st is the configured second day of the week must still
// borrow from the previous month rather than the next.
func TestWeekContainingMonthStartingOnSecondColumn(t *testing.T) {
	// September 2025 starts on a Monday.
	week, err := WeekContaining(2025, time.September, 3, Sunday)
	if err != nil {
		t.Fatal(err)
	}
	if week[0].Date != (Date{2025, time.August, 31}) {
		t.Errorf("week[0] = %s, want 2025-08-31", week[0].Date)
	}
	if week[6].Date != (Date{2025, time.September, 6}) {
		t.Errorf("week[6] = %s, want 2025-09-06", week[6].Date)
	}
}

func TestWeekContainingInvalid(t *testing.T) {
	if _, err := WeekContaining(2023, time.February, 29, Monday); !errors.Is(err, ErrInvalidDate) {
		t.Errorf("expected ErrInvalidDate, got %v", err)
	}
}

func TestWeekdayOrder(t *testing.T) {
	sun := WeekdayOrder(Sunday)
	if sun[0] != Sunday || sun[1] != Monday || sun[6] != Saturday {
		t.Errorf("Sunday-first order = %v", sun)
	}
	mon := WeekdayOrder(Monday)
	for i, w := range mon {
		if int(w) != i {
			t.Errorf("Monday-first order = %v", mon)
			break
		}
	}
}

func TestParseWeekday(t *testing.T) {
	tests := map[string]Weekday{"sunday": Sunday, "Mon": Monday, "SATURDAY": Saturday}
	for in, want := range tests {
		got, ok := ParseWeekday(in)
		if !ok || got != want {
			t.Errorf("ParseWeekday(%q) = %v, %v", in, got, ok)
		}
	}
	if _, ok := ParseWeekday("someday"); ok {
		t.Error("ParseWeekday accepted an unknown name")
	}
}

func TestSpan(t *testing.T) {
	cells, _ := MonthCells(2025, time.March, Sunday)
	from, to, ok := Span(cells)
	if !ok || from != (Date{2025, time.March, 1}) || to != (Date{2025, time.March, 31}) {
		t.Errorf("Span = %s..%s (%v)", from, to, ok)
	}
	if _, _, ok := Span(make([]Cell, 3)); ok {
		t.Error("Span of placeholders should not be ok")
	}
}
