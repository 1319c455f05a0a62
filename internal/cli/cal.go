package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/existflow/mandarina/internal/calendar"
	"github.com/existflow/mandarina/internal/model"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var calCmd = &cobra.Command{
	Use:   "cal",
	Short: "Print a day, week or month",
	Long: `Print a calendar view without starting the TUI.

Examples:
  mandarina cal
  mandarina cal --view week
  mandarina cal --view day --date 2025-03-15`,
	RunE: runCal,
}

var (
	calView string
	calDate string
)

func init() {
	calCmd.Flags().StringVarP(&calView, "view", "v", "month", "View to print (day, week, month)")
	calCmd.Flags().StringVarP(&calDate, "date", "d", "", "Date to show as yyyy-mm-dd (default today)")
}

const defaultWidth = 80

// terminalWidth returns the stdout width, or defaultWidth when it is not a terminal
func terminalWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return defaultWidth
	}
	w, _, err := term.GetSize(fd)
	if err != nil || w <= 0 {
		return defaultWidth
	}
	return w
}

// calOptions is everything a calendar print needs besides tasks
type calOptions struct {
	view   string
	date   calendar.Date
	today  calendar.Date
	first  calendar.Weekday
	format calendar.HourFormat
	width  int
	title  lipgloss.Style
}

// calRange returns the dates a view covers
func calRange(o calOptions) (from, to calendar.Date, err error) {
	switch o.view {
	case "day":
		return o.date, o.date, nil
	case "week":
		week, err := calendar.WeekContaining(o.date.Year, o.date.Month, o.date.Day, o.first)
		if err != nil {
			return from, to, err
		}
		from, to, _ = calendar.Span(week)
		return from, to, nil
	case "month":
		return calendar.MonthSpan(o.date.Year, o.date.Month)
	}
	return from, to, fmt.Errorf("unknown view %q (want day, week or month)", o.view)
}

func runCal(cmd *cobra.Command, args []string) error {
	cfg := configFrom(cmd)
	o := calOptions{
		view:   strings.ToLower(calView),
		date:   calendar.Today(),
		today:  calendar.Today(),
		first:  cfg.Weekday(),
		format: cfg.Format(),
		width:  terminalWidth(),
		title:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(cfg.Colors().Accent)),
	}
	if calDate != "" {
		d, err := calendar.ParseDate(calDate)
		if err != nil {
			return err
		}
		o.date = d
	}

	from, to, err := calRange(o)
	if err != nil {
		return err
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	tasks, err := store.ListBetween(cmd.Context(), cfg.UserID, from, to)
	if err != nil {
		return fmt.Errorf("failed to load tasks: %w", err)
	}
	return renderCal(cmd.OutOrStdout(), o, tasks)
}

// renderCal prints the chosen view of tasks
func renderCal(w io.Writer, o calOptions, tasks []model.Task) error {
	switch o.view {
	case "day":
		return renderCalDay(w, o, tasks)
	case "week":
		return renderCalWeek(w, o, tasks)
	case "month":
		return renderCalMonth(w, o, tasks)
	}
	return fmt.Errorf("unknown view %q (want day, week or month)", o.view)
}

func tasksOn(tasks []model.Task, d calendar.Date) []model.Task {
	var out []model.Task
	for _, t := range tasks {
		if t.Date == d {
			out = append(out, t)
		}
	}
	return out
}

func fit(s string, width int) string {
	r := []rune(s)
	if len(r) > width {
		if width <= 1 {
			return string(r[:width])
		}
		return string(r[:width-1]) + "…"
	}
	return s + strings.Repeat(" ", width-len(r))
}

func renderCalMonth(w io.Writer, o calOptions, tasks []model.Task) error {
	grid, err := calendar.MonthGrid(o.date.Year, o.date.Month, o.first)
	if err != nil {
		return err
	}
	cellW := o.width / calendar.DaysPerWeek
	if cellW < 5 {
		cellW = 5
	}

	fmt.Fprintln(w, o.title.Render(fmt.Sprintf("%s %d", o.date.Month, o.date.Year)))
	var header string
	for _, wd := range calendar.WeekdayOrder(o.first) {
		header += fit(wd.String(), cellW)
	}
	fmt.Fprintln(w, strings.TrimRight(header, " "))

	for _, row := range grid {
		var line string
		for _, c := range row {
			if !c.InMonth {
				line += fit("", cellW)
				continue
			}
			label := fmt.Sprintf("%2d", c.Date.Day)
			if c.Date == o.today {
				label = "[" + strings.TrimSpace(label) + "]"
			}
			if n := len(tasksOn(tasks, c.Date)); n > 0 {
				label += fmt.Sprintf("•%d", n)
			}
			line += fit(label, cellW)
		}
		fmt.Fprintln(w, strings.TrimRight(line, " "))
	}

	pending := 0
	for _, t := range tasks {
		if !t.IsCompleted() {
			pending++
		}
	}
	fmt.Fprintf(w, "\n%d pending of %d scheduled\n", pending, len(tasks))
	return nil
}

func renderCalWeek(w io.Writer, o calOptions, tasks []model.Task) error {
	week, err := calendar.WeekContaining(o.date.Year, o.date.Month, o.date.Day, o.first)
	if err != nil {
		return err
	}
	from, to, _ := calendar.Span(week)
	fmt.Fprintln(w, o.title.Render(fmt.Sprintf("Week of %s to %s", from, to)))

	for _, c := range week {
		marker := "  "
		if c.Date == o.today {
			marker = "▸ "
		}
		fmt.Fprintf(w, "\n%s%s %s\n", marker, c.Date.Time().Weekday().String()[:3], c.Date)
		day := tasksOn(tasks, c.Date)
		if len(day) == 0 {
			fmt.Fprintln(w, "    ·")
		}
		for _, t := range day {
			printCalTask(w, t, o)
		}
	}
	return nil
}

func renderCalDay(w io.Writer, o calOptions, tasks []model.Task) error {
	fmt.Fprintln(w, o.title.Render(fmt.Sprintf("%s, %s %d, %d",
		o.date.Time().Weekday(), o.date.Month, o.date.Day, o.date.Year)))

	day := tasksOn(tasks, o.date)
	for _, slot := range calendar.HourSlots() {
		var here []model.Task
		for _, t := range day {
			if t.Hour == slot.Hour {
				here = append(here, t)
			}
		}
		label := fmt.Sprintf("%8s │", slot.Label(o.format))
		if len(here) == 0 {
			fmt.Fprintln(w, label)
			continue
		}
		for i, t := range here {
			if i > 0 {
				label = fmt.Sprintf("%8s │", "")
			}
			icon := "[ ]"
			if t.IsCompleted() {
				icon = "[x]"
			}
			line := fmt.Sprintf("%s :%02d %s %s", label, t.Minute, icon, t.Title)
			fmt.Fprintln(w, strings.TrimRight(fit(line, o.width), " "))
		}
	}
	return nil
}

func printCalTask(w io.Writer, t model.Task, o calOptions) {
	icon := "[ ]"
	if t.IsCompleted() {
		icon = "[x]"
	}
	line := fmt.Sprintf("    %8s %s %s (%s)", t.Time(o.format), icon, t.Title, t.Priority)
	fmt.Fprintln(w, strings.TrimRight(fit(line, o.width), " "))
}
