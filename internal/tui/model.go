package tui

import (
	"context"
	"time"

	"github.com/existflow/mandarina/internal/calendar"
	"github.com/existflow/mandarina/internal/config"
	"github.com/existflow/mandarina/internal/db"
	"github.com/existflow/mandarina/internal/logger"
	"github.com/existflow/mandarina/internal/model"
)

// View is the calendar layout being shown
type View int

const (
	ViewDay View = iota
	ViewWeek
	ViewMonth
)

func (v View) String() string {
	switch v {
	case ViewDay:
		return "Day"
	case ViewWeek:
		return "Week"
	default:
		return "Month"
	}
}

// Pane represents which pane is focused
type Pane int

const (
	PaneCalendar Pane = iota
	PaneTasks
)

// Mode represents the current UI mode
type Mode int

const (
	ModeNormal Mode = iota
	ModeAddTask
	ModeDetail
	ModeSettings
	ModeHelp
)

// Model is the main TUI model
type Model struct {
	db     *db.DB
	cfg    *config.Config
	styles Styles
	clock  func() time.Time

	// Store change signalling
	refreshChan chan struct{}

	// Calendar state
	view     View
	today    calendar.Date
	selected calendar.Date
	tasks    []model.Task // everything in the visible range
	dayTasks []model.Task // tasks on the selected date
	pending  int
	total    int

	// UI state
	width      int
	height     int
	pane       Pane
	mode       Mode
	taskCursor int

	form     addForm
	settings settingsState

	message string
}

// NewModel creates a new TUI model
func NewModel(store *db.DB, cfg *config.Config) Model {
	logger.Info("Initializing TUI model")

	m := Model{
		db:          store,
		cfg:         cfg,
		styles:      NewStyles(cfg.Colors()),
		clock:       time.Now,
		refreshChan: make(chan struct{}, 1), // Buffered to avoid blocking
		view:        ViewMonth,
		pane:        PaneCalendar,
		mode:        ModeNormal,
	}
	m.today = calendar.FromTime(m.clock())
	m.selected = m.today
	m.form = newAddForm(m.selected, cfg.Format())

	// Re-render whenever the store commits a change, wherever it came from
	store.SetOnChange(func(c db.Change) {
		logger.Debug("Store change", logger.F("kind", c.Kind.String()), logger.F("id", c.Task.ID))
		select {
		case m.refreshChan <- struct{}{}:
		default:
		}
	})

	m.loadData()
	logger.Debug("TUI model initialized", logger.F("tasks", len(m.tasks)))
	return m
}

// visibleRange returns the first and last date drawn by the current view
func (m *Model) visibleRange() (calendar.Date, calendar.Date, error) {
	first := m.cfg.Weekday()
	switch m.view {
	case ViewDay:
		return m.selected, m.selected, nil
	case ViewWeek:
		week, err := calendar.WeekContaining(m.selected.Year, m.selected.Month, m.selected.Day, first)
		if err != nil {
			return calendar.Date{}, calendar.Date{}, err
		}
		from, to, _ := calendar.Span(week)
		return from, to, nil
	default:
		grid, err := calendar.MonthGrid(m.selected.Year, m.selected.Month, first)
		if err != nil {
			return calendar.Date{}, calendar.Date{}, err
		}
		from, _, _ := calendar.Span(grid[0])
		_, to, _ := calendar.Span(grid[len(grid)-1])
		return from, to, nil
	}
}

func (m *Model) loadData() {
	ctx := context.Background()

	from, to, err := m.visibleRange()
	if err != nil {
		m.message = err.Error()
		return
	}

	tasks, err := m.db.ListBetween(ctx, m.cfg.UserID, from, to)
	if err != nil {
		logger.Error("Failed to load tasks", logger.F("error", err))
		m.message = "Error loading tasks: " + err.Error()
		return
	}
	m.tasks = tasks

	m.dayTasks = nil
	for _, t := range m.tasks {
		if t.Date == m.selected {
			m.dayTasks = append(m.dayTasks, t)
		}
	}
	if m.taskCursor >= len(m.dayTasks) {
		m.taskCursor = 0
	}

	m.pending, m.total, err = m.db.CountByMonth(ctx, m.cfg.UserID, m.selected.Year, m.selected.Month)
	if err != nil {
		logger.Warn("Failed to count tasks", logger.F("error", err))
	}
}

// tasksOn returns the loaded tasks dated d
func (m *Model) tasksOn(d calendar.Date) []model.Task {
	var out []model.Task
	for _, t := range m.tasks {
		if t.Date == d {
			out = append(out, t)
		}
	}
	return out
}

func (m *Model) currentTask() *model.Task {
	if m.taskCursor < len(m.dayTasks) {
		return &m.dayTasks[m.taskCursor]
	}
	return nil
}

// setView switches layout; week and month jump back to today when configured to
func (m *Model) setView(v View) {
	if v != ViewDay && m.cfg.ResetOnViewSwitch {
		m.selected = m.today
	}
	m.view = v
	m.taskCursor = 0
	m.loadData()
}

// moveDays shifts the selected date by n days
func (m *Model) moveDays(n int) {
	m.selected = m.selected.AddDays(n)
	m.taskCursor = 0
	m.loadData()
}

// movePeriod steps one day, week or month depending on the view
func (m *Model) movePeriod(n int) {
	switch m.view {
	case ViewDay:
		m.selected = m.selected.AddDays(n)
	case ViewWeek:
		m.selected = m.selected.AddDays(7 * n)
	default:
		m.selected = m.selected.AddMonths(n)
	}
	m.taskCursor = 0
	m.loadData()
}

// tick updates today; a new day reloads so the highlight moves
func (m *Model) tick(now time.Time) {
	today := calendar.FromTime(now)
	if today != m.today {
		m.today = today
		m.loadData()
	}
}

func (m *Model) applyTheme() {
	m.styles = NewStyles(m.cfg.Colors())
}
