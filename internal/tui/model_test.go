package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/existflow/mandarina/internal/calendar"
	"github.com/existflow/mandarina/internal/config"
	"github.com/existflow/mandarina/internal/db"
	"github.com/existflow/mandarina/internal/model"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	dir := t.TempDir()

	store, err := db.Open(db.DriverSQLite, filepath.Join(dir, "tasks.db"))
	if err != nil {
		t.Fatalf("db.Open failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	cfg, err := config.LoadFrom(filepath.Join(dir, "config.yaml"))
	if err != nil {
		t.Fatalf("config.LoadFrom failed: %v", err)
	}
	return NewModel(store, cfg)
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func TestViewSwitchResetsToToday(t *testing.T) {
	m := newTestModel(t)
	m.selected = calendar.Date{Year: 2001, Month: time.July, Day: 4}

	m = press(t, m, "w")
	if m.view != ViewWeek {
		t.Fatalf("view = %v, want Week", m.view)
	}
	if m.selected != m.today {
		t.Errorf("selected = %s, want today %s", m.selected, m.today)
	}

	m.cfg.ResetOnViewSwitch = false
	m.selected = calendar.Date{Year: 2001, Month: time.July, Day: 4}
	m = press(t, m, "m")
	if m.selected.Year != 2001 {
		t.Errorf("selected moved to %s with reset disabled", m.selected)
	}
}

func TestPeriodNavigation(t *testing.T) {
	m := newTestModel(t)
	m.view = ViewMonth
	m.selected = calendar.Date{Year: 2024, Month: time.January, Day: 31}

	m = press(t, m, "]")
	if want := (calendar.Date{Year: 2024, Month: time.February, Day: 29}); m.selected != want {
		t.Errorf("next month = %s, want %s", m.selected, want)
	}

	m.view = ViewWeek
	m = press(t, m, "[")
	if want := (calendar.Date{Year: 2024, Month: time.February, Day: 22}); m.selected != want {
		t.Errorf("previous week = %s, want %s", m.selected, want)
	}

	m = press(t, m, "h")
	if want := (calendar.Date{Year: 2024, Month: time.February, Day: 21}); m.selected != want {
		t.Errorf("previous day = %s, want %s", m.selected, want)
	}
}

func TestAddFormCreatesTask(t *testing.T) {
	m := newTestModel(t)
	m.selected = calendar.Date{Year: 2025, Month: time.March, Day: 15}

	m = press(t, m, "a")
	if m.mode != ModeAddTask {
		t.Fatalf("mode = %v, want AddTask", m.mode)
	}
	if got := m.form.inputs[fieldDate].Value(); got != "2025-03-15" {
		t.Errorf("date prefill = %q", got)
	}

	m.form.inputs[fieldTitle].SetValue("Dentist")
	m.form.inputs[fieldTime].SetValue("2:30 PM")
	m.form.priority = model.PriorityHigh
	m = press(t, m, "enter")

	if m.mode != ModeNormal {
		t.Fatalf("form still open: %q", m.form.err)
	}
	if len(m.dayTasks) != 1 {
		t.Fatalf("day has %d tasks, want 1", len(m.dayTasks))
	}
	task := m.dayTasks[0]
	if task.Title != "Dentist" || task.Hour != 14 || task.Minute != 30 || task.Priority != model.PriorityHigh {
		t.Errorf("stored task = %+v", task)
	}
}

func TestAddFormRejectsEmptyTitle(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, "a", "enter")

	if m.mode != ModeAddTask {
		t.Fatal("form closed on an empty title")
	}
	if m.form.err != "Title cannot have an empty value." {
		t.Errorf("form error = %q", m.form.err)
	}
	if len(m.tasks) != 0 {
		t.Errorf("tasks loaded after rejected insert: %d", len(m.tasks))
	}
}

func TestCompleteFromPanel(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, "a")
	m.form.inputs[fieldTitle].SetValue("Water plants")
	m = press(t, m, "enter", "tab", "x")

	if len(m.dayTasks) != 1 || !m.dayTasks[0].IsCompleted() {
		t.Fatalf("task not completed: %+v", m.dayTasks)
	}
	m = press(t, m, "x")
	if m.message != "Already completed" {
		t.Errorf("message = %q", m.message)
	}
}

func TestSettingsApplyAndSave(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, "s")
	if m.mode != ModeSettings {
		t.Fatalf("mode = %v, want Settings", m.mode)
	}
	m = press(t, m, "j", "t", "f", "enter")

	if m.cfg.Palette != "Olive Yards" || m.cfg.Theme != "dark" || m.cfg.HourFormat != 24 {
		t.Errorf("config = %s/%s/%d", m.cfg.Palette, m.cfg.Theme, m.cfg.HourFormat)
	}
	reloaded, err := config.LoadFrom(m.cfg.File())
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if reloaded.Palette != "Olive Yards" {
		t.Errorf("saved palette = %q", reloaded.Palette)
	}
}

func TestTickMovesToday(t *testing.T) {
	m := newTestModel(t)
	tomorrow := m.today.AddDays(1).Time().Add(10 * time.Hour)

	next, _ := m.Update(tickMsg(tomorrow))
	m = next.(Model)
	if m.today != calendar.FromTime(tomorrow) {
		t.Errorf("today = %s after tick", m.today)
	}
}

func TestViewRenders(t *testing.T) {
	m := newTestModel(t)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = next.(Model)

	for _, v := range []string{"m", "w", "d"} {
		m = press(t, m, v)
		out := m.View()
		if !strings.Contains(out, "Scheduled Today") {
			t.Errorf("%s view missing side panel", m.view)
		}
	}
}
