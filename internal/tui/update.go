package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/existflow/mandarina/internal/logger"
)

// tickMsg is sent once a minute so "today" follows the wall clock
type tickMsg time.Time

// storeChangedMsg is sent after the store commits a mutation
type storeChangedMsg struct{}

// Init initializes the model with a tick command
func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(), m.waitForStoreChange())
}

func tickCmd() tea.Cmd {
	return tea.Every(time.Minute, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// waitForStoreChange listens for store change signals
func (m Model) waitForStoreChange() tea.Cmd {
	if m.refreshChan == nil {
		return nil
	}
	return func() tea.Msg {
		<-m.refreshChan
		return storeChangedMsg{}
	}
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.tick(time.Time(msg))
		return m, tickCmd()

	case storeChangedMsg:
		m.loadData()
		return m, m.waitForStoreChange()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		// Handle mode-specific input
		switch m.mode {
		case ModeAddTask:
			return m.updateInput(msg)
		case ModeSettings:
			return m.updateSettings(msg)
		case ModeDetail:
			return m.updateDetail(msg)
		case ModeHelp:
			m.mode = ModeNormal
			return m, nil
		}

		// Normal mode key handling
		return m.handleNormalKeys(msg)
	}

	return m, nil
}

// handleNormalKeys handles key presses in normal mode
func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.message = ""

	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Tab):
		if m.pane == PaneCalendar {
			m.pane = PaneTasks
		} else {
			m.pane = PaneCalendar
		}

	case key.Matches(msg, keys.Day):
		m.setView(ViewDay)

	case key.Matches(msg, keys.Week):
		m.setView(ViewWeek)

	case key.Matches(msg, keys.Month):
		m.setView(ViewMonth)

	case key.Matches(msg, keys.Prev):
		m.movePeriod(-1)

	case key.Matches(msg, keys.Next):
		m.movePeriod(1)

	case key.Matches(msg, keys.Today):
		m.selected = m.today
		m.taskCursor = 0
		m.loadData()

	case key.Matches(msg, keys.Left):
		m.moveDays(-1)

	case key.Matches(msg, keys.Right):
		m.moveDays(1)

	case key.Matches(msg, keys.Up):
		m.handleUp()

	case key.Matches(msg, keys.Down):
		m.handleDown()

	case key.Matches(msg, keys.Enter):
		if m.currentTask() != nil {
			m.pane = PaneTasks
			m.mode = ModeDetail
		}

	case key.Matches(msg, keys.Add):
		return m.startAddTask()

	case key.Matches(msg, keys.Done):
		m.handleComplete()

	case key.Matches(msg, keys.Settings):
		return m.startSettings()

	case key.Matches(msg, keys.Refresh):
		m.loadData()
		m.message = "Reloaded"

	case key.Matches(msg, keys.Help):
		m.mode = ModeHelp
	}

	return m, nil
}

func (m *Model) handleUp() {
	if m.pane == PaneTasks {
		if m.taskCursor > 0 {
			m.taskCursor--
		}
		return
	}
	if m.view == ViewDay {
		m.moveDays(-1)
		return
	}
	m.moveDays(-7)
}

func (m *Model) handleDown() {
	if m.pane == PaneTasks {
		if m.taskCursor < len(m.dayTasks)-1 {
			m.taskCursor++
		}
		return
	}
	if m.view == ViewDay {
		m.moveDays(1)
		return
	}
	m.moveDays(7)
}

func (m *Model) handleComplete() {
	task := m.currentTask()
	if task == nil {
		m.message = "No task selected"
		return
	}
	if task.IsCompleted() {
		m.message = "Already completed"
		return
	}

	done, err := m.db.Complete(context.Background(), task.ID)
	if err != nil {
		logger.Error("Failed to complete task", logger.F("id", task.ID), logger.F("error", err))
		m.message = fmt.Sprintf("Error: %v", err)
		return
	}
	m.loadData()
	m.message = fmt.Sprintf("Completed: %s", done.Title)
}

func (m Model) startAddTask() (tea.Model, tea.Cmd) {
	m.mode = ModeAddTask
	m.form.reset(m.selected, m.cfg.Format())
	return m, textinput.Blink
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Escape):
		m.mode = ModeNormal
		return m, nil

	case key.Matches(msg, keys.Enter):
		draft, err := m.form.draft(m.cfg.UserID)
		if err != nil {
			m.form.err = err.Error()
			return m, nil
		}

		task, err := m.db.Insert(context.Background(), draft)
		if err != nil {
			logger.Warn("Task rejected", logger.F("error", err))
			m.form.err = errorText(err)
			return m, nil
		}

		// jump to the new task's day so it is visible
		m.selected = task.Date
		m.loadData()
		for i, t := range m.dayTasks {
			if t.ID == task.ID {
				m.taskCursor = i
			}
		}
		m.mode = ModeNormal
		m.message = fmt.Sprintf("Added: %s", task.Title)
		return m, nil
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.update(msg)
	return m, cmd
}

func (m Model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Done):
		m.handleComplete()
	case key.Matches(msg, keys.Up):
		m.handleUp()
	case key.Matches(msg, keys.Down):
		m.handleDown()
	case key.Matches(msg, keys.Escape), key.Matches(msg, keys.Enter), key.Matches(msg, keys.Quit):
		m.mode = ModeNormal
	}
	return m, nil
}
