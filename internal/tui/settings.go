package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/existflow/mandarina/internal/calendar"
	"github.com/existflow/mandarina/internal/logger"
	"github.com/existflow/mandarina/internal/theme"
)

// settingsState is the pending choice in the settings panel
type settingsState struct {
	cursor int
	mode   theme.Mode
	format calendar.HourFormat
}

func (m Model) startSettings() (tea.Model, tea.Cmd) {
	m.settings = settingsState{
		mode:   m.cfg.Mode(),
		format: m.cfg.Format(),
	}
	for i, name := range theme.Names() {
		if name == theme.MustLookup(m.cfg.Palette).Name {
			m.settings.cursor = i
		}
	}
	m.mode = ModeSettings
	return m, nil
}

func (m Model) updateSettings(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	names := theme.Names()

	switch {
	case key.Matches(msg, keys.Escape), key.Matches(msg, keys.Quit):
		m.mode = ModeNormal
		m.message = "Settings unchanged"

	case key.Matches(msg, keys.Up):
		if m.settings.cursor > 0 {
			m.settings.cursor--
		}

	case key.Matches(msg, keys.Down):
		if m.settings.cursor < len(names)-1 {
			m.settings.cursor++
		}

	case key.Matches(msg, keys.Theme):
		if m.settings.mode == theme.Dark {
			m.settings.mode = theme.Light
		} else {
			m.settings.mode = theme.Dark
		}

	case key.Matches(msg, keys.Format):
		if m.settings.format == calendar.Hour24 {
			m.settings.format = calendar.Hour12
		} else {
			m.settings.format = calendar.Hour24
		}

	case key.Matches(msg, keys.Enter):
		m.applySettings(names[m.settings.cursor])
	}

	return m, nil
}

// applySettings stores the choice, rebuilds styles and saves the file
func (m *Model) applySettings(palette string) {
	m.cfg.Palette = palette
	m.cfg.Theme = string(m.settings.mode)
	m.cfg.HourFormat = int(m.settings.format)
	m.applyTheme()
	m.mode = ModeNormal

	if err := m.cfg.Save(); err != nil {
		logger.Error("Failed to save settings", logger.F("error", err))
		m.message = fmt.Sprintf("Applied, but could not save: %v", err)
		return
	}
	logger.Info("Settings saved",
		logger.F("palette", palette),
		logger.F("theme", m.cfg.Theme),
		logger.F("hour_format", m.cfg.HourFormat))
	m.message = fmt.Sprintf("Palette %s (%s) saved", palette, m.cfg.Theme)
}
