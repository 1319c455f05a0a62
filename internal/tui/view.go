package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/existflow/mandarina/internal/calendar"
	"github.com/existflow/mandarina/internal/model"
	"github.com/existflow/mandarina/internal/theme"
)

const (
	panelWidth     = 36
	hourLabelWidth = 9
)

// View renders the UI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	header := m.renderHeader()
	statusBar := m.renderStatusBar()
	bodyHeight := m.height - lipgloss.Height(header) - lipgloss.Height(statusBar)
	if bodyHeight < 1 {
		bodyHeight = 1
	}

	var calendarView string
	switch m.view {
	case ViewDay:
		calendarView = m.renderDay(bodyHeight)
	case ViewWeek:
		calendarView = m.renderWeek(bodyHeight)
	default:
		calendarView = m.renderMonth()
	}
	calendarView = lipgloss.NewStyle().
		Width(m.calendarWidth()).
		Height(bodyHeight).
		Render(calendarView)

	mainContent := lipgloss.JoinHorizontal(lipgloss.Top, calendarView, m.renderPanel(bodyHeight))

	var modal string
	switch m.mode {
	case ModeAddTask:
		modal = m.renderAddModal()
	case ModeDetail:
		modal = m.renderDetailModal()
	case ModeSettings:
		modal = m.renderSettingsModal()
	case ModeHelp:
		modal = m.renderHelp()
	}
	if modal != "" {
		mainContent = lipgloss.Place(
			m.width, bodyHeight,
			lipgloss.Center, lipgloss.Center,
			modal,
			lipgloss.WithWhitespaceChars(" "),
		)
	}

	return m.styles.App.Render(lipgloss.JoinVertical(lipgloss.Left, header, mainContent, statusBar))
}

func (m Model) calendarWidth() int {
	w := m.width - panelWidth - 2
	if w < 7*4 {
		w = 7 * 4
	}
	return w
}

func (m Model) renderHeader() string {
	var title string
	switch m.view {
	case ViewDay:
		title = fmt.Sprintf("%s, %s %d, %d",
			m.selected.Time().Weekday(), m.selected.Month, m.selected.Day, m.selected.Year)
	default:
		title = fmt.Sprintf("%s %d", m.selected.Month, m.selected.Year)
	}

	left := m.styles.Header.Render("Mandarina") + m.styles.Title.Render(title)
	now := m.clock()
	right := m.styles.Help.Render(fmt.Sprintf("%s view  %d/%d pending  %s",
		m.view, m.pending, m.total, calendar.FormatTime(now.Hour(), now.Minute(), m.cfg.Format())))

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 1
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

// cellStyle picks the style of a date in a grid
func (m Model) cellStyle(c calendar.Cell) lipgloss.Style {
	switch {
	case c.Date == m.selected:
		return m.styles.CellSel
	case c.Date == m.today:
		return m.styles.CellToday
	case !c.InMonth:
		return m.styles.CellOut
	default:
		return m.styles.Cell
	}
}

func (m Model) weekdayHeader(cellW int) string {
	var s string
	for _, wd := range calendar.WeekdayOrder(m.cfg.Weekday()) {
		s += m.styles.Weekday.Render(padRight(wd.String(), cellW))
	}
	return s
}

func (m Model) renderMonth() string {
	grid, err := calendar.MonthGrid(m.selected.Year, m.selected.Month, m.cfg.Weekday())
	if err != nil {
		return m.styles.Error.Render(err.Error())
	}

	cellW := m.calendarWidth() / calendar.DaysPerWeek
	var b strings.Builder
	b.WriteString(m.weekdayHeader(cellW) + "\n")

	for _, row := range grid {
		var days, hints string
		for _, c := range row {
			tasks := m.tasksOn(c.Date)

			label := fmt.Sprintf("%2d", c.Date.Day)
			if len(tasks) > 0 {
				label += fmt.Sprintf(" •%d", len(tasks))
			}
			days += m.cellStyle(c).Render(padRight(label, cellW-1)) + " "

			hint := ""
			if len(tasks) > 0 {
				hint = truncate(tasks[0].Title, cellW-2)
			}
			hints += m.styles.Help.Render(padRight(hint, cellW))
		}
		b.WriteString(days + "\n" + hints + "\n")
	}
	return b.String()
}

// firstHour picks the top hour row so the earliest task is visible
func (m Model) firstHour(rows int) int {
	if rows >= 24 {
		return 0
	}
	start := 8
	for _, t := range m.tasks {
		if t.Hour < start {
			start = t.Hour
		}
	}
	if start+rows > 24 {
		start = 24 - rows
	}
	if start < 0 {
		start = 0
	}
	return start
}

func (m Model) renderWeek(height int) string {
	week, err := calendar.WeekContaining(m.selected.Year, m.selected.Month, m.selected.Day, m.cfg.Weekday())
	if err != nil {
		return m.styles.Error.Render(err.Error())
	}

	cellW := (m.calendarWidth() - hourLabelWidth) / calendar.DaysPerWeek
	var b strings.Builder

	// weekday names with the day of month
	b.WriteString(strings.Repeat(" ", hourLabelWidth))
	for _, c := range week {
		label := fmt.Sprintf("%s %d", c.Date.Time().Weekday().String()[:3], c.Date.Day)
		b.WriteString(m.cellStyle(c).Render(padRight(label, cellW-1)) + " ")
	}
	b.WriteString("\n")

	rows := height - 1
	slots := calendar.HourSlots()
	start := m.firstHour(rows)
	for _, slot := range slots[start:] {
		if rows <= 0 {
			break
		}
		rows--
		b.WriteString(m.styles.HourLabel.Render(padRight(slot.Label(m.cfg.Format()), hourLabelWidth)))
		for _, c := range week {
			var here []model.Task
			for _, t := range m.tasksOn(c.Date) {
				if t.Hour == slot.Hour {
					here = append(here, t)
				}
			}
			text := ""
			if len(here) > 0 {
				text = truncate(here[0].Title, cellW-1)
				if len(here) > 1 {
					text = truncate(here[0].Title, cellW-4) + fmt.Sprintf("+%d", len(here)-1)
				}
			}
			style := m.styles.TaskItem
			if len(here) > 0 && here[0].IsCompleted() {
				style = m.styles.TaskDone
			}
			b.WriteString(style.Render(padRight(text, cellW)))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderDay(height int) string {
	var b strings.Builder
	rows := height
	start := m.firstHour(rows)
	width := m.calendarWidth() - hourLabelWidth - 1

	for _, slot := range calendar.HourSlots()[start:] {
		if rows <= 0 {
			break
		}
		rows--
		b.WriteString(m.styles.HourLabel.Render(padRight(slot.Label(m.cfg.Format()), hourLabelWidth)))

		var titles []string
		for _, t := range m.dayTasks {
			if t.Hour == slot.Hour {
				titles = append(titles, fmt.Sprintf(":%02d %s", t.Minute, t.Title))
			}
		}
		b.WriteString(m.styles.TaskItem.Render(truncate(strings.Join(titles, "  "), width)) + "\n")
	}
	return b.String()
}

func (m Model) renderPanel(height int) string {
	var s string

	title := "Scheduled Today"
	if m.selected != m.today {
		title = fmt.Sprintf("Scheduled %s %s", m.selected.Time().Weekday().String()[:3], m.selected)
	}
	s += m.styles.Title.Render(title) + "\n"
	s += lipgloss.NewStyle().Foreground(Border).Render(repeat("─", panelWidth-4)) + "\n\n"

	if len(m.dayTasks) == 0 {
		s += m.styles.Help.Render("Nothing scheduled.\nPress 'a' to add a task.")
	}

	for i, t := range m.dayTasks {
		cursor := "  "
		style := m.styles.TaskItem
		if i == m.taskCursor && m.pane == PaneTasks {
			cursor = "❯ "
			style = m.styles.TaskSel
		}

		icon := "[ ]"
		switch {
		case t.IsCompleted():
			icon = "[x]"
			style = m.styles.TaskDone
		case t.IsOverdue(m.clock()):
			icon = "[!]"
		}

		when := t.Time(m.cfg.Format())
		line := fmt.Sprintf("%s%s %s %s", cursor, icon, when, truncate(t.Title, panelWidth-len(when)-12))
		s += style.Render(line) + " " + GetPriorityStyle(t.Priority).Render("●") + "\n"
	}

	panel := m.styles.Panel
	if m.pane == PaneTasks {
		panel = m.styles.PanelFocus
	}
	return panel.Width(panelWidth).Height(height).Render(s)
}

func (m Model) renderStatusBar() string {
	help := "d/w/m:view  ←→↑↓:move  [ ]:period  t:today  tab:pane  a:add  x:done  s:settings  ?:help  q:quit"
	if m.message != "" {
		help = m.message
	}
	return m.styles.StatusBar.Width(m.width).Render(help)
}

func (m Model) renderAddModal() string {
	content := lipgloss.NewStyle().Bold(true).Render("Add Task") + "\n\n"

	for i := 0; i < fieldCount; i++ {
		label := padRight(fieldLabels[i], 10)
		if i == m.form.focus {
			label = m.styles.Title.Render(label)
		}
		var value string
		if i == fieldPriority {
			value = "< " + FormatPriority(m.form.priority) + " >"
		} else {
			value = m.form.inputs[i].View()
		}
		content += label + value + "\n"
	}

	if m.form.err != "" {
		content += "\n" + m.styles.Error.Render(m.form.err) + "\n"
	}
	content += "\n" + m.styles.Help.Render("Tab:next field  ←→:priority  Enter:save  Esc:cancel")

	return m.styles.Modal.Render(content)
}

func (m Model) renderDetailModal() string {
	t := m.currentTask()
	if t == nil {
		return ""
	}

	row := func(label, value string) string {
		return m.styles.Help.Render(padRight(label, 10)) + value + "\n"
	}

	content := m.styles.Title.Render(t.Title) + "\n\n"
	content += row("Date", t.Date.String())
	content += row("Time", t.Time(m.cfg.Format()))
	content += row("Priority", FormatPriority(t.Priority))
	content += row("Status", t.Status.String())
	content += row("ID", shortID(t.ID))
	if t.Content != "" {
		content += "\n" + lipgloss.NewStyle().Width(50).Render(t.Content) + "\n"
	}
	help := "x:complete  Esc:close"
	if t.IsCompleted() {
		help = "Esc:close"
	}
	content += "\n" + m.styles.Help.Render(help)

	return m.styles.Modal.Width(60).Render(content)
}

func (m Model) renderSettingsModal() string {
	content := lipgloss.NewStyle().Bold(true).Render("Settings") + "\n\n"

	for i, p := range theme.All() {
		cursor := "  "
		name := padRight(p.Name, 20)
		if i == m.settings.cursor {
			cursor = "❯ "
			name = m.styles.Title.Render(name)
		}
		content += cursor + name + Swatch(p, m.settings.mode) + "\n"
	}

	content += "\n"
	content += fmt.Sprintf("Theme        %s\n", m.settings.mode)
	content += fmt.Sprintf("Hour format  %dh\n", m.settings.format)
	content += "\n" + m.styles.Help.Render("↑↓:palette  t:light/dark  f:12/24h  Enter:apply  Esc:cancel")

	return m.styles.Modal.Render(content)
}

func (m Model) renderHelp() string {
	help := `
╭─── Keyboard Shortcuts ───╮
│                          │
│  Views                   │
│  ─────                   │
│  d/w/m   Day/Week/Month  │
│  [ ]     Prev/next page  │
│  t       Go to today     │
│                          │
│  Navigation              │
│  ──────────              │
│  h/l     Prev/next day   │
│  k/j     Prev/next week  │
│  Tab     Switch pane     │
│                          │
│  Actions                 │
│  ───────                 │
│  a       Add task        │
│  Enter   Task details    │
│  x       Complete task   │
│  s       Settings        │
│                          │
│  ?       Toggle help     │
│  q       Quit            │
│                          │
╰──────────────────────────╯

     Press any key to close
`
	return help
}
