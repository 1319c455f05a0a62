package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/existflow/mandarina/internal/model"
	"github.com/existflow/mandarina/internal/theme"
)

// Fixed colors that do not follow the palette
var (
	PriorityHighColor   = lipgloss.Color("#FF6B6B") // Red
	PriorityMediumColor = lipgloss.Color("#FFB347") // Orange
	PriorityLowColor    = lipgloss.Color("#4ECDC4") // Blue
	TextMuted           = lipgloss.Color("#888888")
	Border              = lipgloss.Color("#555555")
)

// Styles is the look of every component, derived from the active palette
type Styles struct {
	colors theme.Colors

	App        lipgloss.Style
	Header     lipgloss.Style
	Title      lipgloss.Style
	Weekday    lipgloss.Style
	Cell       lipgloss.Style
	CellOut    lipgloss.Style
	CellToday  lipgloss.Style
	CellSel    lipgloss.Style
	HourLabel  lipgloss.Style
	Panel      lipgloss.Style
	PanelFocus lipgloss.Style
	TaskItem   lipgloss.Style
	TaskSel    lipgloss.Style
	TaskDone   lipgloss.Style
	StatusBar  lipgloss.Style
	Modal      lipgloss.Style
	Help       lipgloss.Style
	Error      lipgloss.Style
}

// NewStyles builds styles for the resolved palette colors
func NewStyles(c theme.Colors) Styles {
	bg := lipgloss.Color(c.Background)
	fg := lipgloss.Color(c.Foreground)
	accent := lipgloss.Color(c.Accent)
	sec := lipgloss.Color(c.SecAccent)

	return Styles{
		colors: c,

		App: lipgloss.NewStyle().
			Background(bg).
			Foreground(fg),

		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Padding(0, 1),

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(accent),

		Weekday: lipgloss.NewStyle().
			Bold(true).
			Foreground(sec),

		Cell: lipgloss.NewStyle().
			Foreground(fg),

		CellOut: lipgloss.NewStyle().
			Foreground(TextMuted),

		CellToday: lipgloss.NewStyle().
			Bold(true).
			Foreground(accent),

		CellSel: lipgloss.NewStyle().
			Bold(true).
			Foreground(bg).
			Background(accent),

		HourLabel: lipgloss.NewStyle().
			Foreground(TextMuted),

		Panel: lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderLeft(true).
			BorderForeground(Border).
			Padding(0, 1),

		PanelFocus: lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderLeft(true).
			BorderForeground(accent).
			Padding(0, 1),

		TaskItem: lipgloss.NewStyle().
			Foreground(fg),

		TaskSel: lipgloss.NewStyle().
			Bold(true).
			Foreground(accent),

		TaskDone: lipgloss.NewStyle().
			Foreground(TextMuted).
			Strikethrough(true),

		StatusBar: lipgloss.NewStyle().
			Foreground(TextMuted).
			Padding(0, 1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(Border),

		Modal: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 2),

		Help: lipgloss.NewStyle().
			Foreground(TextMuted),

		Error: lipgloss.NewStyle().
			Foreground(PriorityHighColor),
	}
}

// Swatch renders a small block in every color of a palette
func Swatch(p theme.Palette, mode theme.Mode) string {
	c := p.Colors(mode)
	var s string
	for _, hex := range []string{c.Background, c.Foreground, c.Accent, c.SecAccent} {
		s += lipgloss.NewStyle().Background(lipgloss.Color(hex)).Render("  ")
	}
	return s
}

// GetPriorityStyle returns the style for a given priority
func GetPriorityStyle(p model.Priority) lipgloss.Style {
	switch p {
	case model.PriorityHigh:
		return lipgloss.NewStyle().Foreground(PriorityHighColor).Bold(true)
	case model.PriorityMedium:
		return lipgloss.NewStyle().Foreground(PriorityMediumColor)
	default:
		return lipgloss.NewStyle().Foreground(PriorityLowColor)
	}
}

// FormatPriority returns a colored priority label
func FormatPriority(p model.Priority) string {
	return GetPriorityStyle(p).Render(p.String())
}
