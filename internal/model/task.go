package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/existflow/mandarina/internal/calendar"
)

// Priority of a task, fixed when the task is created
type Priority int

const (
	PriorityLow    Priority = iota + 1 // default
	PriorityMedium
	PriorityHigh
)

var priorityNames = map[Priority]string{
	PriorityLow:    "Low",
	PriorityMedium: "Medium",
	PriorityHigh:   "High",
}

// Priorities lists every priority from lowest to highest
func Priorities() []Priority {
	return []Priority{PriorityLow, PriorityMedium, PriorityHigh}
}

// String returns the stored form: Low, Medium or High
func (p Priority) String() string {
	if name, ok := priorityNames[p]; ok {
		return name
	}
	return fmt.Sprintf("Priority(%d)", int(p))
}

// Valid reports whether p is one of the declared priorities
func (p Priority) Valid() bool {
	_, ok := priorityNames[p]
	return ok
}

// ParsePriority accepts the stored name in any case
func ParsePriority(s string) (Priority, error) {
	for p, name := range priorityNames {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			return p, nil
		}
	}
	return 0, fmt.Errorf("unknown priority %q (want Low, Medium or High)", s)
}

// MarshalText encodes p by name
func (p Priority) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("invalid priority %d", int(p))
	}
	return []byte(p.String()), nil
}

// UnmarshalText decodes a priority name
func (p *Priority) UnmarshalText(text []byte) error {
	v, err := ParsePriority(string(text))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// Status of a task; the only transition is Pending -> Completed
type Status int

const (
	StatusPending Status = iota
	StatusCompleted
)

// String returns the stored form: Pending or Completed
func (s Status) String() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusCompleted:
		return "Completed"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// ParseStatus reads a stored status
func ParseStatus(s string) (Status, error) {
	switch {
	case strings.EqualFold(s, "Pending"):
		return StatusPending, nil
	case strings.EqualFold(s, "Completed"):
		return StatusCompleted, nil
	default:
		return 0, fmt.Errorf("unknown status %q", s)
	}
}

// MarshalText encodes s by name
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a status name
func (s *Status) UnmarshalText(text []byte) error {
	v, err := ParseStatus(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Task is a persisted, scheduled item
type Task struct {
	ID        string        `json:"id"`
	Title     string        `json:"title"`
	Content   string        `json:"content"`
	Priority  Priority      `json:"priority"`
	Status    Status        `json:"status"`
	Date      calendar.Date `json:"date"`
	Hour      int           `json:"hour"`
	Minute    int           `json:"minute"`
	OwnerID   string        `json:"owner_id"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// IsCompleted returns true once the task has been marked done
func (t *Task) IsCompleted() bool {
	return t.Status == StatusCompleted
}

// IsOverdue returns true if a pending task's scheduled time has passed
func (t *Task) IsOverdue(now time.Time) bool {
	if t.IsCompleted() {
		return false
	}
	due := time.Date(t.Date.Year, t.Date.Month, t.Date.Day, t.Hour, t.Minute, 0, 0, now.Location())
	return due.Before(now)
}

// Time formats the scheduled time for display
func (t *Task) Time(f calendar.HourFormat) string {
	return calendar.FormatTime(t.Hour, t.Minute, f)
}
