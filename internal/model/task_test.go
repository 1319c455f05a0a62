package model

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/existflow/mandarina/internal/calendar"
)

func validDraft() Draft {
	return Draft{
		Title:    "Dentist",
		Content:  "bring the insurance card",
		Priority: PriorityHigh,
		Date:     calendar.Date{Year: 2025, Month: time.March, Day: 15},
		Hour:     14,
		Minute:   30,
		OwnerID:  "local",
	}
}

func TestDraftValidate(t *testing.T) {
	if err := validDraft().Validate(); err != nil {
		t.Fatalf("valid draft rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Draft)
		want   Reason
	}{
		{"empty title", func(d *Draft) { d.Title = "" }, EmptyTitle},
		{"blank title", func(d *Draft) { d.Title = "   \t" }, EmptyTitle},
		{"long title", func(d *Draft) { d.Title = strings.Repeat("x", MaxTitleLength+1) }, TitleTooLong},
		{"long content", func(d *Draft) { d.Content = strings.Repeat("x", MaxContentLength+1) }, ContentTooLong},
		{"zero priority", func(d *Draft) { d.Priority = 0 }, InvalidPriority},
		{"unknown priority", func(d *Draft) { d.Priority = 7 }, InvalidPriority},
		{"hour 24", func(d *Draft) { d.Hour = 24 }, InvalidTime},
		{"negative minute", func(d *Draft) { d.Minute = -1 }, InvalidTime},
		{"minute 60", func(d *Draft) { d.Minute = 60 }, InvalidTime},
		{"no owner", func(d *Draft) { d.OwnerID = "" }, MissingOwner},
		{"impossible date", func(d *Draft) { d.Date = calendar.Date{Year: 2023, Month: time.February, Day: 29} }, InvalidDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDraft()
			tt.mutate(&d)

			err := d.Validate()
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *ValidationError, got %T", err)
			}
			if verr.Reason != tt.want {
				t.Errorf("reason = %q, want %q", verr.Reason, tt.want)
			}
		})
	}
}

func TestDraftInvalidDateUnwraps(t *testing.T) {
	d := validDraft()
	d.Date = calendar.Date{Year: 2024, Month: time.April, Day: 31}
	if err := d.Validate(); !errors.Is(err, calendar.ErrInvalidDate) {
		t.Errorf("expected calendar.ErrInvalidDate in chain, got %v", err)
	}
}

func TestPriorityParse(t *testing.T) {
	for _, p := range Priorities() {
		got, err := ParsePriority(strings.ToLower(p.String()))
		if err != nil || got != p {
			t.Errorf("ParsePriority(%q) = %v, %v", p.String(), got, err)
		}
	}
	if _, err := ParsePriority("urgent"); err == nil {
		t.Error("ParsePriority accepted an unknown name")
	}
	if PriorityLow >= PriorityMedium || PriorityMedium >= PriorityHigh {
		t.Error("priorities are not ordered low to high")
	}
}

func TestStatusParse(t *testing.T) {
	if s, err := ParseStatus("Completed"); err != nil || s != StatusCompleted {
		t.Errorf("ParseStatus(Completed) = %v, %v", s, err)
	}
	if s, err := ParseStatus("pending"); err != nil || s != StatusPending {
		t.Errorf("ParseStatus(pending) = %v, %v", s, err)
	}
	if _, err := ParseStatus("process"); err == nil {
		t.Error("ParseStatus accepted an unknown status")
	}
}

func TestTaskJSON(t *testing.T) {
	task := Task{
		ID:       "abc",
		Title:    "Dentist",
		Priority: PriorityHigh,
		Status:   StatusPending,
		Date:     calendar.Date{Year: 2025, Month: time.March, Day: 15},
		Hour:     14,
		Minute:   30,
	}
	data, err := json.Marshal(task)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	for _, want := range []string{`"priority":"High"`, `"status":"Pending"`, `"date":"2025-03-15"`} {
		if !strings.Contains(string(data), want) {
			t.Errorf("JSON %s missing %s", data, want)
		}
	}
}

func TestTaskIsOverdue(t *testing.T) {
	task := Task{Date: calendar.Date{Year: 2025, Month: time.March, Day: 15}, Hour: 14, Minute: 30}
	before := time.Date(2025, time.March, 15, 14, 0, 0, 0, time.UTC)
	after := time.Date(2025, time.March, 15, 15, 0, 0, 0, time.UTC)

	if task.IsOverdue(before) {
		t.Error("task overdue before its time")
	}
	if !task.IsOverdue(after) {
		t.Error("task not overdue after its time")
	}
	task.Status = StatusCompleted
	if task.IsOverdue(after) {
		t.Error("completed task reported overdue")
	}
}
