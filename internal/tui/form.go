package tui

import (
	"errors"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/existflow/mandarina/internal/calendar"
	"github.com/existflow/mandarina/internal/model"
)

// form fields in tab order
const (
	fieldTitle = iota
	fieldContent
	fieldDate
	fieldTime
	fieldPriority
	fieldCount
)

var fieldLabels = [fieldCount]string{"Title", "Content", "Date", "Time", "Priority"}

// addForm collects a draft task
type addForm struct {
	inputs   [fieldPriority]textinput.Model
	priority model.Priority
	focus    int
	err      string
}

func newAddForm(date calendar.Date, f calendar.HourFormat) addForm {
	var form addForm
	for i := range form.inputs {
		ti := textinput.New()
		ti.Width = 40
		form.inputs[i] = ti
	}
	form.inputs[fieldTitle].Placeholder = "What needs doing?"
	form.inputs[fieldTitle].CharLimit = model.MaxTitleLength
	form.inputs[fieldContent].Placeholder = "Details (optional)"
	form.inputs[fieldContent].CharLimit = model.MaxContentLength
	form.inputs[fieldDate].Placeholder = "yyyy-mm-dd"
	form.inputs[fieldDate].CharLimit = 10
	form.inputs[fieldTime].CharLimit = 8
	form.reset(date, f)
	return form
}

// reset clears the form and prefills the date and 09:00
func (f *addForm) reset(date calendar.Date, hf calendar.HourFormat) {
	for i := range f.inputs {
		f.inputs[i].SetValue("")
		f.inputs[i].Blur()
	}
	f.inputs[fieldDate].SetValue(date.String())
	f.inputs[fieldTime].Placeholder = calendar.FormatTime(9, 0, hf)
	f.inputs[fieldTime].SetValue(calendar.FormatTime(9, 0, hf))
	f.priority = model.PriorityLow
	f.focus = fieldTitle
	f.err = ""
	f.inputs[fieldTitle].Focus()
}

func (f *addForm) setFocus(i int) {
	if i < 0 {
		i = fieldCount - 1
	}
	f.focus = i % fieldCount
	for j := range f.inputs {
		if j == f.focus {
			f.inputs[j].Focus()
		} else {
			f.inputs[j].Blur()
		}
	}
}

func (f *addForm) cyclePriority(step int) {
	ps := model.Priorities()
	idx := 0
	for i, p := range ps {
		if p == f.priority {
			idx = i
		}
	}
	idx = (idx + step + len(ps)) % len(ps)
	f.priority = ps[idx]
}

// draft turns the inputs into an unvalidated draft; only parse errors are reported here
func (f *addForm) draft(owner string) (model.Draft, error) {
	date, err := calendar.ParseDate(f.inputs[fieldDate].Value())
	if err != nil {
		return model.Draft{}, errors.New("date must look like yyyy-mm-dd")
	}
	hour, minute, err := calendar.ParseClock(f.inputs[fieldTime].Value())
	if err != nil {
		return model.Draft{}, err
	}
	return model.Draft{
		Title:    f.inputs[fieldTitle].Value(),
		Content:  f.inputs[fieldContent].Value(),
		Priority: f.priority,
		Date:     date,
		Hour:     hour,
		Minute:   minute,
		OwnerID:  owner,
	}, nil
}

// update routes keys inside the form; it never handles Enter or Escape
func (f addForm) update(msg tea.KeyMsg) (addForm, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Tab), msg.String() == "down":
		f.setFocus(f.focus + 1)
		return f, textinput.Blink
	case msg.String() == "shift+tab", msg.String() == "up":
		f.setFocus(f.focus - 1)
		return f, textinput.Blink
	}

	if f.focus == fieldPriority {
		switch msg.String() {
		case "left", "h":
			f.cyclePriority(-1)
		case "right", "l", " ":
			f.cyclePriority(1)
		case "1":
			f.priority = model.PriorityLow
		case "2":
			f.priority = model.PriorityMedium
		case "3":
			f.priority = model.PriorityHigh
		}
		return f, nil
	}

	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd
}

// errorText turns a store error into the line shown under the form
func errorText(err error) string {
	var verr *model.ValidationError
	if errors.As(err, &verr) {
		switch verr.Reason {
		case model.EmptyTitle:
			return "Title cannot have an empty value."
		case model.InvalidDate:
			return "That date does not exist."
		}
		return string(verr.Reason)
	}
	return err.Error()
}
