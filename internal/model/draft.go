package model

import (
	"errors"
	"fmt"
	"strings"

	"github.com/existflow/mandarina/internal/calendar"
	"github.com/go-playground/validator/v10"
)

// Limits enforced on drafts
const (
	MaxTitleLength   = 256
	MaxContentLength = 4096
)

// ErrValidation is matched by every ValidationError
var ErrValidation = errors.New("validation failed")

// Reason says which rule a draft broke
type Reason string

const (
	EmptyTitle      Reason = "title cannot be empty"
	TitleTooLong    Reason = "title is too long"
	ContentTooLong  Reason = "content is too long"
	InvalidPriority Reason = "priority must be Low, Medium or High"
	InvalidTime     Reason = "time must be between 00:00 and 23:59"
	MissingOwner    Reason = "owner is required"
	InvalidDate     Reason = "date does not exist"
)

// ValidationError rejects a draft before anything is written
type ValidationError struct {
	Field  string
	Reason Reason
	Err    error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", ErrValidation, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s", ErrValidation, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Draft is a candidate task that has not been validated or stored yet
type Draft struct {
	Title    string   `validate:"required,max=256"`
	Content  string   `validate:"max=4096"`
	Priority Priority `validate:"min=1,max=3"`
	Date     calendar.Date
	Hour     int    `validate:"min=0,max=23"`
	Minute   int    `validate:"min=0,max=59"`
	OwnerID  string `validate:"required"`
}

var validate = validator.New()

// Normalize trims surrounding whitespace from the title
func (d Draft) Normalize() Draft {
	d.Title = strings.TrimSpace(d.Title)
	d.OwnerID = strings.TrimSpace(d.OwnerID)
	return d
}

// Validate checks the normalized draft and returns the first broken rule
// as a *ValidationError
func (d Draft) Validate() error {
	d = d.Normalize()

	if err := validate.Struct(d); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return fromFieldError(fieldErrs[0])
		}
		return err
	}

	if err := d.Date.Validate(); err != nil {
		return &ValidationError{Field: "Date", Reason: InvalidDate, Err: err}
	}
	return nil
}

func fromFieldError(fe validator.FieldError) *ValidationError {
	verr := &ValidationError{Field: fe.Field()}
	switch fe.Field() {
	case "Title":
		verr.Reason = EmptyTitle
		if fe.Tag() == "max" {
			verr.Reason = TitleTooLong
		}
	case "Content":
		verr.Reason = ContentTooLong
	case "Priority":
		verr.Reason = InvalidPriority
	case "Hour", "Minute":
		verr.Reason = InvalidTime
	case "OwnerID":
		verr.Reason = MissingOwner
	default:
		verr.Reason = Reason(fe.Error())
	}
	return verr
}
