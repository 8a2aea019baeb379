package event

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kalendo/kalendo/internal/utils"
	"github.com/kalendo/kalendo/pkg/recurrence"
)

var ErrEventNotFound = errors.New("event not found")

// Event is the unit of schedulable data. Date is the anchor date in
// "YYYY-MM-DD" form; for recurring events it marks the first occurrence.
// StartTime and EndTime are zero-padded "HH:MM" local times of day.
type Event struct {
	ID                 string
	Title              string
	Date               string
	StartTime          string
	EndTime            string
	Description        string
	Category           Category
	Recurring          bool
	RecurrencePattern  recurrence.Pattern
	RecurrenceInterval int
}

// Validate checks the invariants the form layer must guarantee before an
// event reaches storage or the scheduling core.
func (e Event) Validate() error {
	if strings.TrimSpace(e.Title) == "" {
		return errors.New("event title cannot be empty")
	}
	if _, err := utils.ParseDate(e.Date); err != nil {
		return fmt.Errorf("event date is invalid: %w", err)
	}
	if !utils.ValidClock(e.StartTime) {
		return fmt.Errorf("event start time %q is not a valid HH:MM value", e.StartTime)
	}
	if !utils.ValidClock(e.EndTime) {
		return fmt.Errorf("event end time %q is not a valid HH:MM value", e.EndTime)
	}
	if e.StartTime >= e.EndTime {
		return errors.New("event start time must be before end time")
	}
	if e.Recurring && !e.RecurrencePattern.Repeats() {
		return errors.New("recurring event must have a recurrence pattern")
	}
	return nil
}

// Normalize silently corrects the permissive fields: unknown categories fall
// back to CategoryOther, the recurrence interval is clamped into range, and
// non-recurring events carry no pattern.
func (e Event) Normalize() Event {
	e.Category = ParseCategory(string(e.Category))
	if e.Recurring {
		e.RecurrenceInterval = recurrence.ClampInterval(e.RecurrenceInterval)
	} else {
		e.RecurrencePattern = recurrence.PatternNone
		e.RecurrenceInterval = 0
	}
	return e
}
