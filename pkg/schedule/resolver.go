package schedule

import (
	"sort"
	"time"

	"github.com/kalendo/kalendo/internal/utils"
	"github.com/kalendo/kalendo/pkg/event"
	"github.com/kalendo/kalendo/pkg/recurrence"
)

// Resolver answers "does event E occur on date D?" and "which existing events
// collide with this candidate?". Both are pure computations over the supplied
// event list; the resolver holds no event state of its own.
type Resolver struct {
	expander *recurrence.Expander
}

func NewResolver(expander *recurrence.Expander) *Resolver {
	return &Resolver{expander: expander}
}

// OccursOn reports whether e takes place on the given calendar day. A
// non-recurring event occurs only on its literal anchor date. A recurring
// event occurs on every expanded occurrence date within the default horizon.
// An event with an unparseable anchor date never occurs anywhere.
func (r *Resolver) OccursOn(e event.Event, day time.Time) bool {
	day = utils.Midnight(day)

	if !e.Recurring {
		anchor, err := utils.ParseDate(e.Date)
		if err != nil {
			return false
		}
		return utils.SameDay(anchor, day)
	}

	for _, occurrence := range r.expander.Expand(e.Date, e.RecurrencePattern, e.RecurrenceInterval) {
		if utils.SameDay(occurrence, day) {
			return true
		}
	}
	return false
}

// EventsOn filters events down to those occurring on the given day,
// preserving the input order.
func (r *Resolver) EventsOn(events []event.Event, day time.Time) []event.Event {
	result := make([]event.Event, 0, len(events))
	for _, e := range events {
		if r.OccursOn(e, day) {
			result = append(result, e)
		}
	}
	return result
}

// SortByStart orders events by start time, in place. See the package-level
// function of the same name.
func (r *Resolver) SortByStart(events []event.Event) {
	SortByStart(events)
}

// SortByStart orders events by start time, in place. The sort is stable and
// a missing or malformed start time counts as "00:00" for ordering only.
func SortByStart(events []event.Event) {
	sort.SliceStable(events, func(i, j int) bool {
		return startForOrdering(events[i]) < startForOrdering(events[j])
	})
}

func startForOrdering(e event.Event) string {
	if utils.ValidClock(e.StartTime) {
		return e.StartTime
	}
	return "00:00"
}

// Conflicts returns the existing events whose time interval overlaps the
// candidate's on the candidate's date. Only literal anchor dates are
// compared: recurring events are not expanded here, so a recurring event
// conflicts only through its first occurrence. An existing event sharing the
// candidate's ID is skipped, which lets an edit be re-validated against the
// rest of the calendar without colliding with itself.
//
// Intervals are half-open: an event ending exactly when another starts does
// not conflict. A pair with a malformed time string contributes no conflict
// signal; the check degrades silently instead of blocking valid events.
func (r *Resolver) Conflicts(candidate event.Event, existing []event.Event) []event.Event {
	candidateDay, err := utils.ParseDate(candidate.Date)
	if err != nil {
		return nil
	}
	if !utils.ValidClock(candidate.StartTime) || !utils.ValidClock(candidate.EndTime) {
		return nil
	}

	conflicts := make([]event.Event, 0)
	for _, other := range existing {
		if other.ID == candidate.ID {
			continue
		}
		otherDay, err := utils.ParseDate(other.Date)
		if err != nil || !utils.SameDay(otherDay, candidateDay) {
			continue
		}
		if overlaps(candidate, other) {
			conflicts = append(conflicts, other)
		}
	}
	return conflicts
}

// ConflictsExpanded is the recurrence-aware variant of Conflicts: both sides
// are expanded within the default horizon, so a weekly meeting collides with
// anything sharing any of its occurrence days, not just its anchor. It is a
// deliberately separate operation; Conflicts keeps the literal-date behavior.
func (r *Resolver) ConflictsExpanded(candidate event.Event, existing []event.Event) []event.Event {
	if !utils.ValidClock(candidate.StartTime) || !utils.ValidClock(candidate.EndTime) {
		return nil
	}

	candidateDays := r.expander.Expand(candidate.Date, candidate.RecurrencePattern, effectiveInterval(candidate))

	conflicts := make([]event.Event, 0)
	for _, other := range existing {
		if other.ID == candidate.ID {
			continue
		}
		if !overlaps(candidate, other) {
			continue
		}
		for _, day := range candidateDays {
			if r.OccursOn(other, day) {
				conflicts = append(conflicts, other)
				break
			}
		}
	}
	return conflicts
}

func effectiveInterval(e event.Event) int {
	if e.Recurring {
		return e.RecurrenceInterval
	}
	return recurrence.MinInterval
}

// overlaps applies the standard open overlap test to two same-day intervals.
// Zero-padded HH:MM strings compare correctly lexically; anything malformed
// yields no determinable conflict.
func overlaps(a, b event.Event) bool {
	if !utils.ValidClock(a.StartTime) || !utils.ValidClock(a.EndTime) ||
		!utils.ValidClock(b.StartTime) || !utils.ValidClock(b.EndTime) {
		return false
	}
	return a.StartTime < b.EndTime && a.EndTime > b.StartTime
}
