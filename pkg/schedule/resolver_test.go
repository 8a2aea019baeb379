package schedule

import (
	"testing"
	"time"

	"github.com/kalendo/kalendo/pkg/event"
	"github.com/kalendo/kalendo/pkg/recurrence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var resolver = NewResolver(recurrence.NewExpander(0))

func day(s string) time.Time {
	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		panic(err)
	}
	return t
}

func timed(id, date, start, end string) event.Event {
	return event.Event{
		ID:        id,
		Title:     "Event " + id,
		Date:      date,
		StartTime: start,
		EndTime:   end,
	}
}

func TestOccursOn(t *testing.T) {
	t.Run("non-recurring event occurs only on its own date", func(t *testing.T) {
		e := timed("1", "2024-03-05", "09:00", "10:00")

		assert.True(t, resolver.OccursOn(e, day("2024-03-05")))
		assert.False(t, resolver.OccursOn(e, day("2024-03-06")))
		assert.False(t, resolver.OccursOn(e, day("2024-03-04")))
	})

	t.Run("recurring event occurs on expanded dates", func(t *testing.T) {
		e := timed("1", "2024-01-01", "09:00", "10:00")
		e.Recurring = true
		e.RecurrencePattern = recurrence.PatternWeekly
		e.RecurrenceInterval = 2

		assert.True(t, resolver.OccursOn(e, day("2024-01-01")))
		assert.True(t, resolver.OccursOn(e, day("2024-01-15")))
		assert.True(t, resolver.OccursOn(e, day("2024-02-12")))
		assert.False(t, resolver.OccursOn(e, day("2024-01-08")))
	})

	t.Run("time component of the probe date is ignored", func(t *testing.T) {
		e := timed("1", "2024-03-05", "09:00", "10:00")
		probe := day("2024-03-05").Add(17*time.Hour + 30*time.Minute)

		assert.True(t, resolver.OccursOn(e, probe))
	})

	t.Run("unparseable anchor date never occurs", func(t *testing.T) {
		e := timed("1", "garbage", "09:00", "10:00")
		assert.False(t, resolver.OccursOn(e, day("2024-03-05")))

		e.Recurring = true
		e.RecurrencePattern = recurrence.PatternDaily
		e.RecurrenceInterval = 1
		assert.False(t, resolver.OccursOn(e, day("2024-03-05")))
	})
}

func TestEventsOn(t *testing.T) {
	t.Run("preserves input order", func(t *testing.T) {
		zebra := timed("z", "2024-03-05", "15:00", "16:00")
		alpha := timed("a", "2024-03-05", "08:00", "09:00")
		other := timed("o", "2024-03-06", "08:00", "09:00")

		got := resolver.EventsOn([]event.Event{zebra, other, alpha}, day("2024-03-05"))

		require.Len(t, got, 2)
		assert.Equal(t, "z", got[0].ID)
		assert.Equal(t, "a", got[1].ID)
	})

	t.Run("empty result for empty day", func(t *testing.T) {
		events := []event.Event{timed("1", "2024-03-05", "09:00", "10:00")}
		assert.Empty(t, resolver.EventsOn(events, day("2024-07-01")))
	})
}

func TestSortByStart(t *testing.T) {
	t.Run("orders by start time with stable ties", func(t *testing.T) {
		events := []event.Event{
			timed("late", "2024-03-05", "15:00", "16:00"),
			timed("tie-1", "2024-03-05", "09:00", "10:00"),
			timed("tie-2", "2024-03-05", "09:00", "11:00"),
			timed("early", "2024-03-05", "07:30", "08:00"),
		}

		SortByStart(events)

		assert.Equal(t, "early", events[0].ID)
		assert.Equal(t, "tie-1", events[1].ID)
		assert.Equal(t, "tie-2", events[2].ID)
		assert.Equal(t, "late", events[3].ID)
	})

	t.Run("missing start time sorts as midnight", func(t *testing.T) {
		events := []event.Event{
			timed("timed", "2024-03-05", "08:00", "09:00"),
			timed("blank", "2024-03-05", "", "09:00"),
		}

		SortByStart(events)

		assert.Equal(t, "blank", events[0].ID)
	})
}

func TestConflicts(t *testing.T) {
	t.Run("nested interval conflicts", func(t *testing.T) {
		existing := timed("a", "2024-03-05", "09:00", "10:00")
		candidate := timed("b", "2024-03-05", "09:30", "09:45")

		got := resolver.Conflicts(candidate, []event.Event{existing})

		require.Len(t, got, 1)
		assert.Equal(t, "a", got[0].ID)
	})

	t.Run("half-open boundary does not conflict", func(t *testing.T) {
		first := timed("a", "2024-03-05", "09:00", "10:00")
		backToBack := timed("b", "2024-03-05", "10:00", "11:00")
		overlapping := timed("c", "2024-03-05", "09:00", "10:01")

		assert.Empty(t, resolver.Conflicts(backToBack, []event.Event{first}))
		assert.NotEmpty(t, resolver.Conflicts(backToBack, []event.Event{overlapping}))
	})

	t.Run("overlap is symmetric", func(t *testing.T) {
		a := timed("a", "2024-03-05", "09:00", "10:30")
		b := timed("b", "2024-03-05", "10:00", "11:00")

		assert.NotEmpty(t, resolver.Conflicts(a, []event.Event{b}))
		assert.NotEmpty(t, resolver.Conflicts(b, []event.Event{a}))

		c := timed("c", "2024-03-05", "12:00", "13:00")
		assert.Empty(t, resolver.Conflicts(a, []event.Event{c}))
		assert.Empty(t, resolver.Conflicts(c, []event.Event{a}))
	})

	t.Run("never conflicts with itself", func(t *testing.T) {
		e := timed("same", "2024-03-05", "09:00", "10:00")
		edited := e
		edited.EndTime = "11:00"

		assert.Empty(t, resolver.Conflicts(edited, []event.Event{e}))
	})

	t.Run("different day is never compared", func(t *testing.T) {
		candidate := timed("a", "2024-03-05", "09:00", "10:00")
		otherDay := timed("b", "2024-03-06", "09:00", "10:00")

		assert.Empty(t, resolver.Conflicts(candidate, []event.Event{otherDay}))
	})

	t.Run("recurring events are not expanded by default", func(t *testing.T) {
		standup := timed("standup", "2024-01-01", "09:00", "09:15")
		standup.Recurring = true
		standup.RecurrencePattern = recurrence.PatternDaily
		standup.RecurrenceInterval = 1

		// Collides with a later occurrence, but only the anchor date counts.
		candidate := timed("x", "2024-01-10", "09:00", "10:00")

		assert.Empty(t, resolver.Conflicts(candidate, []event.Event{standup}))
	})

	t.Run("malformed times contribute no conflict signal", func(t *testing.T) {
		broken := timed("broken", "2024-03-05", "9am", "10:00")
		valid := timed("valid", "2024-03-05", "09:00", "10:00")
		candidate := timed("cand", "2024-03-05", "09:30", "09:45")

		got := resolver.Conflicts(candidate, []event.Event{broken, valid})

		require.Len(t, got, 1)
		assert.Equal(t, "valid", got[0].ID)
	})

	t.Run("malformed candidate yields no conflicts", func(t *testing.T) {
		valid := timed("valid", "2024-03-05", "09:00", "10:00")

		assert.Empty(t, resolver.Conflicts(timed("c", "not-a-date", "09:00", "10:00"), []event.Event{valid}))
		assert.Empty(t, resolver.Conflicts(timed("c", "2024-03-05", "late", "10:00"), []event.Event{valid}))
	})
}

func TestConflictsExpanded(t *testing.T) {
	t.Run("detects collision with a later occurrence", func(t *testing.T) {
		standup := timed("standup", "2024-01-01", "09:00", "09:15")
		standup.Recurring = true
		standup.RecurrencePattern = recurrence.PatternDaily
		standup.RecurrenceInterval = 1

		candidate := timed("x", "2024-01-10", "09:00", "10:00")

		require.Empty(t, resolver.Conflicts(candidate, []event.Event{standup}))
		got := resolver.ConflictsExpanded(candidate, []event.Event{standup})
		require.Len(t, got, 1)
		assert.Equal(t, "standup", got[0].ID)
	})

	t.Run("expands the candidate side too", func(t *testing.T) {
		review := timed("review", "2024-02-12", "10:00", "11:00")

		candidate := timed("x", "2024-01-01", "10:30", "11:30")
		candidate.Recurring = true
		candidate.RecurrencePattern = recurrence.PatternWeekly
		candidate.RecurrenceInterval = 2

		got := resolver.ConflictsExpanded(candidate, []event.Event{review})
		require.Len(t, got, 1)
		assert.Equal(t, "review", got[0].ID)
	})

	t.Run("each existing event reported once", func(t *testing.T) {
		daily := timed("daily", "2024-01-01", "09:00", "10:00")
		daily.Recurring = true
		daily.RecurrencePattern = recurrence.PatternDaily
		daily.RecurrenceInterval = 1

		candidate := timed("x", "2024-01-01", "09:00", "10:00")
		candidate.Recurring = true
		candidate.RecurrencePattern = recurrence.PatternWeekly
		candidate.RecurrenceInterval = 1

		got := resolver.ConflictsExpanded(candidate, []event.Event{daily})
		assert.Len(t, got, 1)
	})

	t.Run("still excludes the candidate itself", func(t *testing.T) {
		e := timed("same", "2024-01-01", "09:00", "10:00")
		e.Recurring = true
		e.RecurrencePattern = recurrence.PatternDaily
		e.RecurrenceInterval = 1

		assert.Empty(t, resolver.ConflictsExpanded(e, []event.Event{e}))
	})

	t.Run("disjoint times never conflict regardless of expansion", func(t *testing.T) {
		daily := timed("daily", "2024-01-01", "09:00", "10:00")
		daily.Recurring = true
		daily.RecurrencePattern = recurrence.PatternDaily
		daily.RecurrenceInterval = 1

		candidate := timed("x", "2024-01-10", "10:00", "11:00")

		assert.Empty(t, resolver.ConflictsExpanded(candidate, []event.Event{daily}))
	})
}
