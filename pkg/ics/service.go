package ics

import (
	"context"
	"fmt"
	"sync"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/kalendo/kalendo/internal/event_bus"
	"github.com/kalendo/kalendo/internal/utils"
	"github.com/kalendo/kalendo/pkg/event"
	"github.com/kalendo/kalendo/pkg/recurrence"
	log "github.com/sirupsen/logrus"
	"github.com/teambition/rrule-go"
)

const productId = "-//kalendo//calendar//EN"

// EventLister is the slice of the event service the feed depends on.
type EventLister interface {
	List(ctx context.Context) ([]event.Event, error)
}

// Service renders the stored event list as an iCalendar feed. The rendered
// feed is cached until a calendar mutation is published on the event bus.
type Service struct {
	events EventLister
	clock  utils.Clock

	mu     sync.Mutex
	cached string
}

func NewService(events EventLister, clock utils.Clock, bus *event_bus.EventBus) *Service {
	s := &Service{events: events, clock: clock}
	if bus != nil {
		invalidate := func(event_bus.Event) error {
			s.Invalidate()
			return nil
		}
		bus.Subscribe(event_bus.EventCreated, invalidate)
		bus.Subscribe(event_bus.EventUpdated, invalidate)
		bus.Subscribe(event_bus.EventDeleted, invalidate)
	}
	return s
}

// Invalidate drops the cached feed so the next Render rebuilds it.
func (s *Service) Invalidate() {
	s.mu.Lock()
	s.cached = ""
	s.mu.Unlock()
}

// Render returns the full calendar as serialized iCalendar data. Events with
// unparseable dates or times are skipped rather than failing the feed.
func (s *Service) Render(ctx context.Context) (string, error) {
	s.mu.Lock()
	cached := s.cached
	s.mu.Unlock()
	if cached != "" {
		return cached, nil
	}

	events, err := s.events.List(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to load events for feed: %w", err)
	}

	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productId)

	now := s.clock.Now()
	for _, e := range events {
		if err := addEvent(cal, e, now); err != nil {
			log.Warnf("ics: skipping event %s: %v", e.ID, err)
		}
	}

	serialized := cal.Serialize()

	s.mu.Lock()
	s.cached = serialized
	s.mu.Unlock()
	return serialized, nil
}

func addEvent(cal *ical.Calendar, e event.Event, now time.Time) error {
	start, end, err := eventInterval(e)
	if err != nil {
		return err
	}

	vevent := cal.AddEvent(e.ID)
	vevent.SetDtStampTime(now)
	vevent.SetSummary(e.Title)
	vevent.SetStartAt(start)
	vevent.SetEndAt(end)
	if e.Description != "" {
		vevent.SetDescription(e.Description)
	}

	if e.Recurring && e.RecurrencePattern.Repeats() {
		rule, err := buildRRule(e, start)
		if err != nil {
			return err
		}
		vevent.AddRrule(rule)
	}
	return nil
}

// eventInterval combines the stored date and HH:MM times into absolute local
// timestamps.
func eventInterval(e event.Event) (time.Time, time.Time, error) {
	day, err := utils.ParseDate(e.Date)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	start, err := atClock(day, e.StartTime)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := atClock(day, e.EndTime)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}

func atClock(day time.Time, clock string) (time.Time, error) {
	t, err := time.Parse(utils.ClockLayout, clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time of day %q: %w", clock, err)
	}
	return day.Add(time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute), nil
}

// buildRRule produces the RRULE value for a recurring event. UNTIL is pinned
// to the same one-year horizon the in-app expansion uses, so subscribers see
// the same occurrence set the monthly grid shows.
func buildRRule(e event.Event, start time.Time) (string, error) {
	var freq rrule.Frequency
	switch e.RecurrencePattern {
	case recurrence.PatternDaily:
		freq = rrule.DAILY
	case recurrence.PatternWeekly:
		freq = rrule.WEEKLY
	case recurrence.PatternMonthly:
		freq = rrule.MONTHLY
	default:
		return "", fmt.Errorf("unsupported recurrence pattern %q", e.RecurrencePattern)
	}

	rule, err := rrule.NewRRule(rrule.ROption{
		Freq:     freq,
		Interval: recurrence.ClampInterval(e.RecurrenceInterval),
		Dtstart:  start,
		Until:    start.AddDate(1, 0, 0),
	})
	if err != nil {
		return "", fmt.Errorf("failed to build recurrence rule: %w", err)
	}
	return rule.OrigOptions.RRuleString(), nil
}
