package event

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/kalendo/kalendo/internal/event_bus"
	"github.com/kalendo/kalendo/internal/utils"
	log "github.com/sirupsen/logrus"
)

// DaySchedule is one cell of the monthly grid: a calendar day and the events
// occurring on it, ordered by start time.
type DaySchedule struct {
	Date   string
	Events []Event
}

// Resolver is the slice of the scheduling core this service depends on.
// Satisfied by *schedule.Resolver.
type Resolver interface {
	EventsOn(events []Event, day time.Time) []Event
	SortByStart(events []Event)
	Conflicts(candidate Event, existing []Event) []Event
	ConflictsExpanded(candidate Event, existing []Event) []Event
}

type EventService interface {
	List(ctx context.Context) ([]Event, error)
	Create(ctx context.Context, e Event) (Event, error)
	Update(ctx context.Context, e Event) (Event, error)
	Delete(ctx context.Context, id string) (bool, error)
	EventsOnDate(ctx context.Context, date string) ([]Event, error)
	Month(ctx context.Context, year int, month time.Month) ([]DaySchedule, error)
	Conflicts(ctx context.Context, candidate Event, expand bool) ([]Event, error)
}

type EventServiceImpl struct {
	repo     EventRepository
	resolver Resolver
	bus      *event_bus.EventBus
}

func NewEventService(repo EventRepository, resolver Resolver, bus *event_bus.EventBus) *EventServiceImpl {
	return &EventServiceImpl{repo: repo, resolver: resolver, bus: bus}
}

func (s *EventServiceImpl) List(ctx context.Context) ([]Event, error) {
	events, err := s.repo.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load events: %w", err)
	}
	return events, nil
}

// Create validates and normalizes the event, assigns it an identifier, and
// appends it to the stored list.
func (s *EventServiceImpl) Create(ctx context.Context, e Event) (Event, error) {
	e = e.Normalize()
	if err := e.Validate(); err != nil {
		return Event{}, err
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}

	events, err := s.repo.LoadAll(ctx)
	if err != nil {
		return Event{}, fmt.Errorf("failed to load events: %w", err)
	}
	events = append(events, e)
	if err := s.repo.SaveAll(ctx, events); err != nil {
		return Event{}, fmt.Errorf("failed to save events: %w", err)
	}

	s.publish(ctx, event_bus.EventCreated, e)
	return e, nil
}

// Update replaces the stored event with the same ID in place, keeping its
// position in the list. Returns ErrEventNotFound for an unknown ID.
func (s *EventServiceImpl) Update(ctx context.Context, e Event) (Event, error) {
	e = e.Normalize()
	if err := e.Validate(); err != nil {
		return Event{}, err
	}

	events, err := s.repo.LoadAll(ctx)
	if err != nil {
		return Event{}, fmt.Errorf("failed to load events: %w", err)
	}

	updated := false
	for i := range events {
		if events[i].ID == e.ID {
			events[i] = e
			updated = true
			break
		}
	}
	if !updated {
		return Event{}, ErrEventNotFound
	}

	if err := s.repo.SaveAll(ctx, events); err != nil {
		return Event{}, fmt.Errorf("failed to save events: %w", err)
	}

	s.publish(ctx, event_bus.EventUpdated, e)
	return e, nil
}

func (s *EventServiceImpl) Delete(ctx context.Context, id string) (bool, error) {
	events, err := s.repo.LoadAll(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to load events: %w", err)
	}

	remaining := make([]Event, 0, len(events))
	var deleted *Event
	for _, e := range events {
		if e.ID == id {
			e := e
			deleted = &e
			continue
		}
		remaining = append(remaining, e)
	}
	if deleted == nil {
		return false, nil
	}

	if err := s.repo.SaveAll(ctx, remaining); err != nil {
		return false, fmt.Errorf("failed to save events: %w", err)
	}

	s.publish(ctx, event_bus.EventDeleted, *deleted)
	return true, nil
}

// EventsOnDate returns the events occurring on the given "YYYY-MM-DD" day,
// ordered by start time.
func (s *EventServiceImpl) EventsOnDate(ctx context.Context, date string) ([]Event, error) {
	day, err := utils.ParseDate(date)
	if err != nil {
		return nil, err
	}

	events, err := s.repo.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load events: %w", err)
	}

	occurring := s.resolver.EventsOn(events, day)
	s.resolver.SortByStart(occurring)
	return occurring, nil
}

// Month resolves the occurrences for every day of the given month. This is
// the data source behind the monthly grid.
func (s *EventServiceImpl) Month(ctx context.Context, year int, month time.Month) ([]DaySchedule, error) {
	if month < time.January || month > time.December {
		return nil, fmt.Errorf("invalid month: %d", month)
	}

	events, err := s.repo.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load events: %w", err)
	}

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	daysInMonth := first.AddDate(0, 1, -1).Day()

	days := make([]DaySchedule, 0, daysInMonth)
	for d := 0; d < daysInMonth; d++ {
		day := first.AddDate(0, 0, d)
		occurring := s.resolver.EventsOn(events, day)
		s.resolver.SortByStart(occurring)
		days = append(days, DaySchedule{Date: utils.FormatDate(day), Events: occurring})
	}
	return days, nil
}

// Conflicts returns the stored events whose time interval collides with the
// candidate's. The default check compares literal anchor dates only; expand
// switches to the recurrence-aware variant.
func (s *EventServiceImpl) Conflicts(ctx context.Context, candidate Event, expand bool) ([]Event, error) {
	events, err := s.repo.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load events: %w", err)
	}

	candidate = candidate.Normalize()
	if expand {
		return s.resolver.ConflictsExpanded(candidate, events), nil
	}
	return s.resolver.Conflicts(candidate, events), nil
}

func (s *EventServiceImpl) publish(ctx context.Context, eventType event_bus.EventType, e Event) {
	if s.bus == nil {
		return
	}
	change := event_bus.EventChanged{ID: e.ID, Title: e.Title, Date: e.Date}
	if err := s.bus.Publish(event_bus.NewEvent(ctx, eventType, change)); err != nil {
		log.Warnf("failed to publish %s: %v", eventType, err)
	}
}
