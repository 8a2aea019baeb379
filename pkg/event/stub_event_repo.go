package event

import (
	"context"
)

// StubEventRepository is an in-memory EventRepository for tests.
type StubEventRepository struct {
	events []Event
}

func NewStubEventRepository() *StubEventRepository {
	return &StubEventRepository{events: []Event{}}
}

func (r *StubEventRepository) LoadAll(_ context.Context) ([]Event, error) {
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out, nil
}

func (r *StubEventRepository) SaveAll(_ context.Context, events []Event) error {
	r.events = make([]Event, len(events))
	copy(r.events, events)
	return nil
}

func (r *StubEventRepository) Cleanup() {
	r.events = []Event{}
}
