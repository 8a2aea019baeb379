package event

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/kalendo/kalendo/pkg/recurrence"
	log "github.com/sirupsen/logrus"
)

// snapshotKey is the single storage key the whole event list lives under.
// Persistence is one flat snapshot: the list is serialized and written as a
// whole, with no partial-write or migration semantics.
const snapshotKey = "calendar.events"

type EventRepository interface {
	// LoadAll returns the full stored event list in stored order.
	LoadAll(ctx context.Context) ([]Event, error)
	// SaveAll replaces the stored event list with the given one.
	SaveAll(ctx context.Context, events []Event) error
}

type storedEvent struct {
	ID                 string `json:"id"`
	Title              string `json:"title"`
	Date               string `json:"date"`
	StartTime          string `json:"startTime"`
	EndTime            string `json:"endTime"`
	Description        string `json:"description,omitempty"`
	Category           string `json:"category"`
	Recurring          bool   `json:"recurring"`
	RecurrencePattern  string `json:"recurrencePattern,omitempty"`
	RecurrenceInterval int    `json:"recurrenceInterval,omitempty"`
}

// SnapshotRepository persists the event list as one JSON blob in the
// snapshot key/value table.
type SnapshotRepository struct {
	db *sql.DB
}

func NewSnapshotRepository(db *sql.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

func (r *SnapshotRepository) LoadAll(ctx context.Context) ([]Event, error) {
	var blob []byte
	row := r.db.QueryRowContext(ctx, "SELECT value FROM snapshot WHERE key = ?", snapshotKey)
	if err := row.Scan(&blob); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return []Event{}, nil
		}
		err = fmt.Errorf("failed to load event snapshot: %w", err)
		log.Error(err)
		return nil, err
	}

	var stored []storedEvent
	if err := json.Unmarshal(blob, &stored); err != nil {
		err = fmt.Errorf("failed to decode event snapshot: %w", err)
		log.Error(err)
		return nil, err
	}

	events := make([]Event, 0, len(stored))
	for _, s := range stored {
		events = append(events, fromStored(s))
	}
	return events, nil
}

func (r *SnapshotRepository) SaveAll(ctx context.Context, events []Event) error {
	stored := make([]storedEvent, 0, len(events))
	for _, e := range events {
		stored = append(stored, toStored(e))
	}

	blob, err := json.Marshal(stored)
	if err != nil {
		err = fmt.Errorf("failed to encode event snapshot: %w", err)
		log.Error(err)
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO snapshot (key, value, updated_at) VALUES (?, ?, unixepoch())
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, snapshotKey, blob)
	if err != nil {
		err = fmt.Errorf("failed to store event snapshot: %w", err)
		log.Error(err)
		return err
	}
	return nil
}

func toStored(e Event) storedEvent {
	return storedEvent{
		ID:                 e.ID,
		Title:              e.Title,
		Date:               e.Date,
		StartTime:          e.StartTime,
		EndTime:            e.EndTime,
		Description:        e.Description,
		Category:           string(e.Category),
		Recurring:          e.Recurring,
		RecurrencePattern:  string(e.RecurrencePattern),
		RecurrenceInterval: e.RecurrenceInterval,
	}
}

func fromStored(s storedEvent) Event {
	e := Event{
		ID:                 s.ID,
		Title:              s.Title,
		Date:               s.Date,
		StartTime:          s.StartTime,
		EndTime:            s.EndTime,
		Description:        s.Description,
		Category:           Category(s.Category),
		Recurring:          s.Recurring,
		RecurrencePattern:  recurrence.Pattern(s.RecurrencePattern),
		RecurrenceInterval: s.RecurrenceInterval,
	}
	return e.Normalize()
}
