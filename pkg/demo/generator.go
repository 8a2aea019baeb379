package demo

import (
	"context"
	"fmt"

	"github.com/kalendo/kalendo/internal/utils"
	"github.com/kalendo/kalendo/pkg/event"
	"github.com/kalendo/kalendo/pkg/recurrence"
	log "github.com/sirupsen/logrus"
)

// EventStore is the slice of the event service the generator needs.
type EventStore interface {
	List(ctx context.Context) ([]event.Event, error)
	Create(ctx context.Context, e event.Event) (event.Event, error)
}

// Generator seeds a representative set of sample events for dev mode.
type Generator struct {
	events EventStore
	clock  utils.Clock
}

func NewGenerator(events EventStore, clock utils.Clock) *Generator {
	return &Generator{events: events, clock: clock}
}

// Seed populates the store with sample events spread around the current
// month. It is a no-op when the store already holds any events, so restarting
// dev mode never duplicates data.
func (g *Generator) Seed(ctx context.Context) error {
	existing, err := g.events.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to check existing events: %w", err)
	}
	if len(existing) > 0 {
		log.Debug("demo: store is not empty, skipping seed")
		return nil
	}

	monthStart := utils.Midnight(g.clock.Now()).AddDate(0, 0, 1-g.clock.Now().Day())

	samples := []event.Event{
		{
			Title:              "Daily standup",
			Date:               utils.FormatDate(monthStart.AddDate(0, 0, 1)),
			StartTime:          "09:00",
			EndTime:            "09:15",
			Description:        "Quick sync with the team",
			Category:           event.CategoryMeeting,
			Recurring:          true,
			RecurrencePattern:  recurrence.PatternDaily,
			RecurrenceInterval: 1,
		},
		{
			Title:              "Sprint review",
			Date:               utils.FormatDate(monthStart.AddDate(0, 0, 4)),
			StartTime:          "14:00",
			EndTime:            "15:00",
			Category:           event.CategoryWork,
			Recurring:          true,
			RecurrencePattern:  recurrence.PatternWeekly,
			RecurrenceInterval: 2,
		},
		{
			Title:              "Rent due",
			Date:               utils.FormatDate(monthStart),
			StartTime:          "08:00",
			EndTime:            "08:30",
			Category:           event.CategoryDeadline,
			Recurring:          true,
			RecurrencePattern:  recurrence.PatternMonthly,
			RecurrenceInterval: 1,
		},
		{
			Title:       "Dentist appointment",
			Date:        utils.FormatDate(monthStart.AddDate(0, 0, 9)),
			StartTime:   "11:30",
			EndTime:     "12:15",
			Description: "Annual checkup",
			Category:    event.CategoryHealth,
		},
		{
			Title:     "Dinner with Sam",
			Date:      utils.FormatDate(monthStart.AddDate(0, 0, 12)),
			StartTime: "19:00",
			EndTime:   "21:00",
			Category:  event.CategorySocial,
		},
		{
			Title:     "Flight to Lisbon",
			Date:      utils.FormatDate(monthStart.AddDate(0, 0, 18)),
			StartTime: "06:45",
			EndTime:   "10:20",
			Category:  event.CategoryTravel,
		},
	}

	for _, sample := range samples {
		if _, err := g.events.Create(ctx, sample); err != nil {
			return fmt.Errorf("failed to seed sample event %q: %w", sample.Title, err)
		}
	}

	log.Infof("demo: seeded %d sample events", len(samples))
	return nil
}
