package app

import (
	"database/sql"

	"github.com/kalendo/kalendo/internal/config"
	"github.com/kalendo/kalendo/internal/event_bus"
	"github.com/kalendo/kalendo/internal/utils"
	"github.com/kalendo/kalendo/pkg/demo"
	"github.com/kalendo/kalendo/pkg/event"
	"github.com/kalendo/kalendo/pkg/ics"
	"github.com/kalendo/kalendo/pkg/recurrence"
	"github.com/kalendo/kalendo/pkg/schedule"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	Bus *event_bus.EventBus

	Expander *recurrence.Expander
	Resolver *schedule.Resolver

	EventRepo    event.EventRepository
	EventService *event.EventServiceImpl
	EventHandler *event.EventHandler

	FeedService *ics.Service
	FeedHandler *ics.Handler

	DemoGenerator *demo.Generator

	Clock utils.Clock
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(db *sql.DB, cfg config.Application) *Dependencies {
	deps := &Dependencies{}

	deps.Bus = event_bus.NewEventBus()
	deps.Clock = &utils.SystemClock{}

	deps.Expander = recurrence.NewExpander(cfg.Calendar.ExpansionStepLimit)
	deps.Resolver = schedule.NewResolver(deps.Expander)

	deps.EventRepo = event.NewSnapshotRepository(db)
	deps.EventService = event.NewEventService(deps.EventRepo, deps.Resolver, deps.Bus)
	deps.EventHandler = event.NewEventHandler(deps.EventService)

	deps.FeedService = ics.NewService(deps.EventService, deps.Clock, deps.Bus)
	deps.FeedHandler = ics.NewHandler(deps.FeedService)

	deps.DemoGenerator = demo.NewGenerator(deps.EventService, deps.Clock)

	return deps
}
