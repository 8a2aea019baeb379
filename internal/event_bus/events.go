package event_bus

// Calendar mutation topics published by the event service.
const (
	EventCreated EventType = "calendar.event.created"
	EventUpdated EventType = "calendar.event.updated"
	EventDeleted EventType = "calendar.event.deleted"
)

// EventChanged is the payload for all calendar mutation topics.
type EventChanged struct {
	ID    string
	Title string
	Date  string
}
