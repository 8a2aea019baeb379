package app

import (
	"github.com/gorilla/mux"
	"github.com/kalendo/kalendo/internal/config"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Events
	r.HandleFunc("/api/event", deps.EventHandler.GetAll).Methods("GET")
	r.HandleFunc("/api/event", deps.EventHandler.Create).Methods("POST")
	r.HandleFunc("/api/event/occurrences", deps.EventHandler.GetOccurrences).Queries("date", "{date}").Methods("GET")
	r.HandleFunc("/api/event/conflicts", deps.EventHandler.GetConflicts).Methods("POST")
	r.HandleFunc("/api/event/{eventId}", deps.EventHandler.Update).Methods("PUT")
	r.HandleFunc("/api/event/{eventId}", deps.EventHandler.Delete).Methods("DELETE")

	// Calendar views
	r.HandleFunc("/api/calendar/month", deps.EventHandler.GetMonth).Queries("year", "{year}", "month", "{month}").Methods("GET")
	r.HandleFunc("/api/calendar/feed.ics", deps.FeedHandler.GetFeed).Methods("GET")
}
