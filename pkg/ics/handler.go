package ics

import (
	"net/http"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service}
}

// GetFeed serves the calendar as an iCalendar document.
func (h *Handler) GetFeed(w http.ResponseWriter, r *http.Request) {
	feed, err := h.service.Render(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `inline; filename="calendar.ics"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(feed)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}
