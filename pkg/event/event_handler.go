package event

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/kalendo/kalendo/internal/rest"
	"github.com/kalendo/kalendo/pkg/recurrence"
	log "github.com/sirupsen/logrus"
)

type EventDTO struct {
	ID                 string `json:"id"`
	Title              string `json:"title"`
	Date               string `json:"date"`
	StartTime          string `json:"startTime"`
	EndTime            string `json:"endTime"`
	Description        string `json:"description,omitempty"`
	Category           string `json:"category"`
	Color              string `json:"color,omitempty"`
	Recurring          bool   `json:"recurring"`
	RecurrencePattern  string `json:"recurrencePattern,omitempty"`
	RecurrenceInterval int    `json:"recurrenceInterval,omitempty"`
}

type DayScheduleDTO struct {
	Date   string     `json:"date"`
	Events []EventDTO `json:"events"`
}

type MonthDTO struct {
	Year  int              `json:"year"`
	Month int              `json:"month"`
	Days  []DayScheduleDTO `json:"days"`
}

type EventHandler struct {
	eventService EventService
}

func NewEventHandler(eventService EventService) *EventHandler {
	return &EventHandler{eventService}
}

func (h *EventHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	events, err := h.eventService.List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeEvents(w, http.StatusOK, events)
}

func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating new event")
	w.Header().Set("Content-Type", "application/json")

	var dto EventDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := h.eventService.Create(r.Context(), DTOToEvent(dto))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(EventToDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *EventHandler) Update(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	vars := mux.Vars(r)
	eventId := vars["eventId"]

	var dto EventDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if dto.ID == "" || dto.ID != eventId {
		http.Error(w, "Invalid event id in request body", http.StatusBadRequest)
		return
	}

	updated, err := h.eventService.Update(r.Context(), DTOToEvent(dto))
	if err != nil {
		if errors.Is(err, ErrEventNotFound) {
			http.Error(w, "Event not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(EventToDTO(updated)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	eventId := vars["eventId"]

	ok, err := h.eventService.Delete(r.Context(), eventId)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !ok {
		http.Error(w, "Event not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *EventHandler) GetOccurrences(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	date := r.URL.Query().Get("date")

	events, err := h.eventService.EventsOnDate(r.Context(), date)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		if encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error:   "Invalid date format",
			Details: "'date' must be in YYYY-MM-DD format",
		}); encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
		}
		return
	}

	writeEvents(w, http.StatusOK, events)
}

func (h *EventHandler) GetMonth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	year, errYear := strconv.Atoi(r.URL.Query().Get("year"))
	month, errMonth := strconv.Atoi(r.URL.Query().Get("month"))
	if errYear != nil || errMonth != nil || month < 1 || month > 12 {
		w.WriteHeader(http.StatusBadRequest)
		if encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error:   "Invalid year/month",
			Details: "'year' must be a number and 'month' must be 1-12",
		}); encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
		}
		return
	}

	days, err := h.eventService.Month(r.Context(), year, time.Month(month))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dto := MonthDTO{Year: year, Month: month, Days: make([]DayScheduleDTO, 0, len(days))}
	for _, d := range days {
		dayDTO := DayScheduleDTO{Date: d.Date, Events: make([]EventDTO, 0, len(d.Events))}
		for _, e := range d.Events {
			dayDTO.Events = append(dayDTO.Events, EventToDTO(e))
		}
		dto.Days = append(dto.Days, dayDTO)
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dto); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// GetConflicts returns the stored events colliding with the candidate in the
// request body. The candidate is not persisted; the add/edit form calls this
// on every change. "?expand=true" switches to recurrence-aware checking.
func (h *EventHandler) GetConflicts(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var dto EventDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	expand := r.URL.Query().Get("expand") == "true"

	conflicts, err := h.eventService.Conflicts(r.Context(), DTOToEvent(dto), expand)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeEvents(w, http.StatusOK, conflicts)
}

func writeEvents(w http.ResponseWriter, status int, events []Event) {
	dtos := make([]EventDTO, 0, len(events))
	for _, e := range events {
		dtos = append(dtos, EventToDTO(e))
	}

	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func EventToDTO(e Event) EventDTO {
	dto := EventDTO{
		ID:          e.ID,
		Title:       e.Title,
		Date:        e.Date,
		StartTime:   e.StartTime,
		EndTime:     e.EndTime,
		Description: e.Description,
		Category:    string(e.Category),
		Color:       e.Category.Color(),
		Recurring:   e.Recurring,
	}
	if e.Recurring {
		dto.RecurrencePattern = string(e.RecurrencePattern)
		dto.RecurrenceInterval = e.RecurrenceInterval
	}
	return dto
}

func DTOToEvent(dto EventDTO) Event {
	return Event{
		ID:                 dto.ID,
		Title:              dto.Title,
		Date:               dto.Date,
		StartTime:          dto.StartTime,
		EndTime:            dto.EndTime,
		Description:        dto.Description,
		Category:           Category(dto.Category),
		Recurring:          dto.Recurring,
		RecurrencePattern:  recurrence.Pattern(dto.RecurrencePattern),
		RecurrenceInterval: dto.RecurrenceInterval,
	}
}
