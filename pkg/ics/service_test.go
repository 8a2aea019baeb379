package ics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/kalendo/kalendo/internal/event_bus"
	"github.com/kalendo/kalendo/internal/utils"
	"github.com/kalendo/kalendo/pkg/event"
	"github.com/kalendo/kalendo/pkg/recurrence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLister struct {
	events []event.Event
}

func (s *stubLister) List(_ context.Context) ([]event.Event, error) {
	return s.events, nil
}

var testClock = &utils.FixedClock{FixedNow: time.Date(2024, time.March, 1, 12, 0, 0, 0, time.Local)}

func TestRenderFeed(t *testing.T) {
	lister := &stubLister{events: []event.Event{
		{
			ID:        "one",
			Title:     "Dentist",
			Date:      "2024-03-05",
			StartTime: "09:00",
			EndTime:   "10:00",
			Category:  event.CategoryHealth,
		},
		{
			ID:                 "two",
			Title:              "Sprint review",
			Description:        "Every other week",
			Date:               "2024-01-01",
			StartTime:          "10:00",
			EndTime:            "11:00",
			Category:           event.CategoryMeeting,
			Recurring:          true,
			RecurrencePattern:  recurrence.PatternWeekly,
			RecurrenceInterval: 2,
		},
	}}
	service := NewService(lister, testClock, nil)

	feed, err := service.Render(context.Background())

	require.NoError(t, err)
	assert.Contains(t, feed, "BEGIN:VCALENDAR")
	assert.Contains(t, feed, "END:VCALENDAR")
	assert.Contains(t, feed, "SUMMARY:Dentist")
	assert.Contains(t, feed, "SUMMARY:Sprint review")
	assert.Contains(t, feed, "UID:one")
	assert.Contains(t, feed, "FREQ=WEEKLY")
	assert.Contains(t, feed, "INTERVAL=2")
	assert.Contains(t, feed, "UNTIL=")
}

func TestRenderFeedSkipsBrokenEvents(t *testing.T) {
	lister := &stubLister{events: []event.Event{
		{ID: "broken", Title: "No date", Date: "garbage", StartTime: "09:00", EndTime: "10:00"},
		{ID: "ok", Title: "Valid", Date: "2024-03-05", StartTime: "09:00", EndTime: "10:00"},
	}}
	service := NewService(lister, testClock, nil)

	feed, err := service.Render(context.Background())

	require.NoError(t, err)
	assert.NotContains(t, feed, "UID:broken")
	assert.Contains(t, feed, "UID:ok")
}

func TestRenderFeedCacheInvalidation(t *testing.T) {
	lister := &stubLister{events: []event.Event{
		{ID: "one", Title: "First", Date: "2024-03-05", StartTime: "09:00", EndTime: "10:00"},
	}}
	bus := event_bus.NewEventBus()
	service := NewService(lister, testClock, bus)

	first, err := service.Render(context.Background())
	require.NoError(t, err)
	require.Contains(t, first, "SUMMARY:First")

	// Mutate the store without notifying the bus: the cache still serves
	// the old feed.
	lister.events = append(lister.events, event.Event{
		ID: "two", Title: "Second", Date: "2024-03-06", StartTime: "11:00", EndTime: "12:00",
	})
	cached, err := service.Render(context.Background())
	require.NoError(t, err)
	assert.NotContains(t, cached, "SUMMARY:Second")

	// A published mutation invalidates the cache.
	err = bus.Publish(event_bus.NewEvent(context.Background(), event_bus.EventCreated, event_bus.EventChanged{ID: "two"}))
	require.NoError(t, err)

	fresh, err := service.Render(context.Background())
	require.NoError(t, err)
	assert.Contains(t, fresh, "SUMMARY:Second")
}

func TestGetFeedHandler(t *testing.T) {
	lister := &stubLister{events: []event.Event{
		{ID: "one", Title: "Dentist", Date: "2024-03-05", StartTime: "09:00", EndTime: "10:00"},
	}}
	handler := NewHandler(NewService(lister, testClock, nil))

	req := httptest.NewRequest(http.MethodGet, "/api/calendar/feed.ics", nil)
	w := httptest.NewRecorder()
	handler.GetFeed(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/calendar; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), "BEGIN:VCALENDAR")
}
