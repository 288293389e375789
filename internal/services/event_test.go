package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventhorizon/internal/domain"
)

func TestEventService_Create(t *testing.T) {
	eventRepo := newFakeEventRepo()
	geocoder := &fakeGeocoder{candidates: []domain.GeocodeCandidate{
		{Lat: 52.52, Lng: 13.40, Confidence: 0.6},
		{Lat: 48.85, Lng: 2.35, Confidence: 0.9},
	}}
	svc := NewEventService(eventRepo, newFakeLectureRepo(), geocoder, testLogger())

	event, err := svc.Create(context.Background(), "organizer-1", "GopherCon", "The Go conference", "Paris, France", 100)
	require.NoError(t, err)
	assert.NotEmpty(t, event.ID)
	assert.Equal(t, "organizer-1", event.UserID)
	// The highest-confidence candidate wins.
	assert.Equal(t, 48.85, event.Lat)
	assert.Equal(t, 2.35, event.Lng)
	assert.Equal(t, "Paris, France", geocoder.lastQuery)
}

func TestEventService_Create_geocode_no_results(t *testing.T) {
	svc := NewEventService(newFakeEventRepo(), newFakeLectureRepo(), &fakeGeocoder{}, testLogger())

	_, err := svc.Create(context.Background(), "organizer-1", "GopherCon", "desc", "Atlantis", 100)
	assert.ErrorIs(t, err, domain.ErrGeocodeNoResults)
}

func TestEventService_Create_geocoder_error(t *testing.T) {
	geocoder := &fakeGeocoder{err: fmt.Errorf("upstream timeout")}
	svc := NewEventService(newFakeEventRepo(), newFakeLectureRepo(), geocoder, testLogger())

	_, err := svc.Create(context.Background(), "organizer-1", "GopherCon", "desc", "Paris", 100)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrGeocodeNoResults)
}

func TestEventService_Create_missing_fields(t *testing.T) {
	svc := NewEventService(newFakeEventRepo(), newFakeLectureRepo(), &fakeGeocoder{}, testLogger())

	_, err := svc.Create(context.Background(), "organizer-1", "", "desc", "Paris", 100)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.Create(context.Background(), "organizer-1", "GopherCon", "desc", "  ", 100)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestEventService_Update_address_change_regeocodes(t *testing.T) {
	eventRepo := newFakeEventRepo()
	geocoder := &fakeGeocoder{candidates: []domain.GeocodeCandidate{{Lat: 59.33, Lng: 18.06, Confidence: 1}}}
	svc := NewEventService(eventRepo, newFakeLectureRepo(), geocoder, testLogger())

	event := eventRepo.add(&domain.Event{Name: "GopherCon", Address: "Paris, France", Lat: 48.85, Lng: 2.35})

	addr := "Stockholm, Sweden"
	updated, err := svc.Update(context.Background(), event.ID, domain.EventUpdate{Address: &addr})
	require.NoError(t, err)
	assert.Equal(t, addr, updated.Address)
	assert.Equal(t, 59.33, updated.Lat)
	assert.Equal(t, 18.06, updated.Lng)
}

func TestEventService_Update_without_address_keeps_coordinates(t *testing.T) {
	eventRepo := newFakeEventRepo()
	geocoder := &fakeGeocoder{}
	svc := NewEventService(eventRepo, newFakeLectureRepo(), geocoder, testLogger())

	event := eventRepo.add(&domain.Event{Name: "GopherCon", Address: "Paris, France", Lat: 48.85, Lng: 2.35})

	cost := 50.0
	updated, err := svc.Update(context.Background(), event.ID, domain.EventUpdate{Cost: &cost})
	require.NoError(t, err)
	assert.Equal(t, 50.0, updated.Cost)
	assert.Equal(t, 48.85, updated.Lat)
	assert.Empty(t, geocoder.lastQuery)
}

func TestEventService_Update_not_found(t *testing.T) {
	svc := NewEventService(newFakeEventRepo(), newFakeLectureRepo(), &fakeGeocoder{}, testLogger())

	_, err := svc.Update(context.Background(), "nope", domain.EventUpdate{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEventService_Delete_cascades_lectures(t *testing.T) {
	eventRepo := newFakeEventRepo()
	lectureRepo := newFakeLectureRepo()
	svc := NewEventService(eventRepo, lectureRepo, &fakeGeocoder{}, testLogger())

	event := eventRepo.add(&domain.Event{Name: "GopherCon"})
	other := eventRepo.add(&domain.Event{Name: "RustConf"})
	lectureRepo.add(&domain.Lecture{Name: "Generics", Length: 2, EventID: event.ID})
	lectureRepo.add(&domain.Lecture{Name: "Iterators", Length: 3, EventID: event.ID})
	lectureRepo.add(&domain.Lecture{Name: "Borrowing", Length: 1, EventID: other.ID})

	require.NoError(t, svc.Delete(context.Background(), event.ID))

	_, err := eventRepo.GetByID(context.Background(), event.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	// Only the other event's lecture survives.
	assert.Equal(t, 1, lectureRepo.count())
	remaining, err := lectureRepo.ListByEventID(context.Background(), other.ID)
	require.NoError(t, err)
	assert.Len(t, remaining, 1)
}

func TestEventService_Delete_not_found(t *testing.T) {
	lectureRepo := newFakeLectureRepo()
	svc := NewEventService(newFakeEventRepo(), lectureRepo, &fakeGeocoder{}, testLogger())

	lectureRepo.add(&domain.Lecture{Name: "Generics", Length: 2, EventID: "event-1"})

	err := svc.Delete(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	// A failed delete must not touch any lectures.
	assert.Equal(t, 1, lectureRepo.count())
}

func TestEventService_List_filters(t *testing.T) {
	eventRepo := newFakeEventRepo()
	svc := NewEventService(eventRepo, newFakeLectureRepo(), &fakeGeocoder{}, testLogger())

	eventRepo.add(&domain.Event{Name: "Free Meetup", Cost: 0, UserID: "org-1"})
	eventRepo.add(&domain.Event{Name: "GopherCon", Cost: 100, UserID: "org-2"})

	maxCost := 50.0
	events, total, err := svc.List(context.Background(), domain.EventFilter{MaxCost: &maxCost}, domain.PaginationParams{Page: 1, PageSize: 20})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, events, 1)
	assert.Equal(t, "Free Meetup", events[0].Name)
}
