package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"eventhorizon/internal/domain"
)

type eventService struct {
	eventRepo   domain.EventRepository
	lectureRepo domain.LectureRepository
	geocoder    domain.Geocoder
	logger      *slog.Logger
}

// NewEventService creates an EventService.
func NewEventService(eventRepo domain.EventRepository, lectureRepo domain.LectureRepository, geocoder domain.Geocoder, logger *slog.Logger) domain.EventService {
	return &eventService{
		eventRepo:   eventRepo,
		lectureRepo: lectureRepo,
		geocoder:    geocoder,
		logger:      logger,
	}
}

func (s *eventService) Create(ctx context.Context, ownerID, name, description, address string, cost float64) (*domain.Event, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: event name is required", domain.ErrInvalidInput)
	}
	if ownerID == "" {
		return nil, fmt.Errorf("%w: event owner is required", domain.ErrInvalidInput)
	}

	lat, lng, err := s.resolveAddress(ctx, address)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	event := &domain.Event{
		Name:        name,
		Description: description,
		Cost:        cost,
		UserID:      ownerID,
		Address:     address,
		Lat:         lat,
		Lng:         lng,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// resolveAddress geocodes the address and picks the highest-confidence
// candidate. No candidates fails the operation.
func (s *eventService) resolveAddress(ctx context.Context, address string) (lat, lng float64, err error) {
	if strings.TrimSpace(address) == "" {
		return 0, 0, fmt.Errorf("%w: event address is required", domain.ErrInvalidInput)
	}
	candidates, err := s.geocoder.Geocode(ctx, address)
	if err != nil {
		return 0, 0, fmt.Errorf("geocode address: %w", err)
	}
	best, ok := domain.BestCandidate(candidates)
	if !ok {
		return 0, 0, domain.ErrGeocodeNoResults
	}
	return best.Lat, best.Lng, nil
}

func (s *eventService) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	return s.eventRepo.GetByID(ctx, id)
}

func (s *eventService) List(ctx context.Context, filter domain.EventFilter, params domain.PaginationParams) ([]*domain.Event, int, error) {
	return s.eventRepo.List(ctx, filter, params)
}

func (s *eventService) Update(ctx context.Context, id string, upd domain.EventUpdate) (*domain.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Name != nil {
		n := strings.TrimSpace(*upd.Name)
		if n == "" {
			return nil, fmt.Errorf("%w: event name is required", domain.ErrInvalidInput)
		}
		event.Name = n
	}
	if upd.Description != nil {
		event.Description = *upd.Description
	}
	if upd.Cost != nil {
		event.Cost = *upd.Cost
	}
	if upd.Address != nil {
		lat, lng, err := s.resolveAddress(ctx, *upd.Address)
		if err != nil {
			return nil, err
		}
		event.Address = *upd.Address
		event.Lat = lat
		event.Lng = lng
	}
	event.UpdatedAt = time.Now()

	if err := s.eventRepo.Update(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// Delete removes the event's lectures first, then the event itself. The
// fan-out is not transactional; a crash in between leaves orphaned lectures,
// an accepted risk.
func (s *eventService) Delete(ctx context.Context, id string) error {
	if _, err := s.eventRepo.GetByID(ctx, id); err != nil {
		return err
	}
	deleted, err := s.lectureRepo.DeleteByEventID(ctx, id)
	if err != nil {
		return fmt.Errorf("cascade delete lectures: %w", err)
	}
	if deleted > 0 {
		s.logger.InfoContext(ctx, "cascade deleted lectures", "event_id", id, "count", deleted)
	}
	return s.eventRepo.Delete(ctx, id)
}
