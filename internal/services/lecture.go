package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"eventhorizon/internal/domain"
)

// recomputeTimeout bounds a detached aggregate recompute.
const recomputeTimeout = 30 * time.Second

type lectureService struct {
	lectureRepo domain.LectureRepository
	eventRepo   domain.EventRepository
	aggregates  domain.AggregateMaintainer
}

// NewLectureService creates a LectureService.
func NewLectureService(lectureRepo domain.LectureRepository, eventRepo domain.EventRepository, aggregates domain.AggregateMaintainer) domain.LectureService {
	return &lectureService{
		lectureRepo: lectureRepo,
		eventRepo:   eventRepo,
		aggregates:  aggregates,
	}
}

func (s *lectureService) Create(ctx context.Context, ownerID, eventID, name, description string, length float64) (*domain.Lecture, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: lecture name is required", domain.ErrInvalidInput)
	}
	if length <= 0 {
		return nil, fmt.Errorf("%w: lecture length must be positive", domain.ErrInvalidInput)
	}

	// The parent event must exist before attaching a lecture to it.
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		return nil, err
	}

	now := time.Now()
	lecture := &domain.Lecture{
		Name:        name,
		Description: description,
		Length:      length,
		EventID:     eventID,
		UserID:      ownerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.lectureRepo.Create(ctx, lecture); err != nil {
		return nil, err
	}

	// The response does not wait for the recompute; the aggregate may lag
	// briefly behind the acknowledged write.
	go func(eventID string) {
		ctx, cancel := context.WithTimeout(context.Background(), recomputeTimeout)
		defer cancel()
		s.aggregates.RecomputeSumLength(ctx, eventID)
	}(eventID)

	return lecture, nil
}

func (s *lectureService) GetByID(ctx context.Context, id string) (*domain.Lecture, error) {
	return s.lectureRepo.GetByID(ctx, id)
}

func (s *lectureService) List(ctx context.Context, params domain.PaginationParams) ([]*domain.Lecture, int, error) {
	return s.lectureRepo.List(ctx, params)
}

func (s *lectureService) ListByEventID(ctx context.Context, eventID string) ([]*domain.Lecture, error) {
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		return nil, err
	}
	return s.lectureRepo.ListByEventID(ctx, eventID)
}

func (s *lectureService) Update(ctx context.Context, id string, upd domain.LectureUpdate) (*domain.Lecture, error) {
	lecture, err := s.lectureRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	lengthChanged := false
	if upd.Name != nil {
		n := strings.TrimSpace(*upd.Name)
		if n == "" {
			return nil, fmt.Errorf("%w: lecture name is required", domain.ErrInvalidInput)
		}
		lecture.Name = n
	}
	if upd.Description != nil {
		lecture.Description = *upd.Description
	}
	if upd.Length != nil {
		if *upd.Length <= 0 {
			return nil, fmt.Errorf("%w: lecture length must be positive", domain.ErrInvalidInput)
		}
		lengthChanged = lecture.Length != *upd.Length
		lecture.Length = *upd.Length
	}
	lecture.UpdatedAt = time.Now()

	if err := s.lectureRepo.Update(ctx, lecture); err != nil {
		return nil, err
	}

	if lengthChanged {
		go func(eventID string) {
			ctx, cancel := context.WithTimeout(context.Background(), recomputeTimeout)
			defer cancel()
			s.aggregates.RecomputeSumLength(ctx, eventID)
		}(lecture.EventID)
	}
	return lecture, nil
}

func (s *lectureService) Delete(ctx context.Context, id string) error {
	// Read the parent reference before the document disappears.
	lecture, err := s.lectureRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.lectureRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.aggregates.RecomputeSumLength(ctx, lecture.EventID)
	return nil
}
