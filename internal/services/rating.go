package services

import (
	"context"
	"fmt"
	"time"

	"eventhorizon/internal/domain"
)

type ratingService struct {
	ratingRepo  domain.RatingRepository
	eventRepo   domain.EventRepository
	lectureRepo domain.LectureRepository
	aggregates  domain.AggregateMaintainer
}

// NewRatingService creates a RatingService.
func NewRatingService(ratingRepo domain.RatingRepository, eventRepo domain.EventRepository, lectureRepo domain.LectureRepository, aggregates domain.AggregateMaintainer) domain.RatingService {
	return &ratingService{
		ratingRepo:  ratingRepo,
		eventRepo:   eventRepo,
		lectureRepo: lectureRepo,
		aggregates:  aggregates,
	}
}

func (s *ratingService) Create(ctx context.Context, userID string, target domain.RatingTarget, rate float64) (*domain.Rating, error) {
	if err := target.Validate(); err != nil {
		return nil, err
	}
	if rate < 1 || rate > 5 {
		return nil, fmt.Errorf("%w: rate must be between 1 and 5", domain.ErrInvalidInput)
	}

	// The rated document must exist. The target kind selects the collection.
	switch target.Kind {
	case domain.TargetEvent:
		if _, err := s.eventRepo.GetByID(ctx, target.ID); err != nil {
			return nil, err
		}
	case domain.TargetLecture:
		if _, err := s.lectureRepo.GetByID(ctx, target.ID); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: unknown rating target kind %q", domain.ErrInvalidInput, target.Kind)
	}

	rating := &domain.Rating{
		Rate:      rate,
		Target:    target,
		UserID:    userID,
		CreatedAt: time.Now(),
	}
	// A duplicate (target, user) pair surfaces as ErrConflict from the unique
	// index; the existing rating and the aggregate stay untouched.
	if err := s.ratingRepo.Create(ctx, rating); err != nil {
		return nil, err
	}

	go func(target domain.RatingTarget) {
		ctx, cancel := context.WithTimeout(context.Background(), recomputeTimeout)
		defer cancel()
		s.aggregates.RecomputeAvgRating(ctx, target)
	}(target)

	return rating, nil
}

func (s *ratingService) GetByID(ctx context.Context, id string) (*domain.Rating, error) {
	return s.ratingRepo.GetByID(ctx, id)
}

func (s *ratingService) ListByTarget(ctx context.Context, target domain.RatingTarget) ([]*domain.Rating, error) {
	if err := target.Validate(); err != nil {
		return nil, err
	}
	return s.ratingRepo.ListByTarget(ctx, target)
}

func (s *ratingService) Delete(ctx context.Context, id string) error {
	// Read the target before the document disappears.
	rating, err := s.ratingRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.ratingRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.aggregates.RecomputeAvgRating(ctx, rating.Target)
	return nil
}
