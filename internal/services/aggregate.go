package services

import (
	"context"
	"log/slog"

	"eventhorizon/internal/domain"
)

type aggregateService struct {
	eventRepo   domain.EventRepository
	lectureRepo domain.LectureRepository
	ratingRepo  domain.RatingRepository
	logger      *slog.Logger
}

// NewAggregateService creates the AggregateMaintainer. It recomputes derived
// fields from a live aggregation over child documents rather than adjusting
// them incrementally, so a recompute always converges on the true value of
// the surviving children. Recompute failures are logged and swallowed: the
// aggregates are advisory denormalization, and the create or delete that
// triggered the recompute has already been acknowledged.
func NewAggregateService(eventRepo domain.EventRepository, lectureRepo domain.LectureRepository, ratingRepo domain.RatingRepository, logger *slog.Logger) domain.AggregateMaintainer {
	return &aggregateService{
		eventRepo:   eventRepo,
		lectureRepo: lectureRepo,
		ratingRepo:  ratingRepo,
		logger:      logger,
	}
}

// RecomputeSumLength recomputes Event.SumLength from the event's current
// lectures. An empty lecture set writes 0 rather than skipping the update,
// so deleting the last lecture resets the aggregate instead of leaving it
// stale. A write-back against a concurrently deleted event is logged and
// dropped.
func (s *aggregateService) RecomputeSumLength(ctx context.Context, eventID string) {
	sum, err := s.lectureRepo.SumLengthByEventID(ctx, eventID)
	if err != nil {
		s.logger.ErrorContext(ctx, "sum length aggregation failed", "event_id", eventID, "err", err)
		return
	}
	if err := s.eventRepo.SetSumLength(ctx, eventID, sum); err != nil {
		s.logger.ErrorContext(ctx, "sum length write-back failed", "event_id", eventID, "sum", sum, "err", err)
	}
}

// RecomputeAvgRating recomputes the target's AvgRating from its current
// ratings, dispatching the write-back on the target kind. Same failure
// semantics as RecomputeSumLength.
func (s *aggregateService) RecomputeAvgRating(ctx context.Context, target domain.RatingTarget) {
	avg, err := s.ratingRepo.AvgByTarget(ctx, target)
	if err != nil {
		s.logger.ErrorContext(ctx, "rating aggregation failed", "target_kind", target.Kind, "target_id", target.ID, "err", err)
		return
	}

	switch target.Kind {
	case domain.TargetEvent:
		err = s.eventRepo.SetAvgRating(ctx, target.ID, avg)
	case domain.TargetLecture:
		err = s.lectureRepo.SetAvgRating(ctx, target.ID, avg)
	default:
		s.logger.ErrorContext(ctx, "unknown rating target kind", "target_kind", target.Kind, "target_id", target.ID)
		return
	}
	if err != nil {
		s.logger.ErrorContext(ctx, "rating write-back failed", "target_kind", target.Kind, "target_id", target.ID, "avg", avg, "err", err)
	}
}
