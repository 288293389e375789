package domain

import (
	"context"
	"fmt"
	"time"
)

// TargetKind discriminates what kind of document a rating points at.
type TargetKind string

const (
	TargetEvent   TargetKind = "event"
	TargetLecture TargetKind = "lecture"
)

// RatingTarget identifies the rated document. Code that resolves a target
// must switch on Kind exhaustively; unknown kinds are rejected up front by
// Validate.
type RatingTarget struct {
	Kind TargetKind `json:"kind"`
	ID   string     `json:"id"`
}

// Validate checks that the target kind is known and the ID is present.
func (t RatingTarget) Validate() error {
	switch t.Kind {
	case TargetEvent, TargetLecture:
	default:
		return fmt.Errorf("%w: unknown rating target kind %q", ErrInvalidInput, t.Kind)
	}
	if t.ID == "" {
		return fmt.Errorf("%w: rating target id is required", ErrInvalidInput)
	}
	return nil
}

// Rating is a single user's rate of an event or lecture. At most one rating
// exists per (target, user) pair, enforced by a unique index.
// swagger:model Rating
type Rating struct {
	ID        string       `json:"id"`
	Rate      float64      `json:"rate"`
	Target    RatingTarget `json:"target"`
	UserID    string       `json:"user_id"`
	CreatedAt time.Time    `json:"created_at"`
}

// ResourceID implements Resource.
func (r *Rating) ResourceID() string { return r.ID }

// OwnerID implements Resource.
func (r *Rating) OwnerID() string { return r.UserID }

// RatingRepository defines the interface for rating storage.
type RatingRepository interface {
	Create(ctx context.Context, rating *Rating) error
	GetByID(ctx context.Context, id string) (*Rating, error)
	ListByTarget(ctx context.Context, target RatingTarget) ([]*Rating, error)
	Delete(ctx context.Context, id string) error
	// AvgByTarget averages the rate of all ratings for the target.
	// Returns 0 when no ratings exist.
	AvgByTarget(ctx context.Context, target RatingTarget) (float64, error)
}

// RatingService defines the business logic for ratings.
type RatingService interface {
	Create(ctx context.Context, userID string, target RatingTarget, rate float64) (*Rating, error)
	GetByID(ctx context.Context, id string) (*Rating, error)
	ListByTarget(ctx context.Context, target RatingTarget) ([]*Rating, error)
	Delete(ctx context.Context, id string) error
}
