package domain

import (
	"context"
	"time"
)

// Lecture is a talk attached to an event. Length is the duration in hours.
// The event reference is immutable after creation; creating or deleting a
// lecture triggers a recompute of the parent event's SumLength.
// swagger:model Lecture
type Lecture struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Length      float64   `json:"length"`
	EventID     string    `json:"event_id"`
	UserID      string    `json:"user_id"`
	AvgRating   float64   `json:"avg_rating"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ResourceID implements Resource.
func (l *Lecture) ResourceID() string { return l.ID }

// OwnerID implements Resource.
func (l *Lecture) OwnerID() string { return l.UserID }

// ParentEventID implements EventScoped.
func (l *Lecture) ParentEventID() string { return l.EventID }

// LectureRepository defines the interface for lecture storage.
type LectureRepository interface {
	Create(ctx context.Context, lecture *Lecture) error
	GetByID(ctx context.Context, id string) (*Lecture, error)
	List(ctx context.Context, params PaginationParams) ([]*Lecture, int, error)
	ListByEventID(ctx context.Context, eventID string) ([]*Lecture, error)
	Update(ctx context.Context, lecture *Lecture) error
	Delete(ctx context.Context, id string) error
	DeleteByEventID(ctx context.Context, eventID string) (int, error)
	// SumLengthByEventID aggregates the total length of all lectures
	// referencing the event. Returns 0 when the event has no lectures.
	SumLengthByEventID(ctx context.Context, eventID string) (float64, error)
	SetAvgRating(ctx context.Context, id string, avg float64) error
}

// LectureUpdate carries the client-writable lecture fields for an update.
// Nil fields are left unchanged. The parent event is immutable.
type LectureUpdate struct {
	Name        *string
	Description *string
	Length      *float64
}

// LectureService defines the business logic for lectures.
type LectureService interface {
	Create(ctx context.Context, ownerID, eventID, name, description string, length float64) (*Lecture, error)
	GetByID(ctx context.Context, id string) (*Lecture, error)
	List(ctx context.Context, params PaginationParams) ([]*Lecture, int, error)
	ListByEventID(ctx context.Context, eventID string) ([]*Lecture, error)
	Update(ctx context.Context, id string, upd LectureUpdate) (*Lecture, error)
	Delete(ctx context.Context, id string) error
}
