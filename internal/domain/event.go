package domain

import (
	"context"
	"time"
)

// Event represents a conference event. SumLength and AvgRating are derived
// fields maintained by the aggregate service; clients cannot write them.
// swagger:model Event
type Event struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Cost        float64   `json:"cost"`
	UserID      string    `json:"user_id"`
	Address     string    `json:"address"`
	Lat         float64   `json:"lat"`
	Lng         float64   `json:"lng"`
	SumLength   float64   `json:"sum_length"`
	AvgRating   float64   `json:"avg_rating"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ResourceID implements Resource.
func (e *Event) ResourceID() string { return e.ID }

// OwnerID implements Resource.
func (e *Event) OwnerID() string { return e.UserID }

// EventFilter narrows event listings.
type EventFilter struct {
	MaxCost *float64
	OwnerID string
}

// EventRepository defines the interface for event storage.
//
// SetSumLength and SetAvgRating write the derived fields with a targeted
// update so a recompute never runs through the full update path.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	List(ctx context.Context, filter EventFilter, params PaginationParams) ([]*Event, int, error)
	Update(ctx context.Context, event *Event) error
	Delete(ctx context.Context, id string) error
	SetSumLength(ctx context.Context, id string, sum float64) error
	SetAvgRating(ctx context.Context, id string, avg float64) error
}

// EventUpdate carries the client-writable event fields for an update.
// Nil fields are left unchanged. The owner is immutable after creation.
type EventUpdate struct {
	Name        *string
	Description *string
	Cost        *float64
	Address     *string
}

// EventService defines the business logic for events.
type EventService interface {
	Create(ctx context.Context, ownerID, name, description, address string, cost float64) (*Event, error)
	GetByID(ctx context.Context, id string) (*Event, error)
	List(ctx context.Context, filter EventFilter, params PaginationParams) ([]*Event, int, error)
	Update(ctx context.Context, id string, upd EventUpdate) (*Event, error)
	Delete(ctx context.Context, id string) error
}
