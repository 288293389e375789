package domain

import "context"

// AggregateMaintainer recomputes derived fields from a live query over child
// documents. Recomputation is best-effort denormalization: failures are
// logged inside the implementation and never propagated to the caller, so a
// create or delete can never fail because its aggregate lagged behind.
type AggregateMaintainer interface {
	// RecomputeSumLength recomputes Event.SumLength from the event's lectures.
	RecomputeSumLength(ctx context.Context, eventID string)
	// RecomputeAvgRating recomputes the target document's AvgRating from its
	// ratings, dispatching on the target kind.
	RecomputeAvgRating(ctx context.Context, target RatingTarget)
}
