package domain

import "context"

// GeocodeCandidate is one possible location for an address, with the
// provider's confidence score (0..1).
type GeocodeCandidate struct {
	Lat        float64
	Lng        float64
	Confidence float64
}

// Geocoder resolves a free-form address to candidate coordinates.
// An empty slice with a nil error means the address could not be resolved.
type Geocoder interface {
	Geocode(ctx context.Context, address string) ([]GeocodeCandidate, error)
}

// BestCandidate returns the candidate with the highest confidence, or false
// when the slice is empty.
func BestCandidate(candidates []GeocodeCandidate) (GeocodeCandidate, bool) {
	if len(candidates) == 0 {
		return GeocodeCandidate{}, false
	}
	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.Confidence > best.Confidence {
			best = c
		}
	}
	return best, true
}
