package domain

// Resource is any document subject to ownership checks. The resource loader
// middleware fetches one by ID and stashes it in the request context; the
// ownership middleware compares OwnerID against the authenticated identity.
type Resource interface {
	ResourceID() string
	OwnerID() string
}

// EventScoped is a Resource that belongs to a parent event. When the direct
// owner check fails, the owner of the parent event is also allowed to manage
// the resource (an organizer may edit lectures on their own event even if
// another lecturer authored them).
type EventScoped interface {
	Resource
	ParentEventID() string
}
