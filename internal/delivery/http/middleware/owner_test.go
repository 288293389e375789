package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"eventhorizon/internal/domain"
)

// stubEventRepo serves the parent-event lookup the ownership fallback needs.
type stubEventRepo struct {
	domain.EventRepository
	events map[string]*domain.Event
}

func (s *stubEventRepo) GetByID(_ context.Context, id string) (*domain.Event, error) {
	e, ok := s.events[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return e, nil
}

func callOwner(t *testing.T, events *stubEventRepo, identity *domain.Identity, resource domain.Resource) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	called := false
	handler := RequireOwner(events, discardLogger())(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})
	req := httptest.NewRequest(http.MethodDelete, "/x", nil)
	ctx := req.Context()
	if identity != nil {
		ctx = SetIdentity(ctx, identity)
	}
	if resource != nil {
		ctx = SetResource(ctx, resource)
	}
	rec := httptest.NewRecorder()
	handler(rec, req.WithContext(ctx))
	return rec, called
}

func TestRequireOwner_owner_passes(t *testing.T) {
	event := &domain.Event{ID: "e1", UserID: "org-1"}
	rec, called := callOwner(t, &stubEventRepo{}, &domain.Identity{ID: "org-1", Role: domain.RoleOrganizer}, event)
	assert.True(t, called)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireOwner_admin_passes(t *testing.T) {
	event := &domain.Event{ID: "e1", UserID: "org-1"}
	_, called := callOwner(t, &stubEventRepo{}, &domain.Identity{ID: "someone-else", Role: domain.RoleAdmin}, event)
	assert.True(t, called)
}

func TestRequireOwner_stranger_denied(t *testing.T) {
	event := &domain.Event{ID: "e1", UserID: "org-1"}
	rec, called := callOwner(t, &stubEventRepo{}, &domain.Identity{ID: "org-2", Role: domain.RoleOrganizer}, event)
	assert.False(t, called)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireOwner_parent_event_owner_passes(t *testing.T) {
	// The lecture belongs to another lecturer, but the caller owns the event.
	lecture := &domain.Lecture{ID: "l1", UserID: "lect-1", EventID: "e1"}
	events := &stubEventRepo{events: map[string]*domain.Event{
		"e1": {ID: "e1", UserID: "org-1"},
	}}
	_, called := callOwner(t, events, &domain.Identity{ID: "org-1", Role: domain.RoleOrganizer}, lecture)
	assert.True(t, called)
}

func TestRequireOwner_parent_event_other_owner_denied(t *testing.T) {
	lecture := &domain.Lecture{ID: "l1", UserID: "lect-1", EventID: "e1"}
	events := &stubEventRepo{events: map[string]*domain.Event{
		"e1": {ID: "e1", UserID: "org-1"},
	}}
	rec, called := callOwner(t, events, &domain.Identity{ID: "org-2", Role: domain.RoleOrganizer}, lecture)
	assert.False(t, called)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireOwner_parent_event_missing_denied(t *testing.T) {
	lecture := &domain.Lecture{ID: "l1", UserID: "lect-1", EventID: "gone"}
	rec, called := callOwner(t, &stubEventRepo{}, &domain.Identity{ID: "org-1", Role: domain.RoleOrganizer}, lecture)
	assert.False(t, called)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireOwner_no_identity(t *testing.T) {
	event := &domain.Event{ID: "e1", UserID: "org-1"}
	rec, called := callOwner(t, &stubEventRepo{}, nil, event)
	assert.False(t, called)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireOwner_no_resource_fails_closed(t *testing.T) {
	rec, called := callOwner(t, &stubEventRepo{}, &domain.Identity{ID: "org-1", Role: domain.RoleOrganizer}, nil)
	assert.False(t, called)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
