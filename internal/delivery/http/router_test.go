package http

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"eventhorizon/internal/delivery/http/controllers"
	"eventhorizon/internal/domain"
)

// Routing-level stubs. Only the methods the exercised chains touch are real;
// the rest come from the embedded nil interface and would panic if reached.

type routeVerifier struct{}

func (routeVerifier) Verify(token string) (string, error) {
	return strings.TrimPrefix(token, "token-for-"), nil
}

type routeUserRepo struct {
	domain.UserRepository
	users map[string]*domain.User
}

func (r *routeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return u, nil
}

type routeEventRepo struct {
	domain.EventRepository
	events map[string]*domain.Event
}

func (r *routeEventRepo) GetByID(_ context.Context, id string) (*domain.Event, error) {
	e, ok := r.events[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return e, nil
}

type routeLectureRepo struct {
	domain.LectureRepository
}

type routeRatingRepo struct {
	domain.RatingRepository
}

type routeLectureService struct {
	domain.LectureService
}

func (routeLectureService) Create(_ context.Context, ownerID, eventID, name, description string, length float64) (*domain.Lecture, error) {
	return &domain.Lecture{ID: "l1", Name: name, Description: description, Length: length, EventID: eventID, UserID: ownerID}, nil
}

func newTestRouter(users map[string]*domain.User) *http.ServeMux {
	logger := slog.New(slog.DiscardHandler)
	eventRepo := &routeEventRepo{events: map[string]*domain.Event{
		"e1": {ID: "e1", Name: "GopherCon", UserID: "org-1"},
	}}
	return NewRouter(RouterDeps{
		Logger:        logger,
		Auth:          controllers.NewAuthController(logger, nil),
		Users:         controllers.NewUserController(logger, nil),
		Events:        controllers.NewEventController(logger, nil),
		Lectures:      controllers.NewLectureController(logger, routeLectureService{}),
		Ratings:       controllers.NewRatingController(logger, nil),
		TokenVerifier: routeVerifier{},
		UserRepo:      &routeUserRepo{users: users},
		EventRepo:     eventRepo,
		LectureRepo:   routeLectureRepo{},
		RatingRepo:    routeRatingRepo{},
	})
}

func postLecture(t *testing.T, mux *http.ServeMux, userID string) *httptest.ResponseRecorder {
	t.Helper()
	body := `{"name":"Generics","description":"Type parameters","length":2}`
	req := httptest.NewRequest(http.MethodPost, "/events/e1/lectures", strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer token-for-"+userID)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestRouter_create_lecture_roles(t *testing.T) {
	mux := newTestRouter(map[string]*domain.User{
		"lect-1": {ID: "lect-1", Role: domain.RoleLecturer},
		"org-1":  {ID: "org-1", Role: domain.RoleOrganizer},
		"user-1": {ID: "user-1", Role: domain.RoleUser},
	})

	// Lecturers and organizers may both attach lectures.
	assert.Equal(t, http.StatusCreated, postLecture(t, mux, "lect-1").Code)
	assert.Equal(t, http.StatusCreated, postLecture(t, mux, "org-1").Code)

	rec := postLecture(t, mux, "user-1")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRouter_create_lecture_unauthenticated(t *testing.T) {
	mux := newTestRouter(map[string]*domain.User{})

	body := `{"name":"Generics","description":"d","length":2}`
	req := httptest.NewRequest(http.MethodPost, "/events/e1/lectures", strings.NewReader(body))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_create_lecture_missing_event(t *testing.T) {
	mux := newTestRouter(map[string]*domain.User{
		"lect-1": {ID: "lect-1", Role: domain.RoleLecturer},
	})

	body := `{"name":"Generics","description":"d","length":2}`
	req := httptest.NewRequest(http.MethodPost, "/events/nope/lectures", strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer token-for-lect-1")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
