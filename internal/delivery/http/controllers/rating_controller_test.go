package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"eventhorizon/internal/delivery/http/middleware"
	"eventhorizon/internal/domain"
)

type fakeRatingService struct {
	domain.RatingService
	createFn func(ctx context.Context, userID string, target domain.RatingTarget, rate float64) (*domain.Rating, error)
}

func (f *fakeRatingService) Create(ctx context.Context, userID string, target domain.RatingTarget, rate float64) (*domain.Rating, error) {
	return f.createFn(ctx, userID, target, rate)
}

func TestRatingController_Create(t *testing.T) {
	svc := &fakeRatingService{
		createFn: func(_ context.Context, userID string, target domain.RatingTarget, rate float64) (*domain.Rating, error) {
			assert.Equal(t, "u1", userID)
			assert.Equal(t, domain.RatingTarget{Kind: domain.TargetLecture, ID: "l1"}, target)
			assert.Equal(t, 4.0, rate)
			return &domain.Rating{ID: "r1", Rate: rate, Target: target, UserID: userID}, nil
		},
	}
	ctrl := NewRatingController(discardLogger(), svc)

	body := `{"target_kind":"lecture","target_id":"l1","rate":4}`
	req := httptest.NewRequest(http.MethodPost, "/ratings", strings.NewReader(body))
	req = req.WithContext(middleware.SetIdentity(req.Context(), &domain.Identity{ID: "u1", Role: domain.RoleUser}))
	rec := httptest.NewRecorder()

	ctrl.Create(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestRatingController_Create_duplicate(t *testing.T) {
	svc := &fakeRatingService{
		createFn: func(_ context.Context, _ string, _ domain.RatingTarget, _ float64) (*domain.Rating, error) {
			return nil, domain.ErrConflict
		},
	}
	ctrl := NewRatingController(discardLogger(), svc)

	body := `{"target_kind":"event","target_id":"e1","rate":4}`
	req := httptest.NewRequest(http.MethodPost, "/ratings", strings.NewReader(body))
	req = req.WithContext(middleware.SetIdentity(req.Context(), &domain.Identity{ID: "u1", Role: domain.RoleUser}))
	rec := httptest.NewRecorder()

	ctrl.Create(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	envelope := decodeEnvelope(t, rec)
	errObj := envelope["error"].(map[string]any)
	assert.Equal(t, "conflict", errObj["code"])
}

func TestRatingController_Create_validation(t *testing.T) {
	ctrl := NewRatingController(discardLogger(), &fakeRatingService{})

	tests := []struct {
		name string
		body string
	}{
		{"missing kind", `{"target_id":"e1","rate":4}`},
		{"missing id", `{"target_kind":"event","rate":4}`},
		{"rate too low", `{"target_kind":"event","target_id":"e1","rate":0}`},
		{"rate too high", `{"target_kind":"event","target_id":"e1","rate":6}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/ratings", strings.NewReader(tt.body))
			req = req.WithContext(middleware.SetIdentity(req.Context(), &domain.Identity{ID: "u1", Role: domain.RoleUser}))
			rec := httptest.NewRecorder()
			ctrl.Create(rec, req)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestRatingController_Create_no_identity(t *testing.T) {
	ctrl := NewRatingController(discardLogger(), &fakeRatingService{})

	body := `{"target_kind":"event","target_id":"e1","rate":4}`
	rec := httptest.NewRecorder()
	ctrl.Create(rec, httptest.NewRequest(http.MethodPost, "/ratings", strings.NewReader(body)))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
