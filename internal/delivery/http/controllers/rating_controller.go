package controllers

import (
	"log/slog"
	"net/http"

	"eventhorizon/internal/delivery/http/helpers"
	"eventhorizon/internal/delivery/http/middleware"
	"eventhorizon/internal/domain"
)

// CreateRatingRequest is the request body for POST /ratings.
type CreateRatingRequest struct {
	TargetKind string  `json:"target_kind"`
	TargetID   string  `json:"target_id"`
	Rate       float64 `json:"rate"`
}

// Validate implements Validator. Target kind and existence are checked by
// the service; here we only reject the obviously malformed.
func (r CreateRatingRequest) Validate() []string {
	var errs []string
	if r.TargetKind == "" {
		errs = append(errs, "target_kind is required")
	}
	if r.TargetID == "" {
		errs = append(errs, "target_id is required")
	}
	if r.Rate < 1 || r.Rate > 5 {
		errs = append(errs, "rate must be between 1 and 5")
	}
	return errs
}

// RatingSuccessResponse is the success response envelope for single-rating endpoints.
type RatingSuccessResponse struct {
	Data  *domain.Rating    `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type RatingController struct {
	Logger  *slog.Logger
	Service domain.RatingService
}

func NewRatingController(logger *slog.Logger, svc domain.RatingService) *RatingController {
	return &RatingController{Logger: logger, Service: svc}
}

// ListByEvent godoc
// @Summary List ratings of an event
// @Tags ratings
// @Produce json
// @Param eventID path string true "Event ID"
// @Success 200 {object} helpers.APIResponse "data contains ratings"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID}/ratings [get]
func (c *RatingController) ListByEvent(w http.ResponseWriter, r *http.Request) {
	event, ok := loadedEvent(w, r, c.Logger)
	if !ok {
		return
	}
	ratings, err := c.Service.ListByTarget(r.Context(), domain.RatingTarget{Kind: domain.TargetEvent, ID: event.ID})
	if err != nil {
		helpers.WriteDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, ratings)
}

// ListByLecture godoc
// @Summary List ratings of a lecture
// @Tags ratings
// @Produce json
// @Param lectureID path string true "Lecture ID"
// @Success 200 {object} helpers.APIResponse "data contains ratings"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /lectures/{lectureID}/ratings [get]
func (c *RatingController) ListByLecture(w http.ResponseWriter, r *http.Request) {
	lecture, ok := loadedLecture(w, r, c.Logger)
	if !ok {
		return
	}
	ratings, err := c.Service.ListByTarget(r.Context(), domain.RatingTarget{Kind: domain.TargetLecture, ID: lecture.ID})
	if err != nil {
		helpers.WriteDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, ratings)
}

// Create godoc
// @Summary Rate an event or lecture
// @Description Any authenticated user, once per target. The target's average rating is recomputed afterwards.
// @Tags ratings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateRatingRequest true "Rating data"
// @Success 201 {object} controllers.RatingSuccessResponse "data contains the created rating"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (target does not exist)"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (already rated)"
// @Router /ratings [post]
func (c *RatingController) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	var req CreateRatingRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	target := domain.RatingTarget{Kind: domain.TargetKind(req.TargetKind), ID: req.TargetID}
	rating, err := c.Service.Create(r.Context(), identity.ID, target, req.Rate)
	if err != nil {
		helpers.WriteDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, rating)
}

// Delete godoc
// @Summary Delete a rating
// @Description Author or admin. The target's average rating is recomputed before the response.
// @Tags ratings
// @Produce json
// @Security BearerAuth
// @Param ratingID path string true "Rating ID"
// @Success 200 {object} helpers.APIResponse "data is empty"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /ratings/{ratingID} [delete]
func (c *RatingController) Delete(w http.ResponseWriter, r *http.Request) {
	res, ok := middleware.ResourceFromContext(r.Context())
	if !ok {
		c.Logger.ErrorContext(r.Context(), "handler reached without loaded resource", "path", r.URL.Path)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "internal error")
		return
	}
	rating, ok := res.(*domain.Rating)
	if !ok {
		c.Logger.ErrorContext(r.Context(), "loaded resource has unexpected type", "path", r.URL.Path)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "internal error")
		return
	}
	if err := c.Service.Delete(r.Context(), rating.ID); err != nil {
		helpers.WriteDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, struct{}{})
}
