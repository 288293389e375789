package controllers

import (
	"log/slog"
	"net/http"

	"eventhorizon/internal/delivery/http/helpers"
	"eventhorizon/internal/delivery/http/middleware"
	"eventhorizon/internal/domain"
)

// CreateLectureRequest is the request body for POST /events/{eventID}/lectures.
type CreateLectureRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Length      float64 `json:"length"`
}

// Validate implements Validator.
func (r CreateLectureRequest) Validate() []string {
	var errs []string
	if r.Name == "" {
		errs = append(errs, "name is required")
	}
	if r.Description == "" {
		errs = append(errs, "description is required")
	}
	if r.Length <= 0 {
		errs = append(errs, "length must be greater than zero")
	}
	return errs
}

// UpdateLectureRequest is the request body for PUT /lectures/{lectureID}.
// All fields optional; the parent event and speaker are immutable.
type UpdateLectureRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Length      *float64 `json:"length"`
}

// Validate implements Validator.
func (r UpdateLectureRequest) Validate() []string {
	var errs []string
	if r.Length != nil && *r.Length <= 0 {
		errs = append(errs, "length must be greater than zero")
	}
	return errs
}

// LectureSuccessResponse is the success response envelope for single-lecture endpoints.
type LectureSuccessResponse struct {
	Data  *domain.Lecture   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// LectureListResponse is the response body for GET /lectures.
type LectureListResponse struct {
	Lectures   []*domain.Lecture      `json:"lectures"`
	Pagination helpers.PaginationMeta `json:"pagination"`
}

type LectureController struct {
	Logger  *slog.Logger
	Service domain.LectureService
}

func NewLectureController(logger *slog.Logger, svc domain.LectureService) *LectureController {
	return &LectureController{Logger: logger, Service: svc}
}

// List godoc
// @Summary List lectures
// @Description Public. Paginated, newest first.
// @Tags lectures
// @Produce json
// @Param page query int false "Page (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} helpers.APIResponse "data contains lectures and pagination"
// @Router /lectures [get]
func (c *LectureController) List(w http.ResponseWriter, r *http.Request) {
	params := helpers.ParsePagination(r)
	lectures, total, err := c.Service.List(r.Context(), params)
	if err != nil {
		helpers.WriteDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, LectureListResponse{
		Lectures:   lectures,
		Pagination: helpers.NewPaginationMeta(params.Page, params.PageSize, total),
	})
}

// ListByEvent godoc
// @Summary List lectures of an event
// @Description Public. Returns every lecture attached to the event.
// @Tags lectures
// @Produce json
// @Param eventID path string true "Event ID"
// @Success 200 {object} helpers.APIResponse "data contains lectures"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID}/lectures [get]
func (c *LectureController) ListByEvent(w http.ResponseWriter, r *http.Request) {
	event, ok := loadedEvent(w, r, c.Logger)
	if !ok {
		return
	}
	lectures, err := c.Service.ListByEventID(r.Context(), event.ID)
	if err != nil {
		helpers.WriteDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, lectures)
}

// Create godoc
// @Summary Create a lecture under an event
// @Description Lecturer only. The parent event must exist; its total length is recomputed afterwards. The authenticated user becomes the speaker.
// @Tags lectures
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param body body CreateLectureRequest true "Lecture data"
// @Success 201 {object} controllers.LectureSuccessResponse "data contains the created lecture"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (event does not exist)"
// @Router /events/{eventID}/lectures [post]
func (c *LectureController) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	event, ok := loadedEvent(w, r, c.Logger)
	if !ok {
		return
	}
	var req CreateLectureRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	lecture, err := c.Service.Create(r.Context(), identity.ID, event.ID, req.Name, req.Description, req.Length)
	if err != nil {
		helpers.WriteDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, lecture)
}

// Get godoc
// @Summary Get a lecture by ID
// @Description Public. The lecture is resolved by the resource loader.
// @Tags lectures
// @Produce json
// @Param lectureID path string true "Lecture ID"
// @Success 200 {object} controllers.LectureSuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /lectures/{lectureID} [get]
func (c *LectureController) Get(w http.ResponseWriter, r *http.Request) {
	lecture, ok := loadedLecture(w, r, c.Logger)
	if !ok {
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, lecture)
}

// Update godoc
// @Summary Update a lecture
// @Description Speaker, owner of the parent event, or admin. A changed length recomputes the event's total. Omitted fields are unchanged.
// @Tags lectures
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param lectureID path string true "Lecture ID"
// @Param body body UpdateLectureRequest true "Fields to update (all optional)"
// @Success 200 {object} controllers.LectureSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /lectures/{lectureID} [put]
func (c *LectureController) Update(w http.ResponseWriter, r *http.Request) {
	lecture, ok := loadedLecture(w, r, c.Logger)
	if !ok {
		return
	}
	var req UpdateLectureRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	updated, err := c.Service.Update(r.Context(), lecture.ID, domain.LectureUpdate{
		Name:        req.Name,
		Description: req.Description,
		Length:      req.Length,
	})
	if err != nil {
		helpers.WriteDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, updated)
}

// Delete godoc
// @Summary Delete a lecture
// @Description Speaker, owner of the parent event, or admin. The event's total length is recomputed before the response.
// @Tags lectures
// @Produce json
// @Security BearerAuth
// @Param lectureID path string true "Lecture ID"
// @Success 200 {object} helpers.APIResponse "data is empty"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /lectures/{lectureID} [delete]
func (c *LectureController) Delete(w http.ResponseWriter, r *http.Request) {
	lecture, ok := loadedLecture(w, r, c.Logger)
	if !ok {
		return
	}
	if err := c.Service.Delete(r.Context(), lecture.ID); err != nil {
		helpers.WriteDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, struct{}{})
}

func loadedLecture(w http.ResponseWriter, r *http.Request, logger *slog.Logger) (*domain.Lecture, bool) {
	res, ok := middleware.ResourceFromContext(r.Context())
	if !ok {
		logger.ErrorContext(r.Context(), "handler reached without loaded resource", "path", r.URL.Path)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "internal error")
		return nil, false
	}
	lecture, ok := res.(*domain.Lecture)
	if !ok {
		logger.ErrorContext(r.Context(), "loaded resource has unexpected type", "path", r.URL.Path)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "internal error")
		return nil, false
	}
	return lecture, true
}
