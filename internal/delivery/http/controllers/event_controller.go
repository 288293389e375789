package controllers

import (
	"log/slog"
	"net/http"
	"strconv"

	"eventhorizon/internal/delivery/http/helpers"
	"eventhorizon/internal/delivery/http/middleware"
	"eventhorizon/internal/domain"
)

// CreateEventRequest is the request body for POST /events.
type CreateEventRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Cost        float64 `json:"cost"`
	Address     string  `json:"address"`
}

// Validate implements Validator.
func (r CreateEventRequest) Validate() []string {
	var errs []string
	if r.Name == "" {
		errs = append(errs, "name is required")
	}
	if r.Description == "" {
		errs = append(errs, "description is required")
	}
	if r.Cost < 0 {
		errs = append(errs, "cost must not be negative")
	}
	if r.Address == "" {
		errs = append(errs, "address is required")
	}
	return errs
}

// UpdateEventRequest is the request body for PUT /events/{eventID}. All
// fields optional; omitted fields are unchanged. The owner is immutable.
type UpdateEventRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Cost        *float64 `json:"cost"`
	Address     *string  `json:"address"`
}

// Validate implements Validator.
func (r UpdateEventRequest) Validate() []string {
	var errs []string
	if r.Cost != nil && *r.Cost < 0 {
		errs = append(errs, "cost must not be negative")
	}
	return errs
}

// EventSuccessResponse is the success response envelope for single-event endpoints.
type EventSuccessResponse struct {
	Data  *domain.Event     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// EventListResponse is the response body for GET /events.
type EventListResponse struct {
	Events     []*domain.Event        `json:"events"`
	Pagination helpers.PaginationMeta `json:"pagination"`
}

type EventController struct {
	Logger  *slog.Logger
	Service domain.EventService
}

func NewEventController(logger *slog.Logger, svc domain.EventService) *EventController {
	return &EventController{Logger: logger, Service: svc}
}

// List godoc
// @Summary List events
// @Description Public. Paginated; optional max_cost and owner_id filters.
// @Tags events
// @Produce json
// @Param page query int false "Page (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Param max_cost query number false "Only events costing at most this much"
// @Param owner_id query string false "Only events owned by this user"
// @Success 200 {object} helpers.APIResponse "data contains events and pagination"
// @Router /events [get]
func (c *EventController) List(w http.ResponseWriter, r *http.Request) {
	params := helpers.ParsePagination(r)
	filter := domain.EventFilter{OwnerID: r.URL.Query().Get("owner_id")}
	if s := r.URL.Query().Get("max_cost"); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "max_cost must be a number")
			return
		}
		filter.MaxCost = &v
	}
	events, total, err := c.Service.List(r.Context(), filter, params)
	if err != nil {
		helpers.WriteDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, EventListResponse{
		Events:     events,
		Pagination: helpers.NewPaginationMeta(params.Page, params.PageSize, total),
	})
}

// Create godoc
// @Summary Create a new event
// @Description Organizer only. The address is geocoded; creation fails when the geocoder has no candidate. The authenticated user becomes the owner.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateEventRequest true "Event data"
// @Success 201 {object} controllers.EventSuccessResponse "data contains the created event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (including unresolvable address)"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (event name taken)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [post]
func (c *EventController) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	var req CreateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	event, err := c.Service.Create(r.Context(), identity.ID, req.Name, req.Description, req.Address, req.Cost)
	if err != nil {
		helpers.WriteDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, event)
}

// Get godoc
// @Summary Get an event by ID
// @Description Public. The event is resolved by the resource loader.
// @Tags events
// @Produce json
// @Param eventID path string true "Event ID"
// @Success 200 {object} controllers.EventSuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID} [get]
func (c *EventController) Get(w http.ResponseWriter, r *http.Request) {
	event, ok := loadedEvent(w, r, c.Logger)
	if !ok {
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// Update godoc
// @Summary Update an event
// @Description Owner or admin. A changed address is re-geocoded. Omitted fields are unchanged.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param body body UpdateEventRequest true "Fields to update (all optional)"
// @Success 200 {object} controllers.EventSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Router /events/{eventID} [put]
func (c *EventController) Update(w http.ResponseWriter, r *http.Request) {
	event, ok := loadedEvent(w, r, c.Logger)
	if !ok {
		return
	}
	var req UpdateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	updated, err := c.Service.Update(r.Context(), event.ID, domain.EventUpdate{
		Name:        req.Name,
		Description: req.Description,
		Cost:        req.Cost,
		Address:     req.Address,
	})
	if err != nil {
		helpers.WriteDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, updated)
}

// Delete godoc
// @Summary Delete an event
// @Description Owner or admin. All lectures attached to the event are deleted first.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Success 200 {object} helpers.APIResponse "data is empty"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID} [delete]
func (c *EventController) Delete(w http.ResponseWriter, r *http.Request) {
	event, ok := loadedEvent(w, r, c.Logger)
	if !ok {
		return
	}
	if err := c.Service.Delete(r.Context(), event.ID); err != nil {
		helpers.WriteDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, struct{}{})
}

func loadedEvent(w http.ResponseWriter, r *http.Request, logger *slog.Logger) (*domain.Event, bool) {
	res, ok := middleware.ResourceFromContext(r.Context())
	if !ok {
		logger.ErrorContext(r.Context(), "handler reached without loaded resource", "path", r.URL.Path)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "internal error")
		return nil, false
	}
	event, ok := res.(*domain.Event)
	if !ok {
		logger.ErrorContext(r.Context(), "loaded resource has unexpected type", "path", r.URL.Path)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "internal error")
		return nil, false
	}
	return event, true
}
