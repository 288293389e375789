package controllers

import (
	"log/slog"
	"net/http"

	"eventhorizon/internal/delivery/http/helpers"
	"eventhorizon/internal/delivery/http/middleware"
	"eventhorizon/internal/domain"
)

// UpdateUserRequest is the request body for PUT /users/{userID}. All fields
// optional; omitted fields are unchanged.
type UpdateUserRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

// UserSuccessResponse is the success response envelope for single-user endpoints.
type UserSuccessResponse struct {
	Data  *domain.User      `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// UserListResponse is the response body for GET /users.
type UserListResponse struct {
	Users      []*domain.User         `json:"users"`
	Pagination helpers.PaginationMeta `json:"pagination"`
}

type UserController struct {
	Logger  *slog.Logger
	Service domain.UserService
}

func NewUserController(logger *slog.Logger, svc domain.UserService) *UserController {
	return &UserController{Logger: logger, Service: svc}
}

// GetMe godoc
// @Summary Get the authenticated user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.UserSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /users/me [get]
func (c *UserController) GetMe(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	user, err := c.Service.GetByID(r.Context(), identity.ID)
	if err != nil {
		helpers.WriteDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, user)
}

// List godoc
// @Summary List users
// @Description Admin only. Paginated.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} helpers.APIResponse "data contains users and pagination"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Router /users [get]
func (c *UserController) List(w http.ResponseWriter, r *http.Request) {
	params := helpers.ParsePagination(r)
	users, total, err := c.Service.List(r.Context(), params)
	if err != nil {
		helpers.WriteDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, UserListResponse{
		Users:      users,
		Pagination: helpers.NewPaginationMeta(params.Page, params.PageSize, total),
	})
}

// Get godoc
// @Summary Get a user by ID
// @Description Only the user themselves or an admin. The user is resolved by the resource loader.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param userID path string true "User ID"
// @Success 200 {object} controllers.UserSuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /users/{userID} [get]
func (c *UserController) Get(w http.ResponseWriter, r *http.Request) {
	user, ok := loadedUser(w, r, c.Logger)
	if !ok {
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, user)
}

// Update godoc
// @Summary Update a user
// @Description Only the user themselves or an admin. Omitted fields are unchanged.
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param userID path string true "User ID"
// @Param body body UpdateUserRequest true "Fields to update (all optional)"
// @Success 200 {object} controllers.UserSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Router /users/{userID} [put]
func (c *UserController) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := loadedUser(w, r, c.Logger)
	if !ok {
		return
	}
	var req UpdateUserRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	updated, err := c.Service.Update(r.Context(), user.ID, req.Name, req.Email, req.Password)
	if err != nil {
		helpers.WriteDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, updated)
}

// Delete godoc
// @Summary Delete a user
// @Description Only the user themselves or an admin.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param userID path string true "User ID"
// @Success 200 {object} helpers.APIResponse "data is empty"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /users/{userID} [delete]
func (c *UserController) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := loadedUser(w, r, c.Logger)
	if !ok {
		return
	}
	if err := c.Service.Delete(r.Context(), user.ID); err != nil {
		helpers.WriteDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, struct{}{})
}

// loadedUser pulls the user stashed by the resource loader. A chain wired
// without the loader fails closed with 500.
func loadedUser(w http.ResponseWriter, r *http.Request, logger *slog.Logger) (*domain.User, bool) {
	res, ok := middleware.ResourceFromContext(r.Context())
	if !ok {
		logger.ErrorContext(r.Context(), "handler reached without loaded resource", "path", r.URL.Path)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "internal error")
		return nil, false
	}
	user, ok := res.(*domain.User)
	if !ok {
		logger.ErrorContext(r.Context(), "loaded resource has unexpected type", "path", r.URL.Path)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "internal error")
		return nil, false
	}
	return user, true
}
