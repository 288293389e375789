package http

import (
	"context"
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"eventhorizon/internal/delivery/http/controllers"
	"eventhorizon/internal/delivery/http/middleware"
	"eventhorizon/internal/domain"
)

// RouterDeps carries everything the router needs to wire routes and their
// middleware chains.
type RouterDeps struct {
	Logger *slog.Logger

	Auth     *controllers.AuthController
	Users    *controllers.UserController
	Events   *controllers.EventController
	Lectures *controllers.LectureController
	Ratings  *controllers.RatingController

	TokenVerifier domain.TokenVerifier
	UserRepo      domain.UserRepository
	EventRepo     domain.EventRepository
	LectureRepo   domain.LectureRepository
	RatingRepo    domain.RatingRepository
}

// NewRouter initializes the HTTP router with all application routes.
//
// Protected routes compose, in order: authentication, role check, resource
// load, ownership check. Each stage terminates the chain on failure; the
// handler only ever sees an authenticated, authorized request with the
// target document already in context.
func NewRouter(deps RouterDeps) *http.ServeMux {
	mux := http.NewServeMux()

	authed := middleware.RequireAuth(deps.TokenVerifier, deps.UserRepo, deps.Logger)

	loadUser := middleware.LoadResource(asResource(deps.UserRepo.GetByID), "userID", deps.Logger)
	loadEvent := middleware.LoadResource(asResource(deps.EventRepo.GetByID), "eventID", deps.Logger)
	loadLecture := middleware.LoadResource(asResource(deps.LectureRepo.GetByID), "lectureID", deps.Logger)
	loadRating := middleware.LoadResource(asResource(deps.RatingRepo.GetByID), "ratingID", deps.Logger)

	owner := middleware.RequireOwner(deps.EventRepo, deps.Logger)

	// Auth
	mux.HandleFunc("POST /auth/register", deps.Auth.Register)
	mux.HandleFunc("POST /auth/login", deps.Auth.Login)

	// Users
	mux.HandleFunc("GET /users/me", authed(deps.Users.GetMe))
	mux.HandleFunc("GET /users", authed(middleware.RequireRole(domain.RoleAdmin)(deps.Users.List)))
	mux.HandleFunc("GET /users/{userID}", authed(loadUser(owner(deps.Users.Get))))
	mux.HandleFunc("PUT /users/{userID}", authed(loadUser(owner(deps.Users.Update))))
	mux.HandleFunc("DELETE /users/{userID}", authed(loadUser(owner(deps.Users.Delete))))

	// Events
	mux.HandleFunc("GET /events", deps.Events.List)
	mux.HandleFunc("POST /events", authed(middleware.RequireRole(domain.RoleOrganizer)(deps.Events.Create)))
	mux.HandleFunc("GET /events/{eventID}", loadEvent(deps.Events.Get))
	mux.HandleFunc("PUT /events/{eventID}", authed(middleware.RequireRole(domain.RoleOrganizer)(loadEvent(owner(deps.Events.Update)))))
	mux.HandleFunc("DELETE /events/{eventID}", authed(middleware.RequireRole(domain.RoleOrganizer)(loadEvent(owner(deps.Events.Delete)))))

	// Lectures
	mux.HandleFunc("GET /lectures", deps.Lectures.List)
	mux.HandleFunc("GET /events/{eventID}/lectures", loadEvent(deps.Lectures.ListByEvent))
	mux.HandleFunc("POST /events/{eventID}/lectures", authed(middleware.RequireRole(domain.RoleLecturer, domain.RoleOrganizer)(loadEvent(deps.Lectures.Create))))
	mux.HandleFunc("GET /lectures/{lectureID}", loadLecture(deps.Lectures.Get))
	mux.HandleFunc("PUT /lectures/{lectureID}", authed(middleware.RequireRole(domain.RoleLecturer, domain.RoleOrganizer)(loadLecture(owner(deps.Lectures.Update)))))
	mux.HandleFunc("DELETE /lectures/{lectureID}", authed(middleware.RequireRole(domain.RoleLecturer, domain.RoleOrganizer)(loadLecture(owner(deps.Lectures.Delete)))))

	// Ratings
	mux.HandleFunc("GET /events/{eventID}/ratings", loadEvent(deps.Ratings.ListByEvent))
	mux.HandleFunc("GET /lectures/{lectureID}/ratings", loadLecture(deps.Ratings.ListByLecture))
	mux.HandleFunc("POST /ratings", authed(middleware.RequireRole()(deps.Ratings.Create)))
	mux.HandleFunc("DELETE /ratings/{ratingID}", authed(loadRating(owner(deps.Ratings.Delete))))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}

// asResource adapts a typed repository getter to the loader's fetch signature.
func asResource[T domain.Resource](get func(ctx context.Context, id string) (T, error)) middleware.ResourceFetcher {
	return func(ctx context.Context, id string) (domain.Resource, error) {
		res, err := get(ctx, id)
		if err != nil {
			return nil, err
		}
		return res, nil
	}
}
