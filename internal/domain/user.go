package domain

import (
	"context"
	"time"
)

// Role is an application role carried on every user record.
type Role string

const (
	RoleUser      Role = "user"
	RoleLecturer  Role = "lecturer"
	RoleOrganizer Role = "organizer"
	RoleAdmin     Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleLecturer, RoleOrganizer, RoleAdmin:
		return true
	}
	return false
}

// User represents a registered user. PasswordHash is never serialized.
// swagger:model User
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         Role      `json:"role"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ResourceID implements Resource.
func (u *User) ResourceID() string { return u.ID }

// OwnerID implements Resource. A user record is owned by itself, so profile
// updates and self-deletion run through the same ownership check as other
// resources.
func (u *User) OwnerID() string { return u.ID }

// Identity is the authenticated caller attached to the request context by the
// auth middleware.
type Identity struct {
	ID   string
	Role Role
}

// PasswordHasher handles password hashing and verification.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// TokenIssuer issues bearer tokens for an authenticated user.
type TokenIssuer interface {
	Issue(userID string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a bearer token and returns the subject user ID.
type TokenVerifier interface {
	Verify(token string) (userID string, err error)
}

// UserRepository defines the interface for user storage.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	List(ctx context.Context, params PaginationParams) ([]*User, int, error)
	Update(ctx context.Context, user *User) error
	Delete(ctx context.Context, id string) error
}

// AuthService handles registration and login.
type AuthService interface {
	Register(ctx context.Context, name, email, password string, role Role) (*User, string, error)
	Login(ctx context.Context, email, password string) (*User, string, error)
}

// UserService defines the business logic for user profiles.
type UserService interface {
	GetByID(ctx context.Context, id string) (*User, error)
	List(ctx context.Context, params PaginationParams) ([]*User, int, error)
	Update(ctx context.Context, id string, name, email, password *string) (*User, error)
	Delete(ctx context.Context, id string) error
}
