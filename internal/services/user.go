package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"eventhorizon/internal/domain"
)

type userService struct {
	userRepo domain.UserRepository
	hasher   domain.PasswordHasher
}

// NewUserService creates a UserService for profile management. Authorization
// (self-or-admin) is enforced by the ownership middleware before these
// methods run.
func NewUserService(userRepo domain.UserRepository, hasher domain.PasswordHasher) domain.UserService {
	return &userService{userRepo: userRepo, hasher: hasher}
}

func (s *userService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *userService) List(ctx context.Context, params domain.PaginationParams) ([]*domain.User, int, error) {
	return s.userRepo.List(ctx, params)
}

func (s *userService) Update(ctx context.Context, id string, name, email, password *string) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if name != nil {
		user.Name = strings.TrimSpace(*name)
	}
	if email != nil {
		e := strings.TrimSpace(strings.ToLower(*email))
		if !emailRegexp.MatchString(e) {
			return nil, fmt.Errorf("%w: invalid email format", domain.ErrInvalidInput)
		}
		user.Email = e
	}
	if password != nil {
		if len(*password) < minPasswordLen {
			return nil, fmt.Errorf("%w: password must be at least %d characters", domain.ErrInvalidInput, minPasswordLen)
		}
		hash, err := s.hasher.Hash(*password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = hash
	}
	user.UpdatedAt = time.Now()

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) Delete(ctx context.Context, id string) error {
	return s.userRepo.Delete(ctx, id)
}
