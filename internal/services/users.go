package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/guardbox/internal/common"
	"github.com/dmitrijs2005/guardbox/internal/cryptox"
	"github.com/dmitrijs2005/guardbox/internal/logging"
	"github.com/dmitrijs2005/guardbox/internal/models"
	"github.com/dmitrijs2005/guardbox/internal/repositories/users"
)

// UserService implements account management under an authenticated
// identity: registration, password changes, and the admin-only resets.
type UserService struct {
	users users.Repository
	log   logging.Logger
}

// NewUserService constructs a UserService over the credential repository.
func NewUserService(repo users.Repository, log logging.Logger) *UserService {
	return &UserService{users: repo, log: log}
}

// Register creates a new user.
//
// While the store is empty, actor may be nil and the new user's role is
// forced to admin (there must always be an admin once any user exists).
// Afterwards only an admin actor may register users; a non-admin actor
// fails with common.ErrorPermissionDenied without touching the store. A
// taken username fails with common.ErrorAlreadyExists, also without
// mutation. An unknown role falls back to the user role.
func (s *UserService) Register(ctx context.Context, actor *Session, username, password string, role models.Role) (*models.User, error) {
	if username == "" {
		return nil, fmt.Errorf("%w: username must not be empty", common.ErrorValidation)
	}

	count, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}
	firstUser := count == 0

	if !firstUser && !actor.IsAdmin() {
		return nil, common.ErrorPermissionDenied
	}

	if _, err := s.users.Find(ctx, username); err == nil {
		return nil, common.ErrorAlreadyExists
	} else if !errors.Is(err, common.ErrorNotFound) {
		return nil, err
	}

	if firstUser {
		role = models.RoleAdmin
	} else if !role.Valid() {
		role = models.RoleUser
	}

	user := &models.User{
		UserName:     username,
		PasswordHash: cryptox.HashPassword(password),
		Role:         role,
	}
	if err := s.users.Upsert(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info(ctx, "user registered", "role", user.Role, "first_user", firstUser)
	return user, nil
}

// ChangeOwnPassword sets a new password for the session owner.
func (s *UserService) ChangeOwnPassword(ctx context.Context, actor *Session, newPassword string) error {
	if actor == nil {
		return common.ErrorPermissionDenied
	}

	user, err := s.users.Find(ctx, actor.UserName)
	if err != nil {
		return err
	}

	user.PasswordHash = cryptox.HashPassword(newPassword)
	if err := s.users.Upsert(ctx, user); err != nil {
		return err
	}

	s.log.Info(ctx, "password changed")
	return nil
}

// ResetOtherPassword sets a new password for another user. Admin only;
// non-admin actors fail with common.ErrorPermissionDenied and the store is
// left unchanged. An unknown target fails with common.ErrorNotFound.
func (s *UserService) ResetOtherPassword(ctx context.Context, actor *Session, targetUsername, newPassword string) error {
	if !actor.IsAdmin() {
		return common.ErrorPermissionDenied
	}

	user, err := s.users.Find(ctx, targetUsername)
	if err != nil {
		return err
	}

	user.PasswordHash = cryptox.HashPassword(newPassword)
	if err := s.users.Upsert(ctx, user); err != nil {
		return err
	}

	s.log.Info(ctx, "password reset by admin")
	return nil
}

// ListUsers returns all users ordered by username. Admin only.
func (s *UserService) ListUsers(ctx context.Context, actor *Session) ([]models.User, error) {
	if !actor.IsAdmin() {
		return nil, common.ErrorPermissionDenied
	}
	return s.users.List(ctx)
}

// HasUsers reports whether any user exists yet (first-run detection).
func (s *UserService) HasUsers(ctx context.Context) (bool, error) {
	count, err := s.users.Count(ctx)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
