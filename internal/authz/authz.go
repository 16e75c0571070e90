// Package authz resolves the caller behind a bearer token and enforces
// role policies against the roles table.
package authz

import (
	"context"
	"errors"

	"feedback/internal/auth"
	"feedback/internal/entity"
	"feedback/internal/model"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	// ErrUnauthenticated covers invalid or expired tokens and tokens whose
	// subject no longer resolves to a user.
	ErrUnauthenticated = errors.New("could not validate credentials")
	// ErrForbidden indicates an authenticated user whose role does not
	// satisfy the policy.
	ErrForbidden = errors.New("access denied")
)

// Service performs per-request authentication and role enforcement. Role
// membership lives in the database, not in the token, so a role change takes
// effect on the next request. The cost is one role lookup per policy check;
// these guards sit on low-volume admin endpoints.
type Service struct {
	tokens *auth.Manager
	repo   model.Repository
}

// NewService creates an authorization service.
func NewService(tokens *auth.Manager, repo model.Repository) *Service {
	return &Service{tokens: tokens, repo: repo}
}

// ResolveUser validates the token and loads the user behind its subject.
// Expired tokens surface as ErrTokenExpired wrapped in ErrUnauthenticated so
// clients can distinguish re-authentication from credential failure.
func (s *Service) ResolveUser(ctx context.Context, token string) (*entity.DbUser, error) {
	email, err := s.tokens.Validate(token)
	if err != nil {
		if errors.Is(err, auth.ErrTokenExpired) {
			return nil, errors.Join(ErrUnauthenticated, auth.ErrTokenExpired)
		}
		return nil, errors.Join(ErrUnauthenticated, err)
	}

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Token subject no longer maps to an account.
			return nil, ErrUnauthenticated
		}
		return nil, err
	}
	return user, nil
}

// RequireRole succeeds only when the user's role_id matches the role with
// the given name. A missing role row (deleted bootstrap role) is treated as
// a policy failure, never a crash.
func (s *Service) RequireRole(ctx context.Context, user *entity.DbUser, roleName string) error {
	if user == nil {
		return ErrUnauthenticated
	}
	role, err := s.repo.GetRoleByName(ctx, roleName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logrus.WithField("role", roleName).Warn("policy role missing from roles table")
			return ErrForbidden
		}
		return err
	}
	if user.RoleID != role.ID {
		return ErrForbidden
	}
	return nil
}

// RequireAnyRole succeeds when the user's role_id matches any of the named
// roles.
func (s *Service) RequireAnyRole(ctx context.Context, user *entity.DbUser, roleNames ...string) error {
	if user == nil {
		return ErrUnauthenticated
	}
	for _, name := range roleNames {
		role, err := s.repo.GetRoleByName(ctx, name)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return err
		}
		if user.RoleID == role.ID {
			return nil
		}
	}
	return ErrForbidden
}

// RequireSuperAdmin is the policy guarding role and user management.
func (s *Service) RequireSuperAdmin(ctx context.Context, user *entity.DbUser) error {
	return s.RequireRole(ctx, user, entity.RoleSuperAdmin)
}

// RequireAdminOrSuperAdmin is the policy guarding form-building endpoints.
func (s *Service) RequireAdminOrSuperAdmin(ctx context.Context, user *entity.DbUser) error {
	return s.RequireAnyRole(ctx, user, entity.RoleAdmin, entity.RoleSuperAdmin)
}

// RequireEndUser is the policy guarding answer submission.
func (s *Service) RequireEndUser(ctx context.Context, user *entity.DbUser) error {
	return s.RequireRole(ctx, user, entity.RoleEndUser)
}

// RoleName resolves the name behind a user's role_id. A dangling role_id
// yields an empty string.
func (s *Service) RoleName(ctx context.Context, user *entity.DbUser) (string, error) {
	if user == nil {
		return "", ErrUnauthenticated
	}
	role, err := s.repo.GetRoleByID(ctx, user.RoleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return role.Name, nil
}
