package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"feedback/internal/auth"
	"feedback/internal/entity"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Register creates an account with the default endUser role.
func (h *HTTPHandler) Register(c *gin.Context) {
	if h.repo == nil {
		ServiceUnavailable(c, "user repository not available")
		return
	}

	var req entity.AuthRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), repoTimeout)
	defer cancel()

	endUserRole, err := h.repo.GetRoleByName(ctx, entity.RoleEndUser)
	if err != nil {
		logrus.WithError(err).Error("failed to load endUser role for registration")
		InternalError(c, "failed to process registration")
		return
	}

	summary, ok := h.createUser(c, ctx, req.Email, req.Password, req.FcmToken, endUserRole)
	if !ok {
		return
	}

	c.JSON(http.StatusCreated, summary)
}

// createUser runs the shared registration path: duplicate pre-check for the
// friendly 409, bcrypt hash, insert with the unique constraint as backstop.
func (h *HTTPHandler) createUser(c *gin.Context, ctx context.Context, email, password, fcmToken string, role *entity.DbRole) (entity.UserSummary, bool) {
	email = strings.ToLower(strings.TrimSpace(email))
	password = strings.TrimSpace(password)
	if email == "" || password == "" {
		BadRequest(c, ErrCodeInvalidRequest, "email and password are required")
		return entity.UserSummary{}, false
	}

	if _, err := h.repo.GetUserByEmail(ctx, email); err == nil {
		Conflict(c, ErrCodeEmailExists, "user with this email already exists")
		return entity.UserSummary{}, false
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		logrus.WithError(err).Error("failed to check existing user")
		InternalError(c, "failed to register user")
		return entity.UserSummary{}, false
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		logrus.WithError(err).Error("failed to hash password")
		InternalError(c, "failed to register user")
		return entity.UserSummary{}, false
	}

	user := &entity.DbUser{
		Email:        email,
		PasswordHash: hash,
		FcmToken:     strings.TrimSpace(fcmToken),
		RoleID:       role.ID,
	}

	if err := h.repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			Conflict(c, ErrCodeEmailExists, "user with this email already exists")
			return entity.UserSummary{}, false
		}
		logrus.WithError(err).Error("failed to create user")
		InternalError(c, "failed to register user")
		return entity.UserSummary{}, false
	}

	logrus.WithField("email", email).Info("user registered")
	return entity.UserSummary{
		ID:        user.ID,
		Email:     user.Email,
		Role:      role.Name,
		Confirmed: user.Confirmed,
		CreatedAt: user.CreatedAt,
	}, true
}

// Login verifies credentials and issues a thirty-minute bearer token bound
// to the user's email.
func (h *HTTPHandler) Login(c *gin.Context) {
	if h.repo == nil {
		ServiceUnavailable(c, "user repository not available")
		return
	}

	var req entity.AuthLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	password := strings.TrimSpace(req.Password)
	if email == "" || password == "" {
		BadRequest(c, ErrCodeInvalidRequest, "email and password are required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), repoTimeout)
	defer cancel()

	user, err := h.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logrus.WithError(err).WithField("email", email).Error("failed to load user for login")
			InternalError(c, "failed to log in")
			return
		}
		Unauthorized(c, ErrCodeInvalidCredentials, "invalid email or password")
		return
	}

	if err := auth.VerifyPassword(user.PasswordHash, password); err != nil {
		logrus.WithField("email", email).Warn("password verification failed")
		Unauthorized(c, ErrCodeInvalidCredentials, "invalid email or password")
		return
	}

	token, expiresAt, err := h.tokens.Issue(user.Email)
	if err != nil {
		logrus.WithError(err).Error("failed to issue token")
		InternalError(c, "failed to create session")
		return
	}

	c.JSON(http.StatusOK, entity.AuthTokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresAt:   expiresAt,
	})
}

// Me returns the resolved current user with its role name.
func (h *HTTPHandler) Me(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		Unauthorized(c, ErrCodeUnauthorized, "authentication required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), repoTimeout)
	defer cancel()

	roleName, err := h.authz.RoleName(ctx, user)
	if err != nil {
		logrus.WithError(err).WithField("user_id", user.ID).Error("failed to resolve role name")
		InternalError(c, "failed to load profile")
		return
	}

	c.JSON(http.StatusOK, entity.UserSummary{
		ID:        user.ID,
		Email:     user.Email,
		Role:      roleName,
		Confirmed: user.Confirmed,
		CreatedAt: user.CreatedAt,
	})
}
