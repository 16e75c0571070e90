package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"feedback/internal/entity"
	"feedback/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// maxProfilePictureBytes caps profile picture uploads.
const maxProfilePictureBytes = 5 << 20

// GetProfile returns the current user's profile. A user without a profile
// row gets an empty profile rather than a 404.
func (h *HTTPHandler) GetProfile(c *gin.Context) {
	if h.repo == nil {
		ServiceUnavailable(c, "repository not available")
		return
	}
	user := CurrentUser(c)
	if user == nil {
		Unauthorized(c, ErrCodeUnauthorized, "authentication required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), repoTimeout)
	defer cancel()

	profile, err := h.repo.GetProfileByUserID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusOK, entity.ProfileResponse{UserID: user.ID, Email: user.Email})
			return
		}
		logrus.WithError(err).Error("failed to load profile")
		InternalError(c, "failed to load profile")
		return
	}

	c.JSON(http.StatusOK, entity.ProfileResponse{
		UserID:         user.ID,
		Email:          user.Email,
		PhoneNumber:    profile.PhoneNumber,
		ProfilePicture: h.publicURL(profile.ProfilePicture),
	})
}

// UpdateProfile sets the current user's phone number, creating the profile
// row on first write.
func (h *HTTPHandler) UpdateProfile(c *gin.Context) {
	if h.repo == nil {
		ServiceUnavailable(c, "repository not available")
		return
	}
	user := CurrentUser(c)
	if user == nil {
		Unauthorized(c, ErrCodeUnauthorized, "authentication required")
		return
	}

	var req entity.ProfileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), repoTimeout)
	defer cancel()

	profile, err := h.loadOrInitProfile(ctx, user.ID)
	if err != nil {
		logrus.WithError(err).Error("failed to load profile for update")
		InternalError(c, "failed to update profile")
		return
	}

	profile.PhoneNumber = strings.TrimSpace(req.PhoneNumber)
	if err := h.repo.SaveProfile(ctx, profile); err != nil {
		logrus.WithError(err).Error("failed to save profile")
		InternalError(c, "failed to update profile")
		return
	}

	c.JSON(http.StatusOK, entity.ProfileResponse{
		UserID:         user.ID,
		Email:          user.Email,
		PhoneNumber:    profile.PhoneNumber,
		ProfilePicture: h.publicURL(profile.ProfilePicture),
	})
}

// UploadProfilePicture stores the uploaded image through the configured
// storage backend and records the object key on the profile.
func (h *HTTPHandler) UploadProfilePicture(c *gin.Context) {
	if h.repo == nil {
		ServiceUnavailable(c, "repository not available")
		return
	}
	if h.storage == nil {
		ServiceUnavailable(c, "storage not available")
		return
	}
	user := CurrentUser(c)
	if user == nil {
		Unauthorized(c, ErrCodeUnauthorized, "authentication required")
		return
	}

	fileHeader, err := c.FormFile("picture")
	if err != nil {
		MissingField(c, "picture")
		return
	}
	if fileHeader.Size > maxProfilePictureBytes {
		BadRequest(c, ErrCodeInvalidRequest, "picture exceeds the size limit")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		logrus.WithError(err).Error("failed to open uploaded picture")
		InternalError(c, "failed to upload picture")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxProfilePictureBytes+1))
	if err != nil {
		logrus.WithError(err).Error("failed to read uploaded picture")
		InternalError(c, "failed to upload picture")
		return
	}
	if len(data) == 0 {
		BadRequest(c, ErrCodeInvalidRequest, "picture is empty")
		return
	}
	if len(data) > maxProfilePictureBytes {
		BadRequest(c, ErrCodeInvalidRequest, "picture exceeds the size limit")
		return
	}

	ext := strings.TrimPrefix(filepath.Ext(fileHeader.Filename), ".")
	if ext == "" {
		ext = "png"
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), repoTimeout)
	defer cancel()

	key, err := h.storage.Save(ctx, data, storage.SaveOptions{Category: "avatars", Extension: ext})
	if err != nil {
		logrus.WithError(err).Error("failed to store profile picture")
		InternalError(c, "failed to upload picture")
		return
	}

	profile, err := h.loadOrInitProfile(ctx, user.ID)
	if err != nil {
		logrus.WithError(err).Error("failed to load profile for picture update")
		InternalError(c, "failed to upload picture")
		return
	}

	profile.ProfilePicture = key
	if err := h.repo.SaveProfile(ctx, profile); err != nil {
		logrus.WithError(err).Error("failed to save profile picture key")
		InternalError(c, "failed to upload picture")
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile_picture": h.publicURL(key)})
}

func (h *HTTPHandler) loadOrInitProfile(ctx context.Context, userID uint) (*entity.DbProfile, error) {
	profile, err := h.repo.GetProfileByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &entity.DbProfile{UserID: userID}, nil
		}
		return nil, err
	}
	return profile, nil
}
