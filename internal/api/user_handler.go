package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/example/carhub/internal/core"
	"github.com/example/carhub/internal/middleware"
	"github.com/example/carhub/internal/models"
)

// UserHandler handles user profile endpoints.
type UserHandler struct {
	userService core.UserService
	logger      *zap.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(us core.UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{userService: us, logger: logger}
}

// GetCurrentUserProfile handles GET /v1/api/user/me. The profile is created on
// first access.
func (h *UserHandler) GetCurrentUserProfile(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		respondError(c, h.logger, ErrUnauthorized)
		return
	}

	profile, err := h.userService.GetOrCreate(c.Request.Context(), identity.UID, identity.Email)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, models.Success(profile))
}

// UpdateCurrentUserProfile handles PUT /v1/api/user/me.
func (h *UserHandler) UpdateCurrentUserProfile(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		respondError(c, h.logger, ErrUnauthorized)
		return
	}

	var req models.UserProfileRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, h.logger, err)
		return
	}

	profile, err := h.userService.Update(c.Request.Context(), identity.UID, req.ToUpdate())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, models.Success(profile))
}
