package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/example/carhub/internal/core"
	"github.com/example/carhub/internal/middleware"
	"github.com/example/carhub/internal/models"
)

// InterestHandler handles car interest endpoints.
type InterestHandler struct {
	interestService core.InterestService
	logger          *zap.Logger
}

func NewInterestHandler(is core.InterestService, logger *zap.Logger) *InterestHandler {
	return &InterestHandler{interestService: is, logger: logger}
}

// CreateInterest handles POST /v1/api/interests.
func (h *InterestHandler) CreateInterest(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		respondError(c, h.logger, ErrUnauthorized)
		return
	}

	var req models.InterestRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, h.logger, err)
		return
	}

	interest, err := h.interestService.Create(c.Request.Context(), identity.UID, req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, models.Success(interest))
}

// ListInterests handles GET /v1/api/interests.
func (h *InterestHandler) ListInterests(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		respondError(c, h.logger, ErrUnauthorized)
		return
	}

	interests, err := h.interestService.ListByUser(c.Request.Context(), identity.UID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if interests == nil {
		interests = []models.Interest{}
	}
	c.JSON(http.StatusOK, models.Success(interests))
}
