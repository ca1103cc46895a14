package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/example/carhub/internal/core"
	"github.com/example/carhub/internal/middleware"
	"github.com/example/carhub/internal/models"
)

// TestDriveHandler handles test drive endpoints.
type TestDriveHandler struct {
	testDriveService core.TestDriveService
	logger           *zap.Logger
}

func NewTestDriveHandler(ts core.TestDriveService, logger *zap.Logger) *TestDriveHandler {
	return &TestDriveHandler{testDriveService: ts, logger: logger}
}

// CreateTestDrive handles POST /v1/api/test-drives.
func (h *TestDriveHandler) CreateTestDrive(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		respondError(c, h.logger, ErrUnauthorized)
		return
	}

	var req models.TestDriveRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, h.logger, err)
		return
	}

	testDrive, err := h.testDriveService.Create(c.Request.Context(), identity.UID, req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, models.Success(testDrive))
}

// ListTestDrives handles GET /v1/api/test-drives.
func (h *TestDriveHandler) ListTestDrives(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		respondError(c, h.logger, ErrUnauthorized)
		return
	}

	testDrives, err := h.testDriveService.ListByUser(c.Request.Context(), identity.UID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if testDrives == nil {
		testDrives = []models.TestDrive{}
	}
	c.JSON(http.StatusOK, models.Success(testDrives))
}
