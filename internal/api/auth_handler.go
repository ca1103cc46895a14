package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/example/carhub/internal/middleware"
	"github.com/example/carhub/internal/models"
)

// standardClaims are already exposed as top-level fields or carry no
// information for the client.
var standardClaims = []string{"iss", "aud", "auth_time", "user_id", "sub", "iat", "exp", "email", "email_verified"}

// AuthHandler handles authentication related endpoints.
type AuthHandler struct {
	logger *zap.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(logger *zap.Logger) *AuthHandler {
	return &AuthHandler{logger: logger}
}

// VerifyToken handles POST /v1/api/auth/verify. The token itself was checked
// by the auth middleware; this echoes the verified identity.
func (h *AuthHandler) VerifyToken(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		respondError(c, h.logger, ErrUnauthorized)
		return
	}

	resp := AuthVerifyResponse{
		UID:   identity.UID,
		Email: identity.Email,
	}
	resp.Name, _ = identity.Claims["name"].(string)
	resp.Picture, _ = identity.Claims["picture"].(string)
	resp.EmailVerified, _ = identity.Claims["email_verified"].(bool)
	resp.Claims = customClaims(identity.Claims)

	h.logger.Info("Token verified", zap.String("uid", identity.UID))
	c.JSON(http.StatusOK, models.Success(resp))
}

// customClaims copies claims without the standard ones. It returns nil when
// nothing is left.
func customClaims(claims map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(claims))
	for k, v := range claims {
		out[k] = v
	}
	for _, k := range standardClaims {
		delete(out, k)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
