package middleware

import (
	"context"
	"net/http"
	"strings"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/example/carhub/internal/metrics"
	"github.com/example/carhub/internal/models"
)

const (
	bearerPrefix = "Bearer "

	msgMissingToken = "Missing or invalid Authorization header"
	msgInvalidToken = "Invalid or expired token"
)

// IdentityKey is the gin context key holding the caller's *Identity.
const IdentityKey = "identity"

// TokenVerifier verifies Firebase ID tokens. *auth.Client satisfies it.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// Identity is the verified caller of a request.
type Identity struct {
	UID    string
	Email  string
	Claims map[string]interface{}
}

type identityContextKey struct{}

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityContextKey{}, id)
}

// IdentityFromContext returns the identity bound to ctx by the auth middleware.
func IdentityFromContext(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(identityContextKey{}).(*Identity)
	return id, ok && id != nil
}

// GetIdentity returns the identity bound to the gin context.
func GetIdentity(c *gin.Context) (*Identity, bool) {
	v, exists := c.Get(IdentityKey)
	if !exists {
		return nil, false
	}
	id, ok := v.(*Identity)
	return id, ok && id != nil
}

// AuthMiddleware provides Gin middleware for Firebase token authentication.
type AuthMiddleware struct {
	verifier    TokenVerifier
	publicPaths map[string]struct{}
	logger      *zap.Logger
	metrics     *metrics.Metrics
}

// NewAuthMiddleware creates a new AuthMiddleware instance. Requests whose path
// exactly matches one of publicPaths skip authentication. m may be nil.
// It panics if verifier is nil.
func NewAuthMiddleware(verifier TokenVerifier, publicPaths []string, logger *zap.Logger, m *metrics.Metrics) *AuthMiddleware {
	if verifier == nil {
		panic("token verifier is not initialized for AuthMiddleware")
	}
	paths := make(map[string]struct{}, len(publicPaths))
	for _, p := range publicPaths {
		paths[p] = struct{}{}
	}
	return &AuthMiddleware{verifier: verifier, publicPaths: paths, logger: logger, metrics: m}
}

// VerifyToken verifies the bearer token of every non-public request and binds
// the resulting Identity to the gin and request contexts.
func (m *AuthMiddleware) VerifyToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, public := m.publicPaths[c.Request.URL.Path]; public {
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		idToken := strings.TrimSpace(strings.TrimPrefix(authHeader, bearerPrefix))
		if !strings.HasPrefix(authHeader, bearerPrefix) || idToken == "" {
			m.reject(c, metrics.ReasonMissingToken, msgMissingToken)
			return
		}

		token, err := m.verifier.VerifyIDToken(c.Request.Context(), idToken)
		if err != nil {
			m.logger.Warn("Firebase token verification failed",
				zap.String("path", c.Request.URL.Path),
				zap.Error(err),
			)
			m.reject(c, metrics.ReasonInvalidToken, msgInvalidToken)
			return
		}

		identity := &Identity{UID: token.UID, Claims: token.Claims}
		if email, ok := token.Claims["email"].(string); ok {
			identity.Email = email
		}
		c.Set(IdentityKey, identity)
		c.Request = c.Request.WithContext(WithIdentity(c.Request.Context(), identity))

		c.Next()
	}
}

func (m *AuthMiddleware) reject(c *gin.Context, reason, message string) {
	if m.metrics != nil {
		m.metrics.AuthFailure(reason)
	}
	c.AbortWithStatusJSON(http.StatusUnauthorized, models.Failure(message, models.CodeUnauthorized))
}
