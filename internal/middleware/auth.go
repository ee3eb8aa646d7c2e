package middleware

import (
	"context"
	"net/http"
	"strings"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const identityKey = "identity"

// ErrorResponse mirrors the JSON error body written by the api package.
type ErrorResponse struct {
	Message string `json:"message"`
}

// TokenVerifier checks a Firebase ID token. *auth.Client satisfies it.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// Identity is the verified caller of an authenticated route.
type Identity struct {
	UID     string
	Email   string
	Name    string
	Picture string
}

// AuthMiddleware provides Gin middleware for Firebase token authentication.
type AuthMiddleware struct {
	verifier TokenVerifier
	logger   *zap.Logger
}

// NewAuthMiddleware creates a new AuthMiddleware instance.
// It panics if verifier is nil, since authenticated routes cannot work without one.
func NewAuthMiddleware(verifier TokenVerifier, logger *zap.Logger) *AuthMiddleware {
	if verifier == nil {
		panic("AuthMiddleware requires a non-nil TokenVerifier")
	}
	return &AuthMiddleware{verifier: verifier, logger: logger}
}

// VerifyToken rejects requests without a bearer token with 401 and requests
// whose token does not verify with 403. On success the caller's Identity is
// stored in the context.
func (m *AuthMiddleware) VerifyToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		idToken, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Message: "Unauthorized - No token found"})
			return
		}

		token, err := m.verifier.VerifyIDToken(c.Request.Context(), idToken)
		if err != nil {
			m.logger.Warn("Firebase ID token verification failed",
				zap.String("path", c.FullPath()),
				zap.String("request_id", RequestIDFrom(c)),
				zap.Error(err))
			c.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{Message: "Invalid or expired token"})
			return
		}

		identity := Identity{UID: token.UID}
		identity.Email, _ = token.Claims["email"].(string)
		identity.Name, _ = token.Claims["name"].(string)
		identity.Picture, _ = token.Claims["picture"].(string)
		if identity.Email == "" {
			m.logger.Warn("Verified token carries no email claim", zap.String("uid", token.UID))
			c.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{Message: "Invalid or expired token"})
			return
		}

		c.Set(identityKey, identity)
		c.Next()
	}
}

// IdentityFrom returns the caller stored by VerifyToken.
func IdentityFrom(c *gin.Context) (Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return Identity{}, false
	}
	identity, ok := v.(Identity)
	return identity, ok
}
