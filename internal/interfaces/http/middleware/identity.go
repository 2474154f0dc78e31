package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/smartbill/backend/internal/infrastructure/auth"
	"github.com/smartbill/backend/internal/interfaces/http/dto"
)

// Identity context keys
const (
	ActorKey      = "auth_actor"
	RoleKey       = "auth_role"
	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "
)

// IdentityConfig holds configuration for the identity middleware
type IdentityConfig struct {
	JWTService *auth.JWTService
	// SkipPaths are paths that don't require authentication
	SkipPaths []string
	Logger    *zap.Logger
}

// DefaultIdentityConfig returns the default identity middleware configuration
func DefaultIdentityConfig(jwtService *auth.JWTService) IdentityConfig {
	return IdentityConfig{
		JWTService: jwtService,
		SkipPaths: []string{
			"/health",
			"/healthz",
			"/api/v1/health",
		},
	}
}

// Identity creates bearer-token authentication middleware
func Identity(jwtService *auth.JWTService) gin.HandlerFunc {
	return IdentityWithConfig(DefaultIdentityConfig(jwtService))
}

// IdentityWithConfig creates bearer-token authentication middleware with custom config
func IdentityWithConfig(cfg IdentityConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, skipPath := range cfg.SkipPaths {
			if path == skipPath {
				c.Next()
				return
			}
		}

		authHeader := c.GetHeader(AuthHeaderKey)
		if authHeader == "" {
			abortUnauthorized(c, dto.ErrCodeUnauthorized, "Missing authorization header")
			return
		}
		if !strings.HasPrefix(authHeader, BearerPrefix) {
			abortUnauthorized(c, dto.ErrCodeTokenInvalid, "Invalid authorization header format")
			return
		}
		tokenString := strings.TrimPrefix(authHeader, BearerPrefix)

		claims, err := cfg.JWTService.ValidateToken(tokenString)
		if err != nil {
			if cfg.Logger != nil {
				cfg.Logger.Debug("token validation failed",
					zap.String("path", path),
					zap.Error(err),
				)
			}
			code := dto.ErrCodeTokenInvalid
			if errors.Is(err, auth.ErrExpiredToken) {
				code = dto.ErrCodeTokenExpired
			}
			abortUnauthorized(c, code, "Token validation failed")
			return
		}

		c.Set(ActorKey, claims.Actor)
		c.Set(RoleKey, claims.Role)
		c.Next()
	}
}

// GetActor returns the authenticated actor name, empty when unauthenticated
func GetActor(c *gin.Context) string {
	return c.GetString(ActorKey)
}

// GetRole returns the authenticated actor's role, empty when unauthenticated
func GetRole(c *gin.Context) string {
	return c.GetString(RoleKey)
}

// RequireRole rejects requests whose actor lacks the given role. Admins pass
// every role check.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		actual := GetRole(c)
		if actual != role && actual != auth.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeForbidden, "Insufficient role", GetRequestID(c),
			))
			return
		}
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, code, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponseWithRequestID(
		code, message, GetRequestID(c),
	))
}
