package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/storefront/backend/internal/infrastructure/auth"
	"github.com/storefront/backend/internal/infrastructure/logger"
	"github.com/storefront/backend/internal/interfaces/http/dto"
)

// Auth context keys
const (
	PrincipalKey  = "principal"
	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "
)

// RequireAuth validates the bearer token and stores the resulting Principal
// in the request context. Requests without a valid token are rejected.
func RequireAuth(jwtService *auth.JWTService, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, err := principalFromRequest(c, jwtService)
		if err != nil {
			abortUnauthorized(c, log, err)
			return
		}
		setPrincipal(c, principal)
		c.Next()
	}
}

// OptionalAuth extracts a Principal when a valid bearer token is present and
// lets the request through either way. Handlers that care check the context.
func OptionalAuth(jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, err := principalFromRequest(c, jwtService)
		if err == nil {
			setPrincipal(c, principal)
		}
		c.Next()
	}
}

// RequireStaff rejects requests whose principal lacks the staff flag.
// Must run after RequireAuth.
func RequireStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal := GetPrincipal(c)
		if principal == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponse(dto.ErrCodeUnauthorized, "Authentication required"))
			return
		}
		if !principal.Staff {
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponse(dto.ErrCodeForbidden, "Staff access required"))
			return
		}
		c.Next()
	}
}

// GetPrincipal retrieves the authenticated principal from gin.Context,
// or nil when the request is anonymous
func GetPrincipal(c *gin.Context) *auth.Principal {
	if v, exists := c.Get(PrincipalKey); exists {
		if principal, ok := v.(*auth.Principal); ok {
			return principal
		}
	}
	return nil
}

func principalFromRequest(c *gin.Context, jwtService *auth.JWTService) (*auth.Principal, error) {
	authHeader := c.GetHeader(AuthHeaderKey)
	if authHeader == "" {
		return nil, auth.ErrInvalidToken
	}
	if !strings.HasPrefix(authHeader, BearerPrefix) {
		return nil, auth.ErrInvalidToken
	}
	tokenString := strings.TrimPrefix(authHeader, BearerPrefix)
	if tokenString == "" {
		return nil, auth.ErrInvalidToken
	}
	return jwtService.Validate(tokenString)
}

func setPrincipal(c *gin.Context, principal *auth.Principal) {
	c.Set(PrincipalKey, principal)

	// Enrich the request context so downstream logs carry the principal
	ctx := c.Request.Context()
	log := logger.FromContext(ctx)
	ctx, _ = logger.WithPrincipalID(ctx, log, principal.ID.String())
	c.Request = c.Request.WithContext(ctx)
}

func abortUnauthorized(c *gin.Context, log *zap.Logger, err error) {
	if log != nil {
		log.Warn("authentication failed",
			zap.Error(err),
			zap.String("path", c.Request.URL.Path),
		)
	}

	code := dto.ErrCodeUnauthorized
	message := "Authentication required"
	switch err {
	case auth.ErrExpiredToken:
		message = "Token has expired"
	case auth.ErrTokenNotYetValid:
		message = "Token is not yet valid"
	}

	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(code, message))
}
