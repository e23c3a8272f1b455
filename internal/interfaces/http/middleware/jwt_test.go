package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/storefront/backend/internal/infrastructure/auth"
	"github.com/storefront/backend/internal/infrastructure/config"
)

const testSecret = "middleware-test-secret"
const testIssuer = "storefront-identity"

func init() {
	gin.SetMode(gin.TestMode)
}

func newJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{Secret: testSecret, Issuer: testIssuer})
}

func issueToken(t *testing.T, principalID uuid.UUID, staff bool, expiresIn time.Duration) string {
	t.Helper()
	claims := auth.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   principalID.String(),
			Issuer:    testIssuer,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
		},
		Staff: staff,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

// protectedRouter exposes one route behind the given middleware and reports
// the principal it saw
func protectedRouter(mw ...gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	handlers := append(mw, func(c *gin.Context) {
		principal := GetPrincipal(c)
		if principal == nil {
			c.JSON(http.StatusOK, gin.H{"principal": nil})
			return
		}
		c.JSON(http.StatusOK, gin.H{"principal": principal.ID.String(), "staff": principal.Staff})
	})
	router.GET("/protected", handlers...)
	return router
}

func doRequest(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set(AuthHeaderKey, authHeader)
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestRequireAuth(t *testing.T) {
	jwtService := newJWTService()
	router := protectedRouter(RequireAuth(jwtService, zap.NewNop()))

	t.Run("valid token passes", func(t *testing.T) {
		principalID := uuid.New()
		token := issueToken(t, principalID, false, time.Hour)

		recorder := doRequest(router, BearerPrefix+token)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Contains(t, recorder.Body.String(), principalID.String())
	})

	t.Run("missing header is rejected", func(t *testing.T) {
		recorder := doRequest(router, "")

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "UNAUTHORIZED")
	})

	t.Run("malformed header is rejected", func(t *testing.T) {
		recorder := doRequest(router, "Token abc123")

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("expired token is rejected with a hint", func(t *testing.T) {
		token := issueToken(t, uuid.New(), false, -time.Minute)

		recorder := doRequest(router, BearerPrefix+token)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "expired")
	})

	t.Run("tampered token is rejected", func(t *testing.T) {
		token := issueToken(t, uuid.New(), false, time.Hour)

		recorder := doRequest(router, BearerPrefix+token+"x")

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})
}

func TestOptionalAuth(t *testing.T) {
	jwtService := newJWTService()
	router := protectedRouter(OptionalAuth(jwtService))

	t.Run("anonymous request passes without a principal", func(t *testing.T) {
		recorder := doRequest(router, "")

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "null")
	})

	t.Run("valid token attaches the principal", func(t *testing.T) {
		principalID := uuid.New()
		token := issueToken(t, principalID, false, time.Hour)

		recorder := doRequest(router, BearerPrefix+token)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Contains(t, recorder.Body.String(), principalID.String())
	})

	t.Run("invalid token is ignored", func(t *testing.T) {
		recorder := doRequest(router, BearerPrefix+"garbage")

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "null")
	})
}

func TestRequireStaff(t *testing.T) {
	jwtService := newJWTService()
	router := protectedRouter(RequireAuth(jwtService, zap.NewNop()), RequireStaff())

	t.Run("staff token passes", func(t *testing.T) {
		token := issueToken(t, uuid.New(), true, time.Hour)

		recorder := doRequest(router, BearerPrefix+token)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "true")
	})

	t.Run("non-staff token is forbidden", func(t *testing.T) {
		token := issueToken(t, uuid.New(), false, time.Hour)

		recorder := doRequest(router, BearerPrefix+token)

		assert.Equal(t, http.StatusForbidden, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "FORBIDDEN")
	})

	t.Run("without RequireAuth the request is unauthorized", func(t *testing.T) {
		staffOnly := protectedRouter(RequireStaff())

		recorder := doRequest(staffOnly, "")

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})
}
