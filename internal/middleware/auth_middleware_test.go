package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nsharma/shopmitra-backend/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "middleware-test-secret"

func setupAuthMiddlewareTest(t *testing.T) (*AuthMiddleware, *gin.Engine) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	return NewAuthMiddleware(testSecret), router
}

func issueToken(t *testing.T, accessExpiry time.Duration) string {
	t.Helper()
	tokens, err := util.GenerateTokenPair(1, "test@example.com", "user", testSecret, accessExpiry, time.Hour)
	require.NoError(t, err)
	return tokens.AccessToken
}

func TestAuthMiddleware_Authenticate_Success(t *testing.T) {
	m, router := setupAuthMiddlewareTest(t)

	router.GET("/protected", m.Authenticate(), func(c *gin.Context) {
		userID, ok := GetUserID(c)
		require.True(t, ok)
		email, _ := GetUserEmail(c)
		role, _ := GetUserRole(c)
		token, hasToken := GetAccessToken(c)
		assert.True(t, hasToken)
		assert.NotEmpty(t, token)

		c.JSON(http.StatusOK, gin.H{
			"user_id": userID,
			"email":   email,
			"role":    role,
		})
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, time.Minute))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, float64(1), response["user_id"])
	assert.Equal(t, "test@example.com", response["email"])
	assert.Equal(t, "user", response["role"])
}

func TestAuthMiddleware_Authenticate_MissingHeader(t *testing.T) {
	m, router := setupAuthMiddlewareTest(t)

	router.GET("/protected", m.Authenticate(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "AUTH_UNAUTHORIZED", response["error"])
}

func TestAuthMiddleware_Authenticate_MalformedHeader(t *testing.T) {
	m, router := setupAuthMiddlewareTest(t)

	router.GET("/protected", m.Authenticate(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	tests := []struct {
		name   string
		header string
	}{
		{"No Bearer prefix", issueToken(t, time.Minute)},
		{"Wrong scheme", "Basic dXNlcjpwYXNz"},
		{"Extra parts", "Bearer token extra"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			req.Header.Set("Authorization", tt.header)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)

			var response map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
			assert.Equal(t, "AUTH_TOKEN_INVALID", response["error"])
		})
	}
}

func TestAuthMiddleware_Authenticate_InvalidToken(t *testing.T) {
	m, router := setupAuthMiddlewareTest(t)

	router.GET("/protected", m.Authenticate(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-valid-token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "AUTH_TOKEN_INVALID", response["error"])
}

func TestAuthMiddleware_Authenticate_ExpiredToken(t *testing.T) {
	m, router := setupAuthMiddlewareTest(t)

	router.GET("/protected", m.Authenticate(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, -time.Minute))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "AUTH_TOKEN_EXPIRED", response["error"])
}

func TestAuthMiddleware_RequireRole_Allowed(t *testing.T) {
	m, router := setupAuthMiddlewareTest(t)

	tokens, err := util.GenerateTokenPair(1, "admin@example.com", "admin", testSecret, time.Minute, time.Hour)
	require.NoError(t, err)

	router.GET("/admin", m.Authenticate(), m.RequireRole("admin"), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+tokens.AccessToken)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthMiddleware_RequireRole_Denied(t *testing.T) {
	m, router := setupAuthMiddlewareTest(t)

	router.GET("/admin", m.Authenticate(), m.RequireRole("admin"), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, time.Minute))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "AUTHZ_FORBIDDEN", response["error"])
}

func TestAuthMiddleware_RequireRole_NoRoleInContext(t *testing.T) {
	m, router := setupAuthMiddlewareTest(t)

	// RequireRole without Authenticate in front of it.
	router.GET("/admin", m.RequireRole("admin"), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "AUTHZ_ROLE_NOT_FOUND", response["error"])
}
