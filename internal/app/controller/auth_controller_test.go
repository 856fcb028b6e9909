package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nsharma/shopmitra-backend/internal/app/repository"
	"github.com/nsharma/shopmitra-backend/internal/app/service"
	"github.com/nsharma/shopmitra-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAuthControllerTest(t *testing.T) (*AuthController, *gin.Engine, service.AuthService) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	userRepo := repository.NewUserRepository(testDB)
	authService := service.NewAuthService(userRepo, "test-secret", 15*time.Minute, 7*24*time.Hour)
	authController := NewAuthController(authService)

	gin.SetMode(gin.TestMode)
	router := gin.New()

	return authController, router, authService
}

func TestAuthController_Register_Success(t *testing.T) {
	controller, router, _ := setupAuthControllerTest(t)

	router.POST("/auth/register", controller.Register)

	reqBody := RegisterRequest{
		Email:    "test@example.com",
		Password: "password123",
		Name:     "Test User",
		Phone:    "+91-9876543210",
	}

	jsonBody, _ := json.Marshal(reqBody)
	req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)

	assert.Equal(t, "Registration successful", response["message"])

	user := response["user"].(map[string]interface{})
	assert.Equal(t, "test@example.com", user["email"])
	assert.Equal(t, "user", user["role"])
	assert.NotContains(t, user, "password_hash")

	tokens := response["tokens"].(map[string]interface{})
	assert.NotEmpty(t, tokens["access_token"])
	assert.NotEmpty(t, tokens["refresh_token"])
}

func TestAuthController_Register_DuplicateEmail(t *testing.T) {
	controller, router, authService := setupAuthControllerTest(t)

	_, _, err := authService.Register("test@example.com", "password123", "Test User", "")
	require.NoError(t, err)

	router.POST("/auth/register", controller.Register)

	reqBody := RegisterRequest{
		Email:    "test@example.com",
		Password: "password456",
		Name:     "Other User",
	}

	jsonBody, _ := json.Marshal(reqBody)
	req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "Email already registered", response["error"])
}

func TestAuthController_Register_InvalidRequest(t *testing.T) {
	controller, router, _ := setupAuthControllerTest(t)

	router.POST("/auth/register", controller.Register)

	tests := []struct {
		name    string
		reqBody map[string]interface{}
	}{
		{
			name:    "Missing email",
			reqBody: map[string]interface{}{"password": "password123", "name": "Test"},
		},
		{
			name:    "Invalid email",
			reqBody: map[string]interface{}{"email": "not-an-email", "password": "password123", "name": "Test"},
		},
		{
			name:    "Short password",
			reqBody: map[string]interface{}{"email": "test@example.com", "password": "short", "name": "Test"},
		},
		{
			name:    "Missing name",
			reqBody: map[string]interface{}{"email": "test@example.com", "password": "password123"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jsonBody, _ := json.Marshal(tt.reqBody)
			req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewBuffer(jsonBody))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)

			var response map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
			assert.Equal(t, "Invalid request data", response["error"])
		})
	}
}

func TestAuthController_Login_Success(t *testing.T) {
	controller, router, authService := setupAuthControllerTest(t)

	_, _, err := authService.Register("test@example.com", "password123", "Test User", "")
	require.NoError(t, err)

	router.POST("/auth/login", controller.Login)

	reqBody := LoginRequest{
		Email:    "test@example.com",
		Password: "password123",
	}

	jsonBody, _ := json.Marshal(reqBody)
	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "Login successful", response["message"])

	tokens := response["tokens"].(map[string]interface{})
	assert.NotEmpty(t, tokens["access_token"])
}

func TestAuthController_Login_WrongPassword(t *testing.T) {
	controller, router, authService := setupAuthControllerTest(t)

	_, _, err := authService.Register("test@example.com", "password123", "Test User", "")
	require.NoError(t, err)

	router.POST("/auth/login", controller.Login)

	reqBody := LoginRequest{
		Email:    "test@example.com",
		Password: "wrongpassword",
	}

	jsonBody, _ := json.Marshal(reqBody)
	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "Invalid email or password", response["error"])
}

func TestAuthController_Login_UnknownEmail(t *testing.T) {
	controller, router, _ := setupAuthControllerTest(t)

	router.POST("/auth/login", controller.Login)

	reqBody := LoginRequest{
		Email:    "nobody@example.com",
		Password: "password123",
	}

	jsonBody, _ := json.Marshal(reqBody)
	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthController_Refresh_Success(t *testing.T) {
	controller, router, authService := setupAuthControllerTest(t)

	_, tokens, err := authService.Register("test@example.com", "password123", "Test User", "")
	require.NoError(t, err)

	router.POST("/auth/refresh", controller.Refresh)

	reqBody := RefreshRequest{RefreshToken: tokens.RefreshToken}

	jsonBody, _ := json.Marshal(reqBody)
	req := httptest.NewRequest(http.MethodPost, "/auth/refresh", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	refreshed := response["tokens"].(map[string]interface{})
	assert.NotEmpty(t, refreshed["access_token"])
	assert.NotEmpty(t, refreshed["refresh_token"])
}

func TestAuthController_Refresh_InvalidToken(t *testing.T) {
	controller, router, _ := setupAuthControllerTest(t)

	router.POST("/auth/refresh", controller.Refresh)

	reqBody := RefreshRequest{RefreshToken: "garbage"}

	jsonBody, _ := json.Marshal(reqBody)
	req := httptest.NewRequest(http.MethodPost, "/auth/refresh", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "Invalid or expired refresh token", response["error"])
}

func TestAuthController_Logout_Success(t *testing.T) {
	controller, router, authService := setupAuthControllerTest(t)

	_, tokens, err := authService.Register("test@example.com", "password123", "Test User", "")
	require.NoError(t, err)

	router.POST("/auth/logout", func(c *gin.Context) {
		c.Set("access_token", tokens.AccessToken)
		controller.Logout(c)
	})

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "Logout successful", response["message"])
}

func TestAuthController_Logout_Unauthorized(t *testing.T) {
	controller, router, _ := setupAuthControllerTest(t)

	router.POST("/auth/logout", controller.Logout)

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthController_Me_Success(t *testing.T) {
	controller, router, authService := setupAuthControllerTest(t)

	user, _, err := authService.Register("test@example.com", "password123", "Test User", "")
	require.NoError(t, err)

	router.GET("/auth/me", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.Me(c)
	})

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	profile := response["user"].(map[string]interface{})
	assert.Equal(t, "test@example.com", profile["email"])
}

func TestAuthController_Me_Unauthorized(t *testing.T) {
	controller, router, _ := setupAuthControllerTest(t)

	router.GET("/auth/me", controller.Me)

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthController_UpdateMe_Success(t *testing.T) {
	controller, router, authService := setupAuthControllerTest(t)

	user, _, err := authService.Register("test@example.com", "password123", "Test User", "")
	require.NoError(t, err)

	router.PUT("/auth/me", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.UpdateMe(c)
	})

	reqBody := UpdateProfileRequest{
		Name:  "Renamed User",
		Phone: "+91-9000000000",
	}

	jsonBody, _ := json.Marshal(reqBody)
	req := httptest.NewRequest(http.MethodPut, "/auth/me", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "Profile updated successfully", response["message"])

	profile := response["user"].(map[string]interface{})
	assert.Equal(t, "Renamed User", profile["name"])
}
