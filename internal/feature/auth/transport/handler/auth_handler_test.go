package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"rental_backend/internal/feature/auth/usecase"
	userentity "rental_backend/internal/feature/users/domain/entity"
	"rental_backend/internal/shared/apperr"
)

// mockAuthUsecase is a mock implementation of the AuthUsecase interface.
type mockAuthUsecase struct {
	RegisterFunc func(ctx context.Context, in usecase.RegisterInput) (*userentity.User, error)
	LoginFunc    func(ctx context.Context, email, password, userAgent, ipAddress string) (*usecase.TokenPair, error)
	RefreshFunc  func(ctx context.Context, refreshToken, userAgent, ipAddress string) (*usecase.TokenPair, error)
	LogoutFunc   func(ctx context.Context, refreshToken string) error
}

func (m *mockAuthUsecase) Register(ctx context.Context, in usecase.RegisterInput) (*userentity.User, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, in)
	}
	return nil, errors.New("register failed")
}

func (m *mockAuthUsecase) Login(ctx context.Context, email, password, userAgent, ipAddress string) (*usecase.TokenPair, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, password, userAgent, ipAddress)
	}
	return nil, errors.New("login failed")
}

func (m *mockAuthUsecase) Refresh(ctx context.Context, refreshToken, userAgent, ipAddress string) (*usecase.TokenPair, error) {
	if m.RefreshFunc != nil {
		return m.RefreshFunc(ctx, refreshToken, userAgent, ipAddress)
	}
	return nil, errors.New("refresh failed")
}

func (m *mockAuthUsecase) Logout(ctx context.Context, refreshToken string) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx, refreshToken)
	}
	return nil
}

func TestAuthHandler_Register(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		requestBody    gin.H
		mockFunc       func(ctx context.Context, in usecase.RegisterInput) (*userentity.User, error)
		expectedStatus int
		expectedBody   gin.H
	}{
		{
			name: "success: user registration",
			requestBody: gin.H{
				"first_name": "Taro", "last_name": "Yamada",
				"email": "taro@example.com", "password": "password123",
			},
			mockFunc: func(ctx context.Context, in usecase.RegisterInput) (*userentity.User, error) {
				u, _ := userentity.NewUser(in.FirstName, in.LastName, in.Email, false)
				u.ID = "user-1"
				return u, nil
			},
			expectedStatus: http.StatusCreated,
			expectedBody: gin.H{
				"id": "user-1", "first_name": "Taro", "last_name": "Yamada",
				"email": "taro@example.com",
			},
		},
		{
			name: "failure: invalid email address",
			requestBody: gin.H{
				"first_name": "Taro", "last_name": "Yamada",
				"email": "not-an-email", "password": "password123",
			},
			mockFunc:       nil, // usecase is not called
			expectedStatus: http.StatusBadRequest,
			expectedBody:   gin.H{"error": "invalid request"},
		},
		{
			name: "failure: short password",
			requestBody: gin.H{
				"first_name": "Taro", "last_name": "Yamada",
				"email": "taro@example.com", "password": "short",
			},
			mockFunc:       nil, // usecase is not called
			expectedStatus: http.StatusBadRequest,
			expectedBody:   gin.H{"error": "invalid request"},
		},
		{
			name: "failure: duplicate email",
			requestBody: gin.H{
				"first_name": "Taro", "last_name": "Yamada",
				"email": "taken@example.com", "password": "password123",
			},
			mockFunc: func(ctx context.Context, in usecase.RegisterInput) (*userentity.User, error) {
				return nil, apperr.Duplicate("email already registered")
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   gin.H{"error": "email already registered"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUC := &mockAuthUsecase{RegisterFunc: tt.mockFunc}
			handler := NewAuthHandler(mockUC)

			router := gin.New()
			router.POST("/auth/register", handler.Register)

			body, _ := json.Marshal(tt.requestBody)
			req, _ := http.NewRequest(http.MethodPost, "/auth/register", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var responseBody gin.H
			err := json.Unmarshal(w.Body.Bytes(), &responseBody)
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedBody, responseBody)
		})
	}
}

func TestAuthHandler_Login(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		requestBody    gin.H
		mockFunc       func(ctx context.Context, email, password, userAgent, ipAddress string) (*usecase.TokenPair, error)
		expectedStatus int
		expectedBody   gin.H
	}{
		{
			name:        "success: user login",
			requestBody: gin.H{"email": "taro@example.com", "password": "password123"},
			mockFunc: func(ctx context.Context, email, password, userAgent, ipAddress string) (*usecase.TokenPair, error) {
				return &usecase.TokenPair{AccessToken: "access-token", RefreshToken: "refresh-token", ExpiresIn: 900}, nil
			},
			expectedStatus: http.StatusOK,
			expectedBody: gin.H{
				"access_token": "access-token", "refresh_token": "refresh-token",
				"expires_in": float64(900),
			},
		},
		{
			name:           "failure: invalid email address",
			requestBody:    gin.H{"email": "not-an-email", "password": "password123"},
			mockFunc:       nil, // usecase is not called
			expectedStatus: http.StatusBadRequest,
			expectedBody:   gin.H{"error": "invalid request"},
		},
		{
			name:           "failure: missing password",
			requestBody:    gin.H{"email": "taro@example.com"},
			mockFunc:       nil, // usecase is not called
			expectedStatus: http.StatusBadRequest,
			expectedBody:   gin.H{"error": "invalid request"},
		},
		{
			name:        "failure: invalid credentials",
			requestBody: gin.H{"email": "taro@example.com", "password": "wrong-password"},
			mockFunc: func(ctx context.Context, email, password, userAgent, ipAddress string) (*usecase.TokenPair, error) {
				return nil, apperr.Unauthenticated("invalid email or password")
			},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   gin.H{"error": "invalid email or password"},
		},
		{
			name:        "failure: JWT secret not set (usecase error)",
			requestBody: gin.H{"email": "taro@example.com", "password": "password123"},
			mockFunc: func(ctx context.Context, email, password, userAgent, ipAddress string) (*usecase.TokenPair, error) {
				return nil, errors.New("server misconfigured: JWT_SECRET missing")
			},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   gin.H{"error": "invalid email or password"}, // usecase error message is hidden
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUC := &mockAuthUsecase{LoginFunc: tt.mockFunc}
			handler := NewAuthHandler(mockUC)

			router := gin.New()
			router.POST("/auth/login", handler.Login)

			body, _ := json.Marshal(tt.requestBody)
			req, _ := http.NewRequest(http.MethodPost, "/auth/login", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var responseBody gin.H
			err := json.Unmarshal(w.Body.Bytes(), &responseBody)
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedBody, responseBody)
		})
	}
}

func TestAuthHandler_Refresh(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		requestBody    gin.H
		mockFunc       func(ctx context.Context, refreshToken, userAgent, ipAddress string) (*usecase.TokenPair, error)
		expectedStatus int
		expectedBody   gin.H
	}{
		{
			name:        "success: token rotation",
			requestBody: gin.H{"refresh_token": "old-refresh-token"},
			mockFunc: func(ctx context.Context, refreshToken, userAgent, ipAddress string) (*usecase.TokenPair, error) {
				return &usecase.TokenPair{AccessToken: "new-access", RefreshToken: "new-refresh", ExpiresIn: 900}, nil
			},
			expectedStatus: http.StatusOK,
			expectedBody: gin.H{
				"access_token": "new-access", "refresh_token": "new-refresh",
				"expires_in": float64(900),
			},
		},
		{
			name:           "failure: missing refresh token",
			requestBody:    gin.H{},
			mockFunc:       nil, // usecase is not called
			expectedStatus: http.StatusBadRequest,
			expectedBody:   gin.H{"error": "invalid request"},
		},
		{
			name:        "failure: revoked refresh token",
			requestBody: gin.H{"refresh_token": "revoked-token"},
			mockFunc: func(ctx context.Context, refreshToken, userAgent, ipAddress string) (*usecase.TokenPair, error) {
				return nil, apperr.Unauthenticated("session revoked")
			},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   gin.H{"error": "invalid refresh token"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUC := &mockAuthUsecase{RefreshFunc: tt.mockFunc}
			handler := NewAuthHandler(mockUC)

			router := gin.New()
			router.POST("/auth/refresh", handler.Refresh)

			body, _ := json.Marshal(tt.requestBody)
			req, _ := http.NewRequest(http.MethodPost, "/auth/refresh", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var responseBody gin.H
			err := json.Unmarshal(w.Body.Bytes(), &responseBody)
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedBody, responseBody)
		})
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		requestBody    gin.H
		mockFunc       func(ctx context.Context, refreshToken string) error
		expectedStatus int
		expectedBody   gin.H
	}{
		{
			name:           "success: session revoked",
			requestBody:    gin.H{"refresh_token": "some-token"},
			mockFunc:       func(ctx context.Context, refreshToken string) error { return nil },
			expectedStatus: http.StatusOK,
			expectedBody:   gin.H{"message": "logged out"},
		},
		{
			name:           "success: unknown token is treated as already logged out",
			requestBody:    gin.H{"refresh_token": "unknown-token"},
			mockFunc:       func(ctx context.Context, refreshToken string) error { return nil },
			expectedStatus: http.StatusOK,
			expectedBody:   gin.H{"message": "logged out"},
		},
		{
			name:           "failure: missing refresh token",
			requestBody:    gin.H{},
			mockFunc:       nil,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   gin.H{"error": "invalid request"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUC := &mockAuthUsecase{LogoutFunc: tt.mockFunc}
			handler := NewAuthHandler(mockUC)

			router := gin.New()
			router.POST("/auth/logout", handler.Logout)

			body, _ := json.Marshal(tt.requestBody)
			req, _ := http.NewRequest(http.MethodPost, "/auth/logout", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var responseBody gin.H
			err := json.Unmarshal(w.Body.Bytes(), &responseBody)
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedBody, responseBody)
		})
	}
}
