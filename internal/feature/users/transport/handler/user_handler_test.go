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

	"rental_backend/internal/feature/users/domain/entity"
	"rental_backend/internal/feature/users/usecase"
	jwtmw "rental_backend/internal/platform/jwt"
	"rental_backend/internal/shared/apperr"
	"rental_backend/internal/shared/authz"
)

// mockUserUsecase is a mock implementation of the UserUsecase interface.
type mockUserUsecase struct {
	CreateFunc func(ctx context.Context, principal *authz.Principal, in usecase.CreateInput) (*entity.User, error)
	GetFunc    func(ctx context.Context, id string) (*entity.User, error)
	ListFunc   func(ctx context.Context) ([]*entity.User, error)
	UpdateFunc func(ctx context.Context, principal *authz.Principal, id string, in usecase.UpdateInput) (*entity.User, error)
}

func (m *mockUserUsecase) Create(ctx context.Context, principal *authz.Principal, in usecase.CreateInput) (*entity.User, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, principal, in)
	}
	return nil, errors.New("create failed")
}

func (m *mockUserUsecase) Get(ctx context.Context, id string) (*entity.User, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return nil, apperr.NotFound("user not found")
}

func (m *mockUserUsecase) List(ctx context.Context) ([]*entity.User, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, errors.New("list failed")
}

func (m *mockUserUsecase) Update(ctx context.Context, principal *authz.Principal, id string, in usecase.UpdateInput) (*entity.User, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, principal, id, in)
	}
	return nil, errors.New("update failed")
}

// asPrincipal injects an authenticated principal the way AuthRequired does.
func asPrincipal(userID string, isAdmin bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(jwtmw.ContextUserID, userID)
		c.Set(jwtmw.ContextIsAdmin, isAdmin)
		c.Next()
	}
}

func newTestUser(id, email string, isAdmin bool) *entity.User {
	u, _ := entity.NewUser("Taro", "Yamada", email, isAdmin)
	u.ID = id
	return u
}

func TestUserHandler_Create(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		requestBody    gin.H
		principal      gin.HandlerFunc
		mockFunc       func(ctx context.Context, principal *authz.Principal, in usecase.CreateInput) (*entity.User, error)
		expectedStatus int
		expectedError  string
	}{
		{
			name: "success: admin creates a user",
			requestBody: gin.H{
				"first_name": "Taro", "last_name": "Yamada",
				"email": "taro@example.com", "password": "password123",
			},
			principal: asPrincipal("admin-1", true),
			mockFunc: func(ctx context.Context, principal *authz.Principal, in usecase.CreateInput) (*entity.User, error) {
				assert.NotNil(t, principal)
				assert.True(t, principal.IsAdmin)
				return newTestUser("user-1", in.Email, in.IsAdmin), nil
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "failure: non-admin is denied",
			requestBody: gin.H{
				"first_name": "Taro", "last_name": "Yamada",
				"email": "taro@example.com", "password": "password123",
			},
			principal: asPrincipal("user-2", false),
			mockFunc: func(ctx context.Context, principal *authz.Principal, in usecase.CreateInput) (*entity.User, error) {
				return nil, apperr.Denied("admin privileges required")
			},
			expectedStatus: http.StatusForbidden,
			expectedError:  "admin privileges required",
		},
		{
			name: "failure: duplicate email",
			requestBody: gin.H{
				"first_name": "Taro", "last_name": "Yamada",
				"email": "taken@example.com", "password": "password123",
			},
			principal: asPrincipal("admin-1", true),
			mockFunc: func(ctx context.Context, principal *authz.Principal, in usecase.CreateInput) (*entity.User, error) {
				return nil, apperr.Duplicate("email already registered")
			},
			expectedStatus: http.StatusConflict,
			expectedError:  "email already registered",
		},
		{
			name:           "failure: missing required fields",
			requestBody:    gin.H{"first_name": "Taro"},
			principal:      asPrincipal("admin-1", true),
			mockFunc:       nil, // usecase is not called
			expectedStatus: http.StatusBadRequest,
			expectedError:  "invalid request",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUC := &mockUserUsecase{CreateFunc: tt.mockFunc}
			handler := NewUserHandler(mockUC)

			router := gin.New()
			router.POST("/users", tt.principal, handler.Create)

			body, _ := json.Marshal(tt.requestBody)
			req, _ := http.NewRequest(http.MethodPost, "/users", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedError != "" {
				var responseBody gin.H
				assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &responseBody))
				assert.Equal(t, tt.expectedError, responseBody["error"])
			}
		})
	}
}

func TestUserHandler_Get(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success: returns user without password", func(t *testing.T) {
		mockUC := &mockUserUsecase{
			GetFunc: func(ctx context.Context, id string) (*entity.User, error) {
				assert.Equal(t, "user-1", id)
				return newTestUser("user-1", "taro@example.com", false), nil
			},
		}
		handler := NewUserHandler(mockUC)

		router := gin.New()
		router.GET("/users/:id", handler.Get)

		req, _ := http.NewRequest(http.MethodGet, "/users/user-1", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var responseBody gin.H
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &responseBody))
		assert.Equal(t, "user-1", responseBody["id"])
		assert.Equal(t, "taro@example.com", responseBody["email"])
		assert.NotContains(t, responseBody, "password")
	})

	t.Run("failure: unknown user returns 404", func(t *testing.T) {
		mockUC := &mockUserUsecase{
			GetFunc: func(ctx context.Context, id string) (*entity.User, error) {
				return nil, apperr.NotFound("user not found")
			},
		}
		handler := NewUserHandler(mockUC)

		router := gin.New()
		router.GET("/users/:id", handler.Get)

		req, _ := http.NewRequest(http.MethodGet, "/users/nope", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestUserHandler_List(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success: returns all users", func(t *testing.T) {
		mockUC := &mockUserUsecase{
			ListFunc: func(ctx context.Context) ([]*entity.User, error) {
				return []*entity.User{
					newTestUser("user-1", "a@example.com", false),
					newTestUser("user-2", "b@example.com", true),
				}, nil
			},
		}
		handler := NewUserHandler(mockUC)

		router := gin.New()
		router.GET("/users", handler.List)

		req, _ := http.NewRequest(http.MethodGet, "/users", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var responseBody []gin.H
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &responseBody))
		assert.Len(t, responseBody, 2)
	})

	t.Run("success: empty list is an empty array", func(t *testing.T) {
		mockUC := &mockUserUsecase{
			ListFunc: func(ctx context.Context) ([]*entity.User, error) {
				return nil, nil
			},
		}
		handler := NewUserHandler(mockUC)

		router := gin.New()
		router.GET("/users", handler.List)

		req, _ := http.NewRequest(http.MethodGet, "/users", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "[]", w.Body.String())
	})
}

func TestUserHandler_Update(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		requestBody    gin.H
		principal      gin.HandlerFunc
		mockFunc       func(ctx context.Context, principal *authz.Principal, id string, in usecase.UpdateInput) (*entity.User, error)
		expectedStatus int
		expectedError  string
	}{
		{
			name:        "success: self update",
			requestBody: gin.H{"first_name": "Jiro"},
			principal:   asPrincipal("user-1", false),
			mockFunc: func(ctx context.Context, principal *authz.Principal, id string, in usecase.UpdateInput) (*entity.User, error) {
				assert.Equal(t, "user-1", id)
				assert.NotNil(t, in.FirstName)
				assert.Equal(t, "Jiro", *in.FirstName)
				assert.Nil(t, in.Email)
				return newTestUser("user-1", "taro@example.com", false), nil
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:        "failure: updating someone else is denied",
			requestBody: gin.H{"first_name": "Jiro"},
			principal:   asPrincipal("user-2", false),
			mockFunc: func(ctx context.Context, principal *authz.Principal, id string, in usecase.UpdateInput) (*entity.User, error) {
				return nil, apperr.Denied("not allowed to modify this user")
			},
			expectedStatus: http.StatusForbidden,
			expectedError:  "not allowed to modify this user",
		},
		{
			name:        "failure: unknown user returns 404",
			requestBody: gin.H{"first_name": "Jiro"},
			principal:   asPrincipal("admin-1", true),
			mockFunc: func(ctx context.Context, principal *authz.Principal, id string, in usecase.UpdateInput) (*entity.User, error) {
				return nil, apperr.NotFound("user not found")
			},
			expectedStatus: http.StatusNotFound,
			expectedError:  "user not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUC := &mockUserUsecase{UpdateFunc: tt.mockFunc}
			handler := NewUserHandler(mockUC)

			router := gin.New()
			router.PUT("/users/:id", tt.principal, handler.Update)

			body, _ := json.Marshal(tt.requestBody)
			req, _ := http.NewRequest(http.MethodPut, "/users/user-1", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedError != "" {
				var responseBody gin.H
				assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &responseBody))
				assert.Equal(t, tt.expectedError, responseBody["error"])
			}
		})
	}
}
