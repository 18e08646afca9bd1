package handler_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"auction_backend/internal/feature/auth/domain"
	"auction_backend/internal/feature/auth/domain/entity"
	"auction_backend/internal/feature/auth/transport/handler"
	"auction_backend/internal/feature/auth/usecase"
	jwtmw "auction_backend/internal/platform/jwt"
)

// mockAuthUsecase is a mock implementation of the handler.AuthUsecase interface.
type mockAuthUsecase struct {
	SignupFunc         func(ctx context.Context, in usecase.SignupInput) (*entity.User, error)
	LoginFunc          func(ctx context.Context, username, password string, client usecase.ClientInfo) (*usecase.TokenPair, error)
	RefreshFunc        func(ctx context.Context, token string, client usecase.ClientInfo) (*usecase.TokenPair, error)
	LogoutFunc         func(ctx context.Context, token string) error
	ChangeEmailFunc    func(ctx context.Context, userID uint, email, password, confirmation string) error
	ChangePasswordFunc func(ctx context.Context, userID uint, oldPassword, newPassword, confirmation string) error
}

func (m *mockAuthUsecase) Signup(ctx context.Context, in usecase.SignupInput) (*entity.User, error) {
	return m.SignupFunc(ctx, in)
}

func (m *mockAuthUsecase) Login(ctx context.Context, username, password string, client usecase.ClientInfo) (*usecase.TokenPair, error) {
	return m.LoginFunc(ctx, username, password, client)
}

func (m *mockAuthUsecase) Refresh(ctx context.Context, token string, client usecase.ClientInfo) (*usecase.TokenPair, error) {
	return m.RefreshFunc(ctx, token, client)
}

func (m *mockAuthUsecase) Logout(ctx context.Context, token string) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx, token)
	}
	return nil
}

func (m *mockAuthUsecase) ChangeEmail(ctx context.Context, userID uint, email, password, confirmation string) error {
	return m.ChangeEmailFunc(ctx, userID, email, password, confirmation)
}

func (m *mockAuthUsecase) ChangePassword(ctx context.Context, userID uint, oldPassword, newPassword, confirmation string) error {
	return m.ChangePasswordFunc(ctx, userID, oldPassword, newPassword, confirmation)
}

func newRouter(h *handler.AuthHandler, userID uint) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if userID != 0 {
			c.Set(jwtmw.ContextUserID, userID)
		}
	})
	r.POST("/signup", h.Signup)
	r.POST("/login", h.Login)
	r.POST("/refresh", h.Refresh)
	r.POST("/logout", h.Logout)
	r.PUT("/profile/email", h.ChangeEmail)
	r.PUT("/profile/password", h.ChangePassword)
	return r
}

func do(r *gin.Engine, method, url, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, url, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "handler-test")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthHandler_Signup(t *testing.T) {
	const validBody = `{"username":"ada","email":"ada@example.com","first_name":"Ada","last_name":"Lovelace","password":"password123","confirmation":"password123"}`

	tests := []struct {
		name           string
		body           string
		mockSignupFunc func(ctx context.Context, in usecase.SignupInput) (*entity.User, error)
		wantStatus     int
		wantBody       string
	}{
		{
			name: "success: user registration",
			body: validBody,
			mockSignupFunc: func(ctx context.Context, in usecase.SignupInput) (*entity.User, error) {
				return &entity.User{ID: 3, Username: in.Username, Email: in.Email, FirstName: in.FirstName, LastName: in.LastName}, nil
			},
			wantStatus: http.StatusCreated,
			wantBody:   `{"id":3,"username":"ada","email":"ada@example.com","first_name":"Ada","last_name":"Lovelace"}`,
		},
		{
			name:       "failure: invalid email address",
			body:       `{"username":"ada","email":"nope","password":"password123","confirmation":"password123"}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"invalid request"}`,
		},
		{
			name:       "failure: missing username",
			body:       `{"email":"ada@example.com","password":"password123","confirmation":"password123"}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"invalid request"}`,
		},
		{
			name: "failure: weak password",
			body: validBody,
			mockSignupFunc: func(ctx context.Context, in usecase.SignupInput) (*entity.User, error) {
				return nil, domain.ErrWeakPassword
			},
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"invalid input: password must be at least 8 characters long"}`,
		},
		{
			name: "failure: duplicate username",
			body: validBody,
			mockSignupFunc: func(ctx context.Context, in usecase.SignupInput) (*entity.User, error) {
				return nil, domain.ErrUsernameTaken
			},
			wantStatus: http.StatusConflict,
			wantBody:   `{"error":"conflict: username already taken"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRouter(handler.NewAuthHandler(&mockAuthUsecase{SignupFunc: tt.mockSignupFunc}), 0)

			w := do(r, http.MethodPost, "/signup", tt.body)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
		})
	}
}

func TestAuthHandler_Login(t *testing.T) {
	var gotClient usecase.ClientInfo
	uc := &mockAuthUsecase{
		LoginFunc: func(ctx context.Context, username, password string, client usecase.ClientInfo) (*usecase.TokenPair, error) {
			gotClient = client
			if username != "ada" || password != "password123" {
				return nil, domain.ErrInvalidCredentials
			}
			return &usecase.TokenPair{AccessToken: "jwt", RefreshToken: "r1", ExpiresIn: 15 * time.Minute}, nil
		},
	}
	r := newRouter(handler.NewAuthHandler(uc), 0)

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantBody   string
	}{
		{"success", `{"username":"ada","password":"password123"}`, http.StatusOK,
			`{"access_token":"jwt","refresh_token":"r1","token_type":"Bearer","expires_in":900}`},
		{"wrong password", `{"username":"ada","password":"nope"}`, http.StatusUnauthorized,
			`{"error":"unauthorized: invalid username or password"}`},
		{"unknown user", `{"username":"bob","password":"password123"}`, http.StatusUnauthorized,
			`{"error":"unauthorized: invalid username or password"}`},
		{"missing password", `{"username":"ada"}`, http.StatusBadRequest, `{"error":"invalid request"}`},
		{"malformed json", `{`, http.StatusBadRequest, `{"error":"invalid request"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(r, http.MethodPost, "/login", tt.body)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
		})
	}
	assert.Equal(t, "handler-test", gotClient.UserAgent)
}

func TestAuthHandler_RefreshAndLogout(t *testing.T) {
	var loggedOut string
	uc := &mockAuthUsecase{
		RefreshFunc: func(ctx context.Context, token string, client usecase.ClientInfo) (*usecase.TokenPair, error) {
			if token != "r1" {
				return nil, domain.ErrInvalidRefreshToken
			}
			return &usecase.TokenPair{AccessToken: "jwt2", RefreshToken: "r2", ExpiresIn: time.Minute}, nil
		},
		LogoutFunc: func(ctx context.Context, token string) error {
			loggedOut = token
			return nil
		},
	}
	r := newRouter(handler.NewAuthHandler(uc), 0)

	w := do(r, http.MethodPost, "/refresh", `{"refresh_token":"r1"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"access_token":"jwt2","refresh_token":"r2","token_type":"Bearer","expires_in":60}`, w.Body.String())

	w = do(r, http.MethodPost, "/refresh", `{"refresh_token":"stale"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(r, http.MethodPost, "/refresh", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodPost, "/logout", `{"refresh_token":"r2"}`)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "r2", loggedOut)
}

func TestAuthHandler_ChangeCredentials(t *testing.T) {
	uc := &mockAuthUsecase{
		ChangeEmailFunc: func(ctx context.Context, userID uint, email, password, confirmation string) error {
			if password != confirmation {
				return domain.ErrPasswordMismatch
			}
			return nil
		},
		ChangePasswordFunc: func(ctx context.Context, userID uint, oldPassword, newPassword, confirmation string) error {
			if oldPassword != "password123" {
				return domain.ErrInvalidCredentials
			}
			if userID != 4 {
				return errors.New("unexpected user")
			}
			return nil
		},
	}

	t.Run("requires authentication", func(t *testing.T) {
		r := newRouter(handler.NewAuthHandler(uc), 0)
		w := do(r, http.MethodPut, "/profile/email", `{"email":"a@b.co","password":"x","confirmation":"x"}`)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	r := newRouter(handler.NewAuthHandler(uc), 4)

	tests := []struct {
		name       string
		url        string
		body       string
		wantStatus int
	}{
		{"email changed", "/profile/email", `{"email":"a@b.co","password":"pw","confirmation":"pw"}`, http.StatusNoContent},
		{"email confirmation mismatch", "/profile/email", `{"email":"a@b.co","password":"pw","confirmation":"wp"}`, http.StatusBadRequest},
		{"email invalid", "/profile/email", `{"email":"nope","password":"pw","confirmation":"pw"}`, http.StatusBadRequest},
		{"password changed", "/profile/password", `{"old_password":"password123","new_password":"newpassword1","confirmation":"newpassword1"}`, http.StatusNoContent},
		{"wrong old password", "/profile/password", `{"old_password":"nope","new_password":"newpassword1","confirmation":"newpassword1"}`, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(r, http.MethodPut, tt.url, tt.body)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}
