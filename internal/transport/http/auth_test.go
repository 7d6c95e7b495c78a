package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Subby575/irctc/internal/app"
	"github.com/Subby575/irctc/internal/domain"
)

type stubAuthService struct {
	user   domain.User
	result app.LoginResult
	err    error
}

func (s *stubAuthService) Register(_ context.Context, in app.RegisterInput) (domain.User, error) {
	if s.err != nil {
		return domain.User{}, s.err
	}
	return s.user, nil
}

func (s *stubAuthService) Login(_ context.Context, in app.LoginInput) (app.LoginResult, error) {
	if s.err != nil {
		return app.LoginResult{}, s.err
	}
	return s.result, nil
}

func TestHandleSignup(t *testing.T) {
	t.Parallel()

	t.Run("creates account", func(t *testing.T) {
		svc := &stubAuthService{user: domain.User{ID: "user-1", Username: "asha"}}

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/signup", strings.NewReader(`{"username": "asha", "password": "secret"}`))
		HandleSignup(svc)(w, r)

		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d (body %q)", w.Code, w.Body.String())
		}

		var resp signupResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if resp.UserID != "user-1" || resp.Username != "asha" {
			t.Fatalf("unexpected response: %+v", resp)
		}
		if strings.Contains(w.Body.String(), "secret") {
			t.Fatalf("response leaks the password: %q", w.Body.String())
		}
	})

	t.Run("errors", func(t *testing.T) {
		tests := []struct {
			name       string
			body       string
			svcErr     error
			wantStatus int
			wantCode   string
		}{
			{"invalid body", `not json`, nil, http.StatusBadRequest, codeInvalidRequestBody},
			{"missing username", `{"password": "secret"}`, domain.ErrUsernameRequired, http.StatusBadRequest, codeUsernameRequired},
			{"missing password", `{"username": "asha"}`, domain.ErrPasswordRequired, http.StatusBadRequest, codePasswordRequired},
			{"duplicate username", `{"username": "asha", "password": "secret"}`, domain.ErrUsernameTaken, http.StatusConflict, codeUsernameTaken},
		}

		for _, tt := range tests {
			tt := tt
			t.Run(tt.name, func(t *testing.T) {
				w := httptest.NewRecorder()
				r := httptest.NewRequest(http.MethodPost, "/signup", strings.NewReader(tt.body))
				HandleSignup(&stubAuthService{err: tt.svcErr})(w, r)

				if w.Code != tt.wantStatus {
					t.Fatalf("expected %d, got %d", tt.wantStatus, w.Code)
				}
				if resp := decodeErrorResponse(t, w); resp.Code != tt.wantCode {
					t.Fatalf("expected code %q, got %q", tt.wantCode, resp.Code)
				}
			})
		}
	})
}

func TestHandleLogin(t *testing.T) {
	t.Parallel()

	t.Run("returns token and role", func(t *testing.T) {
		svc := &stubAuthService{result: app.LoginResult{
			Token: "signed-token",
			User:  domain.User{ID: "user-1", Role: domain.RoleAdmin},
		}}

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"username": "asha", "password": "secret"}`))
		HandleLogin(svc)(w, r)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d (body %q)", w.Code, w.Body.String())
		}

		var resp loginResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if resp.Token != "signed-token" || resp.Role != "admin" {
			t.Fatalf("unexpected response: %+v", resp)
		}
	})

	t.Run("invalid credentials", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"username": "asha", "password": "nope"}`))
		HandleLogin(&stubAuthService{err: domain.ErrInvalidCredentials})(w, r)

		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
		if resp := decodeErrorResponse(t, w); resp.Code != codeInvalidCredentials {
			t.Fatalf("expected code %q, got %q", codeInvalidCredentials, resp.Code)
		}
	})

	t.Run("invalid body", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{`))
		HandleLogin(&stubAuthService{})(w, r)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})
}
