package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/Subby575/irctc/internal/app"
	"github.com/Subby575/irctc/internal/domain"
)

// UserRegistrar is the minimal interface needed for signup.
type UserRegistrar interface {
	Register(ctx context.Context, in app.RegisterInput) (domain.User, error)
}

// UserAuthenticator is the minimal interface needed for login.
type UserAuthenticator interface {
	Login(ctx context.Context, in app.LoginInput) (app.LoginResult, error)
}

// HandleSignup returns an HTTP handler for creating accounts.
func HandleSignup(svc UserRegistrar) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req credentialsRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}

		user, err := svc.Register(r.Context(), app.RegisterInput{
			Username: req.Username,
			Password: req.Password,
		})
		if err != nil {
			switch err {
			case domain.ErrUsernameRequired:
				writeError(w, http.StatusBadRequest, codeUsernameRequired, err.Error())
			case domain.ErrPasswordRequired:
				writeError(w, http.StatusBadRequest, codePasswordRequired, err.Error())
			case domain.ErrUsernameTaken:
				writeError(w, http.StatusConflict, codeUsernameTaken, err.Error())
			default:
				writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			}
			return
		}

		writeJSON(w, http.StatusCreated, signupResponse{
			UserID:   user.ID,
			Username: user.Username,
		})
	}
}

// HandleLogin returns an HTTP handler that issues bearer tokens.
func HandleLogin(svc UserAuthenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req credentialsRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}

		res, err := svc.Login(r.Context(), app.LoginInput{
			Username: req.Username,
			Password: req.Password,
		})
		if err != nil {
			switch err {
			case domain.ErrInvalidCredentials:
				writeError(w, http.StatusUnauthorized, codeInvalidCredentials, err.Error())
			default:
				writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			}
			return
		}

		writeJSON(w, http.StatusOK, loginResponse{
			Token: res.Token,
			Role:  string(res.User.Role),
		})
	}
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type signupResponse struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}

type loginResponse struct {
	Token string `json:"token"`
	Role  string `json:"role"`
}
