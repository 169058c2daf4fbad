package handlers

//go:generate mockgen -source=login.go -destination=login_mock.go -package=handlers

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/gw-auth-service/internal/logger"
	"github.com/sbilibin2017/gw-auth-service/internal/middlewares"
	"github.com/sbilibin2017/gw-auth-service/internal/models"
)

// Loginer defines the interface that the login service must implement.
type Loginer interface {
	Login(ctx context.Context, user *models.UserDB) (*models.TokenDB, error)
}

// NewLoginHandler returns an HTTP handler that issues a bearer token to a user
// already authenticated with Basic credentials.
// @Summary User login
// @Description Authenticate with HTTP Basic credentials and receive a new bearer token
// @Tags auth
// @Produce json
// @Success 200 {object} models.TokenDB "Bearer token"
// @Failure 401 {object} models.ErrorResponse "Invalid username or password"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /auth/users/login [post]
// @Security BasicAuth
func NewLoginHandler(svc Loginer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := middlewares.UserFromContext(r.Context())
		if user == nil {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		token, err := svc.Login(r.Context(), user)
		if err != nil {
			logger.Log.Errorw("internal server error", "request_id", middlewares.RequestIDFromContext(r.Context()), "err", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		writeJSON(w, http.StatusOK, token)
	}
}

// NewLoginTokenHandler returns an HTTP handler confirming that the bearer token is valid.
// @Summary Validate token
// @Description Returns 200 when the bearer token is valid
// @Tags auth
// @Success 200 "Token is valid"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Router /auth/users/login/token [post]
// @Security BearerAuth
func NewLoginTokenHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}
}
