package handlers

//go:generate mockgen -source=users.go -destination=users_mock.go -package=handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/sbilibin2017/gw-auth-service/internal/logger"
	"github.com/sbilibin2017/gw-auth-service/internal/middlewares"
	"github.com/sbilibin2017/gw-auth-service/internal/models"
	"github.com/sbilibin2017/gw-auth-service/internal/services"
)

// UserLister lists all users.
type UserLister interface {
	ListUsers(ctx context.Context) ([]models.UserPublic, error)
}

// AdminPromoter checks admin rights and promotes users.
type AdminPromoter interface {
	RequireAdmin(user *models.UserDB) error
	PromoteToAdmin(ctx context.Context, requester *models.UserDB, targetUsername string) error
}

// NewListUsersHandler returns an HTTP handler listing all users.
// @Summary List users
// @Tags users
// @Produce json
// @Success 200 {array} models.UserPublic "Users"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /auth/users [get]
// @Security BearerAuth
func NewListUsersHandler(svc UserLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := svc.ListUsers(r.Context())
		if err != nil {
			logger.Log.Errorw("failed to list users", "request_id", middlewares.RequestIDFromContext(r.Context()), "err", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		writeJSON(w, http.StatusOK, users)
	}
}

// NewDetailsHandler returns an HTTP handler with the caller's public details.
// @Summary Current user details
// @Tags users
// @Produce json
// @Success 200 {object} models.UserPublic "Current user"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Router /auth/users/details [get]
// @Security BearerAuth
func NewDetailsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := middlewares.UserFromContext(r.Context())
		if user == nil {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		writeJSON(w, http.StatusOK, user.Public())
	}
}

// NewProfilePicHandler returns an HTTP handler writing the caller's profile
// picture reference as plain text, or an empty body when there is none.
// @Summary Current user profile picture
// @Tags users
// @Produce plain
// @Success 200 {string} string "Profile picture URL or empty"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Router /auth/users/profilePic [get]
// @Security BearerAuth
func NewProfilePicHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := middlewares.UserFromContext(r.Context())
		if user == nil {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		var pic string
		if user.ProfilePic != nil {
			pic = *user.ProfilePic
		}

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(pic))
	}
}

// NewMakeAdminHandler returns an HTTP handler promoting the user named in the
// "name" query parameter to administrator. Only administrators may call it.
// @Summary Promote user to admin
// @Tags users
// @Produce json
// @Param name query string true "Username to promote"
// @Success 200 "User promoted"
// @Failure 400 {object} models.ErrorResponse "Missing name"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Failure 403 {object} models.ErrorResponse "Forbidden"
// @Failure 404 {object} models.ErrorResponse "User not found"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /auth/users/makeAdmin [post]
// @Security BearerAuth
func NewMakeAdminHandler(svc AdminPromoter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := middlewares.UserFromContext(r.Context())
		if user == nil {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		// Non-admins are refused before the query is looked at.
		if err := svc.RequireAdmin(user); err != nil {
			writeError(w, http.StatusForbidden, "Forbidden")
			return
		}

		name := r.URL.Query().Get("name")
		if name == "" {
			writeError(w, http.StatusBadRequest, "name is required")
			return
		}

		err := svc.PromoteToAdmin(r.Context(), user, name)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrForbidden):
				writeError(w, http.StatusForbidden, "Forbidden")
			case errors.Is(err, services.ErrUserNotFound):
				writeError(w, http.StatusNotFound, "User not found")
			default:
				logger.Log.Errorw("failed to promote user", "request_id", middlewares.RequestIDFromContext(r.Context()), "target", name, "err", err)
				writeError(w, http.StatusInternalServerError, "Internal server error")
			}
			return
		}

		w.WriteHeader(http.StatusOK)
	}
}
