package middlewares

//go:generate mockgen -source=auth.go -destination=auth_mock.go -package=middlewares

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sbilibin2017/gw-auth-service/internal/logger"
	"github.com/sbilibin2017/gw-auth-service/internal/models"
	"github.com/sbilibin2017/gw-auth-service/internal/services"
	"github.com/sbilibin2017/gw-auth-service/internal/tokens"
)

// ErrNoCredentials is returned by a Strategy when the request carries no
// credentials of its kind, so the next strategy should be tried.
var ErrNoCredentials = errors.New("no credentials for strategy")

// Strategy authenticates a request. It returns the user, ErrNoCredentials to
// defer, or any other error to reject the request.
type Strategy interface {
	Authenticate(r *http.Request) (*models.UserDB, error)
}

// StrategyFunc adapts a function to Strategy.
type StrategyFunc func(r *http.Request) (*models.UserDB, error)

func (f StrategyFunc) Authenticate(r *http.Request) (*models.UserDB, error) {
	return f(r)
}

// Tokener extracts a bearer token from a request.
type Tokener interface {
	GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error)
}

// BasicCredentialer extracts basic auth credentials from a request.
type BasicCredentialer interface {
	GetBasicCredentials(ctx context.Context, r *http.Request) (username, password string, err error)
}

// BearerAuthenticator resolves a bearer token to a user.
type BearerAuthenticator interface {
	AuthenticateBearer(ctx context.Context, value string) (*models.UserDB, error)
}

// BasicAuthenticator verifies a username/password pair.
type BasicAuthenticator interface {
	AuthenticateBasic(ctx context.Context, username, password string) (*models.UserDB, error)
}

// BasicStrategy authenticates with username and password from the Authorization header.
func BasicStrategy(creds BasicCredentialer, auth BasicAuthenticator) Strategy {
	return StrategyFunc(func(r *http.Request) (*models.UserDB, error) {
		username, password, err := creds.GetBasicCredentials(r.Context(), r)
		if errors.Is(err, tokens.ErrMissingCredentials) {
			return nil, ErrNoCredentials
		}
		if err != nil {
			return nil, err
		}
		return auth.AuthenticateBasic(r.Context(), username, password)
	})
}

// BearerStrategy authenticates with a bearer token from the Authorization header.
func BearerStrategy(tokener Tokener, auth BearerAuthenticator) Strategy {
	return StrategyFunc(func(r *http.Request) (*models.UserDB, error) {
		token, err := tokener.GetTokenFromRequest(r.Context(), r)
		if errors.Is(err, tokens.ErrMissingCredentials) {
			return nil, ErrNoCredentials
		}
		if err != nil {
			return nil, err
		}
		return auth.AuthenticateBearer(r.Context(), token)
	})
}

// AuthMiddleware runs the strategies in order. The first one that yields a
// user wins and the user is stored in the request context. A request no
// strategy recognizes passes through unauthenticated; GuardMiddleware rejects it.
func AuthMiddleware(strategies ...Strategy) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, s := range strategies {
				user, err := s.Authenticate(r)
				if errors.Is(err, ErrNoCredentials) {
					continue
				}
				if err != nil {
					if errors.Is(err, services.ErrInvalidCredentials) || errors.Is(err, tokens.ErrInvalidHeader) {
						logger.Log.Infow("authentication failed", "request_id", RequestIDFromContext(r.Context()), "err", err)
						writeError(w, http.StatusUnauthorized, "Unauthorized")
						return
					}
					logger.Log.Errorw("authentication error", "request_id", RequestIDFromContext(r.Context()), "err", err)
					writeError(w, http.StatusInternalServerError, "Internal server error")
					return
				}
				if user != nil {
					r = r.WithContext(WithUser(r.Context(), user))
					break
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

// GuardMiddleware rejects requests that no strategy authenticated.
func GuardMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if UserFromContext(r.Context()) == nil {
			logger.Log.Infow("unauthenticated request rejected", "request_id", RequestIDFromContext(r.Context()), "uri", r.RequestURI)
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}

type userKey struct{}

// WithUser stores the authenticated user in the context.
func WithUser(ctx context.Context, user *models.UserDB) context.Context {
	return context.WithValue(ctx, userKey{}, user)
}

// UserFromContext returns the authenticated user, or nil.
func UserFromContext(ctx context.Context) *models.UserDB {
	user, _ := ctx.Value(userKey{}).(*models.UserDB)
	return user
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(models.ErrorResponse{Error: msg})
}
