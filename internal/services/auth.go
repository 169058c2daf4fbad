package services

//go:generate mockgen -source=auth.go -destination=auth_mock.go -package=services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-auth-service/internal/logger"
	"github.com/sbilibin2017/gw-auth-service/internal/models"
	"github.com/sbilibin2017/gw-auth-service/internal/repositories"
)

// Error variables
var (
	ErrUserAlreadyExists  = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("administrator privileges required")
	ErrUserNotFound       = errors.New("user not found")
)

// maxIssueAttempts bounds retries when a freshly generated token value collides.
const maxIssueAttempts = 3

// UserReader defines read-only operations for users.
type UserReader interface {
	GetByUsername(ctx context.Context, username string) (*models.UserDB, error)
	GetByID(ctx context.Context, userID uuid.UUID) (*models.UserDB, error)
	List(ctx context.Context) ([]*models.UserDB, error)
}

// UserWriter defines write operations for users.
type UserWriter interface {
	Create(ctx context.Context, user *models.UserDB) error
	Save(ctx context.Context, user *models.UserDB) error
}

// TokenReader looks up persisted bearer tokens.
type TokenReader interface {
	GetByValue(ctx context.Context, value string) (*models.TokenDB, error)
}

// TokenWriter persists bearer tokens.
type TokenWriter interface {
	Save(ctx context.Context, token *models.TokenDB) error
}

// TokenCache caches which user owns a token.
type TokenCache interface {
	GetUserID(ctx context.Context, value string) (uuid.UUID, error)
	SetUserID(ctx context.Context, value string, userID uuid.UUID) error
}

// TokenGenerator produces random bearer token values.
type TokenGenerator interface {
	Generate(ctx context.Context) (string, error)
}

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) (bool, error)
}

// AuthService handles registration, authentication and admin promotion.
type AuthService struct {
	userReader  UserReader
	userWriter  UserWriter
	tokenReader TokenReader
	tokenWriter TokenWriter
	tokenCache  TokenCache
	generator   TokenGenerator
	hasher      PasswordHasher

	dummyMu   sync.Mutex
	dummyHash string
}

// NewAuthService creates a new AuthService instance. tokenCache may be nil.
func NewAuthService(
	userReader UserReader,
	userWriter UserWriter,
	tokenReader TokenReader,
	tokenWriter TokenWriter,
	tokenCache TokenCache,
	generator TokenGenerator,
	hasher PasswordHasher,
) *AuthService {
	return &AuthService{
		userReader:  userReader,
		userWriter:  userWriter,
		tokenReader: tokenReader,
		tokenWriter: tokenWriter,
		tokenCache:  tokenCache,
		generator:   generator,
		hasher:      hasher,
	}
}

// Register hashes the password and creates a non-admin user.
func (svc *AuthService) Register(ctx context.Context, email, username, password string, profilePic *string) (models.UserPublic, error) {
	user, err := svc.createUser(ctx, email, username, password, profilePic, false)
	if err != nil {
		return models.UserPublic{}, err
	}
	return user.Public(), nil
}

func (svc *AuthService) createUser(ctx context.Context, email, username, password string, profilePic *string, isAdmin bool) (*models.UserDB, error) {
	hashedPassword, err := svc.hasher.Hash(password)
	if err != nil {
		logger.Log.Errorw("failed to hash password", "err", err)
		return nil, err
	}

	user := &models.UserDB{
		UserID:       uuid.New(),
		Email:        email,
		Username:     username,
		PasswordHash: hashedPassword,
		ProfilePic:   profilePic,
		IsAdmin:      isAdmin,
	}

	if err := svc.userWriter.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrUniqueViolation) {
			logger.Log.Infow("user already exists", "username", username)
			return nil, ErrUserAlreadyExists
		}
		logger.Log.Errorw("failed to save user", "err", err)
		return nil, err
	}

	return user, nil
}

// AuthenticateBasic verifies a username/password pair. Unknown users and wrong
// passwords both yield ErrInvalidCredentials.
func (svc *AuthService) AuthenticateBasic(ctx context.Context, username, password string) (*models.UserDB, error) {
	if !wellFormed(username) {
		_, _ = svc.hasher.Verify(password, svc.dummyPasswordHash())
		logger.Log.Infow("malformed username rejected")
		return nil, ErrInvalidCredentials
	}

	user, err := svc.userReader.GetByUsername(ctx, username)
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		return nil, err
	}
	if user == nil {
		// Burn the same bcrypt work as a real check so timing does not reveal the miss.
		_, _ = svc.hasher.Verify(password, svc.dummyPasswordHash())
		logger.Log.Infow("invalid credentials", "username", username)
		return nil, ErrInvalidCredentials
	}

	ok, err := svc.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		logger.Log.Errorw("failed to verify password", "username", username, "err", err)
		return nil, err
	}
	if !ok {
		logger.Log.Infow("invalid credentials", "username", username)
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// dummyPasswordHash builds the hash lazily and retries on the next call if
// hashing failed.
func (svc *AuthService) dummyPasswordHash() string {
	svc.dummyMu.Lock()
	defer svc.dummyMu.Unlock()

	if svc.dummyHash == "" {
		hash, err := svc.hasher.Hash(uuid.NewString())
		if err != nil {
			logger.Log.Errorw("failed to hash dummy password", "err", err)
			return ""
		}
		svc.dummyHash = hash
	}
	return svc.dummyHash
}

// wellFormed reports whether a credential can be used as a text query
// parameter. Postgres rejects invalid UTF-8 and NUL bytes.
func wellFormed(s string) bool {
	return utf8.ValidString(s) && !strings.ContainsRune(s, 0)
}

// Login issues a new bearer token for an already authenticated user.
// Earlier tokens of the same user stay valid.
func (svc *AuthService) Login(ctx context.Context, user *models.UserDB) (*models.TokenDB, error) {
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	for attempt := 1; ; attempt++ {
		value, err := svc.generator.Generate(ctx)
		if err != nil {
			logger.Log.Errorw("failed to generate token", "err", err)
			return nil, err
		}

		token := &models.TokenDB{
			TokenID: uuid.New(),
			Value:   value,
			UserID:  user.UserID,
		}

		err = svc.tokenWriter.Save(ctx, token)
		if err == nil {
			logger.Log.Infow("token issued", "user_id", user.UserID, "token_id", token.TokenID)
			return token, nil
		}
		if !errors.Is(err, repositories.ErrUniqueViolation) || attempt >= maxIssueAttempts {
			logger.Log.Errorw("failed to save token", "user_id", user.UserID, "attempt", attempt, "err", err)
			return nil, err
		}
		logger.Log.Warnw("token value collision, regenerating", "attempt", attempt)
	}
}

// AuthenticateBearer resolves a token value to its user. Unknown tokens and
// tokens whose user no longer exists yield ErrInvalidCredentials.
func (svc *AuthService) AuthenticateBearer(ctx context.Context, value string) (*models.UserDB, error) {
	if value == "" || !wellFormed(value) {
		return nil, ErrInvalidCredentials
	}

	userID, err := svc.resolveUserID(ctx, value)
	if err != nil {
		return nil, err
	}

	user, err := svc.userReader.GetByID(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to get token owner", "user_id", userID, "err", err)
		return nil, err
	}
	if user == nil {
		logger.Log.Warnw("token references missing user", "user_id", userID)
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

func (svc *AuthService) resolveUserID(ctx context.Context, value string) (uuid.UUID, error) {
	if svc.tokenCache != nil {
		userID, err := svc.tokenCache.GetUserID(ctx, value)
		if err == nil {
			return userID, nil
		}
		if !errors.Is(err, repositories.ErrCacheMiss) {
			logger.Log.Warnw("token cache unavailable, falling back to database", "err", err)
		}
	}

	token, err := svc.tokenReader.GetByValue(ctx, value)
	if err != nil {
		logger.Log.Errorw("failed to get token", "err", err)
		return uuid.Nil, err
	}
	if token == nil {
		logger.Log.Infow("unknown bearer token")
		return uuid.Nil, ErrInvalidCredentials
	}

	if svc.tokenCache != nil {
		if err := svc.tokenCache.SetUserID(ctx, value, token.UserID); err != nil {
			logger.Log.Warnw("failed to cache token", "token_id", token.TokenID, "err", err)
		}
	}

	return token.UserID, nil
}

// RequireAdmin succeeds only for users whose admin flag is true.
func (svc *AuthService) RequireAdmin(user *models.UserDB) error {
	if user == nil || !user.IsAdmin {
		return ErrForbidden
	}
	return nil
}

// PromoteToAdmin grants administrator privileges to targetUsername on behalf of requester.
func (svc *AuthService) PromoteToAdmin(ctx context.Context, requester *models.UserDB, targetUsername string) error {
	if err := svc.RequireAdmin(requester); err != nil {
		if requester != nil {
			logger.Log.Infow("admin promotion denied", "requester", requester.Username, "target", targetUsername)
		}
		return err
	}

	target, err := svc.userReader.GetByUsername(ctx, targetUsername)
	if err != nil {
		logger.Log.Errorw("failed to get promotion target", "target", targetUsername, "err", err)
		return err
	}
	if target == nil {
		return ErrUserNotFound
	}

	target.IsAdmin = true
	if err := svc.userWriter.Save(ctx, target); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrUserNotFound
		}
		logger.Log.Errorw("failed to save promoted user", "target", targetUsername, "err", err)
		return err
	}

	logger.Log.Infow("user promoted to admin", "requester", requester.Username, "target", targetUsername)
	return nil
}

// ListUsers returns the public view of every user.
func (svc *AuthService) ListUsers(ctx context.Context) ([]models.UserPublic, error) {
	users, err := svc.userReader.List(ctx)
	if err != nil {
		logger.Log.Errorw("failed to list users", "err", err)
		return nil, err
	}
	return models.PublicUsers(users), nil
}

// SeedAdmin creates the bootstrap administrator. An existing user with the same
// username is left untouched, so repeated calls are harmless.
func (svc *AuthService) SeedAdmin(ctx context.Context, email, username, password string) error {
	if password == "" {
		return fmt.Errorf("admin seed for %q: empty password", username)
	}

	_, err := svc.createUser(ctx, email, username, password, nil, true)
	if errors.Is(err, ErrUserAlreadyExists) {
		logger.Log.Infow("admin user already present", "username", username)
		return nil
	}
	if err != nil {
		return fmt.Errorf("admin seed for %q: %w", username, err)
	}

	logger.Log.Infow("admin user seeded", "username", username)
	return nil
}
