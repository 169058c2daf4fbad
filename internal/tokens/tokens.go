package tokens

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

const (
	// MinBytes is the smallest amount of randomness a token may carry.
	MinBytes = 16
	// MaxBytes keeps the encoded token (172 chars) within the 255-char column.
	MaxBytes = 128
)

var (
	ErrMissingCredentials = errors.New("authorization header missing")
	ErrInvalidHeader      = errors.New("invalid authorization header format")
)

// Tokens generates opaque bearer tokens and extracts credentials from requests.
type Tokens struct {
	Size int // Number of random bytes per token
}

// New creates a new Tokens instance. The size is clamped to [MinBytes, MaxBytes].
func New(size int) *Tokens {
	if size < MinBytes {
		size = MinBytes
	}
	if size > MaxBytes {
		size = MaxBytes
	}
	return &Tokens{Size: size}
}

// Generate returns Size bytes of crypto/rand output encoded as standard base64.
func (t *Tokens) Generate(ctx context.Context) (string, error) {
	buf := make([]byte, t.Size)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf), nil
}

// GetTokenFromRequest extracts the token string from a Bearer Authorization header.
// ErrMissingCredentials means the request carries no Bearer credentials at all.
func (t *Tokens) GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", ErrMissingCredentials
	}

	parts := strings.Fields(authHeader)
	if len(parts) == 0 || !strings.EqualFold(parts[0], "bearer") {
		return "", ErrMissingCredentials
	}
	if len(parts) != 2 {
		return "", ErrInvalidHeader
	}

	// Every issued token is standard base64; anything else cannot match.
	if _, err := base64.StdEncoding.DecodeString(parts[1]); err != nil {
		return "", ErrInvalidHeader
	}

	return parts[1], nil
}

// GetBasicCredentials extracts username and password from a Basic Authorization header.
// ErrMissingCredentials means the request carries no Basic credentials at all.
func (t *Tokens) GetBasicCredentials(ctx context.Context, r *http.Request) (username, password string, err error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", "", ErrMissingCredentials
	}

	scheme, _, _ := strings.Cut(strings.TrimSpace(authHeader), " ")
	if !strings.EqualFold(scheme, "basic") {
		return "", "", ErrMissingCredentials
	}

	username, password, ok := r.BasicAuth()
	if !ok {
		return "", "", ErrInvalidHeader
	}

	return username, password, nil
}
