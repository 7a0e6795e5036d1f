package utils

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/o1egl/paseto"
)

const (
	// SessionExpiry is the lifetime of an admin session token.
	SessionExpiry = 7 * 24 * time.Hour

	// SessionCookieName is the cookie carrying the session token.
	SessionCookieName = "admin_session"
)

// SessionClaims represents the data in the session token.
type SessionClaims struct {
	AdminID  int64     `json:"adminId"`
	Username string    `json:"username"`
	Expiry   time.Time `json:"expiry"`
}

// getSymmetricKey retrieves the symmetric key from the environment variable
// and ensures it has the correct length (32 bytes).
func getSymmetricKey() ([]byte, error) {
	key := os.Getenv("SESSION_KEY")
	if len(key) != 32 {
		return nil, fmt.Errorf("SESSION_KEY must be 32 bytes long, got %d", len(key))
	}
	return []byte(key), nil
}

// GenerateSessionToken generates an encrypted session token for the given admin.
func GenerateSessionToken(adminID int64, username string) (string, error) {
	claims := SessionClaims{
		AdminID:  adminID,
		Username: username,
		Expiry:   time.Now().Add(SessionExpiry),
	}

	symmetricKey, err := getSymmetricKey()
	if err != nil {
		return "", err
	}
	token, err := paseto.NewV2().Encrypt(symmetricKey, claims, nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}
	return token, nil
}

// ValidateSessionToken decrypts the token and checks its expiry claim. Any
// failure is reported as a generic error; callers must treat every failure
// uniformly as "unauthenticated".
func ValidateSessionToken(tokenString string) (*SessionClaims, error) {
	var claims SessionClaims
	symmetricKey, err := getSymmetricKey()
	if err != nil {
		return nil, err
	}

	if err := paseto.NewV2().Decrypt(tokenString, symmetricKey, &claims, nil); err != nil {
		return nil, fmt.Errorf("failed to decrypt session token: %w", err)
	}

	if time.Now().After(claims.Expiry) {
		return nil, errors.New("session token expired")
	}

	return &claims, nil
}
