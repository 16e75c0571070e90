package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AccessTokenExpiry is the fixed lifetime of issued access tokens.
const AccessTokenExpiry = 30 * time.Minute

var (
	// ErrTokenExpired indicates a structurally valid token past its expiry.
	ErrTokenExpired = errors.New("token has expired")
	// ErrTokenInvalid indicates a malformed token, a bad signature, or a
	// missing subject claim.
	ErrTokenInvalid = errors.New("token is invalid")
)

// Manager encapsulates access token issuance and validation. Tokens are
// stateless: there is no server-side revocation list, a token stays valid
// until its expiry.
type Manager struct {
	secret []byte
	issuer string
}

// NewManager creates a new token manager.
func NewManager(secret, issuer string) (*Manager, error) {
	trimmed := strings.TrimSpace(secret)
	if trimmed == "" {
		return nil, errors.New("jwt secret must not be empty")
	}
	if strings.TrimSpace(issuer) == "" {
		issuer = "feedback"
	}
	return &Manager{
		secret: []byte(trimmed),
		issuer: issuer,
	}, nil
}

// Issue signs an HS256 token with sub set to the user's email and exp set
// thirty minutes out.
func (m *Manager) Issue(email string) (string, time.Time, error) {
	if m == nil {
		return "", time.Time{}, errors.New("jwt manager is nil")
	}
	if strings.TrimSpace(email) == "" {
		return "", time.Time{}, errors.New("subject email must not be empty")
	}
	now := time.Now().UTC()
	expiry := now.Add(AccessTokenExpiry)

	claims := jwt.RegisteredClaims{
		Subject:   email,
		Issuer:    m.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiry),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiry, nil
}

// Validate verifies signature and expiry and returns the subject email.
// Expired tokens fail with ErrTokenExpired; every other failure mode,
// including a missing subject, yields ErrTokenInvalid.
func (m *Manager) Validate(tokenString string) (string, error) {
	if m == nil {
		return "", errors.New("jwt manager is nil")
	}
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	token, err := parser.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		return m.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", ErrTokenInvalid
	}
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid {
		return "", ErrTokenInvalid
	}
	if strings.TrimSpace(claims.Subject) == "" {
		return "", ErrTokenInvalid
	}
	return claims.Subject, nil
}
