// Package auth provides bcrypt password hashing and HS256 JWT issuing/parsing.
// This is a leaf package with no domain dependencies. Used by the admin login
// service and internal/api/middleware.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// ===== CONSTANTS =====

// BCryptCost is the work factor for bcrypt.
const BCryptCost = 12

// DefaultJWTExpiry is used when an Issuer is built with a non-positive expiry.
const DefaultJWTExpiry = 24 * time.Hour

// MinSecretLength is the shortest HS256 secret NewIssuer accepts.
const MinSecretLength = 16

// Issuer is the claim issuer written into every token.
const Issuer = "folio"

// ErrWeakSecret is returned by NewIssuer for short secrets.
var ErrWeakSecret = errors.New("auth: JWT secret too short")

// ===== BCRYPT FUNCTIONS =====

// HashPassword hashes a plaintext password using bcrypt.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), BCryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword verifies a plaintext password against a bcrypt hash.
// Returns false (not error) for invalid hashes to avoid leaking hash format info in responses.
func VerifyPassword(hash, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// ===== JWT FUNCTIONS =====

// Claims represents the JWT claims for folio admin sessions.
// Subject carries the admin identity; the rest are standard JWT claims.
type Claims struct {
	jwt.RegisteredClaims
}

// TokenIssuer signs and verifies admin tokens with one HMAC secret.
type TokenIssuer struct {
	secret []byte
	expiry time.Duration
	now    func() time.Time
}

// NewIssuer creates a TokenIssuer. A non-positive expiry uses DefaultJWTExpiry.
func NewIssuer(secret string, expiry time.Duration) (*TokenIssuer, error) {
	if len(secret) < MinSecretLength {
		return nil, fmt.Errorf("%w: need at least %d bytes", ErrWeakSecret, MinSecretLength)
	}
	if expiry <= 0 {
		expiry = DefaultJWTExpiry
	}
	return &TokenIssuer{secret: []byte(secret), expiry: expiry, now: time.Now}, nil
}

// Expiry returns the lifetime of issued tokens.
func (i *TokenIssuer) Expiry() time.Duration {
	return i.expiry
}

// GenerateJWT creates a signed token for subject.
func (i *TokenIssuer) GenerateJWT(subject string) (string, error) {
	now := i.now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    Issuer,
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(now.Add(i.expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign JWT: %w", err)
	}
	return signedToken, nil
}

// ParseJWT validates and parses a token, extracting claims.
// Returns error if the token is invalid, expired, malformed or from another issuer.
func (i *TokenIssuer) ParseJWT(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, fmt.Errorf("token is empty")
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Verify signing method is HMAC-SHA256 (prevent algorithm substitution attacks)
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return i.secret, nil
	}, jwt.WithIssuer(Issuer), jwt.WithTimeFunc(i.now))
	if err != nil {
		return nil, fmt.Errorf("failed to parse JWT: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid JWT claims or signature")
	}
	return claims, nil
}
