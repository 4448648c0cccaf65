// Package auth implements the single-operator admin login: the password is
// checked against a bcrypt hash from configuration and a JWT is issued.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	domainaudit "github.com/matiasleandrokruk/folio/internal/domain/audit"
	pkgauth "github.com/matiasleandrokruk/folio/pkg/auth"
)

// ErrInvalidCredentials is returned by Login for any rejected password.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AdminSubject is the JWT subject issued to the operator.
const AdminSubject = "admin"

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Password string
	RemoteIP string
}

// AuthResult is returned after a successful Login.
//
//nolint:revive // mirrors the handler response shape
type AuthResult struct {
	Token     string
	Subject   string
	ExpiresAt time.Time
}

// AuthService defines the authentication business operations.
//
//nolint:revive // public interface consumed by the handlers package
type AuthService interface {
	Login(ctx context.Context, input LoginInput) (*AuthResult, error)
}

type auditLogger interface {
	LogWithDetails(
		ctx context.Context,
		actorType domainaudit.ActorType,
		actorID string,
		action string,
		details map[string]any,
		outcome domainaudit.Outcome,
	) error
}

type authService struct {
	passwordHash string
	issuer       *pkgauth.TokenIssuer
	auditLogger  auditLogger
}

// NewAuthService creates an AuthService for the operator password hash.
func NewAuthService(passwordHash string, issuer *pkgauth.TokenIssuer) AuthService {
	return &authService{passwordHash: passwordHash, issuer: issuer}
}

// NewAuthServiceWithAudit creates an AuthService that records every attempt.
func NewAuthServiceWithAudit(passwordHash string, issuer *pkgauth.TokenIssuer, logger auditLogger) AuthService {
	return &authService{passwordHash: passwordHash, issuer: issuer, auditLogger: logger}
}

// Login verifies the password and returns a JWT for AdminSubject.
func (s *authService) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	// Verify password (constant-time comparison via bcrypt)
	if s.passwordHash == "" || !pkgauth.VerifyPassword(s.passwordHash, input.Password) {
		s.logAttempt(ctx, input.RemoteIP, domainaudit.OutcomeDenied, "invalid_password")
		return nil, ErrInvalidCredentials
	}

	token, err := s.issuer.GenerateJWT(AdminSubject)
	if err != nil {
		s.logAttempt(ctx, input.RemoteIP, domainaudit.OutcomeError, "jwt_generation_failed")
		return nil, fmt.Errorf("failed to generate JWT: %w", err)
	}

	s.logAttempt(ctx, input.RemoteIP, domainaudit.OutcomeSuccess, "")
	return &AuthResult{
		Token:     token,
		Subject:   AdminSubject,
		ExpiresAt: time.Now().Add(s.issuer.Expiry()).UTC(),
	}, nil
}

func (s *authService) logAttempt(ctx context.Context, remoteIP string, outcome domainaudit.Outcome, reason string) {
	if s.auditLogger == nil {
		return
	}
	details := map[string]any{"remote_ip": remoteIP}
	if reason != "" {
		details["reason"] = reason
	}
	_ = s.auditLogger.LogWithDetails(ctx, domainaudit.ActorTypeAdmin, AdminSubject,
		domainaudit.ActionAdminLogin, details, outcome)
}
