package auth

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	domainaudit "github.com/matiasleandrokruk/folio/internal/domain/audit"
	pkgauth "github.com/matiasleandrokruk/folio/pkg/auth"
)

const testPassword = "correct horse battery staple"

type recordedAttempt struct {
	outcome domainaudit.Outcome
	details map[string]any
}

type fakeAudit struct {
	mu       sync.Mutex
	attempts []recordedAttempt
}

func (f *fakeAudit) LogWithDetails(_ context.Context, _ domainaudit.ActorType, _ string, action string,
	details map[string]any, outcome domainaudit.Outcome) error {
	if action != domainaudit.ActionAdminLogin {
		return nil
	}
	f.mu.Lock()
	f.attempts = append(f.attempts, recordedAttempt{outcome: outcome, details: details})
	f.mu.Unlock()
	return nil
}

func newTestService(t *testing.T, audit auditLogger) (AuthService, *pkgauth.TokenIssuer) {
	t.Helper()
	hash, err := pkgauth.HashPassword(testPassword)
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	issuer, err := pkgauth.NewIssuer("test-secret-key-32-chars-min!!!", time.Hour)
	if err != nil {
		t.Fatalf("NewIssuer failed: %v", err)
	}
	if audit == nil {
		return NewAuthService(hash, issuer), issuer
	}
	return NewAuthServiceWithAudit(hash, issuer, audit), issuer
}

func TestAuthService_Login_Success(t *testing.T) {
	svc, issuer := newTestService(t, nil)

	result, err := svc.Login(context.Background(), LoginInput{Password: testPassword})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if result.Subject != AdminSubject {
		t.Errorf("Subject = %q; want %q", result.Subject, AdminSubject)
	}
	if !result.ExpiresAt.After(time.Now()) {
		t.Errorf("ExpiresAt = %v; want future", result.ExpiresAt)
	}

	claims, err := issuer.ParseJWT(result.Token)
	if err != nil {
		t.Fatalf("issued token does not parse: %v", err)
	}
	if claims.Subject != AdminSubject {
		t.Errorf("claims.Subject = %q", claims.Subject)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	audit := &fakeAudit{}
	svc, _ := newTestService(t, audit)

	_, err := svc.Login(context.Background(), LoginInput{Password: "nope", RemoteIP: "10.0.0.7"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}

	if len(audit.attempts) != 1 || audit.attempts[0].outcome != domainaudit.OutcomeDenied {
		t.Fatalf("audit attempts = %+v; want one denied", audit.attempts)
	}
	if audit.attempts[0].details["remote_ip"] != "10.0.0.7" {
		t.Errorf("details = %v", audit.attempts[0].details)
	}
}

func TestAuthService_Login_EmptyHashRejectsEverything(t *testing.T) {
	issuer, err := pkgauth.NewIssuer("test-secret-key-32-chars-min!!!", time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	svc := NewAuthService("", issuer)

	if _, err := svc.Login(context.Background(), LoginInput{Password: ""}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_AuditsSuccess(t *testing.T) {
	audit := &fakeAudit{}
	svc, _ := newTestService(t, audit)

	if _, err := svc.Login(context.Background(), LoginInput{Password: testPassword}); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if len(audit.attempts) != 1 || audit.attempts[0].outcome != domainaudit.OutcomeSuccess {
		t.Fatalf("audit attempts = %+v; want one success", audit.attempts)
	}
	if _, ok := audit.attempts[0].details["reason"]; ok {
		t.Error("successful login must not carry a failure reason")
	}
}
