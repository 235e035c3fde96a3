// ABOUTME: Unit tests for JWT token issuing and verification
// ABOUTME: Tests valid tokens, invalid tokens, expiry, and issuer headers

package auth

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var testSecret = []byte("test-secret-key-for-jwt-signing!")

func newTestIssuer(t *testing.T, subject string, ttl time.Duration) *TokenIssuer {
	t.Helper()
	issuer, err := NewTokenIssuer(testSecret, subject, ttl)
	if err != nil {
		t.Fatalf("NewTokenIssuer() error = %v", err)
	}
	return issuer
}

func newTestVerifier(t *testing.T) *Verifier {
	t.Helper()
	verifier, err := NewVerifier(testSecret)
	if err != nil {
		t.Fatalf("NewVerifier() error = %v", err)
	}
	return verifier
}

func TestVerifier_ValidToken(t *testing.T) {
	issuer := newTestIssuer(t, "cli-user", time.Hour)
	verifier := newTestVerifier(t)

	token, err := issuer.Token()
	if err != nil {
		t.Fatalf("Token() error = %v", err)
	}

	got, err := verifier.Verify(token)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if got != "cli-user" {
		t.Errorf("Verify() = %q, want %q", got, "cli-user")
	}
}

func TestVerifier_InvalidToken(t *testing.T) {
	verifier := newTestVerifier(t)

	otherIssuer, err := NewTokenIssuer([]byte("a-completely-different-secret-32b"), "cli-user", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenIssuer() error = %v", err)
	}
	foreign, err := otherIssuer.Token()
	if err != nil {
		t.Fatalf("Token() error = %v", err)
	}

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty token", token: ""},
		{name: "garbage token", token: "not-a-jwt-token"},
		{name: "malformed JWT", token: "header.payload.signature"},
		{name: "wrong secret", token: foreign},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := verifier.Verify(tt.token)
			if !errors.Is(err, ErrInvalidToken) {
				t.Errorf("Verify() error = %v, want ErrInvalidToken", err)
			}
		})
	}
}

func TestVerifier_ExpiredToken(t *testing.T) {
	issuer := newTestIssuer(t, "cli-user", time.Minute)
	issuer.now = func() time.Time { return time.Now().Add(-time.Hour) }
	verifier := newTestVerifier(t)

	token, err := issuer.Token()
	if err != nil {
		t.Fatalf("Token() error = %v", err)
	}

	_, err = verifier.Verify(token)
	if !errors.Is(err, ErrExpiredToken) {
		t.Errorf("Verify() error = %v, want ErrExpiredToken", err)
	}
}

func TestNewVerifier_ShortSecret(t *testing.T) {
	_, err := NewVerifier([]byte("short"))
	if !errors.Is(err, ErrSecretTooShort) {
		t.Errorf("NewVerifier() error = %v, want ErrSecretTooShort", err)
	}
}

func TestNewTokenIssuer_Validation(t *testing.T) {
	if _, err := NewTokenIssuer([]byte("short"), "sub", time.Minute); !errors.Is(err, ErrSecretTooShort) {
		t.Errorf("short secret: error = %v, want ErrSecretTooShort", err)
	}
	if _, err := NewTokenIssuer(testSecret, "", time.Minute); !errors.Is(err, ErrMissingClaim) {
		t.Errorf("empty subject: error = %v, want ErrMissingClaim", err)
	}

	issuer := newTestIssuer(t, "sub", 0)
	if issuer.ttl != DefaultTokenTTL {
		t.Errorf("ttl = %v, want %v", issuer.ttl, DefaultTokenTTL)
	}
}

func TestTokenIssuer_Headers(t *testing.T) {
	issuer := newTestIssuer(t, "cli-user", time.Hour)
	verifier := newTestVerifier(t)

	headers := issuer.Headers()
	if len(headers) != 1 {
		t.Fatalf("Headers() = %v, want exactly one header", headers)
	}

	value := headers["Authorization"]
	if !strings.HasPrefix(value, "Bearer ") {
		t.Fatalf("Authorization = %q, want Bearer prefix", value)
	}

	sub, err := verifier.Verify(strings.TrimPrefix(value, "Bearer "))
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if sub != "cli-user" {
		t.Errorf("subject = %q, want %q", sub, "cli-user")
	}
}

func TestTokenIssuer_HeadersLogsSigningFailure(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	issuer, err := NewTokenIssuer(testSecret, "cli-user", time.Hour, WithIssuerLogger(logger))
	if err != nil {
		t.Fatalf("NewTokenIssuer() error = %v", err)
	}
	// An HMAC secret cannot sign RS256, so signing fails.
	issuer.method = jwt.SigningMethodRS256

	if headers := issuer.Headers(); headers != nil {
		t.Errorf("Headers() = %v, want nil", headers)
	}

	out := buf.String()
	if !strings.Contains(out, "failed to sign bearer token") {
		t.Errorf("log output = %q, want signing failure", out)
	}
	if !strings.Contains(out, "subject=cli-user") {
		t.Errorf("log output = %q, want subject attribute", out)
	}
}

func TestNewTokenIssuer_DefaultLogger(t *testing.T) {
	issuer, err := NewTokenIssuer(testSecret, "cli-user", time.Hour, WithIssuerLogger(nil))
	if err != nil {
		t.Fatalf("NewTokenIssuer() error = %v", err)
	}
	if issuer.logger != slog.Default() {
		t.Error("nil logger option should keep slog.Default()")
	}
}
