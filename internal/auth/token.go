// ABOUTME: HS256 JWT issuing and verification for assistant backend requests
// ABOUTME: TokenIssuer mints short-lived bearer tokens; Verifier checks them

package auth

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// MinSecretLength is the minimum HMAC secret size in bytes.
const MinSecretLength = 32

// DefaultTokenTTL is used when a TokenIssuer is created with a zero TTL.
const DefaultTokenTTL = 15 * time.Minute

// Token errors
var (
	ErrInvalidToken   = errors.New("invalid token")
	ErrExpiredToken   = errors.New("token expired")
	ErrMissingClaim   = errors.New("missing required claim")
	ErrSecretTooShort = fmt.Errorf("secret must be at least %d bytes", MinSecretLength)
)

// TokenVerifier defines the interface for token verification
type TokenVerifier interface {
	Verify(tokenString string) (subject string, err error)
}

// Verifier implements TokenVerifier using HS256 signed JWTs
type Verifier struct {
	secret []byte
}

// NewVerifier creates a verifier for tokens signed with secret.
func NewVerifier(secret []byte) (*Verifier, error) {
	if len(secret) < MinSecretLength {
		return nil, ErrSecretTooShort
	}
	return &Verifier{secret: secret}, nil
}

// Verify validates the token and extracts the "sub" claim
func (v *Verifier) Verify(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrExpiredToken
		}
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if !token.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", fmt.Errorf("%w: sub", ErrMissingClaim)
	}

	return sub, nil
}

// TokenIssuer signs a fresh token for a fixed subject on every call.
type TokenIssuer struct {
	secret  []byte
	subject string
	ttl     time.Duration
	method  jwt.SigningMethod
	logger  *slog.Logger
	now     func() time.Time
}

// IssuerOption configures a TokenIssuer.
type IssuerOption func(*TokenIssuer)

// WithIssuerLogger sets the logger that reports signing failures in Headers.
// The default is slog.Default().
func WithIssuerLogger(logger *slog.Logger) IssuerOption {
	return func(i *TokenIssuer) {
		if logger != nil {
			i.logger = logger
		}
	}
}

// NewTokenIssuer creates an issuer. A zero ttl selects DefaultTokenTTL.
func NewTokenIssuer(secret []byte, subject string, ttl time.Duration, opts ...IssuerOption) (*TokenIssuer, error) {
	if len(secret) < MinSecretLength {
		return nil, ErrSecretTooShort
	}
	if subject == "" {
		return nil, fmt.Errorf("%w: sub", ErrMissingClaim)
	}
	if ttl == 0 {
		ttl = DefaultTokenTTL
	}
	i := &TokenIssuer{
		secret:  secret,
		subject: subject,
		ttl:     ttl,
		method:  jwt.SigningMethodHS256,
		logger:  slog.Default(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i, nil
}

// Token returns a signed token valid for the issuer's TTL.
func (i *TokenIssuer) Token() (string, error) {
	now := i.now()
	claims := jwt.MapClaims{
		"sub": i.subject,
		"iat": now.Unix(),
		"exp": now.Add(i.ttl).Unix(),
	}

	token := jwt.NewWithClaims(i.method, claims)
	return token.SignedString(i.secret)
}

// Headers returns an Authorization header carrying a fresh token. It returns
// nil if signing fails, which the assistant client treats as "use defaults".
func (i *TokenIssuer) Headers() map[string]string {
	token, err := i.Token()
	if err != nil {
		i.logger.Warn("failed to sign bearer token", "subject", i.subject, "error", err)
		return nil
	}
	return map[string]string{"Authorization": "Bearer " + token}
}
