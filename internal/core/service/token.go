package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/teamhub/accounts-api/internal/core/domain"
)

// TokenClaims is the verified content of a bearer token.
type TokenClaims struct {
	Subject   string
	Role      string
	ExpiresAt time.Time
}

// TokenService issues and verifies HS256-signed bearer tokens. The signing
// key and TTL come from configuration loaded once at startup. A token passing
// Verify is only cryptographically valid; session-table liveness is checked
// separately by the auth gate.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenService{secret: []byte(secret), ttl: ttl}
}

// TTL returns the configured token lifetime.
func (s *TokenService) TTL() time.Duration {
	return s.ttl
}

// Issue signs a token for the subject expiring ttl from now.
func (s *TokenService) Issue(subject, role string) (string, time.Time, error) {
	expiresAt := time.Now().UTC().Add(s.ttl)
	claims := jwt.MapClaims{
		"username": subject,
		"role":     role,
		"exp":      expiresAt.Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, expiresAt, nil
}

// Verify checks structure and signature before expiry, so a tampered token
// never reads as merely expired.
func (s *TokenService) Verify(token string) (*TokenClaims, error) {
	return s.verify(token, false)
}

// VerifyIgnoringExpiry is the logout path: an expired token may still name
// the session it should deactivate.
func (s *TokenService) VerifyIgnoringExpiry(token string) (*TokenClaims, error) {
	return s.verify(token, true)
}

func (s *TokenService) verify(token string, ignoreExpiry bool) (*TokenClaims, error) {
	if token == "" {
		return nil, domain.ErrTokenMissing
	}

	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if ignoreExpiry {
		opts = append(opts, jwt.WithoutClaimsValidation())
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, opts...)
	switch {
	case err == nil && parsed.Valid:
		// fall through to claim extraction
	case errors.Is(err, jwt.ErrTokenMalformed),
		errors.Is(err, jwt.ErrTokenSignatureInvalid),
		errors.Is(err, jwt.ErrTokenUnverifiable):
		return nil, domain.ErrTokenInvalid
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, domain.ErrTokenExpired
	default:
		return nil, domain.ErrTokenInvalid
	}

	subject, _ := claims["username"].(string)
	if subject == "" {
		return nil, domain.ErrTokenInvalid
	}
	role, _ := claims["role"].(string)

	out := &TokenClaims{Subject: subject, Role: role}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		out.ExpiresAt = exp.Time
	}
	return out, nil
}
