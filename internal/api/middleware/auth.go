package middleware

import (
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/teamhub/accounts-api/internal/api/metrics"
	"github.com/teamhub/accounts-api/internal/core/domain"
	"github.com/teamhub/accounts-api/internal/core/ports"
	"github.com/teamhub/accounts-api/internal/core/service"
)

// TokenVerifier abstracts the cryptographic check so tests can count calls.
type TokenVerifier interface {
	Verify(token string) (*service.TokenClaims, error)
}

// AuthConfig wires the auth gate. All fields are read-only after startup.
type AuthConfig struct {
	PublicPaths []string
	Tokens      TokenVerifier
	Sessions    ports.SessionRepository
	Log         zerolog.Logger
	// Now is the clock; nil means time.Now. Tests pin it.
	Now func() time.Time
}

// Auth gates every non-public route. Checks run cheapest first: path
// classification, then token presence, then signature/expiry, and only then
// the session-table lookup, so an obviously bad request never costs a
// database hit. A signature-valid token whose session row is inactive is rejected,
// which is what makes logout take effect immediately.
func Auth(cfg AuthConfig) echo.MiddlewareFunc {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if isPublic(c.Request().URL.Path, cfg.PublicPaths) {
				return next(c)
			}

			token := ExtractBearer(c.Request().Header.Get("Authorization"))
			if token == "" {
				metrics.AuthRejectedTotal.WithLabelValues("missing_token").Inc()
				return domain.ErrTokenMissing
			}

			claims, err := cfg.Tokens.Verify(token)
			if err != nil {
				switch err {
				case domain.ErrTokenExpired:
					metrics.AuthRejectedTotal.WithLabelValues("token_expired").Inc()
				default:
					metrics.AuthRejectedTotal.WithLabelValues("invalid_token").Inc()
				}
				return err
			}

			ctx := c.Request().Context()
			session, err := cfg.Sessions.FindActiveByToken(ctx, token)
			if err != nil {
				if err == domain.ErrSessionNotFound {
					metrics.AuthRejectedTotal.WithLabelValues("session_inactive").Inc()
					return domain.ErrSessionInactive
				}
				return err
			}

			if !session.Live(now()) {
				// Lazy expiry: normalize the row now so the table stays
				// truthful without a background sweeper.
				if err := cfg.Sessions.Deactivate(ctx, session.ID); err != nil {
					cfg.Log.Warn().Err(err).
						Str("session_id", session.ID).
						Msg("expiry write-back failed")
				} else {
					metrics.SessionsRevokedTotal.WithLabelValues("expired").Inc()
				}
				metrics.AuthRejectedTotal.WithLabelValues("session_inactive").Inc()
				return domain.ErrSessionInactive
			}

			c.Set("username", claims.Subject)
			c.Set("role", claims.Role)
			c.Set("account_id", session.AccountID)

			return next(c)
		}
	}
}

// ExtractBearer accepts both a bare token and the "Bearer <token>" form.
// Shared with the logout handler so the two header parsers cannot drift.
func ExtractBearer(header string) string {
	header = strings.TrimSpace(header)
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return strings.TrimSpace(parts[1])
	}
	return header
}

func isPublic(path string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}
