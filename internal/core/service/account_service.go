package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/teamhub/accounts-api/internal/core/domain"
	"github.com/teamhub/accounts-api/internal/core/ports"
)

// LoginThrottle abstracts the brute-force guard (Redis). A nil throttle
// disables throttling entirely.
type LoginThrottle interface {
	// Blocked reports whether the username has exhausted its failure budget.
	Blocked(ctx context.Context, username string) (bool, error)
	// NoteFailure counts one failed attempt against the username.
	NoteFailure(ctx context.Context, username string) error
	// Reset clears the failure count after a successful login.
	Reset(ctx context.Context, username string) error
}

type accountService struct {
	accounts ports.AccountRepository
	sessions ports.SessionRepository
	details  ports.DetailsRepository
	hasher   *PasswordHasher
	tokens   *TokenService
	throttle LoginThrottle
	audit    ports.AuditSink
	log      zerolog.Logger
}

// NewAccountService wires the auth/session core. throttle and audit may be
// nil; both degrade to no-ops.
func NewAccountService(
	accounts ports.AccountRepository,
	sessions ports.SessionRepository,
	details ports.DetailsRepository,
	hasher *PasswordHasher,
	tokens *TokenService,
	throttle LoginThrottle,
	audit ports.AuditSink,
	log zerolog.Logger,
) ports.AccountService {
	return &accountService{
		accounts: accounts,
		sessions: sessions,
		details:  details,
		hasher:   hasher,
		tokens:   tokens,
		throttle: throttle,
		audit:    audit,
		log:      log,
	}
}

func (s *accountService) Register(ctx context.Context, username, email, password, role string) (*domain.Account, error) {
	if username == "" || email == "" || password == "" {
		return nil, domain.ErrInvalidInput
	}
	if role == "" {
		role = domain.RoleMember
	}
	if role != domain.RoleAdmin && role != domain.RoleMember {
		return nil, domain.ErrInvalidInput
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	account := &domain.Account{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.accounts.Create(ctx, account)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("username", username).Msg("account registered")
	return created, nil
}

// Login authenticates and returns a signed token. Token issuance and the
// session row are one logical unit: when the session insert fails, the token
// is discarded and the caller gets an error, never a half-issued login.
func (s *accountService) Login(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", domain.ErrInvalidCredentials
	}

	if s.throttle != nil {
		blocked, err := s.throttle.Blocked(ctx, username)
		if err != nil {
			s.log.Warn().Err(err).Str("username", username).Msg("throttle check failed, allowing attempt")
		} else if blocked {
			s.recordAudit(domain.AuditLogin, username, false, "throttled")
			return "", domain.ErrTooManyAttempts
		}
	}

	account, err := s.accounts.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			// Same failure as a wrong password, so responses do not
			// reveal which usernames exist.
			s.noteFailure(ctx, username)
			s.recordAudit(domain.AuditLogin, username, false, "unknown account")
			return "", domain.ErrInvalidCredentials
		}
		return "", fmt.Errorf("login: find account: %w", err)
	}

	if account.Deleted || !account.Active {
		s.noteFailure(ctx, username)
		s.recordAudit(domain.AuditLogin, username, false, "account disabled")
		return "", domain.ErrInvalidCredentials
	}

	if !s.hasher.Verify(password, account.PasswordHash) {
		s.noteFailure(ctx, username)
		s.recordAudit(domain.AuditLogin, username, false, "wrong password")
		return "", domain.ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.Issue(account.Username, account.Role)
	if err != nil {
		return "", fmt.Errorf("login: issue token: %w", err)
	}

	session := &domain.Session{
		ID:        uuid.NewString(),
		AccountID: account.ID,
		Token:     token,
		Active:    true,
		CreatedAt: time.Now().UTC(),
		ExpiresAt: expiresAt,
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		// The issued token dies here: without a session row it could never
		// pass the auth gate anyway.
		return "", fmt.Errorf("login: persist session: %w", err)
	}

	if s.throttle != nil {
		if err := s.throttle.Reset(ctx, username); err != nil {
			s.log.Warn().Err(err).Str("username", username).Msg("throttle reset failed")
		}
	}
	s.recordAudit(domain.AuditLogin, username, true, "")

	s.log.Info().Str("username", username).Str("session_id", session.ID).Msg("login succeeded")
	return token, nil
}

// Logout deactivates the session behind the presented token. The token must
// name the same account as the URL, so a valid token cannot end somebody
// else's session. Repeat logouts report ErrAlreadyLoggedOut, which callers
// treat as success.
func (s *accountService) Logout(ctx context.Context, username, token string) error {
	if token == "" {
		return domain.ErrTokenMissing
	}

	// Expiry is ignored on purpose: an expired token still identifies the
	// session that should be closed.
	claims, err := s.tokens.VerifyIgnoringExpiry(token)
	if err != nil {
		return err
	}
	if claims.Subject != username {
		return domain.ErrTokenMismatch
	}

	session, err := s.sessions.FindActiveByToken(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return domain.ErrAlreadyLoggedOut
		}
		return fmt.Errorf("logout: find session: %w", err)
	}

	if err := s.sessions.Deactivate(ctx, session.ID); err != nil {
		return fmt.Errorf("logout: deactivate session: %w", err)
	}

	s.recordAudit(domain.AuditLogout, username, true, "")
	s.log.Info().Str("username", username).Str("session_id", session.ID).Msg("logout succeeded")
	return nil
}

func (s *accountService) List(ctx context.Context) ([]domain.Account, error) {
	return s.accounts.List(ctx)
}

func (s *accountService) Get(ctx context.Context, username string) (*domain.Account, error) {
	return s.accounts.FindByUsername(ctx, username)
}

func (s *accountService) Update(ctx context.Context, username string, update domain.AccountUpdate) (*domain.Account, error) {
	account, err := s.accounts.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if update.Email != nil {
		account.Email = *update.Email
	}
	if update.Role != nil {
		if *update.Role != domain.RoleAdmin && *update.Role != domain.RoleMember {
			return nil, domain.ErrInvalidInput
		}
		account.Role = *update.Role
	}
	if update.Active != nil {
		account.Active = *update.Active
	}
	if update.Password != nil {
		hash, err := s.hasher.Hash(*update.Password)
		if err != nil {
			return nil, err
		}
		account.PasswordHash = hash
	}
	account.UpdatedAt = time.Now().UTC()

	if err := s.accounts.Save(ctx, account); err != nil {
		return nil, fmt.Errorf("update account: %w", err)
	}
	return account, nil
}

func (s *accountService) SoftDelete(ctx context.Context, username string) error {
	return s.accounts.SoftDelete(ctx, username)
}

func (s *accountService) GetDetails(ctx context.Context, username string) (*domain.AccountDetails, error) {
	account, err := s.accounts.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return s.details.FindByAccountID(ctx, account.ID)
}

// SaveDetails replaces an account's details sheet, creating the row on first
// save and keeping its id afterwards.
func (s *accountService) SaveDetails(ctx context.Context, username string, input domain.AccountDetails) (*domain.AccountDetails, error) {
	account, err := s.accounts.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	current, err := s.details.FindByAccountID(ctx, account.ID)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrDetailsNotFound):
		current = &domain.AccountDetails{ID: uuid.NewString(), AccountID: account.ID, CreatedAt: now}
	default:
		return nil, fmt.Errorf("save details: %w", err)
	}

	current.Age = input.Age
	current.Contact = input.Contact
	current.Address = input.Address
	current.Company = input.Company
	current.YearsExperience = input.YearsExperience
	current.UpdatedAt = now

	if err := s.details.Upsert(ctx, current); err != nil {
		return nil, err
	}
	return current, nil
}

func (s *accountService) noteFailure(ctx context.Context, username string) {
	if s.throttle == nil {
		return
	}
	if err := s.throttle.NoteFailure(ctx, username); err != nil {
		s.log.Warn().Err(err).Str("username", username).Msg("throttle update failed")
	}
}

func (s *accountService) recordAudit(action, username string, success bool, reason string) {
	if s.audit == nil {
		return
	}
	s.audit.Record(domain.AuditEvent{
		Username: username,
		Action:   action,
		Success:  success,
		Reason:   reason,
		At:       time.Now().UTC(),
	})
}
