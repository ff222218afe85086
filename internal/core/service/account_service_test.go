package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/teamhub/accounts-api/internal/core/domain"
)

type stubAccountRepo struct {
	accounts map[string]*domain.Account
}

func newStubAccountRepo() *stubAccountRepo {
	return &stubAccountRepo{accounts: make(map[string]*domain.Account)}
}

func cloneAccount(a *domain.Account) *domain.Account {
	if a == nil {
		return nil
	}
	clone := *a
	return &clone
}

func (r *stubAccountRepo) Create(_ context.Context, account *domain.Account) (*domain.Account, error) {
	if _, exists := r.accounts[account.Username]; exists {
		return nil, domain.ErrAccountExists
	}
	r.accounts[account.Username] = cloneAccount(account)
	return cloneAccount(account), nil
}

func (r *stubAccountRepo) FindByUsername(_ context.Context, username string) (*domain.Account, error) {
	a, ok := r.accounts[username]
	if !ok || a.Deleted {
		return nil, domain.ErrAccountNotFound
	}
	return cloneAccount(a), nil
}

func (r *stubAccountRepo) List(_ context.Context) ([]domain.Account, error) {
	out := make([]domain.Account, 0, len(r.accounts))
	for _, a := range r.accounts {
		if !a.Deleted {
			out = append(out, *cloneAccount(a))
		}
	}
	return out, nil
}

func (r *stubAccountRepo) Save(_ context.Context, account *domain.Account) error {
	if _, ok := r.accounts[account.Username]; !ok {
		return domain.ErrAccountNotFound
	}
	r.accounts[account.Username] = cloneAccount(account)
	return nil
}

func (r *stubAccountRepo) SoftDelete(_ context.Context, username string) error {
	a, ok := r.accounts[username]
	if !ok || a.Deleted {
		return domain.ErrAccountNotFound
	}
	a.Deleted = true
	a.Active = false
	return nil
}

type stubSessionRepo struct {
	sessions   map[string]*domain.Session // keyed by session id
	failCreate bool
}

func newStubSessionRepo() *stubSessionRepo {
	return &stubSessionRepo{sessions: make(map[string]*domain.Session)}
}

func (r *stubSessionRepo) Create(_ context.Context, session *domain.Session) error {
	if r.failCreate {
		return errors.New("store unavailable")
	}
	for _, s := range r.sessions {
		if s.Token == session.Token || s.ID == session.ID {
			return domain.ErrSessionExists
		}
	}
	clone := *session
	r.sessions[session.ID] = &clone
	return nil
}

func (r *stubSessionRepo) FindActiveByToken(_ context.Context, token string) (*domain.Session, error) {
	for _, s := range r.sessions {
		if s.Token == token && s.Active {
			clone := *s
			return &clone, nil
		}
	}
	return nil, domain.ErrSessionNotFound
}

func (r *stubSessionRepo) Deactivate(_ context.Context, sessionID string) error {
	if s, ok := r.sessions[sessionID]; ok {
		s.Active = false
	}
	return nil
}

type stubDetailsRepo struct {
	rows map[string]*domain.AccountDetails // keyed by account id
}

func newStubDetailsRepo() *stubDetailsRepo {
	return &stubDetailsRepo{rows: make(map[string]*domain.AccountDetails)}
}

func (r *stubDetailsRepo) Upsert(_ context.Context, details *domain.AccountDetails) error {
	for accountID, row := range r.rows {
		if row.Contact == details.Contact && accountID != details.AccountID {
			return domain.ErrDetailsExists
		}
	}
	clone := *details
	r.rows[details.AccountID] = &clone
	return nil
}

func (r *stubDetailsRepo) FindByAccountID(_ context.Context, accountID string) (*domain.AccountDetails, error) {
	row, ok := r.rows[accountID]
	if !ok {
		return nil, domain.ErrDetailsNotFound
	}
	clone := *row
	return &clone, nil
}

type stubAudit struct {
	events []domain.AuditEvent
}

func (a *stubAudit) Record(event domain.AuditEvent) {
	a.events = append(a.events, event)
}

type stubThrottle struct {
	blocked  bool
	failures int
	resets   int
}

func (t *stubThrottle) Blocked(context.Context, string) (bool, error) { return t.blocked, nil }
func (t *stubThrottle) NoteFailure(context.Context, string) error     { t.failures++; return nil }
func (t *stubThrottle) Reset(context.Context, string) error           { t.resets++; return nil }

type fixture struct {
	svc      *accountService
	accounts *stubAccountRepo
	sessions *stubSessionRepo
	details  *stubDetailsRepo
	throttle *stubThrottle
	audit    *stubAudit
	tokens   *TokenService
}

func newFixture() *fixture {
	accounts := newStubAccountRepo()
	sessions := newStubSessionRepo()
	details := newStubDetailsRepo()
	throttle := &stubThrottle{}
	audit := &stubAudit{}
	tokens := NewTokenService("secret", time.Hour)
	svc := NewAccountService(accounts, sessions, details, NewPasswordHasher(), tokens, throttle, audit, zerolog.Nop()).(*accountService)
	return &fixture{svc: svc, accounts: accounts, sessions: sessions, details: details, throttle: throttle, audit: audit, tokens: tokens}
}

func TestAccountService_Register_Success(t *testing.T) {
	f := newFixture()

	account, err := f.svc.Register(context.Background(), "alice", "a@example.com", "pass1234", "")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if account.PasswordHash == "pass1234" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte("pass1234")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if account.Role != domain.RoleMember {
		t.Fatalf("expected default role member, got %q", account.Role)
	}
	if !account.Active || account.Deleted {
		t.Fatalf("unexpected flags: active=%v deleted=%v", account.Active, account.Deleted)
	}
}

func TestAccountService_Register_Validation(t *testing.T) {
	f := newFixture()

	if _, err := f.svc.Register(context.Background(), "", "a@example.com", "pass1234", ""); err != domain.ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := f.svc.Register(context.Background(), "bob", "b@example.com", "pass1234", "superuser"); err != domain.ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput for bad role, got %v", err)
	}
}

func TestAccountService_Register_Duplicate(t *testing.T) {
	f := newFixture()

	if _, err := f.svc.Register(context.Background(), "bob", "b@example.com", "pass1234", ""); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, err := f.svc.Register(context.Background(), "bob", "b2@example.com", "pass5678", ""); err != domain.ErrAccountExists {
		t.Fatalf("expected ErrAccountExists, got %v", err)
	}
	// Original account untouched.
	original, err := f.accounts.FindByUsername(context.Background(), "bob")
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if original.Email != "b@example.com" {
		t.Fatalf("original account mutated: %+v", original)
	}
}

func TestAccountService_Login_Success(t *testing.T) {
	f := newFixture()
	if _, err := f.svc.Register(context.Background(), "carol", "c@example.com", "s3cretpwd", domain.RoleAdmin); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	token, err := f.svc.Login(context.Background(), "carol", "s3cretpwd")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}

	claims, err := f.tokens.Verify(token)
	if err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if claims.Subject != "carol" || claims.Role != domain.RoleAdmin {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	// Exactly one active session row backs the token.
	session, err := f.sessions.FindActiveByToken(context.Background(), token)
	if err != nil {
		t.Fatalf("no session row for issued token: %v", err)
	}
	if !session.Live(time.Now()) {
		t.Fatalf("fresh session not live")
	}
	if f.throttle.resets != 1 {
		t.Fatalf("expected throttle reset, got %d", f.throttle.resets)
	}
}

func TestAccountService_Login_GenericFailure(t *testing.T) {
	f := newFixture()
	if _, err := f.svc.Register(context.Background(), "dave", "d@example.com", "goodpass", ""); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	// Unknown user and wrong password must be indistinguishable.
	_, unknownErr := f.svc.Login(context.Background(), "ghost", "whatever")
	_, wrongErr := f.svc.Login(context.Background(), "dave", "badpass")

	if unknownErr != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", unknownErr)
	}
	if wrongErr != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", wrongErr)
	}
	if f.throttle.failures != 2 {
		t.Fatalf("expected 2 noted failures, got %d", f.throttle.failures)
	}
}

func TestAccountService_Login_DeletedAccount(t *testing.T) {
	f := newFixture()
	if _, err := f.svc.Register(context.Background(), "erin", "e@example.com", "goodpass", ""); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if err := f.svc.SoftDelete(context.Background(), "erin"); err != nil {
		t.Fatalf("soft delete failed: %v", err)
	}
	if _, err := f.svc.Login(context.Background(), "erin", "goodpass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAccountService_Login_Throttled(t *testing.T) {
	f := newFixture()
	f.throttle.blocked = true
	if _, err := f.svc.Login(context.Background(), "anyone", "anything"); err != domain.ErrTooManyAttempts {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}
}

// A token must never escape without a persisted session row: when the session
// insert fails, login fails.
func TestAccountService_Login_SessionWriteFailure(t *testing.T) {
	f := newFixture()
	if _, err := f.svc.Register(context.Background(), "frank", "f@example.com", "goodpass", ""); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	f.sessions.failCreate = true

	_, err := f.svc.Login(context.Background(), "frank", "goodpass")
	if err == nil {
		t.Fatalf("expected error on session write failure")
	}
	if errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("store failure must not read as bad credentials: %v", err)
	}
	if len(f.sessions.sessions) != 0 {
		t.Fatalf("expected no session rows, got %d", len(f.sessions.sessions))
	}
}

func TestAccountService_Logout_Idempotent(t *testing.T) {
	f := newFixture()
	if _, err := f.svc.Register(context.Background(), "gina", "g@example.com", "goodpass", ""); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	token, err := f.svc.Login(context.Background(), "gina", "goodpass")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if err := f.svc.Logout(context.Background(), "gina", token); err != nil {
		t.Fatalf("first logout failed: %v", err)
	}
	if _, err := f.sessions.FindActiveByToken(context.Background(), token); err != domain.ErrSessionNotFound {
		t.Fatalf("session still active after logout")
	}

	if err := f.svc.Logout(context.Background(), "gina", token); err != domain.ErrAlreadyLoggedOut {
		t.Fatalf("expected ErrAlreadyLoggedOut, got %v", err)
	}
}

func TestAccountService_Logout_TokenMismatch(t *testing.T) {
	f := newFixture()
	for _, u := range []string{"henry", "iris"} {
		if _, err := f.svc.Register(context.Background(), u, u+"@example.com", "goodpass", ""); err != nil {
			t.Fatalf("register %s failed: %v", u, err)
		}
	}
	henryToken, err := f.svc.Login(context.Background(), "henry", "goodpass")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	// A valid token cannot close somebody else's session.
	if err := f.svc.Logout(context.Background(), "iris", henryToken); err != domain.ErrTokenMismatch {
		t.Fatalf("expected ErrTokenMismatch, got %v", err)
	}
	if _, err := f.sessions.FindActiveByToken(context.Background(), henryToken); err != nil {
		t.Fatalf("henry's session must survive: %v", err)
	}
}

func TestAccountService_Logout_MissingToken(t *testing.T) {
	f := newFixture()
	if err := f.svc.Logout(context.Background(), "gina", ""); err != domain.ErrTokenMissing {
		t.Fatalf("expected ErrTokenMissing, got %v", err)
	}
}

func TestAccountService_AuditTrail(t *testing.T) {
	f := newFixture()
	if _, err := f.svc.Register(context.Background(), "jane", "j@example.com", "goodpass", ""); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	_, _ = f.svc.Login(context.Background(), "jane", "badpass")
	token, err := f.svc.Login(context.Background(), "jane", "goodpass")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if err := f.svc.Logout(context.Background(), "jane", token); err != nil {
		t.Fatalf("logout failed: %v", err)
	}

	if len(f.audit.events) != 3 {
		t.Fatalf("expected 3 audit events, got %d", len(f.audit.events))
	}
	if f.audit.events[0].Success || f.audit.events[0].Action != domain.AuditLogin {
		t.Fatalf("unexpected first event: %+v", f.audit.events[0])
	}
	if !f.audit.events[1].Success || !f.audit.events[2].Success {
		t.Fatalf("expected successful login and logout events: %+v", f.audit.events[1:])
	}
	if f.audit.events[2].Action != domain.AuditLogout {
		t.Fatalf("unexpected last event: %+v", f.audit.events[2])
	}
}

func TestAccountService_Details(t *testing.T) {
	f := newFixture()
	if _, err := f.svc.Register(context.Background(), "liam", "l@example.com", "goodpass", ""); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if _, err := f.svc.GetDetails(context.Background(), "liam"); err != domain.ErrDetailsNotFound {
		t.Fatalf("expected ErrDetailsNotFound before first save, got %v", err)
	}
	if _, err := f.svc.GetDetails(context.Background(), "nobody"); err != domain.ErrAccountNotFound {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}

	saved, err := f.svc.SaveDetails(context.Background(), "liam", domain.AccountDetails{
		Age: 31, Contact: "5550001111", Address: "12 Elm St", Company: "Initech", YearsExperience: 7,
	})
	if err != nil {
		t.Fatalf("save details failed: %v", err)
	}
	if saved.ID == "" || saved.AccountID == "" {
		t.Fatalf("identifiers not assigned: %+v", saved)
	}

	// A second save replaces the sheet but keeps the row identity.
	again, err := f.svc.SaveDetails(context.Background(), "liam", domain.AccountDetails{
		Age: 32, Contact: "5550001111", Address: "14 Elm St", Company: "Initech", YearsExperience: 8,
	})
	if err != nil {
		t.Fatalf("second save failed: %v", err)
	}
	if again.ID != saved.ID {
		t.Fatalf("row identity changed on replace: %q != %q", again.ID, saved.ID)
	}

	got, err := f.svc.GetDetails(context.Background(), "liam")
	if err != nil {
		t.Fatalf("get details failed: %v", err)
	}
	if got.Age != 32 || got.Address != "14 Elm St" || got.YearsExperience != 8 {
		t.Fatalf("details not replaced: %+v", got)
	}
}

func TestAccountService_Details_ContactConflict(t *testing.T) {
	f := newFixture()
	for _, u := range []string{"mona", "nick"} {
		if _, err := f.svc.Register(context.Background(), u, u+"@example.com", "goodpass", ""); err != nil {
			t.Fatalf("register %s failed: %v", u, err)
		}
	}
	if _, err := f.svc.SaveDetails(context.Background(), "mona", domain.AccountDetails{Contact: "5550002222"}); err != nil {
		t.Fatalf("first save failed: %v", err)
	}
	if _, err := f.svc.SaveDetails(context.Background(), "nick", domain.AccountDetails{Contact: "5550002222"}); err != domain.ErrDetailsExists {
		t.Fatalf("expected ErrDetailsExists for duplicate contact, got %v", err)
	}
}

func TestAccountService_Update(t *testing.T) {
	f := newFixture()
	if _, err := f.svc.Register(context.Background(), "kate", "k@example.com", "goodpass", ""); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	email := "kate@new.example.com"
	password := "newerpass"
	updated, err := f.svc.Update(context.Background(), "kate", domain.AccountUpdate{Email: &email, Password: &password})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Email != email {
		t.Fatalf("email not updated: %q", updated.Email)
	}
	if bcrypt.CompareHashAndPassword([]byte(updated.PasswordHash), []byte(password)) != nil {
		t.Fatalf("password hash not rotated")
	}

	badRole := "superuser"
	if _, err := f.svc.Update(context.Background(), "kate", domain.AccountUpdate{Role: &badRole}); err != domain.ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput for bad role, got %v", err)
	}
}
