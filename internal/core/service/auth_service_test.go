package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/urbanrenew/renewal-platform/internal/core/domain"
	"github.com/urbanrenew/renewal-platform/internal/core/ports"
)

type stubUserRepo struct {
	users map[string]*domain.Principal // keyed by ID
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.Principal)}
}

func clonePrincipal(p *domain.Principal) *domain.Principal {
	if p == nil {
		return nil
	}
	clone := *p
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, p *domain.Principal) (*domain.Principal, error) {
	if _, exists := r.users[p.ID]; exists {
		return nil, domain.ErrUserExists
	}
	r.users[p.ID] = clonePrincipal(p)
	return clonePrincipal(p), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.Principal, error) {
	for _, u := range r.users {
		if u.Email == email {
			return clonePrincipal(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByIDNumber(_ context.Context, idNumber string) (*domain.Principal, error) {
	for _, u := range r.users {
		if u.IDNumber == idNumber {
			return clonePrincipal(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Update(_ context.Context, p *domain.Principal) error {
	if _, exists := r.users[p.ID]; !exists {
		return domain.ErrUserNotFound
	}
	r.users[p.ID] = clonePrincipal(p)
	return nil
}

type stubSessionStore struct {
	sessions map[string]domain.Session
}

func newStubSessionStore() *stubSessionStore {
	return &stubSessionStore{sessions: make(map[string]domain.Session)}
}

func (s *stubSessionStore) Save(_ context.Context, sess domain.Session) error {
	s.sessions[sess.ID] = sess
	return nil
}

func (s *stubSessionStore) Get(_ context.Context, id string) (domain.Session, error) {
	sess, ok := s.sessions[id]
	if !ok {
		return domain.Session{}, domain.ErrSessionNotFound
	}
	return sess, nil
}

func (s *stubSessionStore) Delete(_ context.Context, id string) error {
	delete(s.sessions, id)
	return nil
}

type recordingNotifier struct {
	successes []string
	failures  []string
}

func (n *recordingNotifier) Success(_ context.Context, key string) {
	n.successes = append(n.successes, key)
}

func (n *recordingNotifier) Failure(_ context.Context, key string, _ error) {
	n.failures = append(n.failures, key)
}

type stubInflight struct {
	held map[string]bool
	err  error
}

func (g *stubInflight) Acquire(_ context.Context, key string) (bool, error) {
	if g.err != nil {
		return false, g.err
	}
	if g.held[key] {
		return false, nil
	}
	if g.held == nil {
		g.held = make(map[string]bool)
	}
	g.held[key] = true
	return true, nil
}

func (g *stubInflight) Release(_ context.Context, key string) error {
	delete(g.held, key)
	return nil
}

func newTestAuthService(repo *stubUserRepo, store *stubSessionStore, notifier *recordingNotifier, inflight InflightGuard) *AuthService {
	return NewAuthService(AuthServiceOptions{
		Users:      repo,
		Sessions:   store,
		Classifier: HeuristicClassifier{AllowedEmails: []string{"board@renewal.example"}},
		Notifier:   notifier,
		Inflight:   inflight,
		JWTSecret:  "secret",
		SessionTTL: time.Hour,
		Logger:     zerolog.Nop(),
	})
}

func TestAuthService_SignUp_DerivesUserType(t *testing.T) {
	repo := newStubUserRepo()
	store := newStubSessionStore()
	notifier := &recordingNotifier{}
	svc := newTestAuthService(repo, store, notifier, nil)

	res, err := svc.SignUp(context.Background(), ports.SignUpInput{
		Email:    "dev@example.com",
		Password: "pass123",
		Role:     domain.RoleDeveloper,
	})
	if err != nil {
		t.Fatalf("SignUp returned error: %v", err)
	}
	p := res.Session.Principal
	if p.UserType != domain.UserTypeDevelopers {
		t.Fatalf("user type = %q, want %q", p.UserType, domain.UserTypeDevelopers)
	}
	if p.PasswordHash == "" || p.PasswordHash == "pass123" {
		t.Fatalf("password not hashed: %q", p.PasswordHash)
	}
	if _, ok := store.sessions[res.Session.ID]; !ok {
		t.Fatalf("session not persisted")
	}
	if len(notifier.successes) != 1 || notifier.successes[0] != "signup" {
		t.Fatalf("unexpected notifications: %v", notifier.successes)
	}
}

func TestAuthService_SignUp_DefaultRoleResident(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo(), newStubSessionStore(), &recordingNotifier{}, nil)

	res, err := svc.SignUp(context.Background(), ports.SignUpInput{Email: "new@example.com"})
	if err != nil {
		t.Fatalf("SignUp returned error: %v", err)
	}
	p := res.Session.Principal
	if p.Role != domain.RoleResident || p.UserType != domain.UserTypeResidents {
		t.Fatalf("role/user_type = %q/%q, want resident/residents", p.Role, p.UserType)
	}
}

func TestAuthService_SignIn_AdminHeuristic(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo(), newStubSessionStore(), &recordingNotifier{}, nil)

	res, err := svc.SignIn(context.Background(), "admin@test.com", "whatever")
	if err != nil {
		t.Fatalf("SignIn returned error: %v", err)
	}
	p := res.Session.Principal
	if p.Role != domain.RoleAdmin {
		t.Fatalf("role = %q, want admin", p.Role)
	}
	// The heuristic path carries the literal admin user type, not the
	// mapper's authorities value.
	if p.UserType != domain.UserTypeAdmin {
		t.Fatalf("user type = %q, want %q", p.UserType, domain.UserTypeAdmin)
	}
}

func TestAuthService_SignIn_AllowListedEmail(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo(), newStubSessionStore(), &recordingNotifier{}, nil)

	res, err := svc.SignIn(context.Background(), "board@renewal.example", "pw")
	if err != nil {
		t.Fatalf("SignIn returned error: %v", err)
	}
	if res.Session.Principal.Role != domain.RoleAdmin {
		t.Fatalf("allow-listed email did not become admin: %+v", res.Session.Principal)
	}
}

func TestAuthService_SignIn_RegularEmail(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo(), newStubSessionStore(), &recordingNotifier{}, nil)

	res, err := svc.SignIn(context.Background(), "jane@test.com", "whatever")
	if err != nil {
		t.Fatalf("SignIn returned error: %v", err)
	}
	p := res.Session.Principal
	if p.Role != domain.RoleResident || p.UserType != domain.UserTypeResidents {
		t.Fatalf("role/user_type = %q/%q, want resident/residents", p.Role, p.UserType)
	}
	if res.Session.Token != "" {
		t.Fatalf("heuristic sign-in must not mint a token, got %q", res.Session.Token)
	}
}

func TestAuthService_SignInWithIDNumber_Success(t *testing.T) {
	repo := newStubUserRepo()
	store := newStubSessionStore()
	svc := newTestAuthService(repo, store, &recordingNotifier{}, nil)

	hash, _ := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	repo.users["u1"] = &domain.Principal{
		ID:           "u1",
		Email:        "levi@example.com",
		Role:         domain.RoleResident,
		UserType:     domain.UserTypeResidents,
		IDNumber:     "123456789",
		PasswordHash: string(hash),
	}

	res, err := svc.SignInWithIDNumber(context.Background(), "123456789", "s3cret")
	if err != nil {
		t.Fatalf("SignInWithIDNumber returned error: %v", err)
	}
	if res.Session.Token == "" {
		t.Fatalf("expected bearer token in session")
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(res.Session.Token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["sub"] != "u1" || claims["user_type"] != domain.UserTypeResidents {
		t.Fatalf("unexpected claims: %v", claims)
	}
}

func TestAuthService_SignInWithIDNumber_Failures(t *testing.T) {
	repo := newStubUserRepo()
	notifier := &recordingNotifier{}
	svc := newTestAuthService(repo, newStubSessionStore(), notifier, nil)

	hash, _ := bcrypt.GenerateFromPassword([]byte("right"), bcrypt.MinCost)
	repo.users["u1"] = &domain.Principal{ID: "u1", IDNumber: "111", PasswordHash: string(hash)}

	// Unknown ID and wrong password collapse to the same error.
	if _, err := svc.SignInWithIDNumber(context.Background(), "999", "right"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("unknown ID: got %v, want ErrInvalidCredentials", err)
	}
	if _, err := svc.SignInWithIDNumber(context.Background(), "111", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("wrong password: got %v, want ErrInvalidCredentials", err)
	}
	if _, err := svc.SignInWithIDNumber(context.Background(), "", ""); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("empty input: got %v, want ErrInvalidCredentials", err)
	}
	if len(notifier.failures) != 3 {
		t.Fatalf("expected 3 failure notifications, got %v", notifier.failures)
	}
}

func TestAuthService_SignOut_ClearsWholeRecord(t *testing.T) {
	store := newStubSessionStore()
	svc := newTestAuthService(newStubUserRepo(), store, &recordingNotifier{}, nil)

	res, err := svc.SignIn(context.Background(), "jane@test.com", "pw")
	if err != nil {
		t.Fatalf("SignIn returned error: %v", err)
	}
	if err := svc.SignOut(context.Background(), res.Session.ID); err != nil {
		t.Fatalf("SignOut returned error: %v", err)
	}
	if _, ok := store.sessions[res.Session.ID]; ok {
		t.Fatalf("session record still present after sign-out")
	}
}

func TestAuthService_UpdateProfile_NoSession(t *testing.T) {
	store := newStubSessionStore()
	svc := newTestAuthService(newStubUserRepo(), store, &recordingNotifier{}, nil)

	name := "New Name"
	if _, err := svc.UpdateProfile(context.Background(), "missing", ports.ProfileUpdate{FullName: &name}); !errors.Is(err, domain.ErrNoUserLoggedIn) {
		t.Fatalf("got %v, want ErrNoUserLoggedIn", err)
	}
	if len(store.sessions) != 0 {
		t.Fatalf("store mutated by failed update")
	}
}

func TestAuthService_UpdateProfile_ShallowMerge(t *testing.T) {
	store := newStubSessionStore()
	svc := newTestAuthService(newStubUserRepo(), store, &recordingNotifier{}, nil)

	res, err := svc.SignIn(context.Background(), "jane@test.com", "pw")
	if err != nil {
		t.Fatalf("SignIn returned error: %v", err)
	}

	phone := "050-1234567"
	updated, err := svc.UpdateProfile(context.Background(), res.Session.ID, ports.ProfileUpdate{Phone: &phone})
	if err != nil {
		t.Fatalf("UpdateProfile returned error: %v", err)
	}
	if updated.Phone != phone {
		t.Fatalf("phone = %q, want %q", updated.Phone, phone)
	}
	// Untouched fields survive; user type is not recomputed without a
	// role change.
	if updated.Email != "jane@test.com" || updated.UserType != domain.UserTypeResidents {
		t.Fatalf("merge damaged other fields: %+v", updated)
	}
	if store.sessions[res.Session.ID].Principal.Phone != phone {
		t.Fatalf("merge not persisted to session record")
	}
}

func TestAuthService_UpdateProfile_RoleChangeRecomputesUserType(t *testing.T) {
	store := newStubSessionStore()
	svc := newTestAuthService(newStubUserRepo(), store, &recordingNotifier{}, nil)

	res, err := svc.SignIn(context.Background(), "jane@test.com", "pw")
	if err != nil {
		t.Fatalf("SignIn returned error: %v", err)
	}

	role := domain.RoleProfessional
	updated, err := svc.UpdateProfile(context.Background(), res.Session.ID, ports.ProfileUpdate{Role: &role})
	if err != nil {
		t.Fatalf("UpdateProfile returned error: %v", err)
	}
	if updated.UserType != domain.UserTypeProfessionals {
		t.Fatalf("user type = %q, want %q", updated.UserType, domain.UserTypeProfessionals)
	}
}

func TestAuthService_InflightGuardRejectsSecondOperation(t *testing.T) {
	inflight := &stubInflight{held: map[string]bool{"profile:s1": true}}
	store := newStubSessionStore()
	store.sessions["s1"] = domain.Session{ID: "s1", ExpiresAt: time.Now().Add(time.Hour)}
	svc := newTestAuthService(newStubUserRepo(), store, &recordingNotifier{}, inflight)

	name := "x"
	if _, err := svc.UpdateProfile(context.Background(), "s1", ports.ProfileUpdate{FullName: &name}); !errors.Is(err, domain.ErrOperationInFlight) {
		t.Fatalf("got %v, want ErrOperationInFlight", err)
	}
}

func TestAuthService_InflightGuardDegradesOnError(t *testing.T) {
	inflight := &stubInflight{err: errors.New("lock store down")}
	svc := newTestAuthService(newStubUserRepo(), newStubSessionStore(), &recordingNotifier{}, inflight)

	// A broken lock store must not block sign-in.
	if _, err := svc.SignIn(context.Background(), "jane@test.com", "pw"); err != nil {
		t.Fatalf("SignIn returned error: %v", err)
	}
}

func TestAuthService_CurrentSession_EvictsExpired(t *testing.T) {
	store := newStubSessionStore()
	store.sessions["old"] = domain.Session{
		ID:        "old",
		ExpiresAt: time.Now().Add(-time.Minute),
	}
	svc := newTestAuthService(newStubUserRepo(), store, &recordingNotifier{}, nil)

	if _, err := svc.CurrentSession(context.Background(), "old"); !errors.Is(err, domain.ErrSessionExpired) {
		t.Fatalf("got %v, want ErrSessionExpired", err)
	}
	if _, ok := store.sessions["old"]; ok {
		t.Fatalf("expired session not evicted")
	}
}

func TestAuthService_ResetPassword_AlwaysSucceeds(t *testing.T) {
	notifier := &recordingNotifier{}
	svc := newTestAuthService(newStubUserRepo(), newStubSessionStore(), notifier, nil)

	if err := svc.ResetPassword(context.Background(), "nobody@example.com"); err != nil {
		t.Fatalf("ResetPassword returned error: %v", err)
	}
	if len(notifier.successes) != 1 || notifier.successes[0] != "reset_password" {
		t.Fatalf("unexpected notifications: %v", notifier.successes)
	}
}
