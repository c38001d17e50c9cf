package service

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/urbanrenew/renewal-platform/internal/core/domain"
	"github.com/urbanrenew/renewal-platform/internal/core/ports"
)

// InflightGuard abstracts the single-operation-in-flight lock (Redis SETNX).
// A second auth operation on the same subject while one is pending is
// rejected rather than allowed to race on the session record.
type InflightGuard interface {
	Acquire(ctx context.Context, key string) (bool, error)
	Release(ctx context.Context, key string) error
}

// AuthService implements the platform's authentication operations on top of
// the user repository and the session store.
type AuthService struct {
	users      ports.UserRepository
	sessions   ports.SessionStore
	classifier ports.AdminClassifier
	notifier   ports.Notifier
	inflight   InflightGuard
	jwtSecret  string
	sessionTTL time.Duration
	log        zerolog.Logger
}

// AuthServiceOptions groups the dependencies of AuthService.
type AuthServiceOptions struct {
	Users      ports.UserRepository
	Sessions   ports.SessionStore
	Classifier ports.AdminClassifier
	Notifier   ports.Notifier
	Inflight   InflightGuard
	JWTSecret  string
	SessionTTL time.Duration
	Logger     zerolog.Logger
}

func NewAuthService(opts AuthServiceOptions) *AuthService {
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = 24 * time.Hour
	}
	return &AuthService{
		users:      opts.Users,
		sessions:   opts.Sessions,
		classifier: opts.Classifier,
		notifier:   opts.Notifier,
		inflight:   opts.Inflight,
		jwtSecret:  opts.JWTSecret,
		sessionTTL: opts.SessionTTL,
		log:        opts.Logger,
	}
}

// SignUp opens a new account and a session for it. The role defaults to
// resident; the user type is always derived from the role. Email and ID
// number uniqueness are not enforced on this path.
func (s *AuthService) SignUp(ctx context.Context, in ports.SignUpInput) (*ports.AuthResult, error) {
	release, err := s.acquire(ctx, "signup:"+in.Email)
	if err != nil {
		s.notifier.Failure(ctx, "signup", err)
		return nil, err
	}
	defer release()

	role := in.Role
	if role == "" {
		role = domain.RoleResident
	}

	now := time.Now().UTC()
	principal := domain.Principal{
		ID:        uuid.NewString(),
		Email:     in.Email,
		Role:      role,
		UserType:  domain.RoleToUserType(role),
		FullName:  in.FullName,
		Phone:     in.Phone,
		IDNumber:  in.IDNumber,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if in.Password != "" {
		hash, hashErr := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if hashErr != nil {
			s.notifier.Failure(ctx, "signup", hashErr)
			return nil, hashErr
		}
		principal.PasswordHash = string(hash)
	}

	created, err := s.users.Create(ctx, &principal)
	if err != nil {
		s.notifier.Failure(ctx, "signup", err)
		return nil, err
	}

	sess, err := s.openSession(ctx, *created, "")
	if err != nil {
		s.notifier.Failure(ctx, "signup", err)
		return nil, err
	}

	s.log.Info().Str("user_id", created.ID).Str("user_type", created.UserType).Msg("user signed up")
	s.notifier.Success(ctx, "signup")
	return &ports.AuthResult{Session: sess}, nil
}

// SignIn builds a session from the email heuristic. No password
// verification happens on this path; the classifier alone decides whether
// the caller becomes admin. Preserved demo behavior.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	release, err := s.acquire(ctx, "signin:"+email)
	if err != nil {
		s.notifier.Failure(ctx, "signin", err)
		return nil, err
	}
	defer release()

	now := time.Now().UTC()
	principal := domain.Principal{
		ID:        uuid.NewString(),
		Email:     email,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if s.classifier.AdminEmail(email) {
		principal.Role = domain.RoleAdmin
		principal.UserType = domain.UserTypeAdmin
	} else {
		principal.Role = domain.RoleResident
		principal.UserType = domain.RoleToUserType(domain.RoleResident)
	}

	sess, err := s.openSession(ctx, principal, "")
	if err != nil {
		s.notifier.Failure(ctx, "signin", err)
		return nil, err
	}

	s.log.Info().Str("email", email).Str("role", principal.Role).Msg("heuristic sign-in")
	s.notifier.Success(ctx, "signin")
	return &ports.AuthResult{Session: sess}, nil
}

// SignInWithIDNumber is the credentialed login path: it verifies the
// password against the stored user and mints a bearer token. Unknown ID
// numbers and wrong passwords both surface as invalid credentials; the
// cause is deliberately not distinguished.
func (s *AuthService) SignInWithIDNumber(ctx context.Context, idNumber, password string) (*ports.AuthResult, error) {
	release, err := s.acquire(ctx, "signin-id:"+idNumber)
	if err != nil {
		s.notifier.Failure(ctx, "signin", err)
		return nil, err
	}
	defer release()

	if idNumber == "" || password == "" {
		s.notifier.Failure(ctx, "signin", domain.ErrInvalidCredentials)
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByIDNumber(ctx, idNumber)
	if err != nil {
		s.notifier.Failure(ctx, "signin", domain.ErrInvalidCredentials)
		return nil, domain.ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.notifier.Failure(ctx, "signin", domain.ErrInvalidCredentials)
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.mintToken(*user)
	if err != nil {
		s.notifier.Failure(ctx, "signin", err)
		return nil, err
	}

	sess, err := s.openSession(ctx, *user, token)
	if err != nil {
		s.notifier.Failure(ctx, "signin", err)
		return nil, err
	}

	s.log.Info().Str("user_id", user.ID).Msg("credentialed sign-in")
	s.notifier.Success(ctx, "signin")
	return &ports.AuthResult{Session: sess}, nil
}

// SignOut removes the session record, clearing the principal and the bearer
// token together. A missing session is not an error.
func (s *AuthService) SignOut(ctx context.Context, sessionID string) error {
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		s.notifier.Failure(ctx, "signout", err)
		return err
	}
	s.notifier.Success(ctx, "signout")
	return nil
}

// ResetPassword reports success without making any durable change or
// contacting anything. Preserved demo behavior.
func (s *AuthService) ResetPassword(ctx context.Context, email string) error {
	s.log.Info().Str("email", email).Msg("password reset requested")
	s.notifier.Success(ctx, "reset_password")
	return nil
}

// UpdateProfile shallow-merges the update into the current principal: nil
// fields are left untouched, non-nil fields win. The user type is
// recomputed whenever the role changes. Fails when no session exists,
// leaving the stored record unchanged.
func (s *AuthService) UpdateProfile(ctx context.Context, sessionID string, in ports.ProfileUpdate) (*domain.Principal, error) {
	release, err := s.acquire(ctx, "profile:"+sessionID)
	if err != nil {
		s.notifier.Failure(ctx, "update_profile", err)
		return nil, err
	}
	defer release()

	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		s.notifier.Failure(ctx, "update_profile", domain.ErrNoUserLoggedIn)
		return nil, domain.ErrNoUserLoggedIn
	}

	p := sess.Principal
	if in.Email != nil {
		p.Email = *in.Email
	}
	if in.FullName != nil {
		p.FullName = *in.FullName
	}
	if in.Phone != nil {
		p.Phone = *in.Phone
	}
	if in.IDNumber != nil {
		p.IDNumber = *in.IDNumber
	}
	if in.Role != nil {
		p.Role = *in.Role
		p.UserType = domain.RoleToUserType(*in.Role)
	}
	p.UpdatedAt = time.Now().UTC()

	sess.Principal = p
	if err := s.sessions.Save(ctx, sess); err != nil {
		s.notifier.Failure(ctx, "update_profile", err)
		return nil, err
	}

	// Best effort: keep the durable user record in step when one exists.
	// Heuristic sign-in principals are session-only and have no record.
	if updateErr := s.users.Update(ctx, &p); updateErr != nil && updateErr != domain.ErrUserNotFound {
		s.log.Warn().Err(updateErr).Str("user_id", p.ID).Msg("profile update not persisted to user record")
	}

	s.notifier.Success(ctx, "update_profile")
	return &p, nil
}

// CurrentSession loads the session, evicting it when expired.
func (s *AuthService) CurrentSession(ctx context.Context, sessionID string) (*domain.Session, error) {
	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.Expired() {
		if deleteErr := s.sessions.Delete(ctx, sessionID); deleteErr != nil {
			s.log.Warn().Err(deleteErr).Str("session_id", sessionID).Msg("failed to evict expired session")
		}
		return nil, domain.ErrSessionExpired
	}
	return &sess, nil
}

// openSession persists a fresh session carrying the principal and token in
// one record.
func (s *AuthService) openSession(ctx context.Context, p domain.Principal, token string) (domain.Session, error) {
	now := time.Now().UTC()
	sess := domain.Session{
		ID:        uuid.NewString(),
		Principal: p,
		Token:     token,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionTTL),
	}
	if err := s.sessions.Save(ctx, sess); err != nil {
		return domain.Session{}, err
	}
	return sess, nil
}

func (s *AuthService) mintToken(p domain.Principal) (string, error) {
	claims := jwt.MapClaims{
		"sub":       p.ID,
		"email":     p.Email,
		"role":      p.Role,
		"user_type": p.UserType,
		"exp":       time.Now().Add(s.sessionTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

// acquire takes the in-flight lock for key and returns its release func.
// When the guard is absent, operations run unguarded.
func (s *AuthService) acquire(ctx context.Context, key string) (func(), error) {
	if s.inflight == nil {
		return func() {}, nil
	}
	ok, err := s.inflight.Acquire(ctx, key)
	if err != nil {
		// Lock store trouble must not take down sign-in; proceed unguarded.
		s.log.Warn().Err(err).Str("key", key).Msg("inflight guard unavailable")
		return func() {}, nil
	}
	if !ok {
		return nil, domain.ErrOperationInFlight
	}
	return func() {
		if releaseErr := s.inflight.Release(ctx, key); releaseErr != nil {
			s.log.Warn().Err(releaseErr).Str("key", key).Msg("inflight release failed")
		}
	}, nil
}
