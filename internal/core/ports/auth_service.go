package ports

import (
	"context"

	"github.com/urbanrenew/renewal-platform/internal/core/domain"
)

// SignUpInput carries the data needed to open a new account.
type SignUpInput struct {
	Email    string
	Password string
	FullName string
	Phone    string
	IDNumber string
	// Role defaults to resident when empty.
	Role string
}

// ProfileUpdate is a shallow merge into the current principal: nil fields
// are left untouched, non-nil fields win.
type ProfileUpdate struct {
	Email    *string
	FullName *string
	Phone    *string
	IDNumber *string
	Role     *string
}

// AuthResult is returned by every operation that opens or refreshes a session.
type AuthResult struct {
	Session domain.Session
}

// AuthService implements the platform's authentication operations. Every
// operation reports its outcome through the notifier on both the success
// and the failure path, and failures are still returned to the caller.
type AuthService interface {
	SignUp(ctx context.Context, in SignUpInput) (*AuthResult, error)
	// SignIn builds a session from the email heuristic without verifying
	// the password. Demo behavior preserved for frontend compatibility.
	SignIn(ctx context.Context, email, password string) (*AuthResult, error)
	// SignInWithIDNumber is the credentialed path: it verifies the password
	// against the stored user and mints a bearer token.
	SignInWithIDNumber(ctx context.Context, idNumber, password string) (*AuthResult, error)
	SignOut(ctx context.Context, sessionID string) error
	ResetPassword(ctx context.Context, email string) error
	UpdateProfile(ctx context.Context, sessionID string, in ProfileUpdate) (*domain.Principal, error)
	CurrentSession(ctx context.Context, sessionID string) (*domain.Session, error)
}

// AdminClassifier decides admin privilege. The production implementation is
// a heuristic (email allow-list and substring, reserved ID number, role and
// user type checks); the interface exists so it can be replaced with real
// claim verification without touching callers.
type AdminClassifier interface {
	// AdminEmail reports whether an email alone grants admin at sign-in.
	AdminEmail(email string) bool
	// IsAdmin classifies a full principal.
	IsAdmin(p domain.Principal) bool
}

// Notifier surfaces operation outcomes to the user in their language.
// Notification failures never fail the operation that triggered them.
type Notifier interface {
	Success(ctx context.Context, key string)
	Failure(ctx context.Context, key string, err error)
}
