// Package notify surfaces operation outcomes to the user in their own
// language. It is the server-side counterpart of the frontend's transient
// toast: non-blocking, best effort, and never allowed to fail the
// operation that triggered it.
package notify

import (
	"context"

	"github.com/rs/zerolog"
	"golang.org/x/text/language"
)

// Hebrew first: it is the platform's primary language and the fallback
// when no Accept-Language matches.
var supported = []language.Tag{language.Hebrew, language.English}

var matcher = language.NewMatcher(supported)

type localeKey struct{}

// WithLocale resolves the request's Accept-Language header against the
// supported languages and stores the match on the context.
func WithLocale(ctx context.Context, acceptLanguage string) context.Context {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return ctx
	}
	// Match may return a derived tag (en-US for en); index into supported
	// so catalog lookups always hit.
	_, idx, _ := matcher.Match(tags...)
	return context.WithValue(ctx, localeKey{}, supported[idx])
}

func localeFrom(ctx context.Context) language.Tag {
	if tag, ok := ctx.Value(localeKey{}).(language.Tag); ok {
		return tag
	}
	return supported[0]
}

type notice struct {
	success string
	failure string
}

var notices = map[language.Tag]map[string]notice{
	language.Hebrew: {
		"signup":         {success: "נרשמת בהצלחה", failure: "ההרשמה נכשלה"},
		"signin":         {success: "התחברת בהצלחה", failure: "ההתחברות נכשלה"},
		"signout":        {success: "התנתקת בהצלחה", failure: "ההתנתקות נכשלה"},
		"reset_password": {success: "הוראות לאיפוס הסיסמה נשלחו", failure: "איפוס הסיסמה נכשל"},
		"update_profile": {success: "הפרופיל עודכן", failure: "עדכון הפרופיל נכשל"},
	},
	language.English: {
		"signup":         {success: "Signed up successfully", failure: "Sign-up failed"},
		"signin":         {success: "Signed in successfully", failure: "Sign-in failed"},
		"signout":        {success: "Signed out successfully", failure: "Sign-out failed"},
		"reset_password": {success: "Password reset instructions sent", failure: "Password reset failed"},
		"update_profile": {success: "Profile updated", failure: "Profile update failed"},
	},
}

// Text returns the localized notice for an operation key. Unknown keys
// return the key itself so a missing catalog entry stays visible.
func Text(ctx context.Context, key string, success bool) string {
	tag := localeFrom(ctx)
	catalog, ok := notices[tag]
	if !ok {
		catalog = notices[supported[0]]
	}
	n, ok := catalog[key]
	if !ok {
		return key
	}
	if success {
		return n.success
	}
	return n.failure
}

// LogNotifier emits notices through the structured log. It satisfies
// ports.Notifier.
type LogNotifier struct {
	log zerolog.Logger
}

func NewLogNotifier(log zerolog.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Success(ctx context.Context, key string) {
	n.log.Info().Str("operation", key).Str("notice", Text(ctx, key, true)).Msg("user notice")
}

func (n *LogNotifier) Failure(ctx context.Context, key string, err error) {
	n.log.Warn().Err(err).Str("operation", key).Str("notice", Text(ctx, key, false)).Msg("user notice")
}
