package notify

import (
	"context"
	"testing"
)

func TestText_HebrewIsDefault(t *testing.T) {
	got := Text(context.Background(), "signin", true)
	if got != "התחברת בהצלחה" {
		t.Fatalf("default notice = %q", got)
	}
}

func TestText_EnglishViaAcceptLanguage(t *testing.T) {
	ctx := WithLocale(context.Background(), "en-US,en;q=0.9")
	if got := Text(ctx, "signin", true); got != "Signed in successfully" {
		t.Fatalf("english notice = %q", got)
	}
	if got := Text(ctx, "signup", false); got != "Sign-up failed" {
		t.Fatalf("english failure notice = %q", got)
	}
}

func TestText_HebrewViaAcceptLanguage(t *testing.T) {
	ctx := WithLocale(context.Background(), "he-IL")
	if got := Text(ctx, "signout", true); got != "התנתקת בהצלחה" {
		t.Fatalf("hebrew notice = %q", got)
	}
}

func TestText_UnsupportedLanguageFallsBack(t *testing.T) {
	ctx := WithLocale(context.Background(), "fr-FR")
	if got := Text(ctx, "signin", true); got != "התחברת בהצלחה" {
		t.Fatalf("fallback notice = %q", got)
	}
}

func TestText_UnknownKeyStaysVisible(t *testing.T) {
	if got := Text(context.Background(), "made_up", true); got != "made_up" {
		t.Fatalf("unknown key = %q", got)
	}
}

func TestText_MalformedHeaderIgnored(t *testing.T) {
	ctx := WithLocale(context.Background(), ";;;")
	if got := Text(ctx, "signin", true); got != "התחברת בהצלחה" {
		t.Fatalf("malformed header notice = %q", got)
	}
}
