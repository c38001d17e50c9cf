package service

import (
	"strings"

	"github.com/urbanrenew/renewal-platform/internal/core/domain"
)

// HeuristicClassifier grants admin by string inspection: an allow-listed or
// "admin"-containing email, a reserved ID number, the admin role, or an
// authorities-family user type. This mirrors the trust-on-input behavior
// the frontend relies on; swap the implementation behind
// ports.AdminClassifier once server-issued claims exist.
type HeuristicClassifier struct {
	// AllowedEmails are exact addresses that always classify as admin.
	AllowedEmails []string
	// ReservedIDNumber is the national ID reserved for the admin account.
	ReservedIDNumber string
}

// AdminEmail implements the sign-in heuristic: allow-listed addresses and
// any address containing "admin" qualify.
func (h HeuristicClassifier) AdminEmail(email string) bool {
	return h.allowListed(email) || strings.Contains(strings.ToLower(email), "admin")
}

// IsAdmin classifies a full principal: allow-listed email, reserved ID
// number, admin role, or an authorities-family user type.
func (h HeuristicClassifier) IsAdmin(p domain.Principal) bool {
	if p.Role == domain.RoleAdmin {
		return true
	}
	if p.UserType == domain.UserTypeAuthorities || p.UserType == domain.UserTypeAdmin {
		return true
	}
	if h.ReservedIDNumber != "" && p.IDNumber == h.ReservedIDNumber {
		return true
	}
	return h.allowListed(p.Email)
}

func (h HeuristicClassifier) allowListed(email string) bool {
	for _, allowed := range h.AllowedEmails {
		if strings.EqualFold(allowed, email) {
			return true
		}
	}
	return false
}
