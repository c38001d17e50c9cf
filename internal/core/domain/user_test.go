package domain

import "testing"

func TestRoleToUserType(t *testing.T) {
	cases := []struct {
		role string
		want string
	}{
		{RoleAdmin, UserTypeAuthorities},
		{RoleAuthority, UserTypeAuthorities},
		{UserTypeAuthorities, UserTypeAuthorities},
		{RoleResident, UserTypeResidents},
		{RoleDeveloper, UserTypeDevelopers},
		{RoleProfessional, UserTypeProfessionals},
		{"contractor", "contractor"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := RoleToUserType(tc.role); got != tc.want {
			t.Fatalf("RoleToUserType(%q) = %q, want %q", tc.role, got, tc.want)
		}
	}
}

func TestRoleToUserTypeIsPure(t *testing.T) {
	// Same input, same output, regardless of call order.
	first := RoleToUserType(RoleDeveloper)
	_ = RoleToUserType(RoleAdmin)
	if second := RoleToUserType(RoleDeveloper); second != first {
		t.Fatalf("mapper not deterministic: %q then %q", first, second)
	}
}
