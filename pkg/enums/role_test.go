package enums

import "testing"

func TestParseRole(t *testing.T) {
	for _, value := range []string{"admin", "user", "store_owner"} {
		role, err := ParseRole(value)
		if err != nil {
			t.Fatalf("parse %q: %v", value, err)
		}
		if role.String() != value {
			t.Fatalf("expected %q got %q", value, role)
		}
		if !role.IsValid() {
			t.Fatalf("expected %q to be valid", role)
		}
	}
}

func TestParseRoleRejectsUnknown(t *testing.T) {
	if _, err := ParseRole("superuser"); err == nil {
		t.Fatal("expected error for unknown role")
	}
	if Role("owner").IsValid() {
		t.Fatal("owner is not a platform role")
	}
}
