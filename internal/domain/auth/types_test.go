package auth

import "testing"

func TestParseRole(t *testing.T) {
	if r, ok := ParseRole(" Student "); !ok || r != RoleStudent {
		t.Fatalf("unexpected parse: %q %v", r, ok)
	}
	if _, ok := ParseRole("superuser"); ok {
		t.Fatalf("did not expect superuser to parse")
	}
	if _, ok := ParseRole(""); ok {
		t.Fatalf("did not expect empty role to parse")
	}
}

func TestSession_Authenticated(t *testing.T) {
	if (Session{}).Authenticated() {
		t.Fatalf("empty session must not be authenticated")
	}
	s := Session{Role: RoleRecruiter, User: &Identity{ID: 7, Email: "r@corp.com"}}
	if !s.Authenticated() {
		t.Fatalf("expected authenticated")
	}
}
