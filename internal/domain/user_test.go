package domain

import (
	"errors"
	"strings"
	"testing"
)

func TestNewUser(t *testing.T) {
	if _, err := NewUser("alice", "Secret1", RoleCyberSecurity); err != nil {
		t.Fatalf("Expected valid user, got %v", err)
	}

	_, err := NewUser("alice", "Secret1", "Finance")
	var vErr *ValidationError
	if !errors.As(err, &vErr) || vErr.Field != "role" {
		t.Errorf("Expected role validation error, got %v", err)
	}

	if _, err := NewUser("", "Secret1", RoleITOperations); err == nil {
		t.Error("Expected error for empty username")
	}
	if _, err := NewUser("bob", "", RoleITOperations); err == nil {
		t.Error("Expected error for empty password")
	}
}

func TestCheckPasswordStrength(t *testing.T) {
	tests := []struct {
		password string
		missing  []string
	}{
		{"Secret1", nil},
		{"secret1", []string{"capital letter"}},
		{"Secret", []string{"number"}},
		{"secret", []string{"capital letter", "number"}},
		{"A1", []string{"between 6 and 50 characters"}},
		{"Abcd1", []string{"between 6 and 50 characters"}},
		{"A1" + strings.Repeat("x", 48), nil},
		{"A1" + strings.Repeat("x", 49), []string{"between 6 and 50 characters"}},
		{"A1" + strings.Repeat("x", 78), []string{"between 6 and 50 characters"}},
		{"a" + strings.Repeat("é", 40), []string{"between 6 and 50 characters", "capital letter", "number"}},
	}

	for _, tt := range tests {
		err := CheckPasswordStrength(tt.password)
		if len(tt.missing) == 0 {
			if err != nil {
				t.Errorf("%q: expected no error, got %v", tt.password, err)
			}
			continue
		}
		if err == nil {
			t.Fatalf("%q: expected error", tt.password)
		}
		var vErr *ValidationError
		if !errors.As(err, &vErr) || vErr.Field != "password" {
			t.Errorf("%q: expected a password validation error, got %v", tt.password, err)
		}
		for _, m := range tt.missing {
			if !strings.Contains(err.Error(), m) {
				t.Errorf("%q: expected message to mention %q, got %q", tt.password, m, err.Error())
			}
		}
	}
}

func TestValidateUsername(t *testing.T) {
	valid := []string{"abc", "user_01", "ABCDEFGHIJKLMNOPQRST"}
	invalidNames := []string{"", "ab", "has space", "way_too_long_username_x", "dash-name"}

	for _, u := range valid {
		if err := ValidateUsername(u); err != nil {
			t.Errorf("Expected %q to be valid, got %v", u, err)
		}
	}
	for _, u := range invalidNames {
		if err := ValidateUsername(u); err == nil {
			t.Errorf("Expected %q to be rejected", u)
		}
	}
}
