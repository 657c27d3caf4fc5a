package auth

import (
	"context"
	"errors"
	"strings"
	"testing"

	"mdip/internal/domain"
	"mdip/internal/repository"
	"mdip/internal/store/memory"

	"golang.org/x/crypto/bcrypt"
)

func newAuthenticator() (*Authenticator, *repository.UserRepository) {
	users := repository.NewUserRepository(memory.NewUserStore())
	return NewAuthenticator(users, bcrypt.MinCost), users
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	a, users := newAuthenticator()

	u, err := a.Register(ctx, "analyst_1", "Secret123", domain.RoleCyberSecurity)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.Password == "Secret123" {
		t.Error("Expected the stored password to be hashed")
	}
	if stored, _ := users.FindByUsername("analyst_1"); stored.Password != u.Password {
		t.Error("Expected the repository to hold the hash")
	}

	got, err := a.Login(ctx, "analyst_1", "Secret123")
	if err != nil {
		t.Fatalf("unexpected login error: %v", err)
	}
	if got.Role != domain.RoleCyberSecurity {
		t.Errorf("Expected role %s, got %s", domain.RoleCyberSecurity, got.Role)
	}

	if _, err := a.Login(ctx, "analyst_1", "secret123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Expected invalid credentials for wrong password, got %v", err)
	}
	if _, err := a.Login(ctx, "nobody", "Secret123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Expected invalid credentials for unknown user, got %v", err)
	}
}

func TestRegister_Rejects(t *testing.T) {
	ctx := context.Background()
	a, _ := newAuthenticator()
	if _, err := a.Register(ctx, "taken", "Secret123", domain.RoleITOperations); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		username string
		password string
		role     domain.Role
		wantIs   error
		wantAs   bool
	}{
		{"duplicate", "taken", "Secret123", domain.RoleITOperations, ErrDuplicateUsername, false},
		{"no capital", "fresh", "secret123", domain.RoleITOperations, ErrWeakPassword, true},
		{"no digit", "fresh", "SecretOnly", domain.RoleITOperations, ErrWeakPassword, true},
		{"too short", "fresh", "A1", domain.RoleITOperations, ErrWeakPassword, true},
		{"too long", "fresh", "Secret1" + strings.Repeat("x", 73), domain.RoleITOperations, ErrWeakPassword, true},
		{"short username", "ab", "Secret123", domain.RoleITOperations, nil, true},
		{"bad characters", "bad name", "Secret123", domain.RoleITOperations, nil, true},
		{"unknown role", "fresh", "Secret123", domain.Role("Admin"), nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := a.Register(ctx, tt.username, tt.password, tt.role)
			if err == nil {
				t.Fatal("Expected an error")
			}
			if tt.wantIs != nil && !errors.Is(err, tt.wantIs) {
				t.Errorf("Expected %v, got %v", tt.wantIs, err)
			}
			var verr *domain.ValidationError
			if tt.wantAs && !errors.As(err, &verr) {
				t.Errorf("Expected a validation error, got %v", err)
			}
		})
	}
}

func TestNewAuthenticator_CostFallback(t *testing.T) {
	a := NewAuthenticator(nil, 0)
	if a.cost != bcrypt.DefaultCost {
		t.Errorf("Expected default cost %d, got %d", bcrypt.DefaultCost, a.cost)
	}
}
