package domain

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_]{3,20}$`)

// User is a dashboard account. Password holds plaintext before registration and the
// bcrypt hash once the user has been loaded from the store.
type User struct {
	ID       int64  `json:"id,omitempty"`
	Username string `json:"username"`
	Password string `json:"-"`
	Role     Role   `json:"role"`
}

// NewUser builds a validated user.
func NewUser(username, password string, role Role) (User, error) {
	u := User{Username: username, Password: password, Role: role}
	if err := u.Validate(); err != nil {
		return User{}, err
	}
	return u, nil
}

// Validate checks the construction invariants. Password strength is checked separately.
func (u User) Validate() error {
	if u.Username == "" {
		return invalid("user", "username", nil, "cannot be empty")
	}
	if u.Password == "" {
		return invalid("user", "password", nil, "cannot be empty")
	}
	if !u.Role.Valid() {
		return invalid("user", "role", u.Role, "is not a known department")
	}
	return nil
}

// Password length limits. bcrypt ignores input past 72 bytes and the hashing call rejects it.
const (
	MinPasswordLength = 6
	MaxPasswordLength = 50
	maxPasswordBytes  = 72
)

// ValidatePassword checks the strength rule: 6-50 characters with at least one capital letter
// and one digit.
func (u User) ValidatePassword() error {
	return CheckPasswordStrength(u.Password)
}

// CheckPasswordStrength applies the password strength rule to a plaintext password.
func CheckPasswordStrength(password string) error {
	length := utf8.RuneCountInString(password)
	validLength := length >= MinPasswordLength && length <= MaxPasswordLength && len(password) <= maxPasswordBytes

	var hasUpper, hasDigit bool
	for _, r := range password {
		if unicode.IsUpper(r) {
			hasUpper = true
		}
		if unicode.IsDigit(r) {
			hasDigit = true
		}
	}
	if validLength && hasUpper && hasDigit {
		return nil
	}

	var missing []string
	if !validLength {
		missing = append(missing, fmt.Sprintf("between %d and %d characters", MinPasswordLength, MaxPasswordLength))
	}
	if !hasUpper {
		missing = append(missing, "at least one capital letter")
	}
	if !hasDigit {
		missing = append(missing, "at least one number")
	}
	return &ValidationError{
		Entity: "user",
		Field:  "password",
		Reason: fmt.Sprintf("must contain: %s", strings.Join(missing, ", and ")),
	}
}

// ValidateUsername checks that a username is 3-20 letters, digits or underscores.
func ValidateUsername(username string) error {
	if username == "" {
		return invalid("user", "username", nil, "cannot be empty")
	}
	if !usernamePattern.MatchString(username) {
		return invalid("user", "username", username, "must be 3-20 characters: letters, numbers, or underscore")
	}
	return nil
}
