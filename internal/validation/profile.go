// Package validation checks user-supplied records before the store accepts them.
package validation

import (
	"fmt"
	"regexp"
	"strings"

	"startupconnect/internal/models"
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const maxTextLength = 5000

// ValidateEmail checks the address has a plausible user@domain.tld shape.
func ValidateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("email must be a valid address")
	}
	return nil
}

// ValidateRegistration checks the fields every new profile needs.
// Passwords are stored as given, so only presence is checked.
func ValidateRegistration(u models.User) error {
	if err := ValidateEmail(u.Email); err != nil {
		return err
	}
	if u.Password == "" {
		return fmt.Errorf("password is required")
	}
	if strings.TrimSpace(u.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if !u.Role.Valid() {
		return fmt.Errorf("role must be %q or %q", models.RoleFounder, models.RoleVC)
	}
	return nil
}

// ValidatePatch checks the fields of a profile update that are set.
func ValidatePatch(p models.UserPatch) error {
	if p.Email != nil {
		if err := ValidateEmail(*p.Email); err != nil {
			return err
		}
	}
	if p.Password != nil && *p.Password == "" {
		return fmt.Errorf("password cannot be empty")
	}
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return fmt.Errorf("name cannot be empty")
	}
	if p.Role != nil && !p.Role.Valid() {
		return fmt.Errorf("role must be %q or %q", models.RoleFounder, models.RoleVC)
	}
	return nil
}

// ValidateText checks a comment or message body.
func ValidateText(field, text string) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("%s cannot be empty", field)
	}
	if len(text) > maxTextLength {
		return fmt.Errorf("%s must be at most %d characters", field, maxTextLength)
	}
	return nil
}
