package validation

import (
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/multierr"
)

// Field length bounds carried over from the platform's submission rules.
const (
	NameMinLen     = 20
	NameMaxLen     = 60
	AddressMinLen  = 10
	AddressMaxLen  = 400
	PasswordMinLen = 8
	PasswordMaxLen = 16
)

// SpecialChars is the fixed set a password must draw at least one character from.
const SpecialChars = `!@#$%^&*(),.?":{}|<>`

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Name checks the display-name length bounds.
func Name(value string) error {
	if len(value) < NameMinLen {
		return fmt.Errorf("name must be at least %d characters long", NameMinLen)
	}
	if len(value) > NameMaxLen {
		return fmt.Errorf("name must not exceed %d characters", NameMaxLen)
	}
	return nil
}

// Address checks the postal-address length bounds.
func Address(value string) error {
	if len(value) > AddressMaxLen {
		return fmt.Errorf("address must not exceed %d characters", AddressMaxLen)
	}
	if len(value) < AddressMinLen {
		return fmt.Errorf("address must be at least %d characters long", AddressMinLen)
	}
	return nil
}

// Password enforces the length, uppercase, and special-character rules.
func Password(value string) error {
	if len(value) < PasswordMinLen || len(value) > PasswordMaxLen {
		return fmt.Errorf("password must be between %d-%d characters", PasswordMinLen, PasswordMaxLen)
	}
	hasUpper := false
	for _, r := range value {
		if r >= 'A' && r <= 'Z' {
			hasUpper = true
			break
		}
	}
	if !hasUpper {
		return fmt.Errorf("password must include at least one uppercase letter")
	}
	if !strings.ContainsAny(value, SpecialChars) {
		return fmt.Errorf("password must include at least one special character")
	}
	return nil
}

// Email checks the address against the submission pattern.
func Email(value string) error {
	if !emailPattern.MatchString(value) {
		return fmt.Errorf("please enter a valid email address")
	}
	return nil
}

// ProfileInput bundles the fields a registration or admin user-create submits.
type ProfileInput struct {
	Name     string
	Email    string
	Address  string
	Password string
}

// Profile aggregates every failing field so callers can report all of them at once.
func Profile(in ProfileInput) error {
	var err error
	err = multierr.Append(err, field("name", Name(in.Name)))
	err = multierr.Append(err, field("email", Email(in.Email)))
	err = multierr.Append(err, field("address", Address(in.Address)))
	err = multierr.Append(err, field("password", Password(in.Password)))
	return err
}

// FieldErrors flattens a Profile error into a per-field message map.
func FieldErrors(err error) map[string]string {
	if err == nil {
		return nil
	}
	out := map[string]string{}
	for _, e := range multierr.Errors(err) {
		var fe fieldError
		if ok := asFieldError(e, &fe); ok {
			out[fe.name] = fe.err.Error()
			continue
		}
		out["_"] = e.Error()
	}
	return out
}

type fieldError struct {
	name string
	err  error
}

func (f fieldError) Error() string {
	return f.name + ": " + f.err.Error()
}

func (f fieldError) Unwrap() error {
	return f.err
}

func field(name string, err error) error {
	if err == nil {
		return nil
	}
	return fieldError{name: name, err: err}
}

func asFieldError(err error, target *fieldError) bool {
	fe, ok := err.(fieldError)
	if !ok {
		return false
	}
	*target = fe
	return true
}
