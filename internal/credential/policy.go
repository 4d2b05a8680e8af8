// Package credential implements the fixed email and password rules applied to
// registration requests. Both checks are pure.
package credential

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	passwordMinLength = 6
	passwordMaxLength = 16

	lowercaseLetters = "abcdefghijklmnopqrstuvwxyz"
	uppercaseLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digits           = "0123456789"

	// Passwords never span lines.
	lineTerminators = "\r\n\u0085\u2028\u2029"

	// PasswordSymbols are the symbols a password must draw at least one from.
	PasswordSymbols = "@#$%"
)

var validate = validator.New()

// passwordRules are evaluated in order over the whole string; every rule must pass.
var passwordRules = []string{
	fmt.Sprintf("min=%d,max=%d", passwordMinLength, passwordMaxLength),
	"containsany=" + lowercaseLetters,
	"containsany=" + uppercaseLetters,
	"containsany=" + digits,
	"containsany=" + PasswordSymbols,
}

// ValidateEmail reports whether s is a syntactically valid email address.
func ValidateEmail(s string) bool {
	return validate.Var(s, "required,email") == nil
}

// ValidatePassword reports whether s is 6 to 16 characters long and contains a
// lowercase letter, an uppercase letter, a digit and one of "@#$%".
func ValidatePassword(s string) bool {
	if strings.ContainsAny(s, lineTerminators) {
		return false
	}
	for _, rule := range passwordRules {
		if validate.Var(s, rule) != nil {
			return false
		}
	}
	return true
}
