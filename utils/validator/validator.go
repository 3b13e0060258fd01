package validator

import (
	"strings"

	playground "github.com/go-playground/validator/v10"
)

var validate = playground.New()

// IsEmail Verify that the value is a syntactically valid email address.
func IsEmail(email string) bool {
	if email == "" {
		return false
	}
	return validate.Var(email, "email") == nil
}

// IsEmpty Verify that the value is empty after trimming whitespace.
func IsEmpty(value string) bool {
	return strings.TrimSpace(value) == ""
}

// IsMinLength Verify that the value has at least min characters.
func IsMinLength(value string, min int) bool {
	return len([]rune(value)) >= min
}
