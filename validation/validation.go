package validation

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator"
)

var (
	emailRegex = regexp.MustCompile("^[a-zA-Z0-9_!#$%&'*+/=?`{|}~^.-]+@[a-zA-Z0-9.-]+$")
	phoneRegex = regexp.MustCompile(`^((\+\d{1,3})|0)?\(?\d{3}\)?\d{3}\d{4}$`)

	upperRegex   = regexp.MustCompile(`[A-Z]`)
	lowerRegex   = regexp.MustCompile(`[a-z]`)
	digitRegex   = regexp.MustCompile(`[0-9]`)
	specialRegex = regexp.MustCompile(`[!@#$%^&*()_+\-=\[\]{};':"\\|,.<>\/?]`)
)

func IsEmail(value string) bool {
	return emailRegex.MatchString(strings.TrimSpace(value))
}

func IsPhone(value string) bool {
	return phoneRegex.MatchString(strings.TrimSpace(value))
}

// IsEmailOrPhone reports whether value can be used as a username
// i.e. it's either a valid email or a valid phone number.
func IsEmailOrPhone(value string) bool {
	trimmed := strings.TrimSpace(value)
	return len(trimmed) > 0 && (IsEmail(trimmed) || IsPhone(trimmed))
}

// UsernameType returns "email" or "phone" for a username that already
// passed IsEmailOrPhone. Email wins when both patterns match.
func UsernameType(value string) string {
	if IsEmail(value) {
		return "email"
	}
	return "phone"
}

// IsStrongPassword requires at least 8 characters with at least one
// uppercase letter, one lowercase letter, one digit and one special character.
func IsStrongPassword(value string) bool {
	if len(value) < 8 {
		return false
	}

	return upperRegex.MatchString(value) &&
		lowerRegex.MatchString(value) &&
		digitRegex.MatchString(value) &&
		specialRegex.MatchString(value)
}

// RegisterValidators binds the username & password rules to a validator
// instance, so request structs can be checked before hitting the network.
func RegisterValidators(validate *validator.Validate) error {
	err := validate.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return IsEmailOrPhone(fl.Field().String())
	})
	if err != nil {
		return err
	}

	err = validate.RegisterValidation("strong_password", func(fl validator.FieldLevel) bool {
		return IsStrongPassword(fl.Field().String())
	})
	if err != nil {
		return err
	}

	return nil
}
