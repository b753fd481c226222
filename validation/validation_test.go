package validation

import (
	"testing"

	"github.com/go-playground/validator"
	"github.com/stretchr/testify/assert"
)

func TestIsEmail(t *testing.T) {
	cases := []struct {
		value    string
		expected bool
	}{
		{"user@example.com", true},
		{"  user@example.com  ", true},
		{"first.last+tag@sub.domain.io", true},
		{"user@localhost", true},
		{"not-an-email", false},
		{"@example.com", false},
		{"user@", false},
		{"", false},
	}

	for _, c := range cases {
		assert.Equal(t, c.expected, IsEmail(c.value), "IsEmail(%q)", c.value)
	}
}

func TestIsPhone(t *testing.T) {
	cases := []struct {
		value    string
		expected bool
	}{
		{"+12345678901", true},
		{"+2348012345678", true},
		{"08012345678", true},
		{"1234567890", true},
		{"(123)4567890", true},
		{"123", false},
		{"+1234", false},
		{"12345678901234", false},
		{"abcdefghij", false},
		{"", false},
	}

	for _, c := range cases {
		assert.Equal(t, c.expected, IsPhone(c.value), "IsPhone(%q)", c.value)
	}
}

func TestIsEmailOrPhone(t *testing.T) {
	assert.True(t, IsEmailOrPhone("user@example.com"))
	assert.True(t, IsEmailOrPhone("+12345678901"))
	assert.False(t, IsEmailOrPhone(""))
	assert.False(t, IsEmailOrPhone("   "))
	assert.False(t, IsEmailOrPhone("nope"))
}

func TestUsernameType(t *testing.T) {
	assert.Equal(t, "email", UsernameType("user@example.com"))
	assert.Equal(t, "phone", UsernameType("+12345678901"))

	// Email classification is checked first, so anything that isn't
	// an email falls through to phone.
	assert.Equal(t, "phone", UsernameType("1234567890"))
}

func TestIsStrongPassword(t *testing.T) {
	cases := []struct {
		value    string
		expected bool
	}{
		{"Abcdef1!", true},
		{"Sup3r$ecret", true},
		{"abcdefgh", false},  // no uppercase/digit/special
		{"ABCDEF12", false},  // no lowercase/special
		{"Ab1!", false},      // too short
		{"Abcdefg!", false},  // no digit
		{"ABCDEFG1!", false}, // no lowercase
		{"", false},
	}

	for _, c := range cases {
		assert.Equal(t, c.expected, IsStrongPassword(c.value), "IsStrongPassword(%q)", c.value)
	}
}

func TestRegisterValidators(t *testing.T) {
	validate := validator.New()
	assert.Nil(t, RegisterValidators(validate))

	assert.Nil(t, validate.Var("user@example.com", "username"))
	assert.NotNil(t, validate.Var("nope", "username"))

	assert.Nil(t, validate.Var("Abcdef1!", "strong_password"))
	assert.NotNil(t, validate.Var("weak", "strong_password"))
}
