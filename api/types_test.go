package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeContactRequest(t *testing.T) {
	req := ContactRequest{
		Title:     "Dr",
		FirstName: "Ada",
		LastName:  "Lovelace",
		Emails: []ContactEmail{
			{EmailType: "WORK", EmailValue: "   "},
			{EmailType: "PERSONAL", EmailValue: "ada@example.com"},
		},
		Phones: []ContactPhone{
			{PhoneType: "HOME", PhoneValue: "+12345678901"},
			{PhoneType: "WORK", PhoneValue: ""},
		},
	}

	sanitized := SanitizeContactRequest(req)

	assert.Len(t, sanitized.Emails, 1)
	assert.Equal(t, "ada@example.com", sanitized.Emails[0].EmailValue)
	assert.Len(t, sanitized.Phones, 1)
	assert.Equal(t, "+12345678901", sanitized.Phones[0].PhoneValue)

	// Original buffer is untouched
	assert.Len(t, req.Emails, 2)
	assert.Len(t, req.Phones, 2)
}

func TestSanitizeBlankEmailAndRealPhone(t *testing.T) {
	req := ContactRequest{
		FirstName: "Grace",
		LastName:  "Hopper",
		Emails:    []ContactEmail{{EmailType: "WORK", EmailValue: ""}},
		Phones:    []ContactPhone{{PhoneType: "WORK", PhoneValue: "0801234567"}},
	}

	sanitized := SanitizeContactRequest(req)
	assert.Len(t, sanitized.Emails, 0)
	assert.Len(t, sanitized.Phones, 1)
}

func TestContactRequestFromDetail(t *testing.T) {
	detail := ContactDetail{
		ContactSummary: ContactSummary{ID: "c-1", Title: "Mr", FirstName: "John", LastName: "Doe"},
		Emails:         []ContactEmail{{EmailType: "WORK", EmailValue: "john@work.com"}},
		Phones:         []ContactPhone{{PhoneType: "HOME", PhoneValue: "1234567890"}},
	}

	req := ContactRequestFromDetail(detail)
	assert.Equal(t, "Mr", req.Title)
	assert.Equal(t, "John", req.FirstName)
	assert.Equal(t, "Doe", req.LastName)
	assert.Equal(t, detail.Emails, req.Emails)
	assert.Equal(t, detail.Phones, req.Phones)

	// Buffer entries are copies, not aliases
	req.Emails[0].EmailValue = "edited@work.com"
	assert.Equal(t, "john@work.com", detail.Emails[0].EmailValue)
}

func TestDisplayName(t *testing.T) {
	cases := []struct {
		summary  ContactSummary
		expected string
	}{
		{ContactSummary{Title: "Dr", FirstName: "Ada", LastName: "Lovelace"}, "Dr Ada Lovelace"},
		{ContactSummary{FirstName: "Ada", LastName: "Lovelace"}, "Ada Lovelace"},
		{ContactSummary{FirstName: "Ada"}, "Ada"},
		{ContactSummary{}, "—"},
	}

	for _, c := range cases {
		assert.Equal(t, c.expected, DisplayName(c.summary))
	}
}
