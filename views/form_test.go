package views

import (
	"bytes"
	"strings"
	"testing"

	"github.com/abbasza/contactctl/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFillContactRequestFromScratch(t *testing.T) {
	script := strings.Join([]string{
		"Dr",              // title
		"Ada",             // first name
		"Lovelace",        // last name
		"y",               // add an email?
		"work",            // type (case-insensitive)
		"ada@example.com", // value
		"n",               // add another email?
		"y",               // add a phone?
		"",                // type defaults to PERSONAL
		"+12345678901",    // value
		"n",               // add another phone?
	}, "\n") + "\n"

	out := new(bytes.Buffer)
	p := NewPrompter(strings.NewReader(script), out)

	buffer := p.FillContactRequest(api.EmptyContactRequest())

	assert.Equal(t, "Dr", buffer.Title)
	assert.Equal(t, "Ada", buffer.FirstName)
	assert.Equal(t, "Lovelace", buffer.LastName)

	require.Len(t, buffer.Emails, 1)
	assert.Equal(t, api.ContactEmail{EmailType: "WORK", EmailValue: "ada@example.com"}, buffer.Emails[0])

	require.Len(t, buffer.Phones, 1)
	assert.Equal(t, api.ContactPhone{PhoneType: "PERSONAL", PhoneValue: "+12345678901"}, buffer.Phones[0])
}

func TestFillContactRequestKeepsAndRemovesRows(t *testing.T) {
	existing := api.ContactRequest{
		Title:     "Mr",
		FirstName: "John",
		LastName:  "Doe",
		Emails: []api.ContactEmail{
			{EmailType: "WORK", EmailValue: "john@work.com"},
			{EmailType: "PERSONAL", EmailValue: "john@home.com"},
		},
		Phones: []api.ContactPhone{
			{PhoneType: "HOME", PhoneValue: "1234567890"},
		},
	}

	script := strings.Join([]string{
		"",  // keep title
		"",  // keep first name
		"",  // keep last name
		"",  // keep work email
		"-", // remove personal email
		"n", // no new emails
		"",  // keep home phone
		"n", // no new phones
	}, "\n") + "\n"

	out := new(bytes.Buffer)
	p := NewPrompter(strings.NewReader(script), out)

	buffer := p.FillContactRequest(existing)

	assert.Equal(t, "Mr", buffer.Title)
	require.Len(t, buffer.Emails, 1)
	assert.Equal(t, "john@work.com", buffer.Emails[0].EmailValue)
	require.Len(t, buffer.Phones, 1)
}

func TestAskRequiredRepromptsOnBlank(t *testing.T) {
	out := new(bytes.Buffer)
	p := NewPrompter(strings.NewReader("\n\nAda\n"), out)

	assert.Equal(t, "Ada", p.AskRequired("First name", ""))
	assert.Contains(t, out.String(), "First name is required")
}

func TestConfirmDefaultsToNo(t *testing.T) {
	out := new(bytes.Buffer)
	p := NewPrompter(strings.NewReader("\nyes\nY\nnope\n"), out)

	assert.False(t, p.Confirm("Delete?"))
	assert.True(t, p.Confirm("Delete?"))
	assert.True(t, p.Confirm("Delete?"))
	assert.False(t, p.Confirm("Delete?"))
}

func TestInvalidValueOnlyWarns(t *testing.T) {
	script := strings.Join([]string{
		"",             // title
		"Jane",         // first
		"Roe",          // last
		"y",            // add email
		"",             // type
		"not-an-email", // invalid value is accepted, server enforces
		"n",
		"n", // no phones
	}, "\n") + "\n"

	out := new(bytes.Buffer)
	p := NewPrompter(strings.NewReader(script), out)

	buffer := p.FillContactRequest(api.EmptyContactRequest())

	require.Len(t, buffer.Emails, 1)
	assert.Equal(t, "not-an-email", buffer.Emails[0].EmailValue)
	assert.Contains(t, out.String(), "doesn't look like an email")
}
