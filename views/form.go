package views

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/abbasza/contactctl/api"
	"github.com/abbasza/contactctl/colors"
	"github.com/abbasza/contactctl/validation"
)

// Prompter runs line-based form prompts over any reader/writer pair,
// so form flows are scriptable in tests.
type Prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewScanner(in), out: out}
}

// newScannerPrompter shares an existing scanner, so a prompter & its
// surrounding REPL never fight over buffered input.
func newScannerPrompter(in *bufio.Scanner, out io.Writer) *Prompter {
	return &Prompter{in: in, out: out}
}

// Ask prompts for a field. An empty answer keeps the current value.
func (p *Prompter) Ask(label, current string) string {
	if current != "" {
		fmt.Fprintf(p.out, "%v [%v]: ", label, current)
	} else {
		fmt.Fprintf(p.out, "%v: ", label)
	}

	answer := strings.TrimSpace(p.readLine())
	if answer == "" {
		return current
	}

	return answer
}

// AskRequired re-prompts until a non-empty answer is given, keeping the
// current value when one exists.
func (p *Prompter) AskRequired(label, current string) string {
	for {
		answer := p.Ask(label, current)
		if strings.TrimSpace(answer) != "" {
			return answer
		}
		fmt.Fprintf(p.out, "%v\n", colors.Yellow(label+" is required"))
	}
}

// Confirm asks a yes/no question, defaulting to no.
func (p *Prompter) Confirm(label string) bool {
	fmt.Fprintf(p.out, "%v (y/N): ", label)
	answer := strings.ToLower(strings.TrimSpace(p.readLine()))
	return answer == "y" || answer == "yes"
}

func (p *Prompter) readLine() string {
	if !p.in.Scan() {
		return ""
	}
	return p.in.Text()
}

// ---------------------------------------------------------------------------------//
// Contact form
// --------------------------------------------------------------------------------//

// FillContactRequest walks the user through the contact edit buffer:
// title/name fields, then each existing email/phone row(enter keeps,
// "-" removes), then new rows until a blank value. The caller sanitizes
// the result before submission.
func (p *Prompter) FillContactRequest(buffer api.ContactRequest) api.ContactRequest {
	buffer.Title = p.Ask("Title", buffer.Title)
	buffer.FirstName = p.AskRequired("First name", buffer.FirstName)
	buffer.LastName = p.AskRequired("Last name", buffer.LastName)

	buffer.Emails = p.editEmails(buffer.Emails)
	buffer.Phones = p.editPhones(buffer.Phones)

	return buffer
}

func (p *Prompter) editEmails(existing []api.ContactEmail) []api.ContactEmail {
	edited := []api.ContactEmail{}

	for _, email := range existing {
		value := p.Ask(fmt.Sprintf("Email(%v, \"-\" removes)", email.EmailType), email.EmailValue)
		if value == "-" {
			continue
		}

		p.warnIfInvalidEmail(value)
		edited = append(edited, api.ContactEmail{EmailType: email.EmailType, EmailValue: value})
	}

	for p.Confirm("Add an email?") {
		entryType := p.askEntryType(api.EmailTypes)
		value := p.Ask("Email value", "")
		if strings.TrimSpace(value) == "" {
			break
		}

		p.warnIfInvalidEmail(value)
		edited = append(edited, api.ContactEmail{EmailType: entryType, EmailValue: value})
	}

	return edited
}

func (p *Prompter) editPhones(existing []api.ContactPhone) []api.ContactPhone {
	edited := []api.ContactPhone{}

	for _, phone := range existing {
		value := p.Ask(fmt.Sprintf("Phone(%v, \"-\" removes)", phone.PhoneType), phone.PhoneValue)
		if value == "-" {
			continue
		}

		p.warnIfInvalidPhone(value)
		edited = append(edited, api.ContactPhone{PhoneType: phone.PhoneType, PhoneValue: value})
	}

	for p.Confirm("Add a phone?") {
		entryType := p.askEntryType(api.PhoneTypes)
		value := p.Ask("Phone value", "")
		if strings.TrimSpace(value) == "" {
			break
		}

		p.warnIfInvalidPhone(value)
		edited = append(edited, api.ContactPhone{PhoneType: entryType, PhoneValue: value})
	}

	return edited
}

func (p *Prompter) askEntryType(validTypes []string) string {
	for {
		answer := strings.ToUpper(p.Ask(fmt.Sprintf("Type %v", validTypes), "PERSONAL"))
		for _, validType := range validTypes {
			if answer == validType {
				return answer
			}
		}
		fmt.Fprintf(p.out, "%v\n", colors.Yellow(fmt.Sprintf("pick one of %v", validTypes)))
	}
}

// The server is the actual enforcer - invalid values are only flagged,
// matching the form's inline highlighting.
func (p *Prompter) warnIfInvalidEmail(value string) {
	if value != "" && !validation.IsEmail(value) {
		fmt.Fprintf(p.out, "%v %v doesn't look like an email\n", colors.Yellow("Warning:"), value)
	}
}

func (p *Prompter) warnIfInvalidPhone(value string) {
	if value != "" && !validation.IsPhone(value) {
		fmt.Fprintf(p.out, "%v %v doesn't look like a phone number\n", colors.Yellow("Warning:"), value)
	}
}
