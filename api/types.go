package api

import "strings"

// Tags accepted by the backend for contact email/phone entries.
var (
	EmailTypes = []string{"WORK", "PERSONAL", "OTHER"}
	PhoneTypes = []string{"WORK", "HOME", "PERSONAL", "OTHER"}
)

type ContactEmail struct {
	EmailType  string `json:"emailtype"`
	EmailValue string `json:"emailvalue"`
}

type ContactPhone struct {
	PhoneType  string `json:"phonetype"`
	PhoneValue string `json:"phonevalue"`
}

// ContactSummary is the contact shape returned in list/search results.
type ContactSummary struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
}

// ContactDetail adds the email/phone sub-entities to the summary fields.
type ContactDetail struct {
	ContactSummary
	Emails []ContactEmail `json:"emails"`
	Phones []ContactPhone `json:"phones"`
}

// ContactRequest is the create/update body. It doubles as the client-side
// edit buffer while a contact form is open.
type ContactRequest struct {
	Title     string         `json:"title"`
	FirstName string         `json:"firstname" validate:"required"`
	LastName  string         `json:"lastname" validate:"required"`
	Emails    []ContactEmail `json:"emails"`
	Phones    []ContactPhone `json:"phones"`
}

// Page is the paginated response envelope. Only Content, TotalPages
// & TotalElements are consumed by the client.
type Page struct {
	Content          []ContactSummary `json:"content"`
	TotalPages       int              `json:"totalPages"`
	TotalElements    int              `json:"totalElements"`
	Last             bool             `json:"last"`
	Size             int              `json:"size"`
	Number           int              `json:"number"`
	First            bool             `json:"first"`
	NumberOfElements int              `json:"numberOfElements"`
	Empty            bool             `json:"empty"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	UserID string `json:"userId"`
	JWT    string `json:"jwt"`
}

type SignupRequest struct {
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	FirstName string `json:"firstname" validate:"required"`
	LastName  string `json:"lastname" validate:"required"`
	Password  string `json:"password" validate:"strong_password"`
}

type SignupResponse struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
}

type UserResponse struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
}

type UserRequest struct {
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	FirstName string `json:"firstname" validate:"required"`
	LastName  string `json:"lastname" validate:"required"`
}

type ChangePassRequest struct {
	OldPassword string `json:"oldpassword"`
	NewPassword string `json:"newpassword"`
}

// EmptyContactRequest returns a fresh edit buffer for the "add" flow.
func EmptyContactRequest() ContactRequest {
	return ContactRequest{
		Emails: []ContactEmail{},
		Phones: []ContactPhone{},
	}
}

// ContactRequestFromDetail hydrates an edit buffer for the "update" flow.
// Entries are copied, so form edits never touch the fetched detail.
func ContactRequestFromDetail(detail ContactDetail) ContactRequest {
	req := ContactRequest{
		Title:     detail.Title,
		FirstName: detail.FirstName,
		LastName:  detail.LastName,
		Emails:    make([]ContactEmail, len(detail.Emails)),
		Phones:    make([]ContactPhone, len(detail.Phones)),
	}
	copy(req.Emails, detail.Emails)
	copy(req.Phones, detail.Phones)

	return req
}

// SanitizeContactRequest drops email/phone entries whose value is blank
// after trimming, so they are never sent to the server.
func SanitizeContactRequest(req ContactRequest) ContactRequest {
	sanitized := req
	sanitized.Emails = []ContactEmail{}
	sanitized.Phones = []ContactPhone{}

	for _, email := range req.Emails {
		if strings.TrimSpace(email.EmailValue) != "" {
			sanitized.Emails = append(sanitized.Emails, email)
		}
	}

	for _, phone := range req.Phones {
		if strings.TrimSpace(phone.PhoneValue) != "" {
			sanitized.Phones = append(sanitized.Phones, phone)
		}
	}

	return sanitized
}

// DisplayName renders "Title FirstName LastName", or "—" when all parts
// are blank.
func DisplayName(c ContactSummary) string {
	parts := []string{}
	for _, part := range []string{c.Title, c.FirstName, c.LastName} {
		if strings.TrimSpace(part) != "" {
			parts = append(parts, strings.TrimSpace(part))
		}
	}

	if len(parts) == 0 {
		return "—"
	}

	return strings.Join(parts, " ")
}
