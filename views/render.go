package views

import (
	"fmt"
	"io"

	"github.com/abbasza/contactctl/api"
	"github.com/abbasza/contactctl/colors"
)

const (
	EMPTY_LIST_MSG   = "No contacts yet. Add one to get started."
	EMPTY_SEARCH_MSG = "No contacts match your search."
)

func RenderSummaries(out io.Writer, summaries []api.ContactSummary) {
	for i, summary := range summaries {
		fmt.Fprintf(out, "%3d. %v\n", i+1, api.DisplayName(summary))
	}
}

// RenderPageFooter prints the 1-based pagination line, e.g.
// "Page 1 of 3 (25 total)".
func RenderPageFooter(out io.Writer, page, totalPages, totalElements int) {
	fmt.Fprintf(out, "%v\n", colors.Muted(
		fmt.Sprintf("Page %v of %v (%v total)", page+1, totalPages, totalElements)))
}

func RenderDetail(out io.Writer, detail *api.ContactDetail) {
	fmt.Fprintf(out, "%v\n", colors.Heading(api.DisplayName(detail.ContactSummary)))
	fmt.Fprintf(out, "%v %v\n", colors.Muted("id:"), detail.ID)

	for _, email := range detail.Emails {
		fmt.Fprintf(out, "  %v %v\n", colors.Accent(fmt.Sprintf("[%v]", email.EmailType)), email.EmailValue)
	}
	for _, phone := range detail.Phones {
		fmt.Fprintf(out, "  %v %v\n", colors.Accent(fmt.Sprintf("[%v]", phone.PhoneType)), phone.PhoneValue)
	}

	if len(detail.Emails) == 0 && len(detail.Phones) == 0 {
		fmt.Fprintf(out, "  %v\n", colors.Muted("no emails or phones"))
	}
}

func RenderUser(out io.Writer, user *api.UserResponse) {
	fmt.Fprintf(out, "%v\n", colors.Heading(fmt.Sprintf("%v %v", user.FirstName, user.LastName)))
	fmt.Fprintf(out, "%v %v\n", colors.Muted("id:"), user.ID)
	fmt.Fprintf(out, "%v %v\n", colors.Muted("username:"), user.Username)
}

func RenderBanner(out io.Writer, banner *Banner) {
	message, kind := banner.Message()
	if message == "" {
		return
	}

	if kind == BannerError {
		fmt.Fprintf(out, "%v %v\n", colors.Red("Error:"), message)
		return
	}
	fmt.Fprintf(out, "%v\n", colors.Green(message))
}
