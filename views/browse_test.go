package views

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/abbasza/contactctl/api"
	"github.com/abbasza/contactctl/apitest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBrowseFixture(t *testing.T, contactCount int) (*apitest.Server, *api.Client, string) {
	server, err := apitest.NewServer()
	require.Nil(t, err)
	t.Cleanup(server.Close)

	userID, token, err := server.SeedUser("owner@example.com", "", "Olive", "Owner", "Abcdef1!")
	require.Nil(t, err)

	for i := 0; i < contactCount; i++ {
		server.SeedContact(userID, api.ContactDetail{
			ContactSummary: api.ContactSummary{
				FirstName: "Contact",
				LastName:  fmt.Sprintf("%c", 'A'+i),
			},
		})
	}

	client := api.NewClient(server.URL(), func() string { return token })
	return server, client, userID
}

func runSession(t *testing.T, client *api.Client, script string) string {
	out := new(bytes.Buffer)
	session := NewBrowseSession(client, strings.NewReader(script), out, 10)
	session.Debounce = 10 * time.Millisecond

	require.Nil(t, session.Run())
	return out.String()
}

func TestBrowseShowsFirstPageByDefault(t *testing.T) {
	_, client, _ := newBrowseFixture(t, 25)

	out := runSession(t, client, "q\n")

	assert.Contains(t, out, "Page 1 of 3 (25 total)")
	assert.Contains(t, out, "Contact A")
	assert.NotContains(t, out, "Contact Z")
}

func TestBrowsePaginationBoundaries(t *testing.T) {
	_, client, _ := newBrowseFixture(t, 25)

	// Previous refused on page 0; next walks to the last page & stops
	out := runSession(t, client, "p\nn\nn\nn\nq\n")

	assert.Contains(t, out, "already on the first page")
	assert.Contains(t, out, "Page 2 of 3 (25 total)")
	assert.Contains(t, out, "Page 3 of 3 (25 total)")
	assert.Contains(t, out, "already on the last page")
}

func TestBrowseEmptyState(t *testing.T) {
	_, client, _ := newBrowseFixture(t, 0)

	out := runSession(t, client, "q\n")
	assert.Contains(t, out, EMPTY_LIST_MSG)
}

func TestBrowseDetailFlow(t *testing.T) {
	server, client, userID := newBrowseFixture(t, 0)
	server.SeedContact(userID, api.ContactDetail{
		ContactSummary: api.ContactSummary{Title: "Dr", FirstName: "Ada", LastName: "Lovelace"},
		Emails:         []api.ContactEmail{{EmailType: "WORK", EmailValue: "ada@work.com"}},
	})

	out := runSession(t, client, "o 1\nx\nq\n")

	assert.Contains(t, out, "Dr Ada Lovelace")
	assert.Contains(t, out, "ada@work.com")
}

func TestBrowseAddFlow(t *testing.T) {
	_, client, _ := newBrowseFixture(t, 0)

	script := strings.Join([]string{
		"a",        // open the add flow
		"",         // title
		"Grace",    // first name
		"Hopper",   // last name
		"n",        // no emails
		"y",        // add a phone
		"home",     // type
		"",         // blank value is dropped before submit
		"q",
	}, "\n") + "\n"

	out := runSession(t, client, script)

	assert.Contains(t, out, "Contact created.")
	assert.Contains(t, out, "Grace Hopper")

	// The blank phone row was stripped client-side
	summaries, err := client.SearchContacts("hopper")
	require.Nil(t, err)
	require.Len(t, summaries, 1)

	detail, err := client.GetContact(summaries[0].ID)
	require.Nil(t, err)
	assert.Len(t, detail.Phones, 0)
}

func TestBrowseFailedAddKeepsBufferAndShowsServerError(t *testing.T) {
	server, client, _ := newBrowseFixture(t, 0)
	server.FailNextCreate("a contact with this name already exists")

	script := strings.Join([]string{
		"a",
		"",       // title
		"Grace",  // first name
		"Hopper", // last name
		"n",      // no emails
		"n",      // no phones
		"y",      // edit and retry after the failure
		"",       // title - buffer values offered as defaults
		"",       // keep first name
		"",       // keep last name
		"n",      // no emails
		"n",      // no phones
		"q",
	}, "\n") + "\n"

	out := runSession(t, client, script)

	assert.Contains(t, out, "a contact with this name already exists")
	// The buffer survived: its values were re-offered as defaults
	assert.Contains(t, out, "[Grace]")
	assert.Contains(t, out, "Contact created.")
}

func TestBrowseEditReflectsInOpenDetail(t *testing.T) {
	server, client, userID := newBrowseFixture(t, 0)
	server.SeedContact(userID, api.ContactDetail{
		ContactSummary: api.ContactSummary{FirstName: "Ada", LastName: "Lovelace"},
	})

	script := strings.Join([]string{
		"o 1",       // open detail
		"e 1",       // edit the same contact
		"Dr",        // title
		"",          // keep first name
		"",          // keep last name
		"n",         // no emails
		"n",         // no phones
		"q",
	}, "\n") + "\n"

	out := runSession(t, client, script)

	assert.Contains(t, out, "Contact updated.")
	// The open detail was re-fetched with the new title
	assert.Contains(t, out, "Dr Ada Lovelace")
}

func TestBrowseDeleteClosesMatchingDetail(t *testing.T) {
	server, client, userID := newBrowseFixture(t, 0)
	server.SeedContact(userID, api.ContactDetail{
		ContactSummary: api.ContactSummary{FirstName: "Ada", LastName: "Lovelace"},
	})

	script := strings.Join([]string{
		"o 1",
		"d 1",
		"y", // confirm
		"q",
	}, "\n") + "\n"

	out := runSession(t, client, script)

	assert.Contains(t, out, "Contact deleted.")
	assert.Contains(t, out, EMPTY_LIST_MSG)
}

func TestBrowseDeleteDeclined(t *testing.T) {
	server, client, userID := newBrowseFixture(t, 0)
	server.SeedContact(userID, api.ContactDetail{
		ContactSummary: api.ContactSummary{FirstName: "Ada", LastName: "Lovelace"},
	})

	out := runSession(t, client, "d 1\n\nq\n")

	assert.NotContains(t, out, "Contact deleted.")

	summaries, err := client.SearchContacts("ada")
	require.Nil(t, err)
	assert.Len(t, summaries, 1)
}

func TestBrowseSearchCommand(t *testing.T) {
	_, client, _ := newBrowseFixture(t, 25)

	// Feed the REPL through a pipe so the session stays alive while the
	// debounced search fires on its own goroutine.
	in, inWriter := io.Pipe()
	out := new(bytes.Buffer)

	session := NewBrowseSession(client, in, out, 10)
	session.Debounce = 10 * time.Millisecond

	done := make(chan error, 1)
	go func() { done <- session.Run() }()

	// "Contact Y" lives on page 3, so it can only show up via search
	fmt.Fprintln(inWriter, "/Contact Y")
	time.Sleep(200 * time.Millisecond)
	fmt.Fprintln(inWriter, "q")
	inWriter.Close()

	require.Nil(t, <-done)
	assert.Contains(t, out.String(), "Contact Y")
}

func TestApplySearchSwitchesSourcesAndResetsPage(t *testing.T) {
	_, client, _ := newBrowseFixture(t, 25)

	out := new(bytes.Buffer)
	session := NewBrowseSession(client, strings.NewReader(""), out, 10)
	require.Nil(t, session.fetchPage(2))
	assert.Equal(t, 2, session.page)

	// A search replaces the page view
	session.applySearch("ada", []api.ContactSummary{{FirstName: "Ada"}}, nil)
	assert.Equal(t, "ada", session.query)
	assert.Len(t, session.summaries, 1)

	// Clearing the query goes back to the paginated source at page 0
	session.applySearch("", nil, nil)
	assert.Equal(t, "", session.query)
	assert.Equal(t, 0, session.page)
	assert.Contains(t, out.String(), "Page 1 of 3 (25 total)")
}

func TestApplySearchEmptyResults(t *testing.T) {
	_, client, _ := newBrowseFixture(t, 0)

	out := new(bytes.Buffer)
	session := NewBrowseSession(client, strings.NewReader(""), out, 10)
	require.Nil(t, session.fetchPage(0))

	session.applySearch("nobody", []api.ContactSummary{}, nil)
	assert.Contains(t, out.String(), EMPTY_SEARCH_MSG)
}
