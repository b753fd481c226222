package views

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/abbasza/contactctl/api"
	"github.com/abbasza/contactctl/colors"
)

// sessionMode is the tagged union of view modes. At most one modal flow
// is active at a time - two open modals are unrepresentable.
type sessionMode int

const (
	modeList sessionMode = iota
	modeDetail
	modeAdding
	modeEditing
	modeConfirmDelete
)

// BrowseSession is the interactive contacts view: a paginated list,
// search-as-you-type with debouncing, and detail/add/edit/delete flows.
type BrowseSession struct {
	client   *api.Client
	out      io.Writer
	pageSize int

	// Debounce can be shortened in tests before calling Run.
	Debounce time.Duration

	// outMu serializes writes to out. The debounce timer delivers
	// search outcomes on its own goroutine, the REPL prints prompts on
	// another, and the writer underneath is not assumed thread-safe.
	outMu sync.Mutex

	mu            sync.Mutex
	mode          sessionMode
	detail        *api.ContactDetail
	query         string
	page          int
	totalPages    int
	totalElements int
	summaries     []api.ContactSummary

	banner   *Banner
	searcher *Searcher
	prompter *Prompter
	scanner  *bufio.Scanner
}

func NewBrowseSession(client *api.Client, in io.Reader, out io.Writer, pageSize int) *BrowseSession {
	if pageSize <= 0 {
		pageSize = 10
	}

	scanner := bufio.NewScanner(in)

	s := &BrowseSession{
		client:   client,
		out:      out,
		pageSize: pageSize,
		Debounce: SEARCH_DEBOUNCE,
		banner:   NewBanner(),
		scanner:  scanner,
		prompter: newScannerPrompter(scanner, out),
	}

	return s
}

// Run drives the session until the input stream ends or the user quits.
func (s *BrowseSession) Run() error {
	s.searcher = NewSearcher(s.Debounce, s.client.SearchContacts, s.applySearch)

	if err := s.fetchPage(0); err != nil {
		return err
	}
	s.renderList()
	fmt.Fprintf(s.out, "%v\n", colors.Muted(`Type "h" for help.`))

	for {
		s.outMu.Lock()
		fmt.Fprint(s.out, "> ")
		s.outMu.Unlock()

		if !s.scanner.Scan() {
			return s.scanner.Err()
		}

		line := strings.TrimSpace(s.scanner.Text())
		if line == "q" || line == "quit" || line == "exit" {
			return nil
		}

		s.outMu.Lock()
		s.dispatch(line)
		RenderBanner(s.out, s.banner)
		s.outMu.Unlock()
	}
}

func (s *BrowseSession) dispatch(line string) {
	switch {
	case line == "" || line == "h" || line == "help":
		s.printHelp()
	case strings.HasPrefix(line, "/"):
		s.searcher.Input(strings.TrimPrefix(line, "/"))
	case line == "r":
		s.refresh()
		s.renderList()
	case line == "n":
		s.nextPage()
	case line == "p":
		s.prevPage()
	case line == "a":
		s.addFlow()
	case line == "x":
		s.closeDetail()
	case strings.HasPrefix(line, "o "):
		s.openDetail(strings.TrimSpace(strings.TrimPrefix(line, "o ")))
	case strings.HasPrefix(line, "e "):
		s.editFlow(strings.TrimSpace(strings.TrimPrefix(line, "e ")))
	case strings.HasPrefix(line, "d "):
		s.deleteFlow(strings.TrimSpace(strings.TrimPrefix(line, "d ")))
	default:
		fmt.Fprintf(s.out, "%v\n", colors.Yellow(fmt.Sprintf("unknown command %q, type \"h\" for help", line)))
	}
}

func (s *BrowseSession) printHelp() {
	fmt.Fprint(s.out, `  /TEXT   search as you type("/" alone clears)
  n, p    next/previous page
  o N     open contact N
  x       close the open contact
  a       add a contact
  e N     edit contact N
  d N     delete contact N
  r       refresh
  q       quit
`)
}

// ---------------------------------------------------------------------------------//
// Data sources
// --------------------------------------------------------------------------------//

func (s *BrowseSession) fetchPage(page int) error {
	result, err := s.client.ContactPage(page, s.pageSize)
	if err != nil {
		s.banner.Error(err.Error())
		return err
	}

	s.mu.Lock()
	s.query = ""
	s.page = page
	s.totalPages = result.TotalPages
	s.totalElements = result.TotalElements
	s.summaries = result.Content
	s.mu.Unlock()

	return nil
}

func (s *BrowseSession) fetchSearch(query string) error {
	results, err := s.client.SearchContacts(query)
	if err != nil {
		s.banner.Error(err.Error())
		return err
	}

	s.mu.Lock()
	s.query = query
	s.summaries = results
	s.mu.Unlock()

	return nil
}

// applySearch receives debounced search outcomes. Superseded responses
// never reach this point - the searcher drops them.
func (s *BrowseSession) applySearch(query string, results []api.ContactSummary, err error) {
	s.outMu.Lock()
	defer s.outMu.Unlock()

	if err != nil {
		s.banner.Error(err.Error())
		RenderBanner(s.out, s.banner)
		return
	}

	if query == "" {
		// Back to the paginated list, reset to the first page
		if s.fetchPage(0) == nil {
			fmt.Fprintln(s.out)
			s.renderList()
		}
		return
	}

	s.mu.Lock()
	s.query = query
	s.summaries = results
	s.mu.Unlock()

	fmt.Fprintln(s.out)
	s.renderList()
}

// refresh re-fetches whichever source is active.
func (s *BrowseSession) refresh() {
	s.mu.Lock()
	query, page := s.query, s.page
	s.mu.Unlock()

	if query != "" {
		s.fetchSearch(query)
		return
	}
	s.fetchPage(page)
}

// ---------------------------------------------------------------------------------//
// Pagination
// --------------------------------------------------------------------------------//

func (s *BrowseSession) nextPage() {
	s.mu.Lock()
	query, page, totalPages := s.query, s.page, s.totalPages
	s.mu.Unlock()

	if query != "" {
		fmt.Fprintf(s.out, "%v\n", colors.Muted("search results are not paginated"))
		return
	}

	if totalPages <= 1 || page >= totalPages-1 {
		fmt.Fprintf(s.out, "%v\n", colors.Muted("already on the last page"))
		return
	}

	if s.fetchPage(page+1) == nil {
		s.renderList()
	}
}

func (s *BrowseSession) prevPage() {
	s.mu.Lock()
	query, page := s.query, s.page
	s.mu.Unlock()

	if query != "" {
		fmt.Fprintf(s.out, "%v\n", colors.Muted("search results are not paginated"))
		return
	}

	if page == 0 {
		fmt.Fprintf(s.out, "%v\n", colors.Muted("already on the first page"))
		return
	}

	if s.fetchPage(page-1) == nil {
		s.renderList()
	}
}

// ---------------------------------------------------------------------------------//
// Detail flow
// --------------------------------------------------------------------------------//

func (s *BrowseSession) openDetail(arg string) {
	id, ok := s.resolveContactID(arg)
	if !ok {
		return
	}

	detail, err := s.client.GetContact(id)
	if err != nil {
		s.banner.Error("Failed to load contact.")
		return
	}

	s.mu.Lock()
	s.mode = modeDetail
	s.detail = detail
	s.mu.Unlock()

	RenderDetail(s.out, detail)
}

func (s *BrowseSession) closeDetail() {
	s.mu.Lock()
	s.mode = modeList
	s.detail = nil
	s.mu.Unlock()
}

// ---------------------------------------------------------------------------------//
// Add / edit / delete flows
// --------------------------------------------------------------------------------//

func (s *BrowseSession) addFlow() {
	s.enterMode(modeAdding)
	defer s.leaveMode()

	buffer := s.prompter.FillContactRequest(api.EmptyContactRequest())

	for {
		_, err := s.client.CreateContact(api.SanitizeContactRequest(buffer))
		if err == nil {
			s.banner.Success("Contact created.")
			s.refresh()
			s.renderList()
			return
		}

		// The buffer survives a failed save
		s.banner.Error(err.Error())
		RenderBanner(s.out, s.banner)
		if !s.prompter.Confirm("Edit and retry?") {
			return
		}
		buffer = s.prompter.FillContactRequest(buffer)
	}
}

func (s *BrowseSession) editFlow(arg string) {
	id, ok := s.resolveContactID(arg)
	if !ok {
		return
	}

	// Hydrate from the open detail when it's the same contact,
	// otherwise fetch fresh
	s.mu.Lock()
	openDetail := s.detail
	s.mu.Unlock()

	source := openDetail
	if source == nil || source.ID != id {
		fetched, err := s.client.GetContact(id)
		if err != nil {
			s.banner.Error("Failed to load contact.")
			return
		}
		source = fetched
	}

	s.enterMode(modeEditing)
	defer s.leaveMode()

	buffer := s.prompter.FillContactRequest(api.ContactRequestFromDetail(*source))

	for {
		_, err := s.client.UpdateContact(id, api.SanitizeContactRequest(buffer))
		if err == nil {
			s.banner.Success("Contact updated.")

			// Re-fetch an open detail for the same contact so it
			// reflects the changes
			if openDetail != nil && openDetail.ID == id {
				if refetched, err := s.client.GetContact(id); err == nil {
					s.mu.Lock()
					s.detail = refetched
					s.mu.Unlock()
					RenderDetail(s.out, refetched)
				}
			}

			s.refresh()
			s.renderList()
			return
		}

		s.banner.Error(err.Error())
		RenderBanner(s.out, s.banner)
		if !s.prompter.Confirm("Edit and retry?") {
			return
		}
		buffer = s.prompter.FillContactRequest(buffer)
	}
}

func (s *BrowseSession) deleteFlow(arg string) {
	id, ok := s.resolveContactID(arg)
	if !ok {
		return
	}

	s.enterMode(modeConfirmDelete)
	defer s.leaveMode()

	if !s.prompter.Confirm(fmt.Sprintf("Delete contact %v? This cannot be undone.", id)) {
		return
	}

	if err := s.client.DeleteContact(id); err != nil {
		s.banner.Error(err.Error())
		return
	}

	s.banner.Success("Contact deleted.")

	// Close a detail view of the deleted contact
	s.mu.Lock()
	if s.detail != nil && s.detail.ID == id {
		s.detail = nil
	}
	s.mu.Unlock()

	s.refresh()
	s.renderList()
}

// ---------------------------------------------------------------------------------//
// Helper functions
// --------------------------------------------------------------------------------//

// resolveContactID accepts either a 1-based row number from the visible
// list or a raw contact id.
func (s *BrowseSession) resolveContactID(arg string) (string, bool) {
	if arg == "" {
		fmt.Fprintf(s.out, "%v\n", colors.Yellow("a row number or contact id is required"))
		return "", false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if n, err := strconv.Atoi(arg); err == nil {
		if n < 1 || n > len(s.summaries) {
			fmt.Fprintf(s.out, "%v\n", colors.Yellow(fmt.Sprintf("no row %v on this page", n)))
			return "", false
		}
		return s.summaries[n-1].ID, true
	}

	return arg, true
}

func (s *BrowseSession) enterMode(mode sessionMode) {
	s.mu.Lock()
	s.mode = mode
	s.mu.Unlock()
}

// leaveMode returns to the detail view when one is open, else the list.
func (s *BrowseSession) leaveMode() {
	s.mu.Lock()
	if s.detail != nil {
		s.mode = modeDetail
	} else {
		s.mode = modeList
	}
	s.mu.Unlock()
}

func (s *BrowseSession) renderList() {
	s.mu.Lock()
	query := s.query
	summaries := append([]api.ContactSummary{}, s.summaries...)
	page, totalPages, totalElements := s.page, s.totalPages, s.totalElements
	s.mu.Unlock()

	if len(summaries) == 0 {
		if query != "" {
			fmt.Fprintf(s.out, "%v\n", colors.Muted(EMPTY_SEARCH_MSG))
		} else {
			fmt.Fprintf(s.out, "%v\n", colors.Muted(EMPTY_LIST_MSG))
		}
		return
	}

	RenderSummaries(s.out, summaries)
	if query == "" {
		RenderPageFooter(s.out, page, totalPages, totalElements)
	}
}
