package views

import (
	"strings"
	"sync"
	"time"

	"github.com/abbasza/contactctl/api"
)

const SEARCH_DEBOUNCE = 500 * time.Millisecond

// SearchFunc runs the actual search request.
type SearchFunc func(query string) ([]api.ContactSummary, error)

// ApplyFunc receives the outcome of the latest search. It's never called
// for a superseded request.
type ApplyFunc func(query string, results []api.ContactSummary, err error)

// Searcher coalesces a keystroke stream into one search request per
// quiet period. Each fired request gets a monotonically increasing
// sequence number & a response is applied only if it's still the latest
// issued - out-of-order completions are discarded instead of racing to
// the view.
type Searcher struct {
	mu    sync.Mutex
	timer *time.Timer
	delay time.Duration
	seq   uint64

	search SearchFunc
	apply  ApplyFunc
}

func NewSearcher(delay time.Duration, search SearchFunc, apply ApplyFunc) *Searcher {
	if delay <= 0 {
		delay = SEARCH_DEBOUNCE
	}

	return &Searcher{delay: delay, search: search, apply: apply}
}

// Input feeds one keystroke-stream event. The pending timer(if any) is
// reset, so only the last event within a burst fires a request.
func (s *Searcher) Input(query string) {
	trimmed := strings.TrimSpace(query)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.delay, func() { s.fire(trimmed) })
}

// Flush cancels the quiet-period wait & issues the query immediately.
// The request itself runs in the background, so a newer query can still
// supersede a flushed one.
func (s *Searcher) Flush(query string) {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.mu.Unlock()

	s.fire(strings.TrimSpace(query))
}

// fire takes the next sequence number synchronously, then runs the
// request on its own goroutine. Sequencing at issue time is what lets a
// later query outrank an earlier one that is still in flight.
func (s *Searcher) fire(query string) {
	s.mu.Lock()
	s.seq++
	seq := s.seq
	s.mu.Unlock()

	// An empty query means "back to the paginated list"; it still takes
	// a sequence number so it supersedes any in-flight search.
	if query == "" {
		if s.isLatest(seq) {
			s.apply("", nil, nil)
		}
		return
	}

	go func() {
		results, err := s.search(query)

		if !s.isLatest(seq) {
			return
		}
		s.apply(query, results, err)
	}()
}

func (s *Searcher) isLatest(seq uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return seq == s.seq
}
