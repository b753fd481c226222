package views

import (
	"sync"
	"time"
)

const BANNER_TTL = 5 * time.Second

type BannerKind int

const (
	BannerError BannerKind = iota
	BannerSuccess
)

// Banner is a single error/success message slot that auto-clears after
// a fixed delay. Setting a new message resets the dismiss timer.
type Banner struct {
	mu    sync.Mutex
	timer *time.Timer
	ttl   time.Duration

	kind    BannerKind
	message string
}

func NewBanner() *Banner {
	return &Banner{ttl: BANNER_TTL}
}

func (b *Banner) Set(kind BannerKind, message string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.kind = kind
	b.message = message

	if b.timer != nil {
		b.timer.Stop()
	}
	b.timer = time.AfterFunc(b.ttl, b.Dismiss)
}

func (b *Banner) Error(message string) {
	b.Set(BannerError, message)
}

func (b *Banner) Success(message string) {
	b.Set(BannerSuccess, message)
}

// Message returns the current message("" when dismissed) & its kind.
func (b *Banner) Message() (string, BannerKind) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.message, b.kind
}

func (b *Banner) Dismiss() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.message = ""
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
}
