package views

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newShortLivedBanner(ttl time.Duration) *Banner {
	b := NewBanner()
	b.ttl = ttl
	return b
}

func TestBannerAutoDismiss(t *testing.T) {
	b := newShortLivedBanner(50 * time.Millisecond)

	b.Error("something broke")
	msg, kind := b.Message()
	assert.Equal(t, "something broke", msg)
	assert.Equal(t, BannerError, kind)

	time.Sleep(120 * time.Millisecond)

	msg, _ = b.Message()
	assert.Equal(t, "", msg, "banner should auto-clear after its TTL")
}

func TestBannerTimerResetsOnNewMessage(t *testing.T) {
	b := newShortLivedBanner(100 * time.Millisecond)

	b.Error("first")
	time.Sleep(60 * time.Millisecond)

	// New message before the first TTL elapses restarts the clock
	b.Success("second")
	time.Sleep(60 * time.Millisecond)

	msg, kind := b.Message()
	assert.Equal(t, "second", msg, "second message should still be visible")
	assert.Equal(t, BannerSuccess, kind)

	time.Sleep(80 * time.Millisecond)
	msg, _ = b.Message()
	assert.Equal(t, "", msg)
}

func TestBannerExplicitDismiss(t *testing.T) {
	b := NewBanner()

	b.Success("saved")
	b.Dismiss()

	msg, _ := b.Message()
	assert.Equal(t, "", msg)
}
