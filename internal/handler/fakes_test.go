package handler

import (
	"context"
	"sync"
	"time"

	"github.com/go-telegram/bot/models"

	"github.com/set-night/gatekeeper/internal/captcha"
	"github.com/set-night/gatekeeper/internal/verification"
)

// fakeGenerator hands out a fixed captcha so tests know the answer and the
// decoys in advance.
type fakeGenerator struct {
	err   error
	calls int
}

func (g *fakeGenerator) Generate() (*captcha.Captcha, error) {
	g.calls++
	if g.err != nil {
		return nil, g.err
	}
	return &captcha.Captcha{
		Image:   []byte("fake-png"),
		Answer:  "K7M2",
		Options: []string{"Q9X1", "K7M2", "A2B3", "C4D5"},
	}, nil
}

type sentCaptcha struct {
	chatID  int64
	caption string
	buttons []models.InlineKeyboardButton
}

type captionEdit struct {
	chatID    int64
	messageID int
	caption   string
}

type removal struct {
	chatID int64
	userID int64
}

type announcement struct {
	chatID int64
	text   string
}

type ack struct {
	callbackID string
	text       string
}

// fakeTransport records every transport call; errors are injectable per
// method. Expiry callbacks run on timer goroutines, so it locks.
type fakeTransport struct {
	mu        sync.Mutex
	sendErr   error
	removeErr error

	captchas  []sentCaptcha
	edits     []captionEdit
	announces []announcement
	acks      []ack
	removals  []removal
}

func (t *fakeTransport) SendCaptcha(_ context.Context, chatID int64, _ []byte, caption string, kb *models.InlineKeyboardMarkup) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.sendErr != nil {
		return 0, t.sendErr
	}
	var buttons []models.InlineKeyboardButton
	for _, row := range kb.InlineKeyboard {
		buttons = append(buttons, row...)
	}
	t.captchas = append(t.captchas, sentCaptcha{chatID: chatID, caption: caption, buttons: buttons})
	return 77, nil
}

func (t *fakeTransport) EditCaption(_ context.Context, chatID int64, messageID int, caption string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.edits = append(t.edits, captionEdit{chatID: chatID, messageID: messageID, caption: caption})
	return nil
}

func (t *fakeTransport) Announce(_ context.Context, chatID int64, text string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.announces = append(t.announces, announcement{chatID: chatID, text: text})
	return nil
}

func (t *fakeTransport) AckCallback(_ context.Context, callbackID, text string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.acks = append(t.acks, ack{callbackID: callbackID, text: text})
	return nil
}

func (t *fakeTransport) RemoveMember(_ context.Context, chatID, userID int64) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.removeErr != nil {
		return t.removeErr
	}
	t.removals = append(t.removals, removal{chatID: chatID, userID: userID})
	return nil
}

func (t *fakeTransport) removalCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.removals)
}

func (t *fakeTransport) lastAck() ack {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.acks) == 0 {
		return ack{}
	}
	return t.acks[len(t.acks)-1]
}

// manualClock mirrors the verification package's test clock so handler
// tests can fire expiry deterministically.
type manualClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*manualTimer
}

type manualTimer struct {
	clock   *manualClock
	f       func()
	stopped bool
	fired   bool
}

func newManualClock() *manualClock {
	return &manualClock{now: time.Unix(1000, 0)}
}

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *manualClock) AfterFunc(d time.Duration, f func()) verification.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &manualTimer{clock: c, f: f}
	c.timers = append(c.timers, t)
	return t
}

func (c *manualClock) fire(i int) bool {
	c.mu.Lock()
	t := c.timers[i]
	if t.stopped || t.fired {
		c.mu.Unlock()
		return false
	}
	t.fired = true
	f := t.f
	c.mu.Unlock()
	f()
	return true
}

func (t *manualTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}
