// Package notify emits periodic "still working" notices for threads whose
// request is taking longer than expected, and guarantees the stream of
// notices stops promptly once the real response has been sent. Because the
// responded flag can flip between composing a notice and delivering it, the
// flag is re-checked immediately before delivery; at most one stray notice
// can slip through that window.
package notify

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/leverageai/dealdesk/logging"
)

// SendFunc delivers one progress notice to a thread.
type SendFunc func(threadID, text string)

// DefaultInterval is the delay before the first notice and between notices.
const DefaultInterval = 10 * time.Second

// DefaultNotice is the progress text used when none is configured.
const DefaultNotice = "Still working on it, one moment..."

// DefaultMaxLifetime caps how long a thread's ticker may run without a
// response before it is considered abandoned and reaped.
const DefaultMaxLifetime = 10 * time.Minute

type entry struct {
	responded atomic.Bool
	stop      chan struct{}
	stopOnce  sync.Once
}

func (e *entry) halt() {
	e.stopOnce.Do(func() { close(e.stop) })
}

// Options configure a Notifier.
type Options struct {
	Logger   logging.Logger
	Interval time.Duration
	Notice   string
	// MaxLifetime bounds a ticker whose thread is never marked responded.
	MaxLifetime time.Duration
}

// Notifier tracks in-flight threads and their progress tickers. Safe for
// concurrent use across threads; Begin must not be called twice for the same
// thread without an intervening MarkResponded or Cancel.
type Notifier struct {
	mu      sync.Mutex
	entries map[string]*entry

	send        SendFunc
	logger      logging.Logger
	interval    time.Duration
	notice      string
	maxLifetime time.Duration
}

// New creates a Notifier that delivers notices through send.
func New(send SendFunc, optFns ...func(o *Options)) *Notifier {
	opts := Options{
		Logger:      logging.NoOpLogger{},
		Interval:    DefaultInterval,
		Notice:      DefaultNotice,
		MaxLifetime: DefaultMaxLifetime,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Notifier{
		entries:     make(map[string]*entry),
		send:        send,
		logger:      opts.Logger,
		interval:    opts.Interval,
		notice:      opts.Notice,
		maxLifetime: opts.MaxLifetime,
	}
}

// Begin starts the progress ticker for a thread. Any previous ticker for the
// same thread is halted first.
func (n *Notifier) Begin(threadID string) {
	e := &entry{stop: make(chan struct{})}

	n.mu.Lock()
	if prev, ok := n.entries[threadID]; ok {
		prev.halt()
	}
	n.entries[threadID] = e
	n.mu.Unlock()

	go n.run(threadID, e)
}

func (n *Notifier) run(threadID string, e *entry) {
	ticker := time.NewTicker(n.interval)
	defer ticker.Stop()
	deadline := time.After(n.maxLifetime)
	for {
		select {
		case <-e.stop:
			return
		case <-deadline:
			// Abandoned request; reap the entry so the map cannot grow.
			n.logger.Warn("notify.abandoned", "thread_id", threadID)
			n.mu.Lock()
			if n.entries[threadID] == e {
				delete(n.entries, threadID)
			}
			n.mu.Unlock()
			return
		case <-ticker.C:
			if e.responded.Load() {
				return
			}
			// compose happens here; the flag may flip during it
			text := n.notice
			if e.responded.Load() {
				return
			}
			n.send(threadID, text)
			n.logger.Debug("notify.sent", "thread_id", threadID)
		}
	}
}

// MarkResponded records that the real response for a thread has been sent
// and halts its ticker. Idempotent.
func (n *Notifier) MarkResponded(threadID string) {
	n.mu.Lock()
	e, ok := n.entries[threadID]
	if ok {
		delete(n.entries, threadID)
	}
	n.mu.Unlock()
	if !ok {
		return
	}
	e.responded.Store(true)
	e.halt()
}

// Cancel halts a thread's ticker without marking it responded, for requests
// abandoned before producing any reply.
func (n *Notifier) Cancel(threadID string) {
	n.mu.Lock()
	e, ok := n.entries[threadID]
	if ok {
		delete(n.entries, threadID)
	}
	n.mu.Unlock()
	if ok {
		e.halt()
	}
}

// Active reports whether a thread currently has a running ticker.
func (n *Notifier) Active(threadID string) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	_, ok := n.entries[threadID]
	return ok
}
