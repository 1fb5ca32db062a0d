// Package notify provides notification sinks for the tagging workflow.
package notify

import (
	"sync"

	"github.com/Alma-hanif/infinitag/internal/core/domain"
	"github.com/Alma-hanif/infinitag/internal/core/ports/driven"
	"github.com/Alma-hanif/infinitag/internal/logger"
)

var (
	_ driven.Notifier = (*LogNotifier)(nil)
	_ driven.Notifier = (*Collector)(nil)
	_ driven.Notifier = (*Channel)(nil)
	_ driven.Notifier = Multi(nil)
)

// LogNotifier writes notifications to the verbose logger.
type LogNotifier struct{}

// Notify logs n at a level matching its severity.
func (LogNotifier) Notify(n domain.Notification) {
	switch n.Level {
	case domain.NotifyError, domain.NotifyWarning:
		if n.Err != nil {
			logger.Warn("%s (%v)", n.Message, n.Err)
			return
		}
		logger.Warn("%s", n.Message)
	default:
		logger.Info("%s", n.Message)
	}
}

// Collector keeps notifications in memory until drained.
// The CLI prints them after a command finishes.
type Collector struct {
	mu    sync.Mutex
	items []domain.Notification
}

// NewCollector creates an empty collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Notify records n.
func (c *Collector) Notify(n domain.Notification) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append(c.items, n)
}

// Drain returns the recorded notifications and forgets them.
func (c *Collector) Drain() []domain.Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := c.items
	c.items = nil
	return out
}

// Len returns the number of pending notifications.
func (c *Collector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Channel forwards notifications to a buffered channel.
// When the buffer is full the oldest pending notification is dropped,
// so Notify never blocks the workflow.
type Channel struct {
	ch chan domain.Notification
}

// NewChannel creates a channel sink with the given buffer size (minimum 1).
func NewChannel(size int) *Channel {
	if size < 1 {
		size = 1
	}
	return &Channel{ch: make(chan domain.Notification, size)}
}

// Notify queues n.
func (c *Channel) Notify(n domain.Notification) {
	for {
		select {
		case c.ch <- n:
			return
		default:
		}
		select {
		case <-c.ch:
		default:
		}
	}
}

// C returns the receive side.
func (c *Channel) C() <-chan domain.Notification {
	return c.ch
}

// Multi fans a notification out to several sinks in order.
type Multi []driven.Notifier

// Notify forwards n to every non-nil sink.
func (m Multi) Notify(n domain.Notification) {
	for _, sink := range m {
		if sink != nil {
			sink.Notify(n)
		}
	}
}
