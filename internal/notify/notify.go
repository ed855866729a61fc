// Package notify defines the port the stores use to tell the user something
// happened, independent of how the front end displays it.
package notify

import (
	"context"
	"log/slog"
	"sync"
)

// Severity classifies a notification.
type Severity int

const (
	Info Severity = iota
	Success
	Error
)

func (s Severity) String() string {
	switch s {
	case Success:
		return "success"
	case Error:
		return "error"
	default:
		return "info"
	}
}

// Notifier receives user-facing messages. Implementations must not block.
type Notifier interface {
	Notify(sev Severity, msg string)
}

// Message is a single notification.
type Message struct {
	Severity Severity
	Text     string
}

// Discard drops every notification.
var Discard Notifier = discard{}

type discard struct{}

func (discard) Notify(Severity, string) {}

// Log writes notifications to a structured logger.
type Log struct {
	Logger *slog.Logger
}

// Notify implements Notifier.
func (l Log) Notify(sev Severity, msg string) {
	logger := l.Logger
	if logger == nil {
		logger = slog.Default()
	}
	level := slog.LevelInfo
	if sev == Error {
		level = slog.LevelWarn
	}
	logger.Log(context.Background(), level, "notification", "severity", sev.String(), "message", msg)
}

// Channel buffers notifications for a consumer such as the UI loop. When the
// buffer is full new messages are dropped rather than blocking the caller.
type Channel struct {
	ch chan Message
}

// NewChannel returns a Channel with the given buffer size (minimum 1).
func NewChannel(size int) *Channel {
	if size < 1 {
		size = 1
	}
	return &Channel{ch: make(chan Message, size)}
}

// Notify implements Notifier.
func (c *Channel) Notify(sev Severity, msg string) {
	select {
	case c.ch <- Message{Severity: sev, Text: msg}:
	default:
	}
}

// C exposes the receive side.
func (c *Channel) C() <-chan Message {
	return c.ch
}

// Recorder keeps every notification in memory. Useful in tests.
type Recorder struct {
	mu       sync.Mutex
	messages []Message
}

// Notify implements Notifier.
func (r *Recorder) Notify(sev Severity, msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, Message{Severity: sev, Text: msg})
}

// Messages returns a copy of the recorded notifications.
func (r *Recorder) Messages() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.messages) == 0 {
		return nil
	}
	dup := make([]Message, len(r.messages))
	copy(dup, r.messages)
	return dup
}

// Multi fans a notification out to several notifiers.
func Multi(targets ...Notifier) Notifier {
	return multi(targets)
}

type multi []Notifier

func (m multi) Notify(sev Severity, msg string) {
	for _, n := range m {
		if n != nil {
			n.Notify(sev, msg)
		}
	}
}
