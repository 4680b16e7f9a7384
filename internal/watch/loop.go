// Package watch runs the poll/change loop: evaluate the page, reduce the
// noisy repeated reads to discrete "timer changed" events, and push only
// those to the display.
package watch

import (
	"context"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/vburojevic/brainbar/internal/timer"
)

// Evaluator produces the raw page text the timer is extracted from. The CDP
// client backs this in production; tests supply canned sequences.
type Evaluator interface {
	Evaluate(ctx context.Context) (string, error)
}

// EvaluatorFunc adapts a function to the Evaluator interface.
type EvaluatorFunc func(ctx context.Context) (string, error)

func (f EvaluatorFunc) Evaluate(ctx context.Context) (string, error) { return f(ctx) }

// Notifier is the external display. Set shows a value, Clear hides it. The
// display is a convenience, not the source of truth: errors from either call
// are logged by the loop and never abort it.
type Notifier interface {
	Set(value string) error
	Clear() error
}

// Loop polls an Evaluator at a fixed interval and forwards changes to a
// Notifier. It is a two-state machine: the caller establishes the session
// (Idle -> Attached) before Run, and Run is the Attached state.
type Loop struct {
	eval     Evaluator
	notifier Notifier
	interval time.Duration
	clk      clock.Clock
	debugf   func(format string, args ...any)

	last string
}

// Option tweaks loop construction.
type Option func(*Loop)

// WithClock substitutes the wall clock, for tests.
func WithClock(c clock.Clock) Option {
	return func(l *Loop) { l.clk = c }
}

// WithDebugf installs a verbose-logging callback.
func WithDebugf(f func(format string, args ...any)) Option {
	return func(l *Loop) { l.debugf = f }
}

// New builds a loop. interval is the fixed poll rate; the loop is
// constant-rate, not adaptive.
func New(eval Evaluator, notifier Notifier, interval time.Duration, opts ...Option) *Loop {
	l := &Loop{
		eval:     eval,
		notifier: notifier,
		interval: interval,
		clk:      clock.New(),
		debugf:   func(string, ...any) {},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Run polls until ctx is cancelled or an evaluation fails. Cancellation is
// observed between iterations, never mid-request, and always ends with one
// best-effort Clear so the display never shows a stale value. An evaluation
// error is fatal for the run: the session is assumed gone and no silent
// reconnect is attempted.
func (l *Loop) Run(ctx context.Context) error {
	defer l.clearQuietly()

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		text, err := l.eval.Evaluate(ctx)
		if err != nil {
			return err
		}
		l.apply(timer.Find(text))

		t := l.clk.Timer(l.interval)
		select {
		case <-ctx.Done():
			t.Stop()
			return nil
		case <-t.C:
		}
	}
}

// apply performs change detection against the last accepted value. The empty
// string is a real state ("no timer displayed"), so both directions of the
// empty/non-empty transition count as changes.
func (l *Loop) apply(value string) {
	if value == l.last {
		return
	}
	var err error
	if value == "" {
		l.debugf("timer cleared (was %q)", l.last)
		err = l.notifier.Clear()
	} else {
		l.debugf("timer changed %q -> %q", l.last, value)
		err = l.notifier.Set(value)
	}
	if err != nil {
		l.debugf("notifier update failed: %v", err)
	}
	// The value is accepted even when the notifier failed; retrying the same
	// value every 100ms would just hammer a broken display.
	l.last = value
}

func (l *Loop) clearQuietly() {
	if err := l.notifier.Clear(); err != nil {
		l.debugf("final clear failed: %v", err)
	}
}
