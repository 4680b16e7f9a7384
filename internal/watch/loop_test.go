package watch

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingNotifier captures the exact sequence of Set/Clear invocations.
type recordingNotifier struct {
	mu     sync.Mutex
	events []string
	fail   error
}

func (n *recordingNotifier) Set(value string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, "set:"+value)
	return n.fail
}

func (n *recordingNotifier) Clear() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, "clear")
	return n.fail
}

func (n *recordingNotifier) Events() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, len(n.events))
	copy(out, n.events)
	return out
}

// sequenceEvaluator replays canned page texts, then cancels the run.
func sequenceEvaluator(values []string, cancel context.CancelFunc) Evaluator {
	i := 0
	return EvaluatorFunc(func(ctx context.Context) (string, error) {
		if i >= len(values) {
			cancel()
			return "", nil
		}
		v := values[i]
		i++
		return v, nil
	})
}

func TestLoopEmitsOnlyOnChange(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	notifier := &recordingNotifier{}
	eval := sequenceEvaluator([]string{"4:59", "4:59", "4:58", ""}, cancel)

	loop := New(eval, notifier, time.Millisecond)
	err := loop.Run(ctx)
	require.NoError(t, err)

	events := notifier.Events()
	// set, set, clear from the sequence; one final clear on shutdown.
	require.GreaterOrEqual(t, len(events), 3)
	assert.Equal(t, []string{"set:4:59", "set:4:58", "clear"}, events[:3])
	assert.Equal(t, "clear", events[len(events)-1])
}

func TestLoopIsIdempotentForUnchangedValue(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	notifier := &recordingNotifier{}
	eval := sequenceEvaluator([]string{"4:59", "4:59", "4:59", "4:59"}, cancel)

	loop := New(eval, notifier, time.Millisecond)
	require.NoError(t, loop.Run(ctx))

	sets := 0
	for _, e := range notifier.Events() {
		if e == "set:4:59" {
			sets++
		}
	}
	assert.Equal(t, 1, sets, "repeated identical reads must not retrigger")
}

func TestLoopClearsOnCancelBeforeAnyChange(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	notifier := &recordingNotifier{}
	loop := New(EvaluatorFunc(func(context.Context) (string, error) {
		t.Fatal("evaluator must not run after cancellation")
		return "", nil
	}), notifier, time.Millisecond)

	require.NoError(t, loop.Run(ctx))
	assert.Equal(t, []string{"clear"}, notifier.Events())
}

func TestLoopSwallowsNotifierFailures(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	notifier := &recordingNotifier{fail: errors.New("sketchybar not running")}
	eval := sequenceEvaluator([]string{"4:59", "4:58"}, cancel)

	loop := New(eval, notifier, time.Millisecond)
	require.NoError(t, loop.Run(ctx), "display failures must never abort the loop")
	assert.Contains(t, notifier.Events(), "set:4:58")
}

func TestLoopStopsOnEvaluateError(t *testing.T) {
	notifier := &recordingNotifier{}
	wantErr := errors.New("session gone")

	loop := New(EvaluatorFunc(func(context.Context) (string, error) {
		return "", wantErr
	}), notifier, time.Millisecond)

	err := loop.Run(context.Background())
	require.ErrorIs(t, err, wantErr)
	// Even a failed run leaves the display cleared.
	assert.Equal(t, []string{"clear"}, notifier.Events())
}

func TestLoopExtractsTimerFromNoisyText(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	notifier := &recordingNotifier{}
	eval := sequenceEvaluator([]string{"Now playing\nDeep Work\n12:34 remaining"}, cancel)

	loop := New(eval, notifier, time.Millisecond)
	require.NoError(t, loop.Run(ctx))
	assert.Equal(t, "set:12:34", notifier.Events()[0])
}
