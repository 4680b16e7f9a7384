package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/vburojevic/brainbar/internal/app"
	"github.com/vburojevic/brainbar/internal/cdp"
	"github.com/vburojevic/brainbar/internal/sketchybar"
	"github.com/vburojevic/brainbar/internal/target"
	"github.com/vburojevic/brainbar/internal/timer"
	"github.com/vburojevic/brainbar/internal/watch"
)

const debugHost = "127.0.0.1"

// WatchCmd attaches to the Brain.fm app over CDP, polls the page for the
// countdown timer and mirrors changes into a sketchybar item.
type WatchCmd struct {
	Port           int           `short:"p" default:"${config_port}" help:"Remote debugging port"`
	WS             string        `name:"ws" help:"Override browser WebSocket URL (skips /json/version discovery)"`
	Selector       string        `default:"${config_selector}" help:"CSS selector fallback for the timer element"`
	TargetContains string        `default:"${config_target_contains}" help:"Prefer targets whose title/URL contains this"`
	Interval       time.Duration `short:"i" default:"${config_interval}" help:"Polling interval"`
	Timeout        time.Duration `default:"${config_timeout}" help:"Per-request CDP deadline, 0 to block forever"`
	Item           string        `default:"${config_item}" help:"sketchybar item name"`
	Position       string        `enum:"left,center,right" default:"${config_position}" help:"sketchybar item position"`
	Launch         bool          `negatable:"" default:"true" help:"Launch the app when the debug port is closed"`
	Icon           bool          `negatable:"" default:"true" help:"Set the app icon on the item (best effort)"`
}

// sessionEvaluator runs the extraction expression inside the attached page.
type sessionEvaluator struct {
	client     *cdp.Client
	sessionID  string
	expression string
}

func (e *sessionEvaluator) Evaluate(context.Context) (string, error) {
	return e.client.Evaluate(e.sessionID, e.expression)
}

// Run executes the watch command
func (c *WatchCmd) Run(globals *Globals) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle signals for graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	logger := newWatchLogger(globals, c.Item)

	bar := sketchybar.New(c.Item)
	if err := bar.Available(); err != nil {
		// The display is a convenience, not the source of truth: keep
		// polling and let individual updates fail quietly.
		globals.Info("sketchybar not found; timer updates will be logged only")
	}

	if c.WS == "" && !cdp.IsPortOpen(debugHost, c.Port, 250*time.Millisecond) {
		if !c.Launch {
			return outputError(globals, ExitMissingDependency, "PORT_CLOSED",
				fmt.Sprintf("port %d is closed; start the app with --remote-debugging-port=%d or drop --no-launch", c.Port, c.Port))
		}
		if err := c.launchApp(ctx, globals); err != nil {
			return err
		}
		if ctx.Err() != nil {
			// Interrupted while waiting for the app to come up.
			return nil
		}
	}

	wsURL := c.WS
	if wsURL == "" {
		var err error
		wsURL, err = cdp.DiscoverWebSocketURL(ctx, cdp.DebugBaseURL(c.Port))
		if err != nil {
			return err
		}
	}
	logger.Debug("dialing %s", wsURL)

	client, err := cdp.Dial(ctx, wsURL, c.Timeout)
	if err != nil {
		return err
	}
	defer client.Close()

	targets, err := client.ListTargets()
	if err != nil {
		return err
	}
	chosen, ok := target.Choose(targets, c.TargetContains)
	if !ok || chosen.Type != "page" {
		return outputError(globals, ExitNoTarget, "NO_PAGE_TARGET", "no suitable page target found")
	}
	logger.SetTarget(chosen.TargetID)
	logger.Debug("selected target %q (%s)", chosen.Title, chosen.URL)

	sessionID, err := client.AttachToTarget(chosen.TargetID)
	if err != nil {
		if errors.Is(err, cdp.ErrAttachFailed) {
			return outputError(globals, ExitAttachFailed, "ATTACH_FAILED", "failed to attach to page target")
		}
		return err
	}
	if err := client.EnableRuntime(sessionID); err != nil {
		return err
	}

	if err := bar.EnsureItem(c.Position); err != nil {
		logger.Debug("ensure item: %v", err)
	}
	if c.Icon {
		if appPath, err := app.Find(); err == nil {
			if err := bar.EnsureIcon(appPath); err != nil {
				logger.Debug("ensure icon: %v", err)
			}
		}
	}

	globals.Info("Watching %s (%s), item %s, every %s. Press Ctrl+C to stop.",
		accent(globals, chosen.Title), chosen.URL, c.Item, c.Interval)

	eval := &sessionEvaluator{
		client:     client,
		sessionID:  sessionID,
		expression: timer.Expression(c.Selector),
	}
	loop := watch.New(eval, bar, c.Interval,
		watch.WithClock(clock.New()),
		watch.WithDebugf(logger.Debug),
	)
	return loop.Run(ctx)
}

// launchApp finds and starts the app, then waits for the debug port to open.
func (c *WatchCmd) launchApp(ctx context.Context, globals *Globals) error {
	appPath, err := app.Find()
	if err != nil {
		return outputError(globals, ExitMissingDependency, "APP_NOT_FOUND",
			"Brain.fm app not found; install it from https://brain.fm/")
	}

	globals.Info("Launching %s with remote debugging on port %d", appPath, c.Port)
	if err := app.Launch(appPath, c.Port); err != nil {
		return outputError(globals, ExitMissingDependency, "LAUNCH_FAILED", err.Error())
	}

	deadline := time.Now().Add(10 * time.Second)
	for time.Now().Before(deadline) {
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(500 * time.Millisecond):
		}
		if cdp.IsPortOpen(debugHost, c.Port, 250*time.Millisecond) {
			return nil
		}
	}
	return outputError(globals, ExitMissingDependency, "PORT_CLOSED",
		fmt.Sprintf("port %d did not open after launching the app", c.Port))
}
