// Package sketchybar drives the sketchybar CLI, the external status-bar
// display. Every interaction is a discrete invocation of the binary; there is
// no long-lived connection to manage.
package sketchybar

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/vburojevic/brainbar/internal/app"
)

// ErrNotInstalled means the sketchybar binary is not on PATH.
var ErrNotInstalled = errors.New("sketchybar not installed")

// Bar wraps one named sketchybar item. Path is the executable to invoke;
// tests point it at a stub script.
type Bar struct {
	Path string
	Item string
}

// New returns a Bar for the given item name, using "sketchybar" from PATH.
func New(item string) *Bar {
	return &Bar{Path: "sketchybar", Item: item}
}

// Available reports whether the executable can be resolved.
func (b *Bar) Available() error {
	if _, err := exec.LookPath(b.Path); err != nil {
		return ErrNotInstalled
	}
	return nil
}

func (b *Bar) run(args ...string) ([]byte, error) {
	out, err := exec.Command(b.Path, args...).CombinedOutput()
	if err != nil {
		var execErr *exec.Error
		if errors.As(err, &execErr) && errors.Is(execErr.Err, exec.ErrNotFound) {
			return nil, ErrNotInstalled
		}
		return out, fmt.Errorf("sketchybar %s: %w", args[0], err)
	}
	return out, nil
}

// Set shows value as the item's label.
func (b *Bar) Set(value string) error {
	_, err := b.run("--set", b.Item, "label.drawing=on", "label="+value)
	return err
}

// Clear hides the item's label. Two discrete commands exist on purpose: the
// display contract is set-or-clear, never a partial update.
func (b *Bar) Clear() error {
	_, err := b.run("--set", b.Item, "label.drawing=off")
	return err
}

// ItemExists queries the bar for the item.
func (b *Bar) ItemExists() bool {
	out, err := b.run("--query", b.Item)
	return err == nil && strings.TrimSpace(string(out)) != ""
}

// EnsureItem registers the item at the given position if it does not already
// exist. position is one of left, center, right.
func (b *Bar) EnsureItem(position string) error {
	if b.ItemExists() {
		return nil
	}
	_, err := b.run("--add", "item", b.Item, position)
	return err
}

// EnsureIcon sets the app's icon as the item background, best effort. The
// icns is converted to a small cached png with sips; any failure along the
// way leaves the item without an icon, which is fine.
func (b *Bar) EnsureIcon(appPath string) error {
	icns, err := app.IconPath(appPath)
	if err != nil {
		return err
	}

	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return err
	}
	cacheDir = filepath.Join(cacheDir, "brainbar")
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return err
	}
	png := filepath.Join(cacheDir, "icon.png")

	if out, err := exec.Command("sips", "-s", "format", "png", icns, "--out", png).CombinedOutput(); err != nil {
		return fmt.Errorf("sips convert: %w: %s", err, strings.TrimSpace(string(out)))
	}
	if _, err := os.Stat(png); err != nil {
		return err
	}
	// Menu bars render around 36px; downscale so sketchybar does not blur it.
	_, _ = exec.Command("sips", "-Z", "36", png).CombinedOutput()

	_, err = b.run("--set", b.Item,
		"click_script=open "+appPath,
		"icon.drawing=on",
		"icon.padding_right=0",
		"icon.padding_left=0",
		"padding_left=1",
		"padding_right=1",
		"icon.color=transparent",
		"background.corner_radius=5",
		"background.color=0x66f0f0f0",
		"background.height=20",
		"background.drawing=on",
		"background.image.scale=0.6",
		"background.image="+png,
	)
	return err
}
