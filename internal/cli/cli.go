// Package cli defines the brainbar command surface.
package cli

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/vburojevic/brainbar/internal/config"
)

// CLI is the root kong command tree.
type CLI struct {
	Format  string `help:"Output format: text or ndjson" enum:"text,ndjson" default:"${config_format}"`
	Quiet   bool   `short:"q" help:"Suppress informational output"`
	Verbose bool   `short:"v" help:"Enable verbose debug logging"`

	Watch   WatchCmd   `cmd:"" help:"Mirror the Brain.fm countdown timer into sketchybar"`
	Targets TargetsCmd `cmd:"" help:"List debuggable targets and show which one would be picked"`
	Config  ConfigCmd  `cmd:"" help:"Manage configuration"`
	Version VersionCmd `cmd:"" help:"Print version"`
}

// Globals carries shared command state. Stdout/Stderr are injected so tests
// can capture output.
type Globals struct {
	Format  string
	Quiet   bool
	Verbose bool
	Stdout  io.Writer
	Stderr  io.Writer
	Config  *config.Config

	sugared *zap.SugaredLogger
}

// NewGlobalsWithConfig merges parsed flags with config-file fallbacks.
func NewGlobalsWithConfig(c *CLI, cfg *config.Config) *Globals {
	g := &Globals{
		Format:  c.Format,
		Quiet:   c.Quiet || cfg.Quiet,
		Verbose: c.Verbose || cfg.Verbose,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Config:  cfg,
	}
	if g.Format == "" {
		g.Format = cfg.Format
	}
	return g
}

// Debug logs via zap when --verbose is set, and is a no-op otherwise.
func (g *Globals) Debug(format string, args ...any) {
	if !g.Verbose {
		return
	}
	if g.sugared == nil {
		g.sugared = newDebugLogger()
		if g.sugared == nil {
			return
		}
	}
	g.sugared.Debugf(format, args...)
}

// Info prints an informational line unless --quiet is set. NDJSON consumers
// get a structured line instead of prose.
func (g *Globals) Info(format string, args ...any) {
	if g.Quiet {
		return
	}
	if g.Format == "ndjson" {
		fmt.Fprintf(g.Stdout, `{"type":"info","message":%q}`+"\n", fmt.Sprintf(format, args...))
		return
	}
	fmt.Fprintf(g.Stderr, format+"\n", args...)
}
