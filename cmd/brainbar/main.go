package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/alecthomas/kong"

	"github.com/vburojevic/brainbar/internal/cli"
	"github.com/vburojevic/brainbar/internal/config"
)

const quickStart = `brainbar - Brain.fm countdown timer in your sketchybar

Quick start:
  brainbar watch                        Attach and mirror the timer
  brainbar watch --port 9223            Use a non-default debugging port
  brainbar targets                      Inspect available debug targets

For help:
  brainbar --help                       All commands and flags
`

func main() {
	// Show quick start if no args provided
	if len(os.Args) == 1 {
		fmt.Print(quickStart)
		return
	}

	// Load configuration from files/environment
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load config: %v\n", err)
		cfg = config.Default()
	}

	var c cli.CLI

	// Apply config defaults before parsing
	// These will be overridden by CLI flags if specified
	vars := kong.Vars{
		"config_format":          cfg.Format,
		"config_port":            strconv.Itoa(cfg.Defaults.Port),
		"config_interval":        cfg.Defaults.Interval,
		"config_timeout":         cfg.Defaults.Timeout,
		"config_item":            cfg.Defaults.Item,
		"config_position":        cfg.Defaults.Position,
		"config_selector":        cfg.Defaults.Selector,
		"config_target_contains": cfg.Defaults.TargetContains,
	}

	ctx := kong.Parse(&c,
		kong.Name("brainbar"),
		kong.Description("brainbar: mirror the Brain.fm countdown timer into sketchybar via the Chrome DevTools Protocol"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}),
		vars,
	)

	// Create globals with config fallbacks
	globals := cli.NewGlobalsWithConfig(&c, cfg)
	if err := ctx.Run(globals); err != nil {
		cli.PrintError(globals, err)
		os.Exit(cli.ExitCode(err))
	}
}
