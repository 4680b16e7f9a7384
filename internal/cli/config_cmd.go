package cli

import (
	"encoding/json"
	"fmt"
)

// ConfigCmd groups configuration subcommands.
type ConfigCmd struct {
	Show ConfigShowCmd `cmd:"" default:"1" help:"Show effective configuration"`
}

// ConfigShowCmd prints the effective configuration.
type ConfigShowCmd struct{}

// Run executes the config show command
func (c *ConfigShowCmd) Run(globals *Globals) error {
	cfg := globals.Config

	if globals.Format == "ndjson" {
		out := map[string]any{
			"format":  cfg.Format,
			"quiet":   cfg.Quiet,
			"verbose": cfg.Verbose,
			"defaults": map[string]any{
				"port":            cfg.Defaults.Port,
				"interval":        cfg.Defaults.Interval,
				"timeout":         cfg.Defaults.Timeout,
				"item":            cfg.Defaults.Item,
				"position":        cfg.Defaults.Position,
				"selector":        cfg.Defaults.Selector,
				"target_contains": cfg.Defaults.TargetContains,
			},
		}
		return json.NewEncoder(globals.Stdout).Encode(out)
	}

	fmt.Fprintln(globals.Stdout, "Current Configuration:")
	fmt.Fprintf(globals.Stdout, "  format: %s\n", cfg.Format)
	fmt.Fprintf(globals.Stdout, "  quiet: %v\n", cfg.Quiet)
	fmt.Fprintf(globals.Stdout, "  verbose: %v\n", cfg.Verbose)
	fmt.Fprintln(globals.Stdout, "Defaults:")
	fmt.Fprintf(globals.Stdout, "  port: %d\n", cfg.Defaults.Port)
	fmt.Fprintf(globals.Stdout, "  interval: %s\n", cfg.Defaults.Interval)
	fmt.Fprintf(globals.Stdout, "  timeout: %s\n", cfg.Defaults.Timeout)
	fmt.Fprintf(globals.Stdout, "  item: %s\n", cfg.Defaults.Item)
	fmt.Fprintf(globals.Stdout, "  position: %s\n", cfg.Defaults.Position)
	if cfg.Defaults.Selector != "" {
		fmt.Fprintf(globals.Stdout, "  selector: %s\n", cfg.Defaults.Selector)
	}
	if cfg.Defaults.TargetContains != "" {
		fmt.Fprintf(globals.Stdout, "  target_contains: %s\n", cfg.Defaults.TargetContains)
	}
	return nil
}
