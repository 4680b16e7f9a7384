package cli

import "fmt"

// Version is set at build time via -ldflags.
var Version = "dev"

// VersionCmd prints the version.
type VersionCmd struct{}

// Run executes the version command
func (c *VersionCmd) Run(globals *Globals) error {
	if globals.Format == "ndjson" {
		fmt.Fprintf(globals.Stdout, `{"type":"version","version":%q}`+"\n", Version)
		return nil
	}
	fmt.Fprintf(globals.Stdout, "brainbar %s\n", Version)
	return nil
}
