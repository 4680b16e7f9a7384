package cli

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

var accentStyle = lipgloss.NewStyle().Bold(true)

// accent bolds s when the command writes to a real terminal; piped output
// stays plain so agents and scripts never see escape codes.
func accent(globals *Globals, s string) string {
	f, ok := globals.Stdout.(*os.File)
	if !ok || !isatty.IsTerminal(f.Fd()) {
		return s
	}
	return accentStyle.Render(s)
}
