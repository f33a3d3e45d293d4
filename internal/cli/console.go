package cli

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/agisilaos/skydesk/internal/ui"
)

// cmdConsole launches the full-screen admin console. A stored session is
// resumed when it still decodes to an admin role; otherwise the console
// opens on the login gate.
func (a App) cmdConsole(g globalFlags, args []string) error {
	if len(args) != 0 {
		return newExitError(ExitInvalidUsage, "usage: skydesk console")
	}
	e, err := a.environment(g)
	if err != nil {
		return err
	}
	app := ui.NewApp(e.client, e.sess, e.cfg)
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return wrapExitError(ExitGenericFailure, err)
	}
	return nil
}
