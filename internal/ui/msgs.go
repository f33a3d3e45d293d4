package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/agisilaos/skydesk/internal/state"
)

// errMsg carries a failed API call back into the loop. scope names the
// screen whose in-flight flags it clears; unauthorized errors are handled
// globally before scope dispatch.
type errMsg struct {
	scope string
	row   string
	err   error
}

// rowID identifies the row whose in-flight action failed, when the error
// came from a row-scoped operation.
func (e errMsg) rowID() (string, bool) {
	return e.row, e.row != ""
}

// sessionExpiredMsg is broadcast when the backend rejects the bearer token.
// Every screen releases its in-flight submits, confirms and row actions: the
// request that would have completed them died with the session.
type sessionExpiredMsg struct{}

const sessionExpiredText = "Session expired; sign in and try again."

// notifyMsg feeds the shared transient feedback banner.
type notifyMsg struct {
	severity state.Severity
	message  string
}

type feedbackExpiredMsg struct{ seq int }

func notify(severity state.Severity, message string) tea.Cmd {
	return func() tea.Msg { return notifyMsg{severity: severity, message: message} }
}
