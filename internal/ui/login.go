package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/agisilaos/skydesk/internal/api"
	"github.com/agisilaos/skydesk/internal/model"
	"github.com/agisilaos/skydesk/internal/session"
	"github.com/agisilaos/skydesk/internal/ui/components"
)

type loginOKMsg struct{ token string }

const (
	loginFieldUsername = iota
	loginFieldPassword
	loginFieldCount
)

// LoginModel is the credentials gate. The console is admin-only: a valid
// token whose role claim is not ADMIN is rejected without being stored.
type LoginModel struct {
	client *api.Client
	styles Styles

	username   string
	password   string
	focus      int
	submitting bool
	errText    string
	width      int
}

func NewLoginModel(client *api.Client, styles Styles) LoginModel {
	return LoginModel{client: client, styles: styles}
}

func (m *LoginModel) Reset(message string) {
	m.username = ""
	m.password = ""
	m.focus = 0
	m.submitting = false
	m.errText = message
}

func (m LoginModel) Update(msg tea.Msg) (LoginModel, tea.Cmd) {
	switch msg := msg.(type) {
	case loginOKMsg:
		m.submitting = false
		if session.RoleFromToken(msg.token) != session.AdminRole {
			m.errText = "Admin access required."
			return m, nil
		}
		return m, nil

	case errMsg:
		if msg.scope != "login" {
			return m, nil
		}
		m.submitting = false
		m.errText = msg.err.Error()
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if m.submitting {
			return m, nil
		}
		switch {
		case isKey(msg, "tab", "down"):
			m.focus = (m.focus + 1) % loginFieldCount
		case isKey(msg, "shift+tab", "up"):
			m.focus = (m.focus + loginFieldCount - 1) % loginFieldCount
		case isEnter(msg):
			return m.submit()
		default:
			field := &m.username
			if m.focus == loginFieldPassword {
				field = &m.password
			}
			if buf, ok := editBuffer(*field, msg); ok {
				*field = buf
				m.errText = ""
			}
		}
	}
	return m, nil
}

func (m LoginModel) submit() (LoginModel, tea.Cmd) {
	if m.username == "" || m.password == "" {
		m.errText = "Username and password are required."
		return m, nil
	}
	m.submitting = true
	m.errText = ""
	client := m.client
	creds := model.Credentials{Username: m.username, Password: m.password}
	return m, func() tea.Msg {
		token, err := client.Login(creds)
		if err != nil {
			return errMsg{scope: "login", err: err}
		}
		return loginOKMsg{token: token}
	}
}

func (m LoginModel) View() string {
	masked := ""
	for range m.password {
		masked += "•"
	}
	labels := []string{"Username", "Password"}
	values := []string{m.username, masked}
	keys := []string{"username", "password"}
	body := formLines(m.styles, m.focus, labels, values, keys, nil)
	if m.submitting {
		body += "\n\n" + m.styles.Muted.Render("Signing in…")
	} else {
		body += "\n\n" + m.styles.Muted.Render("enter sign in  ctrl+c quit")
	}
	if m.errText != "" {
		body += "\n\n" + m.styles.Error.Render(m.errText)
	}
	return components.Indent(components.TitledBox("SkyDesk — Sign In", body, m.width), 1)
}
