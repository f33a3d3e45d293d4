package ui

import tea "github.com/charmbracelet/bubbletea"

func isKey(msg tea.KeyMsg, names ...string) bool {
	s := msg.String()
	for _, name := range names {
		if s == name {
			return true
		}
	}
	return false
}

func isEnter(msg tea.KeyMsg) bool { return msg.Type == tea.KeyEnter }

func isBack(msg tea.KeyMsg) bool { return msg.Type == tea.KeyEsc }

func isUp(msg tea.KeyMsg) bool { return isKey(msg, "up", "k") }

func isDown(msg tea.KeyMsg) bool { return isKey(msg, "down", "j") }

// editBuffer applies a key to a plain text buffer; handled reports whether
// the key was consumed.
func editBuffer(buf string, msg tea.KeyMsg) (string, bool) {
	switch msg.Type {
	case tea.KeyRunes:
		return buf + string(msg.Runes), true
	case tea.KeySpace:
		return buf + " ", true
	case tea.KeyBackspace:
		if buf == "" {
			return buf, true
		}
		runes := []rune(buf)
		return string(runes[:len(runes)-1]), true
	case tea.KeyCtrlU:
		return "", true
	}
	return buf, false
}
