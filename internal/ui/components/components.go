package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().Bold(true)

	errorBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("161")).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// BoxContentWidth is the usable inner width of a Box at the given terminal
// width.
func BoxContentWidth(width int) int {
	w := width - 6
	if w < 20 {
		w = 20
	}
	return w
}

func Box(content string, width int) string {
	return boxStyle.Width(BoxContentWidth(width) + 2).Render(content)
}

func TitledBox(title, content string, width int) string {
	return Box(titleStyle.Render(title)+"\n\n"+content, width)
}

func ErrorBox(title, content string, width int) string {
	return errorBorder.Width(BoxContentWidth(width) + 2).Render(titleStyle.Render(title) + "\n" + content)
}

// InputDialog renders a one-line prompt with the live buffer and cursor.
func InputDialog(prompt, buf string) string {
	return titleStyle.Render(prompt) + "\n\n> " + buf + "█"
}

func ConfirmDialog(title, question string) string {
	return titleStyle.Render(title) + "\n\n" + question + "\n\n" +
		labelStyle.Render("enter: confirm   esc: cancel")
}

func Indent(content string, n int) string {
	pad := strings.Repeat(" ", n)
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = pad + line
	}
	return strings.Join(lines, "\n")
}

func CenterLine(line string, width int) string {
	w := lipgloss.Width(line)
	if w >= width {
		return line
	}
	return strings.Repeat(" ", (width-w)/2) + line
}

type TableRow struct {
	Label string
	Value string
}

// Table renders label/value rows with aligned labels under a titled box.
func Table(title string, rows []TableRow, width int) string {
	labelWidth := 0
	for _, r := range rows {
		if len(r.Label) > labelWidth {
			labelWidth = len(r.Label)
		}
	}
	var b strings.Builder
	for i, r := range rows {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(labelStyle.Render(fmt.Sprintf("%-*s", labelWidth, r.Label)))
		b.WriteString("  ")
		b.WriteString(r.Value)
	}
	return TitledBox(title, b.String(), width)
}

// Truncate shortens a line to fit, adding an ellipsis.
func Truncate(s string, width int) string {
	if width <= 0 || lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	if width <= 1 {
		return string(runes[:1])
	}
	if len(runes) > width-1 {
		runes = runes[:width-1]
	}
	return string(runes) + "…"
}

// List is a cursor-backed scrolling window over pre-rendered item lines.
type List struct {
	items  []string
	cursor int
	offset int
	height int
}

func NewList(height int) *List {
	if height <= 0 {
		height = 10
	}
	return &List{height: height}
}

func (l *List) SetItems(items []string) {
	l.items = items
	if l.cursor >= len(items) {
		l.cursor = len(items) - 1
	}
	if l.cursor < 0 {
		l.cursor = 0
	}
	l.scroll()
}

func (l *List) Len() int { return len(l.items) }

func (l *List) Cursor() int { return l.cursor }

func (l *List) SetCursor(i int) {
	if i < 0 {
		i = 0
	}
	if i >= len(l.items) {
		i = len(l.items) - 1
	}
	if i < 0 {
		i = 0
	}
	l.cursor = i
	l.scroll()
}

func (l *List) Up()   { l.SetCursor(l.cursor - 1) }
func (l *List) Down() { l.SetCursor(l.cursor + 1) }

func (l *List) scroll() {
	if l.cursor < l.offset {
		l.offset = l.cursor
	}
	if l.cursor >= l.offset+l.height {
		l.offset = l.cursor - l.height + 1
	}
	if l.offset < 0 {
		l.offset = 0
	}
}

// Render draws the visible window, marking the cursor row.
func (l *List) Render(width int) string {
	if len(l.items) == 0 {
		return labelStyle.Render("(empty)")
	}
	end := l.offset + l.height
	if end > len(l.items) {
		end = len(l.items)
	}
	var b strings.Builder
	for i := l.offset; i < end; i++ {
		if i > l.offset {
			b.WriteByte('\n')
		}
		prefix := "  "
		if i == l.cursor {
			prefix = "> "
		}
		b.WriteString(prefix + Truncate(l.items[i], width-len(prefix)))
	}
	return b.String()
}
