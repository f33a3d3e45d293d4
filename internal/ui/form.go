package ui

import (
	"strings"

	"github.com/agisilaos/skydesk/internal/ui/components"
)

// formLines renders labelled fields with the focused one highlighted and any
// per-field error attached beneath its field.
func formLines(styles Styles, focus int, labels, values, keys []string, errs map[string]string) string {
	var b strings.Builder
	for i, label := range labels {
		if i > 0 {
			b.WriteByte('\n')
		}
		marker := "  "
		rendered := label
		if i == focus {
			marker = styles.Accent.Render("> ")
			rendered = styles.Accent.Render(label)
		}
		value := values[i]
		if i == focus {
			value += "█"
		}
		b.WriteString(marker + rendered + ": " + value)
		if msg, ok := errs[keys[i]]; ok {
			b.WriteString("\n    " + styles.Error.Render(msg))
		}
	}
	return b.String()
}

func renderForm(styles Styles, title string, width int, submitting bool, banner, fields string) string {
	var b strings.Builder
	b.WriteString(fields)
	b.WriteString("\n\n")
	if submitting {
		b.WriteString(styles.Muted.Render("Saving…"))
	} else {
		b.WriteString(styles.Muted.Render("tab next field  enter save  esc cancel"))
	}
	if banner != "" {
		b.WriteString("\n\n" + styles.Error.Render(banner))
	}
	return components.TitledBox(title, b.String(), width)
}

// selectorValue renders a cycling reference selector's current choice.
func selectorValue(label string, focused bool) string {
	if label == "" {
		label = "(none)"
	}
	if focused {
		return "◀ " + label + " ▶"
	}
	return label
}
