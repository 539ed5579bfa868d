package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/foodikal/internal/logtail"
)

func (m Model) renderActivity() string {
	styles := m.theme.Styles()
	title := styles.Header.Width(m.width).Render(styles.Logo.Render("Activity") + "  " + styles.MutedText.Render(m.logPath))
	footer := m.renderFooter(styles, []key.Binding{m.keys.Escape, m.keys.Up, m.keys.Down})
	return lipgloss.JoinVertical(lipgloss.Left, title, m.activity.View(), footer)
}

// renderActivityLines colors log entries by level.
func (m Model) renderActivityLines(msg activityMsg) string {
	styles := m.theme.Styles()
	if msg.err != nil {
		return styles.DangerText.Render("Cannot read log: " + msg.err.Error())
	}
	if len(msg.entries) == 0 {
		return styles.MutedText.Render("No log entries yet")
	}
	lines := make([]string, 0, len(msg.entries))
	for _, e := range msg.entries {
		lines = append(lines, levelStyle(styles, e).Render(truncate(e.Format(), m.width)))
	}
	return strings.Join(lines, "\n")
}

func levelStyle(styles Styles, e logtail.Entry) lipgloss.Style {
	switch strings.ToUpper(e.Level) {
	case "ERROR":
		return styles.DangerText
	case "WARN":
		return styles.WarningText
	case "DEBUG":
		return styles.FaintText
	default:
		return styles.Text
	}
}
