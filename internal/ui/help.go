package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

func (m Model) renderHelp() string {
	styles := m.theme.Styles()
	groups := []struct {
		title    string
		bindings []key.Binding
	}{
		{"Меню", []key.Binding{
			m.keys.PrevCategory, m.keys.NextCategory, m.keys.Up, m.keys.Down,
			m.keys.Top, m.keys.Bottom, m.keys.Add, m.keys.Decrease, m.keys.Remove,
		}},
		{"Баннеры", []key.Binding{m.keys.PrevBanner, m.keys.NextBanner, m.keys.OpenBanner}},
		{"Заказ", []key.Binding{
			m.keys.Cart, m.keys.Promo, m.keys.NextField, m.keys.PrevField,
			m.keys.PrevDate, m.keys.NextDate, m.keys.Submit, m.keys.Escape,
		}},
		{"Общее", []key.Binding{m.keys.Help, m.keys.CycleTheme, m.keys.Activity, m.keys.Quit}},
	}

	var b strings.Builder
	b.WriteString(styles.Logo.Render("foodikal") + styles.MutedText.Render("  тема: "+m.theme.Name))
	for _, g := range groups {
		b.WriteString("\n\n")
		b.WriteString(styles.AccentText.Render(g.title))
		for _, kb := range g.bindings {
			h := kb.Help()
			b.WriteString("\n  ")
			b.WriteString(styles.InfoText.Render(padRight(h.Key, 12)))
			b.WriteString(styles.Text.Render(h.Desc))
		}
	}
	b.WriteString("\n\n")
	b.WriteString(styles.FaintText.Render("Press any key to close"))

	box := styles.Focused.Render(b.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
