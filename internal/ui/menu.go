package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/foodikal/internal/shop"
	"github.com/five82/foodikal/internal/state"
)

const (
	cartPanelWidth = 40
	// Below this width the cart panel moves under the item list.
	wideLayout = 90
)

func (m Model) handleMenuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.PrevCategory):
		return m, m.stepCategory(-1)
	case key.Matches(msg, m.keys.NextCategory):
		return m, m.stepCategory(1)
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.Top):
		m.moveCursor(-len(m.view.Items))
	case key.Matches(msg, m.keys.Bottom):
		m.moveCursor(len(m.view.Items))
	case key.Matches(msg, m.keys.Add):
		if id, ok := m.cursorItem(); ok {
			return m, m.dispatch(shop.AddItem{ID: id, Qty: 1})
		}
	case key.Matches(msg, m.keys.Decrease):
		if id, ok := m.cursorItem(); ok {
			if qty := m.view.Quantities[id]; qty > 0 {
				return m, m.dispatch(shop.SetQuantity{ID: id, Qty: qty - 1})
			}
		}
	case key.Matches(msg, m.keys.Remove):
		if id, ok := m.cursorItem(); ok {
			return m, m.dispatch(shop.RemoveItem{ID: id})
		}
	case key.Matches(msg, m.keys.PrevBanner):
		return m, m.dispatch(shop.NextSlide{Step: -1})
	case key.Matches(msg, m.keys.NextBanner):
		return m, m.dispatch(shop.NextSlide{Step: 1})
	case key.Matches(msg, m.keys.OpenBanner):
		if m.view.Slide < len(m.view.Banners) {
			target := m.view.Banners[m.view.Slide].Target()
			if target != "" {
				return m, m.dispatch(shop.Navigate{Target: target})
			}
		}
	case key.Matches(msg, m.keys.Cart):
		return m, m.openCheckout(fieldName)
	case key.Matches(msg, m.keys.Promo):
		return m, m.openCheckout(fieldPromo)
	}
	return m, nil
}

func (m *Model) stepCategory(step int) tea.Cmd {
	names := m.view.Categories
	if len(names) == 0 {
		return nil
	}
	idx := 0
	for i, name := range names {
		if name == m.view.Active {
			idx = i
		}
	}
	idx += step
	if idx < 0 || idx >= len(names) {
		return nil
	}
	return m.dispatch(shop.SelectCategory{Name: names[idx]})
}

func (m *Model) moveCursor(delta int) {
	if len(m.view.Items) == 0 {
		m.cursor = 0
		return
	}
	m.cursor = min(max(m.cursor+delta, 0), len(m.view.Items)-1)
	m.ensureVisible()
}

func (m Model) cursorItem() (int, bool) {
	if m.cursor < 0 || m.cursor >= len(m.view.Items) {
		return 0, false
	}
	return m.view.Items[m.cursor].ID, true
}

// ensureVisible scrolls the item list so the cursor row is on screen.
func (m *Model) ensureVisible() {
	rows := m.listRows()
	if rows <= 0 {
		return
	}
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+rows {
		m.offset = m.cursor - rows + 1
	}
	maxOffset := max(len(m.view.Items)-rows, 0)
	m.offset = min(max(m.offset, 0), maxOffset)
}

// listRows is the number of item rows that fit in the list panel.
func (m Model) listRows() int {
	// header, tabs, carousel, footer, panel border and the detail block
	rows := m.height - 4 - 2 - 2
	if m.width < wideLayout {
		rows -= len(m.view.Lines) + 5
	}
	return max(rows, 3)
}

func (m Model) renderMenu() string {
	styles := m.theme.Styles()
	sections := []string{
		m.renderHeader(styles),
		m.renderTabs(styles),
		m.renderCarousel(styles),
	}

	list := m.renderItems(styles)
	cartPanel := m.renderCartPanel(styles)
	if m.width >= wideLayout {
		listWidth := m.width - cartPanelWidth - 4
		left := styles.Focused.Width(listWidth).Render(list)
		right := styles.Panel.Width(cartPanelWidth).Render(cartPanel)
		sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top, left, right))
	} else {
		sections = append(sections,
			styles.Focused.Width(m.width-2).Render(list),
			styles.Panel.Width(m.width-2).Render(cartPanel))
	}

	body := lipgloss.JoinVertical(lipgloss.Left, sections...)
	gap := m.height - lipgloss.Height(body) - 1
	if gap > 0 {
		body += strings.Repeat("\n", gap)
	}
	return body + "\n" + m.renderFooter(styles, m.menuHints())
}

func (m Model) renderHeader(styles Styles) string {
	logo := styles.Logo.Render("foodikal")

	var source string
	switch {
	case m.view.Offline:
		source = styles.DangerText.Render("offline")
	case m.view.Source == state.SourceLive:
		source = styles.SuccessText.Render("live")
	default:
		source = styles.WarningText.Render(m.view.Source.String())
	}

	count := 0
	for _, l := range m.view.Lines {
		count += l.Quantity
	}
	cartInfo := styles.MutedText.Render(fmt.Sprintf("корзина: %d · %s", count, formatRSD(m.view.Quote.Total)))

	left := logo + "  " + source
	spacing := max(m.width-lipgloss.Width(left)-lipgloss.Width(cartInfo)-2, 1)
	return styles.Header.Width(m.width).Render(left + strings.Repeat(" ", spacing) + cartInfo)
}

func (m Model) renderTabs(styles Styles) string {
	if len(m.view.Categories) == 0 {
		return styles.MutedText.Render(" Меню недоступно")
	}
	tabs := make([]string, 0, len(m.view.Categories))
	for _, name := range m.view.Categories {
		if name == m.view.Active {
			tabs = append(tabs, styles.ActiveTab.Render(name))
		} else {
			tabs = append(tabs, styles.Tab.Render(name))
		}
	}
	return lipgloss.NewStyle().MaxWidth(m.width).Render(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
}

func (m Model) renderCarousel(styles Styles) string {
	if len(m.view.Banners) == 0 {
		return ""
	}
	slide := min(m.view.Slide, len(m.view.Banners)-1)
	banner := m.view.Banners[slide]
	pos := styles.MutedText.Render(fmt.Sprintf("◀ %d/%d ▶", slide+1, len(m.view.Banners)))
	name := styles.AccentText.Render(truncate(banner.Name, m.width-20))
	line := " " + pos + "  " + name
	if banner.Target() != "" {
		line += styles.FaintText.Render("  [o]")
	}
	return line
}

func (m Model) renderItems(styles Styles) string {
	if m.view.EmptyMessage != "" {
		return styles.MutedText.Render(m.view.EmptyMessage)
	}
	if len(m.view.Items) == 0 {
		return styles.MutedText.Render("Загрузка меню...")
	}

	width := m.width - 6
	if m.width >= wideLayout {
		width = m.width - cartPanelWidth - 10
	}

	rows := m.listRows()
	end := min(m.offset+rows, len(m.view.Items))
	var b strings.Builder
	for i := m.offset; i < end; i++ {
		item := m.view.Items[i]
		price := formatRSD(item.Price)
		qty := ""
		if q := m.view.Quantities[item.ID]; q > 0 {
			qty = fmt.Sprintf(" ×%d", q)
		}
		nameWidth := max(width-lipgloss.Width(price)-lipgloss.Width(qty)-3, 4)
		name := padRight(truncate(item.Name, nameWidth), nameWidth)

		var row string
		switch {
		case i == m.cursor:
			row = styles.Selected.Render(" " + name + " " + price + qty + " ")
		case item.ID == m.view.Highlight:
			row = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Highlight)).Bold(true).
				Render(" " + name + " " + price + qty)
		default:
			row = " " + styles.Text.Render(name) + " " + styles.Price.Render(price) + styles.SuccessText.Render(qty)
		}
		b.WriteString(row)
		if i < end-1 {
			b.WriteString("\n")
		}
	}

	if m.cursor < len(m.view.Items) {
		desc := strings.TrimSpace(m.view.Items[m.cursor].Description)
		b.WriteString("\n\n")
		b.WriteString(styles.MutedText.Render(truncate(desc, width)))
	}
	return b.String()
}

func (m Model) renderCartPanel(styles Styles) string {
	var b strings.Builder
	b.WriteString(styles.AccentText.Render("Корзина"))
	b.WriteString("\n")
	if len(m.view.Lines) == 0 {
		b.WriteString(styles.MutedText.Render("Корзина пуста"))
		return b.String()
	}
	for _, l := range m.view.Lines {
		b.WriteString(truncate(fmt.Sprintf("%s × %d", l.Name, l.Quantity), cartPanelWidth-12))
		b.WriteString(" ")
		b.WriteString(styles.Price.Render(formatRSD(l.Total())))
		b.WriteString("\n")
	}
	b.WriteString(m.renderTotals(styles))
	return b.String()
}

// renderTotals shows the total, struck through next to the discounted one
// when a promo code is applied.
func (m Model) renderTotals(styles Styles) string {
	q := m.view.Quote
	if !q.Discounted() {
		return styles.Text.Bold(true).Render("Итого: " + formatRSD(q.Total))
	}
	return styles.Strike.Render(formatRSD(q.Subtotal)) + " " +
		styles.SuccessText.Render("Итого: "+formatRSD(q.Total)) + "\n" +
		styles.MutedText.Render(fmt.Sprintf("Промокод %s: -%s", m.view.AppliedCode, formatRSD(q.Discount)))
}

func (m Model) renderFooter(styles Styles, hints []key.Binding) string {
	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		help := h.Help()
		parts = append(parts, styles.AccentText.Render(help.Key)+" "+help.Desc)
	}
	return styles.Footer.Width(m.width).MaxWidth(m.width).MaxHeight(1).Render(strings.Join(parts, "  "))
}

func (m Model) menuHints() []key.Binding {
	return []key.Binding{m.keys.PrevCategory, m.keys.Add, m.keys.Decrease, m.keys.Cart, m.keys.Promo, m.keys.Help, m.keys.Quit}
}
