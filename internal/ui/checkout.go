package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/foodikal/internal/order"
	"github.com/five82/foodikal/internal/promo"
	"github.com/five82/foodikal/internal/shop"
)

var fieldLabels = [...]string{
	fieldPromo:    "Промокод",
	fieldName:     "Имя",
	fieldContact:  "Контакт",
	fieldAddress:  "Адрес",
	fieldComments: "Комментарий",
	fieldDate:     "Дата доставки",
}

const (
	submitLabel     = "Оформить заказ"
	submittingLabel = "Отправка..."
)

func (m *Model) openCheckout(focus field) tea.Cmd {
	m.screen = screenCheckout
	m.setFocus(focus)
	return m.dispatch(shop.OpenCart{})
}

func (m Model) handleCheckoutKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.screen = screenMenu
		m.blurAll()
		return m, nil
	case msg.String() == "tab" || msg.String() == "shift+tab":
		if msg.String() == "tab" {
			m.setFocus((m.focus + 1) % fieldCount)
		} else {
			m.setFocus((m.focus + fieldCount - 1) % fieldCount)
		}
		return m, nil
	case key.Matches(msg, m.keys.NextField):
		m.setFocus(min(m.focus+1, fieldSubmit))
		return m, nil
	case key.Matches(msg, m.keys.PrevField):
		m.setFocus(max(m.focus-1, fieldPromo))
		return m, nil
	}

	switch m.focus {
	case fieldDate:
		switch {
		case key.Matches(msg, m.keys.PrevDate):
			return m, m.stepDate(-1)
		case key.Matches(msg, m.keys.NextDate):
			return m, m.stepDate(1)
		case key.Matches(msg, m.keys.Submit):
			m.setFocus(fieldSubmit)
		}
		return m, nil
	case fieldSubmit:
		if key.Matches(msg, m.keys.Submit) {
			return m, m.submit()
		}
		return m, nil
	}

	if key.Matches(msg, m.keys.Submit) {
		m.setFocus(m.focus + 1)
		return m, nil
	}
	return m, m.updateInput(msg)
}

// updateInput forwards a key to the focused text field. Edits to the promo
// field go through the controller.
func (m *Model) updateInput(msg tea.KeyMsg) tea.Cmd {
	if m.focus == fieldPromo {
		before := m.promoInput.Value()
		var cmd tea.Cmd
		m.promoInput, cmd = m.promoInput.Update(msg)
		if after := m.promoInput.Value(); after != before {
			return tea.Batch(cmd, m.dispatch(shop.SetPromoText{Text: after}))
		}
		return cmd
	}
	idx := int(m.focus - fieldName)
	var cmd tea.Cmd
	m.formInputs[idx], cmd = m.formInputs[idx].Update(msg)
	return cmd
}

func (m *Model) submit() tea.Cmd {
	if m.view.Submitting {
		return nil
	}
	m.submitted = m.currentForm()
	return m.dispatch(shop.Checkout{Form: m.submitted})
}

// stepDate moves the selection to the next available date in direction dir.
func (m *Model) stepDate(dir int) tea.Cmd {
	dates := m.view.Dates
	idx := -1
	if dir < 0 {
		idx = len(dates)
	}
	for i, d := range dates {
		if d.Value == m.view.Date {
			idx = i
		}
	}
	for i := idx + dir; i >= 0 && i < len(dates); i += dir {
		if dates[i].Available {
			return m.dispatch(shop.SelectDate{Value: dates[i].Value})
		}
	}
	return nil
}

func (m *Model) setFocus(f field) {
	m.blurAll()
	m.focus = f
	switch {
	case f == fieldPromo:
		m.promoInput.Focus()
	case f >= fieldName && f <= fieldComments:
		m.formInputs[f-fieldName].Focus()
	}
}

func (m *Model) blurAll() {
	m.promoInput.Blur()
	for i := range m.formInputs {
		m.formInputs[i].Blur()
	}
}

func (m *Model) fillForm(f order.Form) {
	values := []string{f.Name, f.Contact, f.Address, f.Comments}
	for i, v := range values {
		m.formInputs[i].SetValue(v)
	}
}

func (m Model) currentForm() order.Form {
	return order.Form{
		Name:     m.formInputs[fieldName-fieldName].Value(),
		Contact:  m.formInputs[fieldContact-fieldName].Value(),
		Address:  m.formInputs[fieldAddress-fieldName].Value(),
		Comments: m.formInputs[fieldComments-fieldName].Value(),
		Date:     m.view.Date,
	}
}

func (m Model) renderCheckout() string {
	styles := m.theme.Styles()
	width := min(m.width-2, 80)

	summary := styles.Panel.Width(width).Render(strings.TrimRight(m.view.Summary(), "\n"))

	var form strings.Builder
	form.WriteString(m.renderField(styles, fieldPromo, m.promoInput.View()))
	if status := m.renderPromoStatus(styles); status != "" {
		form.WriteString("\n" + strings.Repeat(" ", 16) + status)
	}
	form.WriteString("\n\n")
	for f := fieldName; f <= fieldComments; f++ {
		form.WriteString(m.renderField(styles, f, m.formInputs[f-fieldName].View()))
		form.WriteString("\n")
	}
	form.WriteString(m.renderField(styles, fieldDate, m.renderDates(styles)))
	form.WriteString("\n\n")
	form.WriteString(m.renderSubmit(styles))
	if n := m.view.Notice; n.Kind != shop.NoticeNone {
		form.WriteString("\n\n")
		if n.Kind == shop.NoticeSuccess {
			form.WriteString(styles.SuccessText.Render("✓ " + n.Text))
		} else {
			form.WriteString(styles.DangerText.Render(n.Text))
		}
	}

	formPanel := styles.Focused.Width(width).Render(form.String())
	body := lipgloss.JoinVertical(lipgloss.Left, m.renderHeader(styles), summary, formPanel)
	gap := m.height - lipgloss.Height(body) - 1
	if gap > 0 {
		body += strings.Repeat("\n", gap)
	}
	hints := []key.Binding{m.keys.NextField, m.keys.PrevField, m.keys.Submit, m.keys.Escape}
	return body + "\n" + m.renderFooter(styles, hints)
}

func (m Model) renderField(styles Styles, f field, value string) string {
	label := padRight(fieldLabels[f], 14)
	if m.focus == f {
		label = styles.AccentText.Render("› " + label)
	} else {
		label = styles.MutedText.Render("  " + label)
	}
	return label + value
}

// renderPromoStatus colors the promo message by its outcome.
func (m Model) renderPromoStatus(styles Styles) string {
	d := m.view.PromoDisplay
	switch {
	case d.Message == "":
		return ""
	case d.Status == promo.StatusApplied:
		return styles.SuccessText.Render(d.Message)
	case d.Status == promo.StatusChecking:
		return styles.InfoText.Render(d.Message)
	case d.Status.IsError():
		return styles.DangerText.Render(d.Message)
	default:
		return styles.MutedText.Render(d.Message)
	}
}

func (m Model) renderDates(styles Styles) string {
	if len(m.view.Dates) == 0 {
		return styles.MutedText.Render("нет доступных дат")
	}
	parts := make([]string, 0, len(m.view.Dates))
	for _, d := range m.view.Dates {
		switch {
		case d.Value == m.view.Date:
			parts = append(parts, styles.ActiveTab.Render(d.Label))
		case d.Available:
			parts = append(parts, styles.Tab.Render(d.Label))
		default:
			parts = append(parts, styles.Strike.Padding(0, 1).Render(d.Label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m Model) renderSubmit(styles Styles) string {
	label := submitLabel
	if m.view.Submitting {
		label = submittingLabel
	}
	if m.focus == fieldSubmit && !m.view.Submitting {
		return styles.ActiveTab.Render(label)
	}
	return styles.Tab.Render("[ " + label + " ]")
}
