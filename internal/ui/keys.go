package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Activity   key.Binding
	Escape     key.Binding

	// Menu
	PrevCategory key.Binding
	NextCategory key.Binding
	Up           key.Binding
	Down         key.Binding
	Top          key.Binding
	Bottom       key.Binding
	Add          key.Binding
	Decrease     key.Binding
	Remove       key.Binding
	PrevBanner   key.Binding
	NextBanner   key.Binding
	OpenBanner   key.Binding
	Cart         key.Binding
	Promo        key.Binding

	// Checkout
	NextField key.Binding
	PrevField key.Binding
	PrevDate  key.Binding
	NextDate  key.Binding
	Submit    key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Activity: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "Activity log"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Back to menu"),
		),

		PrevCategory: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/←", "Previous category"),
		),
		NextCategory: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/→", "Next category"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "Move down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "First item"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Last item"),
		),
		Add: key.NewBinding(
			key.WithKeys("+", "=", "enter", "a"),
			key.WithHelp("+/enter", "Add to cart"),
		),
		Decrease: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "One less"),
		),
		Remove: key.NewBinding(
			key.WithKeys("x", "delete"),
			key.WithHelp("x", "Remove from cart"),
		),
		PrevBanner: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "Previous banner"),
		),
		NextBanner: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "Next banner"),
		),
		OpenBanner: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "Open banner"),
		),
		Cart: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "Cart and checkout"),
		),
		Promo: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "Enter promo code"),
		),

		NextField: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab", "Next field"),
		),
		PrevField: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab", "Previous field"),
		),
		PrevDate: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "Earlier date"),
		),
		NextDate: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "Later date"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Place order"),
		),
	}
}
