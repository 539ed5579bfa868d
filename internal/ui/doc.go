// Package ui renders the shop in the terminal with Bubble Tea. The model owns
// only widget state (cursor, focus, text inputs); everything else comes from
// the shop controller, whose effects are turned into tea.Cmd values here.
package ui
