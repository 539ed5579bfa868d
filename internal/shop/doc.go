// Package shop is the single owner of the client's mutable state.
//
// A Controller holds the cart ledger, the promo reconciler, the menu view
// state (active category, highlighted product, carousel slide) and the
// checkout state. Every input, whether a key press, an expired timer, a
// finished network call or a background refresh, arrives as an Action
// through Dispatch. Dispatch applies the transition synchronously and
// returns the Effects the runtime must carry out: timers to start, calls to
// make, focus changes and at most one Redraw.
//
// The controller never starts goroutines and never blocks. The UI turns
// effects into commands and feeds their results back as actions, so all
// state changes happen on one event loop.
package shop
