// Package promo implements the promo code workflow of the checkout.
//
// A Reconciler owns the raw promo input, the normalized code, a single-entry
// cache of the last definitive verdict and the applied code. It never
// performs I/O itself: transitions return a Step describing the timer to
// start, and Due hands back the Request to run. Results come back through
// Resolve. This keeps the workflow deterministic and testable without
// goroutines.
//
// Debouncing uses a generation token. Every scheduled timer carries a
// sequence number and cancelling replaces the armed token, so only the most
// recently scheduled timer can trigger a validation. At most one validation
// is in flight; results for a code the customer has since changed, or that
// arrive after the cart was emptied, are discarded.
//
// Price turns a subtotal into the customer-facing quote: 5% off, rounded
// half up to the nearest 50 RSD.
package promo
