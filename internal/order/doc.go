// Package order holds the checkout side of the client: customer form
// validation, the delivery date picker rules, order request assembly and the
// customer-facing messages shown after a submit.
//
// Nothing here talks to the network. The shop controller validates a Form,
// builds a foodikal.CreateOrderRequest with Build and interprets the
// service's answer with Outcome.
package order
