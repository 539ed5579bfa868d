// Package foodikal provides an HTTP client for the foodikal menu and order API.
//
// # Overview
//
// The service is a JSON-over-HTTP black box exposing four endpoints:
//
//   - GET /api/menu: categorized catalog, object key order is display order
//   - GET /api/banners: carousel banners
//   - POST /api/validate_promo: checks a promo code against cart contents
//   - POST /api/create_order: submits an order
//
// # Client Usage
//
//	client, err := foodikal.NewClient("https://foodikal-ny-cors-wrapper.x-gs-x.workers.dev")
//	if err != nil {
//		log.Fatalf("failed to create client: %v", err)
//	}
//
//	catalog, err := client.FetchMenu(ctx)
//	if err != nil {
//		log.Printf("menu fetch failed: %v", err)
//	}
//
// # Error Handling
//
// Two failure classes are kept apart:
//
//   - Transport errors (dial, timeout, non-2xx on the GET endpoints, malformed
//     JSON) are returned as wrapped errors.
//   - Application errors (success=false) are returned as *APIError for menu,
//     banners and orders. For promo validation they are not errors at all: the
//     result is simply Valid=false with the service's message.
//
// Create-order rejections carry per-field Details; the "promo_code" key is
// the one callers care about, see APIError.Detail.
//
// Every request carries a fresh X-Request-ID so individual calls can be traced
// in the service logs.
//
// # Design Rationale
//
// No caching and no retries live here. The promo reconciler owns the
// validation cache and the refresher owns the refresh cadence.
package foodikal
