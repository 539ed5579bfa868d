package promo

const (
	// DiscountPercent is the promo discount applied to the subtotal.
	DiscountPercent = 5
	// RoundingStep is the granularity of discounted totals in RSD.
	RoundingStep = 50
)

// Quote is the price breakdown shown to the customer.
type Quote struct {
	Subtotal int
	Discount int
	Total    int
}

// Discounted reports whether the quote shows a reduced total. Very small
// carts can round up instead, in which case no discount line is shown.
func (q Quote) Discounted() bool {
	return q.Discount > 0
}

// Price computes the quote for subtotal. With a promo applied the total is
// subtotal × 0.95 rounded half up to the nearest RoundingStep; the discount
// is whatever that rounding leaves.
func Price(subtotal int, applied bool) Quote {
	if !applied || subtotal <= 0 {
		return Quote{Subtotal: subtotal, Total: subtotal}
	}
	// round(subtotal*(100-p)/100 / step) in integers, half up.
	num := subtotal * (100 - DiscountPercent)
	den := 100 * RoundingStep
	total := (num + den/2) / den * RoundingStep
	return Quote{Subtotal: subtotal, Discount: subtotal - total, Total: total}
}
