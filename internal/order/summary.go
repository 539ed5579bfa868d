package order

import (
	"fmt"
	"strings"

	"github.com/five82/foodikal/internal/cart"
	"github.com/five82/foodikal/internal/promo"
)

// Summary renders the cart as plain text, as shown on the checkout screen
// and printed by the CLI.
func Summary(lines []cart.Line, q promo.Quote, appliedCode string) string {
	var b strings.Builder
	if len(lines) == 0 {
		b.WriteString("Корзина пуста\n")
		return b.String()
	}
	b.WriteString("Корзина:\n")
	for _, l := range lines {
		fmt.Fprintf(&b, "  %s × %d = %d RSD\n", l.Name, l.Quantity, l.Total())
	}
	if appliedCode != "" && q.Discounted() {
		fmt.Fprintf(&b, "Итого: %d RSD\n", q.Subtotal)
		fmt.Fprintf(&b, "Промокод %s: -%d RSD\n", appliedCode, q.Discount)
		fmt.Fprintf(&b, "Итого со скидкой: %d RSD\n", q.Total)
		return b.String()
	}
	fmt.Fprintf(&b, "Итого: %d RSD\n", q.Total)
	return b.String()
}
