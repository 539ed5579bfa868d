package promo

import "testing"

func TestPrice(t *testing.T) {
	tests := []struct {
		name     string
		subtotal int
		applied  bool
		want     Quote
	}{
		{"not applied", 437, false, Quote{Subtotal: 437, Total: 437}},
		{"applied rounds down", 437, true, Quote{Subtotal: 437, Discount: 37, Total: 400}},
		{"exact", 1000, true, Quote{Subtotal: 1000, Discount: 50, Total: 950}},
		{"half rounds up", 1500, true, Quote{Subtotal: 1500, Discount: 50, Total: 1450}},
		{"larger order", 2975, true, Quote{Subtotal: 2975, Discount: 125, Total: 2850}},
		{"empty cart", 0, true, Quote{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Price(tt.subtotal, tt.applied); got != tt.want {
				t.Fatalf("Price(%d, %v) = %+v, want %+v", tt.subtotal, tt.applied, got, tt.want)
			}
		})
	}
}

func TestQuoteDiscounted(t *testing.T) {
	if Price(437, false).Discounted() {
		t.Fatal("undiscounted quote reported as discounted")
	}
	if !Price(437, true).Discounted() {
		t.Fatal("discounted quote not reported")
	}
	// 27 * 0.95 = 25.65 rounds up to one step.
	if q := Price(27, true); q.Total != 50 || q.Discounted() {
		t.Fatalf("Price(27) = %+v, want total 50 without discount line", q)
	}
}
