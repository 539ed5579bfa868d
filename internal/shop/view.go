package shop

import (
	"github.com/five82/foodikal/internal/cart"
	"github.com/five82/foodikal/internal/foodikal"
	"github.com/five82/foodikal/internal/order"
	"github.com/five82/foodikal/internal/promo"
	"github.com/five82/foodikal/internal/state"
)

// View is everything the UI needs to paint one frame.
type View struct {
	Categories []string
	Active     string
	Items      []foodikal.MenuItem
	Highlight  int
	// EmptyMessage is set when the active category has no items.
	EmptyMessage string

	Banners []foodikal.Banner
	Slide   int

	Lines      []cart.Line
	Quantities map[int]int
	Quote      promo.Quote

	PromoInput   string
	PromoDisplay promo.Display
	AppliedCode  string

	Dates      []order.DeliveryDate
	Date       string
	Form       order.Form
	Submitting bool
	Notice     Notice

	Source  state.Source
	Offline bool
}

// View returns the current frame.
func (c *Controller) View() View {
	snap := c.store.Snapshot()
	v := View{
		Categories:   snap.Catalog.Names(),
		Active:       c.active,
		Highlight:    c.highlight,
		Banners:      snap.Banners,
		Slide:        c.slide,
		Lines:        c.ledger.Lines(),
		Quantities:   make(map[int]int),
		Quote:        c.promo.Quote(c.ledger.Subtotal()),
		PromoInput:   c.promo.Input(),
		PromoDisplay: c.promo.Display(),
		AppliedCode:  c.promo.Applied(),
		Dates:        c.dateOptions(),
		Date:         c.date,
		Form:         c.form,
		Submitting:   c.submitting,
		Notice:       c.notice,
		Source:       snap.Source,
		Offline:      snap.IsOffline(),
	}
	if cat, ok := snap.Catalog.Category(c.active); ok {
		v.Items = cat.Items
		if len(cat.Items) == 0 {
			v.EmptyMessage = MsgEmptyCategory
		}
	}
	for _, l := range v.Lines {
		v.Quantities[l.ID] = l.Quantity
	}
	v.Form.Date = c.date
	return v
}

// Summary renders the cart as plain text.
func (v View) Summary() string {
	return order.Summary(v.Lines, v.Quote, v.AppliedCode)
}
