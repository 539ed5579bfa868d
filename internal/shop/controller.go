package shop

import (
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/five82/foodikal/internal/cart"
	"github.com/five82/foodikal/internal/order"
	"github.com/five82/foodikal/internal/promo"
	"github.com/five82/foodikal/internal/state"
)

// MaxPromoItems caps the cart lines sent with a promo validation.
const MaxPromoItems = 20

// MsgEmptyCategory is shown for a category without items.
const MsgEmptyCategory = "В этой категории пока нет блюд"

// NoticeKind classifies the checkout form message.
type NoticeKind int

const (
	NoticeNone NoticeKind = iota
	NoticeSuccess
	NoticeError
)

// Notice is the message shown under the checkout form.
type Notice struct {
	Kind NoticeKind
	Text string
}

// Options configures a Controller.
type Options struct {
	// Debounce is the promo validation delay; zero means promo.DefaultDebounce.
	Debounce time.Duration
	// Dates are the offered delivery dates; empty means the next
	// order.DefaultDateCount days.
	Dates []time.Time
	// Defaults prefill the checkout form, e.g. from saved preferences.
	Defaults order.Form
	// Now overrides the clock in tests.
	Now    func() time.Time
	Logger *slog.Logger
}

// Controller owns cart, promo, view and checkout state. It is not safe for
// concurrent use; all calls must come from the UI event loop.
type Controller struct {
	store  *state.Store
	ledger *cart.Ledger
	promo  *promo.Reconciler
	logger *slog.Logger
	now    func() time.Time

	active    string
	highlight int
	slide     int

	dates      []time.Time
	date       string
	form       order.Form
	defaults   order.Form
	submitting bool
	notice     Notice
}

// NewController builds a controller reading the catalog from store.
func NewController(store *state.Store, opts Options) *Controller {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	dates := opts.Dates
	if len(dates) == 0 {
		dates = order.DefaultDates(now(), order.DefaultDateCount)
	}
	c := &Controller{
		store:    store,
		ledger:   cart.NewLedger(store),
		promo:    promo.NewReconciler(opts.Debounce),
		logger:   logger,
		now:      now,
		dates:    dates,
		form:     opts.Defaults,
		defaults: opts.Defaults,
	}
	if names := store.Catalog().Names(); len(names) > 0 {
		c.active = names[0]
	}
	c.date = order.Reconcile(c.dateOptions(), "")
	return c
}

// Dispatch applies a to the state and returns the effects to perform.
func (c *Controller) Dispatch(a Action) []Effect {
	var fx effects
	switch a := a.(type) {
	case AddItem:
		if c.ledger.Add(a.ID, a.Qty) {
			c.cartChanged(&fx)
		}
	case SetQuantity:
		changed, err := c.ledger.SetQuantity(a.ID, a.Qty)
		if err != nil {
			c.logger.Warn("ignoring quantity change", "item_id", a.ID, "quantity", a.Qty, "error", err)
			break
		}
		if changed {
			c.cartChanged(&fx)
		}
	case RemoveItem:
		if c.ledger.Remove(a.ID) {
			c.cartChanged(&fx)
		}
	case SetPromoText:
		if a.Text == c.promo.Input() {
			break
		}
		fx.promo(c.promo.SetInput(a.Text, c.ledger.IsEmpty()))
		fx.redraw = true
	case ValidationDue:
		if req := c.promo.Due(a.Seq); req != nil {
			fx.add(ValidatePromo{Code: req.Code, Items: c.ledger.OrderItems(MaxPromoItems)})
		}
	case ValidationFinished:
		c.validationFinished(a, &fx)
	case CatalogRefreshed:
		c.catalogRefreshed(a.Change, &fx)
	case SelectCategory:
		if a.Name != c.active {
			if _, ok := c.store.Catalog().Category(a.Name); ok {
				c.active = a.Name
				c.highlight = 0
				fx.redraw = true
			}
		}
	case Navigate:
		fx.redraw = c.navigate(a.Target)
	case ShowSlide:
		if a.Index >= 0 && a.Index < len(c.store.Banners()) && a.Index != c.slide {
			c.slide = a.Index
			fx.redraw = true
		}
	case NextSlide:
		n := len(c.store.Banners())
		if n > 1 && a.Step%n != 0 {
			c.slide = ((c.slide+a.Step)%n + n) % n
			fx.redraw = true
		}
	case OpenCart:
		if d := order.Reconcile(c.dateOptions(), c.date); d != c.date {
			c.date = d
			fx.redraw = true
		}
	case SelectDate:
		if a.Value != c.date && order.IsAvailable(c.dateOptions(), a.Value) {
			c.date = a.Value
			fx.redraw = true
		}
	case Checkout:
		c.checkout(a.Form, &fx)
	case OrderFinished:
		c.orderFinished(a, &fx)
	}
	return fx.list()
}

func (c *Controller) cartChanged(fx *effects) {
	fx.promo(c.promo.CartChanged(c.ledger.IsEmpty()))
	fx.redraw = true
}

func (c *Controller) validationFinished(a ValidationFinished, fx *effects) {
	before, applied := c.promo.Display(), c.promo.Applied()
	out := promo.Outcome{Valid: a.Result.Valid, Message: a.Result.Message, Err: a.Err}
	if a.Err != nil {
		c.logger.Warn("promo validation failed", "code", a.Code, "error", a.Err)
	}
	step := c.promo.Resolve(a.Code, out, c.ledger.IsEmpty())
	if step.Discarded {
		c.logger.Debug("discarded stale promo result", "code", a.Code)
	}
	fx.promo(step)
	if c.promo.Display() != before || c.promo.Applied() != applied {
		fx.redraw = true
	}
}

func (c *Controller) catalogRefreshed(change state.Change, fx *effects) {
	if !change.Any() {
		return
	}
	if change.Catalog {
		catalog := c.store.Catalog()
		if _, ok := catalog.Category(c.active); !ok {
			c.active = ""
			if names := catalog.Names(); len(names) > 0 {
				c.active = names[0]
			}
			c.highlight = 0
		}
		if c.highlight != 0 {
			if _, cat, ok := catalog.Locate(c.highlight); !ok || cat != c.active {
				c.highlight = 0
			}
		}
	}
	if change.Banners && c.slide >= len(c.store.Banners()) {
		c.slide = 0
	}
	fx.redraw = true
}

// navigate resolves target as a product id first and a category name second.
func (c *Controller) navigate(target string) bool {
	target = strings.TrimPrefix(strings.TrimSpace(target), "#")
	if target == "" {
		return false
	}
	if id, err := strconv.Atoi(target); err == nil {
		if _, cat, ok := c.store.Locate(id); ok {
			if c.active == cat && c.highlight == id {
				return false
			}
			c.active, c.highlight = cat, id
			return true
		}
	}
	if _, ok := c.store.Catalog().Category(target); ok {
		if c.active == target && c.highlight == 0 {
			return false
		}
		c.active, c.highlight = target, 0
		return true
	}
	c.logger.Debug("deep link target not found", "target", target)
	return false
}

func (c *Controller) checkout(f order.Form, fx *effects) {
	if c.submitting {
		return
	}
	c.date = order.Reconcile(c.dateOptions(), c.date)
	f.Date = c.date
	c.form = f
	fx.redraw = true

	if err := order.Validate(f, c.ledger.IsEmpty()); err != nil {
		fe, _ := order.AsFormError(err)
		c.notice = Notice{Kind: NoticeError, Text: fe.Message}
		return
	}
	req := order.Build(f, c.ledger.OrderItems(0), c.promo.Applied())
	c.submitting = true
	c.notice = Notice{}
	c.logger.Info("submitting order", "items", len(req.OrderItems), "promo", req.PromoCode != "", "delivery_date", req.DeliveryDate)
	fx.add(SubmitOrder{Request: req})
}

func (c *Controller) orderFinished(a OrderFinished, fx *effects) {
	if !c.submitting {
		return
	}
	c.submitting = false
	fx.redraw = true

	res := order.Outcome(a.Confirmation, a.Err)
	switch {
	case res.Success:
		c.logger.Info("order created", "order_id", a.Confirmation.OrderID, "total", a.Confirmation.TotalPrice)
		c.ledger.Clear()
		c.promo.Reset()
		c.form = c.defaults
		c.date = order.Reconcile(c.dateOptions(), "")
		c.notice = Notice{Kind: NoticeSuccess, Text: res.Message}
	case res.PromoError != "":
		c.logger.Warn("order rejected promo code", "code", c.promo.Applied(), "reason", res.PromoError)
		fx.promo(c.promo.Reject(res.PromoError))
		fx.add(FocusPromo{})
		c.notice = Notice{Kind: NoticeError, Text: res.Message}
	default:
		c.logger.Error("order failed", "error", a.Err)
		c.notice = Notice{Kind: NoticeError, Text: res.Message}
	}
}

func (c *Controller) dateOptions() []order.DeliveryDate {
	return order.Options(c.dates, c.now())
}

// Submitting reports whether an order is in flight.
func (c *Controller) Submitting() bool { return c.submitting }

// effects accumulates the output of one Dispatch.
type effects struct {
	out    []Effect
	redraw bool
}

func (e *effects) add(fx Effect) {
	e.out = append(e.out, fx)
}

func (e *effects) promo(step promo.Step) {
	if step.Schedule != nil {
		e.add(ScheduleValidation{Seq: step.Schedule.Seq, Delay: step.Schedule.Delay})
	}
	if step.TotalChanged {
		e.redraw = true
	}
}

func (e *effects) list() []Effect {
	if e.redraw {
		return append(e.out, Redraw{})
	}
	return e.out
}
