package shop

import (
	"time"

	"github.com/five82/foodikal/internal/foodikal"
	"github.com/five82/foodikal/internal/order"
	"github.com/five82/foodikal/internal/state"
)

// Action is an input to the controller.
type Action interface {
	action()
}

// AddItem adds Qty units of a product to the cart.
type AddItem struct {
	ID  int
	Qty int
}

// SetQuantity sets a cart line's quantity; zero removes it.
type SetQuantity struct {
	ID  int
	Qty int
}

// RemoveItem drops a cart line.
type RemoveItem struct {
	ID int
}

// SetPromoText reports an edit of the promo field.
type SetPromoText struct {
	Text string
}

// ValidationDue reports that the debounce timer Seq expired.
type ValidationDue struct {
	Seq uint64
}

// ValidationFinished carries the answer for a ValidatePromo effect.
type ValidationFinished struct {
	Code   string
	Result foodikal.PromoResult
	Err    error
}

// CatalogRefreshed reports that the background refresh swapped data in the
// store.
type CatalogRefreshed struct {
	Change state.Change
}

// SelectCategory switches the active menu tab.
type SelectCategory struct {
	Name string
}

// Navigate follows a deep link: a product id or a category name.
type Navigate struct {
	Target string
}

// ShowSlide jumps the carousel to Index.
type ShowSlide struct {
	Index int
}

// NextSlide moves the carousel by Step, wrapping at both ends.
type NextSlide struct {
	Step int
}

// OpenCart refreshes the delivery date picker, as the cart view opens.
type OpenCart struct{}

// SelectDate picks a delivery date.
type SelectDate struct {
	Value string
}

// Checkout submits the order with the given customer details. The delivery
// date is the one chosen with SelectDate.
type Checkout struct {
	Form order.Form
}

// OrderFinished carries the answer for a SubmitOrder effect.
type OrderFinished struct {
	Confirmation foodikal.OrderConfirmation
	Err          error
}

func (AddItem) action()            {}
func (SetQuantity) action()        {}
func (RemoveItem) action()         {}
func (SetPromoText) action()       {}
func (ValidationDue) action()      {}
func (ValidationFinished) action() {}
func (CatalogRefreshed) action()   {}
func (SelectCategory) action()     {}
func (Navigate) action()           {}
func (ShowSlide) action()          {}
func (NextSlide) action()          {}
func (OpenCart) action()           {}
func (SelectDate) action()         {}
func (Checkout) action()           {}
func (OrderFinished) action()      {}

// Effect is work the runtime performs on behalf of the controller.
type Effect interface {
	effect()
}

// ScheduleValidation starts the debounce timer; on expiry the runtime
// dispatches ValidationDue{Seq}.
type ScheduleValidation struct {
	Seq   uint64
	Delay time.Duration
}

// ValidatePromo calls the promo validation endpoint and dispatches
// ValidationFinished.
type ValidatePromo struct {
	Code  string
	Items []foodikal.OrderItem
}

// SubmitOrder calls the create_order endpoint and dispatches OrderFinished.
type SubmitOrder struct {
	Request foodikal.CreateOrderRequest
}

// FocusPromo moves input focus to the promo field.
type FocusPromo struct{}

// Redraw asks the UI to repaint.
type Redraw struct{}

func (ScheduleValidation) effect() {}
func (ValidatePromo) effect()      {}
func (SubmitOrder) effect()        {}
func (FocusPromo) effect()         {}
func (Redraw) effect()             {}
