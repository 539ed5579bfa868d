package promo

import (
	"time"
	"unicode/utf8"
)

// DefaultDebounce is the quiet period after the last keystroke before a code
// is sent for validation.
const DefaultDebounce = 500 * time.Millisecond

// Display messages, as shown next to the promo field.
const (
	MsgTooShort   = "Минимум 3 символа"
	MsgBadChars   = "Только буквы и цифры"
	MsgNeedsItems = "Добавьте товары в корзину"
	MsgChecking   = "Проверка промокода..."
	MsgApplied    = "Промокод применен!"
	MsgInvalid    = "Промокод недействителен"
	MsgFailed     = "Ошибка проверки промокода"
)

// Status is the display state of the promo field.
type Status int

const (
	StatusEmpty Status = iota
	StatusFormatError
	StatusNeedsItems
	StatusChecking
	StatusApplied
	StatusRejected
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusFormatError:
		return "format-error"
	case StatusNeedsItems:
		return "needs-items"
	case StatusChecking:
		return "checking"
	case StatusApplied:
		return "applied"
	case StatusRejected:
		return "rejected"
	case StatusFailed:
		return "failed"
	default:
		return "empty"
	}
}

// IsError reports whether the status should be rendered as an error.
func (s Status) IsError() bool {
	return s == StatusFormatError || s == StatusRejected || s == StatusFailed
}

// Display is what the rendering layer shows under the promo field.
type Display struct {
	Status  Status
	Message string
}

// Verdict is the cached outcome of the last definitive validation.
type Verdict struct {
	Code    string
	Valid   bool
	Message string
}

// Outcome is the result of one validation call. Err marks a transport
// failure; otherwise Valid and Message come from the service.
type Outcome struct {
	Valid   bool
	Message string
	Err     error
}

// Schedule asks the runtime to call Due(Seq) after Delay.
type Schedule struct {
	Seq   uint64
	Delay time.Duration
}

// Request asks the runtime to validate Code with the service.
type Request struct {
	Code string
}

// Step reports the side effects of a transition.
type Step struct {
	// Schedule is set when a debounce timer must be started.
	Schedule *Schedule
	// TotalChanged is set when the applied code changed and totals must be
	// recomputed.
	TotalChanged bool
	// Discarded is set when a validation result was ignored as stale.
	Discarded bool
}

// State is a read-only view of the reconciler.
type State struct {
	RawInput   string
	Code       string
	Cache      *Verdict
	Applied    string
	Validating bool
	Pending    bool
	Display    Display
}

// task is the debounce timer handle. Cancelling replaces it, so a timer
// started earlier can never match once a newer one exists.
type task struct {
	seq   uint64
	armed bool
}

// Reconciler owns the promo input, its validation workflow and the applied
// discount. It is driven by a single event loop and is not safe for
// concurrent use.
type Reconciler struct {
	debounce time.Duration

	input      string
	code       string
	cache      *Verdict
	applied    string
	validating bool
	inflight   string

	timer   task
	lastSeq uint64

	display Display
}

// NewReconciler returns a reconciler using the given debounce delay.
func NewReconciler(debounce time.Duration) *Reconciler {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Reconciler{debounce: debounce}
}

// State returns a snapshot of the reconciler.
func (r *Reconciler) State() State {
	st := State{
		RawInput:   r.input,
		Code:       r.code,
		Applied:    r.applied,
		Validating: r.validating,
		Pending:    r.timer.armed,
		Display:    r.display,
	}
	if r.cache != nil {
		v := *r.cache
		st.Cache = &v
	}
	return st
}

// Applied returns the applied code, or "".
func (r *Reconciler) Applied() string { return r.applied }

// Display returns the current display state.
func (r *Reconciler) Display() Display { return r.display }

// Input returns the raw input text.
func (r *Reconciler) Input() string { return r.input }

// Quote prices subtotal with the current applied state.
func (r *Reconciler) Quote(subtotal int) Quote {
	return Price(subtotal, r.applied != "")
}

// SetInput handles an edit of the promo field.
func (r *Reconciler) SetInput(text string, cartEmpty bool) Step {
	r.input = text
	code := Normalize(text)

	var step Step
	if r.applied != "" && code != r.applied {
		r.applied = ""
		step.TotalChanged = true
	}
	r.code = code
	return r.evaluate(cartEmpty, step)
}

// CartChanged re-evaluates after a cart mutation. Emptying the cart drops
// the applied code and the cache but keeps the typed text; a non-empty cart
// with an unvalidated code triggers validation.
func (r *Reconciler) CartChanged(cartEmpty bool) Step {
	if cartEmpty {
		var step Step
		if r.applied != "" {
			r.applied = ""
			step.TotalChanged = true
		}
		r.cache = nil
		if r.code == "" {
			r.cancel()
			r.display = Display{Status: StatusEmpty}
			return step
		}
		return r.evaluate(true, step)
	}

	if utf8.RuneCountInString(r.code) >= MinLength && r.applied == "" && !r.cached(r.code) {
		return r.evaluate(false, Step{})
	}
	return Step{}
}

// Due handles expiry of the debounce timer seq. It returns the validation to
// run, or nil when the timer was superseded or another validation is still
// in flight.
func (r *Reconciler) Due(seq uint64) *Request {
	if !r.timer.armed || r.timer.seq != seq {
		return nil
	}
	r.cancel()
	if r.validating {
		return nil
	}
	r.validating = true
	r.inflight = r.code
	return &Request{Code: r.code}
}

// Resolve applies the outcome of validating code. Results for a code that no
// longer matches the input, or that arrive after the cart was emptied, are
// discarded.
func (r *Reconciler) Resolve(code string, out Outcome, cartEmpty bool) Step {
	r.validating = false
	r.inflight = ""

	if code != r.code || cartEmpty {
		step := Step{Discarded: true}
		// The current code's own trigger may have been dropped while this
		// call was in flight; start it again.
		if r.display.Status == StatusChecking && !r.timer.armed {
			return r.evaluate(cartEmpty, step)
		}
		return step
	}

	r.cancel()
	prev := r.applied
	switch {
	case out.Err != nil:
		r.applied = ""
		r.cache = nil
		r.display = Display{Status: StatusFailed, Message: "✗ " + MsgFailed}
	case out.Valid:
		r.applied = code
		r.cache = &Verdict{Code: code, Valid: true}
		r.display = Display{Status: StatusApplied, Message: MsgApplied}
	default:
		msg := out.Message
		if msg == "" {
			msg = MsgInvalid
		}
		r.applied = ""
		r.cache = &Verdict{Code: code, Valid: false, Message: msg}
		r.display = Display{Status: StatusRejected, Message: "✗ " + msg}
	}
	return Step{TotalChanged: prev != r.applied}
}

// Reject revokes the applied code after the service refused it at order
// time, showing message in the promo area.
func (r *Reconciler) Reject(message string) Step {
	var step Step
	if r.applied != "" {
		r.applied = ""
		step.TotalChanged = true
	}
	r.cache = nil
	r.cancel()
	if message == "" {
		message = MsgInvalid
	}
	r.display = Display{Status: StatusRejected, Message: "✗ " + message}
	return step
}

// Reset clears input, cache and applied code, e.g. after a placed order.
func (r *Reconciler) Reset() Step {
	step := Step{TotalChanged: r.applied != ""}
	r.input = ""
	r.code = ""
	r.cache = nil
	r.applied = ""
	r.cancel()
	r.display = Display{Status: StatusEmpty}
	return step
}

func (r *Reconciler) evaluate(cartEmpty bool, step Step) Step {
	r.cancel()

	code := r.code
	if code == "" {
		r.cache = nil
		if r.applied != "" {
			r.applied = ""
			step.TotalChanged = true
		}
		r.display = Display{Status: StatusEmpty}
		return step
	}
	if msg := CheckFormat(code); msg != "" {
		r.display = Display{Status: StatusFormatError, Message: msg}
		return step
	}
	if cartEmpty {
		r.display = Display{Status: StatusNeedsItems, Message: MsgNeedsItems}
		return step
	}
	if r.cached(code) {
		v := r.cache
		if v.Valid {
			if r.applied != code {
				r.applied = code
				step.TotalChanged = true
			}
			r.display = Display{Status: StatusApplied, Message: MsgApplied}
		} else {
			r.display = Display{Status: StatusRejected, Message: "✗ " + v.Message}
		}
		return step
	}

	r.display = Display{Status: StatusChecking, Message: MsgChecking}
	step.Schedule = r.arm()
	return step
}

func (r *Reconciler) cached(code string) bool {
	return r.cache != nil && r.cache.Code == code
}

func (r *Reconciler) arm() *Schedule {
	r.lastSeq++
	r.timer = task{seq: r.lastSeq, armed: true}
	return &Schedule{Seq: r.lastSeq, Delay: r.debounce}
}

func (r *Reconciler) cancel() {
	r.timer = task{}
}
