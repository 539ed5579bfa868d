package promo

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDebounce = 500 * time.Millisecond

// typeAndFire enters text with a non-empty cart and lets the debounce expire.
func typeAndFire(t *testing.T, r *Reconciler, text string) *Request {
	t.Helper()
	step := r.SetInput(text, false)
	require.NotNil(t, step.Schedule, "expected a debounce timer for %q", text)
	return r.Due(step.Schedule.Seq)
}

func TestReconciler_FormatErrorsNeverSchedule(t *testing.T) {
	r := NewReconciler(testDebounce)

	step := r.SetInput("ab", false)
	assert.Nil(t, step.Schedule)
	assert.Equal(t, Display{Status: StatusFormatError, Message: MsgTooShort}, r.Display())

	step = r.SetInput("ab-c", false)
	assert.Nil(t, step.Schedule)
	assert.Equal(t, Display{Status: StatusFormatError, Message: MsgBadChars}, r.Display())

	step = r.SetInput("  ", false)
	assert.Nil(t, step.Schedule)
	assert.Equal(t, StatusEmpty, r.Display().Status)
	assert.Empty(t, r.Display().Message)
}

func TestReconciler_EmptyCartGuard(t *testing.T) {
	r := NewReconciler(testDebounce)

	step := r.SetInput("save5", true)
	assert.Nil(t, step.Schedule, "no validation while the cart is empty")
	assert.Equal(t, Display{Status: StatusNeedsItems, Message: MsgNeedsItems}, r.Display())
	assert.Equal(t, "SAVE5", r.State().Code)

	// Adding an item picks the typed code up.
	step = r.CartChanged(false)
	require.NotNil(t, step.Schedule)
	assert.Equal(t, StatusChecking, r.Display().Status)
	assert.Equal(t, MsgChecking, r.Display().Message)
}

func TestReconciler_ValidCodeApplies(t *testing.T) {
	r := NewReconciler(testDebounce)

	req := typeAndFire(t, r, "save5")
	require.NotNil(t, req)
	assert.Equal(t, "SAVE5", req.Code)
	assert.True(t, r.State().Validating)

	step := r.Resolve(req.Code, Outcome{Valid: true}, false)
	assert.True(t, step.TotalChanged)
	assert.False(t, step.Discarded)
	assert.Equal(t, "SAVE5", r.Applied())
	assert.Equal(t, Display{Status: StatusApplied, Message: MsgApplied}, r.Display())
	assert.Equal(t, Quote{Subtotal: 437, Discount: 37, Total: 400}, r.Quote(437))

	st := r.State()
	assert.False(t, st.Validating)
	require.NotNil(t, st.Cache)
	assert.Equal(t, Verdict{Code: "SAVE5", Valid: true}, *st.Cache)
}

func TestReconciler_InvalidCodeShowsServerMessage(t *testing.T) {
	r := NewReconciler(testDebounce)

	req := typeAndFire(t, r, "NOPE")
	require.NotNil(t, req)
	step := r.Resolve("NOPE", Outcome{Valid: false, Message: "Промокод истек"}, false)

	assert.False(t, step.TotalChanged)
	assert.Empty(t, r.Applied())
	assert.Equal(t, Display{Status: StatusRejected, Message: "✗ Промокод истек"}, r.Display())

	r.SetInput("OTHER", false)
	req = r.Due(r.lastSeq)
	require.NotNil(t, req)
	r.Resolve("OTHER", Outcome{Valid: false}, false)
	assert.Equal(t, "✗ "+MsgInvalid, r.Display().Message, "default message")
}

func TestReconciler_CacheHitSkipsService(t *testing.T) {
	r := NewReconciler(testDebounce)
	calls := 0

	req := typeAndFire(t, r, "SAVE5")
	require.NotNil(t, req)
	calls++
	r.Resolve(req.Code, Outcome{Valid: true}, false)

	// Retyping the same code after editing it away hits the cache.
	r.SetInput("SAVE", false)
	assert.Empty(t, r.Applied(), "editing the code drops the discount")
	step := r.SetInput("save5", false)
	if step.Schedule != nil {
		if r.Due(step.Schedule.Seq) != nil {
			calls++
		}
	}

	assert.Equal(t, 1, calls, "validated once")
	assert.Equal(t, "SAVE5", r.Applied())
	assert.True(t, step.TotalChanged)
	assert.Equal(t, StatusApplied, r.Display().Status)
}

func TestReconciler_DebounceOnlyLastTimerFires(t *testing.T) {
	r := NewReconciler(testDebounce)

	first := r.SetInput("ABC", false)
	second := r.SetInput("ABCD", false)
	third := r.SetInput("ABCDE", false)
	require.NotNil(t, first.Schedule)
	require.NotNil(t, second.Schedule)
	require.NotNil(t, third.Schedule)
	assert.Equal(t, testDebounce, third.Schedule.Delay)

	assert.Nil(t, r.Due(first.Schedule.Seq))
	assert.Nil(t, r.Due(second.Schedule.Seq))
	req := r.Due(third.Schedule.Seq)
	require.NotNil(t, req)
	assert.Equal(t, "ABCDE", req.Code)
	assert.Nil(t, r.Due(third.Schedule.Seq), "a timer fires at most once")
}

func TestReconciler_StaleResultDiscarded(t *testing.T) {
	r := NewReconciler(testDebounce)

	req := typeAndFire(t, r, "ABC")
	require.NotNil(t, req)

	// The customer changes the code while ABC is in flight.
	step := r.SetInput("XYZ", false)
	require.NotNil(t, step.Schedule)
	assert.Nil(t, r.Due(step.Schedule.Seq), "single in-flight validation")

	res := r.Resolve("ABC", Outcome{Valid: true}, false)
	assert.True(t, res.Discarded)
	assert.Empty(t, r.Applied(), "stale success must not apply")
	assert.Nil(t, r.State().Cache)

	// The dropped trigger for XYZ is rescheduled.
	require.NotNil(t, res.Schedule)
	assert.Equal(t, StatusChecking, r.Display().Status)
	req = r.Due(res.Schedule.Seq)
	require.NotNil(t, req)
	assert.Equal(t, "XYZ", req.Code)
}

func TestReconciler_ResultAfterCartEmptiedDiscarded(t *testing.T) {
	r := NewReconciler(testDebounce)

	req := typeAndFire(t, r, "SAVE5")
	require.NotNil(t, req)

	r.CartChanged(true)
	assert.Equal(t, StatusNeedsItems, r.Display().Status)

	res := r.Resolve("SAVE5", Outcome{Valid: true}, true)
	assert.True(t, res.Discarded)
	assert.Nil(t, res.Schedule)
	assert.Empty(t, r.Applied())
	assert.Equal(t, StatusNeedsItems, r.Display().Status)
}

func TestReconciler_EmptyingCartRevokesDiscount(t *testing.T) {
	r := NewReconciler(testDebounce)

	req := typeAndFire(t, r, "SAVE5")
	r.Resolve(req.Code, Outcome{Valid: true}, false)
	require.Equal(t, "SAVE5", r.Applied())

	step := r.CartChanged(true)
	assert.True(t, step.TotalChanged)
	assert.Empty(t, r.Applied())
	assert.Nil(t, r.State().Cache)
	assert.Equal(t, "SAVE5", r.Input(), "typed text survives")
	assert.Equal(t, StatusNeedsItems, r.Display().Status)

	// Refilling the cart revalidates because the cache was dropped.
	step = r.CartChanged(false)
	require.NotNil(t, step.Schedule)
}

func TestReconciler_CartChangeKeepsAppliedCode(t *testing.T) {
	r := NewReconciler(testDebounce)

	req := typeAndFire(t, r, "SAVE5")
	r.Resolve(req.Code, Outcome{Valid: true}, false)

	step := r.CartChanged(false)
	assert.Nil(t, step.Schedule, "applied code is not revalidated on quantity changes")
	assert.False(t, step.TotalChanged)
	assert.Equal(t, "SAVE5", r.Applied())
}

func TestReconciler_NetworkFailure(t *testing.T) {
	r := NewReconciler(testDebounce)

	req := typeAndFire(t, r, "SAVE5")
	step := r.Resolve(req.Code, Outcome{Err: errors.New("connection refused")}, false)

	assert.False(t, step.TotalChanged)
	assert.Empty(t, r.Applied())
	assert.Nil(t, r.State().Cache, "failures are not cached")
	assert.Equal(t, Display{Status: StatusFailed, Message: "✗ " + MsgFailed}, r.Display())
	assert.True(t, r.Display().Status.IsError())

	// A later cart change retries.
	step = r.CartChanged(false)
	assert.NotNil(t, step.Schedule)
}

func TestReconciler_RejectAndReset(t *testing.T) {
	r := NewReconciler(testDebounce)

	req := typeAndFire(t, r, "SAVE5")
	r.Resolve(req.Code, Outcome{Valid: true}, false)

	step := r.Reject("Промокод больше не действует")
	assert.True(t, step.TotalChanged)
	assert.Empty(t, r.Applied())
	assert.Nil(t, r.State().Cache)
	assert.Equal(t, "✗ Промокод больше не действует", r.Display().Message)

	step = r.Reset()
	assert.False(t, step.TotalChanged)
	st := r.State()
	assert.Empty(t, st.RawInput)
	assert.Empty(t, st.Code)
	assert.False(t, st.Pending)
	assert.Equal(t, StatusEmpty, st.Display.Status)
}

func TestReconciler_ClearingInputClearsCache(t *testing.T) {
	r := NewReconciler(testDebounce)

	req := typeAndFire(t, r, "SAVE5")
	r.Resolve(req.Code, Outcome{Valid: true}, false)

	step := r.SetInput("", false)
	assert.True(t, step.TotalChanged)
	assert.Nil(t, r.State().Cache)
	assert.Equal(t, StatusEmpty, r.Display().Status)
}
