package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/foodikal/internal/foodikal"
	"github.com/five82/foodikal/internal/logtail"
	"github.com/five82/foodikal/internal/shop"
	"github.com/five82/foodikal/internal/state"
)

// activityLines is how much of the log the activity overlay shows.
const activityLines = 200

// Messages

// validationDueMsg fires when a promo debounce timer expires.
type validationDueMsg struct {
	seq uint64
}

// validationDoneMsg carries a promo validation response.
type validationDoneMsg struct {
	code   string
	result foodikal.PromoResult
	err    error
}

// orderDoneMsg carries a create_order response.
type orderDoneMsg struct {
	conf foodikal.OrderConfirmation
	err  error
}

// refreshedMsg is sent by the background refresher after a swap.
type refreshedMsg state.Change

// carouselTickMsg advances the banner carousel.
type carouselTickMsg time.Time

// activityMsg carries parsed log lines for the activity overlay.
type activityMsg struct {
	entries []logtail.Entry
	err     error
}

// Commands

func validationDueCmd(fx shop.ScheduleValidation) tea.Cmd {
	return tea.Tick(fx.Delay, func(time.Time) tea.Msg {
		return validationDueMsg{seq: fx.Seq}
	})
}

func validatePromoCmd(ctx context.Context, api OrderAPI, fx shop.ValidatePromo) tea.Cmd {
	return func() tea.Msg {
		res, err := api.ValidatePromo(ctx, fx.Code, fx.Items)
		return validationDoneMsg{code: fx.Code, result: res, err: err}
	}
}

func submitOrderCmd(ctx context.Context, api OrderAPI, fx shop.SubmitOrder) tea.Cmd {
	return func() tea.Msg {
		conf, err := api.CreateOrder(ctx, fx.Request)
		return orderDoneMsg{conf: conf, err: err}
	}
}

func carouselTickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return carouselTickMsg(t)
	})
}

func readActivityCmd(path string) tea.Cmd {
	return func() tea.Msg {
		if path == "" {
			return activityMsg{}
		}
		entries, err := logtail.Tail(path, activityLines)
		return activityMsg{entries: entries, err: err}
	}
}
