package ui

import (
	"context"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/foodikal/internal/foodikal"
	"github.com/five82/foodikal/internal/order"
	"github.com/five82/foodikal/internal/prefs"
	"github.com/five82/foodikal/internal/shop"
	"github.com/five82/foodikal/internal/state"
)

// OrderAPI is the part of the service the UI calls directly.
type OrderAPI interface {
	ValidatePromo(ctx context.Context, code string, items []foodikal.OrderItem) (foodikal.PromoResult, error)
	CreateOrder(ctx context.Context, req foodikal.CreateOrderRequest) (foodikal.OrderConfirmation, error)
}

// screen is the current top-level screen.
type screen int

const (
	screenMenu screen = iota
	screenCheckout
)

// field is a focusable element of the checkout screen.
type field int

const (
	fieldPromo field = iota
	fieldName
	fieldContact
	fieldAddress
	fieldComments
	fieldDate
	fieldSubmit
	fieldCount
)

// Options configures the UI.
type Options struct {
	Context    context.Context
	Controller *shop.Controller
	API        OrderAPI
	Logger     *slog.Logger

	ThemeName string
	PrefsPath string
	Prefs     prefs.Prefs
	LogPath   string

	// CarouselInterval advances the banner carousel; zero disables it.
	CarouselInterval time.Duration
	// Open is a deep link (product id or category name) followed at start.
	Open string
	// StartRefresh launches the background refresh once the program can
	// receive messages. notify must be safe to call from any goroutine.
	StartRefresh func(notify func(state.Change))
}

// Model is the root application state for Bubble Tea.
type Model struct {
	ctx      context.Context
	ctrl     *shop.Controller
	api      OrderAPI
	logger   *slog.Logger
	keys     keyMap
	carousel time.Duration

	prefsPath string
	prefs     prefs.Prefs
	logPath   string

	theme  Theme
	width  int
	height int
	ready  bool

	view   shop.View
	screen screen
	focus  field

	// Menu list state. offset survives catalog refreshes.
	cursor        int
	offset        int
	lastActive    string
	lastHighlight int

	promoInput textinput.Model
	formInputs [fieldComments - fieldName + 1]textinput.Model
	submitted  order.Form

	showHelp     bool
	showActivity bool
	activity     viewport.Model
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	themeName := opts.ThemeName
	if themeName == "" {
		themeName = "Dracula"
	}
	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}
	userPrefs := opts.Prefs
	userPrefs.Theme = themeName

	m := Model{
		ctx:       ctx,
		ctrl:      opts.Controller,
		api:       opts.API,
		logger:    logger,
		keys:      DefaultKeyMap(),
		carousel:  opts.CarouselInterval,
		prefsPath: prefsPath,
		prefs:     userPrefs,
		logPath:   opts.LogPath,
		theme:     GetTheme(themeName),
	}
	m.initInputs()

	if opts.Open != "" {
		m.ctrl.Dispatch(shop.Navigate{Target: opts.Open})
	}
	m.refreshView()
	m.fillForm(m.view.Form)
	return m
}

func (m *Model) initInputs() {
	m.promoInput = textinput.New()
	m.promoInput.Placeholder = "Промокод"
	m.promoInput.CharLimit = 32

	placeholders := []string{"Имя", "Телефон или Telegram", "Адрес доставки", "Комментарий"}
	for i := range m.formInputs {
		in := textinput.New()
		in.Placeholder = placeholders[i]
		in.CharLimit = 200
		m.formInputs[i] = in
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	if m.carousel > 0 {
		return carouselTickCmd(m.carousel)
	}
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.activity = viewport.New(msg.Width, msg.Height-4)
		} else {
			m.activity.Width = msg.Width
			m.activity.Height = msg.Height - 4
		}
		m.ready = true
		m.ensureVisible()
		return m, nil

	case validationDueMsg:
		return m, m.dispatch(shop.ValidationDue{Seq: msg.seq})

	case validationDoneMsg:
		return m, m.dispatch(shop.ValidationFinished{Code: msg.code, Result: msg.result, Err: msg.err})

	case orderDoneMsg:
		pending := m.view.Submitting
		cmd := m.dispatch(shop.OrderFinished{Confirmation: msg.conf, Err: msg.err})
		if pending && m.view.Notice.Kind == shop.NoticeSuccess {
			m.rememberCustomer()
		}
		return m, cmd

	case refreshedMsg:
		return m, m.dispatch(shop.CatalogRefreshed{Change: state.Change(msg)})

	case carouselTickMsg:
		cmd := m.dispatch(shop.NextSlide{Step: 1})
		return m, tea.Batch(cmd, carouselTickCmd(m.carousel))

	case activityMsg:
		m.activity.SetContent(m.renderActivityLines(msg))
		m.activity.GotoBottom()
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	if m.showActivity {
		return m.renderActivity()
	}
	if m.screen == screenCheckout {
		return m.renderCheckout()
	}
	return m.renderMenu()
}

// dispatch feeds an action to the controller and turns the resulting
// effects into commands.
func (m *Model) dispatch(a shop.Action) tea.Cmd {
	var cmds []tea.Cmd
	for _, fx := range m.ctrl.Dispatch(a) {
		switch fx := fx.(type) {
		case shop.ScheduleValidation:
			cmds = append(cmds, validationDueCmd(fx))
		case shop.ValidatePromo:
			cmds = append(cmds, validatePromoCmd(m.ctx, m.api, fx))
		case shop.SubmitOrder:
			cmds = append(cmds, submitOrderCmd(m.ctx, m.api, fx))
		case shop.FocusPromo:
			m.screen = screenCheckout
			m.setFocus(fieldPromo)
		case shop.Redraw:
			m.refreshView()
		}
	}
	return tea.Batch(cmds...)
}

// refreshView pulls a fresh frame from the controller and reconciles local
// widget state with it.
func (m *Model) refreshView() {
	m.view = m.ctrl.View()

	if m.promoInput.Value() != m.view.PromoInput {
		m.promoInput.SetValue(m.view.PromoInput)
	}

	if m.view.Active != m.lastActive {
		m.cursor, m.offset = 0, 0
		m.lastActive = m.view.Active
	}
	if m.view.Highlight != 0 && m.view.Highlight != m.lastHighlight {
		for i, item := range m.view.Items {
			if item.ID == m.view.Highlight {
				m.cursor = i
			}
		}
	}
	m.lastHighlight = m.view.Highlight

	if m.cursor >= len(m.view.Items) {
		m.cursor = max(len(m.view.Items)-1, 0)
	}
	m.ensureVisible()
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}
	if m.showActivity {
		if key.Matches(msg, m.keys.Escape, m.keys.Activity, m.keys.Quit) {
			m.showActivity = false
			return m, nil
		}
		var cmd tea.Cmd
		m.activity, cmd = m.activity.Update(msg)
		return m, cmd
	}

	if m.screen == screenCheckout {
		return m.handleCheckoutKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keys.CycleTheme):
		m.cycleTheme()
		return m, nil
	case key.Matches(msg, m.keys.Activity):
		m.showActivity = true
		return m, readActivityCmd(m.logPath)
	}
	return m.handleMenuKey(msg)
}

func (m *Model) cycleTheme() {
	m.theme = GetTheme(NextTheme(m.theme.Name))
	m.prefs.Theme = m.theme.Name
	if err := prefs.Save(m.prefsPath, m.prefs); err != nil {
		m.logger.Warn("save prefs failed", "error", err)
	}
}

// rememberCustomer keeps the contact details of a placed order for the next
// one and clears the one-off comment.
func (m *Model) rememberCustomer() {
	m.prefs.Checkout = prefs.Checkout{
		Name:    m.submitted.Name,
		Contact: m.submitted.Contact,
		Address: m.submitted.Address,
	}
	if err := prefs.Save(m.prefsPath, m.prefs); err != nil {
		m.logger.Warn("save prefs failed", "error", err)
	}
	m.fillForm(order.Form{Name: m.submitted.Name, Contact: m.submitted.Contact, Address: m.submitted.Address})
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	if opts.StartRefresh != nil {
		opts.StartRefresh(func(c state.Change) {
			p.Send(refreshedMsg(c))
		})
	}
	_, err := p.Run()
	return err
}
