package tui

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/muurk/cupcraft/internal/catalog"
	"github.com/muurk/cupcraft/internal/flow"
	"github.com/muurk/cupcraft/internal/handoff"
	"github.com/muurk/cupcraft/internal/logging"
	"github.com/muurk/cupcraft/internal/order"
)

const (
	frameRate = 30

	// DefaultOrderTimeout bounds a single hand-off to the processor.
	DefaultOrderTimeout = 10 * time.Second

	// Columns the step body slides in from on entrance
	entranceShift = 6

	// Blank rows above the step body
	contentPaddingTop = 1
)

// Messages
type frameMsg time.Time

type transitionMsg struct {
	gen uint64
}

type orderResultMsg struct {
	ticket order.Ticket
	result handoff.Result
}

// Options configures a wizard session.
type Options struct {
	Catalog      *catalog.Catalog
	Processor    handoff.Processor
	Size         order.Size
	Temperature  order.Temperature
	OrderTimeout time.Duration
	// Destination names where orders go, e.g. "counter front-bar"
	Destination string
}

// PlacedOrder is an order the processor accepted during the session.
type PlacedOrder struct {
	Ticket order.Ticket
	Result handoff.Result
}

// AppModel is the top-level wizard model.
type AppModel struct {
	opts     Options
	catalog  *catalog.Catalog
	toppings []catalog.Topping // display order, across groups

	Selection order.Selection
	seq       *flow.Sequencer
	debouncer *flow.Debouncer
	cursor    int
	follow    bool // scroll the focused entry into view on next layout

	placing bool
	result  *handoff.Result
	placed  []PlacedOrder

	// UI state
	Width    int
	Height   int
	viewport viewport.Model
	help     help.Model
	keys     keyMap
	spinner  spinner.Model

	// Decoration
	indicator      indicator
	cup            cup
	entrance       float64
	entranceVel    float64
	entranceSpring harmonica.Spring
}

// NewAppModel creates a wizard session starting at the bean step.
func NewAppModel(opts Options) AppModel {
	if opts.Catalog == nil {
		opts.Catalog = catalog.MustDefault()
	}
	if opts.Processor == nil {
		opts.Processor = handoff.LogProcessor{}
	}
	if opts.OrderTimeout <= 0 {
		opts.OrderTimeout = DefaultOrderTimeout
	}
	if opts.Destination == "" {
		opts.Destination = "the barista"
	}

	var toppings []catalog.Topping
	for _, group := range opts.Catalog.ToppingGroups() {
		toppings = append(toppings, group.Toppings...)
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	seq := &flow.Sequencer{}

	m := AppModel{
		opts:           opts,
		catalog:        opts.Catalog,
		toppings:       toppings,
		Selection:      order.NewSelection(opts.Size, opts.Temperature),
		seq:            seq,
		debouncer:      flow.NewDebouncer(seq),
		Width:          DefaultWidth,
		Height:         DefaultHeight,
		viewport:       viewport.New(DefaultWidth-4, DefaultHeight/2),
		help:           help.New(),
		keys:           newKeyMap(),
		spinner:        s,
		indicator:      newIndicator(),
		cup:            newCup(),
		entranceSpring: harmonica.NewSpring(harmonica.FPS(frameRate), 8.0, 1.0),
	}
	m.layout()
	return m
}

// Init starts the animation clock.
func (m AppModel) Init() tea.Cmd {
	return frameTick()
}

func frameTick() tea.Cmd {
	return tea.Tick(time.Second/frameRate, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// Update handles all messages. Domain state only changes here.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.help.Width = msg.Width - 6

	case tea.KeyMsg:
		m, cmd = m.handleKey(msg)

	case tea.MouseMsg:
		m.viewport, cmd = m.viewport.Update(msg)

	case frameMsg:
		m.animate(time.Second / frameRate)
		cmd = frameTick()

	case transitionMsg:
		m.resolveTransition(msg.gen)

	case orderResultMsg:
		m.finishOrder(msg)

	case spinner.TickMsg:
		if m.placing {
			m.spinner, cmd = m.spinner.Update(msg)
		}
	}

	m.layout()
	return m, cmd
}

func (m AppModel) handleKey(msg tea.KeyMsg) (AppModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.PageDown):
		m.viewport.SetYOffset(m.viewport.YOffset + m.scrollStep())
		return m, nil
	case key.Matches(msg, m.keys.PageUp):
		m.viewport.SetYOffset(m.viewport.YOffset - m.scrollStep())
		return m, nil
	}

	if m.placing {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Place):
		return m.placeOrder()
	case key.Matches(msg, m.keys.NewOrder):
		m.reset()
	case key.Matches(msg, m.keys.Size):
		m.Selection = m.Selection.Apply(order.WithSize(m.Selection.Size.Next()))
		logging.LogSelection("size", string(m.Selection.Size))
	case key.Matches(msg, m.keys.Temp):
		m.Selection = m.Selection.Apply(order.WithTemperature(m.Selection.Temperature.Next()))
		logging.LogSelection("temperature", string(m.Selection.Temperature))
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.Select):
		m.choose()
	case key.Matches(msg, m.keys.Continue):
		return m.requestTransition(flow.Forward)
	case key.Matches(msg, m.keys.Back):
		return m.requestTransition(flow.Backward)
	}

	return m, nil
}

func (m AppModel) scrollStep() int {
	if step := m.viewport.Height / 2; step > 0 {
		return step
	}
	return 1
}

func (m AppModel) itemCount() int {
	switch m.seq.Current() {
	case flow.StepBean:
		return len(m.catalog.Beans())
	case flow.StepGrind:
		return len(m.catalog.Grinds())
	case flow.StepPreparation:
		return len(m.catalog.Preparations())
	case flow.StepToppings:
		return len(m.toppings)
	default:
		return 0
	}
}

func (m *AppModel) moveCursor(delta int) {
	n := m.itemCount()
	if n == 0 {
		return
	}
	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= n {
		m.cursor = n - 1
	}
	m.follow = true
}

// choose applies the item under the cursor to the selection.
func (m *AppModel) choose() {
	if m.cursor < 0 || m.cursor >= m.itemCount() {
		return
	}
	switch m.seq.Current() {
	case flow.StepBean:
		b := m.catalog.Beans()[m.cursor]
		m.Selection = m.Selection.Apply(order.WithBean(b))
		logging.LogSelection("bean", b.ID)
	case flow.StepGrind:
		g := m.catalog.Grinds()[m.cursor]
		m.Selection = m.Selection.Apply(order.WithGrind(g))
		logging.LogSelection("grind", g.ID)
	case flow.StepPreparation:
		p := m.catalog.Preparations()[m.cursor]
		m.Selection = m.Selection.Apply(order.WithPreparation(p))
		logging.LogSelection("preparation", p.ID)
	case flow.StepToppings:
		t := m.toppings[m.cursor]
		m.Selection = m.Selection.ToggleTopping(t)
		logging.LogSelection("topping", t.ID)
	}
}

// requestTransition asks the debouncer for a step change. Continue is only
// honored when the current step allows it. Back is locked once the order on
// review has been accepted.
func (m AppModel) requestTransition(dir flow.Direction) (AppModel, tea.Cmd) {
	step := m.seq.Current()
	if dir == flow.Forward && !flow.CanAdvance(step, m.Selection) {
		return m, nil
	}
	if dir == flow.Backward && (!step.HasBack() || m.accepted()) {
		return m, nil
	}

	gen, ok := m.debouncer.Request(dir)
	if !ok {
		return m, nil
	}
	return m, tea.Tick(flow.TransitionDelay, func(time.Time) tea.Msg {
		return transitionMsg{gen: gen}
	})
}

func (m *AppModel) resolveTransition(gen uint64) {
	from := m.seq.Current()
	to, moved := m.debouncer.Resolve(gen)
	if !moved {
		return
	}
	logging.LogTransition(from.String(), to.String())

	if from == flow.StepReview {
		m.result = nil
	}
	m.cursor = m.chosenIndex(to)
	m.viewport.GotoTop()
	m.entrance, m.entranceVel = 0, 0
}

// chosenIndex puts the cursor on the current choice when revisiting a step.
func (m AppModel) chosenIndex(step flow.Step) int {
	switch step {
	case flow.StepBean:
		if m.Selection.Bean != nil {
			for i, b := range m.catalog.Beans() {
				if b.ID == m.Selection.Bean.ID {
					return i
				}
			}
		}
	case flow.StepGrind:
		if m.Selection.Grind != nil {
			for i, g := range m.catalog.Grinds() {
				if g.ID == m.Selection.Grind.ID {
					return i
				}
			}
		}
	case flow.StepPreparation:
		if m.Selection.Preparation != nil {
			for i, p := range m.catalog.Preparations() {
				if p.ID == m.Selection.Preparation.ID {
					return i
				}
			}
		}
	}
	return 0
}

func (m AppModel) placeOrder() (AppModel, tea.Cmd) {
	ticket, err := order.NewTicket(m.Selection, time.Now())
	if err != nil {
		m.result = &handoff.Result{Status: handoff.StatusRejected, Message: err.Error(), Err: err}
		return m, nil
	}

	m.placing = true
	m.result = nil
	return m, tea.Batch(placeOrderCmd(m.opts.Processor, ticket, m.opts.OrderTimeout), m.spinner.Tick)
}

func placeOrderCmd(p handoff.Processor, ticket order.Ticket, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return orderResultMsg{ticket: ticket, result: p.PlaceOrder(ctx, ticket)}
	}
}

func (m *AppModel) finishOrder(msg orderResultMsg) {
	m.placing = false
	res := msg.result
	m.result = &res

	logging.Info("Order hand-off finished",
		zap.String("order_id", msg.ticket.ID),
		zap.String("status", res.Status.String()),
	)

	if res.Accepted() {
		m.placed = append(m.placed, PlacedOrder{Ticket: msg.ticket, Result: res})
	}
}

// reset starts a new session: empty selection, first step.
func (m *AppModel) reset() {
	m.debouncer.Cancel()
	m.seq.Reset()
	m.Selection = order.NewSelection(m.opts.Size, m.opts.Temperature)
	m.cursor = 0
	m.result = nil
	m.viewport.GotoTop()
	m.entrance, m.entranceVel = 0, 0
	logging.Debug("New order session started")
}

func (m *AppModel) animate(dt time.Duration) {
	m.indicator.Animate()
	m.cup.Animate(dt, m.Selection)
	m.entrance, m.entranceVel = m.entranceSpring.Update(m.entrance, m.entranceVel, 1)
}

// Step returns the committed step.
func (m AppModel) Step() flow.Step {
	return m.seq.Current()
}

// PlacedOrders returns the orders accepted during the session.
func (m AppModel) PlacedOrders() []PlacedOrder {
	return m.placed
}

// HeaderCollapsed reports whether the header is in its single-row form.
func (m AppModel) HeaderCollapsed() bool {
	return m.viewport.YOffset > 0
}

func (m AppModel) accepted() bool {
	return m.result != nil && m.result.Accepted()
}

// layout refreshes key state and sizes the viewport around the header and
// footer. Called at the end of every Update.
func (m *AppModel) layout() {
	step := m.seq.Current()
	review := step == flow.StepReview

	m.keys.Up.SetEnabled(!review)
	m.keys.Down.SetEnabled(!review)
	m.keys.Select.SetEnabled(!review)
	if step == flow.StepToppings {
		m.keys.Select.SetHelp("enter", "toggle")
	} else {
		m.keys.Select.SetHelp("enter", "choose")
	}
	m.keys.Continue.SetEnabled(flow.CanAdvance(step, m.Selection))
	m.keys.Back.SetEnabled(step.HasBack() && !m.accepted())
	m.keys.Place.SetEnabled(review && !m.accepted())
	m.keys.Size.SetEnabled(review && !m.accepted())
	m.keys.Temp.SetEnabled(review && !m.accepted())
	m.keys.NewOrder.SetEnabled(m.accepted())

	m.sizeViewport()
	content, focus := m.renderContent()
	m.viewport.SetContent(content)
	if m.follow {
		m.follow = false
		m.scrollTo(focus)
		// The header may have collapsed or expanded.
		m.sizeViewport()
	}

	m.indicator.SetTarget(m.seq.Progress())
}

func (m *AppModel) sizeViewport() {
	width, height := m.size()
	inner := width - 4

	m.viewport.Width = inner
	vh := height - 2 - lipgloss.Height(headerSectionStyle(inner).Render(m.renderHeader(inner))) -
		lipgloss.Height(footerSectionStyle(inner).Render(m.renderFooter()))
	if vh < 3 {
		vh = 3
	}
	m.viewport.Height = vh
}

// scrollTo moves the viewport the least distance that shows span. The first
// entry scrolls all the way up so the full header returns.
func (m *AppModel) scrollTo(span focusSpan) {
	if span.rows == 0 {
		return
	}
	if m.cursor == 0 {
		m.viewport.GotoTop()
		return
	}
	top := span.top + contentPaddingTop
	bottom := top + span.rows - 1
	switch {
	case top < m.viewport.YOffset:
		m.viewport.SetYOffset(top)
	case bottom >= m.viewport.YOffset+m.viewport.Height:
		m.viewport.SetYOffset(bottom - m.viewport.Height + 1)
	}
}

func (m AppModel) size() (int, int) {
	width, height := m.Width, m.Height
	if width < MinWidth {
		width = MinWidth
	}
	if height < 12 {
		height = 12
	}
	return width, height
}

func (m AppModel) renderContent() (string, focusSpan) {
	status := reviewStatus{
		placing:     m.placing,
		spinner:     m.spinner.View(),
		destination: m.opts.Destination,
		result:      m.result,
	}
	body, focus := renderStep(m.seq.Current(), m.catalog, m.Selection, m.cursor, status)

	shift := int(math.Round((1 - clamp01(m.entrance)) * entranceShift))
	return lipgloss.NewStyle().PaddingLeft(1 + shift).PaddingTop(contentPaddingTop).Render(body), focus
}

func (m AppModel) renderHeader(width int) string {
	step := m.seq.Current()
	content := step.Content()
	stepLabel := DetailStyle.Render(fmt.Sprintf("Step %d of %d", m.seq.Index()+1, m.seq.Len()))

	if m.HeaderCollapsed() {
		return lipgloss.JoinHorizontal(lipgloss.Top,
			m.cup.Glyph(m.Selection), " ",
			TitleStyle.Render(content.Title), "  ",
			stepLabel,
		)
	}

	textWidth := width - 16
	info := lipgloss.JoinVertical(lipgloss.Left,
		AppNameStyle.Render(AppName+" v"+AppVersion())+"  "+stepLabel,
		"",
		TitleStyle.Render(content.Title),
		SubtitleStyle.Render(content.Subtitle),
		"",
		m.indicator.View(m.seq.Index(), m.seq.Len(), textWidth-2),
	)
	return lipgloss.JoinHorizontal(lipgloss.Top, m.cup.View(m.Selection), "  ", info)
}

func (m AppModel) renderFooter() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		FooterStyle.Render(FooterText),
		m.help.View(m.keys),
	)
}

// View renders the full-screen wizard.
func (m AppModel) View() string {
	width, height := m.size()
	inner := width - 4
	return RenderApplicationContainer(
		m.renderHeader(inner),
		m.viewport.View(),
		m.renderFooter(),
		width, height,
	)
}
