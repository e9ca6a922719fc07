package tui

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muurk/cupcraft/internal/catalog"
	"github.com/muurk/cupcraft/internal/flow"
	"github.com/muurk/cupcraft/internal/handoff"
	"github.com/muurk/cupcraft/internal/order"
)

// recordingProcessor accepts every order and remembers the tickets.
type recordingProcessor struct {
	mu      sync.Mutex
	tickets []order.Ticket
	status  handoff.Status
}

func (p *recordingProcessor) PlaceOrder(_ context.Context, t order.Ticket) handoff.Result {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.tickets = append(p.tickets, t)
	status := p.status
	if status == 0 {
		status = handoff.StatusAccepted
	}
	return handoff.Result{Status: status, OrderID: t.ID, Message: "Order sent to test"}
}

func newTestModel(t *testing.T, p handoff.Processor) AppModel {
	t.Helper()
	m := NewAppModel(Options{Catalog: catalog.MustDefault(), Processor: p})
	return update(t, m, tea.WindowSizeMsg{Width: 80, Height: 40})
}

func update(t *testing.T, m AppModel, msg tea.Msg) AppModel {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(AppModel)
}

func press(t *testing.T, m AppModel, k tea.KeyMsg) (AppModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(k)
	return next.(AppModel), cmd
}

var (
	keyEnter  = tea.KeyMsg{Type: tea.KeyEnter}
	keyDown   = tea.KeyMsg{Type: tea.KeyDown}
	keyTab    = tea.KeyMsg{Type: tea.KeyTab}
	keyEsc    = tea.KeyMsg{Type: tea.KeyEsc}
	keyPgDown = tea.KeyMsg{Type: tea.KeyPgDown}
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// choose moves the cursor to index and presses enter.
func choose(t *testing.T, m AppModel, index int) AppModel {
	t.Helper()
	for m.cursor < index {
		m, _ = press(t, m, keyDown)
	}
	m, _ = press(t, m, keyEnter)
	return m
}

// advance presses continue and delivers the debounced transition.
func advance(t *testing.T, m AppModel) AppModel {
	t.Helper()
	m, cmd := press(t, m, keyTab)
	require.NotNil(t, cmd, "continue should schedule a transition on %s", m.Step())
	return update(t, m, cmd())
}

func indexOf[T any](items []T, match func(T) bool) int {
	for i, item := range items {
		if match(item) {
			return i
		}
	}
	return -1
}

// runOrder executes a place-order command and returns the result message.
func runOrder(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	require.NotNil(t, cmd)
	msg := cmd()
	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		return msg
	}
	for _, c := range batch {
		if c == nil {
			continue
		}
		if result, ok := c().(orderResultMsg); ok {
			return result
		}
	}
	t.Fatal("no order result in batch")
	return nil
}

func walkToReview(t *testing.T, m AppModel) AppModel {
	t.Helper()
	cat := m.catalog

	m = choose(t, m, indexOf(cat.Beans(), func(b catalog.CoffeeBean) bool { return b.ID == "arabica-1" }))
	m = advance(t, m)
	m = choose(t, m, indexOf(cat.Grinds(), func(g catalog.GrindLevel) bool { return g.ID == "medium" }))
	m = advance(t, m)
	m = choose(t, m, indexOf(cat.Preparations(), func(p catalog.PreparationMethod) bool { return p.ID == "pourover" }))
	m = advance(t, m)
	m = choose(t, m, indexOf(m.toppings, func(tp catalog.Topping) bool { return tp.ID == "oat-milk" }))
	m = choose(t, m, indexOf(m.toppings, func(tp catalog.Topping) bool { return tp.ID == "vanilla" }))
	return advance(t, m)
}

func TestWizardFullScenario(t *testing.T) {
	p := &recordingProcessor{}
	m := walkToReview(t, newTestModel(t, p))

	require.Equal(t, flow.StepReview, m.Step())
	assert.Equal(t, []string{"oat-milk", "vanilla"}, m.Selection.ToppingIDs())
	assert.InDelta(t, 4.75, order.Total(m.Selection), 1e-9)

	view := m.View()
	assert.Contains(t, view, "$4.75")
	assert.Contains(t, view, "Review Your Order")
	assert.Contains(t, view, "Pour Over")
	assert.Contains(t, view, "Place Order")

	m, cmd := press(t, m, keyEnter)
	assert.True(t, m.placing)
	m = update(t, m, runOrder(t, cmd))

	require.Len(t, p.tickets, 1)
	assert.InDelta(t, 4.75, p.tickets[0].Total, 1e-9)
	require.Len(t, m.PlacedOrders(), 1)
	assert.Equal(t, p.tickets[0].ID, m.PlacedOrders()[0].Ticket.ID)
	assert.Contains(t, m.View(), "Order placed")
	assert.Equal(t, flow.StepReview, m.Step(), "placing an order does not change the step")

	// A second enter must not place the same order again
	_, cmd = press(t, m, keyEnter)
	assert.Nil(t, cmd)

	m, _ = press(t, m, runes("n"))
	assert.Equal(t, flow.StepBean, m.Step())
	assert.Nil(t, m.Selection.Bean)
	assert.Empty(t, m.Selection.Toppings)
	assert.Len(t, m.PlacedOrders(), 1)
}

func TestWizardRejectedOrder(t *testing.T) {
	p := &recordingProcessor{status: handoff.StatusRejected}
	m := walkToReview(t, newTestModel(t, p))

	m, cmd := press(t, m, keyEnter)
	m = update(t, m, runOrder(t, cmd))

	assert.Empty(t, m.PlacedOrders())
	assert.Contains(t, m.View(), "Order rejected")

	// Still editable and placeable after a rejection
	_, cmd = press(t, m, keyEnter)
	assert.NotNil(t, cmd)
}

func TestContinueIgnoredWhileUnset(t *testing.T) {
	m := newTestModel(t, nil)

	assert.NotContains(t, m.View(), "Continue")

	m, cmd := press(t, m, keyTab)
	assert.Nil(t, cmd)
	assert.Equal(t, flow.StepBean, m.Step())

	m, _ = press(t, m, keyEnter)
	assert.Contains(t, m.View(), "Continue")
}

func TestBackIgnoredOnFirstStep(t *testing.T) {
	m := newTestModel(t, nil)
	m, cmd := press(t, m, keyEsc)
	assert.Nil(t, cmd)
	assert.Equal(t, flow.StepBean, m.Step())
	assert.NotContains(t, m.View(), "← Back")
}

func TestTransitionsDoNotStack(t *testing.T) {
	m := newTestModel(t, nil)
	m, _ = press(t, m, keyEnter)

	m, first := press(t, m, keyTab)
	m, second := press(t, m, keyTab)
	require.NotNil(t, first)
	require.NotNil(t, second)

	m = update(t, m, first())
	assert.Equal(t, flow.StepBean, m.Step(), "superseded request must not commit")

	m = update(t, m, second())
	assert.Equal(t, flow.StepGrind, m.Step())

	// Grind is unset, so continue stays inert until it is chosen
	_, cmd := press(t, m, keyTab)
	assert.Nil(t, cmd)
}

func TestBackKeepsSelection(t *testing.T) {
	m := newTestModel(t, nil)
	m = choose(t, m, 2)
	m = advance(t, m)

	m, cmd := press(t, m, keyEsc)
	require.NotNil(t, cmd)
	m = update(t, m, cmd())

	assert.Equal(t, flow.StepBean, m.Step())
	assert.Equal(t, 2, m.cursor, "cursor returns to the chosen bean")
	assert.Equal(t, m.catalog.Beans()[2].ID, m.Selection.Bean.ID)
}

func TestBackLockedAfterAcceptance(t *testing.T) {
	m := walkToReview(t, newTestModel(t, &recordingProcessor{}))

	m, cmd := press(t, m, keyEnter)
	m = update(t, m, runOrder(t, cmd))
	require.Len(t, m.PlacedOrders(), 1)

	m, cmd = press(t, m, keyEsc)
	assert.Nil(t, cmd)
	assert.Equal(t, flow.StepReview, m.Step())
	assert.NotContains(t, m.View(), "← Back")
	assert.True(t, m.keys.NewOrder.Enabled(), "new order stays available")
}

func TestBackAllowedAfterRejection(t *testing.T) {
	m := walkToReview(t, newTestModel(t, &recordingProcessor{status: handoff.StatusRejected}))

	m, cmd := press(t, m, keyEnter)
	m = update(t, m, runOrder(t, cmd))

	_, cmd = press(t, m, keyEsc)
	assert.NotNil(t, cmd)
}

const noToppingsCatalog = `version: 1
beans:
  - {id: house, name: House Blend, strength: 3}
grinds:
  - {id: medium, name: Medium, particle_size: medium}
preparations:
  - {id: pourover, name: Pour Over, brew_time: 180, temperature: 92}
toppings: []
`

func TestCatalogWithoutToppings(t *testing.T) {
	cat, err := catalog.Parse([]byte(noToppingsCatalog))
	require.NoError(t, err)

	p := &recordingProcessor{}
	m := NewAppModel(Options{Catalog: cat, Processor: p})
	m = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 40})

	m = choose(t, m, 0)
	m = advance(t, m)
	m = choose(t, m, 0)
	m = advance(t, m)
	m = choose(t, m, 0)
	m = advance(t, m)
	require.Equal(t, flow.StepToppings, m.Step())
	assert.Contains(t, m.View(), "No toppings on this menu")

	require.NotPanics(t, func() {
		m, _ = press(t, m, keyDown)
		m, _ = press(t, m, keyEnter)
	})
	assert.Empty(t, m.Selection.Toppings)

	m = advance(t, m)
	require.Equal(t, flow.StepReview, m.Step())
	assert.Contains(t, m.View(), "$3.50")

	m, cmd := press(t, m, keyEnter)
	m = update(t, m, runOrder(t, cmd))
	require.Len(t, p.tickets, 1)
	assert.Empty(t, p.tickets[0].Toppings)
	assert.Len(t, m.PlacedOrders(), 1)
}

func TestCursorScrollsIntoView(t *testing.T) {
	m := newTestModel(t, nil)
	m = update(t, m, tea.WindowSizeMsg{Width: 80, Height: DefaultHeight})
	beans := m.catalog.Beans()
	require.Greater(t, len(beans), 2)

	for i := 1; i < len(beans); i++ {
		m, _ = press(t, m, keyDown)
		require.Equal(t, i, m.cursor)
		assert.Contains(t, m.viewport.View(), beans[i].Name, "bean %d should be on screen", i)
	}
	assert.True(t, m.HeaderCollapsed(), "the last bean sits below the first screen")

	for m.cursor > 0 {
		m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyUp})
		assert.Contains(t, m.viewport.View(), beans[m.cursor].Name)
	}
	assert.False(t, m.HeaderCollapsed(), "the first bean brings the full header back")
}

func TestReviewCyclesSizeAndTemperature(t *testing.T) {
	m := walkToReview(t, newTestModel(t, nil))

	m, _ = press(t, m, runes("s"))
	assert.Equal(t, order.SizeLarge, m.Selection.Size)
	m, _ = press(t, m, runes("t"))
	assert.Equal(t, order.TemperatureIced, m.Selection.Temperature)
	assert.InDelta(t, 4.75, order.Total(m.Selection), 1e-9)
}

func TestSizeKeyIgnoredBeforeReview(t *testing.T) {
	m := newTestModel(t, nil)
	m, _ = press(t, m, runes("s"))
	assert.Equal(t, order.SizeMedium, m.Selection.Size)
}

func TestHeaderCollapsesOnScroll(t *testing.T) {
	m := newTestModel(t, nil)
	m = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 20})
	require.False(t, m.HeaderCollapsed())
	assert.Contains(t, m.View(), "Select the perfect bean")

	m, _ = press(t, m, keyPgDown)
	require.True(t, m.HeaderCollapsed())
	assert.NotContains(t, m.View(), "Select the perfect bean", "collapsed header drops the subtitle")
	assert.Contains(t, m.View(), "Choose Your Coffee Bean")

	m, _ = press(t, m, keyEnter)
	m = advance(t, m)
	assert.False(t, m.HeaderCollapsed(), "a step change scrolls back to the top")
	assert.Contains(t, m.View(), "The grind affects extraction and flavor")
}

func TestFooter(t *testing.T) {
	m := newTestModel(t, nil)
	assert.Contains(t, m.View(), FooterText)
}

func TestFrameTickAnimates(t *testing.T) {
	m := newTestModel(t, nil)
	m, _ = press(t, m, keyEnter)
	m = advance(t, m)

	for i := 0; i < 90; i++ {
		var cmd tea.Cmd
		next, c := m.Update(frameMsg(time.Now()))
		m, cmd = next.(AppModel), c
		require.NotNil(t, cmd, "frame tick must reschedule itself")
	}

	assert.InDelta(t, m.seq.Progress(), m.indicator.Position(), 0.05)
	assert.InDelta(t, 1.0, m.entrance, 0.05)
	assert.Greater(t, m.cup.level, 0.9)
	assert.Equal(t, flow.StepGrind, m.Step(), "animation never moves the step")
}

func TestToppingsScreen(t *testing.T) {
	cat := catalog.MustDefault()
	oat, _ := cat.Topping("oat-milk")
	out, focus := toppingsScreen(cat, order.NewSelection("", "").ToggleTopping(oat), -1)
	assert.Zero(t, focus.rows, "no entry is focused")

	for _, heading := range []string{"Milk", "Sweetener", "Flavor", "Extra"} {
		assert.Contains(t, out, heading)
	}
	assert.Contains(t, out, "+$0.50")
	assert.Contains(t, out, "✓")

	whole := out[strings.Index(out, "Whole Milk"):]
	whole = whole[:strings.Index(whole, "\n")]
	assert.NotContains(t, whole, "$", "free toppings show no price")
}

func TestReviewScreen(t *testing.T) {
	out := reviewScreen(order.NewSelection("", ""), reviewStatus{})
	assert.Contains(t, out, order.NoneSelected)
	assert.NotContains(t, out, "Toppings")
	assert.Contains(t, out, "$3.50")

	out = reviewScreen(order.NewSelection("", ""), reviewStatus{placing: true, destination: "counter front"})
	assert.Contains(t, out, "Sending your order to counter front")
}

func TestRenderActions(t *testing.T) {
	cat := catalog.MustDefault()
	bean := cat.Beans()[0]
	empty := order.NewSelection("", "")

	tests := []struct {
		name    string
		step    flow.Step
		sel     order.Selection
		want    []string
		notWant []string
	}{
		{"bean unset", flow.StepBean, empty, nil, []string{"Back", "Continue"}},
		{"bean set", flow.StepBean, empty.Apply(order.WithBean(bean)), []string{"Continue"}, []string{"Back"}},
		{"grind unset", flow.StepGrind, empty, []string{"Back"}, []string{"Continue"}},
		{"toppings", flow.StepToppings, empty, []string{"Back", "Review Order"}, nil},
		{"review", flow.StepReview, empty, []string{"Back", "Place Order"}, []string{"Continue"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := renderActions(tt.step, tt.sel, reviewStatus{})
			for _, w := range tt.want {
				assert.Contains(t, got, w)
			}
			for _, w := range tt.notWant {
				assert.NotContains(t, got, w)
			}
		})
	}
}
