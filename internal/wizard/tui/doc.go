// Package tui implements the cupcraft order wizard using Bubble Tea.
//
// The wizard walks the user through five steps: bean, grind, preparation,
// toppings and review. Domain state lives in internal/order and
// internal/flow; this package owns only presentation state (cursor, scroll
// offset, springs and elapsed time) and translates key presses into
// selection changes and debounced step transitions.
//
// # Architecture
//
// AppModel is the single top-level model. Each step is drawn by a pure view
// builder (see screens.go) from the catalog, the selection and the cursor.
// The decoration layer reads sequencer and selection state but never writes
// to it:
//
//   - indicator: progress track driven by a harmonica spring plus one dot
//     per step
//   - cup: ASCII cup tinted with the bean color, a cream layer for milk and
//     sprinkles for extras
//   - header: expanded while the viewport is at the top, collapsed to a
//     single row once the content is scrolled
//
// # Timing
//
// Animation runs on a 30 fps frame tick. Step changes go through
// flow.Debouncer: every Continue or Back press schedules a tea.Tick carrying
// a generation token, and only the latest token commits after
// flow.TransitionDelay.
//
// # Placing an order
//
// Place Order on the review step finalizes the selection into an
// order.Ticket and hands it to the configured handoff.Processor inside a
// tea.Cmd bounded by a context timeout. The outcome is shown inline; after
// an accepted order, n starts a new session.
//
// # Key Bindings
//
//   - ↑/k, ↓/j: move
//   - enter/space: choose (toggle on toppings, place order on review)
//   - tab/→: continue
//   - esc/←: back
//   - s, t: cycle size and temperature on review
//   - pgup/pgdown: scroll
//   - ?: toggle help
//   - q, ctrl+c: quit
package tui
