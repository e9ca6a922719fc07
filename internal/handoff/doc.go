// Package handoff delivers finalized orders to an order-processing
// collaborator.
//
// The wizard's responsibility ends when PlaceOrder returns. Two processors
// are provided:
//
//   - LogProcessor records the ticket in the log and accepts it. It is the
//     default when no counter is configured.
//   - CounterProcessor submits the ticket to a cupcraft counter over a
//     websocket and reports the counter's verdict.
//
// PlaceOrder never returns a bare error: every outcome, including
// transport failure, is a Result whose Status tells the caller what to
// show. Failed and rejected results carry an *Error describing why.
package handoff
