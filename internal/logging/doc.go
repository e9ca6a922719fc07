// Package logging provides structured logging for cupcraft.
//
// This package wraps a zap logger with convenience functions for the
// logging patterns used by the wizard and the counter. Logging is silent
// until Initialize is called with a level, or CUPCRAFT_LOG_LEVEL is set, so
// the wizard's full-screen UI is never disturbed by stray output.
//
// # Log Levels
//
//   - Debug: key handling, step transitions, raw envelopes
//   - Info: orders placed and received, connections, startup
//   - Warn: rejected messages, rate limiting, discovery failures
//   - Error: journal or transport failures
//
// # Domain Helpers
//
//	logging.LogSelection("bean", "arabica-1")
//	logging.LogTransition(flow.StepBean.String(), flow.StepGrind.String())
//	logging.LogOrder(ticket.ID, "accepted", ticket.Total)
//	logging.LogConnection(remoteAddr, "websocket_upgraded")
//	logging.LogWebSocketMessage(remoteAddr, "received", msgType, payload)
//
// # Configuration
//
//	if err := logging.Initialize("debug", "/tmp/cupcraft.log"); err != nil {
//	    return err
//	}
//	defer logging.Sync()
//
// An empty output path writes to stderr. The wizard should always be given
// a file so log lines do not land on the alt screen.
//
// All functions are safe for concurrent use.
package logging
