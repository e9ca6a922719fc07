// Package counter implements cupcraft-counter, a reference order-processing
// service for the wizard.
//
// The counter serves three HTTP endpoints:
//
//	/orders   websocket; one order envelope in, one ack or error envelope out
//	/metrics  Prometheus metrics
//	/healthz  JSON liveness report with the journaled order count
//
// Every order is checked against the counter's catalog: each referenced id
// must exist and the ticket total must equal the price the counter computes
// itself. Accepted orders are written to a bbolt journal. Re-sending an
// order id that is already journaled is acknowledged again without a second
// write, so clients may retry safely.
//
// Each websocket connection has its own token-bucket rate limiter. Messages
// over the limit are answered with an error envelope and not processed.
//
// # Usage Example
//
//	config := &counter.Config{
//	    Port:      8787,
//	    DBPath:    "orders.db",
//	    Name:      "front",
//	    Advertise: true,
//	}
//	srv, err := counter.New(config, catalog.MustDefault())
//	if err != nil {
//	    return err
//	}
//	return srv.Start() // blocks until SIGINT/SIGTERM
package counter
