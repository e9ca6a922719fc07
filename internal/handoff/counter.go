package handoff

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/muurk/cupcraft/internal/logging"
	"github.com/muurk/cupcraft/internal/order"
	"github.com/muurk/cupcraft/internal/protocol"
)

const (
	// OrdersPath is the counter's websocket endpoint.
	OrdersPath = "/orders"

	// DefaultTimeout bounds a whole submission when the context has no deadline.
	DefaultTimeout = 10 * time.Second
)

// CounterProcessor submits tickets to a cupcraft counter.
type CounterProcessor struct {
	// Addr is the counter's host:port.
	Addr string
	// Name is the counter's advertised name, used only for display.
	Name    string
	Timeout time.Duration
	Dialer  *websocket.Dialer
}

// NewCounterProcessor returns a processor for the counter at addr.
func NewCounterProcessor(addr string) *CounterProcessor {
	return &CounterProcessor{
		Addr:    addr,
		Timeout: DefaultTimeout,
		Dialer:  websocket.DefaultDialer,
	}
}

// URL returns the websocket URL orders are sent to.
func (p *CounterProcessor) URL() string {
	u := url.URL{Scheme: "ws", Host: p.Addr, Path: OrdersPath}
	return u.String()
}

// PlaceOrder implements Processor. It dials the counter, sends one order
// envelope and waits for the matching ack.
func (p *CounterProcessor) PlaceOrder(ctx context.Context, t order.Ticket) Result {
	if err := t.Validate(); err != nil {
		return rejected(t.ID, err.Error())
	}

	timeout := p.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	dialer := p.Dialer
	if dialer == nil {
		dialer = websocket.DefaultDialer
	}

	logging.Debug("Submitting order to counter",
		zap.String("order_id", t.ID),
		zap.String("url", p.URL()),
	)

	conn, resp, err := dialer.DialContext(ctx, p.URL(), nil)
	if err != nil {
		if resp != nil {
			_ = resp.Body.Close()
		}
		if isTimeout(ctx, err) {
			return failed(t.ID, KindTimeout, "counter did not answer in time", err)
		}
		return failed(t.ID, KindDial, "could not reach counter at "+p.Addr, err)
	}
	defer func() { _ = conn.Close() }()

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetWriteDeadline(deadline)
		_ = conn.SetReadDeadline(deadline)
	}
	conn.SetReadLimit(protocol.MaxMessageSize)

	// Closing the connection unblocks a pending read when ctx is cancelled
	// before the deadline.
	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer stop()

	data, err := protocol.Encode(protocol.NewOrder(t))
	if err != nil {
		return failed(t.ID, KindProtocol, "could not encode order", err)
	}
	logging.LogWebSocketMessage(p.Addr, "sent", websocket.TextMessage, data)
	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return p.transportFailure(ctx, t.ID, err)
	}

	_, reply, err := conn.ReadMessage()
	if err != nil {
		return p.transportFailure(ctx, t.ID, err)
	}
	logging.LogWebSocketMessage(p.Addr, "received", websocket.TextMessage, reply)

	env, err := protocol.Decode(reply)
	if err != nil {
		return failed(t.ID, KindProtocol, "counter sent an invalid reply", err)
	}
	if env.OrderID != "" && env.OrderID != t.ID {
		return failed(t.ID, KindProtocol, "counter answered a different order",
			fmt.Errorf("reply for %s", env.OrderID))
	}

	_ = conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))

	switch env.Type {
	case protocol.TypeAck:
		if env.Status == protocol.StatusAccepted {
			return accepted(t.ID, ackMessage(env.Message, p.Name))
		}
		return rejected(t.ID, env.Message)
	case protocol.TypeError:
		return failed(t.ID, KindProtocol, env.Message, nil)
	default:
		return failed(t.ID, KindProtocol, "unexpected "+string(env.Type)+" reply", nil)
	}
}

func (p *CounterProcessor) transportFailure(ctx context.Context, orderID string, err error) Result {
	if isTimeout(ctx, err) {
		return failed(orderID, KindTimeout, "counter did not answer in time", err)
	}
	return failed(orderID, KindProtocol, "connection to counter failed", err)
}

func ackMessage(message, counter string) string {
	if message != "" {
		return message
	}
	if counter != "" {
		return "Order sent to " + counter
	}
	return "Order sent to counter"
}

func isTimeout(ctx context.Context, err error) bool {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
