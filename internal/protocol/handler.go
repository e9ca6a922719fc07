package protocol

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/muurk/cupcraft/internal/logging"
	"github.com/muurk/cupcraft/internal/order"
)

// OrderHandler processes a decoded order and returns the reply to send.
type OrderHandler interface {
	HandleOrder(ctx context.Context, t order.Ticket) Envelope
}

// OrderHandlerFunc adapts a function to OrderHandler.
type OrderHandlerFunc func(ctx context.Context, t order.Ticket) Envelope

// HandleOrder calls f.
func (f OrderHandlerFunc) HandleOrder(ctx context.Context, t order.Ticket) Envelope {
	return f(ctx, t)
}

// HandleMessage decodes one incoming message and dispatches it. It always
// returns an envelope to send back; decode failures become error replies.
func HandleMessage(ctx context.Context, h OrderHandler, remoteAddr string, data []byte) Envelope {
	env, err := Decode(data)
	if err != nil {
		logging.Warn("Rejected message",
			zap.String("remote_addr", remoteAddr),
			zap.Int("length", len(data)),
			zap.Error(err),
		)
		switch {
		case errors.Is(err, ErrUnknownType):
			return NewError(env.OrderID, "unknown message type")
		case errors.Is(err, ErrInvalid):
			return NewError(env.OrderID, err.Error())
		default:
			return NewError("", "malformed message")
		}
	}

	switch env.Type {
	case TypeOrder:
		logging.Debug("Order received",
			zap.String("remote_addr", remoteAddr),
			zap.String("order_id", env.OrderID),
		)
		return h.HandleOrder(ctx, *env.Ticket)
	default:
		// Counters only accept orders; acks and errors flow the other way.
		return NewError(env.OrderID, "unexpected "+string(env.Type)+" message")
	}
}
