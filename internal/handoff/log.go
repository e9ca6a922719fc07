package handoff

import (
	"context"

	"go.uber.org/zap"

	"github.com/muurk/cupcraft/internal/logging"
	"github.com/muurk/cupcraft/internal/order"
)

// LogProcessor accepts every valid ticket and records it in the log.
type LogProcessor struct{}

// PlaceOrder implements Processor.
func (LogProcessor) PlaceOrder(ctx context.Context, t order.Ticket) Result {
	if err := ctx.Err(); err != nil {
		return failed(t.ID, KindTimeout, "order was cancelled", err)
	}
	if err := t.Validate(); err != nil {
		return rejected(t.ID, err.Error())
	}

	logging.LogOrder(t.ID, StatusAccepted.String(), t.Total,
		zap.String("summary", t.Summary()),
		zap.Strings("toppings", toppingIDs(t)),
	)
	return accepted(t.ID, "Order placed")
}

func toppingIDs(t order.Ticket) []string {
	ids := make([]string, len(t.Toppings))
	for i, ref := range t.Toppings {
		ids[i] = ref.ID
	}
	return ids
}
