package counter

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/muurk/cupcraft/internal/catalog"
	"github.com/muurk/cupcraft/internal/journal"
	"github.com/muurk/cupcraft/internal/logging"
	"github.com/muurk/cupcraft/internal/metrics"
	"github.com/muurk/cupcraft/internal/order"
	"github.com/muurk/cupcraft/internal/protocol"
)

// priceTolerance absorbs float rounding between client and counter.
const priceTolerance = 0.005

type remoteAddrKey struct{}

// withRemoteAddr stores the peer address for journal entries.
func withRemoteAddr(ctx context.Context, addr string) context.Context {
	return context.WithValue(ctx, remoteAddrKey{}, addr)
}

func remoteAddr(ctx context.Context) string {
	addr, _ := ctx.Value(remoteAddrKey{}).(string)
	return addr
}

// HandleOrder implements protocol.OrderHandler.
func (s *Server) HandleOrder(ctx context.Context, t order.Ticket) protocol.Envelope {
	start := time.Now()
	defer func() { metrics.OrderHandleDuration.Observe(time.Since(start).Seconds()) }()

	if err := t.Validate(); err != nil {
		return s.reject(t, err.Error())
	}

	sel, err := Reprice(s.catalog, t)
	if err != nil {
		return s.reject(t, err.Error())
	}
	if want := order.Total(sel); math.Abs(want-t.Total) > priceTolerance {
		return s.reject(t, fmt.Sprintf("total %s does not match price %s", order.FormatPrice(t.Total), order.FormatPrice(want)))
	}

	err = s.journal.Save(journal.Entry{
		Ticket:     t,
		ReceivedAt: time.Now(),
		Counter:    s.config.Name,
		RemoteAddr: remoteAddr(ctx),
	})
	switch {
	case errors.Is(err, journal.ErrDuplicate):
		logging.Info("Duplicate order acknowledged", zap.String("order_id", t.ID))
		return protocol.NewAck(t.ID, protocol.StatusAccepted, "Order already received by "+s.config.Name)
	case err != nil:
		metrics.JournalErrorsTotal.Inc()
		metrics.OrdersTotal.WithLabelValues(metrics.StatusError).Inc()
		logging.Error("Failed to journal order", zap.String("order_id", t.ID), zap.Error(err))
		return protocol.NewError(t.ID, "counter could not record the order")
	}

	metrics.OrdersTotal.WithLabelValues(metrics.StatusAccepted).Inc()
	metrics.OrderValueDollars.Observe(t.Total)
	for _, ref := range t.Toppings {
		metrics.ToppingsTotal.WithLabelValues(ref.ID).Inc()
	}
	logging.LogOrder(t.ID, metrics.StatusAccepted, t.Total,
		zap.String("counter", s.config.Name),
		zap.String("summary", t.Summary()),
	)
	return protocol.NewAck(t.ID, protocol.StatusAccepted, "Order received by "+s.config.Name)
}

func (s *Server) reject(t order.Ticket, reason string) protocol.Envelope {
	metrics.OrdersTotal.WithLabelValues(metrics.StatusRejected).Inc()
	logging.LogOrder(t.ID, metrics.StatusRejected, t.Total, zap.String("reason", reason))
	return protocol.NewAck(t.ID, protocol.StatusRejected, reason)
}

// Reprice rebuilds the selection a ticket describes from cat, so the
// counter can price it independently of the client.
func Reprice(cat *catalog.Catalog, t order.Ticket) (order.Selection, error) {
	bean, err := cat.Bean(t.Bean.ID)
	if err != nil {
		return order.Selection{}, err
	}
	grind, err := cat.Grind(t.Grind.ID)
	if err != nil {
		return order.Selection{}, err
	}
	prep, err := cat.Preparation(t.Preparation.ID)
	if err != nil {
		return order.Selection{}, err
	}

	toppings := make([]catalog.Topping, 0, len(t.Toppings))
	for _, ref := range t.Toppings {
		topping, err := cat.Topping(ref.ID)
		if err != nil {
			return order.Selection{}, err
		}
		toppings = append(toppings, topping)
	}

	return order.NewSelection(t.Size, t.Temperature).Apply(
		order.WithBean(bean),
		order.WithGrind(grind),
		order.WithPreparation(prep),
		order.WithToppings(toppings),
	), nil
}
