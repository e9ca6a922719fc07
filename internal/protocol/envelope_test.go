package protocol

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muurk/cupcraft/internal/order"
)

func testTicket() order.Ticket {
	return order.Ticket{
		ID:          uuid.NewString(),
		PlacedAt:    time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC),
		Bean:        order.ItemRef{ID: "arabica-1", Name: "Arabica"},
		Grind:       order.ItemRef{ID: "medium", Name: "Medium"},
		Preparation: order.ItemRef{ID: "pourover", Name: "Pour Over"},
		Toppings:    []order.ItemRef{{ID: "oat-milk", Name: "Oat Milk"}, {ID: "vanilla", Name: "Vanilla"}},
		Size:        order.SizeMedium,
		Temperature: order.TemperatureHot,
		Total:       4.75,
	}
}

func TestOrderRoundTrip(t *testing.T) {
	ticket := testTicket()

	data, err := Encode(NewOrder(ticket))
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "order", raw["type"])
	assert.Equal(t, ticket.ID, raw["order_id"])
	assert.NotContains(t, raw, "status")

	env, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, TypeOrder, env.Type)
	require.NotNil(t, env.Ticket)
	assert.Equal(t, ticket, *env.Ticket)
}

func TestAckRoundTrip(t *testing.T) {
	id := uuid.NewString()
	data, err := Encode(NewAck(id, StatusRejected, "unknown bean"))
	require.NoError(t, err)

	env, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, NewAck(id, StatusRejected, "unknown bean"), env)
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    error
	}{
		{"not json", "hello", ErrMalformed},
		{"unknown field", `{"type":"ack","order_id":"x","status":"accepted","extra":1}`, ErrMalformed},
		{"trailing data", `{"type":"error","message":"m"}{}`, ErrMalformed},
		{"unknown type", `{"type":"refund","order_id":"x"}`, ErrUnknownType},
		{"missing type", `{"order_id":"x"}`, ErrUnknownType},
		{"order without ticket", `{"type":"order","order_id":"x"}`, ErrInvalid},
		{"ack bad status", `{"type":"ack","order_id":"x","status":"maybe"}`, ErrInvalid},
		{"ack without id", `{"type":"ack","status":"accepted"}`, ErrInvalid},
		{"error without message", `{"type":"error"}`, ErrInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.payload))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestDecodeRejectsOversized(t *testing.T) {
	payload := `{"type":"error","message":"` + strings.Repeat("x", MaxMessageSize) + `"}`
	_, err := Decode([]byte(payload))
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestEncodeValidates(t *testing.T) {
	ticket := testTicket()
	env := NewOrder(ticket)
	env.OrderID = uuid.NewString()

	_, err := Encode(env)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestHandleMessage(t *testing.T) {
	var got []order.Ticket
	h := OrderHandlerFunc(func(_ context.Context, tk order.Ticket) Envelope {
		got = append(got, tk)
		return NewAck(tk.ID, StatusAccepted, "")
	})
	ctx := context.Background()

	t.Run("order is dispatched", func(t *testing.T) {
		ticket := testTicket()
		data, err := Encode(NewOrder(ticket))
		require.NoError(t, err)

		reply := HandleMessage(ctx, h, "127.0.0.1:1", data)
		assert.Equal(t, TypeAck, reply.Type)
		assert.Equal(t, ticket.ID, reply.OrderID)
		require.Len(t, got, 1)
	})

	t.Run("malformed becomes error reply", func(t *testing.T) {
		reply := HandleMessage(ctx, h, "127.0.0.1:1", []byte("{"))
		assert.Equal(t, TypeError, reply.Type)
		assert.Equal(t, "malformed message", reply.Message)
	})

	t.Run("ack is not accepted by a counter", func(t *testing.T) {
		data, err := Encode(NewAck(uuid.NewString(), StatusAccepted, ""))
		require.NoError(t, err)
		reply := HandleMessage(ctx, h, "127.0.0.1:1", data)
		assert.Equal(t, TypeError, reply.Type)
		assert.Len(t, got, 1)
	})

	t.Run("unknown type keeps order id", func(t *testing.T) {
		reply := HandleMessage(ctx, h, "127.0.0.1:1", []byte(`{"type":"refund","order_id":"abc"}`))
		assert.Equal(t, NewError("abc", "unknown message type"), reply)
	})
}
