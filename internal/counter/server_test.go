package counter

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muurk/cupcraft/internal/catalog"
	"github.com/muurk/cupcraft/internal/handoff"
	"github.com/muurk/cupcraft/internal/order"
	"github.com/muurk/cupcraft/internal/protocol"
)

func newTestServer(t *testing.T, mutate func(*Config)) (*Server, *httptest.Server) {
	t.Helper()
	config := DefaultConfig()
	config.Name = "front"
	config.DBPath = filepath.Join(t.TempDir(), "orders.db")
	if mutate != nil {
		mutate(config)
	}

	srv, err := New(config, catalog.MustDefault())
	require.NoError(t, err)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(func() {
		ts.Close()
		_ = srv.Shutdown(context.Background())
	})
	return srv, ts
}

func dial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/orders"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func roundTrip(t *testing.T, conn *websocket.Conn, payload []byte) protocol.Envelope {
	t.Helper()
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, payload))
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	env, err := protocol.Decode(data)
	require.NoError(t, err)
	return env
}

func scenarioTicket(t *testing.T) order.Ticket {
	t.Helper()
	cat := catalog.MustDefault()
	bean, _ := cat.Bean("arabica-1")
	grind, _ := cat.Grind("medium")
	prep, _ := cat.Preparation("pourover")
	oat, _ := cat.Topping("oat-milk")
	vanilla, _ := cat.Topping("vanilla")

	sel := order.NewSelection("", "").
		Apply(order.WithBean(bean), order.WithGrind(grind), order.WithPreparation(prep)).
		ToggleTopping(oat).
		ToggleTopping(vanilla)

	ticket, err := order.NewTicket(sel, time.Now())
	require.NoError(t, err)
	return ticket
}

func encodeOrder(t *testing.T, ticket order.Ticket) []byte {
	t.Helper()
	data, err := protocol.Encode(protocol.NewOrder(ticket))
	require.NoError(t, err)
	return data
}

func TestOrderIsJournaledAndAcked(t *testing.T) {
	srv, ts := newTestServer(t, nil)
	conn := dial(t, ts)
	ticket := scenarioTicket(t)

	reply := roundTrip(t, conn, encodeOrder(t, ticket))

	assert.Equal(t, protocol.TypeAck, reply.Type)
	assert.Equal(t, protocol.StatusAccepted, reply.Status)
	assert.Equal(t, ticket.ID, reply.OrderID)
	assert.Contains(t, reply.Message, "front")

	entry, err := srv.Journal().Get(ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, "front", entry.Counter)
	assert.InDelta(t, 4.75, entry.Ticket.Total, 1e-9)
	assert.NotEmpty(t, entry.RemoteAddr)
}

func TestDuplicateOrderIsAcknowledgedOnce(t *testing.T) {
	srv, ts := newTestServer(t, nil)
	conn := dial(t, ts)
	ticket := scenarioTicket(t)

	first := roundTrip(t, conn, encodeOrder(t, ticket))
	second := roundTrip(t, conn, encodeOrder(t, ticket))

	assert.Equal(t, protocol.StatusAccepted, first.Status)
	assert.Equal(t, protocol.StatusAccepted, second.Status)
	assert.Contains(t, second.Message, "already")

	n, err := srv.Journal().Count()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestOrderRejections(t *testing.T) {
	_, ts := newTestServer(t, nil)
	conn := dial(t, ts)

	tests := []struct {
		name   string
		mutate func(*order.Ticket)
		want   string
	}{
		{"total mismatch", func(tk *order.Ticket) { tk.Total = 3.99 }, "does not match"},
		{"unknown bean", func(tk *order.Ticket) { tk.Bean.ID = "kopi-luwak" }, "kopi-luwak"},
		{"unknown topping", func(tk *order.Ticket) {
			tk.Toppings = append(tk.Toppings, order.ItemRef{ID: "gold-leaf"})
		}, "gold-leaf"},
		{"missing grind", func(tk *order.Ticket) { tk.Grind = order.ItemRef{} }, "incomplete"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ticket := scenarioTicket(t)
			tt.mutate(&ticket)

			reply := roundTrip(t, conn, encodeOrder(t, ticket))
			assert.Equal(t, protocol.TypeAck, reply.Type)
			assert.Equal(t, protocol.StatusRejected, reply.Status)
			assert.Contains(t, reply.Message, tt.want)
		})
	}
}

func TestMalformedMessage(t *testing.T) {
	_, ts := newTestServer(t, nil)
	conn := dial(t, ts)

	reply := roundTrip(t, conn, []byte(`{"type":"order"`))
	assert.Equal(t, protocol.TypeError, reply.Type)
}

func TestRateLimit(t *testing.T) {
	_, ts := newTestServer(t, func(c *Config) {
		c.Rate = 0.001
		c.Burst = 1
	})
	conn := dial(t, ts)

	first := roundTrip(t, conn, encodeOrder(t, scenarioTicket(t)))
	assert.Equal(t, protocol.StatusAccepted, first.Status)

	ticket := scenarioTicket(t)
	second := roundTrip(t, conn, encodeOrder(t, ticket))
	assert.Equal(t, protocol.TypeError, second.Type)
	assert.Equal(t, ticket.ID, second.OrderID)
	assert.Contains(t, second.Message, "rate limit")
}

func TestRateLimitIsPerConnection(t *testing.T) {
	_, ts := newTestServer(t, func(c *Config) {
		c.Rate = 0.001
		c.Burst = 1
	})

	for i := 0; i < 2; i++ {
		conn := dial(t, ts)
		reply := roundTrip(t, conn, encodeOrder(t, scenarioTicket(t)))
		assert.Equal(t, protocol.StatusAccepted, reply.Status)
	}
}

func TestCounterProcessorAgainstCounter(t *testing.T) {
	srv, ts := newTestServer(t, nil)
	p := handoff.NewCounterProcessor(strings.TrimPrefix(ts.URL, "http://"))
	ticket := scenarioTicket(t)

	res := p.PlaceOrder(context.Background(), ticket)
	require.Equal(t, handoff.StatusAccepted, res.Status, "result: %+v", res)

	_, err := srv.Journal().Get(ticket.ID)
	assert.NoError(t, err)

	ticket = scenarioTicket(t)
	ticket.Total = 10
	res = p.PlaceOrder(context.Background(), ticket)
	assert.Equal(t, handoff.StatusRejected, res.Status)
}

func TestHealthAndMetrics(t *testing.T) {
	_, ts := newTestServer(t, nil)
	conn := dial(t, ts)
	roundTrip(t, conn, encodeOrder(t, scenarioTicket(t)))

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var report healthReport
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&report))
	assert.Equal(t, "ok", report.Status)
	assert.Equal(t, "front", report.Name)
	assert.Equal(t, 1, report.Orders)

	resp, err = http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "cupcraft_orders_total")
}

func TestServeAndShutdown(t *testing.T) {
	config := DefaultConfig()
	config.DBPath = filepath.Join(t.TempDir(), "orders.db")
	srv, err := New(config, catalog.MustDefault())
	require.NoError(t, err)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	errChan := make(chan error, 1)
	go func() { errChan <- srv.Serve(ln) }()

	p := handoff.NewCounterProcessor(ln.Addr().String())
	res := p.PlaceOrder(context.Background(), scenarioTicket(t))
	require.True(t, res.Accepted(), "result: %+v", res)

	require.NoError(t, srv.Shutdown(context.Background()))
	select {
	case err := <-errChan:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve() did not return after Shutdown()")
	}
	assert.Equal(t, 0, srv.GetActiveConnections())
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{"defaults", *DefaultConfig(), false},
		{"bad port", Config{Name: "x", Port: 70000}, true},
		{"no name", Config{Port: 8787}, true},
		{"negative rate", Config{Name: "x", Rate: -1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := tt.config
			err := c.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}

	c := Config{Name: "x"}
	require.NoError(t, c.Validate())
	assert.Equal(t, DefaultRate, c.Rate)
	assert.Equal(t, DefaultBurst, c.Burst)
}
