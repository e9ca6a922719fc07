package counter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/muurk/cupcraft/internal/catalog"
	"github.com/muurk/cupcraft/internal/discovery"
	"github.com/muurk/cupcraft/internal/journal"
	"github.com/muurk/cupcraft/internal/logging"
)

// Server is the cupcraft order counter
type Server struct {
	config      *Config
	catalog     *catalog.Catalog
	journal     *journal.Store
	httpServer  *http.Server
	listener    net.Listener
	upgrader    websocket.Upgrader
	advert      *discovery.Advertisement
	wg          sync.WaitGroup
	mu          sync.Mutex
	activeConns map[string]*websocket.Conn
}

// New opens the journal and prepares a server. Logging must already be
// initialized by the caller.
func New(config *Config, cat *catalog.Catalog) (*Server, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid counter config: %w", err)
	}
	if cat == nil {
		return nil, fmt.Errorf("counter needs a catalog")
	}

	store, err := journal.Open(journal.Options{Path: config.DBPath})
	if err != nil {
		return nil, err
	}

	s := &Server{
		config:  config,
		catalog: cat,
		journal: store,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
		},
		activeConns: make(map[string]*websocket.Conn),
	}
	s.httpServer = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s, nil
}

// Handler returns the counter's HTTP routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/orders", s.handleOrders)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", s.handleHealth)
	return mux
}

// Journal returns the order journal.
func (s *Server) Journal() *journal.Store {
	return s.journal
}

// Start listens on the configured address and blocks until a shutdown
// signal arrives or the listener fails.
func (s *Server) Start() error {
	addr := s.config.Addr()
	logging.Info("Starting cupcraft counter",
		zap.String("addr", addr),
		zap.String("name", s.config.Name),
		zap.String("journal", s.config.DBPath),
		zap.Float64("rate", s.config.Rate),
		zap.Int("burst", s.config.Burst),
	)

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	errChan := make(chan error, 1)
	go func() {
		errChan <- s.Serve(listener)
	}()

	select {
	case <-sigChan:
		logging.Info("Shutdown signal received, stopping counter...")
		return s.Shutdown(context.Background())
	case err := <-errChan:
		return err
	}
}

// Serve accepts connections on listener until Shutdown. When advertising
// is enabled the counter is registered over mDNS on the listener's port.
func (s *Server) Serve(listener net.Listener) error {
	s.mu.Lock()
	s.listener = listener
	s.mu.Unlock()

	if s.config.Advertise {
		port := listener.Addr().(*net.TCPAddr).Port
		adv, err := discovery.Advertise(s.config.Name, port, s.config.Version)
		if err != nil {
			// The counter still works by address without mDNS.
			logging.Warn("mDNS advertisement failed", zap.Error(err))
		} else {
			s.mu.Lock()
			s.advert = adv
			s.mu.Unlock()
		}
	}

	logging.Info("Counter listening for orders", zap.String("addr", listener.Addr().String()))
	if err := s.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("counter stopped: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	logging.Info("Shutting down counter...")

	s.mu.Lock()
	s.advert.Shutdown()
	s.advert = nil
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	// Hijacked websocket connections are not tracked by http.Server.
	if err := s.httpServer.Shutdown(ctx); err != nil {
		logging.Error("Error stopping HTTP server", zap.Error(err))
	}

	s.mu.Lock()
	for addr, conn := range s.activeConns {
		logging.Info("Closing active connection", zap.String("remote_addr", addr))
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "counter shutting down"),
			time.Now().Add(time.Second))
		_ = conn.Close()
	}
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		logging.Info("All connections closed gracefully")
	case <-ctx.Done():
		logging.Warn("Shutdown timeout, forcing close")
	}

	err := s.journal.Close()
	logging.Sync()
	return err
}

// GetActiveConnections returns the number of active connections
func (s *Server) GetActiveConnections() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.activeConns)
}

type healthReport struct {
	Status      string `json:"status"`
	Name        string `json:"name"`
	Orders      int    `json:"orders"`
	Connections int    `json:"connections"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	count, err := s.journal.Count()
	report := healthReport{
		Status:      "ok",
		Name:        s.config.Name,
		Orders:      count,
		Connections: s.GetActiveConnections(),
	}
	status := http.StatusOK
	if err != nil {
		report.Status = "degraded"
		status = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(report)
}
