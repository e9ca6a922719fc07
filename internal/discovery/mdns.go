package discovery

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/grandcat/zeroconf"
	"go.uber.org/zap"

	"github.com/muurk/cupcraft/internal/logging"
)

const (
	// ServiceType is the mDNS service type counters register
	ServiceType = "_cupcraft._tcp"

	// ServiceDomain is the mDNS domain (typically "local.")
	ServiceDomain = "local."

	// AppTXT marks an entry as a cupcraft counter
	AppTXT = "app=cupcraft"

	// DefaultScanTimeout is the default timeout for counter discovery
	DefaultScanTimeout = 3 * time.Second

	// DefaultPort is the port counters listen on unless configured otherwise
	DefaultPort = 8787
)

// Scanner handles mDNS counter discovery
type Scanner struct {
	// Timeout is the maximum time to wait for answers
	Timeout time.Duration
}

// NewScanner creates a new mDNS scanner with default settings
func NewScanner() *Scanner {
	return &Scanner{
		Timeout: DefaultScanTimeout,
	}
}

// ScanForCounters discovers all counters on the local network, in the
// order they answered.
func (s *Scanner) ScanForCounters(ctx context.Context) ([]*Counter, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	entries := make(chan *zeroconf.ServiceEntry)
	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS resolver: %w", err)
	}

	var (
		mu       sync.Mutex
		counters []*Counter
		seen     = make(map[string]bool)
		done     = make(chan struct{})
	)
	go func() {
		defer close(done)
		for entry := range entries {
			counter := s.parseServiceEntry(entry)
			if counter == nil {
				continue
			}
			mu.Lock()
			if !seen[counter.Instance] {
				seen[counter.Instance] = true
				counters = append(counters, counter)
			}
			mu.Unlock()
		}
	}()

	if err := resolver.Browse(ctx, ServiceType, ServiceDomain, entries); err != nil {
		return nil, fmt.Errorf("failed to browse for mDNS services: %w", err)
	}

	<-ctx.Done()
	// The resolver closes entries once the browse context ends.
	select {
	case <-done:
	case <-time.After(time.Second):
	}

	mu.Lock()
	defer mu.Unlock()
	logging.Debug("Counter scan finished", zap.Int("found", len(counters)))
	return append([]*Counter(nil), counters...), nil
}

// WaitForCounter returns the first counter advertising name. An empty name
// matches any counter.
func (s *Scanner) WaitForCounter(ctx context.Context, name string) (*Counter, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	entries := make(chan *zeroconf.ServiceEntry)
	found := make(chan *Counter, 1)

	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS resolver: %w", err)
	}

	go func() {
		for entry := range entries {
			counter := s.parseServiceEntry(entry)
			if counter != nil && (name == "" || counter.Name == name) {
				select {
				case found <- counter:
				default:
				}
				cancel()
			}
		}
	}()

	if err := resolver.Browse(ctx, ServiceType, ServiceDomain, entries); err != nil {
		return nil, fmt.Errorf("failed to browse for mDNS services: %w", err)
	}

	select {
	case counter := <-found:
		return counter, nil
	case <-ctx.Done():
		select {
		case counter := <-found:
			return counter, nil
		default:
		}
		if name == "" {
			return nil, fmt.Errorf("no counter found within %s", s.Timeout)
		}
		return nil, fmt.Errorf("counter %q not found within %s", name, s.Timeout)
	}
}

// parseServiceEntry converts a zeroconf service entry to a Counter.
// Returns nil if the entry is not a cupcraft counter or has no address.
func (s *Scanner) parseServiceEntry(entry *zeroconf.ServiceEntry) *Counter {
	metadata := parseTXT(entry.Text)
	if metadata["app"] != "cupcraft" {
		return nil
	}

	// Prefer IPv4
	var ip string
	if len(entry.AddrIPv4) > 0 {
		ip = entry.AddrIPv4[0].String()
	}
	if ip == "" && len(entry.AddrIPv6) > 0 {
		ip = entry.AddrIPv6[0].String()
	}
	if ip == "" {
		return nil
	}

	port := entry.Port
	if port == 0 {
		port = DefaultPort
	}

	name := metadata["name"]
	if name == "" {
		name = entry.Instance
	}

	return &Counter{
		Name:         name,
		Instance:     entry.Instance,
		Hostname:     entry.HostName,
		IP:           ip,
		Port:         port,
		Metadata:     metadata,
		DiscoveredAt: time.Now(),
	}
}

// parseTXT splits "key=value" records. Keys without a value map to "".
func parseTXT(records []string) map[string]string {
	metadata := make(map[string]string, len(records))
	for _, txt := range records {
		parts := strings.SplitN(txt, "=", 2)
		if len(parts) == 2 {
			metadata[parts[0]] = parts[1]
		} else {
			metadata[parts[0]] = ""
		}
	}
	return metadata
}

// ScanForCounters is a convenience function to scan with a custom timeout
func ScanForCounters(timeout time.Duration) ([]*Counter, error) {
	scanner := NewScanner()
	if timeout > 0 {
		scanner.Timeout = timeout
	}
	return scanner.ScanForCounters(context.Background())
}

// FindCounter waits for a counter by name with the given timeout.
func FindCounter(name string, timeout time.Duration) (*Counter, error) {
	scanner := NewScanner()
	if timeout > 0 {
		scanner.Timeout = timeout
	}
	return scanner.WaitForCounter(context.Background(), name)
}
