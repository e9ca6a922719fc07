package discovery

import (
	"fmt"
	"net"
	"strconv"
	"time"
)

// Counter represents a discovered cupcraft counter on the network
type Counter struct {
	// Name is the advertised counter name (e.g., "front")
	Name string

	// Instance is the mDNS instance name
	Instance string

	// Hostname is the mDNS hostname (e.g., "barista.local.")
	Hostname string

	// IP is the preferred address, IPv4 when available
	IP string

	Port int

	// Metadata contains the TXT record data
	Metadata map[string]string

	DiscoveredAt time.Time
}

// String returns a human-readable string representation of the counter
func (c *Counter) String() string {
	return fmt.Sprintf("Counter %q (%s) at %s", c.Name, c.Hostname, c.Addr())
}

// Addr returns host:port, suitable for handoff.NewCounterProcessor.
func (c *Counter) Addr() string {
	return net.JoinHostPort(c.IP, strconv.Itoa(c.Port))
}

// GetMetadata retrieves a metadata value by key, or returns empty string if not found
func (c *Counter) GetMetadata(key string) string {
	if c.Metadata == nil {
		return ""
	}
	return c.Metadata[key]
}
