package counter

import (
	"fmt"

	"github.com/muurk/cupcraft/internal/discovery"
	"github.com/muurk/cupcraft/internal/journal"
)

// Default limits
const (
	DefaultRate  = 2.0
	DefaultBurst = 5
)

// Config holds the counter configuration
type Config struct {
	Host string
	Port int
	// DBPath is the journal file
	DBPath string
	// Name identifies the counter in acks and mDNS adverts
	Name      string
	Advertise bool
	// Rate is the sustained orders per second allowed per connection
	Rate  float64
	Burst int
	// Version is advertised over mDNS
	Version  string
	LogLevel string
}

// DefaultConfig returns the configuration cupcraft-counter starts from.
func DefaultConfig() *Config {
	return &Config{
		Port:   discovery.DefaultPort,
		DBPath: journal.DefaultOptions().Path,
		Name:   "counter",
		Rate:   DefaultRate,
		Burst:  DefaultBurst,
	}
}

// Addr returns the listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Validate checks the configuration and fills zero limits with defaults.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.Name == "" {
		return fmt.Errorf("counter name is required")
	}
	if c.Rate < 0 {
		return fmt.Errorf("rate must not be negative, got %v", c.Rate)
	}
	if c.Rate == 0 {
		c.Rate = DefaultRate
	}
	if c.Burst <= 0 {
		c.Burst = DefaultBurst
	}
	return nil
}
