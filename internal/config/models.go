package config

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/muurk/cupcraft/internal/order"
)

// Settings represents the entire user configuration file.
type Settings struct {
	Version     int                      `yaml:"version"`
	Preferences *Preferences             `yaml:"preferences,omitempty"`
	Counters    map[string]*KnownCounter `yaml:"counters,omitempty"` // Keyed by counter name
}

// Preferences represents application-wide user preferences.
type Preferences struct {
	DefaultSize        string `yaml:"default_size,omitempty"`
	DefaultTemperature string `yaml:"default_temperature,omitempty"`
	CatalogPath        string `yaml:"catalog_path,omitempty"`
	CounterAddr        string `yaml:"counter_addr,omitempty"` // host:port of the preferred counter
	AutoDiscover       bool   `yaml:"auto_discover"`
	DiscoverTimeout    int    `yaml:"discover_timeout"` // Seconds
	LogLevel           string `yaml:"log_level,omitempty"`
	LogFile            string `yaml:"log_file,omitempty"`
}

// KnownCounter remembers a counter the wizard has ordered from.
type KnownCounter struct {
	Addr     string    `yaml:"addr"`
	LastUsed time.Time `yaml:"last_used,omitempty"`
	Orders   int       `yaml:"orders,omitempty"`
}

// DefaultPreferences returns the preferences used when none are configured.
func DefaultPreferences() *Preferences {
	return &Preferences{
		DefaultSize:        string(order.SizeMedium),
		DefaultTemperature: string(order.TemperatureHot),
		DiscoverTimeout:    3,
	}
}

// NewSettings creates Settings with default values.
func NewSettings() *Settings {
	return &Settings{
		Version:     1,
		Preferences: DefaultPreferences(),
		Counters:    make(map[string]*KnownCounter),
	}
}

// Validate reports every invalid preference.
func (p *Preferences) Validate() error {
	var errs []error
	if p.DefaultSize != "" {
		if _, err := order.ParseSize(p.DefaultSize); err != nil {
			errs = append(errs, fmt.Errorf("default_size: %w", err))
		}
	}
	if p.DefaultTemperature != "" {
		if _, err := order.ParseTemperature(p.DefaultTemperature); err != nil {
			errs = append(errs, fmt.Errorf("default_temperature: %w", err))
		}
	}
	if p.CounterAddr != "" {
		if err := validateAddr(p.CounterAddr); err != nil {
			errs = append(errs, fmt.Errorf("counter_addr: %w", err))
		}
	}
	if p.DiscoverTimeout < 0 || p.DiscoverTimeout > 60 {
		errs = append(errs, fmt.Errorf("discover_timeout: %d is outside 0-60 seconds", p.DiscoverTimeout))
	}
	switch p.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log_level: unknown level %q", p.LogLevel))
	}
	return errors.Join(errs...)
}

// Size returns the preferred cup size, or medium.
func (p *Preferences) Size() order.Size {
	if size, err := order.ParseSize(p.DefaultSize); err == nil {
		return size
	}
	return order.SizeMedium
}

// Temperature returns the preferred serving temperature, or hot.
func (p *Preferences) Temperature() order.Temperature {
	if temp, err := order.ParseTemperature(p.DefaultTemperature); err == nil {
		return temp
	}
	return order.TemperatureHot
}

// DiscoverDuration returns the discovery timeout as a duration.
func (p *Preferences) DiscoverDuration() time.Duration {
	if p.DiscoverTimeout <= 0 {
		return 3 * time.Second
	}
	return time.Duration(p.DiscoverTimeout) * time.Second
}

// EnsureCounter ensures a counter entry exists and returns it.
func (s *Settings) EnsureCounter(name string) *KnownCounter {
	if s.Counters == nil {
		s.Counters = make(map[string]*KnownCounter)
	}
	if c, ok := s.Counters[name]; ok {
		return c
	}
	c := &KnownCounter{}
	s.Counters[name] = c
	return c
}

// RecordOrder notes a successful order at the named counter.
func (s *Settings) RecordOrder(name, addr string, at time.Time) {
	c := s.EnsureCounter(name)
	c.Addr = addr
	c.LastUsed = at
	c.Orders++
}

func validateAddr(addr string) error {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return err
	}
	if host == "" {
		return fmt.Errorf("missing host in %q", addr)
	}
	n, err := strconv.Atoi(port)
	if err != nil || n <= 0 || n > 65535 {
		return fmt.Errorf("invalid port %q", port)
	}
	return nil
}
