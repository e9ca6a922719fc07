package discovery

import (
	"fmt"

	"github.com/grandcat/zeroconf"
	"go.uber.org/zap"

	"github.com/muurk/cupcraft/internal/logging"
)

// Advertisement is a live mDNS registration.
type Advertisement struct {
	server *zeroconf.Server
}

// AdvertiseTXT returns the TXT records a counter registers.
func AdvertiseTXT(name, version string) []string {
	txt := []string{AppTXT, "name=" + name}
	if version != "" {
		txt = append(txt, "version="+version)
	}
	return txt
}

// Advertise registers a counter called name on port until Shutdown.
func Advertise(name string, port int, version string) (*Advertisement, error) {
	if name == "" {
		return nil, fmt.Errorf("counter name is required to advertise")
	}
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("invalid port %d", port)
	}

	server, err := zeroconf.Register("cupcraft-"+name, ServiceType, ServiceDomain, port, AdvertiseTXT(name, version), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to register mDNS service: %w", err)
	}

	logging.Info("Advertising counter",
		zap.String("name", name),
		zap.String("service", ServiceType),
		zap.Int("port", port),
	)
	return &Advertisement{server: server}, nil
}

// Shutdown withdraws the registration.
func (a *Advertisement) Shutdown() {
	if a != nil && a.server != nil {
		a.server.Shutdown()
		logging.Debug("Counter advertisement withdrawn")
	}
}
