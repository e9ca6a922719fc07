// Package discovery finds and advertises cupcraft counters over mDNS.
//
// Counters register a "_cupcraft._tcp" service in the "local." domain with
// the TXT records "app=cupcraft" and "name=<counter name>". The wizard
// browses for that service type and keeps only entries carrying the app
// record, so unrelated services that happen to share the type are ignored.
//
// # Usage Example
//
//	// Counter side
//	adv, err := discovery.Advertise("front", 8787, version.Version)
//	if err != nil {
//	    return err
//	}
//	defer adv.Shutdown()
//
//	// Wizard side
//	counters, err := discovery.ScanForCounters(3 * time.Second)
//	for _, c := range counters {
//	    fmt.Printf("%s at %s\n", c.Name, c.Addr())
//	}
//
// Discovery needs multicast on the local network. Scans return an empty
// list, not an error, when no counter answers before the timeout.
package discovery
