package net

import (
	"errors"
	"fmt"
	"log"
	"net"
	"os"
	"strings"
	"time"

	"github.com/hashicorp/mdns"
)

// ServiceType is the mDNS service announced by the analysis service.
const ServiceType = "_calmboard._tcp"

const pathField = "path="

// ErrNotFound is returned when no analysis service answered in time.
var ErrNotFound = errors.New("no analysis service found")

// Advertise announces an analysis service listening on port whose analyze
// route is path. Shut the returned server down to stop announcing.
func Advertise(port int, path string) (*mdns.Server, error) {
	host, err := os.Hostname()
	if err != nil {
		return nil, fmt.Errorf("could not get hostname: %w", err)
	}
	info := []string{"CalmBoard", pathField + path}
	service, err := mdns.NewMDNSService(host, ServiceType, "", "", port, []net.IP{OutgoingIP()}, info)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS service: %w", err)
	}
	server, err := mdns.NewServer(&mdns.Config{Zone: service})
	if err != nil {
		return nil, fmt.Errorf("failed to start mDNS server: %w", err)
	}
	log.Printf("[NET] Advertising %s on port %d", ServiceType, port)
	return server, nil
}

// Discover browses for wait and returns the analyze URL of the first service found.
func Discover(wait time.Duration) (string, error) {
	entries := make(chan *mdns.ServiceEntry, 8)
	params := mdns.DefaultParams(ServiceType)
	params.Entries = entries
	params.Timeout = wait
	params.DisableIPv6 = true

	errc := make(chan error, 1)
	go func() {
		errc <- mdns.Query(params)
		close(entries)
	}()

	var found string
	for e := range entries {
		if found != "" {
			continue
		}
		if u, ok := endpointFromEntry(e); ok {
			found = u
		}
	}
	if err := <-errc; err != nil && found == "" {
		return "", fmt.Errorf("mDNS query: %w", err)
	}
	if found == "" {
		return "", ErrNotFound
	}
	log.Printf("[NET] Discovered analysis service at %s", found)
	return found, nil
}

func endpointFromEntry(e *mdns.ServiceEntry) (string, bool) {
	if e == nil || e.AddrV4 == nil || e.Port == 0 {
		return "", false
	}
	path := "/analyze"
	for _, f := range e.InfoFields {
		if p, ok := strings.CutPrefix(f, pathField); ok && p != "" {
			path = p
		}
	}
	return fmt.Sprintf("http://%s%s", net.JoinHostPort(e.AddrV4.String(), fmt.Sprint(e.Port)), path), true
}
