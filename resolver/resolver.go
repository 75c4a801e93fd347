// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.

// Package resolver turns a user-supplied destination into a canonical
// address string.
package resolver

import (
	"context"
	"fmt"
	"net"
	"net/netip"

	"github.com/hoptrace/hoptrace/log"
)

// Resolver maps a hostname or literal address to a canonical address string.
// An empty destination resolves to an empty address without performing any
// lookup.
type Resolver interface {
	Resolve(ctx context.Context, destination string) (string, error)
}

// DNSError wraps a resolution failure so it can be classified at the
// CLI/HTTP boundary.
type DNSError struct {
	Host string
	Err  error
}

func (e *DNSError) Error() string {
	return fmt.Sprintf("failed to resolve host %q: %s", e.Host, e.Err)
}

func (e *DNSError) Unwrap() error {
	return e.Err
}

// lookupIPFn is declared as a variable for test substitution.
var lookupIPFn = net.DefaultResolver.LookupIPAddr

type systemResolver struct{}

// NewSystem returns a Resolver backed by the OS resolver. IPv4 addresses are
// preferred when the lookup returns a mixed set.
func NewSystem() Resolver {
	return systemResolver{}
}

func (systemResolver) Resolve(ctx context.Context, destination string) (string, error) {
	if destination == "" {
		return "", nil
	}

	// Literal addresses skip DNS entirely.
	if addr, err := netip.ParseAddr(destination); err == nil {
		return addr.Unmap().String(), nil
	}

	ips, err := lookupIPFn(ctx, destination)
	if err != nil || len(ips) == 0 {
		if err == nil {
			err = fmt.Errorf("no addresses found")
		}
		return "", &DNSError{Host: destination, Err: err}
	}

	for _, r := range ips {
		if v4 := r.IP.To4(); v4 != nil {
			return v4.String(), nil
		}
	}
	addr := ips[0].IP.String()
	log.Debugf("no IPv4 address for %s, using %s", destination, addr)
	return addr, nil
}
