// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.

// Package reversedns resolves hop addresses back to hostnames for result
// enrichment.
package reversedns

import (
	"context"
	"fmt"
	"net"
	"strings"
	"time"
)

const lookupTimeout = 5 * time.Second

// LookupAddrFn is declared as a variable to ease testing.
var LookupAddrFn = net.DefaultResolver.LookupAddr

// Lookup returns the hostnames registered for the given address string,
// without trailing dots.
func Lookup(addr string) ([]string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), lookupTimeout)
	defer cancel()

	raw, err := LookupAddrFn(ctx, addr)
	if err != nil {
		return nil, fmt.Errorf("failed to get reverse dns: %w", err)
	}

	names := make([]string, 0, len(raw))
	for _, name := range raw {
		names = append(names, strings.TrimRight(name, "."))
	}
	return names, nil
}
