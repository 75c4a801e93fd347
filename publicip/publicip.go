// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.

// Package publicip discovers the public IP of the tracing host so results
// can report the true source of the trace.
package publicip

import (
	"net"
	"time"

	externalip "github.com/glendc/go-external-ip"

	"github.com/hoptrace/hoptrace/cache"
	"github.com/hoptrace/hoptrace/log"
)

const defaultCacheExpiration = 2 * time.Hour

// Fetcher returns the public IP of this host.
type Fetcher interface {
	GetIP() (net.IP, error)
}

type consensusFetcher struct {
	consensus *externalip.Consensus
}

// NewFetcher returns a Fetcher that asks several well-known services and
// takes the majority answer. Results are cached so repeated traces don't
// re-query the services.
func NewFetcher() Fetcher {
	consensus := externalip.DefaultConsensus(nil, nil)
	consensus.UseIPProtocol(4)
	return &consensusFetcher{consensus: consensus}
}

func (f *consensusFetcher) GetIP() (net.IP, error) {
	return cache.DoWithTTL("source_public_ip", func() (net.IP, error) {
		ip, err := f.consensus.ExternalIP()
		if err != nil {
			return nil, err
		}
		log.Debugf("public IP fetched: %s", ip)
		return ip, nil
	}, defaultCacheExpiration)
}
