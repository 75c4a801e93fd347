// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.

// Package result holds the output model of a trace run.
package result

import (
	"fmt"
	"net"
	"strings"

	"github.com/hoptrace/hoptrace/log"
	"github.com/hoptrace/hoptrace/reversedns"
)

// SentinelAddress marks a hop that produced no response within the timeout.
const SentinelAddress = "*"

type (
	// TraceResult is everything discovered by a single trace run.
	TraceResult struct {
		RunID              string      `json:"run_id"`
		Destination        Destination `json:"destination"`
		Source             Source      `json:"source"`
		Hops               []Hop       `json:"hops"`
		ReachedDestination bool        `json:"reached_destination"`
		Stats              Stats       `json:"stats"`
	}

	// Destination describes the trace target.
	Destination struct {
		Hostname string `json:"hostname"`
		Address  string `json:"address"`
		Port     int    `json:"port"`
	}

	// Source describes where the trace originated.
	Source struct {
		PublicIP string `json:"public_ip,omitempty"`
	}

	// Hop is one probed network segment, in probe order.
	Hop struct {
		TTL       int      `json:"ttl"`
		Address   string   `json:"address"`
		RTTMs     float64  `json:"rtt_ms"`
		Hostnames []string `json:"hostnames,omitempty"`
	}

	// Stats summarizes a run.
	Stats struct {
		HopCount  int     `json:"hop_count"`
		Responded int     `json:"responded"`
		AvgRTTMs  float64 `json:"avg_rtt_ms"`
	}
)

// Responded reports whether the hop answered before the timeout.
func (h Hop) Responded() bool {
	return h.Address != SentinelAddress && h.Address != ""
}

// Normalize fills in the run statistics from the recorded hops.
func (r *TraceResult) Normalize() {
	stats := Stats{HopCount: len(r.Hops)}
	var totalRTT float64
	for _, hop := range r.Hops {
		if hop.Responded() {
			stats.Responded++
			totalRTT += hop.RTTMs
		}
	}
	if stats.Responded > 0 {
		stats.AvgRTTMs = totalRTT / float64(stats.Responded)
	}
	r.Stats = stats
}

// EnrichWithReverseDns fills each responding hop's hostnames via reverse
// lookups. Lookup failures leave the hop unchanged.
func (r *TraceResult) EnrichWithReverseDns() {
	for i, hop := range r.Hops {
		if !hop.Responded() {
			continue
		}
		names, err := reversedns.Lookup(hop.Address)
		if err != nil {
			log.Debugf("reverse dns for %s failed: %s", hop.Address, err)
			continue
		}
		r.Hops[i].Hostnames = names
	}
}

// RemovePrivateHops redacts responders in private address ranges, turning
// them into sentinel entries.
func (r *TraceResult) RemovePrivateHops() {
	for i, hop := range r.Hops {
		if !hop.Responded() {
			continue
		}
		ip := net.ParseIP(hop.Address)
		if ip == nil {
			continue
		}
		if ip.IsPrivate() || ip.IsLoopback() || ip.IsLinkLocalUnicast() {
			r.Hops[i] = Hop{TTL: hop.TTL, Address: SentinelAddress}
		}
	}
}

// Render returns the human-readable hop listing, one line per hop in probe
// order: "<index>. <address> <time>ms".
func (r *TraceResult) Render() string {
	var b strings.Builder
	for i, hop := range r.Hops {
		fmt.Fprintf(&b, "%d. %s %gms\n", i+1, hop.Address, hop.RTTMs)
	}
	return b.String()
}
