// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.

// Package trace implements sequential TTL-based hop discovery: resolve the
// destination once, then probe with TTL 1, 2, 3, ... until the destination
// itself answers.
package trace

import (
	"context"
	"fmt"

	"github.com/hoptrace/hoptrace/clock"
	"github.com/hoptrace/hoptrace/log"
	"github.com/hoptrace/hoptrace/resolver"
	"github.com/hoptrace/hoptrace/result"
	"github.com/hoptrace/hoptrace/transport"
)

// Session is the state accumulated by one engine execution. The route is
// append-only and always has exactly HopCount entries.
type Session struct {
	Destination         string
	ResolvedAddress     string
	HopCount            int
	LastReceivedAddress string
	Route               []result.Hop
}

// EngineConfig wires an Engine's collaborators. All three are injected so
// tests can substitute doubles.
type EngineConfig struct {
	Destination string
	Resolver    resolver.Resolver
	Transport   transport.Transport
	Clock       clock.Clock

	// MaxHops caps the probe loop. 0 leaves it unbounded: the loop then
	// terminates only when the destination answers, which is the classic
	// traceroute behavior.
	MaxHops int
}

// Engine drives one hop-discovery run. An Engine is single-use and not safe
// for concurrent use; construct a fresh one per trace.
type Engine struct {
	resolver  resolver.Resolver
	transport transport.Transport
	clock     clock.Clock
	maxHops   int

	session  Session
	executed bool
}

// NewEngine returns an idle engine for the configured destination.
func NewEngine(cfg EngineConfig) *Engine {
	return &Engine{
		resolver:  cfg.Resolver,
		transport: cfg.Transport,
		clock:     cfg.Clock,
		maxHops:   cfg.MaxHops,
		session:   Session{Destination: cfg.Destination},
	}
}

// Execute resolves the destination and probes hop by hop until the
// destination answers, the optional hop cap is hit, or the context is done.
// Resolution and endpoint-setup failures abort the trace; a silent hop is
// recorded as a sentinel entry and the trace continues.
func (e *Engine) Execute(ctx context.Context) error {
	if e.executed {
		return fmt.Errorf("engine already executed for %q, construct a new one", e.session.Destination)
	}
	e.executed = true

	resolved, err := e.resolver.Resolve(ctx, e.session.Destination)
	if err != nil {
		return err
	}
	e.session.ResolvedAddress = resolved
	log.Debugf("resolved %q to %q", e.session.Destination, resolved)

	// An empty resolved address equals the initial empty last-received
	// address, so the loop below never runs and the route stays empty.
	for e.session.LastReceivedAddress != e.session.ResolvedAddress {
		if err := ctx.Err(); err != nil {
			return err
		}
		if e.maxHops > 0 && e.session.HopCount >= e.maxHops {
			log.Debugf("giving up on %q after %d hops", e.session.Destination, e.session.HopCount)
			break
		}

		e.session.HopCount++
		if err := e.probeHop(); err != nil {
			return err
		}
	}
	return nil
}

// probeHop runs one send-and-wait cycle at TTL equal to the current hop
// count and appends the outcome to the route.
func (e *Engine) probeHop() error {
	sender, err := e.transport.NewSender(e.session.HopCount)
	if err != nil {
		return err
	}
	receiver, err := e.transport.NewReceiver()
	if err != nil {
		sender.Close()
		return err
	}

	start := e.clock.Now()
	responder, err := e.transport.Probe(sender, receiver, e.session.ResolvedAddress)
	end := e.clock.Now()
	if err != nil {
		return err
	}

	elapsed := clock.ElapsedMs(start, end)
	if responder == "" {
		e.session.LastReceivedAddress = result.SentinelAddress
		elapsed = 0
	} else {
		e.session.LastReceivedAddress = responder
	}

	e.session.Route = append(e.session.Route, result.Hop{
		TTL:     e.session.HopCount,
		Address: e.session.LastReceivedAddress,
		RTTMs:   elapsed,
	})
	log.Debugf("hop %d: %s (%g ms)", e.session.HopCount, e.session.LastReceivedAddress, elapsed)
	return nil
}

// Results returns the route discovered so far, in probe order. It is valid
// before, during, and after Execute.
func (e *Engine) Results() []result.Hop {
	return e.session.Route
}

// ResolvedAddress returns the canonical destination address, empty before
// Execute or when the destination did not resolve.
func (e *Engine) ResolvedAddress() string {
	return e.session.ResolvedAddress
}

// HopCount returns how many probes have been sent.
func (e *Engine) HopCount() int {
	return e.session.HopCount
}

// ReachedDestination reports whether the trace ended because the destination
// itself answered.
func (e *Engine) ReachedDestination() bool {
	return e.session.ResolvedAddress != "" &&
		e.session.LastReceivedAddress == e.session.ResolvedAddress
}
