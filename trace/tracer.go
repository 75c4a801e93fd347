// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.

package trace

import (
	"context"
	"time"

	"github.com/hoptrace/hoptrace/clock"
	"github.com/hoptrace/hoptrace/log"
	"github.com/hoptrace/hoptrace/publicip"
	"github.com/hoptrace/hoptrace/resolver"
	"github.com/hoptrace/hoptrace/result"
	"github.com/hoptrace/hoptrace/transport"
)

// Params configures a full trace run.
type Params struct {
	Destination string
	// Port is the probe destination port and receiver port; 0 uses the
	// transport default.
	Port int
	// Timeout bounds the wait for each hop; 0 uses the transport default.
	Timeout time.Duration
	// MaxHops caps the trace; 0 means unbounded.
	MaxHops int
	// Nameserver, when set, resolves the destination against this server
	// instead of the OS resolver.
	Nameserver string
	// UseICMPReceiver listens for raw ICMP replies instead of UDP datagrams.
	UseICMPReceiver bool
	// ReverseDns enriches responding hops with their hostnames.
	ReverseDns bool
	// CollectSourcePublicIP adds this host's public IP to the result.
	CollectSourcePublicIP bool
	// SkipPrivateHops redacts responders in private address ranges.
	SkipPrivateHops bool
}

// Tracer runs traces with shared collaborators. Each run constructs a fresh
// single-use Engine.
type Tracer struct {
	publicIPFetcher publicip.Fetcher
}

// NewTracer returns a ready-to-use Tracer.
func NewTracer() *Tracer {
	return &Tracer{
		publicIPFetcher: publicip.NewFetcher(),
	}
}

// Run executes one trace and assembles the enriched result.
func (t *Tracer) Run(ctx context.Context, params Params) (*result.TraceResult, error) {
	port := params.Port
	if port == 0 {
		port = transport.DefaultPort
	}

	engine := NewEngine(EngineConfig{
		Destination: params.Destination,
		Resolver:    newResolver(params),
		Transport: transport.NewUDP(transport.Config{
			Port:            port,
			Timeout:         params.Timeout,
			UseICMPReceiver: params.UseICMPReceiver,
		}),
		Clock:   clock.New(),
		MaxHops: params.MaxHops,
	})

	if err := engine.Execute(ctx); err != nil {
		return nil, err
	}

	res := &result.TraceResult{
		RunID: result.NewRunID(),
		Destination: result.Destination{
			Hostname: params.Destination,
			Address:  engine.ResolvedAddress(),
			Port:     port,
		},
		Hops:               engine.Results(),
		ReachedDestination: engine.ReachedDestination(),
	}

	if params.CollectSourcePublicIP {
		if ip, err := t.publicIPFetcher.GetIP(); err != nil {
			log.Debugf("error getting public IP: %s", err)
		} else {
			res.Source.PublicIP = ip.String()
		}
	}
	if params.ReverseDns {
		res.EnrichWithReverseDns()
	}
	res.Normalize()
	if params.SkipPrivateHops {
		res.RemovePrivateHops()
	}

	return res, nil
}

func newResolver(params Params) resolver.Resolver {
	if params.Nameserver != "" {
		return resolver.NewCached(resolver.NewDNS(params.Nameserver), 0)
	}
	return resolver.NewCached(resolver.NewSystem(), 0)
}
