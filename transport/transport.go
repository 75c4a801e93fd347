// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.

// Package transport sends single-hop probes and waits for whoever answers.
//
// Endpoints are single-use: a sender carries the TTL for exactly one hop, a
// receiver waits for exactly one response, and Probe closes both regardless
// of outcome.
package transport

import (
	"fmt"
	"time"
)

const (
	// DefaultPort is the well-known destination and receiver port.
	DefaultPort = 33444
	// DefaultTimeout is the per-hop receive timeout.
	DefaultTimeout = 3000 * time.Millisecond
)

// TransportError is a fatal endpoint setup or send failure
// (bind, permission, allocation). It aborts the trace.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport %s failed: %s", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Sender is a one-shot probe-sending endpoint with a fixed TTL.
type Sender interface {
	// SendTo emits one empty-payload probe datagram toward the address.
	SendTo(destAddr string) error
	Close() error
}

// Receiver is a one-shot endpoint waiting for a hop's response.
type Receiver interface {
	// Read blocks up to the configured timeout and returns the responder's
	// address, or "" when nothing arrived in time. A silent hop is data,
	// not an error.
	Read() (string, error)
	Close() error
}

// Transport creates per-hop endpoints and runs one probe cycle.
type Transport interface {
	NewSender(ttl int) (Sender, error)
	NewReceiver() (Receiver, error)
	Probe(s Sender, r Receiver, destAddr string) (string, error)
}

// Config carries the tunables for the UDP transport. Zero values pick the
// defaults above so tests can substitute short timeouts deterministically.
type Config struct {
	// Port is both the destination port of probes and the local port the
	// UDP receiver binds.
	Port int
	// Timeout bounds the wait for each hop's response.
	Timeout time.Duration
	// UseICMPReceiver switches the receiver to a raw ICMP socket that
	// understands time-exceeded and unreachable replies. Requires elevated
	// privileges. The plain UDP receiver is the default.
	UseICMPReceiver bool
}

func (c Config) withDefaults() Config {
	if c.Port == 0 {
		c.Port = DefaultPort
	}
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
	return c
}
