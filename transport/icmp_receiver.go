// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.

package transport

import (
	"net"
	"time"

	"github.com/hoptrace/hoptrace/icmp"
	"github.com/hoptrace/hoptrace/log"
)

// icmpReceiver listens on a raw ICMP socket for the time-exceeded and
// unreachable messages hops actually send. Like the UDP receiver it reports
// the source of whatever hop reply arrives first, without correlating it to
// the probe.
type icmpReceiver struct {
	conn    net.PacketConn
	timeout time.Duration
}

func newICMPReceiver(timeout time.Duration) (Receiver, error) {
	conn, err := net.ListenPacket("ip4:icmp", "0.0.0.0")
	if err != nil {
		return nil, &TransportError{Op: "icmp receiver setup", Err: err}
	}
	return &icmpReceiver{conn: conn, timeout: timeout}, nil
}

func (r *icmpReceiver) Read() (string, error) {
	deadline := time.Now().Add(r.timeout)
	if err := r.conn.SetReadDeadline(deadline); err != nil {
		return "", err
	}

	buf := make([]byte, 1500)
	for {
		n, addr, err := r.conn.ReadFrom(buf)
		if err != nil {
			if ne, ok := err.(net.Error); ok && ne.Timeout() {
				return "", nil
			}
			return "", err
		}

		resp, err := icmp.ParseResponse(buf[:n])
		if err != nil {
			log.Debugf("ignoring undecodable ICMP message from %s: %s", addr, err)
			continue
		}
		if !resp.IsHopReply() {
			log.Debugf("ignoring ICMP type %d code %d from %s", resp.Type, resp.Code, addr)
			continue
		}
		if resp.ProbeDst != nil {
			log.Debugf("hop reply from %s quoting probe to %s:%d", addr, resp.ProbeDst, resp.ProbeDstPort)
		}
		return addrHost(addr), nil
	}
}

func (r *icmpReceiver) Close() error {
	return r.conn.Close()
}
