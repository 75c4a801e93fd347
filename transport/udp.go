// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.

package transport

import (
	"net"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/net/ipv4"

	"github.com/hoptrace/hoptrace/log"
)

// UDP is the datagram probe transport. Probes are empty UDP datagrams with a
// per-hop TTL; responses are read off a receiver bound to the configured
// well-known port.
type UDP struct {
	cfg Config
}

// NewUDP returns a UDP transport, filling in defaults for zero config values.
func NewUDP(cfg Config) *UDP {
	return &UDP{cfg: cfg.withDefaults()}
}

// NewSender allocates an ephemeral UDP endpoint whose packets carry the
// given TTL.
func (u *UDP) NewSender(ttl int) (Sender, error) {
	conn, err := net.ListenPacket("udp4", ":0")
	if err != nil {
		return nil, &TransportError{Op: "sender setup", Err: err}
	}

	p := ipv4.NewPacketConn(conn)
	if err := p.SetTTL(ttl); err != nil {
		conn.Close()
		return nil, &TransportError{Op: "sender setup", Err: errors.Wrapf(err, "set TTL %d", ttl)}
	}
	return &udpSender{p: p, port: u.cfg.Port}, nil
}

// NewReceiver binds the well-known local port and arms the receive timeout.
func (u *UDP) NewReceiver() (Receiver, error) {
	if u.cfg.UseICMPReceiver {
		return newICMPReceiver(u.cfg.Timeout)
	}

	conn, err := net.ListenPacket("udp4", ":"+strconv.Itoa(u.cfg.Port))
	if err != nil {
		return nil, &TransportError{Op: "receiver bind", Err: err}
	}
	return &udpReceiver{conn: conn, timeout: u.cfg.Timeout}, nil
}

// Probe runs one send-and-wait cycle. Both endpoints are closed regardless
// of outcome. A timeout comes back as ("", nil); send failures are fatal.
func (u *UDP) Probe(s Sender, r Receiver, destAddr string) (string, error) {
	defer s.Close()
	defer r.Close()

	if err := s.SendTo(destAddr); err != nil {
		return "", &TransportError{Op: "probe send", Err: err}
	}
	addr, err := r.Read()
	if err != nil {
		// Receive-side failures other than the deadline are unexpected but
		// not fatal; record the hop as silent and keep tracing.
		log.Debugf("probe receive error, treating hop as silent: %s", err)
		return "", nil
	}
	return addr, nil
}

type udpSender struct {
	p    *ipv4.PacketConn
	port int
}

func (s *udpSender) SendTo(destAddr string) error {
	ip := net.ParseIP(destAddr)
	if ip == nil {
		return errors.Errorf("invalid destination address %q", destAddr)
	}
	dst := &net.UDPAddr{IP: ip, Port: s.port}
	_, err := s.p.WriteTo(nil, nil, dst)
	return errors.Wrapf(err, "send probe to %s", dst)
}

func (s *udpSender) Close() error {
	return s.p.Close()
}

type udpReceiver struct {
	conn    net.PacketConn
	timeout time.Duration
}

func (r *udpReceiver) Read() (string, error) {
	if err := r.conn.SetReadDeadline(time.Now().Add(r.timeout)); err != nil {
		return "", err
	}

	buf := make([]byte, 512)
	_, addr, err := r.conn.ReadFrom(buf)
	if err != nil {
		if ne, ok := err.(net.Error); ok && ne.Timeout() {
			return "", nil
		}
		return "", err
	}
	return addrHost(addr), nil
}

func (r *udpReceiver) Close() error {
	return r.conn.Close()
}

// addrHost strips the port, keeping only the responder's address.
func addrHost(addr net.Addr) string {
	switch a := addr.(type) {
	case *net.UDPAddr:
		return a.IP.String()
	case *net.IPAddr:
		return a.IP.String()
	}
	host, _, err := net.SplitHostPort(addr.String())
	if err != nil {
		return addr.String()
	}
	return host
}
