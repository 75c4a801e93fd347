// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.

package transport

import (
	"errors"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// freeUDPPort asks the OS for an unused UDP port.
func freeUDPPort(t *testing.T) int {
	t.Helper()
	conn, err := net.ListenPacket("udp4", "127.0.0.1:0")
	require.NoError(t, err)
	port := conn.LocalAddr().(*net.UDPAddr).Port
	require.NoError(t, conn.Close())
	return port
}

func TestConfigDefaults(t *testing.T) {
	u := NewUDP(Config{})
	assert.Equal(t, DefaultPort, u.cfg.Port)
	assert.Equal(t, DefaultTimeout, u.cfg.Timeout)

	u = NewUDP(Config{Port: 40000, Timeout: 50 * time.Millisecond})
	assert.Equal(t, 40000, u.cfg.Port)
	assert.Equal(t, 50*time.Millisecond, u.cfg.Timeout)
}

func TestProbeLoopback(t *testing.T) {
	// Probing the loopback address lands the probe datagram on our own
	// receiver, which is exactly the first-hop-is-destination case.
	u := NewUDP(Config{Port: freeUDPPort(t), Timeout: 2 * time.Second})

	sender, err := u.NewSender(1)
	require.NoError(t, err)
	receiver, err := u.NewReceiver()
	require.NoError(t, err)

	addr, err := u.Probe(sender, receiver, "127.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1", addr)
}

func TestReceiverTimeoutIsNotAnError(t *testing.T) {
	u := NewUDP(Config{Port: freeUDPPort(t), Timeout: 50 * time.Millisecond})

	receiver, err := u.NewReceiver()
	require.NoError(t, err)
	defer receiver.Close()

	start := time.Now()
	addr, err := receiver.Read()
	require.NoError(t, err)
	assert.Empty(t, addr)
	assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
}

func TestReceiverBindConflict(t *testing.T) {
	u := NewUDP(Config{Port: freeUDPPort(t), Timeout: time.Second})

	first, err := u.NewReceiver()
	require.NoError(t, err)
	defer first.Close()

	_, err = u.NewReceiver()
	require.Error(t, err)
	var terr *TransportError
	require.True(t, errors.As(err, &terr))
	assert.Equal(t, "receiver bind", terr.Op)
}

func TestSendToInvalidAddress(t *testing.T) {
	u := NewUDP(Config{Port: freeUDPPort(t), Timeout: time.Second})

	sender, err := u.NewSender(1)
	require.NoError(t, err)
	defer sender.Close()

	err = sender.SendTo("not-an-address")
	require.Error(t, err)
}

func TestProbeClosesEndpoints(t *testing.T) {
	u := NewUDP(Config{Port: freeUDPPort(t), Timeout: 50 * time.Millisecond})

	sender, err := u.NewSender(1)
	require.NoError(t, err)
	receiver, err := u.NewReceiver()
	require.NoError(t, err)

	_, err = u.Probe(sender, receiver, "127.0.0.1")
	require.NoError(t, err)

	// Endpoints must be released after Probe regardless of outcome.
	assert.Error(t, sender.Close())
	assert.Error(t, receiver.Close())
}

func TestAddrHost(t *testing.T) {
	tests := []struct {
		name string
		addr net.Addr
		want string
	}{
		{
			name: "udp addr",
			addr: &net.UDPAddr{IP: net.ParseIP("10.1.2.3"), Port: 33444},
			want: "10.1.2.3",
		},
		{
			name: "ip addr",
			addr: &net.IPAddr{IP: net.ParseIP("192.0.2.9")},
			want: "192.0.2.9",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, addrHost(tt.addr))
		})
	}
}
