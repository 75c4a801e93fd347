// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.

package icmp

import (
	"net"
	"testing"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildICMPMessage serializes an ICMPv4 message quoting the given probe,
// mimicking what a router sends back when a TTL expires.
func buildICMPMessage(t *testing.T, typeCode layers.ICMPv4TypeCode, probeDst net.IP, probeDstPort uint16) []byte {
	t.Helper()

	inner := gopacket.NewSerializeBuffer()
	ipLayer := &layers.IPv4{
		Version:  4,
		TTL:      1,
		Protocol: layers.IPProtocolUDP,
		SrcIP:    net.ParseIP("10.0.0.5").To4(),
		DstIP:    probeDst.To4(),
	}
	udpLayer := &layers.UDP{
		SrcPort: layers.UDPPort(51000),
		DstPort: layers.UDPPort(probeDstPort),
	}
	require.NoError(t, udpLayer.SetNetworkLayerForChecksum(ipLayer))
	opts := gopacket.SerializeOptions{FixLengths: true, ComputeChecksums: true}
	require.NoError(t, gopacket.SerializeLayers(inner, opts, ipLayer, udpLayer))

	outer := gopacket.NewSerializeBuffer()
	icmpLayer := &layers.ICMPv4{TypeCode: typeCode}
	require.NoError(t, gopacket.SerializeLayers(outer, opts, icmpLayer, gopacket.Payload(inner.Bytes())))
	return outer.Bytes()
}

func TestParseResponseTimeExceeded(t *testing.T) {
	probeDst := net.ParseIP("93.184.216.34")
	msg := buildICMPMessage(t,
		layers.CreateICMPv4TypeCode(layers.ICMPv4TypeTimeExceeded, 0),
		probeDst, 33444)

	resp, err := ParseResponse(msg)
	require.NoError(t, err)
	assert.Equal(t, uint8(layers.ICMPv4TypeTimeExceeded), resp.Type)
	assert.Equal(t, uint8(0), resp.Code)
	assert.True(t, resp.IsHopReply())
	assert.True(t, probeDst.To4().Equal(resp.ProbeDst))
	assert.Equal(t, uint16(33444), resp.ProbeDstPort)
}

func TestParseResponsePortUnreachable(t *testing.T) {
	msg := buildICMPMessage(t,
		layers.CreateICMPv4TypeCode(layers.ICMPv4TypeDestinationUnreachable, 3),
		net.ParseIP("192.0.2.1"), 33444)

	resp, err := ParseResponse(msg)
	require.NoError(t, err)
	assert.Equal(t, uint8(layers.ICMPv4TypeDestinationUnreachable), resp.Type)
	assert.Equal(t, uint8(3), resp.Code)
	assert.True(t, resp.IsHopReply())
}

func TestParseResponseEchoReplyIsNotHopReply(t *testing.T) {
	outer := gopacket.NewSerializeBuffer()
	icmpLayer := &layers.ICMPv4{
		TypeCode: layers.CreateICMPv4TypeCode(layers.ICMPv4TypeEchoReply, 0),
		Id:       7,
		Seq:      1,
	}
	opts := gopacket.SerializeOptions{FixLengths: true, ComputeChecksums: true}
	require.NoError(t, gopacket.SerializeLayers(outer, opts, icmpLayer))

	resp, err := ParseResponse(outer.Bytes())
	require.NoError(t, err)
	assert.False(t, resp.IsHopReply())
}

func TestParseResponseGarbage(t *testing.T) {
	_, err := ParseResponse([]byte{0x01})
	require.Error(t, err)
}
