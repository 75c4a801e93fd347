// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.

// Package icmp decodes the ICMPv4 messages routers send back when a probe's
// TTL expires or reaches the destination.
package icmp

import (
	"fmt"
	"net"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
)

// Response is a decoded ICMPv4 message relevant to hop discovery.
type Response struct {
	// Type and Code identify the ICMP message.
	Type uint8
	Code uint8
	// ProbeDst is the destination of the original probe embedded in the
	// ICMP payload, when present. It is logged for diagnostics only; hop
	// matching deliberately stays uncorrelated.
	ProbeDst     net.IP
	ProbeDstPort uint16
}

// IsHopReply reports whether the message is one a traceroute hop produces:
// time exceeded from an intermediate router, or destination unreachable
// (typically port unreachable) from the target itself.
func (r *Response) IsHopReply() bool {
	switch r.Type {
	case layers.ICMPv4TypeTimeExceeded, layers.ICMPv4TypeDestinationUnreachable:
		return true
	}
	return false
}

// ParseResponse decodes a raw ICMPv4 message (IP header already stripped,
// as returned by reads on an ip4:icmp packet conn).
func ParseResponse(b []byte) (*Response, error) {
	var icmp4 layers.ICMPv4
	var payload gopacket.Payload
	parser := gopacket.NewDecodingLayerParser(layers.LayerTypeICMPv4, &icmp4, &payload)
	parser.IgnoreUnsupported = true

	decoded := []gopacket.LayerType{}
	if err := parser.DecodeLayers(b, &decoded); err != nil {
		return nil, fmt.Errorf("failed to decode ICMP message: %w", err)
	}
	if len(decoded) == 0 || decoded[0] != layers.LayerTypeICMPv4 {
		return nil, fmt.Errorf("message is not ICMPv4")
	}

	resp := &Response{
		Type: icmp4.TypeCode.Type(),
		Code: icmp4.TypeCode.Code(),
	}
	resp.decodeInnerPacket(payload)
	return resp, nil
}

// decodeInnerPacket extracts the original probe's destination from the
// quoted IP header carried in time-exceeded and unreachable payloads. The
// quote only guarantees 8 bytes past the IP header, enough for the UDP ports.
func (r *Response) decodeInnerPacket(payload []byte) {
	var ip4 layers.IPv4
	var udp layers.UDP
	var rest gopacket.Payload
	parser := gopacket.NewDecodingLayerParser(layers.LayerTypeIPv4, &ip4, &udp, &rest)
	parser.IgnoreUnsupported = true

	decoded := []gopacket.LayerType{}
	// Truncated quotes are expected; keep whatever layers decoded.
	_ = parser.DecodeLayers(payload, &decoded)

	for _, layerType := range decoded {
		switch layerType {
		case layers.LayerTypeIPv4:
			r.ProbeDst = ip4.DstIP
		case layers.LayerTypeUDP:
			r.ProbeDstPort = uint16(udp.DstPort)
		}
	}
}
