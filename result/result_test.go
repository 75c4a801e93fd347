// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.

package result

import (
	"context"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hoptrace/hoptrace/reversedns"
)

func TestNormalize(t *testing.T) {
	r := &TraceResult{
		Hops: []Hop{
			{TTL: 1, Address: "10.0.0.1", RTTMs: 10},
			{TTL: 2, Address: SentinelAddress, RTTMs: 0},
			{TTL: 3, Address: "93.184.216.34", RTTMs: 30},
		},
	}
	r.Normalize()

	assert.Equal(t, 3, r.Stats.HopCount)
	assert.Equal(t, 2, r.Stats.Responded)
	assert.Equal(t, 20.0, r.Stats.AvgRTTMs)
}

func TestNormalizeEmptyRoute(t *testing.T) {
	r := &TraceResult{}
	r.Normalize()
	assert.Equal(t, Stats{}, r.Stats)
}

func TestRender(t *testing.T) {
	r := &TraceResult{
		Hops: []Hop{
			{TTL: 1, Address: "10.0.0.1", RTTMs: 12},
			{TTL: 2, Address: SentinelAddress, RTTMs: 0},
			{TTL: 3, Address: "93.184.216.34", RTTMs: 34.5},
		},
	}
	want := "1. 10.0.0.1 12ms\n2. * 0ms\n3. 93.184.216.34 34.5ms\n"
	assert.Equal(t, want, r.Render())
}

func TestEnrichWithReverseDns(t *testing.T) {
	orig := reversedns.LookupAddrFn
	reversedns.LookupAddrFn = func(_ context.Context, addr string) ([]string, error) {
		return []string{"router-" + addr + "."}, nil
	}
	defer func() { reversedns.LookupAddrFn = orig }()

	r := &TraceResult{
		Hops: []Hop{
			{TTL: 1, Address: "10.0.0.1"},
			{TTL: 2, Address: SentinelAddress},
		},
	}
	r.EnrichWithReverseDns()

	assert.Equal(t, []string{"router-10.0.0.1"}, r.Hops[0].Hostnames)
	assert.Nil(t, r.Hops[1].Hostnames, "sentinel hops are not looked up")
}

func TestRemovePrivateHops(t *testing.T) {
	r := &TraceResult{
		Hops: []Hop{
			{TTL: 1, Address: "192.168.1.1", RTTMs: 3, Hostnames: []string{"gw.lan"}},
			{TTL: 2, Address: "93.184.216.34", RTTMs: 20},
			{TTL: 3, Address: SentinelAddress},
		},
	}
	r.RemovePrivateHops()

	assert.Equal(t, Hop{TTL: 1, Address: SentinelAddress}, r.Hops[0])
	assert.Equal(t, "93.184.216.34", r.Hops[1].Address)
	assert.Equal(t, SentinelAddress, r.Hops[2].Address)
}

func TestHopResponded(t *testing.T) {
	assert.True(t, Hop{Address: "10.0.0.1"}.Responded())
	assert.False(t, Hop{Address: SentinelAddress}.Responded())
	assert.False(t, Hop{}.Responded())
}

func TestNewRunID(t *testing.T) {
	a := NewRunID()
	b := NewRunID()
	require.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
	// base64 raw URL encoding of a 16 byte UUID is 22 characters
	assert.Len(t, a, 22)
	assert.Nil(t, net.ParseIP(a))
}
