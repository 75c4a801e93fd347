// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.

package resolver

import (
	"context"
	"fmt"
	"net"

	"github.com/miekg/dns"

	"github.com/hoptrace/hoptrace/log"
)

type dnsResolver struct {
	nameserver string
	client     *dns.Client
}

// NewDNS returns a Resolver that queries A records against a specific
// nameserver instead of the OS resolver. The nameserver may omit the port;
// 53 is assumed.
func NewDNS(nameserver string) Resolver {
	if _, _, err := net.SplitHostPort(nameserver); err != nil {
		nameserver = net.JoinHostPort(nameserver, "53")
	}
	return &dnsResolver{
		nameserver: nameserver,
		client:     new(dns.Client),
	}
}

func (r *dnsResolver) Resolve(ctx context.Context, destination string) (string, error) {
	if destination == "" {
		return "", nil
	}

	if ip := net.ParseIP(destination); ip != nil {
		return ip.String(), nil
	}

	m := new(dns.Msg)
	m.SetQuestion(dns.Fqdn(destination), dns.TypeA)

	resp, rtt, err := r.client.ExchangeContext(ctx, m, r.nameserver)
	if err != nil {
		return "", &DNSError{Host: destination, Err: err}
	}
	log.Debugf("resolved %s via %s in %s", destination, r.nameserver, rtt)

	for _, rr := range resp.Answer {
		if a, ok := rr.(*dns.A); ok {
			return a.A.String(), nil
		}
	}
	return "", &DNSError{Host: destination, Err: fmt.Errorf("no A records in answer from %s", r.nameserver)}
}
