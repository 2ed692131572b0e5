package clientip

import (
	"fmt"
	"net"
	"net/http"
	"net/netip"
	"strings"
)

// Anonymous identifies requests whose origin address cannot be determined.
const Anonymous = "anonymous"

// Config says which forwarding headers may name the client and which peers
// are allowed to set them.
type Config struct {
	// TrustedHeaders are consulted in order, e.g. "CF-Connecting-IP" or
	// "X-Forwarded-For". Empty means only the TCP peer address is used.
	TrustedHeaders []string `env:"CLIENTIP_TRUSTED_HEADERS" envSeparator:","`
	// TrustedProxies lists the CIDRs or addresses of the proxies in front of
	// the service. Headers from any other peer are ignored. Empty trusts every
	// peer once TrustedHeaders is set, which is only safe when the service is
	// unreachable except through the proxy.
	TrustedProxies []string `env:"CLIENTIP_TRUSTED_PROXIES" envSeparator:","`
}

// Resolver turns a request into a client address.
type Resolver struct {
	headers []string
	proxies []netip.Prefix
}

var direct = &Resolver{}

// NewResolver validates cfg. Blank entries are skipped.
func NewResolver(cfg Config) (*Resolver, error) {
	r := &Resolver{}
	for _, h := range cfg.TrustedHeaders {
		if h = strings.TrimSpace(h); h != "" {
			r.headers = append(r.headers, http.CanonicalHeaderKey(h))
		}
	}
	for _, p := range cfg.TrustedProxies {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		prefix, err := parsePrefix(p)
		if err != nil {
			return nil, fmt.Errorf("clientip: trusted proxy %q: %w", p, err)
		}
		r.proxies = append(r.proxies, prefix)
	}
	return r, nil
}

// GetIP returns the TCP peer address of r, or Anonymous. Forwarding headers
// are never read; use a Resolver built from a Config for that.
func GetIP(r *http.Request) string {
	return direct.IP(r)
}

// IP resolves the client address of req.
//
// The peer address is used unless it belongs to a trusted proxy and one of
// the trusted headers carries a valid address. A header may hold a list, as
// X-Forwarded-For does; the list is read right to left, skipping trusted
// proxies, so entries the client wrote itself are only reached when every
// later hop is trusted.
func (r *Resolver) IP(req *http.Request) string {
	peer := peerAddr(req.RemoteAddr)
	if len(r.headers) > 0 && r.trusts(peer) {
		for _, h := range r.headers {
			if ip, ok := r.fromHeader(req.Header.Values(h)); ok {
				return ip.String()
			}
		}
	}
	if peer.IsValid() {
		return peer.String()
	}
	return Anonymous
}

func (r *Resolver) fromHeader(values []string) (netip.Addr, bool) {
	var hops []netip.Addr
	for _, v := range values {
		for part := range strings.SplitSeq(v, ",") {
			if ip, ok := parseAddr(part); ok {
				hops = append(hops, ip)
			}
		}
	}
	for i := len(hops) - 1; i >= 0; i-- {
		if i == 0 || !r.isProxy(hops[i]) {
			return hops[i], true
		}
	}
	return netip.Addr{}, false
}

func (r *Resolver) trusts(peer netip.Addr) bool {
	return len(r.proxies) == 0 || r.isProxy(peer)
}

func (r *Resolver) isProxy(ip netip.Addr) bool {
	for _, p := range r.proxies {
		if p.Contains(ip) {
			return true
		}
	}
	return false
}

func peerAddr(remote string) netip.Addr {
	host, _, err := net.SplitHostPort(remote)
	if err != nil {
		host = remote
	}
	ip, _ := parseAddr(host)
	return ip
}

// parseAddr accepts a bare address or one with a port, as some proxies send.
func parseAddr(s string) (netip.Addr, bool) {
	s = strings.TrimSpace(s)
	if ip, err := netip.ParseAddr(s); err == nil {
		return ip.Unmap().WithZone(""), true
	}
	if ap, err := netip.ParseAddrPort(s); err == nil {
		return ap.Addr().Unmap().WithZone(""), true
	}
	return netip.Addr{}, false
}

func parsePrefix(s string) (netip.Prefix, error) {
	if strings.Contains(s, "/") {
		p, err := netip.ParsePrefix(s)
		if err != nil {
			return netip.Prefix{}, err
		}
		return p.Masked(), nil
	}
	ip, err := netip.ParseAddr(s)
	if err != nil {
		return netip.Prefix{}, err
	}
	ip = ip.Unmap()
	return netip.PrefixFrom(ip, ip.BitLen()), nil
}
