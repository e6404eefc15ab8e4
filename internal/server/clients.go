package server

import (
	"log/slog"
	"net"
	"net/http"
	"net/netip"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// TrustedProxies decides whether X-Forwarded-For may name the client.
// Entries are single addresses or CIDR prefixes.
type TrustedProxies struct {
	prefixes []netip.Prefix
}

// NewTrustedProxies parses entries, skipping any that are neither an IP nor a CIDR
func NewTrustedProxies(entries []string) *TrustedProxies {
	tp := &TrustedProxies{}
	for _, raw := range entries {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		if prefix, err := netip.ParsePrefix(raw); err == nil {
			tp.prefixes = append(tp.prefixes, prefix.Masked())
			continue
		}
		if addr, err := netip.ParseAddr(raw); err == nil {
			tp.prefixes = append(tp.prefixes, netip.PrefixFrom(addr, addr.BitLen()))
			continue
		}
		slog.Warn(LogMsgInvalidTrustedHost, "entry", raw)
	}
	return tp
}

func (tp *TrustedProxies) trusts(ip string) bool {
	if tp == nil {
		return false
	}
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return false
	}
	addr = addr.Unmap()
	for _, p := range tp.prefixes {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}

// ClientIP returns the peer address, or the last X-Forwarded-For hop when the
// peer is a trusted proxy.
func (tp *TrustedProxies) ClientIP(r *http.Request) string {
	remote, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		remote = r.RemoteAddr
	}
	if !tp.trusts(remote) {
		return remote
	}

	forwarded := r.Header.Get(HeaderForwardedFor)
	if forwarded == "" {
		return remote
	}
	hops := strings.Split(forwarded, ",")
	if last := strings.TrimSpace(hops[len(hops)-1]); last != "" {
		return last
	}
	return remote
}

type clientStats struct {
	requests   int
	failedAuth int
}

// ClientTracker counts requests and failed logins per IP in fixed windows.
// A client's window starts with its first request and its counters reset
// when the LRU entry expires.
type ClientTracker struct {
	mu          sync.Mutex
	clients     *expirable.LRU[string, *clientStats]
	maxRequests int
}

// NewClientTracker creates a tracker allowing maxRequests per window
func NewClientTracker(window time.Duration, maxRequests int) *ClientTracker {
	return &ClientTracker{
		clients:     expirable.NewLRU[string, *clientStats](TrackedClients, nil, window),
		maxRequests: maxRequests,
	}
}

// stats returns the live counters for ip. Caller must hold the mutex.
func (t *ClientTracker) stats(ip string) *clientStats {
	s, ok := t.clients.Get(ip)
	if !ok {
		s = &clientStats{}
		t.clients.Add(ip, s)
	}
	return s
}

// Allow counts one request and reports whether ip is still within budget
func (t *ClientTracker) Allow(ip string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	s := t.stats(ip)
	s.requests++
	if s.requests <= t.maxRequests {
		return true
	}
	if (s.requests-t.maxRequests)%highRateLogEvery == 1 {
		slog.Warn(SecurityAlertHighRate, "ip", ip, "requests", s.requests)
	}
	return false
}

// RecordFailedAuth counts a rejected API key and returns the window's total
func (t *ClientTracker) RecordFailedAuth(ip string) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	s := t.stats(ip)
	s.failedAuth++
	if s.failedAuth >= FailedAuthAlertThreshold {
		slog.Warn(SecurityAlertFailedAuth, "ip", ip, "count", s.failedAuth)
	}
	return s.failedAuth
}
