package web

import (
	"fmt"
	"net/http"
	"net/netip"
	"strings"
)

// AccessDeniedText is the body of a rejected POST.
const AccessDeniedText = "Access denied"

// AllowList holds the networks allowed to POST. An empty list allows
// every client.
type AllowList struct {
	networks []netip.Prefix
}

// ParseAllowList parses CIDR entries. A bare address is a single host.
func ParseAllowList(entries []string) (*AllowList, error) {
	a := &AllowList{}
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		if !strings.Contains(entry, "/") {
			addr, err := netip.ParseAddr(entry)
			if err != nil {
				return nil, fmt.Errorf("invalid allow entry %q: %w", entry, err)
			}
			addr = addr.Unmap()
			a.networks = append(a.networks, netip.PrefixFrom(addr, addr.BitLen()))
			continue
		}

		prefix, err := netip.ParsePrefix(entry)
		if err != nil {
			return nil, fmt.Errorf("invalid allow entry %q: %w", entry, err)
		}
		a.networks = append(a.networks, prefix.Masked())
	}
	return a, nil
}

// Len returns the number of networks.
func (a *AllowList) Len() int {
	if a == nil {
		return 0
	}
	return len(a.networks)
}

// Allowed reports whether remoteAddr, in host:port or bare form, may POST.
func (a *AllowList) Allowed(remoteAddr string) bool {
	if a.Len() == 0 {
		return true
	}

	addr, ok := parseRemote(remoteAddr)
	if !ok {
		return false
	}
	for _, network := range a.networks {
		if network.Contains(addr) {
			return true
		}
	}
	return false
}

func parseRemote(remoteAddr string) (netip.Addr, bool) {
	if ap, err := netip.ParseAddrPort(remoteAddr); err == nil {
		return ap.Addr().Unmap(), true
	}
	if addr, err := netip.ParseAddr(remoteAddr); err == nil {
		return addr.Unmap(), true
	}
	return netip.Addr{}, false
}

// limitHosts rejects POST requests from clients outside the allow list.
func (s *Server) limitHosts(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost && !s.allow.Allowed(r.RemoteAddr) {
			s.logger.Warn("rejected POST from disallowed client", "remote", r.RemoteAddr, "path", r.URL.Path)
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(AccessDeniedText))
			return
		}
		next.ServeHTTP(w, r)
	})
}
