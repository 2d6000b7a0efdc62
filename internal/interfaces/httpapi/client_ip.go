package httpapi

import (
	"net"
	"net/http"
	"net/netip"
	"strings"
)

// clientIPHeaders are checked in order before the socket address. Only the
// first hop of X-Forwarded-For is used.
var clientIPHeaders = []string{"Fly-Client-IP", "CF-Connecting-IP", "X-Forwarded-For", "X-Real-IP"}

func resolveClientIP(r *http.Request) string {
	for _, h := range clientIPHeaders {
		if ip, ok := parseIP(r.Header.Get(h)); ok {
			return ip
		}
	}
	ip, _ := parseIP(r.RemoteAddr)
	return ip
}

func parseIP(v string) (string, bool) {
	v, _, _ = strings.Cut(v, ",")
	v = strings.TrimSpace(v)
	if host, _, err := net.SplitHostPort(v); err == nil {
		v = host
	}
	addr, err := netip.ParseAddr(v)
	if err != nil {
		return "", false
	}
	return addr.Unmap().String(), true
}
