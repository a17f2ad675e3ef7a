// Copyright (c) 2026 Libris. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package middleware provides the HTTP chain wrapped around the catalog routes.

Every middleware has the chi-compatible shape func(http.Handler) http.Handler.
The router applies them in this order:

  - ClientIP: resolves the client address, honoring proxy headers only from trusted peers.
  - RequestID: correlation id in the context and the X-Request-ID header.
  - StructuredLogger: per-request slog logger and one summary line per request.
  - PanicRecovery: turns a handler panic into a 500 JSON body.
  - RateLimit: token bucket per client IP.
  - CORS: origin allow-list.
  - RequireBearer: the write gate, applied to the protected group only.
*/
package middleware

import (
	"net"
	"net/http"
	"net/netip"
	"strings"

	"github.com/taibuivan/libris/internal/platform/constants"
	"github.com/taibuivan/libris/internal/platform/ctxutil"
)

// ClientIP stores the client address in the context for [RealIP].
//
// X-Real-IP and X-Forwarded-For are honored only when the socket peer lies in
// one of trustedProxies. X-Forwarded-For is walked right to left, skipping
// trusted hops, so a client cannot choose its own address by prepending
// entries. With no trusted proxies the peer address is always used.
func ClientIP(trustedProxies []netip.Prefix) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			ip := resolveClientIP(request, trustedProxies)
			next.ServeHTTP(writer, request.WithContext(ctxutil.WithClientIP(request.Context(), ip)))
		})
	}
}

// RealIP returns the client address used for rate limiting, the login
// throttle and request logs.
//
// It is the address resolved by [ClientIP]; without that middleware in the
// chain it is the socket peer. Forwarding headers are never read here.
func RealIP(request *http.Request) string {
	if ip := ctxutil.GetClientIP(request.Context()); ip != "" {
		return ip
	}
	return peerHost(request)
}

func resolveClientIP(request *http.Request, trustedProxies []netip.Prefix) string {
	peer := peerHost(request)
	if !isTrusted(peer, trustedProxies) {
		return peer
	}

	if ip := strings.TrimSpace(request.Header.Get(constants.HeaderXRealIP)); ip != "" {
		return ip
	}

	if forwarded := request.Header.Get(constants.HeaderXForwardedFor); forwarded != "" {
		hops := strings.Split(forwarded, ",")
		for i := len(hops) - 1; i >= 0; i-- {
			hop := strings.TrimSpace(hops[i])
			if hop != "" && !isTrusted(hop, trustedProxies) {
				return hop
			}
		}
	}

	return peer
}

func isTrusted(ip string, trustedProxies []netip.Prefix) bool {
	if len(trustedProxies) == 0 {
		return false
	}

	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return false
	}
	addr = addr.Unmap()

	for _, prefix := range trustedProxies {
		if prefix.Contains(addr) {
			return true
		}
	}
	return false
}

func peerHost(request *http.Request) string {
	host, _, err := net.SplitHostPort(request.RemoteAddr)
	if err != nil {
		return request.RemoteAddr
	}
	return host
}
