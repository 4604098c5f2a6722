// Package clientip derives the rate-limit identity of an HTTP client from
// forwarded-IP headers.
package clientip

import (
	"net"
	"net/http"
	"strings"
)

// Anonymous is the shared identity for requests that carry no usable
// forwarded-IP header. All such clients share one quota bucket. This is a
// known coarseness kept for parity with the deployed behavior, not a bug.
const Anonymous = "anonymous"

// FromRequest returns the client identity for r.
// X-Forwarded-For is checked first (the first valid IP in the list), then
// X-Real-IP. When neither header yields a valid IP the Anonymous bucket is
// returned.
func FromRequest(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		for ip := range strings.SplitSeq(forwarded, ",") {
			if parsed := parseIP(ip); parsed != "" {
				return parsed
			}
		}
	}

	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		if parsed := parseIP(ip); parsed != "" {
			return parsed
		}
	}

	return Anonymous
}

// parseIP validates and normalizes an IP address string.
// Returns empty string if the IP is invalid.
func parseIP(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	ip := net.ParseIP(s)
	if ip == nil {
		return ""
	}
	return ip.String()
}
