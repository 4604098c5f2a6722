// Package ratelimit provides an injectable in-memory request quota keyed by
// client identity. Each limiter instance owns its own state, so tests and
// services construct isolated limiters instead of sharing a process-wide
// singleton.
package ratelimit
