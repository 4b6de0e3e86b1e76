// Package discovery provides the minimal upstream contract a pool.Pool's
// driving task reads updates from, plus one concrete implementation for
// tests and examples. Producing updates from a real discovery system (DNS,
// xDS, Kubernetes endpoints, ...) is left to the caller.
package discovery
