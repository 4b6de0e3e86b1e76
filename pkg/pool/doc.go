// Package pool implements a load-balancing endpoint pool fronting a dynamic
// set of remote endpoints for a single logical upstream.
//
// A Pool maintains one endpoint service per discovered address, tracks each
// endpoint's readiness and load through a readiness cache, and dispatches
// each outgoing request to a well-chosen ready endpoint using the
// power-of-two-choices algorithm. It does not perform health checking,
// retries, hedging, admission control or queueing of its own; endpoints
// signal their own readiness, and a Pool with no ready endpoint tells its
// caller "not yet" rather than blocking or buffering the request.
//
// A Pool is not safe for concurrent use. It is driven by exactly one
// logical task, which serializes calls to UpdatePool, PollPool, PollReady
// and Call; see the package-level WakeFunc documentation for how that task
// is expected to be woken back up.
package pool
