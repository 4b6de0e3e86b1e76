package pool

import "cmp"

// entry pairs an address with the service currently registered for it.
type entry[Req, Resp any, M cmp.Ordered] struct {
	addr Address
	svc  Service[Req, Resp, M]
}

// readinessCache owns the set of endpoint services, partitioned into
// pending and ready sequences. It must only ever be driven from the single
// logical task that owns the enclosing Pool; see the package doc.
//
// Indexing discipline: ready indices are stable between calls, but any of
// push, evict, a checkReadyIndex that returns false or an error, or
// callReadyIndex invalidates every outstanding ready index.
type readinessCache[Req, Resp any, M cmp.Ordered] struct {
	pending []entry[Req, Resp, M]
	ready   []entry[Req, Resp, M]
}

// push inserts or replaces the service for addr. The new entry is enqueued
// as pending; any previous entry for addr, in either partition, is dropped
// without being probed.
func (c *readinessCache[Req, Resp, M]) push(addr Address, svc Service[Req, Resp, M]) {
	c.evict(addr)
	c.pending = append(c.pending, entry[Req, Resp, M]{addr: addr, svc: svc})
}

// evict removes addr from whichever partition holds it. It reports whether
// addr was present.
func (c *readinessCache[Req, Resp, M]) evict(addr Address) bool {
	if i := indexOf(c.pending, addr); i >= 0 {
		c.pending = removeAt(c.pending, i)
		return true
	}
	if i := indexOf(c.ready, addr); i >= 0 {
		c.ready = removeAt(c.ready, i)
		return true
	}
	return false
}

// pollPending probes every pending entry once. Entries reporting ready are
// appended to the ready sequence; entries still pending remain, with wake
// registered. The first entry that fails is evicted immediately and its
// error returned, wrapped with the failing address. pollPending reports
// done == true only when the pending sequence is empty after this pass.
func (c *readinessCache[Req, Resp, M]) pollPending(wake WakeFunc) (done bool, err error) {
	// Standard in-place filter: still's write index never runs ahead of the
	// read index, so this is safe even though it shares c.pending's backing
	// array.
	still := c.pending[:0]
	for i, e := range c.pending {
		state, perr := e.svc.Poll(wake)
		if perr != nil {
			// The failing entry is dropped; anything not yet polled this
			// pass stays pending for the next one.
			still = append(still, c.pending[i+1:]...)
			c.pending = still
			return false, endpointError(e.addr, perr)
		}
		switch state {
		case Ready:
			c.ready = append(c.ready, e)
		default:
			still = append(still, e)
		}
	}
	c.pending = still
	return len(c.pending) == 0, nil
}

// checkReadyIndex re-probes the ready entry at index i. If still ready, it
// reports (true, nil). If the entry reports pending, it is moved back into
// the pending sequence (wake registered), the ready sequence shrinks by one
// at i, and checkReadyIndex reports (false, nil). If the entry fails, it is
// evicted and the wrapped error is returned.
func (c *readinessCache[Req, Resp, M]) checkReadyIndex(wake WakeFunc, i int) (bool, error) {
	e := c.ready[i]
	state, err := e.svc.Poll(wake)
	if err != nil {
		c.ready = removeAt(c.ready, i)
		return false, endpointError(e.addr, err)
	}
	if state == Ready {
		return true, nil
	}
	c.ready = removeAt(c.ready, i)
	c.pending = append(c.pending, e)
	return false, nil
}

// callReadyIndex dispatches req via the ready entry at index i, then moves
// that entry back to pending (one request per readiness). The returned
// Future is owned entirely by the caller; the cache does not await it.
func (c *readinessCache[Req, Resp, M]) callReadyIndex(i int, req Req) Future[Resp] {
	e := c.ready[i]
	c.ready = removeAt(c.ready, i)
	c.pending = append(c.pending, e)
	return e.svc.Call(req)
}

func (c *readinessCache[Req, Resp, M]) readyLen() int {
	return len(c.ready)
}

func (c *readinessCache[Req, Resp, M]) pendingLen() int {
	return len(c.pending)
}

// readyLoad reads the load metric of the ready entry at index i without
// mutating the cache.
func (c *readinessCache[Req, Resp, M]) readyLoad(i int) M {
	return c.ready[i].svc.Load()
}

func indexOf[Req, Resp any, M cmp.Ordered](entries []entry[Req, Resp, M], addr Address) int {
	for i, e := range entries {
		if e.addr == addr {
			return i
		}
	}
	return -1
}

// removeAt deletes the entry at index i, preserving the relative order of
// the remaining entries (later indices shift down by one).
func removeAt[Req, Resp any, M cmp.Ordered](entries []entry[Req, Resp, M], i int) []entry[Req, Resp, M] {
	return append(entries[:i], entries[i+1:]...)
}
