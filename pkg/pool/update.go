package pool

// applyReset replaces the pool's membership with exactly targets, without
// rebuilding endpoints whose target descriptor is unchanged. Within a
// single Reset, a later occurrence of a repeated address wins (enforced by
// registry.reset). It reports whether the pool's membership or cache
// actually changed.
func (p *Pool[T, Req, Resp, M]) applyReset(targets []Target[T]) bool {
	saved, next := p.endpoints.reset(targets)
	changed := false

	for addr, target := range next {
		t := Target[T]{Addr: addr, Target: target}
		prevTarget, existed := saved[t.Addr]
		delete(saved, t.Addr) // consumed; what remains afterwards is strictly removals

		if existed && prevTarget == t.Target {
			p.log.WithField("addr", t.Addr).Trace("endpoint unchanged")
			continue
		}

		svc := p.factory(t.Addr, t.Target)
		p.cache.push(t.Addr, svc)
		if existed {
			p.log.WithField("addr", t.Addr).Debug("rebuilt endpoint")
		} else {
			p.log.WithField("addr", t.Addr).Debug("created endpoint")
			p.metrics.endpoints.Inc()
		}
		changed = true
	}

	for addr := range saved {
		p.log.WithField("addr", addr).Debug("removed endpoint")
		p.cache.evict(addr)
		p.metrics.endpoints.Dec()
		changed = true
	}

	p.endpoints = next
	return changed
}

// applyAdd unions targets into the pool's membership, updating the target
// descriptor for shared addresses and rebuilding only when it changed. A
// changed target is gauge-neutral: the gauge tracks address-set
// cardinality, not rebuilds.
func (p *Pool[T, Req, Resp, M]) applyAdd(targets []Target[T]) bool {
	changed := false
	for _, t := range targets {
		prevTarget, existed := p.endpoints[t.Addr]
		if existed && prevTarget == t.Target {
			p.log.WithField("addr", t.Addr).Trace("endpoint unchanged")
			continue
		}

		p.endpoints[t.Addr] = t.Target
		svc := p.factory(t.Addr, t.Target)
		p.cache.push(t.Addr, svc)
		if existed {
			p.log.WithField("addr", t.Addr).Debug("rebuilt endpoint")
		} else {
			p.metrics.endpoints.Inc()
			p.log.WithField("addr", t.Addr).Debug("created endpoint")
		}
		changed = true
	}
	return changed
}

// applyRemove deletes addrs from the pool's membership. Unknown addresses
// are a no-op.
func (p *Pool[T, Req, Resp, M]) applyRemove(addrs []Address) bool {
	changed := false
	for _, addr := range addrs {
		if _, ok := p.endpoints[addr]; !ok {
			p.log.WithField("addr", addr).Trace("unknown endpoint")
			continue
		}
		delete(p.endpoints, addr)
		p.cache.evict(addr)
		p.metrics.endpoints.Dec()
		p.log.WithField("addr", addr).Debug("removed endpoint")
		changed = true
	}
	return changed
}

// applyDoesNotExist empties the pool entirely.
func (p *Pool[T, Req, Resp, M]) applyDoesNotExist() bool {
	changed := len(p.endpoints) > 0
	for addr := range p.endpoints {
		p.cache.evict(addr)
		p.metrics.endpoints.Dec()
	}
	p.endpoints = make(registry[T])
	if changed {
		p.log.Debug("cleared all endpoints")
	}
	return changed
}
