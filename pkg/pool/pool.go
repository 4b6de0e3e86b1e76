package pool

import (
	"cmp"
	"math/rand/v2"

	"github.com/sirupsen/logrus"
)

// Pool is a load-balancing endpoint pool for a single logical upstream. It
// is generic over the target descriptor type T, the request/response types
// a Service accepts, and the load metric type M.
//
// A Pool is not safe for concurrent use; see the package doc.
type Pool[T comparable, Req, Resp any, M cmp.Ordered] struct {
	name    string
	log     *logrus.Entry
	factory Factory[T, Req, Resp, M]

	endpoints registry[T]
	cache     readinessCache[Req, Resp, M]
	selection *int
	rng       *rand.Rand
	metrics   metrics
}

// New constructs an empty Pool labeled name (used both for its metric label
// set and its log field), dispatching to factory whenever a new or rebuilt
// endpoint service is required.
func New[T comparable, Req, Resp any, M cmp.Ordered](name string, factory Factory[T, Req, Resp, M]) *Pool[T, Req, Resp, M] {
	return &Pool[T, Req, Resp, M]{
		name:      name,
		log:       logrus.WithField("pool", name),
		factory:   factory,
		endpoints: make(registry[T]),
		rng:       rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		metrics:   newMetrics(name),
	}
}

// UpdatePool applies a single service-discovery update, translating it into
// registry and readiness-cache mutations, incrementing the update counter
// for its kind, and clearing any reserved selection if membership changed.
func (p *Pool[T, Req, Resp, M]) UpdatePool(update Update[T]) {
	p.metrics.countUpdate(update.Kind)

	var changed bool
	switch update.Kind {
	case UpdateReset:
		changed = p.applyReset(update.Reset)
	case UpdateAdd:
		changed = p.applyAdd(update.Add)
	case UpdateRemove:
		changed = p.applyRemove(update.Remove)
	case UpdateDoesNotExist:
		changed = p.applyDoesNotExist()
	default:
		p.log.Warnf("ignoring update of unknown kind %d", update.Kind)
		return
	}

	if changed {
		p.selection = nil
	}
}

// PollPool drives pending endpoints towards readiness. It does not attempt
// selection. It reports done == true only once every pending endpoint has
// resolved to ready (or been evicted as failed); wake is registered on
// whichever pendings remain otherwise.
func (p *Pool[T, Req, Resp, M]) PollPool(wake WakeFunc) (done bool, err error) {
	return p.cache.pollPending(wake)
}

// PollReady drains pending endpoints, then selects and reserves a ready
// endpoint for the next Call. It reports done == false ("not yet") when no
// endpoint is currently ready; the caller must feed new updates, or wait to
// be woken by a pending endpoint, before trying again.
func (p *Pool[T, Req, Resp, M]) PollReady(wake WakeFunc) (done bool, err error) {
	for {
		if _, err := p.cache.pollPending(wake); err != nil {
			return false, err
		}

		idx, ok := p.takeOrSelect()
		if !ok {
			p.log.Trace("no ready endpoints")
			return false, nil
		}

		ready, err := p.cache.checkReadyIndex(wake, idx)
		if err != nil {
			return false, err
		}
		if !ready {
			p.log.Tracef("ready index %d reverted to pending", idx)
			continue
		}

		p.selection = &idx
		return true, nil
	}
}

// Call takes the index reserved by the immediately preceding successful
// PollReady and dispatches req to it. Calling Call without such a
// reservation is a contract violation. An error carried by the returned
// Future is wrapped in an *EndpointError naming the endpoint's address.
func (p *Pool[T, Req, Resp, M]) Call(req Req) (Future[Resp], error) {
	if p.selection == nil {
		return nil, ErrContractViolation
	}
	idx := *p.selection
	p.selection = nil
	addr := p.cache.ready[idx].addr
	inner := p.cache.callReadyIndex(idx, req)
	out := make(chan Result[Resp], 1)
	go func() {
		r := <-inner
		r.Err = endpointError(addr, r.Err)
		out <- r
	}()
	return out, nil
}

// takeOrSelect returns the reserved selection if one is still outstanding,
// otherwise draws a fresh candidate via power-of-two-choices.
func (p *Pool[T, Req, Resp, M]) takeOrSelect() (int, bool) {
	if p.selection != nil {
		idx := *p.selection
		p.selection = nil
		return idx, true
	}
	return pickP2C(p.cache.readyLen(), p.rng, p.cache.readyLoad)
}
