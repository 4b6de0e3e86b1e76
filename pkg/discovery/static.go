package discovery

import (
	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/k3s-io/endpointpool/pkg/pool"
)

// StaticSource is a Source whose updates are pushed programmatically. It
// is useful in tests, and as a bridge for a polling discovery mechanism
// (a DNS lookup loop, say) that wants to emit pool.Update values without
// implementing its own channel plumbing.
type StaticSource[T comparable] struct {
	ch  chan pool.Update[T]
	cur sets.Set[pool.Address]
}

// NewStaticSource creates a StaticSource whose Updates channel has the
// given buffer size.
func NewStaticSource[T comparable](buffer int) *StaticSource[T] {
	return &StaticSource[T]{
		ch:  make(chan pool.Update[T], buffer),
		cur: sets.New[pool.Address](),
	}
}

// Updates implements Source.
func (s *StaticSource[T]) Updates() <-chan pool.Update[T] {
	return s.ch
}

// Push enqueues update, blocking if the channel's buffer is full.
func (s *StaticSource[T]) Push(update pool.Update[T]) {
	if update.Kind == pool.UpdateReset {
		next := sets.New[pool.Address]()
		for _, t := range update.Reset {
			next.Insert(t.Addr)
		}
		s.cur = next
	}
	s.ch <- update
}

// Addresses returns the address set implied by the most recent Reset
// pushed through this source (empty if none has been pushed yet). It does
// not track Add/Remove/DoesNotExist, since those are applied by the pool
// itself rather than tracked here.
func (s *StaticSource[T]) Addresses() []pool.Address {
	return s.cur.UnsortedList()
}

// Close closes the update channel. No further calls to Push are permitted
// afterwards.
func (s *StaticSource[T]) Close() {
	close(s.ch)
}
