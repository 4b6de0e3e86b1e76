package discovery

import "github.com/k3s-io/endpointpool/pkg/pool"

// Source yields discovery updates for a single logical upstream. Delivery
// is expected but not required to be ordered; a Reset is absolute, so any
// ordering of updates from a Source produces a correct membership.
type Source[T comparable] interface {
	// Updates returns a channel of updates. It is closed once the source has
	// no further updates to deliver.
	Updates() <-chan pool.Update[T]
}
