package pool

import (
	"errors"
	"fmt"
)

// ErrContractViolation is returned by Call when it is invoked without a
// preceding successful PollReady. This is always a caller bug.
var ErrContractViolation = errors.New("pool: call invoked without a preceding successful poll_ready")

// EndpointError wraps an error surfaced by a specific endpoint's readiness
// probe or dispatch. For a readiness failure, the endpoint has already been
// removed from the pool by the time this error is returned; for a dispatch
// failure, the endpoint was moved back to pending when the request was
// dispatched.
type EndpointError struct {
	Addr Address
	Err  error
}

func (e *EndpointError) Error() string {
	return fmt.Sprintf("pool: endpoint %s failed: %s", e.Addr, e.Err)
}

func (e *EndpointError) Unwrap() error {
	return e.Err
}

func endpointError(addr Address, err error) error {
	if err == nil {
		return nil
	}
	return &EndpointError{Addr: addr, Err: err}
}
