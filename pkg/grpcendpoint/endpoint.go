package grpcendpoint

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"google.golang.org/grpc"
	"google.golang.org/grpc/connectivity"

	"github.com/k3s-io/endpointpool/pkg/pool"
)

// Invoker performs one unary RPC against conn on behalf of an Endpoint's
// Call. Callers typically close over a generated client stub's method, e.g.
// func(ctx context.Context, conn *grpc.ClientConn, req *pb.Req) (*pb.Resp, error) {
//     return pb.NewFooClient(conn).Bar(ctx, req)
// }
type Invoker[Req, Resp any] func(ctx context.Context, conn *grpc.ClientConn, req Req) (Resp, error)

// Endpoint adapts a *grpc.ClientConn to pool.Service, deriving readiness
// from the connection's connectivity.State and load from the number of
// in-flight calls.
type Endpoint[Req, Resp any] struct {
	addr   pool.Address
	conn   *grpc.ClientConn
	invoke Invoker[Req, Resp]

	mu      sync.Mutex
	waiting bool
	cancel  context.CancelFunc

	inFlight atomic.Int64
}

// New wraps conn as a pool.Service for addr, dispatching calls through
// invoke.
func New[Req, Resp any](addr pool.Address, conn *grpc.ClientConn, invoke Invoker[Req, Resp]) *Endpoint[Req, Resp] {
	return &Endpoint[Req, Resp]{addr: addr, conn: conn, invoke: invoke}
}

// Poll reports Ready once the connection reaches connectivity.Ready,
// nudging it out of Idle with Connect, and registers wake to fire on the
// connection's next state transition otherwise.
func (e *Endpoint[Req, Resp]) Poll(wake pool.WakeFunc) (pool.Readiness, error) {
	state := e.conn.GetState()
	switch state {
	case connectivity.Ready:
		return pool.Ready, nil
	case connectivity.Shutdown:
		return pool.Pending, fmt.Errorf("grpcendpoint: connection to %s is shut down", e.addr)
	case connectivity.Idle:
		e.conn.Connect()
	}
	e.registerWake(state, wake)
	return pool.Pending, nil
}

// registerWake starts (at most one outstanding) goroutine that blocks on
// the connection leaving state and then invokes wake.
func (e *Endpoint[Req, Resp]) registerWake(state connectivity.State, wake pool.WakeFunc) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.waiting {
		return
	}
	e.waiting = true
	ctx, cancel := context.WithCancel(context.Background())
	e.cancel = cancel
	go func() {
		e.conn.WaitForStateChange(ctx, state)
		e.mu.Lock()
		e.waiting = false
		e.mu.Unlock()
		wake()
	}()
}

// Call invokes the configured Invoker in a goroutine and returns a Future
// for its result.
func (e *Endpoint[Req, Resp]) Call(req Req) pool.Future[Resp] {
	e.inFlight.Add(1)
	ch := make(chan pool.Result[Resp], 1)
	go func() {
		defer e.inFlight.Add(-1)
		resp, err := e.invoke(context.Background(), e.conn, req)
		ch <- pool.Result[Resp]{Resp: resp, Err: err}
	}()
	return ch
}

// Load reports the number of calls currently in flight.
func (e *Endpoint[Req, Resp]) Load() int64 {
	return e.inFlight.Load()
}

// Close releases the wake-waiting goroutine, if any. It does not close the
// underlying *grpc.ClientConn, which this package did not create.
func (e *Endpoint[Req, Resp]) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.cancel != nil {
		e.cancel()
	}
}
