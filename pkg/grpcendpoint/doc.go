// Package grpcendpoint adapts a *grpc.ClientConn to the pool.Service
// contract, for callers who want a working endpoint factory instead of
// writing their own. The pool never imports this package; endpoint
// factories are always supplied by the caller.
package grpcendpoint
