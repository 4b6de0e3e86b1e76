package grpcendpoint_test

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/k3s-io/endpointpool/pkg/grpcendpoint"
	"github.com/k3s-io/endpointpool/pkg/pool"
)

// echoInvoker is an Invoker that doesn't perform any actual RPC; it is
// enough to exercise Endpoint.Call's bookkeeping without a generated
// service stub.
func echoInvoker(ctx context.Context, conn *grpc.ClientConn, req string) (string, error) {
	return "echo:" + req, nil
}

func TestEndpoint_PollBecomesReady(t *testing.T) {
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer lis.Close()

	server := grpc.NewServer()
	go server.Serve(lis)
	defer server.Stop()

	conn, err := grpc.NewClient(lis.Addr().String(), grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	defer conn.Close()

	ep := grpcendpoint.New[string, string]("test", conn, echoInvoker)
	defer ep.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	woken := make(chan struct{}, 1)
	wake := func() {
		select {
		case woken <- struct{}{}:
		default:
		}
	}

	for {
		state, err := ep.Poll(wake)
		require.NoError(t, err)
		if state == pool.Ready {
			break
		}
		select {
		case <-woken:
		case <-time.After(10 * time.Millisecond):
		case <-ctx.Done():
			t.Fatal("timed out waiting for endpoint to become ready")
		}
	}
}

func TestEndpoint_CallTracksLoad(t *testing.T) {
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer lis.Close()

	server := grpc.NewServer()
	go server.Serve(lis)
	defer server.Stop()

	conn, err := grpc.NewClient(lis.Addr().String(), grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	defer conn.Close()

	ep := grpcendpoint.New[string, string]("test", conn, echoInvoker)
	defer ep.Close()

	require.EqualValues(t, 0, ep.Load())

	future := ep.Call("hi")
	result := <-future
	require.NoError(t, result.Err)
	require.Equal(t, "echo:hi", result.Resp)

	require.Eventually(t, func() bool {
		return ep.Load() == 0
	}, time.Second, time.Millisecond)
}
