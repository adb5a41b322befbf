package grpc

import (
	"context"
	"errors"
	"net"
	"strings"
	"sync"
	"testing"
	"time"

	gogrpc "google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// healthFixture runs a real gRPC server exposing only the standard
// health service, torn down through t.Cleanup.
type healthFixture struct {
	addr   string
	server *health.Server
}

func (f *healthFixture) set(status healthpb.HealthCheckResponse_ServingStatus) {
	f.server.SetServingStatus("", status)
}

func newHealthFixture(t *testing.T, status healthpb.HealthCheckResponse_ServingStatus) *healthFixture {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	grpcServer := gogrpc.NewServer()
	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus("", status)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = grpcServer.Serve(listener)
	}()
	t.Cleanup(func() {
		grpcServer.GracefulStop()
		_ = listener.Close()
		select {
		case <-done:
		case <-time.After(2 * time.Second):
		}
	})

	return &healthFixture{addr: listener.Addr().String(), server: healthServer}
}

func connectTo(t *testing.T, addr string) *gogrpc.ClientConn {
	t.Helper()

	conn, err := gogrpc.NewClient(addr, gogrpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		t.Fatalf("connect to %s: %v", addr, err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func TestWaitForHealthServing(t *testing.T) {
	fixture := newHealthFixture(t, healthpb.HealthCheckResponse_SERVING)
	conn := connectTo(t, fixture.addr)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := WaitForHealth(ctx, conn, "", nil); err != nil {
		t.Fatalf("WaitForHealth() = %v, want nil", err)
	}
}

func TestWaitForHealthRetriesUntilServing(t *testing.T) {
	fixture := newHealthFixture(t, healthpb.HealthCheckResponse_NOT_SERVING)
	conn := connectTo(t, fixture.addr)

	go func() {
		time.Sleep(200 * time.Millisecond)
		fixture.set(healthpb.HealthCheckResponse_SERVING)
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := WaitForHealth(ctx, conn, "", nil); err != nil {
		t.Fatalf("WaitForHealth() after transition = %v, want nil", err)
	}
}

func TestWaitForHealthStopsWhenContextExpires(t *testing.T) {
	fixture := newHealthFixture(t, healthpb.HealthCheckResponse_NOT_SERVING)
	conn := connectTo(t, fixture.addr)

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	err := WaitForHealth(ctx, conn, "", nil)
	if err == nil {
		t.Fatal("WaitForHealth() = nil, want context error")
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("WaitForHealth() = %v, want wrapped deadline error", err)
	}
}

func TestWaitForHealthRejectsNilConnection(t *testing.T) {
	if err := WaitForHealth(context.Background(), nil, "", nil); err == nil {
		t.Fatal("WaitForHealth(nil conn) = nil, want error")
	}
}

func TestWaitForHealthReportsFailedProbes(t *testing.T) {
	fixture := newHealthFixture(t, healthpb.HealthCheckResponse_NOT_SERVING)
	conn := connectTo(t, fixture.addr)

	var mu sync.Mutex
	var lines []string
	logf := func(format string, args ...any) {
		mu.Lock()
		defer mu.Unlock()
		lines = append(lines, format)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	if err := WaitForHealth(ctx, conn, "", logf); err == nil {
		t.Fatal("WaitForHealth() = nil, want error")
	}

	mu.Lock()
	defer mu.Unlock()
	if len(lines) == 0 {
		t.Fatal("expected at least one probe log line")
	}
	if !strings.Contains(lines[0], "health probe") {
		t.Fatalf("log line = %q, want probe report", lines[0])
	}
}
