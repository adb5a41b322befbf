package grpc

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	gogrpc "google.golang.org/grpc"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

func TestDialWithHealthReturnsServingConnection(t *testing.T) {
	fixture := newHealthFixture(t, healthpb.HealthCheckResponse_SERVING)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	conn, err := DialWithHealth(ctx, nil, fixture.addr, time.Second, nil, DefaultClientDialOptions()...)
	if err != nil {
		t.Fatalf("DialWithHealth() = %v, want nil", err)
	}
	if conn == nil {
		t.Fatal("DialWithHealth() returned nil connection")
	}
	if err := conn.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}

func TestDialWithHealthClosesConnectionWhenNotServing(t *testing.T) {
	fixture := newHealthFixture(t, healthpb.HealthCheckResponse_NOT_SERVING)

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	conn, err := DialWithHealth(ctx, nil, fixture.addr, time.Second, nil, DefaultClientDialOptions()...)
	if err == nil {
		t.Fatal("DialWithHealth() = nil, want error")
	}
	if conn != nil {
		_ = conn.Close()
		t.Fatal("DialWithHealth() returned a connection alongside an error")
	}
}

func TestDialWithHealthTimeoutBoundsTheWholeAttempt(t *testing.T) {
	fixture := newHealthFixture(t, healthpb.HealthCheckResponse_NOT_SERVING)

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := DialWithHealth(ctx, nil, fixture.addr, 150*time.Millisecond, nil, DefaultClientDialOptions()...)
	if err == nil {
		t.Fatal("DialWithHealth() = nil, want error")
	}
	if elapsed := time.Since(start); elapsed > 400*time.Millisecond {
		t.Fatalf("attempt ran %v, want it bounded by the 150ms dial timeout", elapsed)
	}
}

func TestDialWithHealthStagesFailures(t *testing.T) {
	t.Run("connect stage", func(t *testing.T) {
		refusing := DialerFunc(func(context.Context, string, ...gogrpc.DialOption) (*gogrpc.ClientConn, error) {
			return nil, fmt.Errorf("connection refused")
		})

		_, err := DialWithHealth(context.Background(), refusing, "core:50051", time.Second, nil)
		var dialErr *DialError
		if !errors.As(err, &dialErr) {
			t.Fatalf("error = %T, want *DialError", err)
		}
		if dialErr.Stage != DialStageConnect {
			t.Fatalf("stage = %q, want %q", dialErr.Stage, DialStageConnect)
		}
	})

	t.Run("health stage", func(t *testing.T) {
		fixture := newHealthFixture(t, healthpb.HealthCheckResponse_NOT_SERVING)

		ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
		defer cancel()

		_, err := DialWithHealth(ctx, nil, fixture.addr, time.Second, nil, DefaultClientDialOptions()...)
		var dialErr *DialError
		if !errors.As(err, &dialErr) {
			t.Fatalf("error = %T, want *DialError", err)
		}
		if dialErr.Stage != DialStageHealth {
			t.Fatalf("stage = %q, want %q", dialErr.Stage, DialStageHealth)
		}
	})
}

func TestDialErrorMessages(t *testing.T) {
	wrapped := &DialError{Stage: DialStageConnect, Err: fmt.Errorf("no route")}
	if got := wrapped.Error(); !strings.Contains(got, "connect") || !strings.Contains(got, "no route") {
		t.Fatalf("Error() = %q, want stage and cause", got)
	}
	if !errors.Is(wrapped, wrapped.Err) {
		t.Fatal("Unwrap() should expose the cause")
	}

	var empty *DialError
	if empty.Error() == "" {
		t.Fatal("nil DialError should still describe itself")
	}
	if empty.Unwrap() != nil {
		t.Fatal("nil DialError should unwrap to nil")
	}
}

func TestDialerFuncForwardsArguments(t *testing.T) {
	var gotAddr string
	var gotCtx context.Context
	dialer := DialerFunc(func(ctx context.Context, addr string, _ ...gogrpc.DialOption) (*gogrpc.ClientConn, error) {
		gotCtx = ctx
		gotAddr = addr
		return nil, nil
	})

	if _, err := dialer.DialContext(context.Background(), "console:50052"); err != nil {
		t.Fatalf("DialContext() = %v, want nil", err)
	}
	if gotAddr != "console:50052" {
		t.Fatalf("addr = %q, want %q", gotAddr, "console:50052")
	}
	if gotCtx == nil {
		t.Fatal("context was not forwarded")
	}
}
