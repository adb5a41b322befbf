package grpc

import (
	"context"
	"fmt"
	"time"

	gogrpc "google.golang.org/grpc"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

const (
	healthProbeTimeout = time.Second
	healthRetryFloor   = 200 * time.Millisecond
	healthRetryCeiling = time.Second
)

// WaitForHealth polls the standard health service on conn until it
// reports SERVING or ctx expires. An empty service name queries the
// server's overall status. Retries back off from 200ms toward a 1s
// cap; logf, when non-nil, receives one line per failed probe.
func WaitForHealth(ctx context.Context, conn *gogrpc.ClientConn, service string, logf func(string, ...any)) error {
	if conn == nil {
		return fmt.Errorf("health check requires a connection")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	client := healthpb.NewHealthClient(conn)
	delay := healthRetryFloor
	for attempt := 1; ; attempt++ {
		status, err := probeOnce(ctx, client, service)
		if err == nil && status == healthpb.HealthCheckResponse_SERVING {
			if logf != nil {
				logf("health reported SERVING after %d probe(s)", attempt)
			}
			return nil
		}
		if logf != nil {
			if err != nil {
				logf("health probe %d: %v", attempt, err)
			} else {
				logf("health probe %d: status %s", attempt, status)
			}
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("wait for health: %w", ctx.Err())
		case <-time.After(delay):
		}
		if delay *= 2; delay > healthRetryCeiling {
			delay = healthRetryCeiling
		}
	}
}

func probeOnce(ctx context.Context, client healthpb.HealthClient, service string) (healthpb.HealthCheckResponse_ServingStatus, error) {
	probeCtx, cancel := context.WithTimeout(ctx, healthProbeTimeout)
	defer cancel()
	resp, err := client.Check(probeCtx, &healthpb.HealthCheckRequest{Service: service})
	if err != nil {
		return healthpb.HealthCheckResponse_UNKNOWN, err
	}
	return resp.GetStatus(), nil
}
