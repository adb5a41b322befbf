// Package grpcdial labels startup dial failures with the service a
// connection was for, so mixed-service logs stay readable.
package grpcdial

import (
	"context"
	"errors"
	"fmt"
	"time"

	platformgrpc "github.com/brinedeck/wardroom/internal/platform/grpc"
	gogrpc "google.golang.org/grpc"
)

// DialWithHealth dials addr with a health gate and rewords failures to
// name the target service.
func DialWithHealth(
	ctx context.Context,
	addr string,
	timeout time.Duration,
	serviceLabel string,
	logf func(string, ...any),
	opts ...gogrpc.DialOption,
) (*gogrpc.ClientConn, error) {
	conn, err := platformgrpc.DialWithHealth(ctx, nil, addr, timeout, logf, opts...)
	if err != nil {
		return nil, describeFailure(serviceLabel, addr, err)
	}
	return conn, nil
}

// describeFailure words the error by failed stage while keeping the
// underlying cause in the chain.
func describeFailure(serviceLabel, addr string, err error) error {
	var dialErr *platformgrpc.DialError
	if errors.As(err, &dialErr) && dialErr.Stage == platformgrpc.DialStageHealth {
		return fmt.Errorf("%s gRPC health check failed for %s: %w", serviceLabel, addr, dialErr.Err)
	}
	cause := err
	if dialErr != nil {
		cause = dialErr.Err
	}
	return fmt.Errorf("dial %s gRPC %s: %w", serviceLabel, addr, cause)
}
