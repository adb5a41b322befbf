package grpcdial

import (
	"context"
	"log"
	"strings"
	"time"

	platformgrpc "github.com/brinedeck/wardroom/internal/platform/grpc"
	"github.com/brinedeck/wardroom/internal/platform/timeouts"
	"github.com/brinedeck/wardroom/internal/services/console/controlplane"
	"github.com/brinedeck/wardroom/internal/services/shared/grpcauthctx"
	sharedgrpcdial "github.com/brinedeck/wardroom/internal/services/shared/grpcdial"
	"google.golang.org/grpc"
)

const (
	// DefaultRetryDelay sets the initial wait time between gRPC dial attempts.
	DefaultRetryDelay = 500 * time.Millisecond
	// MaxRetryDelay caps the backoff between gRPC dial attempts.
	MaxRetryDelay = 10 * time.Second
)

// CoreClients contains the control-plane clients created by a successful
// core daemon dial.
type CoreClients struct {
	Conn  *grpc.ClientConn
	Token *controlplane.Client
}

func normalizeTimeout(timeout time.Duration) time.Duration {
	if timeout <= 0 {
		return timeouts.GRPCDial
	}
	return timeout
}

// DialCore dials the core daemon's gRPC endpoint and returns control-plane
// clients. When signer is set, every call on the connection carries a fresh
// service token.
func DialCore(ctx context.Context, addr string, timeout time.Duration, signer *grpcauthctx.Signer) (CoreClients, error) {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return CoreClients{}, nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	timeout = normalizeTimeout(timeout)

	logf := func(format string, args ...any) {
		log.Printf("console core "+format, args...)
	}
	dialOpts := platformgrpc.DefaultClientDialOptions()
	if signer != nil {
		dialOpts = append(
			dialOpts,
			grpc.WithChainUnaryInterceptor(signer.UnaryClientInterceptor()),
			grpc.WithChainStreamInterceptor(signer.StreamClientInterceptor()),
		)
	}
	conn, err := sharedgrpcdial.DialWithHealth(ctx, addr, timeout, "console core", logf, dialOpts...)
	if err != nil {
		return CoreClients{}, err
	}
	return CoreClients{
		Conn:  conn,
		Token: controlplane.NewClient(conn),
	}, nil
}

// ConnectWithRetry keeps dialing until a connection is established or context ends.
func ConnectWithRetry(
	ctx context.Context,
	address string,
	hasConnection func() bool,
	connect func(context.Context) error,
	successLogFormat string,
	failureLogFormat string,
) {
	if hasConnection == nil || connect == nil {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}

	retryDelay := DefaultRetryDelay
	for {
		if ctx.Err() != nil {
			return
		}
		if hasConnection() {
			return
		}

		err := connect(ctx)
		if err == nil {
			log.Printf(successLogFormat, address)
			return
		}

		log.Printf(failureLogFormat, err)
		timer := time.NewTimer(retryDelay)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return
		}
		if retryDelay < MaxRetryDelay {
			retryDelay *= 2
			if retryDelay > MaxRetryDelay {
				retryDelay = MaxRetryDelay
			}
		}
	}
}
