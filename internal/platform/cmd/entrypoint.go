// Package cmd holds the startup sequence shared by wardroom binaries:
// env config, flag parsing, and telemetry bring-up around the run loop.
package cmd

import (
	"context"
	"errors"
	"flag"
	"log"
	"strings"
	"time"

	"github.com/brinedeck/wardroom/internal/platform/config"
	"github.com/brinedeck/wardroom/internal/platform/otel"
)

// ServiceConsole names the console process for telemetry and logs.
const ServiceConsole = "console"

// telemetryStopTimeout bounds the trace exporter flush on shutdown.
const telemetryStopTimeout = 5 * time.Second

// ParseConfig loads environment defaults into cfg before flags are
// registered, so flag defaults reflect the environment.
func ParseConfig[T any](cfg *T) error {
	if cfg == nil {
		return errors.New("config target is required")
	}
	return config.ParseEnv(cfg)
}

// ParseArgs parses command-line flags over the env-loaded defaults.
func ParseArgs(fs *flag.FlagSet, args []string) error {
	if fs == nil {
		return errors.New("flag parser is required")
	}
	if args == nil {
		args = []string{}
	}
	return fs.Parse(args)
}

// RunWithTelemetry brings up tracing for service, invokes run, and
// flushes the exporter on the way out. Telemetry setup failures abort
// the start; flush failures only log.
func RunWithTelemetry(ctx context.Context, service string, run func(context.Context) error) error {
	service = strings.TrimSpace(service)
	if service == "" {
		return errors.New("service name is required")
	}
	if run == nil {
		return errors.New("run function is required")
	}

	stop, err := otel.Setup(ctx, service)
	if err != nil {
		return err
	}
	defer stopTelemetry(service, stop)

	return run(ctx)
}

func stopTelemetry(service string, stop func(context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), telemetryStopTimeout)
	defer cancel()
	if err := stop(ctx); err != nil {
		log.Printf("%s otel shutdown: %v", service, err)
	}
}
