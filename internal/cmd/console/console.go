// Package console parses console command flags and launches the console runtime.
package console

import (
	"context"
	"flag"
	"fmt"
	"strings"
	"time"

	entrypoint "github.com/brinedeck/wardroom/internal/platform/cmd"
	"github.com/brinedeck/wardroom/internal/platform/discovery"
	consolesvc "github.com/brinedeck/wardroom/internal/services/console"
)

// Config holds console command configuration.
type Config struct {
	HTTPAddr        string        `env:"WARDROOM_CONSOLE_ADDR"`
	CoreAddr        string        `env:"WARDROOM_CORE_ADDR"`
	IntrospectURL   string        `env:"WARDROOM_AUTH_INTROSPECT_URL"`
	ResourceSecret  string        `env:"WARDROOM_RESOURCE_SECRET"`
	LoginURL        string        `env:"WARDROOM_LOGIN_URL" envDefault:"/account/login/"`
	GRPCDialTimeout time.Duration `env:"WARDROOM_CONSOLE_DIAL_TIMEOUT" envDefault:"2s"`
}

// ParseConfig parses environment and flags into Config. An empty
// introspection URL leaves authentication off.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	cfg.HTTPAddr = discovery.OrDefaultHTTPAddr(cfg.HTTPAddr, discovery.ServiceConsole)
	cfg.CoreAddr = discovery.OrDefaultGRPCAddr(cfg.CoreAddr, discovery.ServiceCore)

	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.CoreAddr, "core-addr", cfg.CoreAddr, "The core daemon gRPC address")
	fs.StringVar(&cfg.IntrospectURL, "introspect-url", cfg.IntrospectURL, "session introspection endpoint")
	fs.StringVar(&cfg.LoginURL, "login-url", cfg.LoginURL, "login page redirect target")
	fs.DurationVar(&cfg.GRPCDialTimeout, "dial-timeout", cfg.GRPCDialTimeout, "The core daemon dial timeout")

	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the console server.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceConsole, func(context.Context) error {
		return run(ctx, cfg)
	})
}

func run(ctx context.Context, cfg Config) error {
	serverCfg := consolesvc.Config{
		HTTPAddr:        cfg.HTTPAddr,
		CoreAddr:        cfg.CoreAddr,
		GRPCDialTimeout: cfg.GRPCDialTimeout,
	}
	if strings.TrimSpace(cfg.IntrospectURL) != "" {
		serverCfg.AuthConfig = &consolesvc.AuthConfig{
			IntrospectURL:  cfg.IntrospectURL,
			ResourceSecret: cfg.ResourceSecret,
			LoginURL:       cfg.LoginURL,
		}
	}

	server, err := consolesvc.NewServer(ctx, serverCfg)
	if err != nil {
		return fmt.Errorf("init console server: %w", err)
	}
	defer server.Close()

	if err := server.ListenAndServe(ctx); err != nil {
		return fmt.Errorf("serve console: %w", err)
	}
	return nil
}
