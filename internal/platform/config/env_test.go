package config

import (
	"strings"
	"testing"
)

type listenerEnv struct {
	Addr string `env:"WARDROOM_CONFIG_TEST_ADDR" envDefault:"127.0.0.1:8443"`
	Port int    `env:"WARDROOM_CONFIG_TEST_PORT" envDefault:"8443"`
}

func TestParseEnvAppliesDefaults(t *testing.T) {
	var cfg listenerEnv
	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("ParseEnv() = %v, want nil", err)
	}
	if cfg.Addr != "127.0.0.1:8443" || cfg.Port != 8443 {
		t.Fatalf("defaults = %q/%d, want 127.0.0.1:8443/8443", cfg.Addr, cfg.Port)
	}
}

func TestParseEnvPrefersEnvironment(t *testing.T) {
	t.Setenv("WARDROOM_CONFIG_TEST_ADDR", "0.0.0.0:80")

	var cfg listenerEnv
	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("ParseEnv() = %v, want nil", err)
	}
	if cfg.Addr != "0.0.0.0:80" {
		t.Fatalf("Addr = %q, want env override", cfg.Addr)
	}
}

func TestParseEnvWrapsParseFailures(t *testing.T) {
	t.Setenv("WARDROOM_CONFIG_TEST_PORT", "not-a-port")

	var cfg listenerEnv
	err := ParseEnv(&cfg)
	if err == nil {
		t.Fatal("ParseEnv() = nil, want error")
	}
	if !strings.Contains(err.Error(), "load env config:") {
		t.Fatalf("error = %v, want load env config prefix", err)
	}
}

func TestParseEnvRejectsNilTarget(t *testing.T) {
	if err := ParseEnv(nil); err == nil {
		t.Fatal("ParseEnv(nil) = nil, want error")
	}
}
