//go:build integration
// +build integration

package integration

import (
	"context"
	"io"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/brinedeck/wardroom/internal/services/console"
)

// integrationTimeout returns the default timeout for integration calls.
func integrationTimeout() time.Duration {
	return 10 * time.Second
}

func setTempConsoleEnv(t *testing.T) {
	t.Helper()
	base := t.TempDir()
	t.Setenv("WARDROOM_CONSOLE_DB_PATH", filepath.Join(base, "console.db"))
	t.Setenv("WARDROOM_ALERT_CHECKS_DIR", filepath.Join(base, "alert.d"))
	t.Setenv("WARDROOM_ALERT_STATUS_FILE", filepath.Join(base, "alert_status"))
	t.Setenv("WARDROOM_NODE", "A")
}

// startConsoleServer boots the console on an ephemeral port and returns its
// base URL and shutdown function.
func startConsoleServer(t *testing.T, cfg console.Config) (string, func()) {
	t.Helper()

	setTempConsoleEnv(t)
	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = "127.0.0.1:0"
	}

	ctx, cancel := context.WithCancel(context.Background())
	server, err := console.NewServer(ctx, cfg)
	if err != nil {
		cancel()
		t.Fatalf("new console server: %v", err)
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.ListenAndServe(ctx)
	}()

	base := "http://" + server.Addr()
	waitForConsoleReady(t, base)
	stop := func() {
		cancel()
		select {
		case err := <-serveErr:
			if err != nil {
				t.Fatalf("console server error: %v", err)
			}
		case <-time.After(5 * time.Second):
			t.Fatalf("timed out waiting for console server to stop")
		}
		server.Close()
	}

	return base, stop
}

func waitForConsoleReady(t *testing.T, base string) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client := &http.Client{Timeout: time.Second}
	backoff := 100 * time.Millisecond
	for {
		resp, err := client.Get(base + "/static/css/console.css")
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}

		select {
		case <-ctx.Done():
			if err != nil {
				t.Fatalf("wait for console ready: %v", err)
			}
			t.Fatalf("wait for console ready: %v", ctx.Err())
		case <-time.After(backoff):
		}

		if backoff < time.Second {
			backoff *= 2
		}
	}
}

// noRedirectClient returns a client that reports redirects instead of
// following them.
func noRedirectClient() *http.Client {
	return &http.Client{
		Timeout: integrationTimeout(),
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func fetch(t *testing.T, client *http.Client, req *http.Request) (*http.Response, string) {
	t.Helper()

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", req.Method, req.URL, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read %s body: %v", req.URL, err)
	}
	return resp, string(body)
}

func get(t *testing.T, client *http.Client, url string) (*http.Response, string) {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		t.Fatalf("build request for %s: %v", url, err)
	}
	return fetch(t, client, req)
}
