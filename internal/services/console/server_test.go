package console

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/brinedeck/wardroom/internal/services/console/controlplane"
	"github.com/brinedeck/wardroom/internal/services/console/integration/grpcdial"
)

func TestNewServerRequiresHTTPAddr(t *testing.T) {
	t.Parallel()

	if _, err := NewServer(context.Background(), Config{}); err == nil {
		t.Fatal("NewServer(empty addr) error = nil, want error")
	}
}

func TestNewServerBindsEphemeralPort(t *testing.T) {
	t.Setenv("WARDROOM_CONSOLE_DB_PATH", filepath.Join(t.TempDir(), "console.db"))
	t.Setenv("WARDROOM_ALERT_CHECKS_DIR", t.TempDir())
	t.Setenv("WARDROOM_ALERT_STATUS_FILE", filepath.Join(t.TempDir(), "alert_status"))

	server, err := NewServer(context.Background(), Config{HTTPAddr: "127.0.0.1:0"})
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	defer server.Close()

	addr := server.Addr()
	if addr == "" {
		t.Fatal("Addr() is empty after NewServer")
	}
	if strings.HasSuffix(addr, ":0") {
		t.Fatalf("Addr() = %q, want a bound port", addr)
	}
	if server.Site() == nil {
		t.Fatal("Site() is nil after NewServer")
	}
	if server.Hooks() == nil {
		t.Fatal("Hooks() is nil after NewServer")
	}
}

func lazyCoreClients(t *testing.T) grpcdial.CoreClients {
	t.Helper()
	conn, err := grpc.NewClient(
		"127.0.0.1:1",
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return grpcdial.CoreClients{Conn: conn, Token: controlplane.NewClient(conn)}
}

func TestCoreClientsNilSafety(t *testing.T) {
	t.Parallel()

	var core *coreClients
	if core.Has() {
		t.Fatal("nil coreClients reports a connection")
	}
	if core.Token() != nil {
		t.Fatal("nil coreClients returned a token client")
	}
	core.Set(grpcdial.CoreClients{})
	core.Close()
}

func TestCoreClientsFirstSetWins(t *testing.T) {
	t.Parallel()

	core := &coreClients{}
	if core.Has() {
		t.Fatal("empty coreClients reports a connection")
	}
	if core.Token() != nil {
		t.Fatal("empty coreClients returned a token client")
	}

	first := lazyCoreClients(t)
	second := lazyCoreClients(t)

	core.Set(first)
	if !core.Has() {
		t.Fatal("Has() = false after Set")
	}
	core.Set(second)
	if core.Token() != first.Token {
		t.Fatal("second Set replaced the established clients")
	}

	core.Close()
	if core.Has() {
		t.Fatal("Has() = true after Close")
	}
}

func TestCoreTokensReportsDisconnected(t *testing.T) {
	t.Parallel()

	tokens := &coreTokens{core: &coreClients{}}
	_, err := tokens.GenerateToken(context.Background(), "u-1")
	if err == nil {
		t.Fatal("GenerateToken() error = nil, want disconnected error")
	}
	if !strings.Contains(err.Error(), "not connected") {
		t.Fatalf("GenerateToken() error = %v, want not connected", err)
	}
}

func TestWithStaticMime(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want string
	}{
		{path: "/static/css/console.css", want: "text/css"},
		{path: "/static/js/console.js", want: "application/javascript"},
		{path: "/static/img/logo.svg", want: "image/svg+xml"},
		{path: "/static/readme.txt", want: ""},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.path, func(t *testing.T) {
			t.Parallel()

			var served bool
			handler := withStaticMime(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
				served = true
			}))

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tc.path, nil))

			if !served {
				t.Fatal("wrapped handler was not called")
			}
			if got := rec.Header().Get("Content-Type"); got != tc.want {
				t.Fatalf("Content-Type = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestLoadServerEnv(t *testing.T) {
	t.Setenv("WARDROOM_CONSOLE_DB_PATH", "")
	t.Setenv("WARDROOM_ALERT_CHECKS_DIR", "")
	t.Setenv("WARDROOM_ALERT_STATUS_FILE", "")
	t.Setenv("WARDROOM_NODE", "")

	env := loadServerEnv()
	if env.DBPath != filepath.Join("data", "console.db") {
		t.Fatalf("DBPath = %q, want default", env.DBPath)
	}
	if env.ChecksDir != filepath.Join("data", "alert.d") {
		t.Fatalf("ChecksDir = %q, want default", env.ChecksDir)
	}
	if env.StatusFile != filepath.Join("data", "alert_status") {
		t.Fatalf("StatusFile = %q, want default", env.StatusFile)
	}
	if env.Node != "A" {
		t.Fatalf("Node = %q, want %q", env.Node, "A")
	}

	t.Setenv("WARDROOM_CONSOLE_DB_PATH", "/var/lib/wardroom/console.db")
	t.Setenv("WARDROOM_NODE", "B")

	env = loadServerEnv()
	if env.DBPath != "/var/lib/wardroom/console.db" {
		t.Fatalf("DBPath = %q, want env override", env.DBPath)
	}
	if env.Node != "B" {
		t.Fatalf("Node = %q, want %q", env.Node, "B")
	}
}

func TestDefaultHelpLinks(t *testing.T) {
	t.Parallel()

	links := defaultHelpLinks()
	if len(links) == 0 {
		t.Fatal("defaultHelpLinks() is empty")
	}
	for _, link := range links {
		if link.Label == "" || !strings.HasPrefix(link.URL, "https://") {
			t.Fatalf("help link %+v is incomplete", link)
		}
	}
}
