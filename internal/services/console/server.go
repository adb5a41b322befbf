package console

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/brinedeck/wardroom/internal/platform/config"
	"github.com/brinedeck/wardroom/internal/platform/timeouts"
	"github.com/brinedeck/wardroom/internal/services/console/alerts"
	"github.com/brinedeck/wardroom/internal/services/console/controlplane"
	"github.com/brinedeck/wardroom/internal/services/console/hooks"
	"github.com/brinedeck/wardroom/internal/services/console/integration/grpcdial"
	"github.com/brinedeck/wardroom/internal/services/console/integration/storage"
	"github.com/brinedeck/wardroom/internal/services/console/site"
	"github.com/brinedeck/wardroom/internal/services/console/static"
	"github.com/brinedeck/wardroom/internal/services/console/storage/sqlite"
	"github.com/brinedeck/wardroom/internal/services/console/templates"
	"github.com/brinedeck/wardroom/internal/services/console/transport/httpmux"
	"github.com/brinedeck/wardroom/internal/services/shared/grpcauthctx"
)

// serverEnv captures startup defaults for the console process.
type serverEnv struct {
	DBPath     string `env:"WARDROOM_CONSOLE_DB_PATH"`
	ChecksDir  string `env:"WARDROOM_ALERT_CHECKS_DIR"`
	StatusFile string `env:"WARDROOM_ALERT_STATUS_FILE"`
	Node       string `env:"WARDROOM_NODE"`
}

func loadServerEnv() serverEnv {
	var cfg serverEnv
	_ = config.ParseEnv(&cfg)
	if cfg.DBPath == "" {
		cfg.DBPath = filepath.Join("data", "console.db")
	}
	if cfg.ChecksDir == "" {
		cfg.ChecksDir = filepath.Join("data", "alert.d")
	}
	if cfg.StatusFile == "" {
		cfg.StatusFile = filepath.Join("data", "alert_status")
	}
	if cfg.Node == "" {
		cfg.Node = "A"
	}
	return cfg
}

// Config defines the inputs for the console operator process.
//
// The console is a control plane over the core daemon; CoreAddr selects that
// API surface and AuthConfig enables session enforcement in front of it.
type Config struct {
	HTTPAddr        string
	CoreAddr        string
	GRPCDialTimeout time.Duration
	// AuthConfig enables token-based authentication when set.
	AuthConfig *AuthConfig
}

// Server hosts the management console and manages the core daemon client.
type Server struct {
	listener   net.Listener
	coreAddr   string
	core       *coreClients
	httpServer *http.Server
	store      *sqlite.Store
	registry   *site.Site
	hooks      *hooks.Pool
}

// coreClients guards the control-plane clients created by the core dial.
// The first successful dial wins; later retries become no-ops.
type coreClients struct {
	mu      sync.RWMutex
	clients grpcdial.CoreClients
}

// Has reports whether a core connection is already set.
func (c *coreClients) Has() bool {
	if c == nil {
		return false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.clients.Conn != nil
}

// Set stores the core connection and clients after the first successful dial.
func (c *coreClients) Set(clients grpcdial.CoreClients) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.clients.Conn != nil {
		return
	}
	c.clients = clients
}

// Token returns the current token client, or nil before the first dial.
func (c *coreClients) Token() *controlplane.Client {
	if c == nil {
		return nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.clients.Token
}

// Close releases the core connection.
func (c *coreClients) Close() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.clients.Conn != nil {
		if err := c.clients.Conn.Close(); err != nil {
			log.Printf("close console core gRPC connection: %v", err)
		}
		c.clients = grpcdial.CoreClients{}
	}
}

// coreTokens resolves the token client per request, so a connection made by
// the background retry loop is picked up without restarting the handler.
type coreTokens struct {
	core *coreClients
}

func (t *coreTokens) GenerateToken(ctx context.Context, userID string) (string, error) {
	client := t.core.Token()
	if client == nil {
		return "", errors.New("control plane is not connected")
	}
	return client.GenerateToken(ctx, userID)
}

// NewServer builds a configured console server. The model registry is
// populated with the built-in admins before the handler mounts it; callers
// may register more through Site before ListenAndServe.
func NewServer(ctx context.Context, cfg Config) (*Server, error) {
	httpAddr := strings.TrimSpace(cfg.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	if cfg.GRPCDialTimeout <= 0 {
		cfg.GRPCDialTimeout = timeouts.GRPCDial
	}

	listener, err := net.Listen("tcp", httpAddr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", httpAddr, err)
	}

	env := loadServerEnv()
	store, err := storage.OpenStore(env.DBPath)
	if err != nil {
		_ = listener.Close()
		return nil, err
	}

	alertService := alerts.NewService(alerts.NewRunner(env.ChecksDir), env.StatusFile, env.Node, store)

	signer, err := grpcauthctx.LoadSignerFromEnv(time.Now)
	if err != nil {
		log.Printf("console service signer unavailable: %v", err)
		signer = nil
	}

	core := &coreClients{}
	if coreAddr := strings.TrimSpace(cfg.CoreAddr); coreAddr != "" {
		dialed, err := grpcdial.DialCore(ctx, coreAddr, cfg.GRPCDialTimeout, signer)
		if err != nil {
			log.Printf("console core gRPC dial failed: %v", err)
			go grpcdial.ConnectWithRetry(ctx, coreAddr, core.Has,
				func(ctx context.Context) error {
					dialed, err := grpcdial.DialCore(ctx, coreAddr, cfg.GRPCDialTimeout, signer)
					if err != nil {
						return err
					}
					core.Set(dialed)
					return nil
				},
				"console core gRPC connected to %s",
				"console core gRPC dial failed: %v",
			)
		} else {
			core.Set(dialed)
		}
	}

	registry := site.New()
	if err := RegisterDefaultAdmins(registry, store); err != nil {
		core.Close()
		_ = store.Close()
		_ = listener.Close()
		return nil, fmt.Errorf("register default admins: %w", err)
	}

	pool := hooks.NewPool()
	handler := NewHandler(HandlerConfig{
		Site:      registry,
		Store:     store,
		Hooks:     pool,
		Alerts:    alertService,
		Tokens:    &coreTokens{core: core},
		Auth:      cfg.AuthConfig,
		HelpLinks: defaultHelpLinks(),
	})

	rootMux := http.NewServeMux()
	httpmux.MountStatic(rootMux, static.FS, withStaticMime)
	httpmux.MountAdminRoutes(rootMux, handler)

	httpServer := &http.Server{
		Addr:              httpAddr,
		Handler:           rootMux,
		ReadHeaderTimeout: timeouts.ReadHeader,
	}

	return &Server{
		listener:   listener,
		coreAddr:   cfg.CoreAddr,
		core:       core,
		httpServer: httpServer,
		store:      store,
		registry:   registry,
		hooks:      pool,
	}, nil
}

// Addr returns the bound listener address for the console server.
func (s *Server) Addr() string {
	if s == nil || s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Site returns the model registry, for registrations beyond the built-ins.
func (s *Server) Site() *site.Site {
	if s == nil {
		return nil
	}
	return s.registry
}

// Hooks returns the plugin pool, for registrations before ListenAndServe.
func (s *Server) Hooks() *hooks.Pool {
	if s == nil {
		return nil
	}
	return s.hooks
}

// ListenAndServe runs the HTTP server until the context ends.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("console server is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	serveErr := make(chan error, 1)
	log.Printf("console listening on %s", s.Addr())
	go func() {
		serveErr <- s.httpServer.Serve(s.listener)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}
}

// Close releases the listener, gRPC, and storage resources held by the server.
func (s *Server) Close() {
	if s == nil {
		return
	}
	if s.listener != nil {
		_ = s.listener.Close()
	}
	if s.core != nil {
		s.core.Close()
	}
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			log.Printf("close console store: %v", err)
		}
	}
}

func withStaticMime(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch path := strings.ToLower(r.URL.Path); {
		case strings.HasSuffix(path, ".css"):
			w.Header().Set("Content-Type", "text/css")
		case strings.HasSuffix(path, ".js"):
			w.Header().Set("Content-Type", "application/javascript")
		case strings.HasSuffix(path, ".svg"):
			w.Header().Set("Content-Type", "image/svg+xml")
		}
		next.ServeHTTP(w, r)
	})
}

func defaultHelpLinks() []templates.HelpLink {
	return []templates.HelpLink{
		{Label: "Administrator guide", URL: "https://wardroom.brinedeck.io/docs"},
		{Label: "Community forum", URL: "https://community.brinedeck.io"},
	}
}
