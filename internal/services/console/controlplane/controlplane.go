// Package controlplane provides the console's client for the core daemon's
// gRPC control API.
//
// The console and the core daemon exchange plain JSON messages over gRPC so
// either side can evolve message shapes without regenerating stubs. Calls are
// authenticated by the short-lived service tokens that grpcauthctx attaches
// at dial time.
package controlplane

import (
	"context"
	"encoding/json"
	"strings"

	platformerrors "github.com/brinedeck/wardroom/internal/platform/errors"
	"github.com/brinedeck/wardroom/internal/platform/timeouts"
	"google.golang.org/grpc"
	"google.golang.org/grpc/encoding"
)

// CodecName is the gRPC content subtype for core daemon calls.
const CodecName = "json"

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

// jsonCodec marshals gRPC messages as plain JSON.
type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error)      { return json.Marshal(v) }
func (jsonCodec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }
func (jsonCodec) Name() string                       { return CodecName }

// tokenMethod is the full gRPC method name for middleware token minting.
const tokenMethod = "/wardroom.core.v1.AuthService/GenerateToken"

// DefaultTokenTTLSeconds is the lifetime requested for middleware tokens.
const DefaultTokenTTLSeconds = 600

type generateTokenRequest struct {
	TTLSeconds int64  `json:"ttl_seconds"`
	UserID     string `json:"user_id,omitempty"`
}

type generateTokenResponse struct {
	Token string `json:"token"`
}

// Client calls the core daemon's control API over an established gRPC
// connection.
type Client struct {
	conn grpc.ClientConnInterface
}

// NewClient wraps an established core connection.
func NewClient(conn grpc.ClientConnInterface) *Client {
	return &Client{conn: conn}
}

// Connected reports whether the client holds a usable connection.
func (c *Client) Connected() bool {
	return c != nil && c.conn != nil
}

// GenerateToken asks the core daemon to mint a middleware token for the given
// user. The call is capped by timeouts.TokenGenerate even when the caller's
// context allows more time.
func (c *Client) GenerateToken(ctx context.Context, userID string) (string, error) {
	if !c.Connected() {
		return "", platformerrors.New(platformerrors.CodeCoreUnavailable, "core connection is not established")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, timeouts.TokenGenerate)
	defer cancel()

	req := &generateTokenRequest{
		TTLSeconds: DefaultTokenTTLSeconds,
		UserID:     strings.TrimSpace(userID),
	}
	resp := &generateTokenResponse{}
	err := c.conn.Invoke(ctx, tokenMethod, req, resp, grpc.CallContentSubtype(CodecName))
	if err != nil {
		return "", platformerrors.FromGRPCStatus(err)
	}
	if strings.TrimSpace(resp.Token) == "" {
		return "", platformerrors.New(platformerrors.CodeTokenGenerate, "core returned an empty token")
	}
	return resp.Token, nil
}
