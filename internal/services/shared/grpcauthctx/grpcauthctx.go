// Package grpcauthctx attaches the console's service identity to outbound
// control-plane calls. Every call carries a short-lived EdDSA service token
// as Bearer metadata, plus the acting operator's user id when one is known.
package grpcauthctx

import (
	"context"
	"crypto/ed25519"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

const (
	// AuthorizationHeader carries the service token.
	AuthorizationHeader = "authorization"
	// UserIDHeader names the operator a call is made on behalf of.
	UserIDHeader = "x-wardroom-user-id"

	bearerPrefix = "Bearer "

	// TokenIssuer and TokenAudience pin who mints and who accepts tokens.
	TokenIssuer   = "wardroom-console"
	TokenAudience = "wardroom-core"

	// serviceTokenTTL keeps stolen tokens nearly worthless.
	serviceTokenTTL = 30 * time.Second
)

// signerEnv holds raw env values before post-parse validation.
type signerEnv struct {
	KeyID string `env:"WARDROOM_SERVICE_KEY_ID"`
	Key   string `env:"WARDROOM_SERVICE_KEY"`
	Node  string `env:"WARDROOM_NODE"`
}

// serviceClaims is the internal claims type used for JWT signing.
type serviceClaims struct {
	jwt.RegisteredClaims
	Node string `json:"node,omitempty"`
}

// Signer mints the console's service tokens.
type Signer struct {
	keyID string
	key   ed25519.PrivateKey
	node  string
	now   func() time.Time
}

// NewSigner builds a signer from an ed25519 private key. The key id travels
// in the token header so the core can rotate keys.
func NewSigner(keyID string, key ed25519.PrivateKey, node string, now func() time.Time) (*Signer, error) {
	if strings.TrimSpace(keyID) == "" {
		return nil, errors.New("service key id is required")
	}
	if len(key) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("service key must be %d bytes", ed25519.PrivateKeySize)
	}
	if now == nil {
		now = time.Now
	}
	return &Signer{keyID: keyID, key: key, node: strings.TrimSpace(node), now: now}, nil
}

// LoadSignerFromEnv reads service token signing configuration. The key may
// be a full private key or a 32-byte seed, base64 encoded either way.
func LoadSignerFromEnv(now func() time.Time) (*Signer, error) {
	var raw signerEnv
	if err := env.Parse(&raw); err != nil {
		return nil, fmt.Errorf("parse service key env: %w", err)
	}
	keyID := strings.TrimSpace(raw.KeyID)
	encoded := strings.TrimSpace(raw.Key)
	if keyID == "" {
		return nil, errors.New("WARDROOM_SERVICE_KEY_ID is required")
	}
	if encoded == "" {
		return nil, errors.New("WARDROOM_SERVICE_KEY is required")
	}
	keyBytes, err := decodeBase64(encoded)
	if err != nil {
		return nil, fmt.Errorf("decode service key: %w", err)
	}

	var key ed25519.PrivateKey
	switch len(keyBytes) {
	case ed25519.PrivateKeySize:
		key = ed25519.PrivateKey(keyBytes)
	case ed25519.SeedSize:
		key = ed25519.NewKeyFromSeed(keyBytes)
	default:
		return nil, fmt.Errorf("service key must be %d or %d bytes", ed25519.PrivateKeySize, ed25519.SeedSize)
	}
	return NewSigner(keyID, key, raw.Node, now)
}

// ServiceToken mints one short-lived token.
func (s *Signer) ServiceToken() (string, error) {
	if s == nil {
		return "", errors.New("service token signer is not configured")
	}
	now := s.now().UTC()
	claims := serviceClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    TokenIssuer,
			Subject:   "console",
			Audience:  jwt.ClaimStrings{TokenAudience},
			ExpiresAt: jwt.NewNumericDate(now.Add(serviceTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
		Node: s.node,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodEdDSA, claims)
	token.Header["kid"] = s.keyID
	signed, err := token.SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("sign service token: %w", err)
	}
	return signed, nil
}

// WithUserID returns a context with operator metadata when userID is non-empty.
func WithUserID(ctx context.Context, userID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return ctx
	}
	return metadata.AppendToOutgoingContext(ctx, UserIDHeader, userID)
}

// UnaryClientInterceptor mints a fresh service token for each unary call.
func (s *Signer) UnaryClientInterceptor() grpc.UnaryClientInterceptor {
	return func(
		ctx context.Context,
		method string,
		req any,
		reply any,
		cc *grpc.ClientConn,
		invoker grpc.UnaryInvoker,
		opts ...grpc.CallOption,
	) error {
		token, err := s.ServiceToken()
		if err != nil {
			return err
		}
		ctx = metadata.AppendToOutgoingContext(ctx, AuthorizationHeader, bearerPrefix+token)
		return invoker(ctx, method, req, reply, cc, opts...)
	}
}

// StreamClientInterceptor mints a fresh service token for each stream.
func (s *Signer) StreamClientInterceptor() grpc.StreamClientInterceptor {
	return func(
		ctx context.Context,
		desc *grpc.StreamDesc,
		cc *grpc.ClientConn,
		method string,
		streamer grpc.Streamer,
		opts ...grpc.CallOption,
	) (grpc.ClientStream, error) {
		token, err := s.ServiceToken()
		if err != nil {
			return nil, err
		}
		ctx = metadata.AppendToOutgoingContext(ctx, AuthorizationHeader, bearerPrefix+token)
		return streamer(ctx, desc, cc, method, opts...)
	}
}

func decodeBase64(value string) ([]byte, error) {
	if value == "" {
		return nil, errors.New("empty base64 value")
	}
	decoded, err := base64.RawStdEncoding.DecodeString(value)
	if err == nil {
		return decoded, nil
	}
	return base64.StdEncoding.DecodeString(value)
}
