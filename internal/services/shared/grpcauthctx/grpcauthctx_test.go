package grpcauthctx

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

func newTestSigner(t *testing.T) (*Signer, ed25519.PublicKey) {
	t.Helper()
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	signer, err := NewSigner("key-1", priv, "A", func() time.Time { return now })
	if err != nil {
		t.Fatalf("new signer: %v", err)
	}
	return signer, pub
}

func TestServiceTokenClaims(t *testing.T) {
	signer, pub := newTestSigner(t)

	token, err := signer.ServiceToken()
	if err != nil {
		t.Fatalf("service token: %v", err)
	}

	var parsed serviceClaims
	decoded, err := jwt.ParseWithClaims(token, &parsed, func(token *jwt.Token) (any, error) {
		return pub, nil
	}, jwt.WithValidMethods([]string{"EdDSA"}), jwt.WithoutClaimsValidation())
	if err != nil {
		t.Fatalf("parse service token: %v", err)
	}

	if parsed.Issuer != TokenIssuer {
		t.Fatalf("issuer = %q, want %q", parsed.Issuer, TokenIssuer)
	}
	if len(parsed.Audience) != 1 || parsed.Audience[0] != TokenAudience {
		t.Fatalf("audience = %v, want [%s]", parsed.Audience, TokenAudience)
	}
	if parsed.Node != "A" {
		t.Fatalf("node = %q, want A", parsed.Node)
	}
	if parsed.ID == "" {
		t.Fatal("expected jti to be set")
	}
	if decoded.Header["kid"] != "key-1" {
		t.Fatalf("kid = %v, want key-1", decoded.Header["kid"])
	}

	wantExp := time.Date(2026, 8, 1, 12, 0, 30, 0, time.UTC)
	if !parsed.ExpiresAt.Time.Equal(wantExp) {
		t.Fatalf("exp = %v, want %v", parsed.ExpiresAt.Time, wantExp)
	}
}

func TestServiceTokensAreUnique(t *testing.T) {
	signer, _ := newTestSigner(t)

	first, err := signer.ServiceToken()
	if err != nil {
		t.Fatalf("service token: %v", err)
	}
	second, err := signer.ServiceToken()
	if err != nil {
		t.Fatalf("service token: %v", err)
	}
	if first == second {
		t.Fatal("expected unique jti per token")
	}
}

func TestNewSignerValidation(t *testing.T) {
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	if _, err := NewSigner("", priv, "A", nil); err == nil {
		t.Fatal("expected error for empty key id")
	}
	if _, err := NewSigner("key-1", priv[:10], "A", nil); err == nil {
		t.Fatal("expected error for truncated key")
	}
}

func TestLoadSignerFromEnv(t *testing.T) {
	t.Setenv("WARDROOM_SERVICE_KEY_ID", "")
	t.Setenv("WARDROOM_SERVICE_KEY", "")
	t.Setenv("WARDROOM_NODE", "")

	if _, err := LoadSignerFromEnv(nil); err == nil {
		t.Fatal("expected error when env vars are missing")
	}

	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}

	t.Setenv("WARDROOM_SERVICE_KEY_ID", "key-1")
	t.Setenv("WARDROOM_SERVICE_KEY", base64.RawStdEncoding.EncodeToString(priv))
	t.Setenv("WARDROOM_NODE", "B")

	signer, err := LoadSignerFromEnv(nil)
	if err != nil {
		t.Fatalf("load signer: %v", err)
	}
	if signer.keyID != "key-1" || signer.node != "B" {
		t.Fatalf("signer = %+v, want key-1/B", signer)
	}
}

func TestLoadSignerFromEnvAcceptsSeed(t *testing.T) {
	t.Setenv("WARDROOM_SERVICE_KEY_ID", "key-1")
	t.Setenv("WARDROOM_SERVICE_KEY", base64.StdEncoding.EncodeToString(make([]byte, ed25519.SeedSize)))
	t.Setenv("WARDROOM_NODE", "")

	if _, err := LoadSignerFromEnv(nil); err != nil {
		t.Fatalf("load signer from seed: %v", err)
	}
}

func TestLoadSignerFromEnvRejectsBadKeyLength(t *testing.T) {
	t.Setenv("WARDROOM_SERVICE_KEY_ID", "key-1")
	t.Setenv("WARDROOM_SERVICE_KEY", base64.StdEncoding.EncodeToString([]byte("short")))

	if _, err := LoadSignerFromEnv(nil); err == nil {
		t.Fatal("expected error for bad key length")
	}
}

func TestWithUserIDAppendsMetadataWhenPresent(t *testing.T) {
	ctx := WithUserID(context.Background(), "user-123")
	md, ok := metadata.FromOutgoingContext(ctx)
	if !ok {
		t.Fatalf("expected outgoing metadata context")
	}
	values := md.Get(UserIDHeader)
	if len(values) != 1 || values[0] != "user-123" {
		t.Fatalf("metadata %s = %v, want [user-123]", UserIDHeader, values)
	}
}

func TestWithUserIDNoopWhenEmpty(t *testing.T) {
	ctx := WithUserID(context.Background(), "   ")
	md, ok := metadata.FromOutgoingContext(ctx)
	if ok && len(md.Get(UserIDHeader)) > 0 {
		t.Fatalf("expected no %s metadata, got %v", UserIDHeader, md.Get(UserIDHeader))
	}
}

func TestUnaryClientInterceptorAttachesToken(t *testing.T) {
	signer, _ := newTestSigner(t)

	var captured metadata.MD
	invoker := func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, opts ...grpc.CallOption) error {
		captured, _ = metadata.FromOutgoingContext(ctx)
		return nil
	}

	err := signer.UnaryClientInterceptor()(context.Background(), "/wardroom.core.v1.AuthService/GenerateToken", nil, nil, nil, invoker)
	if err != nil {
		t.Fatalf("interceptor: %v", err)
	}

	values := captured.Get(AuthorizationHeader)
	if len(values) != 1 || !strings.HasPrefix(values[0], "Bearer ") {
		t.Fatalf("authorization metadata = %v, want single Bearer value", values)
	}
}
