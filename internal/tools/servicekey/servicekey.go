// Package servicekey mints the ed25519 signing key the console uses for
// service-to-service tokens.
package servicekey

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
)

// Config holds configuration for service key generation.
type Config struct {
	KeyID string
}

// ParseConfig parses flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	cfg := Config{KeyID: "console-1"}
	fs.StringVar(&cfg.KeyID, "key-id", cfg.KeyID, "key id stamped into token headers")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run generates a fresh seed and writes the console's env lines to out.
// The verification key is printed as a comment so the seed alone stays
// secret when the output lands in an env file.
func Run(cfg Config, out io.Writer, reader io.Reader) error {
	if strings.TrimSpace(cfg.KeyID) == "" {
		return errors.New("key id is required")
	}
	if out == nil {
		return errors.New("output is required")
	}
	if reader == nil {
		reader = rand.Reader
	}

	seed := make([]byte, ed25519.SeedSize)
	if _, err := io.ReadFull(reader, seed); err != nil {
		return fmt.Errorf("generate seed: %w", err)
	}
	key := ed25519.NewKeyFromSeed(seed)
	public := key.Public().(ed25519.PublicKey)

	_, err := fmt.Fprintf(out, "WARDROOM_SERVICE_KEY_ID=%s\nWARDROOM_SERVICE_KEY=%s\n# verification key for the core daemon: %s\n",
		cfg.KeyID,
		base64.StdEncoding.EncodeToString(seed),
		base64.StdEncoding.EncodeToString(public))
	return err
}
