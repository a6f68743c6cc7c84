// Package fundinggrant generates the access token keypair used by the funding
// API, optionally minting a token for a subject.
package fundinggrant

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/louisbranch/fundraising.space/internal/funding/auth"
)

// Options controls key and token generation.
type Options struct {
	// Subject, when set, also mints an access token for this identity.
	Subject string
	// Issuer and Audience are embedded in the minted token. Both default to
	// "fundraising.space" when empty.
	Issuer   string
	Audience string
	// TTL bounds the minted token's lifetime. Defaults to 24h.
	TTL time.Duration
	// Now pins the mint time. Defaults to time.Now.
	Now func() time.Time
}

// Run generates an access token key pair and writes exports.
func Run(out io.Writer, reader io.Reader, opts Options) error {
	if out == nil {
		return errors.New("output is required")
	}
	if reader == nil {
		reader = rand.Reader
	}
	publicKey, privateKey, err := ed25519.GenerateKey(reader)
	if err != nil {
		return fmt.Errorf("generate access token key: %w", err)
	}
	if _, err := fmt.Fprintf(out, "export FUNDRAISING_SPACE_ACCESS_TOKEN_PRIVATE_KEY=%s\n", base64.RawStdEncoding.EncodeToString(privateKey)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(out, "export FUNDRAISING_SPACE_ACCESS_TOKEN_PUBLIC_KEY=%s\n", base64.RawStdEncoding.EncodeToString(publicKey)); err != nil {
		return err
	}

	subject := strings.TrimSpace(opts.Subject)
	if subject == "" {
		return nil
	}
	issuer := opts.Issuer
	if issuer == "" {
		issuer = "fundraising.space"
	}
	audience := opts.Audience
	if audience == "" {
		audience = "fundraising.space"
	}
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	token, err := auth.MintAccessToken(privateKey, issuer, audience, subject, ttl, now())
	if err != nil {
		return fmt.Errorf("mint access token: %w", err)
	}
	if _, err := fmt.Fprintf(out, "export FUNDRAISING_SPACE_ACCESS_TOKEN=%s\n", token); err != nil {
		return err
	}
	return nil
}
