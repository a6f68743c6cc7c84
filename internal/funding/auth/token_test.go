package auth

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/base64"
	"strings"
	"testing"
	"time"
)

var tokenNow = time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

func generateTestKeys(t *testing.T) (ed25519.PublicKey, ed25519.PrivateKey) {
	t.Helper()
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	return pub, priv
}

func TestLoadVerifierConfigFromEnv(t *testing.T) {
	t.Setenv("FUNDRAISING_SPACE_ACCESS_TOKEN_ISSUER", "")
	t.Setenv("FUNDRAISING_SPACE_ACCESS_TOKEN_AUDIENCE", "")
	t.Setenv("FUNDRAISING_SPACE_ACCESS_TOKEN_PUBLIC_KEY", "")

	if _, err := LoadVerifierConfigFromEnv(nil); err == nil {
		t.Fatal("expected error when env vars are missing")
	}

	pub, _ := generateTestKeys(t)
	t.Setenv("FUNDRAISING_SPACE_ACCESS_TOKEN_ISSUER", "issuer")
	t.Setenv("FUNDRAISING_SPACE_ACCESS_TOKEN_AUDIENCE", "funding")
	t.Setenv("FUNDRAISING_SPACE_ACCESS_TOKEN_PUBLIC_KEY", base64.RawStdEncoding.EncodeToString(pub))

	cfg, err := LoadVerifierConfigFromEnv(nil)
	if err != nil {
		t.Fatalf("load verifier config: %v", err)
	}
	if cfg.Issuer != "issuer" || cfg.Audience != "funding" {
		t.Fatal("expected issuer and audience to be loaded")
	}
	if len(cfg.Key) != ed25519.PublicKeySize {
		t.Fatalf("expected public key size %d", ed25519.PublicKeySize)
	}
}

func TestVerifyAccessTokenRoundTrip(t *testing.T) {
	pub, priv := generateTestKeys(t)

	token, err := MintAccessToken(priv, "issuer", "funding", "acct:alice", time.Hour, tokenNow)
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}

	cfg := VerifierConfig{Issuer: "issuer", Audience: "funding", Key: pub, Now: func() time.Time { return tokenNow }}
	claims, err := VerifyAccessToken(token, cfg)
	if err != nil {
		t.Fatalf("verify token: %v", err)
	}
	if claims.Subject != "acct:alice" {
		t.Fatalf("subject = %q, want acct:alice", claims.Subject)
	}
	if !claims.ExpiresAt.Equal(tokenNow.Add(time.Hour)) {
		t.Fatalf("expires at = %v, want %v", claims.ExpiresAt, tokenNow.Add(time.Hour))
	}
}

func TestVerifyAccessTokenExpired(t *testing.T) {
	pub, priv := generateTestKeys(t)

	token, err := MintAccessToken(priv, "issuer", "funding", "acct:alice", time.Hour, tokenNow.Add(-2*time.Hour))
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}

	cfg := VerifierConfig{Issuer: "issuer", Audience: "funding", Key: pub, Now: func() time.Time { return tokenNow }}
	if _, err := VerifyAccessToken(token, cfg); err == nil || !strings.Contains(err.Error(), "expired") {
		t.Fatalf("expected expired error, got %v", err)
	}
}

func TestVerifyAccessTokenWrongKey(t *testing.T) {
	_, priv := generateTestKeys(t)
	otherPub, _ := generateTestKeys(t)

	token, err := MintAccessToken(priv, "issuer", "funding", "acct:alice", time.Hour, tokenNow)
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}

	cfg := VerifierConfig{Issuer: "issuer", Audience: "funding", Key: otherPub, Now: func() time.Time { return tokenNow }}
	if _, err := VerifyAccessToken(token, cfg); err == nil || !strings.Contains(err.Error(), "signature") {
		t.Fatalf("expected signature error, got %v", err)
	}
}

func TestVerifyAccessTokenMismatch(t *testing.T) {
	pub, priv := generateTestKeys(t)
	token, err := MintAccessToken(priv, "issuer", "funding", "acct:alice", time.Hour, tokenNow)
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}

	tests := []struct {
		name string
		cfg  VerifierConfig
	}{
		{"issuer mismatch", VerifierConfig{Issuer: "other", Audience: "funding", Key: pub}},
		{"audience mismatch", VerifierConfig{Issuer: "issuer", Audience: "other", Key: pub}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := tc.cfg
			cfg.Now = func() time.Time { return tokenNow }
			if _, err := VerifyAccessToken(token, cfg); err == nil || !strings.Contains(err.Error(), "mismatch") {
				t.Fatalf("expected mismatch error, got %v", err)
			}
		})
	}
}

func TestVerifyAccessTokenEmpty(t *testing.T) {
	pub, _ := generateTestKeys(t)
	cfg := VerifierConfig{Issuer: "issuer", Audience: "funding", Key: pub, Now: func() time.Time { return tokenNow }}
	if _, err := VerifyAccessToken("  ", cfg); err == nil {
		t.Fatal("expected error for empty token")
	}
}
