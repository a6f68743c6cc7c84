// Package main provides a one-shot utility for access token key generation.
//
// It emits the asymmetric keypair used by funding API bearer token checks and
// can mint a ready-to-use token for a subject.
package main

import (
	"flag"
	"os"
	"time"

	"github.com/louisbranch/fundraising.space/internal/platform/config"
	"github.com/louisbranch/fundraising.space/internal/tools/fundinggrant"
)

func main() {
	subject := flag.String("subject", "", "Also mint an access token for this account identity")
	issuer := flag.String("issuer", "", "Token issuer (defaults to fundraising.space)")
	audience := flag.String("audience", "", "Token audience (defaults to fundraising.space)")
	ttl := flag.Duration("ttl", 0, "Minted token lifetime (defaults to 24h)")
	flag.Parse()

	opts := fundinggrant.Options{
		Subject:  *subject,
		Issuer:   *issuer,
		Audience: *audience,
		TTL:      *ttl,
		Now:      time.Now,
	}
	if err := fundinggrant.Run(os.Stdout, nil, opts); err != nil {
		config.Exitf("generate access token key: %v", err)
	}
}
