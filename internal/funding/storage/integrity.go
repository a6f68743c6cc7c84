package storage

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/louisbranch/fundraising.space/internal/funding/domain/event"
)

// EventHash computes the content-addressed identity stores assign on append:
// SHA-256 over the sequenced event fields, truncated to 128 bits.
func EventHash(evt event.Event) string {
	h := sha256.New()
	fmt.Fprintf(h, "%d|%d|%d|%s|%s|", evt.CampaignID, evt.Seq, evt.Timestamp.UTC().UnixMilli(), evt.Type, evt.Actor)
	h.Write(evt.PayloadJSON)
	sum := h.Sum(nil)
	return hex.EncodeToString(sum[:16])
}
