package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/louisbranch/fundraising.space/internal/funding/storage"
)

// Payer moves value out of the engine's custody. Implementations must be safe
// to call after the ledger mutation has committed: the engine never rolls a
// transition back when a payment fails.
type Payer interface {
	// Pay transfers amount to recipient on behalf of the campaign. Kind
	// distinguishes the creator release from contributor refunds.
	Pay(ctx context.Context, campaignID uint64, recipient string, amount int64, kind storage.PayoutKind) error
}

// LedgerPayer records completed transfers in the store's payout ledger. It is
// the default Payer: custody stays on-ledger and the payout table doubles as
// the audit trail for conservation checks.
type LedgerPayer struct {
	store storage.Store
	now   func() time.Time
}

// NewLedgerPayer builds a LedgerPayer over the given store.
func NewLedgerPayer(store storage.Store) (*LedgerPayer, error) {
	if store == nil {
		return nil, errors.New("store is required")
	}
	return &LedgerPayer{store: store, now: time.Now}, nil
}

// Pay appends the transfer to the payout ledger.
func (p *LedgerPayer) Pay(ctx context.Context, campaignID uint64, recipient string, amount int64, kind storage.PayoutKind) error {
	if amount <= 0 {
		return fmt.Errorf("payout amount must be positive, got %d", amount)
	}
	rec := storage.PayoutRecord{
		CampaignID: campaignID,
		Recipient:  recipient,
		Amount:     amount,
		Kind:       kind,
		CreatedAt:  p.now().UTC(),
	}
	if err := p.store.RecordPayout(ctx, rec); err != nil {
		return fmt.Errorf("record payout: %w", err)
	}
	return nil
}

var _ Payer = (*LedgerPayer)(nil)
