// Package storage defines persistence contracts for funding ledger state.
//
// The store is deliberately free of business logic: it guarantees atomic
// per-campaign mutations (each mutating call commits the ledger change and
// its journal event in one transaction) and leaves every precondition to the
// lifecycle engine.
package storage

import (
	"context"
	"time"

	"github.com/louisbranch/fundraising.space/internal/funding/domain/campaign"
	"github.com/louisbranch/fundraising.space/internal/funding/domain/event"
	apperrors "github.com/louisbranch/fundraising.space/internal/platform/errors"
)

// ErrNotFound indicates a requested campaign record is missing.
var ErrNotFound = apperrors.New(apperrors.CodeNotFound, "campaign not found")

// PayoutKind distinguishes the two ways value leaves the ledger.
type PayoutKind string

const (
	// PayoutKindRelease is the single creator payout after a successful finalize.
	PayoutKindRelease PayoutKind = "release"
	// PayoutKindRefund is an individual contributor refund after a failed finalize.
	PayoutKindRefund PayoutKind = "refund"
)

// ContributionRecord is one live ledger entry for a campaign.
type ContributionRecord struct {
	CampaignID  uint64
	Contributor string
	Amount      int64
	UpdatedAt   time.Time
}

// PayoutRecord is one completed outbound transfer.
type PayoutRecord struct {
	CampaignID uint64
	Recipient  string
	Amount     int64
	Kind       PayoutKind
	CreatedAt  time.Time
}

// Store persists campaign records, per-contributor ledger entries, the event
// journal, and the payout ledger.
type Store interface {
	// CreateCampaign allocates the next sequential campaign id (starting at
	// 0), persists the record, and appends the creation event atomically.
	// The stored campaign and the event (with seq and hash set) are returned.
	CreateCampaign(ctx context.Context, c campaign.Campaign, evt event.Event) (campaign.Campaign, event.Event, error)

	// GetCampaign returns the campaign or ErrNotFound.
	GetCampaign(ctx context.Context, id uint64) (campaign.Campaign, error)

	// AddContribution upserts the contributor's ledger entry and increments
	// the campaign's total raised, appending the contribution event in the
	// same transaction.
	AddContribution(ctx context.Context, id uint64, contributor string, amount int64, evt event.Event) (event.Event, error)

	// SetCampaignStatus records the terminal status transition and appends
	// the finalization event in the same transaction.
	SetCampaignStatus(ctx context.Context, id uint64, status campaign.Status, now time.Time, evt event.Event) (event.Event, error)

	// TakeContribution atomically zeroes the contributor's ledger entry,
	// decrements the campaign's total raised by the prior value, and appends
	// the refund event. It returns the prior value. Callers must have
	// verified a positive entry exists; taking a zero entry is an error.
	TakeContribution(ctx context.Context, id uint64, contributor string, evt event.Event) (int64, event.Event, error)

	// GetContribution returns the contributor's live ledger entry, 0 when
	// absent. Unknown campaigns report ErrNotFound.
	GetContribution(ctx context.Context, id uint64, contributor string) (int64, error)

	// ListContributions returns the campaign's live ledger entries.
	ListContributions(ctx context.Context, id uint64) ([]ContributionRecord, error)

	// ListEvents returns the campaign's journal in sequence order.
	ListEvents(ctx context.Context, id uint64) ([]event.Event, error)

	// RecordPayout appends one completed outbound transfer.
	RecordPayout(ctx context.Context, rec PayoutRecord) error

	// ListPayouts returns the campaign's completed transfers in record order.
	ListPayouts(ctx context.Context, id uint64) ([]PayoutRecord, error)
}
