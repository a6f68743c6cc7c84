// Package service orchestrates the campaign lifecycle: domain checks run
// against stored state, mutations commit with their journal events, and fund
// movements go through the Payer port strictly after the mutation commits.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/louisbranch/fundraising.space/internal/funding/domain/campaign"
	"github.com/louisbranch/fundraising.space/internal/funding/domain/event"
	"github.com/louisbranch/fundraising.space/internal/funding/storage"
	apperrors "github.com/louisbranch/fundraising.space/internal/platform/errors"
)

// Engine executes campaign operations against a store and a payer.
type Engine struct {
	store storage.Store
	payer Payer
}

// NewEngine builds an Engine. Both dependencies are required.
func NewEngine(store storage.Store, payer Payer) (*Engine, error) {
	if store == nil {
		return nil, errors.New("store is required")
	}
	if payer == nil {
		return nil, errors.New("payer is required")
	}
	return &Engine{store: store, payer: payer}, nil
}

// CampaignDetails bundles a campaign with its live ledger entries and
// completed payouts for read endpoints.
type CampaignDetails struct {
	Campaign      campaign.Campaign
	Contributions []storage.ContributionRecord
	Payouts       []storage.PayoutRecord
}

// CreateCampaign validates the input and persists a new open campaign with
// its creation event.
func (e *Engine) CreateCampaign(ctx context.Context, input campaign.CreateInput, now time.Time) (campaign.Campaign, error) {
	c, err := campaign.New(input, now)
	if err != nil {
		return campaign.Campaign{}, err
	}
	evt, err := event.New(0, event.TypeCampaignCreated, c.Creator, now, event.CampaignCreatedPayload{
		Creator:  c.Creator,
		Goal:     c.Goal,
		Deadline: c.Deadline,
	})
	if err != nil {
		return campaign.Campaign{}, fmt.Errorf("build creation event: %w", err)
	}
	stored, _, err := e.store.CreateCampaign(ctx, c, evt)
	if err != nil {
		return campaign.Campaign{}, fmt.Errorf("create campaign: %w", err)
	}
	return stored, nil
}

// Contribute adds amount to the contributor's ledger entry on an open
// campaign. The amount check runs before any state check so an invalid amount
// reports the same way against open and finalized campaigns. Returns the
// contributor's updated running total.
func (e *Engine) Contribute(ctx context.Context, id uint64, contributor string, amount int64, now time.Time) (int64, error) {
	c, err := e.store.GetCampaign(ctx, id)
	if err != nil {
		return 0, err
	}
	if err := campaign.CheckContribution(c, contributor, amount, now); err != nil {
		return 0, err
	}
	evt, err := event.New(id, event.TypeContributionReceived, contributor, now, event.ContributionReceivedPayload{
		Contributor: contributor,
		Amount:      amount,
	})
	if err != nil {
		return 0, fmt.Errorf("build contribution event: %w", err)
	}
	if _, err := e.store.AddContribution(ctx, id, contributor, amount, evt); err != nil {
		return 0, fmt.Errorf("add contribution: %w", err)
	}
	total, err := e.store.GetContribution(ctx, id, contributor)
	if err != nil {
		return 0, fmt.Errorf("read contribution: %w", err)
	}
	return total, nil
}

// Finalize transitions the campaign to its terminal status once the deadline
// has been reached. Only the creator may call it. On success the full raised
// amount is released to the creator; the status flip and its event commit
// before the payer runs, so a payer that re-enters the engine observes the
// finalized state. If the payment fails the flip stands and a PAYOUT_FAILED
// error is returned.
func (e *Engine) Finalize(ctx context.Context, id uint64, caller string, now time.Time) (campaign.Campaign, error) {
	c, err := e.store.GetCampaign(ctx, id)
	if err != nil {
		return campaign.Campaign{}, err
	}
	status, err := campaign.DecideFinalize(c, caller, now)
	if err != nil {
		return campaign.Campaign{}, err
	}

	evt, err := event.New(id, event.TypeCampaignFinalized, caller, now, event.CampaignFinalizedPayload{
		Successful:  status == campaign.StatusFinalizedSuccessful,
		TotalRaised: c.TotalRaised,
	})
	if err != nil {
		return campaign.Campaign{}, fmt.Errorf("build finalization event: %w", err)
	}
	if _, err := e.store.SetCampaignStatus(ctx, id, status, now, evt); err != nil {
		return campaign.Campaign{}, fmt.Errorf("set campaign status: %w", err)
	}

	if status == campaign.StatusFinalizedSuccessful && c.TotalRaised > 0 {
		if err := e.payer.Pay(ctx, id, c.Creator, c.TotalRaised, storage.PayoutKindRelease); err != nil {
			return campaign.Campaign{}, apperrors.Wrap(apperrors.CodePayoutFailed, "release payout failed", err)
		}
	}

	finalized, err := e.store.GetCampaign(ctx, id)
	if err != nil {
		return campaign.Campaign{}, err
	}
	return finalized, nil
}

// Withdraw refunds the caller's full contribution from a failed campaign.
// The ledger entry is zeroed and the refund event committed before the payer
// runs; a second call finds nothing to withdraw. If the payment fails the
// zeroed entry stands and a PAYOUT_FAILED error is returned.
func (e *Engine) Withdraw(ctx context.Context, id uint64, contributor string, now time.Time) (int64, error) {
	c, err := e.store.GetCampaign(ctx, id)
	if err != nil {
		return 0, err
	}
	if err := campaign.CheckWithdraw(c); err != nil {
		return 0, err
	}
	entry, err := e.store.GetContribution(ctx, id, contributor)
	if err != nil {
		return 0, err
	}
	if entry <= 0 {
		return 0, campaign.ErrNothingToWithdraw
	}

	evt, err := event.New(id, event.TypeContributionRefunded, contributor, now, event.ContributionRefundedPayload{
		Contributor: contributor,
		Amount:      entry,
	})
	if err != nil {
		return 0, fmt.Errorf("build refund event: %w", err)
	}
	amount, _, err := e.store.TakeContribution(ctx, id, contributor, evt)
	if err != nil {
		return 0, fmt.Errorf("take contribution: %w", err)
	}

	if err := e.payer.Pay(ctx, id, contributor, amount, storage.PayoutKindRefund); err != nil {
		return 0, apperrors.Wrap(apperrors.CodePayoutFailed, "refund payout failed", err)
	}
	return amount, nil
}

// GetCampaignDetails returns the campaign with its live ledger entries and
// payout history.
func (e *Engine) GetCampaignDetails(ctx context.Context, id uint64) (CampaignDetails, error) {
	c, err := e.store.GetCampaign(ctx, id)
	if err != nil {
		return CampaignDetails{}, err
	}
	contributions, err := e.store.ListContributions(ctx, id)
	if err != nil {
		return CampaignDetails{}, fmt.Errorf("list contributions: %w", err)
	}
	payouts, err := e.store.ListPayouts(ctx, id)
	if err != nil {
		return CampaignDetails{}, fmt.Errorf("list payouts: %w", err)
	}
	return CampaignDetails{Campaign: c, Contributions: contributions, Payouts: payouts}, nil
}

// GetContribution returns the contributor's live ledger entry, 0 when absent.
func (e *Engine) GetContribution(ctx context.Context, id uint64, contributor string) (int64, error) {
	return e.store.GetContribution(ctx, id, contributor)
}

// ListEvents returns the campaign's journal in sequence order.
func (e *Engine) ListEvents(ctx context.Context, id uint64) ([]event.Event, error) {
	return e.store.ListEvents(ctx, id)
}
