package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/louisbranch/fundraising.space/internal/funding/domain/campaign"
	"github.com/louisbranch/fundraising.space/internal/funding/domain/event"
	"github.com/louisbranch/fundraising.space/internal/funding/storage"
)

var testNow = time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

func createTestCampaign(t *testing.T, store *Store) campaign.Campaign {
	t.Helper()
	c, err := campaign.New(campaign.CreateInput{Creator: "acct:alice", Goal: 100, DurationDays: 1}, testNow)
	if err != nil {
		t.Fatalf("new campaign: %v", err)
	}
	evt, err := event.New(0, event.TypeCampaignCreated, c.Creator, testNow, event.CampaignCreatedPayload{
		Creator: c.Creator, Goal: c.Goal, Deadline: c.Deadline,
	})
	if err != nil {
		t.Fatalf("new event: %v", err)
	}
	stored, _, err := store.CreateCampaign(context.Background(), c, evt)
	if err != nil {
		t.Fatalf("create campaign: %v", err)
	}
	return stored
}

func contributionEvent(t *testing.T, id uint64, contributor string, amount int64) event.Event {
	t.Helper()
	evt, err := event.New(id, event.TypeContributionReceived, contributor, testNow, event.ContributionReceivedPayload{
		Contributor: contributor, Amount: amount,
	})
	if err != nil {
		t.Fatalf("new contribution event: %v", err)
	}
	return evt
}

func refundEvent(t *testing.T, id uint64, contributor string) event.Event {
	t.Helper()
	evt, err := event.New(id, event.TypeContributionRefunded, contributor, testNow, event.ContributionRefundedPayload{
		Contributor: contributor,
	})
	if err != nil {
		t.Fatalf("new refund event: %v", err)
	}
	return evt
}

func TestCreateCampaignAssignsSequentialIDs(t *testing.T) {
	t.Parallel()

	store := NewStore()
	first := createTestCampaign(t, store)
	second := createTestCampaign(t, store)
	if first.ID != 0 {
		t.Fatalf("first id = %d, want 0", first.ID)
	}
	if second.ID != 1 {
		t.Fatalf("second id = %d, want 1", second.ID)
	}
}

func TestGetCampaignUnknownID(t *testing.T) {
	t.Parallel()

	store := NewStore()
	if _, err := store.GetCampaign(context.Background(), 42); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("err = %v, want %v", err, storage.ErrNotFound)
	}
}

func TestAddContributionAccumulates(t *testing.T) {
	t.Parallel()

	store := NewStore()
	c := createTestCampaign(t, store)
	ctx := context.Background()

	if _, err := store.AddContribution(ctx, c.ID, "acct:bob", 40, contributionEvent(t, c.ID, "acct:bob", 40)); err != nil {
		t.Fatalf("first contribution: %v", err)
	}
	if _, err := store.AddContribution(ctx, c.ID, "acct:bob", 20, contributionEvent(t, c.ID, "acct:bob", 20)); err != nil {
		t.Fatalf("second contribution: %v", err)
	}

	amount, err := store.GetContribution(ctx, c.ID, "acct:bob")
	if err != nil {
		t.Fatalf("get contribution: %v", err)
	}
	if amount != 60 {
		t.Fatalf("contribution = %d, want 60", amount)
	}

	got, err := store.GetCampaign(ctx, c.ID)
	if err != nil {
		t.Fatalf("get campaign: %v", err)
	}
	if got.TotalRaised != 60 {
		t.Fatalf("total raised = %d, want 60", got.TotalRaised)
	}
}

func TestTakeContributionZeroesEntryOnce(t *testing.T) {
	t.Parallel()

	store := NewStore()
	c := createTestCampaign(t, store)
	ctx := context.Background()

	if _, err := store.AddContribution(ctx, c.ID, "acct:bob", 60, contributionEvent(t, c.ID, "acct:bob", 60)); err != nil {
		t.Fatalf("contribute: %v", err)
	}

	amount, _, err := store.TakeContribution(ctx, c.ID, "acct:bob", refundEvent(t, c.ID, "acct:bob"))
	if err != nil {
		t.Fatalf("take contribution: %v", err)
	}
	if amount != 60 {
		t.Fatalf("taken = %d, want 60", amount)
	}

	remaining, err := store.GetContribution(ctx, c.ID, "acct:bob")
	if err != nil {
		t.Fatalf("get contribution: %v", err)
	}
	if remaining != 0 {
		t.Fatalf("remaining = %d, want 0", remaining)
	}

	got, err := store.GetCampaign(ctx, c.ID)
	if err != nil {
		t.Fatalf("get campaign: %v", err)
	}
	if got.TotalRaised != 0 {
		t.Fatalf("total raised = %d, want 0", got.TotalRaised)
	}

	if _, _, err := store.TakeContribution(ctx, c.ID, "acct:bob", refundEvent(t, c.ID, "acct:bob")); err == nil {
		t.Fatal("expected error on second take")
	}
}

func TestGetContributionUnknownContributorIsZero(t *testing.T) {
	t.Parallel()

	store := NewStore()
	c := createTestCampaign(t, store)
	amount, err := store.GetContribution(context.Background(), c.ID, "acct:nobody")
	if err != nil {
		t.Fatalf("get contribution: %v", err)
	}
	if amount != 0 {
		t.Fatalf("amount = %d, want 0", amount)
	}
}

func TestEventsAreSequencedPerCampaign(t *testing.T) {
	t.Parallel()

	store := NewStore()
	first := createTestCampaign(t, store)
	second := createTestCampaign(t, store)
	ctx := context.Background()

	if _, err := store.AddContribution(ctx, first.ID, "acct:bob", 40, contributionEvent(t, first.ID, "acct:bob", 40)); err != nil {
		t.Fatalf("contribute: %v", err)
	}

	journal, err := store.ListEvents(ctx, first.ID)
	if err != nil {
		t.Fatalf("list events: %v", err)
	}
	if len(journal) != 2 {
		t.Fatalf("events = %d, want 2", len(journal))
	}
	for i, evt := range journal {
		if evt.Seq != uint64(i)+1 {
			t.Fatalf("seq[%d] = %d, want %d", i, evt.Seq, i+1)
		}
		if evt.Hash == "" {
			t.Fatalf("event %d missing hash", i)
		}
	}

	other, err := store.ListEvents(ctx, second.ID)
	if err != nil {
		t.Fatalf("list events: %v", err)
	}
	if len(other) != 1 || other[0].Seq != 1 {
		t.Fatalf("second campaign journal = %+v, want one event at seq 1", other)
	}
}

func TestPayoutLedgerRoundTrip(t *testing.T) {
	t.Parallel()

	store := NewStore()
	c := createTestCampaign(t, store)
	ctx := context.Background()

	rec := storage.PayoutRecord{
		CampaignID: c.ID,
		Recipient:  "acct:alice",
		Amount:     110,
		Kind:       storage.PayoutKindRelease,
		CreatedAt:  testNow,
	}
	if err := store.RecordPayout(ctx, rec); err != nil {
		t.Fatalf("record payout: %v", err)
	}
	payouts, err := store.ListPayouts(ctx, c.ID)
	if err != nil {
		t.Fatalf("list payouts: %v", err)
	}
	if len(payouts) != 1 {
		t.Fatalf("payouts = %d, want 1", len(payouts))
	}
	if payouts[0].Amount != 110 || payouts[0].Kind != storage.PayoutKindRelease {
		t.Fatalf("payout = %+v", payouts[0])
	}

	if err := store.RecordPayout(ctx, storage.PayoutRecord{CampaignID: 99}); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("unknown campaign err = %v, want %v", err, storage.ErrNotFound)
	}
}
