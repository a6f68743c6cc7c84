// Package memory provides an in-memory funding store for tests and
// ephemeral runs.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/louisbranch/fundraising.space/internal/funding/domain/campaign"
	"github.com/louisbranch/fundraising.space/internal/funding/domain/event"
	"github.com/louisbranch/fundraising.space/internal/funding/storage"
)

// Store keeps all ledger state in process memory. Mutating operations on a
// campaign are serialized by a single mutex, matching the store contract's
// per-campaign atomicity guarantee.
type Store struct {
	mu            sync.Mutex
	nextID        uint64
	campaigns     map[uint64]campaign.Campaign
	contributions map[uint64]map[string]storage.ContributionRecord
	events        map[uint64][]event.Event
	payouts       map[uint64][]storage.PayoutRecord
}

// NewStore returns an empty in-memory store.
func NewStore() *Store {
	return &Store{
		campaigns:     make(map[uint64]campaign.Campaign),
		contributions: make(map[uint64]map[string]storage.ContributionRecord),
		events:        make(map[uint64][]event.Event),
		payouts:       make(map[uint64][]storage.PayoutRecord),
	}
}

func (s *Store) appendEventLocked(evt event.Event) (event.Event, error) {
	if err := evt.Validate(); err != nil {
		return event.Event{}, err
	}
	evt.Seq = uint64(len(s.events[evt.CampaignID])) + 1
	evt.Hash = storage.EventHash(evt)
	s.events[evt.CampaignID] = append(s.events[evt.CampaignID], evt)
	return evt, nil
}

// CreateCampaign allocates the next sequential id and stores the record with
// its creation event.
func (s *Store) CreateCampaign(ctx context.Context, c campaign.Campaign, evt event.Event) (campaign.Campaign, event.Event, error) {
	if err := ctx.Err(); err != nil {
		return campaign.Campaign{}, event.Event{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	c.ID = s.nextID
	s.nextID++
	s.campaigns[c.ID] = c

	evt.CampaignID = c.ID
	stored, err := s.appendEventLocked(evt)
	if err != nil {
		delete(s.campaigns, c.ID)
		s.nextID--
		return campaign.Campaign{}, event.Event{}, err
	}
	return c, stored, nil
}

// GetCampaign returns the campaign or storage.ErrNotFound.
func (s *Store) GetCampaign(ctx context.Context, id uint64) (campaign.Campaign, error) {
	if err := ctx.Err(); err != nil {
		return campaign.Campaign{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.campaigns[id]
	if !ok {
		return campaign.Campaign{}, storage.ErrNotFound
	}
	return c, nil
}

// AddContribution upserts the ledger entry and bumps the campaign total.
func (s *Store) AddContribution(ctx context.Context, id uint64, contributor string, amount int64, evt event.Event) (event.Event, error) {
	if err := ctx.Err(); err != nil {
		return event.Event{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.campaigns[id]
	if !ok {
		return event.Event{}, storage.ErrNotFound
	}

	entries := s.contributions[id]
	if entries == nil {
		entries = make(map[string]storage.ContributionRecord)
		s.contributions[id] = entries
	}
	entry := entries[contributor]
	entry.CampaignID = id
	entry.Contributor = contributor
	entry.Amount += amount
	entry.UpdatedAt = evt.Timestamp
	entries[contributor] = entry

	c.TotalRaised += amount
	c.UpdatedAt = evt.Timestamp
	s.campaigns[id] = c

	return s.appendEventLocked(evt)
}

// SetCampaignStatus records the status transition.
func (s *Store) SetCampaignStatus(ctx context.Context, id uint64, status campaign.Status, now time.Time, evt event.Event) (event.Event, error) {
	if err := ctx.Err(); err != nil {
		return event.Event{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.campaigns[id]
	if !ok {
		return event.Event{}, storage.ErrNotFound
	}
	c.Status = status
	c.UpdatedAt = now.UTC()
	s.campaigns[id] = c

	return s.appendEventLocked(evt)
}

// TakeContribution zeroes the entry, decrements the total, and returns the
// prior value.
func (s *Store) TakeContribution(ctx context.Context, id uint64, contributor string, evt event.Event) (int64, event.Event, error) {
	if err := ctx.Err(); err != nil {
		return 0, event.Event{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.campaigns[id]
	if !ok {
		return 0, event.Event{}, storage.ErrNotFound
	}
	entry := s.contributions[id][contributor]
	if entry.Amount <= 0 {
		return 0, event.Event{}, fmt.Errorf("take contribution: no balance for %s on campaign %d", contributor, id)
	}
	amount := entry.Amount
	delete(s.contributions[id], contributor)

	c.TotalRaised -= amount
	c.UpdatedAt = evt.Timestamp
	s.campaigns[id] = c

	stored, err := s.appendEventLocked(evt)
	if err != nil {
		return 0, event.Event{}, err
	}
	return amount, stored, nil
}

// GetContribution returns the live entry, 0 when absent.
func (s *Store) GetContribution(ctx context.Context, id uint64, contributor string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.campaigns[id]; !ok {
		return 0, storage.ErrNotFound
	}
	return s.contributions[id][contributor].Amount, nil
}

// ListContributions returns the campaign's live entries sorted by contributor.
func (s *Store) ListContributions(ctx context.Context, id uint64) ([]storage.ContributionRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.campaigns[id]; !ok {
		return nil, storage.ErrNotFound
	}
	records := make([]storage.ContributionRecord, 0, len(s.contributions[id]))
	for _, entry := range s.contributions[id] {
		records = append(records, entry)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].Contributor < records[j].Contributor
	})
	return records, nil
}

// ListEvents returns the journal in sequence order.
func (s *Store) ListEvents(ctx context.Context, id uint64) ([]event.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.campaigns[id]; !ok {
		return nil, storage.ErrNotFound
	}
	journal := make([]event.Event, len(s.events[id]))
	copy(journal, s.events[id])
	return journal, nil
}

// RecordPayout appends one completed transfer.
func (s *Store) RecordPayout(ctx context.Context, rec storage.PayoutRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.campaigns[rec.CampaignID]; !ok {
		return storage.ErrNotFound
	}
	s.payouts[rec.CampaignID] = append(s.payouts[rec.CampaignID], rec)
	return nil
}

// ListPayouts returns the campaign's transfers in record order.
func (s *Store) ListPayouts(ctx context.Context, id uint64) ([]storage.PayoutRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.campaigns[id]; !ok {
		return nil, storage.ErrNotFound
	}
	payouts := make([]storage.PayoutRecord, len(s.payouts[id]))
	copy(payouts, s.payouts[id])
	return payouts, nil
}

var _ storage.Store = (*Store)(nil)
