// Package event defines the append-only audit journal for campaign activity.
// Every mutating lifecycle operation emits exactly one event, ordered by call
// order within its campaign. The journal and the ledger state together are
// the only durable record of fund movements.
package event

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Type identifies the kind of a campaign event.
type Type string

const (
	// TypeCampaignCreated records the registration of a campaign.
	TypeCampaignCreated Type = "campaign.created"
	// TypeContributionReceived records a contribution to an open campaign.
	TypeContributionReceived Type = "campaign.contribution_received"
	// TypeCampaignFinalized records the single terminal status transition.
	TypeCampaignFinalized Type = "campaign.finalized"
	// TypeContributionRefunded records an individual post-failure withdrawal.
	TypeContributionRefunded Type = "campaign.contribution_refunded"
)

// IsValid reports whether the event type is one this journal accepts.
func (t Type) IsValid() bool {
	switch t {
	case TypeCampaignCreated, TypeContributionReceived, TypeCampaignFinalized, TypeContributionRefunded:
		return true
	}
	return false
}

// Event is an immutable entry in a campaign's journal.
type Event struct {
	// CampaignID is the campaign this event belongs to.
	CampaignID uint64
	// Seq is the event sequence number within the campaign (starts at 1).
	// Assigned by storage on append.
	Seq uint64
	// Hash is the content-addressed identity (SHA-256 truncated to 128-bit).
	// Assigned by storage on append.
	Hash string
	// Timestamp is the clock reading of the call that produced the event.
	Timestamp time.Time
	// Type identifies the kind of event.
	Type Type
	// Actor is the identity that triggered the event.
	Actor string
	// PayloadJSON holds event-specific data as JSON.
	PayloadJSON []byte
}

// Validate reports whether the event is acceptable for append.
func (e Event) Validate() error {
	if !e.Type.IsValid() {
		return fmt.Errorf("unknown event type %q", e.Type)
	}
	if strings.TrimSpace(e.Actor) == "" {
		return fmt.Errorf("event actor is required")
	}
	if e.Timestamp.IsZero() {
		return fmt.Errorf("event timestamp is required")
	}
	return nil
}

// CampaignCreatedPayload captures the payload for campaign.created events.
type CampaignCreatedPayload struct {
	Creator  string    `json:"creator"`
	Goal     int64     `json:"goal"`
	Deadline time.Time `json:"deadline"`
}

// ContributionReceivedPayload captures the payload for
// campaign.contribution_received events.
type ContributionReceivedPayload struct {
	Contributor string `json:"contributor"`
	Amount      int64  `json:"amount"`
}

// CampaignFinalizedPayload captures the payload for campaign.finalized events.
type CampaignFinalizedPayload struct {
	Successful  bool  `json:"successful"`
	TotalRaised int64 `json:"total_raised"`
}

// ContributionRefundedPayload captures the payload for
// campaign.contribution_refunded events.
type ContributionRefundedPayload struct {
	Contributor string `json:"contributor"`
	Amount      int64  `json:"amount"`
}

// New builds an event with a marshaled payload.
func New(campaignID uint64, eventType Type, actor string, timestamp time.Time, payload any) (Event, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return Event{}, fmt.Errorf("marshal %s payload: %w", eventType, err)
	}
	evt := Event{
		CampaignID:  campaignID,
		Timestamp:   timestamp.UTC(),
		Type:        eventType,
		Actor:       actor,
		PayloadJSON: body,
	}
	if err := evt.Validate(); err != nil {
		return Event{}, err
	}
	return evt, nil
}
