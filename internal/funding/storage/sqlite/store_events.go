package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/louisbranch/fundraising.space/internal/funding/domain/event"
	"github.com/louisbranch/fundraising.space/internal/funding/storage"
)

// appendEventTx assigns the next sequence number for the campaign, stamps the
// content hash, and inserts the row inside the caller's transaction. The
// journal row commits or rolls back with the mutation it describes.
func appendEventTx(ctx context.Context, tx *sql.Tx, evt event.Event) (event.Event, error) {
	var next int64
	err := tx.QueryRowContext(ctx, `
		SELECT COALESCE(MAX(seq), 0) + 1 FROM campaign_events WHERE campaign_id = ?`,
		int64(evt.CampaignID),
	).Scan(&next)
	if err != nil {
		return event.Event{}, fmt.Errorf("next event seq: %w", err)
	}

	evt.Seq = uint64(next)
	evt.Hash = storage.EventHash(evt)
	if err := evt.Validate(); err != nil {
		return event.Event{}, fmt.Errorf("validate event: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO campaign_events (campaign_id, seq, hash, timestamp, type, actor, payload)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		int64(evt.CampaignID), next, evt.Hash, toMillis(evt.Timestamp), string(evt.Type), evt.Actor, evt.PayloadJSON,
	); err != nil {
		return event.Event{}, fmt.Errorf("insert event: %w", err)
	}
	return evt, nil
}

// ListEvents returns the campaign's journal in sequence order.
func (s *Store) ListEvents(ctx context.Context, id uint64) ([]event.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.ready(); err != nil {
		return nil, err
	}
	if _, err := s.GetCampaign(ctx, id); err != nil {
		return nil, err
	}

	rows, err := s.sqlDB.QueryContext(ctx, `
		SELECT campaign_id, seq, hash, timestamp, type, actor, payload
		FROM campaign_events WHERE campaign_id = ? ORDER BY seq`,
		int64(id))
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var events []event.Event
	for rows.Next() {
		var (
			evt        event.Event
			campaignID int64
			seq        int64
			timestamp  int64
			eventType  string
		)
		if err := rows.Scan(&campaignID, &seq, &evt.Hash, &timestamp, &eventType, &evt.Actor, &evt.PayloadJSON); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		evt.CampaignID = uint64(campaignID)
		evt.Seq = uint64(seq)
		evt.Timestamp = fromMillis(timestamp)
		evt.Type = event.Type(eventType)
		events = append(events, evt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}
