package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/louisbranch/fundraising.space/internal/funding/domain/event"
	"github.com/louisbranch/fundraising.space/internal/funding/storage"
)

// Contribution ledger and payout ledger methods.

// AddContribution upserts the ledger entry and bumps total_raised in one
// transaction with the contribution event.
func (s *Store) AddContribution(ctx context.Context, id uint64, contributor string, amount int64, evt event.Event) (event.Event, error) {
	if err := ctx.Err(); err != nil {
		return event.Event{}, err
	}
	if err := s.ready(); err != nil {
		return event.Event{}, err
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return event.Event{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := getCampaignTx(ctx, tx, id); err != nil {
		return event.Event{}, err
	}

	updatedAt := toMillis(evt.Timestamp)
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO contributions (campaign_id, contributor, amount, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (campaign_id, contributor)
		DO UPDATE SET amount = amount + excluded.amount, updated_at = excluded.updated_at`,
		int64(id), contributor, amount, updatedAt,
	); err != nil {
		return event.Event{}, fmt.Errorf("upsert contribution: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE campaigns SET total_raised = total_raised + ?, updated_at = ? WHERE id = ?`,
		amount, updatedAt, int64(id),
	); err != nil {
		return event.Event{}, fmt.Errorf("increment total raised: %w", err)
	}

	stored, err := appendEventTx(ctx, tx, evt)
	if err != nil {
		return event.Event{}, err
	}
	if err := tx.Commit(); err != nil {
		return event.Event{}, fmt.Errorf("commit tx: %w", err)
	}
	return stored, nil
}

// TakeContribution zeroes the contributor's entry, decrements total_raised,
// and appends the refund event, all in one transaction. Returns the prior
// entry value.
func (s *Store) TakeContribution(ctx context.Context, id uint64, contributor string, evt event.Event) (int64, event.Event, error) {
	if err := ctx.Err(); err != nil {
		return 0, event.Event{}, err
	}
	if err := s.ready(); err != nil {
		return 0, event.Event{}, err
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return 0, event.Event{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := getCampaignTx(ctx, tx, id); err != nil {
		return 0, event.Event{}, err
	}

	var amount int64
	err = tx.QueryRowContext(ctx, `
		SELECT amount FROM contributions WHERE campaign_id = ? AND contributor = ?`,
		int64(id), contributor,
	).Scan(&amount)
	if errors.Is(err, sql.ErrNoRows) || (err == nil && amount <= 0) {
		return 0, event.Event{}, fmt.Errorf("take contribution: no balance for %s on campaign %d", contributor, id)
	}
	if err != nil {
		return 0, event.Event{}, fmt.Errorf("read contribution: %w", err)
	}

	updatedAt := toMillis(evt.Timestamp)
	if _, err := tx.ExecContext(ctx, `
		DELETE FROM contributions WHERE campaign_id = ? AND contributor = ?`,
		int64(id), contributor,
	); err != nil {
		return 0, event.Event{}, fmt.Errorf("zero contribution: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `
		UPDATE campaigns SET total_raised = total_raised - ?, updated_at = ? WHERE id = ?`,
		amount, updatedAt, int64(id),
	); err != nil {
		return 0, event.Event{}, fmt.Errorf("decrement total raised: %w", err)
	}

	stored, err := appendEventTx(ctx, tx, evt)
	if err != nil {
		return 0, event.Event{}, err
	}
	if err := tx.Commit(); err != nil {
		return 0, event.Event{}, fmt.Errorf("commit tx: %w", err)
	}
	return amount, stored, nil
}

// GetContribution returns the live ledger entry, 0 when absent.
func (s *Store) GetContribution(ctx context.Context, id uint64, contributor string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if err := s.ready(); err != nil {
		return 0, err
	}
	if _, err := s.GetCampaign(ctx, id); err != nil {
		return 0, err
	}

	var amount int64
	err := s.sqlDB.QueryRowContext(ctx, `
		SELECT amount FROM contributions WHERE campaign_id = ? AND contributor = ?`,
		int64(id), contributor,
	).Scan(&amount)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read contribution: %w", err)
	}
	return amount, nil
}

// ListContributions returns the campaign's live entries ordered by contributor.
func (s *Store) ListContributions(ctx context.Context, id uint64) ([]storage.ContributionRecord, error) {
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
		SELECT campaign_id, contributor, amount, updated_at
		FROM contributions WHERE campaign_id = ? ORDER BY contributor`, int64(id))
	if err != nil {
		return nil, fmt.Errorf("list contributions: %w", err)
	}
	defer rows.Close()

	var records []storage.ContributionRecord
	for rows.Next() {
		var (
			rec        storage.ContributionRecord
			campaignID int64
			updatedAt  int64
		)
		if err := rows.Scan(&campaignID, &rec.Contributor, &rec.Amount, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan contribution: %w", err)
		}
		rec.CampaignID = uint64(campaignID)
		rec.UpdatedAt = fromMillis(updatedAt)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list contributions: %w", err)
	}
	return records, nil
}

// RecordPayout appends one completed outbound transfer.
func (s *Store) RecordPayout(ctx context.Context, rec storage.PayoutRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.ready(); err != nil {
		return err
	}
	if _, err := s.GetCampaign(ctx, rec.CampaignID); err != nil {
		return err
	}

	if _, err := s.sqlDB.ExecContext(ctx, `
		INSERT INTO payouts (campaign_id, recipient, amount, kind, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		int64(rec.CampaignID), rec.Recipient, rec.Amount, string(rec.Kind), toMillis(rec.CreatedAt),
	); err != nil {
		return fmt.Errorf("insert payout: %w", err)
	}
	return nil
}

// ListPayouts returns the campaign's transfers in record order.
func (s *Store) ListPayouts(ctx context.Context, id uint64) ([]storage.PayoutRecord, error) {
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
		SELECT campaign_id, recipient, amount, kind, created_at
		FROM payouts WHERE campaign_id = ? ORDER BY id`, int64(id))
	if err != nil {
		return nil, fmt.Errorf("list payouts: %w", err)
	}
	defer rows.Close()

	var records []storage.PayoutRecord
	for rows.Next() {
		var (
			rec        storage.PayoutRecord
			campaignID int64
			kind       string
			createdAt  int64
		)
		if err := rows.Scan(&campaignID, &rec.Recipient, &rec.Amount, &kind, &createdAt); err != nil {
			return nil, fmt.Errorf("scan payout: %w", err)
		}
		rec.CampaignID = uint64(campaignID)
		rec.Kind = storage.PayoutKind(kind)
		rec.CreatedAt = fromMillis(createdAt)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list payouts: %w", err)
	}
	return records, nil
}
