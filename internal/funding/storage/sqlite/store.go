// Package sqlite provides the SQLite-backed funding storage implementation.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/louisbranch/fundraising.space/internal/funding/domain/campaign"
	"github.com/louisbranch/fundraising.space/internal/funding/domain/event"
	"github.com/louisbranch/fundraising.space/internal/funding/storage"
	"github.com/louisbranch/fundraising.space/internal/funding/storage/sqlite/migrations"
	"github.com/louisbranch/fundraising.space/internal/platform/storage/sqlitemigrate"
)

// Store persists funding ledger state in SQLite.
type Store struct {
	sqlDB *sql.DB
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite funding store and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.Apply(context.Background(), sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *Store) ready() error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	return nil
}

// getCampaignTx loads a campaign inside an open transaction.
func getCampaignTx(ctx context.Context, tx *sql.Tx, id uint64) (campaign.Campaign, error) {
	row := tx.QueryRowContext(ctx, `
		SELECT id, creator, goal, deadline, total_raised, status, created_at, updated_at
		FROM campaigns WHERE id = ?`, int64(id))
	return scanCampaign(row)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCampaign(row rowScanner) (campaign.Campaign, error) {
	var (
		c         campaign.Campaign
		id        int64
		deadline  int64
		status    string
		createdAt int64
		updatedAt int64
	)
	err := row.Scan(&id, &c.Creator, &c.Goal, &deadline, &c.TotalRaised, &status, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return campaign.Campaign{}, storage.ErrNotFound
	}
	if err != nil {
		return campaign.Campaign{}, fmt.Errorf("scan campaign: %w", err)
	}
	c.ID = uint64(id)
	c.Deadline = fromMillis(deadline)
	c.Status = campaign.StatusFromLabel(status)
	c.CreatedAt = fromMillis(createdAt)
	c.UpdatedAt = fromMillis(updatedAt)
	return c, nil
}

// CreateCampaign allocates the next sequential id (starting at 0) and writes
// the record and its creation event in one transaction.
func (s *Store) CreateCampaign(ctx context.Context, c campaign.Campaign, evt event.Event) (campaign.Campaign, event.Event, error) {
	if err := ctx.Err(); err != nil {
		return campaign.Campaign{}, event.Event{}, err
	}
	if err := s.ready(); err != nil {
		return campaign.Campaign{}, event.Event{}, err
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return campaign.Campaign{}, event.Event{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var nextID int64
	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(id) + 1, 0) FROM campaigns`).Scan(&nextID); err != nil {
		return campaign.Campaign{}, event.Event{}, fmt.Errorf("allocate campaign id: %w", err)
	}
	c.ID = uint64(nextID)

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO campaigns (id, creator, goal, deadline, total_raised, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		nextID,
		c.Creator,
		c.Goal,
		toMillis(c.Deadline),
		c.TotalRaised,
		c.Status.String(),
		toMillis(c.CreatedAt),
		toMillis(c.UpdatedAt),
	); err != nil {
		return campaign.Campaign{}, event.Event{}, fmt.Errorf("insert campaign: %w", err)
	}

	evt.CampaignID = c.ID
	stored, err := appendEventTx(ctx, tx, evt)
	if err != nil {
		return campaign.Campaign{}, event.Event{}, err
	}

	if err := tx.Commit(); err != nil {
		return campaign.Campaign{}, event.Event{}, fmt.Errorf("commit tx: %w", err)
	}
	return c, stored, nil
}

// GetCampaign returns the campaign or storage.ErrNotFound.
func (s *Store) GetCampaign(ctx context.Context, id uint64) (campaign.Campaign, error) {
	if err := ctx.Err(); err != nil {
		return campaign.Campaign{}, err
	}
	if err := s.ready(); err != nil {
		return campaign.Campaign{}, err
	}
	row := s.sqlDB.QueryRowContext(ctx, `
		SELECT id, creator, goal, deadline, total_raised, status, created_at, updated_at
		FROM campaigns WHERE id = ?`, int64(id))
	return scanCampaign(row)
}

// SetCampaignStatus records the terminal status transition with its event.
func (s *Store) SetCampaignStatus(ctx context.Context, id uint64, status campaign.Status, now time.Time, evt event.Event) (event.Event, error) {
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

	result, err := tx.ExecContext(ctx, `
		UPDATE campaigns SET status = ?, updated_at = ? WHERE id = ?`,
		status.String(), toMillis(now), int64(id))
	if err != nil {
		return event.Event{}, fmt.Errorf("update campaign status: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return event.Event{}, fmt.Errorf("update campaign status: %w", err)
	}
	if affected == 0 {
		return event.Event{}, storage.ErrNotFound
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

var _ storage.Store = (*Store)(nil)
