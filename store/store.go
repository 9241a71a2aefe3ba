// Package store persists depreciation schedules in PostgreSQL so that they can
// be looked up by asset later on.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/etnz/depreciation"
	"github.com/etnz/depreciation/date"
	"github.com/google/uuid"
	_ "github.com/lib/pq"
)

// ErrAssetNotFound is returned by Lookup for an asset that was never saved.
var ErrAssetNotFound = errors.New("asset not found")

const schema = `
CREATE TABLE IF NOT EXISTS assets (
	id   SERIAL PRIMARY KEY,
	name TEXT NOT NULL UNIQUE
);
CREATE TABLE IF NOT EXISTS line_items (
	asset_id INTEGER NOT NULL REFERENCES assets(id) ON DELETE CASCADE,
	month    TEXT NOT NULL,
	amount   NUMERIC NOT NULL,
	currency TEXT NOT NULL,
	run_id   UUID NOT NULL,
	PRIMARY KEY (asset_id, month)
);`

// Store is a schedule store backed by a PostgreSQL database.
type Store struct {
	db *sql.DB
}

// New returns a Store using db.
func New(db *sql.DB) *Store { return &Store{db: db} }

// Open connects to the PostgreSQL database at dsn.
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("cannot open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("cannot reach database: %w", err)
	}
	return New(db), nil
}

// Close closes the database.
func (s *Store) Close() error { return s.db.Close() }

// Migrate creates the tables if they do not exist yet.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("cannot create schema: %w", err)
	}
	return nil
}

// SaveSchedule replaces the stored schedule of the asset of 'items'.
//
// All items must belong to the same asset. runID identifies the run that
// produced them.
func (s *Store) SaveSchedule(ctx context.Context, runID uuid.UUID, items []depreciation.LineItem) (err error) {
	if len(items) == 0 {
		return nil
	}
	name := items[0].AssetID

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	var id int64
	const upsert = `INSERT INTO assets (name) VALUES ($1)
	ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
	RETURNING id`
	if err = tx.QueryRowContext(ctx, upsert, name).Scan(&id); err != nil {
		return fmt.Errorf("cannot save asset %q: %w", name, err)
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM line_items WHERE asset_id = $1`, id); err != nil {
		return fmt.Errorf("cannot clear schedule of asset %q: %w", name, err)
	}

	const insert = `INSERT INTO line_items (asset_id, month, amount, currency, run_id) VALUES ($1, $2, $3, $4, $5)`
	for _, it := range items {
		if it.AssetID != name {
			return fmt.Errorf("line item of asset %q in schedule of asset %q", it.AssetID, name)
		}
		if _, err = tx.ExecContext(ctx, insert, id, it.Month.String(), it.Amount.Fixed(), it.Amount.Currency().Code(), runID); err != nil {
			return fmt.Errorf("cannot save %s of asset %q: %w", it.Month, name, err)
		}
	}
	return tx.Commit()
}

// Lookup returns the stored schedule of the asset named 'name', in
// chronological order. It returns ErrAssetNotFound for an unknown asset.
func (s *Store) Lookup(ctx context.Context, name string) ([]depreciation.LineItem, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, `SELECT id FROM assets WHERE name = $1`, name).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("asset %q: %w", name, ErrAssetNotFound)
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT month, amount::TEXT, currency FROM line_items WHERE asset_id = $1 ORDER BY month`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []depreciation.LineItem
	for rows.Next() {
		var month, amount, code string
		if err := rows.Scan(&month, &amount, &code); err != nil {
			return nil, err
		}
		item, err := decodeRow(name, month, amount, code)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func decodeRow(name, month, amount, code string) (depreciation.LineItem, error) {
	m, err := date.ParseMonth(month)
	if err != nil {
		return depreciation.LineItem{}, fmt.Errorf("stored schedule of asset %q: %w", name, err)
	}
	cur, err := depreciation.ParseCurrency(code)
	if err != nil {
		return depreciation.LineItem{}, fmt.Errorf("stored schedule of asset %q: %w", name, err)
	}
	v, err := depreciation.ParseMoney(amount, cur)
	if err != nil {
		return depreciation.LineItem{}, fmt.Errorf("stored schedule of asset %q: %w", name, err)
	}
	return depreciation.LineItem{AssetID: name, Month: m, Amount: v}, nil
}
