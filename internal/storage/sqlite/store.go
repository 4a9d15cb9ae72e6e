// Package sqlite provides the SQLite-backed implementation of the
// storage interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/louisbranch/artshop/internal/economy"
	"github.com/louisbranch/artshop/internal/painting"
	"github.com/louisbranch/artshop/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/artshop/internal/storage"
	"github.com/louisbranch/artshop/internal/storage/sqlite/migrations"
	"github.com/louisbranch/artshop/internal/valuation"
)

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

// fromMillis reverses toMillis for persisted millisecond timestamps.
func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// toNullMillis maps optional domain times to sql.NullInt64 for nullable DB columns.
func toNullMillis(value *time.Time) sql.NullInt64 {
	if value == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: toMillis(*value), Valid: true}
}

// fromNullMillis maps nullable SQL timestamps back into optional domain time values.
func fromNullMillis(value sql.NullInt64) *time.Time {
	if !value.Valid {
		return nil
	}
	t := fromMillis(value.Int64)
	return &t
}

// Store is a SQLite-backed store implementing all storage interfaces.
type Store struct {
	sqlDB *sql.DB
}

var _ storage.Store = (*Store)(nil)

// Open opens a SQLite store at the provided path and applies embedded
// migrations before the store is handed to higher layers.
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

	if err := sqlitemigrate.ApplyMigrations(sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("apply migrations: %w", err)
	}

	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the underlying SQLite database.
//
// Close is intentionally nil-safe so callers can defer it in all startup paths.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *Store) guard() error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	return nil
}

// SaveState upserts the single game state row.
func (s *Store) SaveState(ctx context.Context, state economy.GameState) error {
	if err := s.guard(); err != nil {
		return err
	}

	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode game state: %w", err)
	}

	_, err = s.sqlDB.ExecContext(ctx, `
INSERT INTO game_state (id, payload, updated_at) VALUES (1, ?, ?)
ON CONFLICT(id) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at
`, string(payload), toMillis(time.Now()))
	if err != nil {
		return fmt.Errorf("save game state: %w", err)
	}
	return nil
}

// LoadState returns the saved game state, or storage.ErrNotFound when
// none has been written yet.
func (s *Store) LoadState(ctx context.Context) (economy.GameState, error) {
	if err := s.guard(); err != nil {
		return economy.GameState{}, err
	}

	var payload string
	row := s.sqlDB.QueryRowContext(ctx, "SELECT payload FROM game_state WHERE id = 1")
	if err := row.Scan(&payload); err != nil {
		if err == sql.ErrNoRows {
			return economy.GameState{}, storage.ErrNotFound
		}
		return economy.GameState{}, fmt.Errorf("load game state: %w", err)
	}

	var state economy.GameState
	if err := json.Unmarshal([]byte(payload), &state); err != nil {
		return economy.GameState{}, fmt.Errorf("decode game state: %w", err)
	}
	return state, nil
}

// SavePainting inserts a new painting row.
func (s *Store) SavePainting(ctx context.Context, p painting.Painting) error {
	if err := s.guard(); err != nil {
		return err
	}
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("painting id is required")
	}

	sizePayload, reviewPayload, err := encodePaintingPayloads(p)
	if err != nil {
		return err
	}

	_, err = s.sqlDB.ExecContext(ctx, `
INSERT INTO paintings (id, image_data, thumbnail, created_at, sold_for, sold_at, canvas_size, review)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`, p.ID, p.ImageData, p.Thumbnail, toMillis(p.CreatedAt), nullInt(p.SoldFor), toNullMillis(p.SoldAt), sizePayload, reviewPayload)
	if err != nil {
		return fmt.Errorf("save painting: %w", err)
	}
	return nil
}

// UpdatePainting replaces an existing painting row, typically after a
// sale or an attached review.
func (s *Store) UpdatePainting(ctx context.Context, p painting.Painting) error {
	if err := s.guard(); err != nil {
		return err
	}

	sizePayload, reviewPayload, err := encodePaintingPayloads(p)
	if err != nil {
		return err
	}

	res, err := s.sqlDB.ExecContext(ctx, `
UPDATE paintings
SET image_data = ?, thumbnail = ?, created_at = ?, sold_for = ?, sold_at = ?, canvas_size = ?, review = ?
WHERE id = ?
`, p.ImageData, p.Thumbnail, toMillis(p.CreatedAt), nullInt(p.SoldFor), toNullMillis(p.SoldAt), sizePayload, reviewPayload, p.ID)
	if err != nil {
		return fmt.Errorf("update painting: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update painting rows: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// GetPainting returns one painting by id, or storage.ErrNotFound.
func (s *Store) GetPainting(ctx context.Context, id string) (painting.Painting, error) {
	if err := s.guard(); err != nil {
		return painting.Painting{}, err
	}

	row := s.sqlDB.QueryRowContext(ctx, `
SELECT id, image_data, thumbnail, created_at, sold_for, sold_at, canvas_size, review
FROM paintings WHERE id = ?
`, id)
	p, err := scanPainting(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return painting.Painting{}, storage.ErrNotFound
		}
		return painting.Painting{}, fmt.Errorf("get painting: %w", err)
	}
	return p, nil
}

// GetAllPaintings returns every stored painting, newest first.
func (s *Store) GetAllPaintings(ctx context.Context) ([]painting.Painting, error) {
	if err := s.guard(); err != nil {
		return nil, err
	}

	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT id, image_data, thumbnail, created_at, sold_for, sold_at, canvas_size, review
FROM paintings ORDER BY created_at DESC
`)
	if err != nil {
		return nil, fmt.Errorf("list paintings: %w", err)
	}
	defer rows.Close()

	var paintings []painting.Painting
	for rows.Next() {
		p, err := scanPainting(rows)
		if err != nil {
			return nil, fmt.Errorf("scan painting: %w", err)
		}
		paintings = append(paintings, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate paintings: %w", err)
	}
	return paintings, nil
}

// DeletePainting removes a painting row, or storage.ErrNotFound when
// the id is unknown.
func (s *Store) DeletePainting(ctx context.Context, id string) error {
	if err := s.guard(); err != nil {
		return err
	}

	res, err := s.sqlDB.ExecContext(ctx, "DELETE FROM paintings WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete painting: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete painting rows: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// SaveCatalog upserts the single catalog row.
func (s *Store) SaveCatalog(ctx context.Context, items []economy.ShopItem) error {
	if err := s.guard(); err != nil {
		return err
	}

	payload, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}

	_, err = s.sqlDB.ExecContext(ctx, `
INSERT INTO catalog (id, payload, updated_at) VALUES (1, ?, ?)
ON CONFLICT(id) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at
`, string(payload), toMillis(time.Now()))
	if err != nil {
		return fmt.Errorf("save catalog: %w", err)
	}
	return nil
}

// LoadCatalog returns the saved catalog, or storage.ErrNotFound when
// none has been written yet.
func (s *Store) LoadCatalog(ctx context.Context) ([]economy.ShopItem, error) {
	if err := s.guard(); err != nil {
		return nil, err
	}

	var payload string
	row := s.sqlDB.QueryRowContext(ctx, "SELECT payload FROM catalog WHERE id = 1")
	if err := row.Scan(&payload); err != nil {
		if err == sql.ErrNoRows {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	var items []economy.ShopItem
	if err := json.Unmarshal([]byte(payload), &items); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return items, nil
}

// ClearAll removes every stored record, returning the store to an
// empty first-run condition.
func (s *Store) ClearAll(ctx context.Context) error {
	if err := s.guard(); err != nil {
		return err
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin clear transaction: %w", err)
	}
	for _, table := range []string{"paintings", "game_state", "catalog"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit clear transaction: %w", err)
	}
	return nil
}

func nullInt(value *int) sql.NullInt64 {
	if value == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*value), Valid: true}
}

func encodePaintingPayloads(p painting.Painting) (string, sql.NullString, error) {
	sizePayload, err := json.Marshal(p.CanvasSize)
	if err != nil {
		return "", sql.NullString{}, fmt.Errorf("encode canvas size: %w", err)
	}

	var reviewPayload sql.NullString
	if p.AIReview != nil {
		raw, err := json.Marshal(p.AIReview)
		if err != nil {
			return "", sql.NullString{}, fmt.Errorf("encode review: %w", err)
		}
		reviewPayload = sql.NullString{String: string(raw), Valid: true}
	}
	return string(sizePayload), reviewPayload, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPainting(row rowScanner) (painting.Painting, error) {
	var (
		p             painting.Painting
		createdAt     int64
		soldFor       sql.NullInt64
		soldAt        sql.NullInt64
		sizePayload   string
		reviewPayload sql.NullString
	)
	if err := row.Scan(&p.ID, &p.ImageData, &p.Thumbnail, &createdAt, &soldFor, &soldAt, &sizePayload, &reviewPayload); err != nil {
		return painting.Painting{}, err
	}

	p.CreatedAt = fromMillis(createdAt)
	if soldFor.Valid {
		price := int(soldFor.Int64)
		p.SoldFor = &price
	}
	p.SoldAt = fromNullMillis(soldAt)

	if err := json.Unmarshal([]byte(sizePayload), &p.CanvasSize); err != nil {
		return painting.Painting{}, fmt.Errorf("decode canvas size: %w", err)
	}
	if reviewPayload.Valid {
		var review valuation.Review
		if err := json.Unmarshal([]byte(reviewPayload.String), &review); err != nil {
			return painting.Painting{}, fmt.Errorf("decode review: %w", err)
		}
		p.AIReview = &review
	}
	return p, nil
}
