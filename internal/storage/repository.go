// Package storage persists the editable estimate state in SQLite: one
// estimate row under the fixed key id=1 plus the ordered member roster.
// Derived figures are never stored; they are recomputed on every read path.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"stima/internal/core"

	_ "modernc.org/sqlite"
)

// estimateKey is the single row the editable state lives under.
const estimateKey = 1

// Snapshot is one consistent read of the persisted state. Version increases
// on every save and drives the sync mirror.
type Snapshot struct {
	Config    core.ProjectConfig
	Members   []core.Member
	Version   int64
	UpdatedAt time.Time
}

// PendingSync describes a snapshot version not yet mirrored.
type PendingSync struct {
	Version   int64
	UpdatedAt time.Time
}

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Load reads the estimate row and the roster in position order.
func (r *SQLiteRepository) Load(ctx context.Context) (Snapshot, error) {
	var snap Snapshot
	err := r.db.QueryRowContext(ctx, `
		SELECT project_name, duration_months, pricing_model,
		       hourly_rate, hours_per_day, daily_rate, days_per_month, fixed_monthly,
		       version, updated_at
		FROM estimate WHERE id = ?`, estimateKey).Scan(
		&snap.Config.ProjectName,
		&snap.Config.DurationMonths,
		&snap.Config.PricingModel,
		&snap.Config.HourlyRate,
		&snap.Config.HoursPerDay,
		&snap.Config.DailyRate,
		&snap.Config.DaysPerMonth,
		&snap.Config.FixedMonthly,
		&snap.Version,
		&snap.UpdatedAt,
	)
	if err != nil {
		return Snapshot{}, fmt.Errorf("load estimate: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT name, role, employment_type, share_type, share_value, duration_months
		FROM members ORDER BY position`)
	if err != nil {
		return Snapshot{}, fmt.Errorf("load members: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var m core.Member
		if err := rows.Scan(&m.Name, &m.Role, &m.EmploymentType, &m.ShareType,
			&m.ShareValue, &m.DurationMonths); err != nil {
			return Snapshot{}, fmt.Errorf("scan member: %w", err)
		}
		snap.Members = append(snap.Members, m)
	}
	if err := rows.Err(); err != nil {
		return Snapshot{}, fmt.Errorf("iterate members: %w", err)
	}

	return snap, nil
}

// Save replaces the whole snapshot in one transaction and bumps the version.
// The roster is rewritten, not patched: there is one writer and the state is
// small, so a full replace keeps positions trivially consistent.
func (r *SQLiteRepository) Save(ctx context.Context, cfg core.ProjectConfig, members []core.Member) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE estimate SET
			project_name = ?, duration_months = ?, pricing_model = ?,
			hourly_rate = ?, hours_per_day = ?, daily_rate = ?,
			days_per_month = ?, fixed_monthly = ?,
			version = version + 1, synced = 0, sync_error = 0,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		cfg.ProjectName, cfg.DurationMonths, string(cfg.PricingModel),
		cfg.HourlyRate, cfg.HoursPerDay, cfg.DailyRate,
		cfg.DaysPerMonth, cfg.FixedMonthly, estimateKey)
	if err != nil {
		return 0, fmt.Errorf("update estimate: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return 0, fmt.Errorf("estimate row %d missing", estimateKey)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM members`); err != nil {
		return 0, fmt.Errorf("clear members: %w", err)
	}
	for pos, m := range members {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO members (position, name, role, employment_type, share_type, share_value, duration_months)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			pos, m.Name, m.Role, string(m.EmploymentType), string(m.ShareType),
			m.ShareValue, m.DurationMonths); err != nil {
			return 0, fmt.Errorf("insert member %d: %w", pos, err)
		}
	}

	var version int64
	if err := tx.QueryRowContext(ctx,
		`SELECT version FROM estimate WHERE id = ?`, estimateKey).Scan(&version); err != nil {
		return 0, fmt.Errorf("read version: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit save: %w", err)
	}

	slog.InfoContext(ctx, "Estimate snapshot saved",
		"version", version,
		"members", len(members),
		"duration_months", cfg.DurationMonths)

	return version, nil
}

// GetPendingSync returns the current version if it has not been mirrored yet,
// or nil when everything is synced.
func (r *SQLiteRepository) GetPendingSync(ctx context.Context) (*PendingSync, error) {
	var pending PendingSync
	var synced int
	err := r.db.QueryRowContext(ctx,
		`SELECT version, synced, updated_at FROM estimate WHERE id = ?`, estimateKey).
		Scan(&pending.Version, &synced, &pending.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("read sync state: %w", err)
	}
	if synced != 0 {
		return nil, nil
	}
	return &pending, nil
}

// MarkSynced records a successful mirror of the given version. A save that
// happened in between bumps the version, so the guard keeps the row pending.
func (r *SQLiteRepository) MarkSynced(ctx context.Context, version int64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE estimate SET synced = 1, sync_error = 0 WHERE id = ? AND version = ?`,
		estimateKey, version)
	if err != nil {
		return fmt.Errorf("mark synced: %w", err)
	}
	slog.InfoContext(ctx, "Estimate snapshot marked as synced", "version", version)
	return nil
}

// MarkSyncError flags the snapshot so the periodic sweep retries it.
func (r *SQLiteRepository) MarkSyncError(ctx context.Context, version int64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE estimate SET sync_error = 1 WHERE id = ? AND version = ?`,
		estimateKey, version)
	if err != nil {
		return fmt.Errorf("mark sync error: %w", err)
	}
	slog.WarnContext(ctx, "Estimate snapshot marked with sync error", "version", version)
	return nil
}
