// Package worker mirrors saved estimate snapshots to an external sheet.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"stima/internal/amqp"
	"stima/internal/core"
	"stima/internal/sheets"
	"stima/internal/storage"
)

// SyncWorker consumes snapshot sync messages, recomputes the aggregate for
// the current snapshot and appends a summary row to the mirror sheet.
type SyncWorker struct {
	storage *storage.SQLiteRepository
	sheets  sheets.SnapshotWriter
}

func NewSyncWorker(storage *storage.SQLiteRepository, sheets sheets.SnapshotWriter) *SyncWorker {
	return &SyncWorker{
		storage: storage,
		sheets:  sheets,
	}
}

// HandleSyncMessage processes one sync message from AMQP. The message only
// names a version; the snapshot itself is read from storage, so a burst of
// saves collapses into mirroring the newest state.
func (w *SyncWorker) HandleSyncMessage(ctx context.Context, msg *amqp.EstimateSyncMessage) error {
	slog.InfoContext(ctx, "Processing sync message", "version", msg.Version)

	snap, err := w.storage.Load(ctx)
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}

	if snap.Version > msg.Version {
		// A newer save already happened; its own message will mirror it.
		slog.InfoContext(ctx, "Skipping stale sync message",
			"message_version", msg.Version,
			"current_version", snap.Version)
		return nil
	}

	return w.mirrorSnapshot(ctx, snap)
}

// ProcessPending mirrors the current snapshot if it has not been synced yet.
// This is the backup path for lost AMQP messages and worker downtime.
func (w *SyncWorker) ProcessPending(ctx context.Context) error {
	pending, err := w.storage.GetPendingSync(ctx)
	if err != nil {
		return fmt.Errorf("get pending sync: %w", err)
	}
	if pending == nil {
		return nil
	}

	slog.InfoContext(ctx, "Found pending snapshot", "version", pending.Version)

	snap, err := w.storage.Load(ctx)
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}

	return w.mirrorSnapshot(ctx, snap)
}

// RunPendingSweep runs ProcessPending on a ticker until ctx is cancelled.
func (w *SyncWorker) RunPendingSweep(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := w.ProcessPending(ctx); err != nil {
				slog.ErrorContext(ctx, "Pending sweep failed", "error", err)
			}
		}
	}
}

func (w *SyncWorker) mirrorSnapshot(ctx context.Context, snap storage.Snapshot) error {
	agg := core.ComputeProject(snap.Config, snap.Members)

	summary := sheets.SnapshotSummary{
		SyncedAt:       time.Now(),
		Version:        snap.Version,
		ProjectName:    snap.Config.ProjectName,
		DurationMonths: agg.ProjectDuration,
		PricingModel:   string(snap.Config.PricingModel),
		MemberCount:    len(snap.Members),
		MonthlyRevenue: agg.MonthlyRevenue,
		TotalRevenue:   agg.TotalRevenue,
		TotalCost:      agg.TotalCost,
		NetValue:       agg.NetValue,
	}

	ref, err := w.sheets.AppendSnapshot(ctx, summary)
	if err != nil {
		if markErr := w.storage.MarkSyncError(ctx, snap.Version); markErr != nil {
			slog.ErrorContext(ctx, "Failed to mark sync error",
				"version", snap.Version, "error", markErr)
		}
		return fmt.Errorf("append snapshot: %w", err)
	}

	if err := w.storage.MarkSynced(ctx, snap.Version); err != nil {
		// The mirror itself succeeded; the sweep will retry the bookkeeping.
		slog.ErrorContext(ctx, "Failed to mark as synced",
			"version", snap.Version, "error", err)
	}

	slog.InfoContext(ctx, "Snapshot mirrored",
		"version", snap.Version,
		"sheet_ref", ref,
		"net_value", agg.NetValue)

	return nil
}
