// Package services orchestrates estimate operations across storage and the
// async mirror channel.
package services

import (
	"context"
	"fmt"
	"log/slog"

	"stima/internal/amqp"
	"stima/internal/core"
	"stima/internal/storage"
)

// EstimateService is the single writer of the editable estimate state. Every
// mutation goes through Save: persist the full snapshot, then publish a sync
// message. Mirroring is best effort; a dead broker never fails the save.
type EstimateService struct {
	storage    *storage.SQLiteRepository
	amqpClient *amqp.Client
}

func NewEstimateService(storage *storage.SQLiteRepository, amqpClient *amqp.Client) *EstimateService {
	return &EstimateService{
		storage:    storage,
		amqpClient: amqpClient,
	}
}

// Load returns the persisted snapshot.
func (s *EstimateService) Load(ctx context.Context) (storage.Snapshot, error) {
	return s.storage.Load(ctx)
}

// Save persists the snapshot and notifies the mirror worker.
func (s *EstimateService) Save(ctx context.Context, cfg core.ProjectConfig, members []core.Member) (int64, error) {
	version, err := s.storage.Save(ctx, cfg, members)
	if err != nil {
		return 0, fmt.Errorf("save estimate: %w", err)
	}

	if err := s.publishSyncMessage(ctx, version); err != nil {
		slog.ErrorContext(ctx, "Failed to publish sync message",
			"version", version, "error", err)
		// The snapshot is saved; the worker's pending sweep will catch up.
	}

	return version, nil
}

// RemoveMember drops the roster entry at the given index and persists the
// result. Out-of-range indexes are rejected before anything is written.
func (s *EstimateService) RemoveMember(ctx context.Context, index int) (int64, error) {
	snap, err := s.storage.Load(ctx)
	if err != nil {
		return 0, fmt.Errorf("load estimate: %w", err)
	}
	if index < 0 || index >= len(snap.Members) {
		return 0, core.ErrInvalidIndex
	}

	members := append(snap.Members[:index:index], snap.Members[index+1:]...)
	return s.Save(ctx, snap.Config, members)
}

func (s *EstimateService) publishSyncMessage(ctx context.Context, version int64) error {
	if s.amqpClient == nil {
		slog.WarnContext(ctx, "AMQP client not available, skipping sync message")
		return nil
	}
	return s.amqpClient.PublishEstimateSync(ctx, version)
}

// Close closes both storage and AMQP connections.
func (s *EstimateService) Close() error {
	var errs []error

	if s.storage != nil {
		if err := s.storage.Close(); err != nil {
			errs = append(errs, fmt.Errorf("storage: %w", err))
		}
	}

	if s.amqpClient != nil {
		if err := s.amqpClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("amqp: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close estimate service: %v", errs)
	}

	return nil
}
