package services

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"stima/internal/core"
	"stima/internal/storage"
)

func testService(t *testing.T) *EstimateService {
	t.Helper()
	repo, err := storage.NewSQLiteRepository(filepath.Join(t.TempDir(), "stima.db"))
	if err != nil {
		t.Fatalf("NewSQLiteRepository: %v", err)
	}
	// nil AMQP client: saving must still work with the broker down.
	svc := NewEstimateService(repo, nil)
	t.Cleanup(func() { svc.Close() })
	return svc
}

func TestSaveWithoutBroker(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	cfg := core.ProjectConfig{DurationMonths: 3, PricingModel: core.PricingFixed, FixedMonthly: 9000}
	version, err := svc.Save(ctx, cfg, nil)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if version != 1 {
		t.Errorf("version = %d, want 1", version)
	}

	snap, err := svc.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if snap.Config.FixedMonthly != 9000 {
		t.Errorf("loaded fixed monthly = %v, want 9000", snap.Config.FixedMonthly)
	}
}

func TestRemoveMember(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	cfg := core.ProjectConfig{DurationMonths: 3, PricingModel: core.PricingFixed, FixedMonthly: 9000}
	members := []core.Member{
		{Name: "Ada", ShareType: core.ShareTypePercentage, ShareValue: 20, DurationMonths: 3},
		{Name: "Bo", ShareType: core.ShareTypeFixed, ShareValue: 500, DurationMonths: 3},
	}
	if _, err := svc.Save(ctx, cfg, members); err != nil {
		t.Fatalf("Save: %v", err)
	}

	if _, err := svc.RemoveMember(ctx, 0); err != nil {
		t.Fatalf("RemoveMember: %v", err)
	}

	snap, err := svc.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(snap.Members) != 1 || snap.Members[0].Name != "Bo" {
		t.Errorf("roster after removal = %+v", snap.Members)
	}
}

func TestRemoveMemberInvalidIndex(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	for _, index := range []int{-1, 0, 5} {
		if _, err := svc.RemoveMember(ctx, index); !errors.Is(err, core.ErrInvalidIndex) {
			t.Errorf("index %d: err = %v, want ErrInvalidIndex", index, err)
		}
	}
}
