package storage

import (
	"context"
	"path/filepath"
	"testing"

	"stima/internal/core"
)

func testRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "stima.db"))
	if err != nil {
		t.Fatalf("NewSQLiteRepository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestLoadSeededEstimate(t *testing.T) {
	repo := testRepo(t)

	snap, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if snap.Config.DurationMonths != 1 {
		t.Errorf("seeded duration = %d, want 1", snap.Config.DurationMonths)
	}
	if snap.Config.PricingModel != core.PricingHourly {
		t.Errorf("seeded pricing model = %q, want hourly", snap.Config.PricingModel)
	}
	if len(snap.Members) != 0 {
		t.Errorf("seeded roster should be empty, got %d members", len(snap.Members))
	}
	if snap.Version != 0 {
		t.Errorf("seeded version = %d, want 0", snap.Version)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	cfg := core.ProjectConfig{
		ProjectName:    "Data pipeline",
		DurationMonths: 6,
		PricingModel:   core.PricingDaily,
		DailyRate:      700,
		DaysPerMonth:   18,
	}
	members := []core.Member{
		{Name: "Ada", Role: "Lead", EmploymentType: core.EmploymentFullTime,
			ShareType: core.ShareTypePercentage, ShareValue: 40, DurationMonths: 6},
		{Name: "Rex", Role: "Intro", EmploymentType: core.EmploymentReferral,
			ShareType: core.ShareTypeFixed, ShareValue: 500, DurationMonths: 2},
	}

	version, err := repo.Save(ctx, cfg, members)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if version != 1 {
		t.Errorf("first save version = %d, want 1", version)
	}

	snap, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if snap.Config != cfg {
		t.Errorf("config round trip: got %+v, want %+v", snap.Config, cfg)
	}
	if len(snap.Members) != 2 {
		t.Fatalf("member count = %d, want 2", len(snap.Members))
	}
	// Insertion order is display order.
	if snap.Members[0] != members[0] || snap.Members[1] != members[1] {
		t.Errorf("member order not preserved: %+v", snap.Members)
	}
}

func TestSaveBumpsVersionAndResetsSync(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()
	cfg := core.ProjectConfig{DurationMonths: 2, PricingModel: core.PricingFixed, FixedMonthly: 1000}

	v1, err := repo.Save(ctx, cfg, nil)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	v2, err := repo.Save(ctx, cfg, nil)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if v2 != v1+1 {
		t.Errorf("versions = %d then %d, want consecutive", v1, v2)
	}

	pending, err := repo.GetPendingSync(ctx)
	if err != nil {
		t.Fatalf("GetPendingSync: %v", err)
	}
	if pending == nil || pending.Version != v2 {
		t.Fatalf("pending = %+v, want version %d", pending, v2)
	}
}

func TestMarkSyncedGuardsVersion(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()
	cfg := core.ProjectConfig{DurationMonths: 2, PricingModel: core.PricingFixed, FixedMonthly: 1000}

	v1, _ := repo.Save(ctx, cfg, nil)

	// A newer save arrives before the mirror finished with v1.
	v2, _ := repo.Save(ctx, cfg, nil)
	if err := repo.MarkSynced(ctx, v1); err != nil {
		t.Fatalf("MarkSynced: %v", err)
	}

	pending, err := repo.GetPendingSync(ctx)
	if err != nil {
		t.Fatalf("GetPendingSync: %v", err)
	}
	if pending == nil || pending.Version != v2 {
		t.Errorf("stale MarkSynced must not clear a newer version, pending = %+v", pending)
	}

	if err := repo.MarkSynced(ctx, v2); err != nil {
		t.Fatalf("MarkSynced: %v", err)
	}
	pending, err = repo.GetPendingSync(ctx)
	if err != nil {
		t.Fatalf("GetPendingSync: %v", err)
	}
	if pending != nil {
		t.Errorf("expected no pending sync after MarkSynced, got %+v", pending)
	}
}
