package core

import "testing"

func hourlyConfig() ProjectConfig {
	return ProjectConfig{
		ProjectName:    "Platform rebuild",
		DurationMonths: 3,
		PricingModel:   PricingHourly,
		HourlyRate:     100,
		HoursPerDay:    8,
		DaysPerMonth:   20,
	}
}

func TestComputeProjectNoMembers(t *testing.T) {
	// Scenario A.
	agg := ComputeProject(hourlyConfig(), nil)

	if agg.MonthlyRevenue != 16000 {
		t.Errorf("monthly revenue = %v, want 16000", agg.MonthlyRevenue)
	}
	if agg.TotalRevenue != 48000 {
		t.Errorf("total revenue = %v, want 48000", agg.TotalRevenue)
	}
	if agg.TotalCost != 0 {
		t.Errorf("total cost = %v, want 0", agg.TotalCost)
	}
	if agg.NetValue != 48000 {
		t.Errorf("net value = %v, want 48000", agg.NetValue)
	}
	if agg.CostPercentOfRevenue != 0 {
		t.Errorf("cost percent = %v, want 0", agg.CostPercentOfRevenue)
	}
}

func TestComputeProjectWithPercentageMember(t *testing.T) {
	// Scenario B.
	members := []Member{{ShareType: ShareTypePercentage, ShareValue: 50, DurationMonths: 2}}
	agg := ComputeProject(hourlyConfig(), members)

	if len(agg.Members) != 1 {
		t.Fatalf("expected 1 member stats, got %d", len(agg.Members))
	}
	stats := agg.Members[0]
	if stats.MonthlyPayout != 8000 || stats.EffectiveDuration != 2 || stats.TotalPayout != 16000 {
		t.Errorf("member stats = %+v, want monthly 8000 / effective 2 / total 16000", stats)
	}
	if agg.TotalCost != 16000 {
		t.Errorf("total cost = %v, want 16000", agg.TotalCost)
	}
	if agg.NetValue != 32000 {
		t.Errorf("net value = %v, want 32000", agg.NetValue)
	}
	if agg.TotalAllocatedPercent != 50 {
		t.Errorf("allocated percent = %v, want 50", agg.TotalAllocatedPercent)
	}
}

func TestComputeProjectZeroRevenue(t *testing.T) {
	cfg := ProjectConfig{DurationMonths: 4, PricingModel: PricingFixed, FixedMonthly: 0}
	members := []Member{{ShareType: ShareTypeFixed, ShareValue: 500, DurationMonths: 4}}
	agg := ComputeProject(cfg, members)

	if agg.TotalRevenue != 0 {
		t.Fatalf("total revenue = %v, want 0", agg.TotalRevenue)
	}
	// No revenue, no warning: the ratio is reported as 0 even with real costs.
	if agg.CostPercentOfRevenue != 0 {
		t.Errorf("cost percent = %v, want 0 when revenue is 0", agg.CostPercentOfRevenue)
	}
	if agg.NetValue != -2000 {
		t.Errorf("net value = %v, want -2000", agg.NetValue)
	}
}

func TestComputeProjectUnclampedCostPercent(t *testing.T) {
	cfg := ProjectConfig{DurationMonths: 1, PricingModel: PricingFixed, FixedMonthly: 1000}
	members := []Member{{ShareType: ShareTypeFixed, ShareValue: 2500, DurationMonths: 1}}
	agg := ComputeProject(cfg, members)

	if agg.CostPercentOfRevenue != 250 {
		t.Errorf("cost percent = %v, want unclamped 250", agg.CostPercentOfRevenue)
	}
}

func TestComputeProjectDurationFloor(t *testing.T) {
	// Scenario D: a zero duration never reaches the engine as zero.
	cfg := hourlyConfig()
	cfg.DurationMonths = 0
	agg := ComputeProject(cfg, nil)
	if agg.ProjectDuration != 1 {
		t.Errorf("project duration = %d, want floor of 1", agg.ProjectDuration)
	}
	if got := len(GenerateBreakdown(agg)); got != 1 {
		t.Errorf("breakdown length = %d, want 1", got)
	}
}

func TestComputeProjectAllocatedPercentSkipsFixed(t *testing.T) {
	members := []Member{
		{ShareType: ShareTypePercentage, ShareValue: 30, DurationMonths: 3},
		{ShareType: ShareTypeFixed, ShareValue: 2000, DurationMonths: 3},
		{ShareType: ShareTypePercentage, ShareValue: 25, DurationMonths: 1},
	}
	agg := ComputeProject(hourlyConfig(), members)
	if agg.TotalAllocatedPercent != 55 {
		t.Errorf("allocated percent = %v, want 55", agg.TotalAllocatedPercent)
	}
}
