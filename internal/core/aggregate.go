package core

// ComputeProject runs the full pipeline over one estimate state and returns
// the project-level totals plus per-member stats, in roster order.
//
// CostPercentOfRevenue is left unclamped; when total revenue is zero the
// ratio is reported as 0 rather than an undefined value (no revenue, no
// warning). TotalAllocatedPercent accumulates percentage shares but is not
// used to cap anything.
func ComputeProject(cfg ProjectConfig, members []Member) Aggregate {
	duration := cfg.DurationMonths
	if duration < 1 {
		duration = 1
	}
	revenue := ResolveMonthlyRevenue(cfg)

	agg := Aggregate{
		ProjectDuration: duration,
		MonthlyRevenue:  revenue,
		TotalRevenue:    revenue * float64(duration),
		Members:         make([]MemberStats, 0, len(members)),
	}

	for _, m := range members {
		stats := AllocateMember(m, revenue, duration)
		agg.TotalCost += stats.TotalPayout
		if m.ShareType == ShareTypePercentage {
			agg.TotalAllocatedPercent += m.ShareValue
		}
		agg.Members = append(agg.Members, stats)
	}

	agg.NetValue = agg.TotalRevenue - agg.TotalCost
	if agg.TotalRevenue > 0 {
		agg.CostPercentOfRevenue = agg.TotalCost / agg.TotalRevenue * 100
	}

	return agg
}
