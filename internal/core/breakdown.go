package core

// GenerateBreakdown expands an aggregate into the month-by-month schedule,
// months numbered 1..ProjectDuration. Rows are generated in increasing month
// order because CumulativeNet is a running sum over the prior rows; the last
// row's CumulativeNet equals TotalRevenue - TotalCost.
func GenerateBreakdown(agg Aggregate) []BreakdownRow {
	rows := make([]BreakdownRow, 0, agg.ProjectDuration)
	var cumulative float64

	for month := 1; month <= agg.ProjectDuration; month++ {
		var team, referral float64
		for _, stats := range agg.Members {
			if month > stats.EffectiveDuration {
				continue
			}
			if stats.Member.EmploymentType == EmploymentReferral {
				referral += stats.MonthlyPayout
			} else {
				team += stats.MonthlyPayout
			}
		}

		net := agg.MonthlyRevenue - (team + referral)
		cumulative += net
		rows = append(rows, BreakdownRow{
			Month:         month,
			GrossRevenue:  agg.MonthlyRevenue,
			TeamCost:      team,
			ReferralCost:  referral,
			NetIncome:     net,
			CumulativeNet: cumulative,
		})
	}

	return rows
}
