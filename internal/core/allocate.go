package core

// AllocateMember derives the payout figures for a single roster entry.
//
// A member is never compensated past the end of the project: the effective
// duration is the member's own term clipped to the project duration, and it
// never goes below zero. Percentage shares scale with monthly revenue; fixed
// shares do not.
func AllocateMember(m Member, monthlyRevenue float64, projectDuration int) MemberStats {
	eff := m.DurationMonths
	if eff > projectDuration {
		eff = projectDuration
	}
	if eff < 0 {
		eff = 0
	}

	var monthly float64
	switch m.ShareType {
	case ShareTypePercentage:
		monthly = monthlyRevenue * m.ShareValue / 100
	case ShareTypeFixed:
		monthly = m.ShareValue
	}

	return MemberStats{
		Member:            m,
		EffectiveDuration: eff,
		MonthlyPayout:     monthly,
		TotalPayout:       monthly * float64(eff),
	}
}
