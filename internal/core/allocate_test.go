package core

import "testing"

func TestAllocateMemberClipsDuration(t *testing.T) {
	cases := []struct {
		name            string
		memberMonths    int
		projectDuration int
		wantEffective   int
	}{
		{"shorter than project", 2, 3, 2},
		{"equal to project", 3, 3, 3},
		{"outlasts project", 12, 3, 3},
		{"coerced to zero", 0, 3, 0},
		{"negative clamps to zero", -5, 3, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := Member{ShareType: ShareTypePercentage, ShareValue: 10, DurationMonths: tc.memberMonths}
			stats := AllocateMember(m, 1000, tc.projectDuration)
			if stats.EffectiveDuration != tc.wantEffective {
				t.Errorf("effective duration = %d, want %d", stats.EffectiveDuration, tc.wantEffective)
			}
			if stats.EffectiveDuration < 0 || stats.EffectiveDuration > tc.projectDuration {
				t.Errorf("effective duration %d outside [0, %d]", stats.EffectiveDuration, tc.projectDuration)
			}
		})
	}
}

func TestAllocateMemberPercentage(t *testing.T) {
	m := Member{ShareType: ShareTypePercentage, ShareValue: 50, DurationMonths: 2}
	stats := AllocateMember(m, 16000, 3)

	if stats.MonthlyPayout != 8000 {
		t.Errorf("monthly payout = %v, want 8000", stats.MonthlyPayout)
	}
	if stats.TotalPayout != 16000 {
		t.Errorf("total payout = %v, want 16000", stats.TotalPayout)
	}
}

func TestAllocateMemberFixedIgnoresRevenue(t *testing.T) {
	// Scenario C: a fixed share does not scale with revenue.
	m := Member{ShareType: ShareTypeFixed, ShareValue: 500, DurationMonths: 1}
	for _, revenue := range []float64{0, 16000, 1000000} {
		stats := AllocateMember(m, revenue, 6)
		if stats.MonthlyPayout != 500 {
			t.Errorf("revenue %v: monthly payout = %v, want 500", revenue, stats.MonthlyPayout)
		}
	}
}

func TestAllocateMemberUnknownShareType(t *testing.T) {
	m := Member{ShareType: "equity", ShareValue: 50, DurationMonths: 2}
	stats := AllocateMember(m, 16000, 3)
	if stats.MonthlyPayout != 0 || stats.TotalPayout != 0 {
		t.Errorf("unknown share type should zero payouts, got monthly=%v total=%v",
			stats.MonthlyPayout, stats.TotalPayout)
	}
}
