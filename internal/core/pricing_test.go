package core

import "testing"

func TestResolveMonthlyRevenue(t *testing.T) {
	cases := []struct {
		name string
		cfg  ProjectConfig
		want float64
	}{
		{
			name: "hourly",
			cfg:  ProjectConfig{PricingModel: PricingHourly, HourlyRate: 100, HoursPerDay: 8, DaysPerMonth: 20},
			want: 16000,
		},
		{
			name: "daily",
			cfg:  ProjectConfig{PricingModel: PricingDaily, DailyRate: 800, DaysPerMonth: 20},
			want: 16000,
		},
		{
			name: "fixed",
			cfg:  ProjectConfig{PricingModel: PricingFixed, FixedMonthly: 12500},
			want: 12500,
		},
		{
			name: "unknown model yields zero",
			cfg:  ProjectConfig{PricingModel: "retainer", HourlyRate: 100, FixedMonthly: 5000},
			want: 0,
		},
		{
			name: "zeroed factors yield zero",
			cfg:  ProjectConfig{PricingModel: PricingHourly},
			want: 0,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ResolveMonthlyRevenue(tc.cfg); got != tc.want {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}
