package core

// ResolveMonthlyRevenue derives the monthly revenue figure from the pricing
// model. It is total over all inputs: an unknown model yields 0, never an
// error.
func ResolveMonthlyRevenue(cfg ProjectConfig) float64 {
	switch cfg.PricingModel {
	case PricingFixed:
		return cfg.FixedMonthly
	case PricingDaily:
		return cfg.DailyRate * cfg.DaysPerMonth
	case PricingHourly:
		return cfg.HourlyRate * cfg.HoursPerDay * cfg.DaysPerMonth
	default:
		return 0
	}
}
