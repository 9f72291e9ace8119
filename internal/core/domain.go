package core

import "errors"

const (
	PricingHourly PricingModel = "hourly"
	PricingDaily  PricingModel = "daily"
	PricingFixed  PricingModel = "fixed"
)

const (
	ShareTypePercentage ShareType = "percentage"
	ShareTypeFixed      ShareType = "fixed"
)

const (
	EmploymentFullTime EmploymentType = "full-time"
	EmploymentPartTime EmploymentType = "part-time"
	EmploymentReferral EmploymentType = "referral"
)

type (
	PricingModel   string
	ShareType      string
	EmploymentType string

	// ProjectConfig holds the editable estimate settings. Numeric fields are
	// already coerced (see coerce.go); the engine treats them as-is.
	ProjectConfig struct {
		ProjectName    string
		DurationMonths int // >= 1
		PricingModel   PricingModel
		HourlyRate     float64
		HoursPerDay    float64
		DailyRate      float64
		DaysPerMonth   float64
		FixedMonthly   float64
	}

	// Member is one roster entry. Order in the slice is display order only.
	Member struct {
		Name           string
		Role           string
		EmploymentType EmploymentType
		ShareType      ShareType
		ShareValue     float64
		DurationMonths int
	}

	// MemberStats are the derived payout figures for a single member.
	MemberStats struct {
		Member            Member
		EffectiveDuration int
		MonthlyPayout     float64
		TotalPayout       float64
	}

	// Aggregate is the full recomputed result for one estimate state.
	// It is derived data: recomputed from scratch on every change, never stored.
	Aggregate struct {
		ProjectDuration       int
		MonthlyRevenue        float64
		TotalRevenue          float64
		TotalCost             float64
		NetValue              float64
		CostPercentOfRevenue  float64 // unclamped; display may cap it
		TotalAllocatedPercent float64 // sum of percentage shares, surfaced but not enforced
		Members               []MemberStats
	}

	// BreakdownRow is one month of the amortized schedule. CumulativeNet is a
	// running sum, so rows only make sense in increasing month order.
	BreakdownRow struct {
		Month         int
		GrossRevenue  float64
		TeamCost      float64
		ReferralCost  float64
		NetIncome     float64
		CumulativeNet float64
	}
)

var (
	ErrInvalidIndex = errors.New("invalid member index")
)

// DefaultMember returns the roster entry created by an "add member" action.
// The duration snapshot is the project duration at creation time.
func DefaultMember(projectDuration int) Member {
	return Member{
		EmploymentType: EmploymentFullTime,
		ShareType:      ShareTypePercentage,
		ShareValue:     10,
		DurationMonths: projectDuration,
	}
}
