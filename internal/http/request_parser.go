package http

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"stima/internal/core"
)

// parseProjectForm maps the project form onto a config value. Every numeric
// field goes through the core coercion helpers so malformed input zeroes the
// affected term (or floors the duration at one month) instead of failing.
func parseProjectForm(form url.Values) core.ProjectConfig {
	return core.ProjectConfig{
		ProjectName:    sanitizeInput(form.Get("project_name")),
		DurationMonths: core.CoerceDuration(form.Get("duration_months")),
		PricingModel:   core.PricingModel(strings.TrimSpace(form.Get("pricing_model"))),
		HourlyRate:     core.CoerceNumber(form.Get("hourly_rate")),
		HoursPerDay:    core.CoerceNumber(form.Get("hours_per_day")),
		DailyRate:      core.CoerceNumber(form.Get("daily_rate")),
		DaysPerMonth:   core.CoerceNumber(form.Get("days_per_month")),
		FixedMonthly:   core.CoerceNumber(form.Get("fixed_monthly")),
	}
}

// parseMemberForm maps a member form onto a roster entry. Unlike the project
// duration, a member duration coerces to 0 on parse failure: the allocator
// then clips it into [0, projectDuration].
func parseMemberForm(form url.Values) core.Member {
	return core.Member{
		Name:           sanitizeInput(form.Get("name")),
		Role:           sanitizeInput(form.Get("role")),
		EmploymentType: core.EmploymentType(strings.TrimSpace(form.Get("employment_type"))),
		ShareType:      core.ShareType(strings.TrimSpace(form.Get("share_type"))),
		ShareValue:     core.CoerceNumber(form.Get("share_value")),
		DurationMonths: core.CoerceInt(form.Get("duration_months")),
	}
}

// parseIndex extracts a roster index. Unlike the numeric estimate fields
// this is a hard failure: a missing index means a malformed request, not a
// partially edited form.
func parseIndex(form url.Values) (int, error) {
	return strconv.Atoi(strings.TrimSpace(form.Get("index")))
}

// sanitizeInput trims whitespace and strips control characters except tab,
// newline and carriage return.
func sanitizeInput(s string) string {
	s = strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
	return strings.TrimSpace(s)
}

// requireMethod answers with 405 when the request method does not match,
// returning false so the handler can bail out.
func requireMethod(w http.ResponseWriter, r *http.Request, methods ...string) bool {
	for _, m := range methods {
		if r.Method == m {
			return true
		}
	}
	w.Header().Set("Allow", strings.Join(methods, ", "))
	w.WriteHeader(http.StatusMethodNotAllowed)
	return false
}
