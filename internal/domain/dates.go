package domain

import "time"

// Two textual date forms exist at the service boundary: tickets shown to
// users carry day.month.year, plan bookkeeping uses year-month-day. The
// canonical in-memory form is always time.Time in UTC; comparisons never
// happen on strings.
const (
	UserDateLayout = "02.01.2006"
	PlanDateLayout = "2006-01-02"
)

// ParseUserDate decodes a day.month.year string. Malformed input yields the
// zero time with ok=false; callers must exclude such values from
// date-driven logic instead of failing.
func ParseUserDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(UserDateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t.UTC(), true
}

// ParsePlanDate decodes a year-month-day string with the same absent-on-error
// contract as ParseUserDate.
func ParsePlanDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(PlanDateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t.UTC(), true
}

// FormatUserDate encodes t for user-facing payloads.
func FormatUserDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(UserDateLayout)
}

// FormatPlanDate encodes t for plan bookkeeping.
func FormatPlanDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(PlanDateLayout)
}
