package engine

import (
	"time"

	"github.com/spec-kit/maintenance-service/internal/domain"
)

// DefaultFallbackDays applies when a priority is missing from the fallback
// table. The calculator must always produce a date.
const DefaultFallbackDays = 7

// ComputeDueDate derives a due timestamp for a (category, priority) pair.
// A matching SLA rule is finer-grained and always wins; otherwise the
// per-priority day fallback applies, and an unknown priority falls back to
// DefaultFallbackDays. Rules are scanned in catalog order, first match wins.
func ComputeDueDate(categoryID string, priority domain.TicketPriority, slaRules []domain.SLARule, fallbackDays map[domain.TicketPriority]int, now time.Time) time.Time {
	for _, rule := range slaRules {
		if rule.CategoryID == categoryID && rule.Priority == priority {
			return now.Add(time.Duration(rule.ResponseHours) * time.Hour)
		}
	}
	days, ok := fallbackDays[priority]
	if !ok {
		days = DefaultFallbackDays
	}
	return now.AddDate(0, 0, days)
}

// DeterminePriority resolves the intake priority: an explicit caller-supplied
// value wins, then the category's configured default, then the global
// default. The three tiers are independent and must stay that way.
func DeterminePriority(explicit domain.TicketPriority, categoryID string, categories []domain.Category, globalDefault domain.TicketPriority) domain.TicketPriority {
	if domain.ValidPriority(explicit) {
		return explicit
	}
	for _, cat := range categories {
		if cat.ID == categoryID && domain.ValidPriority(cat.DefaultPriority) {
			return cat.DefaultPriority
		}
	}
	return globalDefault
}
