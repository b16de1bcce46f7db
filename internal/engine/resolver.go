package engine

import (
	"strings"

	"github.com/spec-kit/maintenance-service/internal/domain"
)

// Matcher decides which skill a free-text fault description calls for.
// Implementations must be pure.
type Matcher interface {
	MatchRule(text string) (skill string, ok bool)
}

// KeywordMatcher matches routing rules by case-insensitive substring over
// comma-separated keyword lists. Rules are scanned in order; the first rule
// with any matching keyword wins.
type KeywordMatcher struct {
	Rules []domain.RoutingRule
}

// MatchRule implements Matcher.
func (m KeywordMatcher) MatchRule(text string) (string, bool) {
	lowered := strings.ToLower(text)
	for _, rule := range m.Rules {
		for _, keyword := range strings.Split(rule.Keywords, ",") {
			keyword = strings.ToLower(strings.TrimSpace(keyword))
			if keyword == "" {
				continue
			}
			if strings.Contains(lowered, keyword) {
				return rule.Skill, true
			}
		}
	}
	return "", false
}

// Resolve picks a technician for a new ticket. It concatenates title and
// description, asks the matcher for the required skill, filters technicians
// to assignable ones carrying that skill and selects the candidate with the
// fewest non-DONE tickets currently assigned to them. Ties go to the first
// candidate in directory order.
//
// An empty result with ok=false means unassigned; callers must treat that
// as a normal outcome, never as an error.
func Resolve(title, description string, matcher Matcher, technicians []domain.Technician, allTickets []domain.Ticket) (string, bool) {
	skill, matched := matcher.MatchRule(title + " " + description)
	if !matched {
		return "", false
	}

	var best *domain.Technician
	bestLoad := 0
	for i := range technicians {
		tech := &technicians[i]
		if !tech.Assignable() || !tech.HasSkill(skill) {
			continue
		}
		load := Load(tech.ID, allTickets)
		if best == nil || load < bestLoad {
			best = tech
			bestLoad = load
		}
	}
	if best == nil {
		return "", false
	}
	return best.ID, true
}

// Load counts the tickets currently assigned to the technician that are not
// DONE, across the whole ticket set.
func Load(technicianID string, tickets []domain.Ticket) int {
	count := 0
	for i := range tickets {
		t := &tickets[i]
		if t.Status == domain.TicketStatusDone {
			continue
		}
		if t.AssigneeID != nil && *t.AssigneeID == technicianID {
			count++
		}
	}
	return count
}
