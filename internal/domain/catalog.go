package domain

// RoutingRule maps free-text keywords to a required skill. Keywords are a
// comma-separated list matched case-insensitively as substrings. Rules are
// evaluated in catalog order; the first matching rule wins.
type RoutingRule struct {
	ID       string
	Keywords string
	Skill    string
}

// SLARule maps a (category, priority) pair to a response-time budget in
// hours. At most one rule per pair is meaningful; on duplicates the first
// one in catalog order wins.
type SLARule struct {
	ID            string
	CategoryID    string
	Priority      TicketPriority
	ResponseHours int
}

// Category groups tickets and carries a default priority for intake.
type Category struct {
	ID              string
	Name            string
	DefaultPriority TicketPriority
}
