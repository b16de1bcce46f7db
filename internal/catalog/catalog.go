package catalog

import (
	"github.com/spec-kit/maintenance-service/internal/domain"
)

// Catalog bundles the static rule configuration the engine evaluates.
// Routing rules and SLA rules are ordered sequences: "first match wins" is
// part of the contract, so they are never held in maps.
type Catalog struct {
	RoutingRules []domain.RoutingRule
	SLARules     []domain.SLARule
	Categories   []domain.Category
	FallbackDays map[domain.TicketPriority]int
}

// Provider yields the current rule catalog. Reads are cheap; the engine
// re-reads per pass instead of caching.
type Provider interface {
	Catalog() Catalog
}

// StaticProvider serves a fixed catalog.
type StaticProvider struct {
	catalog Catalog
}

// NewStaticProvider wraps a catalog in a Provider.
func NewStaticProvider(c Catalog) *StaticProvider {
	return &StaticProvider{catalog: c}
}

// Catalog implements Provider.
func (p *StaticProvider) Catalog() Catalog {
	return p.catalog
}

// CategoryByID returns the category with the given ID, if present.
func (c Catalog) CategoryByID(id string) (domain.Category, bool) {
	for _, cat := range c.Categories {
		if cat.ID == id {
			return cat, true
		}
	}
	return domain.Category{}, false
}

// Default returns the stock facility catalog used when no catalog rows are
// present in the database.
func Default() Catalog {
	return Catalog{
		RoutingRules: []domain.RoutingRule{
			{ID: "rule-sanitaer", Keywords: "wasser, rohr, leck, abfluss, sanitär", Skill: "Sanitär"},
			{ID: "rule-elektrik", Keywords: "strom, licht, lampe, steckdose, sicherung", Skill: "Elektrik"},
			{ID: "rule-hvac", Keywords: "heizung, klima, lüftung, temperatur", Skill: "HLK"},
			{ID: "rule-schliess", Keywords: "schloss, tür, schlüssel, fenster", Skill: "Schließtechnik"},
			{ID: "rule-brandschutz", Keywords: "brand, rauch, feuerlöscher, fluchtweg", Skill: "Brandschutz"},
		},
		SLARules: []domain.SLARule{
			{ID: "sla-sich-high", CategoryID: "cat-sicherheit", Priority: domain.TicketPriorityHigh, ResponseHours: 4},
			{ID: "sla-sich-medium", CategoryID: "cat-sicherheit", Priority: domain.TicketPriorityMedium, ResponseHours: 24},
			{ID: "sla-geb-high", CategoryID: "cat-gebaeudetechnik", Priority: domain.TicketPriorityHigh, ResponseHours: 8},
			{ID: "sla-geb-medium", CategoryID: "cat-gebaeudetechnik", Priority: domain.TicketPriorityMedium, ResponseHours: 48},
			{ID: "sla-rein-high", CategoryID: "cat-reinigung", Priority: domain.TicketPriorityHigh, ResponseHours: 24},
		},
		Categories: []domain.Category{
			{ID: "cat-gebaeudetechnik", Name: "Gebäudetechnik", DefaultPriority: domain.TicketPriorityMedium},
			{ID: "cat-sicherheit", Name: "Sicherheit", DefaultPriority: domain.TicketPriorityHigh},
			{ID: "cat-wartung", Name: "Wartung", DefaultPriority: domain.TicketPriorityMedium},
			{ID: "cat-reinigung", Name: "Reinigung", DefaultPriority: domain.TicketPriorityLow},
			{ID: "cat-aussenanlagen", Name: "Außenanlagen", DefaultPriority: domain.TicketPriorityLow},
		},
		FallbackDays: map[domain.TicketPriority]int{
			domain.TicketPriorityHigh:   1,
			domain.TicketPriorityMedium: 3,
			domain.TicketPriorityLow:    7,
		},
	}
}
