package supplement

// Taxonomy is the static filter vocabulary for the search page.
type Taxonomy struct {
	Goals          []string `json:"goals"`
	Forms          []string `json:"forms"`
	Budgets        []string `json:"budgets"`
	Certifications []string `json:"certifications"`
	AvoidCommon    []string `json:"avoidCommon"`
	Allergens      []string `json:"allergens"`
}

func DefaultTaxonomy() Taxonomy {
	budgets := make([]string, 0, len(BudgetTiers))
	for _, t := range BudgetTiers {
		budgets = append(budgets, t.Label())
	}
	return Taxonomy{
		Goals:          []string{"Energy", "Sleep", "Focus", "Stress", "Gut", "Recovery"},
		Forms:          []string{"Capsule", "Tablet", "Powder", "Gummy", "Liquid"},
		Budgets:        budgets,
		Certifications: []string{"Third-party tested", "NSF", "USP", "Informed Choice"},
		AvoidCommon:    []string{"Melatonin", "Caffeine", "Artificial colors", "Gelatin"},
		Allergens:      []string{"Dairy", "Gluten", "Soy", "Egg", "Tree nuts", "Peanuts"},
	}
}
