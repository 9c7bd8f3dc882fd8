package supplement

import (
	"context"
	"fmt"
	"strings"
)

// Record mirrors a row of the `supplements` table. The table is owned by an
// external writer; this service only reads it.
type Record struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Brand          string     `json:"brand"`
	Form           string     `json:"form"`
	Goals          []string   `json:"goals"`
	Certifications []string   `json:"certifications"`
	Contains       []string   `json:"contains"`
	Allergens      []string   `json:"allergens"`
	BudgetTier     BudgetTier `json:"budget_tier"`
	Description    string     `json:"description"`
}

// Store is the read contract the HTTP layer depends on.
type Store interface {
	Search(ctx context.Context, query string, limit int) ([]Record, error)
	List(ctx context.Context, limit int) ([]Record, error)
	Ping(ctx context.Context) error
}

type BudgetTier string

const (
	BudgetLow    BudgetTier = "low"
	BudgetMedium BudgetTier = "medium"
	BudgetHigh   BudgetTier = "high"
)

// BudgetTiers in ascending order.
var BudgetTiers = []BudgetTier{BudgetLow, BudgetMedium, BudgetHigh}

func ParseBudgetTier(s string) (BudgetTier, error) {
	switch BudgetTier(strings.ToLower(strings.TrimSpace(s))) {
	case BudgetLow:
		return BudgetLow, nil
	case BudgetMedium:
		return BudgetMedium, nil
	case BudgetHigh:
		return BudgetHigh, nil
	default:
		return "", fmt.Errorf("invalid budget tier %q", s)
	}
}

// Rank orders tiers low < medium < high. Unknown tiers rank 0.
func (t BudgetTier) Rank() int {
	switch t {
	case BudgetLow:
		return 1
	case BudgetMedium:
		return 2
	case BudgetHigh:
		return 3
	}
	return 0
}

// Label is the price-bucket glyph the search UI renders.
func (t BudgetTier) Label() string {
	if r := t.Rank(); r > 0 {
		return strings.Repeat("$", r)
	}
	return ""
}
