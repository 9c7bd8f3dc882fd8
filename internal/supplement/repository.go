package supplement

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// MaxResults caps every read; the table is never returned in full.
const MaxResults = 25

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

const selectColumns = `
SELECT id::text,
       COALESCE(name, ''),
       COALESCE(brand, ''),
       COALESCE(form, ''),
       COALESCE(goals, '{}')::text[],
       COALESCE(certifications, '{}')::text[],
       COALESCE(contains, '{}')::text[],
       COALESCE(allergens, '{}')::text[],
       COALESCE(budget_tier::text, ''),
       COALESCE(description, '')
FROM supplements
`

// Search returns rows whose name, brand or description contains query,
// case-insensitively. An empty query behaves like List.
func (r *Repository) Search(ctx context.Context, query string, limit int) ([]Record, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return r.List(ctx, limit)
	}

	const q = selectColumns + `
WHERE name ILIKE $1 ESCAPE '\'
   OR brand ILIKE $1 ESCAPE '\'
   OR description ILIKE $1 ESCAPE '\'
ORDER BY supplements.id
LIMIT $2
`
	rows, err := r.db.Query(ctx, q, ContainsPattern(query), clampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("search supplements: %w", err)
	}
	return scanRecords(rows)
}

// List returns up to limit rows with no filter.
func (r *Repository) List(ctx context.Context, limit int) ([]Record, error) {
	const q = selectColumns + `
ORDER BY supplements.id
LIMIT $1
`
	rows, err := r.db.Query(ctx, q, clampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("list supplements: %w", err)
	}
	return scanRecords(rows)
}

func (r *Repository) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}

func scanRecords(rows pgx.Rows) ([]Record, error) {
	defer rows.Close()

	out := make([]Record, 0)
	for rows.Next() {
		var (
			rec  Record
			tier string
		)
		if err := rows.Scan(
			&rec.ID, &rec.Name, &rec.Brand, &rec.Form,
			&rec.Goals, &rec.Certifications, &rec.Contains, &rec.Allergens,
			&tier, &rec.Description,
		); err != nil {
			return nil, fmt.Errorf("scan supplement: %w", err)
		}
		rec.BudgetTier = normalizeBudgetTier(tier)
		// pgx decodes an empty array as a nil slice; clients expect [].
		rec.Goals = nonNil(rec.Goals)
		rec.Certifications = nonNil(rec.Certifications)
		rec.Contains = nonNil(rec.Contains)
		rec.Allergens = nonNil(rec.Allergens)
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read supplements: %w", err)
	}
	return out, nil
}

// normalizeBudgetTier canonicalizes stored tiers (" High " becomes high).
// Values outside the known tiers pass through unchanged so nothing is lost.
func normalizeBudgetTier(raw string) BudgetTier {
	if t, err := ParseBudgetTier(raw); err == nil {
		return t
	}
	return BudgetTier(raw)
}

// ContainsPattern builds an ILIKE pattern matching s literally anywhere in
// the column. %, _ and \ in s are escaped.
func ContainsPattern(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('%')
	for _, c := range s {
		switch c {
		case '\\', '%', '_':
			b.WriteByte('\\')
		}
		b.WriteRune(c)
	}
	b.WriteByte('%')
	return b.String()
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func clampLimit(limit int) int {
	if limit <= 0 || limit > MaxResults {
		return MaxResults
	}
	return limit
}
