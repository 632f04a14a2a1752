package db

import (
	"context"
	"fmt"
	"strings"

	"controlcompass/internal/models"
)

// PageSize is the fixed number of listings per browse page.
const PageSize = 30

// CompanyFilter describes one directory browse request. Zero values mean
// "no constraint on this dimension". MatchNone forces an empty result,
// used when a filter parameter was present but carried no valid values.
type CompanyFilter struct {
	Search         string
	Service        string
	Location       string
	Size           string
	Certifications []string
	AreaStates     []string
	MatchNone      bool
	Page           int
}

// compile builds the WHERE clause shared by the count and page queries.
// Placeholders are numbered as arguments are appended, so the same args
// slice serves both queries.
func (f *CompanyFilter) compile() (string, []any) {
	var clauses []string
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	clauses = append(clauses, "c.status = "+arg(models.StatusApproved))

	if f.MatchNone {
		clauses = append(clauses, "FALSE")
	}

	if search := strings.TrimSpace(f.Search); search != "" {
		p := arg("%" + search + "%")
		clauses = append(clauses, "(c.name ILIKE "+p+" OR c.description ILIKE "+p+")")
	}

	if f.Service != "" {
		clauses = append(clauses, `EXISTS (
			SELECT 1 FROM company_services s
			WHERE s.company_id = c.id AND s.service = `+arg(f.Service)+`)`)
	}

	if f.Location != "" {
		clauses = append(clauses, "c.hq_state = "+arg(f.Location))
	}

	if f.Size != "" {
		clauses = append(clauses, "c.size_bucket = "+arg(f.Size))
	}

	// Multiple certifications widen the result: any one of them matches.
	if len(f.Certifications) > 0 {
		clauses = append(clauses, `EXISTS (
			SELECT 1 FROM company_certifications cc
			WHERE cc.company_id = c.id AND cc.certification = ANY(`+arg(f.Certifications)+`))`)
	}

	// A company serving the whole US matches any state filter.
	if len(f.AreaStates) > 0 {
		clauses = append(clauses, `EXISTS (
			SELECT 1 FROM company_areas_served a
			WHERE a.company_id = c.id
			AND (a.state = ANY(`+arg(f.AreaStates)+`) OR (a.country = 'US' AND a.state IS NULL)))`)
	}

	return strings.Join(clauses, " AND "), args
}

// SearchApprovedCompanies runs a directory browse: count, page of rows in
// submission order, child collections attached.
func (d *DB) SearchApprovedCompanies(ctx context.Context, filter *CompanyFilter) (*models.CompanyPage, error) {
	where, args := filter.compile()

	var totalCount int
	err := d.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM companies c WHERE `+where, args...).Scan(&totalCount)
	if err != nil {
		return nil, fmt.Errorf("failed to count companies: %w", err)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	totalPages := (totalCount + PageSize - 1) / PageSize

	limitArgs := append(args, PageSize, (page-1)*PageSize)
	rows, err := d.Pool.Query(ctx, fmt.Sprintf(`
		SELECT %s FROM companies c
		WHERE %s
		ORDER BY c.created_at ASC, c.id ASC
		LIMIT $%d OFFSET $%d`,
		companyColumns, where, len(args)+1, len(args)+2),
		limitArgs...)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	companies, err := scanCompanies(rows)
	if err != nil {
		return nil, err
	}

	details, err := d.attachRelations(ctx, companies)
	if err != nil {
		return nil, err
	}

	return &models.CompanyPage{
		Companies:   details,
		TotalCount:  totalCount,
		TotalPages:  totalPages,
		CurrentPage: page,
	}, nil
}

// GetFilterOptions returns the facet values actually present among
// approved listings.
func (d *DB) GetFilterOptions(ctx context.Context) (*models.FilterOptions, error) {
	opts := &models.FilterOptions{
		Services:       []string{},
		Locations:      []string{},
		Sizes:          []string{},
		Certifications: []string{},
	}

	queries := []struct {
		sql  string
		dest *[]string
	}{
		{`SELECT DISTINCT s.service FROM company_services s
			JOIN companies c ON c.id = s.company_id
			WHERE c.status = $1 ORDER BY s.service`, &opts.Services},
		{`SELECT DISTINCT c.hq_state FROM companies c
			WHERE c.status = $1 AND c.hq_state IS NOT NULL ORDER BY c.hq_state`, &opts.Locations},
		{`SELECT DISTINCT c.size_bucket FROM companies c
			WHERE c.status = $1 AND c.size_bucket IS NOT NULL ORDER BY c.size_bucket`, &opts.Sizes},
		{`SELECT DISTINCT cc.certification FROM company_certifications cc
			JOIN companies c ON c.id = cc.company_id
			WHERE c.status = $1 ORDER BY cc.certification`, &opts.Certifications},
	}

	for _, q := range queries {
		rows, err := d.Pool.Query(ctx, q.sql, models.StatusApproved)
		if err != nil {
			return nil, fmt.Errorf("failed to load filter options: %w", err)
		}
		for rows.Next() {
			var v string
			if err := rows.Scan(&v); err != nil {
				rows.Close()
				return nil, err
			}
			*q.dest = append(*q.dest, v)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return nil, err
		}
	}

	return opts, nil
}
