package db

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"controlcompass/internal/models"
)

// normalized trims, uppercases and de-duplicates identifier values while
// keeping them sorted for stable output.
func normalized(vals []string) []string {
	out := make([]string, 0, len(vals))
	seen := make(map[string]bool, len(vals))
	for _, v := range vals {
		v = strings.ToUpper(strings.TrimSpace(v))
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

func normalizedAreas(areas []models.AreaServed) []models.AreaServed {
	out := make([]models.AreaServed, 0, len(areas))
	for _, a := range areas {
		a.Country = strings.ToUpper(strings.TrimSpace(a.Country))
		if a.Country == "" {
			continue
		}
		if a.State != nil {
			s := strings.ToUpper(strings.TrimSpace(*a.State))
			if s == "" {
				a.State = nil
			} else {
				a.State = &s
			}
		}
		out = append(out, a)
	}
	return out
}

// insertCompanyChildren writes the services, certifications and served
// areas of a listing inside the caller's transaction.
func insertCompanyChildren(ctx context.Context, tx pgx.Tx, companyID uuid.UUID, form *models.CompanyForm) error {
	for _, service := range normalized(form.Services) {
		_, err := tx.Exec(ctx,
			`INSERT INTO company_services (company_id, service) VALUES ($1, $2)`,
			companyID, service)
		if err != nil {
			return fmt.Errorf("failed to insert service: %w", err)
		}
	}

	for _, cert := range normalized(form.Certifications) {
		_, err := tx.Exec(ctx,
			`INSERT INTO company_certifications (company_id, certification) VALUES ($1, $2)`,
			companyID, cert)
		if err != nil {
			return fmt.Errorf("failed to insert certification: %w", err)
		}
	}

	for _, area := range normalizedAreas(form.AreasServed) {
		_, err := tx.Exec(ctx,
			`INSERT INTO company_areas_served (company_id, country, state, region) VALUES ($1, $2, $3, $4)`,
			companyID, area.Country, area.State, area.Region)
		if err != nil {
			return fmt.Errorf("failed to insert served area: %w", err)
		}
	}

	return nil
}

// attachRelations loads the child collections for a batch of companies
// with one query per child table.
func (d *DB) attachRelations(ctx context.Context, companies []models.Company) ([]models.CompanyDetail, error) {
	details := make([]models.CompanyDetail, len(companies))
	ids := make([]uuid.UUID, len(companies))
	index := make(map[uuid.UUID]int, len(companies))
	for i, c := range companies {
		details[i] = models.CompanyDetail{
			Company:        c,
			Services:       []string{},
			Certifications: []string{},
			AreasServed:    []models.AreaServed{},
		}
		ids[i] = c.ID
		index[c.ID] = i
	}
	if len(ids) == 0 {
		return details, nil
	}

	rows, err := d.Pool.Query(ctx, `
		SELECT company_id, service FROM company_services
		WHERE company_id = ANY($1) ORDER BY service`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load services: %w", err)
	}
	if err := collectChild(rows, func(id uuid.UUID, v string) {
		details[index[id]].Services = append(details[index[id]].Services, v)
	}); err != nil {
		return nil, err
	}

	rows, err = d.Pool.Query(ctx, `
		SELECT company_id, certification FROM company_certifications
		WHERE company_id = ANY($1) ORDER BY certification`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load certifications: %w", err)
	}
	if err := collectChild(rows, func(id uuid.UUID, v string) {
		details[index[id]].Certifications = append(details[index[id]].Certifications, v)
	}); err != nil {
		return nil, err
	}

	rows, err = d.Pool.Query(ctx, `
		SELECT company_id, country, state, region FROM company_areas_served
		WHERE company_id = ANY($1) ORDER BY country, state NULLS FIRST`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load served areas: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var id uuid.UUID
		var area models.AreaServed
		if err := rows.Scan(&id, &area.Country, &area.State, &area.Region); err != nil {
			return nil, err
		}
		details[index[id]].AreasServed = append(details[index[id]].AreasServed, area)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return details, nil
}

func collectChild(rows pgx.Rows, add func(uuid.UUID, string)) error {
	defer rows.Close()
	for rows.Next() {
		var id uuid.UUID
		var v string
		if err := rows.Scan(&id, &v); err != nil {
			return err
		}
		add(id, v)
	}
	return rows.Err()
}
