package db

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"controlcompass/internal/models"
	"controlcompass/internal/slug"
)

const companyColumns = `c.id, c.name, c.slug, c.description, c.website_url, c.logo_url,
	c.phone, c.sales_email, c.hq_address, c.hq_city, c.hq_state, c.hq_zip, c.hq_country,
	c.year_founded, c.size_bucket, c.status, c.created_at, c.updated_at`

// slugProbeLimit bounds the numeric suffixes tried before giving up on a
// company name.
const slugProbeLimit = 50

// createRetries bounds re-resolution attempts when a concurrent insert
// takes the slug we just probed.
const createRetries = 3

func scanCompany(row pgx.Row) (*models.Company, error) {
	var c models.Company
	err := row.Scan(
		&c.ID, &c.Name, &c.Slug, &c.Description, &c.WebsiteURL, &c.LogoURL,
		&c.Phone, &c.SalesEmail, &c.HQAddress, &c.HQCity, &c.HQState, &c.HQZip, &c.HQCountry,
		&c.YearFounded, &c.SizeBucket, &c.Status, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func scanCompanies(rows pgx.Rows) ([]models.Company, error) {
	defer rows.Close()
	var companies []models.Company
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, err
		}
		companies = append(companies, *c)
	}
	return companies, rows.Err()
}

// nullable converts an optional form string to a pointer, treating blank
// input as absent.
func nullable(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// ResolveSlug finds the first free slug for base: base itself, then
// base-1 through base-50. Returns ErrSlugSpaceExhausted when every
// candidate is taken.
func (d *DB) ResolveSlug(ctx context.Context, base string) (string, error) {
	candidates := make([]string, 0, slugProbeLimit+1)
	candidates = append(candidates, base)
	for i := 1; i <= slugProbeLimit; i++ {
		candidates = append(candidates, fmt.Sprintf("%s-%d", base, i))
	}

	rows, err := d.Pool.Query(ctx, `SELECT slug FROM companies WHERE slug = ANY($1)`, candidates)
	if err != nil {
		return "", fmt.Errorf("failed to probe slugs: %w", err)
	}
	defer rows.Close()

	taken := make(map[string]bool)
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return "", err
		}
		taken[s] = true
	}
	if err := rows.Err(); err != nil {
		return "", err
	}

	for _, candidate := range candidates {
		if !taken[candidate] {
			return candidate, nil
		}
	}
	return "", ErrSlugSpaceExhausted
}

// CreateCompany inserts a new pending listing with its services,
// certifications and served areas, and records ownerID as its OWNER. The
// slug is derived from the company name; a concurrent insert of the same
// slug triggers re-resolution.
func (d *DB) CreateCompany(ctx context.Context, form *models.CompanyForm, ownerID uuid.UUID) (*models.CompanyDetail, error) {
	base := slug.Make(form.Name)

	var lastErr error
	for attempt := 0; attempt < createRetries; attempt++ {
		candidate, err := d.ResolveSlug(ctx, base)
		if err != nil {
			return nil, err
		}

		detail, err := d.createCompanyWithSlug(ctx, form, ownerID, candidate)
		if err == nil {
			return detail, nil
		}
		if !isUniqueViolation(err, "companies_slug_key") {
			return nil, err
		}
		lastErr = ErrDuplicateSlug
	}
	return nil, lastErr
}

func (d *DB) createCompanyWithSlug(ctx context.Context, form *models.CompanyForm, ownerID uuid.UUID, slugVal string) (*models.CompanyDetail, error) {
	tx, err := d.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	country := strings.TrimSpace(form.HQCountry)
	if country == "" {
		country = "US"
	}

	row := tx.QueryRow(ctx, `
		INSERT INTO companies (name, slug, description, website_url, logo_url,
			phone, sales_email, hq_address, hq_city, hq_state, hq_zip, hq_country,
			year_founded, size_bucket, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING `+strings.ReplaceAll(companyColumns, "c.", ""),
		strings.TrimSpace(form.Name), slugVal, nullable(form.Description),
		nullable(form.WebsiteURL), nullable(form.LogoURL), nullable(form.Phone),
		nullable(form.SalesEmail), nullable(form.HQAddress), nullable(form.HQCity),
		nullable(strings.ToUpper(form.HQState)), nullable(form.HQZip), country,
		form.YearFounded, nullable(form.SizeBucket), models.StatusPending,
	)
	company, err := scanCompany(row)
	if err != nil {
		return nil, fmt.Errorf("failed to insert company: %w", err)
	}

	if err := insertCompanyChildren(ctx, tx, company.ID, form); err != nil {
		return nil, err
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO user_companies (user_id, company_id, relation)
		VALUES ($1, $2, $3)`,
		ownerID, company.ID, models.RelationOwner,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to record company owner: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit: %w", err)
	}

	return &models.CompanyDetail{
		Company:        *company,
		Services:       normalized(form.Services),
		Certifications: normalized(form.Certifications),
		AreasServed:    normalizedAreas(form.AreasServed),
	}, nil
}

// UpdateCompany replaces the content fields and child collections of an
// existing listing. Slug and status are untouched.
func (d *DB) UpdateCompany(ctx context.Context, id uuid.UUID, form *models.CompanyForm) (*models.CompanyDetail, error) {
	tx, err := d.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	country := strings.TrimSpace(form.HQCountry)
	if country == "" {
		country = "US"
	}

	row := tx.QueryRow(ctx, `
		UPDATE companies SET name = $2, description = $3, website_url = $4,
			logo_url = $5, phone = $6, sales_email = $7, hq_address = $8,
			hq_city = $9, hq_state = $10, hq_zip = $11, hq_country = $12,
			year_founded = $13, size_bucket = $14, updated_at = NOW()
		WHERE id = $1
		RETURNING `+strings.ReplaceAll(companyColumns, "c.", ""),
		id, strings.TrimSpace(form.Name), nullable(form.Description),
		nullable(form.WebsiteURL), nullable(form.LogoURL), nullable(form.Phone),
		nullable(form.SalesEmail), nullable(form.HQAddress), nullable(form.HQCity),
		nullable(strings.ToUpper(form.HQState)), nullable(form.HQZip), country,
		form.YearFounded, nullable(form.SizeBucket),
	)
	company, err := scanCompany(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCompanyNotFound
		}
		return nil, fmt.Errorf("failed to update company: %w", err)
	}

	for _, table := range []string{"company_services", "company_certifications", "company_areas_served"} {
		if _, err := tx.Exec(ctx, `DELETE FROM `+table+` WHERE company_id = $1`, id); err != nil {
			return nil, fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	if err := insertCompanyChildren(ctx, tx, id, form); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit: %w", err)
	}

	return &models.CompanyDetail{
		Company:        *company,
		Services:       normalized(form.Services),
		Certifications: normalized(form.Certifications),
		AreasServed:    normalizedAreas(form.AreasServed),
	}, nil
}

// GetCompanyByID fetches a company by id regardless of status.
func (d *DB) GetCompanyByID(ctx context.Context, id uuid.UUID) (*models.CompanyDetail, error) {
	row := d.Pool.QueryRow(ctx, `SELECT `+companyColumns+` FROM companies c WHERE c.id = $1`, id)
	company, err := scanCompany(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCompanyNotFound
		}
		return nil, fmt.Errorf("failed to get company: %w", err)
	}
	return d.attachOne(ctx, company)
}

// GetApprovedCompanyBySlug fetches the public detail view of a listing.
// Pending and rejected listings are invisible here.
func (d *DB) GetApprovedCompanyBySlug(ctx context.Context, slugVal string) (*models.CompanyDetail, error) {
	row := d.Pool.QueryRow(ctx,
		`SELECT `+companyColumns+` FROM companies c WHERE c.slug = $1 AND c.status = $2`,
		slugVal, models.StatusApproved)
	company, err := scanCompany(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCompanyNotFound
		}
		return nil, fmt.Errorf("failed to get company: %w", err)
	}
	return d.attachOne(ctx, company)
}

// GetPendingCompanies returns the review queue, oldest submissions first.
func (d *DB) GetPendingCompanies(ctx context.Context) ([]models.CompanyDetail, error) {
	rows, err := d.Pool.Query(ctx,
		`SELECT `+companyColumns+` FROM companies c WHERE c.status = $1 ORDER BY c.created_at ASC, c.id ASC`,
		models.StatusPending)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending companies: %w", err)
	}
	companies, err := scanCompanies(rows)
	if err != nil {
		return nil, err
	}
	return d.attachRelations(ctx, companies)
}

// ApproveCompany marks a listing approved. Approving an already approved
// or rejected listing is a no-op beyond setting the status again.
func (d *DB) ApproveCompany(ctx context.Context, id uuid.UUID) (*models.CompanyDetail, error) {
	return d.setCompanyStatus(ctx, id, models.StatusApproved)
}

// RejectCompany marks a listing rejected.
func (d *DB) RejectCompany(ctx context.Context, id uuid.UUID) (*models.CompanyDetail, error) {
	return d.setCompanyStatus(ctx, id, models.StatusRejected)
}

func (d *DB) setCompanyStatus(ctx context.Context, id uuid.UUID, status string) (*models.CompanyDetail, error) {
	row := d.Pool.QueryRow(ctx, `
		UPDATE companies SET status = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING `+strings.ReplaceAll(companyColumns, "c.", ""),
		id, status)
	company, err := scanCompany(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCompanyNotFound
		}
		return nil, fmt.Errorf("failed to set company status: %w", err)
	}
	return d.attachOne(ctx, company)
}

func (d *DB) attachOne(ctx context.Context, company *models.Company) (*models.CompanyDetail, error) {
	details, err := d.attachRelations(ctx, []models.Company{*company})
	if err != nil {
		return nil, err
	}
	return &details[0], nil
}
