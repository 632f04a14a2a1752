package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"controlcompass/internal/models"
)

// GetCompanyRelation returns the relation a user holds on a company, or
// ErrRelationNotFound when there is none.
func (d *DB) GetCompanyRelation(ctx context.Context, userID, companyID uuid.UUID) (string, error) {
	var relation string
	err := d.Pool.QueryRow(ctx, `
		SELECT relation FROM user_companies
		WHERE user_id = $1 AND company_id = $2`,
		userID, companyID).Scan(&relation)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrRelationNotFound
		}
		return "", fmt.Errorf("failed to get company relation: %w", err)
	}
	return relation, nil
}

// GetUserCompanies returns every listing a user is attached to, any
// status, newest attachment first.
func (d *DB) GetUserCompanies(ctx context.Context, userID uuid.UUID) ([]models.UserCompany, error) {
	rows, err := d.Pool.Query(ctx, `
		SELECT uc.id, uc.relation, uc.created_at, `+companyColumns+`
		FROM user_companies uc
		JOIN companies c ON c.id = uc.company_id
		WHERE uc.user_id = $1
		ORDER BY uc.created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list user companies: %w", err)
	}
	defer rows.Close()

	var out []models.UserCompany
	for rows.Next() {
		var uc models.UserCompany
		c := &uc.Company
		err := rows.Scan(
			&uc.ID, &uc.Relation, &uc.CreatedAt,
			&c.ID, &c.Name, &c.Slug, &c.Description, &c.WebsiteURL, &c.LogoURL,
			&c.Phone, &c.SalesEmail, &c.HQAddress, &c.HQCity, &c.HQState, &c.HQZip, &c.HQCountry,
			&c.YearFounded, &c.SizeBucket, &c.Status, &c.CreatedAt, &c.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		out = append(out, uc)
	}
	return out, rows.Err()
}

// GetCompanyOwnerEmails returns the addresses of a listing's owners, used
// for decision notifications.
func (d *DB) GetCompanyOwnerEmails(ctx context.Context, companyID uuid.UUID) ([]string, error) {
	rows, err := d.Pool.Query(ctx, `
		SELECT u.email FROM user_companies uc
		JOIN users u ON u.id = uc.user_id
		WHERE uc.company_id = $1 AND uc.relation = $2 AND u.email <> ''`,
		companyID, models.RelationOwner)
	if err != nil {
		return nil, fmt.Errorf("failed to get owner emails: %w", err)
	}
	defer rows.Close()

	var emails []string
	for rows.Next() {
		var e string
		if err := rows.Scan(&e); err != nil {
			return nil, err
		}
		emails = append(emails, e)
	}
	return emails, rows.Err()
}
