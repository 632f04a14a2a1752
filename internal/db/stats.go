package db

import (
	"context"
	"fmt"

	"controlcompass/internal/models"
)

// CountCompaniesByStatus returns listing counts keyed by status.
func (d *DB) CountCompaniesByStatus(ctx context.Context) (map[string]int64, error) {
	rows, err := d.Pool.Query(ctx, `SELECT status, COUNT(*) FROM companies GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("failed to count companies: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var status string
		var n int64
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

// IncrementFilterUsage bumps the usage counter for one filter dimension.
func (d *DB) IncrementFilterUsage(ctx context.Context, filter string) error {
	_, err := d.Pool.Exec(ctx, `
		INSERT INTO filter_usage (filter, count) VALUES ($1, 1)
		ON CONFLICT (filter) DO UPDATE SET count = filter_usage.count + 1`,
		filter)
	if err != nil {
		return fmt.Errorf("failed to increment filter usage: %w", err)
	}
	return nil
}

// GetAllFilterUsage returns every recorded filter counter.
func (d *DB) GetAllFilterUsage(ctx context.Context) ([]models.FilterUsage, error) {
	rows, err := d.Pool.Query(ctx, `SELECT filter, count FROM filter_usage ORDER BY filter`)
	if err != nil {
		return nil, fmt.Errorf("failed to get filter usage: %w", err)
	}
	defer rows.Close()

	var usage []models.FilterUsage
	for rows.Next() {
		var u models.FilterUsage
		if err := rows.Scan(&u.Filter, &u.Count); err != nil {
			return nil, err
		}
		usage = append(usage, u)
	}
	return usage, rows.Err()
}
