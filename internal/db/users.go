package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"controlcompass/internal/models"
)

const userColumns = `id, sub, email, name, picture, role, created_at, updated_at`

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Sub, &u.Email, &u.Name, &u.Picture, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// UpsertUser creates or refreshes a user record from identity-provider
// claims. The role is never touched on refresh.
func (d *DB) UpsertUser(ctx context.Context, sub, email, name, picture string) (*models.User, error) {
	row := d.Pool.QueryRow(ctx, `
		INSERT INTO users (sub, email, name, picture)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (sub) DO UPDATE SET
			email = EXCLUDED.email,
			picture = EXCLUDED.picture,
			updated_at = NOW()
		RETURNING `+userColumns,
		sub, email, name, picture)
	user, err := scanUser(row)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert user: %w", err)
	}
	return user, nil
}

// GetUserBySub fetches a user by OIDC subject.
func (d *DB) GetUserBySub(ctx context.Context, sub string) (*models.User, error) {
	row := d.Pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE sub = $1`, sub)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// GetUserByID fetches a user by id.
func (d *DB) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	row := d.Pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// UpdateUserProfile sets the user-editable profile fields.
func (d *DB) UpdateUserProfile(ctx context.Context, id uuid.UUID, name, email string) (*models.User, error) {
	row := d.Pool.QueryRow(ctx, `
		UPDATE users SET name = $2, email = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING `+userColumns,
		id, name, email)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return user, nil
}

// GetAdminEmails returns the addresses of every admin with an email set.
func (d *DB) GetAdminEmails(ctx context.Context) ([]string, error) {
	rows, err := d.Pool.Query(ctx,
		`SELECT email FROM users WHERE role = $1 AND email <> ''`, models.RoleAdmin)
	if err != nil {
		return nil, fmt.Errorf("failed to get admin emails: %w", err)
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
