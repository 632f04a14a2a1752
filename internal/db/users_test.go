package db

import (
	"context"
	"errors"
	"reflect"
	"sort"
	"testing"

	"github.com/google/uuid"

	"controlcompass/internal/models"
)

func TestUpsertUser(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	user, err := db.UpsertUser(ctx, "upsert-sub", "first@example.com", "First Name", "")
	if err != nil {
		t.Fatalf("UpsertUser() error = %v", err)
	}
	if user.ID == uuid.Nil {
		t.Error("UpsertUser() did not set ID")
	}
	if user.Role != models.RoleUser {
		t.Errorf("UpsertUser() role = %q, want %q", user.Role, models.RoleUser)
	}

	// Promote, then refresh from claims. The role survives.
	if _, err := db.Pool.Exec(ctx, `UPDATE users SET role = $1 WHERE id = $2`, models.RoleAdmin, user.ID); err != nil {
		t.Fatalf("failed to promote user: %v", err)
	}

	refreshed, err := db.UpsertUser(ctx, "upsert-sub", "second@example.com", "First Name", "https://example.com/pic.png")
	if err != nil {
		t.Fatalf("UpsertUser() refresh error = %v", err)
	}
	if refreshed.ID != user.ID {
		t.Errorf("UpsertUser() refresh created a new row")
	}
	if refreshed.Email != "second@example.com" {
		t.Errorf("UpsertUser() refresh email = %q", refreshed.Email)
	}
	if refreshed.Role != models.RoleAdmin {
		t.Errorf("UpsertUser() refresh role = %q, want %q", refreshed.Role, models.RoleAdmin)
	}
}

func TestGetUserBySub_NotFound(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := db.GetUserBySub(context.Background(), "no-such-sub")
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("GetUserBySub() error = %v, want ErrUserNotFound", err)
	}
}

func TestUpdateUserProfile(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	user := createTestUser(t, db, "profile-sub")

	updated, err := db.UpdateUserProfile(ctx, user.ID, "New Name", "new@example.com")
	if err != nil {
		t.Fatalf("UpdateUserProfile() error = %v", err)
	}
	if updated.Name != "New Name" {
		t.Errorf("UpdateUserProfile() name = %q", updated.Name)
	}
	if updated.Email != "new@example.com" {
		t.Errorf("UpdateUserProfile() email = %q", updated.Email)
	}
}

func TestGetAdminEmails(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	createTestUser(t, db, "regular-sub")
	admin := createTestUser(t, db, "admin-sub")
	if _, err := db.Pool.Exec(ctx, `UPDATE users SET role = $1 WHERE id = $2`, models.RoleAdmin, admin.ID); err != nil {
		t.Fatalf("failed to promote user: %v", err)
	}

	emails, err := db.GetAdminEmails(ctx)
	if err != nil {
		t.Fatalf("GetAdminEmails() error = %v", err)
	}
	if !reflect.DeepEqual(emails, []string{"admin-sub@example.com"}) {
		t.Errorf("GetAdminEmails() = %v", emails)
	}
}

func TestGetCompanyOwnerEmails(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	owner := createTestUser(t, db, "owner-email-sub")
	createTestUser(t, db, "bystander-sub")

	company, err := db.CreateCompany(ctx, testForm("Owned Shop"), owner.ID)
	if err != nil {
		t.Fatalf("CreateCompany() error = %v", err)
	}

	emails, err := db.GetCompanyOwnerEmails(ctx, company.ID)
	if err != nil {
		t.Fatalf("GetCompanyOwnerEmails() error = %v", err)
	}
	sort.Strings(emails)
	if !reflect.DeepEqual(emails, []string{"owner-email-sub@example.com"}) {
		t.Errorf("GetCompanyOwnerEmails() = %v", emails)
	}
}

func TestGetCompanyRelation_NotFound(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	user := createTestUser(t, db, "relation-sub")

	_, err := db.GetCompanyRelation(ctx, user.ID, uuid.New())
	if !errors.Is(err, ErrRelationNotFound) {
		t.Errorf("GetCompanyRelation() error = %v, want ErrRelationNotFound", err)
	}
}
