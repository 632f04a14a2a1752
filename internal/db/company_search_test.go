package db

import (
	"context"
	"fmt"
	"reflect"
	"testing"

	"controlcompass/internal/models"
)

func approvedCompany(t *testing.T, db *DB, owner *models.User, form *models.CompanyForm) *models.CompanyDetail {
	t.Helper()
	ctx := context.Background()
	company, err := db.CreateCompany(ctx, form, owner.ID)
	if err != nil {
		t.Fatalf("CreateCompany() error = %v", err)
	}
	approved, err := db.ApproveCompany(ctx, company.ID)
	if err != nil {
		t.Fatalf("ApproveCompany() error = %v", err)
	}
	return approved
}

func TestSearchApprovedCompanies_OnlyApproved(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	owner := createTestUser(t, db, "test-search-owner")

	approvedCompany(t, db, owner, testForm("Approved Co"))
	if _, err := db.CreateCompany(ctx, testForm("Pending Co"), owner.ID); err != nil {
		t.Fatalf("CreateCompany() error = %v", err)
	}
	rejected, err := db.CreateCompany(ctx, testForm("Rejected Co"), owner.ID)
	if err != nil {
		t.Fatalf("CreateCompany() error = %v", err)
	}
	if _, err := db.RejectCompany(ctx, rejected.ID); err != nil {
		t.Fatalf("RejectCompany() error = %v", err)
	}

	page, err := db.SearchApprovedCompanies(ctx, &CompanyFilter{Page: 1})
	if err != nil {
		t.Fatalf("SearchApprovedCompanies() error = %v", err)
	}
	if page.TotalCount != 1 {
		t.Errorf("TotalCount = %d, want 1", page.TotalCount)
	}
	if len(page.Companies) != 1 || page.Companies[0].Name != "Approved Co" {
		t.Errorf("Companies = %v", page.Companies)
	}
}

func TestSearchApprovedCompanies_Pagination(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	owner := createTestUser(t, db, "test-page-owner")

	for i := 0; i < 65; i++ {
		approvedCompany(t, db, owner, testForm(fmt.Sprintf("Listing %03d", i)))
	}

	page1, err := db.SearchApprovedCompanies(ctx, &CompanyFilter{Page: 1})
	if err != nil {
		t.Fatalf("SearchApprovedCompanies() error = %v", err)
	}
	if page1.TotalCount != 65 {
		t.Errorf("TotalCount = %d, want 65", page1.TotalCount)
	}
	if page1.TotalPages != 3 {
		t.Errorf("TotalPages = %d, want 3", page1.TotalPages)
	}
	if len(page1.Companies) != PageSize {
		t.Errorf("page 1 has %d companies, want %d", len(page1.Companies), PageSize)
	}
	if page1.Companies[0].Name != "Listing 000" {
		t.Errorf("page 1 first = %q, want oldest submission first", page1.Companies[0].Name)
	}

	page3, err := db.SearchApprovedCompanies(ctx, &CompanyFilter{Page: 3})
	if err != nil {
		t.Fatalf("SearchApprovedCompanies() error = %v", err)
	}
	if len(page3.Companies) != 5 {
		t.Errorf("page 3 has %d companies, want 5", len(page3.Companies))
	}

	page4, err := db.SearchApprovedCompanies(ctx, &CompanyFilter{Page: 4})
	if err != nil {
		t.Fatalf("SearchApprovedCompanies() error = %v", err)
	}
	if len(page4.Companies) != 0 {
		t.Errorf("page 4 has %d companies, want 0", len(page4.Companies))
	}
	if page4.TotalCount != 65 {
		t.Errorf("page 4 TotalCount = %d, want 65", page4.TotalCount)
	}

	// Page values below 1 clamp to the first page
	clamped, err := db.SearchApprovedCompanies(ctx, &CompanyFilter{Page: 0})
	if err != nil {
		t.Fatalf("SearchApprovedCompanies() error = %v", err)
	}
	if clamped.CurrentPage != 1 {
		t.Errorf("CurrentPage = %d, want 1", clamped.CurrentPage)
	}
}

func TestSearchApprovedCompanies_CertificationsUnion(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	owner := createTestUser(t, db, "test-cert-owner")

	ulForm := testForm("UL Shop")
	ulForm.Certifications = []string{"UL_508A"}
	approvedCompany(t, db, owner, ulForm)

	isoForm := testForm("ISO Shop")
	isoForm.Certifications = []string{"ISO_9001"}
	approvedCompany(t, db, owner, isoForm)

	noneForm := testForm("Uncertified Shop")
	approvedCompany(t, db, owner, noneForm)

	// Selecting several certifications widens the match to any of them
	page, err := db.SearchApprovedCompanies(ctx, &CompanyFilter{
		Page:           1,
		Certifications: []string{"UL_508A", "ISO_9001"},
	})
	if err != nil {
		t.Fatalf("SearchApprovedCompanies() error = %v", err)
	}
	if page.TotalCount != 2 {
		t.Errorf("TotalCount = %d, want 2", page.TotalCount)
	}
	names := make(map[string]bool)
	for _, c := range page.Companies {
		names[c.Name] = true
	}
	if !names["UL Shop"] || !names["ISO Shop"] {
		t.Errorf("matched companies = %v", names)
	}
}

func TestSearchApprovedCompanies_AreaWildcard(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	owner := createTestUser(t, db, "test-area-owner")

	ca := "CA"
	tx := "TX"

	caForm := testForm("California Shop")
	caForm.AreasServed = []models.AreaServed{{Country: "US", State: &ca}}
	approvedCompany(t, db, owner, caForm)

	txForm := testForm("Texas Shop")
	txForm.AreasServed = []models.AreaServed{{Country: "US", State: &tx}}
	approvedCompany(t, db, owner, txForm)

	nationwideForm := testForm("Nationwide Shop")
	nationwideForm.AreasServed = []models.AreaServed{{Country: "US"}}
	approvedCompany(t, db, owner, nationwideForm)

	page, err := db.SearchApprovedCompanies(ctx, &CompanyFilter{
		Page:       1,
		AreaStates: []string{"CA"},
	})
	if err != nil {
		t.Fatalf("SearchApprovedCompanies() error = %v", err)
	}
	if page.TotalCount != 2 {
		t.Fatalf("TotalCount = %d, want 2 (state match plus nationwide)", page.TotalCount)
	}
	for _, c := range page.Companies {
		if c.Name == "Texas Shop" {
			t.Error("Texas-only company matched a CA filter")
		}
	}
}

func TestSearchApprovedCompanies_MatchNone(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	owner := createTestUser(t, db, "test-none-owner")
	approvedCompany(t, db, owner, testForm("Some Shop"))

	page, err := db.SearchApprovedCompanies(ctx, &CompanyFilter{Page: 1, MatchNone: true})
	if err != nil {
		t.Fatalf("SearchApprovedCompanies() error = %v", err)
	}
	if page.TotalCount != 0 || len(page.Companies) != 0 {
		t.Errorf("MatchNone returned %d companies", len(page.Companies))
	}
}

func TestSearchApprovedCompanies_TextSearch(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	owner := createTestUser(t, db, "test-text-owner")

	nameHit := testForm("Precision Calibration Labs")
	approvedCompany(t, db, owner, nameHit)

	descHit := testForm("Generic Industrial")
	descHit.Description = "Full-service calibration and repair"
	approvedCompany(t, db, owner, descHit)

	miss := testForm("Panel Builders United")
	miss.Description = "Panels only"
	approvedCompany(t, db, owner, miss)

	page, err := db.SearchApprovedCompanies(ctx, &CompanyFilter{Page: 1, Search: "calibration"})
	if err != nil {
		t.Fatalf("SearchApprovedCompanies() error = %v", err)
	}
	if page.TotalCount != 2 {
		t.Errorf("TotalCount = %d, want 2 (name and description matches)", page.TotalCount)
	}
}

func TestSearchApprovedCompanies_Dimensions(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	owner := createTestUser(t, db, "test-dim-owner")

	a := testForm("Integrator A")
	a.Services = []string{models.ServiceSystemIntegration}
	a.HQState = "TX"
	a.SizeBucket = "SIZE_51_200"
	approvedCompany(t, db, owner, a)

	b := testForm("Assembler B")
	approvedCompany(t, db, owner, b)

	tests := []struct {
		name   string
		filter CompanyFilter
		want   int
	}{
		{"service", CompanyFilter{Service: models.ServiceSystemIntegration}, 1},
		{"location", CompanyFilter{Location: "TX"}, 1},
		{"size", CompanyFilter{Size: "SIZE_51_200"}, 1},
		{"unknown size", CompanyFilter{Size: "SIZE_NOPE"}, 0},
		{"combined", CompanyFilter{Service: models.ServiceSystemIntegration, Location: "TX"}, 1},
		{"combined miss", CompanyFilter{Service: models.ServiceCalibrationServices, Location: "TX"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.filter.Page = 1
			page, err := db.SearchApprovedCompanies(ctx, &tt.filter)
			if err != nil {
				t.Fatalf("SearchApprovedCompanies() error = %v", err)
			}
			if page.TotalCount != tt.want {
				t.Errorf("TotalCount = %d, want %d", page.TotalCount, tt.want)
			}
		})
	}
}

func TestGetFilterOptions(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	owner := createTestUser(t, db, "test-facet-owner")

	form := testForm("Facet Shop")
	form.Certifications = []string{"UL_508A"}
	approvedCompany(t, db, owner, form)

	// Pending listings contribute nothing to the facets
	hidden := testForm("Hidden Shop")
	hidden.HQState = "NY"
	if _, err := db.CreateCompany(ctx, hidden, owner.ID); err != nil {
		t.Fatalf("CreateCompany() error = %v", err)
	}

	opts, err := db.GetFilterOptions(ctx)
	if err != nil {
		t.Fatalf("GetFilterOptions() error = %v", err)
	}
	if !reflect.DeepEqual(opts.Services, []string{models.ServiceControlPanelAssembly}) {
		t.Errorf("Services = %v", opts.Services)
	}
	if !reflect.DeepEqual(opts.Locations, []string{"CA"}) {
		t.Errorf("Locations = %v", opts.Locations)
	}
	if !reflect.DeepEqual(opts.Sizes, []string{"SIZE_11_50"}) {
		t.Errorf("Sizes = %v", opts.Sizes)
	}
	if !reflect.DeepEqual(opts.Certifications, []string{"UL_508A"}) {
		t.Errorf("Certifications = %v", opts.Certifications)
	}
}

func TestFilterUsage(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := db.IncrementFilterUsage(ctx, "service"); err != nil {
			t.Fatalf("IncrementFilterUsage() error = %v", err)
		}
	}
	if err := db.IncrementFilterUsage(ctx, "location"); err != nil {
		t.Fatalf("IncrementFilterUsage() error = %v", err)
	}

	usage, err := db.GetAllFilterUsage(ctx)
	if err != nil {
		t.Fatalf("GetAllFilterUsage() error = %v", err)
	}
	want := []models.FilterUsage{{Filter: "location", Count: 1}, {Filter: "service", Count: 3}}
	if !reflect.DeepEqual(usage, want) {
		t.Errorf("GetAllFilterUsage() = %v, want %v", usage, want)
	}
}
