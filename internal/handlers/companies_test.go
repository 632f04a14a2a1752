package handlers

import (
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/gofiber/fiber/v3"

	"controlcompass/internal/db"
)

// parseFilterFor runs parseCompanyFilter against a request to the given
// URL and returns the compiled filter.
func parseFilterFor(t *testing.T, url string) *db.CompanyFilter {
	t.Helper()

	var got *db.CompanyFilter
	app := fiber.New()
	app.Get("/api/companies", func(c fiber.Ctx) error {
		got = parseCompanyFilter(c)
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest("GET", url, nil))
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	resp.Body.Close()
	if got == nil {
		t.Fatal("handler was not invoked")
	}
	return got
}

func TestParseCompanyFilter(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want db.CompanyFilter
	}{
		{
			name: "defaults",
			url:  "/api/companies",
			want: db.CompanyFilter{Page: 1},
		},
		{
			name: "all dimensions",
			url:  "/api/companies?search=panel&service=system_integration&location=tx&size=SIZE_11_50&page=3",
			want: db.CompanyFilter{
				Search:   "panel",
				Service:  "SYSTEM_INTEGRATION",
				Location: "TX",
				Size:     "SIZE_11_50",
				Page:     3,
			},
		},
		{
			name: "certifications list uppercased",
			url:  "/api/companies?certifications=ul_508a,iso_9001",
			want: db.CompanyFilter{
				Certifications: []string{"UL_508A", "ISO_9001"},
				Page:           1,
			},
		},
		{
			name: "area states keep valid codes only",
			url:  "/api/companies?areasServed=ca,zz,tx",
			want: db.CompanyFilter{
				AreaStates: []string{"CA", "TX"},
				Page:       1,
			},
		},
		{
			name: "all-invalid area states match nothing",
			url:  "/api/companies?areasServed=zz,garbage",
			want: db.CompanyFilter{
				MatchNone: true,
				Page:      1,
			},
		},
		{
			name: "non-numeric page falls back to 1",
			url:  "/api/companies?page=abc",
			want: db.CompanyFilter{Page: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseFilterFor(t, tt.url)
			if !reflect.DeepEqual(*got, tt.want) {
				t.Errorf("parseCompanyFilter() = %+v, want %+v", *got, tt.want)
			}
		})
	}
}
