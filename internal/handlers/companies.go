package handlers

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v3"

	"controlcompass/internal/config"
	"controlcompass/internal/db"
	"controlcompass/internal/metrics"
	"controlcompass/internal/models"
	"controlcompass/internal/validation"
)

// CompanyHandler serves the public directory: browsing, facets and
// listing detail.
type CompanyHandler struct {
	db      *db.DB
	catalog *config.Catalog
}

// NewCompanyHandler creates a new public company handler.
func NewCompanyHandler(database *db.DB, catalog *config.Catalog) *CompanyHandler {
	return &CompanyHandler{db: database, catalog: catalog}
}

// List returns one page of approved listings matching the query filters.
func (h *CompanyHandler) List(c fiber.Ctx) error {
	filter := parseCompanyFilter(c)

	page, err := h.db.SearchApprovedCompanies(c.Context(), filter)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch companies")
	}

	recordFilterUsage(c)
	return jsonSuccess(c, page)
}

// Filters returns the facet values present among approved listings. The
// catalog serves as fallback so the browse page stays usable when the
// facet queries fail.
func (h *CompanyHandler) Filters(c fiber.Ctx) error {
	opts, err := h.db.GetFilterOptions(c.Context())
	if err != nil {
		opts = &models.FilterOptions{
			Services:       config.IDs(h.catalog.Services),
			Locations:      []string{},
			Sizes:          config.IDs(h.catalog.Sizes),
			Certifications: config.IDs(h.catalog.Certifications),
		}
	}
	return jsonSuccess(c, opts)
}

// GetBySlug returns the public detail view of an approved listing.
func (h *CompanyHandler) GetBySlug(c fiber.Ctx) error {
	company, err := h.db.GetApprovedCompanyBySlug(c.Context(), c.Params("slug"))
	if err != nil {
		if errors.Is(err, db.ErrCompanyNotFound) {
			return jsonError(c, fiber.StatusNotFound, "company not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch company")
	}
	return jsonSuccess(c, company)
}

// parseCompanyFilter builds the search filter from query parameters.
// A present areasServed parameter whose values are all invalid forces an
// empty result rather than silently matching everything.
func parseCompanyFilter(c fiber.Ctx) *db.CompanyFilter {
	filter := &db.CompanyFilter{
		Search:   strings.TrimSpace(c.Query("search")),
		Service:  strings.ToUpper(strings.TrimSpace(c.Query("service"))),
		Location: strings.ToUpper(strings.TrimSpace(c.Query("location"))),
		Size:     strings.ToUpper(strings.TrimSpace(c.Query("size"))),
	}

	if page, err := strconv.Atoi(c.Query("page", "1")); err == nil {
		filter.Page = page
	} else {
		filter.Page = 1
	}

	if raw := strings.TrimSpace(c.Query("certifications")); raw != "" {
		for _, v := range validation.ParseList(raw) {
			filter.Certifications = append(filter.Certifications, strings.ToUpper(v))
		}
	}

	if raw := strings.TrimSpace(c.Query("areasServed")); raw != "" {
		filter.AreaStates = validation.ParseStateCodes(raw)
		if len(filter.AreaStates) == 0 {
			filter.MatchNone = true
		}
	}

	return filter
}

// recordFilterUsage counts which filter dimensions a browse request used.
func recordFilterUsage(c fiber.Ctx) {
	for _, dim := range []string{"search", "service", "location", "size", "certifications", "areasServed"} {
		if strings.TrimSpace(c.Query(dim)) != "" {
			metrics.RecordFilterUsage(dim)
		}
	}
}
