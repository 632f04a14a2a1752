package models

// CompanyPage is the paginated result of a directory browse.
type CompanyPage struct {
	Companies   []CompanyDetail `json:"companies"`
	TotalCount  int             `json:"totalCount"`
	TotalPages  int             `json:"totalPages"`
	CurrentPage int             `json:"currentPage"`
}

// FilterOptions is the facet metadata for the browse page: the values
// actually present among approved listings.
type FilterOptions struct {
	Services       []string `json:"services"`
	Locations      []string `json:"locations"`
	Sizes          []string `json:"sizes"`
	Certifications []string `json:"certifications"`
}

// FilterUsage is one row of recorded filter-dimension usage.
type FilterUsage struct {
	Filter string `json:"filter"`
	Count  int64  `json:"count"`
}
