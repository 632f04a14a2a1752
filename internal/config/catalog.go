package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"controlcompass/internal/models"
)

// Catalog carries display labels for the directory's fixed enumerations.
// The identifiers themselves are fixed in the data model; the catalog file
// only customizes how they are presented.
type Catalog struct {
	Services       []CatalogEntry `yaml:"services"`
	Sizes          []CatalogEntry `yaml:"sizes"`
	Certifications []CatalogEntry `yaml:"certifications"`
}

// CatalogEntry pairs an enumeration identifier with a display label.
type CatalogEntry struct {
	ID    string `yaml:"id"`
	Label string `yaml:"label"`
}

// LoadCatalog loads the catalog file named by CATALOG_FILE (default
// "catalog.yaml"). A missing file yields the built-in defaults; unknown
// identifiers in the file are dropped.
func LoadCatalog() (*Catalog, error) {
	path := getEnv("CATALOG_FILE", "catalog.yaml")

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultCatalog(), nil
		}
		return nil, err
	}

	var cat Catalog
	if err := yaml.Unmarshal(data, &cat); err != nil {
		return nil, err
	}

	cat.Services = keepKnown(cat.Services, models.IsKnownService)
	cat.Sizes = keepKnown(cat.Sizes, models.IsKnownSizeBucket)
	cat.Certifications = keepKnown(cat.Certifications, models.IsKnownCertification)

	defaults := DefaultCatalog()
	if len(cat.Services) == 0 {
		cat.Services = defaults.Services
	}
	if len(cat.Sizes) == 0 {
		cat.Sizes = defaults.Sizes
	}
	if len(cat.Certifications) == 0 {
		cat.Certifications = defaults.Certifications
	}

	return &cat, nil
}

func keepKnown(entries []CatalogEntry, known func(string) bool) []CatalogEntry {
	var kept []CatalogEntry
	for _, e := range entries {
		if known(e.ID) {
			kept = append(kept, e)
		}
	}
	return kept
}

// DefaultCatalog returns the built-in labels.
func DefaultCatalog() *Catalog {
	return &Catalog{
		Services: []CatalogEntry{
			{ID: "CONTROL_PANEL_ASSEMBLY", Label: "Control Panel Assembly"},
			{ID: "SYSTEM_INTEGRATION", Label: "System Integration"},
			{ID: "CALIBRATION_SERVICES", Label: "Calibration Services"},
		},
		Sizes: []CatalogEntry{
			{ID: "SIZE_1_10", Label: "1-10 employees"},
			{ID: "SIZE_11_50", Label: "11-50 employees"},
			{ID: "SIZE_51_200", Label: "51-200 employees"},
			{ID: "SIZE_201_500", Label: "201-500 employees"},
			{ID: "SIZE_501_1000", Label: "501-1,000 employees"},
			{ID: "SIZE_1001_5000", Label: "1,001-5,000 employees"},
			{ID: "SIZE_5001_10000", Label: "5,001-10,000 employees"},
			{ID: "SIZE_10000_PLUS", Label: "10,000+ employees"},
		},
		Certifications: []CatalogEntry{
			{ID: "UL_508A", Label: "UL 508A"},
			{ID: "ISO_9001", Label: "ISO 9001"},
			{ID: "ISO_14001", Label: "ISO 14001"},
			{ID: "OHSAS_18001", Label: "OHSAS 18001"},
			{ID: "IEC_61511", Label: "IEC 61511"},
			{ID: "ISA_84", Label: "ISA 84"},
			{ID: "NFPA_70E", Label: "NFPA 70E"},
			{ID: "OSHA_10", Label: "OSHA 10"},
			{ID: "OSHA_30", Label: "OSHA 30"},
			{ID: "SIL_CERTIFIED", Label: "SIL Certified"},
		},
	}
}

// IDs extracts the identifier column of a catalog section.
func IDs(entries []CatalogEntry) []string {
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.ID)
	}
	return ids
}
