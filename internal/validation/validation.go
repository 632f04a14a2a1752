package validation

import (
	"net/url"
	"regexp"
	"strings"
	"time"

	"controlcompass/internal/models"
)

// emailPattern is intentionally loose: local@domain.tld.
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ValidateURL checks if a URL is valid and uses an allowed scheme (http/https only).
// This prevents javascript:, data:, vbscript:, and other dangerous URL schemes.
func ValidateURL(urlStr string) (bool, string) {
	if urlStr == "" {
		return false, "URL is required"
	}

	u, err := url.Parse(urlStr)
	if err != nil {
		return false, "Invalid URL format"
	}

	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return false, "URL must use http:// or https:// scheme"
	}

	if u.Host == "" {
		return false, "URL must have a valid host"
	}

	return true, ""
}

// ValidateEmail checks basic email shape.
func ValidateEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// ParseStateCodes splits a comma-separated list and keeps only valid
// two-letter US state codes, uppercased. Unknown codes are dropped so they
// can never satisfy the nationwide wildcard match.
func ParseStateCodes(raw string) []string {
	var codes []string
	for _, part := range strings.Split(raw, ",") {
		code := strings.ToUpper(strings.TrimSpace(part))
		if len(code) == 2 && models.IsUSState(code) {
			codes = append(codes, code)
		}
	}
	return codes
}

// ParseList splits a comma-separated filter value, dropping empties.
func ParseList(raw string) []string {
	var vals []string
	for _, part := range strings.Split(raw, ",") {
		if v := strings.TrimSpace(part); v != "" {
			vals = append(vals, v)
		}
	}
	return vals
}

// FormErrors maps field names to messages and records the earliest form
// step that failed, so a multi-step client can return the submitter to it
// without discarding the other steps.
type FormErrors struct {
	Fields map[string]string `json:"fields"`
	Step   int               `json:"step"`
}

// Empty reports whether the form passed validation.
func (e *FormErrors) Empty() bool {
	return len(e.Fields) == 0
}

func (e *FormErrors) add(step int, field, msg string) {
	if _, dup := e.Fields[field]; dup {
		return
	}
	e.Fields[field] = msg
	if e.Step == 0 || step < e.Step {
		e.Step = step
	}
}

// ValidateCompanyForm applies the submission rules step by step:
// step 1 basics, step 2 contact and classification, step 3 offerings.
func ValidateCompanyForm(f *models.CompanyForm) *FormErrors {
	errs := &FormErrors{Fields: make(map[string]string)}

	// Step 1: basics
	if strings.TrimSpace(f.Name) == "" {
		errs.add(1, "name", "Company name is required")
	}
	if strings.TrimSpace(f.Description) == "" {
		errs.add(1, "description", "Description is required")
	}
	if valid, msg := ValidateURL(strings.TrimSpace(f.WebsiteURL)); !valid {
		errs.add(1, "websiteUrl", msg)
	}

	// Step 2: contact and classification
	if strings.TrimSpace(f.HQCity) == "" {
		errs.add(2, "hqCity", "City is required")
	}
	state := strings.ToUpper(strings.TrimSpace(f.HQState))
	if state == "" {
		errs.add(2, "hqState", "State is required")
	} else if !models.IsUSState(state) {
		errs.add(2, "hqState", "State must be a two-letter US state code")
	}
	if strings.TrimSpace(f.Phone) == "" {
		errs.add(2, "phone", "Phone is required")
	}
	if !ValidateEmail(strings.TrimSpace(f.SalesEmail)) {
		errs.add(2, "salesEmail", "A valid sales email is required")
	}
	if f.SizeBucket == "" {
		errs.add(2, "sizeBucket", "Company size is required")
	} else if !models.IsKnownSizeBucket(f.SizeBucket) {
		errs.add(2, "sizeBucket", "Unknown company size")
	}
	if f.YearFounded != nil {
		if *f.YearFounded < 1800 || *f.YearFounded > time.Now().Year() {
			errs.add(2, "yearFounded", "Year founded is out of range")
		}
	}

	// Step 3: offerings
	if len(f.Services) == 0 {
		errs.add(3, "services", "At least one service is required")
	}
	for _, s := range f.Services {
		if !models.IsKnownService(s) {
			errs.add(3, "services", "Unknown service: "+s)
			break
		}
	}
	for _, c := range f.Certifications {
		if !models.IsKnownCertification(c) {
			errs.add(3, "certifications", "Unknown certification: "+c)
			break
		}
	}
	if len(f.AreasServed) == 0 {
		errs.add(3, "areasServed", "At least one service area is required")
	}
	for _, a := range f.AreasServed {
		if a.Country == "" {
			errs.add(3, "areasServed", "Service area country is required")
			break
		}
		if a.State != nil && !models.IsUSState(strings.ToUpper(*a.State)) {
			errs.add(3, "areasServed", "Service area state must be a two-letter US state code")
			break
		}
	}

	return errs
}
