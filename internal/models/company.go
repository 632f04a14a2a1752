package models

import (
	"time"

	"github.com/google/uuid"
)

// Company status constants
const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

// User-to-company relation constants
const (
	RelationOwner  = "OWNER"
	RelationMember = "MEMBER"
)

// Company is a directory listing. Nullable columns map to pointers.
type Company struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description *string   `json:"description"`
	WebsiteURL  *string   `json:"websiteUrl"`
	LogoURL     *string   `json:"logoUrl"`
	Phone       *string   `json:"phone"`
	SalesEmail  *string   `json:"salesEmail"`
	HQAddress   *string   `json:"hqAddress"`
	HQCity      *string   `json:"hqCity"`
	HQState     *string   `json:"hqState"`
	HQZip       *string   `json:"hqZip"`
	HQCountry   string    `json:"hqCountry"`
	YearFounded *int      `json:"yearFounded"`
	SizeBucket  *string   `json:"sizeBucket"`
	Status      string    `json:"status"` // PENDING, APPROVED or REJECTED
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// AreaServed is one geographic region a company covers. A US area with no
// state means the company serves the whole country.
type AreaServed struct {
	Country string  `json:"country"`
	State   *string `json:"state"`
	Region  *string `json:"region"`
}

// Nationwide reports whether the area covers its country without a state
// restriction.
func (a AreaServed) Nationwide() bool {
	return a.State == nil
}

// CompanyDetail is a company with its child collections attached. The
// slices are never nil so they serialize as [] rather than null.
type CompanyDetail struct {
	Company
	Services       []string     `json:"services"`
	Certifications []string     `json:"certifications"`
	AreasServed    []AreaServed `json:"areasServed"`
}

// CompanyForm is the payload for submitting or editing a listing.
type CompanyForm struct {
	Name           string       `json:"name"`
	Description    string       `json:"description"`
	WebsiteURL     string       `json:"websiteUrl"`
	LogoURL        string       `json:"logoUrl"`
	Phone          string       `json:"phone"`
	SalesEmail     string       `json:"salesEmail"`
	HQAddress      string       `json:"hqAddress"`
	HQCity         string       `json:"hqCity"`
	HQState        string       `json:"hqState"`
	HQZip          string       `json:"hqZip"`
	HQCountry      string       `json:"hqCountry"`
	YearFounded    *int         `json:"yearFounded"`
	SizeBucket     string       `json:"sizeBucket"`
	Services       []string     `json:"services"`
	Certifications []string     `json:"certifications"`
	AreasServed    []AreaServed `json:"areasServed"`
}

// UserCompany is a company seen through a user's dashboard, carrying the
// user's relation to it.
type UserCompany struct {
	ID        uuid.UUID `json:"id"`
	Relation  string    `json:"relation"` // OWNER or MEMBER
	CreatedAt time.Time `json:"createdAt"`
	Company   Company   `json:"company"`
}
