package listing

import (
	"time"

	"github.com/PhucNguyen-rsc/job-board-application/pkg/kernel"
)

// CreateListingRequest - DTO for posting a job; the company comes from the
// authenticated principal
type CreateListingRequest struct {
	Title     string `json:"title" validate:"required"`
	Location  string `json:"location"`
	Industry  string `json:"industry"`
	Seniority string `json:"seniority"`
}

// UpdateListingRequest - DTO for editing a job; empty fields are kept
type UpdateListingRequest struct {
	ID        kernel.ListingID `json:"id" validate:"required"`
	Title     string           `json:"title,omitempty"`
	Location  string           `json:"location,omitempty"`
	Industry  string           `json:"industry,omitempty"`
	Seniority string           `json:"seniority,omitempty"`
}

// SearchFilter - independent optional filters, ANDed. Each term is
// canonicalized and matched as a substring of the stored value.
type SearchFilter struct {
	Title     string `json:"title,omitempty" query:"title"`
	Company   string `json:"company,omitempty" query:"company"`
	Location  string `json:"location,omitempty" query:"location"`
	Industry  string `json:"industry,omitempty" query:"industry"`
	Seniority string `json:"seniority,omitempty" query:"seniority"`
}

// Canonical returns the filter with every term canonicalized
func (f SearchFilter) Canonical() CanonicalFilter {
	return CanonicalFilter{
		Title:     kernel.Canonicalize(f.Title),
		Company:   kernel.Canonicalize(f.Company),
		Location:  kernel.Canonicalize(f.Location),
		Industry:  kernel.Canonicalize(f.Industry),
		Seniority: kernel.Canonicalize(f.Seniority),
	}
}

// CanonicalFilter is a SearchFilter after canonicalization. Empty terms match all.
type CanonicalFilter struct {
	Title     kernel.Slug
	Company   kernel.Slug
	Location  kernel.Slug
	Industry  kernel.Slug
	Seniority kernel.Slug
}

// Matches applies the filter to a listing
func (f CanonicalFilter) Matches(l *Listing) bool {
	return l.Title.Contains(f.Title) &&
		l.Company.Contains(f.Company) &&
		l.Location.Contains(f.Location) &&
		l.Industry.Contains(f.Industry) &&
		l.Seniority.Contains(f.Seniority)
}

// ListingSummary - public view of a listing without applicant data
type ListingSummary struct {
	ID        kernel.ListingID `json:"id"`
	Title     kernel.Slug      `json:"title"`
	Company   kernel.Slug      `json:"company"`
	Location  kernel.Slug      `json:"location"`
	Industry  kernel.Slug      `json:"industry"`
	Seniority kernel.Slug      `json:"seniority"`
}

// ListingResponse - full view of a listing including the three sets
type ListingResponse struct {
	ListingSummary
	CompanyID  kernel.CompanyID `json:"company_id"`
	Applicants []kernel.Email   `json:"applicants"`
	Selected   []kernel.Email   `json:"selected"`
	Rejected   []kernel.Email   `json:"rejected"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
}

// PendingApplicant - one pending application on one of the company's listings
type PendingApplicant struct {
	Email     kernel.Email     `json:"email"`
	ListingID kernel.ListingID `json:"listing_id"`
	Title     kernel.Slug      `json:"title"`
}

// CompanyListingsResponse - the company's listings plus every pending applicant
type CompanyListingsResponse struct {
	Listings   []ListingResponse  `json:"listings"`
	Applicants []PendingApplicant `json:"applicants"`
}

// ToSummary drops applicant data
func (l *Listing) ToSummary() ListingSummary {
	return ListingSummary{
		ID:        l.ID,
		Title:     l.Title,
		Company:   l.Company,
		Location:  l.Location,
		Industry:  l.Industry,
		Seniority: l.Seniority,
	}
}

// ToResponse returns the full view
func (l *Listing) ToResponse() ListingResponse {
	return ListingResponse{
		ListingSummary: l.ToSummary(),
		CompanyID:      l.CompanyID,
		Applicants:     nonNil(l.Applicants),
		Selected:       nonNil(l.Selected),
		Rejected:       nonNil(l.Rejected),
		CreatedAt:      l.CreatedAt,
		UpdatedAt:      l.UpdatedAt,
	}
}

func nonNil(emails []kernel.Email) []kernel.Email {
	if emails == nil {
		return []kernel.Email{}
	}
	return emails
}
