package listing

import (
	"slices"
	"time"

	"github.com/PhucNguyen-rsc/job-board-application/pkg/kernel"
)

// Set names one of the listing's three applicant-email sets
type Set string

const (
	SetApplicants Set = "applicants" // pending
	SetSelected   Set = "selected"   // accepted
	SetRejected   Set = "rejected"   // rejected
)

// Sets lists every listing set, highest precedence first
var Sets = []Set{SetSelected, SetRejected, SetApplicants}

func (s Set) IsValid() bool {
	return s == SetApplicants || s == SetSelected || s == SetRejected
}

// Owner identifies the company acting on a listing
type Owner struct {
	ID   kernel.CompanyID
	Name kernel.Slug
}

type Listing struct {
	ID         kernel.ListingID `db:"id" json:"id"`
	Title      kernel.Slug      `db:"title" json:"title"`
	Company    kernel.Slug      `db:"company" json:"company"`
	CompanyID  kernel.CompanyID `db:"company_id" json:"company_id"`
	Location   kernel.Slug      `db:"location" json:"location"`
	Industry   kernel.Slug      `db:"industry" json:"industry"`
	Seniority  kernel.Slug      `db:"seniority" json:"seniority"`
	Applicants []kernel.Email   `db:"applicants" json:"applicants"`
	Selected   []kernel.Email   `db:"selected" json:"selected"`
	Rejected   []kernel.Email   `db:"rejected" json:"rejected"`
	CreatedAt  time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time        `db:"updated_at" json:"updated_at"`
}

// ============================================================================
// Domain Methods
// ============================================================================

// IsOwnedBy compares the stable company id. Rows written without an owner id
// fall back to canonical company name equality.
func (l *Listing) IsOwnedBy(owner Owner) bool {
	if !l.CompanyID.IsEmpty() {
		return l.CompanyID == owner.ID
	}
	return !l.Company.IsEmpty() && l.Company == owner.Name
}

// Members returns the emails held in set
func (l *Listing) Members(set Set) []kernel.Email {
	switch set {
	case SetApplicants:
		return l.Applicants
	case SetSelected:
		return l.Selected
	case SetRejected:
		return l.Rejected
	}
	return nil
}

// Has reports whether set contains email
func (l *Listing) Has(set Set, email kernel.Email) bool {
	return slices.Contains(l.Members(set), email)
}

// HasInteracted reports whether email appears in any of the three sets
func (l *Listing) HasInteracted(email kernel.Email) bool {
	for _, set := range Sets {
		if l.Has(set, email) {
			return true
		}
	}
	return false
}

// MembershipsOf returns every set holding email, highest precedence first
func (l *Listing) MembershipsOf(email kernel.Email) []Set {
	var sets []Set
	for _, set := range Sets {
		if l.Has(set, email) {
			sets = append(sets, set)
		}
	}
	return sets
}

// Emails returns the union of the three sets without duplicates
func (l *Listing) Emails() []kernel.Email {
	seen := make(map[kernel.Email]struct{})
	var out []kernel.Email
	for _, set := range Sets {
		for _, email := range l.Members(set) {
			if _, ok := seen[email]; ok {
				continue
			}
			seen[email] = struct{}{}
			out = append(out, email)
		}
	}
	return out
}

// UpdateDetails canonicalizes and applies the non-empty fields
func (l *Listing) UpdateDetails(title, location, industry, seniority string) {
	if title != "" {
		l.Title = kernel.Canonicalize(title)
	}
	if location != "" {
		l.Location = kernel.Canonicalize(location)
	}
	if industry != "" {
		l.Industry = kernel.Canonicalize(industry)
	}
	if seniority != "" {
		l.Seniority = kernel.Canonicalize(seniority)
	}
	l.UpdatedAt = time.Now()
}
