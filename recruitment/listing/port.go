package listing

import (
	"context"

	"github.com/PhucNguyen-rsc/job-board-application/pkg/kernel"
)

type Repository interface {
	// Create stores a new listing
	Create(ctx context.Context, listing *Listing) error

	// GetByID retrieves a listing by ID
	GetByID(ctx context.Context, id kernel.ListingID) (*Listing, error)

	// Search returns listings matching every non-empty filter term, oldest first
	Search(ctx context.Context, filter CanonicalFilter) ([]*Listing, error)

	// ListByCompany returns the owner's listings: by stable id, or by exact
	// canonical name for rows without one. Never by substring.
	ListByCompany(ctx context.Context, owner Owner) ([]*Listing, error)

	// ListByApplicant returns the listings where email is a pending applicant
	ListByApplicant(ctx context.Context, email kernel.Email) ([]*Listing, error)

	// ListByMember returns the listings where email appears in any set
	ListByMember(ctx context.Context, email kernel.Email) ([]*Listing, error)

	// ListAll returns every listing
	ListAll(ctx context.Context) ([]*Listing, error)

	// UpdateDetails overwrites title, location, industry and seniority.
	// The three sets are left untouched.
	UpdateDetails(ctx context.Context, listing *Listing) error

	// Delete removes the listing
	Delete(ctx context.Context, id kernel.ListingID) error

	// AddApplicant adds email to applicants unless it is already in any of
	// the three sets, in which case it reports false and changes nothing
	AddApplicant(ctx context.Context, id kernel.ListingID, email kernel.Email) (bool, error)

	// MoveApplicant moves email from applicants to the target set. It reports
	// false and changes nothing when email is not a pending applicant.
	MoveApplicant(ctx context.Context, id kernel.ListingID, email kernel.Email, to Set) (bool, error)

	// RemoveMember pulls email from all three sets
	RemoveMember(ctx context.Context, id kernel.ListingID, email kernel.Email) error

	// RemoveFromSet pulls email from one set
	RemoveFromSet(ctx context.Context, id kernel.ListingID, set Set, email kernel.Email) error

	// ReplaceMember renames email in all three sets
	ReplaceMember(ctx context.Context, id kernel.ListingID, from, to kernel.Email) error

	// RelabelCompany rewrites the canonical company name on every listing
	// owned by id and returns how many listings changed
	RelabelCompany(ctx context.Context, id kernel.CompanyID, name kernel.Slug) (int64, error)
}
