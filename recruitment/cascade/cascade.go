package cascade

import (
	"context"
	"slices"

	"github.com/PhucNguyen-rsc/job-board-application/pkg/errx"
	"github.com/PhucNguyen-rsc/job-board-application/pkg/kernel"
	"github.com/PhucNguyen-rsc/job-board-application/pkg/logx"
	"github.com/PhucNguyen-rsc/job-board-application/recruitment/company"
	"github.com/PhucNguyen-rsc/job-board-application/recruitment/listing"
	"github.com/PhucNguyen-rsc/job-board-application/recruitment/seeker"
)

// ListingStore is what the coordinator needs from the listing repository
type ListingStore interface {
	GetByID(ctx context.Context, id kernel.ListingID) (*listing.Listing, error)
	ListByCompany(ctx context.Context, owner listing.Owner) ([]*listing.Listing, error)
	ListByMember(ctx context.Context, email kernel.Email) ([]*listing.Listing, error)
	Delete(ctx context.Context, id kernel.ListingID) error
	RemoveMember(ctx context.Context, id kernel.ListingID, email kernel.Email) error
	ReplaceMember(ctx context.Context, id kernel.ListingID, from, to kernel.Email) error
	RelabelCompany(ctx context.Context, id kernel.CompanyID, name kernel.Slug) (int64, error)
}

// SeekerStore is what the coordinator needs from the job seeker repository
type SeekerStore interface {
	GetByEmail(ctx context.Context, email kernel.Email) (*seeker.JobSeeker, error)
	RemoveListing(ctx context.Context, email kernel.Email, id kernel.ListingID) error
	Delete(ctx context.Context, email kernel.Email) error
}

// CompanyStore is what the coordinator needs from the company repository
type CompanyStore interface {
	GetByEmail(ctx context.Context, email kernel.Email) (*company.Company, error)
	Delete(ctx context.Context, id kernel.CompanyID) error
}

// Coordinator keeps listing and job seeker references consistent when an
// entity is deleted or re-keyed. Steps run one after another; a step that
// finds its target already gone counts as done, so a failed call can be
// retried from the start.
type Coordinator struct {
	listings  ListingStore
	seekers   SeekerStore
	companies CompanyStore
}

func NewCoordinator(listings ListingStore, seekers SeekerStore, companies CompanyStore) *Coordinator {
	return &Coordinator{
		listings:  listings,
		seekers:   seekers,
		companies: companies,
	}
}

// DeleteListing removes every seeker reference to the listing, then the
// listing itself. Only the owning company may delete.
func (c *Coordinator) DeleteListing(ctx context.Context, id kernel.ListingID, owner listing.Owner) error {
	found, err := c.listings.GetByID(ctx, id)
	if err != nil {
		return errx.Propagate(err, "failed to load listing", errx.TypeInternal)
	}
	if !found.IsOwnedBy(owner) {
		return listing.ErrNotAllowed().WithDetail("id", id.String())
	}

	if err := c.purgeListing(ctx, found); err != nil {
		return err
	}

	logx.Infof("listing %s deleted by %s", id, owner.Name)
	return nil
}

// DeleteCompany deletes every listing the company owns, then the company
func (c *Coordinator) DeleteCompany(ctx context.Context, email kernel.Email) error {
	found, err := c.companies.GetByEmail(ctx, email)
	if err != nil {
		return errx.Propagate(err, "failed to load company", errx.TypeInternal)
	}

	owned, err := c.listings.ListByCompany(ctx, listing.Owner{ID: found.ID, Name: found.Name})
	if err != nil {
		return ErrIncomplete("list company listings", err)
	}

	for _, l := range owned {
		if err := c.purgeListing(ctx, l); err != nil {
			return err
		}
	}

	if err := c.companies.Delete(ctx, found.ID); err != nil && !errx.IsCode(err, company.CodeCompanyNotFound) {
		return ErrIncomplete("delete company", err)
	}

	logx.Infof("company %s deleted with %d listings", found.Name, len(owned))
	return nil
}

// DeleteSeeker pulls the seeker's email from every listing that holds it,
// then deletes the seeker
func (c *Coordinator) DeleteSeeker(ctx context.Context, email kernel.Email) error {
	found, err := c.seekers.GetByEmail(ctx, email)
	if err != nil {
		return errx.Propagate(err, "failed to load job seeker", errx.TypeInternal)
	}

	ids, err := c.memberListings(ctx, email, found.Interacted())
	if err != nil {
		return err
	}

	for _, id := range ids {
		if err := c.listings.RemoveMember(ctx, id, email); err != nil && !errx.IsCode(err, listing.CodeListingNotFound) {
			return ErrIncomplete("remove applicant", err).WithDetail("listing_id", id.String())
		}
	}

	if err := c.seekers.Delete(ctx, email); err != nil && !errx.IsCode(err, seeker.CodeSeekerNotFound) {
		return ErrIncomplete("delete job seeker", err)
	}

	logx.Infof("job seeker %s deleted from %d listings", email, len(ids))
	return nil
}

// RenameSeekerEmail rewrites a changed seeker email in every listing set.
// The seeker record must already carry the new email.
func (c *Coordinator) RenameSeekerEmail(ctx context.Context, from, to kernel.Email) error {
	if from == to {
		return nil
	}

	found, err := c.seekers.GetByEmail(ctx, to)
	if err != nil {
		return errx.Propagate(err, "failed to load job seeker", errx.TypeInternal)
	}

	ids, err := c.memberListings(ctx, from, found.Interacted())
	if err != nil {
		return err
	}

	for _, id := range ids {
		if err := c.listings.ReplaceMember(ctx, id, from, to); err != nil && !errx.IsCode(err, listing.CodeListingNotFound) {
			return ErrIncomplete("rename applicant", err).WithDetail("listing_id", id.String())
		}
	}

	logx.Infof("job seeker %s renamed to %s on %d listings", from, to, len(ids))
	return nil
}

// RelabelCompany rewrites the company name stored on its listings
func (c *Coordinator) RelabelCompany(ctx context.Context, id kernel.CompanyID, name kernel.Slug) error {
	changed, err := c.listings.RelabelCompany(ctx, id, name)
	if err != nil {
		return ErrIncomplete("relabel listings", err)
	}

	logx.Infof("company %s relabeled to %s on %d listings", id, name, changed)
	return nil
}

// ============================================================================
// Helpers
// ============================================================================

func (c *Coordinator) purgeListing(ctx context.Context, l *listing.Listing) error {
	for _, email := range l.Emails() {
		if err := c.seekers.RemoveListing(ctx, email, l.ID); err != nil && !errx.IsCode(err, seeker.CodeSeekerNotFound) {
			return ErrIncomplete("remove listing reference", err).
				WithDetail("listing_id", l.ID.String()).
				WithDetail("email", email.String())
		}
	}

	if err := c.listings.Delete(ctx, l.ID); err != nil && !errx.IsCode(err, listing.CodeListingNotFound) {
		return ErrIncomplete("delete listing", err).WithDetail("listing_id", l.ID.String())
	}
	return nil
}

// memberListings unions the seeker's mirrored ids with the listings that
// actually hold email, so orphaned memberships are reached too
func (c *Coordinator) memberListings(ctx context.Context, email kernel.Email, mirrored []kernel.ListingID) ([]kernel.ListingID, error) {
	holding, err := c.listings.ListByMember(ctx, email)
	if err != nil {
		return nil, ErrIncomplete("list listings by member", err)
	}

	ids := slices.Clone(mirrored)
	for _, l := range holding {
		if !slices.Contains(ids, l.ID) {
			ids = append(ids, l.ID)
		}
	}
	return ids, nil
}
