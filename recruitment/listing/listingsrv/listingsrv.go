package listingsrv

import (
	"context"
	"time"

	"github.com/PhucNguyen-rsc/job-board-application/pkg/errx"
	"github.com/PhucNguyen-rsc/job-board-application/pkg/iam/auth"
	"github.com/PhucNguyen-rsc/job-board-application/pkg/kernel"
	"github.com/PhucNguyen-rsc/job-board-application/pkg/logx"
	"github.com/PhucNguyen-rsc/job-board-application/recruitment/company"
	"github.com/PhucNguyen-rsc/job-board-application/recruitment/listing"
)

// Cascade removes a listing together with every seeker reference to it
type Cascade interface {
	DeleteListing(ctx context.Context, id kernel.ListingID, owner listing.Owner) error
}

// CompanyDirectory resolves the current record of the acting company
type CompanyDirectory interface {
	GetByID(ctx context.Context, id kernel.CompanyID) (*company.Company, error)
}

// ListingService provides business operations for job listings
type ListingService struct {
	listingRepo listing.Repository
	companies   CompanyDirectory
	cascade     Cascade
}

// NewListingService creates a new instance of the listing service
func NewListingService(listingRepo listing.Repository, companies CompanyDirectory, cascade Cascade) *ListingService {
	return &ListingService{
		listingRepo: listingRepo,
		companies:   companies,
		cascade:     cascade,
	}
}

// OwnerOf returns the listing owner a company principal acts as
func OwnerOf(actor auth.Principal) (listing.Owner, error) {
	if !actor.IsCompany() {
		return listing.Owner{}, listing.ErrNotCompany()
	}
	return listing.Owner{ID: actor.CompanyID, Name: actor.CompanyName}, nil
}

// ParseID rejects ids that were not generated by the store
func ParseID(raw string) (kernel.ListingID, error) {
	id := kernel.ListingID(raw)
	if !id.IsWellFormed() {
		return "", listing.ErrInvalidID().WithDetail("id", raw)
	}
	return id, nil
}

// Create posts a new job owned by the acting company
func (s *ListingService) Create(ctx context.Context, actor auth.Principal, req listing.CreateListingRequest) (*listing.ListingResponse, error) {
	owner, err := OwnerOf(actor)
	if err != nil {
		return nil, err
	}

	title := kernel.Canonicalize(req.Title)
	if title.IsEmpty() {
		return nil, listing.ErrInvalidTitle().WithDetail("title", req.Title)
	}

	// The token carries the name at login; label with the name as of now.
	current, err := s.companies.GetByID(ctx, owner.ID)
	if err != nil {
		return nil, errx.Propagate(err, "failed to resolve company", errx.TypeInternal)
	}
	owner.Name = current.Name

	now := time.Now()
	newListing := &listing.Listing{
		ID:         kernel.NewListingID(),
		Title:      title,
		Company:    owner.Name,
		CompanyID:  owner.ID,
		Location:   kernel.Canonicalize(req.Location),
		Industry:   kernel.Canonicalize(req.Industry),
		Seniority:  kernel.Canonicalize(req.Seniority),
		Applicants: []kernel.Email{},
		Selected:   []kernel.Email{},
		Rejected:   []kernel.Email{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.listingRepo.Create(ctx, newListing); err != nil {
		return nil, errx.Wrap(err, "failed to create listing", errx.TypeInternal)
	}

	logx.Infof("listing %s posted by %s", newListing.ID, owner.Name)
	resp := newListing.ToResponse()
	return &resp, nil
}

// Get returns one listing with its applicant sets
func (s *ListingService) Get(ctx context.Context, id kernel.ListingID) (*listing.ListingResponse, error) {
	if !id.IsWellFormed() {
		return nil, listing.ErrInvalidID().WithDetail("id", id.String())
	}

	found, err := s.listingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, errx.Propagate(err, "failed to get listing", errx.TypeInternal)
	}

	resp := found.ToResponse()
	return &resp, nil
}

// Search returns the public view of every listing matching the filter
func (s *ListingService) Search(ctx context.Context, filter listing.SearchFilter) ([]listing.ListingSummary, error) {
	listings, err := s.listingRepo.Search(ctx, filter.Canonical())
	if err != nil {
		return nil, errx.Wrap(err, "failed to search listings", errx.TypeInternal)
	}

	summaries := make([]listing.ListingSummary, 0, len(listings))
	for _, l := range listings {
		summaries = append(summaries, l.ToSummary())
	}
	return summaries, nil
}

// Update edits the descriptive fields of a listing owned by the acting company
func (s *ListingService) Update(ctx context.Context, actor auth.Principal, req listing.UpdateListingRequest) (*listing.ListingResponse, error) {
	owner, err := OwnerOf(actor)
	if err != nil {
		return nil, err
	}
	if !req.ID.IsWellFormed() {
		return nil, listing.ErrInvalidID().WithDetail("id", req.ID.String())
	}
	if req.Title != "" && kernel.Canonicalize(req.Title).IsEmpty() {
		return nil, listing.ErrInvalidTitle().WithDetail("title", req.Title)
	}

	existing, err := s.listingRepo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, errx.Propagate(err, "failed to get listing", errx.TypeInternal)
	}
	if !existing.IsOwnedBy(owner) {
		return nil, listing.ErrNotAllowed().WithDetail("id", req.ID.String())
	}

	existing.UpdateDetails(req.Title, req.Location, req.Industry, req.Seniority)
	if err := s.listingRepo.UpdateDetails(ctx, existing); err != nil {
		return nil, errx.Propagate(err, "failed to update listing", errx.TypeInternal)
	}

	resp := existing.ToResponse()
	return &resp, nil
}

// Delete removes a listing owned by the acting company
func (s *ListingService) Delete(ctx context.Context, actor auth.Principal, id kernel.ListingID) error {
	owner, err := OwnerOf(actor)
	if err != nil {
		return err
	}
	if !id.IsWellFormed() {
		return listing.ErrInvalidID().WithDetail("id", id.String())
	}

	return s.cascade.DeleteListing(ctx, id, owner)
}

// ListForCompany returns the acting company's listings and every pending
// applicant across them
func (s *ListingService) ListForCompany(ctx context.Context, actor auth.Principal) (*listing.CompanyListingsResponse, error) {
	owner, err := OwnerOf(actor)
	if err != nil {
		return nil, err
	}

	listings, err := s.listingRepo.ListByCompany(ctx, owner)
	if err != nil {
		return nil, errx.Wrap(err, "failed to list company listings", errx.TypeInternal)
	}

	resp := &listing.CompanyListingsResponse{
		Listings:   make([]listing.ListingResponse, 0, len(listings)),
		Applicants: make([]listing.PendingApplicant, 0),
	}
	for _, l := range listings {
		resp.Listings = append(resp.Listings, l.ToResponse())
		for _, email := range l.Applicants {
			resp.Applicants = append(resp.Applicants, listing.PendingApplicant{
				Email:     email,
				ListingID: l.ID,
				Title:     l.Title,
			})
		}
	}
	return resp, nil
}
