package application

import (
	"context"

	"github.com/PhucNguyen-rsc/job-board-application/pkg/kernel"
	"github.com/PhucNguyen-rsc/job-board-application/recruitment/listing"
	"github.com/PhucNguyen-rsc/job-board-application/recruitment/seeker"
)

// ListingStore is the part of the listing repository the lifecycle engine
// writes through. The conditional updates are the commit points.
type ListingStore interface {
	GetByID(ctx context.Context, id kernel.ListingID) (*listing.Listing, error)
	ListByApplicant(ctx context.Context, email kernel.Email) ([]*listing.Listing, error)
	AddApplicant(ctx context.Context, id kernel.ListingID, email kernel.Email) (bool, error)
	MoveApplicant(ctx context.Context, id kernel.ListingID, email kernel.Email, to listing.Set) (bool, error)
}

// SeekerStore is the part of the job seeker repository the lifecycle engine
// writes the mirror through
type SeekerStore interface {
	GetByEmail(ctx context.Context, email kernel.Email) (*seeker.JobSeeker, error)
	AddToSet(ctx context.Context, email kernel.Email, set seeker.Set, id kernel.ListingID) error
	MoveApplied(ctx context.Context, email kernel.Email, id kernel.ListingID, to seeker.Set) error
}
