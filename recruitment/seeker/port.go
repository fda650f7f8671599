package seeker

import (
	"context"

	"github.com/PhucNguyen-rsc/job-board-application/pkg/kernel"
)

type Repository interface {
	// Create stores a new job seeker. A duplicate email yields a conflict.
	Create(ctx context.Context, seeker *JobSeeker) error

	// GetByEmail retrieves a job seeker by exact email
	GetByEmail(ctx context.Context, email kernel.Email) (*JobSeeker, error)

	// Find returns job seekers whose email contains filter.Email, oldest first
	Find(ctx context.Context, filter Filter) ([]*JobSeeker, error)

	// ListAll returns every job seeker
	ListAll(ctx context.Context) ([]*JobSeeker, error)

	// Update overwrites the profile of the seeker currently stored under
	// email. The listing sets are left untouched.
	Update(ctx context.Context, email kernel.Email, seeker *JobSeeker) error

	// Delete removes the job seeker
	Delete(ctx context.Context, email kernel.Email) error

	// AddToSet adds id to set; adding a present id is a no-op
	AddToSet(ctx context.Context, email kernel.Email, set Set, id kernel.ListingID) error

	// RemoveFromSet pulls id from set; pulling an absent id is a no-op
	RemoveFromSet(ctx context.Context, email kernel.Email, set Set, id kernel.ListingID) error

	// MoveApplied pulls id from applied and adds it to the target set
	MoveApplied(ctx context.Context, email kernel.Email, id kernel.ListingID, to Set) error

	// RemoveListing pulls id from all three sets
	RemoveListing(ctx context.Context, email kernel.Email, id kernel.ListingID) error
}
