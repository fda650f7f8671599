package listinginfra

import (
	"context"
	"slices"
	"sort"
	"sync"

	"github.com/PhucNguyen-rsc/job-board-application/pkg/kernel"
	"github.com/PhucNguyen-rsc/job-board-application/recruitment/listing"
)

// MemoryListingRepository implements listing.Repository in process memory
type MemoryListingRepository struct {
	mu       sync.RWMutex
	listings map[kernel.ListingID]*listing.Listing
}

func NewMemoryListingRepository() *MemoryListingRepository {
	return &MemoryListingRepository{
		listings: make(map[kernel.ListingID]*listing.Listing),
	}
}

func (r *MemoryListingRepository) Create(_ context.Context, l *listing.Listing) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.listings[l.ID] = clone(l)
	return nil
}

func (r *MemoryListingRepository) GetByID(_ context.Context, id kernel.ListingID) (*listing.Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	l, ok := r.listings[id]
	if !ok {
		return nil, listing.ErrListingNotFound()
	}
	return clone(l), nil
}

func (r *MemoryListingRepository) Search(_ context.Context, filter listing.CanonicalFilter) ([]*listing.Listing, error) {
	return r.collect(filter.Matches), nil
}

func (r *MemoryListingRepository) ListByCompany(_ context.Context, owner listing.Owner) ([]*listing.Listing, error) {
	return r.collect(func(l *listing.Listing) bool {
		return l.IsOwnedBy(owner)
	}), nil
}

func (r *MemoryListingRepository) ListByApplicant(_ context.Context, email kernel.Email) ([]*listing.Listing, error) {
	return r.collect(func(l *listing.Listing) bool {
		return l.Has(listing.SetApplicants, email)
	}), nil
}

func (r *MemoryListingRepository) ListByMember(_ context.Context, email kernel.Email) ([]*listing.Listing, error) {
	return r.collect(func(l *listing.Listing) bool {
		return l.HasInteracted(email)
	}), nil
}

func (r *MemoryListingRepository) ListAll(_ context.Context) ([]*listing.Listing, error) {
	return r.collect(func(*listing.Listing) bool { return true }), nil
}

func (r *MemoryListingRepository) UpdateDetails(_ context.Context, l *listing.Listing) error {
	return r.mutate(l.ID, func(existing *listing.Listing) {
		existing.Title = l.Title
		existing.Location = l.Location
		existing.Industry = l.Industry
		existing.Seniority = l.Seniority
		existing.UpdatedAt = l.UpdatedAt
	})
}

func (r *MemoryListingRepository) Delete(_ context.Context, id kernel.ListingID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.listings[id]; !ok {
		return listing.ErrListingNotFound()
	}
	delete(r.listings, id)
	return nil
}

func (r *MemoryListingRepository) AddApplicant(_ context.Context, id kernel.ListingID, email kernel.Email) (bool, error) {
	added := false
	err := r.mutate(id, func(l *listing.Listing) {
		if l.HasInteracted(email) {
			return
		}
		l.Applicants = append(l.Applicants, email)
		added = true
	})
	return added, err
}

func (r *MemoryListingRepository) MoveApplicant(_ context.Context, id kernel.ListingID, email kernel.Email, to listing.Set) (bool, error) {
	if to != listing.SetSelected && to != listing.SetRejected {
		return false, listing.ErrInvalidSet().WithDetail("set", to)
	}

	moved := false
	err := r.mutate(id, func(l *listing.Listing) {
		if !l.Has(listing.SetApplicants, email) {
			return
		}
		removeFrom(l, listing.SetApplicants, email)
		addTo(l, to, email)
		moved = true
	})
	return moved, err
}

func (r *MemoryListingRepository) RemoveMember(_ context.Context, id kernel.ListingID, email kernel.Email) error {
	return r.mutate(id, func(l *listing.Listing) {
		for _, set := range listing.Sets {
			removeFrom(l, set, email)
		}
	})
}

func (r *MemoryListingRepository) RemoveFromSet(_ context.Context, id kernel.ListingID, set listing.Set, email kernel.Email) error {
	if !set.IsValid() {
		return listing.ErrInvalidSet().WithDetail("set", set)
	}
	return r.mutate(id, func(l *listing.Listing) {
		removeFrom(l, set, email)
	})
}

func (r *MemoryListingRepository) ReplaceMember(_ context.Context, id kernel.ListingID, from, to kernel.Email) error {
	return r.mutate(id, func(l *listing.Listing) {
		for _, set := range listing.Sets {
			field := setField(l, set)
			for i, email := range *field {
				if email == from {
					(*field)[i] = to
				}
			}
		}
	})
}

func (r *MemoryListingRepository) RelabelCompany(_ context.Context, id kernel.CompanyID, name kernel.Slug) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var changed int64
	for _, l := range r.listings {
		if l.CompanyID == id && l.Company != name {
			l.Company = name
			changed++
		}
	}
	return changed, nil
}

// ============================================================================
// Helpers
// ============================================================================

func (r *MemoryListingRepository) mutate(id kernel.ListingID, fn func(*listing.Listing)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.listings[id]
	if !ok {
		return listing.ErrListingNotFound()
	}
	fn(l)
	return nil
}

func (r *MemoryListingRepository) collect(match func(*listing.Listing) bool) []*listing.Listing {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*listing.Listing, 0)
	for _, l := range r.listings {
		if match(l) {
			out = append(out, clone(l))
		}
	}
	sort.Slice(out, func(a, b int) bool {
		if out[a].CreatedAt.Equal(out[b].CreatedAt) {
			return out[a].ID < out[b].ID
		}
		return out[a].CreatedAt.Before(out[b].CreatedAt)
	})
	return out
}

func setField(l *listing.Listing, set listing.Set) *[]kernel.Email {
	switch set {
	case listing.SetSelected:
		return &l.Selected
	case listing.SetRejected:
		return &l.Rejected
	default:
		return &l.Applicants
	}
}

func addTo(l *listing.Listing, set listing.Set, email kernel.Email) {
	field := setField(l, set)
	if !slices.Contains(*field, email) {
		*field = append(*field, email)
	}
}

func removeFrom(l *listing.Listing, set listing.Set, email kernel.Email) {
	field := setField(l, set)
	*field = slices.DeleteFunc(*field, func(v kernel.Email) bool { return v == email })
}

func clone(l *listing.Listing) *listing.Listing {
	c := *l
	c.Applicants = slices.Clone(l.Applicants)
	c.Selected = slices.Clone(l.Selected)
	c.Rejected = slices.Clone(l.Rejected)
	return &c
}
