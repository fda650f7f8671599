package seekerinfra

import (
	"context"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/PhucNguyen-rsc/job-board-application/pkg/kernel"
	"github.com/PhucNguyen-rsc/job-board-application/recruitment/seeker"
)

// MemorySeekerRepository implements seeker.Repository in process memory
type MemorySeekerRepository struct {
	mu      sync.RWMutex
	seekers map[kernel.Email]*seeker.JobSeeker
}

func NewMemorySeekerRepository() *MemorySeekerRepository {
	return &MemorySeekerRepository{
		seekers: make(map[kernel.Email]*seeker.JobSeeker),
	}
}

func (r *MemorySeekerRepository) Create(_ context.Context, j *seeker.JobSeeker) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.seekers[j.Email]; ok {
		return seeker.ErrEmailAlreadyExists()
	}
	r.seekers[j.Email] = clone(j)
	return nil
}

func (r *MemorySeekerRepository) GetByEmail(_ context.Context, email kernel.Email) (*seeker.JobSeeker, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	j, ok := r.seekers[email]
	if !ok {
		return nil, seeker.ErrSeekerNotFound()
	}
	return clone(j), nil
}

func (r *MemorySeekerRepository) Find(_ context.Context, filter seeker.Filter) ([]*seeker.JobSeeker, error) {
	return r.collect(func(j *seeker.JobSeeker) bool {
		return strings.Contains(j.Email.String(), filter.Email)
	}), nil
}

func (r *MemorySeekerRepository) ListAll(_ context.Context) ([]*seeker.JobSeeker, error) {
	return r.collect(func(*seeker.JobSeeker) bool { return true }), nil
}

func (r *MemorySeekerRepository) Update(_ context.Context, email kernel.Email, j *seeker.JobSeeker) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.seekers[email]
	if !ok {
		return seeker.ErrSeekerNotFound()
	}
	if j.Email != email {
		if _, taken := r.seekers[j.Email]; taken {
			return seeker.ErrEmailAlreadyExists()
		}
	}

	updated := clone(existing)
	updated.Email = j.Email
	updated.FirstName = j.FirstName
	updated.LastName = j.LastName
	updated.Expertise = j.Expertise
	updated.Years = j.Years
	updated.UpdatedAt = j.UpdatedAt

	delete(r.seekers, email)
	r.seekers[updated.Email] = updated
	return nil
}

func (r *MemorySeekerRepository) Delete(_ context.Context, email kernel.Email) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.seekers[email]; !ok {
		return seeker.ErrSeekerNotFound()
	}
	delete(r.seekers, email)
	return nil
}

func (r *MemorySeekerRepository) AddToSet(_ context.Context, email kernel.Email, set seeker.Set, id kernel.ListingID) error {
	if !set.IsValid() {
		return seeker.ErrInvalidSet().WithDetail("set", set)
	}
	return r.mutate(email, func(j *seeker.JobSeeker) {
		addTo(j, set, id)
	})
}

func (r *MemorySeekerRepository) RemoveFromSet(_ context.Context, email kernel.Email, set seeker.Set, id kernel.ListingID) error {
	if !set.IsValid() {
		return seeker.ErrInvalidSet().WithDetail("set", set)
	}
	return r.mutate(email, func(j *seeker.JobSeeker) {
		removeFrom(j, set, id)
	})
}

func (r *MemorySeekerRepository) MoveApplied(_ context.Context, email kernel.Email, id kernel.ListingID, to seeker.Set) error {
	if to != seeker.SetAccepted && to != seeker.SetRejected {
		return seeker.ErrInvalidSet().WithDetail("set", to)
	}
	return r.mutate(email, func(j *seeker.JobSeeker) {
		removeFrom(j, seeker.SetApplied, id)
		addTo(j, to, id)
	})
}

func (r *MemorySeekerRepository) RemoveListing(_ context.Context, email kernel.Email, id kernel.ListingID) error {
	return r.mutate(email, func(j *seeker.JobSeeker) {
		for _, set := range seeker.Sets {
			removeFrom(j, set, id)
		}
	})
}

// ============================================================================
// Helpers
// ============================================================================

func (r *MemorySeekerRepository) mutate(email kernel.Email, fn func(*seeker.JobSeeker)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	j, ok := r.seekers[email]
	if !ok {
		return seeker.ErrSeekerNotFound()
	}
	fn(j)
	return nil
}

func (r *MemorySeekerRepository) collect(match func(*seeker.JobSeeker) bool) []*seeker.JobSeeker {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*seeker.JobSeeker, 0)
	for _, j := range r.seekers {
		if match(j) {
			out = append(out, clone(j))
		}
	}
	sort.Slice(out, func(a, b int) bool {
		if out[a].CreatedAt.Equal(out[b].CreatedAt) {
			return out[a].Email < out[b].Email
		}
		return out[a].CreatedAt.Before(out[b].CreatedAt)
	})
	return out
}

func setField(j *seeker.JobSeeker, set seeker.Set) *[]kernel.ListingID {
	switch set {
	case seeker.SetAccepted:
		return &j.Accepted
	case seeker.SetRejected:
		return &j.Rejected
	default:
		return &j.Applied
	}
}

func addTo(j *seeker.JobSeeker, set seeker.Set, id kernel.ListingID) {
	field := setField(j, set)
	if !slices.Contains(*field, id) {
		*field = append(*field, id)
	}
}

func removeFrom(j *seeker.JobSeeker, set seeker.Set, id kernel.ListingID) {
	field := setField(j, set)
	*field = slices.DeleteFunc(*field, func(v kernel.ListingID) bool { return v == id })
}

func clone(j *seeker.JobSeeker) *seeker.JobSeeker {
	c := *j
	c.Applied = slices.Clone(j.Applied)
	c.Accepted = slices.Clone(j.Accepted)
	c.Rejected = slices.Clone(j.Rejected)
	return &c
}
