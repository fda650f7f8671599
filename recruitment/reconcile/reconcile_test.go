package reconcile

import (
	"context"
	"testing"
	"time"

	"github.com/PhucNguyen-rsc/job-board-application/pkg/kernel"
	"github.com/PhucNguyen-rsc/job-board-application/pkg/txx"
	"github.com/PhucNguyen-rsc/job-board-application/recruitment/listing"
	"github.com/PhucNguyen-rsc/job-board-application/recruitment/listing/listinginfra"
	"github.com/PhucNguyen-rsc/job-board-application/recruitment/seeker"
	"github.com/PhucNguyen-rsc/job-board-application/recruitment/seeker/seekerinfra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	listings *listinginfra.MemoryListingRepository
	seekers  *seekerinfra.MemorySeekerRepository
	sweeper  *Sweeper
}

func newFixture() *fixture {
	f := &fixture{
		listings: listinginfra.NewMemoryListingRepository(),
		seekers:  seekerinfra.NewMemorySeekerRepository(),
	}
	f.sweeper = NewSweeper(f.listings, f.seekers, txx.NewLocalManager())
	return f
}

func (f *fixture) addListing(t *testing.T, mutate func(*listing.Listing)) kernel.ListingID {
	t.Helper()
	l := &listing.Listing{ID: kernel.NewListingID(), Title: "engineer", Company: "acme", CompanyID: "c-acme", CreatedAt: time.Now()}
	if mutate != nil {
		mutate(l)
	}
	require.NoError(t, f.listings.Create(context.Background(), l))
	return l.ID
}

func (f *fixture) addSeeker(t *testing.T, email kernel.Email, mutate func(*seeker.JobSeeker)) {
	t.Helper()
	j := &seeker.JobSeeker{Email: email, CreatedAt: time.Now()}
	if mutate != nil {
		mutate(j)
	}
	require.NoError(t, f.seekers.Create(context.Background(), j))
}

func (f *fixture) listing(t *testing.T, id kernel.ListingID) *listing.Listing {
	t.Helper()
	l, err := f.listings.GetByID(context.Background(), id)
	require.NoError(t, err)
	return l
}

func (f *fixture) seeker(t *testing.T, email kernel.Email) *seeker.JobSeeker {
	t.Helper()
	j, err := f.seekers.GetByEmail(context.Background(), email)
	require.NoError(t, err)
	return j
}

func TestRun_Clean(t *testing.T) {
	f := newFixture()
	id := f.addListing(t, func(l *listing.Listing) { l.Applicants = []kernel.Email{"a@x.com"} })
	f.addSeeker(t, "a@x.com", func(j *seeker.JobSeeker) { j.Applied = []kernel.ListingID{id} })

	report, err := f.sweeper.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Report{Listings: 1, Seekers: 1}, report)
	assert.Zero(t, report.Repairs())
}

func TestRun_DuplicateMembership(t *testing.T) {
	f := newFixture()
	id := f.addListing(t, func(l *listing.Listing) {
		l.Applicants = []kernel.Email{"a@x.com"}
		l.Selected = []kernel.Email{"a@x.com"}
		l.Rejected = []kernel.Email{"a@x.com"}
	})
	f.addSeeker(t, "a@x.com", func(j *seeker.JobSeeker) { j.Accepted = []kernel.ListingID{id} })

	report, err := f.sweeper.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, report.DuplicateMemberships)

	l := f.listing(t, id)
	assert.Equal(t, []listing.Set{listing.SetSelected}, l.MembershipsOf("a@x.com"))
}

func TestRun_OrphanMembership(t *testing.T) {
	f := newFixture()
	id := f.addListing(t, func(l *listing.Listing) {
		l.Applicants = []kernel.Email{"gone@x.com", "a@x.com"}
	})
	f.addSeeker(t, "a@x.com", func(j *seeker.JobSeeker) { j.Applied = []kernel.ListingID{id} })

	report, err := f.sweeper.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.OrphanMemberships)
	assert.Equal(t, []kernel.Email{"a@x.com"}, f.listing(t, id).Applicants)
}

func TestRun_MissingMirror(t *testing.T) {
	f := newFixture()
	id := f.addListing(t, func(l *listing.Listing) { l.Rejected = []kernel.Email{"a@x.com"} })
	f.addSeeker(t, "a@x.com", nil)

	report, err := f.sweeper.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.MissingMirrors)
	assert.Equal(t, []kernel.ListingID{id}, f.seeker(t, "a@x.com").Rejected)
}

func TestRun_DanglingReferences(t *testing.T) {
	f := newFixture()
	id := f.addListing(t, func(l *listing.Listing) { l.Selected = []kernel.Email{"a@x.com"} })
	deleted := kernel.NewListingID()
	f.addSeeker(t, "a@x.com", func(j *seeker.JobSeeker) {
		// stale applied entry next to the accepted mirror, plus a deleted listing
		j.Applied = []kernel.ListingID{id, deleted}
		j.Accepted = []kernel.ListingID{id}
	})

	report, err := f.sweeper.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, report.DanglingReferences)

	j := f.seeker(t, "a@x.com")
	assert.Empty(t, j.Applied)
	assert.Equal(t, []kernel.ListingID{id}, j.Accepted)
}

func TestRun_Converges(t *testing.T) {
	f := newFixture()
	id := f.addListing(t, func(l *listing.Listing) {
		l.Applicants = []kernel.Email{"a@x.com", "gone@x.com"}
		l.Rejected = []kernel.Email{"a@x.com", "b@x.com"}
	})
	f.addSeeker(t, "a@x.com", func(j *seeker.JobSeeker) { j.Applied = []kernel.ListingID{id} })
	f.addSeeker(t, "b@x.com", func(j *seeker.JobSeeker) { j.Accepted = []kernel.ListingID{id, kernel.NewListingID()} })

	first, err := f.sweeper.Run(context.Background())
	require.NoError(t, err)
	assert.Positive(t, first.Repairs())

	second, err := f.sweeper.Run(context.Background())
	require.NoError(t, err)
	assert.Zero(t, second.Repairs(), "a second sweep finds nothing to repair")

	l := f.listing(t, id)
	assert.Empty(t, l.Applicants)
	assert.ElementsMatch(t, []kernel.Email{"a@x.com", "b@x.com"}, l.Rejected)
	assert.Equal(t, []kernel.ListingID{id}, f.seeker(t, "a@x.com").Rejected)
	assert.Equal(t, []kernel.ListingID{id}, f.seeker(t, "b@x.com").Rejected)
	assert.Empty(t, f.seeker(t, "b@x.com").Accepted)
}

// interleavedSeekers runs after once the seeker snapshot has been taken,
// standing in for a transition that commits between the sweep's two reads
type interleavedSeekers struct {
	*seekerinfra.MemorySeekerRepository
	after func()
}

func (s *interleavedSeekers) ListAll(ctx context.Context) ([]*seeker.JobSeeker, error) {
	out, err := s.MemorySeekerRepository.ListAll(ctx)
	if s.after != nil {
		s.after()
		s.after = nil
	}
	return out, err
}

func TestRun_ApplyBetweenReads(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	id := f.addListing(t, nil)
	f.addSeeker(t, "a@x.com", nil)

	seekers := &interleavedSeekers{MemorySeekerRepository: f.seekers}
	seekers.after = func() {
		require.NoError(t, f.seekers.AddToSet(ctx, "a@x.com", seeker.SetApplied, id))
		added, err := f.listings.AddApplicant(ctx, id, "a@x.com")
		require.NoError(t, err)
		require.True(t, added)
	}
	sweeper := NewSweeper(f.listings, seekers, txx.NewLocalManager())

	report, err := sweeper.Run(ctx)
	require.NoError(t, err)
	assert.Zero(t, report.DanglingReferences)
	assert.Zero(t, report.OrphanMemberships)

	assert.Equal(t, []kernel.Email{"a@x.com"}, f.listing(t, id).Applicants)
	assert.Equal(t, []kernel.ListingID{id}, f.seeker(t, "a@x.com").Applied)

	again, err := f.sweeper.Run(ctx)
	require.NoError(t, err)
	assert.Zero(t, again.Repairs())
}

func TestRun_DecideBetweenReads(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	id := f.addListing(t, func(l *listing.Listing) { l.Applicants = []kernel.Email{"a@x.com"} })
	f.addSeeker(t, "a@x.com", func(j *seeker.JobSeeker) { j.Applied = []kernel.ListingID{id} })

	seekers := &interleavedSeekers{MemorySeekerRepository: f.seekers}
	seekers.after = func() {
		require.NoError(t, f.seekers.MoveApplied(ctx, "a@x.com", id, seeker.SetAccepted))
		moved, err := f.listings.MoveApplicant(ctx, id, "a@x.com", listing.SetSelected)
		require.NoError(t, err)
		require.True(t, moved)
	}

	_, err := NewSweeper(f.listings, seekers, txx.NewLocalManager()).Run(ctx)
	require.NoError(t, err)

	j := f.seeker(t, "a@x.com")
	assert.Empty(t, j.Applied)
	assert.Equal(t, []kernel.ListingID{id}, j.Accepted)
	assert.Equal(t, []kernel.Email{"a@x.com"}, f.listing(t, id).Selected)
}

func TestRun_SignupBetweenReads(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	id := f.addListing(t, nil)

	seekers := &interleavedSeekers{MemorySeekerRepository: f.seekers}
	seekers.after = func() {
		f.addSeeker(t, "new@x.com", func(j *seeker.JobSeeker) { j.Applied = []kernel.ListingID{id} })
		_, err := f.listings.AddApplicant(ctx, id, "new@x.com")
		require.NoError(t, err)
	}

	report, err := NewSweeper(f.listings, seekers, txx.NewLocalManager()).Run(ctx)
	require.NoError(t, err)
	assert.Zero(t, report.OrphanMemberships)
	assert.Equal(t, []kernel.Email{"new@x.com"}, f.listing(t, id).Applicants)
	assert.Equal(t, []kernel.ListingID{id}, f.seeker(t, "new@x.com").Applied)
}
