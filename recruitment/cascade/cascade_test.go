package cascade

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/PhucNguyen-rsc/job-board-application/pkg/errx"
	"github.com/PhucNguyen-rsc/job-board-application/pkg/kernel"
	"github.com/PhucNguyen-rsc/job-board-application/recruitment/company"
	"github.com/PhucNguyen-rsc/job-board-application/recruitment/company/companyinfra"
	"github.com/PhucNguyen-rsc/job-board-application/recruitment/listing"
	"github.com/PhucNguyen-rsc/job-board-application/recruitment/listing/listinginfra"
	"github.com/PhucNguyen-rsc/job-board-application/recruitment/seeker"
	"github.com/PhucNguyen-rsc/job-board-application/recruitment/seeker/seekerinfra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var acme = listing.Owner{ID: "c-acme", Name: "acme"}

// flakySeekers fails RemoveListing a fixed number of times
type flakySeekers struct {
	*seekerinfra.MemorySeekerRepository
	failures int
}

func (f *flakySeekers) RemoveListing(ctx context.Context, email kernel.Email, id kernel.ListingID) error {
	if f.failures > 0 {
		f.failures--
		return errors.New("connection reset")
	}
	return f.MemorySeekerRepository.RemoveListing(ctx, email, id)
}

type fixture struct {
	listings  *listinginfra.MemoryListingRepository
	seekers   *flakySeekers
	companies *companyinfra.MemoryCompanyRepository
	c         *Coordinator
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		listings:  listinginfra.NewMemoryListingRepository(),
		seekers:   &flakySeekers{MemorySeekerRepository: seekerinfra.NewMemorySeekerRepository()},
		companies: companyinfra.NewMemoryCompanyRepository(),
	}
	f.c = NewCoordinator(f.listings, f.seekers, f.companies)
	return f
}

func (f *fixture) addCompany(t *testing.T, owner listing.Owner, email kernel.Email) {
	t.Helper()
	require.NoError(t, f.companies.Create(context.Background(), &company.Company{
		ID:        owner.ID,
		Name:      owner.Name,
		Email:     email,
		CreatedAt: time.Now(),
	}))
}

func (f *fixture) addListing(t *testing.T, owner listing.Owner, applicants, selected, rejected []kernel.Email) kernel.ListingID {
	t.Helper()
	l := &listing.Listing{
		ID:         kernel.NewListingID(),
		Title:      "engineer",
		Company:    owner.Name,
		CompanyID:  owner.ID,
		Applicants: applicants,
		Selected:   selected,
		Rejected:   rejected,
		CreatedAt:  time.Now(),
	}
	require.NoError(t, f.listings.Create(context.Background(), l))
	return l.ID
}

func (f *fixture) addSeeker(t *testing.T, email kernel.Email, applied, accepted, rejected []kernel.ListingID) {
	t.Helper()
	require.NoError(t, f.seekers.Create(context.Background(), &seeker.JobSeeker{
		Email:     email,
		Applied:   applied,
		Accepted:  accepted,
		Rejected:  rejected,
		CreatedAt: time.Now(),
	}))
}

func (f *fixture) seeker(t *testing.T, email kernel.Email) *seeker.JobSeeker {
	t.Helper()
	j, err := f.seekers.GetByEmail(context.Background(), email)
	require.NoError(t, err)
	return j
}

func emails(e ...kernel.Email) []kernel.Email       { return e }
func ids(id ...kernel.ListingID) []kernel.ListingID { return id }

func TestDeleteListing(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	l1 := f.addListing(t, acme, emails("a@x.com", "b@x.com"), emails("c@x.com"), nil)
	other := f.addListing(t, acme, emails("a@x.com"), nil, nil)
	f.addSeeker(t, "a@x.com", ids(l1, other), nil, nil)
	f.addSeeker(t, "b@x.com", ids(l1), nil, nil)
	f.addSeeker(t, "c@x.com", nil, ids(l1), nil)

	require.NoError(t, f.c.DeleteListing(ctx, l1, acme))

	_, err := f.listings.GetByID(ctx, l1)
	assert.True(t, errx.IsCode(err, listing.CodeListingNotFound))

	assert.Equal(t, ids(other), f.seeker(t, "a@x.com").Interacted())
	assert.Empty(t, f.seeker(t, "b@x.com").Interacted())
	assert.Empty(t, f.seeker(t, "c@x.com").Interacted())
}

func TestDeleteListing_Guards(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	l1 := f.addListing(t, acme, emails("a@x.com"), nil, nil)
	f.addSeeker(t, "a@x.com", ids(l1), nil, nil)

	err := f.c.DeleteListing(ctx, l1, listing.Owner{ID: "c-globex", Name: "globex"})
	assert.True(t, errx.IsCode(err, listing.CodeNotAllowed))
	assert.Equal(t, ids(l1), f.seeker(t, "a@x.com").Applied, "nothing is touched on a refused delete")

	err = f.c.DeleteListing(ctx, kernel.NewListingID(), acme)
	assert.True(t, errx.IsCode(err, listing.CodeListingNotFound))
}

func TestDeleteListing_MemberWithoutSeekerRecord(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	l1 := f.addListing(t, acme, emails("gone@x.com"), nil, nil)

	require.NoError(t, f.c.DeleteListing(ctx, l1, acme))
	_, err := f.listings.GetByID(ctx, l1)
	assert.Error(t, err)
}

func TestDeleteListing_RetryAfterFailure(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	l1 := f.addListing(t, acme, emails("a@x.com", "b@x.com"), nil, nil)
	f.addSeeker(t, "a@x.com", ids(l1), nil, nil)
	f.addSeeker(t, "b@x.com", ids(l1), nil, nil)

	f.seekers.failures = 1
	err := f.c.DeleteListing(ctx, l1, acme)
	require.Error(t, err)
	assert.True(t, errx.IsCode(err, CodeIncomplete))

	// the listing is removed last, so a retry finds it again
	_, err = f.listings.GetByID(ctx, l1)
	require.NoError(t, err)

	require.NoError(t, f.c.DeleteListing(ctx, l1, acme))
	assert.Empty(t, f.seeker(t, "a@x.com").Interacted())
	assert.Empty(t, f.seeker(t, "b@x.com").Interacted())
}

func TestDeleteCompany(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	globex := listing.Owner{ID: "c-globex", Name: "globex"}
	f.addCompany(t, acme, "hr@acme.com")
	f.addCompany(t, globex, "hr@globex.com")

	l1 := f.addListing(t, acme, emails("a@x.com"), nil, nil)
	l2 := f.addListing(t, acme, nil, nil, emails("b@x.com"))
	kept := f.addListing(t, globex, emails("a@x.com"), nil, nil)
	f.addSeeker(t, "a@x.com", ids(l1, kept), nil, nil)
	f.addSeeker(t, "b@x.com", nil, nil, ids(l2))
	f.addSeeker(t, "z@x.com", nil, nil, nil)

	require.NoError(t, f.c.DeleteCompany(ctx, "hr@acme.com"))

	_, err := f.companies.GetByEmail(ctx, "hr@acme.com")
	assert.True(t, errx.IsCode(err, company.CodeCompanyNotFound))

	remaining, err := f.listings.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, kept, remaining[0].ID)

	assert.Equal(t, ids(kept), f.seeker(t, "a@x.com").Applied)
	assert.Empty(t, f.seeker(t, "b@x.com").Interacted())
	assert.Empty(t, f.seeker(t, "z@x.com").Interacted())

	_, err = f.companies.GetByEmail(ctx, "hr@globex.com")
	assert.NoError(t, err)
}

func TestDeleteSeeker(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	l1 := f.addListing(t, acme, emails("a@x.com", "b@x.com"), nil, nil)
	l2 := f.addListing(t, acme, nil, emails("a@x.com"), nil)
	// membership the seeker record never mirrored
	l3 := f.addListing(t, acme, nil, nil, emails("a@x.com"))
	f.addSeeker(t, "a@x.com", ids(l1), ids(l2), nil)
	f.addSeeker(t, "b@x.com", ids(l1), nil, nil)

	require.NoError(t, f.c.DeleteSeeker(ctx, "a@x.com"))

	_, err := f.seekers.GetByEmail(ctx, "a@x.com")
	assert.True(t, errx.IsCode(err, seeker.CodeSeekerNotFound))

	for _, id := range ids(l1, l2, l3) {
		l, err := f.listings.GetByID(ctx, id)
		require.NoError(t, err)
		assert.False(t, l.HasInteracted("a@x.com"), "listing %s", id)
	}

	l, err := f.listings.GetByID(ctx, l1)
	require.NoError(t, err)
	assert.Equal(t, emails("b@x.com"), l.Applicants)
}

func TestRenameSeekerEmail(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	l1 := f.addListing(t, acme, emails("old@x.com"), nil, nil)
	l2 := f.addListing(t, acme, nil, nil, emails("old@x.com"))
	f.addSeeker(t, "new@x.com", ids(l1), nil, ids(l2))

	require.NoError(t, f.c.RenameSeekerEmail(ctx, "old@x.com", "new@x.com"))

	first, err := f.listings.GetByID(ctx, l1)
	require.NoError(t, err)
	assert.Equal(t, emails("new@x.com"), first.Applicants)

	second, err := f.listings.GetByID(ctx, l2)
	require.NoError(t, err)
	assert.Equal(t, emails("new@x.com"), second.Rejected)

	assert.NoError(t, f.c.RenameSeekerEmail(ctx, "same@x.com", "same@x.com"))
}

func TestRelabelCompany(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	l1 := f.addListing(t, acme, nil, nil, nil)

	require.NoError(t, f.c.RelabelCompany(ctx, acme.ID, "acme-labs"))

	l, err := f.listings.GetByID(ctx, l1)
	require.NoError(t, err)
	assert.Equal(t, kernel.Slug("acme-labs"), l.Company)
	assert.True(t, l.IsOwnedBy(listing.Owner{ID: acme.ID, Name: "acme-labs"}))
}
