package listinginfra

import (
	"context"
	"testing"
	"time"

	"github.com/PhucNguyen-rsc/job-board-application/pkg/errx"
	"github.com/PhucNguyen-rsc/job-board-application/pkg/kernel"
	"github.com/PhucNguyen-rsc/job-board-application/recruitment/listing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seed(t *testing.T, r *MemoryListingRepository, mutate func(*listing.Listing)) kernel.ListingID {
	t.Helper()
	l := &listing.Listing{ID: kernel.NewListingID(), Title: "engineer", Company: "acme", CompanyID: "c-acme", CreatedAt: time.Now()}
	if mutate != nil {
		mutate(l)
	}
	require.NoError(t, r.Create(context.Background(), l))
	return l.ID
}

func TestAddApplicant(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryListingRepository()
	id := seed(t, r, func(l *listing.Listing) { l.Rejected = []kernel.Email{"r@x.com"} })

	added, err := r.AddApplicant(ctx, id, "a@x.com")
	require.NoError(t, err)
	assert.True(t, added)

	added, err = r.AddApplicant(ctx, id, "a@x.com")
	require.NoError(t, err)
	assert.False(t, added)

	added, err = r.AddApplicant(ctx, id, "r@x.com")
	require.NoError(t, err)
	assert.False(t, added, "a decided email cannot re-enter applicants")

	_, err = r.AddApplicant(ctx, kernel.NewListingID(), "a@x.com")
	assert.True(t, errx.IsCode(err, listing.CodeListingNotFound))

	l, err := r.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []kernel.Email{"a@x.com"}, l.Applicants)
}

func TestMoveApplicant(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryListingRepository()
	id := seed(t, r, func(l *listing.Listing) { l.Applicants = []kernel.Email{"a@x.com"} })

	moved, err := r.MoveApplicant(ctx, id, "a@x.com", listing.SetSelected)
	require.NoError(t, err)
	assert.True(t, moved)

	moved, err = r.MoveApplicant(ctx, id, "a@x.com", listing.SetRejected)
	require.NoError(t, err)
	assert.False(t, moved)

	_, err = r.MoveApplicant(ctx, id, "a@x.com", listing.SetApplicants)
	assert.True(t, errx.IsCode(err, listing.CodeInvalidSet))

	l, err := r.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, l.Applicants)
	assert.Equal(t, []kernel.Email{"a@x.com"}, l.Selected)
	assert.Empty(t, l.Rejected)
}

func TestGetByID_ReturnsCopy(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryListingRepository()
	id := seed(t, r, func(l *listing.Listing) { l.Applicants = []kernel.Email{"a@x.com"} })

	l, err := r.GetByID(ctx, id)
	require.NoError(t, err)
	l.Applicants[0] = "mutated@x.com"

	again, err := r.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []kernel.Email{"a@x.com"}, again.Applicants)
}

func TestMemberQueries(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryListingRepository()
	pending := seed(t, r, func(l *listing.Listing) { l.Applicants = []kernel.Email{"a@x.com"} })
	decided := seed(t, r, func(l *listing.Listing) { l.Selected = []kernel.Email{"a@x.com"} })
	seed(t, r, nil)

	byApplicant, err := r.ListByApplicant(ctx, "a@x.com")
	require.NoError(t, err)
	require.Len(t, byApplicant, 1)
	assert.Equal(t, pending, byApplicant[0].ID)

	byMember, err := r.ListByMember(ctx, "a@x.com")
	require.NoError(t, err)
	var got []kernel.ListingID
	for _, l := range byMember {
		got = append(got, l.ID)
	}
	assert.ElementsMatch(t, []kernel.ListingID{pending, decided}, got)
}

func TestListByCompany(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryListingRepository()
	byID := seed(t, r, nil)
	legacy := seed(t, r, func(l *listing.Listing) { l.CompanyID = "" })
	seed(t, r, func(l *listing.Listing) {
		l.CompanyID = "c-globex"
		l.Company = "globex"
	})

	owned, err := r.ListByCompany(ctx, listing.Owner{ID: "c-acme", Name: "acme"})
	require.NoError(t, err)
	var got []kernel.ListingID
	for _, l := range owned {
		got = append(got, l.ID)
	}
	assert.ElementsMatch(t, []kernel.ListingID{byID, legacy}, got)
}

func TestReplaceAndRemoveMember(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryListingRepository()
	id := seed(t, r, func(l *listing.Listing) {
		l.Applicants = []kernel.Email{"a@x.com", "b@x.com"}
		l.Rejected = []kernel.Email{"a@x.com"}
	})

	require.NoError(t, r.ReplaceMember(ctx, id, "a@x.com", "new@x.com"))
	require.NoError(t, r.RemoveMember(ctx, id, "b@x.com"))

	l, err := r.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []kernel.Email{"new@x.com"}, l.Applicants)
	assert.Equal(t, []kernel.Email{"new@x.com"}, l.Rejected)

	err = r.RemoveMember(ctx, kernel.NewListingID(), "a@x.com")
	assert.True(t, errx.IsCode(err, listing.CodeListingNotFound))
}

func TestRelabelCompany(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryListingRepository()
	seed(t, r, nil)
	seed(t, r, nil)

	changed, err := r.RelabelCompany(ctx, "c-acme", "acme-labs")
	require.NoError(t, err)
	assert.EqualValues(t, 2, changed)

	changed, err = r.RelabelCompany(ctx, "c-acme", "acme-labs")
	require.NoError(t, err)
	assert.Zero(t, changed)
}
