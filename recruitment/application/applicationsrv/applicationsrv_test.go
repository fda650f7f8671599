package applicationsrv

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/PhucNguyen-rsc/job-board-application/pkg/errx"
	"github.com/PhucNguyen-rsc/job-board-application/pkg/iam/auth"
	"github.com/PhucNguyen-rsc/job-board-application/pkg/kernel"
	"github.com/PhucNguyen-rsc/job-board-application/pkg/txx"
	"github.com/PhucNguyen-rsc/job-board-application/recruitment/application"
	"github.com/PhucNguyen-rsc/job-board-application/recruitment/listing"
	"github.com/PhucNguyen-rsc/job-board-application/recruitment/listing/listinginfra"
	"github.com/PhucNguyen-rsc/job-board-application/recruitment/seeker"
	"github.com/PhucNguyen-rsc/job-board-application/recruitment/seeker/seekerinfra"
	"github.com/PhucNguyen-rsc/job-board-application/recruitment/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	acme   = auth.Principal{Kind: auth.KindCompany, CompanyID: "c-acme", CompanyName: "acme", Email: "hr@acme.com"}
	globex = auth.Principal{Kind: auth.KindCompany, CompanyID: "c-globex", CompanyName: "globex", Email: "hr@globex.com"}

	session = application.Session{ID: "s-1", Variant: "B"}
)

type recordingRecorder struct {
	mu     sync.Mutex
	events []telemetry.Event
	err    error
}

func (r *recordingRecorder) Record(_ context.Context, event telemetry.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return r.err
}

type fixture struct {
	listings *listinginfra.MemoryListingRepository
	seekers  *seekerinfra.MemorySeekerRepository
	recorder *recordingRecorder
	svc      *ApplicationService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		listings: listinginfra.NewMemoryListingRepository(),
		seekers:  seekerinfra.NewMemorySeekerRepository(),
		recorder: &recordingRecorder{},
	}
	f.svc = NewApplicationService(f.listings, f.seekers, txx.NewLocalManager(), f.recorder)
	return f
}

func (f *fixture) seedListing(t *testing.T, title string, owner auth.Principal, mutate ...func(*listing.Listing)) kernel.ListingID {
	t.Helper()
	l := &listing.Listing{
		ID:        kernel.NewListingID(),
		Title:     kernel.Canonicalize(title),
		Company:   owner.CompanyName,
		CompanyID: owner.CompanyID,
		Location:  "remote",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	for _, fn := range mutate {
		fn(l)
	}
	require.NoError(t, f.listings.Create(context.Background(), l))
	return l.ID
}

func (f *fixture) seedSeeker(t *testing.T, email kernel.Email, mutate ...func(*seeker.JobSeeker)) auth.Principal {
	t.Helper()
	j := &seeker.JobSeeker{
		Email:        email,
		FirstName:    "Ada",
		PasswordHash: "x",
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	for _, fn := range mutate {
		fn(j)
	}
	require.NoError(t, f.seekers.Create(context.Background(), j))
	return auth.Principal{Kind: auth.KindJobSeeker, Email: email, FirstName: "Ada"}
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

func TestApplyThenAccept(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	l1 := f.seedListing(t, "Backend Engineer", acme)
	ada := f.seedSeeker(t, "a@x.com")

	_, err := f.svc.Apply(ctx, ada, l1, session)
	require.NoError(t, err)

	assert.Equal(t, []kernel.Email{"a@x.com"}, f.listing(t, l1).Applicants)
	assert.Equal(t, []kernel.ListingID{l1}, f.seeker(t, "a@x.com").Applied)

	require.NoError(t, f.svc.Decide(ctx, acme, l1, "a@x.com", application.ActionAccept, session))

	l := f.listing(t, l1)
	assert.Empty(t, l.Applicants)
	assert.Equal(t, []kernel.Email{"a@x.com"}, l.Selected)
	j := f.seeker(t, "a@x.com")
	assert.Empty(t, j.Applied)
	assert.Equal(t, []kernel.ListingID{l1}, j.Accepted)

	// the email already left applicants, so the pending check fires first
	err = f.svc.Decide(ctx, acme, l1, "a@x.com", application.ActionAccept, session)
	assert.True(t, errx.IsCode(err, application.CodeNotApplied), "got %v", err)
}

func TestApply_Twice(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	l1 := f.seedListing(t, "Backend Engineer", acme)
	ada := f.seedSeeker(t, "a@x.com")

	_, err := f.svc.Apply(ctx, ada, l1, session)
	require.NoError(t, err)
	before := f.listing(t, l1)

	_, err = f.svc.Apply(ctx, ada, l1, session)
	assert.True(t, errx.IsCode(err, application.CodeAlreadyApplied))

	assert.Equal(t, before.Applicants, f.listing(t, l1).Applicants)
	assert.Equal(t, []kernel.ListingID{l1}, f.seeker(t, "a@x.com").Applied)
}

func TestApply_AfterDecision(t *testing.T) {
	ctx := context.Background()
	for _, action := range []application.Action{application.ActionAccept, application.ActionReject} {
		t.Run(string(action), func(t *testing.T) {
			f := newFixture(t)
			l1 := f.seedListing(t, "Backend Engineer", acme)
			ada := f.seedSeeker(t, "a@x.com")

			_, err := f.svc.Apply(ctx, ada, l1, session)
			require.NoError(t, err)
			require.NoError(t, f.svc.Decide(ctx, acme, l1, "a@x.com", action, session))

			_, err = f.svc.Apply(ctx, ada, l1, session)
			assert.True(t, errx.IsCode(err, application.CodeAlreadyApplied))
		})
	}
}

func TestApply_Errors(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	ada := f.seedSeeker(t, "a@x.com")
	l1 := f.seedListing(t, "Backend Engineer", acme)

	_, err := f.svc.Apply(ctx, ada, "not-an-id", session)
	assert.True(t, errx.IsCode(err, listing.CodeInvalidID))
	assert.True(t, errx.IsType(err, errx.TypeValidation))

	_, err = f.svc.Apply(ctx, ada, kernel.NewListingID(), session)
	assert.True(t, errx.IsCode(err, listing.CodeListingNotFound))

	_, err = f.svc.Apply(ctx, acme, l1, session)
	assert.True(t, errx.IsCode(err, application.CodeNotJobSeeker))
}

func TestDecide_CheckOrder(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.seedSeeker(t, "a@x.com")
	l1 := f.seedListing(t, "Backend Engineer", acme)
	both := f.seedListing(t, "Data Engineer", acme, func(l *listing.Listing) {
		l.Applicants = []kernel.Email{"a@x.com"}
		l.Selected = []kernel.Email{"a@x.com"}
	})

	cases := []struct {
		name  string
		actor auth.Principal
		id    kernel.ListingID
		code  errx.Code
	}{
		{"malformed id", acme, "42", listing.CodeInvalidID},
		{"missing listing", acme, kernel.NewListingID(), listing.CodeListingNotFound},
		{"ownership before membership", globex, l1, listing.CodeNotAllowed},
		{"not pending", acme, l1, application.CodeNotApplied},
		{"pending and selected", acme, both, application.CodeAlreadyDecided},
		{"job seeker actor", auth.Principal{Kind: auth.KindJobSeeker, Email: "a@x.com"}, l1, application.CodeNotCompany},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := f.svc.Decide(ctx, tc.actor, tc.id, "a@x.com", application.ActionAccept, session)
			assert.True(t, errx.IsCode(err, tc.code), "want %s, got %v", tc.code, err)
		})
	}
}

func TestDecide_Reject(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	l1 := f.seedListing(t, "Backend Engineer", acme)
	ada := f.seedSeeker(t, "a@x.com")

	_, err := f.svc.Apply(ctx, ada, l1, session)
	require.NoError(t, err)
	require.NoError(t, f.svc.Decide(ctx, acme, l1, "a@x.com", application.ActionReject, session))

	l := f.listing(t, l1)
	assert.Empty(t, l.Applicants)
	assert.Empty(t, l.Selected)
	assert.Equal(t, []kernel.Email{"a@x.com"}, l.Rejected)

	j := f.seeker(t, "a@x.com")
	assert.Empty(t, j.Applied)
	assert.Equal(t, []kernel.ListingID{l1}, j.Rejected)
}

func TestDecide_OwnershipFollowsCompanyID(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	l1 := f.seedListing(t, "Backend Engineer", acme)
	legacy := f.seedListing(t, "Designer", acme, func(l *listing.Listing) { l.CompanyID = "" })
	ada := f.seedSeeker(t, "a@x.com")

	_, err := f.svc.Apply(ctx, ada, l1, session)
	require.NoError(t, err)
	_, err = f.svc.Apply(ctx, ada, legacy, session)
	require.NoError(t, err)

	renamed := acme
	renamed.CompanyName = "acme-labs"
	assert.NoError(t, f.svc.Decide(ctx, renamed, l1, "a@x.com", application.ActionAccept, session))

	// rows without an owner id still compare by canonical name
	err = f.svc.Decide(ctx, renamed, legacy, "a@x.com", application.ActionAccept, session)
	assert.True(t, errx.IsCode(err, listing.CodeNotAllowed))
	assert.NoError(t, f.svc.Decide(ctx, acme, legacy, "a@x.com", application.ActionAccept, session))
}

func TestDecide_MissingSeekerRecord(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	l1 := f.seedListing(t, "Backend Engineer", acme, func(l *listing.Listing) {
		l.Applicants = []kernel.Email{"gone@x.com"}
	})

	require.NoError(t, f.svc.Decide(ctx, acme, l1, "gone@x.com", application.ActionReject, session))
	assert.Equal(t, []kernel.Email{"gone@x.com"}, f.listing(t, l1).Rejected)
}

func TestListApplicants(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	l1 := f.seedListing(t, "Backend Engineer", acme, func(l *listing.Listing) {
		l.Applicants = []kernel.Email{"a@x.com", "b@x.com"}
		l.Selected = []kernel.Email{"c@x.com"}
		l.Rejected = []kernel.Email{"d@x.com"}
	})

	resp, err := f.svc.ListApplicants(ctx, acme, l1)
	require.NoError(t, err)
	assert.Equal(t, []kernel.Email{"a@x.com", "b@x.com"}, resp.Applicants)

	_, err = f.svc.ListApplicants(ctx, globex, l1)
	assert.True(t, errx.IsCode(err, listing.CodeNotAllowed))

	_, err = f.svc.ListApplicants(ctx, acme, kernel.NewListingID())
	assert.True(t, errx.IsCode(err, listing.CodeListingNotFound))

	empty := f.seedListing(t, "Designer", acme)
	resp, err = f.svc.ListApplicants(ctx, acme, empty)
	require.NoError(t, err)
	assert.NotNil(t, resp.Applicants)
	assert.Empty(t, resp.Applicants)
}

func TestInquireStatus(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	accepted := f.seedListing(t, "Backend Engineer", acme)
	rejected := f.seedListing(t, "Data Engineer", globex)
	waiting := f.seedListing(t, "Designer", acme)
	missing := kernel.NewListingID()

	f.seedSeeker(t, "a@x.com", func(j *seeker.JobSeeker) {
		j.Applied = []kernel.ListingID{accepted, waiting, missing}
		j.Accepted = []kernel.ListingID{accepted}
		j.Rejected = []kernel.ListingID{rejected}
	})

	resp, err := f.svc.InquireStatus(ctx, "a@x.com")
	require.NoError(t, err)

	statuses := make(map[kernel.ListingID]application.Status)
	for _, entry := range resp.Data {
		_, dup := statuses[entry.ListingID]
		assert.False(t, dup, "listing %s reported twice", entry.ListingID)
		statuses[entry.ListingID] = entry.Status
	}
	assert.Equal(t, map[kernel.ListingID]application.Status{
		accepted: application.StatusAccepted,
		rejected: application.StatusRejected,
		waiting:  application.StatusWaiting,
	}, statuses)

	for _, entry := range resp.Data {
		if entry.ListingID == rejected {
			assert.Equal(t, kernel.Slug("globex"), entry.Listing.Company)
			assert.Equal(t, kernel.Slug("data-engineer"), entry.Listing.Title)
		}
	}

	_, err = f.svc.InquireStatus(ctx, "nobody@x.com")
	assert.True(t, errx.IsCode(err, seeker.CodeSeekerNotFound))
}

func TestListApplications(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	l1 := f.seedListing(t, "Backend Engineer", acme)
	l2 := f.seedListing(t, "Designer", acme)
	ada := f.seedSeeker(t, "a@x.com")

	_, err := f.svc.Apply(ctx, ada, l1, session)
	require.NoError(t, err)
	_, err = f.svc.Apply(ctx, ada, l2, session)
	require.NoError(t, err)
	require.NoError(t, f.svc.Decide(ctx, acme, l2, "a@x.com", application.ActionAccept, session))

	listings, err := f.svc.ListApplications(ctx, "a@x.com")
	require.NoError(t, err)
	require.Len(t, listings, 1)
	assert.Equal(t, l1, listings[0].ID)
}

func TestAuditEvents(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.recorder.err = errors.New("redis down")
	l1 := f.seedListing(t, "Backend Engineer", acme)
	ada := f.seedSeeker(t, "a@x.com")

	_, err := f.svc.Apply(ctx, ada, l1, session)
	require.NoError(t, err, "recording failures never fail the transition")
	require.NoError(t, f.svc.Decide(ctx, acme, l1, "a@x.com", application.ActionAccept, session))

	require.Len(t, f.recorder.events, 2)
	assert.Equal(t, "applied to backend-engineer", f.recorder.events[0].Description)
	assert.Equal(t, kernel.SessionID("s-1"), f.recorder.events[0].SessionID)
	assert.Equal(t, "B", f.recorder.events[0].Variant)
	assert.Equal(t, "accepted a@x.com for backend-engineer", f.recorder.events[1].Description)

	_, err = f.svc.Apply(ctx, ada, l1, session)
	require.Error(t, err)
	assert.Len(t, f.recorder.events, 2, "failed transitions are not audited")
}

// Random apply/decide sequences must keep both sides in agreement: an email
// sits in at most one listing set and the seeker mirrors exactly that set.
func TestLifecycle_CrossEntityInvariant(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	rng := rand.New(rand.NewSource(7))

	owners := []auth.Principal{acme, globex}
	var ids []kernel.ListingID
	for i := 0; i < 4; i++ {
		ids = append(ids, f.seedListing(t, "role", owners[i%2]))
	}
	var emails []kernel.Email
	var seekers []auth.Principal
	for _, email := range []kernel.Email{"a@x.com", "b@x.com", "c@x.com"} {
		emails = append(emails, email)
		seekers = append(seekers, f.seedSeeker(t, email))
	}

	for step := 0; step < 300; step++ {
		i := rng.Intn(len(ids))
		k := rng.Intn(len(seekers))
		switch rng.Intn(3) {
		case 0:
			_, _ = f.svc.Apply(ctx, seekers[k], ids[i], session)
		case 1:
			_ = f.svc.Decide(ctx, owners[rng.Intn(2)], ids[i], emails[k], application.ActionAccept, session)
		case 2:
			_ = f.svc.Decide(ctx, owners[rng.Intn(2)], ids[i], emails[k], application.ActionReject, session)
		}
	}

	mirror := map[application.State]seeker.Set{
		application.StateApplied:  seeker.SetApplied,
		application.StateAccepted: seeker.SetAccepted,
		application.StateRejected: seeker.SetRejected,
	}
	for _, id := range ids {
		l := f.listing(t, id)
		for _, email := range emails {
			assert.LessOrEqual(t, len(l.MembershipsOf(email)), 1)

			j := f.seeker(t, email)
			state := application.StateOf(l, email)
			for _, set := range seeker.Sets {
				want := state != application.StateUnapplied && mirror[state] == set
				assert.Equal(t, want, j.Has(set, id), "listing %s email %s set %s", id, email, set)
			}
		}
	}
}
