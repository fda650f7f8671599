package reconcile

import (
	"context"

	"github.com/PhucNguyen-rsc/job-board-application/pkg/errx"
	"github.com/PhucNguyen-rsc/job-board-application/pkg/kernel"
	"github.com/PhucNguyen-rsc/job-board-application/pkg/logx"
	"github.com/PhucNguyen-rsc/job-board-application/pkg/txx"
	"github.com/PhucNguyen-rsc/job-board-application/recruitment/listing"
	"github.com/PhucNguyen-rsc/job-board-application/recruitment/seeker"
)

// ListingStore is what the sweep needs from the listing repository
type ListingStore interface {
	ListAll(ctx context.Context) ([]*listing.Listing, error)
	RemoveFromSet(ctx context.Context, id kernel.ListingID, set listing.Set, email kernel.Email) error
	RemoveMember(ctx context.Context, id kernel.ListingID, email kernel.Email) error
}

// SeekerStore is what the sweep needs from the job seeker repository
type SeekerStore interface {
	ListAll(ctx context.Context) ([]*seeker.JobSeeker, error)
	GetByEmail(ctx context.Context, email kernel.Email) (*seeker.JobSeeker, error)
	AddToSet(ctx context.Context, email kernel.Email, set seeker.Set, id kernel.ListingID) error
	RemoveFromSet(ctx context.Context, email kernel.Email, set seeker.Set, id kernel.ListingID) error
}

// Report counts what one sweep saw and repaired
type Report struct {
	Listings             int `json:"listings"`
	Seekers              int `json:"seekers"`
	DuplicateMemberships int `json:"duplicate_memberships"`
	OrphanMemberships    int `json:"orphan_memberships"`
	MissingMirrors       int `json:"missing_mirrors"`
	DanglingReferences   int `json:"dangling_references"`
}

// Repairs is the total number of writes the sweep issued
func (r Report) Repairs() int {
	return r.DuplicateMemberships + r.OrphanMemberships + r.MissingMirrors + r.DanglingReferences
}

// mirrors maps each listing set to the seeker set that reflects it
var mirrors = map[listing.Set]seeker.Set{
	listing.SetApplicants: seeker.SetApplied,
	listing.SetSelected:   seeker.SetAccepted,
	listing.SetRejected:   seeker.SetRejected,
}

// Sweeper repairs listing/job seeker disagreements left by interrupted
// transitions and cascades. The listing side is authoritative. Every repair
// is a set removal or an idempotent add, so a sweep over a stale snapshot
// can at worst leave work for the next sweep.
type Sweeper struct {
	listings ListingStore
	seekers  SeekerStore
	tx       txx.Manager
}

func NewSweeper(listings ListingStore, seekers SeekerStore, tx txx.Manager) *Sweeper {
	return &Sweeper{
		listings: listings,
		seekers:  seekers,
		tx:       tx,
	}
}

// Run performs one full sweep
func (s *Sweeper) Run(ctx context.Context) (Report, error) {
	var report Report
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		report, err = s.sweep(ctx)
		return err
	})
	if err != nil {
		return report, errx.Propagate(err, "reconciliation sweep failed", errx.TypeInternal)
	}

	if report.Repairs() > 0 {
		logx.With(
			"listings", report.Listings,
			"seekers", report.Seekers,
			"duplicates", report.DuplicateMemberships,
			"orphans", report.OrphanMemberships,
			"missing_mirrors", report.MissingMirrors,
			"dangling", report.DanglingReferences,
		).Warn("reconciliation repaired inconsistencies")
	} else {
		logx.Debugf("reconciliation clean: %d listings, %d job seekers", report.Listings, report.Seekers)
	}
	return report, nil
}

func (s *Sweeper) sweep(ctx context.Context) (Report, error) {
	var report Report

	// Seekers before listings. A transition committed between the two reads
	// is newer on the listing side and shows up as a missing mirror, which
	// is repaired by an idempotent add.
	seekers, err := s.seekers.ListAll(ctx)
	if err != nil {
		return report, errx.Wrap(err, "failed to list job seekers", errx.TypeInternal)
	}
	listings, err := s.listings.ListAll(ctx)
	if err != nil {
		return report, errx.Wrap(err, "failed to list listings", errx.TypeInternal)
	}
	report.Listings = len(listings)
	report.Seekers = len(seekers)

	byEmail := make(map[kernel.Email]*seeker.JobSeeker, len(seekers))
	for _, j := range seekers {
		byEmail[j.Email] = j
	}

	// expected[email][listing] is the one seeker set that should hold the id
	expected := make(map[kernel.Email]map[kernel.ListingID]seeker.Set)

	for _, l := range listings {
		for _, email := range l.Emails() {
			sets := l.MembershipsOf(email)
			keep := sets[0]
			for _, extra := range sets[1:] {
				if err := ignoreNotFound(s.listings.RemoveFromSet(ctx, l.ID, extra, email)); err != nil {
					return report, errx.Wrap(err, "failed to drop duplicate membership", errx.TypeInternal)
				}
				report.DuplicateMemberships++
			}

			j, ok := byEmail[email]
			if !ok {
				// may have signed up after the seeker read
				fresh, err := s.seekers.GetByEmail(ctx, email)
				if err == nil {
					byEmail[email] = fresh
					j, ok = fresh, true
				} else if !errx.IsType(err, errx.TypeNotFound) {
					return report, errx.Wrap(err, "failed to get job seeker", errx.TypeInternal)
				}
			}
			if !ok {
				if err := ignoreNotFound(s.listings.RemoveMember(ctx, l.ID, email)); err != nil {
					return report, errx.Wrap(err, "failed to drop orphan membership", errx.TypeInternal)
				}
				report.OrphanMemberships++
				continue
			}

			mirror := mirrors[keep]
			if expected[email] == nil {
				expected[email] = make(map[kernel.ListingID]seeker.Set)
			}
			expected[email][l.ID] = mirror

			if !j.Has(mirror, l.ID) {
				if err := ignoreNotFound(s.seekers.AddToSet(ctx, email, mirror, l.ID)); err != nil {
					return report, errx.Wrap(err, "failed to add missing mirror", errx.TypeInternal)
				}
				report.MissingMirrors++
			}
		}
	}

	for _, j := range seekers {
		for _, set := range seeker.Sets {
			for _, id := range j.Members(set) {
				if want, ok := expected[j.Email][id]; ok && want == set {
					continue
				}
				if err := ignoreNotFound(s.seekers.RemoveFromSet(ctx, j.Email, set, id)); err != nil {
					return report, errx.Wrap(err, "failed to drop dangling reference", errx.TypeInternal)
				}
				report.DanglingReferences++
			}
		}
	}

	return report, nil
}

// ignoreNotFound treats an entity deleted since the snapshot as repaired
func ignoreNotFound(err error) error {
	if err == nil || errx.IsType(err, errx.TypeNotFound) {
		return nil
	}
	return err
}
