package applicationsrv

import (
	"context"

	"github.com/PhucNguyen-rsc/job-board-application/pkg/errx"
	"github.com/PhucNguyen-rsc/job-board-application/pkg/iam/auth"
	"github.com/PhucNguyen-rsc/job-board-application/pkg/kernel"
	"github.com/PhucNguyen-rsc/job-board-application/pkg/logx"
	"github.com/PhucNguyen-rsc/job-board-application/pkg/txx"
	"github.com/PhucNguyen-rsc/job-board-application/recruitment/application"
	"github.com/PhucNguyen-rsc/job-board-application/recruitment/listing"
	"github.com/PhucNguyen-rsc/job-board-application/recruitment/seeker"
	"github.com/PhucNguyen-rsc/job-board-application/recruitment/telemetry"
)

// ApplicationService drives the apply and decide transitions of
// (job seeker, listing) pairs and answers status queries
type ApplicationService struct {
	listings application.ListingStore
	seekers  application.SeekerStore
	tx       txx.Manager
	recorder telemetry.Recorder
}

// NewApplicationService creates a new instance of the application service
func NewApplicationService(
	listings application.ListingStore,
	seekers application.SeekerStore,
	tx txx.Manager,
	recorder telemetry.Recorder,
) *ApplicationService {
	return &ApplicationService{
		listings: listings,
		seekers:  seekers,
		tx:       tx,
		recorder: recorder,
	}
}

// Apply moves the pair from unapplied to applied. The seeker mirror is
// written first; the conditional add on the listing commits the transition.
func (s *ApplicationService) Apply(ctx context.Context, actor auth.Principal, id kernel.ListingID, session application.Session) (*listing.ListingSummary, error) {
	if !actor.IsJobSeeker() {
		return nil, application.ErrNotJobSeeker()
	}
	if !id.IsWellFormed() {
		return nil, listing.ErrInvalidID().WithDetail("id", id.String())
	}
	email := actor.Email

	var applied *listing.Listing
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		found, err := s.listings.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if found.HasInteracted(email) {
			return application.ErrAlreadyApplied().
				WithDetail("id", id.String()).
				WithDetail("state", application.StateOf(found, email))
		}

		if err := s.seekers.AddToSet(ctx, email, seeker.SetApplied, id); err != nil {
			return err
		}

		added, err := s.listings.AddApplicant(ctx, id, email)
		if err != nil {
			return err
		}
		if !added {
			return application.ErrAlreadyApplied().WithDetail("id", id.String())
		}

		applied = found
		return nil
	})
	if err != nil {
		return nil, errx.Propagate(err, "failed to apply", errx.TypeInternal)
	}

	logx.Infof("%s applied to listing %s", email, id)
	s.record(ctx, session, application.DescribeApply(applied.Title))

	summary := applied.ToSummary()
	return &summary, nil
}

// Decide accepts or rejects a pending applicant of a listing owned by the
// acting company. Checks run in order: existence, ownership, pending
// membership, prior acceptance.
func (s *ApplicationService) Decide(ctx context.Context, actor auth.Principal, id kernel.ListingID, email kernel.Email, action application.Action, session application.Session) error {
	if !actor.IsCompany() {
		return application.ErrNotCompany()
	}
	owner := listing.Owner{ID: actor.CompanyID, Name: actor.CompanyName}

	if !id.IsWellFormed() {
		return listing.ErrInvalidID().WithDetail("id", id.String())
	}
	if !email.IsValid() {
		return application.ErrInvalidEmail().WithDetail("email", email.String())
	}

	var decided *listing.Listing
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		found, err := s.listings.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if !found.IsOwnedBy(owner) {
			return listing.ErrNotAllowed().WithDetail("id", id.String())
		}
		if !found.Has(listing.SetApplicants, email) {
			return application.ErrNotApplied().WithDetail("email", email.String())
		}
		if found.Has(listing.SetSelected, email) {
			return application.ErrAlreadyDecided().WithDetail("email", email.String())
		}

		if err := s.seekers.MoveApplied(ctx, email, id, action.SeekerSet()); err != nil {
			if !errx.IsCode(err, seeker.CodeSeekerNotFound) {
				return err
			}
			logx.With("listing_id", id, "email", email).Warn("deciding on applicant without job seeker record")
		}

		moved, err := s.listings.MoveApplicant(ctx, id, email, action.ListingSet())
		if err != nil {
			return err
		}
		if !moved {
			return application.ErrNotApplied().WithDetail("email", email.String())
		}

		decided = found
		return nil
	})
	if err != nil {
		return errx.Propagate(err, "failed to decide on applicant", errx.TypeInternal)
	}

	logx.Infof("listing %s: %s %sed by %s", id, email, action, owner.Name)
	s.record(ctx, session, action.Describe(email, decided.Title))
	return nil
}

// ListApplicants returns the pending applicants of a listing owned by the
// acting company
func (s *ApplicationService) ListApplicants(ctx context.Context, actor auth.Principal, id kernel.ListingID) (*application.ApplicantsResponse, error) {
	if !actor.IsCompany() {
		return nil, application.ErrNotCompany()
	}
	if !id.IsWellFormed() {
		return nil, listing.ErrInvalidID().WithDetail("id", id.String())
	}

	found, err := s.listings.GetByID(ctx, id)
	if err != nil {
		return nil, errx.Propagate(err, "failed to get listing", errx.TypeInternal)
	}
	if !found.IsOwnedBy(listing.Owner{ID: actor.CompanyID, Name: actor.CompanyName}) {
		return nil, listing.ErrNotAllowed().WithDetail("id", id.String())
	}

	applicants := found.Applicants
	if applicants == nil {
		applicants = []kernel.Email{}
	}
	return &application.ApplicantsResponse{
		ListingID:  found.ID,
		Title:      found.Title,
		Applicants: applicants,
	}, nil
}

// InquireStatus reports every listing the job seeker has interacted with,
// once each. Listings that no longer exist are skipped.
func (s *ApplicationService) InquireStatus(ctx context.Context, email kernel.Email) (*application.InquiryResponse, error) {
	found, err := s.seekers.GetByEmail(ctx, email)
	if err != nil {
		return nil, errx.Propagate(err, "failed to get job seeker", errx.TypeInternal)
	}

	resp := &application.InquiryResponse{Data: make([]application.StatusEntry, 0)}
	for _, id := range found.Interacted() {
		status, _ := application.StatusOf(found, id)

		l, err := s.listings.GetByID(ctx, id)
		if err != nil {
			if errx.IsCode(err, listing.CodeListingNotFound) {
				logx.With("listing_id", id, "email", email).Warn("job seeker references missing listing")
				continue
			}
			return nil, errx.Wrap(err, "failed to resolve listing", errx.TypeInternal)
		}

		resp.Data = append(resp.Data, application.StatusEntry{
			ListingID: id,
			Status:    status,
			Listing:   l.ToSummary(),
		})
	}
	return resp, nil
}

// ListApplications returns the listings where the job seeker is still pending
func (s *ApplicationService) ListApplications(ctx context.Context, email kernel.Email) ([]listing.ListingSummary, error) {
	listings, err := s.listings.ListByApplicant(ctx, email)
	if err != nil {
		return nil, errx.Wrap(err, "failed to list applications", errx.TypeInternal)
	}

	summaries := make([]listing.ListingSummary, 0, len(listings))
	for _, l := range listings {
		summaries = append(summaries, l.ToSummary())
	}
	return summaries, nil
}

func (s *ApplicationService) record(ctx context.Context, session application.Session, description string) {
	event := telemetry.NewEvent(session.ID, session.Variant, description)
	if err := s.recorder.Record(ctx, event); err != nil {
		logx.With("session_id", session.ID, "event", description).Warnf("failed to record audit event: %v", err)
	}
}
