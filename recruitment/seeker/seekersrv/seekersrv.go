package seekersrv

import (
	"context"
	"time"

	"github.com/PhucNguyen-rsc/job-board-application/pkg/errx"
	"github.com/PhucNguyen-rsc/job-board-application/pkg/iam/auth"
	"github.com/PhucNguyen-rsc/job-board-application/pkg/kernel"
	"github.com/PhucNguyen-rsc/job-board-application/pkg/logx"
	"github.com/PhucNguyen-rsc/job-board-application/pkg/txx"
	"github.com/PhucNguyen-rsc/job-board-application/recruitment/seeker"
)

// Cascade propagates job seeker deletes and email changes to listings
type Cascade interface {
	DeleteSeeker(ctx context.Context, email kernel.Email) error
	RenameSeekerEmail(ctx context.Context, from, to kernel.Email) error
}

// SeekerService provides business operations for job seekers
type SeekerService struct {
	seekerRepo seeker.Repository
	cascade    Cascade
	tx         txx.Manager
	hasher     auth.PasswordHasher
	tokens     auth.TokenService
}

// NewSeekerService creates a new instance of the job seeker service
func NewSeekerService(
	seekerRepo seeker.Repository,
	cascade Cascade,
	tx txx.Manager,
	hasher auth.PasswordHasher,
	tokens auth.TokenService,
) *SeekerService {
	return &SeekerService{
		seekerRepo: seekerRepo,
		cascade:    cascade,
		tx:         tx,
		hasher:     hasher,
		tokens:     tokens,
	}
}

// Signup registers a job seeker. Only the email must be unique; two seekers
// may share a name.
func (s *SeekerService) Signup(ctx context.Context, req seeker.SignupRequest) (*seeker.SeekerResponse, error) {
	req.Email = kernel.NewEmail(req.Email.String())
	if !req.Email.IsValid() {
		return nil, seeker.ErrInvalidEmail().WithDetail("email", req.Email.String())
	}
	if !req.Password.IsStrong() {
		return nil, seeker.ErrWeakPassword()
	}
	if !req.Years.IsValid() {
		return nil, seeker.ErrInvalidYears().WithDetail("years_of_experience", req.Years)
	}

	// Check for duplicate email
	if _, err := s.seekerRepo.GetByEmail(ctx, req.Email); err == nil {
		return nil, seeker.ErrEmailAlreadyExists().WithDetail("email", req.Email.String())
	} else if !errx.IsCode(err, seeker.CodeSeekerNotFound) {
		return nil, errx.Wrap(err, "failed to check job seeker email", errx.TypeInternal)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, errx.Wrap(err, "failed to hash password", errx.TypeInternal)
	}

	now := time.Now()
	newSeeker := &seeker.JobSeeker{
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Expertise:    req.Expertise,
		Years:        req.Years,
		PasswordHash: hash,
		Applied:      []kernel.ListingID{},
		Accepted:     []kernel.ListingID{},
		Rejected:     []kernel.ListingID{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.seekerRepo.Create(ctx, newSeeker); err != nil {
		return nil, errx.Propagate(err, "failed to create job seeker", errx.TypeInternal)
	}

	logx.Infof("job seeker %s registered", newSeeker.Email)
	resp := newSeeker.ToResponse()
	return &resp, nil
}

// Authenticate checks credentials and issues an access token
func (s *SeekerService) Authenticate(ctx context.Context, req seeker.LoginRequest) (*seeker.LoginResponse, error) {
	email := kernel.NewEmail(req.Email.String())
	if !email.IsValid() {
		return nil, seeker.ErrInvalidEmail().WithDetail("email", email.String())
	}

	found, err := s.seekerRepo.GetByEmail(ctx, email)
	if err != nil {
		if errx.IsCode(err, seeker.CodeSeekerNotFound) {
			return nil, seeker.ErrBadCredentials()
		}
		return nil, errx.Wrap(err, "failed to load job seeker", errx.TypeInternal)
	}

	if !s.hasher.Compare(found.PasswordHash, req.Password) {
		return nil, seeker.ErrBadCredentials()
	}

	token, expiresAt, err := s.tokens.Issue(auth.Principal{
		Kind:      auth.KindJobSeeker,
		Email:     found.Email,
		FirstName: found.FirstName,
	})
	if err != nil {
		return nil, errx.Wrap(err, "failed to issue token", errx.TypeInternal)
	}

	return &seeker.LoginResponse{
		Message:     "Logged in Successfully",
		AccessToken: token,
		ExpiresAt:   expiresAt,
		JobSeeker:   found.ToResponse(),
	}, nil
}

// Get returns the first job seeker whose email contains the given term
func (s *SeekerService) Get(ctx context.Context, email kernel.Email) (*seeker.SeekerResponse, error) {
	if !email.IsValid() {
		return nil, seeker.ErrInvalidEmail().WithDetail("email", email.String())
	}

	matches, err := s.seekerRepo.Find(ctx, seeker.Filter{Email: email.String()})
	if err != nil {
		return nil, errx.Wrap(err, "failed to find job seeker", errx.TypeInternal)
	}
	if len(matches) == 0 {
		return nil, seeker.ErrSeekerNotFound().WithDetail("email", email.String())
	}

	resp := matches[0].ToResponse()
	return &resp, nil
}

// List returns every job seeker matching the filter
func (s *SeekerService) List(ctx context.Context, filter seeker.Filter) ([]seeker.SeekerResponse, error) {
	seekers, err := s.seekerRepo.Find(ctx, filter)
	if err != nil {
		return nil, errx.Wrap(err, "failed to list job seekers", errx.TypeInternal)
	}

	responses := make([]seeker.SeekerResponse, 0, len(seekers))
	for _, j := range seekers {
		responses = append(responses, j.ToResponse())
	}
	return responses, nil
}

// UpdateProfile edits the job seeker's own profile. An email change is
// carried into every listing that references the old address.
func (s *SeekerService) UpdateProfile(ctx context.Context, actor auth.Principal, email kernel.Email, req seeker.UpdateSeekerRequest) (*seeker.SeekerResponse, error) {
	if !email.IsValid() {
		return nil, seeker.ErrInvalidEmail().WithDetail("email", email.String())
	}
	if err := authorize(actor, email); err != nil {
		return nil, err
	}
	if req.Email != "" {
		req.Email = kernel.NewEmail(req.Email.String())
		if !req.Email.IsValid() {
			return nil, seeker.ErrInvalidEmail().WithDetail("email", req.Email.String())
		}
	}
	if req.Years != nil && !req.Years.IsValid() {
		return nil, seeker.ErrInvalidYears().WithDetail("years_of_experience", *req.Years)
	}

	var updated *seeker.JobSeeker
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		existing, err := s.seekerRepo.GetByEmail(ctx, email)
		if err != nil {
			return err
		}

		existing.UpdateProfile(req.FirstName, req.LastName, req.Email, req.Expertise, req.Years)
		if existing.Email != email {
			if _, err := s.seekerRepo.GetByEmail(ctx, existing.Email); err == nil {
				return seeker.ErrEmailAlreadyExists().WithDetail("email", existing.Email.String())
			} else if !errx.IsCode(err, seeker.CodeSeekerNotFound) {
				return err
			}
		}

		if err := s.seekerRepo.Update(ctx, email, existing); err != nil {
			return err
		}

		if existing.Email != email {
			if err := s.cascade.RenameSeekerEmail(ctx, email, existing.Email); err != nil {
				return err
			}
			logx.Infof("job seeker %s changed email to %s", email, existing.Email)
		}

		updated = existing
		return nil
	})
	if err != nil {
		return nil, errx.Propagate(err, "failed to update job seeker", errx.TypeInternal)
	}

	resp := updated.ToResponse()
	return &resp, nil
}

// Delete removes the job seeker after detaching it from every listing
func (s *SeekerService) Delete(ctx context.Context, actor auth.Principal, email kernel.Email) error {
	if !email.IsValid() {
		return seeker.ErrInvalidEmail().WithDetail("email", email.String())
	}
	if err := authorize(actor, email); err != nil {
		return err
	}

	return s.cascade.DeleteSeeker(ctx, email)
}

// authorize lets a job seeker principal act on its own record only
func authorize(actor auth.Principal, email kernel.Email) error {
	if !actor.IsJobSeeker() {
		return seeker.ErrNotJobSeeker()
	}
	if actor.Email != email {
		return seeker.ErrNotAllowed().WithDetail("email", email.String())
	}
	return nil
}
