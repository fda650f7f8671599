package companysrv

import (
	"context"
	"time"

	"github.com/PhucNguyen-rsc/job-board-application/pkg/errx"
	"github.com/PhucNguyen-rsc/job-board-application/pkg/iam/auth"
	"github.com/PhucNguyen-rsc/job-board-application/pkg/kernel"
	"github.com/PhucNguyen-rsc/job-board-application/pkg/logx"
	"github.com/PhucNguyen-rsc/job-board-application/pkg/txx"
	"github.com/PhucNguyen-rsc/job-board-application/recruitment/company"
	"github.com/google/uuid"
)

// Cascade propagates company deletes and renames to the listings it owns
type Cascade interface {
	DeleteCompany(ctx context.Context, email kernel.Email) error
	RelabelCompany(ctx context.Context, id kernel.CompanyID, name kernel.Slug) error
}

// CompanyService provides business operations for companies
type CompanyService struct {
	companyRepo company.Repository
	cascade     Cascade
	tx          txx.Manager
	hasher      auth.PasswordHasher
	tokens      auth.TokenService
}

// NewCompanyService creates a new instance of the company service
func NewCompanyService(
	companyRepo company.Repository,
	cascade Cascade,
	tx txx.Manager,
	hasher auth.PasswordHasher,
	tokens auth.TokenService,
) *CompanyService {
	return &CompanyService{
		companyRepo: companyRepo,
		cascade:     cascade,
		tx:          tx,
		hasher:      hasher,
		tokens:      tokens,
	}
}

// Signup registers a company. Email and canonical name must both be unused.
func (s *CompanyService) Signup(ctx context.Context, req company.SignupRequest) (*company.CompanyResponse, error) {
	req.Email = kernel.NewEmail(req.Email.String())
	if !req.Email.IsValid() {
		return nil, company.ErrInvalidEmail().WithDetail("email", req.Email.String())
	}
	if !req.Password.IsStrong() {
		return nil, company.ErrWeakPassword()
	}

	name := kernel.Canonicalize(req.Name)
	if name.IsEmpty() {
		return nil, company.ErrInvalidName().WithDetail("name", req.Name)
	}

	// Check for duplicate email
	if _, err := s.companyRepo.GetByEmail(ctx, req.Email); err == nil {
		return nil, company.ErrEmailAlreadyExists().WithDetail("email", req.Email.String())
	} else if !errx.IsCode(err, company.CodeCompanyNotFound) {
		return nil, errx.Wrap(err, "failed to check company email", errx.TypeInternal)
	}

	// Check for duplicate company name
	if _, err := s.companyRepo.GetByName(ctx, name); err == nil {
		return nil, company.ErrNameAlreadyExists().WithDetail("name", name.String())
	} else if !errx.IsCode(err, company.CodeCompanyNotFound) {
		return nil, errx.Wrap(err, "failed to check company name", errx.TypeInternal)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, errx.Wrap(err, "failed to hash password", errx.TypeInternal)
	}

	now := time.Now()
	newCompany := &company.Company{
		ID:           kernel.NewCompanyID(uuid.NewString()),
		Name:         name,
		Email:        req.Email,
		Country:      req.Country,
		Description:  req.Description,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.companyRepo.Create(ctx, newCompany); err != nil {
		return nil, errx.Propagate(err, "failed to create company", errx.TypeInternal)
	}

	logx.Infof("company %s registered as %s", newCompany.Email, newCompany.Name)
	resp := newCompany.ToResponse()
	return &resp, nil
}

// Authenticate checks credentials and issues an access token
func (s *CompanyService) Authenticate(ctx context.Context, req company.LoginRequest) (*company.LoginResponse, error) {
	email := kernel.NewEmail(req.Email.String())
	if !email.IsValid() {
		return nil, company.ErrInvalidEmail().WithDetail("email", email.String())
	}

	found, err := s.companyRepo.GetByEmail(ctx, email)
	if err != nil {
		if errx.IsCode(err, company.CodeCompanyNotFound) {
			return nil, company.ErrBadCredentials()
		}
		return nil, errx.Wrap(err, "failed to load company", errx.TypeInternal)
	}

	if !s.hasher.Compare(found.PasswordHash, req.Password) {
		return nil, company.ErrBadCredentials()
	}

	token, expiresAt, err := s.tokens.Issue(auth.Principal{
		Kind:        auth.KindCompany,
		CompanyID:   found.ID,
		CompanyName: found.Name,
		Email:       found.Email,
	})
	if err != nil {
		return nil, errx.Wrap(err, "failed to issue token", errx.TypeInternal)
	}

	return &company.LoginResponse{
		Message:     "Logged in Successfully",
		AccessToken: token,
		ExpiresAt:   expiresAt,
		Company:     found.ToResponse(),
	}, nil
}

// Get returns the first company whose email contains the given term
func (s *CompanyService) Get(ctx context.Context, email kernel.Email) (*company.CompanyResponse, error) {
	if !email.IsValid() {
		return nil, company.ErrInvalidEmail().WithDetail("email", email.String())
	}

	matches, err := s.companyRepo.Find(ctx, company.Filter{Email: email.String()})
	if err != nil {
		return nil, errx.Wrap(err, "failed to find company", errx.TypeInternal)
	}
	if len(matches) == 0 {
		return nil, company.ErrCompanyNotFound().WithDetail("email", email.String())
	}

	resp := matches[0].ToResponse()
	return &resp, nil
}

// List returns every company matching the filter
func (s *CompanyService) List(ctx context.Context, filter company.Filter) ([]company.CompanyResponse, error) {
	companies, err := s.companyRepo.Find(ctx, filter)
	if err != nil {
		return nil, errx.Wrap(err, "failed to list companies", errx.TypeInternal)
	}

	responses := make([]company.CompanyResponse, 0, len(companies))
	for _, c := range companies {
		responses = append(responses, c.ToResponse())
	}
	return responses, nil
}

// Update edits the company identified by email. A rename relabels the
// company's listings in the same unit of work.
func (s *CompanyService) Update(ctx context.Context, actor auth.Principal, email kernel.Email, req company.UpdateCompanyRequest) (*company.CompanyResponse, error) {
	if !email.IsValid() {
		return nil, company.ErrInvalidEmail().WithDetail("email", email.String())
	}
	if req.Email != "" {
		req.Email = kernel.NewEmail(req.Email.String())
		if !req.Email.IsValid() {
			return nil, company.ErrInvalidEmail().WithDetail("email", req.Email.String())
		}
	}
	if req.Name != "" && kernel.Canonicalize(req.Name).IsEmpty() {
		return nil, company.ErrInvalidName().WithDetail("name", req.Name)
	}

	var updated *company.Company
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		existing, err := s.companyRepo.GetByEmail(ctx, email)
		if err != nil {
			return err
		}
		if err := authorize(actor, existing); err != nil {
			return err
		}

		renamed := existing.UpdateDetails(req.Name, req.Email, req.Country, req.Description)
		if err := s.companyRepo.Update(ctx, existing); err != nil {
			return err
		}

		if renamed {
			if err := s.cascade.RelabelCompany(ctx, existing.ID, existing.Name); err != nil {
				return err
			}
			logx.Infof("company %s renamed to %s", existing.ID, existing.Name)
		}

		updated = existing
		return nil
	})
	if err != nil {
		return nil, errx.Propagate(err, "failed to update company", errx.TypeInternal)
	}

	resp := updated.ToResponse()
	return &resp, nil
}

// Delete removes the company and, through the cascade, all of its listings
func (s *CompanyService) Delete(ctx context.Context, actor auth.Principal, email kernel.Email) error {
	if !email.IsValid() {
		return company.ErrInvalidEmail().WithDetail("email", email.String())
	}

	existing, err := s.companyRepo.GetByEmail(ctx, email)
	if err != nil {
		return errx.Propagate(err, "failed to load company", errx.TypeInternal)
	}
	if err := authorize(actor, existing); err != nil {
		return err
	}

	return s.cascade.DeleteCompany(ctx, existing.Email)
}

// authorize lets a company principal act on its own record only
func authorize(actor auth.Principal, target *company.Company) error {
	if !actor.IsCompany() {
		return company.ErrNotCompany()
	}
	if actor.CompanyID != target.ID {
		return company.ErrNotAllowed().WithDetail("email", target.Email.String())
	}
	return nil
}
