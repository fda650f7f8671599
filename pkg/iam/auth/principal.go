package auth

import "github.com/PhucNguyen-rsc/job-board-application/pkg/kernel"

// PrincipalKind tells which signup flow produced the authenticated identity
type PrincipalKind string

const (
	KindCompany   PrincipalKind = "company"
	KindJobSeeker PrincipalKind = "job_seeker"
)

// Principal is the identity the request layer hands to the services. It is
// trusted as-is; credentials were checked when the token was issued.
type Principal struct {
	Kind        PrincipalKind    `json:"kind"`
	CompanyID   kernel.CompanyID `json:"company_id,omitempty"`
	CompanyName kernel.Slug      `json:"company_name,omitempty"`
	Email       kernel.Email     `json:"email"`
	FirstName   kernel.FirstName `json:"first_name,omitempty"`
}

func (p Principal) IsCompany() bool {
	return p.Kind == KindCompany
}

func (p Principal) IsJobSeeker() bool {
	return p.Kind == KindJobSeeker
}
