package auth

import "slices"

// ============================================================================
// DOMAIN-SPECIFIC SCOPES - JOB BOARD
// ============================================================================

const (
	// Listing scopes
	ScopeListingsWrite  = "listings:write"
	ScopeListingsDelete = "listings:delete"

	// Applicant scopes (company side of the lifecycle)
	ScopeApplicantsRead   = "applicants:read"
	ScopeApplicantsDecide = "applicants:decide"

	// Application scopes (job seeker side of the lifecycle)
	ScopeApplicationsApply = "applications:apply"
	ScopeApplicationsRead  = "applications:read"
)

// KindScopes grants scopes per principal kind
var KindScopes = map[PrincipalKind][]string{
	KindCompany: {
		ScopeListingsWrite,
		ScopeListingsDelete,
		ScopeApplicantsRead,
		ScopeApplicantsDecide,
	},
	KindJobSeeker: {
		ScopeApplicationsApply,
		ScopeApplicationsRead,
	},
}

// HasScope reports whether the principal's kind grants scope
func (p Principal) HasScope(scope string) bool {
	return slices.Contains(KindScopes[p.Kind], scope)
}
