package seeker

import (
	"slices"
	"time"

	"github.com/PhucNguyen-rsc/job-board-application/pkg/kernel"
)

// Set names one of the job seeker's three listing-id sets
type Set string

const (
	SetApplied  Set = "applied"  // pending decision
	SetAccepted Set = "accepted" // selected by the company
	SetRejected Set = "rejected" // rejected by the company
)

// Sets lists every seeker set in reporting precedence
var Sets = []Set{SetAccepted, SetRejected, SetApplied}

func (s Set) IsValid() bool {
	return s == SetApplied || s == SetAccepted || s == SetRejected
}

type JobSeeker struct {
	Email        kernel.Email             `db:"email" json:"email"`
	FirstName    kernel.FirstName         `db:"first_name" json:"first_name"`
	LastName     kernel.LastName          `db:"last_name" json:"last_name"`
	Expertise    kernel.Expertise         `db:"expertise" json:"expertise"`
	Years        kernel.YearsOfExperience `db:"years_of_experience" json:"years_of_experience"`
	PasswordHash kernel.PasswordHash      `db:"password_hash" json:"-"`
	Applied      []kernel.ListingID       `db:"applied" json:"applied"`
	Accepted     []kernel.ListingID       `db:"accepted" json:"accepted"`
	Rejected     []kernel.ListingID       `db:"rejected" json:"rejected"`
	CreatedAt    time.Time                `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time                `db:"updated_at" json:"updated_at"`
}

// ============================================================================
// Domain Methods
// ============================================================================

// Members returns the listing ids held in set
func (j *JobSeeker) Members(set Set) []kernel.ListingID {
	switch set {
	case SetApplied:
		return j.Applied
	case SetAccepted:
		return j.Accepted
	case SetRejected:
		return j.Rejected
	}
	return nil
}

// Has reports whether set contains id
func (j *JobSeeker) Has(set Set, id kernel.ListingID) bool {
	return slices.Contains(j.Members(set), id)
}

// Interacted returns the union of the three sets without duplicates,
// accepted first, then rejected, then applied
func (j *JobSeeker) Interacted() []kernel.ListingID {
	seen := make(map[kernel.ListingID]struct{})
	var out []kernel.ListingID
	for _, set := range Sets {
		for _, id := range j.Members(set) {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	return out
}

// UpdateProfile applies the non-empty fields
func (j *JobSeeker) UpdateProfile(first kernel.FirstName, last kernel.LastName, email kernel.Email, expertise kernel.Expertise, years *kernel.YearsOfExperience) {
	if first != "" {
		j.FirstName = first
	}
	if last != "" {
		j.LastName = last
	}
	if email != "" {
		j.Email = email
	}
	if expertise != "" {
		j.Expertise = expertise
	}
	if years != nil {
		j.Years = *years
	}
	j.UpdatedAt = time.Now()
}
