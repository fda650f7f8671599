package application

import (
	"fmt"

	"github.com/PhucNguyen-rsc/job-board-application/pkg/kernel"
	"github.com/PhucNguyen-rsc/job-board-application/recruitment/listing"
	"github.com/PhucNguyen-rsc/job-board-application/recruitment/seeker"
)

// State of one (job seeker, listing) pair as recorded on the listing
type State string

const (
	StateUnapplied State = "UNAPPLIED" // in no set
	StateApplied   State = "APPLIED"
	StateAccepted  State = "ACCEPTED"
	StateRejected  State = "REJECTED"
)

// StateOf derives the pair's state from the listing sets. An email found in
// more than one set resolves by precedence: selected, rejected, applicants.
func StateOf(l *listing.Listing, email kernel.Email) State {
	switch {
	case l.Has(listing.SetSelected, email):
		return StateAccepted
	case l.Has(listing.SetRejected, email):
		return StateRejected
	case l.Has(listing.SetApplicants, email):
		return StateApplied
	}
	return StateUnapplied
}

// Status is what a job seeker sees when inquiring about an application
type Status string

const (
	StatusWaiting  Status = "waiting"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

// StatusOf classifies a listing id from the seeker's mirror. Acceptance and
// rejection take precedence over a stale applied entry.
func StatusOf(j *seeker.JobSeeker, id kernel.ListingID) (Status, bool) {
	switch {
	case j.Has(seeker.SetAccepted, id):
		return StatusAccepted, true
	case j.Has(seeker.SetRejected, id):
		return StatusRejected, true
	case j.Has(seeker.SetApplied, id):
		return StatusWaiting, true
	}
	return "", false
}

// Action is a company's decision on a pending applicant
type Action string

const (
	ActionAccept Action = "accept"
	ActionReject Action = "reject"
)

// ParseAction accepts "accept" or "reject"
func ParseAction(raw string) (Action, error) {
	action := Action(raw)
	if action != ActionAccept && action != ActionReject {
		return "", ErrInvalidAction().WithDetail("action", raw)
	}
	return action, nil
}

// ListingSet is the listing set a decided applicant moves into
func (a Action) ListingSet() listing.Set {
	if a == ActionAccept {
		return listing.SetSelected
	}
	return listing.SetRejected
}

// SeekerSet is the seeker set the decided listing id moves into
func (a Action) SeekerSet() seeker.Set {
	if a == ActionAccept {
		return seeker.SetAccepted
	}
	return seeker.SetRejected
}

// Describe renders the audit description of a decision
func (a Action) Describe(email kernel.Email, title kernel.Slug) string {
	if a == ActionAccept {
		return fmt.Sprintf("accepted %s for %s", email, title)
	}
	return fmt.Sprintf("rejected %s for %s", email, title)
}

// DescribeApply renders the audit description of an application
func DescribeApply(title kernel.Slug) string {
	return fmt.Sprintf("applied to %s", title)
}
