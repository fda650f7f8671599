package application

import (
	"github.com/PhucNguyen-rsc/job-board-application/pkg/kernel"
	"github.com/PhucNguyen-rsc/job-board-application/recruitment/listing"
)

// Session identifies the browser session and experiment variant an action
// is attributed to in the audit trail
type Session struct {
	ID      kernel.SessionID
	Variant string
}

// ApplyRequest - optional body of an application
type ApplyRequest struct {
	Variant string `json:"ab_testing_variant,omitempty"`
}

// DecideRequest - DTO for accepting or rejecting an applicant
type DecideRequest struct {
	ID      kernel.ListingID `json:"id" validate:"required"`
	Email   kernel.Email     `json:"email" validate:"required"`
	Variant string           `json:"ab_testing_variant,omitempty"`
}

// ApplicantsResponse - pending applicants of one listing
type ApplicantsResponse struct {
	ListingID  kernel.ListingID `json:"listing_id"`
	Title      kernel.Slug      `json:"title"`
	Applicants []kernel.Email   `json:"applicants"`
}

// StatusEntry - one listing the job seeker has interacted with
type StatusEntry struct {
	ListingID kernel.ListingID       `json:"listing_id"`
	Status    Status                 `json:"status"`
	Listing   listing.ListingSummary `json:"listing"`
}

// InquiryResponse - every application of a job seeker with its status
type InquiryResponse struct {
	Data []StatusEntry `json:"data"`
}
