package seeker

import (
	"time"

	"github.com/PhucNguyen-rsc/job-board-application/pkg/kernel"
)

// SignupRequest - DTO for registering a job seeker
type SignupRequest struct {
	FirstName kernel.FirstName         `json:"first_name" validate:"required"`
	LastName  kernel.LastName          `json:"last_name" validate:"required"`
	Email     kernel.Email             `json:"email" validate:"required"`
	Expertise kernel.Expertise         `json:"expertise"`
	Years     kernel.YearsOfExperience `json:"years_of_experience"`
	Password  kernel.Password          `json:"password" validate:"required"`
}

// LoginRequest - DTO for job seeker login
type LoginRequest struct {
	Email    kernel.Email    `json:"email" validate:"required"`
	Password kernel.Password `json:"password" validate:"required"`
}

// UpdateSeekerRequest - DTO for updating a profile; empty fields are kept
type UpdateSeekerRequest struct {
	FirstName kernel.FirstName          `json:"first_name,omitempty"`
	LastName  kernel.LastName           `json:"last_name,omitempty"`
	Email     kernel.Email              `json:"email,omitempty"`
	Expertise kernel.Expertise          `json:"expertise,omitempty"`
	Years     *kernel.YearsOfExperience `json:"years_of_experience,omitempty"`
}

// Filter selects job seekers by partial email. The zero value matches all.
type Filter struct {
	Email string `json:"email,omitempty"`
}

// SeekerResponse - DTO for returning job seeker data
type SeekerResponse struct {
	Email     kernel.Email             `json:"email"`
	FirstName kernel.FirstName         `json:"first_name"`
	LastName  kernel.LastName          `json:"last_name"`
	Expertise kernel.Expertise         `json:"expertise"`
	Years     kernel.YearsOfExperience `json:"years_of_experience"`
	Applied   []kernel.ListingID       `json:"applied"`
	Accepted  []kernel.ListingID       `json:"accepted"`
	Rejected  []kernel.ListingID       `json:"rejected"`
	CreatedAt time.Time                `json:"created_at"`
	UpdatedAt time.Time                `json:"updated_at"`
}

// LoginResponse - DTO returned after a successful login
type LoginResponse struct {
	Message     string         `json:"message"`
	AccessToken string         `json:"access_token"`
	ExpiresAt   time.Time      `json:"expires_at"`
	JobSeeker   SeekerResponse `json:"job_seeker"`
}

// ToResponse hides the password hash
func (j *JobSeeker) ToResponse() SeekerResponse {
	return SeekerResponse{
		Email:     j.Email,
		FirstName: j.FirstName,
		LastName:  j.LastName,
		Expertise: j.Expertise,
		Years:     j.Years,
		Applied:   nonNil(j.Applied),
		Accepted:  nonNil(j.Accepted),
		Rejected:  nonNil(j.Rejected),
		CreatedAt: j.CreatedAt,
		UpdatedAt: j.UpdatedAt,
	}
}

func nonNil(ids []kernel.ListingID) []kernel.ListingID {
	if ids == nil {
		return []kernel.ListingID{}
	}
	return ids
}
