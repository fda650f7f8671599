package application

import (
	"net/http"

	"github.com/PhucNguyen-rsc/job-board-application/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("APPLICATION")

// Error codes
var (
	CodeAlreadyApplied = ErrRegistry.Register("ALREADY_APPLIED", errx.TypeBusiness, http.StatusBadRequest, "You had applied for this position already")
	CodeNotApplied     = ErrRegistry.Register("NOT_APPLIED", errx.TypeBusiness, http.StatusNotFound, "The applicant cannot be found on this job posting's applicant list")
	CodeAlreadyDecided = ErrRegistry.Register("ALREADY_DECIDED", errx.TypeBusiness, http.StatusConflict, "The applicant had already been selected for this job posting")
	CodeInvalidAction  = ErrRegistry.Register("INVALID_ACTION", errx.TypeValidation, http.StatusBadRequest, "Not appropriate action")
	CodeInvalidEmail   = ErrRegistry.Register("INVALID_EMAIL", errx.TypeValidation, http.StatusBadRequest, "Not appropriate email format")
	CodeInvalidRequest = ErrRegistry.Register("INVALID_REQUEST", errx.TypeValidation, http.StatusBadRequest, "Invalid request data")
	CodeNotJobSeeker   = ErrRegistry.Register("NOT_JOB_SEEKER", errx.TypeAuthorization, http.StatusUnauthorized, "Only signed-in job seekers can do this")
	CodeNotCompany     = ErrRegistry.Register("NOT_COMPANY", errx.TypeAuthorization, http.StatusUnauthorized, "Only companies can manage applicants")
)

// Helper functions
func ErrAlreadyApplied() *errx.Error {
	return ErrRegistry.New(CodeAlreadyApplied)
}

func ErrNotApplied() *errx.Error {
	return ErrRegistry.New(CodeNotApplied)
}

func ErrAlreadyDecided() *errx.Error {
	return ErrRegistry.New(CodeAlreadyDecided)
}

func ErrInvalidAction() *errx.Error {
	return ErrRegistry.New(CodeInvalidAction)
}

func ErrInvalidEmail() *errx.Error {
	return ErrRegistry.New(CodeInvalidEmail)
}

func ErrInvalidRequest() *errx.Error {
	return ErrRegistry.New(CodeInvalidRequest)
}

func ErrNotJobSeeker() *errx.Error {
	return ErrRegistry.New(CodeNotJobSeeker)
}

func ErrNotCompany() *errx.Error {
	return ErrRegistry.New(CodeNotCompany)
}
