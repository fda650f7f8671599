package listing

import (
	"net/http"

	"github.com/PhucNguyen-rsc/job-board-application/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("LISTING")

// Error codes
var (
	CodeListingNotFound = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Cannot find the job you are looking for")
	CodeNotAllowed      = ErrRegistry.Register("NOT_ALLOWED", errx.TypeAuthorization, http.StatusForbidden, "You are not allowed to modify other company's job board")
	CodeInvalidID       = ErrRegistry.Register("INVALID_ID", errx.TypeValidation, http.StatusBadRequest, "Not a valid job listing id")
	CodeInvalidTitle    = ErrRegistry.Register("INVALID_TITLE", errx.TypeValidation, http.StatusBadRequest, "Job title must contain letters or digits")
	CodeInvalidSet      = ErrRegistry.Register("INVALID_SET", errx.TypeValidation, http.StatusBadRequest, "Unknown job listing set")
	CodeInvalidRequest  = ErrRegistry.Register("INVALID_REQUEST", errx.TypeValidation, http.StatusBadRequest, "Invalid request body")
	CodeNotCompany      = ErrRegistry.Register("NOT_COMPANY", errx.TypeAuthorization, http.StatusUnauthorized, "Only companies can manage job postings")
)

func ErrListingNotFound() *errx.Error {
	return ErrRegistry.New(CodeListingNotFound)
}

func ErrNotAllowed() *errx.Error {
	return ErrRegistry.New(CodeNotAllowed)
}

func ErrInvalidID() *errx.Error {
	return ErrRegistry.New(CodeInvalidID)
}

func ErrInvalidTitle() *errx.Error {
	return ErrRegistry.New(CodeInvalidTitle)
}

func ErrInvalidSet() *errx.Error {
	return ErrRegistry.New(CodeInvalidSet)
}

func ErrInvalidRequest() *errx.Error {
	return ErrRegistry.New(CodeInvalidRequest)
}

func ErrNotCompany() *errx.Error {
	return ErrRegistry.New(CodeNotCompany)
}
