package seeker

import (
	"net/http"

	"github.com/PhucNguyen-rsc/job-board-application/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("JOB_SEEKER")

// Error codes
var (
	CodeSeekerNotFound     = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Job seeker not found")
	CodeEmailAlreadyExists = ErrRegistry.Register("EMAIL_ALREADY_EXISTS", errx.TypeConflict, http.StatusConflict, "The email address already exists")
	CodeInvalidEmail       = ErrRegistry.Register("INVALID_EMAIL", errx.TypeValidation, http.StatusBadRequest, "Not appropriate email format")
	CodeWeakPassword       = ErrRegistry.Register("WEAK_PASSWORD", errx.TypeValidation, http.StatusBadRequest, "Password must be at least 8 characters long, include an uppercase letter, a lowercase letter, and a number")
	CodeInvalidYears       = ErrRegistry.Register("INVALID_YEARS", errx.TypeValidation, http.StatusBadRequest, "Years of experience cannot be negative")
	CodeInvalidSet         = ErrRegistry.Register("INVALID_SET", errx.TypeValidation, http.StatusBadRequest, "Unknown job seeker set")
	CodeInvalidRequest     = ErrRegistry.Register("INVALID_REQUEST", errx.TypeValidation, http.StatusBadRequest, "Invalid request body")
	CodeBadCredentials     = ErrRegistry.Register("BAD_CREDENTIALS", errx.TypeAuthorization, http.StatusUnauthorized, "Bad credentials")
	CodeNotJobSeeker       = ErrRegistry.Register("NOT_JOB_SEEKER", errx.TypeAuthorization, http.StatusUnauthorized, "Only signed-in job seekers can do this action")
	CodeNotAllowed         = ErrRegistry.Register("NOT_ALLOWED", errx.TypeAuthorization, http.StatusForbidden, "You are not allowed to modify another job seeker")
)

func ErrSeekerNotFound() *errx.Error {
	return ErrRegistry.New(CodeSeekerNotFound)
}

func ErrEmailAlreadyExists() *errx.Error {
	return ErrRegistry.New(CodeEmailAlreadyExists)
}

func ErrInvalidEmail() *errx.Error {
	return ErrRegistry.New(CodeInvalidEmail)
}

func ErrWeakPassword() *errx.Error {
	return ErrRegistry.New(CodeWeakPassword)
}

func ErrInvalidYears() *errx.Error {
	return ErrRegistry.New(CodeInvalidYears)
}

func ErrInvalidSet() *errx.Error {
	return ErrRegistry.New(CodeInvalidSet)
}

func ErrInvalidRequest() *errx.Error {
	return ErrRegistry.New(CodeInvalidRequest)
}

func ErrBadCredentials() *errx.Error {
	return ErrRegistry.New(CodeBadCredentials)
}

func ErrNotJobSeeker() *errx.Error {
	return ErrRegistry.New(CodeNotJobSeeker)
}

func ErrNotAllowed() *errx.Error {
	return ErrRegistry.New(CodeNotAllowed)
}
