package company

import (
	"net/http"

	"github.com/PhucNguyen-rsc/job-board-application/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("COMPANY")

// Error codes
var (
	CodeCompanyNotFound    = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Company not found")
	CodeEmailAlreadyExists = ErrRegistry.Register("EMAIL_ALREADY_EXISTS", errx.TypeConflict, http.StatusConflict, "The email address already exists")
	CodeNameAlreadyExists  = ErrRegistry.Register("NAME_ALREADY_EXISTS", errx.TypeConflict, http.StatusConflict, "The company name already exists")
	CodeInvalidEmail       = ErrRegistry.Register("INVALID_EMAIL", errx.TypeValidation, http.StatusBadRequest, "Not appropriate email format")
	CodeWeakPassword       = ErrRegistry.Register("WEAK_PASSWORD", errx.TypeValidation, http.StatusBadRequest, "Password must be at least 8 characters long, include an uppercase letter, a lowercase letter, and a number")
	CodeInvalidName        = ErrRegistry.Register("INVALID_NAME", errx.TypeValidation, http.StatusBadRequest, "Company name must contain letters or digits")
	CodeInvalidRequest     = ErrRegistry.Register("INVALID_REQUEST", errx.TypeValidation, http.StatusBadRequest, "Invalid request body")
	CodeBadCredentials     = ErrRegistry.Register("BAD_CREDENTIALS", errx.TypeAuthorization, http.StatusUnauthorized, "Bad credentials")
	CodeNotCompany         = ErrRegistry.Register("NOT_COMPANY", errx.TypeAuthorization, http.StatusUnauthorized, "Only companies are allowed to do this action")
	CodeNotAllowed         = ErrRegistry.Register("NOT_ALLOWED", errx.TypeAuthorization, http.StatusForbidden, "You are not allowed to modify another company")
)

func ErrCompanyNotFound() *errx.Error {
	return ErrRegistry.New(CodeCompanyNotFound)
}

func ErrEmailAlreadyExists() *errx.Error {
	return ErrRegistry.New(CodeEmailAlreadyExists)
}

func ErrNameAlreadyExists() *errx.Error {
	return ErrRegistry.New(CodeNameAlreadyExists)
}

func ErrInvalidEmail() *errx.Error {
	return ErrRegistry.New(CodeInvalidEmail)
}

func ErrWeakPassword() *errx.Error {
	return ErrRegistry.New(CodeWeakPassword)
}

func ErrInvalidName() *errx.Error {
	return ErrRegistry.New(CodeInvalidName)
}

func ErrInvalidRequest() *errx.Error {
	return ErrRegistry.New(CodeInvalidRequest)
}

func ErrBadCredentials() *errx.Error {
	return ErrRegistry.New(CodeBadCredentials)
}

func ErrNotCompany() *errx.Error {
	return ErrRegistry.New(CodeNotCompany)
}

func ErrNotAllowed() *errx.Error {
	return ErrRegistry.New(CodeNotAllowed)
}
