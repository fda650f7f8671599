package cascade

import (
	"net/http"

	"github.com/PhucNguyen-rsc/job-board-application/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("CASCADE")

// Error codes
var (
	CodeIncomplete = ErrRegistry.Register("INCOMPLETE", errx.TypeInternal, http.StatusInternalServerError, "Delete did not complete; retrying is safe")
)

// ErrIncomplete reports a cascade step that failed after earlier steps ran
func ErrIncomplete(step string, cause error) *errx.Error {
	return ErrRegistry.NewWithCause(CodeIncomplete, cause).WithDetail("step", step)
}
