package company

import (
	"context"

	"github.com/PhucNguyen-rsc/job-board-application/pkg/kernel"
)

type Repository interface {
	// Create stores a new company. Duplicate email or name yields a conflict.
	Create(ctx context.Context, company *Company) error

	// GetByID retrieves a company by its stable identifier
	GetByID(ctx context.Context, id kernel.CompanyID) (*Company, error)

	// GetByEmail retrieves a company by exact email
	GetByEmail(ctx context.Context, email kernel.Email) (*Company, error)

	// GetByName retrieves a company by canonical name
	GetByName(ctx context.Context, name kernel.Slug) (*Company, error)

	// Find returns companies whose email contains filter.Email, oldest first
	Find(ctx context.Context, filter Filter) ([]*Company, error)

	// Update overwrites the mutable fields of the company with the given id
	Update(ctx context.Context, company *Company) error

	// Delete removes the company with the given id
	Delete(ctx context.Context, id kernel.CompanyID) error
}
