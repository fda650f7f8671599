package company

import (
	"time"

	"github.com/PhucNguyen-rsc/job-board-application/pkg/kernel"
)

type Company struct {
	ID           kernel.CompanyID          `db:"id" json:"id"`
	Name         kernel.Slug               `db:"name" json:"name"`
	Email        kernel.Email              `db:"email" json:"email"`
	Country      kernel.Country            `db:"country" json:"country"`
	Description  kernel.CompanyDescription `db:"description" json:"description"`
	PasswordHash kernel.PasswordHash       `db:"password_hash" json:"-"`
	CreatedAt    time.Time                 `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time                 `db:"updated_at" json:"updated_at"`
}

// ============================================================================
// Domain Methods
// ============================================================================

// DisplayName returns a readable form of the canonical name
func (c *Company) DisplayName() string {
	return c.Name.Display()
}

// IsNamed reports whether name canonicalizes to the company's name
func (c *Company) IsNamed(name string) bool {
	return c.Name == kernel.Canonicalize(name)
}

// UpdateDetails applies the non-empty fields and reports whether the
// canonical name changed
func (c *Company) UpdateDetails(name string, email kernel.Email, country kernel.Country, description kernel.CompanyDescription) (renamed bool) {
	if name != "" {
		slug := kernel.Canonicalize(name)
		renamed = slug != c.Name
		c.Name = slug
	}
	if email != "" {
		c.Email = email
	}
	if country != "" {
		c.Country = country
	}
	if description != "" {
		c.Description = description
	}
	c.UpdatedAt = time.Now()
	return renamed
}
