package company

import (
	"time"

	"github.com/PhucNguyen-rsc/job-board-application/pkg/kernel"
)

// SignupRequest - DTO for registering a company
type SignupRequest struct {
	Name        string                    `json:"name" validate:"required"`
	Email       kernel.Email              `json:"email" validate:"required"`
	Country     kernel.Country            `json:"country"`
	Description kernel.CompanyDescription `json:"description"`
	Password    kernel.Password           `json:"password" validate:"required"`
}

// LoginRequest - DTO for company login
type LoginRequest struct {
	Email    kernel.Email    `json:"email" validate:"required"`
	Password kernel.Password `json:"password" validate:"required"`
}

// UpdateCompanyRequest - DTO for updating a company; empty fields are kept
type UpdateCompanyRequest struct {
	Name        string                    `json:"name,omitempty"`
	Email       kernel.Email              `json:"email,omitempty"`
	Country     kernel.Country            `json:"country,omitempty"`
	Description kernel.CompanyDescription `json:"description,omitempty"`
}

// Filter selects companies by partial email. The zero value matches all.
type Filter struct {
	Email string `json:"email,omitempty"`
}

// CompanyResponse - DTO for returning company data
type CompanyResponse struct {
	ID          kernel.CompanyID          `json:"id"`
	Name        kernel.Slug               `json:"name"`
	DisplayName string                    `json:"display_name"`
	Email       kernel.Email              `json:"email"`
	Country     kernel.Country            `json:"country"`
	Description kernel.CompanyDescription `json:"description"`
	CreatedAt   time.Time                 `json:"created_at"`
	UpdatedAt   time.Time                 `json:"updated_at"`
}

// LoginResponse - DTO returned after a successful login
type LoginResponse struct {
	Message     string          `json:"message"`
	AccessToken string          `json:"access_token"`
	ExpiresAt   time.Time       `json:"expires_at"`
	Company     CompanyResponse `json:"company"`
}

// ToResponse hides the password hash
func (c *Company) ToResponse() CompanyResponse {
	return CompanyResponse{
		ID:          c.ID,
		Name:        c.Name,
		DisplayName: c.DisplayName(),
		Email:       c.Email,
		Country:     c.Country,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
