package companyapi

import (
	"net/url"

	"github.com/PhucNguyen-rsc/job-board-application/pkg/iam/auth"
	"github.com/PhucNguyen-rsc/job-board-application/pkg/kernel"
	"github.com/PhucNguyen-rsc/job-board-application/pkg/validatex"
	"github.com/PhucNguyen-rsc/job-board-application/recruitment/company"
	"github.com/PhucNguyen-rsc/job-board-application/recruitment/company/companysrv"
	"github.com/gofiber/fiber/v2"
)

// Handlers provides HTTP handlers for company operations
type Handlers struct {
	service *companysrv.CompanyService
}

// NewHandlers creates a new company handlers instance
func NewHandlers(service *companysrv.CompanyService) *Handlers {
	return &Handlers{
		service: service,
	}
}

// ListCompanies lists companies, optionally filtered by partial email
// GET /api/companies
func (h *Handlers) ListCompanies(c *fiber.Ctx) error {
	companies, err := h.service.List(c.UserContext(), company.Filter{Email: c.Query("email")})
	if err != nil {
		return err
	}

	return c.JSON(companies)
}

// Signup registers a new company
// POST /api/companies/signup
func (h *Handlers) Signup(c *fiber.Ctx) error {
	// Parse request body
	var req company.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return company.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}
	if err := validatex.Struct(req); err != nil {
		return err
	}

	created, err := h.service.Signup(c.UserContext(), req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Company Registered Successfully",
		"company": created,
	})
}

// Login authenticates a company
// POST /api/companies/login
func (h *Handlers) Login(c *fiber.Ctx) error {
	var req company.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return company.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}
	if err := validatex.Struct(req); err != nil {
		return err
	}

	resp, err := h.service.Authenticate(c.UserContext(), req)
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

// WhoAmI echoes the authenticated company
// GET /api/companies/me
func (h *Handlers) WhoAmI(c *fiber.Ctx) error {
	principal, ok := auth.GetPrincipal(c)
	if !ok || !principal.IsCompany() {
		return company.ErrNotCompany()
	}

	return c.JSON(fiber.Map{
		"message": "Logged in as " + principal.CompanyName.String(),
	})
}

// GetCompany looks up a company by (partial) email
// GET /api/companies/:email
func (h *Handlers) GetCompany(c *fiber.Ctx) error {
	email, err := emailParam(c)
	if err != nil {
		return err
	}

	resp, err := h.service.Get(c.UserContext(), email)
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

// UpdateCompany edits the authenticated company
// PUT /api/companies/:email
func (h *Handlers) UpdateCompany(c *fiber.Ctx) error {
	// Get auth context
	principal, ok := auth.GetPrincipal(c)
	if !ok {
		return company.ErrNotCompany()
	}

	email, err := emailParam(c)
	if err != nil {
		return err
	}

	var req company.UpdateCompanyRequest
	if err := c.BodyParser(&req); err != nil {
		return company.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	resp, err := h.service.Update(c.UserContext(), principal, email, req)
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

// DeleteCompany deletes the authenticated company and its listings
// DELETE /api/companies/:email
func (h *Handlers) DeleteCompany(c *fiber.Ctx) error {
	// Get auth context
	principal, ok := auth.GetPrincipal(c)
	if !ok {
		return company.ErrNotCompany()
	}

	email, err := emailParam(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.UserContext(), principal, email); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Company deleted",
	})
}

// ============================================================================
// Helper Functions
// ============================================================================

func emailParam(c *fiber.Ctx) (kernel.Email, error) {
	raw, err := url.PathUnescape(c.Params("email"))
	if err != nil {
		return "", company.ErrInvalidEmail().WithDetail("email", c.Params("email"))
	}
	return kernel.NewEmail(raw), nil
}

// RegisterRoutes registers all company routes
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware fiber.Handler) {
	api := app.Group("/api/companies")

	api.Get("/", handlers.ListCompanies)
	api.Post("/", handlers.Signup)
	api.Post("/signup", handlers.Signup)
	api.Post("/login", handlers.Login)

	api.Get("/me", authMiddleware, handlers.WhoAmI)

	api.Get("/:email", handlers.GetCompany)
	api.Put("/:email", authMiddleware, handlers.UpdateCompany)
	api.Delete("/:email", authMiddleware, handlers.DeleteCompany)
}
