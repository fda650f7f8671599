package listingapi

import (
	"github.com/PhucNguyen-rsc/job-board-application/pkg/iam/auth"
	"github.com/PhucNguyen-rsc/job-board-application/pkg/kernel"
	"github.com/PhucNguyen-rsc/job-board-application/pkg/validatex"
	"github.com/PhucNguyen-rsc/job-board-application/recruitment/listing"
	"github.com/PhucNguyen-rsc/job-board-application/recruitment/listing/listingsrv"
	"github.com/gofiber/fiber/v2"
)

// Handlers provides HTTP handlers for job listing operations
type Handlers struct {
	service *listingsrv.ListingService
}

// NewHandlers creates a new listing handlers instance
func NewHandlers(service *listingsrv.ListingService) *Handlers {
	return &Handlers{
		service: service,
	}
}

// SearchListings searches listings by title, company, location, industry
// and seniority
// GET /api/job-listings
func (h *Handlers) SearchListings(c *fiber.Ctx) error {
	var filter listing.SearchFilter
	if err := c.QueryParser(&filter); err != nil {
		return listing.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	listings, err := h.service.Search(c.UserContext(), filter)
	if err != nil {
		return err
	}

	return c.JSON(listings)
}

// CreateListing posts a job for the authenticated company
// POST /api/job-listings
func (h *Handlers) CreateListing(c *fiber.Ctx) error {
	// Get auth context
	principal, ok := auth.GetPrincipal(c)
	if !ok {
		return listing.ErrNotCompany()
	}

	var req listing.CreateListingRequest
	if err := c.BodyParser(&req); err != nil {
		return listing.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}
	if err := validatex.Struct(req); err != nil {
		return err
	}

	created, err := h.service.Create(c.UserContext(), principal, req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Job posted successfully",
		"job":     created,
	})
}

// UpdateListing edits a listing of the authenticated company
// PUT /api/job-listings
func (h *Handlers) UpdateListing(c *fiber.Ctx) error {
	// Get auth context
	principal, ok := auth.GetPrincipal(c)
	if !ok {
		return listing.ErrNotCompany()
	}

	var req listing.UpdateListingRequest
	if err := c.BodyParser(&req); err != nil {
		return listing.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}
	if err := validatex.Struct(req); err != nil {
		return err
	}

	updated, err := h.service.Update(c.UserContext(), principal, req)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Job updated successfully",
		"job":     updated,
	})
}

// ShowDetails lists the company's listings and pending applicants
// GET /api/job-listings/show-details
func (h *Handlers) ShowDetails(c *fiber.Ctx) error {
	principal, ok := auth.GetPrincipal(c)
	if !ok {
		return listing.ErrNotCompany()
	}

	resp, err := h.service.ListForCompany(c.UserContext(), principal)
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

// GetListing returns a listing by id
// GET /api/job-listings/:id
func (h *Handlers) GetListing(c *fiber.Ctx) error {
	resp, err := h.service.Get(c.UserContext(), kernel.ListingID(c.Params("id")))
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

// DeleteListing deletes a listing of the authenticated company
// DELETE /api/job-listings/:id
func (h *Handlers) DeleteListing(c *fiber.Ctx) error {
	principal, ok := auth.GetPrincipal(c)
	if !ok {
		return listing.ErrNotCompany()
	}

	if err := h.service.Delete(c.UserContext(), principal, kernel.ListingID(c.Params("id"))); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Job deleted successfully",
	})
}

// RegisterRoutes registers all listing routes. Routes owned by the
// application package share the /api/job-listings prefix and must be
// registered before these so /:id does not shadow them.
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware fiber.Handler) {
	api := app.Group("/api/job-listings")

	api.Get("/", handlers.SearchListings)
	api.Post("/", authMiddleware, auth.RequireScope(auth.ScopeListingsWrite), handlers.CreateListing)
	api.Put("/", authMiddleware, auth.RequireScope(auth.ScopeListingsWrite), handlers.UpdateListing)

	api.Get("/show-details", authMiddleware, auth.RequireScope(auth.ScopeApplicantsRead), handlers.ShowDetails)

	api.Get("/:id", handlers.GetListing)
	api.Delete("/:id", authMiddleware, auth.RequireScope(auth.ScopeListingsDelete), handlers.DeleteListing)
}
