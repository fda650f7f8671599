package applicationapi

import (
	"time"

	"github.com/PhucNguyen-rsc/job-board-application/pkg/iam/auth"
	"github.com/PhucNguyen-rsc/job-board-application/pkg/kernel"
	"github.com/PhucNguyen-rsc/job-board-application/pkg/validatex"
	"github.com/PhucNguyen-rsc/job-board-application/recruitment/application"
	"github.com/PhucNguyen-rsc/job-board-application/recruitment/application/applicationsrv"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	sessionCookie = "session_id"
	sessionTTL    = 30 * 24 * time.Hour
)

// Handlers provides HTTP handlers for application operations
type Handlers struct {
	service *applicationsrv.ApplicationService
}

// NewHandlers creates a new application handlers instance
func NewHandlers(service *applicationsrv.ApplicationService) *Handlers {
	return &Handlers{
		service: service,
	}
}

// Apply applies the authenticated job seeker to a listing
// PUT /api/job-listings/apply/:id
func (h *Handlers) Apply(c *fiber.Ctx) error {
	// Get auth context
	principal, ok := auth.GetPrincipal(c)
	if !ok {
		return application.ErrNotJobSeeker()
	}

	// Body is optional
	var req application.ApplyRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return application.ErrInvalidRequest().WithDetail("parse_error", err.Error())
		}
	}

	summary, err := h.service.Apply(
		c.UserContext(),
		principal,
		kernel.ListingID(c.Params("id")),
		application.Session{ID: sessionID(c), Variant: req.Variant},
	)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Applied successfully!",
		"job":     summary,
	})
}

// Decide accepts or rejects an applicant of the authenticated company's listing
// PUT /api/job-listings/select/:action
func (h *Handlers) Decide(c *fiber.Ctx) error {
	// Get auth context
	principal, ok := auth.GetPrincipal(c)
	if !ok {
		return application.ErrNotCompany()
	}

	action, err := application.ParseAction(c.Params("action"))
	if err != nil {
		return err
	}

	var req application.DecideRequest
	if err := c.BodyParser(&req); err != nil {
		return application.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}
	if err := validatex.Struct(req); err != nil {
		return err
	}

	err = h.service.Decide(
		c.UserContext(),
		principal,
		req.ID,
		kernel.NewEmail(req.Email.String()),
		action,
		application.Session{ID: sessionID(c), Variant: req.Variant},
	)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Selected successfully!",
	})
}

// ListApplicants returns the pending applicants of a listing
// GET /api/job-listings/:id/applicants
func (h *Handlers) ListApplicants(c *fiber.Ctx) error {
	principal, ok := auth.GetPrincipal(c)
	if !ok {
		return application.ErrNotCompany()
	}

	resp, err := h.service.ListApplicants(c.UserContext(), principal, kernel.ListingID(c.Params("id")))
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

// ListApplications returns the listings the job seeker is pending on
// GET /api/job-listings/job-seeker/applications
func (h *Handlers) ListApplications(c *fiber.Ctx) error {
	principal, ok := auth.GetPrincipal(c)
	if !ok || !principal.IsJobSeeker() {
		return application.ErrNotJobSeeker()
	}

	listings, err := h.service.ListApplications(c.UserContext(), principal.Email)
	if err != nil {
		return err
	}

	return c.JSON(listings)
}

// InquireStatus returns the status of every application of the job seeker
// GET /api/job-seekers/inquire
func (h *Handlers) InquireStatus(c *fiber.Ctx) error {
	principal, ok := auth.GetPrincipal(c)
	if !ok || !principal.IsJobSeeker() {
		return application.ErrNotJobSeeker()
	}

	resp, err := h.service.InquireStatus(c.UserContext(), principal.Email)
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

// ============================================================================
// Helper Functions
// ============================================================================

// sessionID reads the session cookie, issuing one on first contact
func sessionID(c *fiber.Ctx) kernel.SessionID {
	if id := c.Cookies(sessionCookie); id != "" {
		return kernel.SessionID(id)
	}

	id := uuid.NewString()
	c.Cookie(&fiber.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		Expires:  time.Now().Add(sessionTTL),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return kernel.SessionID(id)
}

// RegisterRoutes registers all application routes. It must run before the
// listing and job seeker routes, whose /:id and /:email patterns would
// otherwise capture these paths.
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware fiber.Handler) {
	listings := app.Group("/api/job-listings")

	listings.Put("/apply/:id",
		authMiddleware,
		auth.RequireScope(auth.ScopeApplicationsApply),
		handlers.Apply,
	)

	listings.Put("/select/:action",
		authMiddleware,
		auth.RequireScope(auth.ScopeApplicantsDecide),
		handlers.Decide,
	)

	listings.Get("/job-seeker/applications",
		authMiddleware,
		auth.RequireScope(auth.ScopeApplicationsRead),
		handlers.ListApplications,
	)

	listings.Get("/:id/applicants",
		authMiddleware,
		auth.RequireScope(auth.ScopeApplicantsRead),
		handlers.ListApplicants,
	)

	seekers := app.Group("/api/job-seekers")

	seekers.Get("/inquire",
		authMiddleware,
		auth.RequireScope(auth.ScopeApplicationsRead),
		handlers.InquireStatus,
	)
}
