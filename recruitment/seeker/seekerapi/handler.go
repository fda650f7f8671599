package seekerapi

import (
	"net/url"

	"github.com/PhucNguyen-rsc/job-board-application/pkg/iam/auth"
	"github.com/PhucNguyen-rsc/job-board-application/pkg/kernel"
	"github.com/PhucNguyen-rsc/job-board-application/pkg/validatex"
	"github.com/PhucNguyen-rsc/job-board-application/recruitment/seeker"
	"github.com/PhucNguyen-rsc/job-board-application/recruitment/seeker/seekersrv"
	"github.com/gofiber/fiber/v2"
)

// Handlers provides HTTP handlers for job seeker operations
type Handlers struct {
	service *seekersrv.SeekerService
}

// NewHandlers creates a new job seeker handlers instance
func NewHandlers(service *seekersrv.SeekerService) *Handlers {
	return &Handlers{
		service: service,
	}
}

// ListSeekers lists job seekers, optionally filtered by partial email
// GET /api/job-seekers
func (h *Handlers) ListSeekers(c *fiber.Ctx) error {
	seekers, err := h.service.List(c.UserContext(), seeker.Filter{Email: c.Query("email")})
	if err != nil {
		return err
	}

	return c.JSON(seekers)
}

// Signup registers a new job seeker
// POST /api/job-seekers/signup
func (h *Handlers) Signup(c *fiber.Ctx) error {
	// Parse request body
	var req seeker.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return seeker.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}
	if err := validatex.Struct(req); err != nil {
		return err
	}

	created, err := h.service.Signup(c.UserContext(), req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":    "Job Seeker Registered Successfully",
		"job_seeker": created,
	})
}

// Login authenticates a job seeker
// POST /api/job-seekers/login
func (h *Handlers) Login(c *fiber.Ctx) error {
	var req seeker.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return seeker.ErrInvalidRequest().WithDetail("parse_error", err.Error())
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

// WhoAmI echoes the authenticated job seeker
// GET /api/job-seekers/me
func (h *Handlers) WhoAmI(c *fiber.Ctx) error {
	principal, ok := auth.GetPrincipal(c)
	if !ok || !principal.IsJobSeeker() {
		return seeker.ErrNotJobSeeker()
	}

	return c.JSON(fiber.Map{
		"message": "Logged in as " + string(principal.FirstName),
	})
}

// GetSeeker looks up a job seeker by (partial) email
// GET /api/job-seekers/:email
func (h *Handlers) GetSeeker(c *fiber.Ctx) error {
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

// UpdateSeeker edits the authenticated job seeker's profile
// PUT /api/job-seekers/:email
func (h *Handlers) UpdateSeeker(c *fiber.Ctx) error {
	// Get auth context
	principal, ok := auth.GetPrincipal(c)
	if !ok {
		return seeker.ErrNotJobSeeker()
	}

	email, err := emailParam(c)
	if err != nil {
		return err
	}

	var req seeker.UpdateSeekerRequest
	if err := c.BodyParser(&req); err != nil {
		return seeker.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	resp, err := h.service.UpdateProfile(c.UserContext(), principal, email, req)
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

// DeleteSeeker deletes the authenticated job seeker
// DELETE /api/job-seekers/:email
func (h *Handlers) DeleteSeeker(c *fiber.Ctx) error {
	// Get auth context
	principal, ok := auth.GetPrincipal(c)
	if !ok {
		return seeker.ErrNotJobSeeker()
	}

	email, err := emailParam(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.UserContext(), principal, email); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Job seeker deleted",
	})
}

// ============================================================================
// Helper Functions
// ============================================================================

func emailParam(c *fiber.Ctx) (kernel.Email, error) {
	raw, err := url.PathUnescape(c.Params("email"))
	if err != nil {
		return "", seeker.ErrInvalidEmail().WithDetail("email", c.Params("email"))
	}
	return kernel.NewEmail(raw), nil
}

// RegisterRoutes registers all job seeker routes. Routes with fixed paths
// under /api/job-seekers owned by other packages must be registered first.
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware fiber.Handler) {
	api := app.Group("/api/job-seekers")

	api.Get("/", handlers.ListSeekers)
	api.Post("/", handlers.Signup)
	api.Post("/signup", handlers.Signup)
	api.Post("/login", handlers.Login)

	api.Get("/me", authMiddleware, handlers.WhoAmI)

	api.Get("/:email", handlers.GetSeeker)
	api.Put("/:email", authMiddleware, handlers.UpdateSeeker)
	api.Delete("/:email", authMiddleware, handlers.DeleteSeeker)
}
