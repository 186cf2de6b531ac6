package profileapi

import (
	"github.com/Abraxas-365/careerlens/careers/profile"
	"github.com/Abraxas-365/careerlens/careers/profile/profilesrv"
	"github.com/Abraxas-365/careerlens/careers/resume/resumeapi"
	"github.com/Abraxas-365/careerlens/pkg/errx"
	"github.com/Abraxas-365/careerlens/pkg/iam"
	"github.com/Abraxas-365/careerlens/pkg/iam/auth"
	"github.com/Abraxas-365/careerlens/pkg/kernel"
	"github.com/gofiber/fiber/v2"
)

// Handlers provides HTTP handlers for login and profile operations
type Handlers struct {
	service *profilesrv.Service
}

func NewHandlers(service *profilesrv.Service) *Handlers {
	return &Handlers{service: service}
}

// VerifyLogin exchanges an identity token for the user record
// POST /api/auth/verify
func (h *Handlers) VerifyLogin(c *fiber.Ctx) error {
	var req profile.VerifyLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return profile.ErrMissingIDToken().WithDetail("parse_error", err.Error())
	}

	resp, err := h.service.VerifyLogin(c.UserContext(), req)
	if err != nil {
		return err
	}

	status := fiber.StatusOK
	if resp.Created {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(resp)
}

// GetProfile returns the caller's user record
// GET /api/profile
func (h *Handlers) GetProfile(c *fiber.Ctx) error {
	authCtx, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrAuthRequired()
	}

	user, err := h.service.GetCurrentUser(c.UserContext(), authCtx.UserID)
	if err != nil {
		return err
	}
	return c.JSON(user)
}

// UpdateProfile replaces the caller's profile
// PUT /api/profile
func (h *Handlers) UpdateProfile(c *fiber.Ctx) error {
	authCtx, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrAuthRequired()
	}

	var body struct {
		Profile profile.Profile `json:"profile"`
	}
	if err := c.BodyParser(&body); err != nil {
		// unknown skill levels surface here as errx validation errors
		if e, ok := errx.As(err); ok {
			return e
		}
		return profile.ErrInvalidProfile().WithDetail("parse_error", err.Error())
	}

	user, err := h.service.UpdateProfile(c.UserContext(), authCtx.UserID, body.Profile)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "Profile saved",
		"profile": user.Profile,
	})
}

// MapResume parses an uploaded résumé into profile fields without saving
// POST /api/profile/map
func (h *Handlers) MapResume(c *fiber.Ctx) error {
	upload, err := resumeapi.ReadUpload(c, resumeapi.FileField)
	if err != nil {
		return err
	}

	// mapping is public; the owner only names the archive folder
	var owner kernel.UserID
	if authCtx, ok := auth.GetAuthContext(c); ok {
		owner = authCtx.UserID
	}

	p, err := h.service.MapResume(c.UserContext(), owner, upload)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"profile": p})
}

func RegisterRoutes(app *fiber.App, handlers *Handlers, mw *auth.TokenMiddleware) {
	app.Post("/api/auth/verify", handlers.VerifyLogin)

	app.Get("/api/profile", mw.Authenticate(), handlers.GetProfile)
	app.Put("/api/profile", mw.Authenticate(), mw.RequireRole(iam.RoleUser, iam.RoleAdmin), handlers.UpdateProfile)
	app.Post("/api/profile/map", handlers.MapResume)
}
