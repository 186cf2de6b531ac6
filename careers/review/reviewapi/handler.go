package reviewapi

import (
	"github.com/Abraxas-365/careerlens/careers/resume/resumeapi"
	"github.com/Abraxas-365/careerlens/careers/review/reviewsrv"
	"github.com/Abraxas-365/careerlens/pkg/iam"
	"github.com/Abraxas-365/careerlens/pkg/iam/auth"
	"github.com/gofiber/fiber/v2"
)

// JobURLField is the optional form field holding a job posting link
const JobURLField = "jobUrl"

type Handlers struct {
	service *reviewsrv.Service
}

func NewHandlers(service *reviewsrv.Service) *Handlers {
	return &Handlers{service: service}
}

// AnalyzeResume scores an uploaded résumé
// POST /api/career/analyze-resume
func (h *Handlers) AnalyzeResume(c *fiber.Ctx) error {
	upload, err := resumeapi.ReadUpload(c, resumeapi.FileField)
	if err != nil {
		return err
	}

	analysis, err := h.service.Analyze(c.UserContext(), upload, c.FormValue(JobURLField))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success":  true,
		"analysis": analysis,
	})
}

func RegisterRoutes(app *fiber.App, handlers *Handlers, mw *auth.TokenMiddleware) {
	app.Post("/api/career/analyze-resume",
		mw.Authenticate(),
		mw.RequireRole(iam.RoleUser, iam.RoleAdmin),
		handlers.AnalyzeResume,
	)
}
