package careerapi

import (
	"github.com/Abraxas-365/careerlens/careers/career"
	"github.com/Abraxas-365/careerlens/careers/career/careersrv"
	"github.com/Abraxas-365/careerlens/careers/resume"
	"github.com/Abraxas-365/careerlens/pkg/iam"
	"github.com/Abraxas-365/careerlens/pkg/iam/auth"
	"github.com/gofiber/fiber/v2"
)

// Handlers provides HTTP handlers for career analysis, saved results and
// dataset ingestion
type Handlers struct {
	service *careersrv.Service
	ingest  *careersrv.IngestService
}

func NewHandlers(service *careersrv.Service, ingest *careersrv.IngestService) *Handlers {
	return &Handlers{service: service, ingest: ingest}
}

// AnalyzeCareer suggests careers for the caller's saved profile
// GET /api/career/analyze-career
func (h *Handlers) AnalyzeCareer(c *fiber.Ctx) error {
	authCtx, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrAuthRequired()
	}

	suggestions, err := h.service.AnalyzeUser(c.UserContext(), authCtx.UserID)
	if err != nil {
		return err
	}
	return c.JSON(suggestions)
}

type saveResultsRequest struct {
	Results []career.Suggestion `json:"results"`
}

// SaveResults stores suggestions for the caller
// POST /api/career-results
func (h *Handlers) SaveResults(c *fiber.Ctx) error {
	authCtx, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrAuthRequired()
	}

	var req saveResultsRequest
	if err := c.BodyParser(&req); err != nil {
		return career.ErrInvalidResults().WithDetail("parse_error", err.Error())
	}

	saved, created, err := h.service.SaveResults(c.UserContext(), authCtx.UserID, req.Results)
	if err != nil {
		return err
	}

	status := fiber.StatusOK
	message := "Career result already saved"
	if created {
		status = fiber.StatusCreated
		message = "Career result saved"
	}
	return c.Status(status).JSON(fiber.Map{
		"message": message,
		"created": created,
		"data":    saved,
	})
}

// ListResults returns the caller's saved results, newest first
// GET /api/career-results
func (h *Handlers) ListResults(c *fiber.Ctx) error {
	authCtx, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrAuthRequired()
	}

	results, err := h.service.ListResults(c.UserContext(), authCtx.UserID)
	if err != nil {
		return err
	}
	return c.JSON(results)
}

// Ingest queues a career dataset CSV for embedding
// POST /api/career/ingest
func (h *Handlers) Ingest(c *fiber.Ctx) error {
	header, err := c.FormFile("file")
	if err != nil {
		return resume.ErrMissingFile().WithDetail("field", "file")
	}
	f, err := header.Open()
	if err != nil {
		return resume.ErrMissingFile().WithCause(err)
	}
	defer f.Close()

	receipt, err := h.ingest.Submit(c.UserContext(), f)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusAccepted).JSON(receipt)
}

// IngestStatus reports the ingestion backlog
// GET /api/career/ingest/status
func (h *Handlers) IngestStatus(c *fiber.Ctx) error {
	status, err := h.ingest.Status(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(status)
}

// RegisterRoutes attaches middleware per route. A group-level Use on
// /api/career would also match the public /api/career/courses.
func RegisterRoutes(app *fiber.App, handlers *Handlers, mw *auth.TokenMiddleware) {
	authn := mw.Authenticate()
	users := mw.RequireRole(iam.RoleUser, iam.RoleAdmin)
	admins := mw.RequireRole(iam.RoleAdmin)

	app.Get("/api/career/analyze-career", authn, users, handlers.AnalyzeCareer)
	app.Post("/api/career/ingest", authn, admins, handlers.Ingest)
	app.Get("/api/career/ingest/status", authn, admins, handlers.IngestStatus)

	app.Post("/api/career-results", authn, users, handlers.SaveResults)
	app.Get("/api/career-results", authn, users, handlers.ListResults)
}
