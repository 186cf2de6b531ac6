package interviewapi

import (
	"github.com/Abraxas-365/careerlens/careers/interview"
	"github.com/Abraxas-365/careerlens/careers/interview/interviewsrv"
	"github.com/Abraxas-365/careerlens/pkg/iam/auth"
	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	service *interviewsrv.Service
}

func NewHandlers(service *interviewsrv.Service) *Handlers {
	return &Handlers{service: service}
}

// FirstQuestion
// POST /api/interview/first-question
func (h *Handlers) FirstQuestion(c *fiber.Ctx) error {
	var req interview.FirstQuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return interview.ErrMissingFields().WithDetail("parse_error", err.Error())
	}

	q, err := h.service.FirstQuestion(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"question": q})
}

// Questions returns a full script of questions for a role
// POST /api/interview/questions
func (h *Handlers) Questions(c *fiber.Ctx) error {
	var req interview.FirstQuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return interview.ErrMissingFields().WithDetail("parse_error", err.Error())
	}

	qs, err := h.service.Script(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"questions": qs})
}

// NextQuestion
// POST /api/interview/next-question
func (h *Handlers) NextQuestion(c *fiber.Ctx) error {
	var req interview.NextQuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return interview.ErrMissingFields().WithDetail("parse_error", err.Error())
	}

	q, err := h.service.NextQuestion(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"question": q})
}

// Feedback
// POST /api/interview/feedback
func (h *Handlers) Feedback(c *fiber.Ctx) error {
	var req interview.FeedbackRequest
	if err := c.BodyParser(&req); err != nil {
		return interview.ErrMissingFields().WithDetail("parse_error", err.Error())
	}

	feedback, err := h.service.Feedback(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"feedback": feedback})
}

// Save stores a finished session for the caller
// POST /api/interview/save
func (h *Handlers) Save(c *fiber.Ctx) error {
	authCtx, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrAuthRequired()
	}

	var req interview.SaveRequest
	if err := c.BodyParser(&req); err != nil {
		return interview.ErrInvalidSession().WithDetail("parse_error", err.Error())
	}

	session, err := h.service.Save(c.UserContext(), authCtx.UserID, req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Session saved",
		"session": session,
	})
}

// History lists the caller's sessions, newest first
// GET /api/interview/interview-history
func (h *Handlers) History(c *fiber.Ctx) error {
	authCtx, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrAuthRequired()
	}

	sessions, err := h.service.History(c.UserContext(), authCtx.UserID)
	if err != nil {
		return err
	}
	return c.JSON(sessions)
}

func RegisterRoutes(app *fiber.App, handlers *Handlers, mw *auth.TokenMiddleware) {
	interviews := app.Group("/api/interview")

	interviews.Post("/first-question", handlers.FirstQuestion)
	interviews.Post("/questions", handlers.Questions)
	interviews.Post("/next-question", handlers.NextQuestion)
	interviews.Post("/feedback", handlers.Feedback)

	interviews.Post("/save", mw.Authenticate(), handlers.Save)
	interviews.Get("/interview-history", mw.Authenticate(), handlers.History)
}
