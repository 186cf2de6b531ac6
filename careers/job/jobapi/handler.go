package jobapi

import (
	"github.com/Abraxas-365/careerlens/careers/job"
	"github.com/Abraxas-365/careerlens/careers/job/jobsrv"
	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	service *jobsrv.Service
}

func NewHandlers(service *jobsrv.Service) *Handlers {
	return &Handlers{service: service}
}

// Search
// GET /api/jobs/search?title=&location=&type=
func (h *Handlers) Search(c *fiber.Ctx) error {
	var q job.Query
	if err := c.QueryParser(&q); err != nil {
		return job.ErrMissingTitle().WithDetail("parse_error", err.Error())
	}

	jobs, err := h.service.Search(c.UserContext(), q)
	if err != nil {
		return err
	}
	return c.JSON(jobs)
}

func RegisterRoutes(app *fiber.App, handlers *Handlers) {
	app.Get("/api/jobs/search", handlers.Search)
}
