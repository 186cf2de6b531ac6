package courseapi

import (
	"github.com/Abraxas-365/careerlens/careers/course"
	"github.com/Abraxas-365/careerlens/careers/course/coursesrv"
	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	service *coursesrv.Service
}

func NewHandlers(service *coursesrv.Service) *Handlers {
	return &Handlers{service: service}
}

type coursesRequest struct {
	Skills []string `json:"skills"`
}

// GetCourses returns recommended courses for each skill
// POST /api/career/courses
func (h *Handlers) GetCourses(c *fiber.Ctx) error {
	var req coursesRequest
	if err := c.BodyParser(&req); err != nil {
		return course.ErrInvalidSkills().WithDetail("parse_error", err.Error())
	}
	if req.Skills == nil {
		return course.ErrInvalidSkills()
	}

	courses, err := h.service.CoursesFor(c.UserContext(), req.Skills)
	if err != nil {
		return err
	}
	return c.JSON(courses)
}

func RegisterRoutes(app *fiber.App, handlers *Handlers) {
	app.Post("/api/career/courses", handlers.GetCourses)
}
