package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/stratacloud/careers-backend/internal/catalog"
	"github.com/stratacloud/careers-backend/internal/dto"
	"github.com/stratacloud/careers-backend/internal/services"
)

type JobHandler struct {
	jobs *services.JobService
}

func NewJobHandler(jobs *services.JobService) *JobHandler {
	return &JobHandler{jobs: jobs}
}

// List searches the public catalog. Query params: q, department, location,
// employmentType, remote, status, includeExpired, sort.
func (h *JobHandler) List(c *fiber.Ctx) error {
	q := catalog.Query{
		Text:           c.Query("q"),
		Department:     c.Query("department"),
		Location:       c.Query("location"),
		EmploymentType: c.Query("employmentType"),
		Status:         c.Query("status"),
		IncludeExpired: c.QueryBool("includeExpired", false),
		Sort:           c.Query("sort"),
	}
	if v := c.Query("remote"); v != "" {
		remote, err := strconv.ParseBool(v)
		if err != nil {
			return badRequest(c, "remote must be true or false")
		}
		q.Remote = &remote
	}

	jobs := h.jobs.Search(q)
	if jobs == nil {
		jobs = []*catalog.Job{}
	}
	return c.JSON(dto.JobListResponse{Jobs: jobs, Total: len(jobs)})
}

func (h *JobHandler) Get(c *fiber.Ctx) error {
	job, err := h.jobs.BySlug(c.Params("slug"))
	if err != nil {
		return respondError(c, "get_job", err)
	}
	return c.JSON(job)
}
