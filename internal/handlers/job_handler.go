package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/Anupamakannur/resume-relevance/internal/models"
	"github.com/Anupamakannur/resume-relevance/internal/repositories"
	"github.com/Anupamakannur/resume-relevance/internal/services"
)

type JobHandler struct {
	jobRepo  repositories.JobRepository
	analyzer *services.JobAnalyzer
}

func NewJobHandler(jobRepo repositories.JobRepository, analyzer *services.JobAnalyzer) *JobHandler {
	return &JobHandler{
		jobRepo:  jobRepo,
		analyzer: analyzer,
	}
}

// HandleCreateJob handles POST /jobs. Analysis runs synchronously; job
// descriptions are short enough that queueing would add nothing.
func (h *JobHandler) HandleCreateJob(c *fiber.Ctx) error {
	var req models.CreateJobRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if req.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "title is required",
		})
	}
	if req.Description == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "description is required",
		})
	}

	analyzed := h.analyzer.Analyze(req.Description, req.Requirements)

	job := &models.Job{
		ID:           uuid.New(),
		Title:        req.Title,
		Company:      req.Company,
		Description:  req.Description,
		Requirements: req.Requirements,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	job.ApplyAnalyzed(analyzed)

	if err := h.jobRepo.Create(job); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create job",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(job)
}

// HandleGetJob handles GET /jobs/:id.
func (h *JobHandler) HandleGetJob(c *fiber.Ctx) error {
	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid job ID format",
		})
	}

	job, err := h.jobRepo.FindByID(jobID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Job not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to load job",
		})
	}

	return c.JSON(job)
}

// HandleListJobs handles GET /jobs.
func (h *JobHandler) HandleListJobs(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	if limit < 1 || limit > 100 {
		limit = 20
	}
	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}

	jobs, err := h.jobRepo.List(limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to list jobs",
		})
	}

	return c.JSON(fiber.Map{
		"jobs":   jobs,
		"limit":  limit,
		"offset": offset,
	})
}
