package handlers

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/Anupamakannur/resume-relevance/internal/models"
	"github.com/Anupamakannur/resume-relevance/internal/repositories"
	"github.com/Anupamakannur/resume-relevance/internal/services"
)

type EvaluationHandler struct {
	evalRepo   repositories.EvaluationRepository
	resumeRepo repositories.ResumeRepository
	jobRepo    repositories.JobRepository
	worker     services.Worker
}

func NewEvaluationHandler(
	evalRepo repositories.EvaluationRepository,
	resumeRepo repositories.ResumeRepository,
	jobRepo repositories.JobRepository,
	worker services.Worker,
) *EvaluationHandler {
	return &EvaluationHandler{
		evalRepo:   evalRepo,
		resumeRepo: resumeRepo,
		jobRepo:    jobRepo,
		worker:     worker,
	}
}

// HandleEvaluate handles POST /evaluate. At most one non-superseded
// evaluation exists per (resume, job) pair; re-evaluation is rejected
// until the caller retires the existing one via DELETE /results/:id.
func (h *EvaluationHandler) HandleEvaluate(c *fiber.Ctx) error {
	var req models.EvaluateRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if req.ResumeID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "resume_id is required",
		})
	}
	if req.JobID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "job_id is required",
		})
	}

	resumeID, err := uuid.Parse(req.ResumeID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid resume_id format",
		})
	}

	jobID, err := uuid.Parse(req.JobID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid job_id format",
		})
	}

	if _, err := h.jobRepo.FindByID(jobID); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Job not found",
		})
	}

	resume, err := h.resumeRepo.FindByID(resumeID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Resume not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to load resume",
		})
	}

	response, status, errMsg := h.queueEvaluation(resume, jobID)
	if errMsg != "" {
		return c.Status(status).JSON(fiber.Map{"error": errMsg})
	}

	return c.Status(fiber.StatusAccepted).JSON(response)
}

// HandleBatchEvaluate handles POST /evaluate/batch: one job against many
// resumes. Each resume is evaluated independently; one bad resume ID does
// not fail the batch.
func (h *EvaluationHandler) HandleBatchEvaluate(c *fiber.Ctx) error {
	var req models.BatchEvaluateRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if req.JobID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "job_id is required",
		})
	}
	if len(req.ResumeIDs) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "resume_ids must not be empty",
		})
	}

	jobID, err := uuid.Parse(req.JobID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid job_id format",
		})
	}

	if _, err := h.jobRepo.FindByID(jobID); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Job not found",
		})
	}

	response := models.BatchEvaluateResponse{JobID: jobID.String()}

	ids := make([]uuid.UUID, 0, len(req.ResumeIDs))
	for _, rawID := range req.ResumeIDs {
		resumeID, err := uuid.Parse(rawID)
		if err != nil {
			response.Failures = append(response.Failures, models.BatchFailure{
				ResumeID: rawID,
				Error:    "invalid resume_id format",
			})
			continue
		}
		ids = append(ids, resumeID)
	}

	resumes, err := h.resumeRepo.FindByIDs(ids)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to load resumes",
		})
	}
	byID := make(map[uuid.UUID]*models.Resume, len(resumes))
	for i := range resumes {
		byID[resumes[i].ID] = &resumes[i]
	}

	for _, resumeID := range ids {
		resume, ok := byID[resumeID]
		if !ok {
			response.Failures = append(response.Failures, models.BatchFailure{
				ResumeID: resumeID.String(),
				Error:    "Resume not found",
			})
			continue
		}

		evalResp, _, errMsg := h.queueEvaluation(resume, jobID)
		if errMsg != "" {
			response.Failures = append(response.Failures, models.BatchFailure{
				ResumeID: resumeID.String(),
				Error:    errMsg,
			})
			continue
		}
		response.Evaluations = append(response.Evaluations, *evalResp)
	}

	return c.Status(fiber.StatusAccepted).JSON(response)
}

// queueEvaluation validates the resume and the pair's uniqueness
// invariant, then creates a fresh queued record and hands it to the
// worker.
func (h *EvaluationHandler) queueEvaluation(resume *models.Resume, jobID uuid.UUID) (*models.EvaluateResponse, int, string) {
	if resume.ParsingStatus == models.ParsingFailed {
		return nil, fiber.StatusUnprocessableEntity, "resume parsing failed; re-upload before evaluating"
	}
	if resume.ParsingStatus != models.ParsingCompleted {
		return nil, fiber.StatusUnprocessableEntity, "resume is still being parsed; retry once parsing completes"
	}

	if existing, err := h.evalRepo.FindActiveByPair(resume.ID, jobID); err == nil && existing != nil {
		msg := fmt.Sprintf("evaluation %s already exists for this pair; delete its result before re-evaluating", existing.ID)
		return nil, fiber.StatusConflict, msg
	} else if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return nil, fiber.StatusInternalServerError, "failed to check existing evaluations"
	}

	evaluation := &models.Evaluation{
		ID:        uuid.New(),
		ResumeID:  resume.ID,
		JobID:     jobID,
		Status:    models.StatusQueued,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := h.evalRepo.Create(evaluation); err != nil {
		return nil, fiber.StatusInternalServerError, "Failed to create evaluation job"
	}

	h.worker.EnqueueEvaluation(evaluation.ID)

	return &models.EvaluateResponse{
		ID:     evaluation.ID.String(),
		Status: string(models.StatusQueued),
	}, fiber.StatusAccepted, ""
}
