package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/Anupamakannur/resume-relevance/internal/models"
	"github.com/Anupamakannur/resume-relevance/internal/repositories"
)

type ResultHandler struct {
	evalRepo     repositories.EvaluationRepository
	feedbackRepo repositories.FeedbackRepository
}

func NewResultHandler(evalRepo repositories.EvaluationRepository, feedbackRepo repositories.FeedbackRepository) *ResultHandler {
	return &ResultHandler{
		evalRepo:     evalRepo,
		feedbackRepo: feedbackRepo,
	}
}

// HandleGetResult handles GET /results/:id.
func (h *ResultHandler) HandleGetResult(c *fiber.Ctx) error {
	evalID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid evaluation ID format",
		})
	}

	evaluation, err := h.evalRepo.FindByID(evalID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Evaluation not found",
		})
	}

	response := models.ResultResponse{
		ID:     evaluation.ID.String(),
		Status: string(evaluation.Status),
	}

	if result := evaluation.Result(); result != nil {
		response.Result = result

		if record, err := h.feedbackRepo.FindByEvaluationID(evalID); err == nil {
			response.Feedback = &record.Bundle
		}
	}

	if evaluation.Status == models.StatusFailed && evaluation.ErrorMessage != nil {
		response.ErrorMessage = evaluation.ErrorMessage
	}

	return c.JSON(response)
}

// HandleDeleteResult handles DELETE /results/:id. Supersedes the
// evaluation so the pair can be re-evaluated; the row is kept for
// history, its feedback bundle is removed with it. Idempotent for an
// already-superseded evaluation.
func (h *ResultHandler) HandleDeleteResult(c *fiber.Ctx) error {
	evalID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid evaluation ID format",
		})
	}

	evaluation, err := h.evalRepo.FindByID(evalID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Evaluation not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to load evaluation",
		})
	}

	if err := h.feedbackRepo.DeleteByEvaluationID(evalID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to delete feedback",
		})
	}

	// Supersede retires the pair's single active evaluation, which is
	// this one unless it was already retired.
	if !evaluation.Superseded {
		if err := h.evalRepo.Supersede(evaluation.ResumeID, evaluation.JobID); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to supersede evaluation",
			})
		}
	}

	return c.SendStatus(fiber.StatusNoContent)
}
