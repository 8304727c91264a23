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

type ResumeHandler struct {
	resumeRepo     repositories.ResumeRepository
	storageService services.StorageService
	worker         services.Worker
	maxFileSize    int64
}

func NewResumeHandler(
	resumeRepo repositories.ResumeRepository,
	storageService services.StorageService,
	worker services.Worker,
	maxFileSize int64,
) *ResumeHandler {
	return &ResumeHandler{
		resumeRepo:     resumeRepo,
		storageService: storageService,
		worker:         worker,
		maxFileSize:    maxFileSize,
	}
}

// HandleUpload handles POST /resumes. The file is stored and parsing is
// queued; the response returns immediately with the pending record.
func (h *ResumeHandler) HandleUpload(c *fiber.Ctx) error {
	file, err := c.FormFile("resume")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No resume file uploaded. Please upload a 'resume' file (pdf, doc, docx or txt).",
		})
	}

	if file.Size > h.maxFileSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("Resume file too large. Max size: %d bytes", h.maxFileSize),
		})
	}

	filename, filePath, declaredType, err := h.storageService.SaveFile(file)
	if err != nil {
		if errors.Is(err, services.ErrUnsupportedFormat) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("Unsupported file format: %v", err),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to save resume file: %v", err),
		})
	}

	resume := &models.Resume{
		ID:               uuid.New(),
		Filename:         filename,
		OriginalFileName: file.Filename,
		FileType:         declaredType,
		FilePath:         filePath,
		FileSize:         file.Size,
		ParsingStatus:    models.ParsingPending,
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}

	if err := h.resumeRepo.Create(resume); err != nil {
		// Cleanup uploaded file if database insert fails
		h.storageService.DeleteFile(filename)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to save resume record: %v", err),
		})
	}

	h.worker.EnqueueParse(resume.ID)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Resume uploaded successfully",
		"resume": models.UploadResponse{
			ID:            resume.ID.String(),
			Filename:      resume.Filename,
			OriginalName:  resume.OriginalFileName,
			FileType:      resume.FileType,
			ParsingStatus: string(resume.ParsingStatus),
		},
	})
}

// HandleGetResume handles GET /resumes/:id.
func (h *ResumeHandler) HandleGetResume(c *fiber.Ctx) error {
	resumeID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid resume ID format",
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

	return c.JSON(resume)
}
