package repositories

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Anupamakannur/resume-relevance/internal/models"
)

var ErrNotFound = errors.New("record not found")

type ResumeRepository interface {
	Create(resume *models.Resume) error
	FindByID(id uuid.UUID) (*models.Resume, error)
	FindByIDs(ids []uuid.UUID) ([]models.Resume, error)
	UpdateStatus(id uuid.UUID, status models.ParsingStatus) error
	UpdateParsed(resume *models.Resume) error
	UpdateError(id uuid.UUID, errorMsg string) error
	FindPendingParses(limit int) ([]models.Resume, error)
}

type resumeRepository struct {
	db *gorm.DB
}

func NewResumeRepository(db *gorm.DB) ResumeRepository {
	return &resumeRepository{db: db}
}

// Create implements ResumeRepository.
func (r *resumeRepository) Create(resume *models.Resume) error {
	if err := r.db.Create(resume).Error; err != nil {
		return fmt.Errorf("failed to create resume: %w", err)
	}
	return nil
}

// FindByID implements ResumeRepository.
func (r *resumeRepository) FindByID(id uuid.UUID) (*models.Resume, error) {
	var resume models.Resume
	if err := r.db.Where("id = ?", id).First(&resume).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("resume %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find resume: %w", err)
	}
	return &resume, nil
}

// FindByIDs implements ResumeRepository.
func (r *resumeRepository) FindByIDs(ids []uuid.UUID) ([]models.Resume, error) {
	var resumes []models.Resume
	if err := r.db.Where("id IN ?", ids).Find(&resumes).Error; err != nil {
		return nil, fmt.Errorf("failed to find resumes: %w", err)
	}
	return resumes, nil
}

// UpdateStatus implements ResumeRepository.
func (r *resumeRepository) UpdateStatus(id uuid.UUID, status models.ParsingStatus) error {
	result := r.db.Model(&models.Resume{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"parsing_status": status,
			"updated_at":     time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update parsing status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("resume %s: %w", id, ErrNotFound)
	}
	return nil
}

// UpdateParsed persists the full parsed snapshot and marks parsing
// completed.
func (r *resumeRepository) UpdateParsed(resume *models.Resume) error {
	resume.ParsingStatus = models.ParsingCompleted
	resume.ParsingErrors = nil
	resume.UpdatedAt = time.Now()

	if err := r.db.Save(resume).Error; err != nil {
		return fmt.Errorf("failed to save parsed resume: %w", err)
	}
	return nil
}

// UpdateError implements ResumeRepository.
func (r *resumeRepository) UpdateError(id uuid.UUID, errorMsg string) error {
	result := r.db.Model(&models.Resume{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"parsing_status": models.ParsingFailed,
			"parsing_errors": errorMsg,
			"updated_at":     time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update parsing error: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("resume %s: %w", id, ErrNotFound)
	}
	return nil
}

// FindPendingParses implements ResumeRepository.
func (r *resumeRepository) FindPendingParses(limit int) ([]models.Resume, error) {
	var resumes []models.Resume
	err := r.db.
		Where("parsing_status = ?", models.ParsingPending).
		Order("created_at ASC").
		Limit(limit).
		Find(&resumes).Error

	if err != nil {
		return nil, fmt.Errorf("failed to find pending resumes: %w", err)
	}
	return resumes, nil
}
