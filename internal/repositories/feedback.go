package repositories

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Anupamakannur/resume-relevance/internal/models"
)

type FeedbackRepository interface {
	Upsert(record *models.FeedbackRecord) error
	FindByEvaluationID(evaluationID uuid.UUID) (*models.FeedbackRecord, error)
	DeleteByEvaluationID(evaluationID uuid.UUID) error
}

type feedbackRepository struct {
	db *gorm.DB
}

func NewFeedbackRepository(db *gorm.DB) FeedbackRepository {
	return &feedbackRepository{db: db}
}

// Upsert implements FeedbackRepository. Feedback is 1:1 with its
// evaluation; a re-run replaces the existing bundle.
func (f *feedbackRepository) Upsert(record *models.FeedbackRecord) error {
	var existing models.FeedbackRecord
	err := f.db.Where("evaluation_id = ?", record.EvaluationID).First(&existing).Error

	switch {
	case err == nil:
		existing.Bundle = record.Bundle
		existing.UpdatedAt = time.Now()
		if err := f.db.Save(&existing).Error; err != nil {
			return fmt.Errorf("failed to update feedback: %w", err)
		}
		record.ID = existing.ID
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := f.db.Create(record).Error; err != nil {
			return fmt.Errorf("failed to create feedback: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("failed to look up feedback: %w", err)
	}
}

// FindByEvaluationID implements FeedbackRepository.
func (f *feedbackRepository) FindByEvaluationID(evaluationID uuid.UUID) (*models.FeedbackRecord, error) {
	var record models.FeedbackRecord
	if err := f.db.Where("evaluation_id = ?", evaluationID).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("feedback for evaluation %s: %w", evaluationID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find feedback: %w", err)
	}
	return &record, nil
}

// DeleteByEvaluationID implements FeedbackRepository. Missing feedback is
// not an error; the evaluation may have failed before feedback was built.
func (f *feedbackRepository) DeleteByEvaluationID(evaluationID uuid.UUID) error {
	if err := f.db.Where("evaluation_id = ?", evaluationID).Delete(&models.FeedbackRecord{}).Error; err != nil {
		return fmt.Errorf("failed to delete feedback: %w", err)
	}
	return nil
}
